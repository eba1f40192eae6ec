package lxob

import "fmt"

// IsLxob 判断 buf 偏移 8 处的子类型标签是否为 "LXOB"。
// 缓冲区过短或标签非法时返回 false，不会 panic。
func IsLxob(buf []byte) bool {
	if len(buf) < IffIDFieldSize+IffSizeFieldSize+TagSize {
		return false
	}
	tag, _, err := ReadTag(buf[IffIDFieldSize+IffSizeFieldSize:])
	return err == nil && tag == LxobTag
}

// CheckFormat 与 IsLxob 相同，但以错误的形式给出结论，同时要求外层标识为 "FORM"
func CheckFormat(buf []byte) error {
	if !IsLxob(buf) {
		return fmt.Errorf("%w: sub-type tag at offset %d", ErrNotLxobFormat, IffIDFieldSize+IffSizeFieldSize)
	}
	if id, _, err := ReadTag(buf); err != nil || id != FormTag {
		return fmt.Errorf("%w: container id is not %q", ErrNotLxobFormat, FormTag)
	}
	return nil
}
