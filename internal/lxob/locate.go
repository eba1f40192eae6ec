package lxob

import (
	"bytes"
	"fmt"
	"strings"
)

// LocateMode 决定按标签查找块的方式
type LocateMode string

const (
	// LocateWalk 沿真实块边界遍历后比较标签
	LocateWalk LocateMode = "walk"
	// LocateScan 在原始字节中搜索标签，不关心块边界。
	// 若标签字节恰好出现在前面某个块的数据中，会得到错误的匹配。
	LocateScan LocateMode = "scan"
)

// ParseLocateMode 解析配置或命令行中的查找方式，空字符串视为 LocateWalk
func ParseLocateMode(s string) (LocateMode, error) {
	switch LocateMode(strings.ToLower(strings.TrimSpace(s))) {
	case "", LocateWalk:
		return LocateWalk, nil
	case LocateScan:
		return LocateScan, nil
	default:
		return "", fmt.Errorf("unknown locate mode %q, want walk|scan", s)
	}
}

func checkTag(tag string) error {
	if len(tag) != TagSize {
		return fmt.Errorf("%w: search tag %q must be %d bytes", ErrMalformedTag, tag, TagSize)
	}
	return nil
}

// FindTag 返回从 tag 第一次出现处开始的切片
func FindTag(b []byte, tag string) ([]byte, error) {
	if err := checkTag(tag); err != nil {
		return nil, err
	}
	i := bytes.Index(b, []byte(tag))
	if i < 0 {
		return nil, fmt.Errorf("%w: %q", ErrChunkNotFound, tag)
	}
	return b[i:], nil
}

// FindChunk 沿块边界遍历 b，返回从第一个标签为 tag 的块头开始的切片。
// b 必须位于块边界 (通常为文件头之后的部分)。
func FindChunk(b []byte, tag string) ([]byte, error) {
	if err := checkTag(tag); err != nil {
		return nil, err
	}
	for ref, err := range WalkOffsets(b) {
		if err != nil {
			return nil, err
		}
		if ref.Header.Tag == tag {
			return b[ref.Offset:], nil
		}
	}
	return nil, fmt.Errorf("%w: %q", ErrChunkNotFound, tag)
}

// Locate 按 mode 在整个文件缓冲区中查找 tag。
// LocateScan 在整个 buf 中搜索；LocateWalk 先解码文件头，再从第一个块开始遍历。
func Locate(buf []byte, tag string, mode LocateMode) ([]byte, error) {
	switch mode {
	case LocateScan:
		return FindTag(buf, tag)
	case LocateWalk, "":
		_, body, err := DecodeFileHeader(buf)
		if err != nil {
			return nil, err
		}
		return FindChunk(body, tag)
	default:
		return nil, fmt.Errorf("unknown locate mode %q", mode)
	}
}
