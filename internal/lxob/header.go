package lxob

import (
	"fmt"
)

const (
	// HeaderSize 标准 LXOB 文件头长度
	HeaderSize = 52
	// IffIDFieldSize 与 IffSizeFieldSize 之后紧跟子类型标签
	IffIDFieldSize   = 4
	IffSizeFieldSize = 4

	// FormTag 外层容器标识
	FormTag = "FORM"
	// LxobTag LXOB 子类型标签
	LxobTag = "LXOB"
	// VersionTag 版本记录的标签
	VersionTag = "VRSN"
)

// FileHeader 是 .lxo 文件头解码后的结果
//
//	偏移  长度  字段
//	0     4     iff_id            "FORM"
//	4     4     byte_count        此字段之后的字节总数
//	8     4     file_type_tag     "LXOB"
//	12    4     version_tag       "VRSN"
//	16    12    major/minor/patch
//	28    n     file_type_author  以 0 结尾
type FileHeader struct {
	IffID          string `json:"iff_id" yaml:"iff_id"`
	ByteCount      uint32 `json:"byte_count" yaml:"byte_count"`
	FileTypeTag    string `json:"file_type_tag" yaml:"file_type_tag"`
	VersionTag     string `json:"version_tag" yaml:"version_tag"`
	Major          uint32 `json:"major" yaml:"major"`
	Minor          uint32 `json:"minor" yaml:"minor"`
	Patch          uint32 `json:"patch" yaml:"patch"`
	FileTypeAuthor string `json:"file_type_author" yaml:"file_type_author"`

	size int // 实际消耗的字节数
}

// Version 返回 "major.minor.patch"
func (h FileHeader) Version() string {
	return fmt.Sprintf("%d.%d.%d", h.Major, h.Minor, h.Patch)
}

// Size 返回解码该文件头实际消耗的字节数
func (h FileHeader) Size() int {
	return h.size
}

// DecodeFileHeader 从缓冲区起始位置解码文件头，返回的剩余切片正好位于第一个块头。
// 不校验 FORM / LXOB，这由 CheckFormat 负责，
// 因此同样外形的其他子类型容器也可以复用。
func DecodeFileHeader(buf []byte) (FileHeader, []byte, error) {
	if len(buf) < HeaderSize {
		return FileHeader{}, buf, fmt.Errorf("%w: header needs %d bytes, %d available", ErrTruncated, HeaderSize, len(buf))
	}
	var (
		h    FileHeader
		rest = buf
		err  error
	)
	if h.IffID, rest, err = ReadTag(rest); err != nil {
		return FileHeader{}, buf, fmt.Errorf("iff_id: %w", err)
	}
	if h.ByteCount, rest, err = ReadU32(rest); err != nil {
		return FileHeader{}, buf, fmt.Errorf("byte_count: %w", err)
	}
	if h.FileTypeTag, rest, err = ReadTag(rest); err != nil {
		return FileHeader{}, buf, fmt.Errorf("file_type_tag: %w", err)
	}
	if h.VersionTag, rest, err = ReadTag(rest); err != nil {
		return FileHeader{}, buf, fmt.Errorf("version_tag: %w", err)
	}
	if h.Major, rest, err = ReadU32(rest); err != nil {
		return FileHeader{}, buf, fmt.Errorf("major: %w", err)
	}
	if h.Minor, rest, err = ReadU32(rest); err != nil {
		return FileHeader{}, buf, fmt.Errorf("minor: %w", err)
	}
	if h.Patch, rest, err = ReadU32(rest); err != nil {
		return FileHeader{}, buf, fmt.Errorf("patch: %w", err)
	}
	if h.FileTypeAuthor, rest, err = ReadCString(rest); err != nil {
		return FileHeader{}, buf, fmt.Errorf("file_type_author: %w", err)
	}
	// 跳过结尾的 0
	if rest, err = Skip(rest, 1); err != nil {
		return FileHeader{}, buf, fmt.Errorf("header pad: %w", err)
	}
	h.size = len(buf) - len(rest)
	return h, rest, nil
}
