package lxob

import (
	"fmt"
)

// ChunkHeaderSize 块头: 4 字节标签 + 4 字节大端长度
const ChunkHeaderSize = 8

// ChunkHeader 单个块的头部
type ChunkHeader struct {
	Tag      string `json:"tag" yaml:"tag"`
	DataSize uint32 `json:"data_size" yaml:"data_size"`
}

// PaddedSize 数据区实际占用的字节数，奇数长度补一个 0 以保证下一个块从偶数偏移开始
func (h ChunkHeader) PaddedSize() int {
	return PaddedSize(h.DataSize)
}

// BinarySize 块在文件中占用的总字节数 (头 + 补齐后的数据)
func (h ChunkHeader) BinarySize() int {
	return ChunkHeaderSize + h.PaddedSize()
}

func (h ChunkHeader) String() string {
	return fmt.Sprintf("%s(%d)", h.Tag, h.DataSize)
}

// PaddedSize 将 size 向上取到偶数
func PaddedSize(size uint32) int {
	n := int(size)
	if n%2 != 0 {
		n++
	}
	return n
}

// Chunk 解码后的块: 块头 + 类型化的记录序列
type Chunk[T any] struct {
	Header ChunkHeader `json:"header" yaml:"header"`
	Data   []T         `json:"data" yaml:"data"`
}

// BinarySize 块在文件中占用的总字节数
func (c Chunk[T]) BinarySize() int {
	return c.Header.BinarySize()
}

// DecodeChunkHeader 解码 8 字节块头，剩余切片位于数据区起始处
func DecodeChunkHeader(b []byte) (ChunkHeader, []byte, error) {
	if len(b) < ChunkHeaderSize {
		return ChunkHeader{}, b, fmt.Errorf("%w: chunk header needs %d bytes, %d left", ErrTruncated, ChunkHeaderSize, len(b))
	}
	tag, rest, err := ReadTag(b)
	if err != nil {
		return ChunkHeader{}, b, err
	}
	size, rest, err := ReadU32(rest)
	if err != nil {
		return ChunkHeader{}, b, err
	}
	return ChunkHeader{Tag: tag, DataSize: size}, rest, nil
}

// SkipChunk 解码块头并跳过 (补齐后的) 数据区，不读取块内容
func SkipChunk(b []byte) (ChunkHeader, []byte, error) {
	h, rest, err := DecodeChunkHeader(b)
	if err != nil {
		return ChunkHeader{}, b, err
	}
	rest, err = Skip(rest, h.PaddedSize())
	if err != nil {
		return ChunkHeader{}, b, fmt.Errorf("chunk %q data: %w", h.Tag, err)
	}
	return h, rest, nil
}
