package lxob

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"math"
	"unicode/utf8"
)

const (
	// TagSize 标签固定为 4 个字符
	TagSize = 4
	// u32Size IFF 中的整数和浮点均为 4 字节大端
	u32Size = 4
)

// ReadTag 读取 4 字节标签
func ReadTag(b []byte) (string, []byte, error) {
	if len(b) < TagSize {
		return "", b, fmt.Errorf("%w: tag needs %d bytes, %d left", ErrTruncated, TagSize, len(b))
	}
	raw := b[:TagSize]
	if !utf8.Valid(raw) {
		return "", b, fmt.Errorf("%w: % X", ErrMalformedTag, raw)
	}
	return string(raw), b[TagSize:], nil
}

// ReadU32 读取大端 uint32
func ReadU32(b []byte) (uint32, []byte, error) {
	if len(b) < u32Size {
		return 0, b, fmt.Errorf("%w: u32 needs %d bytes, %d left", ErrTruncated, u32Size, len(b))
	}
	return binary.BigEndian.Uint32(b), b[u32Size:], nil
}

// ReadF32 读取大端 IEEE-754 float32
func ReadF32(b []byte) (float32, []byte, error) {
	bits, rest, err := ReadU32(b)
	if err != nil {
		return 0, b, err
	}
	return math.Float32frombits(bits), rest, nil
}

// ReadCString 读取以 0 结尾的字符串，返回的文本不含结尾的 0。
// 剩余切片从结尾的 0 开始，由调用方决定如何跳过。
func ReadCString(b []byte) (string, []byte, error) {
	i := bytes.IndexByte(b, 0)
	if i < 0 {
		return "", b, fmt.Errorf("%w: %d bytes scanned", ErrMissingTerminator, len(b))
	}
	if !utf8.Valid(b[:i]) {
		return "", b, fmt.Errorf("%w: text is not valid UTF-8", ErrMalformedTag)
	}
	return string(b[:i]), b[i:], nil
}

// Skip 跳过 n 个字节
func Skip(b []byte, n int) ([]byte, error) {
	if n < 0 || len(b) < n {
		return b, fmt.Errorf("%w: skip %d bytes, %d left", ErrTruncated, n, len(b))
	}
	return b[n:], nil
}
