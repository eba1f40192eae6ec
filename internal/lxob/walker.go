package lxob

import (
	"fmt"
	"iter"
)

// ChunkRef 块头及其在被遍历切片中的偏移
type ChunkRef struct {
	Header ChunkHeader `json:"header" yaml:"header"`
	Offset int         `json:"offset" yaml:"offset"`
}

// WalkOffsets 依次返回 b 中每个块的头部和偏移。
// b 应紧跟在文件头之后。剩余字节恰好为 0 时正常结束；
// 遇到不完整的块则返回一次 ErrTruncated 后停止。
// 迭代器不携带状态，可以重复遍历。
func WalkOffsets(b []byte) iter.Seq2[ChunkRef, error] {
	return func(yield func(ChunkRef, error) bool) {
		rest := b
		for len(rest) > 0 {
			offset := len(b) - len(rest)
			h, next, err := SkipChunk(rest)
			if err != nil {
				yield(ChunkRef{Offset: offset}, fmt.Errorf("chunk at offset %d: %w", offset, err))
				return
			}
			if !yield(ChunkRef{Header: h, Offset: offset}, nil) {
				return
			}
			rest = next
		}
	}
}

// Walk 依次返回 b 中每个块的头部
func Walk(b []byte) iter.Seq2[ChunkHeader, error] {
	return func(yield func(ChunkHeader, error) bool) {
		for ref, err := range WalkOffsets(b) {
			if !yield(ref.Header, err) {
				return
			}
		}
	}
}

// ChunkHeaders 收集 b 中所有块头，出错时不返回部分结果
func ChunkHeaders(b []byte) ([]ChunkHeader, error) {
	headers := make([]ChunkHeader, 0, 64)
	for h, err := range Walk(b) {
		if err != nil {
			return nil, err
		}
		headers = append(headers, h)
	}
	return headers, nil
}
