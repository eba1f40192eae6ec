package lxob

import (
	"errors"
	"fmt"
)

// Options 由调用方提供的解码选项。0 值表示不做对应检查。
type Options struct {
	// RequireLxob 为 true 时非 LXOB 文件直接拒绝
	RequireLxob bool
	// Locate 定位 PNTS 块的方式
	Locate LocateMode
	// ExpectedSize 期望的文件总字节数
	ExpectedSize int
	// ExpectedChunkCount 期望的块数量
	ExpectedChunkCount int
	// RequirePoints 为 true 时缺少 PNTS 块视为错误
	RequirePoints bool
}

// DefaultOptions 默认要求 LXOB 格式，按块边界定位
func DefaultOptions() Options {
	return Options{
		RequireLxob: true,
		Locate:      LocateWalk,
	}
}

// Document 一次解码的完整结果，不引用输入缓冲区
type Document struct {
	Size   int           `json:"size" yaml:"size"`
	Lxob   bool          `json:"lxob" yaml:"lxob"`
	Header FileHeader    `json:"header" yaml:"header"`
	Chunks []ChunkHeader `json:"chunks" yaml:"chunks"`
	Points *Chunk[Point] `json:"points,omitempty" yaml:"points,omitempty"`
}

// TagCounts 统计每种块标签出现的次数
func (d *Document) TagCounts() map[string]int {
	counts := make(map[string]int, len(d.Chunks))
	for _, c := range d.Chunks {
		counts[c.Tag]++
	}
	return counts
}

// PointCount 返回点的数量，没有 PNTS 块时为 0
func (d *Document) PointCount() int {
	if d.Points == nil {
		return 0
	}
	return len(d.Points.Data)
}

// Decode 按 格式检查 -> 文件头 -> 遍历所有块 -> 提取 PNTS 的顺序解码整个文件，
// 遇到第一个错误即停止。
func Decode(buf []byte, opts Options) (*Document, error) {
	doc := &Document{Size: len(buf), Lxob: IsLxob(buf)}
	if opts.RequireLxob {
		if err := CheckFormat(buf); err != nil {
			return nil, err
		}
	}
	if opts.ExpectedSize > 0 && opts.ExpectedSize != len(buf) {
		return nil, fmt.Errorf("%w: file size %d, want %d", ErrExpectationFailed, len(buf), opts.ExpectedSize)
	}

	header, body, err := DecodeFileHeader(buf)
	if err != nil {
		return nil, fmt.Errorf("decode header: %w", err)
	}
	doc.Header = header

	chunks, err := ChunkHeaders(body)
	if err != nil {
		return nil, fmt.Errorf("walk chunks: %w", err)
	}
	doc.Chunks = chunks
	if opts.ExpectedChunkCount > 0 && opts.ExpectedChunkCount != len(chunks) {
		return nil, fmt.Errorf("%w: chunk count %d, want %d", ErrExpectationFailed, len(chunks), opts.ExpectedChunkCount)
	}

	at, err := Locate(buf, PntsTag, opts.Locate)
	switch {
	case errors.Is(err, ErrChunkNotFound) && !opts.RequirePoints:
		return doc, nil
	case err != nil:
		return nil, fmt.Errorf("locate %s: %w", PntsTag, err)
	}
	points, _, err := DecodePoints(at)
	if err != nil {
		return nil, fmt.Errorf("decode %s: %w", PntsTag, err)
	}
	doc.Points = &points
	return doc, nil
}
