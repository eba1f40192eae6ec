// Package report 把解码结果整理成便于输出的结构，并按 text/json/yaml 渲染。
package report

import (
	"fmt"
	"maps"
	"slices"

	"lxoreader/internal/lxob"
)

// Box 点集的轴对齐包围盒
type Box struct {
	Min lxob.Point `json:"min" yaml:"min"`
	Max lxob.Point `json:"max" yaml:"max"`
}

// Summary 单个文件的概要
type Summary struct {
	Size       int             `json:"size" yaml:"size"`
	Lxob       bool            `json:"lxob" yaml:"lxob"`
	Header     lxob.FileHeader `json:"header" yaml:"header"`
	Version    string          `json:"version" yaml:"version"`
	HeaderSize int             `json:"header_size" yaml:"header_size"`
	ChunkCount int             `json:"chunk_count" yaml:"chunk_count"`
	Tags       map[string]int  `json:"tags" yaml:"tags"`
	PointCount int             `json:"point_count" yaml:"point_count"`
	Bounds     *Box            `json:"bounds,omitempty" yaml:"bounds,omitempty"`
}

// NewSummary 从解码结果生成概要
func NewSummary(doc *lxob.Document) Summary {
	s := Summary{
		Size:       doc.Size,
		Lxob:       doc.Lxob,
		Header:     doc.Header,
		Version:    doc.Header.Version(),
		HeaderSize: doc.Header.Size(),
		ChunkCount: len(doc.Chunks),
		Tags:       doc.TagCounts(),
		PointCount: doc.PointCount(),
	}
	if doc.Points != nil {
		if lo, hi, ok := lxob.Bounds(doc.Points.Data); ok {
			s.Bounds = &Box{Min: lo, Max: hi}
		}
	}
	return s
}

func (s Summary) rows() [][]string {
	rows := [][]string{
		{"size", fmt.Sprint(s.Size)},
		{"lxob", fmt.Sprint(s.Lxob)},
		{"iff_id", s.Header.IffID},
		{"byte_count", fmt.Sprint(s.Header.ByteCount)},
		{"file_type", s.Header.FileTypeTag},
		{"version", s.Version},
		{"author", s.Header.FileTypeAuthor},
		{"header_size", fmt.Sprint(s.HeaderSize)},
		{"chunks", fmt.Sprint(s.ChunkCount)},
	}
	for _, tag := range slices.Sorted(maps.Keys(s.Tags)) {
		rows = append(rows, []string{"  " + tag, fmt.Sprint(s.Tags[tag])})
	}
	rows = append(rows, []string{"points", fmt.Sprint(s.PointCount)})
	if s.Bounds != nil {
		rows = append(rows,
			[]string{"min", s.Bounds.Min.String()},
			[]string{"max", s.Bounds.Max.String()},
		)
	}
	return rows
}

// ChunkRow 块列表中的一行，Offset 为相对文件起始的绝对偏移
type ChunkRow struct {
	Index    int    `json:"index" yaml:"index"`
	Offset   int    `json:"offset" yaml:"offset"`
	Tag      string `json:"tag" yaml:"tag"`
	DataSize uint32 `json:"data_size" yaml:"data_size"`
	Padded   int    `json:"padded_size" yaml:"padded_size"`
}

// ChunkList 文件中的所有块
type ChunkList []ChunkRow

// ListChunks 解码文件头并遍历所有块，出错时不返回部分结果
func ListChunks(buf []byte) (ChunkList, error) {
	header, body, err := lxob.DecodeFileHeader(buf)
	if err != nil {
		return nil, fmt.Errorf("decode header: %w", err)
	}
	var list ChunkList
	for ref, err := range lxob.WalkOffsets(body) {
		if err != nil {
			return nil, fmt.Errorf("walk chunks: %w", err)
		}
		list = append(list, ChunkRow{
			Index:    len(list),
			Offset:   header.Size() + ref.Offset,
			Tag:      ref.Header.Tag,
			DataSize: ref.Header.DataSize,
			Padded:   ref.Header.PaddedSize(),
		})
	}
	return list, nil
}

func (l ChunkList) rows() [][]string {
	rows := make([][]string, 0, len(l)+1)
	rows = append(rows, []string{"#", "OFFSET", "TAG", "SIZE", "PADDED"})
	for _, r := range l {
		rows = append(rows, []string{
			fmt.Sprint(r.Index), fmt.Sprint(r.Offset), r.Tag,
			fmt.Sprint(r.DataSize), fmt.Sprint(r.Padded),
		})
	}
	return rows
}

// PointRow 带原始序号的点
type PointRow struct {
	Index int     `json:"index" yaml:"index"`
	X     float32 `json:"x" yaml:"x"`
	Y     float32 `json:"y" yaml:"y"`
	Z     float32 `json:"z" yaml:"z"`
}

func newPointRow(index int, p lxob.Point) PointRow {
	return PointRow{Index: index, X: p.X, Y: p.Y, Z: p.Z}
}

// PointList 点列表
type PointList []PointRow

// NewPointList 按原始顺序编号
func NewPointList(points []lxob.Point) PointList {
	list := make(PointList, len(points))
	for i, p := range points {
		list[i] = newPointRow(i, p)
	}
	return list
}

func (l PointList) rows() [][]string {
	rows := make([][]string, 0, len(l)+1)
	rows = append(rows, []string{"#", "X", "Y", "Z"})
	for _, r := range l {
		rows = append(rows, []string{
			fmt.Sprint(r.Index), fmt.Sprint(r.X), fmt.Sprint(r.Y), fmt.Sprint(r.Z),
		})
	}
	return rows
}
