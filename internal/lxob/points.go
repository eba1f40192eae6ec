package lxob

import (
	"fmt"
	"math"
)

const (
	// PntsTag 点列表块
	PntsTag = "PNTS"
	// PointSize 每个点 3 个大端 float32
	PointSize = 3 * u32Size
)

// Point 三维坐标
type Point struct {
	X float32 `json:"x" yaml:"x"`
	Y float32 `json:"y" yaml:"y"`
	Z float32 `json:"z" yaml:"z"`
}

func (p Point) String() string {
	return fmt.Sprintf("(%g, %g, %g)", p.X, p.Y, p.Z)
}

func readPoint(b []byte) (Point, []byte, error) {
	var (
		p   Point
		err error
	)
	rest := b
	if p.X, rest, err = ReadF32(rest); err != nil {
		return Point{}, b, err
	}
	if p.Y, rest, err = ReadF32(rest); err != nil {
		return Point{}, b, err
	}
	if p.Z, rest, err = ReadF32(rest); err != nil {
		return Point{}, b, err
	}
	return p, rest, nil
}

// decodePointData 把 data 解码为 len(data)/12 个点
func decodePointData(data []byte) ([]Point, error) {
	if len(data) == 0 || len(data)%PointSize != 0 {
		return nil, fmt.Errorf("%w: %d bytes is not a positive multiple of %d", ErrInvalidPayloadSize, len(data), PointSize)
	}
	points := make([]Point, 0, len(data)/PointSize)
	rest := data
	for len(rest) > 0 {
		p, next, err := readPoint(rest)
		if err != nil {
			return nil, err
		}
		points = append(points, p)
		rest = next
	}
	return points, nil
}

// DecodePoints 解码位于 b 起始处的 PNTS 块，数据区交给注册表中 PNTS 的解码器。
// 返回的剩余切片位于数据区之后 (长度是 12 的倍数，必为偶数，无需补齐)。
func DecodePoints(b []byte) (Chunk[Point], []byte, error) {
	h, rest, err := DecodeChunkHeader(b)
	if err != nil {
		return Chunk[Point]{}, b, err
	}
	if h.Tag != PntsTag {
		return Chunk[Point]{}, b, fmt.Errorf("%w: got %q, want %q", ErrUnexpectedChunkTag, h.Tag, PntsTag)
	}
	if h.DataSize == 0 || h.DataSize%PointSize != 0 {
		return Chunk[Point]{}, b, fmt.Errorf("%w: %s data size %d is not a positive multiple of %d", ErrInvalidPayloadSize, PntsTag, h.DataSize, PointSize)
	}
	if uint64(len(rest)) < uint64(h.DataSize) {
		return Chunk[Point]{}, b, fmt.Errorf("%w: %s declares %d bytes, %d left", ErrTruncated, PntsTag, h.DataSize, len(rest))
	}
	v, err := DecodePayload(h, rest[:h.DataSize])
	if err != nil {
		return Chunk[Point]{}, b, err
	}
	points, ok := v.([]Point)
	if !ok {
		return Chunk[Point]{}, b, fmt.Errorf("%w: %s decoder returned %T, want []Point", ErrUnexpectedChunkTag, PntsTag, v)
	}
	return Chunk[Point]{Header: h, Data: points}, rest[h.DataSize:], nil
}

// ExtractPoints 校验格式、定位并解码文件中的 PNTS 块
func ExtractPoints(buf []byte, mode LocateMode) (Chunk[Point], error) {
	if err := CheckFormat(buf); err != nil {
		return Chunk[Point]{}, err
	}
	at, err := Locate(buf, PntsTag, mode)
	if err != nil {
		return Chunk[Point]{}, err
	}
	c, _, err := DecodePoints(at)
	return c, err
}

// Bounds 返回点集的轴对齐包围盒，点集为空时 ok 为 false
func Bounds(points []Point) (lo, hi Point, ok bool) {
	if len(points) == 0 {
		return Point{}, Point{}, false
	}
	lo = Point{X: math.MaxFloat32, Y: math.MaxFloat32, Z: math.MaxFloat32}
	hi = Point{X: -math.MaxFloat32, Y: -math.MaxFloat32, Z: -math.MaxFloat32}
	for _, p := range points {
		lo.X, hi.X = min(lo.X, p.X), max(hi.X, p.X)
		lo.Y, hi.Y = min(lo.Y, p.Y), max(hi.Y, p.Y)
		lo.Z, hi.Z = min(lo.Z, p.Z), max(hi.Z, p.Z)
	}
	return lo, hi, true
}
