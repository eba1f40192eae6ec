// Package lxobtest 为其他包的测试构造 LXOB 字节流。
package lxobtest

import (
	"encoding/binary"
	"math"

	"lxoreader/internal/lxob"
)

// Author 构造文件时使用的作者字段，文件头正好 52 字节
const Author = "nexus 10 by The Foundry"

// Chunk 构造一个块，奇数长度补一个 0
func Chunk(tag string, data []byte) []byte {
	out := binary.BigEndian.AppendUint32([]byte(tag), uint32(len(data)))
	out = append(out, data...)
	if len(data)%2 != 0 {
		out = append(out, 0)
	}
	return out
}

// Points 编码 PNTS 数据区
func Points(points ...lxob.Point) []byte {
	out := make([]byte, 0, len(points)*lxob.PointSize)
	for _, p := range points {
		out = binary.BigEndian.AppendUint32(out, math.Float32bits(p.X))
		out = binary.BigEndian.AppendUint32(out, math.Float32bits(p.Y))
		out = binary.BigEndian.AppendUint32(out, math.Float32bits(p.Z))
	}
	return out
}

// File 构造带 32.4.1 版本文件头的完整文件，byte_count 按实际长度填写
func File(chunks ...[]byte) []byte {
	out := []byte(lxob.FormTag)
	out = binary.BigEndian.AppendUint32(out, 0)
	out = append(out, lxob.LxobTag...)
	out = append(out, lxob.VersionTag...)
	out = binary.BigEndian.AppendUint32(out, 32)
	out = binary.BigEndian.AppendUint32(out, 4)
	out = binary.BigEndian.AppendUint32(out, 1)
	out = append(out, Author...)
	out = append(out, 0)
	for _, c := range chunks {
		out = append(out, c...)
	}
	byteCount := len(out) - lxob.IffIDFieldSize - lxob.IffSizeFieldSize
	binary.BigEndian.PutUint32(out[lxob.IffIDFieldSize:], uint32(byteCount))
	return out
}
