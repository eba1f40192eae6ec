package lxob

import (
	"encoding/binary"
	"math"
)

// 测试用的 LXOB 字节构造工具

const testAuthor = "nexus 10 by The Foundry"

func u32be(v uint32) []byte {
	return binary.BigEndian.AppendUint32(nil, v)
}

func f32be(v float32) []byte {
	return u32be(math.Float32bits(v))
}

func concat(parts ...[]byte) []byte {
	var out []byte
	for _, p := range parts {
		out = append(out, p...)
	}
	return out
}

// rawChunk 按 IFF 规则构造一个块，奇数长度补一个 0
func rawChunk(tag string, data []byte) []byte {
	out := concat([]byte(tag), u32be(uint32(len(data))), data)
	if len(data)%2 != 0 {
		out = append(out, 0)
	}
	return out
}

func pointsData(points ...Point) []byte {
	var out []byte
	for _, p := range points {
		out = append(out, concat(f32be(p.X), f32be(p.Y), f32be(p.Z))...)
	}
	return out
}

func headerBytes(byteCount uint32, author string) []byte {
	return concat(
		[]byte(FormTag), u32be(byteCount),
		[]byte(LxobTag), []byte(VersionTag),
		u32be(32), u32be(4), u32be(1),
		[]byte(author), []byte{0},
	)
}

// buildFile 构造完整文件，byte_count 为 FORM 长度字段之后的字节数
func buildFile(chunks ...[]byte) []byte {
	body := concat(chunks...)
	hdr := headerBytes(0, testAuthor)
	byteCount := uint32(len(hdr) + len(body) - IffIDFieldSize - IffSizeFieldSize)
	return concat(headerBytes(byteCount, testAuthor), body)
}
