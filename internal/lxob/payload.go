package lxob

import (
	"fmt"
	"sync"
)

// PayloadDecoder 把块头和块的原始数据 (不含块头和补齐字节) 解码为类型化的记录序列
type PayloadDecoder func(h ChunkHeader, data []byte) (any, error)

var (
	payloadMu       sync.RWMutex
	payloadDecoders = make(map[string]PayloadDecoder)
)

// RegisterPayload 注册某个块标签的负载解码器，重复注册会覆盖
func RegisterPayload(tag string, decoder PayloadDecoder) {
	payloadMu.Lock()
	defer payloadMu.Unlock()
	payloadDecoders[tag] = decoder
}

// LookupPayload 查找已注册的负载解码器
func LookupPayload(tag string) (PayloadDecoder, bool) {
	payloadMu.RLock()
	defer payloadMu.RUnlock()
	d, ok := payloadDecoders[tag]
	return d, ok
}

// DecodePayload 用注册表中对应的解码器解码数据
func DecodePayload(h ChunkHeader, data []byte) (any, error) {
	d, ok := LookupPayload(h.Tag)
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownChunk, h.Tag)
	}
	return d(h, data)
}

// DecodeChunk 解码位于 b 起始处的整个块 (头 + 负载)，返回跳过补齐字节后的剩余切片
func DecodeChunk(b []byte) (ChunkHeader, any, []byte, error) {
	h, rest, err := DecodeChunkHeader(b)
	if err != nil {
		return ChunkHeader{}, nil, b, err
	}
	if len(rest) < h.PaddedSize() {
		return ChunkHeader{}, nil, b, fmt.Errorf("%w: chunk %q declares %d bytes, %d left", ErrTruncated, h.Tag, h.DataSize, len(rest))
	}
	v, err := DecodePayload(h, rest[:h.DataSize])
	if err != nil {
		return ChunkHeader{}, nil, b, err
	}
	return h, v, rest[h.PaddedSize():], nil
}

func pntsDecoder(h ChunkHeader, data []byte) (any, error) {
	if h.Tag != PntsTag {
		return nil, fmt.Errorf("%w: got %q, want %q", ErrUnexpectedChunkTag, h.Tag, PntsTag)
	}
	if int(h.DataSize) != len(data) {
		return nil, fmt.Errorf("%w: header says %d bytes, got %d", ErrInvalidPayloadSize, h.DataSize, len(data))
	}
	return decodePointData(data)
}

func init() {
	RegisterPayload(PntsTag, pntsDecoder)
}
