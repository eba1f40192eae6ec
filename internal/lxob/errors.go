package lxob

import "errors"

var (
	// ErrTruncated 剩余字节不足以解码一个字段或记录
	ErrTruncated = errors.New("lxob: truncated")
	// ErrMalformedTag 4 字节标签或文本不是合法的 UTF-8
	ErrMalformedTag = errors.New("lxob: malformed tag")
	// ErrMissingTerminator 字符串缺少 0 结尾
	ErrMissingTerminator = errors.New("lxob: missing null terminator")
	// ErrUnexpectedChunkTag 块标签与调用方期望的不一致
	ErrUnexpectedChunkTag = errors.New("lxob: unexpected chunk tag")
	// ErrInvalidPayloadSize 块的数据长度为 0 或不是记录长度的整数倍
	ErrInvalidPayloadSize = errors.New("lxob: invalid payload size")
	// ErrChunkNotFound 在缓冲区中没有找到指定标签
	ErrChunkNotFound = errors.New("lxob: chunk not found")
	// ErrNotLxobFormat 子类型标签不是 LXOB
	ErrNotLxobFormat = errors.New("lxob: not an LXOB file")
	// ErrUnknownChunk 没有为该标签注册负载解码器
	ErrUnknownChunk = errors.New("lxob: no payload decoder registered")
	// ErrExpectationFailed 调用方给出的文件大小/块数量断言不成立
	ErrExpectationFailed = errors.New("lxob: expectation failed")
)

var kinds = []struct {
	err  error
	name string
}{
	{ErrTruncated, "truncated"},
	{ErrMalformedTag, "malformed_tag"},
	{ErrMissingTerminator, "missing_terminator"},
	{ErrUnexpectedChunkTag, "unexpected_chunk_tag"},
	{ErrInvalidPayloadSize, "invalid_payload_size"},
	{ErrChunkNotFound, "chunk_not_found"},
	{ErrNotLxobFormat, "not_lxob_format"},
	{ErrUnknownChunk, "unknown_chunk"},
	{ErrExpectationFailed, "expectation_failed"},
}

// Kind 返回错误对应的简短类别名，用于指标标签和接口返回。
// nil 返回 ""，无法识别的错误返回 "other"。
func Kind(err error) string {
	if err == nil {
		return ""
	}
	for _, k := range kinds {
		if errors.Is(err, k.err) {
			return k.name
		}
	}
	return "other"
}
