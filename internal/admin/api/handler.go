// Package api 提供基于 gin 的 LXOB 解码接口，请求体即完整的 .lxo 文件。
package api

import (
	"bytes"
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"lxoreader/internal/lxob"
	"lxoreader/internal/pkg"
	"lxoreader/internal/report"
)

// Handler 解码接口，字段在启动时设置，之后只读
type Handler struct {
	Options lxob.Options
	MaxBody int64
	Metrics *pkg.Metrics
	Pool    *pkg.BufferPool
}

// NewHandler 根据配置创建 Handler
func NewHandler(config *pkg.Config) (*Handler, error) {
	opts, err := config.Decode.Options()
	if err != nil {
		return nil, err
	}
	info, err := config.Server.Info()
	if err != nil {
		return nil, err
	}
	return &Handler{
		Options: opts,
		MaxBody: info.MaxBody,
		Metrics: pkg.GetMetrics(),
		Pool:    pkg.BufferPoolInstance,
	}, nil
}

// PointsResponse 点查询结果，Total 为过滤前的数量
type PointsResponse struct {
	Total  int              `json:"total"`
	Count  int              `json:"count"`
	Where  string           `json:"where,omitempty"`
	Points report.PointList `json:"points"`
}

// ErrorResponse 错误返回
type ErrorResponse struct {
	Error     string `json:"error"`
	Kind      string `json:"kind,omitempty"`
	RequestID string `json:"request_id,omitempty"`
}

var errBodyTooLarge = errors.New("request body too large")

func errorResponse(c *gin.Context, code int, err error) {
	c.AbortWithStatusJSON(code, ErrorResponse{
		Error:     err.Error(),
		Kind:      lxob.Kind(err),
		RequestID: c.GetString(requestIDKey),
	})
}

// statusFor 将解码错误映射为 http 状态码
func statusFor(err error) int {
	switch {
	case errors.Is(err, errBodyTooLarge):
		return http.StatusRequestEntityTooLarge
	case errors.Is(err, lxob.ErrChunkNotFound):
		return http.StatusNotFound
	case errors.Is(err, lxob.ErrNotLxobFormat):
		return http.StatusUnsupportedMediaType
	case errors.Is(err, lxob.ErrExpectationFailed):
		return http.StatusUnprocessableEntity
	default:
		return http.StatusBadRequest
	}
}

// reject 在解码开始前拒绝请求，同样计入错误指标
func (h *Handler) reject(c *gin.Context, operation string, code int, err error) {
	h.Metrics.Observe(operation, 0, 0, err)
	errorResponse(c, code, err)
}

// readBody 把请求体读入池化的缓冲区，调用方负责 Put
func (h *Handler) readBody(c *gin.Context) (*bytes.Buffer, error) {
	buf := h.Pool.Get()
	body := http.MaxBytesReader(c.Writer, c.Request.Body, h.MaxBody)
	if _, err := buf.ReadFrom(body); err != nil {
		h.Pool.Put(buf)
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			return nil, fmt.Errorf("%w: limit %d bytes", errBodyTooLarge, tooLarge.Limit)
		}
		return nil, fmt.Errorf("read request body: %w", err)
	}
	return buf, nil
}

// options 用 query 参数 locate / require_points 覆盖默认解码选项
func (h *Handler) options(c *gin.Context) (lxob.Options, error) {
	opts := h.Options
	if s, ok := c.GetQuery("locate"); ok {
		mode, err := lxob.ParseLocateMode(s)
		if err != nil {
			return opts, err
		}
		opts.Locate = mode
	}
	if s, ok := c.GetQuery("require_points"); ok {
		v, err := strconv.ParseBool(s)
		if err != nil {
			return opts, fmt.Errorf("invalid require_points %q: %w", s, err)
		}
		opts.RequirePoints = v
	}
	return opts, nil
}

// serve 统一处理读取请求体、计时和错误返回。
// decode 返回的结果不能引用缓冲区，函数返回后缓冲区会被复用。
func (h *Handler) serve(c *gin.Context, operation string, decode func(buf []byte, opts lxob.Options) (any, int, error)) {
	logger := pkg.LoggerFromContext(c.Request.Context())
	opts, err := h.options(c)
	if err != nil {
		h.reject(c, operation, http.StatusBadRequest, err)
		return
	}
	buf, err := h.readBody(c)
	if err != nil {
		logger.Warn("读取请求体失败", zap.Error(err))
		h.reject(c, operation, statusFor(err), err)
		return
	}
	defer h.Pool.Put(buf)

	timer := h.Metrics.NewTimer(operation)
	result, points, err := decode(buf.Bytes(), opts)
	timer.StopAndLog(logger.With(zap.Int("size", buf.Len())), points, err)
	if err != nil {
		errorResponse(c, statusFor(err), err)
		return
	}
	c.JSON(http.StatusOK, result)
}

// Decode 解码整个文件并返回概要
func (h *Handler) Decode(c *gin.Context) {
	h.serve(c, "decode", func(buf []byte, opts lxob.Options) (any, int, error) {
		doc, err := lxob.Decode(buf, opts)
		if err != nil {
			return nil, 0, err
		}
		return report.NewSummary(doc), doc.PointCount(), nil
	})
}

// Chunks 返回所有块及其偏移
func (h *Handler) Chunks(c *gin.Context) {
	h.serve(c, "chunks", func(buf []byte, opts lxob.Options) (any, int, error) {
		if opts.RequireLxob {
			if err := lxob.CheckFormat(buf); err != nil {
				return nil, 0, err
			}
		}
		list, err := report.ListChunks(buf)
		if err != nil {
			return nil, 0, err
		}
		return list, 0, nil
	})
}

// Points 返回 PNTS 块中的点，query 参数 where 为过滤表达式。
// 与 ExtractPoints 一致，总是要求 LXOB 格式。
func (h *Handler) Points(c *gin.Context) {
	where := c.Query("where")
	var filter *report.Filter
	if where != "" {
		f, err := report.NewFilter(where)
		if err != nil {
			h.reject(c, "points", http.StatusBadRequest, err)
			return
		}
		filter = f
	}
	h.serve(c, "points", func(buf []byte, opts lxob.Options) (any, int, error) {
		chunk, err := lxob.ExtractPoints(buf, opts.Locate)
		if err != nil {
			return nil, 0, err
		}
		list, err := filter.Apply(chunk.Data)
		if err != nil {
			return nil, 0, err
		}
		return PointsResponse{
			Total:  len(chunk.Data),
			Count:  len(list),
			Where:  where,
			Points: list,
		}, len(chunk.Data), nil
	})
}
