package pkg

import (
	"net/http"
	"sync"
	"time"

	"lxoreader/internal/lxob"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics 解码相关的 Prometheus 指标，使用独立的 Registry，便于测试
type Metrics struct {
	Registry *prometheus.Registry

	decodeTotal *prometheus.CounterVec   // result=ok|error
	errorsTotal *prometheus.CounterVec   // kind=truncated|...
	duration    *prometheus.HistogramVec // operation=decode|chunks|points
	points      prometheus.Histogram
}

// NewMetrics 创建并注册所有指标，同时注册 Go 运行时和进程指标
func NewMetrics() *Metrics {
	reg := prometheus.NewRegistry()
	m := &Metrics{
		Registry: reg,
		decodeTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "lxob_decode_total",
			Help: "Number of LXOB decode operations by result.",
		}, []string{"result"}),
		errorsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "lxob_decode_errors_total",
			Help: "Number of failed LXOB decode operations by error kind.",
		}, []string{"kind"}),
		duration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "lxob_decode_duration_seconds",
			Help:    "Time spent decoding LXOB buffers.",
			Buckets: prometheus.ExponentialBuckets(0.00001, 4, 10),
		}, []string{"operation"}),
		points: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "lxob_points_decoded",
			Help:    "Number of points decoded per PNTS chunk.",
			Buckets: prometheus.ExponentialBuckets(1, 8, 8),
		}),
	}
	reg.MustRegister(
		m.decodeTotal, m.errorsTotal, m.duration, m.points,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return m
}

// Observe 记录一次解码操作
func (m *Metrics) Observe(operation string, d time.Duration, points int, err error) {
	m.duration.WithLabelValues(operation).Observe(d.Seconds())
	if err != nil {
		m.decodeTotal.WithLabelValues("error").Inc()
		m.errorsTotal.WithLabelValues(lxob.Kind(err)).Inc()
		return
	}
	m.decodeTotal.WithLabelValues("ok").Inc()
	if points > 0 {
		m.points.Observe(float64(points))
	}
}

// Handler 返回暴露本 Registry 的 http.Handler
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.Registry, promhttp.HandlerOpts{Registry: m.Registry})
}

// 全局指标实例
var (
	metrics     *Metrics
	metricsOnce sync.Once
)

// GetMetrics 返回全局指标实例
func GetMetrics() *Metrics {
	metricsOnce.Do(func() {
		metrics = NewMetrics()
	})
	return metrics
}
