package pkg

import (
	"time"

	"go.uber.org/zap"
)

// Timer 简单的计时器，停止时把耗时和结果记录到 Metrics
type Timer struct {
	start   time.Time
	metrics *Metrics
	name    string
}

// NewTimer 创建一个新的计时器，name 作为 operation 标签
func (m *Metrics) NewTimer(name string) *Timer {
	return &Timer{
		start:   time.Now(),
		metrics: m,
		name:    name,
	}
}

// Stop 停止计时器并记录结果
func (t *Timer) Stop(points int, err error) time.Duration {
	duration := time.Since(t.start)
	t.metrics.Observe(t.name, duration, points, err)
	return duration
}

// StopAndLog 停止计时器并记录到日志
func (t *Timer) StopAndLog(logger *zap.Logger, points int, err error) time.Duration {
	duration := t.Stop(points, err)
	if err != nil {
		logger.Warn("解码失败",
			zap.String("operation", t.name),
			zap.Duration("duration", duration),
			zap.Error(err),
		)
		return duration
	}
	logger.Debug("操作计时",
		zap.String("operation", t.name),
		zap.Duration("duration", duration),
		zap.Int("points", points),
	)
	return duration
}
