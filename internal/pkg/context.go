package pkg

import (
	"context"

	"go.uber.org/zap"
)

// 定义不导出的 key 类型，避免 context key 冲突
type (
	loggerKey struct{}
	configKey struct{}
)

// WithLogger 将 zap.Logger 存入 context 中
func WithLogger(ctx context.Context, logger *zap.Logger) context.Context {
	return context.WithValue(ctx, loggerKey{}, logger)
}

// WithLoggerAndModule 将带有模块信息的 zap.Logger 存入 context 中
func WithLoggerAndModule(ctx context.Context, logger *zap.Logger, module string) context.Context {
	return WithLogger(ctx, logger.With(zap.String("module", module)))
}

// LoggerFromContext 从 context 中提取 logger，没有时返回 no-op logger
func LoggerFromContext(ctx context.Context) *zap.Logger {
	if logger, ok := ctx.Value(loggerKey{}).(*zap.Logger); ok && logger != nil {
		return logger
	}
	return zap.NewNop()
}

// WithConfig 将配置指针存入 context 中
func WithConfig(ctx context.Context, config *Config) context.Context {
	return context.WithValue(ctx, configKey{}, config)
}

// ConfigFromContext 从 context 中提取配置指针，没有时返回默认配置
func ConfigFromContext(ctx context.Context) *Config {
	if config, ok := ctx.Value(configKey{}).(*Config); ok && config != nil {
		return config
	}
	return DefaultConfig()
}
