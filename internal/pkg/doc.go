/*
Package pkg 包含了项目的公共类部分。具体地：

config.go -- 统一定义了所有配置的加载项，便于使用

logger.go -- 配置logger项

context.go / errChan.go -- 通过 context 传递配置、logger 和全局错误通道

以下项因为在命令行和 http 接口共用，故放置在此包中

metrics.go / perf.go -- 解码指标与计时器

bytesPool.go -- 请求体缓冲区池
*/
package pkg
