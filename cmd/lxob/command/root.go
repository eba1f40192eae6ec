// Package command 实现 lxob 命令行: inspect / chunks / points / serve。
package command

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/afero"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"lxoreader/internal/lxob"
	"lxoreader/internal/pkg"
	"lxoreader/internal/report"
	"lxoreader/internal/source"
)

// app 命令行的共享状态，由根命令的 PersistentPreRunE 初始化
type app struct {
	configDir string
	format    string
	locate    string

	fs      afero.Fs
	opts    lxob.Options
	output  report.Format
	logger  *zap.Logger
	metrics *pkg.Metrics
}

// Execute 创建根命令并执行，结束时同步日志
func Execute(ctx context.Context) error {
	a := &app{fs: afero.NewOsFs()}
	err := newRootCommand(a).ExecuteContext(ctx)
	if a.logger != nil {
		syncLog(a.logger)
	}
	return err
}

// syncLog 安全地同步日志，忽略与标准输出相关的错误
func syncLog(log *zap.Logger) {
	// stderr 是终端时 Sync 会返回 "invalid argument" / "The handle is invalid"，可以忽略
	err := log.Sync()
	if err != nil && !strings.Contains(err.Error(), "invalid argument") && !strings.Contains(err.Error(), "The handle is invalid") {
		log.Error("程序退出时同步日志失败", zap.Error(err))
	}
}

// newRootCommand 创建根命令
func newRootCommand(a *app) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "lxob",
		Short: "Inspect LightWave/modo LXOB scene files",
		Long: `lxob decodes the IFF FORM/LXOB container used by .lxo scene files:
the file header, the chunk sequence and the PNTS point list.`,
		SilenceUsage:      true,
		SilenceErrors:     true,
		PersistentPreRunE: a.setup,
	}

	flags := rootCmd.PersistentFlags()
	flags.StringVarP(&a.configDir, "config", "c", "yaml", "配置目录，读取其中所有 yaml 文件")
	flags.StringVarP(&a.format, "format", "o", string(report.FormatText), "输出格式 text|json|yaml")
	flags.StringVar(&a.locate, "locate", string(lxob.LocateWalk), "PNTS 定位方式 walk|scan，覆盖配置 decode.locate")

	rootCmd.AddCommand(
		newInspectCommand(a),
		newChunksCommand(a),
		newPointsCommand(a),
		newServeCommand(a),
	)
	return rootCmd
}

// setup 加载配置并创建 logger，挂载到命令的 context 上
func (a *app) setup(cmd *cobra.Command, _ []string) error {
	// 1. 初始化配置
	config, _, err := pkg.InitCommon(a.configDir)
	if err != nil {
		return fmt.Errorf("加载配置失败: %w", err)
	}
	if cmd.Flags().Changed("locate") {
		config.Decode.Locate = a.locate
	}
	opts, err := config.Decode.Options()
	if err != nil {
		return err
	}
	output, err := report.ParseFormat(a.format)
	if err != nil {
		return err
	}

	// 2. 初始化log
	logger := pkg.NewLogger(&config.Log)
	logger.Debug("配置信息", zap.Any("common", config))

	a.opts, a.output, a.logger = opts, output, logger
	if a.metrics == nil {
		a.metrics = pkg.GetMetrics()
	}

	// 3. 将 config 和 logger 挂载到 ctx 上
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	ctx = pkg.WithConfig(ctx, config)
	cmd.SetContext(pkg.WithLoggerAndModule(ctx, logger, cmd.Name()))
	return nil
}

// load 按 ctx 中配置的扩展名读取文件
func (a *app) load(ctx context.Context, path string) ([]byte, error) {
	config := pkg.ConfigFromContext(ctx)
	loader := &source.Loader{Fs: a.fs, Extensions: config.Decode.Extensions}
	return loader.Load(path)
}
