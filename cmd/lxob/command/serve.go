package command

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"lxoreader/internal/admin/api"
	"lxoreader/internal/admin/router"
	"lxoreader/internal/pkg"
)

const shutdownTimeout = 5 * time.Second

func newServeCommand(a *app) *cobra.Command {
	var addr string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the decode API over http",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			config := pkg.ConfigFromContext(cmd.Context())
			if addr != "" {
				config.Server.Addr = addr
			}
			srv, err := a.newServer(config)
			if err != nil {
				return err
			}
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			return runServer(ctx, srv)
		},
	}
	cmd.Flags().StringVar(&addr, "addr", "", "监听地址，覆盖配置 server.addr")
	return cmd
}

// newServer 根据配置创建 http.Server
func (a *app) newServer(config *pkg.Config) (*http.Server, error) {
	info, err := config.Server.Info()
	if err != nil {
		return nil, err
	}
	h, err := api.NewHandler(config)
	if err != nil {
		return nil, err
	}
	h.Options = a.opts
	h.Metrics = a.metrics

	if config.Log.Level != "debug" {
		gin.SetMode(gin.ReleaseMode)
	}
	return &http.Server{
		Addr:         config.Server.Addr,
		Handler:      router.SetupRouter(h, info.AllowOrigins, a.logger.With(zap.String("module", "http"))),
		ReadTimeout:  info.ReadTimeout,
		WriteTimeout: info.WriteTimeout,
	}, nil
}

// runServer 启动服务并阻塞，直到 ctx 结束或服务上报错误，随后优雅关闭
func runServer(ctx context.Context, srv *http.Server) error {
	log := pkg.LoggerFromContext(ctx)
	errChan := make(chan error, 10) // 后台协程的错误通道
	ctx = pkg.WithErrChan(ctx, errChan)

	go func() {
		log.Info("http 服务启动", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			pkg.ReportErr(ctx, fmt.Errorf("http 服务异常退出: %w", err))
		}
	}()

	var runErr error
	select {
	case <-ctx.Done():
		log.Info("收到退出信号，关闭 http 服务")
	case runErr = <-errChan:
		log.Error("Error occurred", zap.Error(runErr))
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil && runErr == nil {
		runErr = fmt.Errorf("关闭 http 服务失败: %w", err)
	}
	log.Info("http 服务已退出")
	return runErr
}
