package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/Basith5/blog-page-api/internal/config"
	"github.com/Basith5/blog-page-api/internal/db"
	"github.com/Basith5/blog-page-api/internal/handler"
	"github.com/Basith5/blog-page-api/internal/logging"
	"github.com/Basith5/blog-page-api/internal/metrics"
	"github.com/Basith5/blog-page-api/internal/router"
	"github.com/Basith5/blog-page-api/internal/service"
	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the HTTP server (default)",
	RunE:  runServe,
}

func runServe(cmd *cobra.Command, _ []string) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	logger, err := logging.New(cfg.Logging.Level, cfg.Logging.Format)
	if err != nil {
		return err
	}
	defer logger.Sync()

	gin.SetMode(cfg.Server.GinMode)

	// 初始化数据库
	gdb, err := db.Open(cfg.Database, logger)
	if err != nil {
		logger.Error("Failed to open database", zap.Error(err))
		return err
	}
	defer func() {
		if err := db.Close(gdb); err != nil {
			logger.Error("Failed to close database", zap.Error(err))
		}
	}()

	if err := db.Migrate(gdb); err != nil {
		logger.Error("Failed to migrate database", zap.Error(err))
		return err
	}

	var m *metrics.Metrics
	if cfg.Metrics.Enabled {
		sqlDB, err := gdb.DB()
		if err != nil {
			return err
		}
		m = metrics.NewMetrics(sqlDB)
	}

	api := handler.NewAPI(service.NewPageService(gdb), logger, m, cfg.Server.ValidationErrorStatus)
	r := router.SetupRouter(api, router.Options{
		Logger:      logger,
		Metrics:     m,
		MetricsPath: cfg.Metrics.Path,
	})

	srv := &http.Server{
		Addr:    cfg.Server.ListenAddr,
		Handler: r,
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	serveErr := make(chan error, 1)
	go func() {
		logger.Info("Server started",
			zap.String("addr", cfg.Server.ListenAddr),
			zap.String("driver", cfg.Database.Driver),
			zap.Int("max_open_conns", cfg.Database.MaxOpenConns))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serveErr <- err
		}
		close(serveErr)
	}()

	select {
	case err, ok := <-serveErr:
		if ok {
			logger.Error("Failed to serve", zap.Error(err))
			return err
		}
		return nil
	case <-ctx.Done():
	}

	logger.Info("Shutting down gracefully...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server shutdown failed: %w", err)
	}
	return nil
}
