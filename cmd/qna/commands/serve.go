package commands

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/emilythestrangee/qna-forum/backend/internal/auth"
	"github.com/emilythestrangee/qna-forum/backend/internal/cache"
	"github.com/emilythestrangee/qna-forum/backend/internal/media"
	"github.com/emilythestrangee/qna-forum/backend/internal/server"
	"github.com/emilythestrangee/qna-forum/backend/internal/service"
	"github.com/emilythestrangee/qna-forum/backend/internal/telemetry"
)

var (
	autoMigrate     bool
	shutdownTimeout time.Duration
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the HTTP API",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runServe()
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)

	serveCmd.Flags().BoolVar(&autoMigrate, "migrate", true, "migrate the postgres schema on start")
	serveCmd.Flags().DurationVar(&shutdownTimeout, "shutdown-timeout", 10*time.Second, "graceful shutdown timeout")
}

func runServe() error {
	cfg, log, err := bootstrap()
	if err != nil {
		return err
	}
	log.Info("starting qna api", "env", cfg.Env, "driver", cfg.Database.Driver)

	rootCtx, rootCancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer rootCancel()

	shutdownTracing, err := telemetry.Init(rootCtx, cfg.Tracing, cfg.Env)
	if err != nil {
		return fmt.Errorf("init tracing: %w", err)
	}
	defer func() {
		if err := shutdownTracing(context.Background()); err != nil {
			log.Warn("tracer shutdown failed", "err", err)
		}
	}()

	st, err := openStorage(rootCtx, cfg.Database, autoMigrate)
	if err != nil {
		return fmt.Errorf("open storage: %w", err)
	}
	defer func() {
		if err := st.Close(context.Background()); err != nil {
			log.Warn("storage close failed", "err", err)
		}
	}()

	var pages cache.PageCache = cache.Nop{}
	if cfg.Redis.Enabled() {
		pages, err = cache.NewRedisCache(rootCtx, cfg.Redis)
		if err != nil {
			return fmt.Errorf("connect redis: %w", err)
		}
		defer pages.Close()
		log.Info("listing cache enabled", "ttl", cfg.Redis.PageTTL)
	}

	var uploader media.Uploader = media.Disabled{}
	if cfg.S3.Enabled() {
		uploader, err = media.New(rootCtx, cfg.S3)
		if err != nil {
			return fmt.Errorf("connect object storage: %w", err)
		}
		log.Info("image uploads enabled", "bucket", cfg.S3.Bucket)
	}

	svc := service.New(st, pages, uploader, auth.NewTokens(cfg.Auth.JWTSecret, cfg.Auth.TokenTTL), cfg.Limits)
	httpSrv := server.New(cfg, log, svc).HTTPServer()

	ln, err := net.Listen("tcp", httpSrv.Addr)
	if err != nil {
		return fmt.Errorf("listen %s: %w", httpSrv.Addr, err)
	}
	log.Info("http listening", "addr", httpSrv.Addr)

	serveErrCh := make(chan error, 1)
	go func() {
		if err := httpSrv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serveErrCh <- err
		}
		close(serveErrCh)
	}()

	select {
	case <-rootCtx.Done():
		log.Info("shutdown requested")
	case err := <-serveErrCh:
		if err != nil {
			log.Error("http serve failed", "err", err)
		}
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := httpSrv.Shutdown(shutdownCtx); err != nil {
		log.Warn("http shutdown incomplete", "err", err)
	} else {
		log.Info("http stopped")
	}
	return nil
}
