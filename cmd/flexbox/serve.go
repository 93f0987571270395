// Package main starts the flexbox server.
package main

import (
	"context"
	"errors"
	"net"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/frudas24/flexbox/internal/app"
	"github.com/frudas24/flexbox/internal/config"
	"github.com/frudas24/flexbox/internal/observability"
	"github.com/frudas24/flexbox/internal/session"
)

const shutdownTimeout = 5 * time.Second

// newServeCmd runs the HTTP server until interrupted.
func newServeCmd(v *viper.Viper) *cobra.Command {
	var (
		debug     bool
		staticDir string
	)
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the board, its control websocket and the web client",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := config.Load(v)
			if err != nil {
				return err
			}
			if debug {
				cfg.Logger.Level = "debug"
			}
			observability.InitializeLogger(cfg.Logger)
			defer observability.Sync()
			return run(cmd.Context(), cfg, staticDir)
		},
	}
	cmd.Flags().BoolVar(&debug, "debug", false, "Enable verbose debug logging")
	cmd.Flags().StringVar(&staticDir, "static-dir", filepath.Join("internal", "web", "static"),
		"serve client files from this directory when it exists")
	return cmd
}

// run wires the application and blocks until shutdown.
func run(ctx context.Context, cfg config.Config, staticDir string) error {
	log := observability.GetLogger()
	logStartup(log, cfg)

	sess := session.New(cfg.UIPassword)
	appInstance, err := app.New(cfg, sess, nil, log)
	if err != nil {
		return err
	}
	if err := appInstance.Start(); err != nil {
		return err
	}
	defer func() {
		if err := appInstance.Stop(); err != nil {
			log.Warn("shutdown", zap.Error(err))
		}
	}()

	mux := http.NewServeMux()
	appInstance.RegisterRoutes(mux, staticDir)
	server := &http.Server{
		Addr:              cfg.ListenAddr,
		Handler:           mux,
		ReadHeaderTimeout: 10 * time.Second,
	}

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		if err := server.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		log.Info("shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		return server.Shutdown(shutdownCtx)
	})
	return g.Wait()
}

// logStartup reports configuration checks and connection info.
func logStartup(log *zap.Logger, cfg config.Config) {
	log.Info("flexbox starting", zap.String("version", Version))
	envPath := filepath.Join(cfg.DataDir, ".env")
	if fileExists(envPath) {
		log.Info("env check: ok", zap.String("path", envPath))
	} else {
		log.Info("env check: missing", zap.String("path", envPath))
	}
	log.Info("layout", zap.String("path", cfg.LayoutPath))
	logListenStatus(log, cfg.ListenAddr)
}

// logListenStatus reports the listen address and a local URL helper.
func logListenStatus(log *zap.Logger, addr string) {
	log.Info("listen addr", zap.String("addr", addr))
	host, port, err := net.SplitHostPort(addr)
	if err != nil {
		return
	}
	if host == "" || host == "0.0.0.0" || host == "::" {
		host = "localhost"
	}
	log.Info("local url", zap.String("url", "http://"+net.JoinHostPort(host, port)))
}

// fileExists reports whether a path exists and is a file.
func fileExists(path string) bool {
	info, err := os.Stat(path)
	if err != nil {
		return false
	}
	return !info.IsDir()
}
