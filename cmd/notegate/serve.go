package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"notegate"
	"notegate/config"
	notegatehttp "notegate/http"
	"notegate/stats"
	"notegate/storage"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP server",
	Long:  `Start the Notegate HTTP server.`,
	RunE:  runServe,
}

func init() {
	serveCmd.Flags().Int("port", 5000, "HTTP server port")
	serveCmd.Flags().String("endpoint", "", "S3 endpoint URL (env: NOTEGATE_S3_ENDPOINT)")
	serveCmd.Flags().String("bucket", "", "S3 bucket name (env: NOTEGATE_S3_BUCKET)")
	serveCmd.Flags().String("token", "", "bearer token; empty disables auth (env: NOTEGATE_AUTH_TOKEN)")

	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(configFiles(cmd), cmd.Flags())
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	setupLogging(cfg.Log)

	if cfg.Auth.Token == "" {
		slog.Warn("no auth token configured, all endpoints are public")
	}

	store, err := storage.NewClient(storage.Config{
		Endpoint:    cfg.S3.Endpoint,
		Region:      cfg.S3.Region,
		AccessKey:   cfg.S3.AccessKey,
		SecretKey:   cfg.S3.SecretKey,
		Bucket:      cfg.S3.Bucket,
		CallTimeout: time.Duration(cfg.S3.Timeout) * time.Second,
	})
	if err != nil {
		return fmt.Errorf("create storage client: %w", err)
	}

	service := notegate.NewService(store)
	tracker := stats.NewTracker()

	handlerConfig := notegatehttp.HandlerConfig{
		Token:    cfg.Auth.Token,
		Bucket:   cfg.S3.Bucket,
		Endpoint: cfg.S3.Endpoint,
		CORS:     cfg.CORS,
	}

	handler := notegatehttp.NewHandler(&handlerConfig, service, tracker)

	addr := fmt.Sprintf(":%d", cfg.Server.Port)
	server := &http.Server{
		Addr:         addr,
		Handler:      handler.Router(),
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	go func() {
		sigCh := make(chan os.Signal, 1)
		signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
		<-sigCh

		slog.Info("shutting down server...")
		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer shutdownCancel()

		if err := server.Shutdown(shutdownCtx); err != nil {
			slog.Error("server shutdown error", "err", err)
		}
	}()

	slog.Info("starting server", "addr", addr, "bucket", cfg.S3.Bucket, "endpoint", cfg.S3.Endpoint)
	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return fmt.Errorf("server error: %w", err)
	}

	return nil
}
