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

	"github.com/jmattson/quell"
	"github.com/jmattson/quell/config"
	quellhttp "github.com/jmattson/quell/http"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP server",
	Long:  `Start the quell HTTP server serving the configured mounts.`,
	RunE:  runServe,
}

func init() {
	serveCmd.Flags().Int("port", 8080, "HTTP server port")
	serveCmd.Flags().Int("max-age", 60, "Cache-Control max-age in seconds, -1 disables the header")
	serveCmd.Flags().Bool("autorefresh", false, "re-check the filesystem on every request (development only)")
	serveCmd.Flags().Bool("etags", false, "compute content-hash ETags and honor If-None-Match")

	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, args []string) error {
	configFiles, _ := cmd.Flags().GetStringSlice("config")

	cfg, err := config.Load(configFiles, cmd.Flags())
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	setupLogging(cfg)

	mounts := make([]quell.Mount, 0, len(cfg.Static.Mounts))
	for _, m := range cfg.Static.Mounts {
		mounts = append(mounts, quell.Mount{Root: m.Root, Prefix: m.Prefix})
	}

	handlerConfig := quellhttp.HandlerConfig{
		Static: quell.Options{
			MaxAge:          cfg.Static.MaxAge,
			AllowAllOrigins: cfg.Static.AllowAllOrigins,
			Charset:         cfg.Static.Charset,
			MediaTypes:      cfg.Static.MediaTypes,
			HashedETags:     cfg.Static.HashedETags,
			Autorefresh:     cfg.Static.Autorefresh,
			Logger:          slog.Default(),
		},
		Mounts: mounts,
		CORS:   cfg.CORS,
	}

	handler, err := quellhttp.NewHandler(&handlerConfig)
	if err != nil {
		return fmt.Errorf("create handler: %w", err)
	}

	if cfg.Static.Autorefresh {
		slog.Warn("autorefresh mode is enabled; not intended for production use")
	}

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

	slog.Info("starting server", "addr", addr, "mounts", len(mounts), "autorefresh", cfg.Static.Autorefresh)
	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return fmt.Errorf("server error: %w", err)
	}

	return nil
}
