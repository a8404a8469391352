package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/use-agent/talentclip/api"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the form API for the popup",
	Long: `Open the form against the current browser tab and serve it over HTTP.

Examples:
  talentclip serve
  TALENTCLIP_CDP_URL=http://127.0.0.1:9222 talentclip serve
  talentclip serve --html profile.html --url https://www.linkedin.com/in/someone`,
	RunE: runServe,
}

func init() {
	addPageFlags(serveCmd)
}

func runServe(cmd *cobra.Command, args []string) error {
	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	slog.Info("talentclip starting",
		"host", cfg.Server.Host,
		"port", cfg.Server.Port,
		"mode", cfg.Server.Mode,
		"store", cfg.Store.Backend,
		"endpoint", cfg.Submit.Endpoint,
	)

	// ── 1. Wire browser, store and controller ───────────────────────
	a, err := newApp(ctx, cmd, cfg)
	if err != nil {
		return fmt.Errorf("starting: %w", err)
	}
	defer a.Close()

	// ── 2. Open the form (restore defaults + first extraction) ──────
	if err := a.ctl.Open(ctx); err != nil {
		slog.Warn("initial extraction incomplete", "error", err)
	}

	// ── 3. Setup router ─────────────────────────────────────────────
	router := api.NewRouter(ctx, a.ctl, cfg, time.Now())

	// ── 4. Start HTTP server ────────────────────────────────────────
	addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	srv := &http.Server{
		Addr:    addr,
		Handler: router,
		BaseContext: func(_ net.Listener) context.Context {
			return ctx
		},
	}

	errCh := make(chan error, 1)
	go func() {
		slog.Info("HTTP server listening", "addr", addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	// ── 5. Graceful shutdown ────────────────────────────────────────
	select {
	case <-ctx.Done():
		slog.Info("shutdown signal received")
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("server error: %w", err)
		}
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		slog.Error("HTTP server forced shutdown", "error", err)
	} else {
		slog.Info("HTTP server drained gracefully")
	}

	slog.Info("talentclip stopped")
	return nil
}
