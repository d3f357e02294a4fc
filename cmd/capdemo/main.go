package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/danmuck/capkit/internal/demo"
	"github.com/danmuck/capkit/internal/logging"
	"github.com/danmuck/capkit/internal/observability"
	"github.com/rs/zerolog/log"
)

func main() {
	logging.ConfigureRuntime()
	if err := run(os.Args[1:], os.Stdout); err != nil {
		fmt.Fprintf(os.Stderr, "capdemo: %v\n", err)
		os.Exit(1)
	}
}

func run(args []string, stdout io.Writer) error {
	fs := flag.NewFlagSet("capdemo", flag.ContinueOnError)
	fs.SetOutput(stdout)
	configPath := fs.String("config", "", "path to a capdemo TOML config (defaults built in)")
	level := fs.String("log-level", "", "override log_level from the config")
	serve := fs.Bool("serve", false, "keep serving /healthz, /status and /metrics after the run")
	addr := fs.String("addr", "", "listen address for -serve (defaults to metrics_addr or :9464)")
	if err := fs.Parse(args); err != nil {
		return err
	}

	cfg, err := loadOptions(*configPath, *level, *addr)
	if err != nil {
		return err
	}
	logging.SetLevel(resolveLevel(*level, cfg.LogLevel))
	logger := observability.InitLogger(cfg.Name)

	report, runErr := demo.Run(stdout, cfg)
	if !*serve {
		return runErr
	}
	if runErr != nil {
		logger.Warn().Err(runErr).Msg("scenarios reported errors")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	srv := &http.Server{
		Addr:              cfg.MetricsAddr,
		Handler:           observability.NewRouter(cfg.Name, logger, func() any { return report }),
		ReadHeaderTimeout: 5 * time.Second,
	}
	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
	}()

	log.Info().Str("addr", srv.Addr).Msg("serving inspection routes")
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("serve %s: %w", srv.Addr, err)
	}
	return nil
}
