package server

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/alecthomas/kong"

	"pixelart/config"
	"pixelart/grid"
)

type CLICmd struct {
	config.Grid

	Listen    string `help:"Address to listen on" default:"127.0.0.1:8080" env:"PIXELART_LISTEN"`
	MaxUpload int64  `help:"Maximum upload size in bytes" default:"33554432" env:"PIXELART_MAX_UPLOAD"`

	conf grid.Config `kong:"-"`
}

func (c *CLICmd) Validate(kctx *kong.Context) error {
	if c.MaxUpload < 1 {
		return fmt.Errorf("invalid max upload size: %d", c.MaxUpload)
	}

	var err error
	c.conf, err = c.Grid.Config()
	return err
}

func (c *CLICmd) Run(logger *slog.Logger) error {
	srv := &http.Server{
		Addr:              c.Listen,
		Handler:           New(logger, c.conf, c.MaxUpload),
		ReadHeaderTimeout: 10 * time.Second,
		MaxHeaderBytes:    1 << 20,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	errc := make(chan error, 1)
	go func() {
		logger.Info("listening", "addr", c.Listen)
		errc <- srv.ListenAndServe()
	}()

	select {
	case err := <-errc:
		return fmt.Errorf("server stopped: %w", err)
	case <-ctx.Done():
	}

	logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("could not shut down: %w", err)
	}
	return nil
}
