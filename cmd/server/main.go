package main

import (
	"context"
	"errors"
	"flag"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/teatak/mmseg/config"
	"github.com/teatak/mmseg/engine"
	"github.com/teatak/mmseg/segmenter"
	"github.com/teatak/mmseg/server"
	"github.com/teatak/mmseg/util"
)

func main() {
	log := util.Logger()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	flag.StringVar(&cfg.Server.Addr, "addr", cfg.Server.Addr, "Listen address")
	flag.Parse()

	if err := util.Configure(cfg.Log.Level, cfg.Log.Format); err != nil {
		log.Fatalf("Invalid log config: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	srv, err := server.New(ctx, func(ctx context.Context) (*segmenter.Segmenter, error) {
		return engine.Load(ctx, cfg)
	}, cfg.Server)
	if err != nil {
		log.Fatalf("Initial load failed: %v", err)
	}

	httpServer := srv.HTTPServer()
	errCh := make(chan error, 1)
	go func() {
		log.Infof("Server started on %s", cfg.Server.Addr)
		errCh <- httpServer.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("Server failed: %v", err)
		}
	case <-ctx.Done():
		log.Info("Shutting down...")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
		defer cancel()
		if err := httpServer.Shutdown(shutdownCtx); err != nil {
			log.Errorf("Shutdown failed: %v", err)
		}
	}
}
