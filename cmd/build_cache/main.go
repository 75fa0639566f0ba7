package main

import (
	"context"
	"flag"
	"os"
	"os/signal"

	"github.com/sirupsen/logrus"

	"github.com/teatak/mmseg/cache"
	"github.com/teatak/mmseg/config"
	"github.com/teatak/mmseg/engine"
	"github.com/teatak/mmseg/util"
)

// build_cache parses the dictionary sources and rewrites the cache, so that
// later runs start without parsing.
func main() {
	log := util.Logger()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	flag.StringVar(&cfg.Dictionary.Source, "dict", cfg.Dictionary.Source, "Path to the dictionary file or directory")
	flag.StringVar(&cfg.Dictionary.Format, "format", cfg.Dictionary.Format, "Dictionary format: cedict or wordlist")
	flag.StringVar(&cfg.Cache.Backend, "cache", cfg.Cache.Backend, "Cache backend: json or badger")
	flag.StringVar(&cfg.Cache.Path, "output", cfg.Cache.Path, "Cache file (json) or directory (badger)")
	flag.Parse()

	if err := cfg.Validate(); err != nil {
		log.Fatalf("Invalid config: %v", err)
	}
	if err := util.Configure(cfg.Log.Level, cfg.Log.Format); err != nil {
		log.Fatalf("Invalid log config: %v", err)
	}
	if cfg.Cache.Backend == cache.BackendNone {
		log.Fatal("Cache backend is 'none'; nothing to build")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	dict, err := engine.Build(cfg.Dictionary)
	if err != nil {
		log.Fatalf("Failed to build dictionary: %v", err)
	}

	store, err := cache.Open(cfg.Cache.Backend, cfg.Cache.Path)
	if err != nil {
		log.Fatalf("Failed to open cache: %v", err)
	}
	defer store.Close()

	if err := store.Save(ctx, dict.Words()); err != nil {
		log.Fatalf("Failed to write cache: %v", err)
	}

	log.WithFields(logrus.Fields{
		"backend": cfg.Cache.Backend,
		"path":    cfg.Cache.Path,
		"words":   dict.Len(),
		"longest": dict.MaxLen(),
	}).Info("Dictionary cache written")
}
