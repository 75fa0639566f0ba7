// Package engine turns a Config into a ready segmenter: it opens the cache,
// loads or builds the dictionary and applies the matching parameters.
package engine

import (
	"context"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/teatak/mmseg/cache"
	"github.com/teatak/mmseg/config"
	"github.com/teatak/mmseg/dictionary"
	"github.com/teatak/mmseg/segmenter"
	"github.com/teatak/mmseg/util"
)

// Build parses the configured dictionary sources, ignoring any cache.
func Build(cfg config.DictionaryConfig) (*dictionary.Dictionary, error) {
	format, err := dictionary.ParseFormat(cfg.Format)
	if err != nil {
		return nil, err
	}
	b := dictionary.NewBuilder()
	if err := b.Load(cfg.Source, format); err != nil {
		return nil, err
	}
	return b.Build(), nil
}

// LoadDictionary returns the cached dictionary or builds and caches it.
func LoadDictionary(ctx context.Context, cfg *config.Config) (*dictionary.Dictionary, error) {
	store, err := cache.Open(cfg.Cache.Backend, cfg.Cache.Path)
	if err != nil {
		return nil, err
	}
	defer store.Close()

	return cache.LoadOrBuild(ctx, store, func() (*dictionary.Dictionary, error) {
		return Build(cfg.Dictionary)
	})
}

// Load builds a segmenter from cfg.
func Load(ctx context.Context, cfg *config.Config) (*segmenter.Segmenter, error) {
	start := time.Now()
	log := util.Logger()

	dict, err := LoadDictionary(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("load dictionary: %w", err)
	}

	seg := New(dict, cfg.Segmenter)

	log.WithFields(logrus.Fields{
		"words":        dict.Len(),
		"max_word_len": seg.MaxWordLen,
		"elapsed":      time.Since(start).Round(time.Millisecond),
	}).Info("segmenter ready")
	return seg, nil
}

// New wraps dict in a segmenter configured by cfg. Entries longer than the
// configured ceiling are reported but kept; they can never be matched.
func New(dict *dictionary.Dictionary, cfg config.SegmenterConfig) *segmenter.Segmenter {
	seg := segmenter.NewSegmenter(dict,
		segmenter.WithMaxWordLen(cfg.MaxWordLen),
		segmenter.WithSeparator(cfg.Separator),
	)
	if seg.MaxWordLen <= 0 {
		seg.MaxWordLen = segmenter.DefaultMaxWordLen
	}

	if dict.MaxLen() > seg.MaxWordLen {
		util.Logger().WithFields(logrus.Fields{
			"longest_entry": dict.MaxLen(),
			"max_word_len":  seg.MaxWordLen,
		}).Warn("dictionary has entries longer than the match ceiling; they will not be matched")
	}
	return seg
}
