// Package cache persists the parsed word set so that later runs can skip
// parsing the dictionary sources.
package cache

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/teatak/mmseg/dictionary"
	"github.com/teatak/mmseg/util"
)

// ErrUnknownBackend is returned by Open for unrecognized backend names.
var ErrUnknownBackend = errors.New("unknown cache backend")

// Store persists a word set.
type Store interface {
	// Load returns the cached words. ok is false when nothing usable is cached.
	Load(ctx context.Context) (words []string, ok bool, err error)
	// Save replaces the cached words.
	Save(ctx context.Context, words []string) error
	Close() error
}

// Backend names accepted by Open.
const (
	BackendJSON   = "json"
	BackendBadger = "badger"
	BackendNone   = "none"
)

// Open creates the store for backend at path.
func Open(backend, path string) (Store, error) {
	switch strings.ToLower(backend) {
	case BackendJSON:
		return NewJSONStore(path), nil
	case BackendBadger:
		return OpenBadger(path, BadgerOptions{})
	case BackendNone, "":
		return Nop{}, nil
	}
	return nil, fmt.Errorf("%w: %q", ErrUnknownBackend, backend)
}

// BuildFunc produces a dictionary from its sources.
type BuildFunc func() (*dictionary.Dictionary, error)

// LoadOrBuild returns the cached dictionary when the store has one, otherwise
// it calls build and saves the result. A failed save is logged and the built
// dictionary is still returned.
func LoadOrBuild(ctx context.Context, store Store, build BuildFunc) (*dictionary.Dictionary, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	log := util.Logger()

	words, ok, err := store.Load(ctx)
	if err != nil {
		log.WithError(err).Warn("dictionary cache unreadable, rebuilding")
	} else if ok {
		log.WithField("words", len(words)).Info("dictionary loaded from cache")
		return dictionary.New(words...), nil
	}

	dict, err := build()
	if err != nil {
		return nil, fmt.Errorf("build dictionary: %w", err)
	}

	if err := store.Save(ctx, dict.Words()); err != nil {
		log.WithError(err).Warn("failed to write dictionary cache")
	} else {
		log.WithFields(logrus.Fields{"words": dict.Len()}).Info("dictionary cache written")
	}
	return dict, nil
}

// Nop is a Store that never holds anything.
type Nop struct{}

func (Nop) Load(context.Context) ([]string, bool, error) {
	return nil, false, nil
}

func (Nop) Save(context.Context, []string) error {
	return nil
}

func (Nop) Close() error {
	return nil
}
