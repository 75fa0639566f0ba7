package cache

import (
	"context"
	"errors"
	"fmt"
	"os"
	"sync"

	"github.com/dgraph-io/badger/v4"

	"github.com/teatak/mmseg/util"
)

var (
	wordPrefix  = []byte("word:")
	completeKey = []byte("meta:complete")
)

// BadgerOptions controls how the badger database is opened.
type BadgerOptions struct {
	// InMemory keeps everything in memory; path is ignored.
	InMemory bool
	// SyncWrites fsyncs every write.
	SyncWrites bool
	// Logger receives badger's internal logs. Defaults to the process logger.
	Logger badger.Logger
}

// BadgerStore keeps each word as a key in a badger database. A completion
// marker is written after the words, so an interrupted Save reads as a miss.
type BadgerStore struct {
	path string
	mu   sync.Mutex
	db   *badger.DB
}

// OpenBadger creates or opens the database at path.
func OpenBadger(path string, opts BadgerOptions) (*BadgerStore, error) {
	if path == "" && !opts.InMemory {
		return nil, errors.New("badger cache path required")
	}

	badgerOpts := badger.DefaultOptions(path)
	if opts.InMemory {
		badgerOpts = badger.DefaultOptions("").WithInMemory(true)
	}
	badgerOpts = badgerOpts.WithSyncWrites(opts.SyncWrites)

	if opts.Logger != nil {
		badgerOpts = badgerOpts.WithLogger(opts.Logger)
	} else {
		badgerOpts = badgerOpts.WithLogger(util.Logger().WithField("component", "badger"))
	}

	if !opts.InMemory {
		if err := os.MkdirAll(path, 0o755); err != nil {
			return nil, fmt.Errorf("create cache dir: %w", err)
		}
	}

	db, err := badger.Open(badgerOpts)
	if err != nil {
		return nil, fmt.Errorf("open badger cache %s: %w", path, err)
	}
	return &BadgerStore{path: path, db: db}, nil
}

// Path returns the database directory.
func (s *BadgerStore) Path() string {
	return s.path
}

func (s *BadgerStore) handle() (*badger.DB, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.db == nil {
		return nil, errors.New("badger cache not opened")
	}
	return s.db, nil
}

func (s *BadgerStore) Load(ctx context.Context) ([]string, bool, error) {
	db, err := s.handle()
	if err != nil {
		return nil, false, err
	}

	var words []string
	complete := false
	err = db.View(func(txn *badger.Txn) error {
		if _, err := txn.Get(completeKey); err != nil {
			if errors.Is(err, badger.ErrKeyNotFound) {
				return nil
			}
			return err
		}
		complete = true

		opts := badger.DefaultIteratorOptions
		opts.Prefix = wordPrefix
		opts.PrefetchValues = false
		it := txn.NewIterator(opts)
		defer it.Close()

		for it.Rewind(); it.Valid(); it.Next() {
			if err := ctx.Err(); err != nil {
				return err
			}
			key := it.Item().Key()
			words = append(words, string(key[len(wordPrefix):]))
		}
		return nil
	})
	if err != nil {
		return nil, false, err
	}
	if !complete {
		return nil, false, nil
	}
	return words, true, nil
}

func (s *BadgerStore) Save(ctx context.Context, words []string) error {
	db, err := s.handle()
	if err != nil {
		return err
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	if err := db.Update(func(txn *badger.Txn) error {
		return txn.Delete(completeKey)
	}); err != nil {
		return fmt.Errorf("clear cache marker: %w", err)
	}
	if err := s.dropWords(ctx, db); err != nil {
		return fmt.Errorf("drop cached words: %w", err)
	}

	wb := db.NewWriteBatch()
	defer wb.Cancel()
	for _, w := range words {
		if err := ctx.Err(); err != nil {
			return err
		}
		key := make([]byte, 0, len(wordPrefix)+len(w))
		key = append(append(key, wordPrefix...), w...)
		if err := wb.Set(key, nil); err != nil {
			return fmt.Errorf("write cached word: %w", err)
		}
	}
	if err := wb.Flush(); err != nil {
		return fmt.Errorf("flush cached words: %w", err)
	}

	return db.Update(func(txn *badger.Txn) error {
		return txn.Set(completeKey, []byte{1})
	})
}

func (s *BadgerStore) dropWords(ctx context.Context, db *badger.DB) error {
	var keys [][]byte
	err := db.View(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.Prefix = wordPrefix
		opts.PrefetchValues = false
		it := txn.NewIterator(opts)
		defer it.Close()
		for it.Rewind(); it.Valid(); it.Next() {
			keys = append(keys, it.Item().KeyCopy(nil))
		}
		return nil
	})
	if err != nil || len(keys) == 0 {
		return err
	}

	wb := db.NewWriteBatch()
	defer wb.Cancel()
	for _, key := range keys {
		if err := ctx.Err(); err != nil {
			return err
		}
		if err := wb.Delete(key); err != nil {
			return err
		}
	}
	return wb.Flush()
}

// Close closes the database. Closing twice is a no-op.
func (s *BadgerStore) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.db == nil {
		return nil
	}
	err := s.db.Close()
	s.db = nil
	return err
}
