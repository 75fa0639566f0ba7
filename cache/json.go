package cache

import (
	"bufio"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
)

// JSONStore keeps the word set in a JSON object mapping each word to 0.
type JSONStore struct {
	path string
}

// NewJSONStore returns a store backed by the file at path.
func NewJSONStore(path string) *JSONStore {
	return &JSONStore{path: path}
}

// Path returns the cache file location.
func (s *JSONStore) Path() string {
	return s.path
}

func (s *JSONStore) Load(ctx context.Context) ([]string, bool, error) {
	if err := ctx.Err(); err != nil {
		return nil, false, err
	}
	file, err := os.Open(s.path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("open cache %s: %w", s.path, err)
	}
	defer file.Close()

	var entries map[string]json.RawMessage
	if err := json.NewDecoder(bufio.NewReader(file)).Decode(&entries); err != nil {
		return nil, false, fmt.Errorf("decode cache %s: %w", s.path, err)
	}

	words := make([]string, 0, len(entries))
	for w := range entries {
		words = append(words, w)
	}
	return words, true, nil
}

// Save writes to a temporary file in the same directory and renames it over
// the cache, so readers never see a partial file.
func (s *JSONStore) Save(ctx context.Context, words []string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	entries := make(map[string]uint64, len(words))
	for _, w := range words {
		entries[w] = 0
	}

	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create cache dir: %w", err)
	}
	tmp, err := os.CreateTemp(dir, filepath.Base(s.path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("create cache: %w", err)
	}
	defer os.Remove(tmp.Name())

	writer := bufio.NewWriter(tmp)
	if err := json.NewEncoder(writer).Encode(entries); err != nil {
		tmp.Close()
		return fmt.Errorf("encode cache: %w", err)
	}
	if err := writer.Flush(); err != nil {
		tmp.Close()
		return fmt.Errorf("write cache: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("close cache: %w", err)
	}
	if err := os.Rename(tmp.Name(), s.path); err != nil {
		return fmt.Errorf("replace cache %s: %w", s.path, err)
	}
	return nil
}

func (s *JSONStore) Close() error {
	return nil
}
