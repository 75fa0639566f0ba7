package dictionary

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/sirupsen/logrus"

	"github.com/teatak/mmseg/util"
)

// Builder accumulates words from one or more sources. It is not safe for
// concurrent use; call Build once loading is finished.
type Builder struct {
	words map[string]struct{}
}

// NewBuilder creates an empty builder.
func NewBuilder() *Builder {
	return &Builder{words: make(map[string]struct{})}
}

// Add records a word. Empty strings are ignored.
func (b *Builder) Add(word string) {
	if word == "" {
		return
	}
	b.words[word] = struct{}{}
}

// Len returns the number of distinct words added so far.
func (b *Builder) Len() int {
	return len(b.words)
}

// LoadFile parses a single dictionary file.
func (b *Builder) LoadFile(path string, format Format) error {
	file, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("open dictionary %s: %w", path, err)
	}
	defer file.Close()

	stats, err := Parse(file, format, b.Add)
	if err != nil {
		return fmt.Errorf("parse dictionary %s: %w", path, err)
	}

	util.Logger().WithFields(logrus.Fields{
		"path":     path,
		"format":   format.String(),
		"lines":    stats.Lines,
		"words":    stats.Words,
		"comments": stats.Comments,
		"skipped":  stats.Skipped,
	}).Info("loaded dictionary file")
	return nil
}

// LoadDir parses every regular file in dir, in name order.
// Subdirectories and hidden files are ignored.
func (b *Builder) LoadDir(dir string, format Format) error {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return fmt.Errorf("read dictionary dir %s: %w", dir, err)
	}
	for _, entry := range entries {
		if entry.IsDir() || entry.Name()[0] == '.' {
			continue
		}
		if err := b.LoadFile(filepath.Join(dir, entry.Name()), format); err != nil {
			return err
		}
	}
	return nil
}

// Load parses path as a directory or a single file.
func (b *Builder) Load(path string, format Format) error {
	if util.DirExists(path) {
		return b.LoadDir(path, format)
	}
	return b.LoadFile(path, format)
}

// Build returns an immutable dictionary of the words added so far.
// The builder can keep being used; later additions do not affect the result.
func (b *Builder) Build() *Dictionary {
	set := make(map[string]struct{}, len(b.words))
	for w := range b.words {
		set[w] = struct{}{}
	}
	return fromSet(set)
}
