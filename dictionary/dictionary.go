package dictionary

import (
	"sort"
	"unicode/utf8"

	"github.com/bits-and-blooms/bloom/v3"
)

// falsePositiveRate bounds how often the filter lets a miss through to the map.
const falsePositiveRate = 0.01

// Dictionary is an immutable set of known words.
// It is safe for concurrent reads once constructed.
type Dictionary struct {
	words  map[string]struct{}
	filter *bloom.BloomFilter
	maxLen int
}

// New creates a dictionary holding the given words. Empty strings are ignored.
func New(words ...string) *Dictionary {
	set := make(map[string]struct{}, len(words))
	for _, w := range words {
		if w != "" {
			set[w] = struct{}{}
		}
	}
	return fromSet(set)
}

func fromSet(set map[string]struct{}) *Dictionary {
	n := uint(len(set))
	if n == 0 {
		n = 1000
	}
	d := &Dictionary{
		words:  set,
		filter: bloom.NewWithEstimates(n, falsePositiveRate),
	}
	for w := range set {
		d.filter.AddString(w)
		if l := utf8.RuneCountInString(w); l > d.maxLen {
			d.maxLen = l
		}
	}
	return d
}

// Contains checks if a word exists in the dictionary. Matching is exact:
// no case folding or normalization is applied.
func (d *Dictionary) Contains(word string) bool {
	if d == nil || len(d.words) == 0 {
		return false
	}
	if !d.filter.TestString(word) {
		return false
	}
	_, ok := d.words[word]
	return ok
}

// Len returns the number of distinct words.
func (d *Dictionary) Len() int {
	if d == nil {
		return 0
	}
	return len(d.words)
}

// MaxLen returns the length, in characters, of the longest word.
func (d *Dictionary) MaxLen() int {
	if d == nil {
		return 0
	}
	return d.maxLen
}

// Words returns the words in sorted order. The slice is a copy.
func (d *Dictionary) Words() []string {
	if d == nil {
		return nil
	}
	out := make([]string, 0, len(d.words))
	for w := range d.words {
		out = append(out, w)
	}
	sort.Strings(out)
	return out
}
