package segmenter

import "strings"

const (
	// DefaultMaxWordLen is the longest candidate, in characters, tried at each position.
	// Dictionary entries longer than this are never matched.
	DefaultMaxWordLen = 4
	// DefaultSeparator is placed between segments by Segment.
	DefaultSeparator = "/"
)

// Lookup is the dictionary view the segmenter needs: exact-string membership.
type Lookup interface {
	Contains(word string) bool
}

// Segmenter performs greedy longest-match segmentation against a dictionary.
// It holds no per-call state, so one Segmenter may be shared by many
// goroutines as long as Dict is not mutated.
type Segmenter struct {
	Dict       Lookup
	MaxWordLen int
	Separator  string
}

// Option configures a Segmenter.
type Option func(*Segmenter)

// WithMaxWordLen sets the match-length ceiling. Values <= 0 mean DefaultMaxWordLen.
func WithMaxWordLen(n int) Option {
	return func(s *Segmenter) {
		s.MaxWordLen = n
	}
}

// WithSeparator sets the string Segment places between segments.
func WithSeparator(sep string) Option {
	return func(s *Segmenter) {
		s.Separator = sep
	}
}

// NewSegmenter creates a new segmenter with the given dictionary.
func NewSegmenter(dict Lookup, opts ...Option) *Segmenter {
	s := &Segmenter{
		Dict:       dict,
		MaxWordLen: DefaultMaxWordLen,
		Separator:  DefaultSeparator,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Cut splits text into dictionary words, scanning left to right.
//
// At each position the longest prefix of at most MaxWordLen characters that
// the dictionary contains is emitted and consumed. When no prefix matches,
// one character is dropped without producing a segment, so the result is
// lossy. Characters are Unicode code points; a byte that is not valid UTF-8
// counts as one character. Every segment is a substring of text.
func (s *Segmenter) Cut(text string) []string {
	result := []string{}
	if s.Dict == nil || text == "" {
		return result
	}

	maxLen := s.MaxWordLen
	if maxLen <= 0 {
		maxLen = DefaultMaxWordLen
	}

	// offsets[i] is the byte offset of the i-th character; the final entry is len(text).
	offsets := make([]int, 0, len(text)+1)
	for i := range text {
		offsets = append(offsets, i)
	}
	offsets = append(offsets, len(text))
	n := len(offsets) - 1

	pos := 0
	for pos < n {
		width := maxLen
		if rest := n - pos; rest < width {
			width = rest
		}

		matched := 0
		for l := width; l >= 1; l-- {
			if s.Dict.Contains(text[offsets[pos]:offsets[pos+l]]) {
				matched = l
				break
			}
		}

		if matched == 0 {
			pos++
			continue
		}
		result = append(result, text[offsets[pos]:offsets[pos+matched]])
		pos += matched
	}
	return result
}

// Segment cuts text and joins the segments with the configured separator.
func (s *Segmenter) Segment(text string) string {
	return Join(s.Cut(text), s.Separator)
}

// Join concatenates segments with sep between them, without leading or
// trailing separators. The separator is not escaped, so cutting the joined
// string again can give a different result.
func Join(segments []string, sep string) string {
	return strings.Join(segments, sep)
}
