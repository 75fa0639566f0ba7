package dictionary

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"
)

// Format identifies a dictionary source layout.
type Format int

const (
	// FormatCEDICT is the CC-CEDICT layout: "Traditional Simplified [pinyin] /gloss/".
	FormatCEDICT Format = iota
	// FormatWordList is one word per line, optionally followed by a frequency that is ignored.
	FormatWordList
)

// ErrUnknownFormat is returned by ParseFormat for unrecognized names.
var ErrUnknownFormat = errors.New("unknown dictionary format")

// ParseFormat maps a configuration name to a Format.
func ParseFormat(name string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "cedict", "cc-cedict":
		return FormatCEDICT, nil
	case "wordlist", "words":
		return FormatWordList, nil
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownFormat, name)
}

func (f Format) String() string {
	switch f {
	case FormatCEDICT:
		return "cedict"
	case FormatWordList:
		return "wordlist"
	}
	return "unknown"
}

// ParseStats reports what a parse run saw.
type ParseStats struct {
	Lines    int
	Words    int
	Comments int
	Skipped  int
}

// Parse reads r in the given format and calls add for every word found.
func Parse(r io.Reader, format Format, add func(word string)) (ParseStats, error) {
	switch format {
	case FormatCEDICT:
		return ParseCEDICT(r, add)
	case FormatWordList:
		return ParseWordList(r, add)
	}
	return ParseStats{}, fmt.Errorf("%w: %d", ErrUnknownFormat, int(format))
}

// ParseCEDICT extracts the simplified headword, the second space-separated
// field, from each line. Lines starting with '#' are comments. Lines without
// a usable second field are counted in Skipped.
func ParseCEDICT(r io.Reader, add func(word string)) (ParseStats, error) {
	var stats ParseStats
	scanner := newScanner(r)
	for scanner.Scan() {
		line := scanner.Text()
		stats.Lines++
		if strings.HasPrefix(line, "#") {
			stats.Comments++
			continue
		}
		fields := strings.SplitN(line, " ", 3)
		if len(fields) < 2 || fields[1] == "" {
			stats.Skipped++
			continue
		}
		add(fields[1])
		stats.Words++
	}
	return stats, scanner.Err()
}

// ParseWordList reads "word [freq]" lines. Blank lines are skipped.
func ParseWordList(r io.Reader, add func(word string)) (ParseStats, error) {
	var stats ParseStats
	scanner := newScanner(r)
	for scanner.Scan() {
		stats.Lines++
		parts := strings.Fields(scanner.Text())
		if len(parts) == 0 {
			stats.Skipped++
			continue
		}
		add(parts[0])
		stats.Words++
	}
	return stats, scanner.Err()
}

func newScanner(r io.Reader) *bufio.Scanner {
	scanner := bufio.NewScanner(r)
	buf := make([]byte, 1024*1024)
	scanner.Buffer(buf, 1024*1024)
	return scanner
}
