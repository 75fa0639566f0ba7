package main

import (
	"bytes"
	"strings"
	"testing"

	"github.com/teatak/mmseg/dictionary"
	"github.com/teatak/mmseg/segmenter"
)

func TestRun(t *testing.T) {
	seg := segmenter.NewSegmenter(dictionary.New("中华", "中华人民", "人民", "你好"))

	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{"one line per result", "中华人民共和国\n你好吗\n", "中华人民\n你好\n"},
		{"crlf is stripped", "你好人民\r\n", "你好/人民\n"},
		{"empty line prints empty result", "\n你好\n", "\n你好\n"},
		{"last line without newline", "你好", "你好\n"},
		{"inner spaces are kept as characters", " 你好 \n", "你好\n"},
		{"no input", "", ""},
	}

	for _, tt := range tests {
		var out bytes.Buffer
		if err := run(strings.NewReader(tt.input), &out, seg, false); err != nil {
			t.Fatalf("%s: run() error = %v", tt.name, err)
		}
		if out.String() != tt.expected {
			t.Errorf("%s: run(%q) wrote %q, want %q", tt.name, tt.input, out.String(), tt.expected)
		}
	}
}

func TestRunPrompts(t *testing.T) {
	seg := segmenter.NewSegmenter(dictionary.New("你好"))

	var out bytes.Buffer
	if err := run(strings.NewReader("你好\n"), &out, seg, true); err != nil {
		t.Fatal(err)
	}
	want := prompt + "\n你好\n" + prompt + "\n"
	if out.String() != want {
		t.Errorf("run() wrote %q, want %q", out.String(), want)
	}
}
