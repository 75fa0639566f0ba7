package main

import (
	"bufio"
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/teatak/mmseg/config"
	"github.com/teatak/mmseg/engine"
	"github.com/teatak/mmseg/segmenter"
	"github.com/teatak/mmseg/util"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
		os.Exit(1)
	}

	flag.StringVar(&cfg.Dictionary.Source, "dict", cfg.Dictionary.Source, "Path to the dictionary file or directory")
	flag.StringVar(&cfg.Dictionary.Format, "format", cfg.Dictionary.Format, "Dictionary format: cedict or wordlist")
	flag.StringVar(&cfg.Cache.Backend, "cache", cfg.Cache.Backend, "Cache backend: json, badger or none")
	flag.StringVar(&cfg.Cache.Path, "cache-path", cfg.Cache.Path, "Cache file (json) or directory (badger)")
	flag.IntVar(&cfg.Segmenter.MaxWordLen, "max", cfg.Segmenter.MaxWordLen, "Longest word, in characters, tried at each position")
	flag.StringVar(&cfg.Segmenter.Separator, "sep", cfg.Segmenter.Separator, "Separator placed between segments")
	quiet := flag.Bool("q", false, "Do not print prompts")
	flag.Parse()

	if err := cfg.Validate(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	if err := util.Configure(cfg.Log.Level, cfg.Log.Format); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	if !*quiet {
		fmt.Println("Loading dictionary. This may take a while...")
	}
	seg, err := engine.Load(context.Background(), cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading dictionary: %v\n", err)
		os.Exit(1)
	}

	// If args provided (non-flag args), segment them
	if args := flag.Args(); len(args) > 0 {
		fmt.Println(seg.Segment(strings.Join(args, " ")))
		return
	}

	if !*quiet {
		fmt.Println("Finished loading. You can start segmenting now (Ctrl+D to exit):")
	}
	if err := run(os.Stdin, os.Stdout, seg, !*quiet); err != nil {
		fmt.Fprintf(os.Stderr, "Error reading input: %v\n", err)
		os.Exit(1)
	}
}

const prompt = "Enter a sentence in Simplified Chinese to segment:"

// run segments in line by line until EOF. Only the line terminator is
// removed; every other character reaches the segmenter unchanged.
func run(in io.Reader, out io.Writer, seg *segmenter.Segmenter, prompts bool) error {
	reader := bufio.NewReader(in)
	for {
		if prompts {
			fmt.Fprintln(out, prompt)
		}
		line, err := reader.ReadString('\n')
		if line == "" && err != nil {
			if err == io.EOF {
				return nil
			}
			return err
		}
		line = strings.TrimSuffix(line, "\n")
		line = strings.TrimSuffix(line, "\r")

		fmt.Fprintln(out, seg.Segment(line))
		if err != nil && err != io.EOF {
			return err
		}
	}
}
