package main

import (
	"bufio"
	"context"
	"flag"
	"fmt"
	"io"
	"os"

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

	inputPath := flag.String("input", "data/text.txt", "Input file path")
	outputPath := flag.String("output", "data/segmented.txt", "Output file path")
	flag.StringVar(&cfg.Dictionary.Source, "dict", cfg.Dictionary.Source, "Path to the dictionary file or directory")
	flag.StringVar(&cfg.Dictionary.Format, "format", cfg.Dictionary.Format, "Dictionary format: cedict or wordlist")
	flag.StringVar(&cfg.Segmenter.Separator, "sep", cfg.Segmenter.Separator, "Separator placed between segments")
	flag.Parse()

	log := util.Logger()
	if err := cfg.Validate(); err != nil {
		log.Fatalf("Invalid config: %v", err)
	}
	if err := util.Configure(cfg.Log.Level, cfg.Log.Format); err != nil {
		log.Fatalf("Invalid log config: %v", err)
	}

	seg, err := engine.Load(context.Background(), cfg)
	if err != nil {
		log.Fatalf("Failed to load dictionary: %v", err)
	}

	inFile, err := os.Open(*inputPath)
	if err != nil {
		log.Fatalf("Failed to open input file: %v", err)
	}
	defer inFile.Close()

	outFile, err := os.Create(*outputPath)
	if err != nil {
		log.Fatalf("Failed to create output file: %v", err)
	}
	defer outFile.Close()

	count, err := segmentLines(inFile, outFile, seg)
	if err != nil {
		log.Fatalf("Failed after %d lines: %v", count, err)
	}
	log.Infof("Done. Processed %d lines. Saved to %s", count, *outputPath)
}

// segmentLines writes one segmented line to out for every line of in.
func segmentLines(in io.Reader, out io.Writer, seg *segmenter.Segmenter) (int, error) {
	writer := bufio.NewWriter(out)
	scanner := bufio.NewScanner(in)
	buf := make([]byte, 1024*1024)
	scanner.Buffer(buf, 1024*1024)

	count := 0
	for scanner.Scan() {
		if _, err := fmt.Fprintln(writer, seg.Segment(scanner.Text())); err != nil {
			return count, err
		}
		count++
		if count%1000 == 0 {
			util.Logger().Debugf("Processed %d lines...", count)
		}
	}
	if err := scanner.Err(); err != nil {
		return count, err
	}
	return count, writer.Flush()
}
