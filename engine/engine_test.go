package engine

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/teatak/mmseg/config"
	"github.com/teatak/mmseg/util"
)

func TestMain(m *testing.M) {
	util.SetLogOutput(io.Discard)
	os.Exit(m.Run())
}

const cedict = `# sample
中華 中华 [Zhong1 hua2] /China/
中華人民 中华人民 [Zhong1 hua2 ren2 min2] /Chinese people/
人民 人民 [ren2 min2] /the people/
你好 你好 [ni3 hao3] /hello/
`

func testConfig(t *testing.T, backend string) *config.Config {
	t.Helper()
	dir := t.TempDir()
	src := filepath.Join(dir, "cc-cedict")
	require.NoError(t, os.Mkdir(src, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(src, "cedict_ts.u8"), []byte(cedict), 0o644))

	return &config.Config{
		Dictionary: config.DictionaryConfig{Source: src, Format: "cedict"},
		Cache:      config.CacheConfig{Backend: backend, Path: filepath.Join(dir, "cache")},
		Segmenter:  config.SegmenterConfig{MaxWordLen: 4, Separator: "/"},
	}
}

func TestLoad(t *testing.T) {
	for _, backend := range []string{"json", "badger", "none"} {
		t.Run(backend, func(t *testing.T) {
			cfg := testConfig(t, backend)

			seg, err := Load(context.Background(), cfg)
			require.NoError(t, err)
			assert.Equal(t, "中华人民", seg.Segment("中华人民共和国"))
			assert.Equal(t, "你好", seg.Segment("你好吗"))
		})
	}
}

func TestLoad_UsesCacheWhenSourceIsGone(t *testing.T) {
	for _, backend := range []string{"json", "badger"} {
		t.Run(backend, func(t *testing.T) {
			cfg := testConfig(t, backend)
			_, err := Load(context.Background(), cfg)
			require.NoError(t, err)

			require.NoError(t, os.RemoveAll(cfg.Dictionary.Source))

			seg, err := Load(context.Background(), cfg)
			require.NoError(t, err)
			assert.Equal(t, []string{"中华人民"}, seg.Cut("中华人民共和国"))
		})
	}
}

func TestLoad_MissingSource(t *testing.T) {
	cfg := testConfig(t, "none")
	cfg.Dictionary.Source = filepath.Join(t.TempDir(), "missing")

	_, err := Load(context.Background(), cfg)
	assert.Error(t, err)
}

func TestNew_KeepsCeiling(t *testing.T) {
	dict, err := Build(testConfig(t, "none").Dictionary)
	require.NoError(t, err)

	seg := New(dict, config.SegmenterConfig{MaxWordLen: 2, Separator: " "})
	assert.Equal(t, 2, seg.MaxWordLen)
	assert.Equal(t, "中华 人民", seg.Segment("中华人民"))
}
