package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/teatak/mmseg/cache"
	"github.com/teatak/mmseg/dictionary"
)

// Config is the root configuration shared by the command line tools and the server.
type Config struct {
	Dictionary DictionaryConfig `yaml:"dictionary"`
	Cache      CacheConfig      `yaml:"cache"`
	Segmenter  SegmenterConfig  `yaml:"segmenter"`
	Server     ServerConfig     `yaml:"server"`
	Log        LogConfig        `yaml:"log"`
}

// DictionaryConfig locates the dictionary sources.
type DictionaryConfig struct {
	// Source is a file or a directory of files.
	Source string `yaml:"source" env:"DICT_SOURCE" env-default:"cc-cedict"`
	Format string `yaml:"format" env:"DICT_FORMAT" env-default:"cedict"`
}

// CacheConfig selects where the parsed word set is kept between runs.
type CacheConfig struct {
	Backend string `yaml:"backend" env:"CACHE_BACKEND" env-default:"json"`
	Path    string `yaml:"path"    env:"CACHE_PATH"    env-default:"cedict_map.json"`
}

// SegmenterConfig holds the matching parameters.
type SegmenterConfig struct {
	MaxWordLen int    `yaml:"max_word_len" env:"SEG_MAX_WORD_LEN" env-default:"4"`
	Separator  string `yaml:"separator"    env:"SEG_SEPARATOR"    env-default:"/"`
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Addr            string        `yaml:"addr"             env:"SERVER_ADDR"             env-default:":8080"`
	ReadTimeout     time.Duration `yaml:"read_timeout"     env:"SERVER_READ_TIMEOUT"     env-default:"10s"`
	WriteTimeout    time.Duration `yaml:"write_timeout"    env:"SERVER_WRITE_TIMEOUT"    env-default:"30s"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout" env:"SERVER_SHUTDOWN_TIMEOUT" env-default:"10s"`
	// CacheSize is the number of segmentation results kept in memory.
	CacheSize int `yaml:"cache_size" env:"SERVER_CACHE_SIZE" env-default:"1024"`
	// MaxBodyBytes limits request bodies.
	MaxBodyBytes int64 `yaml:"max_body_bytes" env:"SERVER_MAX_BODY_BYTES" env-default:"1048576"`
}

// LogConfig holds logging settings.
type LogConfig struct {
	Level  string `yaml:"level"  env:"LOG_LEVEL"  env-default:"info"`
	Format string `yaml:"format" env:"LOG_FORMAT" env-default:"text"`
}

// Validate checks cross-field constraints that tags cannot express.
func (c *Config) Validate() error {
	var errs []error

	if strings.TrimSpace(c.Dictionary.Source) == "" {
		errs = append(errs, errors.New("dictionary.source is required"))
	}
	if _, err := dictionary.ParseFormat(c.Dictionary.Format); err != nil {
		errs = append(errs, fmt.Errorf("dictionary.format: %w", err))
	}

	switch strings.ToLower(c.Cache.Backend) {
	case cache.BackendJSON, cache.BackendBadger:
		if c.Cache.Path == "" {
			errs = append(errs, fmt.Errorf("cache.path is required for backend %q", c.Cache.Backend))
		}
	case cache.BackendNone:
	default:
		errs = append(errs, fmt.Errorf("cache.backend: %w: %q", cache.ErrUnknownBackend, c.Cache.Backend))
	}

	if c.Segmenter.MaxWordLen <= 0 {
		errs = append(errs, fmt.Errorf("segmenter.max_word_len must be positive, got %d", c.Segmenter.MaxWordLen))
	}
	if c.Server.CacheSize <= 0 {
		errs = append(errs, fmt.Errorf("server.cache_size must be positive, got %d", c.Server.CacheSize))
	}
	if c.Server.MaxBodyBytes <= 0 {
		errs = append(errs, fmt.Errorf("server.max_body_bytes must be positive, got %d", c.Server.MaxBodyBytes))
	}

	switch strings.ToLower(c.Log.Format) {
	case "text", "json":
	default:
		errs = append(errs, fmt.Errorf("log.format must be text or json, got %q", c.Log.Format))
	}

	return errors.Join(errs...)
}
