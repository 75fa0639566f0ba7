package util

import (
	"fmt"
	"io"
	"os"
	"strings"
	"sync"

	"github.com/sirupsen/logrus"
)

var (
	globalLogger *logrus.Logger
	loggerOnce   sync.Once
)

func initGlobalLogger() {
	loggerOnce.Do(func() {
		if globalLogger != nil {
			return
		}
		globalLogger = logrus.New()
		globalLogger.SetLevel(logrus.InfoLevel)
		globalLogger.SetFormatter(&logrus.TextFormatter{
			FullTimestamp: true,
		})
		globalLogger.SetOutput(os.Stderr)
	})
}

// Logger returns the process-wide logger.
func Logger() *logrus.Logger {
	initGlobalLogger()
	return globalLogger
}

// SetLogger replaces the process-wide logger.
func SetLogger(logger *logrus.Logger) {
	initGlobalLogger()
	globalLogger = logger
}

// SetLogOutput redirects log output, mostly useful in tests.
func SetLogOutput(output io.Writer) {
	Logger().SetOutput(output)
}

// Configure applies a level name (debug, info, warn, ...) and a format
// ("text" or "json") to the process-wide logger.
func Configure(level, format string) error {
	lvl, err := logrus.ParseLevel(level)
	if err != nil {
		return fmt.Errorf("log level %q: %w", level, err)
	}
	logger := Logger()
	logger.SetLevel(lvl)

	switch strings.ToLower(format) {
	case "", "text":
		logger.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	case "json":
		logger.SetFormatter(&logrus.JSONFormatter{})
	default:
		return fmt.Errorf("unknown log format %q", format)
	}
	return nil
}
