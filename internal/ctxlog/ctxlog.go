// Package ctxlog provides context-aware structured logging utilities.
package ctxlog

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"
)

type Config struct {
	// Level is one of debug, info, warn or error. Empty means warn.
	Level string `yaml:"level"`
	// Dir, if set, receives one JSON log file per run in addition to stderr.
	Dir string `yaml:"dir"`
}

func ParseLevel(s string) (slog.Level, error) {
	switch strings.ToLower(s) {
	case "debug":
		return slog.LevelDebug, nil
	case "info":
		return slog.LevelInfo, nil
	case "", "warn", "warning":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	default:
		return 0, fmt.Errorf("ctxlog: unknown level %q", s)
	}
}

// Setup installs a JSON logger writing to w, and to a file under config.Dir
// when set, as the default logger and stores it in the returned context.
// The returned closer releases the log file.
func Setup(ctx context.Context, name string, w io.Writer, config Config) (context.Context, io.Closer, error) {
	level, err := ParseLevel(config.Level)
	if err != nil {
		return ctx, nil, err
	}

	var closer io.Closer = nopCloser{}
	if config.Dir != "" {
		err := os.MkdirAll(config.Dir, 0755)
		if err != nil {
			return ctx, nil, fmt.Errorf("ctxlog: create log dir: %w", err)
		}

		logFile, err := os.Create(filepath.Join(config.Dir, name+"-"+time.Now().Format("2006-01-02-15-04-05.log")))
		if err != nil {
			return ctx, nil, fmt.Errorf("ctxlog: create log file: %w", err)
		}

		w = io.MultiWriter(w, logFile)
		closer = logFile
	}

	logger := slog.New(slog.NewJSONHandler(w, &slog.HandlerOptions{Level: level})).With("app", name)
	slog.SetDefault(logger)

	return Store(ctx, logger), closer, nil
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }

type ctxKey struct{}

var key ctxKey

func Store(ctx context.Context, log *slog.Logger) context.Context {
	return context.WithValue(ctx, key, log)
}

func Get(ctx context.Context) *slog.Logger {
	log, ok := ctx.Value(key).(*slog.Logger)
	if !ok {
		return slog.Default()
	}
	return log
}

func Close(ctx context.Context, name string, closer io.Closer) error {
	logger := Get(ctx)
	err := closer.Close()
	if err != nil {
		logger.Error("failed to close", "closer", name, "error", err)
		return err
	}
	return nil
}

func With(ctx context.Context, kv ...any) context.Context {
	return Store(ctx, Get(ctx).With(kv...))
}
