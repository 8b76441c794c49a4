package app

import (
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/heartmarshall/geofence-console/internal/config"
)

// NewLogger builds the process logger for binary (geofence-api or
// geofence-console) and installs it as the slog default. Output goes to
// stderr so the console keeps stdout for its tables and prompts.
//
// Format "json" is for log shippers; "text" adds short source locations for
// local work. Unknown levels fall back to info.
func NewLogger(binary string, cfg config.LogConfig) *slog.Logger {
	logger := newLogger(os.Stderr, cfg).With(slog.String("app", binary))
	slog.SetDefault(logger)
	return logger
}

func newLogger(w io.Writer, cfg config.LogConfig) *slog.Logger {
	text := strings.EqualFold(cfg.Format, "text")

	opts := &slog.HandlerOptions{
		Level:     parseLevel(cfg.Level),
		AddSource: text,
	}
	if text {
		opts.ReplaceAttr = shortSource
	}

	if text {
		return slog.New(slog.NewTextHandler(w, opts))
	}
	return slog.New(slog.NewJSONHandler(w, opts))
}

// shortSource trims source paths to dir/file.go.
func shortSource(_ []string, a slog.Attr) slog.Attr {
	if a.Key != slog.SourceKey {
		return a
	}
	src, ok := a.Value.Any().(*slog.Source)
	if !ok || src == nil {
		return a
	}
	short := *src
	short.File = filepath.Join(filepath.Base(filepath.Dir(src.File)), filepath.Base(src.File))
	return slog.Any(a.Key, &short)
}

func parseLevel(s string) slog.Level {
	var level slog.Level
	if err := level.UnmarshalText([]byte(strings.TrimSpace(s))); err != nil {
		return slog.LevelInfo
	}
	return level
}
