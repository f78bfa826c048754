package logger

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/charmbracelet/log"
)

// Logger wraps charm/log for structured logging
type Logger struct {
	*log.Logger
}

// New creates a new logger with the given output
func New(w io.Writer) *Logger {
	return NewWithLevel(w, log.InfoLevel)
}

// NewWithLevel creates a logger with a specific level
func NewWithLevel(w io.Writer, level log.Level) *Logger {
	l := log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		TimeFormat:      time.DateTime,
		Level:           level,
	})
	return &Logger{Logger: l}
}

// ParseLevel maps a config value (debug, info, warn, error) to a level.
func ParseLevel(s string) (log.Level, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "" {
		return log.InfoLevel, nil
	}
	lvl, err := log.ParseLevel(s)
	if err != nil {
		return log.InfoLevel, fmt.Errorf("invalid log level %q", s)
	}
	return lvl, nil
}

// Discard returns a logger that discards all output
func Discard() *Logger {
	return New(io.Discard)
}

// BuildStarted logs the start of a build
func (l *Logger) BuildStarted(records int, engine, outDir string) {
	l.Info("build started",
		"records", records,
		"engine", engine,
		"output_dir", outDir)
}

// ArticleBuilt logs a written article page
func (l *Logger) ArticleBuilt(slug, path string) {
	l.Info("article built",
		"slug", slug,
		"path", path)
}

// ArticleSkipped logs an article left untouched
func (l *Logger) ArticleSkipped(slug, reason string) {
	l.Debug("article skipped",
		"slug", slug,
		"reason", reason)
}

// ArticleFailed logs a per-record failure
func (l *Logger) ArticleFailed(index int, slug string, err error) {
	l.Error("article failed",
		"index", index,
		"slug", slug,
		"error", err)
}

// BuildCompleted logs the build summary
func (l *Logger) BuildCompleted(built, skipped, failed int, duration time.Duration) {
	l.Info("build completed",
		"built", built,
		"skipped", skipped,
		"failed", failed,
		"duration", duration.Round(time.Millisecond))
}

// EngineFallback warns that Markdown goes through the built-in converter.
func (l *Logger) EngineFallback(engine, reason string) {
	l.Warn("using basic markdown converter",
		"engine", engine,
		"reason", reason)
}

// SitemapWritten logs a generated sitemap
func (l *Logger) SitemapWritten(path string, urls int) {
	l.Info("sitemap written",
		"path", path,
		"urls", urls)
}

// ConfigLoaded logs successful config loading
func (l *Logger) ConfigLoaded(file, articles string) {
	l.Debug("config loaded",
		"file", file,
		"articles", articles)
}
