// Package logging builds the process logger: a console writer for the
// operator plus an optional append-only error file, so failed addresses can
// be reviewed after a run.
package logging

import (
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/rs/zerolog"
)

type Config struct {
	Level string
	// ErrorFile receives error-level entries in addition to the console.
	// Empty disables the file sink.
	ErrorFile string
}

const consoleTimeFormat = "2006-01-02 15:04:05"

// New returns the configured logger and a closer for the file sink. The
// logger is passed by value into components; there is no package global.
func New(cfg Config) (zerolog.Logger, func(), error) {
	console := zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: consoleTimeFormat}
	writers := []io.Writer{console}
	closer := func() {}

	if path := strings.TrimSpace(cfg.ErrorFile); path != "" {
		if dir := filepath.Dir(path); dir != "." {
			if err := os.MkdirAll(dir, 0o755); err != nil {
				return zerolog.Nop(), nil, err
			}
		}
		f, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
		if err != nil {
			return zerolog.Nop(), nil, err
		}
		writers = append(writers, levelWriter{w: f, min: zerolog.ErrorLevel})
		closer = func() { _ = f.Close() }
	}

	log := zerolog.New(zerolog.MultiLevelWriter(writers...)).
		Level(parseLevel(cfg.Level)).
		With().Timestamp().Logger()
	return log, closer, nil
}

// levelWriter passes only entries at or above min through to w.
type levelWriter struct {
	w   io.Writer
	min zerolog.Level
}

func (lw levelWriter) Write(p []byte) (int, error) {
	// Non-leveled writes never reach the error file.
	return len(p), nil
}

func (lw levelWriter) WriteLevel(level zerolog.Level, p []byte) (int, error) {
	if level < lw.min {
		return len(p), nil
	}
	return lw.w.Write(p)
}

func parseLevel(s string) zerolog.Level {
	l, err := zerolog.ParseLevel(strings.ToLower(strings.TrimSpace(s)))
	if err != nil || l == zerolog.NoLevel {
		return zerolog.InfoLevel
	}
	return l
}
