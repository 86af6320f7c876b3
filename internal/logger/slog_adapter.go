package logger

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"gopkg.in/natefinch/lumberjack.v2"
)

// SlogLogger implements Logger on top of log/slog
type SlogLogger struct {
	logger  *slog.Logger
	writers []io.WriteCloser
}

// NewSlogLogger creates a logger writing to stderr (or the configured
// writer) and optionally to a rotating log file.
func NewSlogLogger(config Config) (*SlogLogger, error) {
	var writers []io.Writer
	var closeableWriters []io.WriteCloser

	if config.Writer != nil {
		writers = append(writers, config.Writer)
	} else {
		writers = append(writers, os.Stderr)
	}

	if config.File.Enabled {
		fileWriter, err := createFileWriter(config.File)
		if err != nil {
			return nil, fmt.Errorf("failed to create file writer: %w", err)
		}
		writers = append(writers, fileWriter)
		closeableWriters = append(closeableWriters, fileWriter)
	}

	multiWriter := io.MultiWriter(writers...)

	opts := &slog.HandlerOptions{Level: convertLevel(config.Level)}
	var handler slog.Handler
	switch config.Format {
	case FormatJSON:
		handler = slog.NewJSONHandler(multiWriter, opts)
	default:
		handler = slog.NewTextHandler(multiWriter, opts)
	}

	return &SlogLogger{
		logger:  slog.New(handler),
		writers: closeableWriters,
	}, nil
}

// createFileWriter builds a lumberjack writer for rotation
func createFileWriter(config FileConfig) (io.WriteCloser, error) {
	if config.Path == "" {
		return nil, fmt.Errorf("log file path cannot be empty")
	}

	if err := os.MkdirAll(filepath.Dir(config.Path), 0755); err != nil {
		return nil, fmt.Errorf("failed to create log directory: %w", err)
	}

	return &lumberjack.Logger{
		Filename:   config.Path,
		MaxSize:    config.MaxSizeMB,
		MaxAge:     config.MaxAgeDays,
		MaxBackups: config.MaxBackups,
		Compress:   config.Compress,
	}, nil
}

func convertLevel(level Level) slog.Level {
	switch level {
	case LevelDebug:
		return slog.LevelDebug
	case LevelWarn:
		return slog.LevelWarn
	case LevelError:
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

func (l *SlogLogger) Debug(msg string, args ...any) { l.logger.Debug(msg, args...) }
func (l *SlogLogger) Info(msg string, args ...any)  { l.logger.Info(msg, args...) }
func (l *SlogLogger) Warn(msg string, args ...any)  { l.logger.Warn(msg, args...) }
func (l *SlogLogger) Error(msg string, args ...any) { l.logger.Error(msg, args...) }

// With creates a child logger. Children do not own the writers, so
// shutting one down never closes the parent's outputs.
func (l *SlogLogger) With(args ...any) Logger {
	return &childLogger{logger: l.logger.With(args...)}
}

// Shutdown closes all owned writers
func (l *SlogLogger) Shutdown() error {
	var lastErr error
	for _, w := range l.writers {
		if err := w.Close(); err != nil {
			lastErr = err
		}
	}
	return lastErr
}

type childLogger struct {
	logger *slog.Logger
}

func (c *childLogger) Debug(msg string, args ...any) { c.logger.Debug(msg, args...) }
func (c *childLogger) Info(msg string, args ...any)  { c.logger.Info(msg, args...) }
func (c *childLogger) Warn(msg string, args ...any)  { c.logger.Warn(msg, args...) }
func (c *childLogger) Error(msg string, args ...any) { c.logger.Error(msg, args...) }

func (c *childLogger) With(args ...any) Logger {
	return &childLogger{logger: c.logger.With(args...)}
}

func (c *childLogger) Shutdown() error { return nil }
