package logger

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
)

// Logger пишет текстовые логи в stdout и, если задан, в файл
type Logger struct {
	log  *slog.Logger
	file *os.File
}

// New создаёт логгер. Пустой path означает только stdout.
// Допустимые уровни: debug, info, warn, error (по умолчанию info).
func New(path, level string) (*Logger, error) {
	lvl, err := ParseLevel(level)
	if err != nil {
		return nil, err
	}

	var (
		out  io.Writer = os.Stdout
		file *os.File
	)
	if path != "" {
		file, err = os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return nil, fmt.Errorf("logger: open %s: %w", path, err)
		}
		out = io.MultiWriter(os.Stdout, file)
	}

	return &Logger{
		log:  slog.New(slog.NewTextHandler(out, &slog.HandlerOptions{Level: lvl})),
		file: file,
	}, nil
}

// NewWithWriter создаёт логгер поверх произвольного writer (используется в тестах и CLI)
func NewWithWriter(w io.Writer, level string) (*Logger, error) {
	lvl, err := ParseLevel(level)
	if err != nil {
		return nil, err
	}
	return &Logger{log: slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: lvl}))}, nil
}

// ParseLevel переводит имя уровня в slog.Level
func ParseLevel(level string) (slog.Level, error) {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "debug":
		return slog.LevelDebug, nil
	case "", "info":
		return slog.LevelInfo, nil
	case "warn", "warning":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	default:
		return slog.LevelInfo, fmt.Errorf("logger: unknown level %q", level)
	}
}

func (l *Logger) Debug(format string, args ...interface{}) {
	l.write(slog.LevelDebug, format, args...)
}

func (l *Logger) Info(format string, args ...interface{}) {
	l.write(slog.LevelInfo, format, args...)
}

func (l *Logger) Warn(format string, args ...interface{}) {
	l.write(slog.LevelWarn, format, args...)
}

func (l *Logger) Error(format string, args ...interface{}) {
	l.write(slog.LevelError, format, args...)
}

// Fatal пишет сообщение уровня error и завершает процесс
func (l *Logger) Fatal(format string, args ...interface{}) {
	l.write(slog.LevelError, format, args...)
	l.Close()
	os.Exit(1)
}

// Close закрывает файл логов
func (l *Logger) Close() error {
	if l.file == nil {
		return nil
	}
	err := l.file.Close()
	l.file = nil
	return err
}

func (l *Logger) write(level slog.Level, format string, args ...interface{}) {
	ctx := context.Background()
	if !l.log.Enabled(ctx, level) {
		return
	}
	l.log.Log(ctx, level, fmt.Sprintf(format, args...))
}
