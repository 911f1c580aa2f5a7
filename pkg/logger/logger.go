package logger

import (
	"fmt"
	"io"
	"log/slog"
	"os"
)

// Logger — общий контракт логирования сервиса.
type Logger interface {
	Debugf(format string, args ...any)
	Infof(format string, args ...any)
	Warnf(format string, args ...any)
	Errorf(err error, format string, args ...any)
}

type SlogLogger struct {
	log *slog.Logger
}

// NewSlogLogger создаёт JSON-логгер, пишущий в stdout.
func NewSlogLogger() *SlogLogger {
	return New(os.Stdout, slog.LevelDebug)
}

// New создаёт логгер с произвольным writer'ом и минимальным уровнем.
func New(w io.Writer, level slog.Level) *SlogLogger {
	handler := slog.NewJSONHandler(w, &slog.HandlerOptions{Level: level})
	return &SlogLogger{log: slog.New(handler)}
}

// NewNop возвращает логгер, который ничего не пишет (для тестов).
func NewNop() *SlogLogger {
	return New(io.Discard, slog.LevelError+1)
}

func (l *SlogLogger) Debugf(format string, args ...any) {
	l.log.Debug(fmt.Sprintf(format, args...))
}

func (l *SlogLogger) Infof(format string, args ...any) {
	l.log.Info(fmt.Sprintf(format, args...))
}

func (l *SlogLogger) Warnf(format string, args ...any) {
	l.log.Warn(fmt.Sprintf(format, args...))
}

func (l *SlogLogger) Errorf(err error, format string, args ...any) {
	l.log.Error(fmt.Sprintf(format, args...), slog.Any("error", err))
}
