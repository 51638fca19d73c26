// Pacote logger expõe o slog JSON compartilhado pelos binários.
package logger

import (
	"io"
	"log/slog"
	"os"
	"sync/atomic"
)

var (
	level         = new(slog.LevelVar)
	defaultLogger atomic.Pointer[slog.Logger]
)

func init() {
	level.Set(slog.LevelInfo)
	defaultLogger.Store(newLogger(os.Stdout))
}

func newLogger(w io.Writer) *slog.Logger {
	return slog.New(slog.NewJSONHandler(w, &slog.HandlerOptions{Level: level}))
}

func L() *slog.Logger {
	return defaultLogger.Load()
}

func SetLevel(l slog.Level) {
	level.Set(l)
}

// SetOutput troca o destino dos logs; usado pelo CLI e pelos testes.
func SetOutput(w io.Writer) {
	defaultLogger.Store(newLogger(w))
}

func Debug(msg string, args ...any) {
	L().Debug(msg, args...)
}

func Info(msg string, args ...any) {
	L().Info(msg, args...)
}

func Warn(msg string, args ...any) {
	L().Warn(msg, args...)
}

func Error(msg string, args ...any) {
	L().Error(msg, args...)
}

func Fatal(msg string, args ...any) {
	L().Error(msg, args...)
	os.Exit(1)
}
