// Package zaplogger adapts a *zap.Logger to the quality.Logger interface,
// so refinement diagnostics flow through the same structured logger as the
// rest of a host application.
package zaplogger

import (
	"os"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Logger wraps a zap.SugaredLogger, whose Debugf/Infof/Warnf methods
// already match quality.Logger's printf-style signature directly.
type Logger struct {
	sugar *zap.SugaredLogger
}

// New wraps an existing *zap.Logger. Passing nil is a programmer error.
func New(l *zap.Logger) *Logger {
	return &Logger{sugar: l.Sugar()}
}

// NewDevelopment builds a colorized, console-encoded logger suited to
// interactive refinement runs, and wraps it.
func NewDevelopment() *Logger {
	cfg := zapcore.EncoderConfig{
		TimeKey:        "time",
		LevelKey:       "level",
		NameKey:        "logger",
		CallerKey:      "caller",
		MessageKey:     "msg",
		StacktraceKey:  "stacktrace",
		LineEnding:     zapcore.DefaultLineEnding,
		EncodeLevel:    colorLevelEncoder,
		EncodeTime:     shortTimeEncoder,
		EncodeDuration: zapcore.StringDurationEncoder,
		EncodeCaller:   zapcore.ShortCallerEncoder,
	}
	core := zapcore.NewCore(zapcore.NewConsoleEncoder(cfg), zapcore.Lock(os.Stderr), zap.DebugLevel)
	l := zap.New(core, zap.AddCaller(), zap.AddCallerSkip(1))
	return New(l)
}

func (l *Logger) Debugf(format string, args ...any) { l.sugar.Debugf(format, args...) }
func (l *Logger) Infof(format string, args ...any)  { l.sugar.Infof(format, args...) }
func (l *Logger) Warnf(format string, args ...any)  { l.sugar.Warnf(format, args...) }

func shortTimeEncoder(t time.Time, enc zapcore.PrimitiveArrayEncoder) {
	enc.AppendString(t.Format("15:04:05.000"))
}

func colorLevelEncoder(level zapcore.Level, enc zapcore.PrimitiveArrayEncoder) {
	var colorCode string
	switch level {
	case zapcore.DebugLevel:
		colorCode = "\033[36m"
	case zapcore.InfoLevel:
		colorCode = "\033[32m"
	case zapcore.WarnLevel:
		colorCode = "\033[33m"
	case zapcore.ErrorLevel:
		colorCode = "\033[31m"
	default:
		colorCode = "\033[0m"
	}
	enc.AppendString(colorCode + level.String() + "\033[0m")
}
