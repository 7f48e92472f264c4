package ui

import (
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"
)

type Logger struct {
	Debug bool
	zl    zerolog.Logger
}

func NewLogger(debug bool) *Logger {
	return NewLoggerTo(os.Stderr, debug)
}

func NewLoggerTo(w io.Writer, debug bool) *Logger {
	level := zerolog.InfoLevel
	if debug {
		level = zerolog.DebugLevel
	}

	out := zerolog.ConsoleWriter{
		Out:        w,
		TimeFormat: time.TimeOnly,
		NoColor:    !isTerminal(w),
	}

	return &Logger{
		Debug: debug,
		zl:    zerolog.New(out).Level(level).With().Timestamp().Logger(),
	}
}

// Zerolog exposes the underlying logger for callers that want fields.
func (l *Logger) Zerolog() zerolog.Logger {
	return l.zl
}

func (l *Logger) Debugf(format string, args ...any) {
	l.zl.Debug().Msg(trimNL(fmt.Sprintf(format, args...)))
}

func (l *Logger) Infof(format string, args ...any) {
	l.zl.Info().Msg(trimNL(fmt.Sprintf(format, args...)))
}

func (l *Logger) Warnf(format string, args ...any) {
	l.zl.Warn().Msg(trimNL(fmt.Sprintf(format, args...)))
}

func (l *Logger) Errorf(format string, args ...any) {
	l.zl.Error().Msg(trimNL(fmt.Sprintf(format, args...)))
}

func trimNL(s string) string {
	return strings.TrimRight(s, "\n")
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}

	info, err := f.Stat()
	if err != nil {
		return false
	}

	return info.Mode()&os.ModeCharDevice != 0
}
