// Package logger adapts loggers to printf-style interfaces used by
// third-party libraries such as robfig/cron.
package logger

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
)

// Printfer is satisfied by *log.Logger and by the slog bridge.
type Printfer interface {
	Printf(format string, v ...any)
}

type slogPrintf struct {
	logger *slog.Logger
	level  slog.Level
}

// FromSlog forwards Printf calls to l at the given level.
func FromSlog(l *slog.Logger, level slog.Level) Printfer {
	if l == nil {
		l = slog.Default()
	}
	return slogPrintf{logger: l, level: level}
}

func (s slogPrintf) Printf(format string, v ...any) {
	msg := strings.TrimSpace(fmt.Sprintf(format, v...))
	s.logger.Log(context.Background(), s.level, msg)
}
