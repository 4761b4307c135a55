// Package kitlogadapter provides a logger that writes to a github.com/go-kit/log.Logger.
package kitlogadapter

import (
	"context"
	"sort"
	"strings"

	"github.com/go-kit/log"
	kitlevel "github.com/go-kit/log/level"
	"github.com/jackc/pgcast"
)

// Logger writes events as key/value pairs tagged with component=pgcast. Data keys are written in sorted order so
// that catalog events have a stable layout.
type Logger struct {
	l log.Logger
}

func NewLogger(l log.Logger) *Logger {
	return &Logger{l: log.With(l, "component", "pgcast")}
}

func (l *Logger) Log(ctx context.Context, level pgcast.LogLevel, msg string, data map[string]any) {
	keys := make([]string, 0, len(data))
	for k := range data {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	keyvals := make([]any, 0, 2*len(keys)+4)
	for _, k := range keys {
		keyvals = append(keyvals, k, fieldValue(data[k]))
	}
	keyvals = append(keyvals, "msg", msg)

	switch level {
	case pgcast.LogLevelTrace:
		log.WithPrefix(l.l, "level", "trace").Log(keyvals...)
	case pgcast.LogLevelDebug:
		kitlevel.Debug(l.l).Log(keyvals...)
	case pgcast.LogLevelInfo:
		kitlevel.Info(l.l).Log(keyvals...)
	case pgcast.LogLevelWarn:
		kitlevel.Warn(l.l).Log(keyvals...)
	case pgcast.LogLevelError:
		kitlevel.Error(l.l).Log(keyvals...)
	default:
		kitlevel.Error(l.l).Log(append([]any{"invalid_level", level.String()}, keyvals...)...)
	}
}

// fieldValue flattens the error and type list values of catalog events into logfmt friendly strings.
func fieldValue(v any) any {
	switch v := v.(type) {
	case error:
		return v.Error()
	case []string:
		return strings.Join(v, ",")
	}
	return v
}
