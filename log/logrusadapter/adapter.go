// Package logrusadapter provides a logger that writes to a github.com/sirupsen/logrus.Logger
// log.
package logrusadapter

import (
	"context"

	"github.com/jackc/pgcast"
	"github.com/sirupsen/logrus"
)

// Logger writes events as logrus entries with component=pgcast. An error in the event data is attached with
// WithError, so it is found under logrus.ErrorKey.
type Logger struct {
	l logrus.FieldLogger
}

func NewLogger(l logrus.FieldLogger) *Logger {
	return &Logger{l: l.WithField("component", "pgcast")}
}

func (l *Logger) Log(ctx context.Context, level pgcast.LogLevel, msg string, data map[string]any) {
	fields := make(logrus.Fields, len(data)+1)
	for k, v := range data {
		if err, ok := v.(error); ok {
			fields[logrus.ErrorKey] = err
			continue
		}
		fields[k] = v
	}

	switch level {
	case pgcast.LogLevelTrace:
		fields["pgcast_level"] = level.String()
		l.l.WithFields(fields).Debug(msg)
	case pgcast.LogLevelDebug:
		l.l.WithFields(fields).Debug(msg)
	case pgcast.LogLevelInfo:
		l.l.WithFields(fields).Info(msg)
	case pgcast.LogLevelWarn:
		l.l.WithFields(fields).Warn(msg)
	case pgcast.LogLevelError:
		l.l.WithFields(fields).Error(msg)
	default:
		fields["invalid_level"] = level.String()
		l.l.WithFields(fields).Error(msg)
	}
}
