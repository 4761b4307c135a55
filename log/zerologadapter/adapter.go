// Package zerologadapter provides a logger that writes to a github.com/rs/zerolog.
package zerologadapter

import (
	"context"

	"github.com/jackc/pgcast"
	"github.com/rs/zerolog"
)

type Logger struct {
	logger      zerolog.Logger
	withFunc    func(context.Context, zerolog.Context) zerolog.Context
	fromContext bool
	skipModule  bool
}

// option options for configuring the logger when creating a new logger.
type option func(logger *Logger)

// WithContextFunc adds possibility to get request scoped values from the
// ctx.Context before logging lines.
func WithContextFunc(withFunc func(context.Context, zerolog.Context) zerolog.Context) option {
	return func(logger *Logger) {
		logger.withFunc = withFunc
	}
}

// WithoutModule disables adding module:pgcast to the default logger context.
func WithoutModule() option {
	return func(logger *Logger) {
		logger.skipModule = true
	}
}

// NewLogger accepts a zerolog.Logger as input and returns a new custom pgcast
// logging facade as output.
func NewLogger(logger zerolog.Logger, options ...option) *Logger {
	l := Logger{
		logger: logger,
	}
	l.init(options)
	return &l
}

// NewContextLogger creates logger that extracts the zerolog.Logger from the
// context.Context by using `zerolog.Ctx`. The zerolog.DefaultContextLogger will
// be used if no logger is associated with the context.
func NewContextLogger(options ...option) *Logger {
	l := Logger{
		fromContext: true,
	}
	l.init(options)
	return &l
}

func (pl *Logger) init(options []option) {
	for _, opt := range options {
		opt(pl)
	}
	if !pl.skipModule {
		pl.logger = pl.logger.With().Str("module", "pgcast").Logger()
	}
}

func (pl *Logger) Log(ctx context.Context, level pgcast.LogLevel, msg string, data map[string]any) {
	var zlevel zerolog.Level
	switch level {
	case pgcast.LogLevelNone:
		zlevel = zerolog.NoLevel
	case pgcast.LogLevelError:
		zlevel = zerolog.ErrorLevel
	case pgcast.LogLevelWarn:
		zlevel = zerolog.WarnLevel
	case pgcast.LogLevelInfo:
		zlevel = zerolog.InfoLevel
	case pgcast.LogLevelDebug, pgcast.LogLevelTrace:
		zlevel = zerolog.DebugLevel
	default:
		zlevel = zerolog.DebugLevel
	}

	var zctx zerolog.Context
	if pl.fromContext {
		zctx = zerolog.Ctx(ctx).With()
	} else {
		zctx = pl.logger.With()
	}
	if pl.withFunc != nil {
		zctx = pl.withFunc(ctx, zctx)
	}

	logger := zctx.Logger()
	event := logger.WithLevel(zlevel)
	if event == nil {
		return
	}
	if pl.fromContext && !pl.skipModule {
		event = event.Str("module", "pgcast")
	}
	if level == pgcast.LogLevelTrace {
		event = event.Str("PGCAST_LOG_LEVEL", level.String())
	}
	event.Fields(data).Msg(msg)
}
