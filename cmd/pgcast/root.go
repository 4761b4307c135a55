package main

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgcast"
	"github.com/jackc/pgcast/log/zapadapter"
	"github.com/jackc/pgcast/pgxconn"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// Version is set at build time.
var Version = "0.1.0"

// session is what every subcommand works with: the connection, its type catalog and its adapter.
type session struct {
	cfg     *cliConfig
	conn    pgcast.Conn
	pgx     *pgxconn.Conn
	types   *pgcast.DbTypes
	adapter *pgcast.Adapter
	close   func()
}

type sessionKey struct{}

func newRootCmd() *cobra.Command {
	var cfgFile string

	rootCmd := &cobra.Command{
		Use:   "pgcast",
		Short: "Convert between PostgreSQL text values and Go values",
		Long: `pgcast casts PostgreSQL text values to Go values, adapts Go values given as JSON to query
parameters and formats queries with %s and %(name)s placeholders.

Without --database it works offline with the built-in types.`,
		Version: Version,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			if cmd.Name() == "help" || cmd.Name() == "completion" || cmd.Name() == "__complete" {
				return nil
			}

			cfg, err := loadConfig(cfgFile, cmd.Root().PersistentFlags())
			if err != nil {
				return err
			}
			s, err := openSession(cmd.Context(), cfg)
			if err != nil {
				return err
			}
			cmd.SetContext(context.WithValue(cmd.Context(), sessionKey{}, s))
			return nil
		},
		PersistentPostRun: func(cmd *cobra.Command, _ []string) {
			if s, ok := cmd.Context().Value(sessionKey{}).(*session); ok {
				s.close()
			}
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default: ./pgcast.yaml)")
	rootCmd.PersistentFlags().String("database", "", "connection string of a server to look types up in")
	rootCmd.PersistentFlags().String("datestyle", "", "DateStyle used offline (e.g. \"German, DMY\")")
	rootCmd.PersistentFlags().String("decimal-point", "", "decimal point of money values")
	rootCmd.PersistentFlags().Bool("raw-bool", false, "return bool values as t or f")
	rootCmd.PersistentFlags().Bool("raw-json", false, "return json values undecoded")
	rootCmd.PersistentFlags().String("log-level", "", "log level (trace|debug|info|warn|error|none)")

	rootCmd.AddCommand(newCastCommand())
	rootCmd.AddCommand(newAdaptCommand())
	rootCmd.AddCommand(newFormatCommand())
	rootCmd.AddCommand(newQueryCommand())

	return rootCmd
}

func openSession(ctx context.Context, cfg *cliConfig) (*session, error) {
	logLevel, err := pgcast.LogLevelFromString(cfg.LogLevel)
	if err != nil {
		return nil, fmt.Errorf("log level %q: %w", cfg.LogLevel, err)
	}

	zlogger := zap.NewNop()
	if logLevel != pgcast.LogLevelNone {
		zcfg := zap.NewDevelopmentConfig()
		zlogger, err = zcfg.Build()
		if err != nil {
			return nil, err
		}
	}

	env := pgcast.NewTypeEnv(pgcast.Config{
		DecimalPoint: cfg.DecimalPoint,
		RawBool:      cfg.RawBool,
		RawJSON:      cfg.RawJSON,
		Logger:       zapadapter.NewLogger(zlogger),
		LogLevel:     logLevel,
	})

	s := &session{cfg: cfg, close: func() { _ = zlogger.Sync() }}
	if cfg.Database != "" {
		conn, err := pgxconn.Connect(ctx, cfg.Database)
		if err != nil {
			return nil, fmt.Errorf("connect: %w", err)
		}
		s.pgx = conn
		s.conn = conn
		s.close = func() {
			_ = conn.Close(context.Background())
			_ = zlogger.Sync()
		}
	} else {
		s.conn = &offlineConn{dateStyle: cfg.DateStyle}
	}

	s.types = pgcast.NewDbTypes(s.conn, env)
	s.adapter = pgcast.NewAdapter(s.conn, s.types)
	return s, nil
}

func sessionFrom(cmd *cobra.Command) (*session, error) {
	s, ok := cmd.Context().Value(sessionKey{}).(*session)
	if !ok {
		return nil, errors.New("no session")
	}
	return s, nil
}
