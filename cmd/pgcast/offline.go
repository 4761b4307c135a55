package main

import (
	"context"
	"errors"

	"github.com/jackc/pgcast"
	"github.com/jackc/pgcast/internal/sanitize"
	"github.com/jackc/pgcast/pgtext"
)

var errOffline = errors.New("not connected to a database (use --database)")

// offlineConn is the connection used without --database. Catalog queries fail, so only the built-in types are known.
type offlineConn struct {
	dateStyle string
}

func (c *offlineConn) Query(ctx context.Context, sql string, args ...any) (*pgcast.Result, error) {
	return nil, errOffline
}

func (c *offlineConn) EscapeString(s string) (string, error) {
	return string(sanitize.EscapeString(nil, s)), nil
}

func (c *offlineConn) EscapeBytea(b []byte) ([]byte, error) {
	return pgtext.EscapeByteaHex(b), nil
}

func (c *offlineConn) DateStyle() string {
	return c.dateStyle
}

func (c *offlineConn) ServerVersion() int {
	return 0
}
