package pgcast

import (
	"context"

	"github.com/jackc/pgcast/pgtext"
)

// Conn is the connection a DbTypes, Typecasts and Adapter work with. pgcast never performs I/O itself; it only
// calls Conn to run catalog queries and to escape values.
type Conn interface {
	// Query runs sql with args and returns every row in text format. NULL is returned as a nil pointer.
	Query(ctx context.Context, sql string, args ...any) (*Result, error)

	// EscapeString escapes s for use inside a single-quoted string literal. The quotes are not added.
	EscapeString(s string) (string, error)

	// EscapeBytea escapes b for use as a bytea literal.
	EscapeBytea(b []byte) ([]byte, error)

	// DateStyle returns the current value of the DateStyle run-time parameter.
	DateStyle() string

	// ServerVersion returns the server version as an integer, e.g. 160002. Zero means unknown.
	ServerVersion() int
}

// Result is the text format result of Conn.Query.
type Result struct {
	FieldNames []string
	Rows       [][]*string
}

// dateStyle returns the date style of conn, ISO when conn is nil.
func dateStyle(conn Conn) pgtext.DateStyle {
	if conn == nil {
		return pgtext.DateStyleISO
	}
	return pgtext.ParseDateStyle(conn.DateStyle())
}
