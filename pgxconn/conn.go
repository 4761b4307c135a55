// Package pgxconn connects pgcast to a github.com/jackc/pgx/v5 connection.
package pgxconn

import (
	"context"
	"fmt"

	"github.com/jackc/pgcast"
	"github.com/jackc/pgcast/internal/serverversion"
	"github.com/jackc/pgcast/pgtext"
	"github.com/jackc/pgx/v5"
)

// Conn implements pgcast.Conn over a *pgx.Conn. Results are requested in text format so that every value can be
// cast by pgcast.
type Conn struct {
	conn *pgx.Conn
}

func New(conn *pgx.Conn) *Conn {
	return &Conn{conn: conn}
}

// Connect establishes a connection with a PostgreSQL server with a connection string. See pgx.Connect for details.
func Connect(ctx context.Context, connString string) (*Conn, error) {
	conn, err := pgx.Connect(ctx, connString)
	if err != nil {
		return nil, err
	}
	return New(conn), nil
}

// PgxConn returns the underlying *pgx.Conn.
func (c *Conn) PgxConn() *pgx.Conn {
	return c.conn
}

// Close closes the underlying connection.
func (c *Conn) Close(ctx context.Context) error {
	return c.conn.Close(ctx)
}

func (c *Conn) Query(ctx context.Context, sql string, args ...any) (*pgcast.Result, error) {
	res, _, err := c.query(ctx, sql, args)
	return res, err
}

func (c *Conn) query(ctx context.Context, sql string, args []any) (*pgcast.Result, []uint32, error) {
	rows, err := c.conn.Query(ctx, sql, append([]any{pgx.QueryResultFormats{pgx.TextFormatCode}}, args...)...)
	if err != nil {
		return nil, nil, err
	}
	defer rows.Close()

	fields := rows.FieldDescriptions()
	res := &pgcast.Result{FieldNames: make([]string, len(fields))}
	oids := make([]uint32, len(fields))
	for i, fd := range fields {
		res.FieldNames[i] = fd.Name
		oids[i] = fd.DataTypeOID
	}

	for rows.Next() {
		raw := rows.RawValues()
		row := make([]*string, len(raw))
		for i, buf := range raw {
			if buf != nil {
				s := string(buf)
				row[i] = &s
			}
		}
		res.Rows = append(res.Rows, row)
	}
	if err := rows.Err(); err != nil {
		return nil, nil, err
	}
	return res, oids, nil
}

func (c *Conn) EscapeString(s string) (string, error) {
	return c.conn.PgConn().EscapeString(s)
}

func (c *Conn) EscapeBytea(b []byte) ([]byte, error) {
	return pgtext.EscapeByteaHex(b), nil
}

func (c *Conn) DateStyle() string {
	return c.conn.PgConn().ParameterStatus("DateStyle")
}

func (c *Conn) ServerVersion() int {
	return serverversion.Parse(c.conn.PgConn().ParameterStatus("server_version"))
}

// Select runs sql and casts every column of the result with the cast for its type. The column types are looked up
// in types by OID.
func (c *Conn) Select(ctx context.Context, types *pgcast.DbTypes, sql string, args ...any) ([]string, [][]any, error) {
	res, oids, err := c.query(ctx, sql, args)
	if err != nil {
		return nil, nil, err
	}

	colTypes := make([]*pgcast.DbType, len(oids))
	for i, oid := range oids {
		t, err := types.Lookup(ctx, oid)
		if err != nil {
			return nil, nil, fmt.Errorf("column %s: %w", res.FieldNames[i], err)
		}
		colTypes[i] = t
	}

	castRow := types.RowCaster(ctx, colTypes)
	rows := make([][]any, len(res.Rows))
	for i, row := range res.Rows {
		rows[i], err = castRow(row)
		if err != nil {
			return nil, nil, err
		}
	}
	return res.FieldNames, rows, nil
}
