// Package stdlibconn connects pgcast to a database/sql connection to a PostgreSQL server.
//
// The DateStyle and server version are read once when the Conn is created. A *sql.DB hands out pooled connections,
// so settings changed with SET on one of them are not seen by the others; call Refresh after changing DateStyle on a
// *sql.Conn.
package stdlibconn

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/jackc/pgcast"
	"github.com/jackc/pgcast/internal/sanitize"
	"github.com/jackc/pgcast/internal/serverversion"
	"github.com/jackc/pgcast/pgtext"
)

// Queryer is implemented by *sql.DB, *sql.Conn and *sql.Tx.
type Queryer interface {
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
}

// Conn implements pgcast.Conn over a Queryer. String escaping assumes standard_conforming_strings is on.
type Conn struct {
	db            Queryer
	dateStyle     string
	serverVersion int
}

// Open creates a Conn and reads the DateStyle and server version of db.
func Open(ctx context.Context, db Queryer) (*Conn, error) {
	c := &Conn{db: db}
	if err := c.Refresh(ctx); err != nil {
		return nil, err
	}
	return c, nil
}

// Refresh reads the DateStyle and server version again.
func (c *Conn) Refresh(ctx context.Context) error {
	dateStyle, err := c.show(ctx, "DateStyle")
	if err != nil {
		return err
	}
	version, err := c.show(ctx, "server_version")
	if err != nil {
		return err
	}

	c.dateStyle = dateStyle
	c.serverVersion = serverversion.Parse(version)
	return nil
}

func (c *Conn) show(ctx context.Context, param string) (string, error) {
	res, err := c.Query(ctx, "SHOW "+param)
	if err != nil {
		return "", fmt.Errorf("show %s: %w", param, err)
	}
	if len(res.Rows) != 1 || len(res.Rows[0]) != 1 || res.Rows[0][0] == nil {
		return "", fmt.Errorf("show %s: unexpected result", param)
	}
	return *res.Rows[0][0], nil
}

func (c *Conn) Query(ctx context.Context, query string, args ...any) (*pgcast.Result, error) {
	rows, err := c.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	columns, err := rows.Columns()
	if err != nil {
		return nil, err
	}

	res := &pgcast.Result{FieldNames: columns}
	values := make([]sql.NullString, len(columns))
	dest := make([]any, len(columns))
	for i := range values {
		dest[i] = &values[i]
	}

	for rows.Next() {
		if err := rows.Scan(dest...); err != nil {
			return nil, err
		}
		row := make([]*string, len(values))
		for i, v := range values {
			if v.Valid {
				s := v.String
				row[i] = &s
			}
		}
		res.Rows = append(res.Rows, row)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return res, nil
}

func (c *Conn) EscapeString(s string) (string, error) {
	return string(sanitize.EscapeString(nil, s)), nil
}

func (c *Conn) EscapeBytea(b []byte) ([]byte, error) {
	return pgtext.EscapeByteaHex(b), nil
}

func (c *Conn) DateStyle() string {
	return c.dateStyle
}

func (c *Conn) ServerVersion() int {
	return c.serverVersion
}
