// Package pgcast converts between Go values and the text formats of PostgreSQL.
/*
pgcast is the type adaptation layer of a PostgreSQL client. It turns the text
of result values into Go values and Go values into query parameters or SQL
literals. It never talks to the server itself. Everything that needs the
server goes through the Conn interface, which pgxconn implements for pgx and
stdlibconn for database/sql.

Casting Results

A DbTypes caches the types of one connection. Values are cast by the name of
their database type:

	types := pgcast.NewDbTypes(conn, nil)
	v, err := types.Typecast(ctx, "{1,2,NULL}", "_int4") // []any{int64(1), int64(2), nil}

Casts for array types are built from the cast of the element type. Casts for
composite types are built from the fields of the type in the catalog and
return a *Record. A composite type that does not exist yet is looked up again
on the next use, so types created later in the session are found.

Casts can be changed for all connections of a TypeEnv or for a single
connection:

	pgcast.SetTypecast(func(s string) (any, error) { return strings.ToUpper(s), nil }, "citext")
	types.SetTypecast(nil, "json")

Adapting Parameters

An Adapter converts Go values to parameters. When no database type is given
the type is guessed from the Go type. FormatQuery binds %s and %(name)s
placeholders either to numbered parameters or to inline literals:

	adapter := pgcast.NewAdapter(conn, types)
	sql, params, err := adapter.FormatQuery(ctx, "select %(a)s, %(b)s", map[string]any{"a": 1, "b": []int{2, 3}}, nil, false)
	// sql is "select $1, $2" and params.Values() is []any{1, "{2,3}"}

Type Environment

TypeEnv holds the defaults that connections start from: the default casts,
the numeric constructor, the JSON codec, the decimal point of money values
and the logger. DefaultTypeEnv is used when no environment is given.

Logging

pgcast defines a simple logger interface. Connection lookups, cache flushes
and the creation of casts are logged at debug level. Adapters for several
logging libraries are in the log directory.
*/
package pgcast
