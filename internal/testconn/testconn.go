// Package testconn provides an in-memory pgcast.Conn that answers catalog queries from a scripted set of types.
package testconn

import (
	"context"
	"errors"
	"strconv"
	"strings"
	"sync"

	"github.com/jackc/pgcast"
	"github.com/jackc/pgcast/pgtext"
)

// Type is a row of pg_type.
type Type struct {
	OID      uint32
	Name     string
	RegType  string
	Len      int
	TypType  string
	Category string
	Delim    string
	RelID    uint32
}

// Attr is a field of a composite type. Type is the name of a type known to the Conn.
type Attr struct {
	Name string
	Type string
}

var builtinTypes = []Type{
	{OID: 16, Name: "bool", RegType: "boolean", Len: 1, Category: "B"},
	{OID: 17, Name: "bytea", RegType: "bytea", Len: -1, Category: "U"},
	{OID: 20, Name: "int8", RegType: "bigint", Len: 8, Category: "N"},
	{OID: 21, Name: "int2", RegType: "smallint", Len: 2, Category: "N"},
	{OID: 23, Name: "int4", RegType: "integer", Len: 4, Category: "N"},
	{OID: 25, Name: "text", RegType: "text", Len: -1, Category: "S"},
	{OID: 26, Name: "oid", RegType: "oid", Len: 4, Category: "N"},
	{OID: 114, Name: "json", RegType: "json", Len: -1, Category: "U"},
	{OID: 600, Name: "point", RegType: "point", Len: 16, Category: "G"},
	{OID: 603, Name: "box", RegType: "box", Len: 32, Category: "G", Delim: ";"},
	{OID: 700, Name: "float4", RegType: "real", Len: 4, Category: "N"},
	{OID: 701, Name: "float8", RegType: "double precision", Len: 8, Category: "N"},
	{OID: 790, Name: "money", RegType: "money", Len: 8, Category: "N"},
	{OID: 869, Name: "inet", RegType: "inet", Len: -1, Category: "I"},
	{OID: 1007, Name: "_int4", RegType: "integer[]", Len: -1, Category: "A"},
	{OID: 1009, Name: "_text", RegType: "text[]", Len: -1, Category: "A"},
	{OID: 1043, Name: "varchar", RegType: "character varying", Len: -1, Category: "S"},
	{OID: 1082, Name: "date", RegType: "date", Len: 4, Category: "D"},
	{OID: 1083, Name: "time", RegType: "time without time zone", Len: 8, Category: "D"},
	{OID: 1114, Name: "timestamp", RegType: "timestamp without time zone", Len: 8, Category: "D"},
	{OID: 1184, Name: "timestamptz", RegType: "timestamp with time zone", Len: 8, Category: "D"},
	{OID: 1186, Name: "interval", RegType: "interval", Len: 16, Category: "T"},
	{OID: 1700, Name: "numeric", RegType: "numeric", Len: -1, Category: "N"},
	{OID: 2950, Name: "uuid", RegType: "uuid", Len: 16, Category: "U"},
	{OID: 3802, Name: "jsonb", RegType: "jsonb", Len: -1, Category: "U"},
}

// Conn is a scripted pgcast.Conn. It is safe for concurrent use.
type Conn struct {
	mu sync.Mutex

	dateStyle     string
	serverVersion int

	byName map[string]Type
	byOID  map[uint32]Type
	attrs  map[uint32][]Attr

	queries []string
	err     error
}

// New returns a Conn that knows the common built-in types, uses the ISO date style and reports server version
// 160000.
func New() *Conn {
	c := &Conn{
		dateStyle:     "ISO, MDY",
		serverVersion: 160000,
		byName:        make(map[string]Type),
		byOID:         make(map[uint32]Type),
		attrs:         make(map[uint32][]Attr),
	}
	for _, t := range builtinTypes {
		c.AddType(t)
	}
	return c
}

// AddType makes t known. Empty TypType and Delim default to b and a comma.
func (c *Conn) AddType(t Type) {
	if t.TypType == "" {
		t.TypType = "b"
	}
	if t.Delim == "" {
		t.Delim = ","
	}
	if t.RegType == "" {
		t.RegType = t.Name
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	c.byName[t.Name] = t
	c.byName[t.RegType] = t
	c.byOID[t.OID] = t
}

// AddComposite creates a composite type with the given fields. The type is given oid and the relation relid. Its
// array type is created with oid+1.
func (c *Conn) AddComposite(name string, oid, relid uint32, attrs ...Attr) {
	c.AddType(Type{OID: oid, Name: name, Len: -1, TypType: "c", Category: "C", RelID: relid})
	c.AddType(Type{OID: oid + 1, Name: "_" + name, Len: -1, Category: "A"})

	c.mu.Lock()
	defer c.mu.Unlock()
	c.attrs[relid] = attrs
}

// DropType removes the type with the given name.
func (c *Conn) DropType(name string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	t, ok := c.byName[name]
	if !ok {
		return
	}
	delete(c.byName, t.Name)
	delete(c.byName, t.RegType)
	delete(c.byOID, t.OID)
	delete(c.attrs, t.RelID)

	if arr, ok := c.byName["_"+t.Name]; ok {
		delete(c.byName, arr.Name)
		delete(c.byName, arr.RegType)
		delete(c.byOID, arr.OID)
	}
}

// SetDateStyle sets the value returned by DateStyle.
func (c *Conn) SetDateStyle(style string) {
	c.mu.Lock()
	c.dateStyle = style
	c.mu.Unlock()
}

// SetServerVersion sets the value returned by ServerVersion.
func (c *Conn) SetServerVersion(version int) {
	c.mu.Lock()
	c.serverVersion = version
	c.mu.Unlock()
}

// SetErr makes every following query fail with err. A nil err makes queries succeed again.
func (c *Conn) SetErr(err error) {
	c.mu.Lock()
	c.err = err
	c.mu.Unlock()
}

// Queries returns the SQL of all queries run so far.
func (c *Conn) Queries() []string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]string(nil), c.queries...)
}

// QueryCount returns the number of queries run so far.
func (c *Conn) QueryCount() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.queries)
}

// Query answers the type and attribute queries of pgcast.DbTypes.
func (c *Conn) Query(ctx context.Context, sql string, args ...any) (*pgcast.Result, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.queries = append(c.queries, sql)
	if c.err != nil {
		return nil, c.err
	}
	if len(args) != 1 {
		return nil, errors.New("testconn: expected one argument")
	}
	key, ok := args[0].(string)
	if !ok {
		return nil, errors.New("testconn: expected a text argument")
	}

	if strings.Contains(sql, "pg_attribute") {
		relid, err := strconv.ParseUint(key, 10, 32)
		if err != nil {
			return nil, err
		}
		res := &pgcast.Result{FieldNames: []string{"attname", "oid", "typname", "regtype", "typlen", "typtype", "typcategory", "typdelim", "typrelid"}}
		for _, a := range c.attrs[uint32(relid)] {
			t, ok := c.byName[a.Type]
			if !ok {
				return nil, errors.New("testconn: unknown field type " + a.Type)
			}
			res.Rows = append(res.Rows, append([]*string{ptr(a.Name)}, c.typeRow(t, sql)...))
		}
		return res, nil
	}

	var t Type
	if isDigits(key) {
		oid, err := strconv.ParseUint(key, 10, 32)
		if err != nil {
			return nil, err
		}
		t, ok = c.byOID[uint32(oid)]
	} else {
		t, ok = c.byName[key]
	}

	// An unknown name is an error on the server, an unknown OID yields no row.
	if !ok {
		if isDigits(key) {
			return &pgcast.Result{}, nil
		}
		return nil, errors.New(`type "` + key + `" does not exist`)
	}

	return &pgcast.Result{
		FieldNames: []string{"oid", "typname", "regtype", "typlen", "typtype", "typcategory", "typdelim", "typrelid"},
		Rows:       [][]*string{c.typeRow(t, sql)},
	}, nil
}

func (c *Conn) typeRow(t Type, sql string) []*string {
	category := t.Category
	if strings.Contains(sql, "''::pg_catalog.text") {
		category = ""
	}
	return []*string{
		ptr(strconv.FormatUint(uint64(t.OID), 10)),
		ptr(t.Name),
		ptr(t.RegType),
		ptr(strconv.Itoa(t.Len)),
		ptr(t.TypType),
		ptr(category),
		ptr(t.Delim),
		ptr(strconv.FormatUint(uint64(t.RelID), 10)),
	}
}

// EscapeString doubles single quotes.
func (c *Conn) EscapeString(s string) (string, error) {
	return strings.ReplaceAll(s, "'", "''"), nil
}

// EscapeBytea returns b in hex format.
func (c *Conn) EscapeBytea(b []byte) ([]byte, error) {
	return pgtext.EscapeByteaHex(b), nil
}

func (c *Conn) DateStyle() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.dateStyle
}

func (c *Conn) ServerVersion() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.serverVersion
}

func ptr(s string) *string {
	return &s
}

func isDigits(s string) bool {
	if s == "" {
		return false
	}
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}
