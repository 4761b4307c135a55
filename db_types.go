package pgcast

import (
	"context"
	"fmt"
	"strconv"
	"strings"
)

// DbType describes a database type as found in pg_type.
type DbType struct {
	OID      uint32
	PgType   string // internal name, e.g. int4
	RegType  string // registered name, e.g. integer
	Simple   SimpleType
	TypLen   int
	TypType  string // b = base, c = composite, d = domain, e = enum ...
	Category string // A = array, B = boolean, C = composite ...
	Delim    string
	RelID    uint32 // non-zero for composite types

	regtypes bool
	catalog  *DbTypes // not owned
	attnames *AttrDict
}

// String returns the registered type name if the catalog was set to use them, otherwise the simple type name.
func (t *DbType) String() string {
	if t.regtypes {
		return t.RegType
	}
	return t.Simple.String()
}

// Attnames returns the fields of a composite type, or nil for other types.
func (t *DbType) Attnames(ctx context.Context) (*AttrDict, error) {
	if t.attnames != nil {
		return t.attnames, nil
	}
	if t.catalog == nil || t.RelID == 0 {
		return nil, nil
	}
	return t.catalog.GetAttnames(ctx, t)
}

// simpleDbType returns a type that is not backed by the catalog.
func simpleDbType(st SimpleType, attnames *AttrDict) *DbType {
	return &DbType{PgType: st.String(), RegType: st.String(), Simple: st, attnames: attnames}
}

// AttrDict is a read-only ordered mapping from the field names of a composite type to their types.
type AttrDict struct {
	names []string
	types map[string]*DbType
}

func newAttrDict(names []string, types []*DbType) *AttrDict {
	d := &AttrDict{names: names, types: make(map[string]*DbType, len(names))}
	for i, name := range names {
		d.types[name] = types[i]
	}
	return d
}

func (d *AttrDict) Len() int {
	return len(d.names)
}

// Names returns the field names in order.
func (d *AttrDict) Names() []string {
	return append([]string(nil), d.names...)
}

// Get returns the type of the named field.
func (d *AttrDict) Get(name string) (*DbType, bool) {
	t, ok := d.types[name]
	return t, ok
}

// Types returns the field types in order.
func (d *AttrDict) Types() []*DbType {
	types := make([]*DbType, len(d.names))
	for i, name := range d.names {
		types[i] = d.types[name]
	}
	return types
}

const typeColumns = "t.oid::pg_catalog.text, t.typname::pg_catalog.text, t.oid::pg_catalog.regtype::pg_catalog.text," +
	" t.typlen::pg_catalog.text, t.typtype::pg_catalog.text, %s, t.typdelim::pg_catalog.text, t.typrelid::pg_catalog.text"

// typcategory was added in PostgreSQL 8.4.
const categoryServerVersion = 80400

// DbTypes caches the types of one connection by OID and by name. Types are looked up in the catalog on first use
// and stay cached until Flush. DbTypes is not safe for concurrent use.
type DbTypes struct {
	conn      Conn
	env       *TypeEnv
	typecasts *Typecasts

	byOID    map[uint32]*DbType
	byName   map[string]*DbType
	attnames map[uint32]*AttrDict
	regtypes bool
}

// NewDbTypes creates a type cache for conn. env may be nil to use DefaultTypeEnv.
func NewDbTypes(conn Conn, env *TypeEnv) *DbTypes {
	if env == nil {
		env = DefaultTypeEnv
	}
	d := &DbTypes{
		conn:     conn,
		env:      env,
		byOID:    make(map[uint32]*DbType),
		byName:   make(map[string]*DbType),
		attnames: make(map[uint32]*AttrDict),
	}
	d.typecasts = newTypecasts(conn, env, d)
	return d
}

// Typecasts returns the cast registry of the connection.
func (d *DbTypes) Typecasts() *Typecasts {
	return d.typecasts
}

// UseRegtypes reports whether DbType.String returns registered type names.
func (d *DbTypes) UseRegtypes() bool {
	return d.regtypes
}

// SetUseRegtypes sets whether DbType.String returns registered type names instead of simple names. The caches are
// flushed when the setting changes.
func (d *DbTypes) SetUseRegtypes(on bool) {
	if on != d.regtypes {
		d.regtypes = on
		d.Flush()
	}
}

// Flush clears the type and field caches and the casts derived from them. Casts set with SetTypecast are kept. It
// must be called after types were changed in the database.
func (d *DbTypes) Flush() {
	clear(d.byOID)
	clear(d.byName)
	clear(d.attnames)
	d.typecasts.flush()
	d.env.log(context.Background(), LogLevelDebug, "type cache flushed", nil)
}

// Add creates a DbType. If oid is already cached the cached type is returned. Add does not cache the new type.
func (d *DbTypes) Add(oid uint32, pgtype, regtype string, typlen int, typtype, category, delim string, relid uint32) *DbType {
	if t, ok := d.byOID[oid]; ok {
		return t
	}

	simple := ParseSimpleType(pgtype)
	if relid != 0 {
		simple = SimpleType{Base: SimpleRecord}
	}

	return &DbType{
		OID:      oid,
		PgType:   pgtype,
		RegType:  regtype,
		Simple:   simple,
		TypLen:   typlen,
		TypType:  typtype,
		Category: category,
		Delim:    delim,
		RelID:    relid,
		regtypes: d.regtypes,
		catalog:  d,
	}
}

// Get returns the type for key, an OID given as an integer or a type name. It returns nil if the type cannot be
// found.
func (d *DbTypes) Get(ctx context.Context, key any) *DbType {
	t, _ := d.Lookup(ctx, key)
	return t
}

// Lookup returns the type for key, an OID given as an integer or a type name. A type that cannot be found is
// reported as a *TypeNotFoundError. Failed lookups are not cached.
func (d *DbTypes) Lookup(ctx context.Context, key any) (*DbType, error) {
	var oid uint32
	var name string

	switch key := key.(type) {
	case *DbType:
		return key, nil
	case string:
		name = key
	case uint32:
		oid = key
	case int:
		oid = uint32(key)
	case int32:
		oid = uint32(key)
	case int64:
		oid = uint32(key)
	case uint:
		oid = uint32(key)
	case uint64:
		oid = uint32(key)
	default:
		return nil, &TypeNotFoundError{Key: key, Err: fmt.Errorf("invalid type key %T", key)}
	}

	if name != "" {
		if t, ok := d.byName[name]; ok {
			return t, nil
		}
	} else if t, ok := d.byOID[oid]; ok {
		return t, nil
	}

	t, err := d.queryType(ctx, key, name, oid)
	if err != nil {
		d.env.log(ctx, LogLevelDebug, "type lookup failed", map[string]any{"key": key, "err": err})
		return nil, err
	}

	d.byOID[t.OID] = t
	d.byName[t.PgType] = t
	if name != "" {
		d.byName[name] = t
	}
	return t, nil
}

func (d *DbTypes) categoryColumn() string {
	if v := d.conn.ServerVersion(); v != 0 && v < categoryServerVersion {
		return "''::pg_catalog.text"
	}
	return "t.typcategory::pg_catalog.text"
}

func (d *DbTypes) queryType(ctx context.Context, key any, name string, oid uint32) (*DbType, error) {
	if d.conn == nil {
		return nil, &TypeNotFoundError{Key: key}
	}

	param := name
	where := "$1::pg_catalog.text::pg_catalog.regtype"
	if name == "" {
		param = strconv.FormatUint(uint64(oid), 10)
	} else if !strings.Contains(name, ".") {
		where = "pg_catalog.quote_ident($1)::pg_catalog.regtype"
	}

	sql := "SELECT " + fmt.Sprintf(typeColumns, d.categoryColumn()) +
		" FROM pg_catalog.pg_type t WHERE t.oid OPERATOR(pg_catalog.=) " + where

	res, err := d.conn.Query(ctx, sql, param)
	if err != nil {
		return nil, &TypeNotFoundError{Key: key, Err: err}
	}
	if len(res.Rows) == 0 {
		return nil, &TypeNotFoundError{Key: key}
	}

	t, err := d.scanType(res.Rows[0])
	if err != nil {
		return nil, &TypeNotFoundError{Key: key, Err: err}
	}
	d.env.log(ctx, LogLevelTrace, "type loaded", map[string]any{"key": key, "oid": t.OID, "pgtype": t.PgType})
	return t, nil
}

// scanType creates a DbType from the eight text columns selected by typeColumns.
func (d *DbTypes) scanType(row []*string) (*DbType, error) {
	if len(row) != 8 {
		return nil, fmt.Errorf("expected 8 type columns, got %d", len(row))
	}

	col := make([]string, len(row))
	for i, v := range row {
		if v != nil {
			col[i] = *v
		}
	}

	oid, err := strconv.ParseUint(col[0], 10, 32)
	if err != nil {
		return nil, fmt.Errorf("invalid oid %q: %w", col[0], err)
	}
	typlen, err := strconv.Atoi(col[3])
	if err != nil {
		return nil, fmt.Errorf("invalid typlen %q: %w", col[3], err)
	}
	relid, err := strconv.ParseUint(col[7], 10, 32)
	if err != nil {
		return nil, fmt.Errorf("invalid typrelid %q: %w", col[7], err)
	}

	return d.Add(uint32(oid), col[1], col[2], typlen, col[4], col[5], col[6], uint32(relid)), nil
}

// GetAttnames returns the fields of a composite type given as a *DbType, an OID or a name. It returns nil for types
// that are not composite and a *TypeNotFoundError for types that do not exist.
func (d *DbTypes) GetAttnames(ctx context.Context, typ any) (*AttrDict, error) {
	t, err := d.Lookup(ctx, typ)
	if err != nil {
		return nil, err
	}
	if t.attnames != nil {
		return t.attnames, nil
	}
	if t.RelID == 0 {
		return nil, nil
	}

	if attnames, ok := d.attnames[t.RelID]; ok {
		return attnames, nil
	}

	sql := "SELECT a.attname::pg_catalog.text, " + fmt.Sprintf(typeColumns, d.categoryColumn()) +
		" FROM pg_catalog.pg_attribute a" +
		" JOIN pg_catalog.pg_type t ON t.oid OPERATOR(pg_catalog.=) a.atttypid" +
		" WHERE a.attrelid OPERATOR(pg_catalog.=) $1::pg_catalog.text::pg_catalog.oid" +
		" AND a.attnum OPERATOR(pg_catalog.>) 0 AND NOT a.attisdropped ORDER BY a.attnum"

	res, err := d.conn.Query(ctx, sql, strconv.FormatUint(uint64(t.RelID), 10))
	if err != nil {
		d.env.log(ctx, LogLevelDebug, "attribute lookup failed", map[string]any{"type": t.PgType, "err": err})
		return nil, fmt.Errorf("get attributes of %s: %w", t.PgType, err)
	}

	names := make([]string, 0, len(res.Rows))
	types := make([]*DbType, 0, len(res.Rows))
	for _, row := range res.Rows {
		if len(row) != 9 || row[0] == nil {
			return nil, fmt.Errorf("get attributes of %s: unexpected row", t.PgType)
		}
		ft, err := d.scanType(row[1:])
		if err != nil {
			return nil, fmt.Errorf("get attributes of %s: %w", t.PgType, err)
		}
		names = append(names, *row[0])
		types = append(types, ft)
	}

	attnames := newAttrDict(names, types)
	d.attnames[t.RelID] = attnames
	return attnames, nil
}

// GetTypecast returns the cast for the database type name. See Typecasts.Get.
func (d *DbTypes) GetTypecast(ctx context.Context, name string) CastFunc {
	return d.typecasts.Get(ctx, name)
}

// SetTypecast sets the cast for the given database type names on this connection only.
func (d *DbTypes) SetTypecast(fn any, names ...string) error {
	return d.typecasts.Set(fn, names...)
}

// ResetTypecast restores the default casts for names, or for all types when no names are given.
func (d *DbTypes) ResetTypecast(names ...string) {
	d.typecasts.Reset(names...)
}

// Typecast converts value, the text of a value of database type typ, to a Go value. nil is returned unchanged.
// Values that are neither strings nor byte slices are assumed to be cast already. If typ names a type known to the
// catalog, the cast for its internal name is used.
func (d *DbTypes) Typecast(ctx context.Context, value any, typ string) (any, error) {
	var s string
	switch v := value.(type) {
	case nil:
		return nil, nil
	case string:
		s = v
	case []byte:
		if v == nil {
			return nil, nil
		}
		s = string(v)
	case *string:
		if v == nil {
			return nil, nil
		}
		s = *v
	default:
		return value, nil
	}

	if t, ok := d.byName[typ]; ok {
		typ = t.PgType
	} else if !isBuiltinName(d.env, typ) {
		if t := d.Get(ctx, typ); t != nil {
			typ = t.PgType
		}
	}

	cast := d.typecasts.Get(ctx, typ)
	if cast == nil {
		return s, nil
	}
	return cast(s)
}

// isBuiltinName reports whether name has a default cast and needs no catalog lookup.
func isBuiltinName(env *TypeEnv, name string) bool {
	return env.GetTypecast(name) != nil
}

// RowCaster returns a function that casts a text row whose columns have the given types.
func (d *DbTypes) RowCaster(ctx context.Context, types []*DbType) func(row []*string) ([]any, error) {
	casts := make([]CastFunc, len(types))
	for i, t := range types {
		if t != nil {
			casts[i] = d.typecasts.Get(ctx, t.PgType)
		}
	}

	return func(row []*string) ([]any, error) {
		if len(row) != len(casts) {
			return nil, fmt.Errorf("row has %d columns, expected %d", len(row), len(casts))
		}
		values := make([]any, len(row))
		for i, v := range row {
			switch {
			case v == nil:
			case casts[i] == nil:
				values[i] = *v
			default:
				cv, err := casts[i](*v)
				if err != nil {
					return nil, fmt.Errorf("column %d: %w", i, err)
				}
				values[i] = cv
			}
		}
		return values, nil
	}
}
