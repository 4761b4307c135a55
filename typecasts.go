package pgcast

import (
	"context"
	"strings"

	"github.com/jackc/pgcast/pgtext"
)

// Typecasts is the cast registry of a connection. It memoizes the casts it resolves from the defaults of its
// TypeEnv and synthesizes casts for array and composite types from the catalog. Typecasts is not safe for
// concurrent use.
type Typecasts struct {
	env     *TypeEnv
	conn    Conn
	catalog *DbTypes // not owned, may be nil
	rows    *RowFactory
	casts   map[string]CastFunc
	user    map[string]struct{} // names of casts registered with Set
}

// NewTypecasts creates a registry that is not connected to a type catalog. Only default and array casts can be
// resolved by it. env may be nil to use DefaultTypeEnv.
func NewTypecasts(conn Conn, env *TypeEnv) *Typecasts {
	if env == nil {
		env = DefaultTypeEnv
	}
	return newTypecasts(conn, env, nil)
}

func newTypecasts(conn Conn, env *TypeEnv, catalog *DbTypes) *Typecasts {
	return &Typecasts{
		env:     env,
		conn:    conn,
		catalog: catalog,
		rows:    DefaultRowFactory,
		casts:   make(map[string]CastFunc),
		user:    make(map[string]struct{}),
	}
}

// SetRowFactory sets the factory used for the record types of composite casts. nil restores DefaultRowFactory.
// Already resolved composite casts keep the previous factory until Reset.
func (tc *Typecasts) SetRowFactory(f *RowFactory) {
	if f == nil {
		f = DefaultRowFactory
	}
	tc.rows = f
}

// Get returns the cast for the database type name, or nil when values of the type should be left as strings.
//
// Casts are resolved in this order: the default cast of the environment, an array cast built on the cast of the
// element type for names starting with an underscore, and a record cast built from the fields of a composite type
// in the catalog. A type that exists but has no cast is remembered as such. A composite type that cannot be found
// is looked up again on the next call since it may be created later.
func (tc *Typecasts) Get(ctx context.Context, name string) CastFunc {
	if cast, ok := tc.casts[name]; ok {
		return cast
	}

	if fn := tc.env.GetTypecast(name); fn != nil {
		cast := bindConn(fn, tc.conn)
		tc.casts[name] = cast
		return cast
	}

	if base, ok := strings.CutPrefix(name, "_"); ok && base != "" {
		baseCast := tc.Get(ctx, base)
		cast := tc.arrayCast(base, baseCast)
		if baseCast != nil {
			tc.casts[name] = cast
			tc.env.log(ctx, LogLevelDebug, "array typecast created", map[string]any{"type": name})
		}
		return cast
	}

	if tc.catalog == nil {
		return nil
	}

	attnames, err := tc.catalog.GetAttnames(ctx, name)
	if err != nil {
		return nil
	}
	if attnames == nil {
		tc.casts[name] = nil
		return nil
	}

	cast := tc.recordCast(ctx, name, attnames)
	tc.casts[name] = cast
	tc.env.log(ctx, LogLevelDebug, "record typecast created", map[string]any{"type": name, "fields": attnames.Names()})
	return cast
}

// arrayCast returns a cast for arrays whose elements are cast by baseCast. Elements are strings when baseCast is
// nil.
func (tc *Typecasts) arrayCast(base string, baseCast CastFunc) CastFunc {
	var delim byte
	if tc.catalog != nil {
		if t, ok := tc.catalog.byName[base]; ok && len(t.Delim) == 1 {
			delim = t.Delim[0]
		}
	}

	var elem pgtext.ElementFunc
	if baseCast != nil {
		elem = pgtext.ElementFunc(baseCast)
	}

	return func(s string) (any, error) {
		return pgtext.ParseArray(s, delim, elem)
	}
}

// recordCast returns a cast for the composite type name with the given fields. The result is a *Record.
func (tc *Typecasts) recordCast(ctx context.Context, name string, attnames *AttrDict) CastFunc {
	types := attnames.Types()
	casts := make([]CastFunc, len(types))
	for i, t := range types {
		casts[i] = tc.Get(ctx, t.PgType)
	}
	rt := tc.rows.Type(attnames.Names())

	return func(s string) (any, error) {
		fields, err := pgtext.ParseRecord(s, 0)
		if err != nil {
			return nil, err
		}

		if len(fields) != len(casts) {
			msg := "too many columns"
			if len(fields) < len(casts) {
				msg = "too few columns"
			}
			return nil, &pgtext.ParseError{Type: name, Text: s, Msg: msg}
		}

		values := make([]any, len(fields))
		for i, f := range fields {
			switch {
			case f == nil:
			case casts[i] == nil:
				values[i] = *f
			default:
				v, err := casts[i](*f)
				if err != nil {
					return nil, err
				}
				values[i] = v
			}
		}
		return rt.New(values)
	}
}

// Set registers fn as the cast for names on this connection. fn must be a CastFunc, a ConnCastFunc or a function
// with the signature of either. A nil fn removes the casts so that they are resolved again like after Reset. The
// casts for the array types of names are dropped so that they are rebuilt on the new cast.
func (tc *Typecasts) Set(fn any, names ...string) error {
	registered, err := castFuncOf(fn)
	if err != nil {
		return err
	}
	cast := bindConn(registered, tc.conn)

	for _, name := range names {
		if cast == nil {
			delete(tc.casts, name)
			delete(tc.user, name)
		} else {
			tc.casts[name] = cast
			tc.user[name] = struct{}{}
		}
		delete(tc.casts, "_"+name)
	}
	return nil
}

// Reset drops the casts for names and their array types so that they are resolved again. Without names every cast
// is dropped.
func (tc *Typecasts) Reset(names ...string) {
	if len(names) == 0 {
		clear(tc.casts)
		clear(tc.user)
		return
	}
	for _, name := range names {
		delete(tc.casts, name)
		delete(tc.casts, "_"+name)
		delete(tc.user, name)
		delete(tc.user, "_"+name)
	}
}

// flush drops the casts resolved from the environment and the catalog. Casts registered with Set are kept.
func (tc *Typecasts) flush() {
	for name := range tc.casts {
		if _, ok := tc.user[name]; !ok {
			delete(tc.casts, name)
		}
	}
}
