package pgcast

import "github.com/jackc/pgcast/pgtext"

// Hstore marks a value to be adapted as hstore. It is also the result of casting an hstore value. A nil value
// pointer is NULL.
type Hstore map[string]*string

// String returns the hstore text of h with keys in sorted order.
func (h Hstore) String() string {
	return pgtext.FormatHstore(h)
}

// Json marks a value to be adapted as json. Encode overrides the environment's JSON encoder.
type Json struct {
	Value  any
	Encode func(any) (string, error)
}

// Literal is SQL text that is inserted into a query as is. Adapters never quote or escape it.
type Literal string

// Bytea marks a value to be adapted as bytea.
type Bytea []byte

// Tuple is adapted as a record. It is also the result of casting a record of unknown type.
type Tuple []any

// PgStrer is implemented by values that convert themselves before they are adapted to a database type. typ is the
// name of the type, or its simple name when no type is known.
type PgStrer interface {
	PgStr(typ string) any
}

// PgReprer is implemented by values that can be inlined into SQL. PgRepr returns either a SQL literal as a string
// or a slice or Tuple that is inlined recursively.
type PgReprer interface {
	PgRepr() any
}
