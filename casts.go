package pgcast

import (
	"encoding/json"
	"strconv"

	"github.com/gofrs/uuid"
	"github.com/jackc/pgcast/pgtext"
	"github.com/shopspring/decimal"
)

// CastFunc converts the text of a non-NULL database value to a Go value.
type CastFunc func(string) (any, error)

// ConnCastFunc is a CastFunc that also needs the connection the value was read from, e.g. to find out the current
// DateStyle. conn may be nil when a cast is used outside of a connection.
type ConnCastFunc func(s string, conn Conn) (any, error)

// castFuncOf converts fn to a CastFunc or ConnCastFunc. Plain functions with matching signatures are accepted.
func castFuncOf(fn any) (any, error) {
	switch fn := fn.(type) {
	case nil:
		return nil, nil
	case CastFunc:
		if fn == nil {
			return nil, nil
		}
		return fn, nil
	case ConnCastFunc:
		if fn == nil {
			return nil, nil
		}
		return fn, nil
	case func(string) (any, error):
		if fn == nil {
			return nil, nil
		}
		return CastFunc(fn), nil
	case func(string, Conn) (any, error):
		if fn == nil {
			return nil, nil
		}
		return ConnCastFunc(fn), nil
	default:
		return nil, &InvalidCastError{Cast: fn}
	}
}

// bindConn turns a registered cast into a CastFunc for conn.
func bindConn(fn any, conn Conn) CastFunc {
	switch fn := fn.(type) {
	case CastFunc:
		return fn
	case ConnCastFunc:
		return func(s string) (any, error) {
			return fn(s, conn)
		}
	default:
		return nil
	}
}

func castText(s string) (any, error) {
	return s, nil
}

func castInt(s string) (any, error) {
	n, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return nil, &pgtext.ParseError{Type: "int", Text: s, Err: err}
	}
	return n, nil
}

func castFloat(s string) (any, error) {
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return nil, &pgtext.ParseError{Type: "float", Text: s, Err: err}
	}
	return f, nil
}

// castDecimal is the default numeric constructor. NaN and the infinities cannot be represented by decimal.Decimal
// and are returned as float64.
func castDecimal(s string) (any, error) {
	d, err := decimal.NewFromString(s)
	if err == nil {
		return d, nil
	}
	if f, ferr := strconv.ParseFloat(s, 64); ferr == nil {
		return f, nil
	}
	return nil, &pgtext.ParseError{Type: "numeric", Text: s, Err: err}
}

func castUUID(s string) (any, error) {
	u, err := uuid.FromString(s)
	if err != nil {
		return nil, &pgtext.ParseError{Type: "uuid", Text: s, Err: err}
	}
	return u, nil
}

func castBytea(s string) (any, error) {
	return pgtext.UnescapeBytea(s)
}

func castHstore(s string) (any, error) {
	m, err := pgtext.ParseHstore(s)
	if err != nil {
		return nil, err
	}
	return Hstore(m), nil
}

func castInt2Vector(s string) (any, error) {
	return pgtext.ParseInt2Vector(s)
}

func castInterval(s string) (any, error) {
	return pgtext.ParseInterval(s)
}

func castTime(s string) (any, error) {
	return pgtext.ParseTime(s)
}

func castTimeTz(s string) (any, error) {
	return pgtext.ParseTimeTz(s)
}

func castDate(s string, conn Conn) (any, error) {
	return pgtext.ParseDate(s, dateStyle(conn))
}

func castTimestamp(s string, conn Conn) (any, error) {
	return pgtext.ParseTimestamp(s, dateStyle(conn))
}

func castTimestampTz(s string, conn Conn) (any, error) {
	return pgtext.ParseTimestampTz(s, dateStyle(conn))
}

// castAnyArray casts an array of unknown element type. Elements are kept as strings.
func castAnyArray(s string) (any, error) {
	return pgtext.ParseArray(s, 0, nil)
}

// castAnonymousRecord casts a record of unknown type to a Tuple of strings.
func castAnonymousRecord(s string) (any, error) {
	fields, err := pgtext.ParseRecord(s, 0)
	if err != nil {
		return nil, err
	}
	t := make(Tuple, len(fields))
	for i, f := range fields {
		if f != nil {
			t[i] = *f
		}
	}
	return t, nil
}

func jsonDecode(s string) (any, error) {
	var v any
	if err := json.Unmarshal([]byte(s), &v); err != nil {
		return nil, &pgtext.ParseError{Type: "json", Text: s, Err: err}
	}
	return v, nil
}

func jsonEncode(v any) (string, error) {
	buf, err := json.Marshal(v)
	if err != nil {
		return "", err
	}
	return string(buf), nil
}

// builtinCasts returns the default casts of env. Casts that depend on env settings read them on every call.
func builtinCasts(env *TypeEnv) map[string]any {
	casts := map[string]any{
		"bool": CastFunc(func(s string) (any, error) {
			if !env.CastBool() {
				return s, nil
			}
			return pgtext.ParseBool(s)
		}),
		"bytea":       CastFunc(castBytea),
		"int2":        CastFunc(castInt),
		"int4":        CastFunc(castInt),
		"serial":      CastFunc(castInt),
		"int8":        CastFunc(castInt),
		"oid":         CastFunc(castInt),
		"hstore":      CastFunc(castHstore),
		"float4":      CastFunc(castFloat),
		"float8":      CastFunc(castFloat),
		"numeric":     CastFunc(func(s string) (any, error) { return env.decimal()(s) }),
		"money":       CastFunc(func(s string) (any, error) { return env.decimal()(pgtext.NormalizeMoney(s, env.DecimalPoint())) }),
		"date":        ConnCastFunc(castDate),
		"interval":    CastFunc(castInterval),
		"time":        CastFunc(castTime),
		"timetz":      CastFunc(castTimeTz),
		"timestamp":   ConnCastFunc(castTimestamp),
		"timestamptz": ConnCastFunc(castTimestampTz),
		"int2vector":  CastFunc(castInt2Vector),
		"uuid":        CastFunc(castUUID),
		"anyarray":    CastFunc(castAnyArray),
		"record":      CastFunc(castAnonymousRecord),
	}

	castJSON := CastFunc(func(s string) (any, error) {
		if !env.CastJSON() {
			return s, nil
		}
		return env.jsonDecode()(s)
	})
	casts["json"] = castJSON
	casts["jsonb"] = castJSON

	for _, name := range []string{"char", "bpchar", "name", "text", "varchar", "sql_identifier"} {
		casts[name] = CastFunc(castText)
	}

	return casts
}
