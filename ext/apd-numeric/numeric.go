// Package numeric makes pgcast return numeric and money values as *apd.Decimal from
// github.com/cockroachdb/apd. Unlike the default decimal type, apd.Decimal represents NaN and the infinities.
package numeric

import (
	"github.com/cockroachdb/apd"
	"github.com/jackc/pgcast"
	"github.com/jackc/pgcast/pgtext"
)

// Register makes env construct numeric and money values with CastNumeric and adapt *apd.Decimal values as numbers.
func Register(env *pgcast.TypeEnv) {
	env.SetDecimal(CastNumeric)
	env.RegisterSimpleType(&apd.Decimal{}, pgcast.SimpleType{Base: pgcast.SimpleNum})
	env.RegisterSimpleType([]*apd.Decimal(nil), pgcast.SimpleType{Base: pgcast.SimpleNum, Array: true})
}

// CastNumeric parses the text of a numeric value.
func CastNumeric(s string) (any, error) {
	d, _, err := apd.NewFromString(s)
	if err != nil {
		return nil, &pgtext.ParseError{Type: "numeric", Text: s, Err: err}
	}
	return d, nil
}
