package numeric_test

import (
	"context"
	"testing"

	"github.com/cockroachdb/apd"
	"github.com/jackc/pgcast"
	numeric "github.com/jackc/pgcast/ext/apd-numeric"
	"github.com/jackc/pgcast/pgtext"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTypes() *pgcast.DbTypes {
	env := pgcast.NewTypeEnv(pgcast.Config{DecimalPoint: ","})
	numeric.Register(env)
	return pgcast.NewDbTypes(nil, env)
}

func mustDecimal(t *testing.T, s string) *apd.Decimal {
	d, _, err := apd.NewFromString(s)
	require.NoError(t, err)
	return d
}

func TestTypecast(t *testing.T) {
	ctx := context.Background()
	types := newTypes()

	for i, tt := range []struct {
		typ  string
		text string
		want string
	}{
		{"numeric", "1234.5678", "1234.5678"},
		{"numeric", "-0.000001", "-0.000001"},
		{"numeric", "NaN", "NaN"},
		{"numeric", "Infinity", "Infinity"},
		{"money", "34,25€", "34.25"},
		{"money", "(34,25 €)", "-34.25"},
	} {
		v, err := types.Typecast(ctx, tt.text, tt.typ)
		require.NoErrorf(t, err, "%d. %q", i, tt.text)
		d, ok := v.(*apd.Decimal)
		require.Truef(t, ok, "%d. %q: %T", i, tt.text, v)
		assert.Equalf(t, tt.want, d.String(), "%d. %q", i, tt.text)
	}

	_, err := types.Typecast(ctx, "12x", "numeric")
	assert.ErrorIs(t, err, pgtext.ErrMalformed)
}

func TestAdapt(t *testing.T) {
	ctx := context.Background()
	a := pgcast.NewAdapter(nil, newTypes())

	s, err := a.AdaptInline(ctx, mustDecimal(t, "12.50"), false)
	require.NoError(t, err)
	assert.Equal(t, "12.50", s)

	s, err = a.AdaptInline(ctx, mustDecimal(t, "NaN"), false)
	require.NoError(t, err)
	assert.Equal(t, "'NaN'", s)

	v, err := a.Adapt(ctx, []*apd.Decimal{mustDecimal(t, "1.5"), nil, mustDecimal(t, "-2")}, nil)
	require.NoError(t, err)
	assert.Equal(t, "{1.5,null,-2}", v)
}
