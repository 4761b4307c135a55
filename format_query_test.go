package pgcast_test

import (
	"context"
	"testing"

	"github.com/jackc/pgcast"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFormatQueryPositional(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	a, _, _ := newTestAdapter(t)

	for i, tt := range []struct {
		command  string
		values   any
		types    any
		sql      string
		params   []any
	}{
		{"select 1", nil, nil, "select 1", nil},
		{"select %s", []any{}, nil, "select %s", nil},
		{"select %s, %s", []any{1, "a"}, nil, "select $1, $2", []any{1, "a"}},
		{"select %s", pgcast.Tuple{[]int{1, 2}}, nil, "select $1", []any{"{1,2}"}},
		{"select %s, %s", []any{"yes", ""}, "bool int4", "select $1, $2", []any{"t", nil}},
		{"select %s", []any{"on"}, []string{"bool"}, "select $1", []any{"t"}},
		{"select %s", []any{"on"}, []any{pgcast.SimpleType{Base: pgcast.SimpleBool}}, "select $1", []any{"t"}},
		{"select %s, %s", []any{"current_date", 5}, "date int", "select current_date, $1", []any{5}},
		{"select * from t where name like 'a%%' and id = %s", []any{1}, nil, "select * from t where name like 'a%' and id = $1", []any{1}},
		{"select %s -- %s", []any{1, 2}, nil, "select $1 -- $2", []any{1, 2}},
		{"select 100%% * %s", []any{2}, nil, "select 100% * $1", []any{2}},
	} {
		sql, params, err := a.FormatQuery(ctx, tt.command, tt.values, tt.types, false)
		require.NoErrorf(t, err, "%d. %q", i, tt.command)
		assert.Equalf(t, tt.sql, sql, "%d. %q", i, tt.command)
		assert.Equalf(t, tt.params, params.Values(), "%d. %q", i, tt.command)
	}
}

func TestFormatQueryNamed(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	a, _, _ := newTestAdapter(t)

	sql, params, err := a.FormatQuery(ctx, "select %(a)s,%(b)s", map[string]any{"a": 1, "b": 2, "c": 99}, nil, false)
	require.NoError(t, err)
	assert.Equal(t, "select $1,$2", sql)
	assert.Equal(t, []any{1, 2}, params.Values())

	sql, params, err = a.FormatQuery(ctx, "select %(b)s, %(a)s, %(b)s", map[string]any{"a": "x", "b": "y"}, nil, false)
	require.NoError(t, err)
	assert.Equal(t, "select $2, $1, $2", sql, "parameters are numbered in key order")
	assert.Equal(t, []any{"x", "y"}, params.Values())

	sql, params, err = a.FormatQuery(ctx, "select %(flag)s, %(n)s", map[string]any{"flag": "yes", "n": ""},
		map[string]string{"flag": "bool", "n": "int4"}, false)
	require.NoError(t, err)
	assert.Equal(t, "select $1, $2", sql)
	assert.Equal(t, []any{"t", nil}, params.Values())

	sql, params, err = a.FormatQuery(ctx, "select %(p)s", map[string]any{"p": pgcast.Tuple{"k", 1}},
		map[string]any{"p": "pair"}, false)
	require.NoError(t, err)
	assert.Equal(t, "select $1", sql)
	assert.Equal(t, []any{"(k,1)"}, params.Values())

	_, _, err = a.FormatQuery(ctx, "select %(a)s, %(missing)s", map[string]any{"a": 1}, nil, false)
	require.Error(t, err)
}

func TestFormatQueryInline(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	a, _, _ := newTestAdapter(t)

	sql, params, err := a.FormatQuery(ctx, "select %s, %s, %s", []any{"it's", []int{1, 2}, nil}, nil, true)
	require.NoError(t, err)
	assert.Equal(t, "select 'it''s', ARRAY[1,2], NULL", sql)
	assert.Zero(t, params.Len())

	sql, _, err = a.FormatQuery(ctx, "select %(a)s,%(b)s", map[string]any{"a": 1, "b": true, "c": struct{}{}}, nil, true)
	require.NoError(t, err)
	assert.Equal(t, "select 1,true", sql, "unused values are not adapted")

	sql, _, err = a.FormatQuery(ctx, "select * from t where name like 'a%%' and id = %s", []any{1}, nil, true)
	require.NoError(t, err)
	assert.Equal(t, "select * from t where name like 'a%' and id = 1", sql)

	_, _, err = a.FormatQuery(ctx, "select %s", []any{struct{}{}}, nil, true)
	require.Error(t, err)
}

func TestFormatQueryErrors(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	a, _, _ := newTestAdapter(t)

	for i, tt := range []struct {
		command string
		values  any
		types   any
		inline  bool
	}{
		{"select %s", []any{1}, "int4", true},
		{"select %s", []any{1}, "int4 int4", false},
		{"select %s", []any{1}, map[string]string{"a": "int4"}, false},
		{"select %(a)s", map[string]any{"a": 1}, []string{"int4"}, false},
		{"select %s", []any{1, 2}, nil, false},
		{"select %s, %s", []any{1}, nil, false},
		{"select %s, %(a)s", []any{1}, nil, false},
		{"select %(a)s", []any{1}, nil, false},
		{"select %s", "not a list", nil, false},
		{"select %d", []any{1}, nil, false},
		{"select %(a", map[string]any{"a": 1}, nil, false},
	} {
		_, _, err := a.FormatQuery(ctx, tt.command, tt.values, tt.types, tt.inline)
		require.Errorf(t, err, "%d. %q", i, tt.command)
	}
}
