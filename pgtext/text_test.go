package pgtext_test

import (
	"strconv"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/jackc/pgcast/pgtext"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func strPtr(s string) *string {
	return &s
}

func castInt(s string) (any, error) {
	return strconv.Atoi(s)
}

func TestParseArray(t *testing.T) {
	for i, tt := range []struct {
		text     string
		cast     pgtext.ElementFunc
		expected []any
	}{
		{"{}", nil, []any{}},
		{"{a,b,c}", nil, []any{"a", "b", "c"}},
		{"{1,2,NULL}", castInt, []any{1, 2, nil}},
		{"{null,Null}", nil, []any{nil, nil}},
		{`{"NULL",\NULL}`, nil, []any{"NULL", "NULL"}},
		{`{"a b","c,d","e\"f","g\\h",""}`, nil, []any{"a b", "c,d", `e"f`, `g\h`, ""}},
		{"{ hello world , x }", nil, []any{"hello world", "x"}},
		{"{{1,2},{3,4}}", castInt, []any{[]any{1, 2}, []any{3, 4}}},
		{"{{{1}},{{2}}}", castInt, []any{[]any{[]any{1}}, []any{[]any{2}}}},
		{"[0:1]={5,6}", castInt, []any{5, 6}},
		{"[1:2][1:1]={{a},{b}}", nil, []any{[]any{"a"}, []any{"b"}}},
		{"  {x}  ", nil, []any{"x"}},
	} {
		v, err := pgtext.ParseArray(tt.text, 0, tt.cast)
		require.NoErrorf(t, err, "%d. %q", i, tt.text)
		if diff := cmp.Diff(tt.expected, v); diff != "" {
			t.Errorf("%d. %q: mismatch (-want +got):\n%s", i, tt.text, diff)
		}
	}

	v, err := pgtext.ParseArray("{a;b}", ';', nil)
	require.NoError(t, err)
	assert.Equal(t, []any{"a", "b"}, v)
}

func TestParseArrayErrors(t *testing.T) {
	for _, text := range []string{
		"",
		"a,b",
		"{a,b",
		"{a,b}x",
		"{{1},2}",
		"{1,{2}}",
		"{a,,b}",
		"[1:2]{a,b}",
		"[1:1]={{a}}",
		`{"a}`,
	} {
		_, err := pgtext.ParseArray(text, 0, nil)
		require.ErrorIsf(t, err, pgtext.ErrMalformed, "%q", text)
	}

	_, err := pgtext.ParseArray("{a}", '{', nil)
	require.ErrorIs(t, err, pgtext.ErrMalformed)
}

func TestQuoteArrayElement(t *testing.T) {
	assert.Equal(t, "abc", pgtext.QuoteArrayElement("abc"))
	assert.Equal(t, `""`, pgtext.QuoteArrayElement(""))
	assert.Equal(t, `"null"`, pgtext.QuoteArrayElement("null"))
	assert.Equal(t, `"a b"`, pgtext.QuoteArrayElement("a b"))
	assert.Equal(t, `"{a}"`, pgtext.QuoteArrayElement("{a}"))
	assert.Equal(t, `"a\"b\\c"`, pgtext.QuoteArrayElement(`a"b\c`))

	for _, s := range []string{"abc", "", "null", "a b", "{a}", `a"b\c`, "x,y"} {
		v, err := pgtext.ParseArray("{"+pgtext.QuoteArrayElement(s)+"}", 0, nil)
		require.NoError(t, err)
		assert.Equal(t, []any{s}, v)
	}
}

func TestParseRecord(t *testing.T) {
	for i, tt := range []struct {
		text     string
		expected []*string
	}{
		{"(1,abc)", []*string{strPtr("1"), strPtr("abc")}},
		{"()", []*string{nil}},
		{"(,)", []*string{nil, nil}},
		{`(1,"")`, []*string{strPtr("1"), strPtr("")}},
		{`("a,b","c""d","e\\f")`, []*string{strPtr("a,b"), strPtr(`c"d`), strPtr(`e\f`)}},
		{`(a b,"(x)")`, []*string{strPtr("a b"), strPtr("(x)")}},
		{" (1) ", []*string{strPtr("1")}},
	} {
		fields, err := pgtext.ParseRecord(tt.text, 0)
		require.NoErrorf(t, err, "%d. %q", i, tt.text)
		if diff := cmp.Diff(tt.expected, fields); diff != "" {
			t.Errorf("%d. %q: mismatch (-want +got):\n%s", i, tt.text, diff)
		}
	}

	for _, text := range []string{"", "1,2", "(1,2", `("a)`, "(1)x"} {
		_, err := pgtext.ParseRecord(text, 0)
		require.ErrorIsf(t, err, pgtext.ErrMalformed, "%q", text)
	}
}

func TestQuoteRecordField(t *testing.T) {
	assert.Equal(t, "abc", pgtext.QuoteRecordField("abc"))
	assert.Equal(t, `""`, pgtext.QuoteRecordField(""))
	assert.Equal(t, `"a,b"`, pgtext.QuoteRecordField("a,b"))
	assert.Equal(t, `"(x)"`, pgtext.QuoteRecordField("(x)"))
	assert.Equal(t, `"a\"b"`, pgtext.QuoteRecordField(`a"b`))

	for _, s := range []string{"abc", "", "a,b", "(x)", `a"b`, `c\d`} {
		fields, err := pgtext.ParseRecord("("+pgtext.QuoteRecordField(s)+")", 0)
		require.NoError(t, err)
		require.Len(t, fields, 1)
		require.NotNil(t, fields[0])
		assert.Equal(t, s, *fields[0])
	}
}

func TestParseHstore(t *testing.T) {
	for i, tt := range []struct {
		text     string
		expected map[string]*string
	}{
		{"", map[string]*string{}},
		{`"a"=>"1"`, map[string]*string{"a": strPtr("1")}},
		{`a=>1, b=>NULL`, map[string]*string{"a": strPtr("1"), "b": nil}},
		{`"a"=>"NULL", "b"=>""`, map[string]*string{"a": strPtr("NULL"), "b": strPtr("")}},
		{`"k e y"=>"v\"a\\l"`, map[string]*string{"k e y": strPtr(`v"a\l`)}},
		{`"a"=>"1,2","b"=>NULL`, map[string]*string{"a": strPtr("1,2"), "b": nil}},
	} {
		m, err := pgtext.ParseHstore(tt.text)
		require.NoErrorf(t, err, "%d. %q", i, tt.text)
		if diff := cmp.Diff(tt.expected, m); diff != "" {
			t.Errorf("%d. %q: mismatch (-want +got):\n%s", i, tt.text, diff)
		}
	}

	for _, text := range []string{`a`, `a=1`, `a=>`, `"a=>1`, `a=>1 b=>2`, `a=>1,`, `=>1`} {
		_, err := pgtext.ParseHstore(text)
		require.ErrorIsf(t, err, pgtext.ErrMalformed, "%q", text)
	}
}

func TestFormatHstore(t *testing.T) {
	assert.Equal(t, `a=>"1,2",b=>NULL`, pgtext.FormatHstore(map[string]*string{"a": strPtr("1,2"), "b": nil}))
	assert.Equal(t, `"k y"=>"null",x=>""`, pgtext.FormatHstore(map[string]*string{"k y": strPtr("null"), "x": strPtr("")}))
	assert.Equal(t, "", pgtext.FormatHstore(nil))

	m := map[string]*string{"a=>b": strPtr(`"quoted"`), "c": strPtr(`back\slash`), "d": nil}
	parsed, err := pgtext.ParseHstore(pgtext.FormatHstore(m))
	require.NoError(t, err)
	if diff := cmp.Diff(m, parsed); diff != "" {
		t.Errorf("round trip mismatch (-want +got):\n%s", diff)
	}
}

func TestUnescapeBytea(t *testing.T) {
	buf, err := pgtext.UnescapeBytea(`\x00ff10`)
	require.NoError(t, err)
	assert.Equal(t, []byte{0, 0xff, 0x10}, buf)

	buf, err = pgtext.UnescapeBytea(`ab\\c\001\377`)
	require.NoError(t, err)
	assert.Equal(t, []byte{'a', 'b', '\\', 'c', 1, 0xff}, buf)

	_, err = pgtext.UnescapeBytea(`\xzz`)
	require.ErrorIs(t, err, pgtext.ErrMalformed)

	_, err = pgtext.UnescapeBytea(`\9`)
	require.ErrorIs(t, err, pgtext.ErrMalformed)

	assert.Equal(t, []byte(`\x0102`), pgtext.EscapeByteaHex([]byte{1, 2}))
}

func TestParseBool(t *testing.T) {
	b, err := pgtext.ParseBool("t")
	require.NoError(t, err)
	assert.True(t, b)

	b, err = pgtext.ParseBool("f")
	require.NoError(t, err)
	assert.False(t, b)

	_, err = pgtext.ParseBool("")
	require.ErrorIs(t, err, pgtext.ErrMalformed)
}

func TestParseInt2Vector(t *testing.T) {
	v, err := pgtext.ParseInt2Vector("1 2 3")
	require.NoError(t, err)
	assert.Equal(t, []int64{1, 2, 3}, v)

	v, err = pgtext.ParseInt2Vector("")
	require.NoError(t, err)
	assert.Empty(t, v)

	_, err = pgtext.ParseInt2Vector("1 x")
	require.ErrorIs(t, err, pgtext.ErrMalformed)
}
