package pgtext_test

import (
	"testing"
	"time"

	"github.com/jackc/pgcast/pgtext"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseDateStyle(t *testing.T) {
	for i, tt := range []struct {
		setting  string
		expected pgtext.DateStyle
	}{
		{"ISO, MDY", pgtext.DateStyleISO},
		{"ISO, DMY", pgtext.DateStyleISO},
		{"", pgtext.DateStyleISO},
		{"Postgres, MDY", pgtext.DateStylePostgresMDY},
		{"Postgres, DMY", pgtext.DateStylePostgresDMY},
		{"SQL, MDY", pgtext.DateStyleSQLMDY},
		{"SQL, DMY", pgtext.DateStyleSQLDMY},
		{"German, DMY", pgtext.DateStyleGerman},
		{"German", pgtext.DateStyleGerman},
	} {
		assert.Equalf(t, tt.expected, pgtext.ParseDateStyle(tt.setting), "%d. %q", i, tt.setting)
	}
}

func TestParseDate(t *testing.T) {
	date := time.Date(2016, time.November, 30, 0, 0, 0, 0, time.UTC)

	for i, tt := range []struct {
		text     string
		style    pgtext.DateStyle
		expected time.Time
	}{
		{"2016-11-30", pgtext.DateStyleISO, date},
		{"11-30-2016", pgtext.DateStylePostgresMDY, date},
		{"30-11-2016", pgtext.DateStylePostgresDMY, date},
		{"11/30/2016", pgtext.DateStyleSQLMDY, date},
		{"30/11/2016", pgtext.DateStyleSQLDMY, date},
		{"30.11.2016", pgtext.DateStyleGerman, date},
		{"infinity", pgtext.DateStyleISO, pgtext.MaxDate},
		{"-infinity", pgtext.DateStyleISO, pgtext.MinDate},
		{"0099-01-08 BC", pgtext.DateStyleISO, pgtext.MinDate},
		{"10000-01-01", pgtext.DateStyleISO, pgtext.MaxDate},
	} {
		d, err := pgtext.ParseDate(tt.text, tt.style)
		require.NoErrorf(t, err, "%d. %q", i, tt.text)
		assert.Truef(t, tt.expected.Equal(d), "%d. %q: got %v", i, tt.text, d)
	}

	_, err := pgtext.ParseDate("2016-30-11", pgtext.DateStyleISO)
	require.ErrorIs(t, err, pgtext.ErrMalformed)

	_, err = pgtext.ParseDate("", pgtext.DateStyleISO)
	require.ErrorIs(t, err, pgtext.ErrMalformed)
}

func TestTimezoneOffset(t *testing.T) {
	assert.Equal(t, "+0100", pgtext.TimezoneOffset("CET"))
	assert.Equal(t, "-0500", pgtext.TimezoneOffset("EST"))
	assert.Equal(t, "+0000", pgtext.TimezoneOffset("UTC"))
	assert.Equal(t, "+0000", pgtext.TimezoneOffset("PST"))
	assert.Equal(t, "+0100", pgtext.TimezoneOffset("+01"))
	assert.Equal(t, "-0530", pgtext.TimezoneOffset("-05:30"))
	assert.Equal(t, "+013015", pgtext.TimezoneOffset("+01:30:15"))
}

func TestParseTime(t *testing.T) {
	tm, err := pgtext.ParseTime("04:05:06.789")
	require.NoError(t, err)
	assert.Equal(t, 4, tm.Hour())
	assert.Equal(t, 5, tm.Minute())
	assert.Equal(t, 6, tm.Second())
	assert.Equal(t, 789000000, tm.Nanosecond())

	tm, err = pgtext.ParseTimeTz("04:05:06-08")
	require.NoError(t, err)
	_, offset := tm.Zone()
	assert.Equal(t, -8*3600, offset)
	assert.Equal(t, 4, tm.Hour())

	tm, err = pgtext.ParseTimeTz("04:05:06+05:30")
	require.NoError(t, err)
	_, offset = tm.Zone()
	assert.Equal(t, 5*3600+30*60, offset)

	_, err = pgtext.ParseTime("4 o'clock")
	require.ErrorIs(t, err, pgtext.ErrMalformed)
}

func TestParseTimestamp(t *testing.T) {
	ts := time.Date(1997, time.December, 17, 7, 37, 16, 0, time.UTC)

	for i, tt := range []struct {
		text  string
		style pgtext.DateStyle
	}{
		{"1997-12-17 07:37:16", pgtext.DateStyleISO},
		{"Wed Dec 17 07:37:16 1997", pgtext.DateStylePostgresMDY},
		{"Wed 17 Dec 07:37:16 1997", pgtext.DateStylePostgresDMY},
		{"12/17/1997 07:37:16.00", pgtext.DateStyleSQLMDY},
		{"17/12/1997 07:37:16.00", pgtext.DateStyleSQLDMY},
		{"17.12.1997 07:37:16.00", pgtext.DateStyleGerman},
	} {
		got, err := pgtext.ParseTimestamp(tt.text, tt.style)
		require.NoErrorf(t, err, "%d. %q", i, tt.text)
		assert.Truef(t, ts.Equal(got), "%d. %q: got %v", i, tt.text, got)
	}

	got, err := pgtext.ParseTimestamp("infinity", pgtext.DateStyleISO)
	require.NoError(t, err)
	assert.Equal(t, pgtext.MaxTimestamp, got)

	got, err = pgtext.ParseTimestamp("0044-03-15 12:00:00 BC", pgtext.DateStyleISO)
	require.NoError(t, err)
	assert.Equal(t, pgtext.MinTimestamp, got)

	got, err = pgtext.ParseTimestamp("Fri Mar 15 12:00:00 10000", pgtext.DateStylePostgresMDY)
	require.NoError(t, err)
	assert.Equal(t, pgtext.MaxTimestamp, got)

	_, err = pgtext.ParseTimestamp("1997-12-17", pgtext.DateStyleISO)
	require.ErrorIs(t, err, pgtext.ErrMalformed)
}

func TestParseTimestampTz(t *testing.T) {
	ts := time.Date(1997, time.December, 17, 15, 37, 16, 0, time.UTC)

	for i, tt := range []struct {
		text  string
		style pgtext.DateStyle
	}{
		{"1997-12-17 07:37:16-08", pgtext.DateStyleISO},
		{"1997-12-17 16:37:16+01:00", pgtext.DateStyleISO},
		{"Wed Dec 17 07:37:16 1997 -08", pgtext.DateStylePostgresMDY},
		{"Wed 17 Dec 16:37:16 1997 CET", pgtext.DateStylePostgresDMY},
		{"12/17/1997 10:37:16.00 EST", pgtext.DateStyleSQLMDY},
		{"17.12.1997 15:37:16.00 UTC", pgtext.DateStyleGerman},
	} {
		got, err := pgtext.ParseTimestampTz(tt.text, tt.style)
		require.NoErrorf(t, err, "%d. %q", i, tt.text)
		assert.Truef(t, ts.Equal(got), "%d. %q: got %v", i, tt.text, got)
	}

	got, err := pgtext.ParseTimestampTz("1997-12-17 07:37:16.5+00", pgtext.DateStyleISO)
	require.NoError(t, err)
	assert.Equal(t, 500000000, got.Nanosecond())

	got, err = pgtext.ParseTimestampTz("-infinity", pgtext.DateStyleISO)
	require.NoError(t, err)
	assert.Equal(t, pgtext.MinTimestamp, got)
}

func TestParseInterval(t *testing.T) {
	day := 24 * time.Hour

	for i, tt := range []struct {
		text     string
		expected time.Duration
	}{
		{"P1Y2M3DT4H5M6.7S", 428*day + 4*time.Hour + 5*time.Minute + 6700*time.Millisecond},
		{"PT-6S", -6 * time.Second},
		{"P-1D", -day},
		{"@ 1 year 2 mons 3 days 4 hours 5 mins 6.7 secs", 428*day + 4*time.Hour + 5*time.Minute + 6700*time.Millisecond},
		{"@ 3 days 4 hours ago", -(3*day + 4*time.Hour)},
		{"@ 1 day -6 secs", day - 6*time.Second},
		{"@ 2 mins 6 secs ago", -(2*time.Minute + 6*time.Second)},
		{"1 year 2 mons 3 days 04:05:06.7", 428*day + 4*time.Hour + 5*time.Minute + 6700*time.Millisecond},
		{"3 days -04:05:06", 3*day - (4*time.Hour + 5*time.Minute + 6*time.Second)},
		{"-1 days", -day},
		{"00:00:00", 0},
		{"00:00:00.000001", time.Microsecond},
		{"1-2 3 4:05:06.7", 428*day + 4*time.Hour + 5*time.Minute + 6700*time.Millisecond},
		{"-1-2 +3 -4:05:06", -425*day + 3*day - (4*time.Hour + 5*time.Minute + 6*time.Second)},
		{"3 4:05:06", 3*day + 4*time.Hour + 5*time.Minute + 6*time.Second},
	} {
		d, err := pgtext.ParseInterval(tt.text)
		require.NoErrorf(t, err, "%d. %q", i, tt.text)
		assert.Equalf(t, tt.expected, d, "%d. %q", i, tt.text)
	}

	for _, text := range []string{"", "forever", "P", "@"} {
		_, err := pgtext.ParseInterval(text)
		require.ErrorIsf(t, err, pgtext.ErrMalformed, "%q", text)
	}
}

func TestNormalizeMoney(t *testing.T) {
	assert.Equal(t, "34.25", pgtext.NormalizeMoney("$34.25", "."))
	assert.Equal(t, "34.25", pgtext.NormalizeMoney("34,25€", ","))
	assert.Equal(t, "-1234.50", pgtext.NormalizeMoney("($1,234.50)", "."))
	assert.Equal(t, "-1234.50", pgtext.NormalizeMoney("-$1,234.50", ""))

	m, err := pgtext.ParseMoney("34,25€", ",")
	require.NoError(t, err)
	assert.Equal(t, "34.25", m.String())

	m2, err := pgtext.ParseMoney("$34.25", ".")
	require.NoError(t, err)
	assert.True(t, m.Equal(m2))

	_, err = pgtext.ParseMoney("free", ".")
	require.ErrorIs(t, err, pgtext.ErrMalformed)
}
