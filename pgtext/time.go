package pgtext

import (
	"strings"
	"time"
)

const clockLayout = "15:04:05"

// timezone abbreviations used in PostgreSQL timestamptz output
var timezoneOffsets = map[string]string{
	"CET": "+0100", "EET": "+0200", "EST": "-0500",
	"GMT": "+0000", "HST": "-1000", "MET": "+0100", "MST": "-0700",
	"UCT": "+0000", "UTC": "+0000", "WET": "+0000",
}

// TimezoneOffset converts a time zone suffix to a numeric "+HHMM" offset. Numeric suffixes such as "+01" or "-05:30"
// are normalized; abbreviations are looked up in a small table of the zones the server emits. Unknown abbreviations
// are treated as UTC.
func TimezoneOffset(tz string) string {
	if strings.HasPrefix(tz, "+") || strings.HasPrefix(tz, "-") {
		if len(tz) < 5 {
			return tz + "00"
		}
		return strings.ReplaceAll(tz, ":", "")
	}
	if offset, ok := timezoneOffsets[tz]; ok {
		return offset
	}
	return "+0000"
}

func offsetLayout(offset string) string {
	if len(offset) > 5 {
		return "-070000"
	}
	return "-0700"
}

// ParseTime parses a time without time zone. The date of the result is January 1 of year 0.
func ParseTime(s string) (time.Time, error) {
	t, err := time.Parse(clockLayout, s)
	if err != nil {
		return time.Time{}, parseError("time", s, "", err)
	}
	return t, nil
}

// ParseTimeTz parses a time with time zone. A missing zone is treated as UTC.
func ParseTimeTz(s string) (time.Time, error) {
	clock, tz := s, "+0000"
	if i := strings.LastIndexAny(s, "+-"); i >= 0 {
		clock, tz = s[:i], s[i:]
	}

	offset := TimezoneOffset(tz)
	t, err := time.Parse(clockLayout+offsetLayout(offset), clock+offset)
	if err != nil {
		return time.Time{}, parseError("timetz", s, "", err)
	}
	return t, nil
}
