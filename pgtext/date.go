package pgtext

import (
	"strings"
	"time"
)

// Bounds used in place of dates and timestamps that cannot be represented: the infinity sentinels, dates before
// Christ and years with more than four digits.
var (
	MinDate      = time.Date(1, time.January, 1, 0, 0, 0, 0, time.UTC)
	MaxDate      = time.Date(9999, time.December, 31, 0, 0, 0, 0, time.UTC)
	MinTimestamp = MinDate
	MaxTimestamp = time.Date(9999, time.December, 31, 23, 59, 59, 999999000, time.UTC)
)

// ParseDate parses a date in the text format the server produces for style.
func ParseDate(s string, style DateStyle) (time.Time, error) {
	switch s {
	case "-infinity":
		return MinDate, nil
	case "infinity":
		return MaxDate, nil
	}

	fields := strings.Fields(s)
	if len(fields) == 0 {
		return time.Time{}, parseError("date", s, "", nil)
	}
	if fields[len(fields)-1] == "BC" {
		return MinDate, nil
	}
	if len(fields[0]) > 10 {
		return MaxDate, nil
	}

	t, err := time.Parse(style.Layout(), fields[0])
	if err != nil {
		return time.Time{}, parseError("date", s, "", err)
	}
	return t, nil
}
