package pgtext

import (
	"strings"
	"time"
)

func monthDayLayout(style DateStyle) string {
	if style.dayFirst() {
		return "02 Jan"
	}
	return "Jan 02"
}

// ParseTimestamp parses a timestamp without time zone in the text format the server produces for style.
func ParseTimestamp(s string, style DateStyle) (time.Time, error) {
	switch s {
	case "-infinity":
		return MinTimestamp, nil
	case "infinity":
		return MaxTimestamp, nil
	}

	fields := strings.Fields(s)
	if len(fields) == 0 {
		return time.Time{}, parseError("timestamp", s, "", nil)
	}
	if fields[len(fields)-1] == "BC" {
		return MinTimestamp, nil
	}

	var layout, value string
	if style.IsPostgres() && len(fields) > 2 {
		// Wed Dec 17 07:37:16 1997 PST
		if len(fields) < 5 {
			return time.Time{}, parseError("timestamp", s, "", nil)
		}
		values := fields[1:5]
		if len(values[3]) > 4 {
			return MaxTimestamp, nil
		}
		layout = monthDayLayout(style) + " " + clockLayout + " 2006"
		value = strings.Join(values, " ")
	} else {
		if len(fields) < 2 {
			return time.Time{}, parseError("timestamp", s, "", nil)
		}
		if len(fields[0]) > 10 {
			return MaxTimestamp, nil
		}
		layout = style.Layout() + " " + clockLayout
		value = fields[0] + " " + fields[1]
	}

	t, err := time.Parse(layout, value)
	if err != nil {
		return time.Time{}, parseError("timestamp", s, "", err)
	}
	return t, nil
}

// ParseTimestampTz parses a timestamp with time zone in the text format the server produces for style. The result
// carries a fixed zone with the offset found in s.
func ParseTimestampTz(s string, style DateStyle) (time.Time, error) {
	switch s {
	case "-infinity":
		return MinTimestamp, nil
	case "infinity":
		return MaxTimestamp, nil
	}

	fields := strings.Fields(s)
	if len(fields) == 0 {
		return time.Time{}, parseError("timestamptz", s, "", nil)
	}
	if fields[len(fields)-1] == "BC" {
		return MinTimestamp, nil
	}

	var layout, value string
	tz := "+0000"
	if style.IsPostgres() && len(fields) > 2 {
		values := fields[1:]
		if len(values) < 4 {
			return time.Time{}, parseError("timestamptz", s, "", nil)
		}
		if len(values[3]) > 4 {
			return MaxTimestamp, nil
		}
		if len(values) > 4 {
			tz = values[len(values)-1]
		}
		layout = monthDayLayout(style) + " " + clockLayout + " 2006"
		value = strings.Join(values[:4], " ")
	} else {
		if len(fields) < 2 {
			return time.Time{}, parseError("timestamptz", s, "", nil)
		}
		date, clock := fields[0], fields[1]
		if style == DateStyleISO {
			if i := strings.LastIndexAny(clock, "+-"); i >= 0 {
				clock, tz = clock[:i], clock[i:]
			}
		} else if len(fields) > 2 {
			tz = fields[len(fields)-1]
		}
		if len(date) > 10 {
			return MaxTimestamp, nil
		}
		layout = style.Layout() + " " + clockLayout
		value = date + " " + clock
	}

	offset := TimezoneOffset(tz)
	t, err := time.Parse(layout+" "+offsetLayout(offset), value+" "+offset)
	if err != nil {
		return time.Time{}, parseError("timestamptz", s, "", err)
	}
	return t, nil
}
