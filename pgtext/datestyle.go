package pgtext

import "strings"

// DateStyle is the output format the server uses for date and timestamp values. It is derived from the DateStyle
// run-time parameter.
type DateStyle int8

const (
	DateStyleISO DateStyle = iota
	DateStylePostgresMDY
	DateStylePostgresDMY
	DateStyleSQLMDY
	DateStyleSQLDMY
	DateStyleGerman
)

var dateStyleSettings = [...]string{
	DateStyleISO:         "ISO, YMD",
	DateStylePostgresMDY: "Postgres, MDY",
	DateStylePostgresDMY: "Postgres, DMY",
	DateStyleSQLMDY:      "SQL, MDY",
	DateStyleSQLDMY:      "SQL, DMY",
	DateStyleGerman:      "German, DMY",
}

var dateStyleLayouts = [...]string{
	DateStyleISO:         "2006-01-02",
	DateStylePostgresMDY: "01-02-2006",
	DateStylePostgresDMY: "02-01-2006",
	DateStyleSQLMDY:      "01/02/2006",
	DateStyleSQLDMY:      "02/01/2006",
	DateStyleGerman:      "02.01.2006",
}

// ParseDateStyle converts the value of the DateStyle run-time parameter (e.g. "ISO, MDY" or "SQL, DMY") to a
// DateStyle. Empty and unrecognized settings are treated as ISO.
func ParseDateStyle(setting string) DateStyle {
	setting = strings.TrimSpace(setting)
	if setting == "" {
		return DateStyleISO
	}

	dmy := false
	if i := strings.IndexByte(setting, ','); i >= 0 {
		dmy = strings.HasPrefix(strings.TrimLeft(setting[i+1:], " "), "D")
	}

	switch setting[0] {
	case 'P':
		if dmy {
			return DateStylePostgresDMY
		}
		return DateStylePostgresMDY
	case 'S':
		if dmy {
			return DateStyleSQLDMY
		}
		return DateStyleSQLMDY
	case 'G':
		return DateStyleGerman
	default:
		return DateStyleISO
	}
}

// String returns the DateStyle setting that produces ds.
func (ds DateStyle) String() string {
	if ds < 0 || int(ds) >= len(dateStyleSettings) {
		return dateStyleSettings[DateStyleISO]
	}
	return dateStyleSettings[ds]
}

// Layout returns the time package layout of a date in style ds.
func (ds DateStyle) Layout() string {
	if ds < 0 || int(ds) >= len(dateStyleLayouts) {
		return dateStyleLayouts[DateStyleISO]
	}
	return dateStyleLayouts[ds]
}

// IsPostgres reports whether ds is one of the traditional Postgres styles that spell out month names in timestamps.
func (ds DateStyle) IsPostgres() bool {
	return ds == DateStylePostgresMDY || ds == DateStylePostgresDMY
}

func (ds DateStyle) dayFirst() bool {
	return ds == DateStylePostgresDMY || ds == DateStyleSQLDMY || ds == DateStyleGerman
}
