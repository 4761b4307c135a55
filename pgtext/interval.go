package pgtext

import (
	"regexp"
	"strconv"
	"time"
)

const (
	daysPerYear  = 365
	daysPerMonth = 30
)

var (
	intervalISO8601 = regexp.MustCompile(`^P(?:([+-]?[0-9]+)Y)?` +
		`(?:([+-]?[0-9]+)M)?` +
		`(?:([+-]?[0-9]+)D)?` +
		`(?:T(?:([+-]?[0-9]+)H)?` +
		`(?:([+-]?[0-9]+)M)?` +
		`(?:([+-])?([0-9]+)(?:\.([0-9]+))?S)?)?`)

	intervalPostgresVerbose = regexp.MustCompile(`^@ ?(?:([+-]?[0-9]+) ?years? ?)?` +
		`(?:([+-]?[0-9]+) ?mons? ?)?` +
		`(?:([+-]?[0-9]+) ?days? ?)?` +
		`(?:([+-]?[0-9]+) ?hours? ?)?` +
		`(?:([+-]?[0-9]+) ?mins? ?)?` +
		`(?:([+-])?([0-9]+)(?:\.([0-9]+))? ?secs?)? ?(ago)?`)

	intervalPostgres = regexp.MustCompile(`^(?:([+-]?[0-9]+) ?years? ?)?` +
		`(?:([+-]?[0-9]+) ?mons? ?)?` +
		`(?:([+-]?[0-9]+) ?days? ?)?` +
		`(?:([+-])?([0-9]+):([0-9]+):([0-9]+)(?:\.([0-9]+))?)?`)

	// The day count must not be the hour of the time part that follows.
	intervalSQLStandard = regexp.MustCompile(`^(?:([+-])?([0-9]+)-([0-9]+) ?)?` +
		`(?:([+-]?[0-9]+)(?: |$))?` +
		`(?:([+-])?([0-9]+):([0-9]+):([0-9]+)(?:\.([0-9]+))?)?`)
)

type intervalParts struct {
	years, months, days, hours, minutes, seconds, microseconds int64
}

func (p *intervalParts) negateTime() {
	p.hours, p.minutes, p.seconds, p.microseconds = -p.hours, -p.minutes, -p.seconds, -p.microseconds
}

func (p *intervalParts) negateSeconds() {
	p.seconds, p.microseconds = -p.seconds, -p.microseconds
}

func (p *intervalParts) duration() time.Duration {
	days := p.days + daysPerYear*p.years + daysPerMonth*p.months
	return time.Duration(days)*24*time.Hour +
		time.Duration(p.hours)*time.Hour +
		time.Duration(p.minutes)*time.Minute +
		time.Duration(p.seconds)*time.Second +
		time.Duration(p.microseconds)*time.Microsecond
}

// ParseInterval parses an interval in any of the four IntervalStyle output formats: iso_8601, postgres_verbose,
// postgres and sql_standard. The formats are tried in that order and the first one that matches something is used.
func ParseInterval(s string) (time.Duration, error) {
	var p intervalParts
	var err error

	if m := submatch(intervalISO8601, s); m != nil {
		// P1Y2M3DT4H5M6.7S
		err = scanInts(m, &p.years, &p.months, &p.days, &p.hours, &p.minutes, nil, &p.seconds)
		p.microseconds = fraction(m[7])
		if m[5] == "-" {
			p.negateSeconds()
		}
	} else if m := submatch(intervalPostgresVerbose, s); m != nil {
		// @ 1 year 2 mons 3 days 4 hours 5 mins 6.7 secs ago
		err = scanInts(m, &p.years, &p.months, &p.days, &p.hours, &p.minutes, nil, &p.seconds)
		p.microseconds = fraction(m[7])
		if m[8] != "" {
			p.years, p.months, p.days = -p.years, -p.months, -p.days
			p.negateTime()
		}
		if m[5] == "-" {
			p.negateSeconds()
		}
	} else if m := submatch(intervalPostgres, s); m != nil {
		// 1 year 2 mons 3 days 04:05:06.7
		err = scanInts(m, &p.years, &p.months, &p.days, nil, &p.hours, &p.minutes, &p.seconds)
		p.microseconds = fraction(m[7])
		if m[3] == "-" {
			p.negateTime()
		}
	} else if m := submatch(intervalSQLStandard, s); m != nil {
		// +1-2 +3 +4:05:06.7
		err = scanInts(m, nil, &p.years, &p.months, &p.days, nil, &p.hours, &p.minutes, &p.seconds)
		p.microseconds = fraction(m[8])
		if m[0] == "-" {
			p.years, p.months = -p.years, -p.months
		}
		if m[4] == "-" {
			p.negateTime()
		}
	} else {
		return 0, parseError("interval", s, "", nil)
	}

	if err != nil {
		return 0, parseError("interval", s, "", err)
	}
	return p.duration(), nil
}

// submatch returns the capture groups of re in s, or nil if re does not match or captures nothing.
func submatch(re *regexp.Regexp, s string) []string {
	m := re.FindStringSubmatch(s)
	if m == nil {
		return nil
	}
	groups := m[1:]
	for _, g := range groups {
		if g != "" {
			return groups
		}
	}
	return nil
}

// scanInts parses groups into dst positionally. Nil destinations skip a group.
func scanInts(groups []string, dst ...*int64) error {
	for i, d := range dst {
		if d == nil || groups[i] == "" {
			continue
		}
		n, err := strconv.ParseInt(groups[i], 10, 64)
		if err != nil {
			return err
		}
		*d = n
	}
	return nil
}

// fraction converts the digits after a decimal point to microseconds.
func fraction(digits string) int64 {
	if digits == "" {
		return 0
	}
	if len(digits) > 6 {
		digits = digits[:6]
	}
	n, _ := strconv.ParseInt(digits, 10, 64)
	for i := len(digits); i < 6; i++ {
		n *= 10
	}
	return n
}
