package pgtext

import (
	"strconv"
	"strings"
)

// ParseBool parses the text form of a boolean. Only the first character is significant.
func ParseBool(s string) (bool, error) {
	if s == "" {
		return false, parseError("bool", s, "", nil)
	}
	return s[0] == 't' || s[0] == 'T', nil
}

// ParseInt2Vector parses an int2vector, a space separated list of integers.
func ParseInt2Vector(s string) ([]int64, error) {
	fields := strings.Fields(s)
	v := make([]int64, len(fields))
	for i, f := range fields {
		n, err := strconv.ParseInt(f, 10, 16)
		if err != nil {
			return nil, parseError("int2vector", s, "", err)
		}
		v[i] = n
	}
	return v, nil
}
