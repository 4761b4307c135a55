package pgtext

import (
	"strings"
)

// ParseRecord splits a composite value literal such as (1,"a b",) into its raw fields. An empty unquoted field is
// NULL and is returned as nil; a quoted empty field is an empty string. Quoted sections may contain doubled quotes
// and backslash escapes. delim is ',' when zero.
func ParseRecord(src string, delim byte) ([]*string, error) {
	if delim == 0 {
		delim = ','
	} else if delim == '(' || delim == ')' || delim == '\\' {
		return nil, parseError("record", src, "invalid record delimiter", nil)
	}

	pos := 0
	for pos < len(src) && src[pos] == ' ' {
		pos++
	}
	if pos == len(src) || src[pos] != '(' {
		return nil, parseError("record", src, "record must start with a left parenthesis", nil)
	}

	var fields []*string
	for {
		pos++
		if pos >= len(src) {
			return nil, parseError("record", src, "unexpected end of record", nil)
		}

		if src[pos] == ')' || src[pos] == delim {
			fields = append(fields, nil)
		} else {
			var sb strings.Builder
			quoted := false
			for pos < len(src) {
				c := src[pos]
				if !quoted && (c == ')' || c == delim) {
					break
				}
				if c == '"' {
					pos++
					if !(quoted && pos < len(src) && src[pos] == '"') {
						quoted = !quoted
						continue
					}
					c = src[pos]
				} else if c == '\\' {
					pos++
					if pos == len(src) {
						break
					}
					c = src[pos]
				}
				sb.WriteByte(c)
				pos++
			}
			if pos >= len(src) {
				return nil, parseError("record", src, "unexpected end of record", nil)
			}
			field := sb.String()
			fields = append(fields, &field)
		}

		if src[pos] != delim {
			break
		}
	}

	pos++
	for pos < len(src) && src[pos] == ' ' {
		pos++
	}
	if pos != len(src) {
		return nil, parseError("record", src, "unexpected characters after end of record", nil)
	}
	return fields, nil
}

// QuoteRecordField returns text as it must appear inside a record literal. The empty string is written as "" so
// that it is not read back as NULL. Text containing parentheses, commas, quotes or backslashes is double-quoted
// with quotes and backslashes escaped.
func QuoteRecordField(text string) string {
	if text == "" {
		return `""`
	}
	if !strings.ContainsAny(text, "(),\"\\") {
		return text
	}
	return `"` + escapeQuoted(text) + `"`
}
