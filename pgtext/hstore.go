package pgtext

import (
	"sort"
	"strings"
)

type hstoreScanner struct {
	src string
	pos int
}

func (s *hstoreScanner) skipBlanks() {
	for s.pos < len(s.src) && s.src[s.pos] == ' ' {
		s.pos++
	}
}

func (s *hstoreScanner) err(msg string) error {
	return parseError("hstore", s.src, msg, nil)
}

// scanToken reads a quoted or bare token. A bare token ends at a blank or at one of the stop bytes. quoted reports
// whether the token was enclosed in double quotes.
func (s *hstoreScanner) scanToken(stop byte) (token string, quoted bool, err error) {
	var sb strings.Builder

	if s.src[s.pos] == '"' {
		s.pos++
		for {
			if s.pos >= len(s.src) {
				return "", false, s.err("unterminated quote")
			}
			c := s.src[s.pos]
			s.pos++
			if c == '"' {
				return sb.String(), true, nil
			}
			if c == '\\' {
				if s.pos >= len(s.src) {
					return "", false, s.err("unterminated quote")
				}
				c = s.src[s.pos]
				s.pos++
			}
			sb.WriteByte(c)
		}
	}

	start := s.pos
	for s.pos < len(s.src) {
		c := s.src[s.pos]
		if c == stop || c == ' ' {
			break
		}
		s.pos++
		if c == '\\' && s.pos < len(s.src) {
			c = s.src[s.pos]
			s.pos++
		}
		sb.WriteByte(c)
	}
	if s.pos == start {
		return "", false, nil
	}
	return sb.String(), false, nil
}

// ParseHstore parses the text form of an hstore value, "k1"=>"v1", "k2"=>NULL. A bare NULL value becomes nil.
func ParseHstore(src string) (map[string]*string, error) {
	s := &hstoreScanner{src: src}
	result := make(map[string]*string)

	for {
		s.skipBlanks()
		if s.pos >= len(src) {
			return result, nil
		}

		key, quoted, err := s.scanToken('=')
		if err != nil {
			return nil, err
		}
		if key == "" && !quoted {
			return nil, s.err("missing key")
		}

		s.skipBlanks()
		if !strings.HasPrefix(src[s.pos:], "=>") {
			return nil, s.err("invalid characters after key")
		}
		s.pos += 2
		s.skipBlanks()
		if s.pos >= len(src) {
			return nil, s.err("missing value")
		}

		val, quoted, err := s.scanToken(',')
		if err != nil {
			return nil, err
		}
		if val == "" && !quoted {
			return nil, s.err("missing value")
		}
		if !quoted && strings.EqualFold(val, "NULL") {
			result[key] = nil
		} else {
			result[key] = &val
		}

		s.skipBlanks()
		if s.pos < len(src) {
			if src[s.pos] != ',' {
				return nil, s.err("invalid characters after value")
			}
			s.pos++
			s.skipBlanks()
			if s.pos >= len(src) {
				return nil, s.err("missing entry")
			}
		}
	}
}

// QuoteHstoreValue returns the hstore text for a key or value. nil is NULL, the empty string is "", and text
// that contains whitespace, a comma, '=' or '>' or that equals NULL is double-quoted. Quotes and backslashes are
// always escaped.
func QuoteHstoreValue(v *string) string {
	if v == nil {
		return "NULL"
	}
	text := *v
	if text == "" {
		return `""`
	}
	text = escapeQuoted(text)
	if strings.EqualFold(text, "NULL") || strings.ContainsAny(text, ",=> \t\n\r\v\f") {
		return `"` + text + `"`
	}
	return text
}

// FormatHstore encodes m in hstore text form. Keys are written in sorted order.
func FormatHstore(m map[string]*string) string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	var sb strings.Builder
	for i, k := range keys {
		if i > 0 {
			sb.WriteByte(',')
		}
		sb.WriteString(QuoteHstoreValue(&k))
		sb.WriteString("=>")
		sb.WriteString(QuoteHstoreValue(m[k]))
	}
	return sb.String()
}
