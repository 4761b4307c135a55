package pgtext

import (
	"strings"
)

// MaxArrayDepth is the deepest array nesting ParseArray accepts.
const MaxArrayDepth = 16

// ElementFunc converts the unescaped text of a single array element or record field.
type ElementFunc func(string) (any, error)

type arrayScanner struct {
	src   string
	pos   int
	delim byte
	cast  ElementFunc
}

func (s *arrayScanner) eof() bool {
	return s.pos >= len(s.src)
}

func (s *arrayScanner) peek() byte {
	return s.src[s.pos]
}

func (s *arrayScanner) skipBlanks() {
	for s.pos < len(s.src) && s.src[s.pos] == ' ' {
		s.pos++
	}
}

func (s *arrayScanner) err(msg string) error {
	return parseError("array", s.src, msg, nil)
}

// ParseArray parses a PostgreSQL array literal such as {1,2,NULL} or [0:1]={{a,b},{c,d}} into nested []any
// values. An unquoted NULL (in any letter case) becomes nil. Every other element is passed through cast, or kept
// as a string when cast is nil. delim is the type's element delimiter, ',' when zero.
func ParseArray(src string, delim byte, cast ElementFunc) ([]any, error) {
	if delim == 0 {
		delim = ','
	} else if delim == '{' || delim == '}' || delim == '\\' {
		return nil, parseError("array", src, "invalid array delimiter", nil)
	}

	s := &arrayScanner{src: src, delim: delim, cast: cast}
	s.skipBlanks()

	ranges := 0
	if !s.eof() && s.peek() == '[' {
		var err error
		ranges, err = s.scanDimensions()
		if err != nil {
			return nil, err
		}
	}

	depth := 0
	for i := s.pos; i < len(src) && (src[i] == '{' || src[i] == ' '); i++ {
		if src[i] == '{' {
			depth++
		}
	}
	if depth == 0 {
		return nil, s.err("array must start with a left brace")
	}
	if ranges > 0 && depth != ranges {
		return nil, s.err("array dimensions do not match content")
	}
	if depth > MaxArrayDepth {
		return nil, s.err("array is too deeply nested")
	}

	result, err := s.scanLevel(depth - 1)
	if err != nil {
		return nil, err
	}

	s.skipBlanks()
	if !s.eof() {
		return nil, s.err("unexpected characters after end of array")
	}
	return result, nil
}

// scanDimensions consumes one or more [lower:upper] ranges followed by '=' and reports how many were found.
func (s *arrayScanner) scanDimensions() (int, error) {
	ranges := 0
	for {
		if s.eof() || s.peek() != '[' {
			return 0, s.err("invalid array dimensions")
		}
		s.pos++
		s.skipBlanks()
		if !s.scanBound() || s.eof() || s.peek() != ':' {
			return 0, s.err("invalid array dimensions")
		}
		s.pos++
		if !s.scanBound() || s.eof() || s.peek() != ']' {
			return 0, s.err("invalid array dimensions")
		}
		s.pos++
		s.skipBlanks()
		ranges++
		if !s.eof() && s.peek() == '=' {
			s.pos++
			s.skipBlanks()
			return ranges, nil
		}
	}
}

func (s *arrayScanner) scanBound() bool {
	if !s.eof() && (s.peek() == '+' || s.peek() == '-') {
		s.pos++
	}
	start := s.pos
	for !s.eof() && s.peek() >= '0' && s.peek() <= '9' {
		s.pos++
	}
	return s.pos > start
}

// scanLevel parses one brace-enclosed level. remaining is the number of nested levels still expected below this
// one; zero means the level holds elements.
func (s *arrayScanner) scanLevel(remaining int) ([]any, error) {
	if s.eof() || s.peek() != '{' {
		return nil, s.err("subarray must start with a left brace")
	}
	s.pos++
	s.skipBlanks()

	result := []any{}
	if !s.eof() && s.peek() == '}' {
		s.pos++
		return result, nil
	}

	for {
		if s.eof() {
			return nil, s.err("unexpected end of array")
		}

		var value any
		var err error
		if remaining > 0 {
			value, err = s.scanLevel(remaining - 1)
		} else {
			if s.peek() == '{' {
				return nil, s.err("subarray found where not expected")
			}
			value, err = s.scanElement()
		}
		if err != nil {
			return nil, err
		}
		result = append(result, value)

		s.skipBlanks()
		if s.eof() {
			return nil, s.err("unexpected end of array")
		}
		switch s.peek() {
		case '}':
			s.pos++
			return result, nil
		case s.delim:
			s.pos++
			s.skipBlanks()
			if remaining > 0 && (s.eof() || s.peek() != '{') {
				return nil, s.err("subarray expected but not found")
			}
		default:
			return nil, s.err("unexpected character in array")
		}
	}
}

func (s *arrayScanner) scanElement() (any, error) {
	var sb strings.Builder

	if s.peek() == '"' {
		s.pos++
		for {
			if s.eof() {
				return nil, s.err("unexpected end of array")
			}
			c := s.peek()
			s.pos++
			if c == '"' {
				break
			}
			if c == '\\' {
				if s.eof() {
					return nil, s.err("unexpected end of array")
				}
				c = s.peek()
				s.pos++
			}
			sb.WriteByte(c)
		}
		return s.castElement(sb.String())
	}

	escaped := false
	blanks := 0
	for !s.eof() {
		c := s.peek()
		if c == '"' || c == '{' || c == '}' || c == s.delim {
			break
		}
		s.pos++
		if c == '\\' {
			if s.eof() {
				return nil, s.err("unexpected end of array")
			}
			c = s.peek()
			s.pos++
			escaped = true
			blanks = 0
		} else if c == ' ' {
			blanks++
		} else {
			blanks = 0
		}
		sb.WriteByte(c)
	}

	text := sb.String()
	text = text[:len(text)-blanks]
	if text == "" {
		return nil, s.err("empty array element")
	}
	if !escaped && strings.EqualFold(text, "NULL") {
		return nil, nil
	}
	return s.castElement(text)
}

func (s *arrayScanner) castElement(text string) (any, error) {
	if s.cast == nil {
		return text, nil
	}
	return s.cast(text)
}

// QuoteArrayElement returns text as it must appear inside an array literal, double-quoted when it is empty, equals
// NULL or contains braces, the delimiter, quotes, backslashes or whitespace.
func QuoteArrayElement(text string) string {
	if text == "" {
		return `""`
	}
	if !strings.EqualFold(text, "NULL") && !strings.ContainsAny(text, "{},\"\\ \t\n\r\v\f") {
		return text
	}
	return `"` + escapeQuoted(text) + `"`
}

// escapeQuoted backslash-escapes double quotes and backslashes.
func escapeQuoted(text string) string {
	if !strings.ContainsAny(text, `"\`) {
		return text
	}
	var sb strings.Builder
	sb.Grow(len(text) + 4)
	for i := 0; i < len(text); i++ {
		c := text[i]
		if c == '"' || c == '\\' {
			sb.WriteByte('\\')
		}
		sb.WriteByte(c)
	}
	return sb.String()
}
