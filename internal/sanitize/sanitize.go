// Package sanitize quotes SQL literals and binds %s and %(name)s placeholders in query templates.
package sanitize

import (
	"bytes"
	"encoding/hex"
	"errors"
	"fmt"
	"slices"
	"sort"
	"sync"
	"unicode/utf8"
)

// Part is a string, a Positional or a Named. A string is raw SQL.
type Part any

// Positional is the zero-based index of a %s placeholder.
type Positional int

// Named is the key of a %(name)s placeholder.
type Named string

// Template is a query split into raw SQL and placeholders. Every % starts a placeholder, including inside quoted
// literals and comments, so a literal % is always written as %%.
type Template struct {
	Parts []Part

	positional int
	names      []string
}

// utf.DecodeRune returns the utf8.RuneError for errors. But that is actually rune U+FFFD -- the unicode replacement
// character. utf8.RuneError is not an error if it is also width 3.
const replacementcharacterwidth = 3

const maxBufSize = 16384 // 16 Ki

var bufPool = &pool[*bytes.Buffer]{
	new: func() *bytes.Buffer {
		return &bytes.Buffer{}
	},
	reset: func(b *bytes.Buffer) bool {
		n := b.Len()
		b.Reset()
		return n < maxBufSize
	},
}

var errMixedPlaceholders = errors.New("cannot mix positional and named placeholders")

// NewTemplate parses sql into a Template.
func NewTemplate(sql string) (*Template, error) {
	l := lexerPool.get()
	defer lexerPool.put(l)

	l.src = sql
	l.stateFn = rawState

	for l.stateFn != nil {
		l.stateFn = l.stateFn(l)
	}
	if l.err != nil {
		return nil, l.err
	}
	if l.start < len(l.src) {
		l.appendRaw(l.src[l.start:])
	}

	t := &Template{Parts: slices.Clone(l.parts)}
	seen := make(map[string]struct{})
	for _, part := range t.Parts {
		switch part := part.(type) {
		case Positional:
			t.positional++
		case Named:
			if _, ok := seen[string(part)]; !ok {
				seen[string(part)] = struct{}{}
				t.names = append(t.names, string(part))
			}
		}
	}
	if t.positional > 0 && len(t.names) > 0 {
		return nil, errMixedPlaceholders
	}
	sort.Strings(t.names)

	return t, nil
}

// Positional returns the number of %s placeholders.
func (t *Template) Positional() int {
	return t.positional
}

// Names returns the distinct keys of the %(name)s placeholders in sorted order.
func (t *Template) Names() []string {
	return t.names
}

// Render replaces the placeholders with args or named. The number of args must match the number of positional
// placeholders and named must have an entry for every key.
func (t *Template) Render(args []string, named map[string]string) (string, error) {
	if len(args) > t.positional {
		return "", fmt.Errorf("not all arguments used: %d arguments for %d placeholders", len(args), t.positional)
	}
	if len(args) < t.positional {
		return "", fmt.Errorf("insufficient arguments: %d arguments for %d placeholders", len(args), t.positional)
	}

	buf := bufPool.get()
	defer bufPool.put(buf)

	for _, part := range t.Parts {
		switch part := part.(type) {
		case string:
			buf.WriteString(part)
		case Positional:
			buf.WriteString(args[part])
		case Named:
			v, ok := named[string(part)]
			if !ok {
				return "", fmt.Errorf("missing value for placeholder %q", string(part))
			}
			buf.WriteString(v)
		default:
			return "", fmt.Errorf("invalid Part type: %T", part)
		}
	}

	return buf.String(), nil
}

// EscapeString appends str to dst with single quotes doubled. This is only safe when standard_conforming_strings is
// on.
func EscapeString(dst []byte, str string) []byte {
	const quote = '\''

	dst = slices.Grow(dst, len(str)+2)
	for i := 0; i < len(str); i++ {
		if str[i] == quote {
			dst = append(dst, quote, quote)
		} else {
			dst = append(dst, str[i])
		}
	}
	return dst
}

// QuoteString appends str to dst as a single-quoted string literal.
func QuoteString(dst []byte, str string) []byte {
	dst = append(dst, '\'')
	dst = EscapeString(dst, str)
	return append(dst, '\'')
}

// QuoteBytes appends buf to dst as a single-quoted bytea literal in hex format.
func QuoteBytes(dst, buf []byte) []byte {
	if len(buf) == 0 {
		return append(dst, `'\x'`...)
	}

	requiredLen := 3 + hex.EncodedLen(len(buf)) + 1
	dst = slices.Grow(dst, requiredLen)

	origLen := len(dst)
	dst = dst[:origLen+requiredLen]

	dst[origLen] = '\''
	dst[origLen+1] = '\\'
	dst[origLen+2] = 'x'
	hex.Encode(dst[origLen+3:len(dst)-1], buf)
	dst[len(dst)-1] = '\''

	return dst
}

type templateLexer struct {
	src        string
	start      int
	pos        int
	positional int
	stateFn    stateFn
	parts      []Part
	err        error
}

var lexerPool = &pool[*templateLexer]{
	new: func() *templateLexer {
		return &templateLexer{}
	},
	reset: func(l *templateLexer) bool {
		parts := l.parts[:0]
		*l = templateLexer{parts: parts}
		return cap(parts) < 64
	},
}

// appendRaw appends raw SQL, merging it with a preceding raw part.
func (l *templateLexer) appendRaw(s string) {
	if n := len(l.parts); n > 0 {
		if prev, ok := l.parts[n-1].(string); ok {
			l.parts[n-1] = prev + s
			return
		}
	}
	l.parts = append(l.parts, s)
}

type stateFn func(*templateLexer) stateFn

func rawState(l *templateLexer) stateFn {
	for {
		r, width := utf8.DecodeRuneInString(l.src[l.pos:])
		l.pos += width

		switch r {
		case '%':
			if l.pos-width > l.start {
				l.appendRaw(l.src[l.start : l.pos-width])
			}
			l.start = l.pos
			return placeholderState
		case utf8.RuneError:
			if width != replacementcharacterwidth {
				return nil
			}
		}
	}
}

// placeholderState consumes a placeholder. The % must have already been consumed.
func placeholderState(l *templateLexer) stateFn {
	if l.pos >= len(l.src) {
		l.err = errors.New("incomplete format: % at end of query")
		return nil
	}

	switch c := l.src[l.pos]; c {
	case '%':
		l.pos++
		l.appendRaw("%")
	case 's':
		l.pos++
		l.parts = append(l.parts, Positional(l.positional))
		l.positional++
	case '(':
		end := l.pos + 1
		for end < len(l.src) && l.src[end] != ')' {
			end++
		}
		if end+1 >= len(l.src) || l.src[end+1] != 's' {
			l.err = fmt.Errorf("invalid named placeholder at position %d", l.pos-1)
			return nil
		}
		l.parts = append(l.parts, Named(l.src[l.pos+1:end]))
		l.pos = end + 2
	default:
		l.err = fmt.Errorf("unsupported format character %q at position %d", c, l.pos)
		return nil
	}

	l.start = l.pos
	return rawState
}

type pool[E any] struct {
	p     sync.Pool
	new   func() E
	reset func(E) bool
}

func (pool *pool[E]) get() E {
	v, ok := pool.p.Get().(E)
	if !ok {
		v = pool.new()
	}

	return v
}

func (p *pool[E]) put(v E) {
	if p.reset(v) {
		p.p.Put(v)
	}
}
