package pgcast

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgcast/internal/sanitize"
)

var errInlineTypes = errors.New("typed parameters must be sent separately")

// FormatQuery binds values to the %s or %(name)s placeholders of command. %% stands for a single %.
//
// values is a []any or Tuple for positional placeholders or a map[string]any for named placeholders. Named values
// that do not occur in command are ignored. With inline set the values are embedded as SQL literals. Otherwise the
// placeholders are replaced by $1, $2 and so on and the adapted values are returned in the ParamList. Named values
// are numbered in the sorted order of their keys.
//
// types optionally gives the database types of the values: a whitespace separated string, a []string or a []any
// for positional values, or a map[string]string or map[string]any for named values. Types cannot be combined with
// inline.
func (a *Adapter) FormatQuery(ctx context.Context, command string, values, types any, inline bool) (string, *ParamList, error) {
	params := a.ParameterList()
	if isEmptyValues(values) {
		return command, params, nil
	}
	if inline && types != nil {
		return "", nil, errInlineTypes
	}

	tmpl, err := sanitize.NewTemplate(command)
	if err != nil {
		return "", nil, fmt.Errorf("format query: %w", err)
	}

	var sql string
	switch v := values.(type) {
	case []any:
		sql, err = a.formatPositional(ctx, tmpl, params, v, types, inline)
	case Tuple:
		sql, err = a.formatPositional(ctx, tmpl, params, v, types, inline)
	case map[string]any:
		sql, err = a.formatNamed(ctx, tmpl, params, v, types, inline)
	default:
		return "", nil, fmt.Errorf("format query: values must be a []any, Tuple or map[string]any, got %T", values)
	}
	if err != nil {
		return "", nil, fmt.Errorf("format query: %w", err)
	}

	return sql, params, nil
}

func isEmptyValues(values any) bool {
	switch v := values.(type) {
	case nil:
		return true
	case []any:
		return len(v) == 0
	case Tuple:
		return len(v) == 0
	case map[string]any:
		return len(v) == 0
	}
	return false
}

func (a *Adapter) formatPositional(ctx context.Context, tmpl *sanitize.Template, params *ParamList, values []any, types any, inline bool) (string, error) {
	typeList, err := positionalTypes(types, len(values))
	if err != nil {
		return "", err
	}

	literals := make([]string, len(values))
	for i, v := range values {
		if inline {
			literals[i], err = a.AdaptInline(ctx, v, false)
		} else {
			literals[i], err = params.Add(ctx, v, typeList[i])
		}
		if err != nil {
			return "", err
		}
	}

	return tmpl.Render(literals, nil)
}

// positionalTypes returns one type per value. The types are nil when none are given.
func positionalTypes(types any, n int) ([]any, error) {
	var list []any
	switch t := types.(type) {
	case nil:
		return make([]any, n), nil
	case string:
		for _, f := range strings.Fields(t) {
			list = append(list, f)
		}
	case []string:
		for _, s := range t {
			list = append(list, s)
		}
	case []any:
		list = t
	default:
		return nil, fmt.Errorf("types must be a string, []string or []any, got %T", types)
	}

	if len(list) != n {
		return nil, fmt.Errorf("the values and types do not match: %d values, %d types", n, len(list))
	}
	return list, nil
}

func (a *Adapter) formatNamed(ctx context.Context, tmpl *sanitize.Template, params *ParamList, values map[string]any, types any, inline bool) (string, error) {
	var typeOf func(string) any
	switch t := types.(type) {
	case nil:
		typeOf = func(string) any { return nil }
	case map[string]string:
		typeOf = func(key string) any {
			if s, ok := t[key]; ok {
				return s
			}
			return nil
		}
	case map[string]any:
		typeOf = func(key string) any { return t[key] }
	default:
		return "", fmt.Errorf("the values and types do not match: named values need a map of types, got %T", types)
	}

	literals := make(map[string]string, len(tmpl.Names()))
	for _, key := range tmpl.Names() {
		v, ok := values[key]
		if !ok {
			continue
		}

		var err error
		if inline {
			literals[key], err = a.AdaptInline(ctx, v, false)
		} else {
			literals[key], err = params.Add(ctx, v, typeOf(key))
		}
		if err != nil {
			return "", err
		}
	}

	return tmpl.Render(nil, literals)
}
