package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/jackc/pgcast"
	"github.com/shopspring/decimal"
)

// parseValue decodes a command line argument given as JSON. Arguments that are not valid JSON are taken as
// strings. Integers become int64, other numbers decimal.Decimal and objects json values.
func parseValue(arg string) (any, error) {
	dec := json.NewDecoder(strings.NewReader(arg))
	dec.UseNumber()

	var v any
	if err := dec.Decode(&v); err != nil || dec.More() {
		return arg, nil
	}
	return convertJSON(v)
}

func convertJSON(v any) (any, error) {
	switch v := v.(type) {
	case json.Number:
		if n, err := v.Int64(); err == nil {
			return n, nil
		}
		d, err := decimal.NewFromString(v.String())
		if err != nil {
			return nil, fmt.Errorf("invalid number %s: %w", v, err)
		}
		return d, nil
	case []any:
		list := make([]any, len(v))
		for i, e := range v {
			ce, err := convertJSON(e)
			if err != nil {
				return nil, err
			}
			list[i] = ce
		}
		return list, nil
	case map[string]any:
		return pgcast.Json{Value: v}, nil
	default:
		return v, nil
	}
}

// parseNamedValues decodes a JSON object whose members are the values of named placeholders.
func parseNamedValues(arg string) (map[string]any, error) {
	dec := json.NewDecoder(bytes.NewReader([]byte(arg)))
	dec.UseNumber()

	var m map[string]any
	if err := dec.Decode(&m); err != nil {
		return nil, fmt.Errorf("named values must be a JSON object: %w", err)
	}
	for k, v := range m {
		cv, err := convertJSON(v)
		if err != nil {
			return nil, err
		}
		m[k] = cv
	}
	return m, nil
}

// formatValue returns the text printed for a cast value.
func formatValue(v any) string {
	switch v := v.(type) {
	case nil:
		return "NULL"
	case string:
		return v
	case []byte:
		return fmt.Sprintf("%x", v)
	case *pgcast.Record:
		return v.String()
	case []any:
		parts := make([]string, len(v))
		for i, e := range v {
			parts[i] = formatValue(e)
		}
		return "[" + strings.Join(parts, " ") + "]"
	default:
		return fmt.Sprint(v)
	}
}
