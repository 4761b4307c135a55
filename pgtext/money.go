package pgtext

import (
	"strings"

	"github.com/shopspring/decimal"
)

// NormalizeMoney strips the currency formatting from a money value. point is the decimal point of the server's
// lc_monetary locale and is replaced by ".". A "(" becomes a leading minus sign and every other character that is
// not a digit, "." or "-" is discarded.
func NormalizeMoney(s, point string) string {
	if point != "" && point != "." {
		s = strings.ReplaceAll(s, point, ".")
	}

	b := make([]byte, 0, len(s))
	for i := 0; i < len(s); i++ {
		c := s[i]
		switch {
		case c == '(':
			b = append(b, '-')
		case c >= '0' && c <= '9', c == '.', c == '-':
			b = append(b, c)
		}
	}
	return string(b)
}

// ParseMoney parses a money value as a decimal.
func ParseMoney(s, point string) (decimal.Decimal, error) {
	d, err := decimal.NewFromString(NormalizeMoney(s, point))
	if err != nil {
		return decimal.Decimal{}, parseError("money", s, "", err)
	}
	return d, nil
}
