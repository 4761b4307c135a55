package pgtext

import (
	"encoding/hex"
	"strings"
)

// UnescapeBytea decodes a bytea value in either the hex output format (\x0102) or the traditional escape format.
func UnescapeBytea(s string) ([]byte, error) {
	if strings.HasPrefix(s, `\x`) {
		buf, err := hex.DecodeString(s[2:])
		if err != nil {
			return nil, parseError("bytea", s, "", err)
		}
		return buf, nil
	}

	buf := make([]byte, 0, len(s))
	for i := 0; i < len(s); i++ {
		c := s[i]
		if c != '\\' {
			buf = append(buf, c)
			continue
		}
		if i+1 < len(s) && s[i+1] == '\\' {
			buf = append(buf, '\\')
			i++
			continue
		}
		if i+3 < len(s) && isOctal(s[i+1]) && isOctal(s[i+2]) && isOctal(s[i+3]) {
			buf = append(buf, (s[i+1]-'0')<<6|(s[i+2]-'0')<<3|(s[i+3]-'0'))
			i += 3
			continue
		}
		return nil, parseError("bytea", s, "invalid escape sequence in bytea", nil)
	}
	return buf, nil
}

func isOctal(c byte) bool {
	return c >= '0' && c <= '7'
}

// EscapeByteaHex encodes buf in the hex format understood by servers since 9.0.
func EscapeByteaHex(buf []byte) []byte {
	dst := make([]byte, 2+hex.EncodedLen(len(buf)))
	dst[0], dst[1] = '\\', 'x'
	hex.Encode(dst[2:], buf)
	return dst
}
