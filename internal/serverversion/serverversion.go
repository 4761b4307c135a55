// Package serverversion converts the server_version run-time parameter to the integer form of server_version_num.
package serverversion

import (
	"strings"

	"github.com/Masterminds/semver/v3"
)

// Parse returns the server_version_num equivalent of s, e.g. 160002 for "16.2 (Debian 16.2-1.pgdg120+2)" and
// 90624 for "9.6.24". Zero is returned when s cannot be parsed.
func Parse(s string) int {
	fields := strings.Fields(s)
	if len(fields) == 0 {
		return 0
	}

	// Development and beta versions, e.g. 17beta1 or 16devel, are reported as the release they precede.
	num := fields[0]
	if i := strings.IndexFunc(num, func(r rune) bool { return (r < '0' || r > '9') && r != '.' }); i >= 0 {
		num = num[:i]
	}

	v, err := semver.NewVersion(num)
	if err != nil {
		return 0
	}
	if v.Major() >= 10 {
		return int(v.Major())*10000 + int(v.Minor())
	}
	return int(v.Major())*10000 + int(v.Minor())*100 + int(v.Patch())
}
