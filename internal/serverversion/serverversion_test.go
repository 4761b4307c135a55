package serverversion_test

import (
	"testing"

	"github.com/jackc/pgcast/internal/serverversion"
	"github.com/stretchr/testify/assert"
)

func TestParse(t *testing.T) {
	for i, tt := range []struct {
		s    string
		want int
	}{
		{"16.2", 160002},
		{"16.2 (Debian 16.2-1.pgdg120+2)", 160002},
		{"10.23", 100023},
		{"9.6.24", 90624},
		{"8.3.1", 80301},
		{"17beta1", 170000},
		{"16devel", 160000},
		{"", 0},
		{"unknown", 0},
	} {
		assert.Equalf(t, tt.want, serverversion.Parse(tt.s), "%d. %q", i, tt.s)
	}
}
