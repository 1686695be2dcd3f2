package airutil

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestExpandEnv(t *testing.T) {
	t.Setenv("PKGWATCH_MIRROR", "https://deb.debian.org/debian")

	var cases = []struct {
		in  string
		out string
	}{
		{"${PKGWATCH_MIRROR}/dists", "https://deb.debian.org/debian/dists"},
		{"$PKGWATCH_MIRROR", "https://deb.debian.org/debian"},
		{"${PKGWATCH_UNSET:-http://localhost}", "http://localhost"},
		{"/no/variables", "/no/variables"},
	}
	for _, tt := range cases {
		t.Run(tt.in, func(t *testing.T) {
			assert.EqualValues(t, tt.out, ExpandEnv(tt.in))
		})
	}
}
