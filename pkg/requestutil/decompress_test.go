package requestutil

import (
	"testing"

	"github.com/mholt/archives"
	"github.com/stretchr/testify/assert"
)

func TestDecompressor(t *testing.T) {
	var cases = []struct {
		s   string
		out archives.Decompressor
	}{
		{
			"application/gzip",
			archives.Gz{},
		},
		{
			"application/x-gzip; charset=binary",
			archives.Gz{},
		},
		{
			"application/x-xz",
			archives.Xz{},
		},
		{
			"application/zstd",
			archives.Zstd{},
		},
		{
			"text/html; charset=utf-8",
			nil,
		},
		{
			"",
			nil,
		},
	}

	for _, tt := range cases {
		t.Run(tt.s, func(t *testing.T) {
			assert.IsType(t, tt.out, decompressor(tt.s))
		})
	}
}
