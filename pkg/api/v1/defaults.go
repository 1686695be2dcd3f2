package v1

import "github.com/djcass44/pkgwatch/pkg/airutil"

const (
	DefaultComponent = "main"
	DefaultArch      = "amd64"
)

// Expand substitutes environment variables in the configured
// locations and fills in default values.
func (s *ScanSpec) Expand() {
	s.Root = airutil.ExpandEnv(s.Root)
	s.Upstream.Downloads = airutil.ExpandEnv(s.Upstream.Downloads)
	for i := range s.Indices {
		s.Indices[i] = airutil.ExpandEnv(s.Indices[i])
	}
	for i := range s.Repositories {
		r := &s.Repositories[i]
		r.URL = airutil.ExpandEnv(r.URL)
		if len(r.Components) == 0 {
			r.Components = []string{DefaultComponent}
		}
		if r.Arch == "" {
			r.Arch = DefaultArch
		}
	}
}
