package upstream

import (
	"context"
	"net/url"

	"github.com/djcass44/pkgwatch/pkg/version"
	"github.com/djcass44/pkgwatch/pkg/watch"
)

// Candidate is the newest upstream release found for a watch rule.
type Candidate struct {
	Version version.Version
	URL     *url.URL
}

// Lister returns the names of the entries of a directory.
type Lister interface {
	List(ctx context.Context, dir string) ([]string, error)
}

// ListerFunc creates the Lister able to
// browse the given location.
type ListerFunc func(u *url.URL) (Lister, error)

type Resolver struct {
	Lister Lister
}

// Job is a watch rule of a named package.
type Job struct {
	Name string
	Rule watch.Rule
}

// Outcome is the resolution of a single Job.
type Outcome struct {
	Name      string
	Candidate *Candidate
	Err       error
}
