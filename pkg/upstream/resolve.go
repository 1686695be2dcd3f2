package upstream

import (
	"context"
	"fmt"
	"net/url"
	"path"
	"strings"

	"github.com/djcass44/pkgwatch/pkg/watch"
	"github.com/go-logr/logr"
	"golang.org/x/sync/errgroup"
)

// Resolve finds the newest release described by the rule. Every
// directory of the path that contains a group is resolved to the
// newest matching entry before the final directory is searched for
// files. Listings are performed one at a time.
func (r *Resolver) Resolve(ctx context.Context, rule *watch.Rule) (*Candidate, error) {
	log := logr.FromContextOrDiscard(ctx).WithValues("rule", rule.String())
	log.V(1).Info("resolving upstream release")

	current := "/"
	for _, segment := range strings.Split(rule.PathPrefix, "/") {
		if segment == "" {
			continue
		}
		if !watch.HasGroup(segment) {
			current = path.Join(current, segment)
			continue
		}
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		re, err := watch.CompilePattern(segment)
		if err != nil {
			return nil, err
		}
		names, err := r.Lister.List(ctx, current)
		if err != nil {
			return nil, fmt.Errorf("listing %s: %w", current, err)
		}
		name, v, _ := newest(re, names, nil)
		if name == "" {
			return nil, &NoCandidateError{Path: current, Pattern: segment}
		}
		log.V(2).Info("selected directory", "dir", current, "entry", name, "version", v.String())
		current = path.Join(current, name)
	}

	if err := ctx.Err(); err != nil {
		return nil, err
	}
	names, err := r.Lister.List(ctx, current)
	if err != nil {
		return nil, fmt.Errorf("listing %s: %w", current, err)
	}
	candidate, err := ScanLocal(rule, names, current)
	if err != nil {
		return nil, err
	}
	candidate.URL.Scheme = rule.URL.Scheme
	candidate.URL.Host = rule.URL.Host
	log.V(1).Info("resolved upstream release", "version", candidate.Version.String(), "url", candidate.URL.String())
	return candidate, nil
}

// ResolveAll resolves the jobs with up to concurrency jobs running
// at once. Failures are reported per job and do not stop the others.
// Outcomes are returned in the same order as the jobs.
func ResolveAll(ctx context.Context, jobs []Job, concurrency int, listers ListerFunc) []Outcome {
	log := logr.FromContextOrDiscard(ctx)
	out := make([]Outcome, len(jobs))

	g, gctx := errgroup.WithContext(ctx)
	if concurrency > 0 {
		g.SetLimit(concurrency)
	}
	for i := range jobs {
		job := jobs[i]
		g.Go(func() error {
			out[i] = resolveJob(gctx, job, listers)
			if out[i].Err != nil {
				log.V(1).Info("unable to resolve upstream release", "name", job.Name, "err", out[i].Err)
			}
			return nil
		})
	}
	_ = g.Wait()
	return out
}

func resolveJob(ctx context.Context, job Job, listers ListerFunc) Outcome {
	rule := job.Rule
	lister, err := listers(&url.URL{Scheme: rule.URL.Scheme, Host: rule.URL.Host})
	if err != nil {
		return Outcome{Name: job.Name, Err: err}
	}
	r := &Resolver{Lister: lister}
	candidate, err := r.Resolve(ctx, &rule)
	return Outcome{Name: job.Name, Candidate: candidate, Err: err}
}
