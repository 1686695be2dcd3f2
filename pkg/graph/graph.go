package graph

import (
	"context"
	"slices"

	"github.com/djcass44/pkgwatch/pkg/debian"
	"github.com/go-logr/logr"
)

// Build creates the dependency graph of the given sources, decides
// which of them are outdated and computes a build order.
//
// Repository records are attached to the source that provides the
// binary they describe, replacing anything attached previously.
// When the graph has a cycle, the result is still returned along
// with a *CyclicDependencyError, but its Order is nil.
func Build(ctx context.Context, sources []*debian.SourcePackage, records []debian.Record) (*Result, error) {
	log := logr.FromContextOrDiscard(ctx)
	log.V(1).Info("building dependency graph", "sources", len(sources), "records", len(records))

	g, warnings := newGraph(ctx, sources)
	g.attachRepository(ctx, records)

	result := &Result{
		Graph:    g,
		Outdated: make(map[string]bool, len(g.nodes)),
		Warnings: warnings,
	}
	for _, sp := range g.nodes {
		result.Outdated[sp.Name] = IsOutdated(sp)
		log.V(3).Info("checked source", "source", sp.Name, "outdated", result.Outdated[sp.Name])
	}

	order, err := g.order()
	if err != nil {
		log.Error(err, "unable to compute build order")
		return result, err
	}
	result.Order = order
	return result, nil
}

func newGraph(ctx context.Context, sources []*debian.SourcePackage) (*Graph, []error) {
	log := logr.FromContextOrDiscard(ctx)

	var warnings []error
	g := &Graph{
		index:        map[string]int{},
		providers:    map[string]string{},
		dependencies: map[int][]int{},
		dependents:   map[int][]int{},
	}
	for _, sp := range sources {
		// a repeated source replaces the earlier one
		// but keeps its position
		if i, ok := g.index[sp.Name]; ok {
			log.V(1).Info("replacing duplicate source", "source", sp.Name, "previous", g.nodes[i].Path, "path", sp.Path)
			warnings = append(warnings, &debian.DuplicateSourceError{Name: sp.Name, Paths: []string{g.nodes[i].Path, sp.Path}})
			g.nodes[i] = sp
			continue
		}
		g.index[sp.Name] = len(g.nodes)
		g.nodes = append(g.nodes, sp)
	}

	// index the binaries so that the result does not
	// depend on which source is visited first
	for _, sp := range g.nodes {
		for _, binary := range sp.Provides {
			if prev, ok := g.providers[binary]; ok && prev != sp.Name {
				log.V(1).Info("binary package is provided by multiple sources", "binary", binary, "previous", prev, "source", sp.Name)
				warnings = append(warnings, &DuplicateProviderWarning{Binary: binary, Previous: prev, Source: sp.Name})
			}
			g.providers[binary] = sp.Name
		}
	}

	for to, sp := range g.nodes {
		for _, rel := range sp.BuildDepends {
			from, ok := g.resolve(rel.Names())
			if !ok {
				log.V(6).Info("no source provides build dependency", "source", sp.Name, "relation", rel.String())
				continue
			}
			if from == to {
				continue
			}
			g.addEdge(from, to)
		}
	}
	return g, warnings
}

// resolve returns the node that provides the first
// alternative with a known provider.
func (g *Graph) resolve(names []string) (int, bool) {
	for _, name := range names {
		if src, ok := g.providers[name]; ok {
			return g.index[src], true
		}
	}
	return 0, false
}

func (g *Graph) addEdge(from, to int) {
	deps := g.dependencies[to]
	i, found := slices.BinarySearch(deps, from)
	if found {
		return
	}
	g.dependencies[to] = slices.Insert(deps, i, from)

	dependents := g.dependents[from]
	j, _ := slices.BinarySearch(dependents, to)
	g.dependents[from] = slices.Insert(dependents, j, to)
}

func (g *Graph) attachRepository(ctx context.Context, records []debian.Record) {
	log := logr.FromContextOrDiscard(ctx)
	for _, sp := range g.nodes {
		sp.Repository = nil
	}
	for _, r := range records {
		src, ok := g.providers[r.Binary]
		if !ok {
			continue
		}
		sp := g.nodes[g.index[src]]
		log.V(6).Info("attaching repository version", "source", sp.Name, "binary", r.Binary, "version", r.Version.String())
		sp.Repository = append(sp.Repository, r.Version)
	}
}

// Nodes returns the names of all sources in input order.
func (g *Graph) Nodes() []string {
	out := make([]string, len(g.nodes))
	for i, sp := range g.nodes {
		out[i] = sp.Name
	}
	return out
}

// Source returns the source package with the given name.
func (g *Graph) Source(name string) (*debian.SourcePackage, bool) {
	i, ok := g.index[name]
	if !ok {
		return nil, false
	}
	return g.nodes[i], true
}

// Provider returns the name of the source that
// builds the given binary package.
func (g *Graph) Provider(binary string) (string, bool) {
	src, ok := g.providers[binary]
	return src, ok
}

// Edges returns every edge, ordered by the position of the
// dependency and then the dependent.
func (g *Graph) Edges() []Edge {
	var out []Edge
	for from := range g.nodes {
		for _, to := range g.dependents[from] {
			out = append(out, Edge{From: g.nodes[from].Name, To: g.nodes[to].Name})
		}
	}
	return out
}

// Dependencies returns the sources that must be built before name.
func (g *Graph) Dependencies(name string) []string {
	i, ok := g.index[name]
	if !ok {
		return nil
	}
	return g.names(g.dependencies[i])
}

// Dependents returns the sources that need name to be built first.
func (g *Graph) Dependents(name string) []string {
	i, ok := g.index[name]
	if !ok {
		return nil
	}
	return g.names(g.dependents[i])
}

func (g *Graph) names(idx []int) []string {
	if len(idx) == 0 {
		return nil
	}
	out := make([]string, len(idx))
	for i, n := range idx {
		out[i] = g.nodes[n].Name
	}
	return out
}

// OutdatedInOrder returns the outdated sources in build order.
func (r *Result) OutdatedInOrder() []string {
	var out []string
	for _, name := range r.Order {
		if r.Outdated[name] {
			out = append(out, name)
		}
	}
	return out
}
