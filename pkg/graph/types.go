package graph

import "github.com/djcass44/pkgwatch/pkg/debian"

// Edge means that To needs a binary package built by From.
type Edge struct {
	From string
	To   string
}

// Graph is the build dependency graph of a set of source
// packages. It refers to the packages it was built from
// rather than owning copies of them.
type Graph struct {
	nodes []*debian.SourcePackage
	index map[string]int
	// providers maps binary package names to the
	// source that builds them
	providers map[string]string

	// dependencies and dependents hold node indices
	// sorted in input order
	dependencies map[int][]int
	dependents   map[int][]int
}

type Result struct {
	Graph *Graph
	// Outdated reports for each source whether
	// it needs to be rebuilt.
	Outdated map[string]bool
	// Order is a build order in which every source comes after
	// the sources it depends on. It is nil when the graph has
	// a cycle.
	Order    []string
	Warnings []error
}
