package graph

import (
	"fmt"
	"strings"
)

// DuplicateProviderWarning is recorded when two sources claim
// to build the same binary package. The last source wins.
type DuplicateProviderWarning struct {
	Binary   string
	Previous string
	Source   string
}

func (w *DuplicateProviderWarning) Error() string {
	return fmt.Sprintf("binary package %s is provided by both %s and %s", w.Binary, w.Previous, w.Source)
}

// CyclicDependencyError is returned when no build order exists.
// Cycles holds the sorted members of each group of sources that
// depend on each other.
type CyclicDependencyError struct {
	Cycles [][]string
}

func (e *CyclicDependencyError) Error() string {
	groups := make([]string, len(e.Cycles))
	for i, c := range e.Cycles {
		groups[i] = "[" + strings.Join(c, ", ") + "]"
	}
	return fmt.Sprintf("cyclic build dependency between: %s", strings.Join(groups, ", "))
}

// Members returns every source that is part of a cycle.
func (e *CyclicDependencyError) Members() []string {
	var out []string
	for _, c := range e.Cycles {
		out = append(out, c...)
	}
	return out
}
