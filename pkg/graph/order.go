package graph

import (
	"slices"
)

// order returns a topological order of the graph. Among the sources
// that are ready to be built, the one given first wins.
func (g *Graph) order() ([]string, error) {
	inDegree := make([]int, len(g.nodes))
	var ready []int
	for i := range g.nodes {
		inDegree[i] = len(g.dependencies[i])
		if inDegree[i] == 0 {
			ready = append(ready, i)
		}
	}

	sorted := make([]string, 0, len(g.nodes))
	for len(ready) > 0 {
		id := ready[0]
		ready = ready[1:]
		sorted = append(sorted, g.nodes[id].Name)

		for _, dependent := range g.dependents[id] {
			inDegree[dependent]--
			if inDegree[dependent] == 0 {
				i, _ := slices.BinarySearch(ready, dependent)
				ready = slices.Insert(ready, i, dependent)
			}
		}
	}

	if len(sorted) != len(g.nodes) {
		return nil, &CyclicDependencyError{Cycles: g.cycles()}
	}
	return sorted, nil
}

// cycles returns the strongly connected components of the graph
// that contain more than one source. Self-edges are never added,
// so single sources cannot form a cycle.
func (g *Graph) cycles() [][]string {
	t := &tarjan{
		g:       g,
		index:   make([]int, len(g.nodes)),
		lowlink: make([]int, len(g.nodes)),
		onStack: make([]bool, len(g.nodes)),
	}
	for i := range t.index {
		t.index[i] = -1
	}
	for i := range g.nodes {
		if t.index[i] < 0 {
			t.visit(i)
		}
	}
	slices.SortFunc(t.components, func(a, b []string) int {
		return slices.Compare(a, b)
	})
	return t.components
}

type tarjan struct {
	g          *Graph
	next       int
	index      []int
	lowlink    []int
	onStack    []bool
	stack      []int
	components [][]string
}

func (t *tarjan) visit(v int) {
	t.index[v] = t.next
	t.lowlink[v] = t.next
	t.next++
	t.stack = append(t.stack, v)
	t.onStack[v] = true

	for _, w := range t.g.dependents[v] {
		if t.index[w] < 0 {
			t.visit(w)
			t.lowlink[v] = min(t.lowlink[v], t.lowlink[w])
		} else if t.onStack[w] {
			t.lowlink[v] = min(t.lowlink[v], t.index[w])
		}
	}

	if t.lowlink[v] != t.index[v] {
		return
	}
	var component []string
	for {
		w := t.stack[len(t.stack)-1]
		t.stack = t.stack[:len(t.stack)-1]
		t.onStack[w] = false
		component = append(component, t.g.nodes[w].Name)
		if w == v {
			break
		}
	}
	if len(component) > 1 {
		slices.Sort(component)
		t.components = append(t.components, component)
	}
}
