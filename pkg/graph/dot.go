package graph

import (
	"bufio"
	"fmt"
	"io"
)

// WriteDOT renders the graph in the Graphviz DOT language.
// Outdated sources are filled.
func WriteDOT(w io.Writer, g *Graph, outdated map[string]bool) error {
	bw := bufio.NewWriter(w)
	_, _ = fmt.Fprintln(bw, "digraph {")
	for _, name := range g.Nodes() {
		if outdated[name] {
			_, _ = fmt.Fprintf(bw, "\t%q [style=filled];\n", name)
			continue
		}
		_, _ = fmt.Fprintf(bw, "\t%q;\n", name)
	}
	for _, e := range g.Edges() {
		_, _ = fmt.Fprintf(bw, "\t%q -> %q;\n", e.From, e.To)
	}
	_, _ = fmt.Fprintln(bw, "}")
	return bw.Flush()
}
