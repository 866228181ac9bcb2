package dot

import (
	"bufio"
	"fmt"
	"io"
	"strings"
)

var labelEscaper = strings.NewReplacer(`\`, `\\`, `"`, `\"`, "\n", `\n`, "\r", `\r`, "\t", `\t`)

// Write serializes g in the restricted syntax accepted by Parse. Vertices are
// written in ascending id order followed by the edges, so output is stable.
func Write(w io.Writer, g *Graph) error {
	bw := bufio.NewWriter(w)

	fmt.Fprintln(bw, "digraph {")
	for _, v := range g.Vertices() {
		fmt.Fprintf(bw, "  %d [label=\"%s\"];\n", v.ID, labelEscaper.Replace(v.Label))
	}
	for _, e := range g.Edges() {
		fmt.Fprintf(bw, "  %d -> %d;\n", e.From, e.To)
	}
	fmt.Fprintln(bw, "}")

	return bw.Flush()
}

// Format returns g serialized as a string
func Format(g *Graph) string {
	var sb strings.Builder
	// strings.Builder never fails
	_ = Write(&sb, g)
	return sb.String()
}
