package output

import (
	"fmt"
	"io"

	"github.com/fatih/color"
	"github.com/xlgames-inc/XLE-sub005/pkg/conversion"
	"github.com/xlgames-inc/XLE-sub005/pkg/graphfile"
)

// PrintSummary prints a nicely formatted summary of a lowered graph file and
// the diagnostics of the pass that produced it.
func PrintSummary(w io.Writer, source string, f *graphfile.File, report *conversion.Report) {
	// Color definitions
	bold := color.New(color.Bold)
	red := color.New(color.FgRed)
	green := color.New(color.FgGreen)
	yellow := color.New(color.FgYellow)
	cyan := color.New(color.FgCyan)

	// Header
	bold.Fprintln(w, "Node Graph - Lowering Summary")
	bold.Fprintln(w, "=============================")
	if source != "" {
		fmt.Fprintf(w, "Source: %s\n", source)
	}
	fmt.Fprintf(w, "Subgraphs: %d\n", len(f.SubGraphs))
	fmt.Fprintf(w, "Nodes: %d\n", f.NodeCount())
	fmt.Fprintf(w, "Connections: %d\n", f.ConnectionCount())
	if len(f.AttributeTables) > 0 {
		fmt.Fprintf(w, "Attribute tables: %d\n", len(f.AttributeTables))
	}
	fmt.Fprintln(w)

	for _, name := range f.SubGraphNames() {
		sg := f.SubGraphs[name]
		label := cyan
		if name == conversion.UnplacedSubGraph {
			label = yellow
		}
		label.Fprintf(w, "  %s\n", name)
		fmt.Fprintf(w, "    %d node(s), %d connection(s)\n", len(sg.Graph.Nodes), len(sg.Graph.Connections))
	}
	if len(f.SubGraphs) > 0 {
		fmt.Fprintln(w)
	}

	if report.Empty() {
		green.Fprintln(w, "✓ Every node and connection was lowered")
		return
	}

	red.Fprintf(w, "DIAGNOSTICS (%d):\n", len(report.Diagnostics))
	for _, d := range report.Diagnostics {
		yellow.Fprintf(w, "  %s\n", d.Kind)
		fmt.Fprintf(w, "    %s\n", d.Message)
	}
}
