package output

import (
	"bytes"
	"strings"
	"testing"

	"github.com/fatih/color"
	"github.com/xlgames-inc/XLE-sub005/pkg/conversion"
	"github.com/xlgames-inc/XLE-sub005/pkg/graphfile"
)

func init() {
	color.NoColor = true
}

func sampleFile() *graphfile.File {
	f := graphfile.New()
	root := graphfile.NewSubGraph()
	root.Graph.AddNode(graphfile.Node{FragmentArchiveName: "Node_1<Lerp>", NodeID: 1})
	root.Graph.AddNode(graphfile.Node{FragmentArchiveName: "Node_2<Lerp>", NodeID: 2})
	root.Graph.AddConnection(graphfile.Connection{OutputNodeID: 2, InputNodeID: 1})
	f.SubGraphs["root"] = root
	return f
}

func TestPrintSummaryClean(t *testing.T) {
	var buf bytes.Buffer
	PrintSummary(&buf, "graph.toml", sampleFile(), &conversion.Report{})

	out := buf.String()
	for _, want := range []string{"Source: graph.toml", "Nodes: 2", "Connections: 1", "  root", "2 node(s), 1 connection(s)", "✓"} {
		if !strings.Contains(out, want) {
			t.Errorf("Expected %q in output:\n%s", want, out)
		}
	}
}

func TestPrintSummaryDiagnostics(t *testing.T) {
	f := sampleFile()
	f.SubGraphs[conversion.UnplacedSubGraph] = graphfile.NewSubGraph()
	report := &conversion.Report{Diagnostics: []conversion.Diagnostic{
		{Kind: conversion.SkippedNode, Message: `node "scratch" has no content payload`},
	}}

	var buf bytes.Buffer
	PrintSummary(&buf, "", f, report)

	out := buf.String()
	if strings.Contains(out, "Source:") {
		t.Error("Expected no source line without a source")
	}
	for _, want := range []string{"DIAGNOSTICS (1):", "skipped-node", "scratch", "  unplaced"} {
		if !strings.Contains(out, want) {
			t.Errorf("Expected %q in output:\n%s", want, out)
		}
	}
}
