package conversion

import (
	"fmt"

	"github.com/xlgames-inc/XLE-sub005/pkg/graph"
)

// DiagnosticKind classifies something lowering skipped or noticed.
type DiagnosticKind int

const (
	// SkippedNode is an ordinary node without a content payload.
	SkippedNode DiagnosticKind = iota
	// UnresolvedSubGraph is a node whose tag names no declared subgraph.
	UnresolvedSubGraph
	// DuplicateSubGraph is a second declaration of an already declared name.
	DuplicateSubGraph
	// UnlowerableConnection has an endpoint on a node that was not lowered.
	UnlowerableConnection
	// CrossSubGraphConnection joins nodes placed in different subgraphs.
	CrossSubGraphConnection
	// FeedbackLoop is a set of lowered nodes that depend on each other.
	FeedbackLoop
)

func (k DiagnosticKind) String() string {
	switch k {
	case SkippedNode:
		return "skipped-node"
	case UnresolvedSubGraph:
		return "unresolved-subgraph"
	case DuplicateSubGraph:
		return "duplicate-subgraph"
	case UnlowerableConnection:
		return "unlowerable-connection"
	case CrossSubGraphConnection:
		return "cross-subgraph-connection"
	case FeedbackLoop:
		return "feedback-loop"
	default:
		return fmt.Sprintf("DiagnosticKind(%d)", int(k))
	}
}

// Diagnostic describes one degradation. None of them stop lowering.
type Diagnostic struct {
	Kind     DiagnosticKind
	SubGraph string
	Message  string
	Node     *graph.Node       // nil for loops
	Conn     *graph.Connection // set for connection diagnostics
	NodeIDs  []uint32          // set for loops
}

func (d Diagnostic) String() string {
	if d.SubGraph == "" {
		return fmt.Sprintf("%s: %s", d.Kind, d.Message)
	}
	return fmt.Sprintf("%s [%s]: %s", d.Kind, d.SubGraph, d.Message)
}

// Report collects the diagnostics of one lowering pass.
type Report struct {
	Diagnostics []Diagnostic
}

func (r *Report) add(d Diagnostic) {
	r.Diagnostics = append(r.Diagnostics, d)
}

// Count returns how many diagnostics of kind k were recorded.
func (r *Report) Count(k DiagnosticKind) int {
	if r == nil {
		return 0
	}
	n := 0
	for _, d := range r.Diagnostics {
		if d.Kind == k {
			n++
		}
	}
	return n
}

// Empty reports whether lowering degraded nothing.
func (r *Report) Empty() bool {
	return r == nil || len(r.Diagnostics) == 0
}
