// Package conversion lowers an authoring graph.Model into a graphfile.File
// for the shader compiler.
//
// Lowering is total. Nodes without a content payload are skipped, nodes
// tagged with an undeclared subgraph land in the Unplaced bucket, and
// connections that cannot be expressed inside a single bucket are dropped.
// Lower reports each of these; ToNodeGraphFile keeps quiet about them.
package conversion

import (
	"fmt"
	"strconv"

	"github.com/xlgames-inc/XLE-sub005/pkg/cycles"
	"github.com/xlgames-inc/XLE-sub005/pkg/graph"
	"github.com/xlgames-inc/XLE-sub005/pkg/graphfile"
	"github.com/xlgames-inc/XLE-sub005/pkg/logging"
)

// UnplacedSubGraph collects content nodes whose subgraph tag resolves to no
// declaration.
const UnplacedSubGraph = "unplaced"

// Options control what lowering emits.
type Options struct {
	// IncludeEditorAttributes adds a layout attribute table per lowered node.
	IncludeEditorAttributes bool
}

// placement records where a node ended up in the lowered file.
type placement struct {
	subGraph string
	nodeID   uint32
}

type lowering struct {
	opts      Options
	file      *graphfile.File
	report    *Report
	placed    map[*graph.Node]placement
	attrCount int
}

// ToNodeGraphFile lowers m and discards the diagnostics.
func ToNodeGraphFile(m *graph.Model, opts Options) *graphfile.File {
	f, _ := Lower(m, opts)
	return f
}

// Lower lowers m and returns the file together with everything that was
// skipped, redirected or dropped along the way.
func Lower(m *graph.Model, opts Options) (*graphfile.File, *Report) {
	l := &lowering{
		opts:   opts,
		file:   graphfile.New(),
		report: &Report{},
		placed: make(map[*graph.Node]placement),
	}
	if m == nil {
		return l.file, l.report
	}

	l.declareSubGraphs(m.SubGraphs())
	l.placeNodes(m.Nodes())
	l.lowerConnections(m.Connections())
	l.findLoops()

	logging.With("conversion").Debug("lowered graph",
		"subgraphs", len(l.file.SubGraphs),
		"nodes", l.file.NodeCount(),
		"connections", l.file.ConnectionCount(),
		"diagnostics", len(l.report.Diagnostics))
	return l.file, l.report
}

func (l *lowering) declareSubGraphs(headers []*graph.Node) {
	for _, h := range headers {
		p, ok := h.Payload().(graph.SubGraphPayload)
		if !ok {
			continue
		}
		name := p.Name
		if _, exists := l.file.SubGraphs[name]; exists {
			l.report.add(Diagnostic{
				Kind:     DuplicateSubGraph,
				SubGraph: name,
				Node:     h,
				Message:  fmt.Sprintf("subgraph %q is declared more than once", name),
			})
		} else {
			l.file.SubGraphs[name] = graphfile.NewSubGraph()
		}
		// The declaration stands in for the signature when used as an endpoint
		l.placed[h] = placement{subGraph: name, nodeID: graphfile.SignatureNodeID}
	}
}

func (l *lowering) placeNodes(nodes []*graph.Node) {
	for _, n := range nodes {
		p, ok := n.Payload().(graph.ContentPayload)
		if !ok {
			l.report.add(Diagnostic{
				Kind:    SkippedNode,
				Node:    n,
				Message: fmt.Sprintf("node %q has no content payload", n.Title()),
			})
			continue
		}

		target := l.resolve(n, p)
		record := graphfile.Node{
			FragmentArchiveName: ArchiveName(p),
			NodeID:              p.ID,
		}
		if l.opts.IncludeEditorAttributes {
			record.AttributeTableName = l.attributes(n)
		}
		l.file.SubGraphs[target].Graph.AddNode(record)
		l.placed[n] = placement{subGraph: target, nodeID: p.ID}
	}
}

// resolve returns the bucket for a content node, creating Unplaced on demand.
func (l *lowering) resolve(n *graph.Node, p graph.ContentPayload) string {
	tag := n.SubGraphTag()
	if _, ok := l.file.SubGraphs[tag]; ok {
		return tag
	}
	l.report.add(Diagnostic{
		Kind:     UnresolvedSubGraph,
		SubGraph: UnplacedSubGraph,
		Node:     n,
		Message:  fmt.Sprintf("node %d is tagged %q which is not declared", p.ID, tag),
	})
	if _, ok := l.file.SubGraphs[UnplacedSubGraph]; !ok {
		l.file.SubGraphs[UnplacedSubGraph] = graphfile.NewSubGraph()
	}
	return UnplacedSubGraph
}

func (l *lowering) attributes(n *graph.Node) string {
	name := fmt.Sprintf("visualNode%d", l.attrCount)
	l.attrCount++

	state := graphfile.StateNormal
	if n.Collapsed() {
		state = graphfile.StateCollapsed
	}
	loc := n.Location()
	l.file.AttributeTables[name] = graphfile.AttributeTable{
		graphfile.AttrX:     formatCoord(loc.X),
		graphfile.AttrY:     formatCoord(loc.Y),
		graphfile.AttrState: state,
	}
	return name
}

func (l *lowering) lowerConnections(conns []*graph.Connection) {
	for _, c := range conns {
		from, to := c.From(), c.To()
		if from == nil || to == nil {
			continue
		}
		src, srcOK := l.placed[from.Node()]
		dst, dstOK := l.placed[to.Node()]
		if !srcOK || !dstOK {
			l.report.add(Diagnostic{
				Kind:    UnlowerableConnection,
				Conn:    c,
				Message: fmt.Sprintf("%s -> %s has an endpoint that was not lowered", from.Name(), to.Name()),
			})
			continue
		}
		if src.subGraph != dst.subGraph {
			l.report.add(Diagnostic{
				Kind:     CrossSubGraphConnection,
				SubGraph: src.subGraph,
				Conn:     c,
				Message: fmt.Sprintf("%d.%s -> %d.%s crosses from %q to %q",
					src.nodeID, from.Name(), dst.nodeID, to.Name(), src.subGraph, dst.subGraph),
			})
			continue
		}

		l.file.SubGraphs[src.subGraph].Graph.AddConnection(graphfile.Connection{
			OutputNodeID:        dst.nodeID,
			OutputParameterName: to.Name(),
			InputNodeID:         src.nodeID,
			InputParameterName:  from.Name(),
			Condition:           c.Condition(),
		})
	}
}

func (l *lowering) findLoops() {
	for _, loop := range cycles.FindLoops(l.file) {
		l.report.add(Diagnostic{
			Kind:     FeedbackLoop,
			SubGraph: loop.SubGraph,
			NodeIDs:  loop.NodeIDs,
			Message:  fmt.Sprintf("nodes %v feed into each other", loop.NodeIDs),
		})
	}
}

// ArchiveName is the fragment reference of a content node, e.g.
// "Node_3<Multiply>".
func ArchiveName(p graph.ContentPayload) string {
	return p.DeclarationID + "<" + p.DeclarationType + ">"
}

func formatCoord(v float32) string {
	return strconv.FormatFloat(float64(v), 'f', -1, 32)
}
