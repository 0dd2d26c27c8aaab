// Package cycles finds feedback loops in lowered subgraphs. Shader
// fragments are evaluated as a DAG, so a loop is something the compiler
// will reject even though lowering itself accepts it.
package cycles

import (
	"sort"

	"github.com/xlgames-inc/XLE-sub005/pkg/graphfile"
	"gonum.org/v1/gonum/graph/simple"
	"gonum.org/v1/gonum/graph/topo"
)

// Loop is a set of lowered nodes that feed into each other.
type Loop struct {
	SubGraph string
	NodeIDs  []uint32 // sorted
}

// BuildDependencyGraph turns a lowered graph into a gonum directed graph
// with edges from the producing node to the consuming node. Connections to
// the subgraph signature are left out: its parameters only produce and its
// results only consume, so they cannot close a loop even though both sides
// share graphfile.SignatureNodeID. Self connections cannot be represented
// in a simple graph; their node ids are returned separately.
func BuildDependencyGraph(g *graphfile.Graph) (*simple.DirectedGraph, []uint32) {
	dg := simple.NewDirectedGraph()
	ensure := func(id uint32) {
		if dg.Node(int64(id)) == nil {
			dg.AddNode(simple.Node(int64(id)))
		}
	}

	for _, n := range g.Nodes {
		ensure(n.NodeID)
	}

	var selfLoops []uint32
	for _, c := range g.Connections {
		if c.InputNodeID == graphfile.SignatureNodeID || c.OutputNodeID == graphfile.SignatureNodeID {
			continue
		}
		ensure(c.InputNodeID)
		ensure(c.OutputNodeID)
		if c.InputNodeID == c.OutputNodeID {
			selfLoops = append(selfLoops, c.InputNodeID)
			continue
		}
		from, to := int64(c.InputNodeID), int64(c.OutputNodeID)
		if !dg.HasEdgeFromTo(from, to) {
			dg.SetEdge(dg.NewEdge(dg.Node(from), dg.Node(to)))
		}
	}
	return dg, selfLoops
}

// FindLoops reports every loop in every subgraph of f, ordered by subgraph
// name and then by smallest node id.
func FindLoops(f *graphfile.File) []Loop {
	var loops []Loop
	for _, name := range f.SubGraphNames() {
		loops = append(loops, FindSubGraphLoops(name, &f.SubGraphs[name].Graph)...)
	}
	return loops
}

// FindSubGraphLoops reports the loops of a single lowered graph.
func FindSubGraphLoops(name string, g *graphfile.Graph) []Loop {
	dg, selfLoops := BuildDependencyGraph(g)

	var loops []Loop
	seenSelf := make(map[uint32]bool)
	for _, id := range selfLoops {
		if !seenSelf[id] {
			seenSelf[id] = true
			loops = append(loops, Loop{SubGraph: name, NodeIDs: []uint32{id}})
		}
	}

	for _, scc := range topo.TarjanSCC(dg) {
		// Single nodes are only loops when they feed themselves, handled above
		if len(scc) < 2 {
			continue
		}
		ids := make([]uint32, 0, len(scc))
		for _, n := range scc {
			ids = append(ids, uint32(n.ID()))
		}
		sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
		loops = append(loops, Loop{SubGraph: name, NodeIDs: ids})
	}

	sort.SliceStable(loops, func(i, j int) bool { return loops[i].NodeIDs[0] < loops[j].NodeIDs[0] })
	return loops
}
