package graph

import (
	"github.com/xlgames-inc/XLE-sub005/pkg/logging"
)

// Model owns the nodes, subgraph declarations and connections of an
// authoring graph and notifies observers of every mutation.
//
// Model is not safe for concurrent use. All mutation and notification happen
// on the caller's goroutine.
type Model struct {
	nodes     []*Node
	subGraphs []*Node
	observers observerList
}

// NewModel creates an empty model.
func NewModel() *Model {
	return &Model{}
}

// Subscribe registers an observer and returns a function that removes it.
func (m *Model) Subscribe(o Observer) (unsubscribe func()) {
	return m.observers.add(o)
}

// Nodes returns the ordinary nodes in insertion order.
func (m *Model) Nodes() []*Node {
	return append([]*Node(nil), m.nodes...)
}

// SubGraphs returns the subgraph declaration nodes in insertion order.
func (m *Model) SubGraphs() []*Node {
	return append([]*Node(nil), m.subGraphs...)
}

// Contains reports whether n is a member of the model.
func (m *Model) Contains(n *Node) bool {
	return n != nil && n.model == m
}

// FindSubGraph returns the first declaration node for the named subgraph.
// Declarations are matched on their payload name, as lowering does.
func (m *Model) FindSubGraph(name string) *Node {
	for _, n := range m.subGraphs {
		if p, ok := n.payload.(SubGraphPayload); ok && p.Name == name {
			return n
		}
	}
	return nil
}

// Connections returns every connection in the model once, ordered by the
// first incident node (ordinary nodes first, then declarations).
func (m *Model) Connections() []*Connection {
	seen := make(map[*Connection]bool)
	var result []*Connection
	for _, set := range [][]*Node{m.nodes, m.subGraphs} {
		for _, n := range set {
			for _, c := range n.connections {
				if !seen[c] {
					seen[c] = true
					result = append(result, c)
				}
			}
		}
	}
	return result
}

// AddNode inserts n. Nodes with a SubGraphPayload are filed as subgraph
// declarations. Returns false if n is nil or already belongs to a model.
func (m *Model) AddNode(n *Node) bool {
	if n == nil || n.model != nil {
		return false
	}
	n.model = m
	if n.IsSubGraph() {
		m.subGraphs = append(m.subGraphs, n)
	} else {
		m.nodes = append(m.nodes, n)
	}
	logging.Trace("node added", "title", n.title, "subgraph", n.subGraphTag)
	m.observers.dispatch(Event{Kind: NodeAdded, Node: n})
	return true
}

// AddNodes inserts each node in order and returns how many were added.
func (m *Model) AddNodes(nodes ...*Node) int {
	added := 0
	for _, n := range nodes {
		if m.AddNode(n) {
			added++
		}
	}
	return added
}

// RemoveNode disconnects and removes n. Removing a node that is not a
// member is a no-op and returns false.
func (m *Model) RemoveNode(n *Node) bool {
	if !m.Contains(n) {
		return false
	}
	// Connect refuses n from here on, so handlers cannot re-attach it
	n.removing = true
	for len(n.connections) > 0 && m.Contains(n) {
		if !m.DisconnectAll(n) {
			break
		}
	}
	n.removing = false
	// A ConnectionRemoved handler may already have removed the node.
	if !m.Contains(n) {
		return true
	}
	if n.IsSubGraph() {
		m.subGraphs = removeNode(m.subGraphs, n)
	} else {
		m.nodes = removeNode(m.nodes, n)
	}
	n.model = nil
	logging.Trace("node removed", "title", n.title, "subgraph", n.subGraphTag)
	m.observers.dispatch(Event{Kind: NodeRemoved, Node: n})
	return true
}

// RemoveNodes removes each node in order and returns how many were removed.
func (m *Model) RemoveNodes(nodes ...*Node) int {
	removed := 0
	for _, n := range nodes {
		if m.RemoveNode(n) {
			removed++
		}
	}
	return removed
}

// Connect joins from to to. It does not consult a compatibility strategy;
// callers do that first. Returns nil if either connector is detached, owned
// by a node outside the model or being removed, disabled, or if the pair is
// already joined.
func (m *Model) Connect(from, to *Connector) *Connection {
	if from == nil || to == nil || !from.Enabled || !to.Enabled {
		return nil
	}
	if !m.Contains(from.node) || !m.Contains(to.node) || from.node.removing || to.node.removing {
		return nil
	}
	for _, other := range from.node.connections {
		if other.from == from && other.to == to {
			return nil
		}
	}

	c := &Connection{from: from, to: to}
	from.node.connections = append(from.node.connections, c)
	if to.node != from.node {
		to.node.connections = append(to.node.connections, c)
	}
	logging.Trace("connection added", "from", from.name, "to", to.name)
	m.observers.dispatch(Event{Kind: ConnectionAdded, Connection: c})
	return c
}

// Disconnect removes c. Returns false if c is nil or no longer live.
func (m *Model) Disconnect(c *Connection) bool {
	if c == nil || !c.Live() {
		return false
	}
	from, to := c.from, c.to
	if !m.Contains(from.node) && !m.Contains(to.node) {
		return false
	}
	from.node.removeConnection(c)
	to.node.removeConnection(c)
	c.from = nil
	c.to = nil
	logging.Trace("connection removed", "from", from.name, "to", to.name)
	m.observers.dispatch(Event{Kind: ConnectionRemoved, Connection: c, From: from, To: to})
	return true
}

// DisconnectAll removes every connection incident to n.
func (m *Model) DisconnectAll(n *Node) bool {
	if n == nil {
		return false
	}
	modified := false
	for _, c := range n.Connections() {
		if m.Disconnect(c) {
			modified = true
		}
	}
	return modified
}

// NotifyChanged raises a MiscChange notification for changes that are not
// node or connection insertions and removals.
func (m *Model) NotifyChanged(reason string) {
	m.observers.dispatch(Event{Kind: MiscChange, Reason: reason})
}

func removeNode(nodes []*Node, n *Node) []*Node {
	for i, other := range nodes {
		if other == n {
			return append(nodes[:i:i], nodes[i+1:]...)
		}
	}
	return nodes
}
