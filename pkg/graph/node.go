package graph

// Point is a 2D layout position.
type Point struct {
	X float32
	Y float32
}

// Node is a vertex of the authoring graph. Its identity for lowering purposes
// lives in its Payload.
type Node struct {
	title       string
	subGraphTag string // "" means the default graph
	location    Point
	collapsed   bool
	payload     Payload

	items       []Item
	connections []*Connection

	model    *Model // set while the node is a member of a model
	removing bool   // set while RemoveNode disconnects it
}

// NewNode creates a detached node with the given title.
func NewNode(title string) *Node {
	return &Node{title: title}
}

// Title returns the node's display title.
func (n *Node) Title() string { return n.title }

// SubGraphTag returns the subgraph the node belongs to, or, for subgraph
// header nodes, the subgraph it declares. Empty means the default graph.
func (n *Node) SubGraphTag() string { return n.subGraphTag }

// Location returns the node's layout position.
func (n *Node) Location() Point { return n.location }

// Collapsed reports whether the node is drawn collapsed.
func (n *Node) Collapsed() bool { return n.collapsed }

// Payload returns the node's domain payload, which may be nil.
func (n *Node) Payload() Payload { return n.payload }

// Model returns the model the node currently belongs to, if any.
func (n *Node) Model() *Model { return n.model }

// IsSubGraph reports whether the node declares a subgraph.
func (n *Node) IsSubGraph() bool {
	_, ok := n.payload.(SubGraphPayload)
	return ok
}

// SetTitle changes the display title.
func (n *Node) SetTitle(title string) {
	if n.title == title {
		return
	}
	n.title = title
	n.changed("node title changed")
}

// SetSubGraphTag moves the node into another subgraph. A declaration's tag
// is its subgraph name, so it is ignored on declarations that belong to a
// model.
func (n *Node) SetSubGraphTag(tag string) {
	if n.subGraphTag == tag || (n.model != nil && n.IsSubGraph()) {
		return
	}
	n.subGraphTag = tag
	n.changed("node subgraph changed")
}

// SetLocation moves the node.
func (n *Node) SetLocation(p Point) {
	if n.location == p {
		return
	}
	n.location = p
	n.changed("node moved")
}

// SetCollapsed collapses or expands the node.
func (n *Node) SetCollapsed(collapsed bool) {
	if n.collapsed == collapsed {
		return
	}
	n.collapsed = collapsed
	n.changed("node collapsed state changed")
}

// SetPayload attaches the domain payload. A node's payload decides whether a
// model files it as a subgraph declaration, so it cannot change while the
// node is a member of a model; the call is ignored in that case.
func (n *Node) SetPayload(p Payload) {
	if n.model != nil {
		return
	}
	n.payload = p
}

// AddItem docks an item on the node.
func (n *Node) AddItem(item Item, dock Dock) {
	if item == nil || item.Node() != nil {
		return
	}
	item.attach(n, dock)
	n.items = append(n.items, item)
	n.changed("node item added")
}

// Items returns the node's items in docking order.
func (n *Node) Items() []Item {
	return append([]Item(nil), n.items...)
}

// ItemsAt returns the items docked in the given region.
func (n *Node) ItemsAt(dock Dock) []Item {
	var result []Item
	for _, item := range n.items {
		if item.Dock() == dock {
			result = append(result, item)
		}
	}
	return result
}

// Connectors returns the connectors docked in the given region.
func (n *Node) Connectors(dock Dock) []*Connector {
	var result []*Connector
	for _, item := range n.items {
		if c, ok := item.(*Connector); ok && c.Dock() == dock {
			result = append(result, c)
		}
	}
	return result
}

// Connector finds a connector by name, searching inputs before outputs and
// then the remaining docks.
func (n *Node) Connector(name string) *Connector {
	for _, dock := range []Dock{DockInput, DockOutput, DockTop, DockCenter} {
		for _, c := range n.Connectors(dock) {
			if c.Name() == name {
				return c
			}
		}
	}
	return nil
}

// Connections returns a snapshot of the connections incident to the node.
func (n *Node) Connections() []*Connection {
	return append([]*Connection(nil), n.connections...)
}

func (n *Node) removeConnection(c *Connection) {
	for i, other := range n.connections {
		if other == c {
			n.connections = append(n.connections[:i], n.connections[i+1:]...)
			return
		}
	}
}

func (n *Node) changed(reason string) {
	if n.model != nil {
		n.model.NotifyChanged(reason)
	}
}
