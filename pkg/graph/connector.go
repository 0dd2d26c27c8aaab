package graph

import "unicode"

// Dock is the region of a node an item is attached to.
type Dock int

const (
	DockTop Dock = iota
	DockInput
	DockOutput
	DockCenter
)

func (d Dock) String() string {
	switch d {
	case DockTop:
		return "top"
	case DockInput:
		return "input"
	case DockOutput:
		return "output"
	case DockCenter:
		return "center"
	default:
		return "unknown"
	}
}

// Item is anything that can be docked on a node: connectors, titles, text
// boxes and presentation frames. Types outside this package implement it by
// embedding ItemBase.
type Item interface {
	Node() *Node
	Dock() Dock
	attach(n *Node, d Dock)
}

// ItemBase records where an item is docked.
type ItemBase struct {
	node *Node
	dock Dock
}

// Node returns the owning node, or nil if the item was never added to one.
func (b *ItemBase) Node() *Node { return b.node }

// Dock returns the region the item is docked in.
func (b *ItemBase) Dock() Dock { return b.dock }

func (b *ItemBase) attach(n *Node, d Dock) {
	b.node = n
	b.dock = d
}

// TitleItem is a static caption.
type TitleItem struct {
	ItemBase
	Title string
}

// TextItem is an editable line of text, e.g. a subgraph name.
type TextItem struct {
	ItemBase
	Text string
}

// Connector is a named, typed attachment point for connections.
type Connector struct {
	ItemBase

	name      string
	typ       string
	shortType string
	label     string // cached Label(), cleared on rename

	// Tag is consulted by compatibility strategies. SetType resets it to the
	// type string.
	Tag     any
	Enabled bool
}

// NewConnector creates an enabled connector with the given name and type.
func NewConnector(name, typ string) *Connector {
	c := &Connector{name: name, Enabled: true}
	c.setType(typ)
	return c
}

// Name returns the connector's display name, which is also the parameter
// name used when lowering connections.
func (c *Connector) Name() string { return c.name }

// Type returns the declared data type label.
func (c *Connector) Type() string { return c.typ }

// ShortType returns the compact type abbreviation, e.g. "f3" for "float3".
func (c *Connector) ShortType() string { return c.shortType }

// Label returns "name (shortType)" for compact listings.
func (c *Connector) Label() string {
	if c.label == "" {
		c.label = c.name + " (" + c.shortType + ")"
	}
	return c.label
}

// SetName renames the connector.
func (c *Connector) SetName(name string) {
	if c.name == name {
		return
	}
	c.name = name
	c.label = ""
	c.changed("connector renamed")
}

// SetType changes the declared type and resets Tag to the new type string.
func (c *Connector) SetType(typ string) {
	c.setType(typ)
	c.changed("connector retyped")
}

func (c *Connector) setType(typ string) {
	c.typ = typ
	c.shortType = ShortTypeOf(typ)
	c.label = ""
	c.Tag = typ
}

func (c *Connector) changed(reason string) {
	if c.node != nil {
		c.node.changed(reason)
	}
}

// ShortTypeOf abbreviates a type label to its first character plus any
// trailing dimension suffix: "float" -> "f", "float3" -> "f3",
// "float4x4" -> "f4x4".
func ShortTypeOf(typ string) string {
	r := []rune(typ)
	n := len(r)
	if n == 0 {
		return ""
	}
	short := string(r[0])
	if !unicode.IsDigit(r[n-1]) {
		return short
	}
	if n > 2 && r[n-2] == 'x' && unicode.IsDigit(r[n-3]) {
		return short + string(r[n-3:])
	}
	return short + string(r[n-1])
}
