package graph

// Connection joins an output-side connector to an input-side connector.
// Connections are created and destroyed only by Model.Connect and
// Model.Disconnect.
type Connection struct {
	from      *Connector
	to        *Connector
	condition string
}

// From returns the source connector, or nil once the connection is removed.
func (c *Connection) From() *Connector { return c.from }

// To returns the destination connector, or nil once the connection is removed.
func (c *Connection) To() *Connector { return c.to }

// Condition returns the optional guard text.
func (c *Connection) Condition() string { return c.condition }

// SetCondition replaces the guard text.
func (c *Connection) SetCondition(text string) {
	if c.condition == text {
		return
	}
	c.condition = text
	if c.from != nil && c.from.node != nil {
		c.from.node.changed("connection condition changed")
	}
}

// Live reports whether both endpoints are still attached.
func (c *Connection) Live() bool {
	return c.from != nil && c.to != nil
}

// Touches reports whether either endpoint belongs to n.
func (c *Connection) Touches(n *Node) bool {
	return (c.from != nil && c.from.node == n) || (c.to != nil && c.to.node == n)
}
