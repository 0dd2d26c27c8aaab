// Package editing bridges graph mutations to document state.
package editing

import (
	"github.com/xlgames-inc/XLE-sub005/pkg/compat"
	"github.com/xlgames-inc/XLE-sub005/pkg/graph"
	"github.com/xlgames-inc/XLE-sub005/pkg/logging"
)

// Context wraps a model and the document it belongs to. Every model
// notification marks the document dirty, synchronously and with no other
// side effect.
type Context struct {
	model       *graph.Model
	doc         Document
	strategy    compat.Strategy
	unsubscribe func()
}

// NewContext subscribes to model. A nil strategy allows every connection.
func NewContext(model *graph.Model, doc Document, strategy compat.Strategy) *Context {
	if strategy == nil {
		strategy = compat.AlwaysCompatible{}
	}
	c := &Context{
		model:    model,
		doc:      doc,
		strategy: strategy,
	}
	c.unsubscribe = model.Subscribe(c)
	return c
}

// GraphChanged implements graph.Observer.
func (c *Context) GraphChanged(e graph.Event) {
	switch e.Kind {
	case graph.NodeAdded, graph.NodeRemoved, graph.ConnectionAdded, graph.ConnectionRemoved, graph.MiscChange:
		c.doc.SetDirty(true)
	}
}

// Close stops observing the model. It is safe to call more than once.
func (c *Context) Close() {
	if c.unsubscribe != nil {
		c.unsubscribe()
		c.unsubscribe = nil
	}
}

func (c *Context) Model() *graph.Model { return c.model }

func (c *Context) Document() Document { return c.doc }

func (c *Context) Strategy() compat.Strategy { return c.strategy }

// CanConnect asks the context's strategy about a pair of connectors.
func (c *Context) CanConnect(from, to *graph.Connector) compat.ConnectionType {
	if from == nil || to == nil {
		return compat.Incompatible
	}
	return c.strategy.CanConnect(from, to)
}

// Connect checks the strategy and, unless the pair is Incompatible, joins
// the connectors through the model. The returned type tells the caller
// whether an implicit conversion is expected.
func (c *Context) Connect(from, to *graph.Connector) (*graph.Connection, compat.ConnectionType) {
	kind := c.CanConnect(from, to)
	if kind == compat.Incompatible {
		if from != nil && to != nil {
			logging.Debug("connection refused", "from", from.Name(), "to", to.Name())
		}
		return nil, kind
	}
	conn := c.model.Connect(from, to)
	if conn == nil {
		return nil, compat.Incompatible
	}
	return conn, kind
}
