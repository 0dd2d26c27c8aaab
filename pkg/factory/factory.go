// Package factory builds the nodes that lowering understands: content nodes
// carrying a graph.ContentPayload and subgraph header nodes.
package factory

import (
	"fmt"

	"github.com/xlgames-inc/XLE-sub005/pkg/graph"
	"github.com/xlgames-inc/XLE-sub005/pkg/logging"
)

// Declaration is the externally supplied description of a node's property
// block. The factory treats it as opaque.
type Declaration any

// Storage is the externally supplied property block of a node.
type Storage interface {
	TypeIdentifier() string
}

// IDAllocator hands out monotonically increasing node ids. It is never
// reset; a session owns one and passes it to its factory.
type IDAllocator struct {
	next uint32
}

// NewIDAllocator returns an allocator whose first id is start (1 if zero).
func NewIDAllocator(start uint32) *IDAllocator {
	if start == 0 {
		start = 1
	}
	return &IDAllocator{next: start}
}

// Next returns a fresh id.
func (a *IDAllocator) Next() uint32 {
	id := a.next
	a.next++
	return id
}

// Peek returns the id Next will return, without consuming it.
func (a *IDAllocator) Peek() uint32 { return a.next }

// FrameItem is the center-docked slot that presents a node's declaration
// and storage to the property editor.
type FrameItem struct {
	graph.ItemBase
	Declaration Declaration
	Storage     Storage
}

// Factory creates nodes with ids from its allocator.
type Factory struct {
	ids *IDAllocator
}

// New creates a factory. A nil allocator gets a fresh one starting at 1.
func New(ids *IDAllocator) *Factory {
	if ids == nil {
		ids = NewIDAllocator(1)
	}
	return &Factory{ids: ids}
}

// IDs returns the factory's allocator.
func (f *Factory) IDs() *IDAllocator { return f.ids }

// CreateTestNode builds a content node with two float inputs, one float
// output and a frame binding decl and storage.
func (f *Factory) CreateTestNode(decl Declaration, storage Storage) *graph.Node {
	id := f.ids.Next()
	typeID := ""
	if storage != nil {
		typeID = storage.TypeIdentifier()
	}

	node := graph.NewNode("Title")
	node.SetPayload(graph.ContentPayload{
		ID:              id,
		DeclarationID:   fmt.Sprintf("Node_%d", id),
		DeclarationType: typeID,
	})
	node.AddItem(&graph.TitleItem{Title: "Title"}, graph.DockTop)
	node.AddItem(graph.NewConnector("Input0", "float"), graph.DockInput)
	node.AddItem(graph.NewConnector("Input1", "float"), graph.DockInput)
	node.AddItem(graph.NewConnector("Output", "float"), graph.DockOutput)
	node.AddItem(&FrameItem{Declaration: decl, Storage: storage}, graph.DockCenter)

	logging.Trace("created node", "node", id, "type", typeID)
	return node
}

// CreateSubGraph builds the header node declaring subgraph name.
func (f *Factory) CreateSubGraph(name, implements string) *graph.Node {
	node := graph.NewNode(name)
	node.SetSubGraphTag(name)
	node.SetPayload(graph.SubGraphPayload{Name: name, Implements: implements})
	node.AddItem(&graph.TextItem{Text: name}, graph.DockTop)
	node.AddItem(&graph.TitleItem{Title: " implements "}, graph.DockTop)
	node.AddItem(&graph.TextItem{Text: implements}, graph.DockTop)
	return node
}

// Frame returns the node's frame item, if it was built by CreateTestNode.
func Frame(n *graph.Node) *FrameItem {
	if n == nil {
		return nil
	}
	for _, item := range n.ItemsAt(graph.DockCenter) {
		if frame, ok := item.(*FrameItem); ok {
			return frame
		}
	}
	return nil
}

// Description is the one-line text used when listing a node.
func Description(n *graph.Node) string {
	if n == nil {
		return ""
	}
	return n.Title()
}

// FindNodeByID returns the content node with the given id.
func FindNodeByID(m *graph.Model, id uint32) *graph.Node {
	for _, n := range m.Nodes() {
		if p, ok := n.Payload().(graph.ContentPayload); ok && p.ID == id {
			return n
		}
	}
	return nil
}
