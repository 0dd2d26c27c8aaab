package factory

import (
	"testing"

	"github.com/xlgames-inc/XLE-sub005/pkg/datablock"
	"github.com/xlgames-inc/XLE-sub005/pkg/graph"
)

func TestCreateTestNode(t *testing.T) {
	f := New(NewIDAllocator(5))
	decl := &datablock.Declaration{TypeIdentifier: "Multiply"}
	storage := datablock.NewBlockFromDeclaration(decl)

	n := f.CreateTestNode(decl, storage)

	payload, ok := n.Payload().(graph.ContentPayload)
	if !ok {
		t.Fatalf("Expected ContentPayload, got %T", n.Payload())
	}
	if payload.ID != 5 || payload.DeclarationID != "Node_5" || payload.DeclarationType != "Multiply" {
		t.Errorf("Unexpected payload %+v", payload)
	}

	inputs := n.Connectors(graph.DockInput)
	outputs := n.Connectors(graph.DockOutput)
	if len(inputs) != 2 || inputs[0].Name() != "Input0" || inputs[1].Name() != "Input1" {
		t.Errorf("Unexpected inputs %v", inputs)
	}
	if len(outputs) != 1 || outputs[0].Name() != "Output" || outputs[0].Type() != "float" {
		t.Errorf("Unexpected outputs %v", outputs)
	}

	frame := Frame(n)
	if frame == nil || frame.Storage != storage || frame.Declaration != decl {
		t.Error("Expected center frame to bind declaration and storage")
	}
	if frame.Dock() != graph.DockCenter {
		t.Errorf("Expected frame in center dock, got %v", frame.Dock())
	}
	if Description(n) != "Title" {
		t.Errorf("Expected description Title, got %q", Description(n))
	}
}

func TestIDsAreMonotonicAcrossCalls(t *testing.T) {
	ids := NewIDAllocator(0)
	a := New(ids)
	b := New(ids)

	first := a.CreateTestNode(nil, datablock.NewBlock("T"))
	second := b.CreateTestNode(nil, datablock.NewBlock("T"))
	third := a.CreateTestNode(nil, nil)

	got := []uint32{
		first.Payload().(graph.ContentPayload).ID,
		second.Payload().(graph.ContentPayload).ID,
		third.Payload().(graph.ContentPayload).ID,
	}
	if got[0] != 1 || got[1] != 2 || got[2] != 3 {
		t.Errorf("Expected ids 1,2,3, got %v", got)
	}
	if ids.Peek() != 4 {
		t.Errorf("Expected next id 4, got %d", ids.Peek())
	}
}

func TestCreateSubGraph(t *testing.T) {
	f := New(nil)
	n := f.CreateSubGraph("root", "ShaderPatch")

	if !n.IsSubGraph() || n.SubGraphTag() != "root" {
		t.Errorf("Expected header for root, got tag %q", n.SubGraphTag())
	}
	payload := n.Payload().(graph.SubGraphPayload)
	if payload.Implements != "ShaderPatch" {
		t.Errorf("Expected implements ShaderPatch, got %q", payload.Implements)
	}
	if len(n.ItemsAt(graph.DockTop)) != 3 {
		t.Errorf("Expected 3 top items, got %d", len(n.ItemsAt(graph.DockTop)))
	}
	if f.IDs().Peek() != 1 {
		t.Error("Subgraph headers must not consume node ids")
	}
}

func TestFindNodeByID(t *testing.T) {
	f := New(nil)
	m := graph.NewModel()
	a := f.CreateTestNode(nil, datablock.NewBlock("T"))
	b := f.CreateTestNode(nil, datablock.NewBlock("T"))
	m.AddNodes(a, b, graph.NewNode("scratch"))

	if FindNodeByID(m, 2) != b {
		t.Error("Expected to find node 2")
	}
	if FindNodeByID(m, 9) != nil {
		t.Error("Expected nil for unknown id")
	}
}
