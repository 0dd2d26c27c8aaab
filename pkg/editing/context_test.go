package editing

import (
	"testing"

	"github.com/xlgames-inc/XLE-sub005/pkg/compat"
	"github.com/xlgames-inc/XLE-sub005/pkg/datablock"
	"github.com/xlgames-inc/XLE-sub005/pkg/factory"
	"github.com/xlgames-inc/XLE-sub005/pkg/graph"
)

func newSession(strategy compat.Strategy) (*Context, *MemoryDocument, *factory.Factory) {
	doc := NewMemoryDocument("test.graph")
	ctx := NewContext(graph.NewModel(), doc, strategy)
	return ctx, doc, factory.New(nil)
}

func TestEveryNotificationMarksDirty(t *testing.T) {
	ctx, doc, f := newSession(nil)
	m := ctx.Model()
	a := f.CreateTestNode(nil, datablock.NewBlock("T"))
	b := f.CreateTestNode(nil, datablock.NewBlock("T"))

	steps := []struct {
		name   string
		mutate func()
	}{
		{"node added", func() { m.AddNode(a); m.AddNode(b) }},
		{"connection added", func() { ctx.Connect(a.Connector("Output"), b.Connector("Input0")) }},
		{"misc change", func() { a.SetLocation(graph.Point{X: 4, Y: 2}) }},
		{"connection removed", func() { m.DisconnectAll(a) }},
		{"node removed", func() { m.RemoveNode(b) }},
	}

	for _, step := range steps {
		doc.MarkSaved()
		step.mutate()
		if !doc.IsDirty() {
			t.Errorf("Expected document dirty after %s", step.name)
		}
	}
}

func TestNoOpsLeaveDocumentClean(t *testing.T) {
	ctx, doc, f := newSession(nil)
	outside := f.CreateTestNode(nil, nil)

	ctx.Model().RemoveNode(outside)
	ctx.Model().AddNode(nil)

	if doc.IsDirty() {
		t.Error("Expected no-op mutations to leave the document clean")
	}
}

func TestCloseStopsObserving(t *testing.T) {
	ctx, doc, f := newSession(nil)
	ctx.Close()
	ctx.Close()

	ctx.Model().AddNode(f.CreateTestNode(nil, nil))

	if doc.IsDirty() {
		t.Error("Expected closed context to ignore mutations")
	}
}

func TestConnectConsultsStrategy(t *testing.T) {
	ctx, doc, f := newSession(compat.NeverCompatible{})
	a := f.CreateTestNode(nil, nil)
	b := f.CreateTestNode(nil, nil)
	ctx.Model().AddNodes(a, b)
	doc.MarkSaved()

	conn, kind := ctx.Connect(a.Connector("Output"), b.Connector("Input0"))

	if conn != nil || kind != compat.Incompatible {
		t.Errorf("Expected refusal, got %v %v", conn, kind)
	}
	if doc.IsDirty() {
		t.Error("Expected refused connection to leave the document clean")
	}
	if _, kind := ctx.Connect(nil, b.Connector("Input0")); kind != compat.Incompatible {
		t.Errorf("Expected nil endpoint to be incompatible, got %v", kind)
	}
}

func TestConnectReportsConversion(t *testing.T) {
	ctx, _, f := newSession(compat.NewShaderTypeCompatible(compat.DefaultConversionRules()))
	header := f.CreateSubGraph("root", "")
	a := f.CreateTestNode(nil, nil)
	b := f.CreateTestNode(nil, nil)
	a.SetSubGraphTag("root")
	b.SetSubGraphTag("root")
	b.Connector("Input0").SetType("float3")
	ctx.Model().AddNodes(header, a, b)

	conn, kind := ctx.Connect(a.Connector("Output"), b.Connector("Input0"))

	if conn == nil || kind != compat.Conversion {
		t.Errorf("Expected conversion connection, got %v %v", conn, kind)
	}
	if _, kind := ctx.Connect(a.Connector("Output"), b.Connector("Input0")); kind != compat.Incompatible {
		t.Errorf("Expected duplicate connection to be refused, got %v", kind)
	}
}

func TestMemoryDocumentIdentity(t *testing.T) {
	a := NewMemoryDocument("a")
	b := NewMemoryDocument("a")
	if a.ID == b.ID {
		t.Error("Expected distinct document ids")
	}
}
