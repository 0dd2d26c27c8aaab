package graph

import "testing"

func TestShortTypeOf(t *testing.T) {
	tests := []struct {
		typ      string
		expected string
	}{
		{"", ""},
		{"float", "f"},
		{"float3", "f3"},
		{"float4x4", "f4x4"},
		{"int2", "i2"},
		{"matrix", "m"},
		{"x2", "x2"},
		{"tex2x", "t"},
	}

	for _, tt := range tests {
		if got := ShortTypeOf(tt.typ); got != tt.expected {
			t.Errorf("ShortTypeOf(%q) = %q, want %q", tt.typ, got, tt.expected)
		}
	}
}

func TestConnectorTypeResetsTag(t *testing.T) {
	c := NewConnector("Input0", "float")
	if c.Tag != "float" {
		t.Fatalf("Expected Tag to default to the type, got %v", c.Tag)
	}

	c.Tag = 42
	c.SetType("float3")

	if c.Tag != "float3" {
		t.Errorf("Expected Tag float3 after SetType, got %v", c.Tag)
	}
	if c.ShortType() != "f3" {
		t.Errorf("Expected short type f3, got %s", c.ShortType())
	}
}

func TestConnectorRenameInvalidatesLabel(t *testing.T) {
	c := NewConnector("Input0", "float2")
	if c.Label() != "Input0 (f2)" {
		t.Fatalf("Unexpected label %q", c.Label())
	}

	c.SetName("Color")

	if c.Label() != "Color (f2)" {
		t.Errorf("Expected label to follow rename, got %q", c.Label())
	}
}

func TestNodeConnectorLookup(t *testing.T) {
	n := NewNode("Multiply")
	in := NewConnector("A", "float")
	out := NewConnector("Result", "float")
	n.AddItem(&TitleItem{Title: "Multiply"}, DockTop)
	n.AddItem(in, DockInput)
	n.AddItem(out, DockOutput)

	if n.Connector("A") != in || n.Connector("Result") != out {
		t.Error("Connector lookup returned the wrong connector")
	}
	if n.Connector("missing") != nil {
		t.Error("Expected nil for unknown connector")
	}
	if len(n.Connectors(DockInput)) != 1 || len(n.ItemsAt(DockTop)) != 1 {
		t.Errorf("Unexpected dock partition: %d inputs, %d top items",
			len(n.Connectors(DockInput)), len(n.ItemsAt(DockTop)))
	}
	if in.Node() != n || in.Dock() != DockInput {
		t.Error("Expected connector to record its owner and dock")
	}
}

func TestAddItemTwiceIsIgnored(t *testing.T) {
	a := NewNode("a")
	b := NewNode("b")
	c := NewConnector("x", "float")

	a.AddItem(c, DockInput)
	b.AddItem(c, DockOutput)

	if c.Node() != a || len(b.Items()) != 0 {
		t.Error("Expected an item to belong to exactly one node")
	}
}
