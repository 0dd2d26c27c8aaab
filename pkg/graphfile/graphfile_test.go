package graphfile

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
)

func sampleFile() *File {
	f := New()
	root := NewSubGraph()
	root.Graph.AddNode(Node{FragmentArchiveName: "Node_1<Lerp>", NodeID: 1, AttributeTableName: "visualNode0"})
	root.Graph.AddNode(Node{FragmentArchiveName: "Node_2<Lerp>", NodeID: 2, AttributeTableName: "visualNode1"})
	root.Graph.AddConnection(Connection{
		OutputNodeID:        2,
		OutputParameterName: "Input0",
		InputNodeID:         1,
		InputParameterName:  "Output",
		Condition:           "enabled",
	})
	f.SubGraphs["root"] = root
	f.SubGraphs["unplaced"] = NewSubGraph()
	f.AttributeTables["visualNode0"] = AttributeTable{AttrX: "10", AttrY: "-4.5", AttrState: StateNormal}
	f.AttributeTables["visualNode1"] = AttributeTable{AttrX: "0", AttrY: "0", AttrState: StateCollapsed}
	return f
}

func TestLayoutRoundTrip(t *testing.T) {
	for _, format := range []Format{FormatJSON, FormatYAML, FormatTOML} {
		t.Run(string(format), func(t *testing.T) {
			var buf bytes.Buffer
			if err := Encode(&buf, sampleFile(), format); err != nil {
				t.Fatalf("Encode() error = %v", err)
			}

			decoded, err := Decode(&buf, format)
			if err != nil {
				t.Fatalf("Decode() error = %v", err)
			}

			if diff := cmp.Diff(sampleFile(), decoded, cmpopts.EquateEmpty()); diff != "" {
				t.Errorf("Round trip mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestJSONShape(t *testing.T) {
	var buf bytes.Buffer
	if err := Encode(&buf, sampleFile(), FormatJSON); err != nil {
		t.Fatalf("Encode() error = %v", err)
	}

	out := buf.String()
	for _, want := range []string{`"subGraphs"`, `"fragmentArchiveName": "Node_1<Lerp>"`, `"outputNodeId": 2`, `"attributeTables"`} {
		if !strings.Contains(out, want) {
			t.Errorf("Expected %s in output:\n%s", want, out)
		}
	}
}

func TestParseFormat(t *testing.T) {
	tests := map[string]Format{"json": FormatJSON, ".yml": FormatYAML, "YAML": FormatYAML, "toml": FormatTOML}
	for name, want := range tests {
		got, err := ParseFormat(name)
		if err != nil || got != want {
			t.Errorf("ParseFormat(%q) = %q, %v; want %q", name, got, err, want)
		}
	}

	if _, err := ParseFormat("xml"); !errors.Is(err, ErrUnknownFormat) {
		t.Errorf("Expected ErrUnknownFormat, got %v", err)
	}
	if FormatForPath("out/graph.yaml", FormatJSON) != FormatYAML {
		t.Error("Expected extension to select yaml")
	}
	if FormatForPath("out/graph", FormatTOML) != FormatTOML {
		t.Error("Expected fallback format without extension")
	}
}

func TestCounts(t *testing.T) {
	f := sampleFile()
	if f.NodeCount() != 2 || f.ConnectionCount() != 1 {
		t.Errorf("Expected 2 nodes and 1 connection, got %d and %d", f.NodeCount(), f.ConnectionCount())
	}
	names := f.SubGraphNames()
	if len(names) != 2 || names[0] != "root" || names[1] != "unplaced" {
		t.Errorf("Expected sorted names, got %v", names)
	}
	if !f.SubGraphs["root"].Graph.HasNode(2) || f.SubGraphs["root"].Graph.HasNode(3) {
		t.Error("HasNode returned the wrong answer")
	}
}
