// Package graphfile holds the lowered, serializable form of an authoring
// graph: one Graph and Signature per subgraph, plus optional editor
// attribute tables used only to round-trip layout.
package graphfile

import "sort"

// SignatureNodeID is the node id used for connection ends that attach to a
// subgraph's own declaration, i.e. its signature parameters.
const SignatureNodeID uint32 = 0

// File is the artifact handed to the shader compiler.
type File struct {
	SubGraphs       map[string]*SubGraph      `json:"subGraphs" yaml:"subGraphs" toml:"subGraphs"`
	AttributeTables map[string]AttributeTable `json:"attributeTables,omitempty" yaml:"attributeTables,omitempty" toml:"attributeTables,omitempty"`
}

// SubGraph pairs a lowered graph with its signature.
type SubGraph struct {
	Graph     Graph     `json:"graph" yaml:"graph" toml:"graph"`
	Signature Signature `json:"signature" yaml:"signature" toml:"signature"`
}

// Graph is an ordered list of lowered nodes and connections.
type Graph struct {
	Nodes       []Node       `json:"nodes" yaml:"nodes" toml:"nodes"`
	Connections []Connection `json:"connections" yaml:"connections" toml:"connections"`
}

// Node references a fragment in the archive, e.g. "Node_3<Multiply>".
type Node struct {
	FragmentArchiveName string `json:"fragmentArchiveName" yaml:"fragmentArchiveName" toml:"fragmentArchiveName"`
	NodeID              uint32 `json:"nodeId" yaml:"nodeId" toml:"nodeId"`
	AttributeTableName  string `json:"attributeTableName,omitempty" yaml:"attributeTableName,omitempty" toml:"attributeTableName,omitempty"`
}

// Connection is a lowered edge. The "output" side is the node receiving the
// value (the connection's To end); the "input" side is the node producing
// it (the From end).
type Connection struct {
	OutputNodeID        uint32 `json:"outputNodeId" yaml:"outputNodeId" toml:"outputNodeId"`
	OutputParameterName string `json:"outputParameterName" yaml:"outputParameterName" toml:"outputParameterName"`
	InputNodeID         uint32 `json:"inputNodeId" yaml:"inputNodeId" toml:"inputNodeId"`
	InputParameterName  string `json:"inputParameterName" yaml:"inputParameterName" toml:"inputParameterName"`
	Condition           string `json:"condition,omitempty" yaml:"condition,omitempty" toml:"condition,omitempty"`
}

// ParameterDirection tells whether a signature parameter is read or written.
type ParameterDirection string

const (
	DirectionIn  ParameterDirection = "in"
	DirectionOut ParameterDirection = "out"
)

// Parameter is one entry of a signature.
type Parameter struct {
	Name      string             `json:"name" yaml:"name" toml:"name"`
	Type      string             `json:"type" yaml:"type" toml:"type"`
	Direction ParameterDirection `json:"direction" yaml:"direction" toml:"direction"`
	Semantic  string             `json:"semantic,omitempty" yaml:"semantic,omitempty" toml:"semantic,omitempty"`
	Default   string             `json:"default,omitempty" yaml:"default,omitempty" toml:"default,omitempty"`
}

// Signature is the structural contract of a subgraph. Lowering emits it
// empty; the shader compiler fills it in.
type Signature struct {
	Parameters []Parameter `json:"parameters,omitempty" yaml:"parameters,omitempty" toml:"parameters,omitempty"`
}

// AttributeTable holds editor-only metadata for one lowered node.
type AttributeTable map[string]string

// Attribute table keys written by lowering.
const (
	AttrX     = "X"
	AttrY     = "Y"
	AttrState = "State"

	StateCollapsed = "Collapsed"
	StateNormal    = "Normal"
)

// New creates an empty file.
func New() *File {
	return &File{
		SubGraphs:       make(map[string]*SubGraph),
		AttributeTables: make(map[string]AttributeTable),
	}
}

// NewSubGraph creates a subgraph with an empty graph and signature.
func NewSubGraph() *SubGraph {
	return &SubGraph{
		Graph: Graph{
			Nodes:       make([]Node, 0),
			Connections: make([]Connection, 0),
		},
	}
}

// AddNode appends a lowered node.
func (g *Graph) AddNode(node Node) {
	g.Nodes = append(g.Nodes, node)
}

// AddConnection appends a lowered connection.
func (g *Graph) AddConnection(conn Connection) {
	g.Connections = append(g.Connections, conn)
}

// HasNode reports whether a node with the given id is present.
func (g *Graph) HasNode(id uint32) bool {
	for _, n := range g.Nodes {
		if n.NodeID == id {
			return true
		}
	}
	return false
}

// SubGraphNames returns the subgraph names in sorted order.
func (f *File) SubGraphNames() []string {
	names := make([]string, 0, len(f.SubGraphs))
	for name := range f.SubGraphs {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// NodeCount returns the number of lowered nodes across all subgraphs.
func (f *File) NodeCount() int {
	count := 0
	for _, sg := range f.SubGraphs {
		count += len(sg.Graph.Nodes)
	}
	return count
}

// ConnectionCount returns the number of lowered connections across all subgraphs.
func (f *File) ConnectionCount() int {
	count := 0
	for _, sg := range f.SubGraphs {
		count += len(sg.Graph.Connections)
	}
	return count
}
