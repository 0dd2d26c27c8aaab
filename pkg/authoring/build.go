package authoring

import (
	"fmt"

	"github.com/xlgames-inc/XLE-sub005/pkg/compat"
	"github.com/xlgames-inc/XLE-sub005/pkg/datablock"
	"github.com/xlgames-inc/XLE-sub005/pkg/editing"
	"github.com/xlgames-inc/XLE-sub005/pkg/factory"
	"github.com/xlgames-inc/XLE-sub005/pkg/graph"
	"github.com/xlgames-inc/XLE-sub005/pkg/logging"
)

// Built maps description keys to the nodes created for them. Subgraph
// declarations are keyed by subgraph name.
type Built struct {
	Nodes       map[string]*graph.Node
	Conversions int
}

// Build creates the described nodes with f, adds them to ctx's model and
// joins them through ctx so its strategy vets every connection.
func Build(desc *Description, f *factory.Factory, ctx *editing.Context) (*Built, error) {
	log := logging.With("authoring")
	model := ctx.Model()
	built := &Built{Nodes: make(map[string]*graph.Node)}

	decls, err := declarations(desc.Types)
	if err != nil {
		return nil, err
	}

	for _, sg := range desc.SubGraphs {
		if _, exists := built.Nodes[sg.Name]; exists {
			return nil, fmt.Errorf("%w: %q", ErrDuplicateKey, sg.Name)
		}
		header := f.CreateSubGraph(sg.Name, sg.Implements)
		for _, p := range sg.Parameters {
			header.AddItem(graph.NewConnector(p.Name, p.Type), graph.DockOutput)
		}
		for _, r := range sg.Results {
			header.AddItem(graph.NewConnector(r.Name, r.Type), graph.DockInput)
		}
		model.AddNode(header)
		built.Nodes[sg.Name] = header
	}

	for _, nd := range desc.Nodes {
		if _, exists := built.Nodes[nd.Key]; exists {
			return nil, fmt.Errorf("%w: %q", ErrDuplicateKey, nd.Key)
		}
		decl, ok := decls[nd.Type]
		if !ok {
			decl = &datablock.Declaration{TypeIdentifier: nd.Type}
		}
		storage := datablock.NewBlockFromDeclaration(decl)
		if err := setProperties(storage, decl, nd.Properties); err != nil {
			return nil, fmt.Errorf("node %q: %w", nd.Key, err)
		}

		n := f.CreateTestNode(decl, storage)
		n.SetTitle(nd.Key)
		n.SetSubGraphTag(nd.SubGraph)
		n.SetLocation(graph.Point{X: nd.X, Y: nd.Y})
		n.SetCollapsed(nd.Collapsed)
		model.AddNode(n)
		built.Nodes[nd.Key] = n
	}

	for _, cd := range desc.Connections {
		from, err := built.connector(cd.From)
		if err != nil {
			return nil, err
		}
		to, err := built.connector(cd.To)
		if err != nil {
			return nil, err
		}

		conn, kind := ctx.Connect(from, to)
		if conn == nil {
			return nil, fmt.Errorf("%w: %s -> %s", ErrRefused, cd.From, cd.To)
		}
		if cd.Condition != "" {
			conn.SetCondition(cd.Condition)
		}
		if kind == compat.Conversion {
			built.Conversions++
			log.Debug("connection needs conversion", "from", cd.From, "to", cd.To)
		}
	}

	log.Debug("built description",
		"subgraphs", len(desc.SubGraphs),
		"nodes", len(desc.Nodes),
		"connections", len(desc.Connections))
	return built, nil
}

func (b *Built) connector(endpoint string) (*graph.Connector, error) {
	key, name, err := splitEndpoint(endpoint)
	if err != nil {
		return nil, err
	}
	n, ok := b.Nodes[key]
	if !ok {
		return nil, fmt.Errorf("%w: %q in %q", ErrUnknownNode, key, endpoint)
	}
	c := n.Connector(name)
	if c == nil {
		return nil, fmt.Errorf("%w: %q on %q", ErrUnknownConnector, name, key)
	}
	return c, nil
}

func declarations(types []TypeDesc) (map[string]*datablock.Declaration, error) {
	decls := make(map[string]*datablock.Declaration, len(types))
	for _, td := range types {
		decl := &datablock.Declaration{TypeIdentifier: td.Name}
		for _, pd := range td.Properties {
			kind, err := datablock.ParseKind(pd.Kind)
			if err != nil {
				return nil, fmt.Errorf("type %q: %w", td.Name, err)
			}
			decl.Properties = append(decl.Properties, datablock.Property{Name: pd.Name, Kind: kind, Default: pd.Default})
		}
		decls[td.Name] = decl
	}
	return decls, nil
}

// setProperties stores values under their declared kind, or a kind guessed
// from the decoded value for undeclared properties.
func setProperties(b *datablock.Block, decl *datablock.Declaration, props map[string]any) error {
	for name, value := range props {
		kind, ok := kindOf(decl, name, value)
		if !ok {
			return fmt.Errorf("property %q: cannot infer kind of %v", name, value)
		}
		if err := b.Set(name, kind, value); err != nil {
			return err
		}
	}
	return nil
}

func kindOf(decl *datablock.Declaration, name string, value any) (datablock.Kind, bool) {
	if p, ok := decl.Property(name); ok {
		return p.Kind, true
	}
	switch v := value.(type) {
	case bool:
		return datablock.KindBool, true
	case int, int64:
		return datablock.KindInt, true
	case float32, float64:
		return datablock.KindFloat, true
	case []any:
		switch len(v) {
		case 2:
			return datablock.KindVec2, true
		case 3:
			return datablock.KindVec3, true
		case 4:
			return datablock.KindVec4, true
		}
	}
	return 0, false
}
