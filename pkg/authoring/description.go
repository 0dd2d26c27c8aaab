// Package authoring loads graph description files and builds them into an
// editing session. A description is the text form of what a user would
// otherwise assemble on the canvas.
package authoring

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/knadh/koanf/parsers/json"
	"github.com/knadh/koanf/parsers/toml/v2"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

var (
	ErrUnsupportedFile  = errors.New("unsupported description file")
	ErrUnknownNode      = errors.New("unknown node")
	ErrUnknownConnector = errors.New("unknown connector")
	ErrDuplicateKey     = errors.New("duplicate node key")
	ErrRefused          = errors.New("connection refused")
)

// Description is the decoded content of a description file.
type Description struct {
	Types       []TypeDesc       `koanf:"types"`
	SubGraphs   []SubGraphDesc   `koanf:"subgraphs"`
	Nodes       []NodeDesc       `koanf:"nodes"`
	Connections []ConnectionDesc `koanf:"connections"`
}

// TypeDesc declares the properties of a node type.
type TypeDesc struct {
	Name       string         `koanf:"name"`
	Properties []PropertyDesc `koanf:"properties"`
}

type PropertyDesc struct {
	Name    string `koanf:"name"`
	Kind    string `koanf:"kind"`
	Default any    `koanf:"default"`
}

// SubGraphDesc declares a subgraph. Parameters are values the subgraph
// receives and Results are values it produces; both become connectors on
// the declaration node, addressed as "<name>.<port>".
type SubGraphDesc struct {
	Name       string     `koanf:"name"`
	Implements string     `koanf:"implements"`
	Parameters []PortDesc `koanf:"parameters"`
	Results    []PortDesc `koanf:"results"`
}

type PortDesc struct {
	Name string `koanf:"name"`
	Type string `koanf:"type"`
}

type NodeDesc struct {
	Key        string         `koanf:"key"`
	Type       string         `koanf:"type"`
	SubGraph   string         `koanf:"subgraph"`
	X          float32        `koanf:"x"`
	Y          float32        `koanf:"y"`
	Collapsed  bool           `koanf:"collapsed"`
	Properties map[string]any `koanf:"properties"`
}

// ConnectionDesc joins "<key>.<connector>" endpoints.
type ConnectionDesc struct {
	From      string `koanf:"from"`
	To        string `koanf:"to"`
	Condition string `koanf:"condition"`
}

// parserFor picks a koanf parser from the file extension.
func parserFor(path string) (koanf.Parser, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".toml":
		return toml.Parser(), nil
	case ".yaml", ".yml":
		return yaml.Parser(), nil
	case ".json":
		return json.Parser(), nil
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedFile, path)
	}
}

// Load reads and decodes a description file.
func Load(path string) (*Description, error) {
	parser, err := parserFor(path)
	if err != nil {
		return nil, err
	}

	k := koanf.New(".")
	if err := k.Load(file.Provider(path), parser); err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}

	var desc Description
	if err := k.Unmarshal("", &desc); err != nil {
		return nil, fmt.Errorf("failed to decode %s: %w", path, err)
	}
	return &desc, nil
}

// splitEndpoint parses "<key>.<connector>".
func splitEndpoint(s string) (key, connector string, err error) {
	key, connector, ok := strings.Cut(s, ".")
	if !ok || key == "" || connector == "" {
		return "", "", fmt.Errorf("%w: endpoint %q is not <node>.<connector>", ErrUnknownConnector, s)
	}
	return key, connector, nil
}
