package graphfile

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"
)

// Format selects a serialization.
type Format string

const (
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
	FormatTOML Format = "toml"
)

// ErrUnknownFormat is returned for unsupported format names.
var ErrUnknownFormat = errors.New("unknown graph file format")

// ParseFormat maps a format name or file extension to a Format.
func ParseFormat(name string) (Format, error) {
	switch strings.ToLower(strings.TrimPrefix(name, ".")) {
	case "json":
		return FormatJSON, nil
	case "yaml", "yml":
		return FormatYAML, nil
	case "toml":
		return FormatTOML, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownFormat, name)
	}
}

// FormatForPath picks a format from a file extension, falling back to def.
func FormatForPath(path string, def Format) Format {
	if f, err := ParseFormat(filepath.Ext(path)); err == nil {
		return f
	}
	return def
}

// Encode writes f in the given format.
func Encode(w io.Writer, f *File, format Format) error {
	switch format {
	case FormatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		if err := enc.Encode(f); err != nil {
			return fmt.Errorf("failed to encode graph file as json: %w", err)
		}
	case FormatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(f); err != nil {
			return fmt.Errorf("failed to encode graph file as yaml: %w", err)
		}
		if err := enc.Close(); err != nil {
			return fmt.Errorf("failed to flush yaml encoder: %w", err)
		}
	case FormatTOML:
		enc := toml.NewEncoder(w)
		enc.SetIndentTables(true)
		if err := enc.Encode(f); err != nil {
			return fmt.Errorf("failed to encode graph file as toml: %w", err)
		}
	default:
		return fmt.Errorf("%w: %q", ErrUnknownFormat, format)
	}
	return nil
}

// Decode reads a file in the given format.
func Decode(r io.Reader, format Format) (*File, error) {
	f := New()
	var err error
	switch format {
	case FormatJSON:
		err = json.NewDecoder(r).Decode(f)
	case FormatYAML:
		err = yaml.NewDecoder(r).Decode(f)
	case FormatTOML:
		err = toml.NewDecoder(r).Decode(f)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownFormat, format)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to decode %s graph file: %w", format, err)
	}
	if f.SubGraphs == nil {
		f.SubGraphs = make(map[string]*SubGraph)
	}
	if f.AttributeTables == nil {
		f.AttributeTables = make(map[string]AttributeTable)
	}
	return f, nil
}
