// Package compat decides whether two connectors may be joined.
//
// A Strategy answers with one of three results so callers can tell a direct
// connection (Compatible) from one that needs an implicit conversion node
// (Conversion) and from one that must be refused (Incompatible).
package compat

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/xlgames-inc/XLE-sub005/pkg/graph"
)

// ConnectionType is the result of a compatibility check.
type ConnectionType int

const (
	Incompatible ConnectionType = iota
	Compatible
	Conversion
)

func (t ConnectionType) String() string {
	switch t {
	case Incompatible:
		return "incompatible"
	case Compatible:
		return "compatible"
	case Conversion:
		return "conversion"
	default:
		return "unknown"
	}
}

// Strategy is a pure policy over two connectors. Implementations must not
// mutate either connector and must return one of the three defined results
// for any pair of non-nil connectors.
type Strategy interface {
	CanConnect(from, to *graph.Connector) ConnectionType
}

// StrategyFunc adapts a function to the Strategy interface.
type StrategyFunc func(from, to *graph.Connector) ConnectionType

func (f StrategyFunc) CanConnect(from, to *graph.Connector) ConnectionType { return f(from, to) }

// AlwaysCompatible imposes no type system.
type AlwaysCompatible struct{}

func (AlwaysCompatible) CanConnect(from, to *graph.Connector) ConnectionType { return Compatible }

// NeverCompatible disables connecting entirely, e.g. for read-only views.
type NeverCompatible struct{}

func (NeverCompatible) CanConnect(from, to *graph.Connector) ConnectionType { return Incompatible }

// TagTypeCompatible accepts a pair when both Tags are present and have the
// same dynamic type. The Tag values themselves are not compared.
type TagTypeCompatible struct{}

func (TagTypeCompatible) CanConnect(from, to *graph.Connector) ConnectionType {
	if from == nil || to == nil || from.Tag == nil || to.Tag == nil {
		return Incompatible
	}
	if reflect.TypeOf(from.Tag) == reflect.TypeOf(to.Tag) {
		return Compatible
	}
	return Incompatible
}

// ErrUnknownStrategy is returned by Lookup for unrecognized names.
var ErrUnknownStrategy = errors.New("unknown compatibility strategy")

// Lookup resolves a strategy by its configuration name.
func Lookup(name string) (Strategy, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "always", "":
		return AlwaysCompatible{}, nil
	case "never":
		return NeverCompatible{}, nil
	case "tagtype", "tag-type":
		return TagTypeCompatible{}, nil
	case "shader":
		return NewShaderTypeCompatible(DefaultConversionRules()), nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownStrategy, name)
	}
}
