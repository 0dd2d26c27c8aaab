package compat

import (
	"strconv"
	"strings"

	"github.com/xlgames-inc/XLE-sub005/pkg/graph"
)

// ShaderTypeCompatible checks shader fragment parameters, whose Tags carry
// HLSL-style type names.
//
//   - "auto" matches any type except another "auto"
//   - any two "graph" types match; the restriction in angle brackets is not checked
//   - identical types (ignoring case) are Compatible
//   - pairs the conversion rules allow are Conversion
//
// Connections never cross subgraphs, and the source must belong to one.
type ShaderTypeCompatible struct {
	Rules *ConversionRules
}

// NewShaderTypeCompatible returns the shader policy using rules.
func NewShaderTypeCompatible(rules *ConversionRules) *ShaderTypeCompatible {
	return &ShaderTypeCompatible{Rules: rules}
}

func (s *ShaderTypeCompatible) CanConnect(from, to *graph.Connector) ConnectionType {
	if from == nil || to == nil {
		return Incompatible
	}
	if from.Tag == nil && to.Tag == nil {
		return Compatible
	}
	if from.Tag == nil || to.Tag == nil {
		return Incompatible
	}
	fromNode, toNode := from.Node(), to.Node()
	if fromNode == nil || toNode == nil || fromNode.SubGraphTag() == "" || fromNode.SubGraphTag() != toNode.SubGraphTag() {
		return Incompatible
	}

	fromType, ok1 := from.Tag.(string)
	toType, ok2 := to.Tag.(string)
	if !ok1 || !ok2 {
		return Incompatible
	}

	fromAuto := strings.EqualFold(fromType, "auto")
	toAuto := strings.EqualFold(toType, "auto")
	if fromAuto || toAuto {
		if fromAuto && toAuto {
			return Incompatible
		}
		return Compatible
	}

	if hasFoldPrefix(fromType, "graph") && hasFoldPrefix(toType, "graph") {
		return Compatible
	}

	if strings.EqualFold(fromType, toType) {
		return Compatible
	}
	if s.Rules != nil && s.Rules.HasAutomaticConversion(fromType, toType) {
		return Conversion
	}
	return Incompatible
}

func hasFoldPrefix(s, prefix string) bool {
	return len(s) >= len(prefix) && strings.EqualFold(s[:len(prefix)], prefix)
}

// ConversionRules lists the type pairs a downstream compiler can convert
// implicitly.
type ConversionRules struct {
	numeric  map[string]bool
	explicit map[[2]string]bool
}

// DefaultConversionRules allows implicit conversion between the numeric
// scalar families, scalar-to-vector promotion, vector truncation, and
// same-shape matrix conversion.
func DefaultConversionRules() *ConversionRules {
	r := &ConversionRules{
		numeric:  make(map[string]bool),
		explicit: make(map[[2]string]bool),
	}
	for _, base := range []string{"float", "half", "double", "int", "uint", "dword", "bool"} {
		r.numeric[base] = true
	}
	return r
}

// Allow registers an explicit one-way conversion between two type names.
func (r *ConversionRules) Allow(from, to string) {
	r.explicit[[2]string{strings.ToLower(from), strings.ToLower(to)}] = true
}

// HasAutomaticConversion reports whether from can be converted to to.
func (r *ConversionRules) HasAutomaticConversion(from, to string) bool {
	from, to = strings.ToLower(from), strings.ToLower(to)
	if r.explicit[[2]string{from, to}] {
		return true
	}

	f, ok := parseShape(from)
	if !ok || !r.numeric[f.base] {
		return false
	}
	t, ok := parseShape(to)
	if !ok || !r.numeric[t.base] {
		return false
	}

	if f.cols > 1 || t.cols > 1 {
		return f.rows == t.rows && f.cols == t.cols
	}
	return f.rows == 1 || f.rows >= t.rows
}

type shape struct {
	base string
	rows int
	cols int
}

// parseShape splits "float3x4" into base "float", 3 rows and 4 columns.
// Scalars have one row and one column.
func parseShape(typ string) (shape, bool) {
	i := 0
	for i < len(typ) && typ[i] >= 'a' && typ[i] <= 'z' {
		i++
	}
	if i == 0 {
		return shape{}, false
	}
	s := shape{base: typ[:i], rows: 1, cols: 1}
	rest := typ[i:]
	if rest == "" {
		return s, true
	}

	dims := strings.SplitN(rest, "x", 2)
	rows, err := strconv.Atoi(dims[0])
	if err != nil || rows < 1 || rows > 4 {
		return shape{}, false
	}
	s.rows = rows
	if len(dims) == 2 {
		cols, err := strconv.Atoi(dims[1])
		if err != nil || cols < 1 || cols > 4 {
			return shape{}, false
		}
		s.cols = cols
	}
	return s, true
}
