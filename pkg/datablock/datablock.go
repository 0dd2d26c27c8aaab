// Package datablock provides key/typed-value property blocks that back the
// editable parameters of a node. The graph core never interprets them; it
// only reads the storage's type identifier when building payloads.
package datablock

import (
	"fmt"
	"sort"
)

// Kind is the value type of a property.
type Kind int

const (
	KindInt Kind = iota
	KindFloat
	KindBool
	KindVec2
	KindVec3
	KindVec4
)

func (k Kind) String() string {
	switch k {
	case KindInt:
		return "int"
	case KindFloat:
		return "float"
	case KindBool:
		return "bool"
	case KindVec2:
		return "vec2"
	case KindVec3:
		return "vec3"
	case KindVec4:
		return "vec4"
	default:
		return "unknown"
	}
}

// ParseKind maps a kind name back to its Kind.
func ParseKind(name string) (Kind, error) {
	for k := KindInt; k <= KindVec4; k++ {
		if k.String() == name {
			return k, nil
		}
	}
	return 0, fmt.Errorf("unknown property kind %q", name)
}

type (
	Vec2 [2]float32
	Vec3 [3]float32
	Vec4 [4]float32
)

// Property declares one named, typed entry of a block.
type Property struct {
	Name    string
	Kind    Kind
	Default any
}

// Declaration describes the shape of a block type.
type Declaration struct {
	TypeIdentifier string
	Properties     []Property
}

// Property returns the declared property with the given name.
func (d *Declaration) Property(name string) (Property, bool) {
	for _, p := range d.Properties {
		if p.Name == name {
			return p, true
		}
	}
	return Property{}, false
}

// Block stores property values for one node.
type Block struct {
	typeID string
	values map[string]any
}

// NewBlock creates an empty block of the given type.
func NewBlock(typeID string) *Block {
	return &Block{typeID: typeID, values: make(map[string]any)}
}

// NewBlockFromDeclaration creates a block seeded with the declared defaults.
// Defaults of the wrong kind are skipped.
func NewBlockFromDeclaration(decl *Declaration) *Block {
	b := NewBlock(decl.TypeIdentifier)
	for _, p := range decl.Properties {
		if p.Default == nil {
			continue
		}
		if v, ok := coerce(p.Kind, p.Default); ok {
			b.values[p.Name] = v
		}
	}
	return b
}

// TypeIdentifier names the block's declaration.
func (b *Block) TypeIdentifier() string { return b.typeID }

// Keys returns the stored property names in sorted order.
func (b *Block) Keys() []string {
	keys := make([]string, 0, len(b.values))
	for k := range b.values {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Has reports whether a value is stored under key.
func (b *Block) Has(key string) bool {
	_, ok := b.values[key]
	return ok
}

func (b *Block) Int(key string) (int64, bool) {
	v, ok := b.values[key].(int64)
	return v, ok
}

func (b *Block) Float(key string) (float32, bool) {
	v, ok := b.values[key].(float32)
	return v, ok
}

func (b *Block) Bool(key string) (bool, bool) {
	v, ok := b.values[key].(bool)
	return v, ok
}

func (b *Block) Vec2(key string) (Vec2, bool) {
	v, ok := b.values[key].(Vec2)
	return v, ok
}

func (b *Block) Vec3(key string) (Vec3, bool) {
	v, ok := b.values[key].(Vec3)
	return v, ok
}

func (b *Block) Vec4(key string) (Vec4, bool) {
	v, ok := b.values[key].(Vec4)
	return v, ok
}

func (b *Block) SetInt(key string, v int64)     { b.values[key] = v }
func (b *Block) SetFloat(key string, v float32) { b.values[key] = v }
func (b *Block) SetBool(key string, v bool)     { b.values[key] = v }
func (b *Block) SetVec2(key string, v Vec2)     { b.values[key] = v }
func (b *Block) SetVec3(key string, v Vec3)     { b.values[key] = v }
func (b *Block) SetVec4(key string, v Vec4)     { b.values[key] = v }

// Set stores a loosely typed value (as decoded from a description file)
// under the given kind.
func (b *Block) Set(key string, kind Kind, value any) error {
	v, ok := coerce(kind, value)
	if !ok {
		return fmt.Errorf("property %q: cannot use %v (%T) as %s", key, value, value, kind)
	}
	b.values[key] = v
	return nil
}

func coerce(kind Kind, value any) (any, bool) {
	switch kind {
	case KindInt:
		switch v := value.(type) {
		case int:
			return int64(v), true
		case int64:
			return v, true
		case float64:
			if v == float64(int64(v)) {
				return int64(v), true
			}
		}
	case KindFloat:
		if f, ok := toFloat(value); ok {
			return f, true
		}
	case KindBool:
		v, ok := value.(bool)
		return v, ok
	case KindVec2:
		var v Vec2
		if fillVec(v[:], value) {
			return v, true
		}
	case KindVec3:
		var v Vec3
		if fillVec(v[:], value) {
			return v, true
		}
	case KindVec4:
		var v Vec4
		if fillVec(v[:], value) {
			return v, true
		}
	}
	return nil, false
}

func toFloat(value any) (float32, bool) {
	switch v := value.(type) {
	case float32:
		return v, true
	case float64:
		return float32(v), true
	case int:
		return float32(v), true
	case int64:
		return float32(v), true
	}
	return 0, false
}

func fillVec(dst []float32, value any) bool {
	switch v := value.(type) {
	case []float32:
		if len(v) != len(dst) {
			return false
		}
		copy(dst, v)
		return true
	case []any:
		if len(v) != len(dst) {
			return false
		}
		for i, e := range v {
			f, ok := toFloat(e)
			if !ok {
				return false
			}
			dst[i] = f
		}
		return true
	case Vec2:
		return len(dst) == 2 && copy(dst, v[:]) == 2
	case Vec3:
		return len(dst) == 3 && copy(dst, v[:]) == 3
	case Vec4:
		return len(dst) == 4 && copy(dst, v[:]) == 4
	}
	return false
}
