package datablock

import "testing"

func TestBlockFromDeclaration(t *testing.T) {
	decl := &Declaration{
		TypeIdentifier: "Lerp",
		Properties: []Property{
			{Name: "Amount", Kind: KindFloat, Default: 0.5},
			{Name: "Clamp", Kind: KindBool, Default: true},
			{Name: "Tint", Kind: KindVec3, Default: []any{1.0, 0.5, 0}},
			{Name: "Steps", Kind: KindInt, Default: "four"}, // wrong kind, skipped
			{Name: "Bias", Kind: KindFloat},
		},
	}

	b := NewBlockFromDeclaration(decl)

	if b.TypeIdentifier() != "Lerp" {
		t.Errorf("Expected type Lerp, got %s", b.TypeIdentifier())
	}
	if v, ok := b.Float("Amount"); !ok || v != 0.5 {
		t.Errorf("Expected Amount 0.5, got %v (%v)", v, ok)
	}
	if v, ok := b.Bool("Clamp"); !ok || !v {
		t.Errorf("Expected Clamp true, got %v (%v)", v, ok)
	}
	if v, ok := b.Vec3("Tint"); !ok || v != (Vec3{1, 0.5, 0}) {
		t.Errorf("Expected Tint {1 0.5 0}, got %v (%v)", v, ok)
	}
	if b.Has("Steps") || b.Has("Bias") {
		t.Errorf("Expected Steps and Bias to be unset, got keys %v", b.Keys())
	}
}

func TestBlockTypedAccessors(t *testing.T) {
	b := NewBlock("Test")
	b.SetInt("count", 3)
	b.SetVec2("uv", Vec2{0.25, 0.75})
	b.SetVec4("color", Vec4{1, 1, 1, 1})

	if _, ok := b.Float("count"); ok {
		t.Error("Expected Float accessor to reject an int value")
	}
	if v, ok := b.Int("count"); !ok || v != 3 {
		t.Errorf("Expected count 3, got %v", v)
	}
	if v, _ := b.Vec2("uv"); v != (Vec2{0.25, 0.75}) {
		t.Errorf("Unexpected uv %v", v)
	}
	if len(b.Keys()) != 3 || b.Keys()[0] != "color" {
		t.Errorf("Expected sorted keys, got %v", b.Keys())
	}
}

func TestBlockSet(t *testing.T) {
	b := NewBlock("Test")

	if err := b.Set("n", KindInt, 7.0); err != nil {
		t.Errorf("Expected integral float to coerce to int: %v", err)
	}
	if err := b.Set("n", KindInt, 7.5); err == nil {
		t.Error("Expected fractional float to be rejected as int")
	}
	if err := b.Set("v", KindVec4, []any{1, 2, 3}); err == nil {
		t.Error("Expected short vector to be rejected")
	}
	if err := b.Set("v", KindVec2, []any{int64(1), 2.5}); err != nil {
		t.Errorf("Expected mixed numeric vector to coerce: %v", err)
	}
}

func TestParseKind(t *testing.T) {
	k, err := ParseKind("vec3")
	if err != nil || k != KindVec3 {
		t.Errorf("ParseKind(vec3) = %v, %v", k, err)
	}
	if _, err := ParseKind("matrix"); err == nil {
		t.Error("Expected error for unknown kind")
	}
}
