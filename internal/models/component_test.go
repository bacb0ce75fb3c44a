package models

import (
	"testing"

	"github.com/nav-banner/backend/internal/archive"
	"github.com/nav-banner/backend/internal/display"
)

func strPtr(s string) *string { return &s }

func TestComponentFromJSON_FullExample(t *testing.T) {
	obj := map[string]interface{}{
		"text":          "Main St",
		"type":          "text",
		"abbr":          "Main",
		"abbr_priority": float64(1),
	}

	comp := ComponentFromJSON(ManeuverTypeTurn, ManeuverDirectionRight, obj, display.Fixed(2))

	if comp.Text == nil || *comp.Text != "Main St" {
		t.Errorf("Expected text Main St, got %v", comp.Text)
	}
	if comp.Type != ComponentTypeText {
		t.Errorf("Expected type text, got %s", comp.Type)
	}
	if comp.ImageURL != nil {
		t.Errorf("Expected no image URL, got %v", *comp.ImageURL)
	}
	if comp.Abbreviation == nil || *comp.Abbreviation != "Main" {
		t.Errorf("Expected abbreviation Main, got %v", comp.Abbreviation)
	}
	if comp.AbbreviationPriority != 1 {
		t.Errorf("Expected priority 1, got %d", comp.AbbreviationPriority)
	}
	if comp.ManeuverType != ManeuverTypeTurn {
		t.Errorf("Expected maneuver type turn, got %s", comp.ManeuverType)
	}
	if comp.ManeuverDirection != ManeuverDirectionRight {
		t.Errorf("Expected maneuver direction right, got %s", comp.ManeuverDirection)
	}
}

func TestComponentFromJSON_MissingTypeDefaultsToText(t *testing.T) {
	tests := []struct {
		name string
		obj  map[string]interface{}
	}{
		{"no type key", map[string]interface{}{"text": "exit"}},
		{"unknown type", map[string]interface{}{"type": "hologram"}},
		{"non-string type", map[string]interface{}{"type": float64(7)}},
		{"empty object", map[string]interface{}{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			comp := ComponentFromJSON(ManeuverTypeMerge, ManeuverDirectionSlightLeft, tt.obj, display.Fixed(1))
			if comp.Type != ComponentTypeText {
				t.Errorf("Expected fallback to text, got %s", comp.Type)
			}
		})
	}
}

func TestComponentFromJSON_ImageURLScaling(t *testing.T) {
	tests := []struct {
		scale int
		want  string
	}{
		{1, "https://shields.example.com/i-80@1x.png"},
		{2, "https://shields.example.com/i-80@2x.png"},
		{3, "https://shields.example.com/i-80@3x.png"},
	}

	for _, tt := range tests {
		obj := map[string]interface{}{
			"type":         "icon",
			"imageBaseURL": "https://shields.example.com/i-80",
		}
		comp := ComponentFromJSON(ManeuverTypeOffRamp, ManeuverDirectionRight, obj, display.Fixed(tt.scale))

		if comp.ImageURL == nil {
			t.Fatalf("scale %d: expected image URL, got nil", tt.scale)
		}
		if *comp.ImageURL != tt.want {
			t.Errorf("scale %d: expected %s, got %s", tt.scale, tt.want, *comp.ImageURL)
		}
		if comp.Type != ComponentTypeImage {
			t.Errorf("Expected image type, got %s", comp.Type)
		}
	}
}

func TestComponentFromJSON_NoImageBaseURL(t *testing.T) {
	comp := ComponentFromJSON(ManeuverTypeTurn, ManeuverDirectionLeft,
		map[string]interface{}{"text": "Broadway"}, display.Fixed(3))
	if comp.ImageURL != nil {
		t.Errorf("Expected unset image URL, got %v", *comp.ImageURL)
	}
}

func TestComponentFromJSON_AbbreviationPrioritySentinel(t *testing.T) {
	// Absent priority must be distinguishable from an explicit 0.
	absent := ComponentFromJSON(ManeuverTypeTurn, ManeuverDirectionRight,
		map[string]interface{}{"text": "Main Street"}, display.Fixed(1))
	if absent.AbbreviationPriority != NoAbbreviationPriority {
		t.Errorf("Expected sentinel %d, got %d", NoAbbreviationPriority, absent.AbbreviationPriority)
	}

	zero := ComponentFromJSON(ManeuverTypeTurn, ManeuverDirectionRight,
		map[string]interface{}{"text": "Main Street", "abbr_priority": float64(0)}, display.Fixed(1))
	if zero.AbbreviationPriority != 0 {
		t.Errorf("Expected explicit priority 0, got %d", zero.AbbreviationPriority)
	}
	if zero.AbbreviationPriority == absent.AbbreviationPriority {
		t.Error("Explicit 0 must differ from absent sentinel")
	}
}

func TestComponentArchiveRoundTrip(t *testing.T) {
	original := NewVisualInstructionComponent(
		ComponentTypeExit,
		strPtr("Exit 25"),
		strPtr("https://shields.example.com/exit@2x.png"),
		ManeuverTypeOffRamp,
		ManeuverDirectionSlightRight,
		strPtr("Ex 25"),
		3,
	)

	enc := archive.NewEncoder()
	original.EncodeArchive(enc)
	data, err := enc.Bytes()
	if err != nil {
		t.Fatalf("Encode failed: %v", err)
	}

	dec, err := archive.NewDecoder(data)
	if err != nil {
		t.Fatalf("NewDecoder failed: %v", err)
	}
	decoded, err := ComponentFromArchive(dec)
	if err != nil {
		t.Fatalf("Decode failed: %v", err)
	}

	if *decoded.Text != *original.Text {
		t.Errorf("Text mismatch: %s vs %s", *decoded.Text, *original.Text)
	}
	if *decoded.ImageURL != *original.ImageURL {
		t.Errorf("ImageURL mismatch: %s vs %s", *decoded.ImageURL, *original.ImageURL)
	}
	if decoded.Type != original.Type {
		t.Errorf("Type mismatch: %s vs %s", decoded.Type, original.Type)
	}
	if decoded.ManeuverType != original.ManeuverType {
		t.Errorf("ManeuverType mismatch: %s vs %s", decoded.ManeuverType, original.ManeuverType)
	}
	if decoded.ManeuverDirection != original.ManeuverDirection {
		t.Errorf("ManeuverDirection mismatch: %s vs %s", decoded.ManeuverDirection, original.ManeuverDirection)
	}
	if *decoded.Abbreviation != *original.Abbreviation {
		t.Errorf("Abbreviation mismatch: %s vs %s", *decoded.Abbreviation, *original.Abbreviation)
	}
	if decoded.AbbreviationPriority != original.AbbreviationPriority {
		t.Errorf("Priority mismatch: %d vs %d", decoded.AbbreviationPriority, original.AbbreviationPriority)
	}
}

func TestComponentArchiveDecode_MissingFieldsFail(t *testing.T) {
	// A component with nil optionals encodes fine but must refuse to
	// decode: the decode path treats text, imageURL and abbreviation as
	// mandatory.
	tests := []struct {
		name   string
		mutate func(*VisualInstructionComponent)
	}{
		{"nil text", func(c *VisualInstructionComponent) { c.Text = nil }},
		{"nil imageURL", func(c *VisualInstructionComponent) { c.ImageURL = nil }},
		{"nil abbreviation", func(c *VisualInstructionComponent) { c.Abbreviation = nil }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			comp := NewVisualInstructionComponent(
				ComponentTypeText,
				strPtr("Main St"),
				strPtr("https://example.com/x@1x.png"),
				ManeuverTypeTurn,
				ManeuverDirectionRight,
				strPtr("Main"),
				1,
			)
			tt.mutate(comp)

			enc := archive.NewEncoder()
			comp.EncodeArchive(enc)
			data, err := enc.Bytes()
			if err != nil {
				t.Fatalf("Encode failed: %v", err)
			}

			dec, err := archive.NewDecoder(data)
			if err != nil {
				t.Fatalf("NewDecoder failed: %v", err)
			}
			decoded, err := ComponentFromArchive(dec)
			if err == nil {
				t.Fatal("Expected decode failure, got success")
			}
			if decoded != nil {
				t.Error("Expected no partial object on decode failure")
			}
		})
	}
}

func TestComponentArchiveDecode_BadEnumFails(t *testing.T) {
	tests := []struct {
		name string
		key  string
	}{
		{"bad component type", "type"},
		{"bad maneuver type", "maneuverType"},
		{"bad maneuver direction", "maneuverDirection"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			enc := archive.NewEncoder()
			enc.PutString("text", "Main St")
			enc.PutString("imageURL", "https://example.com/x@1x.png")
			enc.PutString("type", "text")
			enc.PutString("maneuverType", "turn")
			enc.PutString("maneuverDirection", "right")
			enc.PutString("abbreviation", "Main")
			enc.PutInt("abbreviationPriority", 0)
			// Overwrite one enum with garbage.
			enc.PutString(tt.key, "not-a-real-value")

			data, err := enc.Bytes()
			if err != nil {
				t.Fatalf("Encode failed: %v", err)
			}
			dec, err := archive.NewDecoder(data)
			if err != nil {
				t.Fatalf("NewDecoder failed: %v", err)
			}
			if _, err := ComponentFromArchive(dec); err == nil {
				t.Error("Expected decode failure for unparseable enum")
			}
		})
	}
}

func TestComponentArchiveDecode_MissingPriorityDefaultsToZero(t *testing.T) {
	enc := archive.NewEncoder()
	enc.PutString("text", "Main St")
	enc.PutString("imageURL", "https://example.com/x@1x.png")
	enc.PutString("type", "text")
	enc.PutString("maneuverType", "turn")
	enc.PutString("maneuverDirection", "right")
	enc.PutString("abbreviation", "Main")
	// abbreviationPriority deliberately not written.

	data, err := enc.Bytes()
	if err != nil {
		t.Fatalf("Encode failed: %v", err)
	}
	dec, err := archive.NewDecoder(data)
	if err != nil {
		t.Fatalf("NewDecoder failed: %v", err)
	}
	comp, err := ComponentFromArchive(dec)
	if err != nil {
		t.Fatalf("Decode failed: %v", err)
	}
	if comp.AbbreviationPriority != 0 {
		t.Errorf("Expected priority 0 for absent field, got %d", comp.AbbreviationPriority)
	}
}
