package parser

import (
	"strings"
	"testing"

	"github.com/nav-banner/backend/internal/display"
	"github.com/nav-banner/backend/internal/models"
)

const sampleDirections = `{
  "routes": [
    {
      "legs": [
        {
          "steps": [
            {
              "name": "Main Street",
              "distance": 420.5,
              "maneuver": {"type": "turn", "modifier": "right"},
              "bannerInstructions": [
                {
                  "primary": {
                    "text": "Turn right onto Main Street",
                    "components": [
                      {"text": "Main Street", "type": "text", "abbr": "Main St", "abbr_priority": 0},
                      {"type": "icon", "text": "I-80", "imageBaseURL": "https://shields.example.com/i-80"}
                    ]
                  },
                  "secondary": {
                    "text": "Then merge",
                    "components": [
                      {"text": "Then merge", "type": "text"}
                    ]
                  }
                }
              ]
            },
            {
              "name": "",
              "distance": 50,
              "maneuver": {"type": "arrive", "modifier": "straight"}
            }
          ]
        }
      ]
    }
  ]
}`

func TestParseDirections(t *testing.T) {
	doc, err := ParseDirections(strings.NewReader(sampleDirections), display.Fixed(2))
	if err != nil {
		t.Fatalf("ParseDirections failed: %v", err)
	}

	if doc.StepCount != 2 {
		t.Fatalf("Expected 2 steps, got %d", doc.StepCount)
	}
	if doc.ComponentCount != 3 {
		t.Errorf("Expected 3 components, got %d", doc.ComponentCount)
	}
	if len(doc.Warnings) != 0 {
		t.Errorf("Expected no warnings, got %v", doc.Warnings)
	}

	step := doc.Steps[0]
	if step.ManeuverType != models.ManeuverTypeTurn {
		t.Errorf("Expected turn, got %s", step.ManeuverType)
	}
	if step.ManeuverDirection != models.ManeuverDirectionRight {
		t.Errorf("Expected right, got %s", step.ManeuverDirection)
	}
	if step.DistanceMeters != 420.5 {
		t.Errorf("Expected 420.5, got %f", step.DistanceMeters)
	}
	if step.Primary == nil {
		t.Fatal("Expected primary instruction")
	}
	if len(step.Primary.Components) != 2 {
		t.Fatalf("Expected 2 primary components, got %d", len(step.Primary.Components))
	}

	shield := step.Primary.Components[1]
	if shield.Type != models.ComponentTypeImage {
		t.Errorf("Expected image, got %s", shield.Type)
	}
	if shield.ImageURL == nil || *shield.ImageURL != "https://shields.example.com/i-80@2x.png" {
		t.Errorf("Unexpected image URL: %v", shield.ImageURL)
	}
	// Components inherit the step's maneuver context.
	if shield.ManeuverType != models.ManeuverTypeTurn || shield.ManeuverDirection != models.ManeuverDirectionRight {
		t.Error("Component did not inherit step maneuver context")
	}

	if step.Secondary == nil || len(step.Secondary.Components) != 1 {
		t.Error("Expected secondary instruction with 1 component")
	}

	arrive := doc.Steps[1]
	if arrive.ManeuverType != models.ManeuverTypeArrive {
		t.Errorf("Expected arrive, got %s", arrive.ManeuverType)
	}
	if arrive.Primary != nil {
		t.Error("Expected no banner on arrival step")
	}
}

func TestParseDirections_UnknownManeuverWarns(t *testing.T) {
	input := `{
	  "routes": [{"legs": [{"steps": [
	    {"name": "X", "maneuver": {"type": "teleport", "modifier": "up"}}
	  ]}]}]
	}`

	doc, err := ParseDirections(strings.NewReader(input), display.Fixed(1))
	if err != nil {
		t.Fatalf("ParseDirections failed: %v", err)
	}
	if doc.StepCount != 1 {
		t.Fatalf("Expected 1 step, got %d", doc.StepCount)
	}
	if len(doc.Warnings) != 2 {
		t.Errorf("Expected 2 warnings (type and modifier), got %d", len(doc.Warnings))
	}
	// Unknown values fall back so the step remains usable.
	if doc.Steps[0].ManeuverType != models.ManeuverTypeContinue {
		t.Errorf("Expected continue fallback, got %s", doc.Steps[0].ManeuverType)
	}
	if doc.Steps[0].ManeuverDirection != models.ManeuverDirectionStraight {
		t.Errorf("Expected straight fallback, got %s", doc.Steps[0].ManeuverDirection)
	}
}

func TestParseDirections_MissingManeuverWarns(t *testing.T) {
	input := `{"routes": [{"legs": [{"steps": [{"name": "X"}]}]}]}`

	doc, err := ParseDirections(strings.NewReader(input), display.Fixed(1))
	if err != nil {
		t.Fatalf("ParseDirections failed: %v", err)
	}
	if len(doc.Warnings) != 1 {
		t.Errorf("Expected 1 warning, got %d", len(doc.Warnings))
	}
}

func TestParseDirections_InvalidJSON(t *testing.T) {
	if _, err := ParseDirections(strings.NewReader("{not json"), display.Fixed(1)); err == nil {
		t.Error("Expected error for invalid JSON")
	}
}

func TestParseDirections_EmptyDocument(t *testing.T) {
	doc, err := ParseDirections(strings.NewReader("{}"), display.Fixed(1))
	if err != nil {
		t.Fatalf("ParseDirections failed: %v", err)
	}
	if doc.StepCount != 0 {
		t.Errorf("Expected 0 steps, got %d", doc.StepCount)
	}
}
