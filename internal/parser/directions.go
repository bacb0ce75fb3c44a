// Package parser turns uploaded directions documents into route models.
package parser

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/nav-banner/backend/internal/display"
	"github.com/nav-banner/backend/internal/models"
)

// ParseDirections parses a directions-style JSON document
// (routes -> legs -> steps -> bannerInstructions) into a RouteDocument.
//
// Only malformed JSON is fatal. Defects inside the document (missing
// maneuvers, unknown maneuver strings, non-object banner entries) are
// recorded as per-step warnings and parsing continues; banner components
// themselves go through the lenient JSON construction path and never fail.
func ParseDirections(r io.Reader, scale display.Provider) (*models.RouteDocument, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("reading directions document: %w", err)
	}

	var root map[string]interface{}
	if err := json.Unmarshal(data, &root); err != nil {
		return nil, fmt.Errorf("parsing directions document: %w", err)
	}

	doc := models.NewRouteDocument()

	for _, route := range jsonArray(root, "routes") {
		routeObj, ok := route.(map[string]interface{})
		if !ok {
			continue
		}
		for _, leg := range jsonArray(routeObj, "legs") {
			legObj, ok := leg.(map[string]interface{})
			if !ok {
				continue
			}
			for _, step := range jsonArray(legObj, "steps") {
				stepObj, ok := step.(map[string]interface{})
				if !ok {
					doc.Warnings = append(doc.Warnings, models.ParseWarning{
						Step:   len(doc.Steps),
						Reason: "step is not an object",
					})
					continue
				}
				doc.Steps = append(doc.Steps, parseStep(doc, stepObj, scale))
			}
		}
	}

	doc.StepCount = len(doc.Steps)
	for _, step := range doc.Steps {
		if step.Primary != nil {
			doc.ComponentCount += len(step.Primary.Components)
		}
		if step.Secondary != nil {
			doc.ComponentCount += len(step.Secondary.Components)
		}
	}

	return doc, nil
}

// ParseDirectionsFile parses a directions document from disk.
func ParseDirectionsFile(path string, scale display.Provider) (*models.RouteDocument, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	return ParseDirections(file, scale)
}

func parseStep(doc *models.RouteDocument, stepObj map[string]interface{}, scale display.Provider) *models.RouteStep {
	index := len(doc.Steps)

	step := &models.RouteStep{
		Index:             index,
		ManeuverType:      models.ManeuverTypeContinue,
		ManeuverDirection: models.ManeuverDirectionStraight,
	}
	if s, ok := stepObj["name"].(string); ok {
		step.Name = s
	}
	if d, ok := stepObj["distance"].(float64); ok {
		step.DistanceMeters = d
	}

	maneuver, ok := stepObj["maneuver"].(map[string]interface{})
	if !ok {
		doc.Warnings = append(doc.Warnings, models.ParseWarning{
			Step:   index,
			Reason: "missing maneuver, defaulting to continue/straight",
		})
	} else {
		if raw, ok := maneuver["type"].(string); ok {
			if mt, err := models.ParseManeuverType(raw); err == nil {
				step.ManeuverType = mt
			} else {
				doc.Warnings = append(doc.Warnings, models.ParseWarning{
					Step:   index,
					Reason: err.Error(),
				})
			}
		}
		if raw, ok := maneuver["modifier"].(string); ok {
			if md, err := models.ParseManeuverDirection(raw); err == nil {
				step.ManeuverDirection = md
			} else {
				doc.Warnings = append(doc.Warnings, models.ParseWarning{
					Step:   index,
					Reason: err.Error(),
				})
			}
		}
	}

	// Only the first banner applies; later entries repeat the same banner
	// at different distances along the step.
	banners := jsonArray(stepObj, "bannerInstructions")
	if len(banners) == 0 {
		return step
	}
	banner, ok := banners[0].(map[string]interface{})
	if !ok {
		doc.Warnings = append(doc.Warnings, models.ParseWarning{
			Step:   index,
			Reason: "banner instruction is not an object",
		})
		return step
	}

	if primary, ok := banner["primary"].(map[string]interface{}); ok {
		step.Primary = models.InstructionFromJSON(step.ManeuverType, step.ManeuverDirection, primary, scale)
	}
	if secondary, ok := banner["secondary"].(map[string]interface{}); ok {
		step.Secondary = models.InstructionFromJSON(step.ManeuverType, step.ManeuverDirection, secondary, scale)
	}

	return step
}

func jsonArray(obj map[string]interface{}, key string) []interface{} {
	arr, _ := obj[key].([]interface{})
	return arr
}
