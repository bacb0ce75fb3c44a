package models

import (
	"strings"

	"github.com/nav-banner/backend/internal/archive"
	"github.com/nav-banner/backend/internal/display"
)

// Archive field keys for VisualInstruction.
const (
	keyInstructionText       = "text"
	keyInstructionComponents = "components"
)

// VisualInstruction is one display-ready banner line: a summary text plus
// the ordered components it is composed of.
type VisualInstruction struct {
	Text       string                        `json:"text"`
	Components []*VisualInstructionComponent `json:"components"`
}

// InstructionFromJSON constructs an instruction from a banner JSON object
// ({"text": ..., "components": [...]}). Like the component path it is
// lenient: missing or malformed keys are skipped, never fatal. Non-object
// entries in the components array are dropped.
func InstructionFromJSON(
	maneuverType ManeuverType,
	maneuverDirection ManeuverDirection,
	obj map[string]interface{},
	scale display.Provider,
) *VisualInstruction {
	vi := &VisualInstruction{
		Components: make([]*VisualInstructionComponent, 0),
	}
	if s := jsonString(obj, "text"); s != nil {
		vi.Text = *s
	}

	raw, ok := obj["components"].([]interface{})
	if !ok {
		return vi
	}
	for _, item := range raw {
		compObj, ok := item.(map[string]interface{})
		if !ok {
			continue
		}
		vi.Components = append(vi.Components,
			ComponentFromJSON(maneuverType, maneuverDirection, compObj, scale))
	}
	return vi
}

// EncodeArchive writes the instruction and all its components.
func (vi *VisualInstruction) EncodeArchive(enc *archive.Encoder) error {
	enc.PutString(keyInstructionText, vi.Text)

	blobs := make([][]byte, 0, len(vi.Components))
	for _, comp := range vi.Components {
		compEnc := archive.NewEncoder()
		comp.EncodeArchive(compEnc)
		data, err := compEnc.Bytes()
		if err != nil {
			return err
		}
		blobs = append(blobs, data)
	}
	enc.PutBlobs(keyInstructionComponents, blobs)
	return nil
}

// InstructionFromArchive decodes an instruction strictly. A single failed
// component aborts the whole instruction.
func InstructionFromArchive(dec *archive.Decoder) (*VisualInstruction, error) {
	text, err := dec.String(keyInstructionText)
	if err != nil {
		return nil, err
	}
	blobs, err := dec.Blobs(keyInstructionComponents)
	if err != nil {
		return nil, err
	}

	components := make([]*VisualInstructionComponent, 0, len(blobs))
	for _, blob := range blobs {
		compDec, err := archive.NewDecoder(blob)
		if err != nil {
			return nil, err
		}
		comp, err := ComponentFromArchive(compDec)
		if err != nil {
			return nil, err
		}
		components = append(components, comp)
	}

	return &VisualInstruction{Text: text, Components: components}, nil
}

// RenderText flattens the instruction to the text a width-constrained
// renderer would draw, using abbreviations where requested and available.
// Image-only components contribute their fallback text.
func (vi *VisualInstruction) RenderText(abbreviated bool) string {
	parts := make([]string, 0, len(vi.Components))
	for _, comp := range vi.Components {
		if t := comp.DisplayText(abbreviated); t != "" {
			parts = append(parts, t)
		}
	}
	if len(parts) == 0 {
		return vi.Text
	}
	return strings.Join(parts, " ")
}
