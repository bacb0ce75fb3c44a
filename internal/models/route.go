package models

import "github.com/nav-banner/backend/internal/archive"

// RouteStep is one maneuver of a parsed route, with the banner instructions
// shown while approaching it. Maneuver type and direction are parsed at the
// step level and inherited by every component beneath it.
type RouteStep struct {
	Index             int                `json:"index"`
	Name              string             `json:"name,omitempty"`
	DistanceMeters    float64            `json:"distanceMeters"`
	ManeuverType      ManeuverType       `json:"maneuverType"`
	ManeuverDirection ManeuverDirection  `json:"maneuverDirection"`
	Primary           *VisualInstruction `json:"primary,omitempty"`
	Secondary         *VisualInstruction `json:"secondary,omitempty"`
}

// ParseWarning records a non-fatal defect found while parsing a route
// document, tied to the step it occurred in.
type ParseWarning struct {
	Step   int    `json:"step"`
	Reason string `json:"reason"`
}

// RouteDocument is the result of parsing an uploaded directions document.
type RouteDocument struct {
	Steps          []*RouteStep   `json:"steps"`
	StepCount      int            `json:"stepCount"`
	ComponentCount int            `json:"componentCount"`
	Warnings       []ParseWarning `json:"warnings,omitempty"`
}

// NewRouteDocument creates an empty RouteDocument.
func NewRouteDocument() *RouteDocument {
	return &RouteDocument{
		Steps:    make([]*RouteStep, 0),
		Warnings: make([]ParseWarning, 0),
	}
}

// Archive field keys for RouteStep and RouteDocument.
const (
	keyStepIndex     = "index"
	keyStepName      = "name"
	keyStepDistance  = "distanceMeters"
	keyStepManeuver  = "maneuverType"
	keyStepDirection = "maneuverDirection"
	keyStepPrimary   = "primary"
	keyStepSecondary = "secondary"
	keyDocumentSteps = "steps"
)

// EncodeArchive writes a step and its instructions.
func (rs *RouteStep) EncodeArchive(enc *archive.Encoder) error {
	enc.PutInt(keyStepIndex, rs.Index)
	enc.PutString(keyStepName, rs.Name)
	enc.PutFloat(keyStepDistance, rs.DistanceMeters)
	enc.PutString(keyStepManeuver, string(rs.ManeuverType))
	enc.PutString(keyStepDirection, string(rs.ManeuverDirection))

	for _, slot := range []struct {
		key string
		vi  *VisualInstruction
	}{
		{keyStepPrimary, rs.Primary},
		{keyStepSecondary, rs.Secondary},
	} {
		if slot.vi == nil {
			enc.PutOptionalString(slot.key, nil)
			continue
		}
		viEnc := archive.NewEncoder()
		if err := slot.vi.EncodeArchive(viEnc); err != nil {
			return err
		}
		data, err := viEnc.Bytes()
		if err != nil {
			return err
		}
		enc.PutBlobs(slot.key, [][]byte{data})
	}
	return nil
}

// StepFromArchive decodes a step strictly: the maneuver enums must parse
// and any present instruction must decode in full.
func StepFromArchive(dec *archive.Decoder) (*RouteStep, error) {
	name, err := dec.String(keyStepName)
	if err != nil {
		return nil, err
	}
	rawManeuver, err := dec.String(keyStepManeuver)
	if err != nil {
		return nil, err
	}
	maneuverType, err := ParseManeuverType(rawManeuver)
	if err != nil {
		return nil, err
	}
	rawDirection, err := dec.String(keyStepDirection)
	if err != nil {
		return nil, err
	}
	maneuverDirection, err := ParseManeuverDirection(rawDirection)
	if err != nil {
		return nil, err
	}

	step := &RouteStep{
		Index:             dec.Int(keyStepIndex),
		Name:              name,
		DistanceMeters:    dec.Float(keyStepDistance),
		ManeuverType:      maneuverType,
		ManeuverDirection: maneuverDirection,
	}

	for _, slot := range []struct {
		key    string
		target **VisualInstruction
	}{
		{keyStepPrimary, &step.Primary},
		{keyStepSecondary, &step.Secondary},
	} {
		if !dec.Has(slot.key) {
			continue
		}
		blobs, err := dec.Blobs(slot.key)
		if err != nil {
			return nil, err
		}
		if len(blobs) == 0 {
			continue
		}
		viDec, err := archive.NewDecoder(blobs[0])
		if err != nil {
			return nil, err
		}
		vi, err := InstructionFromArchive(viDec)
		if err != nil {
			return nil, err
		}
		*slot.target = vi
	}

	return step, nil
}

// EncodeArchive writes the whole document.
func (rd *RouteDocument) EncodeArchive(enc *archive.Encoder) error {
	blobs := make([][]byte, 0, len(rd.Steps))
	for _, step := range rd.Steps {
		stepEnc := archive.NewEncoder()
		if err := step.EncodeArchive(stepEnc); err != nil {
			return err
		}
		data, err := stepEnc.Bytes()
		if err != nil {
			return err
		}
		blobs = append(blobs, data)
	}
	enc.PutBlobs(keyDocumentSteps, blobs)
	return nil
}

// DocumentFromArchive decodes a document strictly. One bad step aborts the
// whole decode; no partial document is produced.
func DocumentFromArchive(dec *archive.Decoder) (*RouteDocument, error) {
	blobs, err := dec.Blobs(keyDocumentSteps)
	if err != nil {
		return nil, err
	}

	doc := NewRouteDocument()
	for _, blob := range blobs {
		stepDec, err := archive.NewDecoder(blob)
		if err != nil {
			return nil, err
		}
		step, err := StepFromArchive(stepDec)
		if err != nil {
			return nil, err
		}
		doc.Steps = append(doc.Steps, step)
		if step.Primary != nil {
			doc.ComponentCount += len(step.Primary.Components)
		}
		if step.Secondary != nil {
			doc.ComponentCount += len(step.Secondary.Components)
		}
	}
	doc.StepCount = len(doc.Steps)
	return doc, nil
}
