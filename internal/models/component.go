package models

import (
	"fmt"

	"github.com/nav-banner/backend/internal/archive"
	"github.com/nav-banner/backend/internal/display"
)

// NoAbbreviationPriority marks a component that was given no abbreviation
// priority. Distinct from an explicit priority of 0, which is the most
// eager to abbreviate.
const NoAbbreviationPriority = -1

// Archive field keys for VisualInstructionComponent.
const (
	keyText                 = "text"
	keyImageURL             = "imageURL"
	keyComponentType        = "type"
	keyManeuverType         = "maneuverType"
	keyManeuverDirection    = "maneuverDirection"
	keyAbbreviation         = "abbreviation"
	keyAbbreviationPriority = "abbreviationPriority"
)

// VisualInstructionComponent is one styled fragment of a visual instruction:
// a piece of text, a road shield image, or abbreviation-capable text.
type VisualInstructionComponent struct {
	// Text is the plain-text representation, also used as fallback when an
	// image cannot be displayed.
	Text *string `json:"text,omitempty"`

	// ImageURL points at the image sized for the display the component was
	// built for.
	ImageURL *string `json:"imageUrl,omitempty"`

	Type              VisualInstructionComponentType `json:"type"`
	ManeuverType      ManeuverType                   `json:"maneuverType"`
	ManeuverDirection ManeuverDirection              `json:"maneuverDirection"`

	// Abbreviation is the shortened form of Text, if one exists.
	Abbreviation *string `json:"abbr,omitempty"`

	// AbbreviationPriority ranks components for shortening: lower values
	// abbreviate first. NoAbbreviationPriority when unranked.
	AbbreviationPriority int `json:"abbrPriority"`
}

// NewVisualInstructionComponent constructs a component from explicit field
// values. No validation is performed.
func NewVisualInstructionComponent(
	componentType VisualInstructionComponentType,
	text *string,
	imageURL *string,
	maneuverType ManeuverType,
	maneuverDirection ManeuverDirection,
	abbreviation *string,
	abbreviationPriority int,
) *VisualInstructionComponent {
	return &VisualInstructionComponent{
		Text:                 text,
		ImageURL:             imageURL,
		Type:                 componentType,
		ManeuverType:         maneuverType,
		ManeuverDirection:    maneuverDirection,
		Abbreviation:         abbreviation,
		AbbreviationPriority: abbreviationPriority,
	}
}

// ComponentFromJSON constructs a component from one entry of a banner's
// "components" array. The maneuver type and direction come from the
// containing step, not the JSON object.
//
// Every key is optional and nothing here fails: an unknown "type" falls
// back to the text variant, a missing "abbr_priority" yields
// NoAbbreviationPriority. When "imageBaseURL" is present, the image URL is
// derived from it using the scale reported by the provider, in the form
// "<base>@<scale>x.png".
func ComponentFromJSON(
	maneuverType ManeuverType,
	maneuverDirection ManeuverDirection,
	obj map[string]interface{},
	scale display.Provider,
) *VisualInstructionComponent {
	text := jsonString(obj, "text")
	componentType := ComponentTypeText
	if s := jsonString(obj, "type"); s != nil {
		componentType = ComponentTypeOrText(*s)
	}
	abbreviation := jsonString(obj, "abbr")

	priority := NoAbbreviationPriority
	if n, ok := jsonInt(obj, "abbr_priority"); ok {
		priority = n
	}

	var imageURL *string
	if base := jsonString(obj, "imageBaseURL"); base != nil {
		u := fmt.Sprintf("%s@%dx.png", *base, scale.Scale())
		imageURL = &u
	}

	return NewVisualInstructionComponent(
		componentType, text, imageURL,
		maneuverType, maneuverDirection,
		abbreviation, priority,
	)
}

// EncodeArchive writes all seven fields under their fixed keys. Absent
// optionals are written as explicit nils.
func (vc *VisualInstructionComponent) EncodeArchive(enc *archive.Encoder) {
	enc.PutOptionalString(keyText, vc.Text)
	enc.PutOptionalString(keyImageURL, vc.ImageURL)
	enc.PutString(keyComponentType, string(vc.Type))
	enc.PutString(keyManeuverType, string(vc.ManeuverType))
	enc.PutString(keyManeuverDirection, string(vc.ManeuverDirection))
	enc.PutOptionalString(keyAbbreviation, vc.Abbreviation)
	enc.PutInt(keyAbbreviationPriority, vc.AbbreviationPriority)
}

// ComponentFromArchive decodes a component from an archive. Unlike the JSON
// path this is strict: text, imageURL and abbreviation must be present and
// non-nil, and the three enum fields must parse, or no component is
// produced at all. abbreviationPriority alone has no failure path and
// defaults to zero when absent.
//
// Note that the strictness on text/imageURL/abbreviation means a component
// that was encoded without them cannot be decoded back; the lenient JSON
// path happily produces such components. Inherited behavior, kept as is.
func ComponentFromArchive(dec *archive.Decoder) (*VisualInstructionComponent, error) {
	text, err := dec.String(keyText)
	if err != nil {
		return nil, err
	}
	imageURL, err := dec.String(keyImageURL)
	if err != nil {
		return nil, err
	}
	rawType, err := dec.String(keyComponentType)
	if err != nil {
		return nil, err
	}
	componentType, err := ParseComponentType(rawType)
	if err != nil {
		return nil, err
	}
	rawManeuver, err := dec.String(keyManeuverType)
	if err != nil {
		return nil, err
	}
	maneuverType, err := ParseManeuverType(rawManeuver)
	if err != nil {
		return nil, err
	}
	rawDirection, err := dec.String(keyManeuverDirection)
	if err != nil {
		return nil, err
	}
	maneuverDirection, err := ParseManeuverDirection(rawDirection)
	if err != nil {
		return nil, err
	}
	abbreviation, err := dec.String(keyAbbreviation)
	if err != nil {
		return nil, err
	}
	priority := dec.Int(keyAbbreviationPriority)

	return NewVisualInstructionComponent(
		componentType, &text, &imageURL,
		maneuverType, maneuverDirection,
		&abbreviation, priority,
	), nil
}

// DisplayText returns the text a renderer should fall back to: the
// abbreviation when asked for and available, otherwise the full text.
func (vc *VisualInstructionComponent) DisplayText(abbreviated bool) string {
	if abbreviated && vc.Abbreviation != nil {
		return *vc.Abbreviation
	}
	if vc.Text != nil {
		return *vc.Text
	}
	return ""
}

func jsonString(obj map[string]interface{}, key string) *string {
	v, ok := obj[key]
	if !ok {
		return nil
	}
	s, ok := v.(string)
	if !ok {
		return nil
	}
	return &s
}

func jsonInt(obj map[string]interface{}, key string) (int, bool) {
	v, ok := obj[key]
	if !ok {
		return 0, false
	}
	switch n := v.(type) {
	case float64:
		return int(n), true
	case int:
		return n, true
	case int64:
		return int(n), true
	default:
		return 0, false
	}
}
