package models

import "fmt"

// VisualInstructionComponentType classifies how a single banner component
// should be rendered.
type VisualInstructionComponentType string

const (
	ComponentTypeText       VisualInstructionComponentType = "text"
	ComponentTypeImage      VisualInstructionComponentType = "image"
	ComponentTypeDelimiter  VisualInstructionComponentType = "delimiter"
	ComponentTypeExit       VisualInstructionComponentType = "exit"
	ComponentTypeExitNumber VisualInstructionComponentType = "exit-number"
)

// ManeuverType classifies the driving action a route step represents.
type ManeuverType string

const (
	ManeuverTypeDepart         ManeuverType = "depart"
	ManeuverTypeTurn           ManeuverType = "turn"
	ManeuverTypeContinue       ManeuverType = "continue"
	ManeuverTypeNewName        ManeuverType = "new name"
	ManeuverTypeMerge          ManeuverType = "merge"
	ManeuverTypeOnRamp         ManeuverType = "on ramp"
	ManeuverTypeOffRamp        ManeuverType = "off ramp"
	ManeuverTypeFork           ManeuverType = "fork"
	ManeuverTypeEndOfRoad      ManeuverType = "end of road"
	ManeuverTypeUseLane        ManeuverType = "use lane"
	ManeuverTypeRoundabout     ManeuverType = "roundabout"
	ManeuverTypeRotary         ManeuverType = "rotary"
	ManeuverTypeRoundaboutTurn ManeuverType = "roundabout turn"
	ManeuverTypeExitRoundabout ManeuverType = "exit roundabout"
	ManeuverTypeExitRotary     ManeuverType = "exit rotary"
	ManeuverTypeNotification   ManeuverType = "notification"
	ManeuverTypeArrive         ManeuverType = "arrive"
)

// ManeuverDirection is the directional modifier of a maneuver.
type ManeuverDirection string

const (
	ManeuverDirectionSharpRight  ManeuverDirection = "sharp right"
	ManeuverDirectionRight       ManeuverDirection = "right"
	ManeuverDirectionSlightRight ManeuverDirection = "slight right"
	ManeuverDirectionStraight    ManeuverDirection = "straight"
	ManeuverDirectionSlightLeft  ManeuverDirection = "slight left"
	ManeuverDirectionLeft        ManeuverDirection = "left"
	ManeuverDirectionSharpLeft   ManeuverDirection = "sharp left"
	ManeuverDirectionUTurn       ManeuverDirection = "uturn"
)

var componentTypes = map[string]VisualInstructionComponentType{
	string(ComponentTypeText):       ComponentTypeText,
	string(ComponentTypeImage):      ComponentTypeImage,
	string(ComponentTypeDelimiter):  ComponentTypeDelimiter,
	string(ComponentTypeExit):       ComponentTypeExit,
	string(ComponentTypeExitNumber): ComponentTypeExitNumber,
	// Alias used by some upstream payloads for image components.
	"icon": ComponentTypeImage,
}

var maneuverTypes = map[string]ManeuverType{
	string(ManeuverTypeDepart):         ManeuverTypeDepart,
	string(ManeuverTypeTurn):           ManeuverTypeTurn,
	string(ManeuverTypeContinue):       ManeuverTypeContinue,
	string(ManeuverTypeNewName):        ManeuverTypeNewName,
	string(ManeuverTypeMerge):          ManeuverTypeMerge,
	string(ManeuverTypeOnRamp):         ManeuverTypeOnRamp,
	string(ManeuverTypeOffRamp):        ManeuverTypeOffRamp,
	string(ManeuverTypeFork):           ManeuverTypeFork,
	string(ManeuverTypeEndOfRoad):      ManeuverTypeEndOfRoad,
	string(ManeuverTypeUseLane):        ManeuverTypeUseLane,
	string(ManeuverTypeRoundabout):     ManeuverTypeRoundabout,
	string(ManeuverTypeRotary):         ManeuverTypeRotary,
	string(ManeuverTypeRoundaboutTurn): ManeuverTypeRoundaboutTurn,
	string(ManeuverTypeExitRoundabout): ManeuverTypeExitRoundabout,
	string(ManeuverTypeExitRotary):     ManeuverTypeExitRotary,
	string(ManeuverTypeNotification):   ManeuverTypeNotification,
	string(ManeuverTypeArrive):         ManeuverTypeArrive,
}

var maneuverDirections = map[string]ManeuverDirection{
	string(ManeuverDirectionSharpRight):  ManeuverDirectionSharpRight,
	string(ManeuverDirectionRight):       ManeuverDirectionRight,
	string(ManeuverDirectionSlightRight): ManeuverDirectionSlightRight,
	string(ManeuverDirectionStraight):    ManeuverDirectionStraight,
	string(ManeuverDirectionSlightLeft):  ManeuverDirectionSlightLeft,
	string(ManeuverDirectionLeft):        ManeuverDirectionLeft,
	string(ManeuverDirectionSharpLeft):   ManeuverDirectionSharpLeft,
	string(ManeuverDirectionUTurn):       ManeuverDirectionUTurn,
}

// ParseComponentType parses a component type string strictly.
// Used on the archive decode path, where unknown values are a hard error.
func ParseComponentType(s string) (VisualInstructionComponentType, error) {
	if t, ok := componentTypes[s]; ok {
		return t, nil
	}
	return "", fmt.Errorf("unknown component type %q", s)
}

// ComponentTypeOrText parses a component type string leniently, falling back
// to the text variant for unknown or empty input. Used on the JSON path,
// where upstream payloads may carry types this version does not know.
func ComponentTypeOrText(s string) VisualInstructionComponentType {
	if t, ok := componentTypes[s]; ok {
		return t
	}
	return ComponentTypeText
}

// ParseManeuverType parses a maneuver type string strictly.
func ParseManeuverType(s string) (ManeuverType, error) {
	if t, ok := maneuverTypes[s]; ok {
		return t, nil
	}
	return "", fmt.Errorf("unknown maneuver type %q", s)
}

// ParseManeuverDirection parses a maneuver direction string strictly.
func ParseManeuverDirection(s string) (ManeuverDirection, error) {
	if d, ok := maneuverDirections[s]; ok {
		return d, nil
	}
	return "", fmt.Errorf("unknown maneuver direction %q", s)
}
