package models

// AbbreviationRules holds the word-level abbreviation dictionary used when
// instruction text must be shortened to fit a display. Loaded from a YAML
// rules file at startup.
type AbbreviationRules struct {
	// Words maps full words to their abbreviated form, e.g. "Street" -> "St".
	// Matching is case-insensitive; the replacement is used as written.
	Words map[string]string `json:"words" yaml:"words"`

	// Directions maps compass words to single letters, e.g. "North" -> "N".
	// Applied only when word abbreviation alone is not enough.
	Directions map[string]string `json:"directions" yaml:"directions"`
}

// NewAbbreviationRules creates an empty rule set.
func NewAbbreviationRules() *AbbreviationRules {
	return &AbbreviationRules{
		Words:      make(map[string]string),
		Directions: make(map[string]string),
	}
}
