// Package layout shortens visual instructions to fit width-constrained
// displays, driven by a YAML abbreviation dictionary.
package layout

import (
	"io"
	"os"

	"github.com/nav-banner/backend/internal/models"
	"gopkg.in/yaml.v3"
)

// LoadRules parses a YAML abbreviation rules file.
func LoadRules(filePath string) (*models.AbbreviationRules, error) {
	file, err := os.Open(filePath)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	return LoadRulesFromReader(file)
}

// LoadRulesFromReader parses rules from an io.Reader.
func LoadRulesFromReader(r io.Reader) (*models.AbbreviationRules, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}

	var rules models.AbbreviationRules
	if err := yaml.Unmarshal(data, &rules); err != nil {
		return nil, err
	}

	return &rules, nil
}

// DefaultRules returns the built-in dictionary used when no rules file is
// configured.
func DefaultRules() *models.AbbreviationRules {
	return &models.AbbreviationRules{
		Words: map[string]string{
			"Street":    "St",
			"Avenue":    "Ave",
			"Boulevard": "Blvd",
			"Drive":     "Dr",
			"Road":      "Rd",
			"Lane":      "Ln",
			"Court":     "Ct",
			"Highway":   "Hwy",
			"Parkway":   "Pkwy",
			"Square":    "Sq",
		},
		Directions: map[string]string{
			"North": "N",
			"South": "S",
			"East":  "E",
			"West":  "W",
		},
	}
}
