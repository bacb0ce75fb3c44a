package layout

import (
	"sort"
	"strings"

	"github.com/nav-banner/backend/internal/models"
)

// Engine shortens instruction text using component abbreviation priorities
// first and the rule dictionary second.
type Engine struct {
	rules *models.AbbreviationRules
}

// NewEngine creates an engine over the given rules.
func NewEngine(rules *models.AbbreviationRules) *Engine {
	if rules == nil {
		rules = DefaultRules()
	}
	return &Engine{rules: rules}
}

// Fit renders the instruction within maxLen characters if possible.
//
// Components carrying their own abbreviation are shortened first, in
// ascending AbbreviationPriority order (lower abbreviates first; the
// unranked sentinel never does). If the text still does not fit, the rule
// dictionary is applied to the remaining text components. Returns the first
// rendering that fits, or the shortest one achieved. The instruction itself
// is never mutated.
func (e *Engine) Fit(vi *models.VisualInstruction, maxLen int) string {
	abbreviated := make([]bool, len(vi.Components))

	render := func() string {
		parts := make([]string, 0, len(vi.Components))
		for i, comp := range vi.Components {
			if t := comp.DisplayText(abbreviated[i]); t != "" {
				parts = append(parts, t)
			}
		}
		if len(parts) == 0 {
			return vi.Text
		}
		return strings.Join(parts, " ")
	}

	text := render()
	if len(text) <= maxLen {
		return text
	}

	// Pass 1: component-supplied abbreviations, lowest priority first.
	for _, i := range e.abbreviationOrder(vi) {
		abbreviated[i] = true
		if text = render(); len(text) <= maxLen {
			return text
		}
	}

	// Pass 2: dictionary abbreviation of what is left.
	words := strings.Fields(text)
	for i, w := range words {
		words[i] = e.abbreviateWord(w, false)
	}
	if joined := strings.Join(words, " "); len(joined) <= maxLen {
		return joined
	}
	for i, w := range words {
		words[i] = e.abbreviateWord(w, true)
	}
	return strings.Join(words, " ")
}

// abbreviationOrder returns the indexes of components eligible for
// abbreviation, lowest priority first. Order within a priority follows
// component order.
func (e *Engine) abbreviationOrder(vi *models.VisualInstruction) []int {
	order := make([]int, 0, len(vi.Components))
	for i, comp := range vi.Components {
		if comp.Abbreviation != nil && comp.AbbreviationPriority != models.NoAbbreviationPriority {
			order = append(order, i)
		}
	}
	sort.SliceStable(order, func(a, b int) bool {
		return vi.Components[order[a]].AbbreviationPriority < vi.Components[order[b]].AbbreviationPriority
	})
	return order
}

func (e *Engine) abbreviateWord(word string, includeDirections bool) string {
	for full, short := range e.rules.Words {
		if strings.EqualFold(word, full) {
			return short
		}
	}
	if includeDirections {
		for full, short := range e.rules.Directions {
			if strings.EqualFold(word, full) {
				return short
			}
		}
	}
	return word
}
