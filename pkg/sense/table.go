package sense

import "strings"

// Rule ties a category label to the keywords that select it.
type Rule struct {
	Category string
	Keywords []string
}

// Table is an ordered list of rules. The first rule with any keyword present
// in the text wins; Fallback is used when nothing matches.
type Table struct {
	Rules    []Rule
	Fallback string
}

// Match is the outcome of looking a text up in one Table.
type Match struct {
	Category string
	Matched  bool
}

// Lookup expects text already lower-cased.
func (t Table) Lookup(text string) Match {
	for _, r := range t.Rules {
		if containsAny(text, r.Keywords) {
			return Match{Category: r.Category, Matched: true}
		}
	}
	return Match{Category: t.Fallback}
}

// Categories returns the rule labels in evaluation order.
func (t Table) Categories() []string {
	out := make([]string, len(t.Rules))
	for i, r := range t.Rules {
		out[i] = r.Category
	}
	return out
}

// Vocabulary is a flat word list scored by how many entries appear.
type Vocabulary []string

// Count expects text already lower-cased.
func (v Vocabulary) Count(text string) int {
	n := 0
	for _, w := range v {
		if strings.Contains(text, w) {
			n++
		}
	}
	return n
}

// Modifier sets the intensity when its keyword is present.
type Modifier struct {
	Keyword   string
	Intensity float64
}

// applyModifiers returns the intensity of the first modifier present, or def.
func applyModifiers(text string, mods []Modifier, def float64) float64 {
	for _, m := range mods {
		if strings.Contains(text, m.Keyword) {
			return m.Intensity
		}
	}
	return def
}

func containsAny(text string, keywords []string) bool {
	for _, k := range keywords {
		if strings.Contains(text, k) {
			return true
		}
	}
	return false
}

func clamp01(x float64) float64 {
	if x < 0 {
		return 0
	}
	if x > 1 {
		return 1
	}
	return x
}
