package sense

import (
	"strings"

	"github.com/johncui/senses/pkg/model"
)

// DefaultIntensity is reported when a description carries no intensity cue.
const DefaultIntensity = 0.5

// QualityFunc derives the quality label from the lower-cased text and the
// per-table matches, in Profile.Tables order.
type QualityFunc func(text string, matches []Match) string

// IntensityFunc derives the raw intensity. Classifier clamps it to [0,1].
type IntensityFunc func(text string, matches []Match) float64

// Profile configures one sense. The five built-in profiles share Classifier;
// only their tables and the two rule functions differ.
type Profile struct {
	Sense     model.Sense
	Location  string
	Tables    []Table
	Quality   QualityFunc
	Intensity IntensityFunc
}

func (p Profile) classify(text string) (string, float64) {
	matches := make([]Match, len(p.Tables))
	for i, t := range p.Tables {
		matches[i] = t.Lookup(text)
	}
	quality := ""
	if p.Quality != nil {
		quality = p.Quality(text, matches)
	}
	intensity := DefaultIntensity
	if p.Intensity != nil {
		intensity = p.Intensity(text, matches)
	}
	return quality, clamp01(intensity)
}

// categoryOf labels the reading with table i's category.
func categoryOf(i int) QualityFunc {
	return func(_ string, m []Match) string {
		return m[i].Category
	}
}

// suffixed labels the reading "<category of table i><suffix>".
func suffixed(i int, suffix string) QualityFunc {
	return func(_ string, m []Match) string {
		return m[i].Category + suffix
	}
}

// joined labels the reading with every table's category joined by sep.
func joined(sep string) QualityFunc {
	return func(_ string, m []Match) string {
		parts := make([]string, len(m))
		for i := range m {
			parts[i] = m[i].Category
		}
		return strings.Join(parts, sep)
	}
}

// byLevel maps table i's matched category through levels; def otherwise.
func byLevel(i int, levels map[string]float64, def float64) IntensityFunc {
	return func(_ string, m []Match) float64 {
		if !m[i].Matched {
			return def
		}
		if v, ok := levels[m[i].Category]; ok {
			return v
		}
		return def
	}
}

// byModifier picks the first modifier keyword present, independent of tables.
func byModifier(mods []Modifier, def float64) IntensityFunc {
	return func(text string, _ []Match) float64 {
		return applyModifiers(text, mods, def)
	}
}

// whenMatched applies modifiers only if table i matched; base is the
// intensity of a match with no modifier, def the intensity of no match.
func whenMatched(i int, mods []Modifier, base, def float64) IntensityFunc {
	return func(text string, m []Match) float64 {
		if !m[i].Matched {
			return def
		}
		return applyModifiers(text, mods, base)
	}
}
