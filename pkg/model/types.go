package model

import (
	"errors"
	"strings"
	"time"
)

// Sense names one of the five classifier channels.
type Sense string

const (
	Vision  Sense = "vision"
	Hearing Sense = "hearing"
	Touch   Sense = "touch"
	Smell   Sense = "smell"
	Taste   Sense = "taste"
)

// NoSense is reported as the dominant sense when nothing has been read yet.
const NoSense Sense = "none"

// Senses is the fixed enumeration order. Integration iterates in this order,
// so it also decides dominant-sense ties.
var Senses = []Sense{Vision, Hearing, Touch, Smell, Taste}

// ErrUnknownSense is returned when a sense name is outside the fixed five.
var ErrUnknownSense = errors.New("unknown sense type")

// ParseSense resolves a caller-supplied name, ignoring case and surrounding space.
func ParseSense(name string) (Sense, error) {
	s := Sense(strings.ToLower(strings.TrimSpace(name)))
	for _, known := range Senses {
		if s == known {
			return s, nil
		}
	}
	return "", ErrUnknownSense
}

// Reading is one classified description. Immutable once created.
type Reading struct {
	ID        string    `json:"id"`
	Sense     Sense     `json:"sense_type"`
	Intensity float64   `json:"intensity"`
	Quality   string    `json:"quality"`
	Location  string    `json:"location,omitempty"`
	Timestamp time.Time `json:"timestamp"`
}

// IntegratedRecord is the cross-sense summary computed after one submission.
type IntegratedRecord struct {
	Timestamp          time.Time         `json:"timestamp"`
	ConsciousnessLevel float64           `json:"consciousness_level"`
	AttentionFocus     string            `json:"attention_focus"`
	OverallIntensity   float64           `json:"overall_intensity"`
	DominantSense      Sense             `json:"dominant_sense"`
	Quality            string            `json:"experience_quality"`
	Latest             map[Sense]Reading `json:"sensory_inputs"`
}

// Clone returns a copy that shares no maps with r.
func (r IntegratedRecord) Clone() IntegratedRecord {
	r.Latest = cloneReadings(r.Latest)
	return r
}

func cloneReadings(m map[Sense]Reading) map[Sense]Reading {
	if m == nil {
		return nil
	}
	out := make(map[Sense]Reading, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}

// Environment maps sense names to free-text descriptions as supplied by the caller.
type Environment map[string]string

// Clone returns an independent copy.
func (e Environment) Clone() Environment {
	if e == nil {
		return nil
	}
	out := make(Environment, len(e))
	for k, v := range e {
		out[k] = v
	}
	return out
}

// Experience is the result of one submission. The zero value is the empty
// result returned while a session sleeps.
type Experience struct {
	Senses     map[Sense]Reading `json:"individual_senses"`
	Skipped    []string          `json:"skipped,omitempty"`
	Integrated *IntegratedRecord `json:"integrated_experience,omitempty"`
}

// Empty reports whether e carries no integration, i.e. it was rejected.
func (e Experience) Empty() bool {
	return e.Integrated == nil
}

// Clone returns a copy that shares no maps, slices or records with e.
func (e Experience) Clone() Experience {
	out := Experience{Senses: cloneReadings(e.Senses)}
	if e.Skipped != nil {
		out.Skipped = append([]string(nil), e.Skipped...)
	}
	if e.Integrated != nil {
		rec := e.Integrated.Clone()
		out.Integrated = &rec
	}
	return out
}

// LogEntry is one append-only experience log row.
type LogEntry struct {
	ID          string      `json:"id"`
	Timestamp   time.Time   `json:"timestamp"`
	Environment Environment `json:"environment"`
	Experience  Experience  `json:"experience"`
}

// Clone returns a deep copy of l.
func (l LogEntry) Clone() LogEntry {
	l.Environment = l.Environment.Clone()
	l.Experience = l.Experience.Clone()
	return l
}

// Stats is a point-in-time snapshot of a session's counters.
type Stats struct {
	Visual             int     `json:"total_visual_experiences"`
	Auditory           int     `json:"total_auditory_experiences"`
	Tactile            int     `json:"total_tactile_experiences"`
	Olfactory          int     `json:"total_olfactory_experiences"`
	Gustatory          int     `json:"total_gustatory_experiences"`
	Integrated         int     `json:"total_integrated_experiences"`
	ConsciousnessLevel float64 `json:"consciousness_level"`
	AttentionFocus     string  `json:"attention_focus"`
}

// Count returns the history length recorded for s.
func (st Stats) Count(s Sense) int {
	switch s {
	case Vision:
		return st.Visual
	case Hearing:
		return st.Auditory
	case Touch:
		return st.Tactile
	case Smell:
		return st.Olfactory
	case Taste:
		return st.Gustatory
	}
	return 0
}

// ArchivedExperience mirrors experience_logs rows.
type ArchivedExperience struct {
	ID               string      `json:"id"`
	SessionID        string      `json:"session_id"`
	Timestamp        time.Time   `json:"timestamp"`
	Environment      Environment `json:"environment"`
	DominantSense    Sense       `json:"dominant_sense"`
	OverallIntensity float64     `json:"overall_intensity"`
	Quality          string      `json:"experience_quality"`
	Readings         []Reading   `json:"readings,omitempty"`
}

