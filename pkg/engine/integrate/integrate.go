package integrate

import (
	"strings"
	"time"

	"github.com/johncui/senses/pkg/model"
)

// Quality labels.
const (
	Pleasant   = "pleasant"
	Unpleasant = "unpleasant"
	Neutral    = "neutral"
)

// Source exposes per-sense reading histories to the integrator.
type Source interface {
	Latest(s model.Sense) (model.Reading, bool)
	// Readings returns up to window most recent readings; window <= 0 means all.
	Readings(s model.Sense, window int) []model.Reading
}

// State is the session snapshot copied into each record.
type State struct {
	ConsciousnessLevel float64
	AttentionFocus     string
}

// Options configures an Integrator.
type Options struct {
	// QualityWindow bounds how many readings per sense feed the quality vote.
	// Zero scans every reading ever recorded.
	QualityWindow int
	Now           func() time.Time
}

// Integrator folds the latest per-sense readings into IntegratedRecords and
// keeps every record it produced.
type Integrator struct {
	records []model.IntegratedRecord
	window  int
	now     func() time.Time
}

func New(opt Options) *Integrator {
	if opt.Now == nil {
		opt.Now = time.Now
	}
	return &Integrator{window: opt.QualityWindow, now: opt.Now}
}

// Integrate builds a record from src and appends it to the integration history.
func (i *Integrator) Integrate(src Source, st State) model.IntegratedRecord {
	latest := make(map[model.Sense]model.Reading, len(model.Senses))
	var total float64
	active := 0
	dominant := model.NoSense
	peak := 0.0

	for _, s := range model.Senses {
		r, ok := src.Latest(s)
		if !ok {
			continue
		}
		latest[s] = r
		total += r.Intensity
		active++
		if r.Intensity > peak {
			peak = r.Intensity
			dominant = s
		}
	}
	if active == 0 {
		active = 1
	}

	rec := model.IntegratedRecord{
		Timestamp:          i.now(),
		ConsciousnessLevel: st.ConsciousnessLevel,
		AttentionFocus:     st.AttentionFocus,
		OverallIntensity:   total / float64(active),
		DominantSense:      dominant,
		Quality:            Quality(src, i.window),
		Latest:             latest,
	}
	i.records = append(i.records, rec.Clone())
	return rec
}

// Quality votes over the quality labels of src's readings. A label containing
// "pleasant" counts as pleasant; only labels that do not are checked for
// "unpleasant", so "unpleasant" itself counts as pleasant. A strict majority
// of all readings decides; anything else, including no readings, is neutral.
func Quality(src Source, window int) string {
	var pleasant, unpleasant, total int
	for _, s := range model.Senses {
		for _, r := range src.Readings(s, window) {
			total++
			q := strings.ToLower(r.Quality)
			switch {
			case strings.Contains(q, Pleasant):
				pleasant++
			case strings.Contains(q, Unpleasant):
				unpleasant++
			}
		}
	}
	if total == 0 {
		return Neutral
	}
	switch {
	case float64(pleasant)/float64(total) > 0.5:
		return Pleasant
	case float64(unpleasant)/float64(total) > 0.5:
		return Unpleasant
	default:
		return Neutral
	}
}

// Len returns the number of records produced so far.
func (i *Integrator) Len() int { return len(i.records) }

// Records returns a copy of the integration history.
func (i *Integrator) Records() []model.IntegratedRecord {
	out := make([]model.IntegratedRecord, len(i.records))
	for n, rec := range i.records {
		out[n] = rec.Clone()
	}
	return out
}
