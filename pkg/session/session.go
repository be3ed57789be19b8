package session

import (
	"log/slog"
	"math"
	"os"
	"slices"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/johncui/senses/pkg/engine/integrate"
	"github.com/johncui/senses/pkg/model"
	"github.com/johncui/senses/pkg/sense"
)

const (
	DefaultName  = "SensoryAI"
	DefaultFocus = "general"
)

// Options configures a Session.
type Options struct {
	// StartAsleep creates the session with the awake flag cleared.
	StartAsleep bool
	// QualityWindow is passed to the integrator; zero votes over all history.
	QualityWindow int
	// Profiles overrides the built-in sense profiles.
	Profiles []sense.Profile
	Now      func() time.Time
	Logger   *slog.Logger
}

// Session holds awake state, the consciousness and attention snapshots, the
// classifier histories and the experience log. It is not safe for concurrent
// use; callers sharing a Session must serialise access.
type Session struct {
	name          string
	awake         bool
	consciousness float64
	focus         string

	bank       *sense.Bank
	integrator *integrate.Integrator
	log        []model.LogEntry

	now    func() time.Time
	logger *slog.Logger
}

// New creates a session. An empty name falls back to DefaultName.
func New(name string, opt Options) *Session {
	if name == "" {
		name = DefaultName
	}
	if opt.Now == nil {
		opt.Now = time.Now
	}
	if opt.Logger == nil {
		opt.Logger = slog.New(slog.NewTextHandler(os.Stdout, nil))
	}
	profiles := opt.Profiles
	if len(profiles) == 0 {
		profiles = sense.Profiles()
	}

	return &Session{
		name:          name,
		awake:         !opt.StartAsleep,
		consciousness: 1.0,
		focus:         DefaultFocus,
		bank:          sense.NewBankFrom(profiles, opt.Now),
		integrator:    integrate.New(integrate.Options{QualityWindow: opt.QualityWindow, Now: opt.Now}),
		now:           opt.Now,
		logger:        opt.Logger.With("session", name),
	}
}

func (s *Session) Name() string { return s.name }

func (s *Session) Awake() bool { return s.awake }

func (s *Session) WakeUp() {
	s.awake = true
	s.logger.Info("session awake")
}

func (s *Session) Sleep() {
	s.awake = false
	s.logger.Info("session sleeping")
}

// Experience classifies every described sense, integrates once and logs the
// submission. While asleep it returns the empty result and ok == false, and
// touches no history. Unknown sense names are skipped with a warning; known
// senses with a blank description count as not supplied.
func (s *Session) Experience(env model.Environment) (model.Experience, bool) {
	if !s.awake {
		s.logger.Warn("session is sleeping and cannot experience anything")
		return model.Experience{}, false
	}

	result := model.Experience{Senses: make(map[model.Sense]model.Reading, len(env))}
	for _, name := range dispatchOrder(env) {
		desc := env[name]
		if _, err := model.ParseSense(name); err == nil && strings.TrimSpace(desc) == "" {
			continue
		}
		r, err := s.bank.Classify(name, desc)
		if err != nil {
			s.logger.Warn("skipping sense", "sense", name, "err", err)
			result.Skipped = append(result.Skipped, name)
			continue
		}
		result.Senses[r.Sense] = r
	}

	rec := s.integrator.Integrate(s.bank, integrate.State{
		ConsciousnessLevel: s.consciousness,
		AttentionFocus:     s.focus,
	})
	result.Integrated = &rec

	s.log = append(s.log, model.LogEntry{
		ID:          uuid.NewString(),
		Timestamp:   s.now(),
		Environment: env.Clone(),
		Experience:  result.Clone(),
	})

	s.logger.Debug("experience integrated",
		"dominant", rec.DominantSense,
		"intensity", rec.OverallIntensity,
		"quality", rec.Quality,
		"skipped", len(result.Skipped),
	)
	return result, true
}

// dispatchOrder lists known senses in integration order, then any other keys
// sorted, so warnings and log output are deterministic.
func dispatchOrder(env model.Environment) []string {
	known := make([]string, 0, len(env))
	rank := make(map[string]int, len(env))
	var unknown []string
	for name := range env {
		s, err := model.ParseSense(name)
		if err != nil {
			unknown = append(unknown, name)
			continue
		}
		known = append(known, name)
		rank[name] = slices.Index(model.Senses, s)
	}
	sort.SliceStable(known, func(i, j int) bool {
		if rank[known[i]] != rank[known[j]] {
			return rank[known[i]] < rank[known[j]]
		}
		return known[i] < known[j]
	})
	sort.Strings(unknown)
	return append(known, unknown...)
}

// SetConsciousnessLevel stores x clamped to [0,1]. NaN is stored as 0.
func (s *Session) SetConsciousnessLevel(x float64) {
	switch {
	case math.IsNaN(x) || x < 0:
		x = 0
	case x > 1:
		x = 1
	}
	s.consciousness = x
	s.logger.Info("consciousness level set", "level", x)
}

func (s *Session) ConsciousnessLevel() float64 { return s.consciousness }

// SetAttentionFocus stores label as given.
func (s *Session) SetAttentionFocus(label string) {
	s.focus = label
	s.logger.Info("attention focus set", "focus", label)
}

func (s *Session) AttentionFocus() string { return s.focus }

// History returns a deep copy of the experience log, oldest first.
func (s *Session) History() []model.LogEntry {
	out := make([]model.LogEntry, len(s.log))
	for i, e := range s.log {
		out[i] = e.Clone()
	}
	return out
}

// Integrations returns a copy of every integrated record.
func (s *Session) Integrations() []model.IntegratedRecord {
	return s.integrator.Records()
}

// Recent returns the last ten readings for kind.
func (s *Session) Recent(kind model.Sense) []model.Reading {
	c := s.bank.Classifier(kind)
	if c == nil {
		return nil
	}
	return c.Recent()
}

// Stats snapshots history lengths and the current state labels.
func (s *Session) Stats() model.Stats {
	return model.Stats{
		Visual:             s.bank.Len(model.Vision),
		Auditory:           s.bank.Len(model.Hearing),
		Tactile:            s.bank.Len(model.Touch),
		Olfactory:          s.bank.Len(model.Smell),
		Gustatory:          s.bank.Len(model.Taste),
		Integrated:         s.integrator.Len(),
		ConsciousnessLevel: s.consciousness,
		AttentionFocus:     s.focus,
	}
}
