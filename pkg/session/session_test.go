package session_test

import (
	"io"
	"log/slog"
	"math"
	"reflect"
	"testing"
	"time"

	"github.com/johncui/senses/pkg/model"
	"github.com/johncui/senses/pkg/session"
)

var at = time.Date(2024, 5, 4, 8, 0, 0, 0, time.UTC)

func newSession(t *testing.T, opt session.Options) *session.Session {
	t.Helper()
	opt.Now = func() time.Time { return at }
	opt.Logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	return session.New("TestAI", opt)
}

func fullEnvironment() model.Environment {
	return model.Environment{
		"vision":  "Red car and blue sky",
		"hearing": "Loud music and conversation",
		"touch":   "Smooth glass and hot metal",
		"smell":   "Fresh flowers and coffee",
		"taste":   "Sweet chocolate and salty chips",
	}
}

func TestNew_Defaults(t *testing.T) {
	s := newSession(t, session.Options{})

	if s.Name() != "TestAI" {
		t.Errorf("Name() = %q, want TestAI", s.Name())
	}
	if !s.Awake() {
		t.Error("Awake() = false, want true by default")
	}
	if s.ConsciousnessLevel() != 1 {
		t.Errorf("ConsciousnessLevel() = %v, want 1", s.ConsciousnessLevel())
	}
	if s.AttentionFocus() != session.DefaultFocus {
		t.Errorf("AttentionFocus() = %q, want %q", s.AttentionFocus(), session.DefaultFocus)
	}
	if len(s.History()) != 0 {
		t.Errorf("History() len = %d, want 0", len(s.History()))
	}

	if got := session.New("", session.Options{Logger: slog.New(slog.NewTextHandler(io.Discard, nil))}).Name(); got != session.DefaultName {
		t.Errorf("Name() = %q, want %q", got, session.DefaultName)
	}
}

func TestWakeSleep(t *testing.T) {
	s := newSession(t, session.Options{StartAsleep: true})
	if s.Awake() {
		t.Fatal("Awake() = true with StartAsleep")
	}

	s.WakeUp()
	if !s.Awake() {
		t.Error("Awake() = false after WakeUp")
	}
	s.Sleep()
	if s.Awake() {
		t.Error("Awake() = true after Sleep")
	}
}

func TestExperience_AllSenses(t *testing.T) {
	s := newSession(t, session.Options{})

	res, ok := s.Experience(fullEnvironment())
	if !ok {
		t.Fatal("Experience() ok = false while awake")
	}
	for _, k := range model.Senses {
		if _, ok := res.Senses[k]; !ok {
			t.Errorf("Senses missing %s", k)
		}
	}
	if res.Integrated == nil {
		t.Fatal("Integrated is nil")
	}
	// pleasant smell (0.7) beats taste (0.6); "loud" alone is not a sound keyword.
	if res.Integrated.DominantSense != model.Smell {
		t.Errorf("DominantSense = %q, want smell", res.Integrated.DominantSense)
	}
	if !res.Integrated.Timestamp.Equal(at) {
		t.Errorf("Timestamp = %v, want %v", res.Integrated.Timestamp, at)
	}

	st := s.Stats()
	for _, k := range model.Senses {
		if st.Count(k) != 1 {
			t.Errorf("Stats().Count(%s) = %d, want 1", k, st.Count(k))
		}
	}
	if st.Integrated != 1 {
		t.Errorf("Stats().Integrated = %d, want 1", st.Integrated)
	}
}

func TestExperience_Asleep(t *testing.T) {
	s := newSession(t, session.Options{})
	s.Sleep()

	res, ok := s.Experience(fullEnvironment())
	if ok {
		t.Error("Experience() ok = true while asleep")
	}
	if !res.Empty() || len(res.Senses) != 0 {
		t.Errorf("Experience() = %+v, want empty", res)
	}
	if len(s.History()) != 0 {
		t.Errorf("History() len = %d, want 0", len(s.History()))
	}
	st := s.Stats()
	for _, k := range model.Senses {
		if st.Count(k) != 0 {
			t.Errorf("Stats().Count(%s) = %d, want 0", k, st.Count(k))
		}
	}
	if st.Integrated != 0 {
		t.Errorf("Stats().Integrated = %d, want 0", st.Integrated)
	}
}

func TestExperience_VisionOnly(t *testing.T) {
	s := newSession(t, session.Options{})
	res, ok := s.Experience(model.Environment{
		"vision":  "a red circle next to a tree",
		"hearing": "",
		"touch":   "",
		"smell":   " ",
		"taste":   "",
	})
	if !ok {
		t.Fatal("Experience() ok = false")
	}
	vision := res.Senses[model.Vision]
	if res.Integrated.DominantSense != model.Vision {
		t.Errorf("DominantSense = %q, want vision", res.Integrated.DominantSense)
	}
	if vision.Intensity != 0.3 || res.Integrated.OverallIntensity != vision.Intensity {
		t.Errorf("OverallIntensity = %v, want %v", res.Integrated.OverallIntensity, vision.Intensity)
	}
	if len(res.Senses) != 1 || len(res.Skipped) != 0 {
		t.Errorf("Senses = %v, Skipped = %v; want vision only", res.Senses, res.Skipped)
	}
	if got := s.Stats().Auditory; got != 0 {
		t.Errorf("Stats().Auditory = %d, want 0 for blank description", got)
	}
}

func TestExperience_UnknownSenseSkipped(t *testing.T) {
	s := newSession(t, session.Options{})

	res, ok := s.Experience(model.Environment{
		"telepathy": "distant thoughts",
		"Smell":     "rotten garbage",
	})
	if !ok {
		t.Fatal("Experience() ok = false")
	}
	if !reflect.DeepEqual(res.Skipped, []string{"telepathy"}) {
		t.Errorf("Skipped = %v, want [telepathy]", res.Skipped)
	}
	if r, ok := res.Senses[model.Smell]; !ok || r.Quality != "unpleasant" {
		t.Errorf("Senses[smell] = %+v, %v; want unpleasant", r, ok)
	}
	// The vote matches "pleasant" as a substring, so an unpleasant smell counts
	// towards pleasant.
	if res.Integrated.Quality != "pleasant" {
		t.Errorf("Quality = %q, want pleasant", res.Integrated.Quality)
	}

	hist := s.History()
	if len(hist) != 1 {
		t.Fatalf("History() len = %d, want 1", len(hist))
	}
	if hist[0].Environment["telepathy"] != "distant thoughts" {
		t.Errorf("logged environment = %v, want original mapping", hist[0].Environment)
	}
}

func TestExperience_OnlyUnknownStillLogs(t *testing.T) {
	s := newSession(t, session.Options{})

	res, ok := s.Experience(model.Environment{"echolocation": "ping"})
	if !ok {
		t.Fatal("Experience() ok = false")
	}
	if res.Integrated.DominantSense != model.NoSense {
		t.Errorf("DominantSense = %q, want none", res.Integrated.DominantSense)
	}
	if res.Integrated.OverallIntensity != 0 {
		t.Errorf("OverallIntensity = %v, want 0", res.Integrated.OverallIntensity)
	}
	if len(s.History()) != 1 {
		t.Errorf("History() len = %d, want 1", len(s.History()))
	}
}

func TestExperience_QualityUsesHistory(t *testing.T) {
	s := newSession(t, session.Options{})
	res, _ := s.Experience(model.Environment{"smell": "rotten garbage"})
	if res.Integrated.Quality != "pleasant" {
		t.Errorf("rotten garbage Quality = %q, want pleasant", res.Integrated.Quality)
	}

	s = newSession(t, session.Options{})
	for i := 0; i < 3; i++ {
		s.Experience(model.Environment{"smell": "old paper"})
	}
	res, _ = s.Experience(model.Environment{"smell": "coffee"})
	if res.Integrated.Quality != "neutral" {
		t.Errorf("Quality = %q, want neutral carried over from history", res.Integrated.Quality)
	}

	windowed := newSession(t, session.Options{QualityWindow: 1})
	for i := 0; i < 3; i++ {
		windowed.Experience(model.Environment{"smell": "old paper"})
	}
	res, _ = windowed.Experience(model.Environment{"smell": "coffee"})
	if res.Integrated.Quality != "pleasant" {
		t.Errorf("windowed Quality = %q, want pleasant", res.Integrated.Quality)
	}
}

func TestExperience_LogImmuneToCallerMutation(t *testing.T) {
	s := newSession(t, session.Options{})
	res, _ := s.Experience(model.Environment{"smell": "coffee", "taste": "honey"})

	res.Senses[model.Smell] = model.Reading{Quality: "tampered"}
	res.Integrated.DominantSense = "tampered"
	res.Integrated.Latest[model.Taste] = model.Reading{Quality: "tampered"}

	h := s.History()
	h[0].Experience.Integrated.Quality = "tampered"
	h[0].Experience.Senses[model.Taste] = model.Reading{Quality: "tampered"}
	h[0].Environment["smell"] = "tampered"

	got := s.History()[0]
	if q := got.Experience.Senses[model.Smell].Quality; q != "pleasant" {
		t.Errorf("logged smell quality = %q, want pleasant", q)
	}
	if q := got.Experience.Senses[model.Taste].Quality; q != "sweet" {
		t.Errorf("logged taste quality = %q, want sweet", q)
	}
	if d := got.Experience.Integrated.DominantSense; d != model.Smell {
		t.Errorf("logged dominant = %q, want smell", d)
	}
	if q := got.Experience.Integrated.Quality; q != "neutral" {
		t.Errorf("logged experience quality = %q, want neutral", q)
	}
	if q := got.Experience.Integrated.Latest[model.Taste].Quality; q != "sweet" {
		t.Errorf("logged latest taste = %q, want sweet", q)
	}
	if e := got.Environment["smell"]; e != "coffee" {
		t.Errorf("logged environment smell = %q, want coffee", e)
	}
	if q := s.Integrations()[0].Latest[model.Taste].Quality; q != "sweet" {
		t.Errorf("integration record latest taste = %q, want sweet", q)
	}
}

func TestSetConsciousnessLevel(t *testing.T) {
	s := newSession(t, session.Options{})

	tests := []struct {
		in, want float64
	}{
		{0.5, 0.5},
		{1.5, 1},
		{-0.5, 0},
		{math.NaN(), 0},
	}
	for _, tt := range tests {
		s.SetConsciousnessLevel(tt.in)
		if got := s.ConsciousnessLevel(); got != tt.want {
			t.Errorf("SetConsciousnessLevel(%v) stored %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestSnapshotsRecorded(t *testing.T) {
	s := newSession(t, session.Options{})
	s.SetConsciousnessLevel(0.3)
	s.SetAttentionFocus("visual")

	res, _ := s.Experience(model.Environment{"taste": "honey"})
	if res.Integrated.ConsciousnessLevel != 0.3 || res.Integrated.AttentionFocus != "visual" {
		t.Errorf("snapshot = (%v, %q), want (0.3, visual)",
			res.Integrated.ConsciousnessLevel, res.Integrated.AttentionFocus)
	}
	// Focus and consciousness do not reweight classification.
	if got := res.Senses[model.Taste].Intensity; got != 0.6 {
		t.Errorf("taste intensity = %v, want 0.6", got)
	}

	s.SetAttentionFocus("auditory")
	st := s.Stats()
	if st.AttentionFocus != "auditory" || st.ConsciousnessLevel != 0.3 {
		t.Errorf("Stats() = %+v", st)
	}
	if got := s.Integrations()[0].AttentionFocus; got != "visual" {
		t.Errorf("earlier record focus = %q, want visual", got)
	}
}

func TestHistory_StableAcrossReads(t *testing.T) {
	s := newSession(t, session.Options{})
	s.Experience(fullEnvironment())
	s.Experience(model.Environment{"vision": "Test scene 2"})

	first := s.History()
	second := s.History()
	if len(first) != 2 || len(second) != 2 {
		t.Fatalf("History() lengths = %d, %d; want 2, 2", len(first), len(second))
	}
	if !reflect.DeepEqual(first, second) {
		t.Error("consecutive History() calls differ")
	}

	first[0].ID = "mutated"
	if s.History()[0].ID == "mutated" {
		t.Error("History() exposes internal log")
	}
}

func TestRecent(t *testing.T) {
	s := newSession(t, session.Options{})
	for i := 0; i < 12; i++ {
		s.Experience(model.Environment{"touch": "bark"})
	}
	if got := len(s.Recent(model.Touch)); got != 10 {
		t.Errorf("Recent(touch) len = %d, want 10", got)
	}
	if got := s.Stats().Tactile; got != 12 {
		t.Errorf("Stats().Tactile = %d, want 12", got)
	}
}
