package sense

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/johncui/senses/pkg/memory"
	"github.com/johncui/senses/pkg/model"
)

// Clock supplies reading timestamps.
type Clock func() time.Time

// Classifier maps free text to a Reading using one Profile and keeps every
// reading it produced.
type Classifier struct {
	profile Profile
	history *memory.History
	now     Clock
}

// New builds a classifier for p. A nil clock falls back to time.Now.
func New(p Profile, now Clock) *Classifier {
	if now == nil {
		now = time.Now
	}
	return &Classifier{profile: p, history: memory.NewHistory(), now: now}
}

func (c *Classifier) Sense() model.Sense { return c.profile.Sense }

// Classify reads description, records the reading and returns it.
func (c *Classifier) Classify(description string) model.Reading {
	quality, intensity := c.profile.classify(strings.ToLower(description))
	r := model.Reading{
		ID:        uuid.NewString(),
		Sense:     c.profile.Sense,
		Intensity: intensity,
		Quality:   quality,
		Location:  c.profile.Location,
		Timestamp: c.now(),
	}
	c.history.Add(r)
	return r
}

// Recent returns the last memory.DefaultRecent readings.
func (c *Classifier) Recent() []model.Reading {
	return c.history.Recent(memory.DefaultRecent)
}

func (c *Classifier) Latest() (model.Reading, bool) { return c.history.Latest() }

func (c *Classifier) Len() int { return c.history.Len() }

func (c *Classifier) All() []model.Reading { return c.history.All() }

// Bank owns one classifier per sense, in model.Senses order.
type Bank struct {
	order   []model.Sense
	bySense map[model.Sense]*Classifier
}

// NewBank wires the built-in profiles.
func NewBank(now Clock) *Bank {
	return NewBankFrom(Profiles(), now)
}

// NewBankFrom wires custom profiles; later profiles replace earlier ones for
// the same sense.
func NewBankFrom(profiles []Profile, now Clock) *Bank {
	b := &Bank{bySense: make(map[model.Sense]*Classifier, len(profiles))}
	for _, p := range profiles {
		if _, dup := b.bySense[p.Sense]; !dup {
			b.order = append(b.order, p.Sense)
		}
		b.bySense[p.Sense] = New(p, now)
	}
	return b
}

// Senses returns the senses the bank serves in integration order.
func (b *Bank) Senses() []model.Sense {
	out := make([]model.Sense, len(b.order))
	copy(out, b.order)
	return out
}

// Classifier returns the classifier for s, or nil.
func (b *Bank) Classifier(s model.Sense) *Classifier {
	return b.bySense[s]
}

// Classify dispatches by sense name. Unknown names yield model.ErrUnknownSense
// and leave every history untouched.
func (b *Bank) Classify(name, description string) (model.Reading, error) {
	s, err := model.ParseSense(name)
	if err != nil {
		return model.Reading{}, fmt.Errorf("%w: %s", err, name)
	}
	c, ok := b.bySense[s]
	if !ok {
		return model.Reading{}, fmt.Errorf("%w: %s", model.ErrUnknownSense, name)
	}
	return c.Classify(description), nil
}

// Latest implements integrate.Source.
func (b *Bank) Latest(s model.Sense) (model.Reading, bool) {
	c, ok := b.bySense[s]
	if !ok {
		return model.Reading{}, false
	}
	return c.Latest()
}

// Readings implements integrate.Source. window <= 0 returns all history.
func (b *Bank) Readings(s model.Sense, window int) []model.Reading {
	c, ok := b.bySense[s]
	if !ok {
		return nil
	}
	if window <= 0 {
		return c.All()
	}
	return c.history.Recent(window)
}

// Len returns the history length for s.
func (b *Bank) Len(s model.Sense) int {
	c, ok := b.bySense[s]
	if !ok {
		return 0
	}
	return c.Len()
}
