package memory

import (
	"slices"

	"github.com/johncui/senses/pkg/model"
)

// DefaultRecent is how many readings Recent returns when asked for n <= 0.
const DefaultRecent = 10

// History is an append-only, ordered log of readings for one sense.
// It is owned by a single classifier and never pruned.
type History struct {
	items []model.Reading
}

func NewHistory() *History {
	return &History{}
}

// Add appends a reading.
func (h *History) Add(r model.Reading) {
	h.items = append(h.items, r)
}

// Len returns the number of readings ever recorded.
func (h *History) Len() int {
	return len(h.items)
}

// Latest returns the most recent reading, if any.
func (h *History) Latest() (model.Reading, bool) {
	if len(h.items) == 0 {
		return model.Reading{}, false
	}
	return h.items[len(h.items)-1], true
}

// Recent returns a copy of the last n readings, oldest first.
func (h *History) Recent(n int) []model.Reading {
	if n <= 0 {
		n = DefaultRecent
	}
	if n > len(h.items) {
		n = len(h.items)
	}
	return slices.Clone(h.items[len(h.items)-n:])
}

// All returns a copy of every reading, oldest first.
func (h *History) All() []model.Reading {
	return slices.Clone(h.items)
}
