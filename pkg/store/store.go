package store

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/johncui/senses/pkg/model"
	"github.com/johncui/senses/pkg/session"
	"github.com/johncui/senses/pkg/store/sqlite"
)

// ErrSessionNotFound is returned for unknown session ids.
var ErrSessionNotFound = errors.New("session not found")

// Options configures Engine.
type Options struct {
	// DBPath is the SQLite archive file. Ignored unless Archive is set.
	DBPath  string
	Archive bool
	// QualityWindow is handed to every session; zero votes over all history.
	QualityWindow int
	StartAsleep   bool
	Now           func() time.Time
	Logger        *slog.Logger
}

// Info describes a registered session.
type Info struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Awake     bool      `json:"awake"`
	CreatedAt time.Time `json:"created_at"`
}

// Engine owns named sessions keyed by id and serialises access to each of
// them. When archiving is enabled every experience is also written to SQLite.
type Engine struct {
	mu       sync.RWMutex
	sessions map[string]*entry

	db     *sqlite.Database
	opt    Options
	logger *slog.Logger
}

type entry struct {
	mu        sync.Mutex
	s         *session.Session
	createdAt time.Time
}

// NewEngine initializes the registry and, if requested, the archive.
func NewEngine(ctx context.Context, opt Options) (*Engine, error) {
	if opt.Logger == nil {
		opt.Logger = slog.New(slog.NewTextHandler(os.Stdout, nil))
	}
	if opt.Now == nil {
		opt.Now = time.Now
	}

	e := &Engine{sessions: make(map[string]*entry), opt: opt, logger: opt.Logger}
	if opt.Archive {
		db, err := sqlite.New(ctx, sqlite.Config{Path: opt.DBPath, Logger: opt.Logger})
		if err != nil {
			return nil, err
		}
		e.db = db
	}
	return e, nil
}

// Archived reports whether experiences are persisted.
func (e *Engine) Archived() bool { return e.db != nil }

// Create registers a new session and returns its info.
func (e *Engine) Create(name string) Info {
	s := session.New(name, session.Options{
		StartAsleep:   e.opt.StartAsleep,
		QualityWindow: e.opt.QualityWindow,
		Now:           e.opt.Now,
		Logger:        e.logger,
	})
	id := uuid.NewString()
	ent := &entry{s: s, createdAt: e.opt.Now()}

	e.mu.Lock()
	e.sessions[id] = ent
	e.mu.Unlock()

	e.logger.Info("session created", "id", id, "name", s.Name())
	return Info{ID: id, Name: s.Name(), Awake: s.Awake(), CreatedAt: ent.createdAt}
}

// List returns every session ordered by creation time.
func (e *Engine) List() []Info {
	e.mu.RLock()
	out := make([]Info, 0, len(e.sessions))
	for id, ent := range e.sessions {
		ent.mu.Lock()
		out = append(out, Info{ID: id, Name: ent.s.Name(), Awake: ent.s.Awake(), CreatedAt: ent.createdAt})
		ent.mu.Unlock()
	}
	e.mu.RUnlock()

	sort.Slice(out, func(i, j int) bool {
		if !out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].CreatedAt.Before(out[j].CreatedAt)
		}
		return out[i].ID < out[j].ID
	})
	return out
}

// Delete drops a session and its archived experiences.
func (e *Engine) Delete(ctx context.Context, id string) error {
	e.mu.Lock()
	_, ok := e.sessions[id]
	delete(e.sessions, id)
	e.mu.Unlock()
	if !ok {
		return ErrSessionNotFound
	}
	if e.db != nil {
		return e.db.DeleteSession(ctx, id)
	}
	return nil
}

// with runs fn while holding the session's lock.
func (e *Engine) with(id string, fn func(s *session.Session)) error {
	e.mu.RLock()
	ent, ok := e.sessions[id]
	e.mu.RUnlock()
	if !ok {
		return ErrSessionNotFound
	}
	ent.mu.Lock()
	defer ent.mu.Unlock()
	fn(ent.s)
	return nil
}

// Experience submits env to the session. ok is false when it is asleep.
func (e *Engine) Experience(ctx context.Context, id string, env model.Environment) (model.Experience, bool, error) {
	var (
		res  model.Experience
		ok   bool
		last model.LogEntry
	)
	err := e.with(id, func(s *session.Session) {
		res, ok = s.Experience(env)
		if ok && e.db != nil {
			h := s.History()
			last = h[len(h)-1]
		}
	})
	if err != nil || !ok || e.db == nil {
		return res, ok, err
	}
	// The experience is already committed in memory; a failed archive write
	// is logged, not reported to the caller.
	if err := e.db.InsertExperience(ctx, id, last); err != nil {
		e.logger.Error("archive experience failed", "session", id, "err", err)
	}
	return res, ok, nil
}

func (e *Engine) WakeUp(id string) error {
	return e.with(id, func(s *session.Session) { s.WakeUp() })
}

func (e *Engine) Sleep(id string) error {
	return e.with(id, func(s *session.Session) { s.Sleep() })
}

// SetConsciousnessLevel clamps and stores level, returning the stored value.
func (e *Engine) SetConsciousnessLevel(id string, level float64) (float64, error) {
	var stored float64
	err := e.with(id, func(s *session.Session) {
		s.SetConsciousnessLevel(level)
		stored = s.ConsciousnessLevel()
	})
	return stored, err
}

func (e *Engine) SetAttentionFocus(id, focus string) error {
	return e.with(id, func(s *session.Session) { s.SetAttentionFocus(focus) })
}

func (e *Engine) History(id string) ([]model.LogEntry, error) {
	var out []model.LogEntry
	err := e.with(id, func(s *session.Session) { out = s.History() })
	return out, err
}

func (e *Engine) Stats(id string) (model.Stats, error) {
	var out model.Stats
	err := e.with(id, func(s *session.Session) { out = s.Stats() })
	return out, err
}

// Recent returns the last ten readings of one sense.
func (e *Engine) Recent(id string, kind model.Sense) ([]model.Reading, error) {
	var out []model.Reading
	err := e.with(id, func(s *session.Session) { out = s.Recent(kind) })
	return out, err
}

// ArchivePage is one page of persisted experiences plus the session total.
type ArchivePage struct {
	Total       int                        `json:"total"`
	Experiences []model.ArchivedExperience `json:"experiences"`
}

// Archive returns persisted experiences, newest first. Without an archive it
// returns an empty page.
func (e *Engine) Archive(ctx context.Context, id string, limit int) (ArchivePage, error) {
	if err := e.exists(id); err != nil {
		return ArchivePage{}, err
	}
	page := ArchivePage{Experiences: []model.ArchivedExperience{}}
	if e.db == nil {
		return page, nil
	}
	total, err := e.db.CountExperiences(ctx, id)
	if err != nil {
		return ArchivePage{}, err
	}
	exps, err := e.db.RecentExperiences(ctx, id, limit)
	if err != nil {
		return ArchivePage{}, err
	}
	page.Total = total
	if exps != nil {
		page.Experiences = exps
	}
	return page, nil
}

// SearchArchive finds archived readings of a session whose quality label
// contains term. An empty kind searches every sense.
func (e *Engine) SearchArchive(ctx context.Context, id string, kind model.Sense, term string, limit int) ([]model.Reading, error) {
	if err := e.exists(id); err != nil {
		return nil, err
	}
	if e.db == nil {
		return []model.Reading{}, nil
	}
	out, err := e.db.SearchReadings(ctx, id, kind, term, limit)
	if err != nil {
		return nil, err
	}
	if out == nil {
		out = []model.Reading{}
	}
	return out, nil
}

func (e *Engine) exists(id string) error {
	e.mu.RLock()
	defer e.mu.RUnlock()
	if _, ok := e.sessions[id]; !ok {
		return ErrSessionNotFound
	}
	return nil
}

// Close releases resources.
func (e *Engine) Close() error {
	if e.db == nil {
		return nil
	}
	return e.db.Close()
}
