package main

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/johncui/senses/pkg/model"
	"github.com/johncui/senses/pkg/preset"
	"github.com/johncui/senses/pkg/store"
)

type api struct {
	engine       *store.Engine
	presets      []preset.Preset
	archiveLimit int
	logger       *slog.Logger
}

func newRouter(engine *store.Engine, presets []preset.Preset, archiveLimit int, logger *slog.Logger) http.Handler {
	a := &api{engine: engine, presets: presets, archiveLimit: archiveLimit, logger: logger}

	r := chi.NewRouter()
	r.Use(middleware.RequestID, middleware.RealIP, middleware.Logger, middleware.Recoverer)

	r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("ok"))
	})
	r.Get("/presets", func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusOK, a.presets)
	})

	r.Route("/sessions", func(r chi.Router) {
		r.Get("/", a.listSessions)
		r.Post("/", a.createSession)
		r.Route("/{id}", func(r chi.Router) {
			r.Delete("/", a.deleteSession)
			r.Post("/experience", a.experience)
			r.Post("/experience/preset/{preset}", a.experiencePreset)
			r.Post("/wake", a.wake)
			r.Post("/sleep", a.sleep)
			r.Put("/consciousness", a.setConsciousness)
			r.Put("/focus", a.setFocus)
			r.Get("/history", a.history)
			r.Get("/stats", a.stats)
			r.Get("/recent/{sense}", a.recent)
			r.Get("/archive", a.archive)
			r.Get("/archive/search", a.searchArchive)
		})
	})
	return r
}

func (a *api) listSessions(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, a.engine.List())
}

func (a *api) createSession(w http.ResponseWriter, req *http.Request) {
	var in struct {
		Name string `json:"name"`
	}
	if req.ContentLength != 0 {
		if err := json.NewDecoder(req.Body).Decode(&in); err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
	}
	writeJSON(w, http.StatusCreated, a.engine.Create(in.Name))
}

func (a *api) deleteSession(w http.ResponseWriter, req *http.Request) {
	if err := a.engine.Delete(req.Context(), chi.URLParam(req, "id")); err != nil {
		a.fail(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (a *api) experience(w http.ResponseWriter, req *http.Request) {
	var env model.Environment
	if err := json.NewDecoder(req.Body).Decode(&env); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	a.submit(w, req, env)
}

func (a *api) experiencePreset(w http.ResponseWriter, req *http.Request) {
	p, ok := preset.Find(a.presets, chi.URLParam(req, "preset"))
	if !ok {
		http.Error(w, "preset not found", http.StatusNotFound)
		return
	}
	a.submit(w, req, p.Environment)
}

func (a *api) submit(w http.ResponseWriter, req *http.Request, env model.Environment) {
	res, ok, err := a.engine.Experience(req.Context(), chi.URLParam(req, "id"), env)
	if err != nil {
		a.fail(w, err)
		return
	}
	if !ok {
		// Asleep: empty result, not an error.
		w.WriteHeader(http.StatusNoContent)
		return
	}
	writeJSON(w, http.StatusOK, res)
}

func (a *api) wake(w http.ResponseWriter, req *http.Request) {
	if err := a.engine.WakeUp(chi.URLParam(req, "id")); err != nil {
		a.fail(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (a *api) sleep(w http.ResponseWriter, req *http.Request) {
	if err := a.engine.Sleep(chi.URLParam(req, "id")); err != nil {
		a.fail(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (a *api) setConsciousness(w http.ResponseWriter, req *http.Request) {
	var in struct {
		Level *float64 `json:"level"`
	}
	if err := json.NewDecoder(req.Body).Decode(&in); err != nil || in.Level == nil {
		http.Error(w, "level must be a number", http.StatusBadRequest)
		return
	}
	stored, err := a.engine.SetConsciousnessLevel(chi.URLParam(req, "id"), *in.Level)
	if err != nil {
		a.fail(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]float64{"level": stored})
}

func (a *api) setFocus(w http.ResponseWriter, req *http.Request) {
	var in struct {
		Focus string `json:"focus"`
	}
	if err := json.NewDecoder(req.Body).Decode(&in); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	if err := a.engine.SetAttentionFocus(chi.URLParam(req, "id"), in.Focus); err != nil {
		a.fail(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"focus": in.Focus})
}

func (a *api) history(w http.ResponseWriter, req *http.Request) {
	h, err := a.engine.History(chi.URLParam(req, "id"))
	if err != nil {
		a.fail(w, err)
		return
	}
	writeJSON(w, http.StatusOK, h)
}

func (a *api) stats(w http.ResponseWriter, req *http.Request) {
	st, err := a.engine.Stats(chi.URLParam(req, "id"))
	if err != nil {
		a.fail(w, err)
		return
	}
	writeJSON(w, http.StatusOK, st)
}

func (a *api) recent(w http.ResponseWriter, req *http.Request) {
	kind, err := model.ParseSense(chi.URLParam(req, "sense"))
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	out, err := a.engine.Recent(chi.URLParam(req, "id"), kind)
	if err != nil {
		a.fail(w, err)
		return
	}
	writeJSON(w, http.StatusOK, out)
}

func (a *api) archive(w http.ResponseWriter, req *http.Request) {
	out, err := a.engine.Archive(req.Context(), chi.URLParam(req, "id"), a.limit(req))
	if err != nil {
		a.fail(w, err)
		return
	}
	writeJSON(w, http.StatusOK, out)
}

func (a *api) searchArchive(w http.ResponseWriter, req *http.Request) {
	q := req.URL.Query()
	var kind model.Sense
	if v := q.Get("sense"); v != "" {
		s, err := model.ParseSense(v)
		if err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		kind = s
	}
	out, err := a.engine.SearchArchive(req.Context(), chi.URLParam(req, "id"), kind, q.Get("q"), a.limit(req))
	if err != nil {
		a.fail(w, err)
		return
	}
	writeJSON(w, http.StatusOK, out)
}

func (a *api) limit(req *http.Request) int {
	if v := req.URL.Query().Get("limit"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return a.archiveLimit
}

func (a *api) fail(w http.ResponseWriter, err error) {
	if errors.Is(err, store.ErrSessionNotFound) {
		http.Error(w, err.Error(), http.StatusNotFound)
		return
	}
	a.logger.Error("request failed", "err", err)
	http.Error(w, err.Error(), http.StatusInternalServerError)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}
