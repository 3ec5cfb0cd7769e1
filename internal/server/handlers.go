package server

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/piwi3910/ScatterBoard/internal/model"
)

// fixtureSummary is the list entry returned by GET /api/fixtures.
type fixtureSummary struct {
	ID          string         `json:"id"`
	Name        string         `json:"name"`
	Description string         `json:"description"`
	Requests    int            `json:"requests"`
	Viewport    model.Viewport `json:"viewport"`
}

type clickRequest struct {
	X *float64 `json:"x"`
	Y *float64 `json:"y"`
}

func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := indexTemplate.Execute(w, s.summaries()); err != nil {
		s.logger.Error("render index", "err", err)
	}
}

func (s *Server) handleFixturePage(w http.ResponseWriter, r *http.Request) {
	spec, ok := s.lookup(w, r)
	if !ok {
		return
	}
	seed, err := parseSeed(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	result := s.newLayout(spec, seed)

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	data := pageData{Fixture: spec, Layout: result}
	if err := fixtureTemplate.Execute(w, data); err != nil {
		s.logger.Error("render fixture page", "fixture", spec.Name, "err", err)
	}
}

func (s *Server) handleListFixtures(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.summaries())
}

func (s *Server) handleLayout(w http.ResponseWriter, r *http.Request) {
	spec, ok := s.lookup(w, r)
	if !ok {
		return
	}
	seed, err := parseSeed(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, s.newLayout(spec, seed))
}

func (s *Server) handleClick(w http.ResponseWriter, r *http.Request) {
	spec, ok := s.lookup(w, r)
	if !ok {
		return
	}

	var req clickRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request: "+err.Error())
		return
	}
	if req.X == nil || req.Y == nil {
		writeError(w, http.StatusBadRequest, "x and y required")
		return
	}

	click, ok := s.recordClick(spec.Name, *req.X, *req.Y)
	if !ok {
		writeError(w, http.StatusConflict, "fixture has no layout yet; load the page first")
		return
	}
	if click.Hit {
		s.logger.Debug("click hit", "fixture", spec.Name, "widget", click.Label, "part", click.Part)
	}
	writeJSON(w, http.StatusOK, click)
}

func (s *Server) handleListClicks(w http.ResponseWriter, r *http.Request) {
	spec, ok := s.lookup(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, s.Clicks(spec.Name))
}

func (s *Server) handleResetClicks(w http.ResponseWriter, r *http.Request) {
	spec, ok := s.lookup(w, r)
	if !ok {
		return
	}
	s.resetClicks(spec.Name)
	w.WriteHeader(http.StatusNoContent)
}

// lookup resolves the {name} URL parameter, writing a 404 when unknown.
func (s *Server) lookup(w http.ResponseWriter, r *http.Request) (model.FixtureSpec, bool) {
	name := chi.URLParam(r, "name")
	if f := s.fixtures.FindByName(name); f != nil {
		return *f, true
	}
	if f := s.fixtures.FindByID(name); f != nil {
		return *f, true
	}
	writeError(w, http.StatusNotFound, "fixture not found: "+name)
	return model.FixtureSpec{}, false
}

func (s *Server) summaries() []fixtureSummary {
	out := make([]fixtureSummary, 0, len(s.fixtures.Fixtures))
	for _, f := range s.fixtures.Fixtures {
		out = append(out, fixtureSummary{
			ID:          f.ID,
			Name:        f.Name,
			Description: f.Description,
			Requests:    f.RequestCount(),
			Viewport:    f.Viewport,
		})
	}
	return out
}

var errBadSeed = errors.New("seed must be an unsigned integer")

func parseSeed(r *http.Request) (uint64, error) {
	raw := r.URL.Query().Get("seed")
	if raw == "" {
		return 0, nil
	}
	seed, err := strconv.ParseUint(raw, 10, 64)
	if err != nil {
		return 0, errBadSeed
	}
	return seed, nil
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}
