package main

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/Simplici0/costeo/internal/costing"
	"github.com/Simplici0/costeo/internal/export"
	"github.com/Simplici0/costeo/internal/recipe"
	"github.com/Simplici0/costeo/internal/session"
	"github.com/Simplici0/costeo/internal/theme"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

type server struct {
	session *session.Session
	log     *slog.Logger

	themeMu sync.Mutex
	theme   *theme.Preference
}

type errorResponse struct {
	Error string `json:"error"`
}

type materialRequest struct {
	Name       string  `json:"name"`
	PricePerKg float64 `json:"pricePerKg"`
}

type recipeRequest struct {
	Title    *string  `json:"title"`
	Quantity *float64 `json:"quantity"`
}

type lineUpdateRequest struct {
	Field recipe.Field    `json:"field"`
	Value json.RawMessage `json:"value"`
}

type themeRequest struct {
	Theme string `json:"theme"`
}

type themeResponse struct {
	Theme theme.Theme `json:"theme"`
}

type removeMaterialResponse struct {
	RemovedLines int `json:"removedLines"`
}

type costsDisplay struct {
	TotalRawMaterialCost string `json:"totalRawMaterialCost"`
	TotalWithMargin      string `json:"totalWithMargin"`
	PricePerUnit         string `json:"pricePerUnit"`
}

type costsResponse struct {
	Title    string         `json:"title"`
	Quantity float64        `json:"quantity"`
	Lines    []costing.Line `json:"lines"`
	Totals   costing.Totals `json:"totals"`
	Display  costsDisplay   `json:"display"`
}

func newServer(s *session.Session, pref *theme.Preference, log *slog.Logger) *server {
	if log == nil {
		log = slog.Default()
	}
	return &server{session: s, theme: pref, log: log}
}

// routes builds the router. metricsHandler may be nil.
func (s *server) routes(metricsHandler http.Handler) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(s.requestLogger)

	r.Get("/health", s.handleHealth)
	if metricsHandler != nil {
		r.Handle("/metrics", metricsHandler)
	}

	r.Route("/api", func(r chi.Router) {
		r.Get("/materials", s.handleListMaterials)
		r.Post("/materials", s.handleCreateMaterial)
		r.Delete("/materials/{id}", s.handleDeleteMaterial)

		r.Get("/recipe", s.handleGetRecipe)
		r.Put("/recipe", s.handleUpdateRecipe)
		r.Post("/recipe/lines", s.handleAddLine)
		r.Patch("/recipe/lines/{id}", s.handleUpdateLine)
		r.Delete("/recipe/lines/{id}", s.handleDeleteLine)

		r.Get("/costs", s.handleCosts)
		r.Get("/costs.xlsx", s.handleCostsSheet)

		r.Get("/theme", s.handleGetTheme)
		r.Put("/theme", s.handleSetTheme)
		r.Post("/theme/toggle", s.handleToggleTheme)
	})

	return r
}

func (s *server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("OK"))
}

func (s *server) handleListMaterials(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.session.Materials())
}

func (s *server) handleCreateMaterial(w http.ResponseWriter, r *http.Request) {
	var req materialRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_json")
		return
	}

	m, ok := s.session.AddMaterial(req.Name, req.PricePerKg)
	if !ok {
		writeError(w, http.StatusUnprocessableEntity, "invalid_material")
		return
	}

	s.log.Info("material added", "id", m.ID, "name", m.Name)
	writeJSON(w, http.StatusCreated, m)
}

func (s *server) handleDeleteMaterial(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	removed := s.session.RemoveMaterial(id)
	if removed > 0 {
		s.log.Info("material removed with dependent lines", "id", id, "lines", removed)
	}
	writeJSON(w, http.StatusOK, removeMaterialResponse{RemovedLines: removed})
}

func (s *server) handleGetRecipe(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.session.Recipe())
}

func (s *server) handleUpdateRecipe(w http.ResponseWriter, r *http.Request) {
	var req recipeRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_json")
		return
	}

	if req.Title != nil {
		s.session.SetTitle(*req.Title)
	}
	if req.Quantity != nil {
		s.session.SetQuantity(*req.Quantity)
	}
	writeJSON(w, http.StatusOK, s.session.Recipe())
}

func (s *server) handleAddLine(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusCreated, s.session.AddLine())
}

func (s *server) handleUpdateLine(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	var req lineUpdateRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_json")
		return
	}
	if req.Field != recipe.FieldMaterialID && req.Field != recipe.FieldGrams {
		writeError(w, http.StatusBadRequest, "invalid_field")
		return
	}

	value, err := rawValue(req.Value)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid_value")
		return
	}

	if !s.session.UpdateLine(id, req.Field, value) {
		if req.Field == recipe.FieldMaterialID && value != "" {
			if _, ok := s.session.FindMaterial(value); !ok {
				writeError(w, http.StatusUnprocessableEntity, "unknown_material")
				return
			}
		}
		writeError(w, http.StatusNotFound, "line_not_found")
		return
	}
	writeJSON(w, http.StatusOK, s.session.Recipe())
}

func (s *server) handleDeleteLine(w http.ResponseWriter, r *http.Request) {
	s.session.RemoveLine(chi.URLParam(r, "id"))
	w.WriteHeader(http.StatusNoContent)
}

func (s *server) handleCosts(w http.ResponseWriter, r *http.Request) {
	snap, res := s.session.Report()

	writeJSON(w, http.StatusOK, costsResponse{
		Title:    snap.Title,
		Quantity: snap.Quantity,
		Lines:    res.Lines,
		Totals:   res.Totals,
		Display: costsDisplay{
			TotalRawMaterialCost: costing.Format2(res.Totals.RawMaterialCost),
			TotalWithMargin:      costing.Format2(res.Totals.WithMargin),
			PricePerUnit:         costing.Format2(res.Totals.PricePerUnit),
		},
	})
}

func (s *server) handleCostsSheet(w http.ResponseWriter, r *http.Request) {
	snap, res := s.session.Report()
	buf, err := export.CostSheet(snap.Title, snap.Quantity, res)
	if err != nil {
		s.log.Error("build cost sheet", "err", err)
		writeError(w, http.StatusInternalServerError, "export_failed")
		return
	}

	fileName := fmt.Sprintf("costos_%s.xlsx", time.Now().Format("20060102_150405"))
	w.Header().Set("Content-Type", xlsxContentType)
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", fileName))
	w.WriteHeader(http.StatusOK)
	_, _ = io.Copy(w, buf)
}

func (s *server) handleGetTheme(w http.ResponseWriter, r *http.Request) {
	s.themeMu.Lock()
	current := s.theme.Current()
	s.themeMu.Unlock()
	writeJSON(w, http.StatusOK, themeResponse{Theme: current})
}

func (s *server) handleSetTheme(w http.ResponseWriter, r *http.Request) {
	var req themeRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_json")
		return
	}

	t, ok := theme.Parse(strings.ToLower(strings.TrimSpace(req.Theme)))
	if !ok {
		writeError(w, http.StatusUnprocessableEntity, "invalid_theme")
		return
	}

	s.themeMu.Lock()
	s.theme.Set(t)
	s.themeMu.Unlock()
	writeJSON(w, http.StatusOK, themeResponse{Theme: t})
}

func (s *server) handleToggleTheme(w http.ResponseWriter, r *http.Request) {
	s.themeMu.Lock()
	t := s.theme.Toggle()
	s.themeMu.Unlock()
	writeJSON(w, http.StatusOK, themeResponse{Theme: t})
}

func (s *server) requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		start := time.Now()
		next.ServeHTTP(ww, r)
		s.log.Debug("request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", ww.Status(),
			"duration", time.Since(start),
		)
	})
}

func decodeJSON(r *http.Request, dst any) error {
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	return dec.Decode(dst)
}

// rawValue turns a JSON string or number into its textual form.
func rawValue(raw json.RawMessage) (string, error) {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
		return "", nil
	}
	if raw[0] == '"' {
		var s string
		if err := json.Unmarshal(raw, &s); err != nil {
			return "", err
		}
		return s, nil
	}

	var n json.Number
	if err := json.Unmarshal(raw, &n); err != nil {
		return "", errors.New("value must be a string or a number")
	}
	return n.String(), nil
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	body, err := json.Marshal(payload)
	if err != nil {
		http.Error(w, `{"error":"encode_error"}`, http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, _ = w.Write(body)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, errorResponse{Error: msg})
}
