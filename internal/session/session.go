// Package session ties one catalog and one recipe together for a single
// user. Removing a material cascades into the recipe, and costs are always
// derived from the current state on read.
package session

import (
	"sync"

	"github.com/Simplici0/costeo/internal/catalog"
	"github.com/Simplici0/costeo/internal/costing"
	"github.com/Simplici0/costeo/internal/metrics"
	"github.com/Simplici0/costeo/internal/recipe"
)

// Session is safe for concurrent use; every call runs to completion under one lock.
type Session struct {
	mu      sync.Mutex
	catalog *catalog.Catalog
	recipe  *recipe.Recipe
	metrics *metrics.Metrics
}

// New wraps cat with a fresh recipe. m may be nil.
func New(cat *catalog.Catalog, m *metrics.Metrics) *Session {
	return &Session{catalog: cat, recipe: recipe.New(), metrics: m}
}

func (s *Session) AddMaterial(name string, pricePerKg float64) (catalog.RawMaterial, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	m, ok := s.catalog.Add(name, pricePerKg)
	if s.metrics != nil {
		if ok {
			s.metrics.MaterialsAdded.Inc()
		} else {
			s.metrics.MaterialsRejected.Inc()
		}
	}
	return m, ok
}

// RemoveMaterial removes the material and every recipe line referencing it.
// It returns the number of lines removed.
func (s *Session) RemoveMaterial(id string) int {
	if id == "" {
		return 0
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	removed := s.catalog.Remove(id)
	cascaded := s.recipe.RemoveLinesFor(id)
	if s.metrics != nil {
		if removed {
			s.metrics.MaterialsRemoved.Inc()
		}
		s.metrics.LinesCascaded.Add(float64(cascaded))
	}
	return cascaded
}

func (s *Session) FindMaterial(id string) (catalog.RawMaterial, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.catalog.FindByID(id)
}

func (s *Session) Materials() []catalog.RawMaterial {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.catalog.List()
}

func (s *Session) AddLine() recipe.Ingredient {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.recipe.AddLine()
}

// UpdateLine applies a textual field update. A material id that is not in
// the catalog is ignored.
func (s *Session) UpdateLine(id string, field recipe.Field, value string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if field == recipe.FieldMaterialID && !s.selectable(value) {
		return false
	}
	return s.recipe.UpdateLine(id, field, value)
}

func (s *Session) SetLineMaterial(id, materialID string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.selectable(materialID) {
		return false
	}
	return s.recipe.SetMaterial(id, materialID)
}

func (s *Session) SetLineGrams(id string, grams float64) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.recipe.SetGrams(id, grams)
}

func (s *Session) RemoveLine(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.recipe.RemoveLine(id)
}

func (s *Session) SetTitle(title string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.recipe.SetTitle(title)
}

func (s *Session) SetQuantity(n float64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.recipe.SetQuantity(n)
}

func (s *Session) Recipe() recipe.Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.recipe.Snapshot()
}

// Costs recomputes the costing for the current catalog and recipe.
func (s *Session) Costs() costing.Result {
	s.mu.Lock()
	defer s.mu.Unlock()
	return costing.Compute(s.recipe.Snapshot(), s.catalog)
}

// Report returns the recipe and its costing taken from the same state.
func (s *Session) Report() (recipe.Snapshot, costing.Result) {
	s.mu.Lock()
	defer s.mu.Unlock()
	snap := s.recipe.Snapshot()
	return snap, costing.Compute(snap, s.catalog)
}

// selectable reports whether materialID may be put on a line: unset, or
// present in the catalog.
func (s *Session) selectable(materialID string) bool {
	if materialID == "" {
		return true
	}
	_, ok := s.catalog.FindByID(materialID)
	return ok
}
