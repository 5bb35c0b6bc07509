// Package recipe holds the product being costed: a title, the number of
// units it yields and an ordered list of ingredient lines.
package recipe

import (
	"math"
	"strconv"
	"strings"

	"github.com/google/uuid"
)

// Field names an editable ingredient field.
type Field string

const (
	FieldMaterialID Field = "materialId"
	FieldGrams      Field = "grams"
)

// Ingredient is a recipe line. An empty MaterialID means nothing is selected yet.
type Ingredient struct {
	ID         string  `json:"id"`
	MaterialID string  `json:"materialId"`
	Grams      float64 `json:"grams"`
}

// Snapshot is a read-only copy of a recipe.
type Snapshot struct {
	Title       string       `json:"title"`
	Quantity    float64      `json:"quantity"`
	Ingredients []Ingredient `json:"ingredients"`
}

// Recipe is not safe for concurrent use.
type Recipe struct {
	title    string
	quantity float64
	lines    []Ingredient
}

// New returns an untitled recipe yielding one unit.
func New() *Recipe {
	return &Recipe{quantity: 1, lines: make([]Ingredient, 0)}
}

// AddLine appends an empty line and returns it.
func (r *Recipe) AddLine() Ingredient {
	line := Ingredient{ID: uuid.NewString()}
	r.lines = append(r.lines, line)
	return line
}

// UpdateLine sets field on the line with id from its textual form. Grams that
// do not parse to a finite number become 0. It reports whether a line was
// updated.
func (r *Recipe) UpdateLine(id string, field Field, value string) bool {
	switch field {
	case FieldMaterialID:
		return r.SetMaterial(id, value)
	case FieldGrams:
		grams, err := strconv.ParseFloat(strings.TrimSpace(value), 64)
		if err != nil || math.IsNaN(grams) || math.IsInf(grams, 0) {
			grams = 0
		}
		return r.SetGrams(id, grams)
	default:
		return false
	}
}

func (r *Recipe) SetMaterial(id, materialID string) bool {
	i := r.index(id)
	if i < 0 {
		return false
	}
	r.lines[i].MaterialID = materialID
	return true
}

func (r *Recipe) SetGrams(id string, grams float64) bool {
	i := r.index(id)
	if i < 0 {
		return false
	}
	r.lines[i].Grams = grams
	return true
}

// RemoveLine deletes the line with id, reporting whether it existed.
func (r *Recipe) RemoveLine(id string) bool {
	i := r.index(id)
	if i < 0 {
		return false
	}
	r.lines = append(r.lines[:i:i], r.lines[i+1:]...)
	return true
}

// RemoveLinesFor deletes every line referencing materialID and returns how
// many were removed. Lines without a material are never matched.
func (r *Recipe) RemoveLinesFor(materialID string) int {
	if materialID == "" {
		return 0
	}

	kept := make([]Ingredient, 0, len(r.lines))
	for _, line := range r.lines {
		if line.MaterialID != materialID {
			kept = append(kept, line)
		}
	}
	removed := len(r.lines) - len(kept)
	r.lines = kept
	return removed
}

func (r *Recipe) SetTitle(title string) { r.title = title }

func (r *Recipe) SetQuantity(n float64) { r.quantity = n }

// Snapshot copies the current state.
func (r *Recipe) Snapshot() Snapshot {
	lines := make([]Ingredient, len(r.lines))
	copy(lines, r.lines)
	return Snapshot{Title: r.title, Quantity: r.quantity, Ingredients: lines}
}

func (r *Recipe) index(id string) int {
	for i, line := range r.lines {
		if line.ID == id {
			return i
		}
	}
	return -1
}
