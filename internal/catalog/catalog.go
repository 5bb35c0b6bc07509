// Package catalog keeps the raw materials a recipe can draw from. It is the
// source of truth for prices per kilogram and persists itself as a JSON
// array under kv.KeyRawMaterials.
package catalog

import (
	"encoding/json"
	"log/slog"
	"math"
	"strings"

	"github.com/google/uuid"

	"github.com/Simplici0/costeo/internal/kv"
)

// RawMaterial is a purchasable input priced per kilogram.
type RawMaterial struct {
	ID         string  `json:"id"`
	Name       string  `json:"name"`
	PricePerKg float64 `json:"pricePerKg"`
}

// Options tunes catalog persistence.
type Options struct {
	// PersistOnRemove writes the catalog back to the store after Remove.
	// When false, removals only live in memory.
	PersistOnRemove bool
	Logger          *slog.Logger
}

// Catalog is an ordered set of raw materials. It is not safe for concurrent
// use; callers serialize access.
type Catalog struct {
	store     kv.Store
	opts      Options
	log       *slog.Logger
	materials []RawMaterial
}

// Valid reports whether name and pricePerKg are acceptable for Add.
func Valid(name string, pricePerKg float64) bool {
	if strings.TrimSpace(name) == "" {
		return false
	}
	if math.IsNaN(pricePerKg) || math.IsInf(pricePerKg, 0) {
		return false
	}
	return pricePerKg > 0
}

// Load builds a catalog from the store. A missing or unreadable entry yields
// an empty catalog. Records without an id, with an invalid name or price, or
// repeating an earlier id are dropped.
func Load(store kv.Store, opts Options) *Catalog {
	log := opts.Logger
	if log == nil {
		log = slog.Default()
	}

	c := &Catalog{store: store, opts: opts, log: log, materials: make([]RawMaterial, 0)}

	raw, ok := store.Get(kv.KeyRawMaterials)
	if !ok {
		return c
	}

	var stored []RawMaterial
	if err := json.Unmarshal([]byte(raw), &stored); err != nil {
		log.Warn("stored catalog is unreadable, starting empty", "err", err)
		return c
	}
	seen := make(map[string]struct{}, len(stored))
	for _, m := range stored {
		if m.ID == "" || !Valid(m.Name, m.PricePerKg) {
			log.Warn("dropping invalid stored material", "id", m.ID, "name", m.Name)
			continue
		}
		if _, dup := seen[m.ID]; dup {
			log.Warn("dropping duplicate stored material", "id", m.ID, "name", m.Name)
			continue
		}
		seen[m.ID] = struct{}{}
		c.materials = append(c.materials, m)
	}
	log.Debug("catalog loaded", "count", len(c.materials))
	return c
}

// Add appends a new material. It returns false and leaves the catalog
// untouched when Valid rejects the input.
func (c *Catalog) Add(name string, pricePerKg float64) (RawMaterial, bool) {
	if !Valid(name, pricePerKg) {
		return RawMaterial{}, false
	}

	m := RawMaterial{
		ID:         uuid.NewString(),
		Name:       strings.TrimSpace(name),
		PricePerKg: pricePerKg,
	}
	c.materials = append(c.materials, m)
	c.persist()
	return m, true
}

// Remove deletes the material with id. It reports whether anything was removed.
func (c *Catalog) Remove(id string) bool {
	for i, m := range c.materials {
		if m.ID != id {
			continue
		}
		c.materials = append(c.materials[:i:i], c.materials[i+1:]...)
		if c.opts.PersistOnRemove {
			c.persist()
		}
		return true
	}
	return false
}

// FindByID returns the material with exactly this id.
func (c *Catalog) FindByID(id string) (RawMaterial, bool) {
	for _, m := range c.materials {
		if m.ID == id {
			return m, true
		}
	}
	return RawMaterial{}, false
}

// List returns a copy of the materials in insertion order.
func (c *Catalog) List() []RawMaterial {
	out := make([]RawMaterial, len(c.materials))
	copy(out, c.materials)
	return out
}

func (c *Catalog) Len() int { return len(c.materials) }

func (c *Catalog) persist() {
	body, err := json.Marshal(c.materials)
	if err != nil {
		c.log.Warn("encode catalog", "err", err)
		return
	}
	c.store.Set(kv.KeyRawMaterials, string(body))
}
