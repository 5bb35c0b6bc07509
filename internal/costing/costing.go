package costing

import (
	"github.com/Simplici0/costeo/internal/catalog"
	"github.com/Simplici0/costeo/internal/recipe"
)

// CostRatioPercent is the share of the marked-up price taken by raw materials.
const CostRatioPercent = 35.0

// Lookup resolves materials by id.
type Lookup interface {
	FindByID(id string) (catalog.RawMaterial, bool)
}

// Line is the costed view of one ingredient line.
type Line struct {
	IngredientID string  `json:"id"`
	MaterialID   string  `json:"materialId"`
	MaterialName string  `json:"materialName"`
	PricePerKg   float64 `json:"pricePerKg"`
	Grams        float64 `json:"grams"`
	Cost         float64 `json:"cost"`
}

// Totals contains roll-up values of the costing.
type Totals struct {
	RawMaterialCost float64 `json:"totalRawMaterialCost"`
	WithMargin      float64 `json:"totalWithMargin"`
	PricePerUnit    float64 `json:"pricePerUnit"`
}

// Result groups per-line costs and totals for one recipe.
type Result struct {
	Lines  []Line `json:"lines"`
	Totals Totals `json:"totals"`
}

// LineCost is price per kilogram times grams over 1000, or 0 when the line
// is unset or its material does not resolve.
func LineCost(ing recipe.Ingredient, cat Lookup) float64 {
	m, ok := resolve(ing, cat)
	if !ok {
		return 0
	}
	return m.PricePerKg * ing.Grams / 1000
}

func resolve(ing recipe.Ingredient, cat Lookup) (catalog.RawMaterial, bool) {
	if ing.MaterialID == "" {
		return catalog.RawMaterial{}, false
	}
	return cat.FindByID(ing.MaterialID)
}

// TotalRawMaterialCost sums LineCost over lines in order.
func TotalRawMaterialCost(lines []recipe.Ingredient, cat Lookup) float64 {
	total := 0.0
	for _, ing := range lines {
		total += LineCost(ing, cat)
	}
	return total
}

// TotalWithMargin scales raw-material cost up to the sale total.
func TotalWithMargin(totalRawMaterialCost float64) float64 {
	return totalRawMaterialCost * 100 / CostRatioPercent
}

// PricePerUnit divides the sale total by quantity; non-positive quantities give 0.
func PricePerUnit(totalWithMargin, quantity float64) float64 {
	if quantity > 0 {
		return totalWithMargin / quantity
	}
	return 0
}

// Compute costs every line of snap and derives the totals.
func Compute(snap recipe.Snapshot, cat Lookup) Result {
	lines := make([]Line, 0, len(snap.Ingredients))
	for _, ing := range snap.Ingredients {
		line := Line{
			IngredientID: ing.ID,
			MaterialID:   ing.MaterialID,
			Grams:        ing.Grams,
			Cost:         LineCost(ing, cat),
		}
		if m, ok := resolve(ing, cat); ok {
			line.MaterialName = m.Name
			line.PricePerKg = m.PricePerKg
		}
		lines = append(lines, line)
	}

	raw := TotalRawMaterialCost(snap.Ingredients, cat)
	withMargin := TotalWithMargin(raw)

	return Result{
		Lines: lines,
		Totals: Totals{
			RawMaterialCost: raw,
			WithMargin:      withMargin,
			PricePerUnit:    PricePerUnit(withMargin, snap.Quantity),
		},
	}
}
