package seed

import (
	"strings"

	"github.com/Simplici0/costeo/internal/catalog"
)

// Material is a starter catalog entry.
type Material struct {
	Name       string
	PricePerKg float64
}

// Stats contains seed operation counters.
type Stats struct {
	Inserts int
	Skipped int
}

// Demo is the starter catalog used when SEED_DEMO is enabled.
var Demo = []Material{
	{Name: "Harina de trigo", PricePerKg: 1200},
	{Name: "Azúcar", PricePerKg: 1500},
	{Name: "Mantequilla", PricePerKg: 9000},
	{Name: "Sal", PricePerKg: 800},
}

// Run adds every material whose name is not yet in the catalog. Names are
// compared case-insensitively after trimming, so repeated runs insert nothing.
func Run(cat *catalog.Catalog, materials []Material) Stats {
	existing := make(map[string]bool, cat.Len())
	for _, m := range cat.List() {
		existing[normalize(m.Name)] = true
	}

	stats := Stats{}
	for _, m := range materials {
		key := normalize(m.Name)
		if existing[key] {
			stats.Skipped++
			continue
		}
		if _, ok := cat.Add(m.Name, m.PricePerKg); !ok {
			stats.Skipped++
			continue
		}
		existing[key] = true
		stats.Inserts++
	}
	return stats
}

func normalize(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}
