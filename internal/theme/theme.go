// Package theme remembers whether the UI runs in dark or light mode.
package theme

import "github.com/Simplici0/costeo/internal/kv"

type Theme string

const (
	Dark  Theme = "dark"
	Light Theme = "light"
)

// Parse accepts exactly "dark" or "light".
func Parse(s string) (Theme, bool) {
	switch Theme(s) {
	case Dark, Light:
		return Theme(s), true
	}
	return "", false
}

// Preference is the stored theme choice.
type Preference struct {
	store   kv.Store
	current Theme
}

// Load reads the stored theme, using fallback when nothing valid is stored.
// The store is only written when its value was missing or invalid; a valid
// stored theme is left untouched.
func Load(store kv.Store, fallback Theme) *Preference {
	p := &Preference{store: store, current: fallback}
	if raw, ok := store.Get(kv.KeyTheme); ok {
		if t, ok := Parse(raw); ok {
			p.current = t
			return p
		}
	}
	if _, ok := Parse(string(p.current)); !ok {
		p.current = Light
	}
	store.Set(kv.KeyTheme, string(p.current))
	return p
}

func (p *Preference) Current() Theme { return p.current }

// Set stores t. Unknown themes are ignored.
func (p *Preference) Set(t Theme) bool {
	if _, ok := Parse(string(t)); !ok {
		return false
	}
	p.current = t
	p.store.Set(kv.KeyTheme, string(t))
	return true
}

// Toggle flips between dark and light and returns the new theme.
func (p *Preference) Toggle() Theme {
	if p.current == Dark {
		p.Set(Light)
	} else {
		p.Set(Dark)
	}
	return p.current
}
