// Package kv provides the narrow key-value capability the costing core
// persists through. Writes are fire-and-forget: failures are logged by the
// implementation and never surface to callers.
package kv

// Well-known keys.
const (
	KeyRawMaterials = "rawMaterials"
	KeyTheme        = "theme"
)

// Store is a string-keyed store holding serialized values.
type Store interface {
	Get(key string) (string, bool)
	Set(key, value string)
}
