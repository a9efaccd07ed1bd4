package rendercache

import "fmt"

// coalesce returns def when v is the zero value of T - otherwise v.
func coalesce[T comparable](v, def T) T {
	var zero T
	if v == zero {
		return def
	}
	return v
}

// stringKey is the default key-to-string mapping for the string-keyed
// memory backends. Equal keys yield equal strings; the fmt fallback relies on
// the key type having a stable value representation.
func stringKey[K any](key K) string {
	switch k := any(key).(type) {
	case string:
		return k
	case fmt.Stringer:
		return k.String()
	default:
		return fmt.Sprint(key)
	}
}
