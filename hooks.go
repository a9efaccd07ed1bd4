package rendercache

// Miss reasons passed to Hooks.Miss.
const (
	MissNotFound    = "not_found"
	MissExpired     = "expired"
	MissCorrupt     = "corrupt"
	MissValueDecode = "value_decode"
)

// Hooks lightweight callbacks for high-signal cache events.
// Implementations MUST be cheap and non-blocking - the backends call them on
// hot paths. Wrap with hooks/async to move work off the caller.
type Hooks interface {
	// A read was served from the backend.
	Hit(key string)

	// A read came back empty.
	// reason ∈ {MissNotFound, MissExpired, MissCorrupt, MissValueDecode}
	Miss(key, reason string)

	// The backend refused a write under pressure (memory backends only).
	StoreRejected(key string)

	// A write failed with an environment error.
	StoreError(key string, err error)

	// A removal failed with an environment error.
	RemoveError(key string, err error)
}

// NopHooks is the default no-op
type NopHooks struct{}

func (NopHooks) Hit(string)                {}
func (NopHooks) Miss(string, string)       {}
func (NopHooks) StoreRejected(string)      {}
func (NopHooks) StoreError(string, error)  {}
func (NopHooks) RemoveError(string, error) {}
