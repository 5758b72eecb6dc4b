package urlparam

import "maps"

// URLMode determines how URL updates are handled.
type URLMode int

const (
	// ModePush adds a new history entry (default behavior).
	ModePush URLMode = iota

	// ModeReplace replaces the current history entry (no back button spam).
	ModeReplace
)

// String returns "push" or "replace".
func (m URLMode) String() string {
	if m == ModeReplace {
		return "replace"
	}
	return "push"
}

// URLUpdate is a query replacement for the client's current location.
// Params is the complete query; keys not present are removed.
type URLUpdate struct {
	Params map[string]string `json:"params"`
	Mode   URLMode           `json:"-"`
}

// Navigator forwards URL updates to the client.
type Navigator struct {
	send func(URLUpdate)
}

// NewNavigator creates a navigator that delivers updates via send.
func NewNavigator(send func(URLUpdate)) *Navigator {
	return &Navigator{send: send}
}

// Navigate sends a URL update. The params map is copied, so callers may
// reuse it.
func (n *Navigator) Navigate(params map[string]string, mode URLMode) {
	if n == nil || n.send == nil {
		return
	}
	copied := maps.Clone(params)
	if copied == nil {
		copied = map[string]string{}
	}
	n.send(URLUpdate{Params: copied, Mode: mode})
}
