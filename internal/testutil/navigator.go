package testutil

import "sync"

// RecordingNavigator remembers every redirect. Safe for concurrent use.
type RecordingNavigator struct {
	mu    sync.Mutex
	paths []string
}

func NewRecordingNavigator() *RecordingNavigator {
	return &RecordingNavigator{}
}

func (n *RecordingNavigator) RedirectTo(path string) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.paths = append(n.paths, path)
}

// Paths returns the redirects in the order they happened.
func (n *RecordingNavigator) Paths() []string {
	n.mu.Lock()
	defer n.mu.Unlock()
	return append([]string(nil), n.paths...)
}

// Last returns the most recent redirect, or "".
func (n *RecordingNavigator) Last() string {
	n.mu.Lock()
	defer n.mu.Unlock()
	if len(n.paths) == 0 {
		return ""
	}
	return n.paths[len(n.paths)-1]
}
