package app

import (
	"fmt"
	"io"
	"sync"

	"blogctl/internal/blog"
)

// TerminalNavigator turns session redirects into hints on the console,
// since a CLI has no pages to move to.
type TerminalNavigator struct {
	w io.Writer

	mu   sync.Mutex
	last string
}

func NewTerminalNavigator(w io.Writer) *TerminalNavigator {
	return &TerminalNavigator{w: w}
}

func (n *TerminalNavigator) RedirectTo(path string) {
	n.mu.Lock()
	n.last = path
	n.mu.Unlock()

	switch path {
	case blog.LoginPath:
		fmt.Fprintln(n.w, "Not logged in. Run 'blogctl login' to sign in.")
	case blog.AdminHomePath:
		fmt.Fprintln(n.w, "Your role does not allow this command.")
	default:
		fmt.Fprintf(n.w, "Continue at %s\n", path)
	}
}

// Last returns the most recent redirect target, or "".
func (n *TerminalNavigator) Last() string {
	n.mu.Lock()
	defer n.mu.Unlock()
	return n.last
}
