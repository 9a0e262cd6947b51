package testutil

import (
	"testing"

	"blogctl/internal/blog"
	"blogctl/internal/database"
)

// NewTestJournal creates a new in-memory journal with migrations applied.
// The journal is automatically closed when the test completes.
func NewTestJournal(t *testing.T, clock blog.Clock) blog.Journal {
	t.Helper()

	j, err := database.NewSQLiteJournal(":memory:", clock)
	if err != nil {
		t.Fatalf("failed to open journal: %v", err)
	}

	t.Cleanup(func() {
		j.Close()
	})

	return j
}
