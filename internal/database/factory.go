package database

import (
	"fmt"
	"os"
	"path/filepath"

	"blogctl/internal/blog"
	"blogctl/internal/config"
)

// JournalFileName is the sqlite file created inside JournalConfig.DataDir.
const JournalFileName = "journal.db"

// NewJournalFromConfig creates a Journal implementation based on the journal config type.
func NewJournalFromConfig(cfg config.JournalConfig, clock blog.Clock) (blog.Journal, error) {
	switch cfg.Type {
	case "sqlite":
		if cfg.DataDir == "" {
			return nil, fmt.Errorf("data_dir required for sqlite journal")
		}
		if err := os.MkdirAll(cfg.DataDir, 0700); err != nil {
			return nil, fmt.Errorf("creating journal directory: %w", err)
		}
		return openJournal(filepath.Join(cfg.DataDir, JournalFileName), clock)
	case "memory":
		return openJournal(":memory:", clock)
	default:
		return nil, fmt.Errorf("unknown journal type: %s", cfg.Type)
	}
}

// openJournal keeps a failed open from escaping as a non-nil interface.
func openJournal(path string, clock blog.Clock) (blog.Journal, error) {
	j, err := NewSQLiteJournal(path, clock)
	if err != nil {
		return nil, err
	}
	return j, nil
}
