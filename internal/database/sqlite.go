package database

import (
	"context"
	"database/sql"
	"fmt"

	"blogctl/internal/blog"
	"blogctl/internal/database/migrations"

	_ "github.com/mattn/go-sqlite3" // SQLite driver
)

const (
	insertOperationSQL = `INSERT INTO operations (run_id, operation, parameters, status, started_at)
VALUES (?, ?, ?, ?, ?)`

	finishOperationSQL = `UPDATE operations SET status = ?, finished_at = ? WHERE id = ?`

	listOperationsSQL = `SELECT id, run_id, operation, parameters, status, started_at, finished_at
FROM operations ORDER BY id DESC LIMIT ?`
)

// statusRunning is stored for operations that have not finished yet.
const statusRunning = "running"

// SQLiteJournal implements blog.Journal on a SQLite database.
type SQLiteJournal struct {
	db    *sql.DB
	clock blog.Clock
	path  string
}

// NewSQLiteJournal opens the journal at path, applies pending migrations and
// verifies the schema. path can be a file path or ":memory:".
func NewSQLiteJournal(path string, clock blog.Clock) (*SQLiteJournal, error) {
	db, err := OpenConnection(path)
	if err != nil {
		return nil, err
	}

	if err := migrations.MigrateUp(db); err != nil {
		db.Close()
		return nil, err
	}
	if err := migrations.CheckDBMigrationStatus(db); err != nil {
		db.Close()
		return nil, err
	}

	j := NewSQLiteJournalFromDB(db, clock)
	j.path = path
	return j, nil
}

// NewSQLiteJournalFromDB wraps an existing connection without migrating it.
func NewSQLiteJournalFromDB(db *sql.DB, clock blog.Clock) *SQLiteJournal {
	if clock == nil {
		clock = blog.RealClock{}
	}
	return &SQLiteJournal{db: db, clock: clock}
}

// OpenConnection opens and configures a SQLite database connection.
func OpenConnection(path string) (*sql.DB, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// Every connection to ":memory:" gets its own empty database.
	if path == ":memory:" {
		db.SetMaxOpenConns(1)
	}

	if _, err := db.Exec("PRAGMA busy_timeout = 5000"); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to set busy timeout: %w", err)
	}

	return db, nil
}

func (j *SQLiteJournal) CreateOperation(op *blog.Operation) error {
	if op.StartedAt.IsZero() {
		op.StartedAt = j.clock.Now()
	}
	if op.Status == "" {
		op.Status = statusRunning
	}

	res, err := j.db.ExecContext(context.Background(), insertOperationSQL,
		op.RunID, op.Operation, op.Parameters, op.Status, op.StartedAt.UTC())
	if err != nil {
		return fmt.Errorf("creating operation: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return fmt.Errorf("reading operation id: %w", err)
	}
	op.ID = id
	return nil
}

func (j *SQLiteJournal) FinishOperation(id int64, status string) error {
	res, err := j.db.ExecContext(context.Background(), finishOperationSQL,
		status, j.clock.Now().UTC(), id)
	if err != nil {
		return fmt.Errorf("finishing operation: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("finishing operation: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("finishing operation: no operation with id %d", id)
	}
	return nil
}

func (j *SQLiteJournal) ListOperations(limit int) ([]*blog.Operation, error) {
	rows, err := j.db.QueryContext(context.Background(), listOperationsSQL, limit)
	if err != nil {
		return nil, fmt.Errorf("listing operations: %w", err)
	}
	defer rows.Close()

	ops := []*blog.Operation{}
	for rows.Next() {
		var op blog.Operation
		var finished sql.NullTime
		if err := rows.Scan(&op.ID, &op.RunID, &op.Operation, &op.Parameters,
			&op.Status, &op.StartedAt, &finished); err != nil {
			return nil, fmt.Errorf("scanning operation: %w", err)
		}
		if finished.Valid {
			t := finished.Time
			op.FinishedAt = &t
		}
		ops = append(ops, &op)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("listing operations: %w", err)
	}
	return ops, nil
}

// Path returns the database file path (or ":memory:" for in-memory databases).
func (j *SQLiteJournal) Path() string {
	return j.path
}

// CheckMigrations verifies the database schema is up-to-date.
func (j *SQLiteJournal) CheckMigrations() error {
	return migrations.CheckDBMigrationStatus(j.db)
}

// Close closes the database connection.
func (j *SQLiteJournal) Close() error {
	if j.db != nil {
		return j.db.Close()
	}
	return nil
}

var _ blog.Journal = (*SQLiteJournal)(nil)
