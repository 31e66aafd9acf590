package observation

import (
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/tebeka/atexit"

	_ "modernc.org/sqlite"
)

// SQLiteSink persists a view's trame stream to a SQLite database in WAL
// mode, grounded on daviddao-clockmail's pkg/store/store.go (DSN pragma
// string, connection pool sizing, CREATE TABLE IF NOT EXISTS migration,
// and transient-error retry).
type SQLiteSink struct {
	db      *sql.DB
	view    string
	runID   string
}

// NewSQLiteSink opens (or creates) the database at path and migrates
// its schema. runID distinguishes samples from different runs sharing
// one database file.
func NewSQLiteSink(path, view, runID string) (*SQLiteSink, error) {
	dsn := path + "?_pragma=journal_mode(WAL)&_pragma=busy_timeout(60000)&_pragma=synchronous(NORMAL)"
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("observation: open sqlite sink: %w", err)
	}
	db.SetMaxOpenConns(4)
	db.SetMaxIdleConns(2)
	db.SetConnMaxLifetime(30 * time.Minute)

	s := &SQLiteSink{db: db, view: view, runID: runID}
	if err := s.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("observation: migrate sqlite sink: %w", err)
	}

	atexit.Register(func() { _ = s.Flush() })

	return s, nil
}

func (s *SQLiteSink) migrate() error {
	const schema = `
	CREATE TABLE IF NOT EXISTS observables (
		run_id TEXT NOT NULL,
		view   TEXT NOT NULL,
		parent TEXT NOT NULL,
		model  TEXT NOT NULL,
		port   TEXT NOT NULL
	);

	CREATE TABLE IF NOT EXISTS samples (
		run_id    TEXT NOT NULL,
		view      TEXT NOT NULL,
		time      REAL NOT NULL,
		parent    TEXT NOT NULL,
		model     TEXT NOT NULL,
		port      TEXT NOT NULL,
		value_str TEXT NOT NULL
	);
	CREATE INDEX IF NOT EXISTS idx_samples_view_time ON samples(view, time);

	CREATE TABLE IF NOT EXISTS run_events (
		run_id TEXT NOT NULL,
		view   TEXT NOT NULL,
		kind   TEXT NOT NULL,
		detail TEXT
	);
	`
	_, err := s.db.Exec(schema)
	return err
}

// Deliver writes tr, retrying on transient SQLite contention errors.
func (s *SQLiteSink) Deliver(tr Trame) error {
	return retryOnContention(func() error {
		switch tr.Kind {
		case KindParameter:
			_, err := s.db.Exec(
				`INSERT INTO run_events (run_id, view, kind, detail) VALUES (?, ?, ?, ?)`,
				s.runID, s.view, tr.Kind.String(), tr.Parameter,
			)
			return err
		case KindNewObservable:
			_, err := s.db.Exec(
				`INSERT INTO observables (run_id, view, parent, model, port) VALUES (?, ?, ?, ?, ?)`,
				s.runID, s.view, tr.Parent, tr.Model, tr.Port,
			)
			return err
		case KindDelObservable:
			_, err := s.db.Exec(
				`DELETE FROM observables WHERE run_id = ? AND view = ? AND model = ? AND port = ?`,
				s.runID, s.view, tr.Model, tr.Port,
			)
			return err
		case KindValue:
			return s.insertValue(tr)
		case KindEnd:
			_, err := s.db.Exec(
				`INSERT INTO run_events (run_id, view, kind, detail) VALUES (?, ?, ?, ?)`,
				s.runID, s.view, tr.Kind.String(), "",
			)
			return err
		default:
			return fmt.Errorf("observation: unknown trame kind %v", tr.Kind)
		}
	})
}

func (s *SQLiteSink) insertValue(tr Trame) error {
	tx, err := s.db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback() //nolint:errcheck

	stmt, err := tx.Prepare(
		`INSERT INTO samples (run_id, view, time, parent, model, port, value_str)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
	)
	if err != nil {
		return err
	}
	defer stmt.Close()

	for _, sample := range tr.Samples {
		if _, err := stmt.Exec(
			s.runID, s.view, float64(tr.Time),
			sample.Parent, sample.Simulator, sample.Port,
			sample.Value.String(),
		); err != nil {
			return err
		}
	}
	return tx.Commit()
}

// Flush checkpoints the WAL; SQLite writes are committed per-statement
// already so this is mostly a hand-off point for atexit.
func (s *SQLiteSink) Flush() error {
	_, err := s.db.Exec(`PRAGMA wal_checkpoint(TRUNCATE)`)
	return err
}

// Close closes the underlying database handle.
func (s *SQLiteSink) Close() error { return s.db.Close() }

func retryOnContention(fn func() error) error {
	const maxRetries = 3
	baseDelay := 50 * time.Millisecond
	maxDelay := 500 * time.Millisecond

	var err error
	delay := baseDelay
	for attempt := 0; attempt <= maxRetries; attempt++ {
		if err = fn(); err == nil || !isTransientSQLiteErr(err) {
			return err
		}
		time.Sleep(delay)
		delay *= 2
		if delay > maxDelay {
			delay = maxDelay
		}
	}
	return err
}

func isTransientSQLiteErr(err error) bool {
	if err == nil {
		return false
	}
	msg := err.Error()
	for _, pattern := range []string{
		"SQLITE_BUSY",
		"SQLITE_LOCKED",
		"IOERR_SHORT_READ",
		"database is locked",
		"database table is locked",
		"(5)",
		"(6)",
		"(522)",
	} {
		if strings.Contains(msg, pattern) {
			return true
		}
	}
	return false
}
