// Package session persists user feedback across runs. A session groups
// the feedback one user gives while refining their priorities; replaying
// it through a Learner lets later analyses start from the corrections
// the user already made.
package session

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	_ "github.com/mattn/go-sqlite3"
)

var ErrNotFound = errors.New("session: not found")

type Store struct {
	db   *sql.DB
	path string
}

type Session struct {
	ID        string `json:"id"`
	CreatedAt string `json:"created_at"` // RFC3339
}

type Feedback struct {
	SessionID string `json:"session_id"`
	Priority  string `json:"priority"` // normalized priority text
	TermID    string `json:"term_id"`
	Positive  bool   `json:"positive"`
	CreatedAt string `json:"created_at"` // RFC3339
}

// Open creates or opens a SQLite store at path with WAL mode, busy
// timeout of 5 seconds, and foreign keys enabled. It creates the
// sessions and feedback tables if they do not already exist.
func Open(path string) (*Store, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("session: open: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("session: ping: %w", err)
	}

	pragmas := []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA busy_timeout=5000",
		"PRAGMA foreign_keys=ON",
	}
	for _, p := range pragmas {
		if _, err := db.Exec(p); err != nil {
			db.Close()
			return nil, fmt.Errorf("session: %s: %w", p, err)
		}
	}

	tables := []string{
		`CREATE TABLE IF NOT EXISTS sessions (
			id         TEXT PRIMARY KEY,
			created_at TEXT NOT NULL
		)`,
		`CREATE TABLE IF NOT EXISTS feedback (
			session_id TEXT NOT NULL REFERENCES sessions(id),
			priority   TEXT NOT NULL,
			term_id    TEXT NOT NULL,
			positive   INTEGER NOT NULL,
			created_at TEXT NOT NULL
		)`,
		`CREATE INDEX IF NOT EXISTS idx_feedback_session ON feedback(session_id, created_at)`,
	}
	for _, ddl := range tables {
		if _, err := db.Exec(ddl); err != nil {
			db.Close()
			return nil, fmt.Errorf("session: create table: %w", err)
		}
	}

	return &Store{db: db, path: path}, nil
}

// Close closes the underlying database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// Path returns the store's file path.
func (s *Store) Path() string {
	return s.path
}

// NewSession creates a session with a fresh random id and returns it.
func (s *Store) NewSession() (Session, error) {
	sess := Session{
		ID:        uuid.NewString(),
		CreatedAt: time.Now().UTC().Format(time.RFC3339),
	}
	_, err := s.db.Exec(
		`INSERT INTO sessions (id, created_at) VALUES (?, ?)`,
		sess.ID, sess.CreatedAt,
	)
	if err != nil {
		return Session{}, fmt.Errorf("session: new session: %w", err)
	}
	return sess, nil
}

// GetSession retrieves a session by id. Returns ErrNotFound if the id
// does not exist.
func (s *Store) GetSession(id string) (Session, error) {
	var sess Session
	err := s.db.QueryRow(
		`SELECT id, created_at FROM sessions WHERE id = ?`, id,
	).Scan(&sess.ID, &sess.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Session{}, ErrNotFound
		}
		return Session{}, fmt.Errorf("session: get session: %w", err)
	}
	return sess, nil
}

// RecordFeedback appends one feedback event to a session. The session
// must exist; priority should already be normalized so that replays
// match regardless of punctuation or casing.
func (s *Store) RecordFeedback(sessionID, priority, termID string, positive bool) error {
	if _, err := s.GetSession(sessionID); err != nil {
		return err
	}
	now := time.Now().UTC().Format(time.RFC3339Nano)
	_, err := s.db.Exec(
		`INSERT INTO feedback (session_id, priority, term_id, positive, created_at) VALUES (?, ?, ?, ?, ?)`,
		sessionID, priority, termID, positive, now,
	)
	if err != nil {
		return fmt.Errorf("session: record feedback: %w", err)
	}
	return nil
}

// ListFeedback returns a session's feedback events oldest first.
func (s *Store) ListFeedback(sessionID string) ([]Feedback, error) {
	rows, err := s.db.Query(
		`SELECT session_id, priority, term_id, positive, created_at
		 FROM feedback WHERE session_id = ? ORDER BY created_at, rowid`,
		sessionID,
	)
	if err != nil {
		return nil, fmt.Errorf("session: list feedback: %w", err)
	}
	defer rows.Close()

	var events []Feedback
	for rows.Next() {
		var f Feedback
		if err := rows.Scan(&f.SessionID, &f.Priority, &f.TermID, &f.Positive, &f.CreatedAt); err != nil {
			return nil, fmt.Errorf("session: scan feedback: %w", err)
		}
		events = append(events, f)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("session: rows feedback: %w", err)
	}
	return events, nil
}

// LoadLearner replays a session's feedback into a Learner. Events are
// applied oldest first, so the most recent feedback for a priority wins.
func (s *Store) LoadLearner(sessionID string) (*Learner, error) {
	events, err := s.ListFeedback(sessionID)
	if err != nil {
		return nil, err
	}
	l := NewLearner()
	for _, f := range events {
		if f.Positive {
			l.Confirm(f.Priority, f.TermID)
		} else {
			l.Reject(f.Priority, f.TermID)
		}
	}
	return l, nil
}
