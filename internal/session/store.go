package session

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"
)

// #region schema
const schema = `
CREATE TABLE IF NOT EXISTS sessions (
	session_id             TEXT PRIMARY KEY,
	user_id                TEXT,
	username               TEXT,
	started_at             TEXT NOT NULL,
	stopped_at             TEXT,
	elapsed_ms             INTEGER,
	distracted_total_ms    INTEGER NOT NULL DEFAULT 0,
	interval_count         INTEGER NOT NULL DEFAULT 0,
	focus_score            REAL,
	status                 TEXT NOT NULL,
	current_interval_start TEXT,
	last_updated           TEXT NOT NULL
);

CREATE TABLE IF NOT EXISTS distracted_intervals (
	id          INTEGER PRIMARY KEY AUTOINCREMENT,
	session_id  TEXT NOT NULL,
	start_at    TEXT NOT NULL,
	end_at      TEXT NOT NULL,
	duration_ms INTEGER NOT NULL,
	idx         INTEGER NOT NULL,
	source      TEXT NOT NULL,
	created_at  TEXT NOT NULL,
	FOREIGN KEY (session_id) REFERENCES sessions(session_id)
);

CREATE TABLE IF NOT EXISTS detection_log (
	id          INTEGER PRIMARY KEY AUTOINCREMENT,
	session_id  TEXT,
	activity    TEXT NOT NULL,
	distracted  INTEGER NOT NULL,
	severity    REAL NOT NULL,
	focus_score REAL NOT NULL,
	objects_json TEXT,
	reason      TEXT,
	created_at  TEXT NOT NULL
);
`

// #endregion schema

// #region store-struct

// Store manages study sessions and their distracted intervals in SQLite.
type Store struct {
	db *sql.DB
}

// #endregion store-struct

// #region constructor

// NewStore opens a SQLite database and runs migrations.
func NewStore(dbPath string) (*Store, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open db: %w", err)
	}
	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		return nil, fmt.Errorf("pragma: %w", err)
	}
	if _, err := db.Exec("PRAGMA foreign_keys=ON"); err != nil {
		return nil, fmt.Errorf("pragma fk: %w", err)
	}
	if _, err := db.Exec(schema); err != nil {
		return nil, fmt.Errorf("migrate: %w", err)
	}
	return &Store{db: db}, nil
}

// Close closes the underlying database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// DB returns the underlying *sql.DB for use by other packages (e.g. logging).
func (s *Store) DB() *sql.DB {
	return s.db
}

// #endregion constructor

// #region start-session

// StartSession creates a new active session and returns its id.
func (s *Store) StartSession(userID, username string) (string, error) {
	id := uuid.New().String()
	now := time.Now().UTC()

	_, err := s.db.Exec(
		`INSERT INTO sessions (session_id, user_id, username, started_at, status, last_updated)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		id, nullIfEmpty(userID), nullIfEmpty(username),
		now.Format(time.RFC3339Nano), string(StatusActive), now.Format(time.RFC3339Nano),
	)
	if err != nil {
		return "", fmt.Errorf("insert session: %w", err)
	}
	return id, nil
}

// #endregion start-session

// #region get-session

// GetSession retrieves a session by id.
func (s *Store) GetSession(id string) (Record, error) {
	var rec Record
	var userID, username, stoppedStr, intervalStartStr sql.NullString
	var elapsedMs sql.NullInt64
	var focusScore sql.NullFloat64
	var startedStr, lastUpdated, status string

	err := s.db.QueryRow(
		`SELECT session_id, user_id, username, started_at, stopped_at, elapsed_ms,
		        distracted_total_ms, interval_count, focus_score, status,
		        current_interval_start, last_updated
		 FROM sessions WHERE session_id = ?`, id,
	).Scan(&rec.SessionID, &userID, &username, &startedStr, &stoppedStr, &elapsedMs,
		&rec.DistractedTotalMs, &rec.IntervalCount, &focusScore, &status,
		&intervalStartStr, &lastUpdated)
	if err != nil {
		return Record{}, fmt.Errorf("get session %s: %w", id, err)
	}

	rec.UserID = userID.String
	rec.Username = username.String
	rec.StartedAt, _ = time.Parse(time.RFC3339Nano, startedStr)
	if stoppedStr.Valid {
		rec.StoppedAt, _ = time.Parse(time.RFC3339Nano, stoppedStr.String)
	}
	if elapsedMs.Valid {
		rec.ElapsedMs = elapsedMs.Int64
	}
	if focusScore.Valid {
		rec.FocusScore = focusScore.Float64
	}
	rec.Status = Status(status)
	if intervalStartStr.Valid {
		rec.CurrentIntervalStart, _ = time.Parse(time.RFC3339Nano, intervalStartStr.String)
	}
	return rec, nil
}

// #endregion get-session

// #region mark-distracted

// MarkDistracted records the start of a distracted interval (false -> true
// edge). A no-op when an interval is already open or the session completed.
func (s *Store) MarkDistracted(id string, at time.Time) error {
	rec, err := s.GetSession(id)
	if err != nil {
		return err
	}
	if rec.Status == StatusCompleted || !rec.CurrentIntervalStart.IsZero() {
		return nil
	}
	_, err = s.db.Exec(
		`UPDATE sessions SET current_interval_start = ?, last_updated = ? WHERE session_id = ?`,
		at.UTC().Format(time.RFC3339Nano), time.Now().UTC().Format(time.RFC3339Nano), id,
	)
	if err != nil {
		return fmt.Errorf("mark distracted: %w", err)
	}
	return nil
}

// #endregion mark-distracted

// #region mark-focused

// MarkFocused records the end of a distracted interval (true -> false edge):
// closes the open interval, writes the interval row, and updates aggregates.
// Returns the closed interval duration in ms, or 0 when nothing was open.
func (s *Store) MarkFocused(id string, at time.Time) (int64, error) {
	rec, err := s.GetSession(id)
	if err != nil {
		return 0, err
	}
	if rec.Status == StatusCompleted || rec.CurrentIntervalStart.IsZero() {
		return 0, nil
	}

	durationMs := at.UTC().Sub(rec.CurrentIntervalStart).Milliseconds()
	if durationMs < 0 {
		durationMs = 0
	}
	idx := rec.IntervalCount + 1
	now := time.Now().UTC()

	tx, err := s.db.Begin()
	if err != nil {
		return 0, fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.Exec(
		`INSERT INTO distracted_intervals (session_id, start_at, end_at, duration_ms, idx, source, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		id, rec.CurrentIntervalStart.Format(time.RFC3339Nano), at.UTC().Format(time.RFC3339Nano),
		durationMs, idx, "state-detector", now.Format(time.RFC3339Nano),
	)
	if err != nil {
		return 0, fmt.Errorf("insert interval: %w", err)
	}

	_, err = tx.Exec(
		`UPDATE sessions
		 SET distracted_total_ms = distracted_total_ms + ?,
		     interval_count = interval_count + 1,
		     current_interval_start = NULL,
		     last_updated = ?
		 WHERE session_id = ?`,
		durationMs, now.Format(time.RFC3339Nano), id,
	)
	if err != nil {
		return 0, fmt.Errorf("update aggregates: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("commit: %w", err)
	}
	return durationMs, nil
}

// #endregion mark-focused

// #region stop-session

// StopSession finalizes a session: closes any open interval, computes the
// elapsed time and focus score, and marks it completed.
func (s *Store) StopSession(id string, at time.Time) (int64, float64, error) {
	if _, err := s.MarkFocused(id, at); err != nil {
		return 0, 0, err
	}

	rec, err := s.GetSession(id)
	if err != nil {
		return 0, 0, err
	}

	var elapsedMs int64
	if !rec.StartedAt.IsZero() {
		elapsedMs = at.UTC().Sub(rec.StartedAt).Milliseconds()
	}

	focusScore := 0.0
	if elapsedMs > 0 {
		focusScore = (1 - float64(rec.DistractedTotalMs)/float64(elapsedMs)) * 100
	}

	_, err = s.db.Exec(
		`UPDATE sessions
		 SET stopped_at = ?, elapsed_ms = ?, focus_score = ?, status = ?, last_updated = ?
		 WHERE session_id = ?`,
		at.UTC().Format(time.RFC3339Nano), elapsedMs, focusScore,
		string(StatusCompleted), time.Now().UTC().Format(time.RFC3339Nano), id,
	)
	if err != nil {
		return 0, 0, fmt.Errorf("stop session: %w", err)
	}
	return elapsedMs, focusScore, nil
}

// #endregion stop-session

// #region list-sessions

// ListSessions returns the most recently started sessions.
func (s *Store) ListSessions(limit int) ([]Record, error) {
	rows, err := s.db.Query(
		`SELECT session_id FROM sessions ORDER BY started_at DESC LIMIT ?`, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("list sessions: %w", err)
	}
	defer rows.Close()

	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("scan row: %w", err)
		}
		ids = append(ids, id)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	records := make([]Record, 0, len(ids))
	for _, id := range ids {
		rec, err := s.GetSession(id)
		if err != nil {
			return nil, err
		}
		records = append(records, rec)
	}
	return records, nil
}

// #endregion list-sessions

// #region helpers

func nullIfEmpty(s string) interface{} {
	if s == "" {
		return nil
	}
	return s
}

// #endregion helpers
