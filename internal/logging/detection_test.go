package logging

import (
	"database/sql"
	"testing"
	"time"

	_ "modernc.org/sqlite"
)

// #region helpers
func setupDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := sql.Open("sqlite", ":memory:")
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	_, err = db.Exec(`CREATE TABLE detection_log (
		id          INTEGER PRIMARY KEY AUTOINCREMENT,
		session_id  TEXT,
		activity    TEXT NOT NULL,
		distracted  INTEGER NOT NULL,
		severity    REAL NOT NULL,
		focus_score REAL NOT NULL,
		objects_json TEXT,
		reason      TEXT,
		created_at  TEXT NOT NULL
	)`)
	if err != nil {
		t.Fatalf("create table: %v", err)
	}
	return db
}

// #endregion helpers

// #region log-detection-tests
func TestLogDetection_Success(t *testing.T) {
	db := setupDB(t)
	defer db.Close()

	entry := DetectionEntry{
		SessionID:   "s1",
		Activity:    "phone_distraction",
		Distracted:  true,
		Severity:    0.9,
		FocusScore:  5.5,
		ObjectsJSON: `{"cell phone":true}`,
		Reason:      "phone visible",
		CreatedAt:   time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC),
	}

	err := LogDetection(db, entry)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	var count int
	db.QueryRow("SELECT COUNT(*) FROM detection_log").Scan(&count)
	if count != 1 {
		t.Errorf("expected 1 row, got %d", count)
	}

	var activity string
	var distracted int
	db.QueryRow("SELECT activity, distracted FROM detection_log").Scan(&activity, &distracted)
	if activity != "phone_distraction" {
		t.Errorf("expected activity 'phone_distraction', got %q", activity)
	}
	if distracted != 1 {
		t.Errorf("expected distracted 1, got %d", distracted)
	}
}

func TestLogDetection_ZeroCreatedAt(t *testing.T) {
	db := setupDB(t)
	defer db.Close()

	entry := DetectionEntry{
		Activity:   "focused_studying",
		FocusScore: 100,
	}

	before := time.Now().UTC()
	err := LogDetection(db, entry)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	var createdAtStr string
	db.QueryRow("SELECT created_at FROM detection_log").Scan(&createdAtStr)
	createdAt, err := time.Parse(time.RFC3339Nano, createdAtStr)
	if err != nil {
		t.Fatalf("parse created_at: %v", err)
	}
	if createdAt.Before(before) {
		t.Error("expected auto-filled created_at to be >= test start time")
	}
}

func TestLogDetection_EmptyOptionalFields(t *testing.T) {
	db := setupDB(t)
	defer db.Close()

	entry := DetectionEntry{
		Activity:   "reading_book",
		FocusScore: 95,
	}

	if err := LogDetection(db, entry); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	var sessionID, objectsJSON, reason sql.NullString
	db.QueryRow("SELECT session_id, objects_json, reason FROM detection_log").
		Scan(&sessionID, &objectsJSON, &reason)
	if sessionID.Valid || objectsJSON.Valid || reason.Valid {
		t.Error("expected empty optional fields to be NULL")
	}
}

// #endregion log-detection-tests

// #region list-recent-tests
func TestListRecent_Ordering(t *testing.T) {
	db := setupDB(t)
	defer db.Close()

	for _, act := range []string{"typing", "thinking", "looking_away"} {
		if err := LogDetection(db, DetectionEntry{Activity: act, FocusScore: 50}); err != nil {
			t.Fatalf("log: %v", err)
		}
	}

	entries, err := ListRecent(db, 2)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(entries) != 2 {
		t.Fatalf("expected 2 entries, got %d", len(entries))
	}
	if entries[0].Activity != "looking_away" {
		t.Errorf("expected newest first, got %q", entries[0].Activity)
	}
	if entries[1].Activity != "thinking" {
		t.Errorf("expected second newest, got %q", entries[1].Activity)
	}
}

// #endregion list-recent-tests
