package logging

import (
	"database/sql"
	"fmt"
	"time"
)

// #region log-detection

// LogDetection writes a detection entry to the detection_log table.
func LogDetection(db *sql.DB, entry DetectionEntry) error {
	if entry.CreatedAt.IsZero() {
		entry.CreatedAt = time.Now().UTC()
	}

	_, err := db.Exec(
		`INSERT INTO detection_log (session_id, activity, distracted, severity, focus_score, objects_json, reason, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		nullIfEmpty(entry.SessionID),
		entry.Activity,
		boolToInt(entry.Distracted),
		entry.Severity,
		entry.FocusScore,
		nullIfEmpty(entry.ObjectsJSON),
		nullIfEmpty(entry.Reason),
		entry.CreatedAt.Format(time.RFC3339Nano),
	)
	if err != nil {
		return fmt.Errorf("log detection: %w", err)
	}
	return nil
}

// #endregion log-detection

// #region list-recent

// ListRecent returns the newest detection entries, most recent first.
func ListRecent(db *sql.DB, limit int) ([]DetectionEntry, error) {
	rows, err := db.Query(
		`SELECT session_id, activity, distracted, severity, focus_score, objects_json, reason, created_at
		 FROM detection_log ORDER BY id DESC LIMIT ?`, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("list detections: %w", err)
	}
	defer rows.Close()

	var entries []DetectionEntry
	for rows.Next() {
		var e DetectionEntry
		var sessionID, objectsJSON, reason sql.NullString
		var distracted int
		var createdAtStr string
		if err := rows.Scan(&sessionID, &e.Activity, &distracted, &e.Severity,
			&e.FocusScore, &objectsJSON, &reason, &createdAtStr); err != nil {
			return nil, fmt.Errorf("scan detection: %w", err)
		}
		e.SessionID = sessionID.String
		e.Distracted = distracted != 0
		e.ObjectsJSON = objectsJSON.String
		e.Reason = reason.String
		e.CreatedAt, _ = time.Parse(time.RFC3339Nano, createdAtStr)
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return entries, nil
}

// #endregion list-recent

// #region helpers

func nullIfEmpty(s string) interface{} {
	if s == "" {
		return nil
	}
	return s
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}

// #endregion helpers
