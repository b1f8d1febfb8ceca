package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/riyadrajan/updatedversion/internal/logging"
	"github.com/riyadrajan/updatedversion/internal/session"
)

// #region main

func main() {
	dbPath := flag.String("db", "", "path to study_monitor.db")
	last := flag.Int("last", 20, "show N most recent sessions")
	detections := flag.Int("detections", 0, "also show N most recent detection log entries")
	jsonOut := flag.Bool("json", false, "output as JSON instead of table")
	flag.Parse()

	if *dbPath == "" {
		fmt.Fprintln(os.Stderr, "usage: inspect --db path/to/study_monitor.db [--last N] [--detections N] [--json]")
		os.Exit(2)
	}

	store, err := session.NewStore(*dbPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "open db: %v\n", err)
		os.Exit(1)
	}
	defer store.Close()

	if err := runListMode(store, *last, *jsonOut); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
	if *detections > 0 {
		if err := runDetectionMode(store, *detections, *jsonOut); err != nil {
			fmt.Fprintf(os.Stderr, "error: %v\n", err)
			os.Exit(1)
		}
	}
}

// #endregion main

// #region list-mode

type sessionRow struct {
	SessionID         string  `json:"session_id"`
	Username          string  `json:"username,omitempty"`
	StartedAt         string  `json:"started_at"`
	Status            string  `json:"status"`
	ElapsedMs         int64   `json:"elapsed_ms"`
	DistractedTotalMs int64   `json:"distracted_total_ms"`
	IntervalCount     int     `json:"interval_count"`
	FocusScore        float64 `json:"focus_score"`
}

func runListMode(store *session.Store, last int, jsonOut bool) error {
	records, err := store.ListSessions(last)
	if err != nil {
		return err
	}
	if len(records) == 0 {
		fmt.Fprintln(os.Stderr, "no sessions found")
		return nil
	}

	rows := make([]sessionRow, len(records))
	for i, rec := range records {
		rows[i] = sessionRow{
			SessionID:         rec.SessionID,
			Username:          rec.Username,
			StartedAt:         rec.StartedAt.Format(time.RFC3339),
			Status:            string(rec.Status),
			ElapsedMs:         rec.ElapsedMs,
			DistractedTotalMs: rec.DistractedTotalMs,
			IntervalCount:     rec.IntervalCount,
			FocusScore:        rec.FocusScore,
		}
	}

	if jsonOut {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(rows)
	}

	fmt.Printf("%-36s  %-10s  %-20s  %-9s  %9s  %9s  %5s  %6s\n",
		"SESSION", "USER", "STARTED", "STATUS", "ELAPSED", "DISTRACT", "INTVL", "SCORE")
	for _, r := range rows {
		fmt.Printf("%-36s  %-10s  %-20s  %-9s  %8.1fs  %8.1fs  %5d  %6.1f\n",
			r.SessionID, r.Username, r.StartedAt, r.Status,
			float64(r.ElapsedMs)/1000, float64(r.DistractedTotalMs)/1000,
			r.IntervalCount, r.FocusScore)
	}
	return nil
}

// #endregion list-mode

// #region detection-mode

func runDetectionMode(store *session.Store, n int, jsonOut bool) error {
	entries, err := logging.ListRecent(store.DB(), n)
	if err != nil {
		return err
	}
	if len(entries) == 0 {
		fmt.Fprintln(os.Stderr, "no detections found")
		return nil
	}

	if jsonOut {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(entries)
	}

	fmt.Printf("\n%-20s  %-18s  %-10s  %8s  %6s  %s\n",
		"TIME", "ACTIVITY", "DISTRACTED", "SEVERITY", "FOCUS", "OBJECTS")
	for _, e := range entries {
		fmt.Printf("%-20s  %-18s  %-10v  %8.1f  %6.1f  %s\n",
			e.CreatedAt.Format(time.RFC3339), e.Activity, e.Distracted,
			e.Severity, e.FocusScore, e.ObjectsJSON)
	}
	return nil
}

// #endregion detection-mode
