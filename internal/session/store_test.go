package session

import (
	"path/filepath"
	"testing"
	"time"
)

// #region helpers
func setupStore(t *testing.T) *Store {
	t.Helper()
	store, err := NewStore(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

// #endregion helpers

// #region lifecycle-tests
func TestStartSession(t *testing.T) {
	store := setupStore(t)

	id, err := store.StartSession("u1", "dana")
	if err != nil {
		t.Fatalf("start: %v", err)
	}
	if id == "" {
		t.Fatal("expected non-empty session id")
	}

	rec, err := store.GetSession(id)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if rec.Status != StatusActive {
		t.Errorf("expected active, got %s", rec.Status)
	}
	if rec.UserID != "u1" || rec.Username != "dana" {
		t.Errorf("unexpected identity: %q %q", rec.UserID, rec.Username)
	}
	if rec.DistractedTotalMs != 0 || rec.IntervalCount != 0 {
		t.Errorf("expected zero aggregates, got %d ms / %d intervals",
			rec.DistractedTotalMs, rec.IntervalCount)
	}
}

func TestGetSession_NotFound(t *testing.T) {
	store := setupStore(t)
	if _, err := store.GetSession("nope"); err == nil {
		t.Fatal("expected error for unknown session")
	}
}

func TestMarkDistracted_Idempotent(t *testing.T) {
	store := setupStore(t)
	id, _ := store.StartSession("", "")

	t0 := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)
	if err := store.MarkDistracted(id, t0); err != nil {
		t.Fatalf("mark distracted: %v", err)
	}

	// Second mark while the interval is open must not move the start.
	if err := store.MarkDistracted(id, t0.Add(10*time.Second)); err != nil {
		t.Fatalf("second mark: %v", err)
	}

	rec, _ := store.GetSession(id)
	if !rec.CurrentIntervalStart.Equal(t0) {
		t.Errorf("expected interval start %v, got %v", t0, rec.CurrentIntervalStart)
	}
}

func TestMarkFocused_ClosesInterval(t *testing.T) {
	store := setupStore(t)
	id, _ := store.StartSession("", "")

	t0 := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)
	store.MarkDistracted(id, t0)

	durationMs, err := store.MarkFocused(id, t0.Add(3*time.Second))
	if err != nil {
		t.Fatalf("mark focused: %v", err)
	}
	if durationMs != 3000 {
		t.Errorf("expected 3000ms, got %d", durationMs)
	}

	rec, _ := store.GetSession(id)
	if rec.DistractedTotalMs != 3000 {
		t.Errorf("expected total 3000ms, got %d", rec.DistractedTotalMs)
	}
	if rec.IntervalCount != 1 {
		t.Errorf("expected 1 interval, got %d", rec.IntervalCount)
	}
	if !rec.CurrentIntervalStart.IsZero() {
		t.Error("expected interval start cleared")
	}

	var idx int
	var source string
	store.DB().QueryRow("SELECT idx, source FROM distracted_intervals WHERE session_id = ?", id).
		Scan(&idx, &source)
	if idx != 1 {
		t.Errorf("expected 1-based idx 1, got %d", idx)
	}
	if source != "state-detector" {
		t.Errorf("expected source state-detector, got %q", source)
	}
}

func TestMarkFocused_NoOpenInterval(t *testing.T) {
	store := setupStore(t)
	id, _ := store.StartSession("", "")

	durationMs, err := store.MarkFocused(id, time.Now())
	if err != nil {
		t.Fatalf("mark focused: %v", err)
	}
	if durationMs != 0 {
		t.Errorf("expected 0ms for no open interval, got %d", durationMs)
	}

	rec, _ := store.GetSession(id)
	if rec.IntervalCount != 0 {
		t.Errorf("expected no intervals, got %d", rec.IntervalCount)
	}
}

func TestStopSession_FocusScore(t *testing.T) {
	store := setupStore(t)
	id, _ := store.StartSession("", "")

	rec, _ := store.GetSession(id)
	start := rec.StartedAt

	// One 2s distraction in a 10s session -> score 80.
	store.MarkDistracted(id, start.Add(4*time.Second))
	store.MarkFocused(id, start.Add(6*time.Second))

	elapsedMs, focusScore, err := store.StopSession(id, start.Add(10*time.Second))
	if err != nil {
		t.Fatalf("stop: %v", err)
	}
	if elapsedMs != 10000 {
		t.Errorf("expected 10000ms elapsed, got %d", elapsedMs)
	}
	if focusScore < 79.9 || focusScore > 80.1 {
		t.Errorf("expected focus score ~80, got %v", focusScore)
	}

	final, _ := store.GetSession(id)
	if final.Status != StatusCompleted {
		t.Errorf("expected completed, got %s", final.Status)
	}
}

func TestStopSession_ClosesOpenInterval(t *testing.T) {
	store := setupStore(t)
	id, _ := store.StartSession("", "")

	rec, _ := store.GetSession(id)
	start := rec.StartedAt

	store.MarkDistracted(id, start.Add(2*time.Second))
	_, focusScore, err := store.StopSession(id, start.Add(10*time.Second))
	if err != nil {
		t.Fatalf("stop: %v", err)
	}

	final, _ := store.GetSession(id)
	if final.IntervalCount != 1 {
		t.Errorf("expected the open interval closed on stop, got %d intervals", final.IntervalCount)
	}
	// 8s distracted of 10s -> score 20.
	if focusScore < 19.9 || focusScore > 20.1 {
		t.Errorf("expected focus score ~20, got %v", focusScore)
	}
}

func TestMarkDistracted_CompletedSessionIgnored(t *testing.T) {
	store := setupStore(t)
	id, _ := store.StartSession("", "")
	store.StopSession(id, time.Now().UTC())

	if err := store.MarkDistracted(id, time.Now().UTC()); err != nil {
		t.Fatalf("mark distracted: %v", err)
	}
	rec, _ := store.GetSession(id)
	if !rec.CurrentIntervalStart.IsZero() {
		t.Error("completed session must not open intervals")
	}
}

// #endregion lifecycle-tests

// #region list-tests
func TestListSessions(t *testing.T) {
	store := setupStore(t)

	var ids []string
	for i := 0; i < 3; i++ {
		id, err := store.StartSession("", "")
		if err != nil {
			t.Fatalf("start %d: %v", i, err)
		}
		ids = append(ids, id)
		time.Sleep(2 * time.Millisecond) // distinct started_at ordering
	}

	records, err := store.ListSessions(2)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(records) != 2 {
		t.Fatalf("expected 2 records, got %d", len(records))
	}
	if records[0].SessionID != ids[2] {
		t.Errorf("expected newest first, got %s", records[0].SessionID)
	}
}

// #endregion list-tests
