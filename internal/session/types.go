package session

import "time"

// #region status

// Status is the lifecycle state of a session.
type Status string

const (
	StatusActive    Status = "active"
	StatusCompleted Status = "completed"
)

// #endregion status

// #region records

// Record is one study session row with its running aggregates. FocusScore is
// computed when the session stops: (1 - distractedTotal/elapsed) * 100.
type Record struct {
	SessionID         string
	UserID            string
	Username          string
	StartedAt         time.Time
	StoppedAt         time.Time // zero until stopped
	ElapsedMs         int64
	DistractedTotalMs int64
	IntervalCount     int
	FocusScore        float64
	Status            Status

	// Open distracted interval, if any (zero when none).
	CurrentIntervalStart time.Time
}

// Interval is one closed distracted interval within a session.
type Interval struct {
	SessionID  string
	StartAt    time.Time
	EndAt      time.Time
	DurationMs int64
	Idx        int // 1-based per session
	Source     string
	CreatedAt  time.Time
}

// #endregion records
