package monitor

import (
	"github.com/riyadrajan/updatedversion/internal/analyzer"
)

// #region config

// Config holds the debounce and timing parameters for the per-frame
// pipeline. Frame-count hysteresis inside the components is parameterized by
// the assumed FPS; the wall-clock debounce here uses caller timestamps.
type Config struct {
	FPS                 float64 // assumed frame delivery rate
	SustainSeconds      float64 // distraction must persist this long before an edge
	FaceDebounceSeconds float64 // sustained absence/presence before face edges
}

// DefaultConfig returns the stock debounce parameters.
func DefaultConfig() Config {
	return Config{
		FPS:                 30,
		SustainSeconds:      5.0,
		FaceDebounceSeconds: 2.5,
	}
}

// #endregion config

// #region events

// EventType enumerates the debounced edges the monitor raises for external
// actuators (a light, the session log).
type EventType string

const (
	EventDistractionStart EventType = "distraction_start"
	EventDistractionEnd   EventType = "distraction_end"
	EventFaceLost         EventType = "face_lost"
	EventFaceRecovered    EventType = "face_recovered"
)

// Event is one debounced edge with the reason it fired.
type Event struct {
	Type   EventType
	At     float64 // caller timestamp, seconds
	Reason string
}

// #endregion events

// #region frame-result

// FrameResult is everything the pipeline derived from one frame.
type FrameResult struct {
	Activity   analyzer.ActivityType
	Distracted bool
	Severity   float64
	FocusScore float64 // 0-100
	Anomalous  bool
	Engagement float64 // 0-1
	Events     []Event // debounced edges raised this frame, usually empty
}

// #endregion frame-result
