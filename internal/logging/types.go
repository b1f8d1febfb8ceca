package logging

import "time"

// #region detection-entry

// DetectionEntry is a single row in the detection_log table.
type DetectionEntry struct {
	SessionID  string
	Activity   string
	Distracted bool
	Severity   float64
	FocusScore float64

	// Pre-filtered object labels present in the frame, serialized as JSON.
	ObjectsJSON string

	Reason    string
	CreatedAt time.Time
}

// #endregion detection-entry

// #region frame-record

// FrameRecord captures the full per-frame detection output for replay.
// Serialized as JSON into replay fixtures.
type FrameRecord struct {
	Timestamp float64 `json:"t"`

	// Exact signal values as observed at runtime
	EAR          *float64        `json:"ear,omitempty"`
	Gaze         *float64        `json:"gaze,omitempty"`
	Pitch        *float64        `json:"pitch,omitempty"`
	Yaw          *float64        `json:"yaw,omitempty"`
	Roll         *float64        `json:"roll,omitempty"`
	FaceDetected bool            `json:"face_detected"`
	Objects      map[string]bool `json:"objects,omitempty"`

	// Detection output
	Activity   string  `json:"activity"`
	Distracted bool    `json:"distracted"`
	Severity   float64 `json:"severity"`
	FocusScore float64 `json:"focus_score"`
	Engagement float64 `json:"engagement"`
	Anomalous  bool    `json:"anomalous"`
}

// #endregion frame-record
