package signal

// #region object-labels

// Object labels the detector collaborator reports. The presence booleans in
// Sample.Objects are already majority-filtered upstream.
const (
	ObjectBook   = "book"
	ObjectPhone  = "cell phone"
	ObjectLaptop = "laptop"
	ObjectBottle = "bottle"
	ObjectCup    = "cup"
)

// #endregion object-labels

// #region sample

// Sample is one frame's signal vector. Metric fields are nil when the
// extractor could not compute them for that frame; that is a normal
// condition, not an error.
type Sample struct {
	EAR          *float64        `json:"ear"`
	Gaze         *float64        `json:"gaze"`
	Pitch        *float64        `json:"pitch"`
	Yaw          *float64        `json:"yaw"`
	Roll         *float64        `json:"roll"`
	FaceDetected bool            `json:"face_detected"`
	Objects      map[string]bool `json:"objects"`
}

// Has reports whether the given object label is present this frame.
func (s Sample) Has(label string) bool {
	return s.Objects[label]
}

// #endregion sample

// #region float-helpers

// Ptr returns a pointer to v. Convenience for building samples.
func Ptr(v float64) *float64 {
	return &v
}

// #endregion float-helpers
