package pattern

// #region config

// Config holds the window geometry and detection thresholds for temporal
// pattern recognition.
type Config struct {
	WindowSize int // frames per sliding window (~2s at 30fps)

	ReadingMinSamples   int     // gaze samples required before reading check
	ReadingMinCrossings int     // oscillation band for line scanning
	ReadingMaxCrossings int
	ReadingPitchStdMax  float64 // head must be steady while eyes scan

	ThinkingMinSamples int     // gaze samples required before thinking check
	ThinkingAwayMean   float64 // first-half mean above this = looked away
	ThinkingReturnMean float64 // second-half mean below this = returned

	PhoneMinSamples int     // pitch samples required before phone check
	PhoneMeanPitch  float64 // sustained angle steeper than this
	PhonePitchStd   float64 // held nearly motionless

	BlinkMinSamples   int     // ear samples required before blink check
	BlinkEARThreshold float64 // falling-edge crossing counts one blink
	BlinkMaxNatural   int     // more blinks than this in a window = unnatural

	MicroMinSamples  int     // pitch samples required before movement check
	MicroMinVariance float64 // below this the head is suspiciously still
}

// DefaultConfig returns the stock pattern thresholds.
func DefaultConfig() Config {
	return Config{
		WindowSize:          60,
		ReadingMinSamples:   20,
		ReadingMinCrossings: 3,
		ReadingMaxCrossings: 8,
		ReadingPitchStdMax:  5.0,
		ThinkingMinSamples:  30,
		ThinkingAwayMean:    0.25,
		ThinkingReturnMean:  0.2,
		PhoneMinSamples:     30,
		PhoneMeanPitch:      -60,
		PhonePitchStd:       3.0,
		BlinkMinSamples:     60,
		BlinkEARThreshold:   0.15,
		BlinkMaxNatural:     3,
		MicroMinSamples:     30,
		MicroMinVariance:    0.5,
	}
}

// #endregion config

// #region summary

// Summary is an immutable snapshot of every detected pattern.
type Summary struct {
	Reading         bool    `json:"reading"`
	Thinking        bool    `json:"thinking"`
	Phone           bool    `json:"phone"`
	NaturalBlinks   bool    `json:"natural_blinks"`
	BlinkCount      int     `json:"blink_count"`
	MicroMovements  bool    `json:"micro_movements"`
	EngagementScore float64 `json:"engagement_score"`
}

// #endregion summary
