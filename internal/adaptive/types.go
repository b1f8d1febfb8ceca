package adaptive

// #region thresholds

// Thresholds are the per-user detection thresholds the scorer publishes.
// Angle thresholds bound an absolute-value comparison and are non-negative.
type Thresholds struct {
	EAR   float64 `json:"ear_thresh"`
	Gaze  float64 `json:"gaze_thresh"`
	Roll  float64 `json:"roll_thresh"`
	Pitch float64 `json:"pitch_thresh"`
	Yaw   float64 `json:"yaw_thresh"`
}

// DefaultThresholds returns the uncalibrated defaults.
func DefaultThresholds() Thresholds {
	return Thresholds{
		EAR:   0.15,
		Gaze:  0.2,
		Roll:  60,
		Pitch: 20,
		Yaw:   30,
	}
}

// #endregion thresholds

// #region config

// Config holds the empirically chosen calibration and anomaly parameters.
// They are per-instance so tests and tuning can override them.
type Config struct {
	// Calibration derivation. EAR uses a stricter-than-typical floor; gaze
	// allows normal scanning variance; roll gets the widest tolerance since
	// it varies most with incidental posture.
	EARPercentile     float64
	EARScale          float64
	GazePercentile    float64
	GazeScale         float64
	PitchStdMultiple  float64
	YawStdMultiple    float64
	RollStdMultiple   float64

	// Anomaly detection. A live subject shows biological micro-fluctuations;
	// any channel below its variance floor triggers suspicion.
	AnomalyHistorySize int
	AnomalyWindow      int
	MinEARVariance     float64
	MinGazeVariance    float64
	MinPitchVariance   float64
}

// DefaultConfig returns the stock calibration and anomaly parameters.
func DefaultConfig() Config {
	return Config{
		EARPercentile:      25,
		EARScale:           0.9,
		GazePercentile:     75,
		GazeScale:          1.2,
		PitchStdMultiple:   1.5,
		YawStdMultiple:     1.5,
		RollStdMultiple:    2.0,
		AnomalyHistorySize: 100,
		AnomalyWindow:      30,
		MinEARVariance:     0.0001,
		MinGazeVariance:    0.001,
		MinPitchVariance:   0.5,
	}
}

// #endregion config
