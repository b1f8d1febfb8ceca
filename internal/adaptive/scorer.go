package adaptive

import (
	"math"

	"github.com/riyadrajan/updatedversion/internal/log"
	"github.com/riyadrajan/updatedversion/internal/signal"
)

// #region scorer

// Scorer learns a user's baseline behavior during a calibration phase,
// derives personalized thresholds from it, and flags anomalous
// (suspiciously static) signal sequences. One instance per user.
type Scorer struct {
	userID      string
	profilePath string // empty disables persistence
	cfg         Config

	thresholds Thresholds
	calibrated bool

	// Baseline accumulators, populated only during calibration.
	earBaseline   []float64
	gazeBaseline  []float64
	pitchBaseline []float64
	yawBaseline   []float64
	rollBaseline  []float64

	// Rolling history for the liveness check.
	earHistory   *signal.Ring
	gazeHistory  *signal.Ring
	pitchHistory *signal.Ring
}

// NewScorer creates a scorer for userID. If profilePath is non-empty a
// previously saved profile is loaded from it; a missing or unreadable file,
// or a user mismatch, silently leaves defaults in place.
func NewScorer(userID, profilePath string, cfg Config) *Scorer {
	s := &Scorer{
		userID:       userID,
		profilePath:  profilePath,
		cfg:          cfg,
		thresholds:   DefaultThresholds(),
		earHistory:   signal.NewRing(cfg.AnomalyHistorySize),
		gazeHistory:  signal.NewRing(cfg.AnomalyHistorySize),
		pitchHistory: signal.NewRing(cfg.AnomalyHistorySize),
	}
	s.loadProfile()
	return s
}

func (s *Scorer) loadProfile() {
	if s.profilePath == "" {
		return
	}
	p, err := LoadProfile(s.profilePath)
	if err != nil {
		log.Debug("no calibration profile loaded, using defaults",
			"user", s.userID, "err", err)
		return
	}
	if p.UserID != s.userID {
		log.Warn("calibration profile user mismatch, using defaults",
			"user", s.userID, "profile_user", p.UserID)
		return
	}
	s.thresholds = p.Thresholds
	s.calibrated = p.Calibrated
	log.Info("calibration profile loaded", "user", s.userID, "calibrated", s.calibrated)
}

// Calibrated reports whether personalized thresholds are active.
func (s *Scorer) Calibrated() bool {
	return s.calibrated
}

// GetThresholds returns the current thresholds as a value snapshot.
func (s *Scorer) GetThresholds() Thresholds {
	return s.thresholds
}

// #endregion scorer

// #region calibration

// AddCalibrationSample appends each present value to its baseline
// accumulator. The calibration window is time-bounded by the caller; no
// upper bound is enforced here.
func (s *Scorer) AddCalibrationSample(ear, gaze, pitch, yaw, roll *float64) {
	if ear != nil {
		s.earBaseline = append(s.earBaseline, *ear)
	}
	if gaze != nil {
		s.gazeBaseline = append(s.gazeBaseline, *gaze)
	}
	if pitch != nil {
		s.pitchBaseline = append(s.pitchBaseline, *pitch)
	}
	if yaw != nil {
		s.yawBaseline = append(s.yawBaseline, *yaw)
	}
	if roll != nil {
		s.rollBaseline = append(s.rollBaseline, *roll)
	}
}

// FinalizeCalibration derives thresholds from the accumulated baselines.
// Fails (returning false and leaving the previous thresholds untouched)
// when fewer than minSamples EAR entries were collected. On success the
// profile is persisted and the raw baselines are discarded; a write failure
// is logged and non-fatal.
func (s *Scorer) FinalizeCalibration(minSamples int) bool {
	if len(s.earBaseline) < minSamples {
		log.Warn("insufficient calibration samples",
			"user", s.userID, "have", len(s.earBaseline), "need", minSamples)
		return false
	}

	if len(s.earBaseline) > 0 {
		s.thresholds.EAR = signal.Percentile(s.earBaseline, s.cfg.EARPercentile) * s.cfg.EARScale
	}
	if len(s.gazeBaseline) > 0 {
		s.thresholds.Gaze = signal.Percentile(s.gazeBaseline, s.cfg.GazePercentile) * s.cfg.GazeScale
	}
	if len(s.pitchBaseline) > 0 {
		s.thresholds.Pitch = math.Abs(signal.Mean(s.pitchBaseline)) + s.cfg.PitchStdMultiple*signal.Std(s.pitchBaseline)
	}
	if len(s.yawBaseline) > 0 {
		s.thresholds.Yaw = math.Abs(signal.Mean(s.yawBaseline)) + s.cfg.YawStdMultiple*signal.Std(s.yawBaseline)
	}
	if len(s.rollBaseline) > 0 {
		s.thresholds.Roll = math.Abs(signal.Mean(s.rollBaseline)) + s.cfg.RollStdMultiple*signal.Std(s.rollBaseline)
	}

	s.calibrated = true
	log.Info("calibration finalized", "user", s.userID,
		"ear_thresh", s.thresholds.EAR, "gaze_thresh", s.thresholds.Gaze)

	if s.profilePath != "" {
		p := Profile{
			UserID:     s.userID,
			Calibrated: true,
			Thresholds: s.thresholds,
			SampleCounts: SampleCounts{
				EAR:   len(s.earBaseline),
				Gaze:  len(s.gazeBaseline),
				Pitch: len(s.pitchBaseline),
				Yaw:   len(s.yawBaseline),
				Roll:  len(s.rollBaseline),
			},
		}
		if err := SaveProfile(s.profilePath, p); err != nil {
			// Thresholds stay usable in-memory even when the write fails.
			log.Error("failed to persist calibration profile", "user", s.userID, "err", err)
		}
	}

	s.earBaseline = nil
	s.gazeBaseline = nil
	s.pitchBaseline = nil
	s.yawBaseline = nil
	s.rollBaseline = nil

	return true
}

// #endregion calibration

// #region anomaly

// DetectAnomaly appends the present values to the rolling history and
// reports whether the recent sequence shows fewer micro-fluctuations than a
// live subject would. With under 30 EAR entries it returns false:
// insufficient evidence, not a clean bill of health. A cheap
// physical-presence heuristic, not cryptographic liveness.
func (s *Scorer) DetectAnomaly(ear, gaze, pitch *float64) bool {
	if ear != nil {
		s.earHistory.Push(*ear)
	}
	if gaze != nil {
		s.gazeHistory.Push(*gaze)
	}
	if pitch != nil {
		s.pitchHistory.Push(*pitch)
	}

	if s.earHistory.Len() < s.cfg.AnomalyWindow {
		return false
	}

	earVar := windowVariance(s.earHistory, s.cfg.AnomalyWindow)
	gazeVar := windowVariance(s.gazeHistory, s.cfg.AnomalyWindow)
	pitchVar := windowVariance(s.pitchHistory, s.cfg.AnomalyWindow)

	suspicious := earVar < s.cfg.MinEARVariance ||
		gazeVar < s.cfg.MinGazeVariance ||
		pitchVar < s.cfg.MinPitchVariance

	if suspicious {
		log.Warn("suspiciously low signal variance",
			"ear_var", earVar, "gaze_var", gazeVar, "pitch_var", pitchVar)
	}
	return suspicious
}

// windowVariance computes variance over the last n entries, or 1.0 for an
// empty ring so an absent signal never triggers the floor.
func windowVariance(r *signal.Ring, n int) float64 {
	if r.Len() == 0 {
		return 1.0
	}
	return signal.Variance(r.Last(n))
}

// #endregion anomaly
