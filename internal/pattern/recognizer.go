package pattern

import (
	"github.com/riyadrajan/updatedversion/internal/signal"
)

// #region recognizer

// Recognizer maintains sliding windows of gaze, pitch, and eye-openness and
// derives temporal patterns from them: reading, thinking, phone use, blink
// naturalness, micro-movement, and an aggregate engagement score.
type Recognizer struct {
	cfg   Config
	gaze  *signal.Ring
	pitch *signal.Ring
	ear   *signal.Ring
}

// New creates a recognizer with the given configuration.
func New(cfg Config) *Recognizer {
	if cfg.WindowSize <= 0 {
		cfg.WindowSize = DefaultConfig().WindowSize
	}
	return &Recognizer{
		cfg:   cfg,
		gaze:  signal.NewRing(cfg.WindowSize),
		pitch: signal.NewRing(cfg.WindowSize),
		ear:   signal.NewRing(cfg.WindowSize),
	}
}

// AddSample appends the present values to their windows, evicting the oldest
// on overflow. Absent values are skipped.
func (r *Recognizer) AddSample(gaze, pitch, ear *float64) {
	if gaze != nil {
		r.gaze.Push(*gaze)
	}
	if pitch != nil {
		r.pitch.Push(*pitch)
	}
	if ear != nil {
		r.ear.Push(*ear)
	}
}

// #endregion recognizer

// #region reading

// ReadingPattern detects periodic left-right gaze scanning with a steady
// head: the signature of reading lines of text.
func (r *Recognizer) ReadingPattern() bool {
	if r.gaze.Len() < r.cfg.ReadingMinSamples {
		return false
	}
	crossings := signal.SignChanges(r.gaze.Values())
	isReading := crossings >= r.cfg.ReadingMinCrossings && crossings <= r.cfg.ReadingMaxCrossings

	if r.pitch.Len() >= r.cfg.ReadingMinSamples {
		stability := signal.Std(r.pitch.Last(r.cfg.ReadingMinSamples))
		isReading = isReading && stability < r.cfg.ReadingPitchStdMax
	}
	return isReading
}

// #endregion reading

// #region thinking

// ThinkingPattern detects a look-away-then-return gaze shape.
func (r *Recognizer) ThinkingPattern() bool {
	if r.gaze.Len() < r.cfg.ThinkingMinSamples {
		return false
	}
	recent := r.gaze.Last(r.cfg.ThinkingMinSamples)
	half := len(recent) / 2
	lookedAway := signal.Mean(recent[:half]) > r.cfg.ThinkingAwayMean
	returned := signal.Mean(recent[half:]) < r.cfg.ThinkingReturnMean
	return lookedAway && returned
}

// #endregion thinking

// #region phone

// PhonePattern detects a steep head angle held nearly motionless.
func (r *Recognizer) PhonePattern() bool {
	if r.pitch.Len() < r.cfg.PhoneMinSamples {
		return false
	}
	recent := r.pitch.Last(r.cfg.PhoneMinSamples)
	return signal.Mean(recent) < r.cfg.PhoneMeanPitch && signal.Std(recent) < r.cfg.PhonePitchStd
}

// #endregion phone

// #region blink

// BlinkPattern counts falling-edge crossings of the blink threshold and
// judges whether the rate looks natural. With fewer than a full window of
// samples it assumes natural, to avoid false anomaly flags on startup.
func (r *Recognizer) BlinkPattern() (natural bool, count int) {
	if r.ear.Len() < r.cfg.BlinkMinSamples {
		return true, 0
	}

	// Two-state machine: a blink is counted once per excursion below the
	// threshold, not per frame spent below it.
	inBlink := false
	for _, v := range r.ear.Values() {
		if v < r.cfg.BlinkEARThreshold && !inBlink {
			count++
			inBlink = true
		} else if v > r.cfg.BlinkEARThreshold {
			inBlink = false
		}
	}

	natural = count >= 0 && count <= r.cfg.BlinkMaxNatural

	// A fully-populated window with zero blinks over ~2s is itself
	// suspicious: a static image never blinks.
	if r.ear.Full() && count == 0 {
		natural = false
	}
	return natural, count
}

// #endregion blink

// #region micro-movements

// MicroMovements reports whether the head shows the small involuntary
// movements expected of a live subject. Defaults true with little data.
func (r *Recognizer) MicroMovements() bool {
	if r.pitch.Len() < r.cfg.MicroMinSamples {
		return true
	}
	return signal.Variance(r.pitch.Values()) > r.cfg.MicroMinVariance
}

// #endregion micro-movements

// #region engagement

// EngagementScore combines the detected patterns into a 0-1 score.
func (r *Recognizer) EngagementScore() float64 {
	score := 0.5

	if r.ReadingPattern() {
		score += 0.3
	}
	if r.ThinkingPattern() {
		score += 0.1
	}
	if r.PhonePattern() {
		score -= 0.5
	}
	naturalBlink, _ := r.BlinkPattern()
	if !naturalBlink {
		score -= 0.3
	}
	if !r.MicroMovements() {
		score -= 0.3
	}

	return signal.Clamp01(score)
}

// #endregion engagement

// #region summary

// Summary evaluates every pattern once and returns the snapshot.
func (r *Recognizer) Summary() Summary {
	naturalBlink, blinkCount := r.BlinkPattern()
	return Summary{
		Reading:         r.ReadingPattern(),
		Thinking:        r.ThinkingPattern(),
		Phone:           r.PhonePattern(),
		NaturalBlinks:   naturalBlink,
		BlinkCount:      blinkCount,
		MicroMovements:  r.MicroMovements(),
		EngagementScore: r.EngagementScore(),
	}
}

// #endregion summary
