package analyzer

import (
	"github.com/riyadrajan/updatedversion/internal/signal"
)

// #region history

// history is a bounded FIFO of classified activity labels, used only for
// same-activity run-length checks.
type history struct {
	labels []ActivityType
	cap    int
}

func newHistory(capacity int) *history {
	if capacity <= 0 {
		capacity = 1
	}
	return &history{labels: make([]ActivityType, 0, capacity), cap: capacity}
}

func (h *history) push(a ActivityType) {
	if len(h.labels) == h.cap {
		copy(h.labels, h.labels[1:])
		h.labels = h.labels[:h.cap-1]
	}
	h.labels = append(h.labels, a)
}

func (h *history) len() int {
	return len(h.labels)
}

// last returns the most recent n labels oldest-first.
func (h *history) last(n int) []ActivityType {
	if n >= len(h.labels) {
		return h.labels
	}
	return h.labels[len(h.labels)-n:]
}

func (h *history) count(a ActivityType) int {
	n := 0
	for _, l := range h.labels {
		if l == a {
			n++
		}
	}
	return n
}

// #endregion history

// #region analyzer

// Analyzer classifies per-frame activity and evaluates whether it
// constitutes a distraction, with hysteresis over recent history so brief
// acceptable interruptions are not flagged.
type Analyzer struct {
	cfg     Config
	rules   []rule
	history *history
	current ActivityType
}

// New creates an analyzer with the given configuration.
func New(cfg Config) *Analyzer {
	return &Analyzer{
		cfg:     cfg,
		rules:   classificationRules(cfg),
		history: newHistory(cfg.HistorySize),
		current: ActivityUnknown,
	}
}

// CurrentActivity returns the most recently classified activity.
func (a *Analyzer) CurrentActivity() ActivityType {
	return a.current
}

// #endregion analyzer

// #region analyze

// AnalyzeContext classifies the frame's activity and evaluates distraction.
// Missing pitch degrades classification to unknown; no input combination is
// an error.
func (a *Analyzer) AnalyzeContext(s signal.Sample) Result {
	if !s.FaceDetected {
		res := Result{Activity: ActivityFaceMissing, Distracted: true, Severity: 0.8}
		a.history.push(res.Activity)
		a.current = res.Activity
		return res
	}

	activity := a.classify(s)
	distracted, severity := a.evaluateDistraction(activity)

	a.history.push(activity)
	a.current = activity

	return Result{Activity: activity, Distracted: distracted, Severity: severity}
}

func (a *Analyzer) classify(s signal.Sample) ActivityType {
	if s.Pitch == nil {
		return ActivityUnknown
	}
	in := ruleInput{
		pitch:     *s.Pitch,
		gaze:      s.Gaze,
		hasBook:   s.Has(signal.ObjectBook),
		hasPhone:  s.Has(signal.ObjectPhone),
		hasLaptop: s.Has(signal.ObjectLaptop),
		hasBottle: s.Has(signal.ObjectBottle),
		hasCup:    s.Has(signal.ObjectCup),
	}
	for _, r := range a.rules {
		if r.match(in) {
			return r.activity
		}
	}
	return ActivityUnknown
}

// #endregion analyze

// #region distraction

// evaluateDistraction maps the classified activity plus recent history to a
// distraction verdict and severity. Evaluated against the history as it
// stood before the current frame is appended.
func (a *Analyzer) evaluateDistraction(activity ActivityType) (bool, float64) {
	switch activity {
	case ActivityFocusedStudying, ActivityReadingBook, ActivityTakingNotes, ActivityTyping:
		return false, 0.0

	case ActivityDrinkingWater:
		// Tolerate brief sips; prolonged drinking is likely stalling.
		if a.history.count(ActivityDrinkingWater) < a.cfg.DrinkingPersistFrames {
			return false, 0.0
		}
		return true, 0.2

	case ActivityThinking:
		if a.history.count(ActivityThinking) < a.cfg.ThinkingPersistFrames {
			return false, 0.1
		}
		return true, 0.3

	case ActivityPhoneDistraction:
		return true, 0.9

	case ActivityFaceMissing:
		return true, 0.8

	case ActivityLookingAway:
		return true, 0.5
	}
	return true, 0.3
}

// #endregion distraction

// #region patterns

// ActivityPattern returns the fractional share of each label currently in
// history. Shares sum to 1.0 across observed labels; empty history yields an
// empty map.
func (a *Analyzer) ActivityPattern() map[ActivityType]float64 {
	pattern := make(map[ActivityType]float64)
	total := a.history.len()
	if total == 0 {
		return pattern
	}
	for _, l := range a.history.labels {
		pattern[l]++
	}
	for k := range pattern {
		pattern[k] /= float64(total)
	}
	return pattern
}

// IsSustainedDistraction reports whether at least 80% of the last
// thresholdSeconds*fps history entries are distraction activities. Returns
// false when history is shorter than that window.
func (a *Analyzer) IsSustainedDistraction(thresholdSeconds, fps float64) bool {
	required := int(thresholdSeconds * fps)
	if a.history.len() < required {
		return false
	}
	recent := a.history.last(required)
	distracted := 0
	for _, l := range recent {
		switch l {
		case ActivityPhoneDistraction, ActivityFaceMissing, ActivityLookingAway:
			distracted++
		}
	}
	return float64(distracted)/float64(required) > 0.8
}

// ShouldIgnoreBriefDistraction reports whether a distraction of the given
// duration (seconds) is short enough to treat as a micro-break.
func (a *Analyzer) ShouldIgnoreBriefDistraction(duration float64) bool {
	return duration < a.cfg.MicroBreakSeconds
}

// #endregion patterns
