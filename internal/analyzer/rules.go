package analyzer

import "math"

// #region rule-input

// ruleInput carries one frame's signals into the rule chain. Pitch is never
// nil here; classify collapses to unknown before the rules run when pitch is
// absent.
type ruleInput struct {
	pitch     float64
	gaze      *float64
	hasBook   bool
	hasPhone  bool
	hasLaptop bool
	hasBottle bool
	hasCup    bool
}

// #endregion rule-input

// #region rules

// rule pairs a predicate with the activity it classifies. Rules are evaluated
// top-down and the first match wins, so object-grounded cues must stay ahead
// of pose-only cues: pose alone is ambiguous, and a phone held low would
// otherwise pass the reading-angle test.
type rule struct {
	name     string
	activity ActivityType
	match    func(in ruleInput) bool
}

// classificationRules builds the ordered rule chain from the config.
func classificationRules(cfg Config) []rule {
	return []rule{
		{
			name:     "drinking",
			activity: ActivityDrinkingWater,
			match: func(in ruleInput) bool {
				return (in.hasBottle || in.hasCup) && in.pitch > cfg.DrinkingPitchMin
			},
		},
		{
			name:     "phone",
			activity: ActivityPhoneDistraction,
			match: func(in ruleInput) bool {
				// Steep-angle fallback catches a phone held near the ear
				// without visual confirmation.
				return in.hasPhone || in.pitch < cfg.PhonePitchThreshold
			},
		},
		{
			name:     "reading",
			activity: ActivityReadingBook,
			match: func(in ruleInput) bool {
				return in.hasBook && in.pitch >= cfg.ReadingPitchMin && in.pitch <= cfg.ReadingPitchMax
			},
		},
		{
			name:     "notes",
			activity: ActivityTakingNotes,
			match: func(in ruleInput) bool {
				return !in.hasBook && !in.hasPhone && !in.hasBottle && !in.hasCup &&
					in.pitch >= cfg.NotePitchMin && in.pitch <= cfg.NotePitchMax
			},
		},
		{
			name:     "typing",
			activity: ActivityTyping,
			match: func(in ruleInput) bool {
				return in.hasLaptop && in.pitch >= cfg.TypingPitchMin && in.pitch <= cfg.TypingPitchMax
			},
		},
		{
			name:     "thinking",
			activity: ActivityThinking,
			match: func(in ruleInput) bool {
				return in.gaze != nil && *in.gaze > cfg.ThinkingGazeThreshold &&
					math.Abs(in.pitch) < cfg.ThinkingPitchLimit
			},
		},
		{
			name:     "looking_away",
			activity: ActivityLookingAway,
			match: func(in ruleInput) bool {
				return in.gaze != nil && *in.gaze > cfg.LookingAwayGazeThreshold
			},
		},
		{
			name:     "focused",
			activity: ActivityFocusedStudying,
			match: func(in ruleInput) bool {
				return math.Abs(in.pitch) < cfg.FocusedPitchLimit &&
					(in.gaze == nil || *in.gaze < cfg.FocusedGazeLimit)
			},
		},
	}
}

// #endregion rules
