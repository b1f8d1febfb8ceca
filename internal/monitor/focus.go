package monitor

import (
	"github.com/riyadrajan/updatedversion/internal/analyzer"
)

// #region focus-score

// activityBaseScores maps each activity to a 0-100 focus baseline.
var activityBaseScores = map[analyzer.ActivityType]float64{
	analyzer.ActivityFocusedStudying:  100,
	analyzer.ActivityReadingBook:      95,
	analyzer.ActivityTakingNotes:      90,
	analyzer.ActivityTyping:           85,
	analyzer.ActivityDrinkingWater:    80,
	analyzer.ActivityThinking:         70,
	analyzer.ActivityLookingAway:      40,
	analyzer.ActivityPhoneDistraction: 10,
	analyzer.ActivityFaceMissing:      0,
	analyzer.ActivityUnknown:          50,
}

// FocusScore converts an activity and its distraction severity to a 0-100
// focus score.
func FocusScore(activity analyzer.ActivityType, severity float64) float64 {
	base, ok := activityBaseScores[activity]
	if !ok {
		base = 50
	}
	if severity > 0 {
		base *= 1 - severity*0.5
	}
	if base < 0 {
		return 0
	}
	if base > 100 {
		return 100
	}
	return base
}

// #endregion focus-score
