package analyzer

// #region activity-type

// ActivityType classifies what the user is doing in the current frame.
type ActivityType string

const (
	ActivityFocusedStudying  ActivityType = "focused_studying"
	ActivityReadingBook      ActivityType = "reading_book"
	ActivityTakingNotes      ActivityType = "taking_notes"
	ActivityTyping           ActivityType = "typing"
	ActivityThinking         ActivityType = "thinking"
	ActivityPhoneDistraction ActivityType = "phone_distraction"
	ActivityDrinkingWater    ActivityType = "drinking_water"
	ActivityLookingAway      ActivityType = "looking_away"
	ActivityFaceMissing      ActivityType = "face_missing"
	ActivityUnknown          ActivityType = "unknown"
)

// #endregion activity-type

// #region config

// Config holds the angle, gaze, and persistence thresholds the analyzer
// classifies against. All pitch values are degrees; negative pitch means the
// head is tilted down.
type Config struct {
	ReadingPitchMin float64 // reading_book pitch band
	ReadingPitchMax float64
	NotePitchMin    float64 // taking_notes pitch band
	NotePitchMax    float64
	TypingPitchMin  float64 // typing pitch band (laptop present)
	TypingPitchMax  float64

	PhonePitchThreshold float64 // below this, assume phone even without detection
	DrinkingPitchMin    float64 // bottle/cup counts as drinking above this pitch

	ThinkingGazeThreshold    float64 // gaze deviation that reads as thinking
	ThinkingPitchLimit       float64 // |pitch| bound for the thinking rule
	LookingAwayGazeThreshold float64
	FocusedPitchLimit        float64 // |pitch| bound for focused_studying
	FocusedGazeLimit         float64

	HistorySize           int // frames of activity history (~1s at 30fps)
	DrinkingPersistFrames int // history entries before drinking is flagged
	ThinkingPersistFrames int // history entries before thinking is flagged

	MicroBreakSeconds float64 // distractions shorter than this are ignored
}

// DefaultConfig returns the stock classification thresholds.
func DefaultConfig() Config {
	return Config{
		ReadingPitchMin:          -45,
		ReadingPitchMax:          -25,
		NotePitchMin:             -50,
		NotePitchMax:             -30,
		TypingPitchMin:           -20,
		TypingPitchMax:           0,
		PhonePitchThreshold:      -60,
		DrinkingPitchMin:         -15,
		ThinkingGazeThreshold:    0.3,
		ThinkingPitchLimit:       20,
		LookingAwayGazeThreshold: 0.25,
		FocusedPitchLimit:        25,
		FocusedGazeLimit:         0.2,
		HistorySize:              30,
		DrinkingPersistFrames:    15,
		ThinkingPersistFrames:    8,
		MicroBreakSeconds:        5.0,
	}
}

// #endregion config

// #region result

// Result is the analyzer's verdict for one frame.
type Result struct {
	Activity   ActivityType
	Distracted bool
	Severity   float64 // 0.0 none .. 1.0 severe
}

// #endregion result
