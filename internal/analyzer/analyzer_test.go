package analyzer

import (
	"testing"

	"github.com/riyadrajan/updatedversion/internal/signal"
)

// #region helpers
func sample(pitch float64, gaze *float64, objects ...string) signal.Sample {
	objs := make(map[string]bool, len(objects))
	for _, o := range objects {
		objs[o] = true
	}
	return signal.Sample{
		Pitch:        signal.Ptr(pitch),
		Gaze:         gaze,
		FaceDetected: true,
		Objects:      objs,
	}
}

// #endregion helpers

// #region classification-tests
func TestAnalyzeContext_FaceMissing(t *testing.T) {
	a := New(DefaultConfig())
	res := a.AnalyzeContext(signal.Sample{FaceDetected: false})
	if res.Activity != ActivityFaceMissing {
		t.Errorf("expected face_missing, got %s", res.Activity)
	}
	if !res.Distracted || res.Severity != 0.8 {
		t.Errorf("expected distracted severity 0.8, got %v %v", res.Distracted, res.Severity)
	}
	if a.CurrentActivity() != ActivityFaceMissing {
		t.Errorf("current activity not updated: %s", a.CurrentActivity())
	}
}

func TestAnalyzeContext_MissingPitch(t *testing.T) {
	a := New(DefaultConfig())
	res := a.AnalyzeContext(signal.Sample{FaceDetected: true})
	if res.Activity != ActivityUnknown {
		t.Errorf("expected unknown without pitch, got %s", res.Activity)
	}
}

func TestClassification(t *testing.T) {
	cases := []struct {
		name string
		s    signal.Sample
		want ActivityType
	}{
		{"focused head up", sample(-10, signal.Ptr(0.1)), ActivityFocusedStudying},
		{"focused nil gaze", sample(5, nil), ActivityFocusedStudying},
		{"reading with book", sample(-35, signal.Ptr(0.15), signal.ObjectBook), ActivityReadingBook},
		{"book too steep falls through", sample(-50, nil, signal.ObjectBook), ActivityUnknown},
		{"notes no objects", sample(-40, nil), ActivityTakingNotes},
		{"typing on laptop", sample(-10, signal.Ptr(0.1), signal.ObjectLaptop), ActivityTyping},
		{"phone detected shallow pitch", sample(-10, signal.Ptr(0.1), signal.ObjectPhone), ActivityPhoneDistraction},
		{"steep pitch without phone", sample(-65, signal.Ptr(0.1)), ActivityPhoneDistraction},
		{"drinking from bottle", sample(-10, signal.Ptr(0.1), signal.ObjectBottle), ActivityDrinkingWater},
		{"drinking from cup", sample(0, nil, signal.ObjectCup), ActivityDrinkingWater},
		{"bottle head down is not drinking", sample(-40, nil, signal.ObjectBottle), ActivityUnknown},
		{"thinking gaze wander", sample(10, signal.Ptr(0.4)), ActivityThinking},
		{"looking away", sample(10, signal.Ptr(0.28)), ActivityLookingAway},
	}

	for _, tc := range cases {
		a := New(DefaultConfig())
		res := a.AnalyzeContext(tc.s)
		if res.Activity != tc.want {
			t.Errorf("%s: expected %s, got %s", tc.name, tc.want, res.Activity)
		}
	}
}

func TestClassification_PhoneBeatsReadingAngle(t *testing.T) {
	// A phone held low sits in the reading pitch band; the object cue must
	// win over the pose cue.
	a := New(DefaultConfig())
	res := a.AnalyzeContext(sample(-35, nil, signal.ObjectPhone, signal.ObjectBook))
	if res.Activity != ActivityPhoneDistraction {
		t.Errorf("expected phone_distraction, got %s", res.Activity)
	}
	if res.Severity != 0.9 {
		t.Errorf("expected severity 0.9, got %v", res.Severity)
	}
}

// #endregion classification-tests

// #region distraction-tests
func TestProductiveActivitiesNotDistracted(t *testing.T) {
	samples := []signal.Sample{
		sample(-10, signal.Ptr(0.1)),
		sample(-35, nil, signal.ObjectBook),
		sample(-40, nil),
		sample(-10, nil, signal.ObjectLaptop),
	}
	for _, s := range samples {
		a := New(DefaultConfig())
		res := a.AnalyzeContext(s)
		if res.Distracted {
			t.Errorf("%s: productive activity flagged distracted", res.Activity)
		}
		if res.Severity != 0 {
			t.Errorf("%s: expected severity 0, got %v", res.Activity, res.Severity)
		}
	}
}

func TestThinking_PersistenceGate(t *testing.T) {
	a := New(DefaultConfig())
	thinking := sample(10, signal.Ptr(0.4))

	// The first 8 frames are tolerated.
	for i := 0; i < 8; i++ {
		res := a.AnalyzeContext(thinking)
		if res.Distracted {
			t.Fatalf("frame %d: thinking flagged too early", i)
		}
		if res.Severity != 0.1 {
			t.Fatalf("frame %d: expected severity 0.1, got %v", i, res.Severity)
		}
	}

	// Frame 9 sees 8 prior thinking frames in history.
	res := a.AnalyzeContext(thinking)
	if !res.Distracted || res.Severity != 0.3 {
		t.Errorf("expected sustained thinking distracted 0.3, got %v %v", res.Distracted, res.Severity)
	}
}

func TestDrinking_PersistenceGate(t *testing.T) {
	a := New(DefaultConfig())
	drinking := sample(-5, nil, signal.ObjectBottle)

	for i := 0; i < 15; i++ {
		res := a.AnalyzeContext(drinking)
		if res.Distracted {
			t.Fatalf("frame %d: drinking flagged too early", i)
		}
	}

	res := a.AnalyzeContext(drinking)
	if !res.Distracted || res.Severity != 0.2 {
		t.Errorf("expected prolonged drinking distracted 0.2, got %v %v", res.Distracted, res.Severity)
	}
}

func TestLookingAway_ImmediatelyDistracted(t *testing.T) {
	a := New(DefaultConfig())
	res := a.AnalyzeContext(sample(10, signal.Ptr(0.28)))
	if !res.Distracted || res.Severity != 0.5 {
		t.Errorf("expected looking_away distracted 0.5, got %v %v", res.Distracted, res.Severity)
	}
}

// #endregion distraction-tests

// #region pattern-tests
func TestActivityPattern(t *testing.T) {
	a := New(DefaultConfig())

	a.AnalyzeContext(sample(-10, signal.Ptr(0.1)))
	a.AnalyzeContext(sample(-10, signal.Ptr(0.1)))
	a.AnalyzeContext(sample(-10, nil, signal.ObjectPhone))
	a.AnalyzeContext(sample(-10, nil, signal.ObjectPhone))

	pattern := a.ActivityPattern()
	if pattern[ActivityFocusedStudying] != 0.5 {
		t.Errorf("expected focused share 0.5, got %v", pattern[ActivityFocusedStudying])
	}
	if pattern[ActivityPhoneDistraction] != 0.5 {
		t.Errorf("expected phone share 0.5, got %v", pattern[ActivityPhoneDistraction])
	}
}

func TestActivityPattern_Empty(t *testing.T) {
	a := New(DefaultConfig())
	if len(a.ActivityPattern()) != 0 {
		t.Error("expected empty pattern before any frames")
	}
}

func TestIsSustainedDistraction(t *testing.T) {
	a := New(DefaultConfig())

	// Not enough history yet.
	if a.IsSustainedDistraction(0.5, 30) {
		t.Error("expected false with empty history")
	}

	for i := 0; i < 20; i++ {
		a.AnalyzeContext(sample(-10, nil, signal.ObjectPhone))
	}
	if !a.IsSustainedDistraction(0.5, 30) {
		t.Error("expected sustained distraction after 20 phone frames")
	}
}

func TestIsSustainedDistraction_ExactlyAtBoundary(t *testing.T) {
	a := New(DefaultConfig())

	// 12 of the last 15 distracted is exactly 0.8; the check is strict.
	for i := 0; i < 3; i++ {
		a.AnalyzeContext(sample(-10, signal.Ptr(0.1)))
	}
	for i := 0; i < 12; i++ {
		a.AnalyzeContext(sample(-10, nil, signal.ObjectPhone))
	}
	if a.IsSustainedDistraction(0.5, 30) {
		t.Error("expected false at exactly 80%")
	}
}

func TestShouldIgnoreBriefDistraction(t *testing.T) {
	a := New(DefaultConfig())
	if !a.ShouldIgnoreBriefDistraction(3.0) {
		t.Error("3s should be ignored")
	}
	if a.ShouldIgnoreBriefDistraction(6.0) {
		t.Error("6s should not be ignored")
	}
}

// #endregion pattern-tests
