package replay

import (
	"github.com/riyadrajan/updatedversion/internal/adaptive"
	"github.com/riyadrajan/updatedversion/internal/analyzer"
	"github.com/riyadrajan/updatedversion/internal/monitor"
	"github.com/riyadrajan/updatedversion/internal/pattern"
	"github.com/riyadrajan/updatedversion/internal/signal"
)

// #region types
// Frame represents a single recorded sample for replay.
type Frame struct {
	Timestamp float64
	Sample    signal.Sample
}

// FrameVerdict captures the outcome of replaying one frame through the full
// pipeline.
type FrameVerdict struct {
	Frame      int
	Timestamp  float64
	Activity   analyzer.ActivityType
	Distracted bool
	Severity   float64
	FocusScore float64
	Engagement float64
	Anomalous  bool
	Events     []monitor.Event
}

// Summary provides aggregate stats from a replay run.
type Summary struct {
	TotalFrames      int
	DistractedFrames int
	FaceLossFrames   int
	EventCount       int
	MeanFocusScore   float64
	Activities       map[analyzer.ActivityType]int
	Patterns         pattern.Summary
}

// #endregion types

// #region replay
// Replay iterates through frames, driving the full detection pipeline per
// frame. Operates entirely in-memory; the adaptive scorer runs without a
// calibration profile so replays are deterministic.
func Replay(frames []Frame, config ReplayConfig) ([]FrameVerdict, pattern.Summary) {
	a := analyzer.New(config.AnalyzerConfig)
	p := pattern.New(config.PatternConfig)
	s := adaptive.NewScorer("replay", "", config.AdaptiveConfig)
	m := monitor.New(config.MonitorConfig, a, p, s)

	verdicts := make([]FrameVerdict, 0, len(frames))
	for i, fr := range frames {
		res := m.ProcessFrame(fr.Timestamp, fr.Sample)
		verdicts = append(verdicts, FrameVerdict{
			Frame:      i,
			Timestamp:  fr.Timestamp,
			Activity:   res.Activity,
			Distracted: res.Distracted,
			Severity:   res.Severity,
			FocusScore: res.FocusScore,
			Engagement: res.Engagement,
			Anomalous:  res.Anomalous,
			Events:     res.Events,
		})
	}
	return verdicts, p.Summary()
}

// ReplayFixture loads frames from a parsed fixture and replays them.
func ReplayFixture(f *Fixture) ([]FrameVerdict, pattern.Summary) {
	frames := make([]Frame, 0, len(f.Frames))
	for _, ff := range f.Frames {
		frames = append(frames, Frame{Timestamp: ff.Timestamp, Sample: ff.ToSample()})
	}
	return Replay(frames, f.Config.ToReplayConfig())
}

// Verify checks replay verdicts against a fixture's expected results and
// returns one mismatch description per failed expectation.
func Verify(f *Fixture, verdicts []FrameVerdict) []Mismatch {
	var mismatches []Mismatch
	for _, exp := range f.ExpectedResults {
		if exp.Frame < 0 || exp.Frame >= len(verdicts) {
			mismatches = append(mismatches, Mismatch{
				Frame:  exp.Frame,
				Detail: "frame index out of range",
			})
			continue
		}
		got := verdicts[exp.Frame]
		if string(got.Activity) != exp.Activity {
			mismatches = append(mismatches, Mismatch{
				Frame:    exp.Frame,
				Expected: exp.Activity,
				Got:      string(got.Activity),
				Detail:   "activity",
			})
		}
		if got.Distracted != exp.Distracted {
			mismatches = append(mismatches, Mismatch{
				Frame:  exp.Frame,
				Detail: "distracted flag",
			})
		}
	}
	return mismatches
}

// Mismatch is one expectation a replay failed to reproduce.
type Mismatch struct {
	Frame    int
	Expected string
	Got      string
	Detail   string
}

// Summarize computes aggregate stats from replay verdicts.
func Summarize(verdicts []FrameVerdict, patterns pattern.Summary) Summary {
	s := Summary{
		TotalFrames: len(verdicts),
		Activities:  make(map[analyzer.ActivityType]int),
		Patterns:    patterns,
	}
	var focusSum float64
	for _, v := range verdicts {
		if v.Distracted {
			s.DistractedFrames++
		}
		if v.Activity == analyzer.ActivityFaceMissing {
			s.FaceLossFrames++
		}
		s.EventCount += len(v.Events)
		s.Activities[v.Activity]++
		focusSum += v.FocusScore
	}
	if len(verdicts) > 0 {
		s.MeanFocusScore = focusSum / float64(len(verdicts))
	}
	return s
}

// #endregion replay
