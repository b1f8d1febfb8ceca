package monitor

import (
	"fmt"

	"github.com/riyadrajan/updatedversion/internal/adaptive"
	"github.com/riyadrajan/updatedversion/internal/analyzer"
	"github.com/riyadrajan/updatedversion/internal/pattern"
	"github.com/riyadrajan/updatedversion/internal/signal"
)

// #region monitor

// Monitor drives the three detection components once per frame and owns the
// debounce state that turns noisy per-frame verdicts into stable edges. The
// components never call each other; they all consume the same Sample.
type Monitor struct {
	cfg      Config
	analyzer *analyzer.Analyzer
	patterns *pattern.Recognizer
	scorer   *adaptive.Scorer

	// Distraction edge debounce.
	distractionStart *float64 // timestamp the current distraction run began
	lastDistracted   bool     // last raised edge state

	// Face presence debounce.
	faceAbsentFor    float64
	facePresentFor   float64
	lastFaceDetected bool

	lastT    float64
	haveLast bool
}

// New composes a monitor from the three detection components.
func New(cfg Config, a *analyzer.Analyzer, p *pattern.Recognizer, s *adaptive.Scorer) *Monitor {
	return &Monitor{
		cfg:              cfg,
		analyzer:         a,
		patterns:         p,
		scorer:           s,
		lastFaceDetected: true,
	}
}

// Analyzer exposes the wrapped analyzer for history queries.
func (m *Monitor) Analyzer() *analyzer.Analyzer {
	return m.analyzer
}

// Patterns exposes the wrapped pattern recognizer.
func (m *Monitor) Patterns() *pattern.Recognizer {
	return m.patterns
}

// Scorer exposes the wrapped adaptive scorer.
func (m *Monitor) Scorer() *adaptive.Scorer {
	return m.scorer
}

// #endregion monitor

// #region process-frame

// ProcessFrame feeds one frame through every component and returns the
// combined result, including any debounced edges that fired.
func (m *Monitor) ProcessFrame(tNow float64, s signal.Sample) FrameResult {
	elapsed := 0.0
	if m.haveLast {
		elapsed = tNow - m.lastT
		if elapsed < 0 {
			elapsed = 0
		}
	}
	m.lastT = tNow
	m.haveLast = true

	var anomalous bool
	if s.FaceDetected {
		m.patterns.AddSample(s.Gaze, s.Pitch, s.EAR)
		anomalous = m.scorer.DetectAnomaly(s.EAR, s.Gaze, s.Pitch)
	}

	res := m.analyzer.AnalyzeContext(s)

	result := FrameResult{
		Activity:   res.Activity,
		Distracted: res.Distracted,
		Severity:   res.Severity,
		FocusScore: FocusScore(res.Activity, res.Severity),
		Anomalous:  anomalous,
		Engagement: m.patterns.EngagementScore(),
	}

	result.Events = append(result.Events, m.distractionEdges(tNow, res)...)
	result.Events = append(result.Events, m.faceEdges(tNow, s.FaceDetected, elapsed)...)

	return result
}

// #endregion process-frame

// #region distraction-edges

// distractionEdges raises a start edge only once a distraction (thinking
// excluded) has persisted past the sustain window, and an end edge once
// focus returns. Brief interruptions never surface.
func (m *Monitor) distractionEdges(tNow float64, res analyzer.Result) []Event {
	var events []Event

	if res.Distracted && res.Activity != analyzer.ActivityThinking {
		if m.distractionStart == nil {
			start := tNow
			m.distractionStart = &start
		}
		duration := tNow - *m.distractionStart
		if duration > m.cfg.SustainSeconds && !m.lastDistracted {
			m.lastDistracted = true
			events = append(events, Event{
				Type:   EventDistractionStart,
				At:     tNow,
				Reason: fmt.Sprintf("%s sustained %.1fs (severity %.1f)", res.Activity, duration, res.Severity),
			})
		}
	} else {
		m.distractionStart = nil
		if m.lastDistracted {
			m.lastDistracted = false
			events = append(events, Event{
				Type:   EventDistractionEnd,
				At:     tNow,
				Reason: fmt.Sprintf("recovered to %s", res.Activity),
			})
		}
	}
	return events
}

// #endregion distraction-edges

// #region face-edges

// faceEdges debounces face presence: the subject must be absent (or back)
// for the full debounce window before an edge fires.
func (m *Monitor) faceEdges(tNow float64, faceDetected bool, elapsed float64) []Event {
	var events []Event

	if faceDetected {
		m.facePresentFor += elapsed
		m.faceAbsentFor = 0
	} else {
		m.faceAbsentFor += elapsed
		m.facePresentFor = 0
	}

	if m.faceAbsentFor >= m.cfg.FaceDebounceSeconds && m.lastFaceDetected {
		m.lastFaceDetected = false
		events = append(events, Event{
			Type:   EventFaceLost,
			At:     tNow,
			Reason: fmt.Sprintf("face absent %.1fs", m.faceAbsentFor),
		})
	}
	if m.facePresentFor >= m.cfg.FaceDebounceSeconds && !m.lastFaceDetected {
		m.lastFaceDetected = true
		events = append(events, Event{
			Type:   EventFaceRecovered,
			At:     tNow,
			Reason: fmt.Sprintf("face present %.1fs", m.facePresentFor),
		})
	}
	return events
}

// #endregion face-edges
