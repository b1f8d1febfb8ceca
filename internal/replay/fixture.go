package replay

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/riyadrajan/updatedversion/internal/adaptive"
	"github.com/riyadrajan/updatedversion/internal/analyzer"
	"github.com/riyadrajan/updatedversion/internal/monitor"
	"github.com/riyadrajan/updatedversion/internal/pattern"
	"github.com/riyadrajan/updatedversion/internal/signal"
)

// #region fixture-types

// Fixture is the top-level JSON structure for a replay fixture.
type Fixture struct {
	Description     string                  `json:"description"`
	Config          FixtureConfig           `json:"config"`
	Frames          []FixtureFrame          `json:"frames"`
	ExpectedResults []FixtureExpectedResult `json:"expected_results"`
}

// FixtureFrame mirrors one timestamped signal sample with JSON tags.
type FixtureFrame struct {
	Timestamp    float64         `json:"t"`
	EAR          *float64        `json:"ear,omitempty"`
	Gaze         *float64        `json:"gaze,omitempty"`
	Pitch        *float64        `json:"pitch,omitempty"`
	Yaw          *float64        `json:"yaw,omitempty"`
	Roll         *float64        `json:"roll,omitempty"`
	FaceDetected bool            `json:"face_detected"`
	Objects      map[string]bool `json:"objects,omitempty"`
}

// FixtureExpectedResult captures the expected verdict for one frame index.
type FixtureExpectedResult struct {
	Frame      int    `json:"frame"`
	Activity   string `json:"activity"`
	Distracted bool   `json:"distracted"`
}

// FixtureConfig bundles all sub-configs for a replay run.
type FixtureConfig struct {
	AnalyzerConfig FixtureAnalyzerConfig `json:"analyzer_config"`
	PatternConfig  FixturePatternConfig  `json:"pattern_config"`
	MonitorConfig  FixtureMonitorConfig  `json:"monitor_config"`
}

// FixtureAnalyzerConfig mirrors the analyzer knobs that fixtures may vary.
// Zero values fall back to the stock defaults.
type FixtureAnalyzerConfig struct {
	HistorySize           int     `json:"history_size,omitempty"`
	DrinkingPersistFrames int     `json:"drinking_persist_frames,omitempty"`
	ThinkingPersistFrames int     `json:"thinking_persist_frames,omitempty"`
	MicroBreakSeconds     float64 `json:"micro_break_seconds,omitempty"`
}

// FixturePatternConfig mirrors the pattern knobs that fixtures may vary.
type FixturePatternConfig struct {
	WindowSize int `json:"window_size,omitempty"`
}

// FixtureMonitorConfig mirrors the monitor knobs that fixtures may vary.
type FixtureMonitorConfig struct {
	FPS                 float64 `json:"fps,omitempty"`
	SustainSeconds      float64 `json:"sustain_seconds,omitempty"`
	FaceDebounceSeconds float64 `json:"face_debounce_seconds,omitempty"`
}

// #endregion fixture-types

// #region fixture-loader

// LoadFixture reads and parses a JSON fixture file.
func LoadFixture(path string) (*Fixture, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read fixture %s: %w", path, err)
	}
	var f Fixture
	if err := json.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parse fixture %s: %w", path, err)
	}
	return &f, nil
}

// ToSample converts a FixtureFrame to a domain Sample.
func (ff *FixtureFrame) ToSample() signal.Sample {
	return signal.Sample{
		EAR:          ff.EAR,
		Gaze:         ff.Gaze,
		Pitch:        ff.Pitch,
		Yaw:          ff.Yaw,
		Roll:         ff.Roll,
		FaceDetected: ff.FaceDetected,
		Objects:      ff.Objects,
	}
}

// ToReplayConfig converts a FixtureConfig to a domain ReplayConfig,
// filling unset fields with defaults.
func (fc *FixtureConfig) ToReplayConfig() ReplayConfig {
	cfg := DefaultReplayConfig()
	if fc.AnalyzerConfig.HistorySize > 0 {
		cfg.AnalyzerConfig.HistorySize = fc.AnalyzerConfig.HistorySize
	}
	if fc.AnalyzerConfig.DrinkingPersistFrames > 0 {
		cfg.AnalyzerConfig.DrinkingPersistFrames = fc.AnalyzerConfig.DrinkingPersistFrames
	}
	if fc.AnalyzerConfig.ThinkingPersistFrames > 0 {
		cfg.AnalyzerConfig.ThinkingPersistFrames = fc.AnalyzerConfig.ThinkingPersistFrames
	}
	if fc.AnalyzerConfig.MicroBreakSeconds > 0 {
		cfg.AnalyzerConfig.MicroBreakSeconds = fc.AnalyzerConfig.MicroBreakSeconds
	}
	if fc.PatternConfig.WindowSize > 0 {
		cfg.PatternConfig.WindowSize = fc.PatternConfig.WindowSize
	}
	if fc.MonitorConfig.FPS > 0 {
		cfg.MonitorConfig.FPS = fc.MonitorConfig.FPS
	}
	if fc.MonitorConfig.SustainSeconds > 0 {
		cfg.MonitorConfig.SustainSeconds = fc.MonitorConfig.SustainSeconds
	}
	if fc.MonitorConfig.FaceDebounceSeconds > 0 {
		cfg.MonitorConfig.FaceDebounceSeconds = fc.MonitorConfig.FaceDebounceSeconds
	}
	return cfg
}

// #endregion fixture-loader

// #region replay-config

// ReplayConfig bundles analyzer, pattern, adaptive, and monitor configs for
// a replay run.
type ReplayConfig struct {
	AnalyzerConfig analyzer.Config
	PatternConfig  pattern.Config
	AdaptiveConfig adaptive.Config
	MonitorConfig  monitor.Config
}

// DefaultReplayConfig returns stock defaults for all pipeline stages.
func DefaultReplayConfig() ReplayConfig {
	return ReplayConfig{
		AnalyzerConfig: analyzer.DefaultConfig(),
		PatternConfig:  pattern.DefaultConfig(),
		AdaptiveConfig: adaptive.DefaultConfig(),
		MonitorConfig:  monitor.DefaultConfig(),
	}
}

// #endregion replay-config
