// Package reporter ships detection events to the session server. It is
// deliberately fail-silent: a down server must never break detection.
package reporter

import (
	"bytes"
	"encoding/json"
	"net/http"
	"time"

	"github.com/riyadrajan/updatedversion/internal/log"
	"github.com/riyadrajan/updatedversion/internal/monitor"
	"github.com/riyadrajan/updatedversion/internal/signal"
)

// #region config

// Config controls throttling and the target server.
type Config struct {
	ServerURL      string
	Enabled        bool
	ReportInterval time.Duration // minimum gap between reports
	RequestTimeout time.Duration
}

// DefaultConfig returns the stock reporter parameters.
func DefaultConfig() Config {
	return Config{
		ServerURL:      "http://127.0.0.1:3000",
		Enabled:        true,
		ReportInterval: 2 * time.Second,
		RequestTimeout: time.Second,
	}
}

// #endregion config

// #region reporter

// Reporter posts throttled detection events.
type Reporter struct {
	cfg    Config
	client *http.Client

	lastReport time.Time
	now        func() time.Time
}

// New creates a reporter with a short-timeout HTTP client.
func New(cfg Config) *Reporter {
	return &Reporter{
		cfg:    cfg,
		client: &http.Client{Timeout: cfg.RequestTimeout},
		now:    time.Now,
	}
}

// detectionPayload is the wire format for POST /detection/event.
type detectionPayload struct {
	Timestamp  float64         `json:"timestamp"`
	Activity   string          `json:"activity"`
	Distracted bool            `json:"distracted"`
	Severity   float64         `json:"severity"`
	FocusScore float64         `json:"focus_score"`
	Objects    map[string]bool `json:"objects"`
	EAR        *float64        `json:"ear,omitempty"`
	Gaze       *float64        `json:"gaze,omitempty"`
}

// ReportDetection sends one detection event, subject to throttling. Errors
// are logged at debug and otherwise swallowed.
func (r *Reporter) ReportDetection(res monitor.FrameResult, s signal.Sample) {
	if !r.cfg.Enabled {
		return
	}

	now := r.now()
	if now.Sub(r.lastReport) < r.cfg.ReportInterval {
		return
	}

	payload := detectionPayload{
		Timestamp:  float64(now.UnixNano()) / 1e9,
		Activity:   string(res.Activity),
		Distracted: res.Distracted,
		Severity:   res.Severity,
		FocusScore: res.FocusScore,
		Objects:    s.Objects,
		EAR:        s.EAR,
		Gaze:       s.Gaze,
	}
	if payload.Objects == nil {
		payload.Objects = map[string]bool{}
	}

	data, err := json.Marshal(payload)
	if err != nil {
		return
	}

	resp, err := r.client.Post(r.cfg.ServerURL+"/detection/event", "application/json", bytes.NewReader(data))
	if err != nil {
		log.Debug("detection report skipped", "err", err)
		return
	}
	resp.Body.Close()

	r.lastReport = now
}

// ReportEdge posts a session edge (distracted/focused transition)
// immediately, bypassing the throttle. Edges are rare and load-bearing.
func (r *Reporter) ReportEdge(distracted bool) {
	if !r.cfg.Enabled {
		return
	}

	data, err := json.Marshal(map[string]bool{"distracted": distracted})
	if err != nil {
		return
	}
	resp, err := r.client.Post(r.cfg.ServerURL+"/session/edge", "application/json", bytes.NewReader(data))
	if err != nil {
		log.Debug("edge report skipped", "err", err)
		return
	}
	resp.Body.Close()
}

// ReportLight posts the lamp command for a distraction edge.
func (r *Reporter) ReportLight(on bool) {
	if !r.cfg.Enabled {
		return
	}

	data, err := json.Marshal(map[string]bool{"light_on": on})
	if err != nil {
		return
	}
	resp, err := r.client.Post(r.cfg.ServerURL+"/light", "application/json", bytes.NewReader(data))
	if err != nil {
		log.Debug("light report skipped", "err", err)
		return
	}
	resp.Body.Close()
}

// #endregion reporter
