package server

import (
	"encoding/json"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/riyadrajan/updatedversion/internal/log"
	"github.com/riyadrajan/updatedversion/internal/logging"
)

// #region root-status

func (s *Server) handleRoot(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"status": "ok",
		"endpoints": []string{
			"/status",
			"/light",
			"/ws",
			"/session/start",
			"/session/edge",
			"/session/stop",
			"/session/stats",
			"/detection/event",
		},
	})
}

func (s *Server) handleStatus(c *fiber.Ctx) error {
	s.mu.Lock()
	sessionID := s.sessionID
	lightOn := s.lightOn
	s.mu.Unlock()

	return c.JSON(fiber.Map{
		"running":     sessionID != "",
		"session_id":  sessionID,
		"light_on":    lightOn,
		"lamp_client": s.lightHub.ClientCount(),
	})
}

// #endregion root-status

// #region light

// handleLight parses the light_on flag leniently and broadcasts the raw
// "ON"/"OFF" command to every lamp client. Missing body means ON.
func (s *Server) handleLight(c *fiber.Ctx) error {
	var body map[string]interface{}
	_ = json.Unmarshal(c.Body(), &body)

	lightOn := parseLightOn(body)

	s.mu.Lock()
	s.lightOn = lightOn
	s.mu.Unlock()

	if lightOn {
		s.lightHub.BroadcastText("ON")
	} else {
		s.lightHub.BroadcastText("OFF")
	}

	return c.JSON(fiber.Map{"status": "ok", "light_on": lightOn})
}

// parseLightOn accepts bool, string, or number for light_on. Only the string
// "true" (any case) counts as true; absent defaults to true.
func parseLightOn(body map[string]interface{}) bool {
	val, ok := body["light_on"]
	if !ok {
		return true
	}
	switch v := val.(type) {
	case bool:
		return v
	case string:
		return strings.EqualFold(v, "true")
	case float64:
		return v != 0
	default:
		return val != nil
	}
}

// #endregion light

// #region session-endpoints

type sessionStartRequest struct {
	UserID   string `json:"userId"`
	Username string `json:"username"`
}

// handleSessionStart creates a scoring session. Idempotent: a second call
// returns the existing session id.
func (s *Server) handleSessionStart(c *fiber.Ctx) error {
	var req sessionStartRequest
	_ = json.Unmarshal(c.Body(), &req)

	s.mu.Lock()
	defer s.mu.Unlock()

	if req.Username == "" {
		req.Username = s.boundUsername
	}

	if s.sessionID == "" {
		id, err := s.store.StartSession(req.UserID, req.Username)
		if err != nil {
			log.Warn("session start skipped", "err", err)
			return c.JSON(fiber.Map{"status": "skipped", "error": err.Error()})
		}
		s.sessionID = id
		log.Info("session started", "session_id", id)
	}

	return c.JSON(fiber.Map{"status": "ok", "sessionId": s.sessionID})
}

type sessionEdgeRequest struct {
	Distracted bool `json:"distracted"`
}

// handleSessionEdge records a distracted/focused edge. Lazily creates a
// session when none exists.
func (s *Server) handleSessionEdge(c *fiber.Ctx) error {
	var req sessionEdgeRequest
	_ = json.Unmarshal(c.Body(), &req)

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.sessionID == "" {
		id, err := s.store.StartSession("", "")
		if err != nil {
			log.Warn("session edge skipped", "err", err)
			return c.JSON(fiber.Map{"status": "skipped", "error": err.Error()})
		}
		s.sessionID = id
	}

	now := time.Now().UTC()
	var err error
	if req.Distracted {
		err = s.store.MarkDistracted(s.sessionID, now)
	} else {
		_, err = s.store.MarkFocused(s.sessionID, now)
	}
	if err != nil {
		log.Warn("session edge skipped", "err", err)
		return c.JSON(fiber.Map{"status": "skipped", "error": err.Error()})
	}

	return c.JSON(fiber.Map{"status": "ok", "sessionId": s.sessionID})
}

// handleSessionStop finalizes the current session. Safe to call repeatedly;
// the session handle is always cleared.
func (s *Server) handleSessionStop(c *fiber.Ctx) error {
	s.mu.Lock()
	id := s.sessionID
	s.sessionID = ""
	s.mu.Unlock()

	if id == "" {
		return c.JSON(fiber.Map{"status": "noop"})
	}

	elapsedMs, focusScore, err := s.store.StopSession(id, time.Now().UTC())
	if err != nil {
		log.Warn("session stop skipped", "err", err)
		return c.JSON(fiber.Map{"status": "skipped", "error": err.Error()})
	}

	return c.JSON(fiber.Map{
		"status":     "ok",
		"sessionId":  id,
		"elapsedMs":  elapsedMs,
		"focusScore": focusScore,
	})
}

// handleSessionStats returns live aggregates for the active session.
func (s *Server) handleSessionStats(c *fiber.Ctx) error {
	s.mu.Lock()
	id := s.sessionID
	s.mu.Unlock()

	if id == "" {
		return c.JSON(fiber.Map{"status": "no_active_session"})
	}

	rec, err := s.store.GetSession(id)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).
			JSON(fiber.Map{"status": "error", "error": err.Error()})
	}

	now := time.Now().UTC()
	var elapsedMs int64
	if !rec.StartedAt.IsZero() {
		elapsedMs = now.Sub(rec.StartedAt).Milliseconds()
	}

	currentFocusScore := 100.0
	if elapsedMs > 0 {
		currentFocusScore = (1 - float64(rec.DistractedTotalMs)/float64(elapsedMs)) * 100
	}

	return c.JSON(fiber.Map{
		"status":            "ok",
		"sessionId":         id,
		"elapsedMs":         elapsedMs,
		"distractedTotalMs": rec.DistractedTotalMs,
		"focusedMs":         elapsedMs - rec.DistractedTotalMs,
		"currentFocusScore": currentFocusScore,
		"distractionCount":  rec.IntervalCount,
		"isDistracted":      !rec.CurrentIntervalStart.IsZero(),
	})
}

// #endregion session-endpoints

// #region detection-event

type detectionEventRequest struct {
	Activity   string          `json:"activity"`
	Distracted bool            `json:"distracted"`
	Severity   float64         `json:"severity"`
	FocusScore float64         `json:"focus_score"`
	Objects    map[string]bool `json:"objects"`
	Reason     string          `json:"reason"`
}

// handleDetectionEvent appends a reported detection to the detection log,
// tagged with the active session if there is one.
func (s *Server) handleDetectionEvent(c *fiber.Ctx) error {
	var req detectionEventRequest
	if err := json.Unmarshal(c.Body(), &req); err != nil {
		return c.Status(fiber.StatusBadRequest).
			JSON(fiber.Map{"status": "error", "error": "invalid body"})
	}

	s.mu.Lock()
	id := s.sessionID
	s.mu.Unlock()

	var objectsJSON string
	if len(req.Objects) > 0 {
		if data, err := json.Marshal(req.Objects); err == nil {
			objectsJSON = string(data)
		}
	}

	entry := logging.DetectionEntry{
		SessionID:   id,
		Activity:    req.Activity,
		Distracted:  req.Distracted,
		Severity:    req.Severity,
		FocusScore:  req.FocusScore,
		ObjectsJSON: objectsJSON,
		Reason:      req.Reason,
	}
	if err := logging.LogDetection(s.store.DB(), entry); err != nil {
		log.Warn("detection event dropped", "err", err)
		return c.JSON(fiber.Map{"status": "skipped", "error": err.Error()})
	}

	return c.JSON(fiber.Map{"status": "ok"})
}

// #endregion detection-event
