// Package server exposes the focus-session API and the lamp websocket feed.
package server

import (
	"sync"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/websocket/v2"

	"github.com/riyadrajan/updatedversion/internal/hub"
	"github.com/riyadrajan/updatedversion/internal/log"
	"github.com/riyadrajan/updatedversion/internal/session"
)

// #region server

// Server is the HTTP/websocket front end. It owns the active session handle
// and the lamp broadcast hub.
type Server struct {
	app   *fiber.App
	addr  string
	store *session.Store

	lightHub *hub.Hub

	// Active session state. The API is idempotent around these.
	mu            sync.Mutex
	sessionID     string
	boundUsername string
	lightOn       bool
}

// NewServer wires routes onto a fiber app backed by the given store.
func NewServer(addr string, store *session.Store) *Server {
	s := &Server{
		addr:     addr,
		store:    store,
		lightHub: hub.New("light"),
	}

	app := fiber.New(fiber.Config{
		AppName:               "Study Monitor",
		DisableStartupMessage: true,
	})

	app.Use(cors.New())

	// Request logging: METHOD PATH only.
	app.Use(func(c *fiber.Ctx) error {
		log.Info("request", "method", c.Method(), "path", c.Path())
		return c.Next()
	})

	app.Get("/", s.handleRoot)
	app.Get("/status", s.handleStatus)
	app.Post("/light", s.handleLight)

	app.Post("/session/start", s.handleSessionStart)
	app.Post("/session/edge", s.handleSessionEdge)
	app.Post("/session/stop", s.handleSessionStop)
	app.Get("/session/stats", s.handleSessionStats)

	app.Post("/detection/event", s.handleDetectionEvent)

	app.Use("/ws", func(c *fiber.Ctx) error {
		if websocket.IsWebSocketUpgrade(c) {
			return c.Next()
		}
		return fiber.ErrUpgradeRequired
	})
	app.Get("/ws", websocket.New(s.handleWS))

	s.app = app
	return s
}

// Start runs the hub loop and listens. Blocks until the listener stops.
func (s *Server) Start() error {
	go s.lightHub.Run()
	log.Info("server listening", "addr", s.addr)
	return s.app.Listen(s.addr)
}

// Shutdown gracefully stops the listener.
func (s *Server) Shutdown() error {
	return s.app.Shutdown()
}

// App exposes the fiber app for tests.
func (s *Server) App() *fiber.App {
	return s.app
}

// LightHub exposes the lamp broadcast hub.
func (s *Server) LightHub() *hub.Hub {
	return s.lightHub
}

// handleWS attaches a lamp client to the broadcast hub. Blocks for the
// connection's lifetime.
func (s *Server) handleWS(c *websocket.Conn) {
	log.Info("lamp client connected")
	client := hub.NewClient(s.lightHub, c)
	client.Run()
	log.Info("lamp client disconnected")
}

// #endregion server
