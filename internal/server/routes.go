package server

import (
	"path/filepath"

	jwtware "github.com/gofiber/contrib/jwt"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

func (s *FiberServer) RegisterFiberRoutes() {
	s.App.Get("/health", s.healthHandler)
	s.App.Get("/metrics", adaptor.HTTPHandler(promhttp.Handler()))

	// The auth gate is opt-in: without a configured secret the API is open
	// and authorization is someone else's problem (a proxy, a gateway).
	if s.cfg.JWTSecret != "" {
		s.App.Post("/api/auth/login", s.login)
		s.App.Use("/api", jwtware.New(jwtware.Config{
			SigningKey: jwtware.SigningKey{Key: []byte(s.cfg.JWTSecret)},
			ErrorHandler: func(c *fiber.Ctx, err error) error {
				return c.Status(fiber.StatusUnauthorized).JSON(envelope{
					Success:      false,
					Message:      "Invalid or missing token",
					InternalCode: "AUTH_UNAUTHORIZED",
				})
			},
		}))
	}

	users := s.App.Group("/api/users")
	users.Get("/", s.getAllUsers)
	users.Get("/username/:username", s.getUserByUsername)
	users.Get("/:id<int>", s.getUserByID)
	users.Post("/", s.createUser)
	users.Put("/:id<int>", s.updateUser)
	users.Patch("/:id<int>", s.updateUser)
	users.Delete("/:id<int>", s.deleteUser)
	users.Post("/:id<int>/undelete", s.undeleteUser)

	notes := s.App.Group("/api/notes")
	notes.Get("/", s.getAllNotes)
	notes.Get("/user/:userId<int>", s.getNotesByUser)
	notes.Get("/:id<int>", s.getNoteByID)
	notes.Post("/", s.createNote)
	notes.Put("/:id<int>", s.updateNote)
	notes.Patch("/:id<int>", s.updateNote)
	notes.Delete("/:id<int>", s.deleteNote)
	notes.Post("/:id<int>/undelete", s.undeleteNote)

	s.App.Static("/", s.cfg.StaticDir, fiber.Static{Index: "index.html"})

	// Anything still unmatched is a 404, shaped by what the client accepts.
	s.App.Use(s.notFoundHandler)
}

func (s *FiberServer) healthHandler(c *fiber.Ctx) error {
	return c.JSON(s.db.Health())
}

func (s *FiberServer) notFoundHandler(c *fiber.Ctx) error {
	switch c.Accepts("html", "json", "txt") {
	case "html":
		page := filepath.Join(s.cfg.ViewsDir, "404.html")
		if err := c.Status(fiber.StatusNotFound).SendFile(page); err == nil {
			return nil
		}
		// Missing 404 page; fall back to plain text.
		return c.Status(fiber.StatusNotFound).Type("txt").SendString("404 Not Found")
	case "json":
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "404 Not Found"})
	default:
		return c.Status(fiber.StatusNotFound).Type("txt").SendString("404 Not Found")
	}
}
