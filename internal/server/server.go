package server

import (
	"jotter/internal/config"
	"jotter/internal/database"
	"jotter/internal/database/repositories"
	"jotter/internal/middleware"
	"jotter/internal/usecase"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/favicon"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/pprof"
	"github.com/gofiber/fiber/v2/middleware/recover"
)

type FiberServer struct {
	*fiber.App

	cfg   *config.Config
	db    database.Service
	users *usecase.UserService
	notes *usecase.NoteService
}

func New(cfg *config.Config, db database.Service) *FiberServer {
	userRepo := repositories.NewUserRepository(db.DB())
	noteRepo := repositories.NewNoteRepository(db.DB())
	return newServer(cfg, db,
		usecase.NewUserService(userRepo),
		usecase.NewNoteService(noteRepo, userRepo))
}

func newServer(cfg *config.Config, db database.Service, users *usecase.UserService, notes *usecase.NoteService) *FiberServer {
	server := &FiberServer{
		App: fiber.New(fiber.Config{
			ServerHeader: "jotter",
			AppName:      "jotter",
		}),
		cfg:   cfg,
		db:    db,
		users: users,
		notes: notes,
	}
	server.App.Use(favicon.New())
	server.App.Use(recover.New())
	server.App.Use(cors.New(cors.Config{
		AllowOrigins: cfg.CORSOrigins,
		AllowHeaders: "Origin, Content-Type, Accept, Authorization, X-Requested-With",
		AllowMethods: "GET,POST,PUT,PATCH,DELETE,OPTIONS",
		MaxAge:       3600,
	}))
	server.App.Use(logger.New())
	server.App.Use(middleware.RequestTracing())
	server.App.Use(middleware.Metrics())
	server.App.Use(pprof.New())
	return server
}
