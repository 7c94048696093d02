package main

import (
	"context"
	"log"
	"os/signal"
	"syscall"
	"time"

	"jotter/internal/config"
	"jotter/internal/database"
	"jotter/internal/server"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("loading configuration: %v", err)
	}

	db, err := database.New(cfg)
	if err != nil {
		log.Fatalf("connecting to database: %v", err)
	}
	if err := db.Migrate(); err != nil {
		log.Fatalf("migrating database: %v", err)
	}

	srv := server.New(cfg, db)
	srv.RegisterFiberRoutes()

	go func() {
		if err := srv.Listen(":" + cfg.Port); err != nil {
			log.Fatalf("starting server: %v", err)
		}
	}()
	log.Printf("server listening on port %s", cfg.Port)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()
	<-ctx.Done()

	log.Println("shutting down")
	if err := srv.ShutdownWithTimeout(10 * time.Second); err != nil {
		log.Printf("shutdown: %v", err)
	}
	if err := db.Close(); err != nil {
		log.Printf("closing database: %v", err)
	}
}
