package main

import (
	"context"
	"log"

	"grant-assistant-be/internal/bootstrap"
	"grant-assistant-be/internal/config"
	"grant-assistant-be/internal/server"
	"grant-assistant-be/internal/tracer"
	"grant-assistant-be/pkg/database"
)

func main() {
	// 0. Initialize Tracer
	shutdownTracer := tracer.InitTracer()
	defer shutdownTracer(context.Background())

	// 1. Load Configuration
	cfg := config.Load()

	// 2. Initialize Database
	gormDB, err := database.NewGormDBFromDSN(cfg.Database.Connection)
	if err != nil {
		log.Panicf("Unable to connect to GORM DB: %v", err)
	}

	// 3. Bootstrap Dependencies (Container)
	container := bootstrap.NewContainer(gormDB, cfg)
	defer func() {
		if container.NatsPublisher != nil {
			container.NatsPublisher.Close()
		}
		if container.NatsSubscriber != nil {
			container.NatsSubscriber.Close()
		}
	}()

	// 4. Start Background Services
	go func() {
		log.Println("Background: Starting Ingest Consumer...")
		if err := container.ConsumerService.Consume(context.Background()); err != nil {
			log.Printf("Background Consumer Error: %v", err)
		}
	}()

	// 5. Initialize Server
	srv := server.New(cfg, container)

	// 6. Run Server
	log.Fatal(srv.Run())
}
