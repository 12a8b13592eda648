package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"voice-journal-be/internal/bootstrap"
	"voice-journal-be/internal/config"
	"voice-journal-be/internal/server"
	"voice-journal-be/internal/tracer"
	"voice-journal-be/pkg/database"
	"voice-journal-be/pkg/vectorindex"
)

func main() {
	// 1. Load Configuration
	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		log.Fatalf("Invalid configuration: %v", err)
	}

	shutdownTracer := tracer.InitTracer(cfg.Telemetry)
	defer shutdownTracer(context.Background())

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// 2. Initialize Database
	gormDB, err := database.NewGormDBFromDSN(cfg.Database.Connection, cfg.App.Environment == "production")
	if err != nil {
		log.Panicf("Unable to connect to GORM DB: %v", err)
	}

	// 3. Bootstrap Dependencies (Container)
	container, err := bootstrap.NewContainer(ctx, gormDB, cfg)
	if err != nil {
		log.Fatalf("Unable to bootstrap: %v", err)
	}
	defer container.Close()

	// 4. Start Background Services
	if err := container.ConsumerService.Consume(ctx); err != nil {
		log.Fatalf("Background Consumer Error: %v", err)
	}
	// The memory index always starts empty; the others only lag after a
	// backend switch or lost messages.
	if counter, ok := container.Index.(vectorindex.Counter); ok {
		if _, err := container.NoteService.SyncIndex(ctx, counter); err != nil {
			log.Printf("[WARN] Index sync failed: %v", err)
		}
	}

	// 5. Initialize Server
	srv := server.New(cfg, container)

	go func() {
		<-ctx.Done()
		log.Println("Shutting down...")
		container.WebSocketHub.Shutdown()
		if err := srv.Shutdown(); err != nil {
			log.Printf("Shutdown error: %v", err)
		}
	}()

	// 6. Run Server
	if err := srv.Run(); err != nil {
		log.Printf("Server stopped: %v", err)
	}
}
