package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/xelth-com/planogo/internal/config"
	"github.com/xelth-com/planogo/internal/database"
	"github.com/xelth-com/planogo/internal/handlers"
	"github.com/xelth-com/planogo/internal/models"
	"github.com/xelth-com/planogo/internal/planogram"
	"github.com/xelth-com/planogo/internal/services/catalog"
	"github.com/xelth-com/planogo/internal/services/erp"
	"github.com/xelth-com/planogo/internal/services/layout"
	"github.com/xelth-com/planogo/internal/websocket"
)

func main() {
	// 1. Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// 2. Initialize database (Detects Embedded vs External automatically)
	db, err := database.Connect(cfg.Database)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	// Note: db.Close() is called manually in shutdown handler below

	// 3. Auto-Migrate Schema
	log.Println("🚀 Synchronizing database schema...")
	err = db.AutoMigrate(
		&models.UserAuth{},
		&models.Branch{},
		&models.Shelf{},
		&models.Product{},
		&models.Assignment{},
	)
	if err != nil {
		log.Printf("⚠️ Migration warning: %v\n", err)
	} else {
		log.Println("✅ Schema synchronized successfully")
	}

	// 4. Wire the planogram engine
	hub := websocket.NewHub()
	go hub.Run()

	layoutStore := layout.NewStore(db)
	var persistence planogram.PersistenceService = layoutStore
	if cfg.Layout.URL != "" {
		log.Printf("🌐 Layout persistence: upstream backend at %s", cfg.Layout.URL)
		persistence = layout.NewClient(cfg.Layout.URL, cfg.Layout.APIKey)
	}
	service := planogram.NewService(planogram.NewStore(), layoutStore, persistence, hub)
	lookup := catalog.NewLookup(db)

	// 5. Start ERP catalog sync (background, disabled without ERP_URL)
	erpService := erp.NewSyncService(db, cfg.ERP)
	erpService.Start()

	// 6. Set up HTTP router
	router := handlers.NewRouter(db, cfg, service, lookup, hub)

	server := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: router,
	}

	// Channel to listen for shutdown signals
	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM, syscall.SIGINT)

	// Start server in goroutine
	go func() {
		log.Printf("🚀 Planogram server starting on port %s\n", cfg.Port)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Failed to start server: %v", err)
		}
	}()

	// Wait for shutdown signal
	sig := <-shutdown
	log.Printf("\n⚠️  Received signal: %v. Shutting down gracefully...\n", sig)

	// Create context with timeout for graceful shutdown
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	// Shutdown HTTP server
	if err := server.Shutdown(ctx); err != nil {
		log.Printf("HTTP server shutdown error: %v", err)
	}

	// Stop ERP sync service
	erpService.Stop()

	// Close database (this also stops embedded PostgreSQL)
	log.Println("🛑 Closing database connection...")
	if err := db.Close(); err != nil {
		log.Printf("Database close error: %v", err)
	}

	log.Println("✅ Shutdown complete")
}
