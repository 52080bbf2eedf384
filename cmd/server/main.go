package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"sanctionsfeed/internal/api"
	"sanctionsfeed/internal/config"
	"sanctionsfeed/internal/metrics"
	"sanctionsfeed/internal/pipeline"
	"sanctionsfeed/internal/storage"
)

func main() {
	configPath := flag.String("config", "config.yaml", "Path to configuration file")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	log.Println("Starting sanctions screening server...")

	log.Printf("Opening Pebble database at %s", cfg.Pebble.Path)
	db, err := storage.NewPebbleDB(cfg.Pebble.Path)
	if err != nil {
		log.Fatalf("Failed to open Pebble database: %v", err)
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Printf("Error closing database: %v", err)
		}
	}()

	store := storage.NewSanctionedStore(db)
	metaStore := storage.NewMetaStore(db)
	m := metrics.New(prometheus.DefaultRegisterer)

	// A screening service with no list loaded would wave every payment
	// through; refuse to start without an artifact.
	artifact, err := pipeline.ReadArtifact(cfg.Artifact.Path)
	if err != nil {
		log.Fatalf("Failed to load artifact (run the updater first): %v", err)
	}
	if len(artifact.Addresses) == 0 {
		log.Fatalf("Artifact at %s contains no addresses", cfg.Artifact.Path)
	}

	db.SetBulkMode(true)
	if err := store.ImportArtifact(artifact); err != nil {
		log.Fatalf("Failed to import artifact: %v", err)
	}
	if err := metaStore.Save(&artifact.Metadata); err != nil {
		log.Fatalf("Failed to store artifact metadata: %v", err)
	}
	db.SetBulkMode(false)
	if err := db.Sync(); err != nil {
		log.Fatalf("Failed to sync database: %v", err)
	}

	m.AddressesLoaded.Set(float64(len(artifact.Addresses)))
	log.Printf("Loaded %d sanctioned addresses (generated %s)",
		len(artifact.Addresses), artifact.Metadata.GeneratedAt)

	router := api.NewRouter(store, metaStore, m)

	addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	server := &http.Server{
		Addr:         addr,
		Handler:      router.Engine(),
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	go func() {
		log.Printf("HTTP server listening on %s", addr)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("HTTP server error: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Shutting down...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Printf("HTTP server shutdown error: %v", err)
	}

	log.Println("Server stopped")
}
