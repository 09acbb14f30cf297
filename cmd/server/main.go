package main

import (
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/gofiber/storage/redis/v3"

	"calshare/internal/config"
	"calshare/internal/metrics"
	"calshare/internal/places"
	"calshare/internal/server"
	"calshare/internal/share"
)

func main() {
	cfg := config.Load()

	yamlCfg, err := config.LoadYAMLConfig()
	if err != nil {
		log.Fatalf("Failed to load config file: %v", err)
	}

	metrics.Init()

	// Place lookup cache: Redis when configured, in-process otherwise
	var cache places.Storage
	if cfg.RedisURL != "" {
		cache = redis.New(redis.Config{URL: cfg.RedisURL})
		log.Println("Using Redis for the place lookup cache")
	} else {
		cache = places.NewMemoryStore()
	}

	placesClient := places.New(
		yamlCfg.Nominatim.BaseURL,
		yamlCfg.Nominatim.Limit,
		yamlCfg.Nominatim.CacheTTL(),
		cache,
	)

	composer := share.NewComposer(cfg.BaseURL, cfg.PBKDF2Iterations)

	srv := server.New(cfg)
	srv.RegisterRoutes(yamlCfg, composer, placesClient, cache)

	// Graceful shutdown
	go func() {
		if err := srv.Start(); err != nil {
			log.Printf("Server error: %v", err)
		}
	}()

	log.Printf("Server started on %s", cfg.ServerAddr)

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Shutting down server...")
	if err := srv.Shutdown(); err != nil {
		log.Fatalf("Server forced to shutdown: %v", err)
	}
	log.Println("Server exited")
}
