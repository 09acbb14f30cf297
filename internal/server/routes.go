package server

import (
	"github.com/gofiber/fiber/v3/middleware/adaptor"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"calshare/internal/config"
	"calshare/internal/handlers"
	"calshare/internal/handlers/api"
	"calshare/internal/ical"
	"calshare/internal/places"
	"calshare/internal/share"
)

// RegisterRoutes registers all application routes. cache is the place-lookup
// cache backend; readiness reports on its reachability.
func (s *Server) RegisterRoutes(yamlCfg *config.YAMLConfig, composer *share.Composer, placesClient *places.Client, cache places.Storage) {
	// Initialize handlers
	eventHandler := handlers.NewEventHandler(s.Cfg, composer)
	shareHandler := handlers.NewShareHandler(s.Cfg, yamlCfg.MeetingDomains)
	icsHandler := handlers.NewICSHandler(ical.New(s.Cfg.AppDomain))
	qrHandler := handlers.NewQRHandler(s.Cfg.BaseURL)
	placesHandler := handlers.NewPlacesHandler(placesClient)
	probeHandler := handlers.NewProbeHandler(cache)

	apiLinkHandler := api.NewLinkHandler(composer)
	apiResolveHandler := api.NewResolveHandler()

	// Frontend routes
	s.App.Get("/", eventHandler.Index)
	s.App.Post("/links", eventHandler.Create)
	s.App.Get("/share", shareHandler.Show)
	s.App.Post("/share/unlock", shareHandler.Unlock)
	s.App.Get("/event.ics", icsHandler.Download)
	s.App.Get("/qr.png", qrHandler.Image)

	// JSON API routes
	s.App.Get("/api/places", placesHandler.Search)
	s.App.Post("/api/links", apiLinkHandler.Create)
	s.App.Post("/api/resolve", apiResolveHandler.Resolve)

	// Probes and metrics
	s.App.Get("/healthz", probeHandler.Liveness)
	s.App.Get("/readyz", probeHandler.Readiness)
	s.App.Get("/metrics", adaptor.HTTPHandler(promhttp.Handler()))
}
