package server

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"path/filepath"

	"github.com/danielgtaylor/huma/v2"
	"github.com/danielgtaylor/huma/v2/adapters/humago"

	"github.com/stirlingbridge/landdev/internal/api"
	"github.com/stirlingbridge/landdev/internal/api/dashboard"
	"github.com/stirlingbridge/landdev/internal/db"
	"github.com/stirlingbridge/landdev/internal/humastar"
	"github.com/stirlingbridge/landdev/internal/service"
	"github.com/stirlingbridge/landdev/internal/templates"
	"github.com/stirlingbridge/landdev/internal/upstream"
)

// Config holds the server configuration.
type Config struct {
	Host         string
	Port         string
	DataDir      string
	WebDir       string // Path to web/ directory for static files and templates
	SectionsFile string // Optional layer catalog override (YAML)
}

// Server is the landdev HTTP server.
type Server struct {
	config   Config
	mux      *http.ServeMux
	humaAPI  huma.API
	store    *db.Store
	bus      *service.EventBus
	services *api.Services
	renderer *templates.Renderer
}

// New creates a new landdev server.
func New(cfg Config) (*Server, error) {
	mux := http.NewServeMux()

	humaConfig := huma.DefaultConfig("Stirling Bridge LandDev API", "1.0.0")
	humaConfig.Info.Description = "Boundary identification and layer mapping for land development projects in South Africa."
	humaConfig.Servers = []*huma.Server{
		{URL: fmt.Sprintf("http://%s:%s", cfg.Host, cfg.Port), Description: "Local server"},
	}
	// Disable $schema property in responses (cleaner JSON)
	humaConfig.CreateHooks = []func(huma.Config) huma.Config{}
	humaConfig.Transformers = append(humaConfig.Transformers, humastar.LinkTransformer())

	humaAPI := humago.New(mux, humaConfig)

	sections, err := service.NewSectionService(cfg.SectionsFile)
	if err != nil {
		return nil, fmt.Errorf("loading layer catalog: %w", err)
	}

	conn, err := db.Open(db.Config{DataDir: cfg.DataDir, DBName: "landdev"})
	if err != nil {
		return nil, fmt.Errorf("opening project database: %w", err)
	}
	store := db.NewStore(conn)

	bus := service.NewEventBus()
	services := &api.Services{
		Land:    service.NewLandService(upstream.NewClient(), store, sections, bus),
		Project: service.NewProjectService(store),
		Section: sections,
	}

	// Template renderer for the dashboard SSE handlers
	var renderer *templates.Renderer
	if cfg.WebDir != "" {
		fragmentsDir := filepath.Join(cfg.WebDir, "templates", "fragments")
		if r, err := templates.New(fragmentsDir); err == nil {
			renderer = r
			slog.Info("loaded fragment templates", "dir", fragmentsDir)
		}
	}

	s := &Server{
		config:   cfg,
		mux:      mux,
		humaAPI:  humaAPI,
		store:    store,
		bus:      bus,
		services: services,
		renderer: renderer,
	}

	s.routes()
	humastar.AutoLinks(humaAPI)
	return s, nil
}

// ServeHTTP implements http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.mux.ServeHTTP(w, r)
}

// Close closes server resources.
func (s *Server) Close() error {
	return s.store.Close()
}

// OpenAPI returns the generated OpenAPI spec.
func (s *Server) OpenAPI() *huma.OpenAPI {
	return s.humaAPI.OpenAPI()
}

func (s *Server) routes() {
	// Huma REST API routes (OpenAPI-documented JSON endpoints)
	api.RegisterRoutes(s.humaAPI, s.services)

	// Dashboard SSE routes using Huma + Datastar SDK
	if s.renderer != nil {
		projectHandler := dashboard.NewProjectHandler(s.services.Land, s.services.Project, s.renderer)
		projectHandler.RegisterRoutes(s.humaAPI)

		eventHandler := dashboard.NewEventHandler(s.services.Project, s.bus, s.renderer)
		eventHandler.RegisterRoutes(s.humaAPI)
	}

	// Static files
	if s.config.WebDir != "" {
		staticDir := filepath.Join(s.config.WebDir, "static")
		s.mux.Handle("/static/", http.StripPrefix("/static/", http.FileServer(http.Dir(staticDir))))
	}

	// Page routes
	s.mux.HandleFunc("/dashboard", s.handleDashboard)
	s.mux.HandleFunc("/", s.handleRoot)
}

func (s *Server) handleRoot(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		http.NotFound(w, r)
		return
	}
	for _, link := range humastar.RootLinks() {
		w.Header().Add("Link", link)
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]string{
		"service": "landdev",
		"status":  "running",
	})
}

func (s *Server) handleDashboard(w http.ResponseWriter, r *http.Request) {
	templatePath := filepath.Join(s.config.WebDir, "templates", "dashboard.html")
	http.ServeFile(w, r, templatePath)
}
