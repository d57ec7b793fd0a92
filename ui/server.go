// Package ui serves the dashboard: one server-rendered page that
// re-runs the load → filter → metrics → charts pipeline on every
// request, plus the pivot, chart, and export endpoints derived from
// the same pipeline.
package ui

import (
	"embed"
	"html/template"
	"net/http"
	"sync"

	"github.com/gin-gonic/gin"

	"vansdash/adapters/excel"
	"vansdash/internal/config"
	"vansdash/internal/pivot"
)

//go:embed templates/*.html
var embeddedFiles embed.FS

// Server represents the dashboard web server.
type Server struct {
	router *gin.Engine
	cfg    *config.Config
	loader *excel.Loader
	pivots *pivot.Generator

	// uploads holds user-provided workbooks for the session, keyed by
	// an opaque token the client round-trips.
	uploadsMu sync.RWMutex
	uploads   map[string][]byte

	// sessions holds authenticated cookie tokens when the password
	// gate is enabled.
	sessionsMu sync.RWMutex
	sessions   map[string]bool
}

// NewServer creates the dashboard server with all dependencies wired.
func NewServer(cfg *config.Config) (*Server, error) {
	gin.SetMode(cfg.Server.GinMode)

	pivots, err := pivot.NewGenerator(cfg.Paths.ArtifactDir)
	if err != nil {
		return nil, err
	}

	s := &Server{
		router:   gin.Default(),
		cfg:      cfg,
		loader:   excel.NewLoader(),
		pivots:   pivots,
		uploads:  make(map[string][]byte),
		sessions: make(map[string]bool),
	}

	tmpl, err := template.New("").ParseFS(embeddedFiles, "templates/*.html")
	if err != nil {
		return nil, err
	}
	s.router.SetHTMLTemplate(tmpl)

	s.setupRoutes()
	return s, nil
}

func (s *Server) setupRoutes() {
	s.router.GET("/login", s.handleLoginForm)
	s.router.POST("/login", s.handleLogin)

	gated := s.router.Group("/", s.requireAuth())
	gated.GET("/", s.handleDashboard)
	gated.POST("/upload", s.handleUpload)
	gated.GET("/pivot", s.handlePivot)
	gated.POST("/export", s.handleExport)
}

// Start starts the web server.
func (s *Server) Start() error {
	return s.router.Run(":" + s.cfg.Server.Port)
}

// Handler exposes the router for tests.
func (s *Server) Handler() http.Handler {
	return s.router
}
