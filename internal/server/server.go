package server

import (
	"log/slog"
	"net/http"

	"autosales-dashboard/internal/controller"
	"autosales-dashboard/internal/handlers"
)

type Server struct {
	ctrl           *controller.Controller
	mux            *http.ServeMux
	logger         *slog.Logger
	apiHandlers    *handlers.APIHandlers
	sseHandlers    *handlers.SSEHandlers
	exportHandlers *handlers.ExportHandlers
}

type TemplateHandlers struct {
	Dashboard http.HandlerFunc
}

func NewServer(ctrl *controller.Controller, logger *slog.Logger, templateHandlers *TemplateHandlers) *Server {
	s := &Server{
		ctrl:           ctrl,
		mux:            http.NewServeMux(),
		logger:         logger,
		apiHandlers:    handlers.NewAPIHandlers(ctrl, logger),
		sseHandlers:    handlers.NewSSEHandlers(ctrl, logger),
		exportHandlers: handlers.NewExportHandlers(ctrl, logger),
	}
	s.setupRoutes(templateHandlers)
	return s
}

func (s *Server) setupRoutes(templateHandlers *TemplateHandlers) {
	// Dashboard routes
	s.mux.HandleFunc("GET /{$}", templateHandlers.Dashboard)
	s.mux.HandleFunc("GET /health", s.apiHandlers.HandleHealth)
	s.mux.HandleFunc("GET /admin/stats", s.apiHandlers.HandleStats)

	// REST API endpoints
	s.mux.HandleFunc("GET /api/options", s.apiHandlers.HandleOptions)
	s.mux.HandleFunc("GET /api/dashboard", s.apiHandlers.HandleDashboard)

	// Datastar SSE endpoints
	s.mux.HandleFunc("GET /sse/dashboard", s.sseHandlers.HandleDashboard)

	// Exports
	s.mux.HandleFunc("GET /export/chart/{name}", s.exportHandlers.HandleChartPNG)
	s.mux.HandleFunc("GET /export/xlsx", s.exportHandlers.HandleXLSX)
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.mux.ServeHTTP(w, r)
}
