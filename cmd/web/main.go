package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"time"

	"autosales-dashboard/internal/config"
	"autosales-dashboard/internal/controller"
	"autosales-dashboard/internal/dataset"
	"autosales-dashboard/internal/handlers"
	"autosales-dashboard/internal/middleware"
	"autosales-dashboard/internal/observability"
	"autosales-dashboard/internal/server"
	"autosales-dashboard/internal/ui/templates"
)

const (
	renderTimeout = 10 * time.Second
	version       = "1.0.0"
)

// dashboardHandler renders the page for the controller's default selection.
func dashboardHandler(ctrl *controller.Controller, logger *slog.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), renderTimeout)
		defer cancel()

		snap := ctrl.Evaluate(ctx, ctrl.DefaultSelection())
		signals, err := handlers.InitialSignals(snap)
		if err != nil {
			logger.Error("encode initial signals", "error", err)
			http.Error(w, "render error", http.StatusInternalServerError)
			return
		}

		opts := ctrl.Options()
		view := templates.DashboardView{
			Manufacturers: opts.Manufacturers,
			Regions:       opts.Regions,
			Categories:    templates.CategoryOptions(),
			KPIs:          snap.Charts.KPIs,
			Signals:       signals,
			Degraded:      ctrl.Store().Source().Degraded,
		}

		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		w.Header().Set("Cache-Control", "no-cache")
		if err := templates.Dashboard(view).Render(ctx, w); err != nil {
			logger.Error("render dashboard", "error", err)
			http.Error(w, "render error", http.StatusInternalServerError)
		}
	}
}

// loadDataset loads the configured dataset. A load failure is logged and
// yields an empty, degraded dataset so the dashboard still starts.
func loadDataset(ctx context.Context, cfg config.DatasetConfig, logger *slog.Logger) *dataset.Dataset {
	ctx, cancel := context.WithTimeout(ctx, cfg.LoadTimeout)
	defer cancel()

	start := time.Now()
	ds, err := dataset.NewLoader(logger).Load(ctx, dataset.Source{
		DataFile:  cfg.CSVFile,
		ModelFile: cfg.ModelFile,
		CacheDir:  cfg.CacheDir,
	})
	if err != nil {
		var loadErr *dataset.LoadError
		if errors.As(err, &loadErr) {
			logger.Error("error loading data or model",
				"path", loadErr.Path,
				"line", loadErr.Line,
				"error", loadErr.Err,
			)
		} else {
			logger.Error("error loading data or model", "error", err)
		}
		return dataset.Empty()
	}

	src := ds.Source()
	logger.Info("dataset loaded",
		"records", src.RecordCount,
		"from_cache", src.FromCache,
		"model_bytes", src.ModelBytes,
		"duration", time.Since(start),
	)
	return ds
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load configuration", "error", err)
		os.Exit(1)
	}

	logger := observability.NewLogger(cfg.Logger)
	slog.SetDefault(logger)

	logger.Info("starting application",
		"version", version,
		"config", cfg,
	)

	ds := loadDataset(context.Background(), cfg.Dataset, logger)
	ctrl := controller.New(ds, logger)

	templateHandlers := &server.TemplateHandlers{
		Dashboard: dashboardHandler(ctrl, logger),
	}

	srv := server.NewServer(ctrl, logger, templateHandlers)

	rateLimiter := middleware.NewRateLimiter(cfg.Security)

	middlewareChain := middleware.Chain(
		middleware.Recovery(logger),
		middleware.RequestID(),
		middleware.Logger(logger),
		middleware.Tracing(logger),
		middleware.SecurityHeaders(),
		middleware.CORS(cfg.Security),
		middleware.TrustedProxy(cfg.Security),
		middleware.RateLimit(rateLimiter, logger),
	)

	handler := middlewareChain(srv)

	httpServer := &http.Server{
		Addr:         cfg.Address(),
		Handler:      handler,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	gracefulServer := server.NewGracefulServer(httpServer, logger, cfg)

	gracefulServer.RegisterShutdownHook(func(ctx context.Context) error {
		last := ctrl.Last()
		logger.Info("shutting down dashboard",
			"last_seq", last.Seq,
			"records", ds.Len(),
		)
		return nil
	})

	if err := gracefulServer.ListenAndServe(); err != nil {
		logger.Error("server failed", "error", err)
		os.Exit(1)
	}

	logger.Info("application stopped gracefully")
}
