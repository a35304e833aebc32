package handlers

import (
	"log/slog"
	"net/http"
	"time"

	"autosales-dashboard/internal/controller"
	"autosales-dashboard/internal/dataset"
	"autosales-dashboard/internal/errors"
	"autosales-dashboard/internal/models"
	"autosales-dashboard/internal/observability"
	"autosales-dashboard/internal/presentation"
	"autosales-dashboard/internal/services"
)

const (
	version      = "1.0.0"
	cacheControl = "public, max-age=300"
)

type APIHandlers struct {
	ctrl   *controller.Controller
	logger *slog.Logger
}

func NewAPIHandlers(ctrl *controller.Controller, logger *slog.Logger) *APIHandlers {
	return &APIHandlers{
		ctrl:   ctrl,
		logger: logger,
	}
}

// DashboardResponse is the JSON form of one computed selection.
type DashboardResponse struct {
	Selection models.Selection              `json:"selection"`
	RowCount  int                           `json:"row_count"`
	Result    services.AggregateResult      `json:"result"`
	Charts    presentation.ChartDescriptors `json:"charts"`
}

type StatsResponse struct {
	Source        dataset.SourceInfo `json:"source"`
	Manufacturers int                `json:"manufacturers"`
	Regions       int                `json:"regions"`
	LastSeq       uint64             `json:"last_seq"`
	LastComputed  time.Time          `json:"last_computed"`
	State         string             `json:"state"`
}

func (h *APIHandlers) HandleOptions(w http.ResponseWriter, r *http.Request) {
	headers := map[string]string{
		"Cache-Control": cacheControl,
	}

	h.write(r, errors.WriteSuccessWithHeaders(w, h.ctrl.Options(), headers))
}

func (h *APIHandlers) HandleDashboard(w http.ResponseWriter, r *http.Request) {
	sel, err := parseSelection(r.URL.Query())
	if err != nil {
		errors.WriteError(w, h.logger, err, observability.GetRequestID(r.Context()))
		return
	}

	snap := h.ctrl.Evaluate(r.Context(), sel)

	h.write(r, errors.WriteSuccess(w, DashboardResponse{
		Selection: snap.Selection,
		RowCount:  snap.Result.RowCount,
		Result:    snap.Result,
		Charts:    snap.Charts,
	}))
}

func (h *APIHandlers) HandleHealth(w http.ResponseWriter, r *http.Request) {
	status := "healthy"
	if h.ctrl.Store().Source().Degraded {
		status = "degraded"
	}

	healthData := map[string]string{
		"status":    status,
		"timestamp": time.Now().Format(time.RFC3339),
		"version":   version,
	}

	h.write(r, errors.WriteSuccess(w, healthData))
}

func (h *APIHandlers) HandleStats(w http.ResponseWriter, r *http.Request) {
	store := h.ctrl.Store()
	last := h.ctrl.Last()

	stats := StatsResponse{
		Source:        store.Source(),
		Manufacturers: len(store.Manufacturers()),
		Regions:       len(store.Regions()),
		LastSeq:       last.Seq,
		LastComputed:  last.ComputedAt,
		State:         h.ctrl.State().String(),
	}

	h.write(r, errors.WriteSuccess(w, stats))
}

func (h *APIHandlers) write(r *http.Request, err error) {
	if err != nil {
		h.logger.Error("write response",
			"error", err,
			"path", r.URL.Path,
			"request_id", observability.GetRequestID(r.Context()),
		)
	}
}
