package handlers

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"autosales-dashboard/internal/controller"
	"autosales-dashboard/internal/errors"
	"autosales-dashboard/internal/models"
	"autosales-dashboard/internal/observability"
	"autosales-dashboard/internal/presentation"
	"autosales-dashboard/internal/ui/templates"
	"github.com/starfederation/datastar-go/datastar"
)

// DashboardSignals is the client state bound to the three filter controls.
// A nil list means the control was never sent and falls back to all values.
type DashboardSignals struct {
	Manufacturers *[]string `json:"manufacturers"`
	Regions       *[]string `json:"regions"`
	Category      string    `json:"category"`
}

func (s DashboardSignals) Selection() models.Selection {
	sel := models.Selection{Category: s.Category}
	if s.Manufacturers != nil {
		sel.Manufacturers = append([]string{}, *s.Manufacturers...)
	}
	if s.Regions != nil {
		sel.Regions = append([]string{}, *s.Regions...)
	}
	return sel
}

type SSEHandlers struct {
	ctrl   *controller.Controller
	logger *slog.Logger
}

func NewSSEHandlers(ctrl *controller.Controller, logger *slog.Logger) *SSEHandlers {
	return &SSEHandlers{
		ctrl:   ctrl,
		logger: logger,
	}
}

// HandleDashboard recomputes the dashboard for the submitted controls and
// patches the KPI cards and the chart signals.
func (h *SSEHandlers) HandleDashboard(w http.ResponseWriter, r *http.Request) {
	requestID := observability.GetRequestID(r.Context())

	var signals DashboardSignals
	if err := datastar.ReadSignals(r, &signals); err != nil {
		errors.WriteError(w, h.logger, errors.BadRequestWrap(err, "invalid signals"), requestID)
		return
	}
	if err := validateCategory(signals.Category); err != nil {
		errors.WriteError(w, h.logger, err, requestID)
		return
	}

	snap := h.ctrl.Apply(r.Context(), signals.Selection())

	sse := datastar.NewSSE(w, r)

	if err := sse.PatchElementTempl(templates.KPICards(snap.Charts.KPIs)); err != nil {
		h.logger.Error("patch kpi cards", "error", err, "request_id", requestID)
		return
	}

	if err := sse.MarshalAndPatchSignals(chartSignals(snap.Charts)); err != nil {
		h.logger.Error("patch chart signals", "error", err, "request_id", requestID)
		return
	}

	if f, ok := w.(http.Flusher); ok {
		f.Flush()
	}
}

// InitialSignals is the data-signals JSON for a freshly rendered page.
func InitialSignals(snap controller.Snapshot) (string, error) {
	b, err := json.Marshal(struct {
		Manufacturers []string                      `json:"manufacturers"`
		Regions       []string                      `json:"regions"`
		Category      string                        `json:"category"`
		Charts        presentation.ChartDescriptors `json:"charts"`
	}{
		Manufacturers: snap.Selection.Manufacturers,
		Regions:       snap.Selection.Regions,
		Category:      snap.Selection.Category,
		Charts:        snap.Charts,
	})
	if err != nil {
		return "", err
	}
	return string(b), nil
}

func chartSignals(c presentation.ChartDescriptors) map[string]any {
	return map[string]any{
		"charts": c,
	}
}
