package handlers

import (
	"bytes"
	stderrors "errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"autosales-dashboard/internal/controller"
	"autosales-dashboard/internal/errors"
	"autosales-dashboard/internal/export"
	"autosales-dashboard/internal/observability"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

type ExportHandlers struct {
	ctrl   *controller.Controller
	logger *slog.Logger
}

func NewExportHandlers(ctrl *controller.Controller, logger *slog.Logger) *ExportHandlers {
	return &ExportHandlers{
		ctrl:   ctrl,
		logger: logger,
	}
}

// HandleChartPNG renders one chart for the query selection as a PNG.
func (h *ExportHandlers) HandleChartPNG(w http.ResponseWriter, r *http.Request) {
	requestID := observability.GetRequestID(r.Context())
	name := r.PathValue("name")

	sel, err := parseSelection(r.URL.Query())
	if err != nil {
		errors.WriteError(w, h.logger, err, requestID)
		return
	}

	snap := h.ctrl.Evaluate(r.Context(), sel)

	var buf bytes.Buffer
	if err := export.RenderPNG(&buf, snap.Charts, name); err != nil {
		errors.WriteError(w, h.logger, exportError(err, name), requestID)
		return
	}

	w.Header().Set("Content-Type", "image/png")
	w.Header().Set("Content-Disposition", fmt.Sprintf("inline; filename=%q", name+".png"))
	if _, err := buf.WriteTo(w); err != nil {
		h.logger.Error("write chart image", "error", err, "chart", name, "request_id", requestID)
	}
}

// HandleXLSX exports the query selection as an xlsx workbook.
func (h *ExportHandlers) HandleXLSX(w http.ResponseWriter, r *http.Request) {
	requestID := observability.GetRequestID(r.Context())

	sel, err := parseSelection(r.URL.Query())
	if err != nil {
		errors.WriteError(w, h.logger, err, requestID)
		return
	}

	snap := h.ctrl.Evaluate(r.Context(), sel)

	var buf bytes.Buffer
	if err := export.WriteWorkbook(r.Context(), &buf, snap.Selection, snap.Result, snap.Charts); err != nil {
		errors.WriteError(w, h.logger, errors.InternalWrap(err, "failed to build workbook"), requestID)
		return
	}

	filename := fmt.Sprintf("autosales-%s.xlsx", time.Now().Format("20060102-150405"))
	w.Header().Set("Content-Type", xlsxContentType)
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	if _, err := buf.WriteTo(w); err != nil {
		h.logger.Error("write workbook", "error", err, "request_id", requestID)
	}
}

func exportError(err error, name string) error {
	switch {
	case stderrors.Is(err, export.ErrUnknownChart):
		return errors.NotFound(fmt.Sprintf("unknown chart %q", name))
	case stderrors.Is(err, export.ErrNotRenderable):
		return errors.BadRequestWrap(err, "chart cannot be exported as an image")
	case stderrors.Is(err, export.ErrNoData):
		return errors.NotFound("no data to display based on filters")
	default:
		return errors.InternalWrap(err, "failed to render chart")
	}
}
