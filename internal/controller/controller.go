package controller

import (
	"context"
	"log/slog"
	"slices"
	"strconv"
	"sync"
	"sync/atomic"
	"time"

	"autosales-dashboard/internal/dataset"
	"autosales-dashboard/internal/models"
	"autosales-dashboard/internal/observability"
	"autosales-dashboard/internal/presentation"
	"autosales-dashboard/internal/services"
)

type State int32

const (
	Idle State = iota
	Computing
)

func (s State) String() string {
	switch s {
	case Idle:
		return "idle"
	case Computing:
		return "computing"
	default:
		return "unknown"
	}
}

// Snapshot is one published compute cycle: the selection, its aggregates
// and the descriptors derived from them.
type Snapshot struct {
	Seq        uint64                        `json:"seq"`
	Selection  models.Selection              `json:"selection"`
	Result     services.AggregateResult      `json:"result"`
	Charts     presentation.ChartDescriptors `json:"charts"`
	ComputedAt time.Time                     `json:"computed_at"`
}

// Options are the choices offered by the three filter controls.
type Options struct {
	Manufacturers []string `json:"manufacturers"`
	Regions       []string `json:"regions"`
	Categories    []string `json:"categories"`
}

// Controller runs filter, aggregate and present for each control change.
// Apply calls are serialized; the last one applied is what Last returns.
type Controller struct {
	store  *dataset.Dataset
	logger *slog.Logger

	mu    sync.Mutex
	state atomic.Int32
	seq   uint64
	last  Snapshot
}

func New(store *dataset.Dataset, logger *slog.Logger) *Controller {
	if logger == nil {
		logger = slog.Default()
	}
	c := &Controller{
		store:  store,
		logger: logger,
	}
	c.Apply(context.Background(), c.DefaultSelection())
	return c
}

func (c *Controller) Store() *dataset.Dataset {
	return c.store
}

func (c *Controller) Options() Options {
	return Options{
		Manufacturers: c.store.Manufacturers(),
		Regions:       c.store.Regions(),
		Categories:    slices.Clone(models.Categories),
	}
}

// DefaultSelection selects every manufacturer, every region and "All".
func (c *Controller) DefaultSelection() models.Selection {
	return models.Selection{
		Manufacturers: c.store.Manufacturers(),
		Regions:       c.store.Regions(),
		Category:      models.CategoryAll,
	}
}

// Resolve fills controls that were not supplied (nil) with their defaults.
func (c *Controller) Resolve(sel models.Selection) models.Selection {
	if sel.Manufacturers == nil {
		sel.Manufacturers = c.store.Manufacturers()
	}
	if sel.Regions == nil {
		sel.Regions = c.store.Regions()
	}
	if sel.Category == "" {
		sel.Category = models.CategoryAll
	}
	return sel
}

// Apply recomputes every output for sel and publishes the result.
func (c *Controller) Apply(ctx context.Context, sel models.Selection) Snapshot {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.state.Store(int32(Computing))
	defer c.state.Store(int32(Idle))

	c.seq++
	snap := c.compute(ctx, sel)
	snap.Seq = c.seq
	c.last = snap

	c.logger.Debug("dashboard recomputed",
		"seq", snap.Seq,
		"rows", snap.Result.RowCount,
		"category", snap.Selection.Category,
	)
	return snap
}

// Evaluate computes the outputs for sel without publishing them. The
// returned snapshot has Seq 0.
func (c *Controller) Evaluate(ctx context.Context, sel models.Selection) Snapshot {
	return c.compute(ctx, sel)
}

func (c *Controller) compute(ctx context.Context, sel models.Selection) Snapshot {
	_, span := observability.StartSpan(ctx, "dashboard.compute")
	defer func() {
		span.Finish()
		c.logger.Debug("dashboard compute", span.LogAttrs())
	}()

	sel = c.Resolve(sel)
	span.SetTag("manufacturers", strconv.Itoa(len(sel.Manufacturers)))
	span.SetTag("regions", strconv.Itoa(len(sel.Regions)))
	span.SetTag("category", sel.Category)

	result := services.Aggregate(services.Filter(c.store, sel))
	span.SetTag("rows", strconv.Itoa(result.RowCount))

	return Snapshot{
		Selection:  sel,
		Result:     result,
		Charts:     presentation.Present(result),
		ComputedAt: time.Now(),
	}
}

// Last returns the most recently published snapshot.
func (c *Controller) Last() Snapshot {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.last
}

func (c *Controller) State() State {
	return State(c.state.Load())
}
