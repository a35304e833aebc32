package templates

import (
	"autosales-dashboard/internal/models"
	"autosales-dashboard/internal/presentation"
)

type CategoryOption struct {
	Value string
	Label string
}

// DashboardView is everything the page needs on first render. Signals is the
// JSON object seeded into data-signals.
type DashboardView struct {
	Manufacturers []string
	Regions       []string
	Categories    []CategoryOption
	KPIs          presentation.KPIText
	Signals       string
	Degraded      bool
}

// CategoryOptions returns the radio items in display order.
func CategoryOptions() []CategoryOption {
	out := make([]CategoryOption, 0, len(models.Categories))
	for _, c := range models.Categories {
		out = append(out, CategoryOption{Value: c, Label: CategoryLabel(c)})
	}
	return out
}

func CategoryLabel(c string) string {
	if c == models.CategoryAll {
		return "All Categories"
	}
	return c + " Sales"
}
