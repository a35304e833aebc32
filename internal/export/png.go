package export

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"autosales-dashboard/internal/presentation"
	"github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"
)

const (
	imageWidth  = 1024
	imageHeight = 512
)

// Chart names accepted by RenderPNG.
const (
	ChartTrend          = "trend"
	ChartCategory       = "category"
	ChartRegion         = "region"
	ChartClassification = "classification"
)

var (
	ErrUnknownChart  = errors.New("unknown chart")
	ErrNotRenderable = errors.New("chart cannot be rendered as an image")
	ErrNoData        = errors.New("no data to render")
)

// ImageCharts lists the charts RenderPNG can draw.
var ImageCharts = []string{ChartTrend, ChartCategory, ChartClassification}

// RenderPNG draws the named chart from d as a PNG image.
func RenderPNG(w io.Writer, d presentation.ChartDescriptors, name string) error {
	switch name {
	case ChartTrend, ChartCategory, ChartClassification:
	case ChartRegion:
		return fmt.Errorf("%s: %w", name, ErrNotRenderable)
	default:
		return fmt.Errorf("%q: %w", name, ErrUnknownChart)
	}

	if d.NoData {
		return ErrNoData
	}

	switch name {
	case ChartTrend:
		return renderLine(w, d.Trend)
	case ChartCategory:
		return renderBars(w, d.Category)
	default:
		return renderPie(w, d.Classification)
	}
}

func renderLine(w io.Writer, c presentation.LineChart) error {
	if len(c.Points) == 0 {
		return ErrNoData
	}

	xs := make([]float64, len(c.Points))
	ys := make([]float64, len(c.Points))
	ticks := make([]chart.Tick, len(c.Points))
	for i, p := range c.Points {
		xs[i] = float64(i)
		ys[i] = p.Value
		ticks[i] = chart.Tick{Value: float64(i), Label: p.Label}
	}

	graph := chart.Chart{
		Title:  c.Title,
		Width:  imageWidth,
		Height: imageHeight,
		Background: chart.Style{
			Padding: chart.Box{Top: 50, Left: 20, Right: 20, Bottom: 20},
		},
		XAxis: chart.XAxis{
			Name:  c.XAxis,
			Range: &chart.ContinuousRange{Min: 0, Max: max(1, float64(len(c.Points)-1))},
			Ticks: ticks,
		},
		YAxis: chart.YAxis{
			Name:  c.YAxis,
			Range: &chart.ContinuousRange{Min: 0, Max: headroom(c.MaxValue())},
		},
		Series: []chart.Series{
			chart.ContinuousSeries{
				Name:    c.YAxis,
				XValues: xs,
				YValues: ys,
				Style: chart.Style{
					StrokeColor: hexColor("#636EFA"),
					StrokeWidth: 2,
					DotColor:    hexColor("#636EFA"),
					DotWidth:    3,
				},
			},
		},
	}

	return graph.Render(chart.PNG, w)
}

func renderBars(w io.Writer, c presentation.BarChart) error {
	if len(c.Bars) == 0 {
		return ErrNoData
	}

	top := 0.0
	bars := make([]chart.Value, 0, len(c.Bars))
	for _, b := range c.Bars {
		top = max(top, b.Value)
		bars = append(bars, chart.Value{
			Label: b.Label,
			Value: b.Value,
			Style: chart.Style{
				FillColor:   hexColor(b.Color),
				StrokeColor: hexColor(b.Color),
			},
		})
	}

	graph := chart.BarChart{
		Title:    c.Title,
		Width:    imageWidth,
		Height:   imageHeight,
		BarWidth: 80,
		Background: chart.Style{
			Padding: chart.Box{Top: 50},
		},
		YAxis: chart.YAxis{
			Range: &chart.ContinuousRange{Min: 0, Max: headroom(top)},
		},
		Bars: bars,
	}

	return graph.Render(chart.PNG, w)
}

func renderPie(w io.Writer, c presentation.PieChart) error {
	values := make([]chart.Value, 0, len(c.Slices))
	for _, s := range c.Slices {
		if s.Value <= 0 {
			continue
		}
		values = append(values, chart.Value{
			Label: s.Label,
			Value: s.Value,
			Style: chart.Style{FillColor: hexColor(s.Color)},
		})
	}
	if len(values) == 0 {
		return ErrNoData
	}

	graph := chart.PieChart{
		Title:  c.Title,
		Width:  imageHeight,
		Height: imageHeight,
		Values: values,
	}

	return graph.Render(chart.PNG, w)
}

func headroom(v float64) float64 {
	if v <= 0 {
		return 1
	}
	return v * 1.1
}

func hexColor(hex string) drawing.Color {
	return drawing.ColorFromHex(strings.TrimPrefix(hex, "#"))
}
