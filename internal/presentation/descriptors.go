package presentation

import (
	"fmt"
	"math"
	"slices"

	"autosales-dashboard/internal/models"
	"autosales-dashboard/internal/services"
	"github.com/dustin/go-humanize"
	"github.com/shopspring/decimal"
)

const (
	NoDataTitle = "No data to display based on filters."

	TrendTitle          = "Sales Volume Trend Over Time"
	CategoryTitle       = "Average Price by Sales Category (k)"
	HeatmapTitle        = "Sales Volume Heatmap by Region and Manufacturer"
	ClassificationTitle = "Sales Classification Distribution (Target Variable)"

	HeatColorScale = "Viridis"

	SuccessColor = "#4CAF50"
	FailureColor = "#F44336"
)

// Category bar colors. Known categories keep their color whatever subset is
// shown; anything else takes the remaining palette in order.
var (
	categoryColors = map[string]string{
		models.CategoryHigh:   "#636EFA",
		models.CategoryLow:    "#EF553B",
		models.CategoryMedium: "#00CC96",
	}
	fallbackColors = []string{
		"#AB63FA", "#FFA15A", "#19D3F3", "#FF6692", "#B6E880", "#FF97FF", "#FECB52",
	}
)

// KPIText holds the three formatted KPI strings.
type KPIText struct {
	TotalSales  string `json:"totalSales"`
	AvgPrice    string `json:"avgPrice"`
	SuccessRate string `json:"successRate"`
}

type Point struct {
	Label string  `json:"label"`
	Value float64 `json:"value"`
}

type LineChart struct {
	Title  string  `json:"title"`
	XAxis  string  `json:"xAxis"`
	YAxis  string  `json:"yAxis"`
	Points []Point `json:"points"`
}

type Bar struct {
	Label string  `json:"label"`
	Value float64 `json:"value"`
	Color string  `json:"color"`
}

type BarChart struct {
	Title string `json:"title"`
	XAxis string `json:"xAxis"`
	YAxis string `json:"yAxis"`
	Bars  []Bar  `json:"bars"`
}

type HeatCell struct {
	X     string  `json:"x"`
	Y     string  `json:"y"`
	Value float64 `json:"value"`
}

// HeatGrid is sparse: pairs without rows have no cell.
type HeatGrid struct {
	Title      string     `json:"title"`
	XAxis      string     `json:"xAxis"`
	YAxis      string     `json:"yAxis"`
	XLabels    []string   `json:"xLabels"`
	YLabels    []string   `json:"yLabels"`
	ColorScale string     `json:"colorScale"`
	Cells      []HeatCell `json:"cells"`
}

type Slice struct {
	Label string  `json:"label"`
	Value float64 `json:"value"`
	Color string  `json:"color"`
}

type PieChart struct {
	Title  string  `json:"title"`
	Slices []Slice `json:"slices"`
}

// ChartDescriptors is the full set of outputs for one selection. They are
// always replaced together.
type ChartDescriptors struct {
	NoData         bool      `json:"noData"`
	KPIs           KPIText   `json:"kpis"`
	Trend          LineChart `json:"trend"`
	Category       BarChart  `json:"category"`
	Region         HeatGrid  `json:"region"`
	Classification PieChart  `json:"classification"`
}

// Present maps an aggregate result to renderable descriptors.
func Present(res services.AggregateResult) ChartDescriptors {
	if res.Empty {
		return noData()
	}

	return ChartDescriptors{
		KPIs:           FormatKPIs(res),
		Trend:          trendChart(res.Trend),
		Category:       categoryChart(res.Categories),
		Region:         heatGrid(res.RegionMatrix),
		Classification: pieChart(res.Success),
	}
}

// FormatKPIs renders the KPI values as display strings.
func FormatKPIs(res services.AggregateResult) KPIText {
	if res.Empty {
		return KPIText{TotalSales: "0", AvgPrice: "$0k", SuccessRate: "0.0%"}
	}

	total := finiteDecimal(res.KPIs.TotalSales).RoundBank(0).IntPart()
	return KPIText{
		TotalSales:  humanize.Comma(total),
		AvgPrice:    "$" + finiteDecimal(res.KPIs.AvgPrice).StringFixed(1) + "k",
		SuccessRate: fmt.Sprintf("%.1f%%", res.KPIs.SuccessRate),
	}
}

// finiteDecimal maps NaN and infinities to zero; decimal cannot represent them.
func finiteDecimal(v float64) decimal.Decimal {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return decimal.Zero
	}
	return decimal.NewFromFloat(v)
}

func noData() ChartDescriptors {
	return ChartDescriptors{
		NoData:         true,
		KPIs:           KPIText{TotalSales: "0", AvgPrice: "$0k", SuccessRate: "0.0%"},
		Trend:          LineChart{Title: NoDataTitle, Points: []Point{}},
		Category:       BarChart{Title: NoDataTitle, Bars: []Bar{}},
		Region:         HeatGrid{Title: NoDataTitle, XLabels: []string{}, YLabels: []string{}, ColorScale: HeatColorScale, Cells: []HeatCell{}},
		Classification: PieChart{Title: NoDataTitle, Slices: []Slice{}},
	}
}

func trendChart(rows []models.PeriodVolume) LineChart {
	points := make([]Point, 0, len(rows))
	for _, r := range rows {
		points = append(points, Point{Label: r.Period, Value: r.Volume})
	}
	return LineChart{
		Title:  TrendTitle,
		XAxis:  "TimePeriod",
		YAxis:  "SalesVolume",
		Points: points,
	}
}

func categoryChart(rows []models.CategoryPrice) BarChart {
	bars := make([]Bar, 0, len(rows))
	next := 0
	for _, r := range rows {
		color, ok := categoryColors[r.Category]
		if !ok {
			color = fallbackColors[next%len(fallbackColors)]
			next++
		}
		bars = append(bars, Bar{Label: r.Category, Value: r.AvgPrice, Color: color})
	}
	return BarChart{
		Title: CategoryTitle,
		XAxis: "Sales_Category",
		YAxis: "Price_k",
		Bars:  bars,
	}
}

func heatGrid(rows []models.RegionVolume) HeatGrid {
	cells := make([]HeatCell, 0, len(rows))
	var xs, ys []string
	for _, r := range rows {
		cells = append(cells, HeatCell{X: r.Region, Y: r.Manufacturer, Value: r.Volume})
		if !slices.Contains(xs, r.Region) {
			xs = append(xs, r.Region)
		}
		if !slices.Contains(ys, r.Manufacturer) {
			ys = append(ys, r.Manufacturer)
		}
	}
	slices.Sort(xs)
	slices.Sort(ys)
	if xs == nil {
		xs = []string{}
	}
	if ys == nil {
		ys = []string{}
	}

	return HeatGrid{
		Title:      HeatmapTitle,
		XAxis:      "Region",
		YAxis:      "Manufacturer",
		XLabels:    xs,
		YLabels:    ys,
		ColorScale: HeatColorScale,
		Cells:      cells,
	}
}

func pieChart(rows []models.SuccessCount) PieChart {
	out := make([]Slice, 0, len(rows))
	for _, r := range rows {
		color := FailureColor
		if r.Label == models.SuccessLabel {
			color = SuccessColor
		}
		out = append(out, Slice{Label: r.Label, Value: float64(r.Count), Color: color})
	}
	return PieChart{Title: ClassificationTitle, Slices: out}
}

// MaxValue returns the largest point value, or 0 for no points.
func (c LineChart) MaxValue() float64 {
	m := 0.0
	for _, p := range c.Points {
		m = math.Max(m, p.Value)
	}
	return m
}
