package export

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"autosales-dashboard/internal/models"
	"autosales-dashboard/internal/presentation"
	"autosales-dashboard/internal/services"
	"github.com/xuri/excelize/v2"
	"golang.org/x/sync/errgroup"
)

// Workbook sheet names.
const (
	SheetSummary        = "KPIs"
	SheetTrend          = "Trend"
	SheetCategories     = "Categories"
	SheetRegions        = "Regions"
	SheetClassification = "Classification"
	SheetCharts         = "Charts"
)

// WriteWorkbook writes the selection, KPIs and the four aggregate tables as
// an xlsx workbook. When there is data, the image charts are embedded on a
// separate sheet.
func WriteWorkbook(ctx context.Context, w io.Writer, sel models.Selection, res services.AggregateResult, d presentation.ChartDescriptors) error {
	f := excelize.NewFile()
	defer f.Close()

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true},
		Fill:      excelize.Fill{Type: "pattern", Color: []string{"#E2E8F0"}, Pattern: 1},
		Alignment: &excelize.Alignment{Horizontal: "center"},
	})
	if err != nil {
		return fmt.Errorf("create header style: %w", err)
	}

	if err := f.SetSheetName("Sheet1", SheetSummary); err != nil {
		return err
	}
	for _, name := range []string{SheetTrend, SheetCategories, SheetRegions, SheetClassification} {
		if _, err := f.NewSheet(name); err != nil {
			return fmt.Errorf("create sheet %s: %w", name, err)
		}
	}

	summary := [][]any{
		{"Metric", "Value"},
		{"Manufacturers", strings.Join(sel.Manufacturers, ", ")},
		{"Regions", strings.Join(sel.Regions, ", ")},
		{"Sales Category", sel.Category},
		{"Rows", res.RowCount},
		{"Total Sales Volume", d.KPIs.TotalSales},
		{"Average Vehicle Price", d.KPIs.AvgPrice},
		{"Success Rate (ML Target)", d.KPIs.SuccessRate},
	}
	if err := writeRows(f, SheetSummary, summary, headerStyle); err != nil {
		return err
	}

	trend := [][]any{{"TimePeriod", "SalesVolume"}}
	for _, r := range res.Trend {
		trend = append(trend, []any{r.Period, r.Volume})
	}
	if err := writeRows(f, SheetTrend, trend, headerStyle); err != nil {
		return err
	}

	categories := [][]any{{"Sales_Category", "Price_k (mean)"}}
	for _, r := range res.Categories {
		categories = append(categories, []any{r.Category, r.AvgPrice})
	}
	if err := writeRows(f, SheetCategories, categories, headerStyle); err != nil {
		return err
	}

	if err := writeHeatGrid(f, d.Region, headerStyle); err != nil {
		return err
	}

	classification := [][]any{{"Classification", "Count"}}
	for _, r := range res.Success {
		classification = append(classification, []any{r.Label, r.Count})
	}
	if err := writeRows(f, SheetClassification, classification, headerStyle); err != nil {
		return err
	}

	if !d.NoData {
		if err := embedCharts(ctx, f, d); err != nil {
			return err
		}
	}

	f.SetActiveSheet(0)
	_, err = f.WriteTo(w)
	return err
}

func writeRows(f *excelize.File, sheet string, rows [][]any, headerStyle int) error {
	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow(sheet, cell, &row); err != nil {
			return fmt.Errorf("write %s row %d: %w", sheet, i+1, err)
		}
	}
	return f.SetRowStyle(sheet, 1, 1, headerStyle)
}

// writeHeatGrid lays the sparse region matrix out as a pivot: one row per
// manufacturer, one column per region. Missing pairs stay blank.
func writeHeatGrid(f *excelize.File, g presentation.HeatGrid, headerStyle int) error {
	if err := f.SetCellValue(SheetRegions, "A1", "Manufacturer \\ Region"); err != nil {
		return err
	}

	col := make(map[string]int, len(g.XLabels))
	for i, x := range g.XLabels {
		col[x] = i + 2
		cell, _ := excelize.CoordinatesToCellName(i+2, 1)
		if err := f.SetCellValue(SheetRegions, cell, x); err != nil {
			return err
		}
	}

	row := make(map[string]int, len(g.YLabels))
	for i, y := range g.YLabels {
		row[y] = i + 2
		cell, _ := excelize.CoordinatesToCellName(1, i+2)
		if err := f.SetCellValue(SheetRegions, cell, y); err != nil {
			return err
		}
	}

	for _, c := range g.Cells {
		cell, err := excelize.CoordinatesToCellName(col[c.X], row[c.Y])
		if err != nil {
			return err
		}
		if err := f.SetCellValue(SheetRegions, cell, c.Value); err != nil {
			return err
		}
	}

	return f.SetRowStyle(SheetRegions, 1, 1, headerStyle)
}

// embedCharts renders the image charts concurrently and places them on the
// Charts sheet, one below another.
func embedCharts(ctx context.Context, f *excelize.File, d presentation.ChartDescriptors) error {
	images := make([][]byte, len(ImageCharts))

	g, gctx := errgroup.WithContext(ctx)
	for i, name := range ImageCharts {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			var buf bytes.Buffer
			if err := RenderPNG(&buf, d, name); err != nil {
				if errors.Is(err, ErrNoData) {
					return nil
				}
				return fmt.Errorf("render %s: %w", name, err)
			}
			images[i] = buf.Bytes()
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}

	if _, err := f.NewSheet(SheetCharts); err != nil {
		return err
	}

	rowOffset := 1
	for i, img := range images {
		if img == nil {
			continue
		}
		cell, _ := excelize.CoordinatesToCellName(1, rowOffset)
		if err := f.AddPictureFromBytes(SheetCharts, cell, &excelize.Picture{
			Extension: ".png",
			File:      img,
			Format:    &excelize.GraphicOptions{AltText: ImageCharts[i]},
		}); err != nil {
			return fmt.Errorf("embed %s chart: %w", ImageCharts[i], err)
		}
		rowOffset += 28
	}
	return nil
}
