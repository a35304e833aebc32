package services

import (
	"cmp"
	"math"
	"slices"
	"strconv"

	"autosales-dashboard/internal/dataset"
	"autosales-dashboard/internal/models"
	"github.com/shopspring/decimal"
)

// AggregateResult is everything the dashboard shows for one selection.
type AggregateResult struct {
	Filtered     *dataset.Dataset       `json:"-"`
	RowCount     int                    `json:"row_count"`
	Empty        bool                   `json:"empty"`
	KPIs         models.KPIs            `json:"kpis"`
	Trend        []models.PeriodVolume  `json:"trend"`
	Categories   []models.CategoryPrice `json:"categories"`
	RegionMatrix []models.RegionVolume  `json:"region_matrix"`
	Success      []models.SuccessCount  `json:"success"`
}

// Filter keeps rows whose manufacturer and region are selected and, unless
// the category is "All" or empty, whose sales category matches.
// Empty manufacturer or region selections match nothing.
func Filter(ds *dataset.Dataset, sel models.Selection) *dataset.Dataset {
	manufacturers := toSet(sel.Manufacturers)
	regions := toSet(sel.Regions)
	byCategory := sel.Category != "" && sel.Category != models.CategoryAll

	kept := make([]models.SalesRecord, 0)
	if len(manufacturers) == 0 || len(regions) == 0 {
		return dataset.FromRecords(kept)
	}

	for r := range ds.All() {
		if _, ok := manufacturers[r.Manufacturer]; !ok {
			continue
		}
		if _, ok := regions[r.Region]; !ok {
			continue
		}
		if byCategory && r.SalesCategory != sel.Category {
			continue
		}
		kept = append(kept, r)
	}
	return dataset.FromRecords(kept)
}

func toSet(items []string) map[string]struct{} {
	set := make(map[string]struct{}, len(items))
	for _, item := range items {
		set[item] = struct{}{}
	}
	return set
}

type meanAcc struct {
	sum   float64
	count int
}

func (m meanAcc) mean() float64 {
	if m.count == 0 {
		return 0
	}
	return m.sum / float64(m.count)
}

type regionKey struct {
	region       string
	manufacturer string
}

// Aggregate computes the KPIs and the four chart tables in one pass.
func Aggregate(ds *dataset.Dataset) AggregateResult {
	result := AggregateResult{
		Filtered:     ds,
		RowCount:     ds.Len(),
		Trend:        []models.PeriodVolume{},
		Categories:   []models.CategoryPrice{},
		RegionMatrix: []models.RegionVolume{},
		Success:      []models.SuccessCount{},
	}
	if ds.Len() == 0 {
		result.Empty = true
		return result
	}

	var (
		totalSales float64
		price      meanAcc
		success    meanAcc
	)
	trendGroups := make(map[string]float64)
	categoryGroups := make(map[string]*meanAcc)
	regionGroups := make(map[regionKey]float64)
	successGroups := make(map[float64]int)

	for r := range ds.All() {
		totalSales += r.SalesVolume
		price.sum += r.PriceK
		price.count++
		success.sum += r.IsSuccess
		success.count++

		trendGroups[r.TimePeriod] += r.SalesVolume

		if categoryGroups[r.SalesCategory] == nil {
			categoryGroups[r.SalesCategory] = &meanAcc{}
		}
		categoryGroups[r.SalesCategory].sum += r.PriceK
		categoryGroups[r.SalesCategory].count++

		regionGroups[regionKey{region: r.Region, manufacturer: r.Manufacturer}] += r.SalesVolume

		if _, ok := models.SuccessLabelFor(r.IsSuccess); ok {
			successGroups[r.IsSuccess]++
		}
	}

	result.KPIs = models.KPIs{
		TotalSales:  totalSales,
		AvgPrice:    RoundTo1(price.mean()),
		SuccessRate: success.mean() * 100,
	}
	result.Trend = sortTrend(trendGroups)
	result.Categories = sortCategories(categoryGroups)
	result.RegionMatrix = sortRegionMatrix(regionGroups)
	result.Success = sortSuccess(successGroups)
	return result
}

// RoundTo1 rounds half to even at one decimal place. Non-finite values are
// returned unchanged.
func RoundTo1(v float64) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return v
	}
	f, _ := decimal.NewFromFloat(v).RoundBank(1).Float64()
	return f
}

// periodsNumeric reports whether every period label parses as a number.
func periodsNumeric(groups map[string]float64) bool {
	for period := range groups {
		if _, err := strconv.ParseFloat(period, 64); err != nil {
			return false
		}
	}
	return true
}

// sortTrend orders periods numerically when all labels are numbers and
// lexically otherwise. Numeric ties fall back to the label.
func sortTrend(groups map[string]float64) []models.PeriodVolume {
	numeric := periodsNumeric(groups)
	result := make([]models.PeriodVolume, 0, len(groups))
	for period, volume := range groups {
		result = append(result, models.PeriodVolume{Period: period, Volume: volume})
	}
	slices.SortFunc(result, func(a, b models.PeriodVolume) int {
		if numeric {
			fa, _ := strconv.ParseFloat(a.Period, 64)
			fb, _ := strconv.ParseFloat(b.Period, 64)
			if c := cmp.Compare(fa, fb); c != 0 {
				return c
			}
		}
		return cmp.Compare(a.Period, b.Period)
	})
	return result
}

func sortCategories(groups map[string]*meanAcc) []models.CategoryPrice {
	result := make([]models.CategoryPrice, 0, len(groups))
	for category, acc := range groups {
		result = append(result, models.CategoryPrice{Category: category, AvgPrice: acc.mean()})
	}
	slices.SortFunc(result, func(a, b models.CategoryPrice) int {
		return cmp.Compare(a.Category, b.Category)
	})
	return result
}

func sortRegionMatrix(groups map[regionKey]float64) []models.RegionVolume {
	result := make([]models.RegionVolume, 0, len(groups))
	for k, volume := range groups {
		result = append(result, models.RegionVolume{
			Region:       k.region,
			Manufacturer: k.manufacturer,
			Volume:       volume,
		})
	}
	slices.SortFunc(result, func(a, b models.RegionVolume) int {
		if c := cmp.Compare(a.Region, b.Region); c != 0 {
			return c
		}
		return cmp.Compare(a.Manufacturer, b.Manufacturer)
	})
	return result
}

func sortSuccess(groups map[float64]int) []models.SuccessCount {
	result := make([]models.SuccessCount, 0, len(groups))
	for value, count := range groups {
		label, _ := models.SuccessLabelFor(value)
		result = append(result, models.SuccessCount{IsSuccess: value, Label: label, Count: count})
	}
	// Largest slice first; successful wins ties.
	slices.SortFunc(result, func(a, b models.SuccessCount) int {
		if c := cmp.Compare(b.Count, a.Count); c != 0 {
			return c
		}
		return cmp.Compare(b.IsSuccess, a.IsSuccess)
	})
	return result
}
