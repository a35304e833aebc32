package models

// Sales_Category values plus the "All" pseudo-category used by the filter.
const (
	CategoryHigh   = "High"
	CategoryMedium = "Medium"
	CategoryLow    = "Low"
	CategoryAll    = "All"
)

// Categories lists the selectable category values in display order.
var Categories = []string{CategoryHigh, CategoryMedium, CategoryLow, CategoryAll}

const (
	SuccessLabel   = "Successful Sales"
	FailureLabel   = "Unsuccessful Sales"
	successValue   = 1
	unsuccessValue = 0
)

// SalesRecord is one row of the processed dataset.
type SalesRecord struct {
	Manufacturer  string  `json:"manufacturer"`
	Region        string  `json:"region"`
	SalesVolume   float64 `json:"sales_volume"`
	PriceK        float64 `json:"price_k"`
	IsSuccess     float64 `json:"is_success"`
	TimePeriod    string  `json:"time_period"`
	SalesCategory string  `json:"sales_category"`
}

// Selection is the state of the three filter controls for one interaction.
// A nil slice means the control was not supplied; an empty non-nil slice
// means nothing is selected.
type Selection struct {
	Manufacturers []string `json:"manufacturers"`
	Regions       []string `json:"regions"`
	Category      string   `json:"category"`
}

// IsValidCategory reports whether c is one of the selectable categories.
// The empty string is accepted and means "All".
func IsValidCategory(c string) bool {
	if c == "" {
		return true
	}
	for _, v := range Categories {
		if v == c {
			return true
		}
	}
	return false
}

// SuccessLabelFor maps an Is_Success value to its display label.
// Values other than 0 and 1 have no label.
func SuccessLabelFor(v float64) (string, bool) {
	switch v {
	case successValue:
		return SuccessLabel, true
	case unsuccessValue:
		return FailureLabel, true
	default:
		return "", false
	}
}

type KPIs struct {
	TotalSales  float64 `json:"total_sales"`
	AvgPrice    float64 `json:"avg_price"`
	SuccessRate float64 `json:"success_rate"`
}

type PeriodVolume struct {
	Period string  `json:"time_period"`
	Volume float64 `json:"volume"`
}

type CategoryPrice struct {
	Category string  `json:"sales_category"`
	AvgPrice float64 `json:"avg_price"`
}

type RegionVolume struct {
	Region       string  `json:"region"`
	Manufacturer string  `json:"manufacturer"`
	Volume       float64 `json:"volume"`
}

type SuccessCount struct {
	IsSuccess float64 `json:"is_success"`
	Label     string  `json:"label"`
	Count     int     `json:"count"`
}
