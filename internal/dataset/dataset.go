package dataset

import (
	"iter"
	"slices"
	"time"

	"autosales-dashboard/internal/models"
)

// Columns is the schema every dataset conforms to, in canonical order.
var Columns = []string{
	"Manufacturer",
	"Region",
	"SalesVolume",
	"Price_k",
	"Is_Success",
	"TimePeriod",
	"Sales_Category",
}

// SourceInfo describes where a dataset came from.
type SourceInfo struct {
	DataFile    string    `json:"data_file,omitempty"`
	ModelFile   string    `json:"model_file,omitempty"`
	ModelBytes  int64     `json:"model_bytes"`
	RecordCount int       `json:"record_count"`
	LoadedAt    time.Time `json:"loaded_at"`
	FromCache   bool      `json:"from_cache"`
	Degraded    bool      `json:"degraded"`
}

// Dataset is an immutable in-memory table of sales records. Option lists
// are derived once at construction.
type Dataset struct {
	records       []models.SalesRecord
	manufacturers []string
	regions       []string
	source        SourceInfo
}

// FromRecords builds a dataset from a copy of records.
func FromRecords(records []models.SalesRecord) *Dataset {
	return newDataset(slices.Clone(records), SourceInfo{})
}

// Empty returns a zero-row dataset. It is what callers substitute when
// loading fails.
func Empty() *Dataset {
	return newDataset(nil, SourceInfo{Degraded: true, LoadedAt: time.Now()})
}

func newDataset(records []models.SalesRecord, src SourceInfo) *Dataset {
	if records == nil {
		records = []models.SalesRecord{}
	}
	src.RecordCount = len(records)

	return &Dataset{
		records:       records,
		manufacturers: distinct(records, func(r models.SalesRecord) string { return r.Manufacturer }),
		regions:       distinct(records, func(r models.SalesRecord) string { return r.Region }),
		source:        src,
	}
}

func distinct(records []models.SalesRecord, key func(models.SalesRecord) string) []string {
	seen := make(map[string]struct{})
	out := make([]string, 0)
	for _, r := range records {
		k := key(r)
		if _, ok := seen[k]; ok {
			continue
		}
		seen[k] = struct{}{}
		out = append(out, k)
	}
	slices.Sort(out)
	return out
}

func (d *Dataset) Len() int {
	return len(d.records)
}

// All iterates the records in load order.
func (d *Dataset) All() iter.Seq[models.SalesRecord] {
	return func(yield func(models.SalesRecord) bool) {
		for _, r := range d.records {
			if !yield(r) {
				return
			}
		}
	}
}

// Records returns a copy of the rows.
func (d *Dataset) Records() []models.SalesRecord {
	return slices.Clone(d.records)
}

// Manufacturers returns the sorted distinct manufacturers.
func (d *Dataset) Manufacturers() []string {
	return slices.Clone(d.manufacturers)
}

// Regions returns the sorted distinct regions.
func (d *Dataset) Regions() []string {
	return slices.Clone(d.regions)
}

func (d *Dataset) Source() SourceInfo {
	return d.source
}
