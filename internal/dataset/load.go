package dataset

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"math"
	"os"
	"strconv"
	"strings"
	"time"

	"autosales-dashboard/internal/models"
	"golang.org/x/sync/errgroup"
)

const (
	batchSize  = 10000
	maxWorkers = 10
)

// Source names the files a dataset is loaded from. CacheDir is optional;
// when empty no parse cache is read or written.
type Source struct {
	DataFile  string
	ModelFile string
	CacheDir  string
}

// LoadError reports a missing or malformed dataset or model artifact.
type LoadError struct {
	Path string
	Line int
	Err  error
}

func (e *LoadError) Error() string {
	if e.Line > 0 {
		return fmt.Sprintf("load %s: line %d: %v", e.Path, e.Line, e.Err)
	}
	return fmt.Sprintf("load %s: %v", e.Path, e.Err)
}

func (e *LoadError) Unwrap() error {
	return e.Err
}

var (
	ErrEmptyFile     = errors.New("empty file")
	ErrMissingColumn = errors.New("missing required column")
	ErrMissingValue  = errors.New("missing value")
	ErrNonFinite     = errors.New("non-finite number")
)

type Loader struct {
	logger *slog.Logger
}

func NewLoader(logger *slog.Logger) *Loader {
	if logger == nil {
		logger = slog.Default()
	}
	return &Loader{logger: logger}
}

// Load reads the dataset described by src. Any failure is returned as a
// *LoadError; the caller decides whether to degrade to Empty().
func (l *Loader) Load(ctx context.Context, src Source) (*Dataset, error) {
	info := SourceInfo{
		DataFile:  src.DataFile,
		ModelFile: src.ModelFile,
	}

	if src.ModelFile != "" {
		modelInfo, err := os.Stat(src.ModelFile)
		if err != nil {
			return nil, &LoadError{Path: src.ModelFile, Err: err}
		}
		info.ModelBytes = modelInfo.Size()
	}

	dataInfo, err := os.Stat(src.DataFile)
	if err != nil {
		return nil, &LoadError{Path: src.DataFile, Err: err}
	}

	if src.CacheDir != "" {
		cached, err := loadFromCache(src.CacheDir, src.DataFile)
		if err == nil && dataInfo.ModTime().Before(cached.WrittenAt) {
			info.FromCache = true
			info.LoadedAt = time.Now()
			l.logger.Info("dataset loaded from cache", "records", len(cached.Records))
			return newDataset(cached.Records, info), nil
		}
	}

	start := time.Now()
	l.logger.Info("processing dataset file", "filename", src.DataFile)

	records, err := l.parseFile(ctx, src.DataFile)
	if err != nil {
		return nil, err
	}

	if src.CacheDir != "" {
		if err := saveToCache(src.CacheDir, src.DataFile, records); err != nil {
			l.logger.Warn("failed to save dataset cache", "error", err)
		}
	}

	duration := time.Since(start)
	l.logger.Info("dataset processing complete",
		"records", len(records),
		"duration", duration,
	)

	info.LoadedAt = time.Now()
	return newDataset(records, info), nil
}

type columnIndex map[string]int

type rawRow struct {
	line   int
	fields []string
}

func (l *Loader) parseFile(ctx context.Context, filename string) ([]models.SalesRecord, error) {
	file, err := os.Open(filename)
	if err != nil {
		return nil, &LoadError{Path: filename, Err: err}
	}
	defer file.Close()

	reader := csv.NewReader(file)

	header, err := reader.Read()
	if err == io.EOF {
		return nil, &LoadError{Path: filename, Err: ErrEmptyFile}
	}
	if err != nil {
		return nil, &LoadError{Path: filename, Err: err}
	}

	idx, err := indexColumns(header)
	if err != nil {
		return nil, &LoadError{Path: filename, Line: 1, Err: err}
	}

	records := make([]models.SalesRecord, 0)
	batch := make([]rawRow, 0, batchSize)

	for {
		fields, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, &LoadError{Path: filename, Err: err}
		}

		line, _ := reader.FieldPos(0)
		batch = append(batch, rawRow{line: line, fields: fields})

		if len(batch) >= batchSize {
			parsed, err := processBatch(ctx, batch, idx)
			if err != nil {
				return nil, wrapLoadError(filename, err)
			}
			records = append(records, parsed...)
			batch = batch[:0]
		}
	}

	if len(batch) > 0 {
		parsed, err := processBatch(ctx, batch, idx)
		if err != nil {
			return nil, wrapLoadError(filename, err)
		}
		records = append(records, parsed...)
	}

	return records, nil
}

func wrapLoadError(filename string, err error) error {
	var le *LoadError
	if errors.As(err, &le) {
		le.Path = filename
		return le
	}
	return &LoadError{Path: filename, Err: err}
}

func indexColumns(header []string) (columnIndex, error) {
	idx := make(columnIndex, len(header))
	for i, h := range header {
		name := strings.TrimSpace(strings.TrimPrefix(h, "\ufeff"))
		if _, dup := idx[name]; !dup {
			idx[name] = i
		}
	}

	for _, col := range Columns {
		if _, ok := idx[col]; !ok {
			return nil, fmt.Errorf("%w %q", ErrMissingColumn, col)
		}
	}
	return idx, nil
}

// processBatch parses a batch concurrently while keeping input order.
func processBatch(ctx context.Context, batch []rawRow, idx columnIndex) ([]models.SalesRecord, error) {
	out := make([]models.SalesRecord, len(batch))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(maxWorkers)

	for i, row := range batch {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}

			rec, err := parseRecord(row.fields, idx)
			if err != nil {
				return &LoadError{Line: row.line, Err: err}
			}
			out[i] = rec
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return out, nil
}

func parseRecord(fields []string, idx columnIndex) (models.SalesRecord, error) {
	get := func(col string) (string, error) {
		i := idx[col]
		if i >= len(fields) {
			return "", fmt.Errorf("%w for %s", ErrMissingValue, col)
		}
		v := strings.TrimSpace(fields[i])
		if v == "" {
			return "", fmt.Errorf("%w for %s", ErrMissingValue, col)
		}
		return v, nil
	}
	getFloat := func(col string) (float64, error) {
		v, err := get(col)
		if err != nil {
			return 0, err
		}
		f, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return 0, fmt.Errorf("parse %s: %w", col, err)
		}
		if math.IsNaN(f) || math.IsInf(f, 0) {
			return 0, fmt.Errorf("%w for %s: %q", ErrNonFinite, col, v)
		}
		return f, nil
	}

	var (
		rec models.SalesRecord
		err error
	)
	if rec.Manufacturer, err = get("Manufacturer"); err != nil {
		return rec, err
	}
	if rec.Region, err = get("Region"); err != nil {
		return rec, err
	}
	if rec.SalesVolume, err = getFloat("SalesVolume"); err != nil {
		return rec, err
	}
	if rec.PriceK, err = getFloat("Price_k"); err != nil {
		return rec, err
	}
	if rec.IsSuccess, err = getFloat("Is_Success"); err != nil {
		return rec, err
	}
	if rec.TimePeriod, err = get("TimePeriod"); err != nil {
		return rec, err
	}
	if rec.SalesCategory, err = get("Sales_Category"); err != nil {
		return rec, err
	}
	return rec, nil
}
