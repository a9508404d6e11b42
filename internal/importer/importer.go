// Package importer loads the skin cancer statistics dataset into the
// database: existing rows are dropped, then the CSV is validated row by row
// and inserted in batches.
package importer

import (
	"context"
	"embed"
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"onboarding/backend/internal/logging"
	"onboarding/backend/internal/repository"
	"onboarding/backend/pkg/models"
)

//go:embed data/skin_cancer_data.csv
var defaultDataset embed.FS

// Columns the dataset must carry. Rows missing any of them are skipped.
var requiredColumns = []string{
	"Data type",
	"Cancer group/site",
	"Year",
	"Sex",
	"Age group (years)",
	"Count",
}

const defaultBatchSize = 1000

// Importer imports the skin cancer dataset through a repository.Store.
type Importer struct {
	store     repository.Store
	logger    *logging.Logger
	batchSize int
}

// New creates an Importer with the default batch size.
func New(store repository.Store, logger *logging.Logger) *Importer {
	return &Importer{store: store, logger: logger, batchSize: defaultBatchSize}
}

// Result summarizes one import run.
type Result struct {
	Deleted  int64
	Imported int
	Skipped  int
}

// RunDefault imports the dataset shipped with the binary.
func (i *Importer) RunDefault(ctx context.Context) (*Result, error) {
	f, err := defaultDataset.Open("data/skin_cancer_data.csv")
	if err != nil {
		return nil, fmt.Errorf("failed to open embedded dataset: %w", err)
	}
	defer f.Close()
	return i.Run(ctx, f)
}

// RunFile imports the dataset from a CSV file on disk.
func (i *Importer) RunFile(ctx context.Context, path string) (*Result, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("CSV file not found at %s: %w", path, err)
	}
	defer f.Close()
	i.logger.Info("Importing skin cancer data from %s", path)
	return i.Run(ctx, f)
}

// Run replaces the stored dataset with the rows read from r. Rows with
// missing required fields or non-numeric counts are skipped with a warning;
// a database failure aborts the run.
func (i *Importer) Run(ctx context.Context, r io.Reader) (*Result, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1

	header, err := reader.Read()
	if err != nil {
		return nil, fmt.Errorf("failed to read CSV header: %w", err)
	}
	columns := make(map[string]int, len(header))
	for idx, name := range header {
		columns[strings.TrimSpace(name)] = idx
	}
	for _, name := range requiredColumns {
		if _, ok := columns[name]; !ok {
			return nil, fmt.Errorf("CSV is missing required column %q", name)
		}
	}

	i.logger.Info("Deleting existing skin cancer data...")
	deleted, err := i.store.DeleteAllSkinCancerRecords(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to delete existing data: %w", err)
	}
	i.logger.Info("Deleted %d existing records", deleted)

	result := &Result{Deleted: deleted}
	var batch []*models.SkinCancerRecord

	flush := func() error {
		if len(batch) == 0 {
			return nil
		}
		if err := i.store.InsertSkinCancerRecords(ctx, batch); err != nil {
			return fmt.Errorf("failed to insert batch: %w", err)
		}
		batch = batch[:0]
		return nil
	}

	i.logger.Info("Importing new data from CSV...")
	for {
		row, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read CSV row: %w", err)
		}

		rec, ok := i.parseRow(row, columns)
		if !ok {
			result.Skipped++
			continue
		}

		batch = append(batch, rec)
		result.Imported++

		if len(batch) >= i.batchSize {
			if err := flush(); err != nil {
				return nil, err
			}
			i.logger.Info("Imported %d records so far...", result.Imported)
		}
	}
	if err := flush(); err != nil {
		return nil, err
	}

	i.logger.Info("Successfully imported %d records (%d skipped)", result.Imported, result.Skipped)
	return result, nil
}

// parseRow validates and cleans one CSV row. Age groups in the source data
// carry a leading apostrophe to defeat spreadsheet date coercion; it is
// stripped here. Counts that are not plain digits (the source uses "np" for
// suppressed values) skip the row.
func (i *Importer) parseRow(row []string, columns map[string]int) (*models.SkinCancerRecord, bool) {
	field := func(name string) string {
		idx := columns[name]
		if idx >= len(row) {
			return ""
		}
		return strings.TrimSpace(row[idx])
	}

	for _, name := range requiredColumns {
		if field(name) == "" {
			i.logger.Warn("Skipping row with missing data: %v", row)
			return nil, false
		}
	}

	count, err := strconv.Atoi(field("Count"))
	if err != nil || count < 0 {
		i.logger.Warn("Skipping row with non-numeric count: %v", row)
		return nil, false
	}
	year, err := strconv.Atoi(field("Year"))
	if err != nil {
		i.logger.Error("Error processing row %v: invalid year %q", row, field("Year"))
		return nil, false
	}

	return &models.SkinCancerRecord{
		DataType:    field("Data type"),
		CancerGroup: field("Cancer group/site"),
		Year:        year,
		Sex:         field("Sex"),
		AgeGroup:    strings.ReplaceAll(field("Age group (years)"), "'", ""),
		Count:       count,
	}, true
}
