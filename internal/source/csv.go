package source

import (
	"context"
	"encoding/csv"
	"io"
	"os"

	"ledgercheck/internal/relation"
	"ledgercheck/pkg/errors"
	"ledgercheck/pkg/models"
)

// CSVLoader reads the two relations from a pair of headered CSV files.
type CSVLoader struct {
	cfg models.Source
}

// NewCSVLoader creates a CSV loader.
func NewCSVLoader(cfg models.Source) *CSVLoader {
	return &CSVLoader{cfg: cfg}
}

// Load reads both files. The header row defines the column set; required
// columns missing from a header fail with SchemaMismatch before any row is
// read.
func (l *CSVLoader) Load(ctx context.Context) (*relation.Relation, *relation.Relation, error) {
	customers, err := readCSV(ctx, "customers", l.cfg.CustomersPath, models.CustomerColumns)
	if err != nil {
		return nil, nil, err
	}
	transactions, err := readCSV(ctx, "transactions", l.cfg.TransactionsPath, models.TransactionColumns)
	if err != nil {
		return nil, nil, err
	}
	return customers, transactions, nil
}

func readCSV(ctx context.Context, name, path string, required []string) (*relation.Relation, error) {
	f, err := os.Open(path) // #nosec G304 - path comes from operator config
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.Wrap(err, errors.ErrCodeFileNotFound, "CSV file not found").
				WithContext("path", path)
		}
		return nil, errors.SourceError("failed to open CSV file", path, err)
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.TrimLeadingSpace = true

	header, err := r.Read()
	if err != nil {
		return nil, errors.SourceError("failed to read CSV header", path, err)
	}

	rel := relation.New(name, header)
	if err := rel.Require(required...); err != nil {
		return nil, err
	}

	for {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		record, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, errors.SourceError("failed to read CSV row", path, err)
		}

		values := make([]relation.Value, len(header))
		for i := range header {
			cell := ""
			if i < len(record) {
				cell = record[i]
			}
			values[i] = parseCell(header[i], cell)
		}
		if err := rel.AppendRow(values...); err != nil {
			return nil, err
		}
	}

	return rel, nil
}
