// Package source loads the customers and transactions relations from a CSV
// pair, a SQL database, or a generated sample. Loaders only promise read
// access by column name; anything beyond the required columns rides along
// untouched.
package source

import (
	"context"
	"strconv"
	"strings"
	"time"

	"ledgercheck/internal/relation"
	"ledgercheck/pkg/errors"
	"ledgercheck/pkg/models"
)

// Loader produces one snapshot of the two input relations.
type Loader interface {
	Load(ctx context.Context) (customers, transactions *relation.Relation, err error)
}

// New builds the loader described by the source configuration.
func New(cfg models.Source) (Loader, error) {
	switch cfg.Type {
	case "csv":
		return NewCSVLoader(cfg), nil
	case "database":
		return NewDatabaseLoader(Config{
			Driver:            cfg.Driver,
			DSN:               cfg.DSN,
			CustomersTable:    tableOrDefault(cfg.CustomersTable, "customers"),
			TransactionsTable: tableOrDefault(cfg.TransactionsTable, "transactions"),
		}), nil
	case "sample", "":
		return NewSampleLoader(defaultSampleSeed), nil
	default:
		return nil, errors.ConfigError("unknown source type "+strconv.Quote(cfg.Type), "source.type")
	}
}

func tableOrDefault(name, fallback string) string {
	if name == "" {
		return fallback
	}
	return name
}

// Date layouts accepted by the loaders, tried in order.
var dateLayouts = []string{
	time.RFC3339,
	"2006-01-02 15:04:05",
	"2006-01-02",
}

// parseCell converts raw text into a typed cell based on the column name.
// Unparseable non-empty text stays a string so the validity checks can see
// and score it.
func parseCell(column, raw string) relation.Value {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return relation.Null()
	}

	switch column {
	case models.ColID, models.ColCustomerID, models.ColAge:
		if n, err := strconv.ParseInt(raw, 10, 64); err == nil {
			return relation.Int(n)
		}
	case models.ColAmount:
		if f, err := strconv.ParseFloat(raw, 64); err == nil {
			return relation.Float(f)
		}
	case models.ColDate:
		for _, layout := range dateLayouts {
			if t, err := time.Parse(layout, raw); err == nil {
				return relation.Time(t)
			}
		}
	}
	return relation.String(raw)
}
