package source

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	_ "github.com/snowflakedb/gosnowflake"
	_ "modernc.org/sqlite"

	"ledgercheck/internal/relation"
	"ledgercheck/pkg/errors"
	"ledgercheck/pkg/models"
)

// Config holds database source configuration.
type Config struct {
	Driver            string // sqlite or snowflake
	DSN               string
	CustomersTable    string
	TransactionsTable string
	Timeout           time.Duration
}

// DatabaseLoader reads the two relations from a SQL database.
type DatabaseLoader struct {
	db             *sql.DB
	config         Config
	connected      bool
	circuitBreaker *errors.CircuitBreaker
}

// NewDatabaseLoader creates a database loader.
func NewDatabaseLoader(config Config) *DatabaseLoader {
	if config.Timeout == 0 {
		config.Timeout = 30 * time.Second
	}
	return &DatabaseLoader{
		config:         config,
		circuitBreaker: errors.NewCircuitBreaker("dataset-db", 5, 30*time.Second),
	}
}

// Connect establishes the database connection.
func (l *DatabaseLoader) Connect(ctx context.Context) error {
	if l.connected {
		return nil
	}

	return l.circuitBreaker.Execute(ctx, func() error {
		return errors.RetryWithBackoff(ctx, func(ctx context.Context) error {
			db, err := sql.Open(l.config.Driver, l.config.DSN)
			if err != nil {
				return errors.ConnectionError("Failed to open database connection", err).
					WithContext("driver", l.config.Driver)
			}

			db.SetMaxOpenConns(4)
			db.SetMaxIdleConns(2)
			db.SetConnMaxLifetime(10 * time.Minute)

			pingCtx, cancel := context.WithTimeout(ctx, l.config.Timeout)
			defer cancel()
			if err := db.PingContext(pingCtx); err != nil {
				_ = db.Close()
				return errors.ConnectionError("Failed to ping database", err).
					WithContext("driver", l.config.Driver).
					AsRecoverable()
			}

			l.db = db
			l.connected = true
			return nil
		})
	})
}

// Close releases the database connection.
func (l *DatabaseLoader) Close() error {
	if l.db == nil {
		return nil
	}
	l.connected = false
	return l.db.Close()
}

// Load reads both relations. The connection is scoped to the load and
// released afterwards.
func (l *DatabaseLoader) Load(ctx context.Context) (*relation.Relation, *relation.Relation, error) {
	if err := l.Connect(ctx); err != nil {
		return nil, nil, err
	}
	defer func() { _ = l.Close() }()

	customers, err := l.loadRelation(ctx, "customers", l.config.CustomersTable, models.CustomerColumns)
	if err != nil {
		return nil, nil, err
	}
	transactions, err := l.loadRelation(ctx, "transactions", l.config.TransactionsTable, models.TransactionColumns)
	if err != nil {
		return nil, nil, err
	}
	return customers, transactions, nil
}

func (l *DatabaseLoader) loadRelation(ctx context.Context, name, table string, columns []string) (*relation.Relation, error) {
	// #nosec G201 - table comes from operator config, columns are the model constants
	query := fmt.Sprintf("SELECT %s FROM %s", strings.Join(columns, ", "), table)

	queryCtx, cancel := context.WithTimeout(ctx, l.config.Timeout)
	defer cancel()

	rows, err := l.db.QueryContext(queryCtx, query)
	if err != nil {
		if isMissingColumn(err) {
			return nil, errors.Wrap(err, errors.ErrCodeSchemaMismatch,
				fmt.Sprintf("Table %q is missing a required column", table)).
				WithContext("relation", name).
				WithContext("query", query)
		}
		return nil, errors.SourceError("query failed", table, err)
	}
	defer rows.Close()

	rel := relation.New(name, columns)
	raw := make([]interface{}, len(columns))
	ptrs := make([]interface{}, len(columns))
	for i := range raw {
		ptrs[i] = &raw[i]
	}

	for rows.Next() {
		if err := rows.Scan(ptrs...); err != nil {
			return nil, errors.SourceError("row scan failed", table, err)
		}
		values := make([]relation.Value, len(columns))
		for i, col := range columns {
			values[i] = cellFromSQL(col, raw[i])
		}
		if err := rel.AppendRow(values...); err != nil {
			return nil, err
		}
	}
	if err := rows.Err(); err != nil {
		return nil, errors.SourceError("row iteration failed", table, err)
	}

	return rel, nil
}

// cellFromSQL converts a driver value into a typed cell. Text is re-parsed
// by column name so SQLite's dynamic typing still yields numbers and dates.
func cellFromSQL(column string, v interface{}) relation.Value {
	switch x := v.(type) {
	case nil:
		return relation.Null()
	case int64:
		return relation.Int(x)
	case float64:
		return relation.Float(x)
	case time.Time:
		return relation.Time(x)
	case []byte:
		return parseCell(column, string(x))
	case string:
		return parseCell(column, x)
	default:
		return relation.String(fmt.Sprint(x))
	}
}

func isMissingColumn(err error) bool {
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "no such column") || // sqlite
		strings.Contains(msg, "invalid identifier") // snowflake
}
