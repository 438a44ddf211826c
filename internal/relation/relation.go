// Package relation provides the immutable, column-addressable tabular
// snapshot that every evaluator reads. Relations are built once by a dataset
// source and never mutated afterwards, so separate evaluations over the same
// snapshot are independent and idempotent.
package relation

import (
	"fmt"
	"time"

	"ledgercheck/pkg/errors"
)

// Value is a nullable cell value.
type Value struct {
	raw interface{}
}

// Null returns the null value.
func Null() Value { return Value{} }

// String wraps a string cell.
func String(s string) Value { return Value{raw: s} }

// Float wraps a numeric cell.
func Float(f float64) Value { return Value{raw: f} }

// Int wraps an integer cell.
func Int(i int64) Value { return Value{raw: i} }

// Time wraps a timestamp cell.
func Time(t time.Time) Value { return Value{raw: t} }

// IsNull reports whether the value is missing. The empty string counts as
// missing, matching how the banking extracts encode absent text fields.
func (v Value) IsNull() bool {
	if v.raw == nil {
		return true
	}
	s, ok := v.raw.(string)
	return ok && s == ""
}

// Float64 returns the value as a float64 when it holds a number.
func (v Value) Float64() (float64, bool) {
	switch x := v.raw.(type) {
	case float64:
		return x, true
	case int64:
		return float64(x), true
	case int:
		return float64(x), true
	default:
		return 0, false
	}
}

// Time returns the value as a timestamp when it holds one.
func (v Value) Time() (time.Time, bool) {
	t, ok := v.raw.(time.Time)
	return t, ok
}

// String returns the value rendered as text; null renders as the empty string.
func (v Value) String() string {
	if v.raw == nil {
		return ""
	}
	if t, ok := v.raw.(time.Time); ok {
		return t.Format(time.RFC3339)
	}
	return fmt.Sprint(v.raw)
}

// Key returns a canonical grouping key for the value, used for distinct
// counts, duplicate detection and joins.
func (v Value) Key() string {
	if v.IsNull() {
		return "\x00null"
	}
	return v.String()
}

// Relation is an immutable named set of rows with named columns.
type Relation struct {
	name    string
	columns []string
	index   map[string]int
	rows    [][]Value
}

// New creates an empty relation with the given column set.
func New(name string, columns []string) *Relation {
	index := make(map[string]int, len(columns))
	for i, c := range columns {
		index[c] = i
	}
	return &Relation{
		name:    name,
		columns: append([]string(nil), columns...),
		index:   index,
	}
}

// Name returns the relation name.
func (r *Relation) Name() string { return r.name }

// Columns returns the column names in declaration order.
func (r *Relation) Columns() []string {
	return append([]string(nil), r.columns...)
}

// NumRows returns the row count.
func (r *Relation) NumRows() int { return len(r.rows) }

// HasColumn reports whether the relation has the named column.
func (r *Relation) HasColumn(field string) bool {
	_, ok := r.index[field]
	return ok
}

// Require returns a SchemaMismatch error for the first named column the
// relation lacks.
func (r *Relation) Require(fields ...string) error {
	for _, f := range fields {
		if !r.HasColumn(f) {
			return errors.SchemaMismatch(r.name, f)
		}
	}
	return nil
}

// AppendRow adds a row. The value count must match the column count.
func (r *Relation) AppendRow(values ...Value) error {
	if len(values) != len(r.columns) {
		return errors.New(errors.ErrCodeTypeMismatch,
			fmt.Sprintf("Relation %q expects %d values per row, got %d",
				r.name, len(r.columns), len(values)))
	}
	r.rows = append(r.rows, append([]Value(nil), values...))
	return nil
}

// Column returns every cell of the named column, or SchemaMismatch.
func (r *Relation) Column(field string) ([]Value, error) {
	i, ok := r.index[field]
	if !ok {
		return nil, errors.SchemaMismatch(r.name, field)
	}
	out := make([]Value, len(r.rows))
	for j, row := range r.rows {
		out[j] = row[i]
	}
	return out, nil
}

// Floats returns the non-null, numeric cells of the named column.
func (r *Relation) Floats(field string) ([]float64, error) {
	col, err := r.Column(field)
	if err != nil {
		return nil, err
	}
	out := make([]float64, 0, len(col))
	for _, v := range col {
		if f, ok := v.Float64(); ok {
			out = append(out, f)
		}
	}
	return out, nil
}

// Row is a view onto one row of a relation.
type Row struct {
	rel *Relation
	idx int
}

// Row returns a view onto the i-th row.
func (r *Relation) Row(i int) Row { return Row{rel: r, idx: i} }

// Value returns the cell in the named column, or SchemaMismatch.
func (w Row) Value(field string) (Value, error) {
	i, ok := w.rel.index[field]
	if !ok {
		return Value{}, errors.SchemaMismatch(w.rel.name, field)
	}
	return w.rel.rows[w.idx][i], nil
}

// MustValue returns the cell in the named column; the caller must have
// verified the column exists via Require.
func (w Row) MustValue(field string) Value {
	v, err := w.Value(field)
	if err != nil {
		panic(err)
	}
	return v
}

// Values returns the row's cells in column order.
func (w Row) Values() []Value {
	return append([]Value(nil), w.rel.rows[w.idx]...)
}

// Filter returns a new relation containing the rows the predicate accepts.
func (r *Relation) Filter(name string, pred func(Row) bool) *Relation {
	out := New(name, r.columns)
	for i := range r.rows {
		if pred(r.Row(i)) {
			out.rows = append(out.rows, r.rows[i])
		}
	}
	return out
}
