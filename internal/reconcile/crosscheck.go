package reconcile

import (
	"sort"

	"ledgercheck/internal/relation"
)

// AggregateByKey groups a relation by a key field and computes count and
// total amount per key. Rows with a null key are skipped; rows whose amount
// is null still count but contribute nothing to the total.
func AggregateByKey(rel *relation.Relation, keyField, amountField string) (map[string]SystemAggregate, error) {
	if err := rel.Require(keyField, amountField); err != nil {
		return nil, err
	}

	out := make(map[string]SystemAggregate)
	for i := 0; i < rel.NumRows(); i++ {
		row := rel.Row(i)
		key := row.MustValue(keyField)
		if key.IsNull() {
			continue
		}
		agg := out[key.String()]
		agg.Key = key.String()
		agg.Count++
		if f, ok := row.MustValue(amountField).Float64(); ok {
			agg.Total += f
		}
		out[key.String()] = agg
	}
	return out, nil
}

// CrossSystem reconciles two aggregate sets with a full outer join on the
// shared key. The comparison is agnostic to where each side came from: two
// databases, two extracts, or one relation split by category. A key absent
// from one side defaults that side's count and amount to zero, and variances
// are computed arithmetically regardless. Records are ordered by key.
func (e *Engine) CrossSystem(systemA, systemB map[string]SystemAggregate) []CrossSystemRecord {
	keys := make(map[string]struct{}, len(systemA)+len(systemB))
	for k := range systemA {
		keys[k] = struct{}{}
	}
	for k := range systemB {
		keys[k] = struct{}{}
	}

	sorted := make([]string, 0, len(keys))
	for k := range keys {
		sorted = append(sorted, k)
	}
	sort.Strings(sorted)

	out := make([]CrossSystemRecord, 0, len(sorted))
	for _, k := range sorted {
		a, inA := systemA[k]
		b, inB := systemB[k]

		rec := CrossSystemRecord{
			Key:            k,
			CountA:         a.Count,
			CountB:         b.Count,
			TotalA:         a.Total,
			TotalB:         b.Total,
			CountVariance:  a.Count - b.Count,
			AmountVariance: a.Total - b.Total,
		}
		switch {
		case inA && inB:
			rec.Status = StatusInBoth
		case inA:
			rec.Status = StatusOnlyInA
		default:
			rec.Status = StatusOnlyInB
		}
		out = append(out, rec)
	}
	return out
}

// CrossSystemRelations is the one-call form: aggregate both relations by the
// shared key, then reconcile.
func (e *Engine) CrossSystemRelations(a, b *relation.Relation, keyField, amountField string) ([]CrossSystemRecord, error) {
	aggA, err := AggregateByKey(a, keyField, amountField)
	if err != nil {
		return nil, err
	}
	aggB, err := AggregateByKey(b, keyField, amountField)
	if err != nil {
		return nil, err
	}
	return e.CrossSystem(aggA, aggB), nil
}

// SplitByCategory splits one relation into two disjoint relations by
// membership of a categorical field in bucketA, simulating a two-system
// reconciliation from a single source.
func SplitByCategory(rel *relation.Relation, typeField string, bucketA []string) (*relation.Relation, *relation.Relation, error) {
	if err := rel.Require(typeField); err != nil {
		return nil, nil, err
	}

	inA := make(map[string]struct{}, len(bucketA))
	for _, t := range bucketA {
		inA[t] = struct{}{}
	}

	a := rel.Filter(rel.Name()+"_system_a", func(row relation.Row) bool {
		_, ok := inA[row.MustValue(typeField).String()]
		return ok
	})
	b := rel.Filter(rel.Name()+"_system_b", func(row relation.Row) bool {
		_, ok := inA[row.MustValue(typeField).String()]
		return !ok
	})
	return a, b, nil
}
