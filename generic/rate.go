/*
rate.go - Annual late-interest rate table

PURPOSE:
  Late interest is computed at a published annual rate that changes twice a
  year (ECB main refinancing rate plus ten points). The RateTable answers
  two questions for the accrual code: which rate is in force on a given day,
  and when does the next change happen.

LOOKUP RULE:
  RateOn(d) walks entries from newest to oldest and returns the first one
  whose EffectiveDate <= d. Days before the first entry use the earliest
  rate, so the function is total and never fails.

EXAMPLE:
  rates := generic.MustRateTable(
      generic.RateEntry{EffectiveDate: generic.MustDate("2024-01-01"), AnnualRatePercent: decimal.NewFromFloat(14.50)},
      generic.RateEntry{EffectiveDate: generic.MustDate("2024-07-01"), AnnualRatePercent: decimal.NewFromFloat(14.25)},
  )
  rates.RateOn(generic.MustDate("2024-03-15")) // 14.50
*/
package generic

import (
	"sort"

	"github.com/shopspring/decimal"
)

// RateEntry is one row of the table: a percentage in force from EffectiveDate.
type RateEntry struct {
	EffectiveDate     Date
	AnnualRatePercent decimal.Decimal
}

// RateTable is immutable after construction and safe for concurrent readers.
type RateTable struct {
	entries []RateEntry // sorted ascending by EffectiveDate, unique dates
}

// NewRateTable validates and sorts the entries.
func NewRateTable(entries []RateEntry) (*RateTable, error) {
	if len(entries) == 0 {
		return nil, &RateEntryError{Index: 0, Reason: "table is empty"}
	}
	sorted := make([]RateEntry, len(entries))
	copy(sorted, entries)
	for i, e := range sorted {
		if e.AnnualRatePercent.IsNegative() {
			return nil, &RateEntryError{Index: i, Reason: "rate is negative"}
		}
	}
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].EffectiveDate.Before(sorted[j].EffectiveDate)
	})
	for i := 1; i < len(sorted); i++ {
		if sorted[i].EffectiveDate.Equal(sorted[i-1].EffectiveDate) {
			return nil, &RateEntryError{Index: i, Reason: "duplicate effective date " + sorted[i].EffectiveDate.String()}
		}
	}
	return &RateTable{entries: sorted}, nil
}

// MustRateTable is NewRateTable for package-level defaults and tests.
func MustRateTable(entries ...RateEntry) *RateTable {
	rt, err := NewRateTable(entries)
	if err != nil {
		panic(err)
	}
	return rt
}

// FlatRate builds a single-entry table that applies on every day.
func FlatRate(percent decimal.Decimal) *RateTable {
	return &RateTable{entries: []RateEntry{{AnnualRatePercent: percent}}}
}

// ZeroRate disables interest accrual.
func ZeroRate() *RateTable {
	return FlatRate(decimal.Zero)
}

// RateOn returns the annual percentage in force on d.
func (rt *RateTable) RateOn(d Date) decimal.Decimal {
	if rt == nil || len(rt.entries) == 0 {
		return decimal.Zero
	}
	for i := len(rt.entries) - 1; i >= 0; i-- {
		if rt.entries[i].EffectiveDate.BeforeOrEqual(d) {
			return rt.entries[i].AnnualRatePercent
		}
	}
	return rt.entries[0].AnnualRatePercent
}

// NextChangeAfter returns the first effective date strictly after d.
func (rt *RateTable) NextChangeAfter(d Date) (Date, bool) {
	if rt == nil {
		return Date{}, false
	}
	i := sort.Search(len(rt.entries), func(i int) bool {
		return rt.entries[i].EffectiveDate.After(d)
	})
	if i == len(rt.entries) {
		return Date{}, false
	}
	return rt.entries[i].EffectiveDate, true
}

// Entries returns a copy of the table rows in ascending order.
func (rt *RateTable) Entries() []RateEntry {
	if rt == nil {
		return nil
	}
	out := make([]RateEntry, len(rt.entries))
	copy(out, rt.entries)
	return out
}
