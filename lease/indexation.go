package lease

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/cgarciahasapromotion-pixel/calculateur-albion/generic"
)

// =============================================================================
// INDEX TABLE - Commercial rent index (ILC) values
// =============================================================================

// IndexEntry is one published index value.
type IndexEntry struct {
	PeriodLabel string
	Value       decimal.Decimal
}

// IndexTable holds the base index of the lease and the values used at each
// yearly revision, in order. Revision i (1-based) uses Revisions[i-1]; cycles
// beyond the last known value keep using it.
type IndexTable struct {
	Base      IndexEntry
	Revisions []IndexEntry
}

func NewIndexTable(base IndexEntry, revisions ...IndexEntry) (IndexTable, error) {
	if !base.Value.IsPositive() {
		return IndexTable{}, fmt.Errorf("%w: base index %q must be positive", generic.ErrInvalidIndexTable, base.PeriodLabel)
	}
	for i, r := range revisions {
		if !r.Value.IsPositive() {
			return IndexTable{}, fmt.Errorf("%w: revision %d (%q) must be positive", generic.ErrInvalidIndexTable, i+1, r.PeriodLabel)
		}
	}
	return IndexTable{Base: base, Revisions: append([]IndexEntry(nil), revisions...)}, nil
}

// EntryFor returns the index used for a revision cycle. Cycle 0 is the base.
func (it IndexTable) EntryFor(cycle int) IndexEntry {
	if cycle <= 0 || len(it.Revisions) == 0 {
		return it.Base
	}
	if cycle > len(it.Revisions) {
		return it.Revisions[len(it.Revisions)-1]
	}
	return it.Revisions[cycle-1]
}

// Ratio is index_cycle / base_index; exactly 1 for cycle 0.
func (it IndexTable) Ratio(cycle int) decimal.Decimal {
	if cycle <= 0 || len(it.Revisions) == 0 || !it.Base.Value.IsPositive() {
		return decimal.NewFromInt(1)
	}
	return it.EntryFor(cycle).Value.Div(it.Base.Value)
}

// =============================================================================
// RATCHET
// =============================================================================

// RatchetPolicy decides the monthly rent retained at a revision given the
// previous cycle's amount and the freshly indexed one.
type RatchetPolicy func(previous, revised generic.Amount) generic.Amount

// DownwardLocked keeps the previous amount when indexation would lower it.
func DownwardLocked(previous, revised generic.Amount) generic.Amount {
	return previous.Max(revised)
}

// FollowIndex applies the indexed amount unconditionally.
func FollowIndex(_, revised generic.Amount) generic.Amount {
	return revised
}

// =============================================================================
// REVISION CYCLES
// =============================================================================

// RevisionCycle is the monthly rent in force between two revisions.
type RevisionCycle struct {
	Index         int
	EffectiveFrom generic.Date // Zero for cycle 0
	Entry         IndexEntry
	Ratio         decimal.Decimal
	Indexed       generic.Amount // Before ratchet
	Monthly       generic.Amount // Retained amount
	Ratcheted     bool
}

// cycleOn returns the revision cycle in force on d.
func cycleOn(firstRevision, d generic.Date) int {
	if firstRevision.IsZero() || d.Before(firstRevision) {
		return 0
	}
	years := d.Year() - firstRevision.Year()
	if firstRevision.AddYears(years).After(d) {
		years--
	}
	return years + 1
}

// Cycles returns the revision cycles from 0 up to the one in force on until.
func Cycles(terms Terms, indices IndexTable, until generic.Date) []RevisionCycle {
	var policy RatchetPolicy = FollowIndex
	if terms.Ratchet {
		policy = DownwardLocked
	}
	base := terms.BaseMonthlyRent()
	last := cycleOn(terms.FirstRevision, until)

	cycles := make([]RevisionCycle, 0, last+1)
	previous := base
	for i := 0; i <= last; i++ {
		ratio := indices.Ratio(i)
		indexed := base.Mul(ratio)
		monthly := indexed
		if i > 0 {
			monthly = policy(previous, indexed)
		}
		c := RevisionCycle{
			Index:     i,
			Entry:     indices.EntryFor(i),
			Ratio:     ratio,
			Indexed:   indexed,
			Monthly:   monthly,
			Ratcheted: !monthly.Equal(indexed),
		}
		if i > 0 {
			c.EffectiveFrom = terms.FirstRevision.AddYears(i - 1)
		}
		cycles = append(cycles, c)
		previous = monthly
	}
	return cycles
}

// MonthlyRentOn returns the monthly rent including tax in force on d.
func MonthlyRentOn(terms Terms, indices IndexTable, d generic.Date) generic.Amount {
	cycles := Cycles(terms, indices, d)
	return cycles[len(cycles)-1].Monthly
}
