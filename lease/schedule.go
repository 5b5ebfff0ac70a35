/*
schedule.go - Rent obligation schedule

PURPOSE:
  Implements generic.ObligationSchedule for an indexed commercial lease.
  Rent is billed per calendar quarter (or month), indexed once a year from
  FirstRevision, and prorated on the 30-day convention when a window is only
  partly covered.

WINDOWS:
  Generate(from, to) emits one obligation per billing window intersecting
  [from, to], clipped to it:

    Generate(2025-06-27, 2025-12-31), quarterly in arrears:
      T2 2025 (avr-mai-juin) prorata 27/06/2025..30/06/2025   4 days    due 2025-07-10
      T3 2025 (juil-août-sept)       3 months  due 2025-10-10
      T4 2025 (oct-nov-déc)          3 months  due 2026-01-10

DUE DATES:
  in_arrears: DueDay of the month after the window's nominal end
  in_advance: DueDay of the window's first month, not before the covered start
  CloseAtCutoff: a window clipped by `to` whose due date would fall after
  `to` is due on `to` (arrears frozen at a judgment date).

AMOUNTS:
  Each month bills the monthly rent of the revision cycle in force on its
  first covered day, through Prorate30. The window total is rounded to the
  cent; obligations are invoices.
*/
package lease

import (
	"fmt"
	"time"

	"github.com/cgarciahasapromotion-pixel/calculateur-albion/generic"
)

var monthAbbrev = [...]string{"janv", "févr", "mars", "avr", "mai", "juin", "juil", "août", "sept", "oct", "nov", "déc"}

func monthName(m time.Month) string { return monthAbbrev[m-1] }

// =============================================================================
// GENERATOR
// =============================================================================

type Generator struct {
	Terms   Terms
	Indices IndexTable
}

var _ generic.ObligationSchedule = (*Generator)(nil)

func NewGenerator(terms Terms, indices IndexTable) (*Generator, error) {
	if err := terms.Validate(); err != nil {
		return nil, err
	}
	if !indices.Base.Value.IsPositive() {
		return nil, fmt.Errorf("%w: base index is required", generic.ErrInvalidIndexTable)
	}
	return &Generator{Terms: terms, Indices: indices}, nil
}

// Generate returns rent obligations for the billing windows intersecting
// [from, to], in due-date order.
func (g *Generator) Generate(from, to generic.Date) []generic.Obligation {
	start := generic.MaxDate(from, g.Terms.Start)
	end := to
	if !g.Terms.End.IsZero() {
		end = generic.MinDate(end, g.Terms.End)
	}
	if end.Before(start) {
		return nil
	}

	span := generic.Period{Start: start, End: end}
	cycles := Cycles(g.Terms, g.Indices, end)

	var out []generic.Obligation
	for window := g.Terms.Frequency.WindowFor(start); !window.Start.After(end); window = window.NextPeriod() {
		covered, ok := window.Intersect(span)
		if !ok {
			continue
		}

		amount := generic.ZeroAmount()
		for _, month := range covered.Months() {
			monthly := cycles[cycleOn(g.Terms.FirstRevision, month.Start)].Monthly
			amount = amount.Add(Prorate30(monthly, month))
		}

		due := g.dueDate(window, covered)
		clipped := covered.End.Before(window.End) && covered.End.Equal(to)
		if g.Terms.CloseAtCutoff && clipped && due.After(to) {
			due = to
		}

		out = append(out, generic.Obligation{
			ID:      generic.ObligationID(fmt.Sprintf("rent-%s-%s", covered.Start, covered.End)),
			DueDate: due,
			Label:   g.label(window, covered),
			Amount:  amount.Cents(),
			Kind:    generic.KindRent,
			Period:  covered,
		})
	}
	return out
}

// GenerateUntil returns the arrears from lease start up to and including cutoff.
func (g *Generator) GenerateUntil(cutoff generic.Date) []generic.Obligation {
	return g.Generate(g.Terms.Start, cutoff)
}

// GenerateAfter returns rent from the day after cutoff up to until.
func (g *Generator) GenerateAfter(cutoff, until generic.Date) []generic.Obligation {
	return g.Generate(cutoff.AddDays(1), until)
}

// MonthlyRentOn returns the monthly rent including tax in force on d.
func (g *Generator) MonthlyRentOn(d generic.Date) generic.Amount {
	return MonthlyRentOn(g.Terms, g.Indices, d)
}

func (g *Generator) dueDate(window, covered generic.Period) generic.Date {
	if g.Terms.Billing == BillingInAdvance {
		due := generic.NewDate(window.Start.Year(), window.Start.Month(), g.Terms.DueDay)
		return generic.MaxDate(due, covered.Start)
	}
	next := window.End.AddDays(1)
	return generic.NewDate(next.Year(), next.Month(), g.Terms.DueDay)
}

func (g *Generator) label(window, covered generic.Period) string {
	var base string
	if g.Terms.Frequency == FrequencyMonthly {
		base = fmt.Sprintf("Loyer %s %d", monthName(window.Start.Month()), window.Start.Year())
	} else {
		m := window.Start.Month()
		base = fmt.Sprintf("T%d %d (%s-%s-%s)", generic.Quarter(window.Start), window.Start.Year(),
			monthName(m), monthName(m+1), monthName(m+2))
	}
	if !covered.Start.Equal(window.Start) || !covered.End.Equal(window.End) {
		return fmt.Sprintf("%s prorata %s..%s", base, covered.Start.French(), covered.End.French())
	}
	return base
}
