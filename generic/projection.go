/*
projection.go - Balance snapshots and time series

PURPOSE:
  Answers "what was owed on date D?" and "how did the debt evolve between
  two dates?". A snapshot is Allocate truncated at its date; a series is a
  list of snapshots, each recomputed from scratch so that no sample depends
  on the previous one.

KEY INSIGHT:
  Balances are never stored. Every snapshot replays the full event stream up
  to its date. The engine is cheap enough for the few hundred events a
  dossier carries, and recomputation keeps samples independent.

EXAMPLE:
  engine := generic.NewEngine(rates, generic.Options{})
  points := engine.Series(obligations, payments, from, to, generic.StepMonthly)
  for _, p := range points {
      fmt.Println(p.AsOf, p.Total)
  }

SEE ALSO:
  - waterfall.go: Allocate
  - report/csv.go: Series export
*/
package generic

// =============================================================================
// BALANCE SNAPSHOT
// =============================================================================

type BalanceSnapshot struct {
	AsOf             Date
	PrincipalBalance Amount // Signed, negative when credit is carried
	InterestBalance  Amount
	IndemnityBalance Amount
	Credit           Amount
	Total            Amount // Principal + interest + indemnity outstanding
	Overdue          Amount
}

// Snapshot returns the balances as of one date.
func (e *Engine) Snapshot(obligations []Obligation, payments []Payment, asOf Date) BalanceSnapshot {
	return snapshotOf(e.Allocate(obligations, payments, asOf))
}

func snapshotOf(res Result) BalanceSnapshot {
	t := res.Totals
	return BalanceSnapshot{
		AsOf:             res.AsOf,
		PrincipalBalance: t.PrincipalBalance(),
		InterestBalance:  t.InterestOutstanding,
		IndemnityBalance: t.IndemnityOutstanding,
		Credit:           t.Credit,
		Total:            t.GrandTotal(),
		Overdue:          t.Overdue,
	}
}

// =============================================================================
// SERIES
// =============================================================================

type SeriesStep string

const (
	StepWeekly    SeriesStep = "weekly"
	StepMonthly   SeriesStep = "monthly"
	StepQuarterly SeriesStep = "quarterly"
)

func (s SeriesStep) IsValid() bool {
	return s == StepWeekly || s == StepMonthly || s == StepQuarterly
}

// SampleDates returns from, from+step, ... and always ends on to.
// Month steps keep the day of month of from, clamped to short months.
func SampleDates(from, to Date, step SeriesStep) []Date {
	if to.Before(from) {
		return nil
	}
	var dates []Date
	for i := 0; ; i++ {
		var d Date
		switch step {
		case StepWeekly:
			d = from.AddDays(7 * i)
		case StepQuarterly:
			d = from.AddMonthsClamped(3 * i)
		default:
			d = from.AddMonthsClamped(i)
		}
		if !d.Before(to) {
			break
		}
		dates = append(dates, d)
	}
	return append(dates, to)
}

// Series samples balance snapshots between from and to inclusive.
func (e *Engine) Series(obligations []Obligation, payments []Payment, from, to Date, step SeriesStep) []BalanceSnapshot {
	dates := SampleDates(from, to, step)
	out := make([]BalanceSnapshot, 0, len(dates))
	for _, d := range dates {
		out = append(out, e.Snapshot(obligations, payments, d))
	}
	return out
}
