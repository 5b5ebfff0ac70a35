package generic

import "time"

// =============================================================================
// PERIOD - Inclusive span of calendar days
// =============================================================================

// Period is a closed interval of days [Start, End].
//
// Examples:
//   - Billing quarter Q3 2025: Jul 1 - Sep 30
//   - Prorated stub after judgment: Jun 27 - Jun 30
//   - Calendar month: Feb 1 - Feb 28
type Period struct {
	Start Date
	End   Date
}

func (p Period) IsZero() bool { return p.Start.IsZero() && p.End.IsZero() }

// Validate rejects periods whose end precedes their start.
func (p Period) Validate() error {
	if p.End.Before(p.Start) {
		return ErrInvalidPeriod
	}
	return nil
}

// Contains returns true if the date is within the period [Start, End]
func (p Period) Contains(d Date) bool {
	return d.AfterOrEqual(p.Start) && d.BeforeOrEqual(p.End)
}

// Days counts the days of the period, both ends included.
func (p Period) Days() int {
	if p.End.Before(p.Start) {
		return 0
	}
	return DaysBetween(p.Start, p.End) + 1
}

// Intersect returns the overlap of two periods.
func (p Period) Intersect(other Period) (Period, bool) {
	start := MaxDate(p.Start, other.Start)
	end := MinDate(p.End, other.End)
	if end.Before(start) {
		return Period{}, false
	}
	return Period{Start: start, End: end}, true
}

// Months splits the period at calendar-month boundaries.
func (p Period) Months() []Period {
	var out []Period
	for cur := p.Start; cur.BeforeOrEqual(p.End); cur = cur.EndOfMonth().AddDays(1) {
		out = append(out, Period{Start: cur, End: MinDate(cur.EndOfMonth(), p.End)})
	}
	return out
}

// IsFullMonth reports whether the period covers exactly one calendar month.
func (p Period) IsFullMonth() bool {
	return p.Start.Day() == 1 && p.End.Equal(p.Start.EndOfMonth())
}

// String returns a string representation of the period.
func (p Period) String() string {
	return "[" + p.Start.String() + ", " + p.End.String() + "]"
}

// MonthPeriod returns the calendar month containing d.
func MonthPeriod(d Date) Period {
	return Period{Start: d.StartOfMonth(), End: d.EndOfMonth()}
}

// QuarterPeriod returns the calendar quarter containing d.
func QuarterPeriod(d Date) Period {
	first := time.Month((Quarter(d)-1)*3 + 1)
	return Period{
		Start: StartOfMonth(d.Year(), first),
		End:   EndOfMonth(d.Year(), first+2),
	}
}

// Quarter returns 1..4.
func Quarter(d Date) int {
	return (int(d.Month())-1)/3 + 1
}

// NextPeriod returns the period of the same month length following this one.
// Only meaningful for month-aligned periods.
func (p Period) NextPeriod() Period {
	months := (p.End.Year()-p.Start.Year())*12 + int(p.End.Month()-p.Start.Month()) + 1
	start := p.End.AddDays(1)
	return Period{Start: start, End: start.AddMonths(months).AddDays(-1)}
}
