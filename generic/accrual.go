package generic

import "github.com/shopspring/decimal"

// =============================================================================
// OBLIGATION SCHEDULE - Interface for how debts come into existence
// =============================================================================

// ObligationSchedule generates the obligations falling due in a date range.
// Implementations define the business logic (indexed quarterly rent, flat
// monthly charges, one-off invoices).
type ObligationSchedule interface {
	// Generate returns obligations covering [from, to], ordered by due date.
	Generate(from, to Date) []Obligation
}

// =============================================================================
// INTEREST ACCRUAL - ACT/365 simple interest, split at rate changes
// =============================================================================

var (
	daysPerYear = decimal.NewFromInt(365)
	hundred     = decimal.NewFromInt(100)
)

// InterestSegment is one constant-rate slice of an accrual interval.
type InterestSegment struct {
	Start       Date
	End         Date
	Days        int
	RatePercent decimal.Decimal
	Principal   Amount
	Interest    Amount
}

// InterestAccrual computes simple interest over [start, end) on a constant
// principal. The day count is actual days over a fixed 365-day year, leap
// years included.
type InterestAccrual struct {
	Rates *RateTable
}

// Accrue returns principal × rate × days / 36500 summed over the segments of
// [start, end) cut at every rate change. Zero when start >= end or the
// principal is not positive.
func (ia InterestAccrual) Accrue(principal Amount, start, end Date) Amount {
	total := ZeroAmount()
	for _, seg := range ia.Segments(principal, start, end) {
		total = total.Add(seg.Interest)
	}
	return total
}

// Segments returns the constant-rate slices of [start, end) with the
// interest earned on each.
func (ia InterestAccrual) Segments(principal Amount, start, end Date) []InterestSegment {
	if !start.Before(end) || !principal.IsPositive() {
		return nil
	}

	var segments []InterestSegment
	cursor := start
	for cursor.Before(end) {
		next := end
		if change, ok := ia.Rates.NextChangeAfter(cursor); ok && change.Before(end) {
			next = change
		}
		days := DaysBetween(cursor, next)
		rate := ia.Rates.RateOn(cursor)
		interest := principal.Value.
			Mul(rate).
			Mul(decimal.NewFromInt(int64(days))).
			Div(hundred.Mul(daysPerYear))

		segments = append(segments, InterestSegment{
			Start:       cursor,
			End:         next,
			Days:        days,
			RatePercent: rate,
			Principal:   principal,
			Interest:    NewAmount(interest),
		})
		cursor = next
	}
	return segments
}
