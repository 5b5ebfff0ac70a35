/*
monitor.go - Post-judgment rent monitor

PURPOSE:
  After the judgment, current rent must be paid at its due date. The monitor
  schedules the rent falling due from the day after the judgment, matches
  the payments received against it oldest-first, and reports which
  installments are settled, overdue or still to come.

MATCHING:
  Post-judgment rent bears no late interest here and carries no indemnity,
  so the allocation engine runs with a zero rate table: payments simply
  settle installments in due-date order and any excess prepays the next
  ones. Statuses are then read relative to the as-of date.
*/
package lease

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/cgarciahasapromotion-pixel/calculateur-albion/generic"
)

type Monitor struct {
	Generator    *Generator
	JudgmentDate generic.Date
	Horizon      generic.Date // Last scheduled day; zero means the billing window after as-of
}

// IndexationPreview is the indexed rent in force on a date.
type IndexationPreview struct {
	On            generic.Date
	Cycle         int
	IndexLabel    string
	AnnualInclTax generic.Amount
	Quarterly     generic.Amount
}

type MonitorReport struct {
	AsOf         generic.Date
	Horizon      generic.Date
	Lines        []generic.AllocationResult
	Payments     []generic.Payment // Received on or before as-of
	TotalPaid    generic.Amount
	TotalOverdue generic.Amount
	Credit       generic.Amount
	Preview      IndexationPreview
}

// UpToDate is true when nothing due on or before as-of remains unpaid.
func (r MonitorReport) UpToDate() bool { return !r.TotalOverdue.IsPositive() }

// ValidatePayment rejects payments that cannot belong to post-judgment rent.
func (m Monitor) ValidatePayment(p generic.Payment) error {
	if !p.ReceivedDate.After(m.JudgmentDate) {
		return &generic.PaymentDateError{PaymentDate: p.ReceivedDate, JudgmentDate: m.JudgmentDate}
	}
	if !p.Amount.IsPositive() {
		return fmt.Errorf("%w: payment must be positive, got %s", generic.ErrInvalidAmount, p.Amount)
	}
	return nil
}

// Obligations returns the post-judgment rent scheduled for an as-of date.
func (m Monitor) Obligations(asOf generic.Date) []generic.Obligation {
	return m.Generator.GenerateAfter(m.JudgmentDate, m.horizon(asOf))
}

// Check matches payments against post-judgment rent as of a date.
func (m Monitor) Check(payments []generic.Payment, asOf generic.Date) MonitorReport {
	horizon := m.horizon(asOf)
	rent := m.Generator.GenerateAfter(m.JudgmentDate, horizon)

	var received []generic.Payment
	for _, p := range payments {
		if p.ReceivedDate.BeforeOrEqual(asOf) {
			received = append(received, p)
		}
	}

	// Run past the last due date so prepayments settle future installments.
	runTo := asOf
	for _, o := range rent {
		runTo = generic.MaxDate(runTo, o.DueDate)
	}
	engine := generic.NewEngine(generic.ZeroRate(), generic.Options{})
	res := engine.Allocate(rent, received, runTo)

	report := MonitorReport{
		AsOf:         asOf,
		Horizon:      horizon,
		Payments:     received,
		TotalPaid:    generic.TotalPaid(received),
		TotalOverdue: generic.ZeroAmount(),
		Credit:       res.Totals.Credit,
		Preview:      m.Preview(generic.MaxDate(asOf, m.JudgmentDate.AddDays(1))),
	}
	for _, line := range res.Lines {
		line = restatus(line, asOf)
		if line.Status.IsOutstanding() {
			report.TotalOverdue = report.TotalOverdue.Add(line.Remaining)
		}
		report.Lines = append(report.Lines, line)
	}
	return report
}

// Preview returns the indexed annual and quarterly rent in force on d.
func (m Monitor) Preview(d generic.Date) IndexationPreview {
	cycles := Cycles(m.Generator.Terms, m.Generator.Indices, d)
	current := cycles[len(cycles)-1]
	annual := current.Monthly.Mul(decimal.NewFromInt(12))
	return IndexationPreview{
		On:            d,
		Cycle:         current.Index,
		IndexLabel:    current.Entry.PeriodLabel,
		AnnualInclTax: annual,
		Quarterly:     annual.Div(decimal.NewFromInt(4)),
	}
}

func (m Monitor) horizon(asOf generic.Date) generic.Date {
	if !m.Horizon.IsZero() {
		return m.Horizon
	}
	from := generic.MaxDate(asOf, m.JudgmentDate.AddDays(1))
	return m.Generator.Terms.Frequency.WindowFor(from).NextPeriod().End
}

// restatus reads a line relative to asOf instead of the run date.
func restatus(line generic.AllocationResult, asOf generic.Date) generic.AllocationResult {
	if line.Status == generic.StatusSettled {
		return line
	}
	if line.DueDate.After(asOf) {
		line.Status = generic.StatusUpcoming
		line.DaysOverdue = 0
		return line
	}
	line.DaysOverdue = generic.DaysBetween(line.DueDate, asOf)
	if line.Allocated.IsPositive() {
		line.Status = generic.StatusPartial
	} else {
		line.Status = generic.StatusOverdue
	}
	return line
}
