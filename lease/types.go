/*
Package lease models commercial-lease rent: indexed installments, recovery
indemnities, the creditor declaration filed at the judgment date and the
monitoring of rent falling due after it.

The package turns lease terms into generic.Obligation values and hands them,
with the payments received, to the generic allocation engine. It performs no
I/O.

FILES:
  - types.go:      Lease terms and validation
  - indexation.go: Index table, revision cycles, ratchet
  - proration.go:  30-day month proration
  - schedule.go:   Obligation schedule generator
  - indemnity.go:  Flat recovery indemnity rule
  - claim.go:      Creditor declaration at the judgment date
  - monitor.go:    Post-judgment rent monitor
  - dossier.go:    A dossier bundles terms, tables and payments
  - policies.go:   Albion presets (rates, indices, terms)
*/
package lease

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/cgarciahasapromotion-pixel/calculateur-albion/generic"
)

// =============================================================================
// BILLING OPTIONS
// =============================================================================

type Frequency string

const (
	FrequencyQuarterly Frequency = "quarterly"
	FrequencyMonthly   Frequency = "monthly"
)

func (f Frequency) IsValid() bool {
	return f == FrequencyQuarterly || f == FrequencyMonthly
}

// WindowFor returns the billing window containing d.
func (f Frequency) WindowFor(d generic.Date) generic.Period {
	if f == FrequencyMonthly {
		return generic.MonthPeriod(d)
	}
	return generic.QuarterPeriod(d)
}

type Billing string

const (
	BillingInArrears Billing = "in_arrears" // terme échu: due after the window
	BillingInAdvance Billing = "in_advance" // terme à échoir: due at the window start
)

func (b Billing) IsValid() bool {
	return b == BillingInArrears || b == BillingInAdvance
}

// =============================================================================
// TERMS
// =============================================================================

// Terms are the contractual parameters of a lease.
type Terms struct {
	Start          generic.Date   // First billable day
	End            generic.Date   // Optional last billable day
	BaseAnnualRent generic.Amount // Excluding tax, before indexation
	TaxRate        decimal.Decimal
	Frequency      Frequency
	Billing        Billing
	DueDay         int
	FirstRevision  generic.Date // Revision cycle 1 takes effect here, then yearly
	Ratchet        bool
	CloseAtCutoff  bool // A window clipped by the cutoff falls due on the cutoff
}

const (
	DefaultDueDay = 10
	maxDueDay     = 28
)

var DefaultTaxRate = decimal.RequireFromString("0.10")

func (t Terms) Validate() error {
	switch {
	case t.Start.IsZero():
		return fmt.Errorf("%w: start date is required", generic.ErrInvalidTerms)
	case !t.End.IsZero() && t.End.Before(t.Start):
		return fmt.Errorf("%w: end %s before start %s", generic.ErrInvalidTerms, t.End, t.Start)
	case t.BaseAnnualRent.IsNegative():
		return fmt.Errorf("%w: base rent is negative", generic.ErrInvalidTerms)
	case t.TaxRate.IsNegative():
		return fmt.Errorf("%w: tax rate is negative", generic.ErrInvalidTerms)
	case !t.Frequency.IsValid():
		return fmt.Errorf("%w: unknown frequency %q", generic.ErrInvalidTerms, t.Frequency)
	case !t.Billing.IsValid():
		return fmt.Errorf("%w: unknown billing %q", generic.ErrInvalidTerms, t.Billing)
	case t.DueDay < 1 || t.DueDay > maxDueDay:
		return fmt.Errorf("%w: due day %d outside 1..%d", generic.ErrInvalidTerms, t.DueDay, maxDueDay)
	}
	return nil
}

// AnnualRentInclTax is the payable annual rent before indexation.
func (t Terms) AnnualRentInclTax() generic.Amount {
	return t.BaseAnnualRent.Mul(decimal.NewFromInt(1).Add(t.TaxRate))
}

// BaseMonthlyRent is the payable monthly rent before indexation.
func (t Terms) BaseMonthlyRent() generic.Amount {
	return t.AnnualRentInclTax().Div(decimal.NewFromInt(12))
}

// =============================================================================
// TAX CLAIMS
// =============================================================================

// TaxClaim is a household-waste tax (TEOM) amount recharged to the tenant.
type TaxClaim struct {
	Year   string
	Amount generic.Amount
}

// =============================================================================
// OWNER
// =============================================================================

// Owner identifies the creditor on declarations.
type Owner struct {
	Name  string
	Lot   string
	Phone string
	Email string
	IBAN  string
	BIC   string
}
