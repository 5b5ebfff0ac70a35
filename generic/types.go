/*
Package generic provides the core debt-allocation engine.

PURPOSE:
  This package contains domain-agnostic types and algorithms for replaying
  a chronological series of amounts owed against a chronological series of
  payments. Whether the debts are rent installments, recovery indemnities or
  any other dated obligation, the same engine computes outstanding principal,
  accrued interest and the order in which partial payments extinguish debt.

KEY CONCEPTS IN THIS FILE (types.go):
  - Amount: A monetary quantity in a currency (always EUR for this system)
  - Obligation: An immutable dated amount owed (rent or indemnity)
  - Payment: A dated amount received
  - AllocationResult: Per-obligation outcome of one engine run

DESIGN PRINCIPLES:
  1. Purity: The engine owns no state; every run is a function of its inputs
  2. Precision: Uses decimal.Decimal so interest segments never drift
  3. Type Safety: Strong typing for IDs prevents mixing obligation/payment IDs
  4. Auditability: Every euro of every payment is traced to a bucket

USAGE:
  rent := generic.Obligation{
      ID:      "rent-2024-q1",
      DueDate: generic.NewDate(2024, time.April, 10),
      Amount:  generic.MustAmount("1375.00"),
      Kind:    generic.KindRent,
  }
  engine := generic.NewEngine(rates, generic.Options{})
  result := engine.Allocate([]generic.Obligation{rent}, payments, asOf)

SEE ALSO:
  - rate.go: Rate table lookup
  - accrual.go: Segment-splitting interest accrual
  - waterfall.go: Allocation engine
*/
package generic

import (
	"github.com/shopspring/decimal"
)

// =============================================================================
// AMOUNT - Monetary quantity with currency (single currency for this system)
// =============================================================================

type Amount struct {
	Value    decimal.Decimal
	Currency Currency
}

type Currency string

const CurrencyEUR Currency = "EUR"

// centPlaces is the number of decimal places reported for money.
const centPlaces = 2

func NewAmount(value decimal.Decimal) Amount {
	return Amount{Value: value, Currency: CurrencyEUR}
}

func NewAmountFromInt(value int64) Amount {
	return Amount{Value: decimal.NewFromInt(value), Currency: CurrencyEUR}
}

// NewAmountFromFloat converts a float coming from an external document.
// Running balances never go through this path.
func NewAmountFromFloat(value float64) Amount {
	return Amount{Value: decimal.NewFromFloat(value), Currency: CurrencyEUR}
}

// ParseAmount parses a decimal string such as "4583.33".
func ParseAmount(s string) (Amount, error) {
	d, err := decimal.NewFromString(s)
	if err != nil {
		return Amount{}, &AmountError{Input: s, Err: err}
	}
	return NewAmount(d), nil
}

// MustAmount parses a decimal string and panics on error.
// Intended for constants and tests.
func MustAmount(s string) Amount {
	a, err := ParseAmount(s)
	if err != nil {
		panic(err)
	}
	return a
}

func ZeroAmount() Amount { return NewAmount(decimal.Zero) }

func MustParseDecimal(s string) decimal.Decimal {
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero
	}
	return d
}

func (a Amount) Zero() Amount                 { return Amount{Value: decimal.Zero, Currency: a.currency()} }
func (a Amount) Add(b Amount) Amount          { return Amount{Value: a.Value.Add(b.Value), Currency: a.currency()} }
func (a Amount) Sub(b Amount) Amount          { return Amount{Value: a.Value.Sub(b.Value), Currency: a.currency()} }
func (a Amount) Mul(s decimal.Decimal) Amount { return Amount{Value: a.Value.Mul(s), Currency: a.currency()} }
func (a Amount) Div(s decimal.Decimal) Amount { return Amount{Value: a.Value.Div(s), Currency: a.currency()} }
func (a Amount) Neg() Amount                  { return Amount{Value: a.Value.Neg(), Currency: a.currency()} }
func (a Amount) Abs() Amount                  { return Amount{Value: a.Value.Abs(), Currency: a.currency()} }
func (a Amount) IsNegative() bool             { return a.Value.IsNegative() }
func (a Amount) IsZero() bool                 { return a.Value.IsZero() }
func (a Amount) IsPositive() bool             { return a.Value.IsPositive() }
func (a Amount) Equal(b Amount) bool          { return a.Value.Equal(b.Value) }
func (a Amount) GreaterThan(b Amount) bool    { return a.Value.GreaterThan(b.Value) }
func (a Amount) LessThan(b Amount) bool       { return a.Value.LessThan(b.Value) }

func (a Amount) Min(b Amount) Amount {
	if a.LessThan(b) {
		return a
	}
	return b
}

func (a Amount) Max(b Amount) Amount {
	if a.GreaterThan(b) {
		return a
	}
	return b
}

// Cents rounds half away from zero to the cent. Only reporting code calls
// this; the engine keeps full precision while accumulating.
func (a Amount) Cents() Amount {
	return Amount{Value: a.Value.Round(centPlaces), Currency: a.currency()}
}

// String renders the amount with two decimals, e.g. "2762.90".
func (a Amount) String() string {
	return a.Value.StringFixed(centPlaces)
}

func (a Amount) currency() Currency {
	if a.Currency == "" {
		return CurrencyEUR
	}
	return a.Currency
}

// SumAmounts adds up a list of amounts.
func SumAmounts(amounts ...Amount) Amount {
	total := ZeroAmount()
	for _, a := range amounts {
		total = total.Add(a)
	}
	return total
}

// =============================================================================
// IDENTIFIERS
// =============================================================================

type DossierID string
type ObligationID string
type PaymentID string

// =============================================================================
// OBLIGATION - Dated amount owed
// =============================================================================

type ObligationKind string

const (
	KindRent      ObligationKind = "rent"      // Rent installment, bears interest
	KindIndemnity ObligationKind = "indemnity" // Flat recovery indemnity, paid first, no interest
)

type Obligation struct {
	ID       ObligationID
	DueDate  Date
	Label    string
	Amount   Amount
	Kind     ObligationKind
	Period   Period       // Billing window covered (zero for indemnities)
	SourceID ObligationID // Rent obligation an indemnity was raised for
}

func (o Obligation) IsIndemnity() bool { return o.Kind == KindIndemnity }

// =============================================================================
// PAYMENT - Dated amount received
// =============================================================================

type Payment struct {
	ID           PaymentID
	ReceivedDate Date
	Amount       Amount
	Reference    string
}

// TotalPaid sums payment amounts, ignoring negative entries like the engine does.
func TotalPaid(payments []Payment) Amount {
	total := ZeroAmount()
	for _, p := range payments {
		if p.Amount.IsNegative() {
			continue
		}
		total = total.Add(p.Amount)
	}
	return total
}

// =============================================================================
// ALLOCATION RESULT - Per-obligation outcome of one engine run
// =============================================================================

type AllocationStatus string

const (
	StatusSettled  AllocationStatus = "settled"  // Fully extinguished
	StatusOverdue  AllocationStatus = "overdue"  // Due on or before as-of, nothing allocated
	StatusPartial  AllocationStatus = "partial"  // Due on or before as-of, partly allocated
	StatusUpcoming AllocationStatus = "upcoming" // Due after as-of
)

// IsOutstanding reports a due obligation with a remaining balance.
func (s AllocationStatus) IsOutstanding() bool {
	return s == StatusOverdue || s == StatusPartial
}

type AllocationResult struct {
	ObligationID ObligationID
	DueDate      Date
	Label        string
	Kind         ObligationKind
	Amount       Amount
	Allocated    Amount
	Remaining    Amount
	SettledOn    *Date
	DaysOverdue  int
	Status       AllocationStatus
}

// IsPartiallyPaid reports a balance that has been reduced but not cleared.
func (r AllocationResult) IsPartiallyPaid() bool {
	return r.Allocated.IsPositive() && r.Remaining.IsPositive()
}
