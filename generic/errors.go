/*
errors.go - Centralized error types for the engine and the dossier layer

PURPOSE:
  All error types in one place for consistency and discoverability.
  Domain packages wrap these errors with additional context.

ERROR CATEGORIES:
  1. Input errors - Malformed amounts, dates, tables or lease terms
  2. Validation errors - Business rule violations (payment before judgment)
  3. Store errors - Missing dossiers or payments, taken dossier IDs

USAGE:
  Domain packages can wrap generic errors:

    if errors.Is(err, generic.ErrInvalidRateTable) {
        return fmt.Errorf("dossier %s: %w", id, err)
    }

SEE ALSO:
  - store.go: Uses these errors
  - lease/types.go: Wraps these errors with lease context
*/
package generic

import (
	"errors"
	"fmt"
)

// =============================================================================
// SENTINEL ERRORS - Use with errors.Is()
// =============================================================================

var (
	// ErrInvalidAmount is returned when a monetary value cannot be parsed.
	ErrInvalidAmount = errors.New("invalid amount")

	// ErrInvalidDate is returned when a date cannot be parsed.
	ErrInvalidDate = errors.New("invalid date")

	// ErrInvalidPeriod is returned when a period is malformed (end before start).
	ErrInvalidPeriod = errors.New("invalid period: end before start")

	// ErrInvalidRateTable is returned for empty tables or negative rates.
	ErrInvalidRateTable = errors.New("invalid rate table")

	// ErrInvalidIndexTable is returned for non-positive index values.
	ErrInvalidIndexTable = errors.New("invalid index table")

	// ErrInvalidTerms is returned when lease terms are inconsistent.
	ErrInvalidTerms = errors.New("invalid lease terms")

	// ErrPaymentBeforeJudgment is returned when a monitored payment predates the judgment.
	ErrPaymentBeforeJudgment = errors.New("payment dated before judgment")

	// ErrDossierNotFound is returned when a referenced dossier doesn't exist.
	ErrDossierNotFound = errors.New("dossier not found")

	// ErrPaymentNotFound is returned when a referenced payment doesn't exist.
	ErrPaymentNotFound = errors.New("payment not found")

	// ErrDuplicatePayment is returned when a payment ID is already recorded.
	ErrDuplicatePayment = errors.New("duplicate payment ID")

	// ErrDossierExists is returned when creating a dossier under a taken ID.
	ErrDossierExists = errors.New("dossier already exists")
)

// =============================================================================
// STRUCTURED ERRORS - Carry additional context
// =============================================================================

// AmountError reports an unparseable monetary value.
type AmountError struct {
	Input string
	Err   error
}

func (e *AmountError) Error() string {
	return fmt.Sprintf("invalid amount %q: %v", e.Input, e.Err)
}

func (e *AmountError) Unwrap() error { return ErrInvalidAmount }

// DateError reports an unparseable date.
type DateError struct {
	Input string
}

func (e *DateError) Error() string {
	return fmt.Sprintf("invalid date %q: expected YYYY-MM-DD or DD/MM/YYYY", e.Input)
}

func (e *DateError) Unwrap() error { return ErrInvalidDate }

// RateEntryError points at the offending row of a rate table.
type RateEntryError struct {
	Index  int
	Reason string
}

func (e *RateEntryError) Error() string {
	return fmt.Sprintf("rate entry %d: %s", e.Index, e.Reason)
}

func (e *RateEntryError) Unwrap() error { return ErrInvalidRateTable }

// PaymentDateError is raised when a post-judgment payment predates the judgment.
type PaymentDateError struct {
	PaymentDate  Date
	JudgmentDate Date
}

func (e *PaymentDateError) Error() string {
	return fmt.Sprintf("payment dated %s is before judgment of %s", e.PaymentDate, e.JudgmentDate)
}

func (e *PaymentDateError) Unwrap() error { return ErrPaymentBeforeJudgment }

// =============================================================================
// ERROR HELPERS
// =============================================================================

// IsClientError returns true if the error is due to invalid client input.
func IsClientError(err error) bool {
	return errors.Is(err, ErrInvalidAmount) ||
		errors.Is(err, ErrInvalidDate) ||
		errors.Is(err, ErrInvalidPeriod) ||
		errors.Is(err, ErrInvalidRateTable) ||
		errors.Is(err, ErrInvalidIndexTable) ||
		errors.Is(err, ErrInvalidTerms) ||
		errors.Is(err, ErrPaymentBeforeJudgment) ||
		errors.Is(err, ErrDuplicatePayment)
}

// IsConflict returns true if the error reports a resource that already exists.
func IsConflict(err error) bool {
	return errors.Is(err, ErrDossierExists)
}

// IsNotFound returns true if the error indicates a missing resource.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrDossierNotFound) ||
		errors.Is(err, ErrPaymentNotFound)
}
