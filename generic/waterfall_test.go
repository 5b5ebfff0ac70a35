package generic_test

import (
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cgarciahasapromotion-pixel/calculateur-albion/generic"
)

// =============================================================================
// TEST HELPERS
// =============================================================================

func rent(id, due, amount string) generic.Obligation {
	return generic.Obligation{
		ID:      generic.ObligationID(id),
		DueDate: generic.MustDate(due),
		Label:   "rent " + id,
		Amount:  eur(amount),
		Kind:    generic.KindRent,
	}
}

func indemnity(id, due, amount string) generic.Obligation {
	return generic.Obligation{
		ID:      generic.ObligationID(id),
		DueDate: generic.MustDate(due),
		Label:   "indemnity " + id,
		Amount:  eur(amount),
		Kind:    generic.KindIndemnity,
	}
}

func pay(id, date, amount string) generic.Payment {
	return generic.Payment{
		ID:           generic.PaymentID(id),
		ReceivedDate: generic.MustDate(date),
		Amount:       eur(amount),
	}
}

func flatEngine(rate string) *generic.Engine {
	return generic.NewEngine(generic.FlatRate(pct(rate)), generic.Options{})
}

// fingerprint renders everything observable about a result, at full precision.
func fingerprint(res generic.Result) string {
	var b strings.Builder
	for _, l := range res.Lines {
		settled := ""
		if l.SettledOn != nil {
			settled = l.SettledOn.String()
		}
		fmt.Fprintf(&b, "%s %s %s %s %s %d %s\n", l.ObligationID, l.Allocated.Value, l.Remaining.Value, l.Status, settled, l.DaysOverdue, l.DueDate)
	}
	t := res.Totals
	fmt.Fprintf(&b, "%s %s %s %s %s %s", t.PrincipalOutstanding.Value, t.InterestOutstanding.Value,
		t.IndemnityOutstanding.Value, t.Credit.Value, t.AccruedInterest.Value, t.Discarded.Value)
	return b.String()
}

func assertConservation(t *testing.T, tot generic.Totals) {
	t.Helper()
	left := tot.Debits.Add(tot.Indemnities).Add(tot.AccruedInterest)
	right := tot.PrincipalPaid.Add(tot.InterestPaid).Add(tot.IndemnityPaid).
		Add(tot.PrincipalBalance()).Add(tot.InterestOutstanding).Add(tot.IndemnityOutstanding)
	assert.True(t, left.Equal(right), "debits+interest %s != paid+balances %s", left.Value, right.Value)
}

// =============================================================================
// IMPUTATION PRIORITY
// =============================================================================

// 1000 at 15% over 365 days accrues exactly 150.
func principalAndInterestScenario(payment string) (*generic.Engine, []generic.Obligation, []generic.Payment, generic.Date) {
	engine := flatEngine("15")
	obligations := []generic.Obligation{rent("r1", "2023-01-01", "1000")}
	payments := []generic.Payment{pay("p1", "2024-01-01", payment)}
	return engine, obligations, payments, generic.MustDate("2024-01-01")
}

func TestAllocate_PaymentGoesToInterestBeforePrincipal(t *testing.T) {
	// GIVEN: 1000 principal and 150 accrued interest
	// WHEN: 150 is paid
	// THEN: Interest is cleared, principal untouched
	engine, obligations, payments, asOf := principalAndInterestScenario("150")

	res := engine.Allocate(obligations, payments, asOf)

	assert.Equal(t, "150", res.Totals.AccruedInterest.Value.String())
	assert.True(t, res.Totals.InterestOutstanding.IsZero())
	assert.Equal(t, "1000", res.Totals.PrincipalOutstanding.Value.String())
	require.Len(t, res.Payments, 1)
	assertCents(t, "150.00", res.Payments[0].ToInterest)
	assert.True(t, res.Payments[0].ToPrincipal.IsZero())
	assertConservation(t, res.Totals)
}

func TestAllocate_SpilloverReachesPrincipal(t *testing.T) {
	// GIVEN: 1000 principal and 150 accrued interest
	// WHEN: 300 is paid
	// THEN: Interest cleared, principal reduced to 850
	engine, obligations, payments, asOf := principalAndInterestScenario("300")

	res := engine.Allocate(obligations, payments, asOf)

	assert.True(t, res.Totals.InterestOutstanding.IsZero())
	assertCents(t, "850.00", res.Totals.PrincipalOutstanding)
	line, ok := res.Line("r1")
	require.True(t, ok)
	assert.Equal(t, generic.StatusPartial, line.Status)
	assertCents(t, "150.00", line.Allocated)
	assertConservation(t, res.Totals)
}

func TestAllocate_IndemnityIsPaidFirst(t *testing.T) {
	engine := flatEngine("0")
	obligations := []generic.Obligation{
		rent("r1", "2024-01-10", "1000"),
		indemnity("i1", "2024-01-11", "40"),
	}
	payments := []generic.Payment{pay("p1", "2024-01-11", "100")}

	res := engine.Allocate(obligations, payments, generic.MustDate("2024-01-31"))

	require.Len(t, res.Payments, 1)
	assertCents(t, "40.00", res.Payments[0].ToIndemnity)
	assertCents(t, "60.00", res.Payments[0].ToPrincipal)
	ind, _ := res.Line("i1")
	assert.Equal(t, generic.StatusSettled, ind.Status)
	assertCents(t, "940.00", res.Totals.PrincipalOutstanding)
	assertConservation(t, res.Totals)
}

func TestAllocate_IndemnitiesBearNoInterest(t *testing.T) {
	engine := flatEngine("10")
	obligations := []generic.Obligation{indemnity("i1", "2024-01-01", "40")}

	res := engine.Allocate(obligations, nil, generic.MustDate("2024-12-31"))

	assert.True(t, res.Totals.AccruedInterest.IsZero())
	assertCents(t, "40.00", res.Totals.IndemnityOutstanding)
	assertCents(t, "40.00", res.Totals.Overdue)
}

func TestAllocate_PrincipalSettlesOldestRentFirst(t *testing.T) {
	engine := flatEngine("0")
	obligations := []generic.Obligation{
		rent("apr", "2024-04-10", "100"),
		rent("jan", "2024-01-10", "100"),
	}
	payments := []generic.Payment{pay("p1", "2024-05-02", "150")}

	res := engine.Allocate(obligations, payments, generic.MustDate("2024-05-31"))

	jan, _ := res.Line("jan")
	apr, _ := res.Line("apr")
	assert.Equal(t, generic.StatusSettled, jan.Status)
	require.NotNil(t, jan.SettledOn)
	assert.Equal(t, "2024-05-02", jan.SettledOn.String())
	assert.Equal(t, 113, jan.DaysOverdue)
	assert.Equal(t, generic.StatusPartial, apr.Status)
	assertCents(t, "50.00", apr.Remaining)
	assert.Equal(t, generic.ObligationID("jan"), res.Lines[0].ObligationID, "lines in due-date order")
}

// =============================================================================
// END-TO-END
// =============================================================================

func TestAllocate_EndToEndSinglePartialPayment(t *testing.T) {
	// GIVEN: 4583.33 due 2024-01-10, flat 10%
	// WHEN: 2000 is paid on 2024-06-01, computed as of 2024-12-31
	// THEN: 143 days of interest are extinguished first, the rest hits principal
	engine := flatEngine("10")
	obligations := []generic.Obligation{rent("q4-2023", "2024-01-10", "4583.33")}
	payments := []generic.Payment{pay("p1", "2024-06-01", "2000")}

	res := engine.Allocate(obligations, payments, generic.MustDate("2024-12-31"))

	require.Len(t, res.Payments, 1)
	app := res.Payments[0]
	assertCents(t, "179.57", app.ToInterest)
	assertCents(t, "1820.43", app.ToPrincipal)
	assertCents(t, "2762.90", res.Totals.PrincipalOutstanding)
	assertCents(t, "161.23", res.Totals.InterestOutstanding)
	assertCents(t, "340.80", res.Totals.AccruedInterest)
	assertCents(t, "2924.13", res.Totals.GrandTotal())

	line, _ := res.Line("q4-2023")
	assert.Equal(t, generic.StatusPartial, line.Status)
	assert.Equal(t, 356, line.DaysOverdue)

	require.Len(t, res.Segments, 2)
	assert.Equal(t, 143, res.Segments[0].Days)
	assert.Equal(t, 213, res.Segments[1].Days)
	assertConservation(t, res.Totals)
}

// =============================================================================
// PROPERTIES
// =============================================================================

func mixedScenario() ([]generic.Obligation, []generic.Payment) {
	obligations := []generic.Obligation{
		rent("q1", "2024-04-10", "1375.00"),
		rent("q2", "2024-07-10", "1375.00"),
		indemnity("i-q1", "2024-04-11", "40"),
		rent("q3", "2024-10-10", "1631.22"),
		indemnity("i-q2", "2024-07-11", "40"),
		rent("note", "2024-08-01", "-100"),
	}
	payments := []generic.Payment{
		pay("p1", "2024-05-15", "500"),
		pay("p2", "2024-07-10", "2000"),
		pay("bad", "2024-08-01", "-50"),
		pay("p3", "2024-11-30", "5000"),
	}
	return obligations, payments
}

func TestAllocate_ConservationHoldsExactly(t *testing.T) {
	obligations, payments := mixedScenario()
	for _, clamp := range []bool{false, true} {
		t.Run(fmt.Sprintf("clamp=%v", clamp), func(t *testing.T) {
			engine := generic.NewEngine(semesterTable(), generic.Options{ClampOverpayment: clamp})
			for _, asOf := range []string{"2024-04-10", "2024-07-10", "2024-09-01", "2024-12-31"} {
				res := engine.Allocate(obligations, payments, generic.MustDate(asOf))
				assertConservation(t, res.Totals)
			}
		})
	}
}

func TestAllocate_Idempotent(t *testing.T) {
	obligations, payments := mixedScenario()
	engine := generic.NewEngine(semesterTable(), generic.Options{})
	asOf := generic.MustDate("2024-12-31")

	first := engine.Allocate(obligations, payments, asOf)
	second := engine.Allocate(obligations, payments, asOf)

	assert.Equal(t, fingerprint(first), fingerprint(second))
}

func TestAllocate_DoesNotMutateInputs(t *testing.T) {
	obligations, payments := mixedScenario()
	before := fmt.Sprint(obligations, payments)

	generic.NewEngine(semesterTable(), generic.Options{}).Allocate(obligations, payments, generic.MustDate("2024-12-31"))

	assert.Equal(t, before, fmt.Sprint(obligations, payments))
	assert.Equal(t, generic.ObligationID("q1"), obligations[0].ID)
}

// =============================================================================
// OVERPAYMENT
// =============================================================================

func TestAllocate_OverpaymentCarriedAsCredit(t *testing.T) {
	engine := flatEngine("10")
	obligations := []generic.Obligation{rent("r1", "2024-01-10", "100")}
	payments := []generic.Payment{pay("p1", "2024-01-10", "150")}

	res := engine.Allocate(obligations, payments, generic.MustDate("2024-01-10"))

	assertCents(t, "50.00", res.Totals.Credit)
	assertCents(t, "-50.00", res.Totals.PrincipalBalance())
	assert.True(t, res.Totals.Discarded.IsZero())
	assertCents(t, "50.00", res.Payments[0].ToCredit)
	assertConservation(t, res.Totals)
}

func TestAllocate_OverpaymentClampedIsDiscarded(t *testing.T) {
	engine := generic.NewEngine(generic.FlatRate(pct("10")), generic.Options{ClampOverpayment: true})
	obligations := []generic.Obligation{rent("r1", "2024-01-10", "100")}
	payments := []generic.Payment{pay("p1", "2024-01-10", "150")}

	res := engine.Allocate(obligations, payments, generic.MustDate("2024-01-10"))

	assert.True(t, res.Totals.Credit.IsZero())
	assertCents(t, "50.00", res.Totals.Discarded)
	assert.True(t, res.Totals.PrincipalBalance().IsZero())
	assertConservation(t, res.Totals)
}

func TestAllocate_CreditSettlesLaterDebits(t *testing.T) {
	// GIVEN: 150 paid before any rent is due
	// WHEN: Two rents of 100 fall due afterwards
	// THEN: The first is settled on its due date, the second keeps 50 open
	engine := flatEngine("10")
	obligations := []generic.Obligation{
		rent("jan", "2024-01-10", "100"),
		rent("apr", "2024-04-10", "100"),
	}
	payments := []generic.Payment{pay("p1", "2024-01-05", "150")}

	res := engine.Allocate(obligations, payments, generic.MustDate("2024-04-10"))

	jan, _ := res.Line("jan")
	apr, _ := res.Line("apr")
	assert.Equal(t, generic.StatusSettled, jan.Status)
	assert.Equal(t, "2024-01-10", jan.SettledOn.String())
	assert.Equal(t, 0, jan.DaysOverdue)
	assert.Equal(t, generic.StatusPartial, apr.Status)
	assertCents(t, "50.00", apr.Remaining)
	assert.True(t, res.Totals.Credit.IsZero())
	assert.True(t, res.Totals.AccruedInterest.IsZero())
	assertConservation(t, res.Totals)
}

// =============================================================================
// ORDERING AND ODD INPUTS
// =============================================================================

func TestAllocate_SameDayDebitProcessedBeforePayment(t *testing.T) {
	engine := flatEngine("10")
	payments := []generic.Payment{pay("p1", "2024-01-10", "100")}
	obligations := []generic.Obligation{rent("r1", "2024-01-10", "100")}

	res := engine.Allocate(obligations, payments, generic.MustDate("2024-03-01"))

	line, _ := res.Line("r1")
	assert.Equal(t, generic.StatusSettled, line.Status)
	assert.Equal(t, 0, line.DaysOverdue)
	assert.True(t, res.Totals.Credit.IsZero())
}

func TestAllocate_EventsAfterAsOfAreUpcoming(t *testing.T) {
	engine := flatEngine("10")
	obligations := []generic.Obligation{
		rent("due", "2024-01-10", "100"),
		rent("later", "2024-04-10", "100"),
	}
	payments := []generic.Payment{pay("p-late", "2024-05-01", "200")}

	res := engine.Allocate(obligations, payments, generic.MustDate("2024-02-01"))

	later, _ := res.Line("later")
	assert.Equal(t, generic.StatusUpcoming, later.Status)
	assertCents(t, "100.00", later.Remaining)
	assertCents(t, "100.00", res.Totals.PrincipalOutstanding)
	assert.True(t, res.Totals.Payments.IsZero())
	assertCents(t, "100.00", res.Totals.Overdue)
}

func TestAllocate_NegativePaymentIgnored(t *testing.T) {
	engine := flatEngine("0")
	obligations := []generic.Obligation{rent("r1", "2024-01-10", "100")}
	payments := []generic.Payment{pay("neg", "2024-02-01", "-30")}

	res := engine.Allocate(obligations, payments, generic.MustDate("2024-03-01"))

	require.Len(t, res.Ignored, 1)
	assert.Equal(t, generic.PaymentID("neg"), res.Ignored[0].ID)
	assertCents(t, "100.00", res.Totals.PrincipalOutstanding)
}

func TestAllocate_NegativeObligationActsAsCreditNote(t *testing.T) {
	engine := flatEngine("0")
	obligations := []generic.Obligation{
		rent("r1", "2024-01-10", "100"),
		rent("note", "2024-02-01", "-30"),
	}

	res := engine.Allocate(obligations, nil, generic.MustDate("2024-03-01"))

	assertCents(t, "70.00", res.Totals.PrincipalOutstanding)
	assertCents(t, "70.00", res.Totals.Debits)
	note, _ := res.Line("note")
	assert.Equal(t, generic.StatusSettled, note.Status)
	assertConservation(t, res.Totals)
}

func TestAllocate_ZeroObligationSettledOnDueDate(t *testing.T) {
	engine := flatEngine("10")
	obligations := []generic.Obligation{rent("zero", "2024-01-10", "0")}

	res := engine.Allocate(obligations, nil, generic.MustDate("2024-03-01"))

	line, _ := res.Line("zero")
	assert.Equal(t, generic.StatusSettled, line.Status)
	assert.Equal(t, "2024-01-10", line.SettledOn.String())
}

func TestAllocate_NoEventsGivesZeroTotals(t *testing.T) {
	res := flatEngine("10").Allocate(nil, nil, generic.MustDate("2024-03-01"))

	assert.Empty(t, res.Lines)
	assert.True(t, res.Totals.GrandTotal().IsZero())
	_, ok := res.Line("missing")
	assert.False(t, ok)
}
