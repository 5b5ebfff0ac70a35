package lease_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cgarciahasapromotion-pixel/calculateur-albion/generic"
	"github.com/cgarciahasapromotion-pixel/calculateur-albion/lease"
)

func albionMonitor(t *testing.T) lease.Monitor {
	t.Helper()
	d := lease.AlbionDossier("Lot A102", eur("5000"))
	d.Mode = lease.ModeMonitor
	m, err := d.Monitor()
	require.NoError(t, err)
	return m
}

func TestMonitor_PartialPaymentAfterJudgment(t *testing.T) {
	// GIVEN: One payment of 1200 in July
	m := albionMonitor(t)
	payments := []generic.Payment{{ID: "p1", ReceivedDate: date("2025-07-15"), Amount: eur("1200")}}

	// WHEN: Checking in mid-November
	report := m.Check(payments, date("2025-11-15"))

	// THEN: The June stub is settled and Q3 is partly paid
	assert.Equal(t, "2026-03-31", report.Horizon.String())
	require.Len(t, report.Lines, 4)

	stub := report.Lines[0]
	assertCents(t, "72.49", stub.Amount)
	assert.Equal(t, generic.StatusSettled, stub.Status)

	q3 := report.Lines[1]
	assertCents(t, "1631.05", q3.Amount)
	assert.Equal(t, generic.StatusPartial, q3.Status)
	assertCents(t, "503.54", q3.Remaining)
	assert.Equal(t, 36, q3.DaysOverdue)

	assert.Equal(t, generic.StatusUpcoming, report.Lines[2].Status)
	assert.Zero(t, report.Lines[2].DaysOverdue)
	q1 := report.Lines[3]
	assert.Equal(t, "2026-04-10", q1.DueDate.String())
	assertCents(t, "1681.68", q1.Amount, "2025 index applies from January 2026")
	assert.Equal(t, generic.StatusUpcoming, q1.Status)

	assertCents(t, "503.54", report.TotalOverdue)
	assertCents(t, "1200.00", report.TotalPaid)
	assert.True(t, report.Credit.IsZero())
	assert.False(t, report.UpToDate())

	assertCents(t, "6524.20", report.Preview.AnnualInclTax)
	assertCents(t, "1631.05", report.Preview.Quarterly)
	assert.Equal(t, 1, report.Preview.Cycle)
	assert.Equal(t, "2024", report.Preview.IndexLabel)
}

func TestMonitor_PrepaymentSettlesFutureInstallment(t *testing.T) {
	m := albionMonitor(t)
	payments := []generic.Payment{{ID: "p1", ReceivedDate: date("2025-07-01"), Amount: eur("1703.54")}}

	report := m.Check(payments, date("2025-08-01"))

	require.Len(t, report.Lines, 3)
	assert.Equal(t, generic.StatusSettled, report.Lines[0].Status)
	assert.Equal(t, generic.StatusSettled, report.Lines[1].Status, "Q3 prepaid before its due date")
	assert.True(t, report.UpToDate())
}

func TestMonitor_PaymentsAfterAsOfAreNotCounted(t *testing.T) {
	m := albionMonitor(t)
	payments := []generic.Payment{{ID: "p1", ReceivedDate: date("2025-12-01"), Amount: eur("5000")}}

	report := m.Check(payments, date("2025-11-15"))

	assert.Empty(t, report.Payments)
	assertCents(t, "0.00", report.TotalPaid)
	assertCents(t, "1703.54", report.TotalOverdue, "June stub and Q3 unpaid")
	assert.Equal(t, generic.StatusOverdue, report.Lines[1].Status)
}

func TestMonitor_RightAfterJudgment(t *testing.T) {
	m := albionMonitor(t)

	report := m.Check(nil, date("2025-07-05"))

	assert.Equal(t, "2025-12-31", report.Horizon.String())
	assert.Len(t, report.Lines, 3)
	assert.Equal(t, generic.StatusUpcoming, report.Lines[0].Status)
	assert.True(t, report.UpToDate())
}

func TestMonitor_ExplicitHorizon(t *testing.T) {
	m := albionMonitor(t)
	m.Horizon = date("2025-09-30")

	report := m.Check(nil, date("2025-11-15"))

	assert.Len(t, report.Lines, 2)
}

func TestMonitor_ValidatePayment(t *testing.T) {
	m := albionMonitor(t)

	err := m.ValidatePayment(generic.Payment{ReceivedDate: lease.AlbionJudgmentDate, Amount: eur("10")})
	assert.ErrorIs(t, err, generic.ErrPaymentBeforeJudgment)
	var dateErr *generic.PaymentDateError
	assert.ErrorAs(t, err, &dateErr)

	err = m.ValidatePayment(generic.Payment{ReceivedDate: date("2025-07-01"), Amount: eur("0")})
	assert.ErrorIs(t, err, generic.ErrInvalidAmount)

	assert.NoError(t, m.ValidatePayment(generic.Payment{ReceivedDate: date("2025-06-27"), Amount: eur("10")}))
}
