package generic_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cgarciahasapromotion-pixel/calculateur-albion/generic"
)

func TestSampleDates_MonthlyClampsAndEndsOnTo(t *testing.T) {
	dates := generic.SampleDates(generic.MustDate("2024-01-31"), generic.MustDate("2024-04-15"), generic.StepMonthly)

	var got []string
	for _, d := range dates {
		got = append(got, d.String())
	}
	assert.Equal(t, []string{"2024-01-31", "2024-02-29", "2024-03-31", "2024-04-15"}, got)
}

func TestSampleDates_SingleDayAndReversed(t *testing.T) {
	d := generic.MustDate("2024-06-01")

	assert.Len(t, generic.SampleDates(d, d, generic.StepWeekly), 1)
	assert.Empty(t, generic.SampleDates(d, d.AddDays(-1), generic.StepMonthly))
}

func TestSnapshot_MatchesAllocateTotals(t *testing.T) {
	engine := flatEngine("10")
	obligations := []generic.Obligation{rent("q4-2023", "2024-01-10", "4583.33")}
	payments := []generic.Payment{pay("p1", "2024-06-01", "2000")}
	asOf := generic.MustDate("2024-12-31")

	snap := engine.Snapshot(obligations, payments, asOf)
	res := engine.Allocate(obligations, payments, asOf)

	assert.True(t, snap.PrincipalBalance.Equal(res.Totals.PrincipalBalance()))
	assert.True(t, snap.InterestBalance.Equal(res.Totals.InterestOutstanding))
	assertCents(t, "2924.13", snap.Total)
}

func TestSeries_RecomputesEachSample(t *testing.T) {
	// GIVEN: One rent due mid-January and a partial payment in June
	// WHEN: Sampling monthly over 2024
	// THEN: Nothing owed before the due date, the last sample is the year-end snapshot
	engine := flatEngine("10")
	obligations := []generic.Obligation{rent("q4-2023", "2024-01-10", "4583.33")}
	payments := []generic.Payment{pay("p1", "2024-06-01", "2000")}

	series := engine.Series(obligations, payments, generic.MustDate("2024-01-01"), generic.MustDate("2024-12-31"), generic.StepMonthly)

	require.Len(t, series, 13)
	assert.True(t, series[0].Total.IsZero())
	assertCents(t, "4583.33", series[1].PrincipalBalance, "Feb 1 before any payment")
	assert.True(t, series[1].InterestBalance.IsPositive())
	last := series[len(series)-1]
	assert.Equal(t, "2024-12-31", last.AsOf.String())
	assertCents(t, "2924.13", last.Total)

	// Interest grows between the payment and year end
	assert.True(t, series[11].InterestBalance.LessThan(last.InterestBalance))
}
