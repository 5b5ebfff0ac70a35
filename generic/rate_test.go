package generic_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cgarciahasapromotion-pixel/calculateur-albion/generic"
)

// =============================================================================
// TEST HELPERS
// =============================================================================

func pct(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func entry(date, rate string) generic.RateEntry {
	return generic.RateEntry{EffectiveDate: generic.MustDate(date), AnnualRatePercent: pct(rate)}
}

func semesterTable() *generic.RateTable {
	return generic.MustRateTable(
		entry("2024-07-01", "14.25"),
		entry("2023-01-01", "12.50"),
		entry("2024-01-01", "14.50"),
	)
}

// =============================================================================
// LOOKUP
// =============================================================================

func TestRateTable_RateOn_PicksLatestEffectiveEntry(t *testing.T) {
	rates := semesterTable()

	assert.True(t, pct("12.50").Equal(rates.RateOn(generic.MustDate("2023-06-30"))))
	assert.True(t, pct("14.50").Equal(rates.RateOn(generic.MustDate("2024-01-01"))), "effective date itself uses the new rate")
	assert.True(t, pct("14.50").Equal(rates.RateOn(generic.MustDate("2024-06-30"))))
	assert.True(t, pct("14.25").Equal(rates.RateOn(generic.MustDate("2030-01-01"))))
}

func TestRateTable_RateOn_BeforeFirstEntryUsesEarliestRate(t *testing.T) {
	rates := semesterTable()

	got := rates.RateOn(generic.MustDate("2019-05-01"))

	assert.True(t, pct("12.50").Equal(got), "got %s", got)
}

func TestRateTable_NextChangeAfter(t *testing.T) {
	rates := semesterTable()

	next, ok := rates.NextChangeAfter(generic.MustDate("2023-03-01"))
	require.True(t, ok)
	assert.Equal(t, "2024-01-01", next.String())

	next, ok = rates.NextChangeAfter(generic.MustDate("2024-01-01"))
	require.True(t, ok)
	assert.Equal(t, "2024-07-01", next.String(), "change strictly after the given day")

	_, ok = rates.NextChangeAfter(generic.MustDate("2024-07-01"))
	assert.False(t, ok)
}

func TestRateTable_FlatRateNeverChanges(t *testing.T) {
	rates := generic.FlatRate(pct("10"))

	assert.True(t, pct("10").Equal(rates.RateOn(generic.MustDate("1999-01-01"))))
	_, ok := rates.NextChangeAfter(generic.MustDate("1999-01-01"))
	assert.False(t, ok)
}

// =============================================================================
// CONSTRUCTION
// =============================================================================

func TestNewRateTable_Rejects(t *testing.T) {
	tests := []struct {
		name    string
		entries []generic.RateEntry
	}{
		{"empty", nil},
		{"negative", []generic.RateEntry{entry("2024-01-01", "-1")}},
		{"duplicate date", []generic.RateEntry{entry("2024-01-01", "10"), entry("2024-01-01", "11")}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := generic.NewRateTable(tt.entries)
			require.Error(t, err)
			assert.ErrorIs(t, err, generic.ErrInvalidRateTable)
			assert.True(t, generic.IsClientError(err))
		})
	}
}

func TestNewRateTable_SortsACopy(t *testing.T) {
	input := []generic.RateEntry{entry("2024-07-01", "14.25"), entry("2023-01-01", "12.50")}

	rates, err := generic.NewRateTable(input)
	require.NoError(t, err)

	assert.Equal(t, "2024-07-01", input[0].EffectiveDate.String(), "caller slice untouched")
	entries := rates.Entries()
	require.Len(t, entries, 2)
	assert.Equal(t, "2023-01-01", entries[0].EffectiveDate.String())
}
