package generic_test

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cgarciahasapromotion-pixel/calculateur-albion/generic"
)

func TestParseDate_AcceptsISOAndFrench(t *testing.T) {
	iso, err := generic.ParseDate("2025-06-26")
	require.NoError(t, err)
	fr, err := generic.ParseDate("26/06/2025")
	require.NoError(t, err)

	assert.True(t, iso.Equal(fr))
	assert.Equal(t, "26/06/2025", iso.French())

	_, err = generic.ParseDate("June 26")
	assert.ErrorIs(t, err, generic.ErrInvalidDate)
}

func TestDate_JSONNullIsZero(t *testing.T) {
	var v struct {
		At generic.Date `json:"at"`
	}
	require.NoError(t, json.Unmarshal([]byte(`{"at": null}`), &v))
	assert.True(t, v.At.IsZero())

	require.NoError(t, json.Unmarshal([]byte(`{"at": "2024-02-29"}`), &v))
	assert.Equal(t, generic.NewDate(2024, time.February, 29), v.At)
}

func TestDaysBetween_SignedAcrossLeapDay(t *testing.T) {
	assert.Equal(t, 366, generic.DaysBetween(generic.MustDate("2024-01-01"), generic.MustDate("2025-01-01")))
	assert.Equal(t, -1, generic.DaysBetween(generic.MustDate("2024-03-01"), generic.MustDate("2024-02-29")))
}

func TestPeriod_MonthsSplitsAtMonthBoundaries(t *testing.T) {
	p := generic.Period{Start: generic.MustDate("2025-06-27"), End: generic.MustDate("2025-08-15")}

	months := p.Months()

	require.Len(t, months, 3)
	assert.Equal(t, 4, months[0].Days())
	assert.False(t, months[0].IsFullMonth())
	assert.True(t, months[1].IsFullMonth())
	assert.Equal(t, 15, months[2].Days())
}

func TestQuarterPeriod(t *testing.T) {
	q := generic.QuarterPeriod(generic.MustDate("2025-08-15"))

	assert.Equal(t, "2025-07-01", q.Start.String())
	assert.Equal(t, "2025-09-30", q.End.String())
	assert.Equal(t, 3, generic.Quarter(generic.MustDate("2025-08-15")))
	assert.Equal(t, "2025-12-31", q.NextPeriod().End.String())
}

func TestPeriod_Intersect(t *testing.T) {
	q := generic.QuarterPeriod(generic.MustDate("2025-05-01"))
	cut := generic.Period{Start: generic.MustDate("2025-01-01"), End: generic.MustDate("2025-06-26")}

	got, ok := q.Intersect(cut)

	require.True(t, ok)
	assert.Equal(t, "[2025-04-01, 2025-06-26]", got.String())

	_, ok = q.Intersect(generic.Period{Start: generic.MustDate("2026-01-01"), End: generic.MustDate("2026-02-01")})
	assert.False(t, ok)
}
