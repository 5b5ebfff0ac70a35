package generic_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cgarciahasapromotion-pixel/calculateur-albion/generic"
)

func TestBuildEventStream_OrdersByDateDebitsFirstOnTies(t *testing.T) {
	// GIVEN: Two rents and two payments, one sharing the first rent's date
	obligations := []generic.Obligation{
		rent("r2", "2024-07-10", "100"),
		rent("r1", "2024-04-10", "100"),
	}
	payments := []generic.Payment{
		pay("p2", "2024-05-02", "50"),
		pay("p1", "2024-04-10", "100"),
	}

	// WHEN: Merging them
	events := generic.BuildEventStream(obligations, payments)

	// THEN: Events are by date, and the debit precedes the credit on 04-10
	require.Len(t, events, 4)
	got := make([]string, len(events))
	for i, ev := range events {
		got[i] = ev.Kind.String() + " " + ev.At.String()
	}
	assert.Equal(t, []string{
		"debit 2024-04-10",
		"credit 2024-04-10",
		"credit 2024-05-02",
		"debit 2024-07-10",
	}, got)
	assert.Equal(t, 1, events[0].Index, "index points into the caller's slice")
	assert.Equal(t, 1, events[1].Index)
}

func TestBuildEventStream_KeepsCallerOrderForSameDayEvents(t *testing.T) {
	payments := []generic.Payment{
		pay("a", "2024-04-10", "10"),
		pay("b", "2024-04-10", "20"),
		pay("c", "2024-04-10", "30"),
	}

	events := generic.BuildEventStream(nil, payments)

	require.Len(t, events, 3)
	for i, ev := range events {
		assert.Equal(t, generic.EventCredit, ev.Kind)
		assert.Equal(t, i, ev.Index)
	}
}
