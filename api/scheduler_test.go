package api

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cgarciahasapromotion-pixel/calculateur-albion/generic"
)

func TestOverdueScheduler_Check(t *testing.T) {
	// GIVEN: Three monitored lots, two of them behind
	ts := newMemoryServer(t)
	ctx := context.Background()
	require.NoError(t, ts.handler.LoadScenarioByID(ctx, "albion-portfolio"))
	s := NewOverdueScheduler(ts.handler)

	// WHEN: Checking as of mid-November
	alerts := s.Check(ctx, generic.MustDate("2025-11-15"))

	// THEN: Both are reported and kept as the last run
	require.Len(t, alerts, 2)
	last, ranAt := s.Last()
	assert.Equal(t, alerts, last)
	assert.False(t, ranAt.IsZero())
}

func TestOverdueScheduler_RightAfterJudgment(t *testing.T) {
	ts := newMemoryServer(t)
	ctx := context.Background()
	require.NoError(t, ts.handler.LoadScenarioByID(ctx, "albion-portfolio"))

	alerts := NewOverdueScheduler(ts.handler).Check(ctx, generic.MustDate("2025-07-01"))

	assert.Empty(t, alerts, "nothing is due before 10/07/2025")
}

func TestOverdueScheduler_StartRunsImmediately(t *testing.T) {
	ts := newMemoryServer(t)
	require.NoError(t, ts.handler.LoadScenarioByID(context.Background(), "albion-portfolio"))
	s := NewOverdueScheduler(ts.handler)
	s.CheckInterval = time.Hour

	s.Start()
	s.Start()
	s.Stop()
	s.Stop()

	last, ranAt := s.Last()
	assert.Len(t, last, 2)
	assert.False(t, ranAt.IsZero())
}

func TestOverdueScheduler_Disabled(t *testing.T) {
	ts := newMemoryServer(t)
	s := NewOverdueScheduler(ts.handler)
	s.Enabled = false

	s.Start()
	s.Stop()

	_, ranAt := s.Last()
	assert.True(t, ranAt.IsZero())
}
