package cmd

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cgarciahasapromotion-pixel/calculateur-albion/config"
	"github.com/cgarciahasapromotion-pixel/calculateur-albion/generic/store"
	"github.com/cgarciahasapromotion-pixel/calculateur-albion/store/sqlite"
)

// =============================================================================
// TEST HELPERS
// =============================================================================

const claimYAML = `
name: Lot A102
owner:
  name: SCI Albion
  lot: A102
lease:
  start: 2023-01-01
  base_annual_rent: 5000
taxes:
  - year: "2024"
    amount: 210
`

const monitorYAML = `
name: Lot A102
mode: monitor
lease:
  start: 2023-01-01
  base_annual_rent: 5000
payments:
  - id: pay-101
    date: 2025-07-15
    amount: 1200
    reference: VIR juillet
`

// resetFlags puts every flag back to its default, since cobra keeps values
// between executions of the same command tree.
func resetFlags(c *cobra.Command) {
	reset := func(f *pflag.Flag) {
		f.Value.Set(f.DefValue)
		f.Changed = false
	}
	c.Flags().VisitAll(reset)
	c.PersistentFlags().VisitAll(reset)
	for _, sub := range c.Commands() {
		resetFlags(sub)
	}
}

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	resetFlags(rootCmd)

	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(io.Discard)
	rootCmd.SetArgs(args)
	err := rootCmd.Execute()
	return out.String(), err
}

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

// =============================================================================
// VERSION / CONFIG
// =============================================================================

func TestVersion(t *testing.T) {
	out, err := execute(t, "version")

	require.NoError(t, err)
	assert.Contains(t, out, "albion version "+version)
}

func TestConfigInitThenValidate(t *testing.T) {
	// GIVEN: A default configuration written to disk
	path := filepath.Join(t.TempDir(), "albion.yaml")
	out, err := execute(t, "config", "init", "--output", path)
	require.NoError(t, err)
	assert.Contains(t, out, path)

	// WHEN: Validating it
	out, err = execute(t, "config", "validate", "--file", path)

	// THEN: It loads with the Albion presets
	require.NoError(t, err)
	assert.Contains(t, out, "Judgment: 2025-06-26")
	assert.Contains(t, out, "Rates: 8 entries")
	assert.Contains(t, out, "every 24h")
}

func TestConfigValidate_Invalid(t *testing.T) {
	path := writeFile(t, "bad.yaml", "server:\n  port: 0\n")

	_, err := execute(t, "config", "validate", "--file", path)

	require.Error(t, err)
	assert.Contains(t, err.Error(), "server.port")
}

func TestRoot_BadLogLevel(t *testing.T) {
	_, err := execute(t, "version", "--log-level", "loud")

	require.Error(t, err)
}

// =============================================================================
// CLAIM
// =============================================================================

func TestClaim_Table(t *testing.T) {
	// GIVEN: The Albion lot with the 2024 TEOM
	path := writeFile(t, "a102.yaml", claimYAML)

	// WHEN: Printing the declaration
	out, err := execute(t, "claim", path)

	// THEN: The total matches the reference declaration
	require.NoError(t, err)
	assert.Contains(t, out, "26/06/2025")
	assert.Contains(t, out, "16 839,51 €")
	assert.Contains(t, out, "Taux appliqués")
}

func TestClaim_CSV(t *testing.T) {
	path := writeFile(t, "a102.yaml", claimYAML)

	out, err := execute(t, "claim", path, "--csv")

	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.Greater(t, len(lines), 1)
	assert.True(t, strings.HasPrefix(lines[0], "obligation_id,kind,label"))
}

func TestClaim_ConfigDefaultsApply(t *testing.T) {
	// GIVEN: A configuration that drops the flat indemnity
	cfgPath := writeFile(t, "albion.yaml", "engine:\n  indemnity_amount: 0\n")
	path := writeFile(t, "a102.yaml", claimYAML)

	// WHEN: Computing the claim with it
	out, err := execute(t, "claim", path, "--config", cfgPath)

	// THEN: The 360 € of indemnities are gone from the total
	require.NoError(t, err)
	assert.Contains(t, out, "16 479,51 €")
}

func TestClaim_Errors(t *testing.T) {
	path := writeFile(t, "a102.yaml", claimYAML)

	tests := []struct {
		name string
		args []string
	}{
		{"missing file", []string{"claim", filepath.Join(t.TempDir(), "none.yaml")}},
		{"bad as-of", []string{"claim", path, "--as-of", "soon"}},
		{"exclusive outputs", []string{"claim", path, "--csv", "--payments-csv"}},
		{"no argument", []string{"claim"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := execute(t, tt.args...)
			assert.Error(t, err)
		})
	}
}

// =============================================================================
// MONITOR
// =============================================================================

func TestMonitor_PartialPayment(t *testing.T) {
	// GIVEN: One 1200 € payment after the judgment
	path := writeFile(t, "a102.yaml", monitorYAML)

	// WHEN: Checking in mid-November
	out, err := execute(t, "monitor", path, "--as-of", "2025-11-15")

	// THEN: The third-quarter balance is reported overdue
	require.NoError(t, err)
	assert.Contains(t, out, "Suivi au 15/11/2025")
	assert.Contains(t, out, "Total en retard : 503,54 €")
	assert.Contains(t, out, "Partiel")
}

func TestMonitor_FailOnOverdue(t *testing.T) {
	path := writeFile(t, "a102.yaml", monitorYAML)

	_, err := execute(t, "monitor", path, "--as-of", "2025-11-15", "--fail-on-overdue")
	assert.ErrorIs(t, err, ErrRentOverdue)

	// Nothing is due yet in the first days after the judgment
	_, err = execute(t, "monitor", path, "--as-of", "2025-07-05", "--fail-on-overdue")
	assert.NoError(t, err)
}

func TestMonitor_CSV(t *testing.T) {
	path := writeFile(t, "a102.yaml", monitorYAML)

	out, err := execute(t, "monitor", path, "--as-of", "2025-11-15", "--csv")

	require.NoError(t, err)
	assert.Contains(t, out, "2025-10-10")
	assert.Contains(t, out, "partial")
}

// =============================================================================
// SERIES
// =============================================================================

func TestSeries_QuarterlyCSV(t *testing.T) {
	path := writeFile(t, "a102.yaml", claimYAML)

	out, err := execute(t, "series", path, "--from", "2024-01-01", "--to", "2024-12-31", "--step", "quarterly", "--csv")

	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(out), "\n")
	assert.Equal(t, "as_of,principal,interest,indemnity,credit,total,overdue", lines[0])
	assert.GreaterOrEqual(t, len(lines), 4)
}

func TestSeries_Errors(t *testing.T) {
	path := writeFile(t, "a102.yaml", claimYAML)

	_, err := execute(t, "series", path, "--step", "daily")
	assert.Error(t, err)

	_, err = execute(t, "series", path, "--from", "2025-01-01", "--to", "2024-01-01")
	assert.Error(t, err)
}

// =============================================================================
// SERVE
// =============================================================================

func TestNewServer_MemoryStoreWithScenarios(t *testing.T) {
	// GIVEN: A configuration with no database path and demo data
	c := config.Default()
	c.Server.DBPath = ""
	c.Server.LoadScenarios = true
	c.Scheduler.Enabled = false

	// WHEN: Wiring the server
	srv, err := newServer(context.Background(), c)
	require.NoError(t, err)
	defer srv.closer.Close()

	// THEN: The API serves the portfolio
	rec := httptest.NewRecorder()
	srv.http.Handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/dossiers", nil))
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var list []map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &list))
	assert.Len(t, list, 3)
	assert.Equal(t, ":8080", srv.http.Addr)
	assert.False(t, srv.scheduler.Enabled)
}

func TestNewServer_SchedulerInterval(t *testing.T) {
	c := config.Default()
	c.Server.DBPath = ":memory:"
	c.Scheduler.Interval = "1h"

	srv, err := newServer(context.Background(), c)
	require.NoError(t, err)
	defer srv.closer.Close()

	assert.True(t, srv.scheduler.Enabled)
	assert.Equal(t, "1h0m0s", srv.scheduler.CheckInterval.String())
}

func TestOpenStore(t *testing.T) {
	st, closer, err := openStore("")
	require.NoError(t, err)
	assert.IsType(t, &store.Memory{}, st)
	assert.NoError(t, closer.Close())

	st, closer, err = openStore(":memory:")
	require.NoError(t, err)
	assert.IsType(t, &sqlite.Store{}, st)
	assert.NoError(t, closer.Close())
}
