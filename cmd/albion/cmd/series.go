package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/cgarciahasapromotion-pixel/calculateur-albion/generic"
	"github.com/cgarciahasapromotion-pixel/calculateur-albion/lease"
	"github.com/cgarciahasapromotion-pixel/calculateur-albion/report"
)

var seriesCmd = &cobra.Command{
	Use:   "series <dossier-file>",
	Short: "Sample a dossier's balances over time",
	Long: `Sample principal, interest, indemnity and overdue balances at regular
dates, for charts or spreadsheets.

The series starts at the lease start for a claim, or the day after the
judgment for a monitored dossier. It ends at the judgment date for a claim
and today for a monitored dossier.

Examples:
  albion series lot-a102.yaml --step quarterly
  albion series lot-a102.yaml --from 2024-01-01 --to 2024-12-31 --csv`,
	Args: cobra.ExactArgs(1),
	RunE: runSeries,
}

var (
	seriesFrom string
	seriesTo   string
	seriesStep string
	seriesCSV  bool
)

func init() {
	rootCmd.AddCommand(seriesCmd)

	seriesCmd.Flags().StringVar(&seriesFrom, "from", "", "first sample date")
	seriesCmd.Flags().StringVar(&seriesTo, "to", "", "last sample date")
	seriesCmd.Flags().StringVarP(&seriesStep, "step", "s", string(generic.StepMonthly), "weekly, monthly or quarterly")
	seriesCmd.Flags().BoolVar(&seriesCSV, "csv", false, "write the series as CSV")
}

func runSeries(cmd *cobra.Command, args []string) error {
	d, err := readDossier(args[0])
	if err != nil {
		return err
	}
	step := generic.SeriesStep(seriesStep)
	if !step.IsValid() {
		return fmt.Errorf("--step: unknown value %q (weekly, monthly or quarterly)", seriesStep)
	}

	start, end := d.Terms.Start, d.JudgmentDate
	if d.Mode == lease.ModeMonitor {
		start, end = d.JudgmentDate.AddDays(1), generic.Today()
	}
	from, err := parseDateFlag("from", seriesFrom, start)
	if err != nil {
		return err
	}
	to, err := parseDateFlag("to", seriesTo, end)
	if err != nil {
		return err
	}

	points, err := d.Series(from, to, step)
	if err != nil {
		return fmt.Errorf("series %s to %s: %w", from, to, err)
	}

	if seriesCSV {
		return report.WriteSeriesCSV(cmd.OutOrStdout(), points)
	}
	return report.WriteSeries(cmd.OutOrStdout(), points)
}
