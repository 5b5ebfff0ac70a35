package cmd

import (
	"errors"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/cgarciahasapromotion-pixel/calculateur-albion/generic"
	"github.com/cgarciahasapromotion-pixel/calculateur-albion/report"
)

// ErrRentOverdue is returned by monitor --fail-on-overdue when rent is late.
var ErrRentOverdue = errors.New("post-judgment rent overdue")

var monitorCmd = &cobra.Command{
	Use:   "monitor <dossier-file>",
	Short: "Check post-judgment rent against the payments received",
	Long: `Schedule the rent falling due after the judgment, match the payments
received oldest-first and report which installments are settled, overdue or
still to come.

With --fail-on-overdue the command exits non-zero when rent is overdue, for
use from cron.

Examples:
  albion monitor lot-a102.yaml
  albion monitor lot-a102.yaml --as-of 2025-11-15
  albion monitor lot-a102.yaml --fail-on-overdue`,
	Args: cobra.ExactArgs(1),
	RunE: runMonitor,
}

var (
	monitorAsOf          string
	monitorCSV           bool
	monitorFailOnOverdue bool
)

func init() {
	rootCmd.AddCommand(monitorCmd)

	monitorCmd.Flags().StringVar(&monitorAsOf, "as-of", "", "check date (default: today)")
	monitorCmd.Flags().BoolVar(&monitorCSV, "csv", false, "write the installments as CSV")
	monitorCmd.Flags().BoolVar(&monitorFailOnOverdue, "fail-on-overdue", false, "exit with an error when rent is overdue")
}

func runMonitor(cmd *cobra.Command, args []string) error {
	d, err := readDossier(args[0])
	if err != nil {
		return err
	}
	asOf, err := parseDateFlag("as-of", monitorAsOf, generic.Today())
	if err != nil {
		return err
	}

	mr, err := d.Check(asOf)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if monitorCSV {
		err = report.WriteLedgerCSV(out, generic.Result{AsOf: mr.AsOf, Lines: mr.Lines})
	} else {
		err = report.WriteMonitor(out, mr)
	}
	if err != nil {
		return err
	}

	if !mr.UpToDate() {
		log.WithFields(log.Fields{"dossier": d.Name, "overdue": mr.TotalOverdue.String()}).Warn("post-judgment rent overdue")
		if monitorFailOnOverdue {
			return ErrRentOverdue
		}
	}
	return nil
}
