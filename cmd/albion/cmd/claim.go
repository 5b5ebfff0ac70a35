package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/cgarciahasapromotion-pixel/calculateur-albion/report"
)

var claimCmd = &cobra.Command{
	Use:   "claim <dossier-file>",
	Short: "Compute the creditor declaration at the judgment date",
	Long: `Compute the declaration of a dossier: rent arrears (privileged),
late interest, recovery indemnities and TEOM recharges (unsecured).

Accounts are frozen at the judgment date unless --as-of moves the cutoff.

Examples:
  albion claim lot-a102.yaml
  albion claim lot-a102.yaml --as-of 2025-03-31
  albion claim lot-a102.yaml --csv > a102.csv
  albion claim lot-a102.yaml --payments-csv`,
	Args: cobra.ExactArgs(1),
	RunE: runClaim,
}

var (
	claimAsOf        string
	claimCSV         bool
	claimPaymentsCSV bool
)

func init() {
	rootCmd.AddCommand(claimCmd)

	claimCmd.Flags().StringVar(&claimAsOf, "as-of", "", "cutoff date (default: the judgment date)")
	claimCmd.Flags().BoolVar(&claimCSV, "csv", false, "write the per-installment ledger as CSV")
	claimCmd.Flags().BoolVar(&claimPaymentsCSV, "payments-csv", false, "write how each payment was split as CSV")
}

func runClaim(cmd *cobra.Command, args []string) error {
	d, err := readDossier(args[0])
	if err != nil {
		return err
	}
	if claimCSV && claimPaymentsCSV {
		return fmt.Errorf("--csv and --payments-csv are exclusive")
	}
	cutoff, err := parseDateFlag("as-of", claimAsOf, d.JudgmentDate)
	if err != nil {
		return err
	}
	d.JudgmentDate = cutoff

	claim, err := d.Claim()
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	switch {
	case claimCSV:
		return report.WriteLedgerCSV(out, claim.Result)
	case claimPaymentsCSV:
		return report.WritePaymentsCSV(out, claim.Result)
	default:
		return report.WriteClaim(out, claim)
	}
}
