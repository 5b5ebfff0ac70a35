package report

import (
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/cgarciahasapromotion-pixel/calculateur-albion/generic"
	"github.com/cgarciahasapromotion-pixel/calculateur-albion/lease"
)

func newTable(w io.Writer) *tabwriter.Writer {
	return tabwriter.NewWriter(w, 0, 0, 2, ' ', tabwriter.AlignRight|tabwriter.Debug)
}

// WriteClaim prints the declaration summary and the per-installment detail.
func WriteClaim(w io.Writer, c lease.Claim) error {
	fmt.Fprintf(w, "Déclaration de créance arrêtée au %s\n\n", c.JudgmentDate.French())

	tw := newTable(w)
	fmt.Fprintln(tw, "Poste\tRang\tMontant\t")
	for _, l := range c.Lines {
		fmt.Fprintf(tw, "%s\t%s\t%s\t\n", l.Label, RankLabel(l.Rank), FormatEUR(l.Amount))
	}
	fmt.Fprintf(tw, "TOTAL\t\t%s\t\n", FormatEUR(c.GrandTotal))
	if err := tw.Flush(); err != nil {
		return err
	}

	fmt.Fprintln(w)
	if err := writeLines(w, c.Result.Lines); err != nil {
		return err
	}

	fmt.Fprintln(w, "\nTaux appliqués :")
	for _, r := range c.RatesApplied() {
		fmt.Fprintf(w, "  à partir du %s : %s %%\n", r.EffectiveDate.French(), r.AnnualRatePercent.StringFixed(2))
	}
	return nil
}

// WriteMonitor prints the post-judgment follow-up.
func WriteMonitor(w io.Writer, r lease.MonitorReport) error {
	fmt.Fprintf(w, "Suivi au %s (échéancier jusqu'au %s)\n", r.AsOf.French(), r.Horizon.French())
	fmt.Fprintf(w, "Loyer indexé en vigueur : %s TTC par an, soit %s par trimestre\n\n",
		FormatEUR(r.Preview.AnnualInclTax), FormatEUR(r.Preview.Quarterly))

	if err := writeLines(w, r.Lines); err != nil {
		return err
	}

	fmt.Fprintf(w, "\nTotal payé : %s\n", FormatEUR(r.TotalPaid))
	fmt.Fprintf(w, "Total en retard : %s\n", FormatEUR(r.TotalOverdue))
	if r.Credit.IsPositive() {
		fmt.Fprintf(w, "Avance disponible : %s\n", FormatEUR(r.Credit))
	}
	return nil
}

// WriteSeries prints one row per snapshot.
func WriteSeries(w io.Writer, points []generic.BalanceSnapshot) error {
	tw := newTable(w)
	fmt.Fprintln(tw, "Date\tPrincipal\tIntérêts\tIndemnités\tTotal\tEn retard\t")
	for _, p := range points {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\t%s\t\n",
			p.AsOf.French(),
			FormatEUR(p.PrincipalBalance),
			FormatEUR(p.InterestBalance),
			FormatEUR(p.IndemnityBalance),
			FormatEUR(p.Total),
			FormatEUR(p.Overdue),
		)
	}
	return tw.Flush()
}

func writeLines(w io.Writer, lines []generic.AllocationResult) error {
	tw := newTable(w)
	fmt.Fprintln(tw, "Échéance\tLibellé\tMontant\tRéglé\tReste dû\tStatut\tJours\t")
	for _, l := range lines {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\t%s\t%d\t\n",
			l.DueDate.French(),
			l.Label,
			FormatEUR(l.Amount),
			FormatEUR(l.Allocated),
			FormatEUR(l.Remaining),
			StatusLabel(l.Status),
			l.DaysOverdue,
		)
	}
	return tw.Flush()
}
