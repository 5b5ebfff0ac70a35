package report

import (
	"encoding/csv"
	"io"
	"strconv"

	"github.com/cgarciahasapromotion-pixel/calculateur-albion/generic"
)

var ledgerHeader = []string{
	"obligation_id", "kind", "label", "due_date", "amount", "allocated", "remaining", "status", "settled_on", "days_overdue",
}

// WriteLedgerCSV writes one row per obligation of an allocation result.
// Amounts are written with two decimals and a dot separator.
func WriteLedgerCSV(w io.Writer, res generic.Result) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(ledgerHeader); err != nil {
		return err
	}
	for _, l := range res.Lines {
		settled := ""
		if l.SettledOn != nil {
			settled = l.SettledOn.String()
		}
		row := []string{
			string(l.ObligationID),
			string(l.Kind),
			l.Label,
			l.DueDate.String(),
			l.Amount.String(),
			l.Allocated.String(),
			l.Remaining.String(),
			string(l.Status),
			settled,
			strconv.Itoa(l.DaysOverdue),
		}
		if err := cw.Write(row); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

var paymentsHeader = []string{
	"payment_id", "date", "amount", "to_indemnity", "to_interest", "to_principal", "to_credit", "discarded",
}

// WritePaymentsCSV writes how each payment was split across the buckets.
func WritePaymentsCSV(w io.Writer, res generic.Result) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(paymentsHeader); err != nil {
		return err
	}
	for _, a := range res.Payments {
		row := []string{
			string(a.Payment.ID),
			a.Payment.ReceivedDate.String(),
			a.Payment.Amount.String(),
			a.ToIndemnity.String(),
			a.ToInterest.String(),
			a.ToPrincipal.String(),
			a.ToCredit.String(),
			a.Discarded.String(),
		}
		if err := cw.Write(row); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

var seriesHeader = []string{"as_of", "principal", "interest", "indemnity", "credit", "total", "overdue"}

// WriteSeriesCSV writes one row per snapshot.
func WriteSeriesCSV(w io.Writer, points []generic.BalanceSnapshot) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(seriesHeader); err != nil {
		return err
	}
	for _, p := range points {
		row := []string{
			p.AsOf.String(),
			p.PrincipalBalance.String(),
			p.InterestBalance.String(),
			p.IndemnityBalance.String(),
			p.Credit.String(),
			p.Total.String(),
			p.Overdue.String(),
		}
		if err := cw.Write(row); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}
