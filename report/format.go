/*
Package report renders engine results for people: French currency strings,
CSV exports and plain-text tables for the command line.

Nothing here computes; every figure comes from generic.Result, lease.Claim or
lease.MonitorReport and is only rounded and formatted.
*/
package report

import (
	"strings"

	"github.com/cgarciahasapromotion-pixel/calculateur-albion/generic"
	"github.com/cgarciahasapromotion-pixel/calculateur-albion/lease"
)

// thousandsSep is the group separator used on the declarations.
const thousandsSep = " "

// FormatEUR renders an amount as "1 234,56 €", rounded to the cent.
func FormatEUR(a generic.Amount) string {
	s := a.Cents().Value.StringFixed(2)
	negative := strings.HasPrefix(s, "-")
	s = strings.TrimPrefix(s, "-")

	whole, frac, _ := strings.Cut(s, ".")
	var b strings.Builder
	for i, r := range whole {
		if i > 0 && (len(whole)-i)%3 == 0 {
			b.WriteString(thousandsSep)
		}
		b.WriteRune(r)
	}

	out := b.String() + "," + frac + " €"
	if negative {
		return "-" + out
	}
	return out
}

var statusLabels = map[generic.AllocationStatus]string{
	generic.StatusSettled:  "Payé",
	generic.StatusOverdue:  "Impayé",
	generic.StatusPartial:  "Partiel",
	generic.StatusUpcoming: "À venir",
}

// StatusLabel is the French label of an allocation status.
func StatusLabel(s generic.AllocationStatus) string {
	if l, ok := statusLabels[s]; ok {
		return l
	}
	return string(s)
}

// RankLabel capitalizes a claim rank for headings.
func RankLabel(r lease.Rank) string {
	s := string(r)
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
