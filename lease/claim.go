/*
claim.go - Creditor declaration at the judgment date

PURPOSE:
  Computes what the landlord declares to the insolvency administrator: rent
  arrears up to the judgment date, late interest on them (ECB rate + 10
  points, ACT/365), the flat recovery indemnities and the household-waste tax
  (TEOM) recharges. Accounts are frozen at the judgment date; payments
  received afterwards are not part of the declaration.

RANKING:
  Principal is declared as a privileged claim; interest, indemnities and tax
  recharges are unsecured (chirographaire).

TWO-PASS INDEMNITIES:
  With SkipPaidOnTime, a first allocation run without indemnities finds the
  rents fully paid by their due date, and their indemnities are dropped
  before the final run.
*/
package lease

import (
	"github.com/cgarciahasapromotion-pixel/calculateur-albion/generic"
)

type Rank string

const (
	RankPrivileged Rank = "privilégié"
	RankUnsecured  Rank = "chirographaire"
)

// ClaimLine is one row of the declaration summary, rounded to the cent.
type ClaimLine struct {
	Label  string
	Rank   Rank
	Amount generic.Amount
}

type Declaration struct {
	Generator      *Generator
	Engine         *generic.Engine
	Indemnity      IndemnityRule
	JudgmentDate   generic.Date
	SkipPaidOnTime bool
}

type Claim struct {
	JudgmentDate generic.Date
	Rent         []generic.Obligation
	Indemnities  []generic.Obligation
	Taxes        []TaxClaim
	Result       generic.Result

	Principal      generic.Amount
	Interest       generic.Amount
	IndemnityTotal generic.Amount
	TaxTotal       generic.Amount
	Credit         generic.Amount
	Lines          []ClaimLine
	GrandTotal     generic.Amount // Sum of the rounded lines
}

// Obligations returns the rent and indemnities the declaration is built on.
func (d Declaration) Obligations(payments []generic.Payment) ([]generic.Obligation, []generic.Obligation) {
	rent := d.Generator.GenerateUntil(d.JudgmentDate)
	if !d.Indemnity.Amount.IsPositive() {
		return rent, nil
	}
	indemnities := d.Indemnity.IndemnitiesFor(rent, d.JudgmentDate)
	if d.SkipPaidOnTime {
		first := d.Engine.Allocate(rent, payments, d.JudgmentDate)
		indemnities = ExcludeSettledOnTime(indemnities, first)
	}
	return rent, indemnities
}

// Compute builds the declaration.
func (d Declaration) Compute(payments []generic.Payment, taxes []TaxClaim) Claim {
	rent, indemnities := d.Obligations(payments)
	obligations := make([]generic.Obligation, 0, len(rent)+len(indemnities))
	obligations = append(obligations, rent...)
	obligations = append(obligations, indemnities...)

	res := d.Engine.Allocate(obligations, payments, d.JudgmentDate)
	t := res.Totals

	taxTotal := generic.ZeroAmount()
	for _, tc := range taxes {
		taxTotal = taxTotal.Add(tc.Amount)
	}

	c := Claim{
		JudgmentDate:   d.JudgmentDate,
		Rent:           rent,
		Indemnities:    indemnities,
		Taxes:          taxes,
		Result:         res,
		Principal:      t.PrincipalOutstanding,
		Interest:       t.InterestOutstanding,
		IndemnityTotal: t.IndemnityOutstanding,
		TaxTotal:       taxTotal,
		Credit:         t.Credit,
	}

	c.Lines = []ClaimLine{
		{Label: "Principal (loyers impayés)", Rank: RankPrivileged, Amount: c.Principal.Cents()},
		{Label: "Intérêts de retard arrêtés au " + d.JudgmentDate.French(), Rank: RankUnsecured, Amount: c.Interest.Cents()},
		{Label: "Indemnités forfaitaires de recouvrement", Rank: RankUnsecured, Amount: c.IndemnityTotal.Cents()},
		{Label: "Taxes (TEOM)", Rank: RankUnsecured, Amount: c.TaxTotal.Cents()},
	}
	if c.Credit.IsPositive() {
		c.Lines = append(c.Lines, ClaimLine{Label: "Trop-perçu à déduire", Rank: RankUnsecured, Amount: c.Credit.Cents().Neg()})
	}

	c.GrandTotal = generic.ZeroAmount()
	for _, l := range c.Lines {
		c.GrandTotal = c.GrandTotal.Add(l.Amount)
	}
	if c.GrandTotal.IsNegative() {
		c.GrandTotal = generic.ZeroAmount()
	}
	return c
}

// TotalByRank sums the rounded lines of one rank.
func (c Claim) TotalByRank(rank Rank) generic.Amount {
	total := generic.ZeroAmount()
	for _, l := range c.Lines {
		if l.Rank == rank {
			total = total.Add(l.Amount)
		}
	}
	return total
}

// RatesApplied lists the distinct annual rates used, in order of first use.
func (c Claim) RatesApplied() []generic.RateEntry {
	var out []generic.RateEntry
	for _, seg := range c.Result.Segments {
		if n := len(out); n > 0 && out[n-1].AnnualRatePercent.Equal(seg.RatePercent) {
			continue
		}
		out = append(out, generic.RateEntry{EffectiveDate: seg.Start, AnnualRatePercent: seg.RatePercent})
	}
	return out
}
