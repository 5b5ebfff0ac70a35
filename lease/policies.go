/*
policies.go - Pre-built Albion lease configuration

PURPOSE:
  Ready-to-use tables and terms for the Hotel Albion leases: the semester
  late-interest table (ECB main refinancing rate + 10 points), the ILC index
  values used for the yearly revisions, and the billing terms shared by the
  lots.

RATES (ECB MRO + 10, fixed on 1 January and 1 July):
  2022-01-01  10.00
  2022-07-01  10.00
  2023-01-01  12.50
  2023-07-01  14.00
  2024-01-01  14.50
  2024-07-01  14.25
  2025-01-01  13.15
  2025-07-01  12.15

INDICES:
  Base 114.06; the 2024 value (135.30) revises the 2025 rent, the 2025
  value (139.50, provisional) the 2026 rent.

EXAMPLE:
  d := lease.AlbionDossier("Lot A102", generic.MustAmount("5000"))
  claim, _ := d.Claim()
*/
package lease

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/cgarciahasapromotion-pixel/calculateur-albion/generic"
)

// AlbionJudgmentDate is the opening judgment of the proceedings.
var AlbionJudgmentDate = generic.NewDate(2025, time.June, 26)

// LegalRateTable returns the semester late-interest rates.
func LegalRateTable() *generic.RateTable {
	r := func(date, pct string) generic.RateEntry {
		return generic.RateEntry{EffectiveDate: generic.MustDate(date), AnnualRatePercent: decimal.RequireFromString(pct)}
	}
	return generic.MustRateTable(
		r("2022-01-01", "10.00"),
		r("2022-07-01", "10.00"),
		r("2023-01-01", "12.50"),
		r("2023-07-01", "14.00"),
		r("2024-01-01", "14.50"),
		r("2024-07-01", "14.25"),
		r("2025-01-01", "13.15"),
		r("2025-07-01", "12.15"),
	)
}

// AlbionIndices returns the ILC values of the Albion leases.
func AlbionIndices() IndexTable {
	return IndexTable{
		Base: IndexEntry{PeriodLabel: "BASE", Value: decimal.RequireFromString("114.06")},
		Revisions: []IndexEntry{
			{PeriodLabel: "2024", Value: decimal.RequireFromString("135.30")},
			{PeriodLabel: "2025", Value: decimal.RequireFromString("139.50")},
		},
	}
}

// AlbionTerms returns quarterly in-arrears terms, VAT 10%, revised each 1 January from 2025.
func AlbionTerms(baseAnnualRent generic.Amount) Terms {
	return Terms{
		Start:          generic.NewDate(2023, time.January, 1),
		BaseAnnualRent: baseAnnualRent,
		TaxRate:        DefaultTaxRate,
		Frequency:      FrequencyQuarterly,
		Billing:        BillingInArrears,
		DueDay:         DefaultDueDay,
		FirstRevision:  generic.NewDate(2025, time.January, 1),
		Ratchet:        true,
		CloseAtCutoff:  true,
	}
}

// AlbionDossier assembles a dossier for one lot with the default tables.
func AlbionDossier(name string, baseAnnualRent generic.Amount) *Dossier {
	return &Dossier{
		ID:           generic.NewDossierID(),
		Name:         name,
		Mode:         ModeClaim,
		Terms:        AlbionTerms(baseAnnualRent),
		Indices:      AlbionIndices(),
		Rates:        LegalRateTable(),
		JudgmentDate: AlbionJudgmentDate,
		Indemnity:    IndemnityRule{Amount: DefaultIndemnityAmount},
	}
}
