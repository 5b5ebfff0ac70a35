package factory

import (
	"encoding/json"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/cgarciahasapromotion-pixel/calculateur-albion/generic"
	"github.com/cgarciahasapromotion-pixel/calculateur-albion/lease"
)

// =============================================================================
// MONITOR SNAPSHOT - Save file of the post-judgment monitor
// =============================================================================

// Snapshot is the save file format of the rent monitor:
//
//	{"loyer_base": 5000.0,
//	 "paiements": [{"date": "2025-07-15", "montant": 1200.0}],
//	 "info": {"nom": "...", "lot": "...", "iban": "..."},
//	 "teom": [{"annee": "2024", "montant": 210.0}]}
//
// Amounts are kept as json.Number so no float rounding happens on load.
type Snapshot struct {
	BaseAnnualRent json.Number       `json:"loyer_base"`
	Payments       []SnapshotPayment `json:"paiements"`
	Info           SnapshotInfo      `json:"info"`
	Taxes          []SnapshotTax     `json:"teom,omitempty"`
}

type SnapshotPayment struct {
	Date   string      `json:"date"`
	Amount json.Number `json:"montant"`
}

type SnapshotInfo struct {
	Name  string `json:"nom"`
	Lot   string `json:"lot"`
	IBAN  string `json:"iban"`
	Email string `json:"email,omitempty"`
	BIC   string `json:"bic,omitempty"`
}

type SnapshotTax struct {
	Year   string      `json:"annee"`
	Amount json.Number `json:"montant"`
}

// ParseSnapshot decodes a save file.
func ParseSnapshot(data []byte) (Snapshot, error) {
	var s Snapshot
	if err := json.Unmarshal(data, &s); err != nil {
		return Snapshot{}, fmt.Errorf("failed to parse snapshot: %w", err)
	}
	return s, nil
}

// FromSnapshot builds a monitor dossier from a save file.
func (f *DossierFactory) FromSnapshot(s Snapshot) (*lease.Dossier, error) {
	base, err := number(s.BaseAnnualRent, "loyer_base")
	if err != nil {
		return nil, err
	}

	name := s.Info.Name
	if name == "" {
		name = s.Info.Lot
	}
	dj := DossierJSON{
		Name:  name,
		Mode:  string(lease.ModeMonitor),
		Owner: &OwnerJSON{Name: s.Info.Name, Lot: s.Info.Lot, IBAN: s.Info.IBAN, Email: s.Info.Email, BIC: s.Info.BIC},
		Lease: LeaseJSON{
			Start:          lease.AlbionTerms(generic.ZeroAmount()).Start,
			BaseAnnualRent: base,
		},
	}
	for i, p := range s.Payments {
		d, err := generic.ParseDate(p.Date)
		if err != nil {
			return nil, fmt.Errorf("paiements[%d]: %w", i, err)
		}
		amount, err := number(p.Amount, fmt.Sprintf("paiements[%d].montant", i))
		if err != nil {
			return nil, err
		}
		dj.Payments = append(dj.Payments, PaymentJSON{Date: d, Amount: amount})
	}
	for i, t := range s.Taxes {
		amount, err := number(t.Amount, fmt.Sprintf("teom[%d].montant", i))
		if err != nil {
			return nil, err
		}
		dj.Taxes = append(dj.Taxes, TaxJSON{Year: t.Year, Amount: amount})
	}
	return f.FromJSON(dj)
}

// ToSnapshot writes the parts of a dossier the save file carries.
func ToSnapshot(d *lease.Dossier) Snapshot {
	s := Snapshot{
		BaseAnnualRent: json.Number(d.Terms.BaseAnnualRent.Value.String()),
		Payments:       []SnapshotPayment{},
		Info: SnapshotInfo{
			Name:  d.Owner.Name,
			Lot:   d.Owner.Lot,
			IBAN:  d.Owner.IBAN,
			Email: d.Owner.Email,
			BIC:   d.Owner.BIC,
		},
	}
	for _, p := range d.Payments {
		s.Payments = append(s.Payments, SnapshotPayment{Date: p.ReceivedDate.String(), Amount: json.Number(p.Amount.Value.String())})
	}
	for _, t := range d.Taxes {
		s.Taxes = append(s.Taxes, SnapshotTax{Year: t.Year, Amount: json.Number(t.Amount.Value.String())})
	}
	return s
}

func number(n json.Number, field string) (decimal.Decimal, error) {
	if n == "" {
		return decimal.Zero, nil
	}
	v, err := decimal.NewFromString(n.String())
	if err != nil {
		return decimal.Zero, &generic.AmountError{Input: n.String(), Err: fmt.Errorf("%s: %w", field, err)}
	}
	return v, nil
}
