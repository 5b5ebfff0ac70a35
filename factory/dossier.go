/*
Package factory converts dossier documents (JSON or YAML) into lease.Dossier
values and back.

PURPOSE:
  A dossier is edited and stored as a document: the lease terms, the tables,
  the payments and the tax recharges. The factory fills the fields a document
  leaves out from a set of defaults (the Albion presets unless configured
  otherwise) and builds the typed dossier the engine works on.

DOCUMENT:
  name: Lot A102
  mode: claim
  judgment_date: 2025-06-26
  lease:
    start: 2023-01-01
    base_annual_rent: 5000
    frequency: quarterly
    billing: in_arrears
    first_revision: 2025-01-01
  engine:
    indemnity_amount: 40
  payments:
    - date: 2024-02-01
      amount: 1375
  taxes:
    - year: "2024"
      amount: 210

  Omitted fields take their default: tax rate 10%, due day 10, ratchet on,
  the ILC table, the semester rate table and the 40 € indemnity.

USAGE:
  f := factory.NewDossierFactory(factory.AlbionDefaults())
  d, err := f.ParseDossier(data)

SEE ALSO:
  - snapshot.go: Save file of the post-judgment monitor
  - lease/policies.go: Albion presets
*/
package factory

import (
	"encoding/json"
	"fmt"

	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"

	"github.com/cgarciahasapromotion-pixel/calculateur-albion/generic"
	"github.com/cgarciahasapromotion-pixel/calculateur-albion/lease"
)

// =============================================================================
// DOCUMENT TYPES
// =============================================================================

// DossierJSON is the document form of a dossier.
type DossierJSON struct {
	ID           string        `json:"id,omitempty" yaml:"id,omitempty"`
	Name         string        `json:"name" yaml:"name"`
	Mode         string        `json:"mode,omitempty" yaml:"mode,omitempty"`
	Owner        *OwnerJSON    `json:"owner,omitempty" yaml:"owner,omitempty"`
	JudgmentDate generic.Date  `json:"judgment_date,omitempty" yaml:"judgment_date,omitempty"`
	Horizon      generic.Date  `json:"horizon,omitempty" yaml:"horizon,omitempty"`
	Lease        LeaseJSON     `json:"lease" yaml:"lease"`
	Engine       *EngineJSON   `json:"engine,omitempty" yaml:"engine,omitempty"`
	Payments     []PaymentJSON `json:"payments,omitempty" yaml:"payments,omitempty"`
	Taxes        []TaxJSON     `json:"taxes,omitempty" yaml:"taxes,omitempty"`
}

type OwnerJSON struct {
	Name  string `json:"name,omitempty" yaml:"name,omitempty"`
	Lot   string `json:"lot,omitempty" yaml:"lot,omitempty"`
	Phone string `json:"phone,omitempty" yaml:"phone,omitempty"`
	Email string `json:"email,omitempty" yaml:"email,omitempty"`
	IBAN  string `json:"iban,omitempty" yaml:"iban,omitempty"`
	BIC   string `json:"bic,omitempty" yaml:"bic,omitempty"`
}

// LeaseJSON holds the lease terms. Pointer fields distinguish "absent" from
// an explicit zero or false.
type LeaseJSON struct {
	Start          generic.Date     `json:"start,omitempty" yaml:"start,omitempty"`
	End            generic.Date     `json:"end,omitempty" yaml:"end,omitempty"`
	BaseAnnualRent decimal.Decimal  `json:"base_annual_rent" yaml:"base_annual_rent"`
	TaxRate        *decimal.Decimal `json:"tax_rate,omitempty" yaml:"tax_rate,omitempty"`
	Frequency      string           `json:"frequency,omitempty" yaml:"frequency,omitempty"`
	Billing        string           `json:"billing,omitempty" yaml:"billing,omitempty"`
	DueDay         int              `json:"due_day,omitempty" yaml:"due_day,omitempty"`
	FirstRevision  generic.Date     `json:"first_revision,omitempty" yaml:"first_revision,omitempty"`
	Ratchet        *bool            `json:"ratchet,omitempty" yaml:"ratchet,omitempty"`
	CloseAtCutoff  *bool            `json:"close_at_cutoff,omitempty" yaml:"close_at_cutoff,omitempty"`
	Indices        *IndicesJSON     `json:"indices,omitempty" yaml:"indices,omitempty"`
}

type IndicesJSON struct {
	Base      IndexJSON   `json:"base" yaml:"base"`
	Revisions []IndexJSON `json:"revisions,omitempty" yaml:"revisions,omitempty"`
}

type IndexJSON struct {
	Label string          `json:"label" yaml:"label"`
	Value decimal.Decimal `json:"value" yaml:"value"`
}

// EngineJSON configures interest and allocation. Rates and FlatRate are
// exclusive; FlatRate wins when both are set.
type EngineJSON struct {
	Rates            []RateJSON       `json:"rates,omitempty" yaml:"rates,omitempty"`
	FlatRate         *decimal.Decimal `json:"flat_rate,omitempty" yaml:"flat_rate,omitempty"`
	IndemnityAmount  *decimal.Decimal `json:"indemnity_amount,omitempty" yaml:"indemnity_amount,omitempty"`
	SkipPaidOnTime   bool             `json:"skip_paid_on_time,omitempty" yaml:"skip_paid_on_time,omitempty"`
	ClampOverpayment *bool            `json:"clamp_overpayment,omitempty" yaml:"clamp_overpayment,omitempty"`
}

type RateJSON struct {
	EffectiveDate     generic.Date    `json:"effective_date" yaml:"effective_date"`
	AnnualRatePercent decimal.Decimal `json:"annual_rate_percent" yaml:"annual_rate_percent"`
}

type PaymentJSON struct {
	ID        string          `json:"id,omitempty" yaml:"id,omitempty"`
	Date      generic.Date    `json:"date" yaml:"date"`
	Amount    decimal.Decimal `json:"amount" yaml:"amount"`
	Reference string          `json:"reference,omitempty" yaml:"reference,omitempty"`
}

type TaxJSON struct {
	Year   string          `json:"year" yaml:"year"`
	Amount decimal.Decimal `json:"amount" yaml:"amount"`
}

// =============================================================================
// DEFAULTS
// =============================================================================

// Defaults are applied to every field a document omits.
type Defaults struct {
	JudgmentDate     generic.Date
	TaxRate          decimal.Decimal
	DueDay           int
	Frequency        lease.Frequency
	Billing          lease.Billing
	FirstRevision    generic.Date
	Ratchet          bool
	CloseAtCutoff    bool
	Indices          lease.IndexTable
	Rates            *generic.RateTable
	IndemnityAmount  generic.Amount
	ClampOverpayment bool
}

// AlbionDefaults returns the presets shared by the Albion lots.
func AlbionDefaults() Defaults {
	terms := lease.AlbionTerms(generic.ZeroAmount())
	return Defaults{
		JudgmentDate:    lease.AlbionJudgmentDate,
		TaxRate:         terms.TaxRate,
		DueDay:          terms.DueDay,
		Frequency:       terms.Frequency,
		Billing:         terms.Billing,
		FirstRevision:   terms.FirstRevision,
		Ratchet:         terms.Ratchet,
		CloseAtCutoff:   terms.CloseAtCutoff,
		Indices:         lease.AlbionIndices(),
		Rates:           lease.LegalRateTable(),
		IndemnityAmount: lease.DefaultIndemnityAmount,
	}
}

// =============================================================================
// DOSSIER FACTORY
// =============================================================================

type DossierFactory struct {
	defaults Defaults
}

func NewDossierFactory(defaults Defaults) *DossierFactory {
	return &DossierFactory{defaults: defaults}
}

// Defaults returns the defaults the factory fills documents with.
func (f *DossierFactory) Defaults() Defaults { return f.defaults }

// DecodeDossier reads a document, trying YAML first and JSON second.
func DecodeDossier(data []byte) (DossierJSON, error) {
	var dj DossierJSON
	yamlErr := yaml.Unmarshal(data, &dj)
	if yamlErr == nil {
		return dj, nil
	}
	dj = DossierJSON{}
	if err := json.Unmarshal(data, &dj); err != nil {
		return DossierJSON{}, fmt.Errorf("failed to parse dossier (yaml: %v): %w", yamlErr, err)
	}
	return dj, nil
}

// ParseDossier decodes a document and builds the dossier.
func (f *DossierFactory) ParseDossier(data []byte) (*lease.Dossier, error) {
	dj, err := DecodeDossier(data)
	if err != nil {
		return nil, err
	}
	return f.FromJSON(dj)
}

// FromJSON builds a validated dossier, filling omitted fields from the defaults.
func (f *DossierFactory) FromJSON(dj DossierJSON) (*lease.Dossier, error) {
	def := f.defaults

	d := &lease.Dossier{
		ID:           generic.DossierID(dj.ID),
		Name:         dj.Name,
		Mode:         lease.Mode(dj.Mode),
		JudgmentDate: dj.JudgmentDate,
		Horizon:      dj.Horizon,
		Indices:      def.Indices,
		Rates:        def.Rates,
		Indemnity:    lease.IndemnityRule{Amount: def.IndemnityAmount},
		Options:      generic.Options{ClampOverpayment: def.ClampOverpayment},
	}
	if d.ID == "" {
		d.ID = generic.NewDossierID()
	}
	if d.Mode == "" {
		d.Mode = lease.ModeClaim
	}
	if d.JudgmentDate.IsZero() {
		d.JudgmentDate = def.JudgmentDate
	}
	if dj.Owner != nil {
		d.Owner = lease.Owner{
			Name: dj.Owner.Name, Lot: dj.Owner.Lot, Phone: dj.Owner.Phone,
			Email: dj.Owner.Email, IBAN: dj.Owner.IBAN, BIC: dj.Owner.BIC,
		}
	}

	d.Terms = f.terms(dj.Lease)
	if dj.Lease.Indices != nil {
		indices, err := indexTable(*dj.Lease.Indices)
		if err != nil {
			return nil, err
		}
		d.Indices = indices
	}

	if e := dj.Engine; e != nil {
		switch {
		case e.FlatRate != nil:
			d.Rates = generic.FlatRate(*e.FlatRate)
		case len(e.Rates) > 0:
			entries := make([]generic.RateEntry, len(e.Rates))
			for i, r := range e.Rates {
				entries[i] = generic.RateEntry{EffectiveDate: r.EffectiveDate, AnnualRatePercent: r.AnnualRatePercent}
			}
			rates, err := generic.NewRateTable(entries)
			if err != nil {
				return nil, err
			}
			d.Rates = rates
		}
		if e.IndemnityAmount != nil {
			d.Indemnity.Amount = generic.NewAmount(*e.IndemnityAmount)
		}
		if e.ClampOverpayment != nil {
			d.Options.ClampOverpayment = *e.ClampOverpayment
		}
		d.SkipPaidOnTime = e.SkipPaidOnTime
	}

	for _, p := range dj.Payments {
		id := generic.PaymentID(p.ID)
		if id == "" {
			id = generic.NewPaymentID()
		}
		d.Payments = append(d.Payments, generic.Payment{
			ID:           id,
			ReceivedDate: p.Date,
			Amount:       generic.NewAmount(p.Amount),
			Reference:    p.Reference,
		})
	}
	for _, t := range dj.Taxes {
		d.Taxes = append(d.Taxes, lease.TaxClaim{Year: t.Year, Amount: generic.NewAmount(t.Amount)})
	}

	if err := d.Validate(); err != nil {
		return nil, fmt.Errorf("dossier %q: %w", d.Name, err)
	}
	return d, nil
}

func (f *DossierFactory) terms(lj LeaseJSON) lease.Terms {
	def := f.defaults
	t := lease.Terms{
		Start:          lj.Start,
		End:            lj.End,
		BaseAnnualRent: generic.NewAmount(lj.BaseAnnualRent),
		TaxRate:        def.TaxRate,
		Frequency:      lease.Frequency(lj.Frequency),
		Billing:        lease.Billing(lj.Billing),
		DueDay:         lj.DueDay,
		FirstRevision:  lj.FirstRevision,
		Ratchet:        def.Ratchet,
		CloseAtCutoff:  def.CloseAtCutoff,
	}
	if lj.TaxRate != nil {
		t.TaxRate = *lj.TaxRate
	}
	if t.Frequency == "" {
		t.Frequency = def.Frequency
	}
	if t.Billing == "" {
		t.Billing = def.Billing
	}
	if t.DueDay == 0 {
		t.DueDay = def.DueDay
	}
	if t.FirstRevision.IsZero() {
		t.FirstRevision = def.FirstRevision
	}
	if lj.Ratchet != nil {
		t.Ratchet = *lj.Ratchet
	}
	if lj.CloseAtCutoff != nil {
		t.CloseAtCutoff = *lj.CloseAtCutoff
	}
	return t
}

func indexTable(ij IndicesJSON) (lease.IndexTable, error) {
	revisions := make([]lease.IndexEntry, len(ij.Revisions))
	for i, r := range ij.Revisions {
		revisions[i] = lease.IndexEntry{PeriodLabel: r.Label, Value: r.Value}
	}
	return lease.NewIndexTable(lease.IndexEntry{PeriodLabel: ij.Base.Label, Value: ij.Base.Value}, revisions...)
}

// =============================================================================
// DOSSIER TO DOCUMENT
// =============================================================================

// ToJSON renders a dossier as a complete document; every default is written out.
func ToJSON(d *lease.Dossier) DossierJSON {
	t := d.Terms
	taxRate := t.TaxRate
	ratchet, closeAtCutoff := t.Ratchet, t.CloseAtCutoff
	indemnity := d.Indemnity.Amount.Value
	clamp := d.Options.ClampOverpayment

	dj := DossierJSON{
		ID:           string(d.ID),
		Name:         d.Name,
		Mode:         string(d.Mode),
		JudgmentDate: d.JudgmentDate,
		Horizon:      d.Horizon,
		Lease: LeaseJSON{
			Start:          t.Start,
			End:            t.End,
			BaseAnnualRent: t.BaseAnnualRent.Value,
			TaxRate:        &taxRate,
			Frequency:      string(t.Frequency),
			Billing:        string(t.Billing),
			DueDay:         t.DueDay,
			FirstRevision:  t.FirstRevision,
			Ratchet:        &ratchet,
			CloseAtCutoff:  &closeAtCutoff,
			Indices: &IndicesJSON{
				Base: IndexJSON{Label: d.Indices.Base.PeriodLabel, Value: d.Indices.Base.Value},
			},
		},
		Engine: &EngineJSON{
			IndemnityAmount:  &indemnity,
			SkipPaidOnTime:   d.SkipPaidOnTime,
			ClampOverpayment: &clamp,
		},
	}
	if o := d.Owner; o != (lease.Owner{}) {
		dj.Owner = &OwnerJSON{Name: o.Name, Lot: o.Lot, Phone: o.Phone, Email: o.Email, IBAN: o.IBAN, BIC: o.BIC}
	}
	for _, r := range d.Indices.Revisions {
		dj.Lease.Indices.Revisions = append(dj.Lease.Indices.Revisions, IndexJSON{Label: r.PeriodLabel, Value: r.Value})
	}
	if d.Rates != nil {
		for _, r := range d.Rates.Entries() {
			dj.Engine.Rates = append(dj.Engine.Rates, RateJSON{EffectiveDate: r.EffectiveDate, AnnualRatePercent: r.AnnualRatePercent})
		}
	}
	for _, p := range d.Payments {
		dj.Payments = append(dj.Payments, PaymentJSON{ID: string(p.ID), Date: p.ReceivedDate, Amount: p.Amount.Value, Reference: p.Reference})
	}
	for _, tc := range d.Taxes {
		dj.Taxes = append(dj.Taxes, TaxJSON{Year: tc.Year, Amount: tc.Amount.Value})
	}
	return dj
}

// MarshalDossier writes a dossier as indented JSON.
func MarshalDossier(d *lease.Dossier) ([]byte, error) {
	return json.MarshalIndent(ToJSON(d), "", "  ")
}
