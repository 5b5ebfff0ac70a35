package lease

import (
	"fmt"

	"github.com/cgarciahasapromotion-pixel/calculateur-albion/generic"
)

// Mode selects what a dossier is used for.
type Mode string

const (
	ModeClaim   Mode = "claim"   // Declaration of arrears at the judgment date
	ModeMonitor Mode = "monitor" // Follow-up of rent falling due after the judgment
)

func (m Mode) IsValid() bool { return m == ModeClaim || m == ModeMonitor }

// Dossier bundles everything needed to compute one lot: terms, tables, the
// payments received and the tax recharges claimed.
type Dossier struct {
	ID             generic.DossierID
	Name           string
	Mode           Mode
	Owner          Owner
	Terms          Terms
	Indices        IndexTable
	Rates          *generic.RateTable
	JudgmentDate   generic.Date
	Indemnity      IndemnityRule
	SkipPaidOnTime bool
	Options        generic.Options
	Horizon        generic.Date
	Payments       []generic.Payment
	Taxes          []TaxClaim
}

func (d *Dossier) Validate() error {
	if !d.Mode.IsValid() {
		return fmt.Errorf("%w: unknown mode %q", generic.ErrInvalidTerms, d.Mode)
	}
	if d.JudgmentDate.IsZero() {
		return fmt.Errorf("%w: judgment date is required", generic.ErrInvalidTerms)
	}
	if d.Rates == nil {
		return fmt.Errorf("%w: rate table is required", generic.ErrInvalidRateTable)
	}
	if d.Indemnity.Amount.IsNegative() {
		return fmt.Errorf("%w: indemnity amount is negative", generic.ErrInvalidAmount)
	}
	if _, err := NewIndexTable(d.Indices.Base, d.Indices.Revisions...); err != nil {
		return err
	}
	return d.Terms.Validate()
}

func (d *Dossier) Generator() (*Generator, error) {
	if err := d.Validate(); err != nil {
		return nil, err
	}
	return NewGenerator(d.Terms, d.Indices)
}

func (d *Dossier) Engine() *generic.Engine {
	return generic.NewEngine(d.Rates, d.Options)
}

func (d *Dossier) Declaration() (Declaration, error) {
	g, err := d.Generator()
	if err != nil {
		return Declaration{}, err
	}
	return Declaration{
		Generator:      g,
		Engine:         d.Engine(),
		Indemnity:      d.Indemnity,
		JudgmentDate:   d.JudgmentDate,
		SkipPaidOnTime: d.SkipPaidOnTime,
	}, nil
}

func (d *Dossier) Monitor() (Monitor, error) {
	g, err := d.Generator()
	if err != nil {
		return Monitor{}, err
	}
	return Monitor{Generator: g, JudgmentDate: d.JudgmentDate, Horizon: d.Horizon}, nil
}

// Claim computes the declaration at the judgment date.
func (d *Dossier) Claim() (Claim, error) {
	decl, err := d.Declaration()
	if err != nil {
		return Claim{}, err
	}
	return decl.Compute(d.Payments, d.Taxes), nil
}

// Check runs the post-judgment monitor as of a date.
func (d *Dossier) Check(asOf generic.Date) (MonitorReport, error) {
	m, err := d.Monitor()
	if err != nil {
		return MonitorReport{}, err
	}
	return m.Check(d.Payments, asOf), nil
}

// Obligations returns the obligations the dossier's mode works on, and the
// engine that allocates them.
func (d *Dossier) Obligations(asOf generic.Date) ([]generic.Obligation, *generic.Engine, error) {
	if d.Mode == ModeMonitor {
		m, err := d.Monitor()
		if err != nil {
			return nil, nil, err
		}
		return m.Obligations(asOf), generic.NewEngine(generic.ZeroRate(), generic.Options{}), nil
	}
	decl, err := d.Declaration()
	if err != nil {
		return nil, nil, err
	}
	rent, indemnities := decl.Obligations(d.Payments)
	return append(rent, indemnities...), decl.Engine, nil
}

// Ledger allocates the dossier's obligations and payments as of a date.
func (d *Dossier) Ledger(asOf generic.Date) (generic.Result, error) {
	obligations, engine, err := d.Obligations(asOf)
	if err != nil {
		return generic.Result{}, err
	}
	return engine.Allocate(obligations, d.Payments, asOf), nil
}

// Series samples the dossier's balances between two dates.
func (d *Dossier) Series(from, to generic.Date, step generic.SeriesStep) ([]generic.BalanceSnapshot, error) {
	if to.Before(from) {
		return nil, generic.ErrInvalidPeriod
	}
	obligations, engine, err := d.Obligations(to)
	if err != nil {
		return nil, err
	}
	return engine.Series(obligations, d.Payments, from, to, step), nil
}

// ValidatePayment applies the monitor's date rule to monitor dossiers.
func (d *Dossier) ValidatePayment(p generic.Payment) error {
	if d.Mode != ModeMonitor {
		if p.Amount.IsNegative() {
			return fmt.Errorf("%w: payment must not be negative", generic.ErrInvalidAmount)
		}
		return nil
	}
	m, err := d.Monitor()
	if err != nil {
		return err
	}
	return m.ValidatePayment(p)
}
