/*
waterfall.go - Payment allocation engine

PURPOSE:
  Replays the merged event stream (see ledger.go) and applies every payment
  to outstanding debt in statutory imputation order:

    1. Recovery indemnities (oldest first)
    2. Accrued interest
    3. Principal (rent, oldest first)

  Interest accrues on outstanding principal only, between consecutive events
  and from the last event to the as-of date. Indemnities never bear interest.

OVERPAYMENT:
  By default an excess payment is carried as credit: the signed principal
  balance goes negative and the credit is applied to the next debits as they
  fall due. With Options.ClampOverpayment the excess is recorded in
  Totals.Discarded and dropped, which reproduces the spreadsheet the
  declarations were historically computed with.

ODD INPUTS:
  - Negative payments are ignored and reported in Result.Ignored.
  - Negative rent obligations act as credit notes: they reduce principal.
  - Zero amounts are no-ops; a zero obligation is settled on its due date.
  - Events dated after as-of are not processed; their obligations are
    reported as upcoming.

CONSERVATION:
  Debits + Indemnities + AccruedInterest ==
      PrincipalPaid + InterestPaid + IndemnityPaid
    + PrincipalBalance + InterestOutstanding + IndemnityOutstanding

  PrincipalPaid includes any excess carried as credit, and PrincipalBalance
  is signed (outstanding principal minus credit). Discarded amounts are
  outside the equation.

SEE ALSO:
  - accrual.go: Interest segments
  - projection.go: Snapshots and series built on Allocate
*/
package generic

import "github.com/shopspring/decimal"

// =============================================================================
// ENGINE
// =============================================================================

type Options struct {
	// ClampOverpayment discards excess payments instead of carrying credit.
	ClampOverpayment bool
}

// Engine is stateless; one value may serve concurrent callers.
type Engine struct {
	Rates   *RateTable
	Options Options
}

func NewEngine(rates *RateTable, opts Options) *Engine {
	return &Engine{Rates: rates, Options: opts}
}

// PaymentApplication traces how one payment was split across the buckets.
type PaymentApplication struct {
	Payment     Payment
	ToIndemnity Amount
	ToInterest  Amount
	ToPrincipal Amount
	ToCredit    Amount
	Discarded   Amount
}

type Totals struct {
	Debits               Amount // Rent obligations processed, credit notes netted
	Indemnities          Amount // Indemnity obligations processed
	AccruedInterest      Amount
	Payments             Amount // Non-negative payments processed
	PrincipalPaid        Amount // Includes excess carried as credit
	InterestPaid         Amount
	IndemnityPaid        Amount
	PrincipalOutstanding Amount // Sum of open rent remainders, never negative
	InterestOutstanding  Amount
	IndemnityOutstanding Amount
	Credit               Amount
	Discarded            Amount
	Overdue              Amount // Remaining on due obligations
}

// PrincipalBalance is the signed principal: negative when credit is carried.
func (t Totals) PrincipalBalance() Amount {
	return t.PrincipalOutstanding.Sub(t.Credit)
}

// GrandTotal is everything still owed, before netting credit.
func (t Totals) GrandTotal() Amount {
	return t.PrincipalOutstanding.Add(t.InterestOutstanding).Add(t.IndemnityOutstanding)
}

type Result struct {
	AsOf               Date
	Lines              []AllocationResult // Stream order: due date, then input order
	Payments           []PaymentApplication
	Segments           []InterestSegment
	Ignored            []Payment
	Totals             Totals
	obligationPosition map[ObligationID]int
}

// Line returns the allocation result of one obligation.
func (r Result) Line(id ObligationID) (AllocationResult, bool) {
	i, ok := r.obligationPosition[id]
	if !ok {
		return AllocationResult{}, false
	}
	return r.Lines[i], true
}

// Allocate replays obligations and payments up to asOf. Pure: neither input
// slice is modified and equal inputs give equal results.
func (e *Engine) Allocate(obligations []Obligation, payments []Payment, asOf Date) Result {
	r := newReplay(e, obligations, asOf)
	events := BuildEventStream(obligations, payments)

	var last Date
	started := false
	for _, ev := range events {
		if ev.At.After(asOf) {
			break
		}
		if started {
			r.accrue(last, ev.At)
		}
		started, last = true, ev.At

		switch ev.Kind {
		case EventDebit:
			r.debit(ev.Index, ev.At)
		case EventCredit:
			r.applyPayment(payments[ev.Index], ev.At)
		}
	}
	if started {
		r.accrue(last, asOf)
	}

	return r.result(events)
}

// =============================================================================
// REPLAY STATE
// =============================================================================

type openLine struct {
	obligation Obligation
	remaining  decimal.Decimal
	allocated  decimal.Decimal
	settledOn  *Date
	processed  bool
}

type replay struct {
	accrual InterestAccrual
	opts    Options
	asOf    Date

	lines []*openLine // indexed like the caller's obligations
	order []int       // processed debits in stream order

	principal decimal.Decimal
	interest  decimal.Decimal
	indemnity decimal.Decimal
	credit    decimal.Decimal

	totals   Totals
	payments []PaymentApplication
	segments []InterestSegment
	ignored  []Payment
}

func newReplay(e *Engine, obligations []Obligation, asOf Date) *replay {
	r := &replay{
		accrual: InterestAccrual{Rates: e.Rates},
		opts:    e.Options,
		asOf:    asOf,
		lines:   make([]*openLine, len(obligations)),
	}
	for i, o := range obligations {
		r.lines[i] = &openLine{obligation: o}
	}
	zero := ZeroAmount()
	r.totals = Totals{
		Debits: zero, Indemnities: zero, AccruedInterest: zero, Payments: zero,
		PrincipalPaid: zero, InterestPaid: zero, IndemnityPaid: zero,
		PrincipalOutstanding: zero, InterestOutstanding: zero, IndemnityOutstanding: zero,
		Credit: zero, Discarded: zero, Overdue: zero,
	}
	return r
}

func (r *replay) accrue(from, to Date) {
	segments := r.accrual.Segments(NewAmount(r.principal), from, to)
	for _, seg := range segments {
		r.interest = r.interest.Add(seg.Interest.Value)
		r.totals.AccruedInterest = r.totals.AccruedInterest.Add(seg.Interest)
	}
	r.segments = append(r.segments, segments...)
}

func (r *replay) debit(index int, at Date) {
	line := r.lines[index]
	line.processed = true
	r.order = append(r.order, index)
	amount := line.obligation.Amount.Value

	if amount.IsNegative() {
		r.creditNote(line, amount.Neg(), at)
		return
	}

	if line.obligation.IsIndemnity() {
		r.totals.Indemnities = r.totals.Indemnities.Add(NewAmount(amount))
	} else {
		r.totals.Debits = r.totals.Debits.Add(NewAmount(amount))
	}

	line.remaining = amount
	if r.credit.IsPositive() && amount.IsPositive() {
		use := decimal.Min(r.credit, amount)
		r.credit = r.credit.Sub(use)
		line.remaining = line.remaining.Sub(use)
		line.allocated = line.allocated.Add(use)
		if line.obligation.IsIndemnity() {
			// Credit was counted as principal when it was received.
			r.totals.IndemnityPaid = r.totals.IndemnityPaid.Add(NewAmount(use))
			r.totals.PrincipalPaid = r.totals.PrincipalPaid.Sub(NewAmount(use))
		}
	}
	if line.remaining.IsZero() {
		line.settle(at)
	}

	if line.obligation.IsIndemnity() {
		r.indemnity = r.indemnity.Add(line.remaining)
	} else {
		r.principal = r.principal.Add(line.remaining)
	}
}

// creditNote applies a negative rent obligation to open principal.
func (r *replay) creditNote(line *openLine, amount decimal.Decimal, at Date) {
	r.totals.Debits = r.totals.Debits.Sub(NewAmount(amount))
	line.settle(at)

	rest := r.settleOldest(amount, at, false)
	r.principal = r.principal.Sub(amount.Sub(rest))
	if rest.IsPositive() {
		if r.opts.ClampOverpayment {
			r.totals.Discarded = r.totals.Discarded.Add(NewAmount(rest))
			// A dropped credit note no longer reduces the debt.
			r.totals.Debits = r.totals.Debits.Add(NewAmount(rest))
			return
		}
		r.credit = r.credit.Add(rest)
	}
}

// applyPayment imputes one payment: indemnities, then interest, then principal.
func (r *replay) applyPayment(p Payment, at Date) {
	if p.Amount.IsNegative() {
		r.ignored = append(r.ignored, p)
		return
	}
	r.totals.Payments = r.totals.Payments.Add(p.Amount)
	rest := p.Amount.Value
	app := PaymentApplication{
		Payment:     p,
		ToIndemnity: ZeroAmount(),
		ToInterest:  ZeroAmount(),
		ToPrincipal: ZeroAmount(),
		ToCredit:    ZeroAmount(),
		Discarded:   ZeroAmount(),
	}

	// 1. Indemnities
	before := rest
	rest = r.settleOldest(rest, at, true)
	toIndemnity := before.Sub(rest)
	r.indemnity = r.indemnity.Sub(toIndemnity)
	app.ToIndemnity = NewAmount(toIndemnity)
	r.totals.IndemnityPaid = r.totals.IndemnityPaid.Add(app.ToIndemnity)

	// 2. Interest
	toInterest := decimal.Min(rest, r.interest)
	if toInterest.IsPositive() {
		r.interest = r.interest.Sub(toInterest)
		rest = rest.Sub(toInterest)
	} else {
		toInterest = decimal.Zero
	}
	app.ToInterest = NewAmount(toInterest)
	r.totals.InterestPaid = r.totals.InterestPaid.Add(app.ToInterest)

	// 3. Principal
	before = rest
	rest = r.settleOldest(rest, at, false)
	toPrincipal := before.Sub(rest)
	r.principal = r.principal.Sub(toPrincipal)
	app.ToPrincipal = NewAmount(toPrincipal)
	r.totals.PrincipalPaid = r.totals.PrincipalPaid.Add(app.ToPrincipal)

	// 4. Excess
	if rest.IsPositive() {
		if r.opts.ClampOverpayment {
			app.Discarded = NewAmount(rest)
			r.totals.Discarded = r.totals.Discarded.Add(app.Discarded)
		} else {
			app.ToCredit = NewAmount(rest)
			r.credit = r.credit.Add(rest)
			r.totals.PrincipalPaid = r.totals.PrincipalPaid.Add(app.ToCredit)
		}
	}
	r.payments = append(r.payments, app)
}

// settleOldest spends up to amount on processed lines of one bucket, oldest
// first, and returns what is left.
func (r *replay) settleOldest(amount decimal.Decimal, at Date, indemnities bool) decimal.Decimal {
	for _, idx := range r.order {
		if !amount.IsPositive() {
			break
		}
		line := r.lines[idx]
		if line.obligation.IsIndemnity() != indemnities || !line.remaining.IsPositive() {
			continue
		}
		use := decimal.Min(amount, line.remaining)
		line.remaining = line.remaining.Sub(use)
		line.allocated = line.allocated.Add(use)
		amount = amount.Sub(use)
		if line.remaining.IsZero() {
			line.settle(at)
		}
	}
	return amount
}

func (l *openLine) settle(at Date) {
	if l.settledOn == nil {
		d := at
		l.settledOn = &d
	}
}

func (r *replay) result(events []LedgerEvent) Result {
	res := Result{
		AsOf:               r.asOf,
		Payments:           r.payments,
		Segments:           r.segments,
		Ignored:            r.ignored,
		obligationPosition: make(map[ObligationID]int, len(r.lines)),
	}

	for _, ev := range events {
		if ev.Kind != EventDebit {
			continue
		}
		line := r.lines[ev.Index]
		ar := line.toResult(r.asOf)
		if ar.Status.IsOutstanding() {
			r.totals.Overdue = r.totals.Overdue.Add(ar.Remaining)
		}
		res.obligationPosition[ar.ObligationID] = len(res.Lines)
		res.Lines = append(res.Lines, ar)
	}

	r.totals.PrincipalOutstanding = NewAmount(r.principal)
	r.totals.InterestOutstanding = NewAmount(r.interest)
	r.totals.IndemnityOutstanding = NewAmount(r.indemnity)
	r.totals.Credit = NewAmount(r.credit)
	res.Totals = r.totals
	return res
}

func (l *openLine) toResult(asOf Date) AllocationResult {
	o := l.obligation
	ar := AllocationResult{
		ObligationID: o.ID,
		DueDate:      o.DueDate,
		Label:        o.Label,
		Kind:         o.Kind,
		Amount:       o.Amount,
		Allocated:    NewAmount(l.allocated),
		Remaining:    NewAmount(l.remaining),
		SettledOn:    l.settledOn,
	}
	if !l.processed {
		ar.Remaining = o.Amount.Max(ZeroAmount())
		ar.Status = StatusUpcoming
		return ar
	}

	end := asOf
	if l.settledOn != nil {
		end = *l.settledOn
	}
	if days := DaysBetween(o.DueDate, end); days > 0 {
		ar.DaysOverdue = days
	}

	switch {
	case l.settledOn != nil:
		ar.Status = StatusSettled
	case l.allocated.IsPositive():
		ar.Status = StatusPartial
	default:
		ar.Status = StatusOverdue
	}
	return ar
}
