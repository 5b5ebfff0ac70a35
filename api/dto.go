/*
dto.go - Data Transfer Objects for API requests and responses

PURPOSE:
  Defines the JSON structures for API communication. These types decouple
  the engine's types from the external API contract, allowing:
  - Field renaming without breaking clients
  - Amounts rendered as fixed two-decimal strings (no float rounding)
  - Dates rendered as YYYY-MM-DD

NAMING CONVENTION:
  - *DTO: Response types returned to clients
  - *Request: Request body types from clients
  - *Response: Complex response wrappers

TYPES:
  Dossier:
    DossierSummaryDTO, DossierDTO (wraps factory.DossierJSON)

  Inputs:
    PaymentRequest, PaymentDTO, TaxRequest, TaxDTO

  Results:
    LineDTO, PaymentApplicationDTO, TotalsDTO, BalanceDTO,
    ClaimDTO, MonitorDTO, ComputeResponse

  Tables:
    RateDTO

  Scenarios:
    ScenarioDTO, LoadScenarioRequest

VALIDATION:
  Validation is done in handlers and the lease package, not in DTOs.
  DTOs are pure data carriers.

SEE ALSO:
  - handlers.go: Uses these types
  - factory/dossier.go: DossierJSON type
*/
package api

import (
	"time"

	"github.com/cgarciahasapromotion-pixel/calculateur-albion/factory"
	"github.com/cgarciahasapromotion-pixel/calculateur-albion/generic"
	"github.com/cgarciahasapromotion-pixel/calculateur-albion/lease"
)

// =============================================================================
// DOSSIERS
// =============================================================================

// DossierSummaryDTO is a dossier in list responses.
type DossierSummaryDTO struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Mode      string `json:"mode"`
	CreatedAt string `json:"created_at,omitempty"`
	UpdatedAt string `json:"updated_at,omitempty"`
}

// DossierDTO is a dossier with its full document, payments included.
type DossierDTO struct {
	DossierSummaryDTO
	Document factory.DossierJSON `json:"document"`
}

// =============================================================================
// INPUTS
// =============================================================================

// PaymentRequest records a payment. Amount is a decimal string ("1200.50").
type PaymentRequest struct {
	ID        string `json:"id,omitempty"`
	Date      string `json:"date"`
	Amount    string `json:"amount"`
	Reference string `json:"reference,omitempty"`
}

type PaymentDTO struct {
	ID        string `json:"id"`
	Date      string `json:"date"`
	Amount    string `json:"amount"`
	Reference string `json:"reference,omitempty"`
}

// TaxRequest adds a TEOM recharge to a dossier.
type TaxRequest struct {
	Year   string `json:"year"`
	Amount string `json:"amount"`
}

type TaxDTO struct {
	Year   string `json:"year"`
	Amount string `json:"amount"`
}

// =============================================================================
// RESULTS
// =============================================================================

// LineDTO is the allocation state of one obligation.
type LineDTO struct {
	ObligationID string  `json:"obligation_id"`
	Kind         string  `json:"kind"`
	Label        string  `json:"label"`
	DueDate      string  `json:"due_date"`
	Amount       string  `json:"amount"`
	Allocated    string  `json:"allocated"`
	Remaining    string  `json:"remaining"`
	Status       string  `json:"status"`
	SettledOn    *string `json:"settled_on,omitempty"`
	DaysOverdue  int     `json:"days_overdue"`
}

// PaymentApplicationDTO shows how one payment was split.
type PaymentApplicationDTO struct {
	PaymentID   string `json:"payment_id"`
	Date        string `json:"date"`
	Amount      string `json:"amount"`
	ToIndemnity string `json:"to_indemnity"`
	ToInterest  string `json:"to_interest"`
	ToPrincipal string `json:"to_principal"`
	ToCredit    string `json:"to_credit"`
	Discarded   string `json:"discarded"`
}

type TotalsDTO struct {
	Debits               string `json:"debits"`
	Indemnities          string `json:"indemnities"`
	AccruedInterest      string `json:"accrued_interest"`
	Payments             string `json:"payments"`
	PrincipalOutstanding string `json:"principal_outstanding"`
	InterestOutstanding  string `json:"interest_outstanding"`
	IndemnityOutstanding string `json:"indemnity_outstanding"`
	Credit               string `json:"credit"`
	Discarded            string `json:"discarded"`
	Overdue              string `json:"overdue"`
	GrandTotal           string `json:"grand_total"`
}

// BalanceDTO is one point of a balance series.
type BalanceDTO struct {
	AsOf      string `json:"as_of"`
	Principal string `json:"principal"`
	Interest  string `json:"interest"`
	Indemnity string `json:"indemnity"`
	Credit    string `json:"credit"`
	Total     string `json:"total"`
	Overdue   string `json:"overdue"`
}

type ClaimLineDTO struct {
	Label  string `json:"label"`
	Rank   string `json:"rank"`
	Amount string `json:"amount"`
}

type RateDTO struct {
	EffectiveDate     string `json:"effective_date"`
	AnnualRatePercent string `json:"annual_rate_percent"`
}

// ClaimDTO is the declaration of arrears at the judgment date.
type ClaimDTO struct {
	JudgmentDate string         `json:"judgment_date"`
	Principal    string         `json:"principal"`
	Interest     string         `json:"interest"`
	Indemnities  string         `json:"indemnities"`
	Taxes        string         `json:"taxes"`
	Credit       string         `json:"credit"`
	Privileged   string         `json:"privileged"`
	Unsecured    string         `json:"unsecured"`
	GrandTotal   string         `json:"grand_total"`
	Lines        []ClaimLineDTO `json:"lines"`
	Detail       []LineDTO      `json:"detail"`
	RatesApplied []RateDTO      `json:"rates_applied"`
}

type PreviewDTO struct {
	On            string `json:"on"`
	Cycle         int    `json:"cycle"`
	IndexLabel    string `json:"index_label"`
	AnnualInclTax string `json:"annual_incl_tax"`
	Quarterly     string `json:"quarterly"`
}

// MonitorDTO is the post-judgment follow-up as of a date.
type MonitorDTO struct {
	AsOf         string     `json:"as_of"`
	Horizon      string     `json:"horizon"`
	UpToDate     bool       `json:"up_to_date"`
	TotalPaid    string     `json:"total_paid"`
	TotalOverdue string     `json:"total_overdue"`
	Credit       string     `json:"credit"`
	Preview      PreviewDTO `json:"preview"`
	Lines        []LineDTO  `json:"lines"`
}

// ComputeResponse is the stateless computation of a posted dossier.
type ComputeResponse struct {
	Dossier  DossierSummaryDTO       `json:"dossier"`
	AsOf     string                  `json:"as_of"`
	Lines    []LineDTO               `json:"lines"`
	Payments []PaymentApplicationDTO `json:"payments"`
	Totals   TotalsDTO               `json:"totals"`
	Claim    *ClaimDTO               `json:"claim,omitempty"`
	Monitor  *MonitorDTO             `json:"monitor,omitempty"`
	Series   []BalanceDTO            `json:"series"`
}

// OverdueDTO flags a monitored dossier with unpaid post-judgment rent.
type OverdueDTO struct {
	DossierID     string `json:"dossier_id"`
	Name          string `json:"name"`
	AsOf          string `json:"as_of"`
	TotalOverdue  string `json:"total_overdue"`
	OldestDueDate string `json:"oldest_due_date"`
	DaysOverdue   int    `json:"days_overdue"`
}

// =============================================================================
// SCENARIOS
// =============================================================================

// ScenarioDTO represents a demo scenario.
type ScenarioDTO struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Category    string `json:"category"`
}

// LoadScenarioRequest is the request to load a scenario.
type LoadScenarioRequest struct {
	ScenarioID string `json:"scenario_id"`
}

// ErrorResponse is returned for all API errors.
type ErrorResponse struct {
	Error   string `json:"error"`
	Code    string `json:"code,omitempty"`
	Details string `json:"details,omitempty"`
}

// =============================================================================
// CONVERSIONS
// =============================================================================

func toSummaryDTO(rec generic.DossierRecord) DossierSummaryDTO {
	return DossierSummaryDTO{
		ID:        string(rec.ID),
		Name:      rec.Name,
		Mode:      rec.Mode,
		CreatedAt: formatTime(rec.CreatedAt),
		UpdatedAt: formatTime(rec.UpdatedAt),
	}
}

func formatTime(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format(time.RFC3339)
}

func toPaymentDTO(p generic.Payment) PaymentDTO {
	return PaymentDTO{
		ID:        string(p.ID),
		Date:      p.ReceivedDate.String(),
		Amount:    p.Amount.String(),
		Reference: p.Reference,
	}
}

func toLineDTOs(lines []generic.AllocationResult) []LineDTO {
	dtos := make([]LineDTO, len(lines))
	for i, l := range lines {
		dtos[i] = LineDTO{
			ObligationID: string(l.ObligationID),
			Kind:         string(l.Kind),
			Label:        l.Label,
			DueDate:      l.DueDate.String(),
			Amount:       l.Amount.String(),
			Allocated:    l.Allocated.String(),
			Remaining:    l.Remaining.String(),
			Status:       string(l.Status),
			DaysOverdue:  l.DaysOverdue,
		}
		if l.SettledOn != nil {
			s := l.SettledOn.String()
			dtos[i].SettledOn = &s
		}
	}
	return dtos
}

func toPaymentApplicationDTOs(apps []generic.PaymentApplication) []PaymentApplicationDTO {
	dtos := make([]PaymentApplicationDTO, len(apps))
	for i, a := range apps {
		dtos[i] = PaymentApplicationDTO{
			PaymentID:   string(a.Payment.ID),
			Date:        a.Payment.ReceivedDate.String(),
			Amount:      a.Payment.Amount.String(),
			ToIndemnity: a.ToIndemnity.String(),
			ToInterest:  a.ToInterest.String(),
			ToPrincipal: a.ToPrincipal.String(),
			ToCredit:    a.ToCredit.String(),
			Discarded:   a.Discarded.String(),
		}
	}
	return dtos
}

func toTotalsDTO(t generic.Totals) TotalsDTO {
	return TotalsDTO{
		Debits:               t.Debits.String(),
		Indemnities:          t.Indemnities.String(),
		AccruedInterest:      t.AccruedInterest.String(),
		Payments:             t.Payments.String(),
		PrincipalOutstanding: t.PrincipalOutstanding.String(),
		InterestOutstanding:  t.InterestOutstanding.String(),
		IndemnityOutstanding: t.IndemnityOutstanding.String(),
		Credit:               t.Credit.String(),
		Discarded:            t.Discarded.String(),
		Overdue:              t.Overdue.String(),
		GrandTotal:           t.GrandTotal().String(),
	}
}

func toBalanceDTOs(points []generic.BalanceSnapshot) []BalanceDTO {
	dtos := make([]BalanceDTO, len(points))
	for i, p := range points {
		dtos[i] = BalanceDTO{
			AsOf:      p.AsOf.String(),
			Principal: p.PrincipalBalance.String(),
			Interest:  p.InterestBalance.String(),
			Indemnity: p.IndemnityBalance.String(),
			Credit:    p.Credit.String(),
			Total:     p.Total.String(),
			Overdue:   p.Overdue.String(),
		}
	}
	return dtos
}

func toRateDTOs(entries []generic.RateEntry) []RateDTO {
	dtos := make([]RateDTO, len(entries))
	for i, e := range entries {
		dtos[i] = RateDTO{
			EffectiveDate:     e.EffectiveDate.String(),
			AnnualRatePercent: e.AnnualRatePercent.StringFixed(2),
		}
	}
	return dtos
}

func toClaimDTO(c lease.Claim) *ClaimDTO {
	dto := &ClaimDTO{
		JudgmentDate: c.JudgmentDate.String(),
		Principal:    c.Principal.String(),
		Interest:     c.Interest.String(),
		Indemnities:  c.IndemnityTotal.String(),
		Taxes:        c.TaxTotal.String(),
		Credit:       c.Credit.String(),
		Privileged:   c.TotalByRank(lease.RankPrivileged).String(),
		Unsecured:    c.TotalByRank(lease.RankUnsecured).String(),
		GrandTotal:   c.GrandTotal.String(),
		Lines:        make([]ClaimLineDTO, len(c.Lines)),
		Detail:       toLineDTOs(c.Result.Lines),
		RatesApplied: toRateDTOs(c.RatesApplied()),
	}
	for i, l := range c.Lines {
		dto.Lines[i] = ClaimLineDTO{Label: l.Label, Rank: string(l.Rank), Amount: l.Amount.String()}
	}
	return dto
}

func toMonitorDTO(r lease.MonitorReport) *MonitorDTO {
	return &MonitorDTO{
		AsOf:         r.AsOf.String(),
		Horizon:      r.Horizon.String(),
		UpToDate:     r.UpToDate(),
		TotalPaid:    r.TotalPaid.String(),
		TotalOverdue: r.TotalOverdue.String(),
		Credit:       r.Credit.String(),
		Preview: PreviewDTO{
			On:            r.Preview.On.String(),
			Cycle:         r.Preview.Cycle,
			IndexLabel:    r.Preview.IndexLabel,
			AnnualInclTax: r.Preview.AnnualInclTax.String(),
			Quarterly:     r.Preview.Quarterly.String(),
		},
		Lines: toLineDTOs(r.Lines),
	}
}
