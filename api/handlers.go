/*
handlers.go - HTTP API handlers for the lease claim calculator

PURPOSE:
  Exposes the claim and monitor computations via REST API. Handles HTTP
  request/response, JSON serialization, and delegates to the lease package.

ENDPOINTS:
  Stateless:
    POST   /api/compute                          Compute a posted dossier

  Dossiers:
    GET    /api/dossiers                         List dossiers
    POST   /api/dossiers                         Create dossier (JSON or YAML)
    GET    /api/dossiers/{id}                    Dossier document with payments
    DELETE /api/dossiers/{id}                    Delete dossier and payments
    POST   /api/dossiers/{id}/payments           Record a payment
    DELETE /api/dossiers/{id}/payments/{pid}     Remove a payment
    POST   /api/dossiers/{id}/taxes              Add a TEOM recharge

  Results:
    GET    /api/dossiers/{id}/claim?as_of=       Declaration of arrears
    GET    /api/dossiers/{id}/monitor?as_of=     Post-judgment follow-up
    GET    /api/dossiers/{id}/series?from=&to=&step=
    GET    /api/dossiers/{id}/ledger.csv?as_of=  Ledger as CSV
    GET    /api/overdue?as_of=                   Monitored dossiers in arrears

  Save files:
    GET    /api/dossiers/{id}/export             Monitor save file
    POST   /api/dossiers/import                  Create dossier from a save file

  Tables:
    GET    /api/rates                            Default late-interest rates

ARCHITECTURE:
  Handler struct holds all dependencies:
  - Store: Dossier documents and payments
  - Factory: Document to lease.Dossier conversion, with defaults
  Nothing derived is cached: every result is recomputed from the stored
  document and payments.

ERROR HANDLING:
  Errors are returned as JSON with appropriate HTTP status:
  - 400: Validation errors, invalid input, duplicate payment IDs
  - 404: Dossier or payment not found
  - 500: Internal errors

SECURITY NOTE:
  No authentication or authorization. All endpoints are public.

SEE ALSO:
  - dto.go: Request/response data structures
  - scenarios.go: Demo scenario loaders
  - server.go: Router setup and middleware
*/
package api

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"sync"

	"github.com/go-chi/chi/v5"
	log "github.com/sirupsen/logrus"

	"github.com/cgarciahasapromotion-pixel/calculateur-albion/factory"
	"github.com/cgarciahasapromotion-pixel/calculateur-albion/generic"
	"github.com/cgarciahasapromotion-pixel/calculateur-albion/lease"
	"github.com/cgarciahasapromotion-pixel/calculateur-albion/report"
)

const maxBodyBytes = 1 << 20

// =============================================================================
// HANDLER CONTEXT
// =============================================================================

// Handler holds all dependencies for HTTP handlers.
type Handler struct {
	Store   generic.Store
	Factory *factory.DossierFactory

	// Now is the default as-of date of monitor computations.
	Now func() generic.Date

	mu              sync.RWMutex
	currentScenario string

	// createMu serializes the existence check and the writes of a creation.
	createMu sync.Mutex
}

// NewHandler creates a new handler with the given store and factory.
func NewHandler(store generic.Store, f *factory.DossierFactory) *Handler {
	return &Handler{
		Store:   store,
		Factory: f,
		Now:     generic.Today,
	}
}

// =============================================================================
// STATELESS COMPUTE
// =============================================================================

// Compute runs a posted dossier without storing it.
func (h *Handler) Compute(w http.ResponseWriter, r *http.Request) {
	body, err := readBody(w, r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}
	dj, err := factory.DecodeDossier(body)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid dossier document", err)
		return
	}
	d, err := h.Factory.FromJSON(dj)
	if err != nil {
		writeDomainError(w, "Invalid dossier", err)
		return
	}
	asOf, err := dateParam(r, "as_of", h.defaultAsOf(d))
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid as_of (use YYYY-MM-DD)", err)
		return
	}
	step, err := stepParam(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid step", err)
		return
	}

	resp, err := h.compute(d, asOf, step)
	if err != nil {
		writeDomainError(w, "Failed to compute dossier", err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

// compute builds the full response. A claim is stopped at asOf, so the ledger,
// the declaration and the series share one cutoff.
func (h *Handler) compute(d *lease.Dossier, asOf generic.Date, step generic.SeriesStep) (ComputeResponse, error) {
	if d.Mode != lease.ModeMonitor {
		d.JudgmentDate = asOf
	}
	res, err := d.Ledger(asOf)
	if err != nil {
		return ComputeResponse{}, err
	}
	resp := ComputeResponse{
		Dossier:  DossierSummaryDTO{ID: string(d.ID), Name: d.Name, Mode: string(d.Mode)},
		AsOf:     asOf.String(),
		Lines:    toLineDTOs(res.Lines),
		Payments: toPaymentApplicationDTOs(res.Payments),
		Totals:   toTotalsDTO(res.Totals),
		Series:   []BalanceDTO{},
	}

	if d.Mode == lease.ModeMonitor {
		mr, err := d.Check(asOf)
		if err != nil {
			return ComputeResponse{}, err
		}
		resp.Monitor = toMonitorDTO(mr)
	} else {
		claim, err := d.Claim()
		if err != nil {
			return ComputeResponse{}, err
		}
		resp.Claim = toClaimDTO(claim)
	}

	if from := seriesStart(d); !asOf.Before(from) {
		points, err := d.Series(from, asOf, step)
		if err != nil {
			return ComputeResponse{}, err
		}
		resp.Series = toBalanceDTOs(points)
	}
	return resp, nil
}

// =============================================================================
// DOSSIER HANDLERS
// =============================================================================

// ListDossiers returns all dossiers.
func (h *Handler) ListDossiers(w http.ResponseWriter, r *http.Request) {
	records, err := h.Store.ListDossiers(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to list dossiers", err)
		return
	}

	dtos := make([]DossierSummaryDTO, len(records))
	for i, rec := range records {
		dtos[i] = toSummaryDTO(rec)
	}
	writeJSON(w, http.StatusOK, dtos)
}

// CreateDossier stores a dossier document and its payments.
func (h *Handler) CreateDossier(w http.ResponseWriter, r *http.Request) {
	body, err := readBody(w, r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}
	dj, err := factory.DecodeDossier(body)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid dossier document", err)
		return
	}
	d, err := h.Factory.FromJSON(dj)
	if err != nil {
		writeDomainError(w, "Invalid dossier", err)
		return
	}
	h.respondCreated(r.Context(), w, d)
}

// GetDossier returns a dossier's document, payments included.
func (h *Handler) GetDossier(w http.ResponseWriter, r *http.Request) {
	d, rec, err := h.loadDossier(r.Context(), dossierID(r))
	if err != nil {
		writeDomainError(w, "Failed to load dossier", err)
		return
	}
	writeJSON(w, http.StatusOK, DossierDTO{DossierSummaryDTO: toSummaryDTO(*rec), Document: factory.ToJSON(d)})
}

func (h *Handler) DeleteDossier(w http.ResponseWriter, r *http.Request) {
	id := dossierID(r)
	if err := h.Store.DeleteDossier(r.Context(), id); err != nil {
		writeDomainError(w, "Failed to delete dossier", err)
		return
	}
	log.WithFields(log.Fields{"dossier": id}).Info("dossier deleted")
	w.WriteHeader(http.StatusNoContent)
}

// AddPayment records a payment. Monitor dossiers only accept payments
// received after the judgment.
func (h *Handler) AddPayment(w http.ResponseWriter, r *http.Request) {
	var req PaymentRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}
	date, err := generic.ParseDate(req.Date)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid date format (use YYYY-MM-DD)", err)
		return
	}
	amount, err := generic.ParseAmount(req.Amount)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid amount", err)
		return
	}

	ctx := r.Context()
	d, _, err := h.loadDossier(ctx, dossierID(r))
	if err != nil {
		writeDomainError(w, "Failed to load dossier", err)
		return
	}

	p := generic.Payment{ID: generic.PaymentID(req.ID), ReceivedDate: date, Amount: amount, Reference: req.Reference}
	if p.ID == "" {
		p.ID = generic.NewPaymentID()
	}
	if err := d.ValidatePayment(p); err != nil {
		writeDomainError(w, "Payment rejected", err)
		return
	}
	if err := h.Store.AppendPayment(ctx, d.ID, p); err != nil {
		writeDomainError(w, "Failed to record payment", err)
		return
	}

	log.WithFields(log.Fields{
		"dossier": d.ID,
		"payment": p.ID,
		"date":    p.ReceivedDate.String(),
		"amount":  p.Amount.String(),
	}).Info("payment recorded")
	writeJSON(w, http.StatusCreated, toPaymentDTO(p))
}

func (h *Handler) DeletePayment(w http.ResponseWriter, r *http.Request) {
	paymentID := generic.PaymentID(chi.URLParam(r, "paymentID"))
	if err := h.Store.DeletePayment(r.Context(), dossierID(r), paymentID); err != nil {
		writeDomainError(w, "Failed to delete payment", err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// AddTax appends a TEOM recharge to the dossier document.
func (h *Handler) AddTax(w http.ResponseWriter, r *http.Request) {
	var req TaxRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}
	if strings.TrimSpace(req.Year) == "" {
		writeError(w, http.StatusBadRequest, "Tax year is required", nil)
		return
	}
	amount, err := generic.ParseAmount(req.Amount)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid amount", err)
		return
	}
	if amount.IsNegative() {
		writeError(w, http.StatusBadRequest, "Tax amount must not be negative", nil)
		return
	}

	ctx := r.Context()
	d, _, err := h.loadDossier(ctx, dossierID(r))
	if err != nil {
		writeDomainError(w, "Failed to load dossier", err)
		return
	}
	d.Taxes = append(d.Taxes, lease.TaxClaim{Year: req.Year, Amount: amount})
	if err := h.saveDossier(ctx, d); err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to save dossier", err)
		return
	}
	writeJSON(w, http.StatusCreated, TaxDTO{Year: req.Year, Amount: amount.String()})
}

// =============================================================================
// RESULT HANDLERS
// =============================================================================

// GetClaim computes the declaration. as_of, when given, replaces the
// judgment date as the cutoff.
func (h *Handler) GetClaim(w http.ResponseWriter, r *http.Request) {
	d, _, err := h.loadDossier(r.Context(), dossierID(r))
	if err != nil {
		writeDomainError(w, "Failed to load dossier", err)
		return
	}
	cutoff, err := dateParam(r, "as_of", d.JudgmentDate)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid as_of (use YYYY-MM-DD)", err)
		return
	}
	d.JudgmentDate = cutoff

	claim, err := d.Claim()
	if err != nil {
		writeDomainError(w, "Failed to compute claim", err)
		return
	}
	writeJSON(w, http.StatusOK, toClaimDTO(claim))
}

// GetMonitor runs the post-judgment follow-up, as of today by default.
func (h *Handler) GetMonitor(w http.ResponseWriter, r *http.Request) {
	d, _, err := h.loadDossier(r.Context(), dossierID(r))
	if err != nil {
		writeDomainError(w, "Failed to load dossier", err)
		return
	}
	asOf, err := dateParam(r, "as_of", h.Now())
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid as_of (use YYYY-MM-DD)", err)
		return
	}

	mr, err := d.Check(asOf)
	if err != nil {
		writeDomainError(w, "Failed to compute monitor", err)
		return
	}
	writeJSON(w, http.StatusOK, toMonitorDTO(mr))
}

// GetSeries samples the dossier's balances. from defaults to the start of
// the schedule, to to the dossier's default as-of date.
func (h *Handler) GetSeries(w http.ResponseWriter, r *http.Request) {
	d, _, err := h.loadDossier(r.Context(), dossierID(r))
	if err != nil {
		writeDomainError(w, "Failed to load dossier", err)
		return
	}
	from, err := dateParam(r, "from", seriesStart(d))
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid from (use YYYY-MM-DD)", err)
		return
	}
	to, err := dateParam(r, "to", h.defaultAsOf(d))
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid to (use YYYY-MM-DD)", err)
		return
	}
	step, err := stepParam(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid step", err)
		return
	}

	points, err := d.Series(from, to, step)
	if err != nil {
		writeDomainError(w, "Failed to compute series", err)
		return
	}
	writeJSON(w, http.StatusOK, toBalanceDTOs(points))
}

// GetLedgerCSV streams the ledger as CSV.
func (h *Handler) GetLedgerCSV(w http.ResponseWriter, r *http.Request) {
	d, _, err := h.loadDossier(r.Context(), dossierID(r))
	if err != nil {
		writeDomainError(w, "Failed to load dossier", err)
		return
	}
	asOf, err := dateParam(r, "as_of", h.defaultAsOf(d))
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid as_of (use YYYY-MM-DD)", err)
		return
	}
	res, err := d.Ledger(asOf)
	if err != nil {
		writeDomainError(w, "Failed to compute ledger", err)
		return
	}

	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition", fmt.Sprintf(`attachment; filename="%s-%s.csv"`, d.ID, asOf))
	if err := report.WriteLedgerCSV(w, res); err != nil {
		log.WithFields(log.Fields{"dossier": d.ID}).WithError(err).Error("failed to write ledger csv")
	}
}

// ListOverdue returns the monitored dossiers with rent unpaid as of a date.
func (h *Handler) ListOverdue(w http.ResponseWriter, r *http.Request) {
	asOf, err := dateParam(r, "as_of", h.Now())
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid as_of (use YYYY-MM-DD)", err)
		return
	}
	alerts, err := h.Overdue(r.Context(), asOf)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to check dossiers", err)
		return
	}
	writeJSON(w, http.StatusOK, alerts)
}

// Overdue checks every monitor dossier as of a date. Dossiers that fail to
// load are logged and skipped.
func (h *Handler) Overdue(ctx context.Context, asOf generic.Date) ([]OverdueDTO, error) {
	records, err := h.Store.ListDossiers(ctx)
	if err != nil {
		return nil, err
	}

	alerts := []OverdueDTO{}
	for _, rec := range records {
		if rec.Mode != string(lease.ModeMonitor) {
			continue
		}
		d, _, err := h.loadDossier(ctx, rec.ID)
		if err != nil {
			log.WithFields(log.Fields{"dossier": rec.ID}).WithError(err).Warn("skipping dossier")
			continue
		}
		mr, err := d.Check(asOf)
		if err != nil {
			log.WithFields(log.Fields{"dossier": rec.ID}).WithError(err).Warn("skipping dossier")
			continue
		}
		if mr.UpToDate() {
			continue
		}

		alert := OverdueDTO{
			DossierID:    string(d.ID),
			Name:         d.Name,
			AsOf:         asOf.String(),
			TotalOverdue: mr.TotalOverdue.String(),
		}
		for _, l := range mr.Lines {
			if l.Status.IsOutstanding() {
				alert.OldestDueDate = l.DueDate.String()
				alert.DaysOverdue = l.DaysOverdue
				break
			}
		}
		alerts = append(alerts, alert)
	}
	return alerts, nil
}

// =============================================================================
// SAVE FILES
// =============================================================================

// ExportDossier returns the monitor save file of a dossier.
func (h *Handler) ExportDossier(w http.ResponseWriter, r *http.Request) {
	d, _, err := h.loadDossier(r.Context(), dossierID(r))
	if err != nil {
		writeDomainError(w, "Failed to load dossier", err)
		return
	}
	w.Header().Set("Content-Disposition", fmt.Sprintf(`attachment; filename="%s.json"`, d.ID))
	writeJSON(w, http.StatusOK, factory.ToSnapshot(d))
}

// ImportDossier creates a monitor dossier from a save file.
func (h *Handler) ImportDossier(w http.ResponseWriter, r *http.Request) {
	body, err := readBody(w, r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}
	snap, err := factory.ParseSnapshot(body)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid save file", err)
		return
	}
	d, err := h.Factory.FromSnapshot(snap)
	if err != nil {
		writeDomainError(w, "Invalid save file", err)
		return
	}
	h.respondCreated(r.Context(), w, d)
}

// =============================================================================
// TABLES
// =============================================================================

// ListRates returns the default late-interest rate table.
func (h *Handler) ListRates(w http.ResponseWriter, r *http.Request) {
	rates := h.Factory.Defaults().Rates
	if rates == nil {
		writeJSON(w, http.StatusOK, []RateDTO{})
		return
	}
	writeJSON(w, http.StatusOK, toRateDTOs(rates.Entries()))
}

// ResetDatabase clears all data.
func (h *Handler) ResetDatabase(w http.ResponseWriter, r *http.Request) {
	if err := h.Store.Reset(r.Context()); err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to reset database", err)
		return
	}
	h.setCurrentScenario("")
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// =============================================================================
// PERSISTENCE
// =============================================================================

// loadDossier rebuilds a dossier from its stored document and payments.
func (h *Handler) loadDossier(ctx context.Context, id generic.DossierID) (*lease.Dossier, *generic.DossierRecord, error) {
	rec, err := h.Store.GetDossier(ctx, id)
	if err != nil {
		return nil, nil, err
	}
	var dj factory.DossierJSON
	if err := json.Unmarshal([]byte(rec.Document), &dj); err != nil {
		return nil, nil, fmt.Errorf("dossier %s: corrupt document: %w", id, err)
	}
	d, err := h.Factory.FromJSON(dj)
	if err != nil {
		return nil, nil, err
	}
	payments, err := h.Store.Payments(ctx, id)
	if err != nil {
		return nil, nil, err
	}
	d.Payments = payments
	return d, rec, nil
}

// saveDossier writes the document; payments are stored separately.
func (h *Handler) saveDossier(ctx context.Context, d *lease.Dossier) error {
	dj := factory.ToJSON(d)
	dj.Payments = nil
	doc, err := json.Marshal(dj)
	if err != nil {
		return err
	}
	return h.Store.SaveDossier(ctx, generic.DossierRecord{
		ID:       d.ID,
		Name:     d.Name,
		Mode:     string(d.Mode),
		Document: string(doc),
	})
}

// createDossier stores a new dossier with its payments. Nothing is kept
// when any payment is rejected.
func (h *Handler) createDossier(ctx context.Context, d *lease.Dossier) error {
	seen := make(map[generic.PaymentID]bool, len(d.Payments))
	for _, p := range d.Payments {
		if seen[p.ID] {
			return fmt.Errorf("payment %s: %w", p.ID, generic.ErrDuplicatePayment)
		}
		seen[p.ID] = true
		if err := d.ValidatePayment(p); err != nil {
			return err
		}
	}

	h.createMu.Lock()
	defer h.createMu.Unlock()

	_, err := h.Store.GetDossier(ctx, d.ID)
	switch {
	case err == nil:
		return fmt.Errorf("dossier %s: %w", d.ID, generic.ErrDossierExists)
	case !generic.IsNotFound(err):
		return err
	}

	if err := h.saveDossier(ctx, d); err != nil {
		return err
	}
	for _, p := range d.Payments {
		if err := h.Store.AppendPayment(ctx, d.ID, p); err != nil {
			if derr := h.Store.DeleteDossier(ctx, d.ID); derr != nil {
				log.WithError(derr).WithFields(log.Fields{"dossier": d.ID}).Error("failed to roll back dossier")
			}
			return fmt.Errorf("payment %s: %w", p.ID, err)
		}
	}
	return nil
}

func (h *Handler) respondCreated(ctx context.Context, w http.ResponseWriter, d *lease.Dossier) {
	if err := h.createDossier(ctx, d); err != nil {
		writeDomainError(w, "Failed to create dossier", err)
		return
	}
	d, rec, err := h.loadDossier(ctx, d.ID)
	if err != nil {
		writeDomainError(w, "Failed to load dossier", err)
		return
	}
	log.WithFields(log.Fields{
		"dossier":  d.ID,
		"name":     d.Name,
		"mode":     d.Mode,
		"payments": len(d.Payments),
	}).Info("dossier created")
	writeJSON(w, http.StatusCreated, DossierDTO{DossierSummaryDTO: toSummaryDTO(*rec), Document: factory.ToJSON(d)})
}

// defaultAsOf is the judgment date for claims and today for monitors.
func (h *Handler) defaultAsOf(d *lease.Dossier) generic.Date {
	if d.Mode == lease.ModeMonitor {
		return h.Now()
	}
	return d.JudgmentDate
}

func seriesStart(d *lease.Dossier) generic.Date {
	if d.Mode == lease.ModeMonitor {
		return d.JudgmentDate.AddDays(1)
	}
	return d.Terms.Start
}

// =============================================================================
// HELPERS
// =============================================================================

func dossierID(r *http.Request) generic.DossierID {
	return generic.DossierID(chi.URLParam(r, "id"))
}

// readBody fails on bodies over maxBodyBytes instead of truncating them.
func readBody(w http.ResponseWriter, r *http.Request) ([]byte, error) {
	return io.ReadAll(http.MaxBytesReader(w, r.Body, maxBodyBytes))
}

func decodeJSON(w http.ResponseWriter, r *http.Request, v any) error {
	return json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes)).Decode(v)
}

func dateParam(r *http.Request, name string, fallback generic.Date) (generic.Date, error) {
	v := r.URL.Query().Get(name)
	if v == "" {
		return fallback, nil
	}
	return generic.ParseDate(v)
}

func stepParam(r *http.Request) (generic.SeriesStep, error) {
	v := r.URL.Query().Get("step")
	if v == "" {
		return generic.StepMonthly, nil
	}
	step := generic.SeriesStep(v)
	if !step.IsValid() {
		return "", fmt.Errorf("unknown step %q (weekly, monthly or quarterly)", v)
	}
	return step, nil
}

func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

func writeError(w http.ResponseWriter, status int, message string, err error) {
	resp := ErrorResponse{Error: message, Code: errorCode(status)}
	if err != nil {
		resp.Details = err.Error()
	}
	if status >= http.StatusInternalServerError {
		log.WithFields(log.Fields{"status": status}).WithError(err).Error(message)
	}
	writeJSON(w, status, resp)
}

// writeDomainError picks the status from the error's category.
func writeDomainError(w http.ResponseWriter, message string, err error) {
	switch {
	case generic.IsNotFound(err):
		writeError(w, http.StatusNotFound, message, err)
	case generic.IsConflict(err):
		writeError(w, http.StatusConflict, message, err)
	case generic.IsClientError(err):
		writeError(w, http.StatusBadRequest, message, err)
	default:
		writeError(w, http.StatusInternalServerError, message, err)
	}
}

func errorCode(status int) string {
	switch status {
	case http.StatusBadRequest:
		return "invalid_input"
	case http.StatusNotFound:
		return "not_found"
	case http.StatusConflict:
		return "conflict"
	default:
		return "internal"
	}
}
