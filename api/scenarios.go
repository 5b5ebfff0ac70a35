/*
scenarios.go - Demo scenario loaders for testing and demonstrations

PURPOSE:

	Provides pre-built dossiers that populate the database with the Albion
	lots, for demos and for checking figures against the reference
	declaration. Each scenario creates one or more dossiers with their
	payments and TEOM recharges.

AVAILABLE SCENARIOS:

	albion-claim:     Lot A102, no payment before the judgment, TEOM 2024
	albion-payments:  Lot A102 with on-time, late and partial payments
	albion-monitor:   Lot A102 after the judgment, one partial payment
	albion-portfolio: Three monitored lots: prepaid, partly paid and unpaid

HOW SCENARIOS WORK:
 1. Reset database (clear all data)
 2. Build dossiers from the Albion presets
 3. Store each dossier document, then its payments

USAGE VIA API:

	POST /api/scenarios/load
	{"scenario_id": "albion-monitor"}

NOTE:

	Scenarios reset the database. Only use in development/demo environments.

SEE ALSO:
  - handlers.go: createDossier
  - lease/policies.go: Albion presets
*/
package api

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	log "github.com/sirupsen/logrus"

	"github.com/cgarciahasapromotion-pixel/calculateur-albion/generic"
	"github.com/cgarciahasapromotion-pixel/calculateur-albion/lease"
)

// =============================================================================
// SCENARIO DEFINITIONS
// =============================================================================

// ErrUnknownScenario is returned for scenario IDs not in the list.
var ErrUnknownScenario = errors.New("unknown scenario")

var scenarios = []ScenarioDTO{
	{
		ID:          "albion-claim",
		Name:        "Albion Claim",
		Description: "Declaration at the judgment of 26/06/2025, nothing paid since 2023",
		Category:    "claim",
	},
	{
		ID:          "albion-payments",
		Name:        "Albion Claim With Payments",
		Description: "On-time, late and partial payments before the judgment",
		Category:    "claim",
	},
	{
		ID:          "albion-monitor",
		Name:        "Albion Monitor",
		Description: "Post-judgment rent with one partial payment",
		Category:    "monitor",
	},
	{
		ID:          "albion-portfolio",
		Name:        "Albion Portfolio",
		Description: "Three monitored lots: prepaid, partly paid and unpaid",
		Category:    "monitor",
	},
}

// ListScenarios returns available scenarios.
func (h *Handler) ListScenarios(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, scenarios)
}

// GetCurrentScenario returns the currently loaded scenario, if any.
func (h *Handler) GetCurrentScenario(w http.ResponseWriter, r *http.Request) {
	current := h.CurrentScenario()
	if current == "" {
		writeJSON(w, http.StatusOK, nil)
		return
	}
	for _, s := range scenarios {
		if s.ID == current {
			writeJSON(w, http.StatusOK, s)
			return
		}
	}
	writeJSON(w, http.StatusOK, ScenarioDTO{ID: current, Name: current, Description: "Currently loaded scenario"})
}

// LoadScenario loads a predefined scenario.
func (h *Handler) LoadScenario(w http.ResponseWriter, r *http.Request) {
	var req LoadScenarioRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}
	err := h.LoadScenarioByID(r.Context(), req.ScenarioID)
	if errors.Is(err, ErrUnknownScenario) {
		writeError(w, http.StatusBadRequest, "Unknown scenario", err)
		return
	}
	if err != nil {
		writeDomainError(w, fmt.Sprintf("Failed to load scenario %q", req.ScenarioID), err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "loaded", "scenario": req.ScenarioID})
}

// LoadScenarioByID resets the store and loads one scenario.
func (h *Handler) LoadScenarioByID(ctx context.Context, id string) error {
	loader, ok := map[string]func(context.Context) error{
		"albion-claim":     h.loadAlbionClaimScenario,
		"albion-payments":  h.loadAlbionPaymentsScenario,
		"albion-monitor":   h.loadAlbionMonitorScenario,
		"albion-portfolio": h.loadAlbionPortfolioScenario,
	}[id]
	if !ok {
		return fmt.Errorf("%w: %q", ErrUnknownScenario, id)
	}

	if err := h.Store.Reset(ctx); err != nil {
		return fmt.Errorf("failed to reset database: %w", err)
	}
	h.setCurrentScenario("")

	if err := loader(ctx); err != nil {
		return err
	}
	h.setCurrentScenario(id)
	log.WithFields(log.Fields{"scenario": id}).Info("scenario loaded")
	return nil
}

func (h *Handler) CurrentScenario() string {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.currentScenario
}

func (h *Handler) setCurrentScenario(id string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.currentScenario = id
}

// =============================================================================
// SCENARIO LOADERS
// =============================================================================

func albionLot(id, name, base string) *lease.Dossier {
	d := lease.AlbionDossier(name, generic.MustAmount(base))
	d.ID = generic.DossierID(id)
	d.Owner = lease.Owner{Name: "SCI Albion", Lot: name}
	return d
}

func payment(id, date, amount, reference string) generic.Payment {
	return generic.Payment{
		ID:           generic.PaymentID(id),
		ReceivedDate: generic.MustDate(date),
		Amount:       generic.MustAmount(amount),
		Reference:    reference,
	}
}

func (h *Handler) loadAlbionClaimScenario(ctx context.Context) error {
	d := albionLot("dos-a102", "Lot A102", "5000")
	d.Taxes = []lease.TaxClaim{{Year: "2024", Amount: generic.MustAmount("210")}}
	return h.createDossier(ctx, d)
}

func (h *Handler) loadAlbionPaymentsScenario(ctx context.Context) error {
	d := albionLot("dos-a102", "Lot A102", "5000")
	d.Taxes = []lease.TaxClaim{{Year: "2024", Amount: generic.MustAmount("210")}}
	d.Payments = []generic.Payment{
		payment("pay-001", "2023-04-05", "1375", "VIR T1 2023"),
		payment("pay-002", "2023-08-01", "1375", "VIR T2 2023"),
		payment("pay-003", "2024-02-15", "800", "VIR acompte"),
	}
	return h.createDossier(ctx, d)
}

func (h *Handler) loadAlbionMonitorScenario(ctx context.Context) error {
	d := albionLot("dos-a102", "Lot A102", "5000")
	d.Mode = lease.ModeMonitor
	d.Payments = []generic.Payment{payment("pay-101", "2025-07-15", "1200", "VIR juillet")}
	return h.createDossier(ctx, d)
}

func (h *Handler) loadAlbionPortfolioScenario(ctx context.Context) error {
	a102 := albionLot("dos-a102", "Lot A102", "5000")
	a102.Mode = lease.ModeMonitor
	a102.Payments = []generic.Payment{payment("pay-101", "2025-07-15", "1200", "VIR juillet")}

	b104 := albionLot("dos-b104", "Lot B104", "4200")
	b104.Mode = lease.ModeMonitor
	b104.Payments = []generic.Payment{payment("pay-201", "2025-07-01", "6000", "VIR annuel")}

	c201 := albionLot("dos-c201", "Lot C201", "6100")
	c201.Mode = lease.ModeMonitor

	for _, d := range []*lease.Dossier{a102, b104, c201} {
		if err := h.createDossier(ctx, d); err != nil {
			return fmt.Errorf("%s: %w", d.Name, err)
		}
	}
	return nil
}
