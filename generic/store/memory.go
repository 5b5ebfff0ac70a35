// Package store provides Store implementations.
package store

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/cgarciahasapromotion-pixel/calculateur-albion/generic"
)

// =============================================================================
// MEMORY STORE - In-memory implementation (for testing/dev)
// =============================================================================

type Memory struct {
	mu       sync.RWMutex
	dossiers map[generic.DossierID]generic.DossierRecord
	payments map[generic.DossierID][]generic.Payment
	now      func() time.Time
}

var _ generic.Store = (*Memory)(nil)

func NewMemory() *Memory {
	return &Memory{
		dossiers: make(map[generic.DossierID]generic.DossierRecord),
		payments: make(map[generic.DossierID][]generic.Payment),
		now:      time.Now,
	}
}

func (m *Memory) SaveDossier(_ context.Context, rec generic.DossierRecord) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	now := m.now().UTC()
	if existing, ok := m.dossiers[rec.ID]; ok {
		rec.CreatedAt = existing.CreatedAt
	} else if rec.CreatedAt.IsZero() {
		rec.CreatedAt = now
	}
	rec.UpdatedAt = now
	m.dossiers[rec.ID] = rec
	return nil
}

func (m *Memory) GetDossier(_ context.Context, id generic.DossierID) (*generic.DossierRecord, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	rec, ok := m.dossiers[id]
	if !ok {
		return nil, generic.ErrDossierNotFound
	}
	return &rec, nil
}

func (m *Memory) ListDossiers(_ context.Context) ([]generic.DossierRecord, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	result := make([]generic.DossierRecord, 0, len(m.dossiers))
	for _, rec := range m.dossiers {
		result = append(result, rec)
	}
	sort.Slice(result, func(i, j int) bool {
		if result[i].Name != result[j].Name {
			return result[i].Name < result[j].Name
		}
		return result[i].ID < result[j].ID
	})
	return result, nil
}

func (m *Memory) DeleteDossier(_ context.Context, id generic.DossierID) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.dossiers[id]; !ok {
		return generic.ErrDossierNotFound
	}
	delete(m.dossiers, id)
	delete(m.payments, id)
	return nil
}

// AppendPayment inserts in received-date order, after payments of the same date.
func (m *Memory) AppendPayment(_ context.Context, dossierID generic.DossierID, p generic.Payment) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.dossiers[dossierID]; !ok {
		return generic.ErrDossierNotFound
	}
	ps := m.payments[dossierID]
	for _, existing := range ps {
		if existing.ID == p.ID {
			return generic.ErrDuplicatePayment
		}
	}

	// Binary search for insertion point
	i := sort.Search(len(ps), func(i int) bool {
		return ps[i].ReceivedDate.After(p.ReceivedDate)
	})

	ps = append(ps, generic.Payment{})
	copy(ps[i+1:], ps[i:])
	ps[i] = p
	m.payments[dossierID] = ps
	return nil
}

func (m *Memory) DeletePayment(_ context.Context, dossierID generic.DossierID, paymentID generic.PaymentID) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	ps := m.payments[dossierID]
	for i, p := range ps {
		if p.ID == paymentID {
			m.payments[dossierID] = append(ps[:i:i], ps[i+1:]...)
			return nil
		}
	}
	return generic.ErrPaymentNotFound
}

func (m *Memory) Payments(_ context.Context, dossierID generic.DossierID) ([]generic.Payment, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if _, ok := m.dossiers[dossierID]; !ok {
		return nil, generic.ErrDossierNotFound
	}
	result := make([]generic.Payment, len(m.payments[dossierID]))
	copy(result, m.payments[dossierID])
	return result, nil
}

// Reset clears all data.
func (m *Memory) Reset(_ context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.dossiers = make(map[generic.DossierID]generic.DossierRecord)
	m.payments = make(map[generic.DossierID][]generic.Payment)
	return nil
}
