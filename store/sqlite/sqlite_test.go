package sqlite

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cgarciahasapromotion-pixel/calculateur-albion/generic"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := New(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s
}

func payment(id, date, amount string) generic.Payment {
	return generic.Payment{ID: generic.PaymentID(id), ReceivedDate: generic.MustDate(date), Amount: generic.MustAmount(amount)}
}

func TestDossiers_SaveGetListDelete(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)

	require.NoError(t, s.SaveDossier(ctx, generic.DossierRecord{ID: "d2", Name: "Lot B", Mode: "claim", Document: `{"name":"Lot B"}`}))
	require.NoError(t, s.SaveDossier(ctx, generic.DossierRecord{ID: "d1", Name: "Lot A", Mode: "monitor", Document: `{"name":"Lot A"}`}))

	rec, err := s.GetDossier(ctx, "d1")
	require.NoError(t, err)
	assert.Equal(t, "Lot A", rec.Name)
	assert.Equal(t, "monitor", rec.Mode)
	assert.False(t, rec.CreatedAt.IsZero())

	list, err := s.ListDossiers(ctx)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, generic.DossierID("d1"), list[0].ID, "ordered by name")

	require.NoError(t, s.DeleteDossier(ctx, "d1"))
	_, err = s.GetDossier(ctx, "d1")
	assert.ErrorIs(t, err, generic.ErrDossierNotFound)
	assert.ErrorIs(t, s.DeleteDossier(ctx, "d1"), generic.ErrDossierNotFound)
}

func TestSaveDossier_UpdateKeepsCreationTime(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)
	require.NoError(t, s.SaveDossier(ctx, generic.DossierRecord{ID: "d1", Name: "v1", Mode: "claim", Document: "{}"}))
	first, err := s.GetDossier(ctx, "d1")
	require.NoError(t, err)

	require.NoError(t, s.SaveDossier(ctx, generic.DossierRecord{ID: "d1", Name: "v2", Mode: "claim", Document: "{}"}))

	second, err := s.GetDossier(ctx, "d1")
	require.NoError(t, err)
	assert.Equal(t, "v2", second.Name)
	assert.True(t, first.CreatedAt.Equal(second.CreatedAt))
	assert.False(t, second.UpdatedAt.Before(first.UpdatedAt))
}

func TestPayments_OrderedByDateThenInsertion(t *testing.T) {
	// GIVEN: Payments appended out of date order, two on the same day
	ctx := context.Background()
	s := newTestStore(t)
	require.NoError(t, s.SaveDossier(ctx, generic.DossierRecord{ID: "d1", Name: "Lot", Mode: "claim", Document: "{}"}))
	for _, p := range []generic.Payment{
		payment("b", "2025-08-01", "10"),
		payment("a", "2025-07-15", "20.125"),
		payment("c", "2025-08-01", "30"),
	} {
		require.NoError(t, s.AppendPayment(ctx, "d1", p))
	}

	// WHEN: Listing them
	ps, err := s.Payments(ctx, "d1")
	require.NoError(t, err)

	// THEN: Date order, ties in insertion order, amounts at full precision
	require.Len(t, ps, 3)
	assert.Equal(t, []generic.PaymentID{"a", "b", "c"}, []generic.PaymentID{ps[0].ID, ps[1].ID, ps[2].ID})
	assert.Equal(t, "20.125", ps[0].Amount.Value.String())
	assert.Equal(t, "2025-07-15", ps[0].ReceivedDate.String())
}

func TestPayments_Errors(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)
	require.NoError(t, s.SaveDossier(ctx, generic.DossierRecord{ID: "d1", Name: "Lot", Mode: "claim", Document: "{}"}))
	require.NoError(t, s.AppendPayment(ctx, "d1", payment("p1", "2025-07-01", "10")))

	assert.ErrorIs(t, s.AppendPayment(ctx, "nope", payment("p2", "2025-07-01", "10")), generic.ErrDossierNotFound)
	assert.ErrorIs(t, s.AppendPayment(ctx, "d1", payment("p1", "2025-07-02", "10")), generic.ErrDuplicatePayment)
	assert.ErrorIs(t, s.DeletePayment(ctx, "d1", "p9"), generic.ErrPaymentNotFound)
	_, err := s.Payments(ctx, "nope")
	assert.ErrorIs(t, err, generic.ErrDossierNotFound)

	require.NoError(t, s.DeletePayment(ctx, "d1", "p1"))
	ps, err := s.Payments(ctx, "d1")
	require.NoError(t, err)
	assert.Empty(t, ps)
}

func TestPayments_IDsScopedToDossier(t *testing.T) {
	// GIVEN: Two dossiers
	ctx := context.Background()
	s := newTestStore(t)
	require.NoError(t, s.SaveDossier(ctx, generic.DossierRecord{ID: "d1", Name: "Lot A", Mode: "monitor", Document: "{}"}))
	require.NoError(t, s.SaveDossier(ctx, generic.DossierRecord{ID: "d2", Name: "Lot B", Mode: "monitor", Document: "{}"}))
	require.NoError(t, s.AppendPayment(ctx, "d1", payment("p1", "2025-07-01", "10")))

	// WHEN: Reusing the payment ID on the other dossier
	err := s.AppendPayment(ctx, "d2", payment("p1", "2025-07-02", "20"))

	// THEN: It is accepted, and deleting one leaves the other
	require.NoError(t, err)
	require.NoError(t, s.DeletePayment(ctx, "d2", "p1"))
	ps, err := s.Payments(ctx, "d1")
	require.NoError(t, err)
	require.Len(t, ps, 1)
	assert.Equal(t, "10", ps[0].Amount.Value.String())
}

func TestDeleteDossier_CascadesPayments(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)
	require.NoError(t, s.SaveDossier(ctx, generic.DossierRecord{ID: "d1", Name: "Lot", Mode: "claim", Document: "{}"}))
	require.NoError(t, s.AppendPayment(ctx, "d1", payment("p1", "2025-07-01", "10")))

	require.NoError(t, s.DeleteDossier(ctx, "d1"))
	require.NoError(t, s.SaveDossier(ctx, generic.DossierRecord{ID: "d1", Name: "Lot", Mode: "claim", Document: "{}"}))

	ps, err := s.Payments(ctx, "d1")
	require.NoError(t, err)
	assert.Empty(t, ps, "payments of the deleted dossier are gone")
}

func TestFileDatabase_Persists(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "albion.db")

	s, err := New(path)
	require.NoError(t, err)
	require.NoError(t, s.SaveDossier(ctx, generic.DossierRecord{ID: "d1", Name: "Lot", Mode: "claim", Document: "{}"}))
	require.NoError(t, s.AppendPayment(ctx, "d1", payment("p1", "2025-07-01", "99.95")))
	require.NoError(t, s.Close())

	reopened, err := New(path)
	require.NoError(t, err)
	defer reopened.Close()
	ps, err := reopened.Payments(ctx, "d1")
	require.NoError(t, err)
	require.Len(t, ps, 1)
	assert.Equal(t, "99.95", ps[0].Amount.String())

	require.NoError(t, reopened.Reset(ctx))
	list, err := reopened.ListDossiers(ctx)
	require.NoError(t, err)
	assert.Empty(t, list)
}
