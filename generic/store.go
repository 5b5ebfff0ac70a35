/*
store.go - Persistence interface for dossiers and their payments

PURPOSE:
  Defines the interface between the application and the database. The
  engine itself is pure; only the user-editable inputs of a dossier are
  persisted: the dossier document (lease terms, tables, tax claims) and the
  list of payments received.

KEY INTERFACES:
  DossierStore: Dossier documents (save, get, list, delete)
  PaymentStore: Payments of a dossier (append, delete, list)
  Store:        Both

DERIVED DATA IS NEVER STORED:
  Balances, interest and allocation results are recomputed on every read by
  replaying the dossier's obligations and payments.

IMPLEMENTATIONS:
  - store/sqlite/sqlite.go: SQLite
  - generic/store/memory.go: In-memory for testing

EXAMPLE:
  store, _ := sqlite.New("./albion.db")
  err := store.AppendPayment(ctx, dossierID, payment)
  if generic.IsNotFound(err) {
      // unknown dossier
  }
*/
package generic

import (
	"context"
	"time"
)

// DossierRecord is the persisted form of a dossier. Document holds the
// factory's JSON encoding of everything except payments.
type DossierRecord struct {
	ID        DossierID
	Name      string
	Mode      string
	Document  string
	CreatedAt time.Time
	UpdatedAt time.Time
}

type DossierStore interface {
	// SaveDossier inserts or replaces a dossier document.
	SaveDossier(ctx context.Context, rec DossierRecord) error

	// GetDossier returns ErrDossierNotFound for unknown IDs.
	GetDossier(ctx context.Context, id DossierID) (*DossierRecord, error)

	// ListDossiers returns all dossiers ordered by name.
	ListDossiers(ctx context.Context) ([]DossierRecord, error)

	// DeleteDossier removes a dossier and its payments.
	DeleteDossier(ctx context.Context, id DossierID) error
}

type PaymentStore interface {
	// AppendPayment records a payment on an existing dossier.
	AppendPayment(ctx context.Context, dossierID DossierID, p Payment) error

	// DeletePayment returns ErrPaymentNotFound for unknown IDs.
	DeletePayment(ctx context.Context, dossierID DossierID, paymentID PaymentID) error

	// Payments returns a dossier's payments ordered by received date, then insertion.
	Payments(ctx context.Context, dossierID DossierID) ([]Payment, error)
}

type Store interface {
	DossierStore
	PaymentStore

	// Reset clears every dossier and payment.
	Reset(ctx context.Context) error
}
