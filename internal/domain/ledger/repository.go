package ledger

import (
	"context"

	"github.com/google/uuid"
)

// EntryRepository defines the interface for ledger entry persistence.
// Entries are append-only: there is no update or delete.
type EntryRepository interface {
	// FindByID finds an entry by ID with its lines
	FindByID(ctx context.Context, id uuid.UUID) (*Entry, error)

	// FindByDocumentID finds the original (non-reversal) entry for a document
	FindByDocumentID(ctx context.Context, documentID uuid.UUID) (*Entry, error)

	// FindReversalByDocumentID finds the reversing entry for a document, if any
	FindReversalByDocumentID(ctx context.Context, documentID uuid.UUID) (*Entry, error)

	// FindByReference finds an entry by its ledger reference number
	FindByReference(ctx context.Context, referenceNumber string) (*Entry, error)

	// Append persists a new entry and its lines
	Append(ctx context.Context, entry *Entry) error

	// NextReference generates the next ledger reference number, e.g. GL-0001
	NextReference(ctx context.Context) (string, error)
}
