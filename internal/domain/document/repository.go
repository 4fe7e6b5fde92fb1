package document

import (
	"context"
	"time"

	"github.com/findoc/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// Filter defines filtering options for document queries
type Filter struct {
	shared.Filter
	Type     *Type      // Filter by document type
	Status   *Status    // Filter by status
	PartyID  *uuid.UUID // Filter by counterparty
	FromDate *time.Time // Filter by document date range start
	ToDate   *time.Time // Filter by document date range end
}

// Repository defines the interface for document persistence
type Repository interface {
	// FindByID finds a document by ID with its lines
	FindByID(ctx context.Context, id uuid.UUID) (*Document, error)

	// FindByNumber finds a document by its human-readable number
	FindByNumber(ctx context.Context, number string) (*Document, error)

	// FindAll finds documents with filtering and pagination
	FindAll(ctx context.Context, filter Filter) ([]Document, error)

	// Count counts documents matching the filter
	Count(ctx context.Context, filter Filter) (int64, error)

	// Save creates or updates a document and its lines
	Save(ctx context.Context, doc *Document) error

	// SaveWithLock saves with optimistic locking (version check). Concurrent
	// draft edits resolve last-writer-wins at the field level; a stale
	// version fails with a concurrency conflict so the caller can reload.
	SaveWithLock(ctx context.Context, doc *Document) error

	// Delete hard-removes a document and its lines
	Delete(ctx context.Context, id uuid.UUID) error

	// ExistsByNumber checks if a document number is already taken
	ExistsByNumber(ctx context.Context, number string) (bool, error)

	// NextNumber generates the next sequential number for a document type,
	// e.g. TRF-0001
	NextNumber(ctx context.Context, docType Type) (string, error)
}
