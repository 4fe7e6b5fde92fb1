package ledger

import (
	"context"

	"github.com/findoc/backend/internal/domain/document"
	"github.com/google/uuid"
)

// PostResult carries the ledger's reference for a posted document
type PostResult struct {
	LedgerReferenceNumber string
}

// VoidResult carries the reference of the reversing entry
type VoidResult struct {
	ReversalReferenceNumber string
}

// PostingService is the contract the accounting backend must satisfy.
// The lifecycle engine never implements the ledger itself; it invokes this
// interface exactly once per successful transition into POSTED and once per
// void. Implementations must be idempotent per document ID: posting the same
// document twice returns the original reference and creates no second entry,
// and either fully succeed (entry created, balances updated) or fully fail
// with no partial entry.
//
// Calls may block on the backend, so both take a context. On timeout the
// caller must not assume success; it re-queries the document status before
// retrying rather than blindly re-posting.
type PostingService interface {
	// Post creates the ledger effect for a document
	Post(ctx context.Context, documentID uuid.UUID, documentNumber string, lines []document.LineItem, counterAccountID uuid.UUID, totals document.Totals) (*PostResult, error)

	// Void reverses a previously posted document. Only callable once per
	// posted document; produces a reversing entry, never mutates the original.
	Void(ctx context.Context, documentID uuid.UUID) (*VoidResult, error)
}
