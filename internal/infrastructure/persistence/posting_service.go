package persistence

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/findoc/backend/internal/domain/document"
	"github.com/findoc/backend/internal/domain/ledger"
	"github.com/findoc/backend/internal/domain/shared"
	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormPostingService implements ledger.PostingService on the relational
// ledger store. Each post runs in one transaction: entry, entry lines and
// account balances commit together or not at all. Idempotency per document
// is enforced by the unique index on (document_id, reversal).
type GormPostingService struct {
	db *gorm.DB
}

// NewGormPostingService creates a new GormPostingService
func NewGormPostingService(db *gorm.DB) *GormPostingService {
	return &GormPostingService{db: db}
}

// Post creates the ledger effect for a document. Posting an already posted
// document returns the original reference and writes nothing.
func (s *GormPostingService) Post(ctx context.Context, documentID uuid.UUID, documentNumber string, lines []document.LineItem, counterAccountID uuid.UUID, totals document.Totals) (*ledger.PostResult, error) {
	entryLines, err := buildEntryLines(lines, counterAccountID, documentNumber, totals)
	if err != nil {
		return nil, err
	}

	var reference string
	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		existing, err := findEntry(tx, documentID, false)
		if err != nil {
			return err
		}
		if existing != nil {
			reference = existing.ReferenceNumber
			return nil
		}

		next, err := nextLedgerReference(tx)
		if err != nil {
			return err
		}
		entry, err := ledger.NewEntry(next, documentID, documentNumber, entryLines)
		if err != nil {
			return err
		}
		if err := appendEntry(tx, entry); err != nil {
			return err
		}
		reference = entry.ReferenceNumber
		return nil
	})
	if err != nil {
		if isUniqueViolation(err) {
			// Possibly lost a race against a concurrent post of the same
			// document; the winner's entry is the canonical one. When no
			// entry exists the violation came from another constraint and
			// is surfaced as-is.
			return s.existingPostResult(ctx, documentID, err)
		}
		return nil, err
	}

	return &ledger.PostResult{LedgerReferenceNumber: reference}, nil
}

// Void reverses a previously posted document. Voiding an already voided
// document returns the existing reversal reference.
func (s *GormPostingService) Void(ctx context.Context, documentID uuid.UUID) (*ledger.VoidResult, error) {
	var reference string
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		original, err := findEntry(tx, documentID, false)
		if err != nil {
			return err
		}
		if original == nil {
			return shared.NewDomainError("NOT_POSTED", "Document has no ledger entry to reverse")
		}

		existing, err := findEntry(tx, documentID, true)
		if err != nil {
			return err
		}
		if existing != nil {
			reference = existing.ReferenceNumber
			return nil
		}

		next, err := nextLedgerReference(tx)
		if err != nil {
			return err
		}
		reversal, err := original.Reverse(next)
		if err != nil {
			return err
		}
		if err := appendEntry(tx, reversal); err != nil {
			return err
		}
		reference = reversal.ReferenceNumber
		return nil
	})
	if err != nil {
		return nil, err
	}

	return &ledger.VoidResult{ReversalReferenceNumber: reference}, nil
}

func (s *GormPostingService) existingPostResult(ctx context.Context, documentID uuid.UUID, cause error) (*ledger.PostResult, error) {
	entry, err := findEntry(s.db.WithContext(ctx), documentID, false)
	if err != nil {
		return nil, err
	}
	if entry == nil {
		return nil, cause
	}
	return &ledger.PostResult{LedgerReferenceNumber: entry.ReferenceNumber}, nil
}

// buildEntryLines derives the double-entry effect of a document. Each
// document line debits its account for the line subtotal; charges and tax
// debit the counter account; the discount and the grand total credit it.
// The construction balances by the totals identity, so an unbalanced result
// means the totals were inconsistent.
func buildEntryLines(lines []document.LineItem, counterAccountID uuid.UUID, documentNumber string, totals document.Totals) ([]ledger.EntryLine, error) {
	entryLines := make([]ledger.EntryLine, 0, len(lines)+4)

	for _, line := range lines {
		if line.Subtotal.IsZero() {
			continue
		}
		entryLines = append(entryLines, ledger.EntryLine{
			AccountID: line.AccountID,
			Direction: ledger.Debit,
			Amount:    line.Subtotal,
			Memo:      line.Description,
		})
	}
	if totals.OtherCharges.IsPositive() {
		entryLines = append(entryLines, ledger.EntryLine{
			AccountID: counterAccountID,
			Direction: ledger.Debit,
			Amount:    totals.OtherCharges,
			Memo:      "Other charges",
		})
	}
	if !totals.TaxInclusive && totals.TaxTotal.IsPositive() {
		entryLines = append(entryLines, ledger.EntryLine{
			AccountID: counterAccountID,
			Direction: ledger.Debit,
			Amount:    totals.TaxTotal,
			Memo:      "Tax",
		})
	}
	if totals.DiscountAmount.IsPositive() {
		entryLines = append(entryLines, ledger.EntryLine{
			AccountID: counterAccountID,
			Direction: ledger.Credit,
			Amount:    totals.DiscountAmount,
			Memo:      "Discount",
		})
	}
	if totals.GrandTotal.IsPositive() {
		entryLines = append(entryLines, ledger.EntryLine{
			AccountID: counterAccountID,
			Direction: ledger.Credit,
			Amount:    totals.GrandTotal,
			Memo:      documentNumber,
		})
	}

	if len(entryLines) == 0 {
		return nil, shared.NewPostingFailedError("Document has no monetary effect to post")
	}
	return entryLines, nil
}

func findEntry(tx *gorm.DB, documentID uuid.UUID, reversal bool) (*ledger.Entry, error) {
	var entry ledger.Entry
	if err := tx.Preload("Lines").
		First(&entry, "document_id = ? AND reversal = ?", documentID, reversal).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &entry, nil
}

// appendEntry writes the entry, its lines and the balance deltas in the
// caller's transaction
func appendEntry(tx *gorm.DB, entry *ledger.Entry) error {
	if err := tx.Omit("Lines").Create(entry).Error; err != nil {
		return err
	}
	if err := tx.Create(&entry.Lines).Error; err != nil {
		return err
	}
	return applyBalanceDeltas(tx, entry.Lines)
}

// applyBalanceDeltas upserts the running balance per account
func applyBalanceDeltas(tx *gorm.DB, lines []ledger.EntryLine) error {
	now := time.Now()
	for _, line := range lines {
		balance := ledger.AccountBalance{
			AccountID: line.AccountID,
			Balance:   line.Delta(),
			UpdatedAt: now,
		}
		if err := tx.Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "account_id"}},
			DoUpdates: clause.Assignments(map[string]interface{}{
				"balance":    gorm.Expr("account_balances.balance + ?", line.Delta()),
				"updated_at": now,
			}),
		}).Create(&balance).Error; err != nil {
			return err
		}
	}
	return nil
}

// nextLedgerReference generates the next GL-NNNN reference within tx.
// References are zero padded to four digits but grow beyond them, so the
// maximum is taken longest-first rather than lexicographically (GL-10000
// sorts before GL-9999 as a plain string).
func nextLedgerReference(tx *gorm.DB) (string, error) {
	var maxReference string
	if err := tx.Model(&ledger.Entry{}).
		Select("reference_number").
		Order("LENGTH(reference_number) DESC, reference_number DESC").
		Limit(1).
		Scan(&maxReference).Error; err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return "", err
	}

	nextSeq := 1
	if len(maxReference) > 3 {
		var seq int
		if _, err := fmt.Sscanf(maxReference[3:], "%d", &seq); err == nil {
			nextSeq = seq + 1
		}
	}
	return fmt.Sprintf("GL-%04d", nextSeq), nil
}

// Ensure GormPostingService implements the interface
var _ ledger.PostingService = (*GormPostingService)(nil)
