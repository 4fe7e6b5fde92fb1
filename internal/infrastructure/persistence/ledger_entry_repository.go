package persistence

import (
	"context"
	"errors"

	"github.com/findoc/backend/internal/domain/ledger"
	"github.com/findoc/backend/internal/domain/shared"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GormLedgerEntryRepository implements ledger.EntryRepository using GORM.
// The store is append-only: entries are created once and never updated.
type GormLedgerEntryRepository struct {
	db *gorm.DB
}

// NewGormLedgerEntryRepository creates a new GormLedgerEntryRepository
func NewGormLedgerEntryRepository(db *gorm.DB) *GormLedgerEntryRepository {
	return &GormLedgerEntryRepository{db: db}
}

// FindByID finds an entry by ID with its lines
func (r *GormLedgerEntryRepository) FindByID(ctx context.Context, id uuid.UUID) (*ledger.Entry, error) {
	var entry ledger.Entry
	if err := r.db.WithContext(ctx).
		Preload("Lines").
		First(&entry, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &entry, nil
}

// FindByDocumentID finds the original (non-reversal) entry for a document
func (r *GormLedgerEntryRepository) FindByDocumentID(ctx context.Context, documentID uuid.UUID) (*ledger.Entry, error) {
	var entry ledger.Entry
	if err := r.db.WithContext(ctx).
		Preload("Lines").
		First(&entry, "document_id = ? AND reversal = ?", documentID, false).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &entry, nil
}

// FindReversalByDocumentID finds the reversing entry for a document, if any
func (r *GormLedgerEntryRepository) FindReversalByDocumentID(ctx context.Context, documentID uuid.UUID) (*ledger.Entry, error) {
	var entry ledger.Entry
	if err := r.db.WithContext(ctx).
		Preload("Lines").
		First(&entry, "document_id = ? AND reversal = ?", documentID, true).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &entry, nil
}

// FindByReference finds an entry by its ledger reference number
func (r *GormLedgerEntryRepository) FindByReference(ctx context.Context, referenceNumber string) (*ledger.Entry, error) {
	var entry ledger.Entry
	if err := r.db.WithContext(ctx).
		Preload("Lines").
		First(&entry, "reference_number = ?", referenceNumber).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &entry, nil
}

// Append persists a new entry and its lines. A second non-reversal entry for
// the same document trips the unique partial index and surfaces as
// ErrAlreadyExists so callers can re-query the original.
func (r *GormLedgerEntryRepository) Append(ctx context.Context, entry *ledger.Entry) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit("Lines").Create(entry).Error; err != nil {
			return err
		}
		return tx.Create(&entry.Lines).Error
	})
	if err != nil {
		if isUniqueViolation(err) {
			return shared.ErrAlreadyExists
		}
		return err
	}
	return nil
}

// NextReference generates the next ledger reference number, e.g. GL-0001
func (r *GormLedgerEntryRepository) NextReference(ctx context.Context) (string, error) {
	return nextLedgerReference(r.db.WithContext(ctx))
}

// Ensure GormLedgerEntryRepository implements the interface
var _ ledger.EntryRepository = (*GormLedgerEntryRepository)(nil)
