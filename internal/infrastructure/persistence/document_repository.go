package persistence

import (
	"context"
	"errors"
	"fmt"

	"github.com/findoc/backend/internal/domain/document"
	"github.com/findoc/backend/internal/domain/shared"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GormDocumentRepository implements document.Repository using GORM
type GormDocumentRepository struct {
	db *gorm.DB
}

// NewGormDocumentRepository creates a new GormDocumentRepository
func NewGormDocumentRepository(db *gorm.DB) *GormDocumentRepository {
	return &GormDocumentRepository{db: db}
}

// FindByID finds a document by ID with its lines
func (r *GormDocumentRepository) FindByID(ctx context.Context, id uuid.UUID) (*document.Document, error) {
	var doc document.Document
	if err := r.db.WithContext(ctx).
		Preload("Lines").
		First(&doc, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &doc, nil
}

// FindByNumber finds a document by its human-readable number
func (r *GormDocumentRepository) FindByNumber(ctx context.Context, number string) (*document.Document, error) {
	var doc document.Document
	if err := r.db.WithContext(ctx).
		Preload("Lines").
		First(&doc, "number = ?", number).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &doc, nil
}

// FindAll finds documents with filtering and pagination
func (r *GormDocumentRepository) FindAll(ctx context.Context, filter document.Filter) ([]document.Document, error) {
	var docs []document.Document
	query := r.applyFilter(r.db.WithContext(ctx), filter)

	if filter.PageSize > 0 {
		query = query.Limit(filter.PageSize)
		if filter.Page > 0 {
			query = query.Offset((filter.Page - 1) * filter.PageSize)
		}
	}

	orderBy := ValidateSortField(filter.OrderBy, DocumentSortFields, "created_at")
	orderDir := ValidateSortOrder(filter.OrderDir)

	if err := query.
		Order(fmt.Sprintf("%s %s", orderBy, orderDir)).
		Preload("Lines").
		Find(&docs).Error; err != nil {
		return nil, err
	}
	return docs, nil
}

// Count counts documents matching the filter
func (r *GormDocumentRepository) Count(ctx context.Context, filter document.Filter) (int64, error) {
	var count int64
	query := r.applyFilter(r.db.WithContext(ctx).Model(&document.Document{}), filter)
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

func (r *GormDocumentRepository) applyFilter(query *gorm.DB, filter document.Filter) *gorm.DB {
	if filter.Type != nil {
		query = query.Where("type = ?", *filter.Type)
	}
	if filter.Status != nil {
		query = query.Where("status = ?", *filter.Status)
	}
	if filter.PartyID != nil {
		query = query.Where("party_id = ?", *filter.PartyID)
	}
	if filter.FromDate != nil {
		query = query.Where("document_date >= ?", *filter.FromDate)
	}
	if filter.ToDate != nil {
		query = query.Where("document_date <= ?", *filter.ToDate)
	}
	if filter.Search != "" {
		pattern := "%" + filter.Search + "%"
		query = query.Where("number LIKE ? OR reference LIKE ? OR party_name LIKE ?", pattern, pattern, pattern)
	}
	return query
}

// Save creates or updates a document and its lines. Lines are replaced
// wholesale so removed lines do not linger.
func (r *GormDocumentRepository) Save(ctx context.Context, doc *document.Document) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit("Lines").Save(doc).Error; err != nil {
			return err
		}
		if err := tx.Delete(&document.LineItem{}, "document_id = ?", doc.ID).Error; err != nil {
			return err
		}
		if len(doc.Lines) > 0 {
			if err := tx.Create(&doc.Lines).Error; err != nil {
				return err
			}
		}
		return nil
	})
}

// SaveWithLock saves with optimistic locking (version check)
func (r *GormDocumentRepository) SaveWithLock(ctx context.Context, doc *document.Document) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		result := tx.Model(doc).
			Where("id = ? AND version < ?", doc.ID, doc.Version).
			Select("*").Omit("Lines", "created_at").
			Updates(doc)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return shared.ErrConcurrencyConflict
		}

		if err := tx.Delete(&document.LineItem{}, "document_id = ?", doc.ID).Error; err != nil {
			return err
		}
		if len(doc.Lines) > 0 {
			if err := tx.Create(&doc.Lines).Error; err != nil {
				return err
			}
		}
		return nil
	})
}

// Delete hard-removes a document and its lines
func (r *GormDocumentRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Delete(&document.LineItem{}, "document_id = ?", id).Error; err != nil {
			return err
		}
		return tx.Delete(&document.Document{}, "id = ?", id).Error
	})
}

// ExistsByNumber checks if a document number is already taken
func (r *GormDocumentRepository) ExistsByNumber(ctx context.Context, number string) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&document.Document{}).
		Where("number = ?", number).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// NextNumber generates the next sequential number for a document type,
// e.g. TRF-0001. Numbers stay gapless per type as long as drafts are not
// deleted; a deleted draft's number is not reused. The maximum is taken
// longest-first because numbers outgrow their zero padding (TRF-10000
// sorts before TRF-9999 as a plain string).
func (r *GormDocumentRepository) NextNumber(ctx context.Context, docType document.Type) (string, error) {
	prefix := docType.NumberPrefix()

	var maxNumber string
	if err := r.db.WithContext(ctx).
		Model(&document.Document{}).
		Select("number").
		Where("type = ?", docType).
		Order("LENGTH(number) DESC, number DESC").
		Limit(1).
		Scan(&maxNumber).Error; err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return "", err
	}

	nextSeq := 1
	if len(maxNumber) > len(prefix)+1 {
		var seq int
		if _, err := fmt.Sscanf(maxNumber[len(prefix)+1:], "%d", &seq); err == nil {
			nextSeq = seq + 1
		}
	}

	return fmt.Sprintf("%s-%04d", prefix, nextSeq), nil
}

// GetOpenCountByType returns the number of non-terminal documents per type.
// Used by the telemetry gauge collector.
func (r *GormDocumentRepository) GetOpenCountByType(ctx context.Context) (map[string]int64, error) {
	type row struct {
		Type  string
		Count int64
	}
	var rows []row
	if err := r.db.WithContext(ctx).
		Model(&document.Document{}).
		Select("type, COUNT(*) as count").
		Where("status NOT IN ?", []document.Status{
			document.StatusVoided, document.StatusDeleted, document.StatusPaid,
		}).
		Group("type").
		Scan(&rows).Error; err != nil {
		return nil, err
	}

	counts := make(map[string]int64, len(rows))
	for _, r := range rows {
		counts[r.Type] = r.Count
	}
	return counts, nil
}

// Ensure GormDocumentRepository implements the interface
var _ document.Repository = (*GormDocumentRepository)(nil)
