package document

import (
	"time"

	"github.com/findoc/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// LineItem represents one row of a document: a quantity/price/discount tuple
// against an account or product reference. Subtotal is derived and kept in
// sync by the owning aggregate on every mutation.
type LineItem struct {
	ID            uuid.UUID       `gorm:"type:uuid;primary_key"`
	DocumentID    uuid.UUID       `gorm:"type:uuid;not null;index"`
	AccountID     uuid.UUID       `gorm:"type:uuid;not null"`            // Account or product reference
	Description   string          `gorm:"type:varchar(200)"`
	Quantity      decimal.Decimal `gorm:"type:decimal(18,4);not null"`
	UnitPrice     decimal.Decimal `gorm:"type:decimal(18,4);not null"`
	DiscountType  DiscountType    `gorm:"type:varchar(10);not null;default:'AMOUNT'"`
	DiscountValue decimal.Decimal `gorm:"type:decimal(18,4);not null;default:0"`
	TaxCode       string          `gorm:"type:varchar(30)"` // Optional tax reference
	Subtotal      decimal.Decimal `gorm:"type:decimal(18,4);not null"`
	CreatedAt     time.Time       `gorm:"not null"`
	UpdatedAt     time.Time       `gorm:"not null"`
}

// TableName returns the table name for GORM
func (LineItem) TableName() string {
	return "document_lines"
}

// NewLineItem creates a new line item with a computed subtotal
func NewLineItem(documentID, accountID uuid.UUID, description string, quantity, unitPrice decimal.Decimal, discountType DiscountType, discountValue decimal.Decimal, taxCode string) (*LineItem, error) {
	if accountID == uuid.Nil {
		return nil, shared.NewValidationError("account_id", "Account reference cannot be empty")
	}
	// An unset discount type means no discount
	if discountType == "" {
		discountType = DiscountAmount
	}

	subtotal, err := ComputeLineSubtotal(quantity, unitPrice, discountType, discountValue)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	return &LineItem{
		ID:            uuid.New(),
		DocumentID:    documentID,
		AccountID:     accountID,
		Description:   description,
		Quantity:      quantity,
		UnitPrice:     unitPrice,
		DiscountType:  discountType,
		DiscountValue: discountValue,
		TaxCode:       taxCode,
		Subtotal:      subtotal,
		CreatedAt:     now,
		UpdatedAt:     now,
	}, nil
}

// UpdateQuantity updates the quantity and recomputes the subtotal
func (i *LineItem) UpdateQuantity(quantity decimal.Decimal) error {
	subtotal, err := ComputeLineSubtotal(quantity, i.UnitPrice, i.DiscountType, i.DiscountValue)
	if err != nil {
		return err
	}
	i.Quantity = quantity
	i.Subtotal = subtotal
	i.UpdatedAt = time.Now()
	return nil
}

// UpdateUnitPrice updates the unit price and recomputes the subtotal
func (i *LineItem) UpdateUnitPrice(unitPrice decimal.Decimal) error {
	subtotal, err := ComputeLineSubtotal(i.Quantity, unitPrice, i.DiscountType, i.DiscountValue)
	if err != nil {
		return err
	}
	i.UnitPrice = unitPrice
	i.Subtotal = subtotal
	i.UpdatedAt = time.Now()
	return nil
}

// UpdateDiscount updates the discount and recomputes the subtotal
func (i *LineItem) UpdateDiscount(discountType DiscountType, discountValue decimal.Decimal) error {
	subtotal, err := ComputeLineSubtotal(i.Quantity, i.UnitPrice, discountType, discountValue)
	if err != nil {
		return err
	}
	i.DiscountType = discountType
	i.DiscountValue = discountValue
	i.Subtotal = subtotal
	i.UpdatedAt = time.Now()
	return nil
}

// Recompute recalculates the subtotal from the stored inputs. Idempotent.
func (i *LineItem) Recompute() error {
	subtotal, err := ComputeLineSubtotal(i.Quantity, i.UnitPrice, i.DiscountType, i.DiscountValue)
	if err != nil {
		return err
	}
	i.Subtotal = subtotal
	return nil
}
