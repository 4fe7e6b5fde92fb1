package document

import (
	"fmt"
	"time"

	"github.com/findoc/backend/internal/domain/shared"
	"github.com/findoc/backend/internal/domain/shared/valueobject"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// LineInput carries the raw inputs for one line at creation time
type LineInput struct {
	AccountID     uuid.UUID
	Description   string
	Quantity      decimal.Decimal
	UnitPrice     decimal.Decimal
	DiscountType  DiscountType
	DiscountValue decimal.Decimal
	TaxCode       string
}

// Document is the aggregate root for every business document subject to the
// draft/post lifecycle: opening balances, fund transfers, purchase orders,
// quotations and supplier invoices. Header, lines and totals are kept
// mutually consistent at every read; totals are derived fields, recomputed
// on every mutation and never trusted from storage without recomputation.
type Document struct {
	shared.BaseAggregateRoot
	Number           string               `gorm:"type:varchar(50);not null;uniqueIndex"`
	Type             Type                 `gorm:"type:varchar(30);not null;index"`
	DocumentDate     time.Time            `gorm:"not null"`
	Currency         valueobject.Currency `gorm:"type:varchar(3);not null;default:'IDR'"`
	Reference        string               `gorm:"type:varchar(100)"` // Optional external reference number
	Notes            string               `gorm:"type:text"`
	CounterAccountID uuid.UUID            `gorm:"type:uuid;not null"` // Balancing account for the ledger effect
	PartyID          *uuid.UUID           `gorm:"type:uuid;index"`    // Supplier/customer where the type requires one
	PartyName        string               `gorm:"type:varchar(200)"`
	Lines            []LineItem           `gorm:"foreignKey:DocumentID;references:ID"`
	DiscountType     DiscountType         `gorm:"type:varchar(10);not null;default:'AMOUNT'"`
	DiscountValue    decimal.Decimal      `gorm:"type:decimal(18,4);not null;default:0"`
	OtherCharges     decimal.Decimal      `gorm:"type:decimal(18,4);not null;default:0"`
	TaxTotal         decimal.Decimal      `gorm:"type:decimal(18,4);not null;default:0"`
	TaxInclusive     bool                 `gorm:"not null;default:false"`
	Subtotal         decimal.Decimal      `gorm:"type:decimal(18,4);not null;default:0"`
	DiscountAmount   decimal.Decimal      `gorm:"type:decimal(18,4);not null;default:0"`
	GrandTotal       decimal.Decimal      `gorm:"type:decimal(18,4);not null;default:0"`
	Status           Status               `gorm:"type:varchar(20);not null;default:'DRAFT';index"`
	LedgerRef        string               `gorm:"type:varchar(50)"` // Back-reference to the posted ledger entry
	ReversalRef      string               `gorm:"type:varchar(50)"` // Back-reference to the reversing entry
	SubmittedAt      *time.Time
	ApprovedAt       *time.Time
	ApprovedBy       *uuid.UUID `gorm:"type:uuid"`
	PostedAt         *time.Time `gorm:"index"`
	PostedBy         *uuid.UUID `gorm:"type:uuid"`
	VoidedAt         *time.Time
	VoidedBy         *uuid.UUID `gorm:"type:uuid"`
	VoidReason       string     `gorm:"type:varchar(500)"`
}

// TableName returns the table name for GORM
func (Document) TableName() string {
	return "documents"
}

// NewDocument creates a new document in DRAFT with its lines. At least one
// line and the counter account are required; types that reference a
// counterparty also require the party.
func NewDocument(docType Type, number string, documentDate time.Time, currency valueobject.Currency, counterAccountID uuid.UUID, partyID *uuid.UUID, partyName string, lines []LineInput) (*Document, error) {
	if !docType.IsValid() {
		return nil, shared.NewValidationError("type", "Document type is not valid")
	}
	if number == "" {
		return nil, shared.NewValidationError("number", "Document number cannot be empty")
	}
	if len(number) > 50 {
		return nil, shared.NewValidationError("number", "Document number cannot exceed 50 characters")
	}
	if documentDate.IsZero() {
		return nil, shared.NewValidationError("document_date", "Document date is required")
	}
	if !currency.IsValid() {
		return nil, shared.NewValidationError("currency", "Currency is not supported")
	}
	if counterAccountID == uuid.Nil {
		return nil, shared.NewValidationError("counter_account_id", "Counter account cannot be empty")
	}
	if docType.RequiresParty() {
		if partyID == nil || *partyID == uuid.Nil {
			return nil, shared.NewValidationError("party_id", fmt.Sprintf("%s documents require a counterparty", docType))
		}
		if partyName == "" {
			return nil, shared.NewValidationError("party_name", "Counterparty name cannot be empty")
		}
	}
	if len(lines) == 0 {
		return nil, shared.NewValidationError("lines", "Document must have at least one line")
	}

	doc := &Document{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		Number:            number,
		Type:              docType,
		DocumentDate:      documentDate,
		Currency:          currency,
		CounterAccountID:  counterAccountID,
		PartyID:           partyID,
		PartyName:         partyName,
		Lines:             make([]LineItem, 0, len(lines)),
		DiscountType:      DiscountAmount,
		DiscountValue:     decimal.Zero,
		OtherCharges:      decimal.Zero,
		TaxTotal:          decimal.Zero,
		Status:            StatusDraft,
	}

	for _, input := range lines {
		item, err := NewLineItem(doc.ID, input.AccountID, input.Description, input.Quantity, input.UnitPrice, input.DiscountType, input.DiscountValue, input.TaxCode)
		if err != nil {
			return nil, err
		}
		doc.Lines = append(doc.Lines, *item)
	}

	if err := doc.recompute(); err != nil {
		return nil, err
	}

	doc.AddDomainEvent(NewDocumentCreatedEvent(doc))

	return doc, nil
}

// ensureMutable guards all content mutations to the DRAFT status
func (d *Document) ensureMutable(requested string) error {
	if !d.Status.IsMutable() {
		return shared.NewInvalidStateError(d.Status.String(), requested,
			fmt.Sprintf("Cannot modify document in %s status", d.Status))
	}
	return nil
}

// AddLine adds a new line. Only allowed while DRAFT.
func (d *Document) AddLine(input LineInput) (*LineItem, error) {
	if err := d.ensureMutable(StatusDraft.String()); err != nil {
		return nil, err
	}

	item, err := NewLineItem(d.ID, input.AccountID, input.Description, input.Quantity, input.UnitPrice, input.DiscountType, input.DiscountValue, input.TaxCode)
	if err != nil {
		return nil, err
	}

	d.Lines = append(d.Lines, *item)
	if err := d.recompute(); err != nil {
		return nil, err
	}
	d.touch()

	return item, nil
}

// UpdateLine updates quantity, price and discount of an existing line.
// Only allowed while DRAFT.
func (d *Document) UpdateLine(lineID uuid.UUID, quantity, unitPrice decimal.Decimal, discountType DiscountType, discountValue decimal.Decimal) error {
	if err := d.ensureMutable(StatusDraft.String()); err != nil {
		return err
	}

	for idx := range d.Lines {
		if d.Lines[idx].ID == lineID {
			if err := d.Lines[idx].UpdateQuantity(quantity); err != nil {
				return err
			}
			if err := d.Lines[idx].UpdateUnitPrice(unitPrice); err != nil {
				return err
			}
			if err := d.Lines[idx].UpdateDiscount(discountType, discountValue); err != nil {
				return err
			}
			if err := d.recompute(); err != nil {
				return err
			}
			d.touch()
			return nil
		}
	}

	return shared.NewDomainError("LINE_NOT_FOUND", "Document line not found")
}

// RemoveLine removes a line. Only allowed while DRAFT; the last line cannot
// be removed because a document without lines is invalid.
func (d *Document) RemoveLine(lineID uuid.UUID) error {
	if err := d.ensureMutable(StatusDraft.String()); err != nil {
		return err
	}
	if len(d.Lines) == 1 && d.Lines[0].ID == lineID {
		return shared.NewValidationError("lines", "Document must keep at least one line")
	}

	for idx, line := range d.Lines {
		if line.ID == lineID {
			d.Lines = append(d.Lines[:idx], d.Lines[idx+1:]...)
			if err := d.recompute(); err != nil {
				return err
			}
			d.touch()
			return nil
		}
	}

	return shared.NewDomainError("LINE_NOT_FOUND", "Document line not found")
}

// SetHeaderDiscount sets the document-level discount. Only allowed while DRAFT.
func (d *Document) SetHeaderDiscount(discountType DiscountType, discountValue decimal.Decimal) error {
	if err := d.ensureMutable(StatusDraft.String()); err != nil {
		return err
	}
	if !discountType.IsValid() {
		return shared.NewValidationError("discount_type", "Discount type must be PERCENT or AMOUNT")
	}
	if discountValue.IsNegative() {
		return shared.NewValidationError("discount_value", "Discount value cannot be negative")
	}

	d.DiscountType = discountType
	d.DiscountValue = discountValue
	if err := d.recompute(); err != nil {
		return err
	}
	d.touch()
	return nil
}

// SetCharges sets other charges and tax fields. Only allowed while DRAFT.
func (d *Document) SetCharges(otherCharges, taxTotal decimal.Decimal, taxInclusive bool) error {
	if err := d.ensureMutable(StatusDraft.String()); err != nil {
		return err
	}
	if otherCharges.IsNegative() {
		return shared.NewValidationError("other_charges", "Other charges cannot be negative")
	}
	if taxTotal.IsNegative() {
		return shared.NewValidationError("tax_total", "Tax total cannot be negative")
	}

	d.OtherCharges = otherCharges
	d.TaxTotal = taxTotal
	d.TaxInclusive = taxInclusive
	if err := d.recompute(); err != nil {
		return err
	}
	d.touch()
	return nil
}

// SetNotes sets the free-text notes. Only allowed while DRAFT.
func (d *Document) SetNotes(notes string) error {
	if err := d.ensureMutable(StatusDraft.String()); err != nil {
		return err
	}
	d.Notes = notes
	d.touch()
	return nil
}

// SetReference sets the optional external reference. Only allowed while DRAFT.
func (d *Document) SetReference(reference string) error {
	if err := d.ensureMutable(StatusDraft.String()); err != nil {
		return err
	}
	if len(reference) > 100 {
		return shared.NewValidationError("reference", "Reference cannot exceed 100 characters")
	}
	d.Reference = reference
	d.touch()
	return nil
}

// Recompute rebuilds every line subtotal and the document totals from raw
// inputs. Idempotent: recomputing twice with no intervening mutation yields
// identical totals.
func (d *Document) Recompute() error {
	for idx := range d.Lines {
		if err := d.Lines[idx].Recompute(); err != nil {
			return err
		}
	}
	return d.recompute()
}

// recompute rebuilds the header totals from the current lines
func (d *Document) recompute() error {
	totals, err := ComputeTotals(d.Lines, d.DiscountType, d.DiscountValue, d.OtherCharges, d.TaxTotal, d.TaxInclusive)
	if err != nil {
		return err
	}
	d.Subtotal = totals.Subtotal
	d.DiscountAmount = totals.DiscountAmount
	d.GrandTotal = totals.GrandTotal
	return nil
}

// Totals returns the current derived totals
func (d *Document) Totals() Totals {
	return Totals{
		Subtotal:       d.Subtotal,
		DiscountAmount: d.DiscountAmount,
		OtherCharges:   d.OtherCharges,
		TaxTotal:       d.TaxTotal,
		TaxInclusive:   d.TaxInclusive,
		GrandTotal:     d.GrandTotal,
	}
}

// transition moves the document to the target status through the state
// machine, or fails with an invalid-state error naming both statuses.
func (d *Document) transition(target Status) error {
	if !d.Status.CanTransitionTo(d.Type, target) {
		return shared.NewInvalidStateError(d.Status.String(), target.String(),
			fmt.Sprintf("Cannot move %s document from %s to %s", d.Type, d.Status, target))
	}
	d.Status = target
	return nil
}

// validateForPosting checks the posting guards: lines non-empty, totals
// internally consistent, references resolvable. Called before the posting
// contract is invoked.
func (d *Document) validateForPosting() error {
	if len(d.Lines) == 0 {
		return shared.NewValidationError("lines", "Cannot post a document without lines")
	}
	if d.CounterAccountID == uuid.Nil {
		return shared.NewValidationError("counter_account_id", "Counter account must be set before posting")
	}

	// Totals must survive recomputation unchanged
	computed, err := ComputeTotals(d.Lines, d.DiscountType, d.DiscountValue, d.OtherCharges, d.TaxTotal, d.TaxInclusive)
	if err != nil {
		return err
	}
	if !computed.Equal(d.Totals()) {
		return shared.NewDomainError("TOTALS_INCONSISTENT", "Document totals do not reconcile with line items")
	}
	return nil
}

// Submit moves a draft supplier invoice into the verification chain.
// The content freezes at this point; a rejection reopens the draft.
func (d *Document) Submit() error {
	if !d.Type.HasApprovalChain() {
		return shared.NewDomainError("INVALID_STATE", fmt.Sprintf("%s documents do not use the approval chain", d.Type))
	}
	if err := d.validateForPosting(); err != nil {
		return err
	}
	if err := d.transition(StatusUnverified); err != nil {
		return err
	}

	now := time.Now()
	d.SubmittedAt = &now
	d.touch()
	d.AddDomainEvent(NewDocumentSubmittedEvent(d))
	return nil
}

// Verify marks a submitted supplier invoice as verified
func (d *Document) Verify() error {
	if err := d.transition(StatusVerified); err != nil {
		return err
	}
	d.touch()
	return nil
}

// RequestApproval moves a verified supplier invoice to pending approval
func (d *Document) RequestApproval() error {
	if err := d.transition(StatusPendingApproval); err != nil {
		return err
	}
	d.touch()
	return nil
}

// Approve approves a pending supplier invoice
func (d *Document) Approve(approvedBy uuid.UUID) error {
	if approvedBy == uuid.Nil {
		return shared.NewValidationError("approved_by", "Approving user ID is required")
	}
	if err := d.transition(StatusApproved); err != nil {
		return err
	}

	now := time.Now()
	d.ApprovedAt = &now
	d.ApprovedBy = &approvedBy
	d.touch()
	d.AddDomainEvent(NewDocumentApprovedEvent(d))
	return nil
}

// Reject returns a document in the approval chain to DRAFT for correction
func (d *Document) Reject(reason string) error {
	if reason == "" {
		return shared.NewValidationError("reason", "Rejection reason is required")
	}
	if err := d.transition(StatusDraft); err != nil {
		return err
	}

	d.SubmittedAt = nil
	d.ApprovedAt = nil
	d.ApprovedBy = nil
	d.Notes = appendNote(d.Notes, "Rejected: "+reason)
	d.touch()
	d.AddDomainEvent(NewDocumentRejectedEvent(d, reason))
	return nil
}

// CanPost returns true if the state machine allows posting from the current status
func (d *Document) CanPost() bool {
	return d.Status.CanTransitionTo(d.Type, StatusPosted)
}

// ValidateForPosting runs the posting guards without transitioning
func (d *Document) ValidateForPosting() error {
	if !d.CanPost() {
		return shared.NewInvalidStateError(d.Status.String(), StatusPosted.String(),
			fmt.Sprintf("Cannot post document in %s status", d.Status))
	}
	return d.validateForPosting()
}

// MarkPosted records a successful posting. The ledger reference comes back
// from the posting contract; from here on the document is immutable except
// for the status field itself.
func (d *Document) MarkPosted(ledgerRef string, postedBy uuid.UUID) error {
	if ledgerRef == "" {
		return shared.NewValidationError("ledger_ref", "Ledger reference cannot be empty")
	}
	if err := d.validateForPosting(); err != nil {
		return err
	}
	if err := d.transition(StatusPosted); err != nil {
		return err
	}

	now := time.Now()
	d.LedgerRef = ledgerRef
	d.PostedAt = &now
	if postedBy != uuid.Nil {
		d.PostedBy = &postedBy
	}
	d.touch()
	d.AddDomainEvent(NewDocumentPostedEvent(d))
	return nil
}

// MarkAwaitingPayment moves a posted supplier invoice into the payment queue
func (d *Document) MarkAwaitingPayment() error {
	if err := d.transition(StatusAwaitingPayment); err != nil {
		return err
	}
	d.touch()
	return nil
}

// MarkPaid settles a supplier invoice awaiting payment
func (d *Document) MarkPaid() error {
	if err := d.transition(StatusPaid); err != nil {
		return err
	}
	d.touch()
	return nil
}

// MarkVoided records a reversal of a posted document. Voiding is never
// implicit: callers must have collected the operator's explicit confirmation
// before reaching this point.
func (d *Document) MarkVoided(reversalRef string, voidedBy uuid.UUID, reason string) error {
	if reversalRef == "" {
		return shared.NewValidationError("reversal_ref", "Reversal reference cannot be empty")
	}
	if reason == "" {
		return shared.NewValidationError("reason", "Void reason is required")
	}
	if err := d.transition(StatusVoided); err != nil {
		return err
	}

	now := time.Now()
	d.ReversalRef = reversalRef
	d.VoidedAt = &now
	if voidedBy != uuid.Nil {
		d.VoidedBy = &voidedBy
	}
	d.VoidReason = reason
	d.touch()
	d.AddDomainEvent(NewDocumentVoidedEvent(d, reason))
	return nil
}

// MarkDeleted hard-removes a draft. Only legal while DRAFT.
func (d *Document) MarkDeleted() error {
	if err := d.transition(StatusDeleted); err != nil {
		return err
	}
	d.touch()
	d.AddDomainEvent(NewDocumentDeletedEvent(d))
	return nil
}

// touch bumps timestamps and the optimistic-lock version
func (d *Document) touch() {
	d.UpdatedAt = time.Now()
	d.IncrementVersion()
}

// Helper methods

// IsDraft returns true if the document is in draft status
func (d *Document) IsDraft() bool {
	return d.Status == StatusDraft
}

// IsPosted returns true if the document is posted
func (d *Document) IsPosted() bool {
	return d.Status == StatusPosted
}

// IsVoided returns true if the document is voided
func (d *Document) IsVoided() bool {
	return d.Status == StatusVoided
}

// LineCount returns the number of lines
func (d *Document) LineCount() int {
	return len(d.Lines)
}

// GetLine returns a line by its ID
func (d *Document) GetLine(lineID uuid.UUID) *LineItem {
	for idx := range d.Lines {
		if d.Lines[idx].ID == lineID {
			return &d.Lines[idx]
		}
	}
	return nil
}

// GetGrandTotalMoney returns the grand total as Money
func (d *Document) GetGrandTotalMoney() valueobject.Money {
	m, _ := valueobject.NewMoney(d.GrandTotal, d.Currency)
	return m
}

func appendNote(existing, note string) string {
	if existing == "" {
		return note
	}
	return existing + "\n" + note
}
