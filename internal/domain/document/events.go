package document

import (
	"time"

	"github.com/findoc/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// DocumentCreatedEvent is raised when a new document is created
type DocumentCreatedEvent struct {
	shared.BaseDomainEvent
	DocumentID   uuid.UUID       `json:"document_id"`
	Number       string          `json:"number"`
	DocumentType Type            `json:"document_type"`
	GrandTotal   decimal.Decimal `json:"grand_total"`
	LineCount    int             `json:"line_count"`
}

// EventType returns the event type name
func (e *DocumentCreatedEvent) EventType() string {
	return "DocumentCreated"
}

// NewDocumentCreatedEvent creates a new DocumentCreatedEvent
func NewDocumentCreatedEvent(d *Document) *DocumentCreatedEvent {
	return &DocumentCreatedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent("DocumentCreated", "Document", d.ID),
		DocumentID:      d.ID,
		Number:          d.Number,
		DocumentType:    d.Type,
		GrandTotal:      d.GrandTotal,
		LineCount:       len(d.Lines),
	}
}

// DocumentSubmittedEvent is raised when a draft enters the approval chain
type DocumentSubmittedEvent struct {
	shared.BaseDomainEvent
	DocumentID   uuid.UUID       `json:"document_id"`
	Number       string          `json:"number"`
	DocumentType Type            `json:"document_type"`
	GrandTotal   decimal.Decimal `json:"grand_total"`
}

// EventType returns the event type name
func (e *DocumentSubmittedEvent) EventType() string {
	return "DocumentSubmitted"
}

// NewDocumentSubmittedEvent creates a new DocumentSubmittedEvent
func NewDocumentSubmittedEvent(d *Document) *DocumentSubmittedEvent {
	return &DocumentSubmittedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent("DocumentSubmitted", "Document", d.ID),
		DocumentID:      d.ID,
		Number:          d.Number,
		DocumentType:    d.Type,
		GrandTotal:      d.GrandTotal,
	}
}

// DocumentApprovedEvent is raised when a supplier invoice is approved
type DocumentApprovedEvent struct {
	shared.BaseDomainEvent
	DocumentID uuid.UUID  `json:"document_id"`
	Number     string     `json:"number"`
	ApprovedBy *uuid.UUID `json:"approved_by,omitempty"`
	ApprovedAt *time.Time `json:"approved_at,omitempty"`
}

// EventType returns the event type name
func (e *DocumentApprovedEvent) EventType() string {
	return "DocumentApproved"
}

// NewDocumentApprovedEvent creates a new DocumentApprovedEvent
func NewDocumentApprovedEvent(d *Document) *DocumentApprovedEvent {
	return &DocumentApprovedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent("DocumentApproved", "Document", d.ID),
		DocumentID:      d.ID,
		Number:          d.Number,
		ApprovedBy:      d.ApprovedBy,
		ApprovedAt:      d.ApprovedAt,
	}
}

// DocumentRejectedEvent is raised when an approval-chain step rejects a document
type DocumentRejectedEvent struct {
	shared.BaseDomainEvent
	DocumentID uuid.UUID `json:"document_id"`
	Number     string    `json:"number"`
	Reason     string    `json:"reason"`
}

// EventType returns the event type name
func (e *DocumentRejectedEvent) EventType() string {
	return "DocumentRejected"
}

// NewDocumentRejectedEvent creates a new DocumentRejectedEvent
func NewDocumentRejectedEvent(d *Document, reason string) *DocumentRejectedEvent {
	return &DocumentRejectedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent("DocumentRejected", "Document", d.ID),
		DocumentID:      d.ID,
		Number:          d.Number,
		Reason:          reason,
	}
}

// DocumentPostedEvent is raised exactly once when a document is posted
type DocumentPostedEvent struct {
	shared.BaseDomainEvent
	DocumentID   uuid.UUID       `json:"document_id"`
	Number       string          `json:"number"`
	DocumentType Type            `json:"document_type"`
	LedgerRef    string          `json:"ledger_ref"`
	GrandTotal   decimal.Decimal `json:"grand_total"`
	PostedAt     *time.Time      `json:"posted_at,omitempty"`
}

// EventType returns the event type name
func (e *DocumentPostedEvent) EventType() string {
	return "DocumentPosted"
}

// NewDocumentPostedEvent creates a new DocumentPostedEvent
func NewDocumentPostedEvent(d *Document) *DocumentPostedEvent {
	return &DocumentPostedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent("DocumentPosted", "Document", d.ID),
		DocumentID:      d.ID,
		Number:          d.Number,
		DocumentType:    d.Type,
		LedgerRef:       d.LedgerRef,
		GrandTotal:      d.GrandTotal,
		PostedAt:        d.PostedAt,
	}
}

// DocumentVoidedEvent is raised when a posted document is reversed
type DocumentVoidedEvent struct {
	shared.BaseDomainEvent
	DocumentID  uuid.UUID `json:"document_id"`
	Number      string    `json:"number"`
	ReversalRef string    `json:"reversal_ref"`
	Reason      string    `json:"reason"`
}

// EventType returns the event type name
func (e *DocumentVoidedEvent) EventType() string {
	return "DocumentVoided"
}

// NewDocumentVoidedEvent creates a new DocumentVoidedEvent
func NewDocumentVoidedEvent(d *Document, reason string) *DocumentVoidedEvent {
	return &DocumentVoidedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent("DocumentVoided", "Document", d.ID),
		DocumentID:      d.ID,
		Number:          d.Number,
		ReversalRef:     d.ReversalRef,
		Reason:          reason,
	}
}

// DocumentDeletedEvent is raised when a draft is hard-removed
type DocumentDeletedEvent struct {
	shared.BaseDomainEvent
	DocumentID   uuid.UUID `json:"document_id"`
	Number       string    `json:"number"`
	DocumentType Type      `json:"document_type"`
}

// EventType returns the event type name
func (e *DocumentDeletedEvent) EventType() string {
	return "DocumentDeleted"
}

// NewDocumentDeletedEvent creates a new DocumentDeletedEvent
func NewDocumentDeletedEvent(d *Document) *DocumentDeletedEvent {
	return &DocumentDeletedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent("DocumentDeleted", "Document", d.ID),
		DocumentID:      d.ID,
		Number:          d.Number,
		DocumentType:    d.Type,
	}
}
