package document

import (
	"context"
	"fmt"
	"time"

	"github.com/findoc/backend/internal/domain/document"
	"github.com/findoc/backend/internal/domain/ledger"
	"github.com/findoc/backend/internal/domain/shared"
	"github.com/findoc/backend/internal/domain/shared/valueobject"
	"github.com/findoc/backend/internal/infrastructure/telemetry"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Service provides application-level document lifecycle operations. It owns
// the orchestration between the document aggregate, the posting contract and
// persistence; all business rules live in the domain layer.
type Service struct {
	docRepo     document.Repository
	entryRepo   ledger.EntryRepository
	posting     ledger.PostingService
	events      shared.EventPublisher
	idempotency shared.IdempotencyStore
	idemConfig  shared.IdempotencyConfig
	metrics     *telemetry.DocumentMetrics
}

// ServiceOption is a functional option for configuring Service
type ServiceOption func(*Service)

// WithEventPublisher sets the publisher for aggregate domain events
func WithEventPublisher(publisher shared.EventPublisher) ServiceOption {
	return func(s *Service) {
		s.events = publisher
	}
}

// WithIdempotencyStore enables short-circuiting of retried post requests
func WithIdempotencyStore(store shared.IdempotencyStore, config shared.IdempotencyConfig) ServiceOption {
	return func(s *Service) {
		s.idempotency = store
		s.idemConfig = config
	}
}

// WithMetrics enables business metrics recording
func WithMetrics(metrics *telemetry.DocumentMetrics) ServiceOption {
	return func(s *Service) {
		s.metrics = metrics
	}
}

// NewService creates a new document lifecycle service
func NewService(
	docRepo document.Repository,
	entryRepo ledger.EntryRepository,
	posting ledger.PostingService,
	opts ...ServiceOption,
) *Service {
	s := &Service{
		docRepo:    docRepo,
		entryRepo:  entryRepo,
		posting:    posting,
		idemConfig: shared.DefaultIdempotencyConfig(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// ===================== Requests and responses =====================

// LineRequest carries one document line on create and update
type LineRequest struct {
	AccountID     uuid.UUID       `json:"account_id"`
	Description   string          `json:"description"`
	Quantity      decimal.Decimal `json:"quantity"`
	UnitPrice     decimal.Decimal `json:"unit_price"`
	DiscountType  string          `json:"discount_type"`
	DiscountValue decimal.Decimal `json:"discount_value"`
	TaxCode       string          `json:"tax_code,omitempty"`
}

// CreateDocumentRequest carries the inputs for creating a draft
type CreateDocumentRequest struct {
	Type             string          `json:"type"`
	DocumentDate     time.Time       `json:"document_date"`
	Currency         string          `json:"currency"`
	Reference        string          `json:"reference,omitempty"`
	Notes            string          `json:"notes,omitempty"`
	CounterAccountID uuid.UUID       `json:"counter_account_id"`
	PartyID          *uuid.UUID      `json:"party_id,omitempty"`
	PartyName        string          `json:"party_name,omitempty"`
	Lines            []LineRequest   `json:"lines"`
	DiscountType     string          `json:"discount_type,omitempty"`
	DiscountValue    decimal.Decimal `json:"discount_value"`
	OtherCharges     decimal.Decimal `json:"other_charges"`
	TaxTotal         decimal.Decimal `json:"tax_total"`
	TaxInclusive     bool            `json:"tax_inclusive"`
}

// UpdateDocumentRequest carries draft header updates. Nil fields are left
// unchanged; lines are managed through the dedicated line operations.
type UpdateDocumentRequest struct {
	Reference     *string          `json:"reference,omitempty"`
	Notes         *string          `json:"notes,omitempty"`
	DiscountType  *string          `json:"discount_type,omitempty"`
	DiscountValue *decimal.Decimal `json:"discount_value,omitempty"`
	OtherCharges  *decimal.Decimal `json:"other_charges,omitempty"`
	TaxTotal      *decimal.Decimal `json:"tax_total,omitempty"`
	TaxInclusive  *bool            `json:"tax_inclusive,omitempty"`
}

// PostDocumentRequest identifies the operator posting a document
type PostDocumentRequest struct {
	PostedBy uuid.UUID `json:"posted_by"`
}

// VoidDocumentRequest carries the void confirmation and audit fields.
// Confirm must be explicitly true; voiding is never implicit.
type VoidDocumentRequest struct {
	Confirm  bool      `json:"confirm"`
	Reason   string    `json:"reason"`
	VoidedBy uuid.UUID `json:"voided_by"`
}

// RejectDocumentRequest carries the rejection reason
type RejectDocumentRequest struct {
	Reason string `json:"reason"`
}

// ApproveDocumentRequest identifies the approving operator
type ApproveDocumentRequest struct {
	ApprovedBy uuid.UUID `json:"approved_by"`
}

// ListFilter defines filtering options for document list queries
type ListFilter struct {
	Search   string     `form:"search"`
	Type     string     `form:"type"`
	Status   string     `form:"status"`
	PartyID  *uuid.UUID `form:"party_id"`
	FromDate *time.Time `form:"from_date" time_format:"2006-01-02"`
	ToDate   *time.Time `form:"to_date" time_format:"2006-01-02"`
	Page     int        `form:"page"`
	PageSize int        `form:"page_size"`
}

// LineResponse represents a document line in API responses
type LineResponse struct {
	ID            uuid.UUID       `json:"id"`
	AccountID     uuid.UUID       `json:"account_id"`
	Description   string          `json:"description,omitempty"`
	Quantity      decimal.Decimal `json:"quantity"`
	UnitPrice     decimal.Decimal `json:"unit_price"`
	DiscountType  string          `json:"discount_type"`
	DiscountValue decimal.Decimal `json:"discount_value"`
	Subtotal      decimal.Decimal `json:"subtotal"`
	TaxCode       string          `json:"tax_code,omitempty"`
}

// DocumentResponse represents a document in API responses. Monetary totals
// are rounded half-up to two places at this boundary; stored values keep
// full precision.
type DocumentResponse struct {
	ID               uuid.UUID       `json:"id"`
	Number           string          `json:"number"`
	Type             string          `json:"type"`
	Status           string          `json:"status"`
	DocumentDate     time.Time       `json:"document_date"`
	Currency         string          `json:"currency"`
	Reference        string          `json:"reference,omitempty"`
	Notes            string          `json:"notes,omitempty"`
	CounterAccountID uuid.UUID       `json:"counter_account_id"`
	PartyID          *uuid.UUID      `json:"party_id,omitempty"`
	PartyName        string          `json:"party_name,omitempty"`
	Lines            []LineResponse  `json:"lines"`
	DiscountType     string          `json:"discount_type"`
	DiscountValue    decimal.Decimal `json:"discount_value"`
	Subtotal         decimal.Decimal `json:"subtotal"`
	DiscountAmount   decimal.Decimal `json:"discount_amount"`
	OtherCharges     decimal.Decimal `json:"other_charges"`
	TaxTotal         decimal.Decimal `json:"tax_total"`
	TaxInclusive     bool            `json:"tax_inclusive"`
	GrandTotal       decimal.Decimal `json:"grand_total"`
	LedgerRef        string          `json:"ledger_ref,omitempty"`
	ReversalRef      string          `json:"reversal_ref,omitempty"`
	SubmittedAt      *time.Time      `json:"submitted_at,omitempty"`
	ApprovedAt       *time.Time      `json:"approved_at,omitempty"`
	ApprovedBy       *uuid.UUID      `json:"approved_by,omitempty"`
	PostedAt         *time.Time      `json:"posted_at,omitempty"`
	VoidedAt         *time.Time      `json:"voided_at,omitempty"`
	VoidReason       string          `json:"void_reason,omitempty"`
	CreatedAt        time.Time       `json:"created_at"`
	UpdatedAt        time.Time       `json:"updated_at"`
	Version          int             `json:"version"`
}

// PostResponse carries the outcome of a successful post
type PostResponse struct {
	Document  *DocumentResponse `json:"document"`
	LedgerRef string            `json:"ledger_ref"`
}

// VoidResponse carries the outcome of a successful void
type VoidResponse struct {
	Document    *DocumentResponse `json:"document"`
	ReversalRef string            `json:"reversal_ref"`
}

// LedgerEntryLineResponse represents one account movement in API responses
type LedgerEntryLineResponse struct {
	AccountID uuid.UUID       `json:"account_id"`
	Direction string          `json:"direction"`
	Amount    decimal.Decimal `json:"amount"`
	Memo      string          `json:"memo,omitempty"`
}

// LedgerEntryResponse represents a ledger entry in API responses
type LedgerEntryResponse struct {
	ID              uuid.UUID                 `json:"id"`
	ReferenceNumber string                    `json:"reference_number"`
	DocumentID      uuid.UUID                 `json:"document_id"`
	DocumentNumber  string                    `json:"document_number"`
	Lines           []LedgerEntryLineResponse `json:"lines"`
	Total           decimal.Decimal           `json:"total"`
	Reversal        bool                      `json:"reversal"`
	ReversedEntryID *uuid.UUID                `json:"reversed_entry_id,omitempty"`
	PostedAt        time.Time                 `json:"posted_at"`
}

// ===================== Draft operations =====================

// Create creates a new draft document with a generated number
func (s *Service) Create(ctx context.Context, req CreateDocumentRequest) (*DocumentResponse, error) {
	docType := document.Type(req.Type)
	if !docType.IsValid() {
		return nil, shared.NewValidationError("type", fmt.Sprintf("Unknown document type %q", req.Type))
	}

	number, err := s.docRepo.NextNumber(ctx, docType)
	if err != nil {
		return nil, err
	}

	lines := make([]document.LineInput, 0, len(req.Lines))
	for _, l := range req.Lines {
		lines = append(lines, document.LineInput{
			AccountID:     l.AccountID,
			Description:   l.Description,
			Quantity:      l.Quantity,
			UnitPrice:     l.UnitPrice,
			DiscountType:  lineDiscountType(l.DiscountType),
			DiscountValue: l.DiscountValue,
			TaxCode:       l.TaxCode,
		})
	}

	doc, err := document.NewDocument(docType, number, req.DocumentDate, currencyOrDefault(req.Currency), req.CounterAccountID, req.PartyID, req.PartyName, lines)
	if err != nil {
		return nil, err
	}

	if req.Reference != "" {
		if err := doc.SetReference(req.Reference); err != nil {
			return nil, err
		}
	}
	if req.Notes != "" {
		if err := doc.SetNotes(req.Notes); err != nil {
			return nil, err
		}
	}
	if req.DiscountType != "" || !req.DiscountValue.IsZero() {
		if err := doc.SetHeaderDiscount(lineDiscountType(req.DiscountType), req.DiscountValue); err != nil {
			return nil, err
		}
	}
	if !req.OtherCharges.IsZero() || !req.TaxTotal.IsZero() || req.TaxInclusive {
		if err := doc.SetCharges(req.OtherCharges, req.TaxTotal, req.TaxInclusive); err != nil {
			return nil, err
		}
	}

	if err := s.docRepo.Save(ctx, doc); err != nil {
		return nil, err
	}
	s.publishDomainEvents(ctx, doc)
	if s.metrics != nil {
		s.metrics.RecordDocumentCreated(ctx, doc.Type.String())
	}

	return toDocumentResponse(doc), nil
}

// Get retrieves a document by ID
func (s *Service) Get(ctx context.Context, id uuid.UUID) (*DocumentResponse, error) {
	doc, err := s.docRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return toDocumentResponse(doc), nil
}

// GetByNumber retrieves a document by its human-readable number
func (s *Service) GetByNumber(ctx context.Context, number string) (*DocumentResponse, error) {
	doc, err := s.docRepo.FindByNumber(ctx, number)
	if err != nil {
		return nil, err
	}
	return toDocumentResponse(doc), nil
}

// List retrieves documents with filtering and pagination
func (s *Service) List(ctx context.Context, filter ListFilter) (*shared.Paginated[DocumentResponse], error) {
	domainFilter := toDomainFilter(filter)

	docs, err := s.docRepo.FindAll(ctx, domainFilter)
	if err != nil {
		return nil, err
	}
	total, err := s.docRepo.Count(ctx, domainFilter)
	if err != nil {
		return nil, err
	}

	items := make([]DocumentResponse, 0, len(docs))
	for i := range docs {
		items = append(items, *toDocumentResponse(&docs[i]))
	}
	result := shared.NewPaginated(items, total, domainFilter.Page, domainFilter.PageSize)
	return &result, nil
}

// Update applies header changes to a draft
func (s *Service) Update(ctx context.Context, id uuid.UUID, req UpdateDocumentRequest) (*DocumentResponse, error) {
	doc, err := s.docRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Reference != nil {
		if err := doc.SetReference(*req.Reference); err != nil {
			return nil, err
		}
	}
	if req.Notes != nil {
		if err := doc.SetNotes(*req.Notes); err != nil {
			return nil, err
		}
	}
	if req.DiscountType != nil || req.DiscountValue != nil {
		discountType := doc.DiscountType
		if req.DiscountType != nil {
			discountType = lineDiscountType(*req.DiscountType)
		}
		discountValue := doc.DiscountValue
		if req.DiscountValue != nil {
			discountValue = *req.DiscountValue
		}
		if err := doc.SetHeaderDiscount(discountType, discountValue); err != nil {
			return nil, err
		}
	}
	if req.OtherCharges != nil || req.TaxTotal != nil || req.TaxInclusive != nil {
		otherCharges := doc.OtherCharges
		if req.OtherCharges != nil {
			otherCharges = *req.OtherCharges
		}
		taxTotal := doc.TaxTotal
		if req.TaxTotal != nil {
			taxTotal = *req.TaxTotal
		}
		taxInclusive := doc.TaxInclusive
		if req.TaxInclusive != nil {
			taxInclusive = *req.TaxInclusive
		}
		if err := doc.SetCharges(otherCharges, taxTotal, taxInclusive); err != nil {
			return nil, err
		}
	}

	if err := s.docRepo.SaveWithLock(ctx, doc); err != nil {
		return nil, err
	}
	return toDocumentResponse(doc), nil
}

// AddLine appends a line to a draft
func (s *Service) AddLine(ctx context.Context, id uuid.UUID, req LineRequest) (*DocumentResponse, error) {
	doc, err := s.docRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if _, err := doc.AddLine(document.LineInput{
		AccountID:     req.AccountID,
		Description:   req.Description,
		Quantity:      req.Quantity,
		UnitPrice:     req.UnitPrice,
		DiscountType:  lineDiscountType(req.DiscountType),
		DiscountValue: req.DiscountValue,
		TaxCode:       req.TaxCode,
	}); err != nil {
		return nil, err
	}

	if err := s.docRepo.SaveWithLock(ctx, doc); err != nil {
		return nil, err
	}
	return toDocumentResponse(doc), nil
}

// UpdateLine updates quantity, price and discount of a draft line
func (s *Service) UpdateLine(ctx context.Context, id, lineID uuid.UUID, req LineRequest) (*DocumentResponse, error) {
	doc, err := s.docRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := doc.UpdateLine(lineID, req.Quantity, req.UnitPrice, lineDiscountType(req.DiscountType), req.DiscountValue); err != nil {
		return nil, err
	}

	if err := s.docRepo.SaveWithLock(ctx, doc); err != nil {
		return nil, err
	}
	return toDocumentResponse(doc), nil
}

// RemoveLine removes a line from a draft
func (s *Service) RemoveLine(ctx context.Context, id, lineID uuid.UUID) (*DocumentResponse, error) {
	doc, err := s.docRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := doc.RemoveLine(lineID); err != nil {
		return nil, err
	}

	if err := s.docRepo.SaveWithLock(ctx, doc); err != nil {
		return nil, err
	}
	return toDocumentResponse(doc), nil
}

// Delete removes a draft document entirely. Posted documents can only be
// voided, never deleted.
func (s *Service) Delete(ctx context.Context, id uuid.UUID) error {
	doc, err := s.docRepo.FindByID(ctx, id)
	if err != nil {
		return err
	}

	if err := doc.MarkDeleted(); err != nil {
		return err
	}
	if err := s.docRepo.Delete(ctx, id); err != nil {
		return err
	}
	s.publishDomainEvents(ctx, doc)
	return nil
}

// ===================== Approval chain operations =====================

// Submit moves a draft supplier invoice into verification
func (s *Service) Submit(ctx context.Context, id uuid.UUID) (*DocumentResponse, error) {
	return s.applyTransition(ctx, id, func(doc *document.Document) error {
		return doc.Submit()
	})
}

// Verify marks a submitted supplier invoice as verified
func (s *Service) Verify(ctx context.Context, id uuid.UUID) (*DocumentResponse, error) {
	return s.applyTransition(ctx, id, func(doc *document.Document) error {
		return doc.Verify()
	})
}

// RequestApproval moves a verified supplier invoice to pending approval
func (s *Service) RequestApproval(ctx context.Context, id uuid.UUID) (*DocumentResponse, error) {
	return s.applyTransition(ctx, id, func(doc *document.Document) error {
		return doc.RequestApproval()
	})
}

// Approve approves a pending supplier invoice
func (s *Service) Approve(ctx context.Context, id uuid.UUID, req ApproveDocumentRequest) (*DocumentResponse, error) {
	return s.applyTransition(ctx, id, func(doc *document.Document) error {
		return doc.Approve(req.ApprovedBy)
	})
}

// Reject returns a document in the approval chain to draft
func (s *Service) Reject(ctx context.Context, id uuid.UUID, req RejectDocumentRequest) (*DocumentResponse, error) {
	return s.applyTransition(ctx, id, func(doc *document.Document) error {
		return doc.Reject(req.Reason)
	})
}

// MarkAwaitingPayment moves a posted supplier invoice into the payment queue
func (s *Service) MarkAwaitingPayment(ctx context.Context, id uuid.UUID) (*DocumentResponse, error) {
	return s.applyTransition(ctx, id, func(doc *document.Document) error {
		return doc.MarkAwaitingPayment()
	})
}

// MarkPaid settles a supplier invoice awaiting payment
func (s *Service) MarkPaid(ctx context.Context, id uuid.UUID) (*DocumentResponse, error) {
	return s.applyTransition(ctx, id, func(doc *document.Document) error {
		return doc.MarkPaid()
	})
}

// applyTransition loads, mutates and saves a document with optimistic locking
func (s *Service) applyTransition(ctx context.Context, id uuid.UUID, mutate func(*document.Document) error) (*DocumentResponse, error) {
	doc, err := s.docRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := mutate(doc); err != nil {
		return nil, err
	}
	if err := s.docRepo.SaveWithLock(ctx, doc); err != nil {
		return nil, err
	}
	s.publishDomainEvents(ctx, doc)
	return toDocumentResponse(doc), nil
}

// ===================== Posting operations =====================

// Post validates the document, invokes the posting contract and records the
// ledger reference. The contract is idempotent per document ID: a retried
// post of an already posted document returns the original reference without
// a second ledger effect.
func (s *Service) Post(ctx context.Context, id uuid.UUID, req PostDocumentRequest) (*PostResponse, error) {
	ctx, span := telemetry.StartServiceSpan(ctx, "document", "post",
		telemetry.WithAttribute(telemetry.SpanAttrDocumentID, id.String()))
	defer span.End()

	doc, err := s.docRepo.FindByID(ctx, id)
	if err != nil {
		telemetry.RecordError(span, err)
		return nil, err
	}
	telemetry.SetAttributes(span,
		telemetry.SpanAttrDocumentNumber, doc.Number,
		telemetry.SpanAttrDocumentType, doc.Type.String(),
	)

	// A repeated post of an already posted document short-circuits to the
	// recorded reference.
	if doc.IsPosted() && doc.LedgerRef != "" {
		return &PostResponse{Document: toDocumentResponse(doc), LedgerRef: doc.LedgerRef}, nil
	}

	if err := doc.ValidateForPosting(); err != nil {
		telemetry.RecordError(span, err)
		return nil, err
	}

	start := time.Now()
	result, err := s.posting.Post(ctx, doc.ID, doc.Number, doc.Lines, doc.CounterAccountID, doc.Totals())
	if err != nil {
		telemetry.RecordError(span, err)
		if s.metrics != nil {
			s.metrics.RecordPostingFailed(ctx, doc.Type.String(), time.Since(start))
		}
		// The document stays exactly as it was; the caller may retry after
		// re-querying the status.
		return nil, shared.NewPostingFailedError(fmt.Sprintf("Posting %s failed: %v", doc.Number, err))
	}
	telemetry.SetAttribute(span, telemetry.SpanAttrLedgerRef, result.LedgerReferenceNumber)
	if s.metrics != nil {
		s.metrics.RecordDocumentPosted(ctx, doc.Type.String(), time.Since(start))
	}

	if err := doc.MarkPosted(result.LedgerReferenceNumber, req.PostedBy); err != nil {
		return nil, err
	}
	if err := s.docRepo.SaveWithLock(ctx, doc); err != nil {
		return nil, err
	}
	s.publishDomainEvents(ctx, doc)
	s.markProcessed(ctx, postIdempotencyKey(doc.ID))

	return &PostResponse{Document: toDocumentResponse(doc), LedgerRef: result.LedgerReferenceNumber}, nil
}

// Void reverses a posted document. The caller must set Confirm explicitly;
// a void is never triggered as a side effect of another operation.
func (s *Service) Void(ctx context.Context, id uuid.UUID, req VoidDocumentRequest) (*VoidResponse, error) {
	if !req.Confirm {
		return nil, shared.NewValidationError("confirm", "Voiding requires explicit confirmation")
	}
	if req.Reason == "" {
		return nil, shared.NewValidationError("reason", "Void reason is required")
	}

	doc, err := s.docRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if !doc.Status.CanTransitionTo(doc.Type, document.StatusVoided) {
		return nil, shared.NewInvalidStateError(doc.Status.String(), document.StatusVoided.String(),
			fmt.Sprintf("Cannot void document in %s status", doc.Status))
	}

	result, err := s.posting.Void(ctx, doc.ID)
	if err != nil {
		return nil, shared.NewPostingFailedError(fmt.Sprintf("Voiding %s failed: %v", doc.Number, err))
	}
	if s.metrics != nil {
		s.metrics.RecordDocumentVoided(ctx, doc.Type.String())
	}

	if err := doc.MarkVoided(result.ReversalReferenceNumber, req.VoidedBy, req.Reason); err != nil {
		return nil, err
	}
	if err := s.docRepo.SaveWithLock(ctx, doc); err != nil {
		return nil, err
	}
	s.publishDomainEvents(ctx, doc)

	return &VoidResponse{Document: toDocumentResponse(doc), ReversalRef: result.ReversalReferenceNumber}, nil
}

// GetLedgerEntry returns the original ledger entry for a posted document
func (s *Service) GetLedgerEntry(ctx context.Context, id uuid.UUID) (*LedgerEntryResponse, error) {
	entry, err := s.entryRepo.FindByDocumentID(ctx, id)
	if err != nil {
		return nil, err
	}
	return toLedgerEntryResponse(entry), nil
}

// GetReversalEntry returns the reversing entry for a voided document
func (s *Service) GetReversalEntry(ctx context.Context, id uuid.UUID) (*LedgerEntryResponse, error) {
	entry, err := s.entryRepo.FindReversalByDocumentID(ctx, id)
	if err != nil {
		return nil, err
	}
	return toLedgerEntryResponse(entry), nil
}

// ===================== Helpers =====================

func (s *Service) publishDomainEvents(ctx context.Context, doc *document.Document) {
	if s.events == nil {
		return
	}
	events := doc.GetDomainEvents()
	if len(events) == 0 {
		return
	}
	// Errors are logged by the event bus, not propagated
	_ = s.events.Publish(ctx, events...)
	doc.ClearDomainEvents()
}

func (s *Service) markProcessed(ctx context.Context, key string) {
	if s.idempotency == nil || !s.idemConfig.Enabled {
		return
	}
	_, _ = s.idempotency.MarkProcessed(ctx, key, s.idemConfig.TTL)
}

func postIdempotencyKey(id uuid.UUID) string {
	return "document:post:" + id.String()
}

func lineDiscountType(raw string) document.DiscountType {
	if raw == "" {
		return document.DiscountAmount
	}
	return document.DiscountType(raw)
}

func currencyOrDefault(raw string) valueobject.Currency {
	if raw == "" {
		return valueobject.DefaultCurrency
	}
	return valueobject.Currency(raw)
}

func toDomainFilter(filter ListFilter) document.Filter {
	domainFilter := document.Filter{Filter: shared.DefaultFilter()}
	domainFilter.Search = filter.Search
	if filter.Page > 0 {
		domainFilter.Page = filter.Page
	}
	if filter.PageSize > 0 {
		domainFilter.PageSize = filter.PageSize
	}
	if filter.Type != "" {
		docType := document.Type(filter.Type)
		domainFilter.Type = &docType
	}
	if filter.Status != "" {
		status := document.Status(filter.Status)
		domainFilter.Status = &status
	}
	domainFilter.PartyID = filter.PartyID
	domainFilter.FromDate = filter.FromDate
	domainFilter.ToDate = filter.ToDate
	return domainFilter
}

func toDocumentResponse(doc *document.Document) *DocumentResponse {
	lines := make([]LineResponse, 0, len(doc.Lines))
	for _, line := range doc.Lines {
		lines = append(lines, LineResponse{
			ID:            line.ID,
			AccountID:     line.AccountID,
			Description:   line.Description,
			Quantity:      line.Quantity,
			UnitPrice:     line.UnitPrice,
			DiscountType:  line.DiscountType.String(),
			DiscountValue: line.DiscountValue,
			Subtotal:      line.Subtotal.Round(2),
			TaxCode:       line.TaxCode,
		})
	}

	totals := doc.Totals().Rounded()
	return &DocumentResponse{
		ID:               doc.ID,
		Number:           doc.Number,
		Type:             doc.Type.String(),
		Status:           doc.Status.String(),
		DocumentDate:     doc.DocumentDate,
		Currency:         string(doc.Currency),
		Reference:        doc.Reference,
		Notes:            doc.Notes,
		CounterAccountID: doc.CounterAccountID,
		PartyID:          doc.PartyID,
		PartyName:        doc.PartyName,
		Lines:            lines,
		DiscountType:     doc.DiscountType.String(),
		DiscountValue:    doc.DiscountValue,
		Subtotal:         totals.Subtotal,
		DiscountAmount:   totals.DiscountAmount,
		OtherCharges:     totals.OtherCharges,
		TaxTotal:         totals.TaxTotal,
		TaxInclusive:     totals.TaxInclusive,
		GrandTotal:       totals.GrandTotal,
		LedgerRef:        doc.LedgerRef,
		ReversalRef:      doc.ReversalRef,
		SubmittedAt:      doc.SubmittedAt,
		ApprovedAt:       doc.ApprovedAt,
		ApprovedBy:       doc.ApprovedBy,
		PostedAt:         doc.PostedAt,
		VoidedAt:         doc.VoidedAt,
		VoidReason:       doc.VoidReason,
		CreatedAt:        doc.CreatedAt,
		UpdatedAt:        doc.UpdatedAt,
		Version:          doc.Version,
	}
}

func toLedgerEntryResponse(entry *ledger.Entry) *LedgerEntryResponse {
	lines := make([]LedgerEntryLineResponse, 0, len(entry.Lines))
	for _, line := range entry.Lines {
		lines = append(lines, LedgerEntryLineResponse{
			AccountID: line.AccountID,
			Direction: string(line.Direction),
			Amount:    line.Amount,
			Memo:      line.Memo,
		})
	}
	return &LedgerEntryResponse{
		ID:              entry.ID,
		ReferenceNumber: entry.ReferenceNumber,
		DocumentID:      entry.DocumentID,
		DocumentNumber:  entry.DocumentNumber,
		Lines:           lines,
		Total:           entry.Total,
		Reversal:        entry.Reversal,
		ReversedEntryID: entry.ReversedEntryID,
		PostedAt:        entry.PostedAt,
	}
}
