package handler

import (
	"context"
	"time"

	docapp "github.com/findoc/backend/internal/application/document"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// DocumentHandler handles financial document API endpoints
type DocumentHandler struct {
	BaseHandler
	service *docapp.Service
}

// NewDocumentHandler creates a new DocumentHandler
func NewDocumentHandler(service *docapp.Service) *DocumentHandler {
	return &DocumentHandler{
		service: service,
	}
}

// DocumentLineInput represents one line in create and line requests
// @Description Document line input
type DocumentLineInput struct {
	AccountID     string          `json:"account_id" binding:"required,uuid" example:"550e8400-e29b-41d4-a716-446655440002"`
	Description   string          `json:"description" binding:"max=200" example:"Office supplies"`
	Quantity      decimal.Decimal `json:"quantity" example:"10"`
	UnitPrice     decimal.Decimal `json:"unit_price" example:"150000"`
	DiscountType  string          `json:"discount_type" binding:"omitempty,oneof=PERCENT AMOUNT" example:"PERCENT"`
	DiscountValue decimal.Decimal `json:"discount_value" example:"5"`
	TaxCode       string          `json:"tax_code" binding:"max=20" example:"PPN11"`
}

// CreateDocumentRequest represents a request to create a new draft document
// @Description Request body for creating a new financial document
type CreateDocumentRequest struct {
	Type             string              `json:"type" binding:"required" example:"SUPPLIER_INVOICE"`
	DocumentDate     time.Time           `json:"document_date" binding:"required" example:"2026-08-01T00:00:00Z"`
	Currency         string              `json:"currency" binding:"omitempty,len=3" example:"IDR"`
	Reference        string              `json:"reference" binding:"max=100" example:"INV/2026/0812"`
	Notes            string              `json:"notes" binding:"max=1000"`
	CounterAccountID string              `json:"counter_account_id" binding:"required,uuid" example:"550e8400-e29b-41d4-a716-446655440001"`
	PartyID          *string             `json:"party_id" binding:"omitempty,uuid"`
	PartyName        string              `json:"party_name" binding:"max=200" example:"PT Sumber Makmur"`
	Lines            []DocumentLineInput `json:"lines"`
	DiscountType     string              `json:"discount_type" binding:"omitempty,oneof=PERCENT AMOUNT"`
	DiscountValue    decimal.Decimal     `json:"discount_value"`
	OtherCharges     decimal.Decimal     `json:"other_charges"`
	TaxTotal         decimal.Decimal     `json:"tax_total"`
	TaxInclusive     bool                `json:"tax_inclusive"`
}

// UpdateDocumentRequest represents a request to update a draft document header
// @Description Request body for updating a draft document (nil fields unchanged)
type UpdateDocumentRequest struct {
	Reference     *string          `json:"reference" binding:"omitempty,max=100"`
	Notes         *string          `json:"notes" binding:"omitempty,max=1000"`
	DiscountType  *string          `json:"discount_type" binding:"omitempty,oneof=PERCENT AMOUNT"`
	DiscountValue *decimal.Decimal `json:"discount_value"`
	OtherCharges  *decimal.Decimal `json:"other_charges"`
	TaxTotal      *decimal.Decimal `json:"tax_total"`
	TaxInclusive  *bool            `json:"tax_inclusive"`
}

// PostDocumentRequest represents a request to post a document to the ledger
// @Description Request body for posting a document
type PostDocumentRequest struct {
	PostedBy string `json:"posted_by" binding:"required,uuid"`
}

// VoidDocumentRequest represents a request to void a posted document
// @Description Request body for voiding a posted document
type VoidDocumentRequest struct {
	Confirm  bool   `json:"confirm"`
	Reason   string `json:"reason" binding:"required,min=1,max=500" example:"Duplicate entry"`
	VoidedBy string `json:"voided_by" binding:"required,uuid"`
}

// ApproveDocumentRequest represents a request to approve a supplier invoice
// @Description Request body for approving a document
type ApproveDocumentRequest struct {
	ApprovedBy string `json:"approved_by" binding:"required,uuid"`
}

// RejectDocumentRequest represents a request to reject a supplier invoice
// @Description Request body for rejecting a document back to draft
type RejectDocumentRequest struct {
	Reason string `json:"reason" binding:"required,min=1,max=500" example:"Amount disagrees with delivery note"`
}

// toLineRequest converts an HTTP line input to the application DTO
func toLineRequest(in DocumentLineInput) (docapp.LineRequest, error) {
	accountID, err := uuid.Parse(in.AccountID)
	if err != nil {
		return docapp.LineRequest{}, err
	}
	return docapp.LineRequest{
		AccountID:     accountID,
		Description:   in.Description,
		Quantity:      in.Quantity,
		UnitPrice:     in.UnitPrice,
		DiscountType:  in.DiscountType,
		DiscountValue: in.DiscountValue,
		TaxCode:       in.TaxCode,
	}, nil
}

// Create godoc
// @ID           createDocument
// @Summary      Create a new financial document
// @Description  Create a new draft document with optional lines
// @Tags         documents
// @Accept       json
// @Produce      json
// @Param        request body CreateDocumentRequest true "Document creation request"
// @Success      201 {object} APIResponse[docapp.DocumentResponse]
// @Failure      400 {object} ErrorResponse
// @Failure      422 {object} ErrorResponse
// @Router       /documents [post]
func (h *DocumentHandler) Create(c *gin.Context) {
	var req CreateDocumentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	counterAccountID, err := uuid.Parse(req.CounterAccountID)
	if err != nil {
		h.BadRequest(c, "Invalid counter account ID format")
		return
	}

	appReq := docapp.CreateDocumentRequest{
		Type:             req.Type,
		DocumentDate:     req.DocumentDate,
		Currency:         req.Currency,
		Reference:        req.Reference,
		Notes:            req.Notes,
		CounterAccountID: counterAccountID,
		PartyName:        req.PartyName,
		DiscountType:     req.DiscountType,
		DiscountValue:    req.DiscountValue,
		OtherCharges:     req.OtherCharges,
		TaxTotal:         req.TaxTotal,
		TaxInclusive:     req.TaxInclusive,
	}

	if req.PartyID != nil && *req.PartyID != "" {
		partyID, err := uuid.Parse(*req.PartyID)
		if err != nil {
			h.BadRequest(c, "Invalid party ID format")
			return
		}
		appReq.PartyID = &partyID
	}

	for _, line := range req.Lines {
		lineReq, err := toLineRequest(line)
		if err != nil {
			h.BadRequest(c, "Invalid account ID format")
			return
		}
		appReq.Lines = append(appReq.Lines, lineReq)
	}

	doc, err := h.service.Create(c.Request.Context(), appReq)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, doc)
}

// GetByID godoc
// @ID           getDocumentById
// @Summary      Get document by ID
// @Description  Retrieve a document with its lines and computed totals
// @Tags         documents
// @Produce      json
// @Param        id path string true "Document ID" format(uuid)
// @Success      200 {object} APIResponse[docapp.DocumentResponse]
// @Failure      400 {object} ErrorResponse
// @Failure      404 {object} ErrorResponse
// @Router       /documents/{id} [get]
func (h *DocumentHandler) GetByID(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid document ID format")
		return
	}

	doc, err := h.service.Get(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, doc)
}

// GetByNumber godoc
// @ID           getDocumentByNumber
// @Summary      Get document by number
// @Description  Retrieve a document by its human-readable number
// @Tags         documents
// @Produce      json
// @Param        number path string true "Document number" example:"SINV-2026-00042"
// @Success      200 {object} APIResponse[docapp.DocumentResponse]
// @Failure      400 {object} ErrorResponse
// @Failure      404 {object} ErrorResponse
// @Router       /documents/number/{number} [get]
func (h *DocumentHandler) GetByNumber(c *gin.Context) {
	number := c.Param("number")
	if number == "" {
		h.BadRequest(c, "Document number is required")
		return
	}

	doc, err := h.service.GetByNumber(c.Request.Context(), number)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, doc)
}

// List godoc
// @ID           listDocuments
// @Summary      List documents
// @Description  Retrieve a paginated list of documents with optional filtering
// @Tags         documents
// @Produce      json
// @Param        search query string false "Search term (number, reference, party name)"
// @Param        type query string false "Document type" Enums(OPENING_BALANCE, FUND_TRANSFER, PURCHASE_ORDER, QUOTATION, SUPPLIER_INVOICE)
// @Param        status query string false "Document status"
// @Param        party_id query string false "Party ID" format(uuid)
// @Param        from_date query string false "Start of document date range" format(date)
// @Param        to_date query string false "End of document date range" format(date)
// @Param        page query int false "Page number" default(1)
// @Param        page_size query int false "Page size" default(20) maximum(100)
// @Success      200 {object} APIResponse[[]docapp.DocumentResponse]
// @Failure      400 {object} ErrorResponse
// @Router       /documents [get]
func (h *DocumentHandler) List(c *gin.Context) {
	var filter docapp.ListFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	result, err := h.service.List(c.Request.Context(), filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.SuccessWithMeta(c, result.Items, result.Total, result.Page, result.PageSize)
}

// Update godoc
// @ID           updateDocument
// @Summary      Update a draft document
// @Description  Update header fields of a draft document
// @Tags         documents
// @Accept       json
// @Produce      json
// @Param        id path string true "Document ID" format(uuid)
// @Param        request body UpdateDocumentRequest true "Document update request"
// @Success      200 {object} APIResponse[docapp.DocumentResponse]
// @Failure      400 {object} ErrorResponse
// @Failure      404 {object} ErrorResponse
// @Failure      422 {object} ErrorResponse
// @Router       /documents/{id} [put]
func (h *DocumentHandler) Update(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid document ID format")
		return
	}

	var req UpdateDocumentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	doc, err := h.service.Update(c.Request.Context(), id, docapp.UpdateDocumentRequest{
		Reference:     req.Reference,
		Notes:         req.Notes,
		DiscountType:  req.DiscountType,
		DiscountValue: req.DiscountValue,
		OtherCharges:  req.OtherCharges,
		TaxTotal:      req.TaxTotal,
		TaxInclusive:  req.TaxInclusive,
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, doc)
}

// Delete godoc
// @ID           deleteDocument
// @Summary      Delete a draft document
// @Description  Delete a draft document. Posted documents must be voided instead.
// @Tags         documents
// @Produce      json
// @Param        id path string true "Document ID" format(uuid)
// @Success      204
// @Failure      400 {object} ErrorResponse
// @Failure      404 {object} ErrorResponse
// @Failure      422 {object} ErrorResponse
// @Router       /documents/{id} [delete]
func (h *DocumentHandler) Delete(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid document ID format")
		return
	}

	if err := h.service.Delete(c.Request.Context(), id); err != nil {
		h.HandleError(c, err)
		return
	}

	h.NoContent(c)
}

// AddLine godoc
// @ID           addDocumentLine
// @Summary      Add a line to a draft document
// @Tags         documents
// @Accept       json
// @Produce      json
// @Param        id path string true "Document ID" format(uuid)
// @Param        request body DocumentLineInput true "Line input"
// @Success      200 {object} APIResponse[docapp.DocumentResponse]
// @Failure      400 {object} ErrorResponse
// @Failure      404 {object} ErrorResponse
// @Failure      422 {object} ErrorResponse
// @Router       /documents/{id}/lines [post]
func (h *DocumentHandler) AddLine(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid document ID format")
		return
	}

	var req DocumentLineInput
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	lineReq, err := toLineRequest(req)
	if err != nil {
		h.BadRequest(c, "Invalid account ID format")
		return
	}

	doc, err := h.service.AddLine(c.Request.Context(), id, lineReq)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, doc)
}

// UpdateLine godoc
// @ID           updateDocumentLine
// @Summary      Update a line on a draft document
// @Tags         documents
// @Accept       json
// @Produce      json
// @Param        id path string true "Document ID" format(uuid)
// @Param        line_id path string true "Line ID" format(uuid)
// @Param        request body DocumentLineInput true "Line input"
// @Success      200 {object} APIResponse[docapp.DocumentResponse]
// @Failure      400 {object} ErrorResponse
// @Failure      404 {object} ErrorResponse
// @Failure      422 {object} ErrorResponse
// @Router       /documents/{id}/lines/{line_id} [put]
func (h *DocumentHandler) UpdateLine(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid document ID format")
		return
	}

	lineID, err := uuid.Parse(c.Param("line_id"))
	if err != nil {
		h.BadRequest(c, "Invalid line ID format")
		return
	}

	var req DocumentLineInput
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	lineReq, err := toLineRequest(req)
	if err != nil {
		h.BadRequest(c, "Invalid account ID format")
		return
	}

	doc, err := h.service.UpdateLine(c.Request.Context(), id, lineID, lineReq)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, doc)
}

// RemoveLine godoc
// @ID           removeDocumentLine
// @Summary      Remove a line from a draft document
// @Tags         documents
// @Produce      json
// @Param        id path string true "Document ID" format(uuid)
// @Param        line_id path string true "Line ID" format(uuid)
// @Success      200 {object} APIResponse[docapp.DocumentResponse]
// @Failure      400 {object} ErrorResponse
// @Failure      404 {object} ErrorResponse
// @Failure      422 {object} ErrorResponse
// @Router       /documents/{id}/lines/{line_id} [delete]
func (h *DocumentHandler) RemoveLine(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid document ID format")
		return
	}

	lineID, err := uuid.Parse(c.Param("line_id"))
	if err != nil {
		h.BadRequest(c, "Invalid line ID format")
		return
	}

	doc, err := h.service.RemoveLine(c.Request.Context(), id, lineID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, doc)
}

// Submit godoc
// @ID           submitDocument
// @Summary      Submit a draft supplier invoice for verification
// @Tags         documents
// @Produce      json
// @Param        id path string true "Document ID" format(uuid)
// @Success      200 {object} APIResponse[docapp.DocumentResponse]
// @Failure      400 {object} ErrorResponse
// @Failure      404 {object} ErrorResponse
// @Failure      422 {object} ErrorResponse
// @Router       /documents/{id}/submit [post]
func (h *DocumentHandler) Submit(c *gin.Context) {
	h.transition(c, h.service.Submit)
}

// Verify godoc
// @ID           verifyDocument
// @Summary      Mark a supplier invoice as verified
// @Tags         documents
// @Produce      json
// @Param        id path string true "Document ID" format(uuid)
// @Success      200 {object} APIResponse[docapp.DocumentResponse]
// @Failure      400 {object} ErrorResponse
// @Failure      404 {object} ErrorResponse
// @Failure      422 {object} ErrorResponse
// @Router       /documents/{id}/verify [post]
func (h *DocumentHandler) Verify(c *gin.Context) {
	h.transition(c, h.service.Verify)
}

// RequestApproval godoc
// @ID           requestDocumentApproval
// @Summary      Move a verified supplier invoice into approval
// @Tags         documents
// @Produce      json
// @Param        id path string true "Document ID" format(uuid)
// @Success      200 {object} APIResponse[docapp.DocumentResponse]
// @Failure      400 {object} ErrorResponse
// @Failure      404 {object} ErrorResponse
// @Failure      422 {object} ErrorResponse
// @Router       /documents/{id}/request-approval [post]
func (h *DocumentHandler) RequestApproval(c *gin.Context) {
	h.transition(c, h.service.RequestApproval)
}

// MarkAwaitingPayment godoc
// @ID           markDocumentAwaitingPayment
// @Summary      Move a posted supplier invoice into the payment queue
// @Tags         documents
// @Produce      json
// @Param        id path string true "Document ID" format(uuid)
// @Success      200 {object} APIResponse[docapp.DocumentResponse]
// @Failure      400 {object} ErrorResponse
// @Failure      404 {object} ErrorResponse
// @Failure      422 {object} ErrorResponse
// @Router       /documents/{id}/await-payment [post]
func (h *DocumentHandler) MarkAwaitingPayment(c *gin.Context) {
	h.transition(c, h.service.MarkAwaitingPayment)
}

// MarkPaid godoc
// @ID           markDocumentPaid
// @Summary      Mark a supplier invoice as paid
// @Tags         documents
// @Produce      json
// @Param        id path string true "Document ID" format(uuid)
// @Success      200 {object} APIResponse[docapp.DocumentResponse]
// @Failure      400 {object} ErrorResponse
// @Failure      404 {object} ErrorResponse
// @Failure      422 {object} ErrorResponse
// @Router       /documents/{id}/pay [post]
func (h *DocumentHandler) MarkPaid(c *gin.Context) {
	h.transition(c, h.service.MarkPaid)
}

// transition runs a body-less lifecycle transition keyed by the path ID
func (h *DocumentHandler) transition(c *gin.Context, op func(ctx context.Context, id uuid.UUID) (*docapp.DocumentResponse, error)) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid document ID format")
		return
	}

	doc, err := op(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, doc)
}

// Approve godoc
// @ID           approveDocument
// @Summary      Approve a supplier invoice
// @Tags         documents
// @Accept       json
// @Produce      json
// @Param        id path string true "Document ID" format(uuid)
// @Param        request body ApproveDocumentRequest true "Approval request"
// @Success      200 {object} APIResponse[docapp.DocumentResponse]
// @Failure      400 {object} ErrorResponse
// @Failure      404 {object} ErrorResponse
// @Failure      422 {object} ErrorResponse
// @Router       /documents/{id}/approve [post]
func (h *DocumentHandler) Approve(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid document ID format")
		return
	}

	var req ApproveDocumentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	approvedBy, err := uuid.Parse(req.ApprovedBy)
	if err != nil {
		h.BadRequest(c, "Invalid approver ID format")
		return
	}

	doc, err := h.service.Approve(c.Request.Context(), id, docapp.ApproveDocumentRequest{
		ApprovedBy: approvedBy,
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, doc)
}

// Reject godoc
// @ID           rejectDocument
// @Summary      Reject a supplier invoice back to draft
// @Tags         documents
// @Accept       json
// @Produce      json
// @Param        id path string true "Document ID" format(uuid)
// @Param        request body RejectDocumentRequest true "Rejection request"
// @Success      200 {object} APIResponse[docapp.DocumentResponse]
// @Failure      400 {object} ErrorResponse
// @Failure      404 {object} ErrorResponse
// @Failure      422 {object} ErrorResponse
// @Router       /documents/{id}/reject [post]
func (h *DocumentHandler) Reject(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid document ID format")
		return
	}

	var req RejectDocumentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	doc, err := h.service.Reject(c.Request.Context(), id, docapp.RejectDocumentRequest{
		Reason: req.Reason,
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, doc)
}

// Post godoc
// @ID           postDocument
// @Summary      Post a document to the ledger
// @Description  Post a document, producing a balanced ledger entry. Posting is idempotent; retries return the existing ledger reference.
// @Tags         documents
// @Accept       json
// @Produce      json
// @Param        id path string true "Document ID" format(uuid)
// @Param        request body PostDocumentRequest true "Posting request"
// @Success      200 {object} APIResponse[docapp.PostResponse]
// @Failure      400 {object} ErrorResponse
// @Failure      404 {object} ErrorResponse
// @Failure      422 {object} ErrorResponse
// @Failure      502 {object} ErrorResponse
// @Router       /documents/{id}/post [post]
func (h *DocumentHandler) Post(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid document ID format")
		return
	}

	var req PostDocumentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	postedBy, err := uuid.Parse(req.PostedBy)
	if err != nil {
		h.BadRequest(c, "Invalid poster ID format")
		return
	}

	result, err := h.service.Post(c.Request.Context(), id, docapp.PostDocumentRequest{
		PostedBy: postedBy,
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, result)
}

// Void godoc
// @ID           voidDocument
// @Summary      Void a posted document
// @Description  Void a posted document by writing a reversing ledger entry. Requires explicit confirmation.
// @Tags         documents
// @Accept       json
// @Produce      json
// @Param        id path string true "Document ID" format(uuid)
// @Param        request body VoidDocumentRequest true "Void request"
// @Success      200 {object} APIResponse[docapp.VoidResponse]
// @Failure      400 {object} ErrorResponse
// @Failure      404 {object} ErrorResponse
// @Failure      422 {object} ErrorResponse
// @Failure      502 {object} ErrorResponse
// @Router       /documents/{id}/void [post]
func (h *DocumentHandler) Void(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid document ID format")
		return
	}

	var req VoidDocumentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	voidedBy, err := uuid.Parse(req.VoidedBy)
	if err != nil {
		h.BadRequest(c, "Invalid voider ID format")
		return
	}

	result, err := h.service.Void(c.Request.Context(), id, docapp.VoidDocumentRequest{
		Confirm:  req.Confirm,
		Reason:   req.Reason,
		VoidedBy: voidedBy,
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, result)
}

// GetLedgerEntry godoc
// @ID           getDocumentLedgerEntry
// @Summary      Get the ledger entry produced by posting a document
// @Tags         documents
// @Produce      json
// @Param        id path string true "Document ID" format(uuid)
// @Success      200 {object} APIResponse[docapp.LedgerEntryResponse]
// @Failure      400 {object} ErrorResponse
// @Failure      404 {object} ErrorResponse
// @Router       /documents/{id}/ledger-entry [get]
func (h *DocumentHandler) GetLedgerEntry(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid document ID format")
		return
	}

	entry, err := h.service.GetLedgerEntry(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, entry)
}

// GetReversalEntry godoc
// @ID           getDocumentReversalEntry
// @Summary      Get the reversing ledger entry produced by voiding a document
// @Tags         documents
// @Produce      json
// @Param        id path string true "Document ID" format(uuid)
// @Success      200 {object} APIResponse[docapp.LedgerEntryResponse]
// @Failure      400 {object} ErrorResponse
// @Failure      404 {object} ErrorResponse
// @Router       /documents/{id}/reversal-entry [get]
func (h *DocumentHandler) GetReversalEntry(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid document ID format")
		return
	}

	entry, err := h.service.GetReversalEntry(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, entry)
}
