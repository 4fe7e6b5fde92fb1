package document

import (
	"errors"
	"testing"
	"time"

	"github.com/findoc/backend/internal/domain/shared"
	"github.com/findoc/backend/internal/domain/shared/valueobject"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func assertValidationField(t *testing.T, err error, field string) {
	t.Helper()
	var domainErr *shared.DomainError
	require.True(t, errors.As(err, &domainErr), "expected a domain error, got %T", err)
	assert.Equal(t, "VALIDATION_ERROR", domainErr.Code)
	assert.Equal(t, field, domainErr.Field)
}

func assertInvalidState(t *testing.T, err error, current, requested Status) {
	t.Helper()
	var domainErr *shared.DomainError
	require.True(t, errors.As(err, &domainErr), "expected a domain error, got %T", err)
	assert.Equal(t, "INVALID_STATE", domainErr.Code)
	assert.Equal(t, current.String(), domainErr.Details["current_status"])
	assert.Equal(t, requested.String(), domainErr.Details["requested_status"])
}

func createTestDocument(t *testing.T, docType Type) *Document {
	t.Helper()
	var partyID *uuid.UUID
	partyName := ""
	if docType.RequiresParty() {
		id := uuid.New()
		partyID = &id
		partyName = "PT Sumber Makmur"
	}
	doc, err := NewDocument(docType, docType.NumberPrefix()+"-0001", time.Now(), valueobject.IDR, uuid.New(), partyID, partyName, []LineInput{
		{AccountID: uuid.New(), Description: "first line", Quantity: d("10"), UnitPrice: d("1000"), DiscountType: DiscountPercent, DiscountValue: d("10")},
	})
	require.NoError(t, err)
	return doc
}

func postTestDocument(t *testing.T, doc *Document) {
	t.Helper()
	if doc.Type.HasApprovalChain() {
		require.NoError(t, doc.Submit())
		require.NoError(t, doc.Verify())
		require.NoError(t, doc.RequestApproval())
		require.NoError(t, doc.Approve(uuid.New()))
	}
	require.NoError(t, doc.MarkPosted("GL-0001", uuid.New()))
}

func TestNewDocument(t *testing.T) {
	t.Run("creates fund transfer in draft with derived totals", func(t *testing.T) {
		doc := createTestDocument(t, TypeFundTransfer)

		assert.Equal(t, StatusDraft, doc.Status)
		assert.Equal(t, 1, doc.LineCount())
		assert.True(t, d("9000").Equal(doc.Subtotal))
		assert.True(t, d("9000").Equal(doc.GrandTotal))
		assert.Equal(t, 1, doc.Version)
		require.Len(t, doc.GetDomainEvents(), 1)
		assert.Equal(t, "DocumentCreated", doc.GetDomainEvents()[0].EventType())
	})

	t.Run("fails with invalid type", func(t *testing.T) {
		_, err := NewDocument(Type("MEMO"), "X-0001", time.Now(), valueobject.IDR, uuid.New(), nil, "", []LineInput{
			{AccountID: uuid.New(), Quantity: d("1"), UnitPrice: d("1"), DiscountType: DiscountAmount, DiscountValue: d("0")},
		})
		require.Error(t, err)
		assertValidationField(t, err, "type")
	})

	t.Run("fails with empty number", func(t *testing.T) {
		_, err := NewDocument(TypeFundTransfer, "", time.Now(), valueobject.IDR, uuid.New(), nil, "", []LineInput{
			{AccountID: uuid.New(), Quantity: d("1"), UnitPrice: d("1"), DiscountType: DiscountAmount, DiscountValue: d("0")},
		})
		require.Error(t, err)
		assertValidationField(t, err, "number")
	})

	t.Run("fails with zero document date", func(t *testing.T) {
		_, err := NewDocument(TypeFundTransfer, "TRF-0001", time.Time{}, valueobject.IDR, uuid.New(), nil, "", []LineInput{
			{AccountID: uuid.New(), Quantity: d("1"), UnitPrice: d("1"), DiscountType: DiscountAmount, DiscountValue: d("0")},
		})
		require.Error(t, err)
		assertValidationField(t, err, "document_date")
	})

	t.Run("fails with missing counter account", func(t *testing.T) {
		_, err := NewDocument(TypeFundTransfer, "TRF-0001", time.Now(), valueobject.IDR, uuid.Nil, nil, "", []LineInput{
			{AccountID: uuid.New(), Quantity: d("1"), UnitPrice: d("1"), DiscountType: DiscountAmount, DiscountValue: d("0")},
		})
		require.Error(t, err)
		assertValidationField(t, err, "counter_account_id")
	})

	t.Run("fails when party-bound type has no party", func(t *testing.T) {
		_, err := NewDocument(TypeSupplierInvoice, "SINV-0001", time.Now(), valueobject.IDR, uuid.New(), nil, "", []LineInput{
			{AccountID: uuid.New(), Quantity: d("1"), UnitPrice: d("1"), DiscountType: DiscountAmount, DiscountValue: d("0")},
		})
		require.Error(t, err)
		assertValidationField(t, err, "party_id")
	})

	t.Run("fails without lines", func(t *testing.T) {
		_, err := NewDocument(TypeFundTransfer, "TRF-0001", time.Now(), valueobject.IDR, uuid.New(), nil, "", nil)
		require.Error(t, err)
		assertValidationField(t, err, "lines")
	})

	t.Run("fails when a line is invalid", func(t *testing.T) {
		_, err := NewDocument(TypeFundTransfer, "TRF-0001", time.Now(), valueobject.IDR, uuid.New(), nil, "", []LineInput{
			{AccountID: uuid.New(), Quantity: d("0"), UnitPrice: d("1"), DiscountType: DiscountAmount, DiscountValue: d("0")},
		})
		require.Error(t, err)
		assertValidationField(t, err, "quantity")
	})
}

func TestDocumentLineMutations(t *testing.T) {
	t.Run("add line recomputes totals", func(t *testing.T) {
		doc := createTestDocument(t, TypeFundTransfer)

		_, err := doc.AddLine(LineInput{AccountID: uuid.New(), Description: "second", Quantity: d("5"), UnitPrice: d("1000"), DiscountType: DiscountAmount, DiscountValue: d("0")})
		require.NoError(t, err)

		assert.Equal(t, 2, doc.LineCount())
		assert.True(t, d("14000").Equal(doc.Subtotal))
		assert.Equal(t, 2, doc.Version)
	})

	t.Run("update line recomputes totals", func(t *testing.T) {
		doc := createTestDocument(t, TypeFundTransfer)
		lineID := doc.Lines[0].ID

		err := doc.UpdateLine(lineID, d("2"), d("1000"), DiscountAmount, d("0"))
		require.NoError(t, err)
		assert.True(t, d("2000").Equal(doc.Subtotal))
	})

	t.Run("update unknown line fails", func(t *testing.T) {
		doc := createTestDocument(t, TypeFundTransfer)

		err := doc.UpdateLine(uuid.New(), d("2"), d("1000"), DiscountAmount, d("0"))
		require.Error(t, err)
		var domainErr *shared.DomainError
		require.True(t, errors.As(err, &domainErr))
		assert.Equal(t, "LINE_NOT_FOUND", domainErr.Code)
	})

	t.Run("cannot remove the last line", func(t *testing.T) {
		doc := createTestDocument(t, TypeFundTransfer)

		err := doc.RemoveLine(doc.Lines[0].ID)
		require.Error(t, err)
		assertValidationField(t, err, "lines")
		assert.Equal(t, 1, doc.LineCount())
	})

	t.Run("remove line recomputes totals", func(t *testing.T) {
		doc := createTestDocument(t, TypeFundTransfer)
		added, err := doc.AddLine(LineInput{AccountID: uuid.New(), Quantity: d("5"), UnitPrice: d("1000"), DiscountType: DiscountAmount, DiscountValue: d("0")})
		require.NoError(t, err)

		require.NoError(t, doc.RemoveLine(added.ID))
		assert.Equal(t, 1, doc.LineCount())
		assert.True(t, d("9000").Equal(doc.Subtotal))
	})

	t.Run("mutations blocked after posting", func(t *testing.T) {
		doc := createTestDocument(t, TypeFundTransfer)
		postTestDocument(t, doc)

		_, err := doc.AddLine(LineInput{AccountID: uuid.New(), Quantity: d("1"), UnitPrice: d("1"), DiscountType: DiscountAmount, DiscountValue: d("0")})
		require.Error(t, err)
		var domainErr *shared.DomainError
		require.True(t, errors.As(err, &domainErr))
		assert.Equal(t, "INVALID_STATE", domainErr.Code)
		assert.Equal(t, 1, doc.LineCount())
	})
}

func TestDocumentHeaderMutations(t *testing.T) {
	t.Run("header discount applies after line discounts", func(t *testing.T) {
		doc := createTestDocument(t, TypeFundTransfer)
		_, err := doc.AddLine(LineInput{AccountID: uuid.New(), Quantity: d("5"), UnitPrice: d("1000"), DiscountType: DiscountAmount, DiscountValue: d("0")})
		require.NoError(t, err)

		require.NoError(t, doc.SetHeaderDiscount(DiscountPercent, d("5")))
		require.NoError(t, doc.SetCharges(d("200"), d("1500"), false))

		// (9000 + 5000) - 700 + 200 + 1500
		assert.True(t, d("700").Equal(doc.DiscountAmount))
		assert.True(t, d("15000").Equal(doc.GrandTotal), "got %s", doc.GrandTotal)
	})

	t.Run("inclusive tax does not inflate the total", func(t *testing.T) {
		doc := createTestDocument(t, TypeFundTransfer)

		require.NoError(t, doc.SetCharges(d("0"), d("900"), true))
		assert.True(t, d("9000").Equal(doc.GrandTotal))
	})

	t.Run("rejects negative header discount", func(t *testing.T) {
		doc := createTestDocument(t, TypeFundTransfer)

		err := doc.SetHeaderDiscount(DiscountAmount, d("-1"))
		require.Error(t, err)
		assertValidationField(t, err, "discount_value")
	})

	t.Run("rejects overlong reference", func(t *testing.T) {
		doc := createTestDocument(t, TypeFundTransfer)

		err := doc.SetReference(string(make([]byte, 101)))
		require.Error(t, err)
		assertValidationField(t, err, "reference")
	})
}

func TestDocumentRecompute(t *testing.T) {
	t.Run("recompute is idempotent", func(t *testing.T) {
		doc := createTestDocument(t, TypeFundTransfer)
		require.NoError(t, doc.SetHeaderDiscount(DiscountPercent, d("5")))

		before := doc.Totals()
		require.NoError(t, doc.Recompute())
		require.NoError(t, doc.Recompute())
		assert.True(t, before.Equal(doc.Totals()))
	})

	t.Run("recompute repairs drifted stored totals", func(t *testing.T) {
		doc := createTestDocument(t, TypeFundTransfer)
		doc.GrandTotal = d("999999")

		require.NoError(t, doc.Recompute())
		assert.True(t, d("9000").Equal(doc.GrandTotal))
	})
}

func TestDocumentStandardLifecycle(t *testing.T) {
	t.Run("draft posts directly", func(t *testing.T) {
		doc := createTestDocument(t, TypeFundTransfer)

		require.NoError(t, doc.MarkPosted("GL-0042", uuid.New()))

		assert.Equal(t, StatusPosted, doc.Status)
		assert.Equal(t, "GL-0042", doc.LedgerRef)
		require.NotNil(t, doc.PostedAt)
		require.Len(t, doc.GetDomainEvents(), 2)
		assert.Equal(t, "DocumentPosted", doc.GetDomainEvents()[1].EventType())
	})

	t.Run("posting requires a ledger reference", func(t *testing.T) {
		doc := createTestDocument(t, TypeFundTransfer)

		err := doc.MarkPosted("", uuid.New())
		require.Error(t, err)
		assertValidationField(t, err, "ledger_ref")
		assert.Equal(t, StatusDraft, doc.Status)
	})

	t.Run("posting fails when stored totals drifted", func(t *testing.T) {
		doc := createTestDocument(t, TypeFundTransfer)
		doc.GrandTotal = d("1")

		err := doc.MarkPosted("GL-0042", uuid.New())
		require.Error(t, err)
		var domainErr *shared.DomainError
		require.True(t, errors.As(err, &domainErr))
		assert.Equal(t, "TOTALS_INCONSISTENT", domainErr.Code)
		assert.Equal(t, StatusDraft, doc.Status)
	})

	t.Run("posted document voids with reversal reference", func(t *testing.T) {
		doc := createTestDocument(t, TypeFundTransfer)
		postTestDocument(t, doc)

		require.NoError(t, doc.MarkVoided("GL-0043", uuid.New(), "duplicate entry"))

		assert.Equal(t, StatusVoided, doc.Status)
		assert.Equal(t, "GL-0043", doc.ReversalRef)
		assert.Equal(t, "duplicate entry", doc.VoidReason)
		assert.True(t, doc.Status.IsTerminal())
	})

	t.Run("void on draft is an invalid transition and leaves the draft intact", func(t *testing.T) {
		doc := createTestDocument(t, TypeFundTransfer)

		err := doc.MarkVoided("GL-0043", uuid.New(), "mistake")
		require.Error(t, err)
		assertInvalidState(t, err, StatusDraft, StatusVoided)
		assert.Equal(t, StatusDraft, doc.Status)
		assert.Empty(t, doc.ReversalRef)
		assert.Nil(t, doc.VoidedAt)
	})

	t.Run("void requires a reason", func(t *testing.T) {
		doc := createTestDocument(t, TypeFundTransfer)
		postTestDocument(t, doc)

		err := doc.MarkVoided("GL-0043", uuid.New(), "")
		require.Error(t, err)
		assertValidationField(t, err, "reason")
		assert.Equal(t, StatusPosted, doc.Status)
	})

	t.Run("draft deletes", func(t *testing.T) {
		doc := createTestDocument(t, TypeFundTransfer)

		require.NoError(t, doc.MarkDeleted())
		assert.Equal(t, StatusDeleted, doc.Status)
	})

	t.Run("posted document cannot be deleted", func(t *testing.T) {
		doc := createTestDocument(t, TypeFundTransfer)
		postTestDocument(t, doc)

		err := doc.MarkDeleted()
		require.Error(t, err)
		assertInvalidState(t, err, StatusPosted, StatusDeleted)
	})

	t.Run("standard type does not use the approval chain", func(t *testing.T) {
		doc := createTestDocument(t, TypeFundTransfer)

		err := doc.Submit()
		require.Error(t, err)
		var domainErr *shared.DomainError
		require.True(t, errors.As(err, &domainErr))
		assert.Equal(t, "INVALID_STATE", domainErr.Code)
	})
}

func TestSupplierInvoiceLifecycle(t *testing.T) {
	t.Run("full chain to paid", func(t *testing.T) {
		doc := createTestDocument(t, TypeSupplierInvoice)
		approver := uuid.New()

		require.NoError(t, doc.Submit())
		assert.Equal(t, StatusUnverified, doc.Status)
		require.NotNil(t, doc.SubmittedAt)

		require.NoError(t, doc.Verify())
		require.NoError(t, doc.RequestApproval())
		require.NoError(t, doc.Approve(approver))
		assert.Equal(t, StatusApproved, doc.Status)
		require.NotNil(t, doc.ApprovedBy)
		assert.Equal(t, approver, *doc.ApprovedBy)

		require.NoError(t, doc.MarkPosted("GL-0100", uuid.New()))
		require.NoError(t, doc.MarkAwaitingPayment())
		require.NoError(t, doc.MarkPaid())
		assert.Equal(t, StatusPaid, doc.Status)
		assert.True(t, doc.Status.IsTerminal())
	})

	t.Run("supplier invoice cannot post straight from draft", func(t *testing.T) {
		doc := createTestDocument(t, TypeSupplierInvoice)

		err := doc.MarkPosted("GL-0100", uuid.New())
		require.Error(t, err)
		assertInvalidState(t, err, StatusDraft, StatusPosted)
	})

	t.Run("content freezes once submitted", func(t *testing.T) {
		doc := createTestDocument(t, TypeSupplierInvoice)
		require.NoError(t, doc.Submit())

		_, err := doc.AddLine(LineInput{AccountID: uuid.New(), Quantity: d("1"), UnitPrice: d("1"), DiscountType: DiscountAmount, DiscountValue: d("0")})
		require.Error(t, err)
	})

	t.Run("rejection reopens the draft", func(t *testing.T) {
		doc := createTestDocument(t, TypeSupplierInvoice)
		require.NoError(t, doc.Submit())
		require.NoError(t, doc.Verify())

		require.NoError(t, doc.Reject("price mismatch against PO"))

		assert.Equal(t, StatusDraft, doc.Status)
		assert.Nil(t, doc.SubmittedAt)
		assert.Nil(t, doc.ApprovedBy)
		assert.Contains(t, doc.Notes, "Rejected: price mismatch against PO")

		// Draft is editable again
		_, err := doc.AddLine(LineInput{AccountID: uuid.New(), Quantity: d("1"), UnitPrice: d("1"), DiscountType: DiscountAmount, DiscountValue: d("0")})
		require.NoError(t, err)
	})

	t.Run("rejection requires a reason", func(t *testing.T) {
		doc := createTestDocument(t, TypeSupplierInvoice)
		require.NoError(t, doc.Submit())

		err := doc.Reject("")
		require.Error(t, err)
		assertValidationField(t, err, "reason")
		assert.Equal(t, StatusUnverified, doc.Status)
	})

	t.Run("approval requires the approver id", func(t *testing.T) {
		doc := createTestDocument(t, TypeSupplierInvoice)
		require.NoError(t, doc.Submit())
		require.NoError(t, doc.Verify())
		require.NoError(t, doc.RequestApproval())

		err := doc.Approve(uuid.Nil)
		require.Error(t, err)
		assertValidationField(t, err, "approved_by")
	})

	t.Run("cannot skip verification", func(t *testing.T) {
		doc := createTestDocument(t, TypeSupplierInvoice)
		require.NoError(t, doc.Submit())

		err := doc.Approve(uuid.New())
		require.Error(t, err)
		assertInvalidState(t, err, StatusUnverified, StatusApproved)
	})
}

func TestValidateForPosting(t *testing.T) {
	t.Run("passes for a consistent draft", func(t *testing.T) {
		doc := createTestDocument(t, TypeFundTransfer)
		require.NoError(t, doc.ValidateForPosting())
	})

	t.Run("fails from a non-postable status", func(t *testing.T) {
		doc := createTestDocument(t, TypeFundTransfer)
		postTestDocument(t, doc)

		err := doc.ValidateForPosting()
		require.Error(t, err)
		assertInvalidState(t, err, StatusPosted, StatusPosted)
	})
}

func TestDocumentGrandTotalMoney(t *testing.T) {
	doc := createTestDocument(t, TypeFundTransfer)

	money := doc.GetGrandTotalMoney()
	assert.Equal(t, valueobject.IDR, money.Currency())
	assert.True(t, money.Amount().Equal(doc.GrandTotal),
		"money amount should mirror the grand total")

	// 10 x 1000 with a 10% line discount
	assert.True(t, money.Amount().Equal(d("9000")))
}

func TestDocumentLineDiscountTypeDefaulting(t *testing.T) {
	t.Run("NewDocument accepts lines without a discount type", func(t *testing.T) {
		doc, err := NewDocument(TypeFundTransfer, "TRF-0042", time.Now(), valueobject.IDR, uuid.New(), nil, "", []LineInput{
			{AccountID: uuid.New(), Quantity: d("2"), UnitPrice: d("1500")},
		})
		require.NoError(t, err)
		assert.Equal(t, DiscountAmount, doc.Lines[0].DiscountType)
		assert.True(t, doc.Lines[0].Subtotal.Equal(d("3000")))
	})

	t.Run("AddLine defaults an unset discount type to AMOUNT", func(t *testing.T) {
		doc := createTestDocument(t, TypeFundTransfer)
		line, err := doc.AddLine(LineInput{AccountID: uuid.New(), Quantity: d("5"), UnitPrice: d("1000")})
		require.NoError(t, err)
		assert.Equal(t, DiscountAmount, line.DiscountType)
		assert.True(t, line.Subtotal.Equal(d("5000")))
	})
}
