package document

// Type identifies the business document kind. Each type carries its own
// number prefix and lifecycle chain.
type Type string

const (
	TypeOpeningBalance  Type = "OPENING_BALANCE"
	TypeFundTransfer    Type = "FUND_TRANSFER"
	TypePurchaseOrder   Type = "PURCHASE_ORDER"
	TypeQuotation       Type = "QUOTATION"
	TypeSupplierInvoice Type = "SUPPLIER_INVOICE"
)

// IsValid checks if the type is a valid document Type
func (t Type) IsValid() bool {
	switch t {
	case TypeOpeningBalance, TypeFundTransfer, TypePurchaseOrder, TypeQuotation, TypeSupplierInvoice:
		return true
	}
	return false
}

// String returns the string representation of Type
func (t Type) String() string {
	return string(t)
}

// NumberPrefix returns the prefix used for human-readable document numbers,
// e.g. TRF-0001 for fund transfers.
func (t Type) NumberPrefix() string {
	switch t {
	case TypeOpeningBalance:
		return "OB"
	case TypeFundTransfer:
		return "TRF"
	case TypePurchaseOrder:
		return "PO"
	case TypeQuotation:
		return "QT"
	case TypeSupplierInvoice:
		return "SINV"
	}
	return "DOC"
}

// RequiresParty returns true if the type needs a counterparty reference
// (supplier or customer) before it can be created.
func (t Type) RequiresParty() bool {
	switch t {
	case TypePurchaseOrder, TypeQuotation, TypeSupplierInvoice:
		return true
	}
	return false
}

// HasApprovalChain returns true if the type goes through the multi-step
// verification/approval chain before posting.
func (t Type) HasApprovalChain() bool {
	return t == TypeSupplierInvoice
}
