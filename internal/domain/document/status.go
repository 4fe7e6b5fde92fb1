package document

// Status represents the lifecycle status of a document. The set is closed:
// values are persisted and exposed as these exact strings, never free text.
type Status string

const (
	StatusDraft           Status = "DRAFT"
	StatusUnverified      Status = "UNVERIFIED"
	StatusVerified        Status = "VERIFIED"
	StatusPendingApproval Status = "PENDING_APPROVAL"
	StatusApproved        Status = "APPROVED"
	StatusPosted          Status = "POSTED"
	StatusAwaitingPayment Status = "AWAITING_PAYMENT"
	StatusPaid            Status = "PAID"
	StatusVoided          Status = "VOIDED"
	StatusDeleted         Status = "DELETED"
)

// IsValid checks if the status is a valid Status
func (s Status) IsValid() bool {
	switch s {
	case StatusDraft, StatusUnverified, StatusVerified, StatusPendingApproval,
		StatusApproved, StatusPosted, StatusAwaitingPayment, StatusPaid,
		StatusVoided, StatusDeleted:
		return true
	}
	return false
}

// String returns the string representation of Status
func (s Status) String() string {
	return string(s)
}

// IsTerminal returns true if no transition leaves this status
func (s Status) IsTerminal() bool {
	return s == StatusVoided || s == StatusDeleted || s == StatusPaid
}

// IsMutable returns true if document content (lines, discounts, references)
// may still change. Only drafts are mutable; once submitted into the approval
// chain the line items are frozen and the document can only move through the
// state machine or be rejected back to draft.
func (s Status) IsMutable() bool {
	return s == StatusDraft
}

// IsPostedOrLater returns true once the document has produced a ledger effect
func (s Status) IsPostedOrLater() bool {
	switch s {
	case StatusPosted, StatusAwaitingPayment, StatusPaid, StatusVoided:
		return true
	}
	return false
}

// standardTransitions is the canonical 4-state chain shared by opening
// balances, fund transfers, purchase orders and quotations.
var standardTransitions = map[Status][]Status{
	StatusDraft:  {StatusPosted, StatusDeleted},
	StatusPosted: {StatusVoided},
}

// supplierInvoiceTransitions extends the canonical chain with the invoice
// verification/approval steps. Rejection at any pre-posting step returns the
// document to DRAFT so the operator can correct and resubmit.
var supplierInvoiceTransitions = map[Status][]Status{
	StatusDraft:           {StatusUnverified, StatusDeleted},
	StatusUnverified:      {StatusVerified, StatusDraft},
	StatusVerified:        {StatusPendingApproval, StatusDraft},
	StatusPendingApproval: {StatusApproved, StatusDraft},
	StatusApproved:        {StatusPosted, StatusDraft},
	StatusPosted:          {StatusAwaitingPayment, StatusVoided},
	StatusAwaitingPayment: {StatusPaid},
}

// transitions returns the transition table for a document type
func (t Type) transitions() map[Status][]Status {
	if t.HasApprovalChain() {
		return supplierInvoiceTransitions
	}
	return standardTransitions
}

// CanTransitionTo checks if the status can move to the target status for the
// given document type. Statuses never change except through this table.
func (s Status) CanTransitionTo(t Type, target Status) bool {
	for _, next := range t.transitions()[s] {
		if next == target {
			return true
		}
	}
	return false
}

// NextStatuses returns the set of statuses reachable in one step for the type
func (s Status) NextStatuses(t Type) []Status {
	next := t.transitions()[s]
	out := make([]Status, len(next))
	copy(out, next)
	return out
}
