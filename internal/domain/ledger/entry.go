package ledger

import (
	"time"

	"github.com/findoc/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Direction indicates whether an entry line debits or credits its account
type Direction string

const (
	Debit  Direction = "DEBIT"
	Credit Direction = "CREDIT"
)

// IsValid checks if the direction is valid
func (d Direction) IsValid() bool {
	return d == Debit || d == Credit
}

// EntryLine is one account movement inside a ledger entry
type EntryLine struct {
	ID        uuid.UUID       `gorm:"type:uuid;primary_key"`
	EntryID   uuid.UUID       `gorm:"type:uuid;not null;index"`
	AccountID uuid.UUID       `gorm:"type:uuid;not null;index"`
	Direction Direction       `gorm:"type:varchar(10);not null"`
	Amount    decimal.Decimal `gorm:"type:decimal(18,4);not null"`
	Memo      string          `gorm:"type:varchar(200)"`
	CreatedAt time.Time       `gorm:"not null"`
}

// TableName returns the table name for GORM
func (EntryLine) TableName() string {
	return "ledger_entry_lines"
}

// Entry is the append-only ledger record produced by posting a document.
// Exactly one non-reversal entry exists per document (enforced by a unique
// constraint on document_id); entries are never mutated after creation;
// voiding produces a separate reversing entry.
type Entry struct {
	ID              uuid.UUID       `gorm:"type:uuid;primary_key"`
	ReferenceNumber string          `gorm:"type:varchar(50);not null;uniqueIndex"`
	DocumentID      uuid.UUID       `gorm:"type:uuid;not null"`
	DocumentNumber  string          `gorm:"type:varchar(50);not null"`
	Lines           []EntryLine     `gorm:"foreignKey:EntryID;references:ID"`
	Total           decimal.Decimal `gorm:"type:decimal(18,4);not null"`
	Reversal        bool            `gorm:"not null;default:false"`
	ReversedEntryID *uuid.UUID      `gorm:"type:uuid"`
	PostedAt        time.Time       `gorm:"not null;index"`
	CreatedAt       time.Time       `gorm:"not null"`
}

// TableName returns the table name for GORM
func (Entry) TableName() string {
	return "ledger_entries"
}

// NewEntry creates a ledger entry for a document. Lines must balance:
// total debits equal total credits.
func NewEntry(referenceNumber string, documentID uuid.UUID, documentNumber string, lines []EntryLine) (*Entry, error) {
	if referenceNumber == "" {
		return nil, shared.NewValidationError("reference_number", "Ledger reference cannot be empty")
	}
	if documentID == uuid.Nil {
		return nil, shared.NewValidationError("document_id", "Document ID cannot be empty")
	}
	if len(lines) == 0 {
		return nil, shared.NewValidationError("lines", "Ledger entry must have at least one line")
	}

	debits := decimal.Zero
	credits := decimal.Zero
	for _, line := range lines {
		if !line.Direction.IsValid() {
			return nil, shared.NewValidationError("direction", "Entry line direction must be DEBIT or CREDIT")
		}
		if line.Amount.LessThanOrEqual(decimal.Zero) {
			return nil, shared.NewValidationError("amount", "Entry line amount must be positive")
		}
		if line.Direction == Debit {
			debits = debits.Add(line.Amount)
		} else {
			credits = credits.Add(line.Amount)
		}
	}
	if !debits.Equal(credits) {
		return nil, shared.NewDomainError("UNBALANCED_ENTRY", "Ledger entry debits and credits must balance")
	}

	now := time.Now()
	entry := &Entry{
		ID:              uuid.New(),
		ReferenceNumber: referenceNumber,
		DocumentID:      documentID,
		DocumentNumber:  documentNumber,
		Total:           debits,
		PostedAt:        now,
		CreatedAt:       now,
	}
	for i := range lines {
		lines[i].ID = uuid.New()
		lines[i].EntryID = entry.ID
		lines[i].CreatedAt = now
	}
	entry.Lines = lines

	return entry, nil
}

// Reverse builds the reversing entry: same lines with directions flipped,
// flagged as a reversal and linked back to the original.
func (e *Entry) Reverse(referenceNumber string) (*Entry, error) {
	if e.Reversal {
		return nil, shared.NewDomainError("ALREADY_REVERSAL", "Cannot reverse a reversal entry")
	}

	lines := make([]EntryLine, len(e.Lines))
	for i, line := range e.Lines {
		direction := Credit
		if line.Direction == Credit {
			direction = Debit
		}
		lines[i] = EntryLine{
			AccountID: line.AccountID,
			Direction: direction,
			Amount:    line.Amount,
			Memo:      line.Memo,
		}
	}

	reversal, err := NewEntry(referenceNumber, e.DocumentID, e.DocumentNumber, lines)
	if err != nil {
		return nil, err
	}
	reversal.Reversal = true
	reversal.ReversedEntryID = &e.ID
	return reversal, nil
}
