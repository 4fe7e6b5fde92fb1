package ledger

import (
	"errors"
	"testing"

	"github.com/findoc/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func d(value string) decimal.Decimal {
	dec, err := decimal.NewFromString(value)
	if err != nil {
		panic(err)
	}
	return dec
}

func balancedLines(debitAccount, creditAccount uuid.UUID, amount string) []EntryLine {
	return []EntryLine{
		{AccountID: debitAccount, Direction: Debit, Amount: d(amount), Memo: "expense"},
		{AccountID: creditAccount, Direction: Credit, Amount: d(amount), Memo: "counter"},
	}
}

func TestNewEntry(t *testing.T) {
	t.Run("creates balanced entry", func(t *testing.T) {
		docID := uuid.New()
		entry, err := NewEntry("GL-0001", docID, "TRF-0001", balancedLines(uuid.New(), uuid.New(), "15000"))
		require.NoError(t, err)

		assert.Equal(t, "GL-0001", entry.ReferenceNumber)
		assert.Equal(t, docID, entry.DocumentID)
		assert.True(t, d("15000").Equal(entry.Total))
		assert.False(t, entry.Reversal)
		require.Len(t, entry.Lines, 2)
		for _, line := range entry.Lines {
			assert.Equal(t, entry.ID, line.EntryID)
			assert.NotEqual(t, uuid.Nil, line.ID)
		}
	})

	t.Run("accepts multi-line splits that balance in aggregate", func(t *testing.T) {
		lines := []EntryLine{
			{AccountID: uuid.New(), Direction: Debit, Amount: d("9000")},
			{AccountID: uuid.New(), Direction: Debit, Amount: d("6000")},
			{AccountID: uuid.New(), Direction: Credit, Amount: d("15000")},
		}
		entry, err := NewEntry("GL-0002", uuid.New(), "SINV-0001", lines)
		require.NoError(t, err)
		assert.True(t, d("15000").Equal(entry.Total))
	})

	t.Run("rejects unbalanced lines", func(t *testing.T) {
		lines := []EntryLine{
			{AccountID: uuid.New(), Direction: Debit, Amount: d("100")},
			{AccountID: uuid.New(), Direction: Credit, Amount: d("99")},
		}
		_, err := NewEntry("GL-0003", uuid.New(), "TRF-0002", lines)
		require.Error(t, err)
		var domainErr *shared.DomainError
		require.True(t, errors.As(err, &domainErr))
		assert.Equal(t, "UNBALANCED_ENTRY", domainErr.Code)
	})

	t.Run("rejects empty reference", func(t *testing.T) {
		_, err := NewEntry("", uuid.New(), "TRF-0002", balancedLines(uuid.New(), uuid.New(), "100"))
		require.Error(t, err)
	})

	t.Run("rejects missing document id", func(t *testing.T) {
		_, err := NewEntry("GL-0004", uuid.Nil, "TRF-0002", balancedLines(uuid.New(), uuid.New(), "100"))
		require.Error(t, err)
	})

	t.Run("rejects empty lines", func(t *testing.T) {
		_, err := NewEntry("GL-0004", uuid.New(), "TRF-0002", nil)
		require.Error(t, err)
	})

	t.Run("rejects non-positive amounts", func(t *testing.T) {
		lines := []EntryLine{
			{AccountID: uuid.New(), Direction: Debit, Amount: d("0")},
			{AccountID: uuid.New(), Direction: Credit, Amount: d("0")},
		}
		_, err := NewEntry("GL-0005", uuid.New(), "TRF-0002", lines)
		require.Error(t, err)
	})

	t.Run("rejects unknown direction", func(t *testing.T) {
		lines := []EntryLine{
			{AccountID: uuid.New(), Direction: Direction("BOTH"), Amount: d("100")},
			{AccountID: uuid.New(), Direction: Credit, Amount: d("100")},
		}
		_, err := NewEntry("GL-0006", uuid.New(), "TRF-0002", lines)
		require.Error(t, err)
	})
}

func TestEntryReverse(t *testing.T) {
	t.Run("flips directions and links back", func(t *testing.T) {
		debitAccount := uuid.New()
		creditAccount := uuid.New()
		entry, err := NewEntry("GL-0001", uuid.New(), "TRF-0001", balancedLines(debitAccount, creditAccount, "15000"))
		require.NoError(t, err)

		reversal, err := entry.Reverse("GL-0002")
		require.NoError(t, err)

		assert.True(t, reversal.Reversal)
		require.NotNil(t, reversal.ReversedEntryID)
		assert.Equal(t, entry.ID, *reversal.ReversedEntryID)
		assert.Equal(t, entry.DocumentID, reversal.DocumentID)
		assert.True(t, entry.Total.Equal(reversal.Total))

		require.Len(t, reversal.Lines, 2)
		assert.Equal(t, debitAccount, reversal.Lines[0].AccountID)
		assert.Equal(t, Credit, reversal.Lines[0].Direction)
		assert.Equal(t, creditAccount, reversal.Lines[1].AccountID)
		assert.Equal(t, Debit, reversal.Lines[1].Direction)
	})

	t.Run("original entry is untouched", func(t *testing.T) {
		entry, err := NewEntry("GL-0001", uuid.New(), "TRF-0001", balancedLines(uuid.New(), uuid.New(), "500"))
		require.NoError(t, err)

		_, err = entry.Reverse("GL-0002")
		require.NoError(t, err)

		assert.False(t, entry.Reversal)
		assert.Nil(t, entry.ReversedEntryID)
		assert.Equal(t, Debit, entry.Lines[0].Direction)
	})

	t.Run("a reversal cannot be reversed", func(t *testing.T) {
		entry, err := NewEntry("GL-0001", uuid.New(), "TRF-0001", balancedLines(uuid.New(), uuid.New(), "500"))
		require.NoError(t, err)
		reversal, err := entry.Reverse("GL-0002")
		require.NoError(t, err)

		_, err = reversal.Reverse("GL-0003")
		require.Error(t, err)
		var domainErr *shared.DomainError
		require.True(t, errors.As(err, &domainErr))
		assert.Equal(t, "ALREADY_REVERSAL", domainErr.Code)
	})
}
