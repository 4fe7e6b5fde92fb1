package valueobject

import (
	"encoding/json"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewMoney(t *testing.T) {
	t.Run("creates money with amount and currency", func(t *testing.T) {
		m, err := NewMoney(decimal.NewFromInt(15000), IDR)
		require.NoError(t, err)
		assert.Equal(t, IDR, m.Currency())
		assert.True(t, m.Amount().Equal(decimal.NewFromInt(15000)))
	})

	t.Run("fails with empty currency", func(t *testing.T) {
		_, err := NewMoney(decimal.NewFromInt(1), "")
		require.Error(t, err)
	})

	t.Run("from string", func(t *testing.T) {
		m, err := NewMoneyFromString("1234.5678", USD)
		require.NoError(t, err)
		assert.Equal(t, "1234.5678", m.Amount().String())
	})

	t.Run("from invalid string", func(t *testing.T) {
		_, err := NewMoneyFromString("abc", USD)
		require.Error(t, err)
	})
}

func TestCurrencyIsValid(t *testing.T) {
	for _, c := range []Currency{IDR, USD, EUR, SGD, MYR} {
		assert.True(t, c.IsValid(), c)
	}
	assert.False(t, Currency("BTC").IsValid())
	assert.False(t, Currency("").IsValid())
	assert.Equal(t, IDR, DefaultCurrency)
}

func TestMoneyArithmetic(t *testing.T) {
	t.Run("add", func(t *testing.T) {
		a := NewMoneyIDR(decimal.NewFromInt(9000))
		b := NewMoneyIDR(decimal.NewFromInt(6000))

		sum, err := a.Add(b)
		require.NoError(t, err)
		assert.True(t, sum.Amount().Equal(decimal.NewFromInt(15000)))
	})

	t.Run("add rejects mixed currencies", func(t *testing.T) {
		a := NewMoneyIDR(decimal.NewFromInt(100))
		b, err := NewMoney(decimal.NewFromInt(100), USD)
		require.NoError(t, err)

		_, err = a.Add(b)
		require.Error(t, err)
	})

	t.Run("subtract", func(t *testing.T) {
		a := NewMoneyIDR(decimal.NewFromInt(14000))
		b := NewMoneyIDR(decimal.NewFromInt(700))

		diff, err := a.Subtract(b)
		require.NoError(t, err)
		assert.True(t, diff.Amount().Equal(decimal.NewFromInt(13300)))
	})

	t.Run("multiply", func(t *testing.T) {
		m := NewMoneyIDR(decimal.NewFromInt(1000)).Multiply(decimal.NewFromInt(10))
		assert.True(t, m.Amount().Equal(decimal.NewFromInt(10000)))
	})

	t.Run("negate", func(t *testing.T) {
		m := NewMoneyIDR(decimal.NewFromInt(500)).Negate()
		assert.True(t, m.IsNegative())
	})

	t.Run("percentage", func(t *testing.T) {
		m := NewMoneyIDR(decimal.NewFromInt(14000)).CalculatePercentage(decimal.NewFromInt(5))
		assert.True(t, m.Amount().Equal(decimal.NewFromInt(700)))
	})

	t.Run("immutability", func(t *testing.T) {
		original := NewMoneyIDR(decimal.NewFromInt(100))
		_ = original.Multiply(decimal.NewFromInt(3))
		assert.True(t, original.Amount().Equal(decimal.NewFromInt(100)))
	})
}

func TestMoneyRoundHalfUp(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"1.005", "1.01"},
		{"1.004", "1.00"},
		{"2.675", "2.68"},
		{"-1.005", "-1.01"},
		{"15000", "15000.00"},
	}
	for _, tc := range cases {
		m, err := NewMoneyFromString(tc.in, IDR)
		require.NoError(t, err)
		assert.Equal(t, tc.want, m.RoundHalfUp(2).StringFixed(2), tc.in)
	}
}

func TestMoneyComparison(t *testing.T) {
	a := NewMoneyIDR(decimal.NewFromInt(100))
	b := NewMoneyIDR(decimal.NewFromInt(200))

	gt, err := b.GreaterThan(a)
	require.NoError(t, err)
	assert.True(t, gt)

	lt, err := a.LessThan(b)
	require.NoError(t, err)
	assert.True(t, lt)

	assert.True(t, a.Equals(NewMoneyIDR(decimal.NewFromInt(100))))
	usd, err := NewMoney(decimal.NewFromInt(100), USD)
	require.NoError(t, err)
	assert.False(t, a.Equals(usd))

	_, err = a.GreaterThan(usd)
	require.Error(t, err)
}

func TestMoneyJSON(t *testing.T) {
	t.Run("amount serializes as string", func(t *testing.T) {
		m := NewMoneyIDR(decimal.RequireFromString("15000.50"))

		data, err := json.Marshal(m)
		require.NoError(t, err)
		assert.JSONEq(t, `{"amount":"15000.5","currency":"IDR"}`, string(data))
	})

	t.Run("round trip", func(t *testing.T) {
		m := NewMoneyIDR(decimal.RequireFromString("1234.5678"))
		data, err := json.Marshal(m)
		require.NoError(t, err)

		var decoded Money
		require.NoError(t, json.Unmarshal(data, &decoded))
		assert.True(t, m.Equals(decoded))
	})

	t.Run("rejects malformed amount", func(t *testing.T) {
		var decoded Money
		err := json.Unmarshal([]byte(`{"amount":"x","currency":"IDR"}`), &decoded)
		require.Error(t, err)
	})
}

func TestMoneyScan(t *testing.T) {
	t.Run("scans string value with default currency", func(t *testing.T) {
		var m Money
		require.NoError(t, m.Scan("9000.0000"))
		assert.True(t, m.Amount().Equal(decimal.NewFromInt(9000)))
		assert.Equal(t, DefaultCurrency, m.Currency())
	})

	t.Run("scans bytes", func(t *testing.T) {
		var m Money
		require.NoError(t, m.Scan([]byte("12.34")))
		assert.Equal(t, "12.34", m.Amount().String())
	})

	t.Run("nil scans to zero", func(t *testing.T) {
		var m Money
		require.NoError(t, m.Scan(nil))
		assert.True(t, m.IsZero())
	})

	t.Run("value round trips through scan", func(t *testing.T) {
		m := NewMoneyIDR(decimal.RequireFromString("777.77"))
		v, err := m.Value()
		require.NoError(t, err)

		var decoded Money
		require.NoError(t, decoded.Scan(v))
		assert.True(t, m.Equals(decoded))
	})
}
