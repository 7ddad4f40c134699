package money

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRoundBank(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"half rounds to even down", "0.125", "0.12"},
		{"half rounds to even up", "0.135", "0.14"},
		{"above half rounds up", "0.126", "0.13"},
		{"below half rounds down", "0.124", "0.12"},
		{"service charge product", "25.3125", "25.31"},
		{"exact value unchanged", "14.00", "14.00"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := RoundBank(decimal.RequireFromString(tt.in))
			assert.True(t, got.Equal(decimal.RequireFromString(tt.want)),
				"RoundBank(%s) = %s, want %s", tt.in, got, tt.want)
		})
	}
}

func TestRoundBankIsIdempotent(t *testing.T) {
	for _, s := range []string{"0.12", "3.33", "25.31", "0.00", "19.99"} {
		d := decimal.RequireFromString(s)
		assert.True(t, RoundBank(d).Equal(d), "rounding an already-2-place value must be a no-op: %s", s)
		assert.True(t, RoundBank(RoundBank(d)).Equal(RoundBank(d)))
	}
}

func TestRoundPlain(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"half always rounds up", "0.125", "0.13"},
		{"half rounds up regardless of parity", "0.135", "0.14"},
		{"third of ten", "3.3333333333333333", "3.33"},
		{"two thirds of ten", "6.6666666666666667", "6.67"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := RoundPlain(decimal.RequireFromString(tt.in))
			assert.True(t, got.Equal(decimal.RequireFromString(tt.want)),
				"RoundPlain(%s) = %s, want %s", tt.in, got, tt.want)
		})
	}
}

func TestRoundingPoliciesDiverge(t *testing.T) {
	// The one case the two policies must disagree on: an exact half
	// whose preceding digit is even.
	half := decimal.RequireFromString("0.125")
	assert.True(t, RoundBank(half).Equal(decimal.RequireFromString("0.12")))
	assert.True(t, RoundPlain(half).Equal(decimal.RequireFromString("0.13")))
}

func TestParsePrice(t *testing.T) {
	t.Run("accepts valid prices", func(t *testing.T) {
		for _, s := range []string{"0", "0.00", "10.50", "3.5", "100"} {
			d, err := ParsePrice(s)
			require.NoError(t, err, "price %q", s)
			assert.False(t, d.IsNegative())
		}
	})

	t.Run("rejects negative prices", func(t *testing.T) {
		_, err := ParsePrice("-1.00")
		assert.ErrorIs(t, err, ErrNegativePrice)
	})

	t.Run("rejects sub-cent precision", func(t *testing.T) {
		_, err := ParsePrice("1.005")
		assert.Error(t, err)
	})

	t.Run("rejects garbage", func(t *testing.T) {
		_, err := ParsePrice("ten quid")
		assert.Error(t, err)
	})
}

func TestParseRate(t *testing.T) {
	d, err := ParseRate("0.125")
	require.NoError(t, err)
	assert.True(t, d.Equal(decimal.RequireFromString("0.125")))

	_, err = ParseRate("-0.1")
	assert.Error(t, err)

	// Rates outside the picker menu are still valid for the engine.
	_, err = ParseRate("0.33")
	assert.NoError(t, err)
}

func TestFormat(t *testing.T) {
	assert.Equal(t, "14.00", Format(decimal.RequireFromString("14")))
	assert.Equal(t, "3.50", Format(decimal.RequireFromString("3.5")))
}
