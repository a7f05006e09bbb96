package currency

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLookup(t *testing.T) {
	c, err := Lookup("eur")
	require.NoError(t, err)
	assert.Equal(t, "EUR", c.Code)
	assert.Equal(t, 0.93, c.Rate)

	_, err = Lookup("CHF")
	assert.ErrorIs(t, err, ErrUnknownCurrency)

	_, err = Lookup("not-a-code")
	assert.ErrorIs(t, err, ErrUnknownCurrency)
}

func TestConvertRoundTrip(t *testing.T) {
	eur, err := Lookup("EUR")
	require.NoError(t, err)

	display := Convert(100, eur.Rate)
	assert.InDelta(t, 93.0, display, 1e-9)
	assert.InDelta(t, 100.0, ToBase(display, eur.Rate), 1e-9)
}

func TestToBase_InvalidRate(t *testing.T) {
	assert.Equal(t, 42.0, ToBase(42, 0))
	assert.Equal(t, 42.0, ToBase(42, -1))
}

func TestFormat(t *testing.T) {
	tests := []struct {
		code   string
		amount float64
		want   string
	}{
		{"USD", 12.5, "$12.50"},
		{"USD", -4, "-$4.00"},
		{"EUR", 10, "€9.30"},
		{"JPY", 1, "¥110.20"},
	}
	for _, tt := range tests {
		t.Run(tt.code, func(t *testing.T) {
			c, err := Lookup(tt.code)
			require.NoError(t, err)
			assert.Equal(t, tt.want, c.Format(tt.amount))
		})
	}
}

func TestSupportedIsCopy(t *testing.T) {
	list := Supported()
	list[0].Rate = 99
	assert.Equal(t, 1.0, Base.Rate)
	c, err := Lookup("USD")
	require.NoError(t, err)
	assert.Equal(t, 1.0, c.Rate)
}
