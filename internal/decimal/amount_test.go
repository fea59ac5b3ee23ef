package decimal_test

import (
	"testing"

	dec "github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rezonia/atcud-qr/internal/decimal"
)

func TestIsAmount(t *testing.T) {
	tests := []struct {
		input string
		valid bool
	}{
		{"0", true},
		{"10", true},
		{"10.50", true},
		{"1234567890123", true},
		{"1234567890123.99", true},
		{"12345678901234", false},
		{"10.5", false},
		{"10.500", false},
		{".50", false},
		{"-1.00", false},
		{"1,00", false},
		{"", false},
		{" 1", false},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, tt.valid, decimal.IsAmount(tt.input))
		})
	}
}

func TestParseAmount(t *testing.T) {
	d, err := decimal.ParseAmount("10.50")
	require.NoError(t, err)
	assert.True(t, d.Equal(dec.RequireFromString("10.5")))

	_, err = decimal.ParseAmount("10.5")
	require.Error(t, err)
}

func TestFormatAmount(t *testing.T) {
	s, err := decimal.FormatAmount(dec.NewFromInt(10))
	require.NoError(t, err)
	assert.Equal(t, "10.00", s)

	s, err = decimal.FormatAmount(dec.RequireFromString("0.5"))
	require.NoError(t, err)
	assert.Equal(t, "0.50", s)

	// Trailing zeros past two places are dropped
	s, err = decimal.FormatAmount(dec.RequireFromString("1.2500"))
	require.NoError(t, err)
	assert.Equal(t, "1.25", s)

	for _, v := range []string{"1.005", "10.001", "0.999"} {
		_, err = decimal.FormatAmount(dec.RequireFromString(v))
		assert.Error(t, err, v)
	}

	_, err = decimal.FormatAmount(dec.NewFromInt(-1))
	require.Error(t, err)

	_, err = decimal.FormatAmount(dec.RequireFromString("12345678901234"))
	require.Error(t, err)
}

func TestOrZero(t *testing.T) {
	assert.True(t, decimal.OrZero(nil).IsZero())

	v := dec.NewFromInt(7)
	assert.True(t, decimal.OrZero(&v).Equal(v))
}

func TestSum(t *testing.T) {
	values := []dec.Decimal{
		dec.NewFromInt(100),
		dec.RequireFromString("0.50"),
		dec.RequireFromString("0.25"),
	}
	assert.True(t, decimal.Sum(values).Equal(dec.RequireFromString("100.75")))
	assert.True(t, decimal.Sum(nil).IsZero())
}
