package qr_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rezonia/atcud-qr/internal/parser/qr"
)

func TestEncode_RoundTrip(t *testing.T) {
	f, err := qr.Parse(validPayload)
	require.NoError(t, err)

	payload, err := qr.Encode(f)
	require.NoError(t, err)
	assert.Equal(t, validPayload, payload)

	again, err := qr.Parse(payload)
	require.NoError(t, err)
	assert.Equal(t, f, again)
}

func TestEncode_Ordering(t *testing.T) {
	shuffled := "R:1234*Q:AaAa*O:10.50*N:0.50*I4:0.50*I3:10.00*I1:PT*H:ABCDEFGH-012345*G:AB 123/456789*F:20250314*E:N*D:FT*C:PT*B:999999999*A:000000000"
	f, err := qr.Parse(shuffled)
	require.NoError(t, err)

	payload, err := qr.Encode(f)
	require.NoError(t, err)
	assert.Equal(t, validPayload, payload)
}

func TestEncode_PadsCertificationNumber(t *testing.T) {
	f, err := qr.Parse(with(validPayload, "R", "0042"))
	require.NoError(t, err)
	assert.Equal(t, 42, f.CertificationNumber)

	payload, err := qr.Encode(f)
	require.NoError(t, err)
	assert.Contains(t, payload, "*R:0042")
}

func TestEncode_RejectsDelimiters(t *testing.T) {
	f, err := qr.Parse(validPayload)
	require.NoError(t, err)

	f.Number = "AB*1"
	_, err = qr.Encode(f)
	require.Error(t, err)

	f.Number = "AB:1"
	_, err = qr.Encode(f)
	require.Error(t, err)
}

func TestEncode_RejectsNegativeAmount(t *testing.T) {
	f, err := qr.Parse(validPayload)
	require.NoError(t, err)

	f.Total = decimal.NewFromInt(-1)
	_, err = qr.Encode(f)
	require.Error(t, err)
}
