package qr_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/rezonia/atcud-qr/internal/parser/qr"
)

const validPayload = "A:000000000*B:999999999*C:PT*D:FT*E:N*F:20250314*G:AB 123/456789*H:ABCDEFGH-012345*I1:PT*I3:10.00*I4:0.50*N:0.50*O:10.50*Q:AaAa*R:1234"

func TestExtract(t *testing.T) {
	fields := qr.Extract(validPayload)

	assert.Len(t, fields, 15)
	assert.Equal(t, "000000000", fields["A"])
	assert.Equal(t, "AB 123/456789", fields["G"])
	assert.Equal(t, "10.00", fields["I3"])

	_, ok := fields.Get("S")
	assert.False(t, ok)
}

func TestExtract_LastDuplicateWins(t *testing.T) {
	fields := qr.Extract("A:111111111*A:222222222")
	assert.Equal(t, "222222222", fields["A"])
}

func TestExtract_MissingSeparator(t *testing.T) {
	fields := qr.Extract("invalid-data")
	_, ok := fields.Get("invalid-data")
	assert.False(t, ok)
	assert.Empty(t, fields)

	// A later entity without ':' clears the key
	fields = qr.Extract("A:111111111*A")
	_, ok = fields.Get("A")
	assert.False(t, ok)
}

func TestExtract_EmptyValue(t *testing.T) {
	fields := qr.Extract("S:")
	v, ok := fields.Get("S")
	assert.True(t, ok)
	assert.Equal(t, "", v)
}

func TestExtract_SplitsOnFirstColon(t *testing.T) {
	fields := qr.Extract("S:IBAN:PT50")
	assert.Equal(t, "IBAN:PT50", fields["S"])
}

func TestExtract_Empty(t *testing.T) {
	assert.Empty(t, qr.Extract(""))
}
