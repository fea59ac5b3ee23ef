package atcud_test

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rezonia/atcud-qr/pkg/atcud"
)

const validPayload = "A:000000000*B:999999999*C:PT*D:FT*E:N*F:20250314*G:AB 123/456789*H:ABCDEFGH-012345*I1:PT*I3:10.00*I4:0.50*N:0.50*O:10.50*Q:AaAa*R:1234"

func TestIsValid(t *testing.T) {
	assert.True(t, atcud.IsValid(validPayload))
	assert.False(t, atcud.IsValid("invalid-data"))
	assert.False(t, atcud.IsValid(""))
}

func TestDecode(t *testing.T) {
	doc, err := atcud.Decode(validPayload)
	require.NoError(t, err)

	assert.Equal(t, atcud.DocumentTypeInvoice, doc.Type)
	assert.Equal(t, atcud.DocumentStatusNormal, doc.Status)
	require.Len(t, doc.Tax.VAT, 1)
	assert.Equal(t, atcud.CountryRegionPortugal, doc.Tax.VAT[0].CountryRegion)
	assert.Equal(t, "10.5", doc.Total.String())
	assert.Equal(t, 1234, doc.CertificationNumber)
	assert.Nil(t, doc.OtherInfo)
}

func TestDecode_NoVAT(t *testing.T) {
	payload := strings.Replace(validPayload, "I1:PT*I3:10.00*I4:0.50", "I1:0", 1)

	doc, err := atcud.Decode(payload)
	require.NoError(t, err)
	assert.NotNil(t, doc.Tax.VAT)
	assert.Empty(t, doc.Tax.VAT)
}

func TestDecode_InvalidData(t *testing.T) {
	doc, err := atcud.Decode("invalid-data")
	assert.Nil(t, doc)
	assert.ErrorIs(t, err, atcud.ErrInvalidData)

	var parseErr *atcud.ParseError
	assert.False(t, errors.As(err, &parseErr))
}

func TestParse(t *testing.T) {
	fields, err := atcud.Parse(validPayload)
	require.NoError(t, err)
	assert.Equal(t, "ABCDEFGH-012345", fields.ATCUD)
	assert.Equal(t, "PT", fields.Sections[0].Region)

	_, err = atcud.Parse("invalid-data")
	var parseErr *atcud.ParseError
	require.True(t, errors.As(err, &parseErr))
	assert.NotEmpty(t, parseErr.InvalidFields)
	assert.Equal(t, atcud.InvalidField{Argument: "A", Message: "Required"}, parseErr.InvalidFields[0])
}

func TestEncode(t *testing.T) {
	doc, err := atcud.Decode(validPayload)
	require.NoError(t, err)

	payload, err := atcud.Encode(doc)
	require.NoError(t, err)
	assert.Equal(t, validPayload, payload)
}

func TestDecodeBatch(t *testing.T) {
	results := atcud.DecodeBatch(context.Background(), []string{validPayload, "invalid-data"})
	require.Len(t, results, 2)

	assert.NoError(t, results[0].Err)
	assert.NotNil(t, results[0].Document)
	assert.ErrorIs(t, results[1].Err, atcud.ErrInvalidData)
	assert.Nil(t, results[1].Document)
}

func TestNewDecoder(t *testing.T) {
	opts := atcud.DefaultOptions()
	assert.Equal(t, 8, opts.Concurrency)
	assert.Nil(t, opts.Logger)

	dec := atcud.NewDecoder(opts)
	require.NotNil(t, dec)
	assert.True(t, dec.IsValid(validPayload))

	dec = atcud.NewDecoder(atcud.Options{})
	results := dec.DecodeBatch(context.Background(), []string{validPayload, validPayload, validPayload})
	for _, r := range results {
		assert.NoError(t, r.Err)
	}
}

func TestLabelLookups(t *testing.T) {
	docType, err := atcud.DocumentTypeFromLabel("Credit Note")
	require.NoError(t, err)
	assert.Equal(t, atcud.DocumentTypeCreditNote, docType)

	status, err := atcud.DocumentStatusFromLabel("Annulled Document")
	require.NoError(t, err)
	assert.Equal(t, atcud.DocumentStatusAnnulled, status)

	region, err := atcud.CountryRegionFromLabel("Madeira")
	require.NoError(t, err)
	assert.Equal(t, atcud.CountryRegionMadeira, region)

	_, err = atcud.DocumentTypeFromLabel("FT")
	assert.Error(t, err)

	docType, err = atcud.ParseDocumentType("FT")
	require.NoError(t, err)
	assert.Equal(t, "Invoice", docType.String())
}
