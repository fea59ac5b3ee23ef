package model_test

import (
	"encoding/json"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rezonia/atcud-qr/internal/model"
)

func amount(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func TestVATBlock_Totals(t *testing.T) {
	b := model.VATBlock{
		CountryRegion: model.CountryRegionPortugal,
		Exempt:        amount("5"),
		Reduced:       model.TaxRate{Base: amount("10"), Tax: amount("0.60")},
		Intermediate:  model.TaxRate{Base: amount("20"), Tax: amount("2.60")},
		Standard:      model.TaxRate{Base: amount("100"), Tax: amount("23")},
	}

	assert.True(t, b.VATAmount().Equal(amount("26.20")))
	assert.True(t, b.TaxableBase().Equal(amount("135")))
}

func TestDocument_Warnings(t *testing.T) {
	doc := model.Document{
		Tax: model.Tax{
			VAT: []model.VATBlock{
				{Standard: model.TaxRate{Base: amount("100"), Tax: amount("23")}},
			},
			Total: amount("23"),
		},
		Total: amount("123"),
	}
	assert.Empty(t, doc.Warnings())

	stamp := amount("1.00")
	doc.Tax.StampTax = &stamp
	warnings := doc.Warnings()
	assert.Len(t, warnings, 1)
	assert.Contains(t, warnings[0], "tax total mismatch")

	doc.Tax.Total = amount("24")
	assert.Empty(t, doc.Warnings())

	doc.Total = amount("10")
	warnings = doc.Warnings()
	assert.Len(t, warnings, 1)
	assert.Contains(t, warnings[0], "lower than tax total")
}

func TestDocument_WarningsWithoutVAT(t *testing.T) {
	doc := model.Document{
		Tax:   model.Tax{VAT: []model.VATBlock{}, Total: amount("0.50")},
		Total: amount("10.50"),
	}
	assert.Empty(t, doc.Warnings())
}

func TestDocument_JSONAmountsAreNumbers(t *testing.T) {
	stamp := amount("0.20")
	doc := model.Document{
		Type:   model.DocumentTypeInvoice,
		Status: model.DocumentStatusNormal,
		Tax: model.Tax{
			VAT: []model.VATBlock{{
				CountryRegion: model.CountryRegionPortugal,
				Reduced:       model.TaxRate{Base: amount("10.00"), Tax: amount("0.60")},
			}},
			StampTax: &stamp,
			Total:    amount("0.80"),
		},
		Total: amount("10.80"),
	}

	data, err := json.Marshal(doc)
	require.NoError(t, err)

	var out struct {
		Total json.RawMessage `json:"total"`
		Tax   struct {
			StampTax json.RawMessage `json:"stamp_tax"`
			VAT      []struct {
				Reduced struct {
					Base json.RawMessage `json:"base"`
				} `json:"reduced"`
			} `json:"vat"`
		} `json:"tax"`
	}
	require.NoError(t, json.Unmarshal(data, &out))
	assert.Equal(t, "10.8", string(out.Total))
	assert.Equal(t, "0.2", string(out.Tax.StampTax))
	assert.Equal(t, "10", string(out.Tax.VAT[0].Reduced.Base))

	var back model.Document
	require.NoError(t, json.Unmarshal(data, &back))
	assert.True(t, back.Total.Equal(doc.Total))

	// Quoted amounts are still read
	require.NoError(t, json.Unmarshal([]byte(`{"total":"10.80","tax":{"total":"0.80"}}`), &back))
	assert.True(t, back.Total.Equal(amount("10.8")))
}
