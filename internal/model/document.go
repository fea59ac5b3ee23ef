package model

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// Amounts are written as JSON numbers. Quoted amounts are still accepted
// when reading a Document.
func init() {
	decimal.MarshalJSONWithoutQuotes = true
}

// Document is the decoded content of an invoice QR code
type Document struct {
	Number              string          `json:"number"`
	ATCUD               string          `json:"atcud"`
	Type                DocumentType    `json:"type"`
	Status              DocumentStatus  `json:"status"`
	Date                time.Time       `json:"date"`
	Issuer              Issuer          `json:"issuer"`
	Buyer               Buyer           `json:"buyer"`
	Tax                 Tax             `json:"tax"`
	Total               decimal.Decimal `json:"total"`
	HashCode            string          `json:"hash_code"`
	CertificationNumber int             `json:"certification_number"`
	OtherInfo           []string        `json:"other_info,omitempty"`
}

// Issuer identifies the company that issued the document
type Issuer struct {
	VATNumber string `json:"vat_number"`
}

// Buyer identifies the acquirer of the document
type Buyer struct {
	VATNumber string `json:"vat_number"`
	Country   string `json:"country"`
}

// Tax holds the tax summary of the document.
// The optional amounts are nil when the QR code does not carry them.
type Tax struct {
	VAT                  []VATBlock       `json:"vat"`
	NonTaxableAmount     *decimal.Decimal `json:"non_taxable_amount,omitempty"`
	StampTax             *decimal.Decimal `json:"stamp_tax,omitempty"`
	WithholdingTaxAmount *decimal.Decimal `json:"withholding_tax_amount,omitempty"`
	Total                decimal.Decimal  `json:"total"`
}

// VATBlock is the VAT breakdown for one fiscal region
type VATBlock struct {
	CountryRegion CountryRegion   `json:"country_region"`
	Exempt        decimal.Decimal `json:"exempt"`
	Reduced       TaxRate         `json:"reduced"`
	Intermediate  TaxRate         `json:"intermediate"`
	Standard      TaxRate         `json:"standard"`
}

// TaxRate is the taxable base and tax amount at one VAT rate
type TaxRate struct {
	Base decimal.Decimal `json:"base"`
	Tax  decimal.Decimal `json:"tax"`
}

// VATAmount returns the VAT charged in the block across all rates
func (b VATBlock) VATAmount() decimal.Decimal {
	return b.Reduced.Tax.Add(b.Intermediate.Tax).Add(b.Standard.Tax)
}

// TaxableBase returns the sum of the taxable bases and the exempt amount
func (b VATBlock) TaxableBase() decimal.Decimal {
	return b.Exempt.Add(b.Reduced.Base).Add(b.Intermediate.Base).Add(b.Standard.Base)
}

// Warnings reports totals that do not add up. They never make a document
// invalid; the QR format does not require consistent totals.
func (d *Document) Warnings() []string {
	var warnings []string

	vat := decimal.Zero
	for _, b := range d.Tax.VAT {
		vat = vat.Add(b.VATAmount())
	}
	expected := vat
	if d.Tax.StampTax != nil {
		expected = expected.Add(*d.Tax.StampTax)
	}
	if len(d.Tax.VAT) > 0 && !expected.Equal(d.Tax.Total) {
		warnings = append(warnings,
			fmt.Sprintf("tax total mismatch: vat(%s) + stamp tax = %s, but tax total is %s",
				vat, expected, d.Tax.Total))
	}

	if d.Total.LessThan(d.Tax.Total) {
		warnings = append(warnings,
			fmt.Sprintf("document total %s is lower than tax total %s", d.Total, d.Tax.Total))
	}

	return warnings
}
