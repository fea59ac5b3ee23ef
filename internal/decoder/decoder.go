// Package decoder assembles validated QR fields into a Document and back.
package decoder

import (
	"errors"
	"fmt"
	"strings"

	"github.com/rezonia/atcud-qr/internal/model"
	"github.com/rezonia/atcud-qr/internal/parser/qr"
)

const otherInfoSeparator = ";"

// Decode builds the Document for validated fields. Every failure is
// reported as a *model.DecodeError, including a panic while decoding.
func Decode(f *qr.Fields) (doc *model.Document, err error) {
	defer func() {
		if r := recover(); r != nil {
			doc = nil
			err = model.NewDecodeError(fmt.Errorf("panic: %v", r))
		}
	}()

	if f == nil {
		return nil, model.NewDecodeError(errors.New("no fields to decode"))
	}

	docType, err := model.ParseDocumentType(f.DocumentType)
	if err != nil {
		return nil, model.NewDecodeError(err)
	}
	status, err := model.ParseDocumentStatus(f.DocumentStatus)
	if err != nil {
		return nil, model.NewDecodeError(err)
	}
	vat, err := vatBlocks(f.Sections)
	if err != nil {
		return nil, model.NewDecodeError(err)
	}

	doc = &model.Document{
		Number: f.Number,
		ATCUD:  f.ATCUD,
		Type:   docType,
		Status: status,
		Date:   f.Date,
		Issuer: model.Issuer{
			VATNumber: f.IssuerVAT,
		},
		Buyer: model.Buyer{
			VATNumber: f.BuyerVAT,
			Country:   f.BuyerCountry,
		},
		Tax: model.Tax{
			VAT:                  vat,
			NonTaxableAmount:     f.NonTaxableAmount,
			StampTax:             f.StampTax,
			WithholdingTaxAmount: f.WithholdingTax,
			Total:                f.TaxTotal,
		},
		Total:               f.Total,
		HashCode:            f.HashCode,
		CertificationNumber: f.CertificationNumber,
	}

	if f.OtherInfo != nil {
		doc.OtherInfo = strings.Split(*f.OtherInfo, otherInfoSeparator)
	}

	return doc, nil
}

// vatBlocks derives the VAT blocks in section order I, J, K. A section
// yields a block only when it has a region and at least one amount;
// missing amounts inside a block are zero. I1 = "0" means no VAT at all.
func vatBlocks(sections [3]qr.TaxSection) ([]model.VATBlock, error) {
	vat := []model.VATBlock{}
	if sections[0].Region == qr.NoVATRegion {
		return vat, nil
	}

	for i, s := range sections {
		if s.Region == "" || !s.HasAmounts() {
			continue
		}
		region, err := model.ParseCountryRegion(s.Region)
		if err != nil {
			return nil, fmt.Errorf("section %s: %w", qr.SectionLetters[i], err)
		}
		vat = append(vat, model.VATBlock{
			CountryRegion: region,
			Exempt:        s.Amount(qr.AmountExempt),
			Reduced: model.TaxRate{
				Base: s.Amount(qr.AmountReducedBase),
				Tax:  s.Amount(qr.AmountReducedTax),
			},
			Intermediate: model.TaxRate{
				Base: s.Amount(qr.AmountIntermediateBase),
				Tax:  s.Amount(qr.AmountIntermediateTax),
			},
			Standard: model.TaxRate{
				Base: s.Amount(qr.AmountStandardBase),
				Tax:  s.Amount(qr.AmountStandardTax),
			},
		})
	}

	return vat, nil
}
