package decoder

import (
	"errors"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/rezonia/atcud-qr/internal/model"
	"github.com/rezonia/atcud-qr/internal/parser/qr"
)

// Fields is the inverse of Decode: it lays a Document out as QR fields.
// Blocks take sections I, J, K in order. A block whose amounts are all zero
// still writes its exempt amount so that it survives decoding.
func Fields(doc *model.Document) (*qr.Fields, error) {
	if doc == nil {
		return nil, errors.New("no document to encode")
	}
	if len(doc.Tax.VAT) > len(qr.SectionLetters) {
		return nil, fmt.Errorf("document has %d VAT blocks, at most %d fit in a QR code",
			len(doc.Tax.VAT), len(qr.SectionLetters))
	}

	f := &qr.Fields{
		IssuerVAT:           doc.Issuer.VATNumber,
		BuyerVAT:            doc.Buyer.VATNumber,
		BuyerCountry:        doc.Buyer.Country,
		DocumentType:        doc.Type.Code(),
		DocumentStatus:      doc.Status.Code(),
		Date:                doc.Date,
		Number:              doc.Number,
		ATCUD:               doc.ATCUD,
		NonTaxableAmount:    doc.Tax.NonTaxableAmount,
		StampTax:            doc.Tax.StampTax,
		TaxTotal:            doc.Tax.Total,
		Total:               doc.Total,
		WithholdingTax:      doc.Tax.WithholdingTaxAmount,
		HashCode:            doc.HashCode,
		CertificationNumber: doc.CertificationNumber,
	}

	if len(doc.Tax.VAT) == 0 {
		f.Sections[0].Region = qr.NoVATRegion
	}
	for i, b := range doc.Tax.VAT {
		f.Sections[i] = section(b)
	}

	if len(doc.OtherInfo) > 0 {
		s := strings.Join(doc.OtherInfo, otherInfoSeparator)
		f.OtherInfo = &s
	}

	return f, nil
}

func section(b model.VATBlock) qr.TaxSection {
	s := qr.TaxSection{Region: b.CountryRegion.Code()}
	amounts := [7]decimal.Decimal{
		qr.AmountExempt:           b.Exempt,
		qr.AmountReducedBase:      b.Reduced.Base,
		qr.AmountReducedTax:       b.Reduced.Tax,
		qr.AmountIntermediateBase: b.Intermediate.Base,
		qr.AmountIntermediateTax:  b.Intermediate.Tax,
		qr.AmountStandardBase:     b.Standard.Base,
		qr.AmountStandardTax:      b.Standard.Tax,
	}
	for i, a := range amounts {
		a := a
		if !a.IsZero() {
			s.Amounts[i] = &a
		}
	}
	if !s.HasAmounts() {
		zero := decimal.Zero
		s.Amounts[qr.AmountExempt] = &zero
	}
	return s
}

// Encode writes doc as a QR payload. The payload is validated before it is
// returned, so a document that could never have come from a valid QR code
// fails with a *model.ParseError.
func Encode(doc *model.Document) (string, error) {
	f, err := Fields(doc)
	if err != nil {
		return "", err
	}
	payload, err := qr.Encode(f)
	if err != nil {
		return "", err
	}
	if _, err := qr.Parse(payload); err != nil {
		return "", err
	}
	return payload, nil
}
