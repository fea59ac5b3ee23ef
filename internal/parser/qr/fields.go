package qr

import (
	"strconv"
	"time"

	"github.com/shopspring/decimal"

	amount "github.com/rezonia/atcud-qr/internal/decimal"
)

// NoVATRegion is the I1 value of a document without VAT sections
const NoVATRegion = "0"

// DateLayout is the layout of field F
const DateLayout = "20060102"

// SectionLetters are the VAT section letters in the order they are decoded
var SectionLetters = [3]string{"I", "J", "K"}

// TaxSection holds the raw VAT section of one letter (keys {L}1 to {L}8)
type TaxSection struct {
	// Region is the region code, NoVATRegion, or empty when absent
	Region string
	// Amounts holds keys {L}2 to {L}8; nil entries were absent
	Amounts [7]*decimal.Decimal
}

// Indexes into TaxSection.Amounts
const (
	AmountExempt = iota
	AmountReducedBase
	AmountReducedTax
	AmountIntermediateBase
	AmountIntermediateTax
	AmountStandardBase
	AmountStandardTax
)

// HasAmounts reports whether any amount key of the section was present
func (s TaxSection) HasAmounts() bool {
	for _, a := range s.Amounts {
		if a != nil {
			return true
		}
	}
	return false
}

// Amount returns the amount at idx, or zero when absent
func (s TaxSection) Amount(idx int) decimal.Decimal {
	return amount.OrZero(s.Amounts[idx])
}

// Fields is a validated payload with every value coerced to its type.
// Optional values are nil when absent.
type Fields struct {
	IssuerVAT           string           // A
	BuyerVAT            string           // B
	BuyerCountry        string           // C
	DocumentType        string           // D
	DocumentStatus      string           // E
	Date                time.Time        // F
	Number              string           // G
	ATCUD               string           // H
	Sections            [3]TaxSection    // I, J, K
	NonTaxableAmount    *decimal.Decimal // L
	StampTax            *decimal.Decimal // M
	TaxTotal            decimal.Decimal  // N
	Total               decimal.Decimal  // O
	WithholdingTax      *decimal.Decimal // P
	HashCode            string           // Q
	CertificationNumber int              // R
	OtherInfo           *string          // S
}

// Values renders the fields back into their wire form, keyed like the
// payload. Absent optional fields are left out.
func (f *Fields) Values() (map[string]string, error) {
	v := map[string]string{
		"A": f.IssuerVAT,
		"B": f.BuyerVAT,
		"C": f.BuyerCountry,
		"D": f.DocumentType,
		"E": f.DocumentStatus,
		"F": f.Date.Format(DateLayout),
		"G": f.Number,
		"H": f.ATCUD,
		"Q": f.HashCode,
		"R": strconv.Itoa(f.CertificationNumber),
	}
	if len(v["R"]) < 4 {
		v["R"] = leftPad(v["R"], 4)
	}

	for i, s := range f.Sections {
		letter := SectionLetters[i]
		if s.Region != "" {
			v[letter+"1"] = s.Region
		}
		for j, a := range s.Amounts {
			if a == nil {
				continue
			}
			formatted, err := amount.FormatAmount(*a)
			if err != nil {
				return nil, err
			}
			v[letter+strconv.Itoa(j+2)] = formatted
		}
	}

	optional := map[string]*decimal.Decimal{
		"L": f.NonTaxableAmount,
		"M": f.StampTax,
		"P": f.WithholdingTax,
	}
	for key, a := range optional {
		if a == nil {
			continue
		}
		formatted, err := amount.FormatAmount(*a)
		if err != nil {
			return nil, err
		}
		v[key] = formatted
	}

	required := map[string]decimal.Decimal{"N": f.TaxTotal, "O": f.Total}
	for key, a := range required {
		formatted, err := amount.FormatAmount(a)
		if err != nil {
			return nil, err
		}
		v[key] = formatted
	}

	if f.OtherInfo != nil {
		v["S"] = *f.OtherInfo
	}

	return v, nil
}

func leftPad(s string, n int) string {
	for len(s) < n {
		s = "0" + s
	}
	return s
}
