package model

import (
	"encoding/json"
	"fmt"
)

// codebook maps a closed set of wire codes to their display labels.
// Codes keep their declaration order so error messages and listings are stable.
type codebook[T ~string] struct {
	name    string
	codes   []T
	labels  map[T]string
	byLabel map[string]T
}

func newCodebook[T ~string](name string, entries ...[2]string) *codebook[T] {
	cb := &codebook[T]{
		name:    name,
		codes:   make([]T, 0, len(entries)),
		labels:  make(map[T]string, len(entries)),
		byLabel: make(map[string]T, len(entries)),
	}
	for _, e := range entries {
		code := T(e[0])
		cb.codes = append(cb.codes, code)
		cb.labels[code] = e[1]
		cb.byLabel[e[1]] = code
	}
	return cb
}

func (cb *codebook[T]) label(code T) string {
	return cb.labels[code]
}

func (cb *codebook[T]) valid(code T) bool {
	_, ok := cb.labels[code]
	return ok
}

func (cb *codebook[T]) parse(code string) (T, error) {
	if !cb.valid(T(code)) {
		return "", fmt.Errorf("unknown %s code %q", cb.name, code)
	}
	return T(code), nil
}

func (cb *codebook[T]) fromLabel(label string) (T, error) {
	code, ok := cb.byLabel[label]
	if !ok {
		return "", fmt.Errorf("unknown %s label %q", cb.name, label)
	}
	return code, nil
}

// unmarshal accepts either the label or the code.
func (cb *codebook[T]) unmarshal(data []byte) (T, error) {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return "", err
	}
	if code, err := cb.fromLabel(s); err == nil {
		return code, nil
	}
	return cb.parse(s)
}

func (cb *codebook[T]) list() []string {
	out := make([]string, len(cb.codes))
	for i, c := range cb.codes {
		out[i] = string(c)
	}
	return out
}

// DocumentType is the AT document type code (field D)
type DocumentType string

// Document types
const (
	DocumentTypeInvoice               DocumentType = "FT"
	DocumentTypeSimplifiedInvoice     DocumentType = "FS"
	DocumentTypeInvoiceReceipt        DocumentType = "FR"
	DocumentTypeDebitNote             DocumentType = "ND"
	DocumentTypeCreditNote            DocumentType = "NC"
	DocumentTypeCashSale              DocumentType = "VD"
	DocumentTypeSaleTicket            DocumentType = "TV"
	DocumentTypeReturnTicket          DocumentType = "TD"
	DocumentTypeAssetsAlienation      DocumentType = "AA"
	DocumentTypeAssetsReturn          DocumentType = "DA"
	DocumentTypePremiumReceipt        DocumentType = "RP"
	DocumentTypeReturnInsurance       DocumentType = "RE"
	DocumentTypeCoInsurance           DocumentType = "CS"
	DocumentTypeLeadershipCoInsurance DocumentType = "LD"
	DocumentTypeAcceptedReInsurance   DocumentType = "RA"
)

var documentTypes = newCodebook[DocumentType]("document type",
	[2]string{"FT", "Invoice"},
	[2]string{"FS", "Simplified Invoice"},
	[2]string{"FR", "Invoice-Rceipt"},
	[2]string{"ND", "Debit Note"},
	[2]string{"NC", "Credit Note"},
	[2]string{"VD", "Sale for Cash and Invoice/ Sales Ticket"},
	[2]string{"TV", "Sale Ticket"},
	[2]string{"TD", "Return Ticket"},
	[2]string{"AA", "Assets Alienation"},
	[2]string{"DA", "Assets Return"},
	[2]string{"RP", "Premium or Premium Receipt"},
	[2]string{"RE", "Return Insurance or Receipt of Return Insurance"},
	[2]string{"CS", "Imputation to Co-Insurance Companies"},
	[2]string{"LD", "Imputation to Leadership Co-Insurance Companies"},
	[2]string{"RA", "Accepted Re-Insurance"},
)

// ParseDocumentType returns the document type for a wire code
func ParseDocumentType(code string) (DocumentType, error) {
	return documentTypes.parse(code)
}

// DocumentTypeFromLabel returns the document type for a display label
func DocumentTypeFromLabel(label string) (DocumentType, error) {
	return documentTypes.fromLabel(label)
}

// DocumentTypeCodes lists every document type code in declaration order
func DocumentTypeCodes() []string {
	return documentTypes.list()
}

// Code returns the wire code
func (t DocumentType) Code() string { return string(t) }

// String returns the display label
func (t DocumentType) String() string { return documentTypes.label(t) }

// IsValid reports whether t is a known document type
func (t DocumentType) IsValid() bool { return documentTypes.valid(t) }

func (t DocumentType) MarshalJSON() ([]byte, error) {
	return json.Marshal(t.String())
}

func (t *DocumentType) UnmarshalJSON(data []byte) error {
	v, err := documentTypes.unmarshal(data)
	if err != nil {
		return err
	}
	*t = v
	return nil
}

// DocumentStatus is the document status code (field E)
type DocumentStatus string

// Document statuses
const (
	DocumentStatusNormal      DocumentStatus = "N"
	DocumentStatusSelfBilling DocumentStatus = "S"
	DocumentStatusAnnulled    DocumentStatus = "A"
	DocumentStatusInvoiced    DocumentStatus = "F"
	DocumentStatusSummary     DocumentStatus = "R"
)

var documentStatuses = newCodebook[DocumentStatus]("document status",
	[2]string{"N", "Normal"},
	[2]string{"S", "Self-Billing"},
	[2]string{"A", "Annulled Document"},
	[2]string{"F", "Invoiced Document"},
	[2]string{"R", "Summary Document"},
)

// ParseDocumentStatus returns the status for a wire code
func ParseDocumentStatus(code string) (DocumentStatus, error) {
	return documentStatuses.parse(code)
}

// DocumentStatusFromLabel returns the status for a display label
func DocumentStatusFromLabel(label string) (DocumentStatus, error) {
	return documentStatuses.fromLabel(label)
}

// DocumentStatusCodes lists every status code in declaration order
func DocumentStatusCodes() []string {
	return documentStatuses.list()
}

func (s DocumentStatus) Code() string   { return string(s) }
func (s DocumentStatus) String() string { return documentStatuses.label(s) }
func (s DocumentStatus) IsValid() bool  { return documentStatuses.valid(s) }

func (s DocumentStatus) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.String())
}

func (s *DocumentStatus) UnmarshalJSON(data []byte) error {
	v, err := documentStatuses.unmarshal(data)
	if err != nil {
		return err
	}
	*s = v
	return nil
}

// CountryRegion is the fiscal region of a VAT block (fields I1, J1, K1)
type CountryRegion string

// Fiscal regions
const (
	CountryRegionPortugal CountryRegion = "PT"
	CountryRegionMadeira  CountryRegion = "PT-MA"
	CountryRegionAzores   CountryRegion = "PT-AC"
)

var countryRegions = newCodebook[CountryRegion]("country region",
	[2]string{"PT", "Portugal"},
	[2]string{"PT-MA", "Madeira"},
	[2]string{"PT-AC", "Azores"},
)

// ParseCountryRegion returns the region for a wire code
func ParseCountryRegion(code string) (CountryRegion, error) {
	return countryRegions.parse(code)
}

// CountryRegionFromLabel returns the region for a display label
func CountryRegionFromLabel(label string) (CountryRegion, error) {
	return countryRegions.fromLabel(label)
}

// CountryRegionCodes lists every region code in declaration order
func CountryRegionCodes() []string {
	return countryRegions.list()
}

func (r CountryRegion) Code() string   { return string(r) }
func (r CountryRegion) String() string { return countryRegions.label(r) }
func (r CountryRegion) IsValid() bool  { return countryRegions.valid(r) }

func (r CountryRegion) MarshalJSON() ([]byte, error) {
	return json.Marshal(r.String())
}

func (r *CountryRegion) UnmarshalJSON(data []byte) error {
	v, err := countryRegions.unmarshal(data)
	if err != nil {
		return err
	}
	*r = v
	return nil
}
