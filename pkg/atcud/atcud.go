// Package atcud provides a public API for the QR code printed on Portuguese
// fiscal documents.
//
// The QR code carries a payload of KEY:VALUE entities separated by '*'.
// This package validates such payloads, decodes them into a Document and
// encodes documents back into payloads.
//
// Example usage:
//
//	doc, err := atcud.Decode(payload)
//	if errors.Is(err, atcud.ErrInvalidData) {
//	    _, err = atcud.Parse(payload)
//	    var parseErr *atcud.ParseError
//	    if errors.As(err, &parseErr) {
//	        log.Fatal(parseErr.InvalidFields)
//	    }
//	}
//	fmt.Println(doc.Type, doc.Total)
package atcud

import (
	"github.com/rezonia/atcud-qr/internal/model"
	"github.com/rezonia/atcud-qr/internal/parser/qr"
	"github.com/rezonia/atcud-qr/internal/processor"
)

// Re-export core types for public API
type (
	Document       = model.Document
	Issuer         = model.Issuer
	Buyer          = model.Buyer
	Tax            = model.Tax
	VATBlock       = model.VATBlock
	TaxRate        = model.TaxRate
	DocumentType   = model.DocumentType
	DocumentStatus = model.DocumentStatus
	CountryRegion  = model.CountryRegion
	Fields         = qr.Fields
	TaxSection     = qr.TaxSection
	BatchResult    = processor.BatchResult
)

// Re-export document types
const (
	DocumentTypeInvoice               = model.DocumentTypeInvoice
	DocumentTypeSimplifiedInvoice     = model.DocumentTypeSimplifiedInvoice
	DocumentTypeInvoiceReceipt        = model.DocumentTypeInvoiceReceipt
	DocumentTypeDebitNote             = model.DocumentTypeDebitNote
	DocumentTypeCreditNote            = model.DocumentTypeCreditNote
	DocumentTypeCashSale              = model.DocumentTypeCashSale
	DocumentTypeSaleTicket            = model.DocumentTypeSaleTicket
	DocumentTypeReturnTicket          = model.DocumentTypeReturnTicket
	DocumentTypeAssetsAlienation      = model.DocumentTypeAssetsAlienation
	DocumentTypeAssetsReturn          = model.DocumentTypeAssetsReturn
	DocumentTypePremiumReceipt        = model.DocumentTypePremiumReceipt
	DocumentTypeReturnInsurance       = model.DocumentTypeReturnInsurance
	DocumentTypeCoInsurance           = model.DocumentTypeCoInsurance
	DocumentTypeLeadershipCoInsurance = model.DocumentTypeLeadershipCoInsurance
	DocumentTypeAcceptedReInsurance   = model.DocumentTypeAcceptedReInsurance
)

// Re-export document statuses
const (
	DocumentStatusNormal      = model.DocumentStatusNormal
	DocumentStatusSelfBilling = model.DocumentStatusSelfBilling
	DocumentStatusAnnulled    = model.DocumentStatusAnnulled
	DocumentStatusInvoiced    = model.DocumentStatusInvoiced
	DocumentStatusSummary     = model.DocumentStatusSummary
)

// Re-export regions
const (
	CountryRegionPortugal = model.CountryRegionPortugal
	CountryRegionMadeira  = model.CountryRegionMadeira
	CountryRegionAzores   = model.CountryRegionAzores
)

// Re-export code and label lookups
var (
	ParseDocumentType       = model.ParseDocumentType
	DocumentTypeFromLabel   = model.DocumentTypeFromLabel
	ParseDocumentStatus     = model.ParseDocumentStatus
	DocumentStatusFromLabel = model.DocumentStatusFromLabel
	ParseCountryRegion      = model.ParseCountryRegion
	CountryRegionFromLabel  = model.CountryRegionFromLabel
)

// Re-export error types
type (
	InvalidField = model.InvalidField
	ParseError   = model.ParseError
	DecodeError  = model.DecodeError
)

// ErrInvalidData is returned by Decode when the payload does not validate
var ErrInvalidData = model.ErrInvalidData
