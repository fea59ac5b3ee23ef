package server

import (
	"github.com/rezonia/atcud-qr/internal/model"
)

// ValidationResponse is the response for the validate endpoint
type ValidationResponse struct {
	Valid bool `json:"valid"`
}

// ParseResponse is the response for the parse endpoint.
// Fields are keyed by payload key and rendered in their wire form.
type ParseResponse struct {
	Fields map[string]string `json:"fields"`
}

// DecodeResponse is the response for the decode endpoint
type DecodeResponse struct {
	Document *model.Document `json:"document"`
	Warnings []string        `json:"warnings,omitempty"`
}

// BatchRequest is the body of the batch decode endpoint
type BatchRequest struct {
	Payloads []string `json:"payloads"`
}

// BatchItem is the outcome of one payload of a batch
type BatchItem struct {
	Index    int             `json:"index"`
	Document *model.Document `json:"document,omitempty"`
	Error    string          `json:"error,omitempty"`
}

// BatchResponse is the response for the batch decode endpoint
type BatchResponse struct {
	Results []BatchItem `json:"results"`
	Valid   int         `json:"valid"`
	Invalid int         `json:"invalid"`
}

// EncodeResponse is the response for the encode endpoint
type EncodeResponse struct {
	Payload string `json:"payload"`
}

// ErrorResponse is the standard error response
type ErrorResponse struct {
	Error         string               `json:"error"`
	Details       string               `json:"details,omitempty"`
	InvalidFields []model.InvalidField `json:"invalid_fields,omitempty"`
}

// Error codes returned in ErrorResponse.Error
const (
	ErrCodeBadRequest    = "bad_request"
	ErrCodeInvalidData   = "invalid_data"
	ErrCodeParseFailed   = "parse_failed"
	ErrCodeDecodeFailed  = "decode_failed"
	ErrCodeEncodeFailed  = "encode_failed"
	ErrCodeBatchTooLarge = "batch_too_large"
)
