package atcud

import (
	"context"
	"log/slog"

	"github.com/rezonia/atcud-qr/internal/processor"
)

// Decoder validates, decodes and encodes QR code payloads
type Decoder interface {
	// IsValid reports whether the payload passes validation
	IsValid(raw string) bool

	// Parse returns the typed fields of the payload or a *ParseError
	Parse(raw string) (*Fields, error)

	// Decode returns the document in the payload. It fails with
	// ErrInvalidData or a *DecodeError.
	Decode(raw string) (*Document, error)

	// DecodeBatch decodes many payloads, one result per payload in order
	DecodeBatch(ctx context.Context, payloads []string) []BatchResult

	// Encode writes a document back into a payload
	Encode(doc *Document) (string, error)
}

// Options configures a Decoder
type Options struct {
	Logger      *slog.Logger // default discards
	Concurrency int          // DecodeBatch limit (default: 8)
}

// DefaultOptions returns default decoder options
func DefaultOptions() Options {
	return Options{Concurrency: processor.DefaultConcurrency}
}

// NewDecoder creates a decoder with the given options
func NewDecoder(opts Options) Decoder {
	return processor.NewPipeline(
		processor.WithLogger(opts.Logger),
		processor.WithConcurrency(opts.Concurrency),
	)
}

var defaultDecoder = NewDecoder(DefaultOptions())

// IsValid reports whether raw is a valid payload
func IsValid(raw string) bool {
	return defaultDecoder.IsValid(raw)
}

// Parse validates raw and returns its typed fields. On failure the error is
// a *ParseError listing every invalid field.
func Parse(raw string) (*Fields, error) {
	return defaultDecoder.Parse(raw)
}

// Decode returns the document encoded in raw
func Decode(raw string) (*Document, error) {
	return defaultDecoder.Decode(raw)
}

// DecodeBatch decodes payloads concurrently, keeping their order
func DecodeBatch(ctx context.Context, payloads []string) []BatchResult {
	return defaultDecoder.DecodeBatch(ctx, payloads)
}

// Encode writes doc as a payload
func Encode(doc *Document) (string, error) {
	return defaultDecoder.Encode(doc)
}
