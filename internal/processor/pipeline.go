// Package processor runs QR payloads through extraction, validation and
// decoding.
package processor

import (
	"context"
	"io"
	"log/slog"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/rezonia/atcud-qr/internal/decoder"
	"github.com/rezonia/atcud-qr/internal/model"
	"github.com/rezonia/atcud-qr/internal/parser/qr"
)

// DefaultConcurrency bounds DecodeBatch when no limit is configured
const DefaultConcurrency = 8

// Pipeline decodes QR payloads. It keeps no state between calls and is
// safe for concurrent use.
type Pipeline struct {
	validator   *qr.Validator
	logger      *slog.Logger
	concurrency int
}

// Option configures a Pipeline
type Option func(*Pipeline)

// WithLogger sets the logger. The default discards everything.
func WithLogger(logger *slog.Logger) Option {
	return func(p *Pipeline) {
		if logger != nil {
			p.logger = logger
		}
	}
}

// WithConcurrency bounds the number of payloads DecodeBatch works on at once
func WithConcurrency(n int) Option {
	return func(p *Pipeline) {
		if n > 0 {
			p.concurrency = n
		}
	}
}

// NewPipeline creates a new pipeline
func NewPipeline(opts ...Option) *Pipeline {
	p := &Pipeline{
		validator:   qr.NewValidator(),
		logger:      slog.New(slog.NewTextHandler(io.Discard, nil)),
		concurrency: DefaultConcurrency,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// IsValid reports whether raw passes validation. Violations are discarded.
func (p *Pipeline) IsValid(raw string) bool {
	return p.validator.CheckValid(qr.Extract(raw))
}

// Parse validates raw and returns the typed fields, or a *model.ParseError
// listing every violation.
func (p *Pipeline) Parse(raw string) (*qr.Fields, error) {
	fields, err := p.validator.Validate(qr.Extract(raw))
	if err != nil {
		p.logger.Debug("payload rejected", "error", err)
		return nil, err
	}
	return fields, nil
}

// Decode returns the Document encoded in raw. It fails with
// model.ErrInvalidData when raw does not validate and with a
// *model.DecodeError when the validated fields cannot be decoded.
func (p *Pipeline) Decode(raw string) (*model.Document, error) {
	fields, err := p.validator.Validate(qr.Extract(raw))
	if err != nil {
		p.logger.Debug("payload rejected", "error", err)
		return nil, model.ErrInvalidData
	}

	doc, err := decoder.Decode(fields)
	if err != nil {
		p.logger.Error("validated payload failed to decode", "error", err)
		return nil, err
	}

	if warnings := doc.Warnings(); len(warnings) > 0 {
		p.logger.Debug("decoded document has inconsistent totals",
			"atcud", doc.ATCUD, "warnings", warnings)
	}
	return doc, nil
}

// Encode writes doc back into a payload
func (p *Pipeline) Encode(doc *model.Document) (string, error) {
	return decoder.Encode(doc)
}

// BatchResult is the outcome of one payload of a batch
type BatchResult struct {
	Index    int
	Document *model.Document
	Err      error
	// Duration is the time spent decoding this payload, zero when it was
	// never started
	Duration time.Duration
}

// DecodeBatch decodes payloads concurrently. Results keep the input order
// and a failing payload does not stop the others. Payloads not started
// when ctx is cancelled get the context error.
func (p *Pipeline) DecodeBatch(ctx context.Context, payloads []string) []BatchResult {
	results := make([]BatchResult, len(payloads))

	g := new(errgroup.Group)
	g.SetLimit(p.concurrency)

	for i, raw := range payloads {
		i, raw := i, raw
		results[i].Index = i
		if err := ctx.Err(); err != nil {
			results[i].Err = err
			continue
		}
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				results[i].Err = err
				return nil
			}
			start := time.Now()
			results[i].Document, results[i].Err = p.Decode(raw)
			results[i].Duration = time.Since(start)
			return nil
		})
	}
	_ = g.Wait()

	p.logger.Debug("batch decoded", "count", len(payloads))
	return results
}
