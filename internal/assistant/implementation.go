// internal/assistant/implementation.go
package assistant

import (
	"context"
	"fmt"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"shelfmate/internal/catalog"
)

// Hinter is a best-effort generative interpretation source. Its output is
// never used for control flow; implementations live in internal/genai.
type Hinter interface {
	Hint(ctx context.Context, query string) (string, error)
}

// service implements the Service interface.
type service struct {
	extractor   Extractor
	resolver    *Resolver
	hinter      Hinter
	hintTimeout time.Duration
	logger      *zap.Logger
	rateLimiter *rate.Limiter
	tracer      trace.Tracer
}

// NewService creates a new assistant service instance. hinter may be nil
// when no generative backend is configured.
func NewService(extractor Extractor, resolver *Resolver, hinter Hinter, hintTimeout time.Duration, ratePerMinute, burst int, logger *zap.Logger) Service {
	// The limiter needs a positive interval and burst.
	if ratePerMinute <= 0 {
		ratePerMinute = 1
	}
	if burst <= 0 {
		burst = 1
	}
	return &service{
		extractor:   extractor,
		resolver:    resolver,
		hinter:      hinter,
		hintTimeout: hintTimeout,
		logger:      logger,
		rateLimiter: rate.NewLimiter(rate.Every(time.Minute/time.Duration(ratePerMinute)), burst),
		tracer:      otel.Tracer("shelfmate/assistant"),
	}
}

// ProcessQuery runs the deterministic pipeline: extract, resolve, format.
// The generative hint is dispatched on the side and cannot delay or fail
// any of the three steps.
func (s *service) ProcessQuery(ctx context.Context, raw string) (*QueryResult, error) {
	if !s.rateLimiter.Allow() {
		return nil, fmt.Errorf("rate limit exceeded")
	}

	ctx, span := s.tracer.Start(ctx, "assistant.process_query")
	defer span.End()

	s.dispatchHint(raw)

	parsed := s.extractor.Extract(raw)
	span.SetAttributes(attribute.String("query.intent", string(parsed.Intent)))

	books, err := s.resolver.Resolve(ctx, parsed)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve books: %w", err)
	}
	span.SetAttributes(attribute.Int("query.matched_books", len(books)))

	if books == nil {
		books = []*catalog.Book{}
	}

	s.logger.Debug("query processed",
		zap.String("intent", string(parsed.Intent)),
		zap.Int("matched_books", len(books)),
	)

	return &QueryResult{
		Intent:          parsed.Intent,
		Entities:        toEntities(parsed),
		Books:           books,
		NaturalResponse: Format(books, parsed.Intent),
	}, nil
}

// dispatchHint fires the generative side channel without waiting for it.
// Failures are logged and swallowed; the deterministic result is already
// authoritative.
func (s *service) dispatchHint(raw string) {
	if s.hinter == nil {
		return
	}
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), s.hintTimeout)
		defer cancel()

		hint, err := s.hinter.Hint(ctx, raw)
		if err != nil {
			s.logger.Warn("generative hint failed", zap.Error(err))
			return
		}
		s.logger.Debug("generative hint", zap.String("hint", hint))
	}()
}

func toEntities(parsed ParsedQuery) Entities {
	return Entities{
		Title:      optional(parsed.Title),
		Author:     optional(parsed.Author),
		Category:   optional(parsed.Category),
		SearchTerm: optional(parsed.SearchTerm),
	}
}

func optional(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
