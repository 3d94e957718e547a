package usecases

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/samirrijal/campusradius/internal/core/domain"
	"github.com/samirrijal/campusradius/internal/core/ports"
	"github.com/samirrijal/campusradius/internal/pkg/metrics"
	"github.com/samirrijal/campusradius/internal/pkg/telemetry"
	"go.opentelemetry.io/otel"
)

// postcodeTTL is how long resolved postcodes stay cached (seconds).
const postcodeTTL = 24 * 60 * 60

// minPostcodeLen is the shortest code accepted before a lookup is attempted.
const minPostcodeLen = 4

// PostcodeService resolves postal codes through a pluggable resolver.
type PostcodeService struct {
	resolver ports.PostcodeResolver
	cache    ports.CacheService
}

// NewPostcodeService creates a new PostcodeService. cache may be nil.
func NewPostcodeService(resolver ports.PostcodeResolver, cache ports.CacheService) *PostcodeService {
	return &PostcodeService{resolver: resolver, cache: cache}
}

// NormalizePostcode trims whitespace and rejects codes that are too short.
func NormalizePostcode(code string) (string, error) {
	code = strings.TrimSpace(code)
	if len(code) < minPostcodeLen {
		return "", domain.ErrInvalidPostcode
	}
	return code, nil
}

// Resolve returns the location of a postal code. Only successful lookups
// are cached.
func (s *PostcodeService) Resolve(ctx context.Context, code string) (*domain.Postcode, error) {
	code, err := NormalizePostcode(code)
	if err != nil {
		return nil, err
	}

	cacheKey := "postcodes:" + code
	if s.cache != nil {
		if data, err := s.cache.Get(ctx, cacheKey); err == nil {
			var pc domain.Postcode
			if err := json.Unmarshal(data, &pc); err == nil {
				metrics.CacheHits.WithLabelValues("postcode").Inc()
				return &pc, nil
			}
			// undecodable entry, drop it so a failed lookup does not leave it behind
			_ = s.cache.Delete(ctx, cacheKey)
		}
		metrics.CacheMisses.WithLabelValues("postcode").Inc()
	}

	ctx, span := otel.Tracer(telemetry.InstrumentationName).Start(ctx, telemetry.SpanPostcodeLookup)
	pc, err := s.resolver.Resolve(ctx, code)
	span.End()
	if err != nil {
		return nil, err
	}
	if pc == nil {
		return nil, fmt.Errorf("%w: %s", domain.ErrNotFound, code)
	}
	if pc.Code == "" {
		pc.Code = code
	}

	if s.cache != nil {
		if data, err := json.Marshal(pc); err == nil {
			_ = s.cache.Set(ctx, cacheKey, data, postcodeTTL)
		}
	}

	return pc, nil
}
