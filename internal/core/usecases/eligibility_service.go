package usecases

import (
	"context"
	"fmt"
	"log/slog"
	"math"
	"time"

	"github.com/samirrijal/campusradius/internal/core/domain"
	"github.com/samirrijal/campusradius/internal/core/ports"
	"github.com/samirrijal/campusradius/internal/pkg/metrics"
	"github.com/samirrijal/campusradius/internal/pkg/telemetry"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
)

// CheckInput identifies the two points of a check. Exactly one of CampusID
// or Origin, and one of Postcode or Destination, should be set; the named
// form wins when both are present.
type CheckInput struct {
	CampusID    string
	Origin      *domain.GeoPoint
	Postcode    string
	Destination *domain.GeoPoint
	RadiusKm    float64
}

// EligibilityService validates input, resolves both points, and evaluates.
type EligibilityService struct {
	campuses  *CampusService
	postcodes *PostcodeService
	events    ports.EventPublisher
	now       func() time.Time
}

// NewEligibilityService creates a new EligibilityService. events may be nil.
func NewEligibilityService(campuses *CampusService, postcodes *PostcodeService, events ports.EventPublisher) *EligibilityService {
	return &EligibilityService{
		campuses:  campuses,
		postcodes: postcodes,
		events:    events,
		now:       time.Now,
	}
}

// Check runs a single eligibility check.
func (s *EligibilityService) Check(ctx context.Context, in CheckInput) (*domain.CheckResult, error) {
	ctx, span := otel.Tracer(telemetry.InstrumentationName).Start(ctx, telemetry.SpanCheck)
	defer span.End()

	if err := validateRadius(in.RadiusKm); err != nil {
		return nil, err
	}

	var campus *domain.Campus
	var origin domain.GeoPoint
	switch {
	case in.CampusID != "":
		c, err := s.campuses.Get(ctx, in.CampusID)
		if err != nil {
			return nil, err
		}
		campus, origin = c, c.Location
	case in.Origin != nil:
		origin = *in.Origin
	default:
		return nil, fmt.Errorf("%w: a campus or origin is required", domain.ErrInvalidLocation)
	}
	if err := origin.Validate(); err != nil {
		return nil, fmt.Errorf("origin: %w", err)
	}

	var postcode *domain.Postcode
	var destination domain.GeoPoint
	switch {
	case in.Postcode != "":
		if s.postcodes == nil {
			return nil, fmt.Errorf("%w: no postcode resolver configured", domain.ErrTransport)
		}
		pc, err := s.postcodes.Resolve(ctx, in.Postcode)
		if err != nil {
			return nil, err
		}
		postcode, destination = pc, pc.Location
	case in.Destination != nil:
		destination = *in.Destination
	default:
		return nil, fmt.Errorf("%w: a postcode or destination is required", domain.ErrInvalidLocation)
	}
	if err := destination.Validate(); err != nil {
		return nil, fmt.Errorf("destination: %w", err)
	}

	res := &domain.CheckResult{
		EligibilityResult: Evaluate(origin, destination, in.RadiusKm),
		RadiusKm:          in.RadiusKm,
		Postcode:          postcode,
		Campus:            campus,
		CheckedAt:         s.now().UTC(),
	}

	label := "custom"
	if campus != nil {
		label = campus.ID
	}
	span.SetAttributes(
		attribute.String("campus", label),
		attribute.Float64("distance_km", res.DistanceKm),
		attribute.Bool("eligible", res.IsEligible),
	)
	metrics.ChecksTotal.WithLabelValues(label, metrics.Outcome(res.IsEligible)).Inc()
	metrics.CheckDistance.WithLabelValues(label).Observe(res.DistanceKm)

	s.publish(ctx, res)
	return res, nil
}

func (s *EligibilityService) publish(ctx context.Context, res *domain.CheckResult) {
	if s.events == nil {
		return
	}
	ev := &domain.CheckEvent{
		RadiusKm:   res.RadiusKm,
		DistanceKm: res.DistanceKm,
		IsEligible: res.IsEligible,
		CheckedAt:  res.CheckedAt,
	}
	if res.Campus != nil {
		ev.CampusID = res.Campus.ID
	}
	if res.Postcode != nil {
		ev.Postcode = res.Postcode.Code
	}
	if err := s.events.PublishCheck(ctx, ev); err != nil {
		slog.WarnContext(ctx, "publish check event failed", "error", err)
	}
}

func validateRadius(km float64) error {
	if math.IsNaN(km) || math.IsInf(km, 0) || km <= 0 {
		return domain.ErrInvalidRadius
	}
	return nil
}
