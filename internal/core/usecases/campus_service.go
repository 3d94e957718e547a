package usecases

import (
	"context"
	"fmt"
	"sync"

	"github.com/samirrijal/campusradius/internal/core/domain"
	"github.com/samirrijal/campusradius/internal/core/ports"
	"github.com/samirrijal/campusradius/internal/pkg/geospatial"
	"github.com/samirrijal/campusradius/internal/pkg/telemetry"
	"go.opentelemetry.io/otel"
)

// CampusService serves the campus catalogue and the selectable radius range.
type CampusService struct {
	campuses ports.CampusRepository
	radius   domain.RadiusRange

	mu    sync.RWMutex
	index *geospatial.Index
	byID  map[string]domain.Campus
}

// NewCampusService creates a new CampusService.
func NewCampusService(campuses ports.CampusRepository, radius domain.RadiusRange) *CampusService {
	return &CampusService{campuses: campuses, radius: radius}
}

// List returns every known campus.
func (s *CampusService) List(ctx context.Context) ([]domain.Campus, error) {
	return s.campuses.List(ctx)
}

// Get returns a campus by ID or an error wrapping domain.ErrUnknownCampus.
func (s *CampusService) Get(ctx context.Context, id string) (*domain.Campus, error) {
	if id == "" {
		return nil, fmt.Errorf("%w: campus id is required", domain.ErrUnknownCampus)
	}
	c, err := s.campuses.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if c == nil {
		return nil, fmt.Errorf("%w: %s", domain.ErrUnknownCampus, id)
	}
	return c, nil
}

// RadiusRange returns the selectable radius values.
func (s *CampusService) RadiusRange() domain.RadiusRange {
	return s.radius
}

// Nearby returns campuses within radiusKm of point, nearest first.
func (s *CampusService) Nearby(ctx context.Context, point domain.GeoPoint, radiusKm float64, limit int) ([]domain.Campus, error) {
	ctx, span := otel.Tracer(telemetry.InstrumentationName).Start(ctx, telemetry.SpanCampusNearby)
	defer span.End()

	if err := point.Validate(); err != nil {
		return nil, err
	}
	if err := validateRadius(radiusKm); err != nil {
		return nil, err
	}
	if limit <= 0 || limit > 50 {
		limit = 50
	}

	idx, byID, err := s.ensureIndex(ctx)
	if err != nil {
		return nil, err
	}

	hits := idx.Within(point.Lat, point.Lon, radiusKm, limit)
	out := make([]domain.Campus, 0, len(hits))
	for _, h := range hits {
		c := byID[h.ID]
		c.Distance = geospatial.RoundKm(h.DistanceKm)
		out = append(out, c)
	}
	return out, nil
}

// Reload rebuilds the spatial index from the repository.
func (s *CampusService) Reload(ctx context.Context) error {
	campuses, err := s.campuses.List(ctx)
	if err != nil {
		return fmt.Errorf("list campuses: %w", err)
	}

	entries := make([]geospatial.Entry, 0, len(campuses))
	byID := make(map[string]domain.Campus, len(campuses))
	for _, c := range campuses {
		if c.Location.Validate() != nil {
			continue
		}
		entries = append(entries, geospatial.Entry{ID: c.ID, Lat: c.Location.Lat, Lon: c.Location.Lon})
		byID[c.ID] = c
	}

	s.mu.Lock()
	s.index = geospatial.NewIndex(entries)
	s.byID = byID
	s.mu.Unlock()
	return nil
}

func (s *CampusService) ensureIndex(ctx context.Context) (*geospatial.Index, map[string]domain.Campus, error) {
	s.mu.RLock()
	idx, byID := s.index, s.byID
	s.mu.RUnlock()
	if idx != nil {
		return idx, byID, nil
	}

	if err := s.Reload(ctx); err != nil {
		return nil, nil, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.index, s.byID, nil
}
