package ports

import (
	"context"

	"github.com/samirrijal/campusradius/internal/core/domain"
)

// CampusRepository supplies the known campuses.
type CampusRepository interface {
	List(ctx context.Context) ([]domain.Campus, error)
	GetByID(ctx context.Context, id string) (*domain.Campus, error)
}

// CampusWriter persists campuses into a catalogue that supports writes.
type CampusWriter interface {
	Upsert(ctx context.Context, campus *domain.Campus) error
}

// PostcodeResolver turns a postal code into a location.
// Implementations report failures wrapping domain.ErrNotFound,
// domain.ErrMissingCoordinates, or domain.ErrTransport.
type PostcodeResolver interface {
	Resolve(ctx context.Context, code string) (*domain.Postcode, error)
}
