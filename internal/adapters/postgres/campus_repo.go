package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/samirrijal/campusradius/internal/core/domain"
)

// CampusRepo implements ports.CampusRepository and ports.CampusWriter with pgx.
type CampusRepo struct {
	q Querier
}

// NewCampusRepo creates a new CampusRepo.
func NewCampusRepo(q Querier) *CampusRepo {
	return &CampusRepo{q: q}
}

// List returns all campuses ordered by name.
func (r *CampusRepo) List(ctx context.Context) ([]domain.Campus, error) {
	rows, err := r.q.Query(ctx, `
		SELECT id, name, lat, lon
		FROM campuses
		ORDER BY name
	`)
	if err != nil {
		return nil, fmt.Errorf("list campuses: %w", err)
	}
	defer rows.Close()

	var out []domain.Campus
	for rows.Next() {
		var c domain.Campus
		if err := rows.Scan(&c.ID, &c.Name, &c.Location.Lat, &c.Location.Lon); err != nil {
			return nil, fmt.Errorf("scan campus: %w", err)
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

// GetByID returns a campus, or nil if there is none with that ID.
func (r *CampusRepo) GetByID(ctx context.Context, id string) (*domain.Campus, error) {
	var c domain.Campus
	err := r.q.QueryRow(ctx, `
		SELECT id, name, lat, lon FROM campuses WHERE id = $1
	`, id).Scan(&c.ID, &c.Name, &c.Location.Lat, &c.Location.Lon)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get campus %s: %w", id, err)
	}
	return &c, nil
}

// Upsert inserts or updates a single campus.
func (r *CampusRepo) Upsert(ctx context.Context, c *domain.Campus) error {
	_, err := r.q.Exec(ctx, `
		INSERT INTO campuses (id, name, lat, lon)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (id) DO UPDATE
		SET name = EXCLUDED.name, lat = EXCLUDED.lat, lon = EXCLUDED.lon,
		    updated_at = now()
	`, c.ID, c.Name, c.Location.Lat, c.Location.Lon)
	if err != nil {
		return fmt.Errorf("upsert campus %s: %w", c.ID, err)
	}
	return nil
}
