package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/samirrijal/campusradius/internal/core/domain"
)

// PostcodeRepo implements ports.PostcodeResolver over the postcodes table.
type PostcodeRepo struct {
	q Querier
}

// NewPostcodeRepo creates a new PostcodeRepo.
func NewPostcodeRepo(q Querier) *PostcodeRepo {
	return &PostcodeRepo{q: q}
}

// Resolve looks up a postcode. When several places share the code the
// first by place name wins.
func (r *PostcodeRepo) Resolve(ctx context.Context, code string) (*domain.Postcode, error) {
	var (
		pc     domain.Postcode
		hasLoc bool
	)
	err := r.q.QueryRow(ctx, `
		SELECT code, place, state,
		       lat IS NOT NULL AND lon IS NOT NULL,
		       COALESCE(lat, 0), COALESCE(lon, 0)
		FROM postcodes
		WHERE code = $1
		ORDER BY place
		LIMIT 1
	`, code).Scan(&pc.Code, &pc.Place, &pc.State, &hasLoc, &pc.Location.Lat, &pc.Location.Lon)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, fmt.Errorf("%w: %s", domain.ErrNotFound, code)
	}
	if err != nil {
		return nil, fmt.Errorf("%w: query postcode %s: %v", domain.ErrTransport, code, err)
	}
	if !hasLoc {
		return nil, fmt.Errorf("%w: %s", domain.ErrMissingCoordinates, code)
	}
	return &pc, nil
}

// Import replaces the postcodes table contents with rows in one transaction.
func (r *PostcodeRepo) Import(ctx context.Context, rows []domain.Postcode) (int64, error) {
	tx, err := r.q.Begin(ctx)
	if err != nil {
		return 0, fmt.Errorf("begin: %w", err)
	}

	if _, err := tx.Exec(ctx, `TRUNCATE postcodes`); err != nil {
		_ = tx.Rollback(ctx)
		return 0, fmt.Errorf("truncate postcodes: %w", err)
	}

	n, err := tx.CopyFrom(ctx,
		pgx.Identifier{"postcodes"},
		[]string{"code", "place", "state", "lat", "lon"},
		pgx.CopyFromSlice(len(rows), func(i int) ([]any, error) {
			p := rows[i]
			return []any{p.Code, p.Place, p.State, p.Location.Lat, p.Location.Lon}, nil
		}),
	)
	if err != nil {
		_ = tx.Rollback(ctx)
		return 0, fmt.Errorf("copy postcodes: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return 0, fmt.Errorf("commit: %w", err)
	}
	return n, nil
}
