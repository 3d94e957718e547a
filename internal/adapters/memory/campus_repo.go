package memory

import (
	"context"

	"github.com/samirrijal/campusradius/internal/core/domain"
)

// CampusRepo implements ports.CampusRepository over a fixed list.
type CampusRepo struct {
	campuses []domain.Campus
	byID     map[string]int
}

// NewCampusRepo copies campuses into a new repo. Later duplicates of an ID
// are ignored.
func NewCampusRepo(campuses []domain.Campus) *CampusRepo {
	r := &CampusRepo{byID: make(map[string]int, len(campuses))}
	for _, c := range campuses {
		if _, dup := r.byID[c.ID]; dup {
			continue
		}
		r.byID[c.ID] = len(r.campuses)
		r.campuses = append(r.campuses, c)
	}
	return r
}

// List returns the campuses in configuration order.
func (r *CampusRepo) List(ctx context.Context) ([]domain.Campus, error) {
	out := make([]domain.Campus, len(r.campuses))
	copy(out, r.campuses)
	return out, nil
}

// GetByID returns a campus, or nil if the ID is unknown.
func (r *CampusRepo) GetByID(ctx context.Context, id string) (*domain.Campus, error) {
	i, ok := r.byID[id]
	if !ok {
		return nil, nil
	}
	c := r.campuses[i]
	return &c, nil
}
