package usecases_test

import (
	"context"
	"errors"
	"sync"

	"github.com/samirrijal/campusradius/internal/core/domain"
)

// --- Mock CampusRepository ---

type mockCampusRepo struct {
	listFn    func(ctx context.Context) ([]domain.Campus, error)
	getByIDFn func(ctx context.Context, id string) (*domain.Campus, error)
}

func (m *mockCampusRepo) List(ctx context.Context) ([]domain.Campus, error) {
	if m.listFn != nil {
		return m.listFn(ctx)
	}
	return nil, nil
}

func (m *mockCampusRepo) GetByID(ctx context.Context, id string) (*domain.Campus, error) {
	if m.getByIDFn != nil {
		return m.getByIDFn(ctx, id)
	}
	return nil, nil
}

// campusRepo returns a repo over a fixed list.
func campusRepo(campuses ...domain.Campus) *mockCampusRepo {
	return &mockCampusRepo{
		listFn: func(ctx context.Context) ([]domain.Campus, error) { return campuses, nil },
		getByIDFn: func(ctx context.Context, id string) (*domain.Campus, error) {
			for _, c := range campuses {
				if c.ID == id {
					c := c
					return &c, nil
				}
			}
			return nil, nil
		},
	}
}

// --- Mock PostcodeResolver ---

type mockResolver struct {
	mu      sync.Mutex
	calls   int
	resolve func(ctx context.Context, code string) (*domain.Postcode, error)
}

func (m *mockResolver) Resolve(ctx context.Context, code string) (*domain.Postcode, error) {
	m.mu.Lock()
	m.calls++
	m.mu.Unlock()
	if m.resolve != nil {
		return m.resolve(ctx, code)
	}
	return nil, nil
}

// --- Mock CacheService ---

type mockCache struct {
	mu   sync.Mutex
	data map[string][]byte
	ttl  map[string]int
}

func newMockCache() *mockCache {
	return &mockCache{data: map[string][]byte{}, ttl: map[string]int{}}
}

func (m *mockCache) Get(ctx context.Context, key string) ([]byte, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	v, ok := m.data[key]
	if !ok {
		return nil, errors.New("valkey nil message")
	}
	return v, nil
}

func (m *mockCache) Set(ctx context.Context, key string, value []byte, ttlSeconds int) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.data[key] = value
	m.ttl[key] = ttlSeconds
	return nil
}

func (m *mockCache) Delete(ctx context.Context, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.data, key)
	return nil
}

// --- Mock EventPublisher ---

type mockPublisher struct {
	events []*domain.CheckEvent
	err    error
}

func (m *mockPublisher) PublishCheck(ctx context.Context, ev *domain.CheckEvent) error {
	m.events = append(m.events, ev)
	return m.err
}

// --- Fixtures ---

var (
	uniMelb = domain.Campus{ID: "unimelb", Name: "University of Melbourne", Location: domain.GeoPoint{Lat: -37.7963, Lon: 144.9614}}
	usyd    = domain.Campus{ID: "usyd", Name: "University of Sydney", Location: domain.GeoPoint{Lat: -33.8882, Lon: 151.1873}}
	monash  = domain.Campus{ID: "monash", Name: "Monash University", Location: domain.GeoPoint{Lat: -37.9105, Lon: 145.1363}}

	melbourneCBD = domain.GeoPoint{Lat: -37.8136, Lon: 144.9631}
	sydneyCBD    = domain.GeoPoint{Lat: -33.8688, Lon: 151.2093}
)

func staticResolver(table map[string]domain.GeoPoint) *mockResolver {
	return &mockResolver{resolve: func(ctx context.Context, code string) (*domain.Postcode, error) {
		p, ok := table[code]
		if !ok {
			return nil, domain.ErrNotFound
		}
		return &domain.Postcode{Code: code, Location: p}, nil
	}}
}
