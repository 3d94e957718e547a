package ports

import (
	"context"

	"github.com/samirrijal/campusradius/internal/core/domain"
)

// EventPublisher publishes check notifications to a message broker.
type EventPublisher interface {
	PublishCheck(ctx context.Context, event *domain.CheckEvent) error
}

// CacheService provides read-through caching.
type CacheService interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte, ttlSeconds int) error
	Delete(ctx context.Context, key string) error
}
