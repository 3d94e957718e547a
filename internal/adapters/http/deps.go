package http

import (
	"context"

	"github.com/samirrijal/campusradius/internal/core/scene"
	"github.com/samirrijal/campusradius/internal/core/usecases"
)

// Pinger is a dependency that can report reachability.
type Pinger interface {
	Ping(ctx context.Context) error
}

// Connection reports whether a long-lived client is connected.
type Connection interface {
	IsConnected() bool
}

// Dependencies holds all services needed by HTTP handlers.
// DB, NATS and Cache are optional and only feed the readiness check.
type Dependencies struct {
	Campuses    *usecases.CampusService
	Postcodes   *usecases.PostcodeService
	Eligibility *usecases.EligibilityService
	Theme       scene.Style
	Version     string

	DB    Pinger
	NATS  Connection
	Cache Pinger
}
