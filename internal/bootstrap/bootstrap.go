// Package bootstrap builds the service graph from configuration. It is
// shared by the API server and the CLI.
package bootstrap

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/samirrijal/campusradius/internal/adapters/memory"
	natsadapter "github.com/samirrijal/campusradius/internal/adapters/nats"
	"github.com/samirrijal/campusradius/internal/adapters/postcodeapi"
	"github.com/samirrijal/campusradius/internal/adapters/postgres"
	"github.com/samirrijal/campusradius/internal/adapters/valkey"
	"github.com/samirrijal/campusradius/internal/core/ports"
	"github.com/samirrijal/campusradius/internal/core/usecases"
	"github.com/samirrijal/campusradius/internal/pkg/config"
)

// Options selects the optional infrastructure to connect.
type Options struct {
	Cache  bool // connect Valkey for the postcode cache
	Events bool // connect NATS for check notifications
}

// Services is the wired service graph plus the connections it owns.
// DB, Cache and Publisher are nil when not configured or unreachable.
type Services struct {
	Campuses    *usecases.CampusService
	Postcodes   *usecases.PostcodeService
	Eligibility *usecases.EligibilityService

	DB        *postgres.DB
	Cache     *valkey.Cache
	Publisher *natsadapter.Publisher
}

// New connects what cfg asks for and builds the services. The database is
// required when either catalogue is stored in it; cache and NATS failures
// only disable those features.
func New(ctx context.Context, cfg *config.Config, opts Options) (*Services, error) {
	s := &Services{}

	if cfg.Database.Enabled {
		db, err := postgres.New(ctx, cfg.Database.DSN())
		if err != nil {
			return nil, fmt.Errorf("database: %w", err)
		}
		s.DB = db
	}

	campuses, err := s.campusRepo(cfg)
	if err != nil {
		s.Close()
		return nil, err
	}
	resolver, err := s.postcodeResolver(cfg)
	if err != nil {
		s.Close()
		return nil, err
	}

	var cache ports.CacheService
	if opts.Cache && cfg.Valkey.Addr != "" {
		c, err := valkey.New(cfg.Valkey.Addr, cfg.Valkey.Prefix)
		if err != nil {
			slog.Warn("valkey unavailable, postcode cache disabled", "addr", cfg.Valkey.Addr, "error", err)
		} else {
			s.Cache, cache = c, c
		}
	}

	var events ports.EventPublisher
	if opts.Events && cfg.NATS.URL != "" {
		p, err := natsadapter.NewPublisher(cfg.NATS.URL)
		if err != nil {
			slog.Warn("nats unavailable, check events disabled", "url", cfg.NATS.URL, "error", err)
		} else {
			s.Publisher, events = p, p
		}
	}

	s.Campuses = usecases.NewCampusService(campuses, cfg.Radius.Range())
	s.Postcodes = usecases.NewPostcodeService(resolver, cache)
	s.Eligibility = usecases.NewEligibilityService(s.Campuses, s.Postcodes, events)
	return s, nil
}

func (s *Services) campusRepo(cfg *config.Config) (ports.CampusRepository, error) {
	switch cfg.Campus.Source {
	case "database":
		if s.DB == nil {
			return nil, fmt.Errorf("campus source database requires database.enabled")
		}
		return postgres.NewCampusRepo(s.DB.Pool), nil
	default:
		return memory.NewCampusRepo(cfg.Campus.List()), nil
	}
}

func (s *Services) postcodeResolver(cfg *config.Config) (ports.PostcodeResolver, error) {
	switch cfg.Postcode.Source {
	case "database":
		if s.DB == nil {
			return nil, fmt.Errorf("postcode source database requires database.enabled")
		}
		return postgres.NewPostcodeRepo(s.DB.Pool), nil
	case "file":
		t, err := memory.LoadPostcodeFile(cfg.Postcode.File)
		if err != nil {
			return nil, err
		}
		slog.Info("postcode table loaded", "file", cfg.Postcode.File, "postcodes", t.Len())
		return t, nil
	default:
		return postcodeapi.New(cfg.Postcode.BaseURL, postcodeapi.Options{
			Timeout:    time.Duration(cfg.Postcode.Timeout) * time.Second,
			MaxRetries: cfg.Postcode.MaxRetries,
		}), nil
	}
}

// Close releases every connection New opened.
func (s *Services) Close() {
	if s.Publisher != nil {
		s.Publisher.Close()
	}
	if s.Cache != nil {
		s.Cache.Close()
	}
	if s.DB != nil {
		s.DB.Close()
	}
}
