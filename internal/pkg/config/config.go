package config

import (
	"fmt"
	"strings"

	"github.com/spf13/viper"

	"github.com/samirrijal/campusradius/internal/core/domain"
	"github.com/samirrijal/campusradius/internal/core/scene"
)

// Config holds all application configuration.
type Config struct {
	Server    ServerConfig    `mapstructure:"server"`
	Database  DatabaseConfig  `mapstructure:"database"`
	NATS      NATSConfig      `mapstructure:"nats"`
	Valkey    ValkeyConfig    `mapstructure:"valkey"`
	Telemetry TelemetryConfig `mapstructure:"telemetry"`
	Postcode  PostcodeConfig  `mapstructure:"postcode"`
	Campus    CampusConfig    `mapstructure:"campus"`
	Radius    RadiusConfig    `mapstructure:"radius"`
	Theme     scene.Style     `mapstructure:"theme"`
}

type ServerConfig struct {
	Port         int `mapstructure:"port"`
	ReadTimeout  int `mapstructure:"read_timeout"`
	WriteTimeout int `mapstructure:"write_timeout"`
}

type DatabaseConfig struct {
	Enabled  bool   `mapstructure:"enabled"`
	Host     string `mapstructure:"host"`
	Port     int    `mapstructure:"port"`
	User     string `mapstructure:"user"`
	Password string `mapstructure:"password"`
	DBName   string `mapstructure:"dbname"`
	SSLMode  string `mapstructure:"sslmode"`
}

func (d DatabaseConfig) DSN() string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%d/%s?sslmode=%s",
		d.User, d.Password, d.Host, d.Port, d.DBName, d.SSLMode,
	)
}

type NATSConfig struct {
	URL string `mapstructure:"url"`
}

// ValkeyConfig configures the postcode cache. An empty Addr disables it.
type ValkeyConfig struct {
	Addr   string `mapstructure:"addr"`
	Prefix string `mapstructure:"prefix"`
}

type TelemetryConfig struct {
	ServiceName string `mapstructure:"service_name"`
	TempoAddr   string `mapstructure:"tempo_addr"`
	Enabled     bool   `mapstructure:"enabled"`
}

// PostcodeConfig selects and tunes the postcode resolver.
// Source is "api" (HTTP lookup), "database" (postcodes table) or "file" (GeoNames TSV).
type PostcodeConfig struct {
	Source     string `mapstructure:"source"`
	BaseURL    string `mapstructure:"base_url"`
	Timeout    int    `mapstructure:"timeout"` // seconds
	MaxRetries int    `mapstructure:"max_retries"`
	File       string `mapstructure:"file"`
}

// CampusConfig selects the campus catalogue. Source is "config" or "database".
type CampusConfig struct {
	Source   string        `mapstructure:"source"`
	Campuses []CampusEntry `mapstructure:"campuses"`
}

type CampusEntry struct {
	ID   string  `mapstructure:"id"`
	Name string  `mapstructure:"name"`
	Lat  float64 `mapstructure:"lat"`
	Lon  float64 `mapstructure:"lon"`
}

type RadiusConfig struct {
	Min     float64 `mapstructure:"min"`
	Max     float64 `mapstructure:"max"`
	Step    float64 `mapstructure:"step"`
	Default float64 `mapstructure:"default"`
}

// DefaultCampuses is the stock campus list used when none is configured.
var DefaultCampuses = []CampusEntry{
	{ID: "unimelb", Name: "University of Melbourne", Lat: -37.7963, Lon: 144.9614},
	{ID: "usyd", Name: "University of Sydney", Lat: -33.8882, Lon: 151.1873},
	{ID: "monash", Name: "Monash University", Lat: -37.9105, Lon: 145.1363},
	{ID: "unsw", Name: "UNSW Sydney", Lat: -33.9173, Lon: 151.2313},
	{ID: "anu", Name: "Australian National University", Lat: -35.2777, Lon: 149.1185},
}

// Load reads configuration from file and environment variables.
func Load(service string) (*Config, error) {
	v := viper.New()

	// Defaults
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.read_timeout", 10)
	v.SetDefault("server.write_timeout", 10)
	v.SetDefault("database.enabled", false)
	v.SetDefault("database.host", "localhost")
	v.SetDefault("database.port", 5432)
	v.SetDefault("database.user", "campus")
	v.SetDefault("database.password", "")
	v.SetDefault("database.dbname", "campusradius")
	v.SetDefault("database.sslmode", "disable")
	v.SetDefault("nats.url", "")
	v.SetDefault("valkey.addr", "localhost:6379")
	v.SetDefault("valkey.prefix", "campusradius")
	v.SetDefault("telemetry.service_name", service)
	v.SetDefault("telemetry.tempo_addr", "tempo:4317")
	v.SetDefault("telemetry.enabled", false)
	v.SetDefault("postcode.source", "api")
	v.SetDefault("postcode.base_url", "https://www.candlefox.com/wp-json/api/v1")
	v.SetDefault("postcode.timeout", 5)
	v.SetDefault("postcode.max_retries", 2)
	v.SetDefault("postcode.file", "data/AU.txt")
	v.SetDefault("campus.source", "config")
	v.SetDefault("radius.min", 50)
	v.SetDefault("radius.max", 250)
	v.SetDefault("radius.step", 25)
	v.SetDefault("radius.default", 50)

	// Config file (optional)
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.AddConfigPath("./configs")
	_ = v.ReadInConfig() // OK if missing

	// Environment variables: CAMPUSRADIUS_POSTCODE_SOURCE → postcode.source
	v.SetEnvPrefix("CAMPUSRADIUS")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}

	if len(cfg.Campus.Campuses) == 0 {
		cfg.Campus.Campuses = append([]CampusEntry(nil), DefaultCampuses...)
	}
	cfg.Theme = cfg.Theme.WithDefaults()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// Validate checks that required configuration fields are present and sane.
func (c *Config) Validate() error {
	var errs []string

	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		errs = append(errs, fmt.Sprintf("server.port must be 1-65535, got %d", c.Server.Port))
	}
	if c.Server.ReadTimeout <= 0 {
		errs = append(errs, "server.read_timeout must be positive")
	}
	if c.Server.WriteTimeout <= 0 {
		errs = append(errs, "server.write_timeout must be positive")
	}
	if c.Database.Enabled {
		if c.Database.Host == "" {
			errs = append(errs, "database.host is required")
		}
		if c.Database.Port <= 0 || c.Database.Port > 65535 {
			errs = append(errs, fmt.Sprintf("database.port must be 1-65535, got %d", c.Database.Port))
		}
		if c.Database.User == "" {
			errs = append(errs, "database.user is required")
		}
		if c.Database.DBName == "" {
			errs = append(errs, "database.dbname is required")
		}
	}

	switch c.Postcode.Source {
	case "api":
		if c.Postcode.BaseURL == "" {
			errs = append(errs, "postcode.base_url is required for source api")
		}
		if c.Postcode.Timeout <= 0 {
			errs = append(errs, "postcode.timeout must be positive")
		}
		if c.Postcode.MaxRetries < 0 {
			errs = append(errs, "postcode.max_retries must not be negative")
		}
	case "database":
		if !c.Database.Enabled {
			errs = append(errs, "postcode.source database requires database.enabled")
		}
	case "file":
		if c.Postcode.File == "" {
			errs = append(errs, "postcode.file is required for source file")
		}
	default:
		errs = append(errs, fmt.Sprintf("postcode.source must be api, database or file, got %q", c.Postcode.Source))
	}

	switch c.Campus.Source {
	case "config":
		seen := make(map[string]bool)
		for i, e := range c.Campus.Campuses {
			if e.ID == "" {
				errs = append(errs, fmt.Sprintf("campus.campuses[%d].id is required", i))
			} else if seen[e.ID] {
				errs = append(errs, fmt.Sprintf("campus.campuses[%d].id %q is duplicated", i, e.ID))
			}
			seen[e.ID] = true
			if e.Lat < -90 || e.Lat > 90 || e.Lon < -180 || e.Lon > 180 {
				errs = append(errs, fmt.Sprintf("campus.campuses[%d] has out-of-range coordinates", i))
			}
		}
	case "database":
		if !c.Database.Enabled {
			errs = append(errs, "campus.source database requires database.enabled")
		}
	default:
		errs = append(errs, fmt.Sprintf("campus.source must be config or database, got %q", c.Campus.Source))
	}

	if c.Radius.Min <= 0 {
		errs = append(errs, "radius.min must be positive")
	}
	if c.Radius.Max < c.Radius.Min {
		errs = append(errs, "radius.max must not be below radius.min")
	}
	if c.Radius.Step <= 0 {
		errs = append(errs, "radius.step must be positive")
	}

	if len(errs) > 0 {
		return fmt.Errorf("config validation failed:\n  - %s", strings.Join(errs, "\n  - "))
	}
	return nil
}

// Range converts the radius settings, clamping Default into [Min, Max].
func (r RadiusConfig) Range() domain.RadiusRange {
	rng := domain.RadiusRange{Min: r.Min, Max: r.Max, Step: r.Step}
	rng.Default = rng.Clamp(r.Default)
	return rng
}

// List converts the configured campus entries.
func (c CampusConfig) List() []domain.Campus {
	out := make([]domain.Campus, 0, len(c.Campuses))
	for _, e := range c.Campuses {
		out = append(out, domain.Campus{
			ID:       e.ID,
			Name:     e.Name,
			Location: domain.GeoPoint{Lat: e.Lat, Lon: e.Lon},
		})
	}
	return out
}
