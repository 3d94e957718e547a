package config

import (
	"strings"
	"testing"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load("campusradius-test")
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Server.Port != 8080 {
		t.Errorf("expected port 8080, got %d", cfg.Server.Port)
	}
	if cfg.Postcode.Source != "api" {
		t.Errorf("expected api postcode source, got %q", cfg.Postcode.Source)
	}
	if len(cfg.Campus.Campuses) != 5 {
		t.Errorf("expected 5 default campuses, got %d", len(cfg.Campus.Campuses))
	}
	if cfg.Telemetry.ServiceName != "campusradius-test" {
		t.Errorf("expected service name from argument, got %q", cfg.Telemetry.ServiceName)
	}
	if cfg.Theme.PrimaryColor != "#3f51b5" {
		t.Errorf("expected default theme, got %q", cfg.Theme.PrimaryColor)
	}

	rng := cfg.Radius.Range()
	if rng.Min != 50 || rng.Max != 250 || rng.Step != 25 || rng.Default != 50 {
		t.Errorf("unexpected radius range %+v", rng)
	}
}

func TestLoad_EnvOverride(t *testing.T) {
	t.Setenv("CAMPUSRADIUS_SERVER_PORT", "9090")
	t.Setenv("CAMPUSRADIUS_POSTCODE_SOURCE", "file")
	t.Setenv("CAMPUSRADIUS_POSTCODE_FILE", "/tmp/AU.txt")

	cfg, err := Load("campusradius-test")
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Server.Port != 9090 {
		t.Errorf("expected port 9090, got %d", cfg.Server.Port)
	}
	if cfg.Postcode.Source != "file" || cfg.Postcode.File != "/tmp/AU.txt" {
		t.Errorf("unexpected postcode config %+v", cfg.Postcode)
	}
}

func TestLoad_InvalidSource(t *testing.T) {
	t.Setenv("CAMPUSRADIUS_POSTCODE_SOURCE", "carrier-pigeon")

	_, err := Load("campusradius-test")
	if err == nil {
		t.Fatal("expected validation error")
	}
	if !strings.Contains(err.Error(), "postcode.source") {
		t.Errorf("expected postcode.source in error, got %v", err)
	}
}

func TestValidate_CollectsAllErrors(t *testing.T) {
	cfg := &Config{
		Server:   ServerConfig{Port: 0, ReadTimeout: 10, WriteTimeout: 10},
		Postcode: PostcodeConfig{Source: "database"},
		Campus: CampusConfig{Source: "config", Campuses: []CampusEntry{
			{ID: "a", Lat: 0, Lon: 0},
			{ID: "a", Lat: 95, Lon: 0},
		}},
		Radius: RadiusConfig{Min: 50, Max: 10, Step: 25},
	}

	err := cfg.Validate()
	if err == nil {
		t.Fatal("expected validation error")
	}
	for _, want := range []string{
		"server.port",
		"postcode.source database requires database.enabled",
		"duplicated",
		"out-of-range",
		"radius.max",
	} {
		if !strings.Contains(err.Error(), want) {
			t.Errorf("expected %q in error:\n%v", want, err)
		}
	}
}

func TestRadiusConfig_RangeClampsDefault(t *testing.T) {
	rng := RadiusConfig{Min: 50, Max: 250, Step: 25, Default: 10}.Range()
	if rng.Default != 50 {
		t.Errorf("expected default clamped to 50, got %v", rng.Default)
	}
}

func TestCampusConfig_List(t *testing.T) {
	list := CampusConfig{Campuses: DefaultCampuses}.List()
	if len(list) != len(DefaultCampuses) {
		t.Fatalf("expected %d campuses, got %d", len(DefaultCampuses), len(list))
	}
	if list[0].ID != "unimelb" || list[0].Location.Lat != -37.7963 {
		t.Errorf("unexpected first campus %+v", list[0])
	}
}
