package http_test

import (
	"context"
	"testing"

	"github.com/getkin/kin-openapi/openapi3"

	"github.com/samirrijal/campusradius/api"
)

func loadDoc(t *testing.T) *openapi3.T {
	t.Helper()
	loader := &openapi3.Loader{IsExternalRefsAllowed: false}
	doc, err := loader.LoadFromData(api.OpenAPI)
	if err != nil {
		t.Fatalf("failed to parse OpenAPI document: %v", err)
	}
	return doc
}

// TestOpenAPIDocument validates the embedded OpenAPI document.
func TestOpenAPIDocument(t *testing.T) {
	doc := loadDoc(t)
	if err := doc.Validate(context.Background()); err != nil {
		t.Fatalf("OpenAPI validation failed: %v", err)
	}

	expectedPaths := []string{
		"/v1/health",
		"/v1/ready",
		"/v1/campuses",
		"/v1/campuses/nearby",
		"/v1/campuses/{id}",
		"/v1/radius-options",
		"/v1/eligibility",
		"/v1/eligibility/evaluate",
		"/v1/postcodes/{code}",
		"/v1/theme",
		"/graphql",
	}
	for _, path := range expectedPaths {
		if item := doc.Paths.Find(path); item == nil {
			t.Errorf("expected path %s not found", path)
		}
	}

	expectedSchemas := []string{
		"GeoPoint",
		"Campus",
		"Postcode",
		"RadiusOptions",
		"EligibilityRequest",
		"CheckResult",
		"APIError",
		"Pagination",
	}
	for _, schema := range expectedSchemas {
		if doc.Components.Schemas[schema] == nil {
			t.Errorf("expected schema %s not found", schema)
		}
	}
}

// TestOpenAPIErrorCodes keeps the documented error codes in step with Classify.
func TestOpenAPIErrorCodes(t *testing.T) {
	doc := loadDoc(t)
	codeSchema := doc.Components.Schemas["APIError"].Value.Properties["code"].Value

	documented := make(map[string]bool)
	for _, v := range codeSchema.Enum {
		if s, ok := v.(string); ok {
			documented[s] = true
		}
	}
	for _, code := range []string{"bad_request", "invalid_location", "not_found", "missing_coordinates", "upstream_error", "internal_error"} {
		if !documented[code] {
			t.Errorf("error code %q is not documented", code)
		}
	}
}

func TestOpenAPIInfo(t *testing.T) {
	doc := loadDoc(t)
	if doc.Info.Title != "Campus Radius API" {
		t.Errorf("unexpected title %q", doc.Info.Title)
	}
	if doc.Info.Version != "1.0.0" {
		t.Errorf("expected version 1.0.0, got %q", doc.Info.Version)
	}
	if len(doc.Servers) == 0 {
		t.Error("expected at least one server")
	}
}
