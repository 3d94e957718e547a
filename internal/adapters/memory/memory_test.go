package memory

import (
	"context"
	"errors"
	"io"
	"strings"
	"testing"
	"testing/iotest"

	"github.com/samirrijal/campusradius/internal/core/domain"
)

const sample = "AU\t3000\tMelbourne\tVictoria\tVIC\tMelbourne\t24600\t\t\t-37.814\t144.9633\t4\n" +
	"AU\t3000\tMelbourne GPO\tVictoria\tVIC\tMelbourne\t24600\t\t\t-37.81\t144.96\t4\n" +
	"AU\t2000\tSydney\tNew South Wales\tNSW\tSydney\t17200\t\t\t-33.8688\t151.2093\t4\n" +
	"AU\t0872\tAyers Rock\tNorthern Territory\tNT\t\t\t\t\t\t\t\n" +
	"AU\t9999\tBroken\tnot enough columns\n" +
	"AU\t4000\tBrisbane\tQueensland\tQLD\t\t\t\t\tnorth\t153.02\t4\n"

func TestReadPostcodes(t *testing.T) {
	table, err := ReadPostcodes(strings.NewReader(sample))
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if table.Len() != 3 {
		t.Fatalf("expected 3 postcodes, got %d", table.Len())
	}
	if got := len(table.All()); got != 2 {
		t.Errorf("expected 2 postcodes with coordinates, got %d", got)
	}

	pc, err := table.Resolve(context.Background(), "3000")
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	if pc.Place != "Melbourne" || pc.State != "VIC" || pc.Location.Lat != -37.814 {
		t.Errorf("expected first row to win, got %+v", pc)
	}
}

func TestPostcodeTable_ResolveErrors(t *testing.T) {
	table, err := ReadPostcodes(strings.NewReader(sample))
	if err != nil {
		t.Fatal(err)
	}
	tests := map[string]error{
		"0872": domain.ErrMissingCoordinates,
		"4000": domain.ErrNotFound,
		"9999": domain.ErrNotFound,
		"1234": domain.ErrNotFound,
	}
	for code, want := range tests {
		if _, err := table.Resolve(context.Background(), code); !errors.Is(err, want) {
			t.Errorf("Resolve(%s): expected %v, got %v", code, want, err)
		}
	}
}

func TestReadPostcodes_ReaderFailure(t *testing.T) {
	errDisk := errors.New("disk read failed")
	r := io.MultiReader(
		strings.NewReader("AU\t3000\tMelbourne GPO\tVictoria\tVIC\tMelbourne\t24600\t\t\t-37.81\t144.96\t4\n"),
		iotest.ErrReader(errDisk),
	)

	_, err := ReadPostcodes(r)
	if !errors.Is(err, errDisk) {
		t.Fatalf("expected reader error to abort the load, got %v", err)
	}
}

func TestLoadPostcodeFile_Missing(t *testing.T) {
	if _, err := LoadPostcodeFile("does-not-exist.txt"); err == nil {
		t.Fatal("expected error")
	}
}

func TestCampusRepo(t *testing.T) {
	repo := NewCampusRepo([]domain.Campus{
		{ID: "unimelb", Name: "University of Melbourne"},
		{ID: "usyd", Name: "University of Sydney"},
		{ID: "unimelb", Name: "Duplicate"},
	})
	ctx := context.Background()

	list, _ := repo.List(ctx)
	if len(list) != 2 {
		t.Fatalf("expected 2 campuses, got %d", len(list))
	}
	list[0].Name = "mutated"

	c, err := repo.GetByID(ctx, "unimelb")
	if err != nil || c == nil {
		t.Fatalf("expected campus, got %v, %v", c, err)
	}
	if c.Name != "University of Melbourne" {
		t.Errorf("repo state leaked: %q", c.Name)
	}

	if c, _ := repo.GetByID(ctx, "rmit"); c != nil {
		t.Errorf("expected nil for unknown campus, got %+v", c)
	}
}
