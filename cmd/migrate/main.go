package main

import (
	"context"
	"fmt"
	"log"
	"os"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/samirrijal/campusradius/internal/adapters/memory"
	"github.com/samirrijal/campusradius/internal/adapters/postgres"
	"github.com/samirrijal/campusradius/internal/core/domain"
	"github.com/samirrijal/campusradius/internal/core/ports"
	"github.com/samirrijal/campusradius/internal/pkg/config"
)

func main() {
	if len(os.Args) < 2 {
		log.Fatal("usage: migrate <up|seed>")
	}

	cfg, err := config.Load("campusradius-migrate")
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	ctx := context.Background()
	pool, err := pgxpool.New(ctx, cfg.Database.DSN())
	if err != nil {
		log.Fatalf("db: %v", err)
	}
	defer pool.Close()

	switch os.Args[1] {
	case "up":
		runMigrations(ctx, pool)
	case "seed":
		seed(ctx, pool, cfg)
	default:
		log.Fatalf("unknown command: %s", os.Args[1])
	}
}

func runMigrations(ctx context.Context, pool *pgxpool.Pool) {
	files := []string{
		"migrations/001_campuses.sql",
		"migrations/002_postcodes.sql",
	}

	for _, f := range files {
		data, err := os.ReadFile(f)
		if err != nil {
			log.Fatalf("read %s: %v", f, err)
		}

		if _, err := pool.Exec(ctx, string(data)); err != nil {
			log.Fatalf("exec %s: %v", f, err)
		}

		fmt.Printf("OK  %s\n", f)
	}

	log.Println("all migrations applied")
}

// seed loads the configured campuses and, when postcode.file exists, the
// GeoNames postcode dump.
func seed(ctx context.Context, pool *pgxpool.Pool, cfg *config.Config) {
	n, err := seedCampuses(ctx, postgres.NewCampusRepo(pool), cfg.Campus.List())
	if err != nil {
		log.Fatalf("seed campuses: %v", err)
	}
	fmt.Printf("OK  %d campuses\n", n)

	if _, err := os.Stat(cfg.Postcode.File); err != nil {
		log.Printf("skipping postcodes: %v", err)
		return
	}
	table, err := memory.LoadPostcodeFile(cfg.Postcode.File)
	if err != nil {
		log.Fatalf("load postcodes: %v", err)
	}
	imported, err := postgres.NewPostcodeRepo(pool).Import(ctx, table.All())
	if err != nil {
		log.Fatalf("import postcodes: %v", err)
	}
	fmt.Printf("OK  %d postcodes from %s\n", imported, cfg.Postcode.File)
}

func seedCampuses(ctx context.Context, w ports.CampusWriter, campuses []domain.Campus) (int, error) {
	for i := range campuses {
		if err := w.Upsert(ctx, &campuses[i]); err != nil {
			return i, fmt.Errorf("upsert %s: %w", campuses[i].ID, err)
		}
	}
	return len(campuses), nil
}
