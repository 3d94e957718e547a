package postgres

import (
	"context"
	"errors"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/pashagolub/pgxmock/v4"
	"github.com/samirrijal/campusradius/internal/core/domain"
)

var postcodeCols = []string{"code", "place", "state", "has_loc", "lat", "lon"}

func TestPostcodeRepo_Resolve(t *testing.T) {
	mock, err := pgxmock.NewPool()
	if err != nil {
		t.Fatal(err)
	}
	defer mock.Close()

	mock.ExpectQuery("FROM postcodes").
		WithArgs("3000").
		WillReturnRows(pgxmock.NewRows(postcodeCols).
			AddRow("3000", "Melbourne", "Victoria", true, -37.8136, 144.9631))

	pc, err := NewPostcodeRepo(mock).Resolve(context.Background(), "3000")
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	if pc.Place != "Melbourne" || pc.Location.Lat != -37.8136 {
		t.Errorf("unexpected postcode %+v", pc)
	}
}

func TestPostcodeRepo_ResolveErrors(t *testing.T) {
	tests := []struct {
		name   string
		expect func(m pgxmock.PgxPoolIface)
		want   error
	}{
		{
			name: "no rows",
			expect: func(m pgxmock.PgxPoolIface) {
				m.ExpectQuery("FROM postcodes").WithArgs("0000").
					WillReturnRows(pgxmock.NewRows(postcodeCols))
			},
			want: domain.ErrNotFound,
		},
		{
			name: "null coordinates",
			expect: func(m pgxmock.PgxPoolIface) {
				m.ExpectQuery("FROM postcodes").WithArgs("0000").
					WillReturnRows(pgxmock.NewRows(postcodeCols).
						AddRow("0000", "Nowhere", "", false, 0.0, 0.0))
			},
			want: domain.ErrMissingCoordinates,
		},
		{
			name: "query failure",
			expect: func(m pgxmock.PgxPoolIface) {
				m.ExpectQuery("FROM postcodes").WithArgs("0000").
					WillReturnError(errors.New("connection refused"))
			},
			want: domain.ErrTransport,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mock, err := pgxmock.NewPool()
			if err != nil {
				t.Fatal(err)
			}
			defer mock.Close()
			tt.expect(mock)

			_, err = NewPostcodeRepo(mock).Resolve(context.Background(), "0000")
			if !errors.Is(err, tt.want) {
				t.Errorf("expected %v, got %v", tt.want, err)
			}
		})
	}
}

func TestPostcodeRepo_Import(t *testing.T) {
	mock, err := pgxmock.NewPool()
	if err != nil {
		t.Fatal(err)
	}
	defer mock.Close()

	rows := []domain.Postcode{
		{Code: "3000", Place: "Melbourne", State: "Victoria", Location: domain.GeoPoint{Lat: -37.8136, Lon: 144.9631}},
		{Code: "2000", Place: "Sydney", State: "New South Wales", Location: domain.GeoPoint{Lat: -33.8688, Lon: 151.2093}},
	}

	mock.ExpectBegin()
	mock.ExpectExec("TRUNCATE postcodes").WillReturnResult(pgxmock.NewResult("TRUNCATE", 0))
	mock.ExpectCopyFrom(pgx.Identifier{"postcodes"}, []string{"code", "place", "state", "lat", "lon"}).
		WillReturnResult(2)
	mock.ExpectCommit()

	n, err := NewPostcodeRepo(mock).Import(context.Background(), rows)
	if err != nil {
		t.Fatalf("import: %v", err)
	}
	if n != 2 {
		t.Errorf("expected 2 rows copied, got %d", n)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Error(err)
	}
}

func TestPostcodeRepo_ImportRollsBack(t *testing.T) {
	mock, err := pgxmock.NewPool()
	if err != nil {
		t.Fatal(err)
	}
	defer mock.Close()

	mock.ExpectBegin()
	mock.ExpectExec("TRUNCATE postcodes").WillReturnError(errors.New("permission denied"))
	mock.ExpectRollback()

	if _, err := NewPostcodeRepo(mock).Import(context.Background(), nil); err == nil {
		t.Fatal("expected error")
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Error(err)
	}
}
