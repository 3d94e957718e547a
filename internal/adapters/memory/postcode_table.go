package memory

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strconv"
	"strings"

	"github.com/samirrijal/campusradius/internal/core/domain"
)

// GeoNames postal code dump columns.
const (
	colPostcode  = 1
	colPlace     = 2
	colStateCode = 4
	colLat       = 9
	colLon       = 10
	geoNamesCols = 12
)

type entry struct {
	pc     domain.Postcode
	hasLoc bool
}

// PostcodeTable implements ports.PostcodeResolver over a GeoNames dump held
// in memory. The first row for a code wins.
type PostcodeTable struct {
	rows map[string]entry
}

// LoadPostcodeFile reads a GeoNames TSV file from path.
func LoadPostcodeFile(path string) (*PostcodeTable, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open postcode file: %w", err)
	}
	defer f.Close()
	return ReadPostcodes(f)
}

// ReadPostcodes parses GeoNames TSV rows. Malformed rows are skipped with a
// warning; rows with blank coordinates are kept and resolve to
// ErrMissingCoordinates. A failure of r itself aborts the load.
func ReadPostcodes(r io.Reader) (*PostcodeTable, error) {
	cr := csv.NewReader(r)
	cr.Comma = '\t'
	cr.FieldsPerRecord = geoNamesCols
	cr.LazyQuotes = true
	cr.ReuseRecord = true

	t := &PostcodeTable{rows: make(map[string]entry)}
	line := 0
	for {
		rec, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		line++
		if err != nil {
			var perr *csv.ParseError
			if !errors.As(err, &perr) && !errors.Is(err, csv.ErrFieldCount) {
				return nil, fmt.Errorf("read postcode row %d: %w", line, err)
			}
			slog.Warn("skipping postcode row", "line", line, "error", err)
			continue
		}

		code := strings.TrimSpace(rec[colPostcode])
		if code == "" {
			continue
		}
		if _, seen := t.rows[code]; seen {
			continue
		}

		e := entry{pc: domain.Postcode{
			Code:  code,
			Place: rec[colPlace],
			State: rec[colStateCode],
		}}
		latStr, lonStr := strings.TrimSpace(rec[colLat]), strings.TrimSpace(rec[colLon])
		if latStr != "" && lonStr != "" {
			lat, err := strconv.ParseFloat(latStr, 64)
			if err != nil {
				slog.Warn("skipping postcode row: bad latitude", "line", line, "postcode", code, "error", err)
				continue
			}
			lon, err := strconv.ParseFloat(lonStr, 64)
			if err != nil {
				slog.Warn("skipping postcode row: bad longitude", "line", line, "postcode", code, "error", err)
				continue
			}
			e.pc.Location = domain.GeoPoint{Lat: lat, Lon: lon}
			e.hasLoc = true
		}
		t.rows[code] = e
	}
	return t, nil
}

// Len returns the number of distinct postcodes.
func (t *PostcodeTable) Len() int {
	return len(t.rows)
}

// All returns every postcode that has coordinates.
func (t *PostcodeTable) All() []domain.Postcode {
	out := make([]domain.Postcode, 0, len(t.rows))
	for _, e := range t.rows {
		if e.hasLoc {
			out = append(out, e.pc)
		}
	}
	return out
}

// Resolve looks up code.
func (t *PostcodeTable) Resolve(ctx context.Context, code string) (*domain.Postcode, error) {
	e, ok := t.rows[code]
	if !ok {
		return nil, fmt.Errorf("%w: %s", domain.ErrNotFound, code)
	}
	if !e.hasLoc {
		return nil, fmt.Errorf("%w: %s", domain.ErrMissingCoordinates, code)
	}
	pc := e.pc
	return &pc, nil
}
