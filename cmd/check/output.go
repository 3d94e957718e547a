package main

import (
	"encoding/json"
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/samirrijal/campusradius/internal/core/domain"
)

func writeJSON(w io.Writer, v interface{}) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func writeResult(w io.Writer, format string, res *domain.CheckResult) error {
	if format == "json" {
		return writeJSON(w, res)
	}

	from := res.Origin.String()
	if res.Campus != nil {
		from = res.Campus.Name
	}
	to := res.Destination.String()
	if res.Postcode != nil {
		to = res.Postcode.Code
		if res.Postcode.Place != "" {
			to = fmt.Sprintf("%s %s %s", res.Postcode.Code, res.Postcode.Place, res.Postcode.State)
		}
	}

	verdict := "NOT eligible"
	if res.IsEligible {
		verdict = "eligible"
	}
	_, err := fmt.Fprintf(w, "%s -> %s: %.2f km (%s, radius %g km)\n",
		from, to, res.DistanceKm, verdict, res.RadiusKm)
	return err
}

func writeCampuses(w io.Writer, format string, list []domain.Campus) error {
	if format == "json" {
		return writeJSON(w, list)
	}

	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tNAME\tLAT\tLON")
	for _, c := range list {
		fmt.Fprintf(tw, "%s\t%s\t%.4f\t%.4f\n", c.ID, c.Name, c.Location.Lat, c.Location.Lon)
	}
	return tw.Flush()
}
