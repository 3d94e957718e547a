package main

import (
	"github.com/spf13/cobra"

	"github.com/samirrijal/campusradius/internal/core/domain"
	"github.com/samirrijal/campusradius/internal/core/usecases"
)

var (
	evalFrom   domain.GeoPoint
	evalTo     domain.GeoPoint
	evalRadius float64
)

var evaluateCmd = &cobra.Command{
	Use:     "evaluate",
	Short:   "Evaluate the distance between two coordinates",
	Example: "  campusradius evaluate --from-lat -37.8136 --from-lon 144.9631 --to-lat -33.8688 --to-lon 151.2093 --radius 750",
	RunE: func(cmd *cobra.Command, _ []string) error {
		ctx := cmd.Context()

		svc, err := services(ctx)
		if err != nil {
			return err
		}
		defer svc.Close()

		from, to := evalFrom, evalTo
		res, err := svc.Eligibility.Check(ctx, usecases.CheckInput{
			Origin:      &from,
			Destination: &to,
			RadiusKm:    evalRadius,
		})
		if err != nil {
			return err
		}
		return writeResult(cmd.OutOrStdout(), outputFormat, res)
	},
}

func init() {
	f := evaluateCmd.Flags()
	f.Float64Var(&evalFrom.Lat, "from-lat", 0, "origin latitude")
	f.Float64Var(&evalFrom.Lon, "from-lon", 0, "origin longitude")
	f.Float64Var(&evalTo.Lat, "to-lat", 0, "destination latitude")
	f.Float64Var(&evalTo.Lon, "to-lon", 0, "destination longitude")
	f.Float64Var(&evalRadius, "radius", 0, "radius in km (required)")
	for _, name := range []string{"from-lat", "from-lon", "to-lat", "to-lon", "radius"} {
		_ = evaluateCmd.MarkFlagRequired(name)
	}
}
