package main

import (
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/samirrijal/campusradius/internal/core/usecases"
)

var (
	checkCampus   string
	checkPostcode string
	checkRadius   float64
)

var checkCmd = &cobra.Command{
	Use:   "check",
	Short: "Check a postcode against a campus",
	Example: "  campusradius check --campus unimelb --postcode 3000 --radius 50\n" +
		"  campusradius check --campus usyd --postcode 2000 --format json",
	RunE: func(cmd *cobra.Command, _ []string) error {
		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		svc, err := services(ctx)
		if err != nil {
			return err
		}
		defer svc.Close()

		radius := checkRadius
		if radius == 0 {
			radius = svc.Campuses.RadiusRange().Default
		}

		res, err := svc.Eligibility.Check(ctx, usecases.CheckInput{
			CampusID: checkCampus,
			Postcode: checkPostcode,
			RadiusKm: radius,
		})
		if err != nil {
			return err
		}
		return writeResult(cmd.OutOrStdout(), outputFormat, res)
	},
}

func init() {
	checkCmd.Flags().StringVar(&checkCampus, "campus", "", "campus id (required)")
	checkCmd.Flags().StringVar(&checkPostcode, "postcode", "", "4-digit Australian postcode (required)")
	checkCmd.Flags().Float64Var(&checkRadius, "radius", 0, "radius in km (default: configured radius.default)")
	_ = checkCmd.MarkFlagRequired("campus")
	_ = checkCmd.MarkFlagRequired("postcode")
}
