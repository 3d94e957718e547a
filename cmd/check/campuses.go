package main

import (
	"github.com/spf13/cobra"
)

var campusesCmd = &cobra.Command{
	Use:   "campuses",
	Short: "List the campus catalogue",
	RunE: func(cmd *cobra.Command, _ []string) error {
		ctx := cmd.Context()

		svc, err := services(ctx)
		if err != nil {
			return err
		}
		defer svc.Close()

		list, err := svc.Campuses.List(ctx)
		if err != nil {
			return err
		}
		return writeCampuses(cmd.OutOrStdout(), outputFormat, list)
	},
}
