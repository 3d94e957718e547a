package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/samirrijal/campusradius/internal/bootstrap"
	"github.com/samirrijal/campusradius/internal/pkg/config"
	"github.com/samirrijal/campusradius/internal/pkg/logging"
)

var (
	cfg          *config.Config
	outputFormat string
	logLevel     string
)

var rootCmd = &cobra.Command{
	Use:   "campusradius",
	Short: "Check whether a postcode is within driving range of a campus",
	Long: "Resolves Australian postcodes and campuses to coordinates and reports the " +
		"great-circle distance between them against a radius in kilometres.",
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		switch outputFormat {
		case "json", "text":
		default:
			return fmt.Errorf("--format must be json or text, got %q", outputFormat)
		}

		c, err := config.Load("campusradius-cli")
		if err != nil {
			return fmt.Errorf("load config: %w", err)
		}
		cfg = c

		// Logs go to stderr so stdout stays machine readable.
		slog.SetDefault(logging.New(os.Stderr, logLevel, "text"))
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&outputFormat, "format", "text", "output format: text or json")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "warn", "log level: debug, info, warn or error")

	rootCmd.AddCommand(checkCmd, campusesCmd, evaluateCmd)
}

// services builds the service graph without cache or events; a one-shot
// check has nothing to gain from either.
func services(ctx context.Context) (*bootstrap.Services, error) {
	return bootstrap.New(ctx, cfg, bootstrap.Options{})
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
