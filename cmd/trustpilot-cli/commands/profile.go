package commands

import (
	"context"
	"os"
	"trustpilot-collector/internal/export"
	"trustpilot-collector/internal/scrapers/trustpilot"

	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(profileCmd)
}

var profileCmd = &cobra.Command{
	Use:   "profile <business-id>",
	Short: "Prints the overview of a business, ex. profile example.com",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig(*configPath)
		if err != nil {
			return err
		}
		opts := trustpilot.DefaultOptions(args[0])
		collector, err := newCollector(cfg, opts)
		if err != nil {
			return err
		}

		profile, err := collector.Profile(cmd.Context())
		if err != nil {
			return err
		}

		err = withSink(cmd.Context(), func(ctx context.Context, sink export.Sink) error {
			return sink.WriteProfile(ctx, opts.BusinessId, profile)
		})
		if err != nil {
			return err
		}

		return renderProfile(os.Stdout, *format, profile)
	},
}
