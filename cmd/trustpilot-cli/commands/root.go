package commands

import (
	"context"
	"fmt"
	"os"
	"trustpilot-collector/internal/components/telemetry"

	"github.com/spf13/cobra"
)

var (
	configPath *string
	debug      *bool
	format     *string
	dbPath     *string
	dumpDir    *string
)

// set by the root command before any subcommand runs
var tel telemetry.API

func init() {
	configPath = rootCmd.PersistentFlags().String("config", "trustpilot.json5", "The config file to read, trustpilot.local.json5 next to it overrides it.")
	debug = rootCmd.PersistentFlags().Bool("debug", false, "Log every request and page.")
	format = rootCmd.PersistentFlags().String("format", FORMAT_TABLE, "Output format, one of: table, json.")
	dbPath = rootCmd.PersistentFlags().String("db", "", "A sqlite database to also write the results to.")
	dumpDir = rootCmd.PersistentFlags().String("dump", "", "A directory to write every http exchange to, it is emptied first.")
}

var rootCmd = &cobra.Command{
	Use:          "trustpilot-cli",
	Short:        "trustpilot-cli collects the public reviews and profile of a business on trustpilot.",
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		telemetry.InitSlog(*debug)

		switch *format {
		case FORMAT_TABLE, FORMAT_JSON:
		default:
			return fmt.Errorf("unknown format %q", *format)
		}

		otelApi, err := telemetry.NewOtelAPI(telemetry.SlogAPI{})
		if err != nil {
			return err
		}
		tel = otelApi
		return nil
	},
}

// ExecuteContext runs the cli and returns the process exit code.
func ExecuteContext(ctx context.Context) int {
	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	return 0
}
