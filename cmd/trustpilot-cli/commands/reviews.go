package commands

import (
	"context"
	"log/slog"
	"os"
	"time"
	"trustpilot-collector/internal/export"
	"trustpilot-collector/internal/scrapers/trustpilot"

	"github.com/spf13/cobra"
)

func init() {
	reviewsCmd.Flags().Int("count", trustpilot.COUNT_ALL, "The maximum amount of reviews to collect, -1 collects every page.")
	reviewsCmd.Flags().String("order-by", string(trustpilot.ORDER_BY_TIME), "Sort key, one of: time, rating.")
	reviewsCmd.Flags().String("order", string(trustpilot.ORDER_DESC), "Sort direction, one of: asc, desc.")
	rootCmd.AddCommand(reviewsCmd)
}

func newCollector(cfg Config, opts trustpilot.Options) (trustpilot.Collector, error) {
	clientOpts := cfg.ClientOptions()
	clientOpts.DumpDir = *dumpDir
	client, err := trustpilot.NewClient(clientOpts, tel)
	if err != nil {
		return trustpilot.Collector{}, err
	}
	return trustpilot.NewCollector(opts, client, tel)
}

func withSink(ctx context.Context, write func(ctx context.Context, sink export.Sink) error) error {
	if *dbPath == "" {
		return nil
	}
	sink, err := export.Open(*dbPath, tel)
	if err != nil {
		return err
	}
	defer sink.Close()
	return write(ctx, sink)
}

var reviewsCmd = &cobra.Command{
	Use:   "reviews <business-id> [--count <n>] [--order-by time|rating] [--order asc|desc]",
	Short: "Collects the reviews of a business, ex. reviews example.com --count 20",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig(*configPath)
		if err != nil {
			return err
		}
		opts, err := cfg.Options(args[0], cmd.Flags())
		if err != nil {
			return err
		}
		collector, err := newCollector(cfg, opts)
		if err != nil {
			return err
		}

		t1 := time.Now()
		reviews, err := collector.Reviews(cmd.Context())
		if err != nil {
			return err
		}
		slog.Info("collected reviews", "business", opts.BusinessId, "count", len(reviews), "seconds", time.Since(t1).Seconds())

		err = withSink(cmd.Context(), func(ctx context.Context, sink export.Sink) error {
			return sink.WriteReviews(ctx, opts.BusinessId, reviews)
		})
		if err != nil {
			return err
		}

		return renderReviews(os.Stdout, *format, reviews)
	},
}
