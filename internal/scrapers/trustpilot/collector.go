package trustpilot

import (
	"context"
	"fmt"
	"trustpilot-collector/internal/components/assert"
	"trustpilot-collector/internal/components/telemetry"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

var tracer = otel.Tracer("scrapers/trustpilot")

const (
	report_collector_reviews = "collector.reviews"
	report_collector_profile = "collector.profile"
)

// Collector collects the reviews and profile of one business. It holds no state
// between calls and can be shared between goroutines.
type Collector struct {
	opts    Options
	fetcher Fetcher
	tel     telemetry.API
}

func NewCollector(opts Options, fetcher Fetcher, tel telemetry.API) (Collector, error) {
	assert.NotNil(fetcher)
	assert.NotNil(tel)

	err := opts.Validate()
	if err != nil {
		return Collector{}, err
	}

	return Collector{
		opts:    opts,
		fetcher: fetcher,
		tel:     telemetry.NewScopedAPI("trustpilot_scraper", tel),
	}, nil
}

func (c Collector) Options() Options {
	return c.opts
}

func (c Collector) full(reviews []Review) bool {
	return c.opts.Count != COUNT_ALL && len(reviews) >= c.opts.Count
}

func (c Collector) fetchReviewsPage(ctx context.Context, page int) (Element, error) {
	ctx, span := tracer.Start(ctx, "collector:fetchReviewsPage", trace.WithAttributes(
		attribute.Int("page", page),
	))
	defer span.End()

	raw, err := c.fetcher.ReviewsPage(ctx, c.opts.BusinessId, page)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "failed to fetch")
		return Element{}, err
	}
	doc, err := ParseDocument(raw)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "failed to parse html")
		return Element{}, err
	}
	return doc, nil
}

// Reviews fetches review pages one after the other until every page has been read or
// Options.Count reviews have been collected, then sorts them.
//
// The total amount of pages is only known after the first page, so pages are never
// fetched ahead.
func (c Collector) Reviews(ctx context.Context) ([]Review, error) {
	ctx, span := tracer.Start(ctx, "collector:Reviews", trace.WithAttributes(
		attribute.String("business_id", c.opts.BusinessId),
		attribute.Int("count", c.opts.Count),
	))
	defer span.End()

	reviews := []Review{}
	if c.opts.Count == 0 {
		return reviews, nil
	}

	totalPages := 1
	for page := 1; page <= totalPages; page++ {
		c.tel.ReportDebug(report_collector_reviews, c.opts.BusinessId, page, totalPages)

		doc, err := c.fetchReviewsPage(ctx, page)
		if err != nil {
			c.tel.ReportBroken(
				report_collector_reviews,
				fmt.Errorf("page %d: %w", page, err),
				c.opts.BusinessId,
			)
			return nil, err
		}

		if page == 1 {
			totalPages, err = detectPageCount(doc)
			if err != nil {
				span.RecordError(err)
				span.SetStatus(codes.Error, "failed to detect pagination")
				c.tel.ReportBroken(
					report_collector_reviews,
					fmt.Errorf("detect pagination: %w", err),
					c.opts.BusinessId,
				)
				return nil, err
			}
			span.SetAttributes(attribute.Int("total_pages", totalPages))
		}

		for i, card := range doc.All(selectReviewCard) {
			if c.full(reviews) {
				break
			}
			review, err := assembleReview(card)
			if err != nil {
				c.tel.ReportWarning(
					report_collector_reviews,
					fmt.Errorf("skip card %d on page %d: %w", i, page, err),
					c.opts.BusinessId,
				)
				continue
			}
			reviews = append(reviews, review)
		}

		if c.full(reviews) {
			break
		}
	}

	SortReviews(reviews, c.opts.OrderBy, c.opts.Order)

	c.tel.ReportCount(report_collector_reviews, int64(len(reviews)))
	return reviews, nil
}
