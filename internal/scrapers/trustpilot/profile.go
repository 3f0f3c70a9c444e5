package trustpilot

import (
	"context"
	"fmt"
	"strings"
	"unicode"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

// every profile lookup is scoped to the overview, the rest of the page lists other
// businesses with the same markers
const selectProfileOverview = "[data-business-unit-overview]"

const (
	selectProfileName     = "[data-business-unit-name-typography]"
	selectProfileCategory = "[data-business-unit-category-link]"
	selectProfileWebsite  = "[data-business-unit-website-link]"
	selectProfileLogo     = "img[data-business-unit-logo-image]"
	selectProfileRating   = "[data-rating-typography]"
	// holds both the qualification and the review count, ex. "Excellent · 1,234 reviews"
	selectProfileSummary = "[data-reviews-count-typography]"
)

// stripQuery drops everything from the first "?" on.
func stripQuery(link string) string {
	before, _, _ := strings.Cut(link, "?")
	return before
}

// parseQualification uppercases the letters that come before the count in the summary label.
func parseQualification(summary string) string {
	end := strings.IndexFunc(summary, unicode.IsDigit)
	if end >= 0 {
		summary = summary[:end]
	}

	var out strings.Builder
	for _, r := range summary {
		if unicode.IsLetter(r) {
			out.WriteRune(unicode.ToUpper(r))
		}
	}
	return out.String()
}

// parseTotalReviews keeps only the digits of the summary label.
func parseTotalReviews(summary string) string {
	var out strings.Builder
	for _, r := range summary {
		if unicode.IsDigit(r) {
			out.WriteRune(r)
		}
	}
	return out.String()
}

func extractProfile(doc Element) (Profile, error) {
	overview := doc.First(selectProfileOverview)
	if !overview.Exists() {
		return Profile{}, fmt.Errorf("%w: business overview not found", ErrParseDefect)
	}

	summary := overview.First(selectProfileSummary).Text()

	return Profile{
		Business:      overview.First(selectProfileName).Text(),
		Category:      overview.First(selectProfileCategory).Text(),
		Website:       stripQuery(overview.First(selectProfileWebsite).Attr("href")),
		Logo:          overview.First(selectProfileLogo).Attr("src"),
		Rating:        overview.First(selectProfileRating).Text(),
		Qualification: parseQualification(summary),
		TotalReviews:  parseTotalReviews(summary),
	}, nil
}

// Profile fetches the business' landing page and reads its overview. Nothing is cached,
// every call makes a request.
func (c Collector) Profile(ctx context.Context) (Profile, error) {
	ctx, span := tracer.Start(ctx, "collector:Profile", trace.WithAttributes(
		attribute.String("business_id", c.opts.BusinessId),
	))
	defer span.End()

	c.tel.ReportDebug(report_collector_profile, c.opts.BusinessId)

	raw, err := c.fetcher.ProfilePage(ctx, c.opts.BusinessId)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "failed to fetch")
		c.tel.ReportBroken(report_collector_profile, err, c.opts.BusinessId)
		return Profile{}, err
	}
	doc, err := ParseDocument(raw)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "failed to parse html")
		c.tel.ReportBroken(report_collector_profile, err, c.opts.BusinessId)
		return Profile{}, err
	}

	profile, err := extractProfile(doc)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "failed to extract profile")
		c.tel.ReportBroken(report_collector_profile, err, c.opts.BusinessId)
		return Profile{}, err
	}
	return profile, nil
}
