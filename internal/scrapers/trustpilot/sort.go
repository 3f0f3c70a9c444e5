package trustpilot

import (
	"math"
	"slices"
	"strconv"
	"strings"
	"time"
	"trustpilot-collector/internal/components/assert"
)

var reviewTimeLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05",
	"2006-01-02",
}

// parseReviewTime returns the zero time for anything it cannot parse so that those
// reviews sort before every dated review.
func parseReviewTime(value string) time.Time {
	value = strings.TrimSpace(value)
	for _, layout := range reviewTimeLayouts {
		parsed, err := time.Parse(layout, value)
		if err == nil {
			return parsed
		}
	}
	return time.Time{}
}

// parseRating treats a rating that is not a finite number as 0, the same as a missing
// one. NaN would compare equal to everything and break the sort order.
func parseRating(value string) float64 {
	parsed, err := strconv.ParseFloat(strings.TrimSpace(value), 64)
	if err != nil || math.IsNaN(parsed) || math.IsInf(parsed, 0) {
		return 0
	}
	return parsed
}

func compareRating(a, b Review) int {
	ar := parseRating(a.Rating)
	br := parseRating(b.Rating)
	if ar < br {
		return -1
	}
	if ar > br {
		return 1
	}
	return 0
}

func compareTime(a, b Review) int {
	return parseReviewTime(a.Time).Compare(parseReviewTime(b.Time))
}

// SortReviews stably sorts reviews in place.
//
// ORDER_BY_TIME with ORDER_DESC leaves the slice untouched: pages already list reviews
// newest first, so this combination returns reviews in page order even if that order
// is not strictly descending by time.
func SortReviews(reviews []Review, orderBy OrderBy, order Order) {
	assert.OneOf(orderBy, ORDER_BY_TIME, ORDER_BY_RATING)
	assert.OneOf(order, ORDER_ASC, ORDER_DESC)

	var compare func(a, b Review) int
	switch orderBy {
	case ORDER_BY_TIME:
		if order == ORDER_DESC {
			return
		}
		compare = compareTime
	case ORDER_BY_RATING:
		compare = compareRating
	}

	if order == ORDER_DESC {
		ascending := compare
		compare = func(a, b Review) int {
			return ascending(b, a)
		}
	}

	slices.SortStableFunc(reviews, compare)
}
