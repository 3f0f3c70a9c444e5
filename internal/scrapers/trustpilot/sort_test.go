package trustpilot

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func review(id, rating, time string) Review {
	return Review{Id: id, Rating: rating, Time: time}
}

func ids(reviews []Review) []string {
	out := make([]string, len(reviews))
	for i, r := range reviews {
		out[i] = r.Id
	}
	return out
}

func sortSample() []Review {
	return []Review{
		review("b", "3", "2024-03-04T09:00:00.000Z"),
		review("a", "5", "2024-03-05T10:15:00.000Z"),
		review("d", "4", "2024-02-18T12:00:00.000Z"),
		review("c", "1", "2024-02-20T12:00:00.000Z"),
	}
}

func TestSortReviews(t *testing.T) {
	testCases := []struct {
		name     string
		orderBy  OrderBy
		order    Order
		expected []string
	}{
		{
			name:     "time ascending",
			orderBy:  ORDER_BY_TIME,
			order:    ORDER_ASC,
			expected: []string{"d", "c", "b", "a"},
		},
		{
			name:     "time descending keeps page order",
			orderBy:  ORDER_BY_TIME,
			order:    ORDER_DESC,
			expected: []string{"b", "a", "d", "c"},
		},
		{
			name:     "rating ascending",
			orderBy:  ORDER_BY_RATING,
			order:    ORDER_ASC,
			expected: []string{"c", "b", "d", "a"},
		},
		{
			name:     "rating descending",
			orderBy:  ORDER_BY_RATING,
			order:    ORDER_DESC,
			expected: []string{"a", "d", "b", "c"},
		},
	}

	for _, test := range testCases {
		t.Run(test.name, func(t *testing.T) {
			reviews := sortSample()
			SortReviews(reviews, test.orderBy, test.order)
			require.Equal(t, test.expected, ids(reviews))

			// sorting a sorted slice again changes nothing
			SortReviews(reviews, test.orderBy, test.order)
			require.Equal(t, test.expected, ids(reviews))
		})
	}
}

func TestSortReviewsIsStable(t *testing.T) {
	reviews := []Review{
		review("a", "4", "2024-01-01"),
		review("b", "5", "2024-01-02"),
		review("c", "4", "2024-01-03"),
		review("d", "5", "2024-01-04"),
		review("e", "4", "2024-01-05"),
	}

	SortReviews(reviews, ORDER_BY_RATING, ORDER_ASC)
	require.Equal(t, []string{"a", "c", "e", "b", "d"}, ids(reviews))

	SortReviews(reviews, ORDER_BY_RATING, ORDER_DESC)
	require.Equal(t, []string{"b", "d", "a", "c", "e"}, ids(reviews))
}

func TestSortReviewsUnparseableValues(t *testing.T) {
	reviews := []Review{
		review("dated", "2", "2024-01-01T00:00:00Z"),
		review("undated", "n/a", "yesterday"),
		review("empty", "", ""),
	}

	SortReviews(reviews, ORDER_BY_TIME, ORDER_ASC)
	require.Equal(t, []string{"undated", "empty", "dated"}, ids(reviews))

	SortReviews(reviews, ORDER_BY_RATING, ORDER_DESC)
	require.Equal(t, []string{"dated", "undated", "empty"}, ids(reviews))
}

func TestSortReviewsNonFiniteRatings(t *testing.T) {
	reviews := []Review{
		review("a", "3", ""),
		review("b", "NaN", ""),
		review("c", "1", ""),
		review("d", "2", ""),
		review("e", "Inf", ""),
		review("f", "-infinity", ""),
	}

	SortReviews(reviews, ORDER_BY_RATING, ORDER_ASC)
	require.Equal(t, []string{"b", "e", "f", "c", "d", "a"}, ids(reviews))

	SortReviews(reviews, ORDER_BY_RATING, ORDER_DESC)
	require.Equal(t, []string{"a", "d", "c", "b", "e", "f"}, ids(reviews))
}

func TestSortReviewsEmpty(t *testing.T) {
	var reviews []Review
	SortReviews(reviews, ORDER_BY_RATING, ORDER_ASC)
	require.Empty(t, reviews)
}

func TestSortReviewsUnknownOrderPanics(t *testing.T) {
	require.Panics(t, func() {
		SortReviews(sortSample(), OrderBy("helpfulness"), ORDER_ASC)
	})
	require.Panics(t, func() {
		SortReviews(sortSample(), ORDER_BY_TIME, Order("sideways"))
	})
}

func TestParseReviewTime(t *testing.T) {
	require.Equal(t, 2024, parseReviewTime("2024-03-05T10:15:00.000Z").Year())
	require.Equal(t, 2024, parseReviewTime("2024-03-05T10:15:00").Year())
	require.Equal(t, 2024, parseReviewTime(" 2024-03-05 ").Year())
	require.True(t, parseReviewTime("last week").IsZero())
}

func TestParseRating(t *testing.T) {
	require.Equal(t, 4.5, parseRating("4.5"))
	require.Equal(t, 3.0, parseRating(" 3 "))
	require.Equal(t, 0.0, parseRating("five"))
	require.Equal(t, 0.0, parseRating("NaN"))
	require.Equal(t, 0.0, parseRating("+Inf"))
}
