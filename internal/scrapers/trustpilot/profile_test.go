package trustpilot

import (
	"context"
	"testing"
	"trustpilot-collector/internal/components/telemetry"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"
)

func TestExtractProfile(t *testing.T) {
	profile, err := extractProfile(parseFixture(t, "profile.html"))
	require.NoError(t, err)

	expected := Profile{
		Business:      "Example Ltd",
		Category:      "Electronics Store",
		Website:       "https://example.com/",
		Logo:          "https://s3-eu-west-1.amazonaws.com/tpd/logos/5f1e2d3c4b5a69788796a5b0/0x0.png",
		Rating:        "4.7",
		Qualification: "EXCELLENT",
		TotalReviews:  "1234",
	}
	diff := cmp.Diff(expected, profile)
	if diff != "" {
		t.Fatalf("mismatch (-want +got):\n%s", diff)
	}
}

func TestExtractProfileMissingOverview(t *testing.T) {
	_, err := extractProfile(parseFixture(t, "profile_missing_overview.html"))
	require.ErrorIs(t, err, ErrParseDefect)
}

func TestExtractProfileMissingFields(t *testing.T) {
	doc, err := ParseDocument([]byte(`<section data-business-unit-overview="true">
		<span data-business-unit-name-typography="true">Bare Inc</span>
	</section>`))
	require.NoError(t, err)

	profile, err := extractProfile(doc)
	require.NoError(t, err)
	require.Equal(t, Profile{Business: "Bare Inc"}, profile)
}

func TestStripQuery(t *testing.T) {
	testCases := []struct {
		in       string
		expected string
	}{
		{in: "https://example.com/?utm_source=trustpilot", expected: "https://example.com/"},
		{in: "https://example.com/shop", expected: "https://example.com/shop"},
		{in: "https://example.com/?a=1?b=2", expected: "https://example.com/"},
		{in: "", expected: ""},
	}

	for _, test := range testCases {
		require.Equal(t, test.expected, stripQuery(test.in), test.in)
	}
}

func TestParseSummary(t *testing.T) {
	testCases := []struct {
		summary       string
		qualification string
		total         string
	}{
		{summary: "Excellent · 1,234 reviews", qualification: "EXCELLENT", total: "1234"},
		{summary: "Bad · 12 reviews", qualification: "BAD", total: "12"},
		{summary: "Great | 1.025.331 reviews", qualification: "GREAT", total: "1025331"},
		{summary: "Average", qualification: "AVERAGE", total: ""},
		{summary: "", qualification: "", total: ""},
	}

	for _, test := range testCases {
		require.Equal(t, test.qualification, parseQualification(test.summary), test.summary)
		require.Equal(t, test.total, parseTotalReviews(test.summary), test.summary)
	}
}

func TestCollectProfile(t *testing.T) {
	fetcher := newFixtureFetcher(t)
	collector, tel := newTestCollector(t, DefaultOptions("example.com"), fetcher)

	profile, err := collector.Profile(context.Background())
	require.NoError(t, err)
	require.Equal(t, "Example Ltd", profile.Business)
	require.Equal(t, 1, fetcher.profileCalls)
	require.Empty(t, tel.Reports(telemetry.KIND_BROKEN))

	// every call fetches again
	_, err = collector.Profile(context.Background())
	require.NoError(t, err)
	require.Equal(t, 2, fetcher.profileCalls)
}

func TestCollectProfileFailure(t *testing.T) {
	fetcher := newFixtureFetcher(t)
	fetcher.profile = nil
	collector, tel := newTestCollector(t, DefaultOptions("example.com"), fetcher)

	_, err := collector.Profile(context.Background())
	require.ErrorIs(t, err, ErrTransport)
	require.Len(t, tel.Reports(telemetry.KIND_BROKEN), 1)

	fetcher.profile = loadFixture(t, "profile_missing_overview.html")
	_, err = collector.Profile(context.Background())
	require.ErrorIs(t, err, ErrParseDefect)
	require.Len(t, tel.Reports(telemetry.KIND_BROKEN), 2)
}
