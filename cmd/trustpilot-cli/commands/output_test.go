package commands

import (
	"bytes"
	"encoding/json"
	"testing"
	"trustpilot-collector/internal/scrapers/trustpilot"

	"github.com/stretchr/testify/require"
)

var outputReviews = []trustpilot.Review{
	{
		Id:         "r1",
		User:       "Jane Doe",
		Iso:        "GB",
		Verified:   true,
		Title:      "Great service",
		Rating:     "5",
		Time:       "2024-03-05T10:15:00.000Z",
		Answer:     "Thank you Jane!",
		AnswerTime: "2024-03-06T08:00:00.000Z",
	},
	{
		Id:     "r2",
		User:   "John Smith",
		Title:  "It was okay",
		Rating: "3",
		Time:   "2024-03-04T09:00:00.000Z",
	},
}

func TestRenderReviewsJson(t *testing.T) {
	var out bytes.Buffer
	require.NoError(t, renderReviews(&out, FORMAT_JSON, outputReviews))

	var decoded []map[string]any
	require.NoError(t, json.Unmarshal(out.Bytes(), &decoded))
	require.Len(t, decoded, 2)

	keys := []string{"id", "user", "iso", "avatarUrl", "verified", "title", "url", "body", "rating", "time", "answer", "answerTime"}
	for _, record := range decoded {
		require.Len(t, record, len(keys))
		for _, key := range keys {
			require.Contains(t, record, key)
		}
	}
	require.Equal(t, "", decoded[1]["answer"])
	require.Equal(t, true, decoded[0]["verified"])
}

func TestRenderReviewsTable(t *testing.T) {
	var out bytes.Buffer
	require.NoError(t, renderReviews(&out, FORMAT_TABLE, outputReviews))

	rendered := out.String()
	require.Contains(t, rendered, "Great service")
	require.Contains(t, rendered, "John Smith")
	require.Contains(t, rendered, "TOTAL")
}

func TestRenderProfile(t *testing.T) {
	profile := trustpilot.Profile{
		Business:      "Example Ltd",
		Rating:        "4.7",
		Qualification: "EXCELLENT",
		TotalReviews:  "1234",
	}

	var out bytes.Buffer
	require.NoError(t, renderProfile(&out, FORMAT_JSON, profile))

	var decoded map[string]string
	require.NoError(t, json.Unmarshal(out.Bytes(), &decoded))
	require.Equal(t, "1234", decoded["total_reviews"])
	require.Equal(t, "EXCELLENT", decoded["qualification"])

	out.Reset()
	require.NoError(t, renderProfile(&out, FORMAT_TABLE, profile))
	require.Contains(t, out.String(), "Example Ltd")
}

func TestRenderUnknownFormat(t *testing.T) {
	var out bytes.Buffer
	require.Error(t, renderReviews(&out, "yaml", outputReviews))
	require.Error(t, renderProfile(&out, "yaml", trustpilot.Profile{}))
	require.Empty(t, out.String())
}
