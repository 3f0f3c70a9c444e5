package commands

import (
	"encoding/json"
	"fmt"
	"io"
	"trustpilot-collector/internal/scrapers/trustpilot"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
)

const (
	FORMAT_TABLE = "table"
	FORMAT_JSON  = "json"
)

const maxTitleWidth = 48

func newTable(w io.Writer) table.Writer {
	t := table.NewWriter()
	t.SetStyle(table.StyleRounded)
	t.SetOutputMirror(w)
	return t
}

func writeJson(w io.Writer, value any) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(value)
}

func yesNo(value bool) string {
	if value {
		return "yes"
	}
	return "no"
}

func renderReviews(w io.Writer, format string, reviews []trustpilot.Review) error {
	switch format {
	case FORMAT_JSON:
		return writeJson(w, reviews)
	case FORMAT_TABLE:
	default:
		return fmt.Errorf("unknown format %q", format)
	}

	t := newTable(w)
	t.AppendHeader(table.Row{"Time", "Rating", "User", "Country", "Verified", "Title", "Replied"})
	for _, r := range reviews {
		t.AppendRow(table.Row{
			r.Time,
			r.Rating,
			r.User,
			r.Iso,
			yesNo(r.Verified),
			text.Trim(r.Title, maxTitleWidth),
			yesNo(r.Answer != ""),
		})
	}
	t.AppendFooter(table.Row{"", "", "", "", "", "Total", len(reviews)})
	t.Render()
	return nil
}

func renderProfile(w io.Writer, format string, profile trustpilot.Profile) error {
	switch format {
	case FORMAT_JSON:
		return writeJson(w, profile)
	case FORMAT_TABLE:
	default:
		return fmt.Errorf("unknown format %q", format)
	}

	t := newTable(w)
	t.AppendRows([]table.Row{
		{"Business", profile.Business},
		{"Category", profile.Category},
		{"Website", profile.Website},
		{"Logo", profile.Logo},
		{"Rating", profile.Rating},
		{"Qualification", profile.Qualification},
		{"Total reviews", profile.TotalReviews},
	})
	t.Render()
	return nil
}
