package trustpilot

import (
	"errors"
	"fmt"
)

var (
	// ErrTransport is returned when a page could not be fetched, either because of a
	// network failure or a non-2xx response.
	ErrTransport = errors.New("trustpilot: transport failure")
	// ErrParseDefect is returned when a page is missing structure that is required to
	// continue, it usually means the site template has changed.
	ErrParseDefect = errors.New("trustpilot: parse defect")
	// ErrInvalidOptions is returned by NewCollector for options it cannot act on.
	ErrInvalidOptions = errors.New("trustpilot: invalid options")
)

// Review is a single review card. Every field is always set, text that is missing
// from the markup is the empty string and Rating defaults to "0".
type Review struct {
	Id         string `json:"id"`
	User       string `json:"user"`
	Iso        string `json:"iso"`
	AvatarUrl  string `json:"avatarUrl"`
	Verified   bool   `json:"verified"`
	Title      string `json:"title"`
	Url        string `json:"url"`
	Body       string `json:"body"`
	Rating     string `json:"rating"`
	Time       string `json:"time"`
	Answer     string `json:"answer"`
	AnswerTime string `json:"answerTime"`
}

// Profile is the business overview shown at the top of the first review page.
type Profile struct {
	Business      string `json:"business"`
	Category      string `json:"category"`
	Website       string `json:"website"`
	Logo          string `json:"logo"`
	Rating        string `json:"rating"`
	Qualification string `json:"qualification"`
	TotalReviews  string `json:"total_reviews"`
}

type OrderBy string

const (
	ORDER_BY_TIME   OrderBy = "time"
	ORDER_BY_RATING OrderBy = "rating"
)

type Order string

const (
	ORDER_ASC  Order = "asc"
	ORDER_DESC Order = "desc"
)

// COUNT_ALL collects every review on every page.
const COUNT_ALL = -1

type Options struct {
	// BusinessId is the path segment of the business on the site, usually its domain.
	BusinessId string
	// Count is the maximum amount of reviews to collect, COUNT_ALL means unbounded.
	Count   int
	OrderBy OrderBy
	Order   Order
}

func DefaultOptions(businessId string) Options {
	return Options{
		BusinessId: businessId,
		Count:      COUNT_ALL,
		OrderBy:    ORDER_BY_TIME,
		Order:      ORDER_DESC,
	}
}

func (o Options) Validate() error {
	if o.BusinessId == "" {
		return fmt.Errorf("%w: empty business id", ErrInvalidOptions)
	}
	if o.Count < COUNT_ALL {
		return fmt.Errorf("%w: count must be >= %d, got %d", ErrInvalidOptions, COUNT_ALL, o.Count)
	}
	switch o.OrderBy {
	case ORDER_BY_TIME, ORDER_BY_RATING:
	default:
		return fmt.Errorf("%w: unknown order by %q", ErrInvalidOptions, o.OrderBy)
	}
	switch o.Order {
	case ORDER_ASC, ORDER_DESC:
	default:
		return fmt.Errorf("%w: unknown order %q", ErrInvalidOptions, o.Order)
	}
	return nil
}
