package trustpilot

import (
	"context"
	"fmt"
	"net"
	"net/http"
	"net/url"
	"time"
	"trustpilot-collector/internal/components/assert"
	"trustpilot-collector/internal/components/telemetry"
	"trustpilot-collector/pkg/restyutil"

	cloudflarebp "github.com/DaRealFreak/cloudflare-bp-go"
	"github.com/go-resty/resty/v2"
)

const (
	report_client_fetch = "client.fetch"
)

// Fetcher returns the raw markup of the pages the collector reads.
type Fetcher interface {
	// ReviewsPage fetches one page of the review listing, pages start at 1.
	ReviewsPage(ctx context.Context, businessId string, page int) ([]byte, error)
	// ProfilePage fetches the business' landing page.
	ProfilePage(ctx context.Context, businessId string) ([]byte, error)
}

const DEFAULT_USER_AGENT = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/123.0.0.0 Safari/537.36"

type ClientOptions struct {
	BaseUrl      string
	UserAgent    string
	Timeout      time.Duration
	MaxRedirects int
	// CloudflareBypass wraps the transport so requests look like they come from a browser
	// to cloudflare's bot detection.
	CloudflareBypass bool
	// DumpDir, when set, is emptied and receives a text file per request and response.
	DumpDir string
}

func DefaultClientOptions() ClientOptions {
	return ClientOptions{
		BaseUrl:          SITE_ORIGIN,
		UserAgent:        DEFAULT_USER_AGENT,
		Timeout:          time.Second * 120,
		MaxRedirects:     10,
		CloudflareBypass: true,
	}
}

// Client is the resty backed Fetcher. It makes exactly one request per call and never
// retries.
type Client struct {
	http *resty.Client
	tel  telemetry.API
}

func newTransport(timeout time.Duration) *http.Transport {
	dialer := &net.Dialer{
		Timeout:   timeout,
		KeepAlive: 30 * time.Second,
	}
	return &http.Transport{
		Proxy:                 http.ProxyFromEnvironment,
		DialContext:           dialer.DialContext,
		ForceAttemptHTTP2:     true,
		MaxIdleConns:          10,
		IdleConnTimeout:       90 * time.Second,
		TLSHandshakeTimeout:   timeout,
		ExpectContinueTimeout: 1 * time.Second,
	}
}

func NewClient(opts ClientOptions, tel telemetry.API) (Client, error) {
	assert.NotNil(tel)
	tel = telemetry.NewScopedAPI("trustpilot_client", tel)

	baseUrl, err := url.Parse(opts.BaseUrl)
	if err != nil {
		return Client{}, fmt.Errorf("%w: parse base url: %w", ErrInvalidOptions, err)
	}
	if baseUrl.Scheme == "" || baseUrl.Host == "" {
		return Client{}, fmt.Errorf("%w: base url %q must be absolute", ErrInvalidOptions, opts.BaseUrl)
	}
	if opts.MaxRedirects < 0 {
		return Client{}, fmt.Errorf("%w: max redirects must be >= 0", ErrInvalidOptions)
	}

	httpClient := resty.New()
	httpClient.SetBaseURL(baseUrl.String())
	httpClient.SetTransport(newTransport(opts.Timeout))
	if opts.CloudflareBypass {
		httpClient.GetClient().Transport = cloudflarebp.AddCloudFlareByPass(httpClient.GetClient().Transport)
	}

	userAgent := opts.UserAgent
	if userAgent == "" {
		userAgent = DEFAULT_USER_AGENT
	}
	httpClient.SetHeader("user-agent", userAgent)
	httpClient.SetRedirectPolicy(resty.FlexibleRedirectPolicy(opts.MaxRedirects))
	httpClient.SetTimeout(opts.Timeout)

	telemetry.InstrumentResty(httpClient, tel)
	if opts.DumpDir != "" {
		output, err := restyutil.NewFilesystemOutput(opts.DumpDir)
		if err != nil {
			return Client{}, fmt.Errorf("%w: dump dir: %w", ErrInvalidOptions, err)
		}
		restyutil.Dump(httpClient, output)
	}

	return Client{
		http: httpClient,
		tel:  tel,
	}, nil
}

// ReviewsPath is the path and query of a page of the review listing, the first page
// carries no page parameter.
func ReviewsPath(businessId string, page int) string {
	assert.NotEmptyStr(businessId)
	path := fmt.Sprintf("/review/%s?languages=all", url.PathEscape(businessId))
	if page != 1 {
		path += fmt.Sprintf("&page=%d", page)
	}
	return path + "&sort=recency"
}

// ProfilePath is the path of the business' landing page.
func ProfilePath(businessId string) string {
	assert.NotEmptyStr(businessId)
	return fmt.Sprintf("/review/%s", url.PathEscape(businessId))
}

func (c Client) get(ctx context.Context, endpoint string) ([]byte, error) {
	res, err := c.http.R().
		SetContext(ctx).
		Get(endpoint)
	if err != nil {
		c.tel.ReportBroken(
			report_client_fetch,
			fmt.Errorf("fetch: %w", err),
			endpoint,
		)
		return nil, fmt.Errorf("%w: GET %s: %w", ErrTransport, endpoint, err)
	}
	if !res.IsSuccess() {
		c.tel.ReportBroken(
			report_client_fetch,
			fmt.Errorf("unexpected status: %s", res.Status()),
			endpoint,
		)
		return nil, fmt.Errorf("%w: GET %s: unexpected status %d", ErrTransport, endpoint, res.StatusCode())
	}
	return res.Body(), nil
}

func (c Client) ReviewsPage(ctx context.Context, businessId string, page int) ([]byte, error) {
	return c.get(ctx, ReviewsPath(businessId, page))
}

func (c Client) ProfilePage(ctx context.Context, businessId string) ([]byte, error) {
	return c.get(ctx, ProfilePath(businessId))
}
