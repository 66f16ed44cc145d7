// Package api is the client for the public character REST API. It hides
// the API's inconsistent response shapes and hands back normalized records.
package api

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"chardash/internal/errors"
	"chardash/internal/log"
	"chardash/pkg/types"

	"golang.org/x/sync/singleflight"
	"golang.org/x/time/rate"
)

const (
	// MaxPages stops every multi-page loop so a broken next-page link
	// cannot spin forever. Hitting it is not an error.
	MaxPages = 100
	// DefaultPageSize is used by FetchAll.
	DefaultPageSize = 50
	// DefaultBaseURL is the public API root.
	DefaultBaseURL = "https://api.disneyapi.dev"

	defaultTimeout = 15 * time.Second
	maxBodyBytes   = 16 << 20
)

// Page is one normalized page of results.
type Page struct {
	Characters   []types.Character
	TotalCount   int
	TotalPages   int
	NextPage     string
	PreviousPage string
}

// HasNext reports whether the upstream advertised another page.
func (p *Page) HasNext() bool {
	return p != nil && p.NextPage != ""
}

// PageFetcher is the part of the client the store depends on.
type PageFetcher interface {
	FetchPage(ctx context.Context, page, pageSize int) (*Page, error)
}

// Client talks to the character API.
type Client struct {
	baseURL string
	http    *http.Client
	limiter *rate.Limiter
	lookups singleflight.Group
	logger  *log.Logger
	timeout time.Duration
}

// Option configures a Client.
type Option func(*Client)

// WithBaseURL points the client at another API root.
func WithBaseURL(base string) Option {
	return func(c *Client) {
		c.baseURL = strings.TrimRight(base, "/")
	}
}

// WithHTTPClient replaces the underlying HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		c.http = hc
	}
}

// WithTimeout sets the per-request timeout. It is applied to a copy of the
// HTTP client, so a client passed to WithHTTPClient is never modified.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		c.timeout = d
	}
}

// WithRateLimit paces requests to rps per second. Zero disables pacing.
func WithRateLimit(rps float64) Option {
	return func(c *Client) {
		if rps <= 0 {
			c.limiter = nil
			return
		}
		c.limiter = rate.NewLimiter(rate.Limit(rps), 1)
	}
}

// WithLogger sets the logger used for request tracing.
func WithLogger(l *log.Logger) Option {
	return func(c *Client) {
		c.logger = l
	}
}

// New creates a client for the public API unless overridden by opts.
func New(opts ...Option) *Client {
	c := &Client{
		baseURL: DefaultBaseURL,
		http:    &http.Client{Timeout: defaultTimeout},
		logger:  log.LogWithFields(log.F("component", "api")),
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.timeout > 0 {
		hc := *c.http
		hc.Timeout = c.timeout
		c.http = &hc
	}
	return c
}

// FetchPage fetches one page of characters.
func (c *Client) FetchPage(ctx context.Context, page, pageSize int) (*Page, error) {
	q := url.Values{}
	q.Set("page", strconv.Itoa(page))
	q.Set("pageSize", strconv.Itoa(pageSize))
	endpoint := c.baseURL + "/character?" + q.Encode()

	body, err := c.get(ctx, endpoint)
	if err != nil {
		return nil, err
	}

	p := decodePage(body)
	c.logger.With(log.F("page", page), log.F("records", len(p.Characters)), log.F("has_next", p.HasNext())).
		Debug("fetched character page")
	return p, nil
}

// FetchAll walks every page from 1 at DefaultPageSize until the API stops
// advertising a next page or MaxPages is reached.
func (c *Client) FetchAll(ctx context.Context) ([]types.Character, error) {
	all := []types.Character{}
	for page := 1; page <= MaxPages; page++ {
		p, err := c.FetchPage(ctx, page, DefaultPageSize)
		if err != nil {
			return nil, errors.Wrapf(err, "fetch all characters: page %d", page)
		}
		all = append(all, p.Characters...)
		if !p.HasNext() {
			break
		}
	}
	return all, nil
}

// FetchCharacter fetches a single character. Concurrent calls for the same
// id share one request.
func (c *Client) FetchCharacter(ctx context.Context, id int) (types.Character, error) {
	endpoint := fmt.Sprintf("%s/character/%d", c.baseURL, id)

	v, err, _ := c.lookups.Do(strconv.Itoa(id), func() (interface{}, error) {
		body, err := c.get(ctx, endpoint)
		if err != nil {
			return nil, err
		}
		char, ok := decodeSingle(body)
		if !ok {
			return nil, errors.NewRemoteFetchError(endpoint, 0, errors.New("response is not a character object"))
		}
		return char, nil
	})
	if err != nil {
		return types.Character{}, err
	}
	return v.(types.Character), nil
}

func (c *Client) get(ctx context.Context, endpoint string) ([]byte, error) {
	if c.limiter != nil {
		if err := c.limiter.Wait(ctx); err != nil {
			return nil, errors.NewRemoteFetchError(endpoint, 0, err)
		}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, errors.NewRemoteFetchError(endpoint, 0, err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, errors.NewRemoteFetchError(endpoint, 0, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, errors.NewRemoteFetchError(endpoint, resp.StatusCode, nil)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return nil, errors.NewRemoteFetchError(endpoint, resp.StatusCode, err)
	}
	return body, nil
}
