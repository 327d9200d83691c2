// Package sentinelhttp implements the REST bootstrap operations of
// spec.md §4.2 against an HTTPDoer collaborator contract.
package sentinelhttp

import (
	"context"
	"io"
	"net/http"

	"github.com/rs/zerolog"
	"golang.org/x/time/rate"

	"github.com/racelabs/sentinel-connector/internal/sentinel"
)

// HTTPDoer is the collaborator contract spec.md §1 calls out: "performs
// authenticated GETs returning JSON bodies". Satisfied directly by
// *http.Client.
type HTTPDoer interface {
	Do(req *http.Request) (*http.Response, error)
}

// Client wraps an HTTPDoer with the bearer token, base URI, and an
// outbound rate limiter that protects the upstream sentinel server from
// request bursts during bootstrap and per-record fetch fan-out — the
// outbound analog of the teacher's inbound `internal/api/middleware.go`
// rate limiter.
type Client struct {
	doer        HTTPDoer
	limiter     *rate.Limiter
	baseURI     string
	accessToken string
	log         zerolog.Logger
}

// NewClient builds a Client. ratePerSec <= 0 disables limiting (an
// unlimited rate.Limiter).
func NewClient(doer HTTPDoer, baseURI, accessToken string, ratePerSec float64, burst int, log zerolog.Logger) *Client {
	limit := rate.Inf
	if ratePerSec > 0 {
		limit = rate.Limit(ratePerSec)
	}
	if burst <= 0 {
		burst = 1
	}
	return &Client{
		doer:        doer,
		limiter:     rate.NewLimiter(limit, burst),
		baseURI:     baseURI,
		accessToken: accessToken,
		log:         log.With().Str("component", "sentinelhttp").Logger(),
	}
}

func (c *Client) get(ctx context.Context, path string, query string) ([]byte, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, sentinel.New(sentinel.KindHTTP, err)
	}

	u := c.baseURI + path
	if query != "" {
		u += "?" + query
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, sentinel.New(sentinel.KindURLParse, err)
	}
	req.Header.Set("Authorization", "Bearer "+c.accessToken)

	resp, err := c.doer.Do(req)
	if err != nil {
		return nil, sentinel.New(sentinel.KindHTTP, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, sentinel.New(sentinel.KindIO, err)
	}
	if resp.StatusCode >= 400 {
		return nil, sentinel.Newf(sentinel.KindHTTP, "unexpected status %d from %s", resp.StatusCode, u)
	}
	return body, nil
}
