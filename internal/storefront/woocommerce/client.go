// Package woocommerce publishes products to a WooCommerce store through
// its REST API (wc/v3).
package woocommerce

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/agentstation/shelfsync/internal/cache"
	"github.com/agentstation/shelfsync/internal/transport"
	"github.com/agentstation/shelfsync/pkg/constants"
	"github.com/agentstation/shelfsync/pkg/errors"
	"github.com/agentstation/shelfsync/pkg/logging"
	"github.com/agentstation/shelfsync/pkg/storefront"
)

const (
	provider = "woocommerce"
	apiPath  = "wp-json/wc/v3/"

	// maxLoggedBody bounds response bodies copied into error logs
	maxLoggedBody = 512
)

// Client implements storefront.Client for WooCommerce.
type Client struct {
	base      *url.URL
	transport *transport.Client
	memo      *cache.Cache
	pageSize  int
}

var _ storefront.Client = (*Client)(nil)

type clientConfig struct {
	httpClient *http.Client
	timeout    time.Duration
	queryAuth  bool
}

// Option configures a Client.
type Option func(*clientConfig)

// WithHTTPClient replaces the underlying HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *clientConfig) {
		c.httpClient = hc
	}
}

// WithTimeout sets the per-request timeout.
func WithTimeout(d time.Duration) Option {
	return func(c *clientConfig) {
		c.timeout = d
	}
}

// WithQueryAuth sends the consumer key and secret as query parameters
// instead of basic authentication.
func WithQueryAuth(enabled bool) Option {
	return func(c *clientConfig) {
		c.queryAuth = enabled
	}
}

// NewClient creates a client for the store at siteURL.
func NewClient(siteURL, consumerKey, consumerSecret string, opts ...Option) (*Client, error) {
	if siteURL == "" {
		return nil, &errors.ConfigError{Component: provider, Message: "WC_URL is not set"}
	}
	if consumerKey == "" || consumerSecret == "" {
		return nil, &errors.ConfigError{
			Component: provider,
			Message:   "WC_CONSUMER_KEY and WC_CONSUMER_SECRET are required",
			Err:       errors.ErrAPIKeyRequired,
		}
	}

	site, err := url.Parse(strings.TrimRight(siteURL, "/") + "/")
	if err != nil {
		return nil, &errors.ConfigError{Component: provider, Message: "invalid WC_URL", Err: err}
	}

	cfg := &clientConfig{}
	for _, opt := range opts {
		opt(cfg)
	}

	var auth transport.Authenticator = &transport.BasicAuth{Username: consumerKey, Password: consumerSecret}
	if cfg.queryAuth {
		auth = &transport.QueryAuth{Params: map[string]string{
			"consumer_key":    consumerKey,
			"consumer_secret": consumerSecret,
		}}
	}

	return &Client{
		base: site.ResolveReference(&url.URL{Path: apiPath}),
		transport: transport.New(auth,
			transport.WithHTTPClient(cfg.httpClient),
			transport.WithTimeout(cfg.timeout),
		),
		memo:     cache.New(constants.TaxonomyCacheTTL, constants.PriceCacheCleanup),
		pageSize: constants.StorefrontPageSize,
	}, nil
}

// call performs one request and returns its status and raw body. Only a
// request that could not complete is an error; statuses of 400 and above
// are logged and left to the caller.
func (c *Client) call(ctx context.Context, method, path string, params url.Values, body any) (int, []byte, error) {
	u := c.base.ResolveReference(&url.URL{Path: path})
	if params != nil {
		u.RawQuery = params.Encode()
	}

	resp, err := c.transport.Send(ctx, method, u.String(), body)
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return 0, nil, fmt.Errorf("%w: %w", errors.ErrCanceled, ctxErr)
		}
		return 0, nil, &errors.APIError{
			Provider: provider,
			Endpoint: method + " " + path,
			Message:  "request failed",
			Err:      err,
		}
	}

	data, err := transport.ReadBody(resp)
	if err != nil {
		return resp.StatusCode, nil, err
	}
	if resp.StatusCode >= 400 {
		logging.FromContext(ctx).Error().
			Int("status", resp.StatusCode).
			Str("method", method).
			Str("endpoint", path).
			Str("response", truncate(data)).
			Msg("WooCommerce API error")
	}
	return resp.StatusCode, data, nil
}

// fetch performs one request that must succeed with a 2xx status and
// decodes the answer into out when out is non-nil.
func (c *Client) fetch(ctx context.Context, method, path string, params url.Values, body, out any) error {
	status, data, err := c.call(ctx, method, path, params, body)
	if err != nil {
		return err
	}
	if status < 200 || status > 299 {
		return &errors.APIError{
			Provider:   provider,
			StatusCode: status,
			Message:    truncate(data),
			Endpoint:   method + " " + path,
		}
	}
	if out == nil || len(bytes.TrimSpace(data)) == 0 {
		return nil
	}
	if err := json.Unmarshal(data, out); err != nil {
		return errors.WrapParse("json", path, err)
	}
	return nil
}

func pageParams(page, perPage int) url.Values {
	return url.Values{
		"page":     {fmt.Sprint(page)},
		"per_page": {fmt.Sprint(perPage)},
	}
}

func truncate(data []byte) string {
	if len(data) > maxLoggedBody {
		return string(data[:maxLoggedBody]) + "..."
	}
	return string(data)
}
