// Package poizon provides a client for the Poizon marketplace API.
package poizon

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/agentstation/shelfsync/internal/transport"
	"github.com/agentstation/shelfsync/pkg/catalogs"
	"github.com/agentstation/shelfsync/pkg/errors"
	"github.com/agentstation/shelfsync/pkg/sources"
)

const (
	// DefaultBaseURL is the public Poizon API gateway.
	DefaultBaseURL = "https://poizon-api.com/api/poizon-ru/"

	// APIKeyHeader carries the API key on every request.
	APIKeyHeader = "x-api-key"

	provider = "poizon"
)

// Client implements sources.Client for Poizon.
type Client struct {
	baseURL   *url.URL
	transport *transport.Client
}

var _ sources.Client = (*Client)(nil)

type clientConfig struct {
	baseURL    string
	httpClient *http.Client
	timeout    time.Duration
}

// Option configures a Client.
type Option func(*clientConfig)

// WithBaseURL overrides DefaultBaseURL.
func WithBaseURL(u string) Option {
	return func(c *clientConfig) {
		if u != "" {
			c.baseURL = u
		}
	}
}

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

// NewClient creates a Poizon client authenticated with apiKey.
func NewClient(apiKey string, opts ...Option) (*Client, error) {
	if apiKey == "" {
		return nil, &errors.ConfigError{
			Component: provider,
			Message:   "POIZON_API_KEY is not set",
			Err:       errors.ErrAPIKeyRequired,
		}
	}

	cfg := &clientConfig{baseURL: DefaultBaseURL}
	for _, opt := range opts {
		opt(cfg)
	}

	base, err := url.Parse(cfg.baseURL)
	if err != nil {
		return nil, &errors.ConfigError{Component: provider, Message: "invalid base URL", Err: err}
	}
	// Resolve relative paths under the base, not beside it.
	if !strings.HasSuffix(base.Path, "/") {
		base.Path += "/"
	}

	return &Client{
		baseURL: base,
		transport: transport.New(
			&transport.HeaderAuth{Header: APIKeyHeader, Key: apiKey},
			transport.WithHTTPClient(cfg.httpClient),
			transport.WithTimeout(cfg.timeout),
		),
	}, nil
}

// Search returns one page of search results. A non-200 answer is an error
// carrying the API's message.
func (c *Client) Search(ctx context.Context, q sources.Query) ([]sources.SearchResult, error) {
	params := url.Values{}
	params.Set("keyword", q.Keyword)
	params.Set("page", strconv.Itoa(q.Page))
	params.Set("pageSize", strconv.Itoa(q.PageSize))
	for _, id := range q.FitIDs {
		params.Add("fitIds", strconv.FormatInt(id, 10))
	}
	for _, id := range q.CategoryIDs {
		params.Add("categoryIds", strconv.FormatInt(id, 10))
	}
	params.Set("sortType", strconv.Itoa(int(q.Sort)))

	endpoint := c.endpoint("poizon-api/search", params)
	resp, err := c.transport.Get(ctx, endpoint)
	if err != nil {
		return nil, requestError(ctx, endpoint, err)
	}

	var result sources.SearchResponse
	if err := transport.DecodeResponse(resp, provider, &result); err != nil {
		return nil, withMessage(err)
	}
	return result.SearchSpuList.SpuList, nil
}

// FetchDetail returns the product payload for id. A product unknown to the
// marketplace yields an empty Detail.
func (c *Client) FetchDetail(ctx context.Context, id catalogs.ProductID) (*sources.Detail, error) {
	endpoint := c.endpoint("poizon-api/product-info/"+url.PathEscape(id.String()), nil)
	resp, err := c.transport.Get(ctx, endpoint)
	if err != nil {
		return nil, requestError(ctx, endpoint, err)
	}

	var detail sources.Detail
	if err := transport.DecodeResponse(resp, provider, &detail); err != nil {
		if errors.IsNotFound(err) {
			return &sources.Detail{}, nil
		}
		return nil, withMessage(err)
	}
	return &detail, nil
}

func (c *Client) endpoint(path string, params url.Values) string {
	u := c.baseURL.ResolveReference(&url.URL{Path: path})
	if params != nil {
		u.RawQuery = params.Encode()
	}
	return u.String()
}

func requestError(ctx context.Context, endpoint string, err error) error {
	if ctxErr := ctx.Err(); ctxErr != nil {
		return fmt.Errorf("%w: %w", errors.ErrCanceled, ctxErr)
	}
	return &errors.APIError{
		Provider: provider,
		Endpoint: endpoint,
		Message:  "request failed",
		Err:      err,
	}
}

// withMessage replaces a raw error body with the API's msg field when present.
func withMessage(err error) error {
	var apiErr *errors.APIError
	if !errors.As(err, &apiErr) {
		return err
	}
	var body struct {
		Msg string `json:"msg"`
	}
	if json.Unmarshal([]byte(apiErr.Message), &body) == nil && body.Msg != "" {
		apiErr.Message = body.Msg
	}
	return apiErr
}
