package collector

import (
	"github.com/rs/zerolog"

	"github.com/agentstation/shelfsync/pkg/constants"
	"github.com/agentstation/shelfsync/pkg/errors"
	"github.com/agentstation/shelfsync/pkg/pacing"
	"github.com/agentstation/shelfsync/pkg/sources"
)

type options struct {
	maxPages    int
	pageSize    int
	categoryIDs []int64
	fitIDs      []int64
	searchRetry pacing.Retry
	detailRetry pacing.Retry
	gate        pacing.Gate
	excludeKids bool
	logger      *zerolog.Logger
}

func defaultOptions() *options {
	return &options{
		maxPages:    constants.DefaultMaxPages,
		pageSize:    constants.DefaultSearchPageSize,
		categoryIDs: sources.DefaultCategoryIDs,
		fitIDs:      sources.DefaultFitIDs,
		searchRetry: pacing.Retry{Attempts: constants.SearchRetryAttempts, Delay: constants.SearchRetryDelay},
		detailRetry: pacing.Retry{Attempts: constants.DetailRetryAttempts, Delay: constants.DetailRetryDelay},
	}
}

// Option configures a Collector.
type Option func(*options) error

func (o *options) apply(opts ...Option) (*options, error) {
	for _, opt := range opts {
		if err := opt(o); err != nil {
			return nil, err
		}
	}
	return o, nil
}

func newOptions(opts ...Option) (*options, error) {
	o, err := defaultOptions().apply(opts...)
	if err != nil {
		return nil, err
	}
	if o.gate == nil {
		o.gate = pacing.NewInterval(constants.AcceptPacing)
	}
	return o, nil
}

// WithMaxPages bounds the number of search pages per brand.
func WithMaxPages(n int) Option {
	return func(o *options) error {
		if n < 1 {
			return &errors.ValidationError{Field: "max_pages", Value: n, Message: "must be at least 1"}
		}
		o.maxPages = n
		return nil
	}
}

// WithPageSize sets the number of results requested per page.
func WithPageSize(n int) Option {
	return func(o *options) error {
		if n < 1 {
			return &errors.ValidationError{Field: "page_size", Value: n, Message: "must be at least 1"}
		}
		o.pageSize = n
		return nil
	}
}

// WithFilters sets the category and audience filters sent with searches.
func WithFilters(categoryIDs, fitIDs []int64) Option {
	return func(o *options) error {
		o.categoryIDs = categoryIDs
		o.fitIDs = fitIDs
		return nil
	}
}

// WithSearchRetry sets the retry policy for page searches.
func WithSearchRetry(r pacing.Retry) Option {
	return func(o *options) error {
		o.searchRetry = r
		return nil
	}
}

// WithDetailRetry sets the retry policy for detail fetches.
func WithDetailRetry(r pacing.Retry) Option {
	return func(o *options) error {
		o.detailRetry = r
		return nil
	}
}

// WithGate sets the gate waited on after each accepted product.
//
// The default gate is pacing.NewInterval, a token bucket: the first accepted
// product passes without waiting and later waits only cover what is left of
// the interval since the previous acceptance, so slow detail fetches absorb
// part of the pacing. Use pacing.NewDelay for a full sleep after every
// acceptance.
func WithGate(g pacing.Gate) Option {
	return func(o *options) error {
		if g == nil {
			return &errors.ValidationError{Field: "gate", Message: "cannot be nil"}
		}
		o.gate = g
		return nil
	}
}

// WithExcludeKids skips results whose title looks like children's footwear.
func WithExcludeKids(enabled bool) Option {
	return func(o *options) error {
		o.excludeKids = enabled
		return nil
	}
}

// WithLogger sets the logger. By default the context logger is used.
func WithLogger(logger *zerolog.Logger) Option {
	return func(o *options) error {
		o.logger = logger
		return nil
	}
}
