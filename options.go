package shelfsync

import (
	"github.com/rs/zerolog"

	"github.com/agentstation/shelfsync/pkg/brands"
	"github.com/agentstation/shelfsync/pkg/collector"
	"github.com/agentstation/shelfsync/pkg/convert"
	"github.com/agentstation/shelfsync/pkg/errors"
	"github.com/agentstation/shelfsync/pkg/pricing"
	"github.com/agentstation/shelfsync/pkg/reconciler"
	"github.com/agentstation/shelfsync/pkg/scoring"
)

// config holds the components of a Shelfsync instance.
type config struct {
	mapper         convert.Mapper
	rules          *brands.Rules
	scorer         scoring.Scorer
	pricing        pricing.Strategy
	collectorOpts  []collector.Option
	reconcilerOpts []reconciler.Option
	logger         *zerolog.Logger
}

// Option is a function that configures a Shelfsync instance
type Option func(*config) error

// defaults fills the components no option provided. The mapper is built
// last so it shares the configured brand rules.
func (c *config) defaults() {
	if c.rules == nil {
		c.rules = brands.Default()
	}
	if c.mapper == nil {
		c.mapper = convert.NewPoizonMapper(c.rules)
	}
	if c.scorer == nil {
		c.scorer = scoring.NewDefault()
	}
	if c.pricing == nil {
		// Unknown mode: major units, unchanged.
		c.pricing = pricing.NewCalculator(pricing.Params{})
	}
}

// WithMapper configures the payload mapper
func WithMapper(m convert.Mapper) Option {
	return func(c *config) error {
		if m == nil {
			return &errors.ValidationError{Field: "mapper", Message: "mapper cannot be nil"}
		}
		c.mapper = m
		return nil
	}
}

// WithRules configures the brand rules used for collection and normalization
func WithRules(r *brands.Rules) Option {
	return func(c *config) error {
		if r == nil {
			return &errors.ValidationError{Field: "rules", Message: "brand rules cannot be nil"}
		}
		c.rules = r
		return nil
	}
}

// WithScorer configures the scorer used when re-ranking is requested
func WithScorer(s scoring.Scorer) Option {
	return func(c *config) error {
		if s == nil {
			return &errors.ValidationError{Field: "scorer", Message: "scorer cannot be nil"}
		}
		c.scorer = s
		return nil
	}
}

// WithPricing configures how variant prices are rewritten before upload
func WithPricing(s pricing.Strategy) Option {
	return func(c *config) error {
		if s == nil {
			return &errors.ValidationError{Field: "pricing", Message: "pricing strategy cannot be nil"}
		}
		c.pricing = s
		return nil
	}
}

// WithCollectorOptions passes options to the collector
func WithCollectorOptions(opts ...collector.Option) Option {
	return func(c *config) error {
		c.collectorOpts = append(c.collectorOpts, opts...)
		return nil
	}
}

// WithReconcilerOptions passes options to the reconciler
func WithReconcilerOptions(opts ...reconciler.Option) Option {
	return func(c *config) error {
		c.reconcilerOpts = append(c.reconcilerOpts, opts...)
		return nil
	}
}

// WithLogger configures the run logger in place of the context logger
func WithLogger(logger *zerolog.Logger) Option {
	return func(c *config) error {
		c.logger = logger
		return nil
	}
}
