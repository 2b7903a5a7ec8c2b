// Package sync provides the options and results of a synchronization run.
package sync

import (
	"time"

	"github.com/agentstation/shelfsync/pkg/constants"
	"github.com/agentstation/shelfsync/pkg/errors"
)

// Options controls one run of Shelfsync.Sync().
type Options struct {
	DryRun      bool          // Render products without uploading them
	TargetCount int           // Products to collect per brand
	Rank        bool          // Re-rank collected products by score before reconciling
	CarryOver   bool          // Keep previously published products that are still eligible
	Timeout     time.Duration // Timeout for the entire run, 0 for none
}

// Apply applies the given options to the sync options.
func (s *Options) Apply(opts ...Option) *Options {
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Defaults returns the default sync options.
func Defaults() *Options {
	return &Options{
		DryRun:      false,
		TargetCount: constants.DefaultTargetCount,
		Rank:        false,
		CarryOver:   true,
		Timeout:     0,
	}
}

// Option is a function that configures sync Options.
type Option func(*Options)

// Validate checks if the sync options are valid.
func (s *Options) Validate() error {
	if s.TargetCount < 1 {
		return &errors.ValidationError{
			Field:   "TargetCount",
			Value:   s.TargetCount,
			Message: "target count must be at least 1",
		}
	}
	if s.Timeout < 0 {
		return &errors.ValidationError{
			Field:   "Timeout",
			Value:   s.Timeout,
			Message: "timeout must be non-negative",
		}
	}
	return nil
}

// WithDryRun configures dry run mode.
func WithDryRun(dryRun bool) Option {
	return func(opts *Options) {
		opts.DryRun = dryRun
	}
}

// WithTargetCount configures how many products are collected per brand.
func WithTargetCount(n int) Option {
	return func(opts *Options) {
		opts.TargetCount = n
	}
}

// WithRank configures the score-based re-rank of collected products.
func WithRank(rank bool) Option {
	return func(opts *Options) {
		opts.Rank = rank
	}
}

// WithCarryOver configures reconciliation against previously published products.
func WithCarryOver(carryOver bool) Option {
	return func(opts *Options) {
		opts.CarryOver = carryOver
	}
}

// WithTimeout configures the sync timeout.
func WithTimeout(timeout time.Duration) Option {
	return func(opts *Options) {
		opts.Timeout = timeout
	}
}
