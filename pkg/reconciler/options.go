package reconciler

import (
	"github.com/rs/zerolog"

	"github.com/agentstation/shelfsync/pkg/constants"
	"github.com/agentstation/shelfsync/pkg/errors"
	"github.com/agentstation/shelfsync/pkg/pacing"
)

type options struct {
	gate   pacing.Gate
	logger *zerolog.Logger
}

// Option is a function that configures a Reconciler.
type Option func(*options) error

func (o *options) apply(opts ...Option) (*options, error) {
	for _, opt := range opts {
		if err := opt(o); err != nil {
			return nil, err
		}
	}
	return o, nil
}

// newOptions returns reconciler options with default values.
func newOptions(opts ...Option) (*options, error) {
	o, err := (&options{}).apply(opts...)
	if err != nil {
		return nil, err
	}
	if o.gate == nil {
		o.gate = pacing.NewInterval(constants.CarryOverPacing)
	}
	return o, nil
}

// WithGate sets the gate waited on after each re-fetch. It is separate from
// the collector's gate and has the same interval semantics by default; see
// collector.WithGate.
func WithGate(g pacing.Gate) Option {
	return func(o *options) error {
		if g == nil {
			return &errors.ValidationError{Field: "gate", Message: "cannot be nil"}
		}
		o.gate = g
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
