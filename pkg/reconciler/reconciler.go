// Package reconciler keeps previously published products that fell out of
// the new top-N but are still eligible upstream.
//
// The destination store is the only record of earlier runs: its published
// identifiers are compared with the new top, and every identifier that
// dropped out is re-fetched from the source. Products that are still
// eligible are carried over so they are refreshed instead of going stale.
package reconciler

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/agentstation/shelfsync/pkg/catalogs"
	"github.com/agentstation/shelfsync/pkg/errors"
	"github.com/agentstation/shelfsync/pkg/logging"
	"github.com/agentstation/shelfsync/pkg/storefront"
)

// Fetcher fetches and normalizes one product from the source.
type Fetcher interface {
	Fetch(ctx context.Context, id catalogs.ProductID) (*catalogs.Product, error)
}

// Reconciler computes carry-over sets.
type Reconciler struct {
	fetcher Fetcher
	dest    storefront.Client
	options *options
}

// New creates a Reconciler.
func New(fetcher Fetcher, dest storefront.Client, opts ...Option) (*Reconciler, error) {
	if fetcher == nil {
		return nil, &errors.ValidationError{Field: "fetcher", Message: "cannot be nil"}
	}
	if dest == nil {
		return nil, &errors.ValidationError{Field: "destination", Message: "cannot be nil"}
	}
	o, err := newOptions(opts...)
	if err != nil {
		return nil, err
	}
	return &Reconciler{fetcher: fetcher, dest: dest, options: o}, nil
}

// Reconcile returns the products published for brand that are missing from
// newTop and still eligible upstream. It fails only when the published
// identifiers cannot be listed or ctx is cancelled; a failed re-fetch is
// recorded in Result.Failed and the rest continue.
func (r *Reconciler) Reconcile(ctx context.Context, brand string, newTop []*catalogs.Product) (*Result, error) {
	start := time.Now()
	logger := r.logger(ctx).With().Str("brand", brand).Logger()
	ctx = logging.WithLogger(ctx, &logger)

	logger.Info().Msg("Collecting products from the previous top")

	previous, err := r.dest.PublishedIdentifiers(ctx, brand)
	if err != nil {
		return nil, fmt.Errorf("listing published products for %s: %w", brand, err)
	}

	result := &Result{
		Brand:       brand,
		Previous:    len(previous),
		Dropped:     Diff(previous, catalogs.IDs(newTop)),
		CarriedOver: []*catalogs.Product{},
		Ineligible:  []catalogs.ProductID{},
		Failed:      make(map[catalogs.ProductID]error),
	}

	for _, id := range result.Dropped {
		if err := ctx.Err(); err != nil {
			return result, fmt.Errorf("%w: %w", errors.ErrCanceled, err)
		}

		log := logger.With().Str("product_id", id.String()).Logger()
		p, err := r.fetcher.Fetch(ctx, id)
		if err != nil {
			if errors.IsCanceled(err) {
				return result, err
			}
			result.Failed[id] = err
			log.Warn().Err(err).Msg("Re-fetch failed, not carried over")
			continue
		}

		if p.Eligible() {
			result.CarriedOver = append(result.CarriedOver, p)
			log.Info().
				Str("title", p.Title).
				Int("variants", len(p.Variants)).
				Int("images", len(p.Images)).
				Msg("Carried over from previous top")
		} else {
			result.Ineligible = append(result.Ineligible, id)
			log.Debug().Msg("No longer eligible, not carried over")
		}

		if err := r.options.gate.Wait(ctx); err != nil {
			return result, fmt.Errorf("%w: pacing: %w", errors.ErrCanceled, err)
		}
	}

	result.Duration = time.Since(start)
	logger.Info().
		Int("previous", result.Previous).
		Int("dropped", len(result.Dropped)).
		Int("carried_over", len(result.CarriedOver)).
		Int("failed", len(result.Failed)).
		Dur("duration", result.Duration).
		Msg("Reconciliation finished")
	return result, nil
}

func (r *Reconciler) logger(ctx context.Context) *zerolog.Logger {
	if r.options.logger != nil {
		return r.options.logger
	}
	return logging.FromContext(ctx)
}

// Diff returns the identifiers in previous that are not in current, in
// previous order and without duplicates.
func Diff(previous, current []catalogs.ProductID) []catalogs.ProductID {
	exclude := make(map[catalogs.ProductID]struct{}, len(current)+len(previous))
	for _, id := range current {
		exclude[id] = struct{}{}
	}
	out := make([]catalogs.ProductID, 0, len(previous))
	for _, id := range previous {
		if _, ok := exclude[id]; ok {
			continue
		}
		exclude[id] = struct{}{}
		out = append(out, id)
	}
	return out
}

// Merge returns newTop followed by carried. Neither input is modified.
func Merge(newTop, carried []*catalogs.Product) []*catalogs.Product {
	out := make([]*catalogs.Product, 0, len(newTop)+len(carried))
	out = append(out, newTop...)
	return append(out, carried...)
}
