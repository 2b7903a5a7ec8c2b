// Package shelfsync curates a storefront catalog from a source marketplace.
//
// For every configured brand a run collects the best-selling eligible
// products from the source, carries over previously published products
// that are still eligible, reprices their variants and upserts them into
// the storefront.
//
// Example usage:
//
//	ss, err := shelfsync.New(source, store,
//	    shelfsync.WithPricing(pricing.NewCalculator(pricing.Params{Mode: pricing.ModeA})),
//	)
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	ss.OnUploadFailed(func(p *catalogs.Product, err error) {
//	    log.Printf("upload of %s failed: %v", p.ID, err)
//	})
//
//	result, err := ss.Sync(ctx, catalogs.DefaultBrands(), sync.WithDryRun(true))
package shelfsync

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/agentstation/shelfsync/pkg/catalogs"
	"github.com/agentstation/shelfsync/pkg/collector"
	"github.com/agentstation/shelfsync/pkg/errors"
	"github.com/agentstation/shelfsync/pkg/logging"
	"github.com/agentstation/shelfsync/pkg/reconciler"
	"github.com/agentstation/shelfsync/pkg/sources"
	"github.com/agentstation/shelfsync/pkg/storefront"
	pkgsync "github.com/agentstation/shelfsync/pkg/sync"
)

// Compile-time interface check
var _ Shelfsync = (*client)(nil)

// Shelfsync manages catalog curation runs with event hooks.
type Shelfsync interface {
	// Sync runs collection, reconciliation and upload for each brand in order
	Sync(ctx context.Context, brands []catalogs.Brand, opts ...pkgsync.Option) (*pkgsync.Result, error)

	// Hooks for run events
	OnProductPublished(ProductPublishedHook)
	OnUploadFailed(UploadFailedHook)
	OnBrandSynced(BrandSyncedHook)
}

// client implements the Shelfsync interface.
type client struct {
	config *config
	*hooks

	dest       storefront.Client
	collector  *collector.Collector
	reconciler *reconciler.Reconciler
}

// New creates a Shelfsync instance reading from source and publishing to dest.
func New(source sources.Client, dest storefront.Client, opts ...Option) (Shelfsync, error) {
	if source == nil {
		return nil, &errors.ValidationError{Field: "source", Message: "source client cannot be nil"}
	}
	if dest == nil {
		return nil, &errors.ValidationError{Field: "dest", Message: "storefront client cannot be nil"}
	}

	cfg := &config{}
	for _, opt := range opts {
		if err := opt(cfg); err != nil {
			return nil, err
		}
	}
	cfg.defaults()

	c, err := collector.New(source, cfg.mapper, cfg.rules, cfg.collectorOpts...)
	if err != nil {
		return nil, errors.WrapResource("create", "collector", "", err)
	}
	r, err := reconciler.New(c.Fetcher(), dest, cfg.reconcilerOpts...)
	if err != nil {
		return nil, errors.WrapResource("create", "reconciler", "", err)
	}

	return &client{
		config:     cfg,
		hooks:      newHooks(),
		dest:       dest,
		collector:  c,
		reconciler: r,
	}, nil
}

func (c *client) logger(ctx context.Context) *zerolog.Logger {
	if c.config.logger != nil {
		return c.config.logger
	}
	return logging.FromContext(ctx)
}
