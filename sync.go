package shelfsync

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/agentstation/shelfsync/pkg/catalogs"
	"github.com/agentstation/shelfsync/pkg/errors"
	"github.com/agentstation/shelfsync/pkg/logging"
	"github.com/agentstation/shelfsync/pkg/pricing"
	"github.com/agentstation/shelfsync/pkg/reconciler"
	"github.com/agentstation/shelfsync/pkg/scoring"
	pkgsync "github.com/agentstation/shelfsync/pkg/sync"
)

// Sync curates the storefront catalog of each brand in order. Failures of a
// single brand or product are recorded in the result; an error is returned
// only for invalid options or when ctx ends, in which case the result holds
// the brands processed so far.
func (c *client) Sync(ctx context.Context, brands []catalogs.Brand, opts ...pkgsync.Option) (*pkgsync.Result, error) {
	// Step 0: Set context
	if ctx == nil {
		ctx = context.Background()
	}

	// Step 1: Parse and validate options
	options := pkgsync.Defaults().Apply(opts...)
	if err := options.Validate(); err != nil {
		return nil, err
	}
	if len(brands) == 0 {
		return nil, &errors.ValidationError{Field: "brands", Message: "at least one brand is required"}
	}

	// Step 2: Setup context with timeout
	var cancel context.CancelFunc
	if options.Timeout > 0 {
		ctx, cancel = context.WithTimeout(ctx, options.Timeout)
	} else {
		cancel = func() {}
	}
	defer cancel()

	// Step 3: Tag the run
	runID := uuid.NewString()
	ctx = logging.WithRunID(logging.WithLogger(ctx, c.logger(ctx)), runID)
	logger := logging.FromContext(ctx)

	result := &pkgsync.Result{
		RunID:     runID,
		DryRun:    options.DryRun,
		StartedAt: time.Now(),
		Brands:    make([]*pkgsync.BrandResult, 0, len(brands)),
	}
	logger.Info().
		Int("brands", len(brands)).
		Int("target", options.TargetCount).
		Bool("dry_run", options.DryRun).
		Msg("Sync started")

	// Step 4: Process brands sequentially
	for _, brand := range brands {
		if err := ctx.Err(); err != nil {
			return c.abort(ctx, result, err)
		}
		br := c.syncBrand(ctx, brand, options)
		result.Brands = append(result.Brands, br)
		c.hooks.triggerBrandSynced(br)
	}
	if err := ctx.Err(); err != nil {
		return c.abort(ctx, result, err)
	}

	// Step 5: Summarize
	result.Duration = time.Since(result.StartedAt)
	logger.Info().
		Int("published", result.Count(pkgsync.StatusPublished)).
		Int("rejected", result.Count(pkgsync.StatusRejected)).
		Int("failed", result.Count(pkgsync.StatusFailed)).
		Dur("duration", result.Duration).
		Msg("Sync completed")
	if options.DryRun {
		logger.Info().Bool("dry_run", true).Msg("Dry run completed - nothing uploaded")
	}

	return result, nil
}

func (c *client) abort(ctx context.Context, result *pkgsync.Result, cause error) (*pkgsync.Result, error) {
	result.Duration = time.Since(result.StartedAt)
	logging.FromContext(ctx).Error().
		Err(cause).
		Int("brands_done", len(result.Brands)).
		Msg("Sync aborted")
	return result, fmt.Errorf("%w: %w", errors.ErrCanceled, cause)
}

// syncBrand runs the per-brand pipeline: collect, rank, reconcile, merge,
// price, render and upload.
func (c *client) syncBrand(ctx context.Context, brand catalogs.Brand, options *pkgsync.Options) *pkgsync.BrandResult {
	ctx = logging.WithBrand(ctx, brand.Name)
	logger := logging.FromContext(ctx)

	br := &pkgsync.BrandResult{Brand: brand.Name, Items: []pkgsync.ItemResult{}}

	// Step 1: Collect the new top
	collected := c.collector.Collect(ctx, brand, options.TargetCount)
	br.Pages = collected.Pages
	br.Collected = len(collected.Products)
	br.SetCollectErr(collected.Err)

	newTop := collected.Products
	if options.Rank {
		newTop = scoring.TopN(newTop, c.config.scorer, options.TargetCount)
	}

	// Step 2: Carry over what fell out of the top but is still eligible
	var carried []*catalogs.Product
	if options.CarryOver && ctx.Err() == nil {
		rec, err := c.reconciler.Reconcile(ctx, brand.Name, newTop)
		if err != nil {
			br.SetReconcileErr(err)
			logger.Error().Err(err).Msg("Reconciliation failed, nothing carried over")
		}
		if rec != nil {
			br.Dropped = len(rec.Dropped)
			br.CarryOverFailures = len(rec.Failed)
			if err == nil {
				br.CarriedOver = len(rec.CarriedOver)
				carried = rec.CarriedOver
			}
		}
	}

	// Step 3: Upload
	products := reconciler.Merge(newTop, carried)
	logger.Info().
		Int("new_top", len(newTop)).
		Int("carried_over", len(carried)).
		Msg("Uploading products")

	for i, p := range products {
		if ctx.Err() != nil {
			break
		}
		br.Items = append(br.Items, c.publish(ctx, p, i >= len(newTop), options.DryRun))
	}

	logger.Info().Str("summary", br.Summary()).Msg("Brand synced")
	return br
}

// publish prices, renders and uploads one product.
func (c *client) publish(ctx context.Context, p *catalogs.Product, carryOver, dryRun bool) pkgsync.ItemResult {
	logger := logging.FromContext(logging.WithProduct(ctx, p.ID.String()))

	priced := pricing.ApplyToProduct(c.config.pricing, p)
	product, variations := c.config.mapper.ToStorefront(priced)

	item := pkgsync.ItemResult{
		ProductID:  p.ID,
		Title:      p.Title,
		SKU:        product.SKU,
		Variations: len(variations),
		CarryOver:  carryOver,
	}

	if dryRun {
		item.Status = pkgsync.StatusRendered
		logger.Debug().
			Str("sku", product.SKU).
			Int("variations", len(variations)).
			Msg("Rendered product")
		return item
	}

	res, err := c.dest.Upsert(ctx, product, variations)
	if err != nil {
		item.Status = pkgsync.StatusFailed
		item.Message = err.Error()
		logger.Error().Err(err).Str("sku", product.SKU).Msg("Upload failed")
		c.hooks.triggerUploadFailed(priced, err)
		return item
	}

	item.StatusCode = res.StatusCode
	item.Message = res.Message
	if !res.Succeeded() {
		item.Status = pkgsync.StatusRejected
		rejected := errors.NewUpsertError(product.SKU, res.StatusCode, res.Message)
		logger.Error().Err(rejected).Msg("Upload rejected")
		c.hooks.triggerUploadFailed(priced, rejected)
		return item
	}

	item.Status = pkgsync.StatusPublished
	logger.Info().
		Str("sku", product.SKU).
		Int("status", res.StatusCode).
		Msg("Uploaded product")
	c.hooks.triggerPublished(priced, res)
	return item
}
