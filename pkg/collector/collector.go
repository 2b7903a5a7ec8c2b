// Package collector pages through source search results for a brand and
// collects eligible products up to a target count.
package collector

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/agentstation/shelfsync/pkg/brands"
	"github.com/agentstation/shelfsync/pkg/catalogs"
	"github.com/agentstation/shelfsync/pkg/convert"
	"github.com/agentstation/shelfsync/pkg/errors"
	"github.com/agentstation/shelfsync/pkg/logging"
	"github.com/agentstation/shelfsync/pkg/sources"
)

// Collector collects products brand by brand. Brands and the items within
// a brand are processed sequentially.
type Collector struct {
	client  sources.Client
	rules   *brands.Rules
	fetcher *DetailFetcher
	options *options
}

// New creates a Collector. A nil rules value uses brands.Default.
func New(client sources.Client, mapper convert.Mapper, rules *brands.Rules, opts ...Option) (*Collector, error) {
	if client == nil {
		return nil, &errors.ValidationError{Field: "client", Message: "cannot be nil"}
	}
	if mapper == nil {
		return nil, &errors.ValidationError{Field: "mapper", Message: "cannot be nil"}
	}
	if rules == nil {
		rules = brands.Default()
	}
	o, err := newOptions(opts...)
	if err != nil {
		return nil, err
	}
	return &Collector{
		client:  client,
		rules:   rules,
		fetcher: NewDetailFetcher(client, mapper, o.detailRetry),
		options: o,
	}, nil
}

// Fetcher returns the detail fetcher used by the collector.
func (c *Collector) Fetcher() *DetailFetcher {
	return c.fetcher
}

// Collect returns up to target eligible products for brand in search
// order. It does not fail: an error that stops the page loop is recorded
// in Result.Err next to whatever was collected before it.
func (c *Collector) Collect(ctx context.Context, brand catalogs.Brand, target int) *Result {
	logger := c.logger(ctx).With().Str("brand", brand.Name).Logger()
	ctx = logging.WithLogger(ctx, &logger)
	result := &Result{Brand: brand.Name, Products: []*catalogs.Product{}}

	logger.Info().
		Int("target", target).
		Ints64("brand_ids", brand.IDs).
		Msg("Collecting products")

	remaining := target
	for page := 1; page <= c.options.maxPages && remaining > 0; page++ {
		result.Pages = page

		hits, err := c.search(ctx, brand.Name, page)
		if err != nil {
			logger.Error().Err(err).Int("page", page).Msg("Search failed, stopping brand")
			result.Err = err
			break
		}
		if len(hits) == 0 {
			logger.Info().Int("page", page).Msg("No more search results")
			break
		}

		for _, hit := range hits {
			if remaining <= 0 {
				break
			}
			accepted, err := c.consider(ctx, &logger, brand, hit, result)
			if err != nil {
				result.Err = err
				return c.finish(&logger, result)
			}
			if accepted {
				remaining--
			}
		}
	}
	return c.finish(&logger, result)
}

func (c *Collector) search(ctx context.Context, keyword string, page int) ([]sources.SearchResult, error) {
	q := sources.Query{
		Keyword:     keyword,
		Page:        page,
		PageSize:    c.options.pageSize,
		CategoryIDs: c.options.categoryIDs,
		FitIDs:      c.options.fitIDs,
		Sort:        sources.SortBySales,
	}
	var hits []sources.SearchResult
	err := c.options.searchRetry.Do(ctx, fmt.Sprintf("search %q page %d", keyword, page), func(ctx context.Context) error {
		h, err := c.client.Search(ctx, q)
		if err != nil {
			return err
		}
		hits = h
		return nil
	})
	return hits, err
}

// consider filters one search hit and, when it passes, fetches and accepts
// it. The returned error is fatal for the brand.
func (c *Collector) consider(ctx context.Context, logger *zerolog.Logger, brand catalogs.Brand, hit sources.SearchResult, result *Result) (bool, error) {
	result.Stats.Seen++
	log := logger.With().Str("product_id", hit.ProductID().String()).Str("title", hit.Title).Logger()

	if id, ok := hit.Brand(); !ok || !brand.Allows(id) {
		result.Stats.BrandMismatch++
		log.Debug().Str("found_brand_id", hit.BrandID.String()).Msg("Brand id not allowed, skipping")
		return false, nil
	}
	if kw, excluded := c.rules.ExcludedSubBrand(brand.Name, hit.Title); excluded {
		result.Stats.SubBrand++
		log.Debug().Str("sub_brand", kw).Msg("Excluded sub-brand, skipping")
		return false, nil
	}
	if c.options.excludeKids && catalogs.IsLikelyKids(hit.Title) {
		result.Stats.Kids++
		log.Debug().Msg("Kids product, skipping")
		return false, nil
	}

	p, err := c.fetcher.Fetch(ctx, hit.ProductID())
	if err != nil {
		if errors.IsCanceled(err) {
			return false, err
		}
		result.Stats.FetchFailed++
		log.Error().Err(err).Msg("Detail fetch failed, stopping brand")
		return false, err
	}
	if !p.Eligible() {
		result.Stats.Ineligible++
		log.Debug().
			Int("variants", len(p.Variants)).
			Bool("has_article", p.Article() != "").
			Msg("No sizes or article, skipping")
		return false, nil
	}

	result.Products = append(result.Products, p)
	result.Stats.Accepted++
	log.Info().
		Interface("category_id", p.CategoryID).
		Int("variants", len(p.Variants)).
		Int("images", len(p.Images)).
		Msg("Accepted product")

	if err := c.options.gate.Wait(ctx); err != nil {
		return true, fmt.Errorf("%w: pacing: %w", errors.ErrCanceled, err)
	}
	return true, nil
}

func (c *Collector) finish(logger *zerolog.Logger, result *Result) *Result {
	event := logger.Info()
	if result.Err != nil {
		event = logger.Warn().AnErr("cause", result.Err)
	}
	event.
		Int("collected", len(result.Products)).
		Int("pages", result.Pages).
		Int("seen", result.Stats.Seen).
		Msg("Collection finished")
	return result
}

func (c *Collector) logger(ctx context.Context) *zerolog.Logger {
	if c.options.logger != nil {
		return c.options.logger
	}
	return logging.FromContext(ctx)
}
