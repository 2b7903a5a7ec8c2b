package collector

import (
	"context"

	"github.com/agentstation/shelfsync/pkg/catalogs"
	"github.com/agentstation/shelfsync/pkg/convert"
	"github.com/agentstation/shelfsync/pkg/pacing"
	"github.com/agentstation/shelfsync/pkg/sources"
)

// DetailFetcher fetches and normalizes one product with retries.
type DetailFetcher struct {
	client sources.Client
	mapper convert.Mapper
	retry  pacing.Retry
}

// NewDetailFetcher creates a DetailFetcher.
func NewDetailFetcher(client sources.Client, mapper convert.Mapper, retry pacing.Retry) *DetailFetcher {
	return &DetailFetcher{client: client, mapper: mapper, retry: retry}
}

// Fetch returns the normalized product for id. A product missing upstream
// comes back with no variants and is therefore not eligible.
func (f *DetailFetcher) Fetch(ctx context.Context, id catalogs.ProductID) (*catalogs.Product, error) {
	var detail *sources.Detail
	err := f.retry.Do(ctx, "fetch detail "+id.String(), func(ctx context.Context) error {
		d, err := f.client.FetchDetail(ctx, id)
		if err != nil {
			return err
		}
		detail = d
		return nil
	})
	if err != nil {
		return nil, err
	}

	p := f.mapper.ToProduct(detail)
	if p.ID == "" {
		p.ID = id
	}
	return p, nil
}
