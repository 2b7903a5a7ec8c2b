package woocommerce

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"github.com/agentstation/shelfsync/pkg/catalogs"
	"github.com/agentstation/shelfsync/pkg/constants"
	"github.com/agentstation/shelfsync/pkg/errors"
	"github.com/agentstation/shelfsync/pkg/logging"
)

// BrandAttributeName is the local product attribute that older listings
// carry the brand in.
const BrandAttributeName = "бренд"

// PublishedIdentifiers pages through every product of the store and
// returns the source ids of those published under brand. A product
// matches through its brand taxonomy or its brand attribute.
func (c *Client) PublishedIdentifiers(ctx context.Context, brand string) ([]catalogs.ProductID, error) {
	ids := []catalogs.ProductID{}
	seen := make(map[string]bool)

	for page := 1; ; page++ {
		if err := ctx.Err(); err != nil {
			return nil, fmt.Errorf("%w: %w", errors.ErrCanceled, err)
		}

		var products []listedProduct
		if err := c.fetch(ctx, http.MethodGet, "products", pageParams(page, c.pageSize), nil, &products); err != nil {
			return nil, fmt.Errorf("listing products page %d: %w", page, err)
		}
		if len(products) == 0 {
			break
		}

		for _, p := range products {
			id := p.sourceID()
			if id == "" || seen[id] || !p.hasBrand(brand) {
				continue
			}
			seen[id] = true
			ids = append(ids, catalogs.ProductID(id))
		}
		if len(products) < c.pageSize {
			break
		}
	}

	logging.FromContext(ctx).Debug().
		Str("brand", brand).
		Int("published", len(ids)).
		Msg("Listed published products")
	return ids, nil
}

func (p listedProduct) sourceID() string {
	for _, m := range p.MetaData {
		if m.Key == constants.SourceIDMetaKey {
			return strings.TrimSpace(m.value())
		}
	}
	return ""
}

func (p listedProduct) hasBrand(brand string) bool {
	for _, b := range p.Brands {
		if strings.EqualFold(strings.TrimSpace(b.Name), brand) {
			return true
		}
	}
	for _, a := range p.Attributes {
		if !strings.EqualFold(a.Name, BrandAttributeName) {
			continue
		}
		for _, opt := range a.Options {
			if strings.EqualFold(strings.TrimSpace(opt), brand) {
				return true
			}
		}
	}
	return false
}
