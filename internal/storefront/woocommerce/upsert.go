package woocommerce

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"slices"

	"github.com/agentstation/shelfsync/pkg/constants"
	"github.com/agentstation/shelfsync/pkg/errors"
	"github.com/agentstation/shelfsync/pkg/logging"
	"github.com/agentstation/shelfsync/pkg/storefront"
)

const (
	productTypeVariable = "variable"
	stockInStock        = "instock"
)

// Upsert creates the product, or replaces the product with the same SKU
// together with all of its variations. The result is 201 for a created
// product and 200 for an updated one. A create or update the store
// refuses is returned as-is.
func (c *Client) Upsert(ctx context.Context, p storefront.Product, variations []storefront.Variation) (storefront.UpsertResult, error) {
	logger := logging.FromContext(ctx).With().Str("sku", p.SKU).Logger()
	ctx = logging.WithLogger(ctx, &logger)

	// Step 1: Resolve taxonomy
	var brands []term
	if p.Brand != "" {
		b, err := c.ensureBrand(ctx, p.Brand)
		if err != nil {
			if errors.IsCanceled(err) {
				return storefront.UpsertResult{}, err
			}
			logger.Warn().Err(err).Str("brand", p.Brand).Msg("Brand unavailable, publishing without it")
		} else {
			brands = []term{{ID: b.ID}}
		}
	}

	existingID, exists, err := c.productBySKU(ctx, p.SKU)
	if err != nil {
		return storefront.UpsertResult{}, fmt.Errorf("looking up sku %s: %w", p.SKU, err)
	}

	options := sizeOptions(variations)
	attr, err := c.ensureAttribute(ctx, constants.StorefrontSizeAttribute, options)
	if err != nil {
		return storefront.UpsertResult{}, fmt.Errorf("ensuring %s: %w", constants.StorefrontSizeAttribute, err)
	}
	categoryID, err := c.categoryID(ctx)
	if err != nil {
		return storefront.UpsertResult{}, fmt.Errorf("ensuring category %s: %w", sneakersSlug, err)
	}

	axis := productAttribute{
		ID:        attr.ID,
		Name:      attr.Name,
		Variation: true,
		Visible:   true,
		Options:   options,
	}
	payload := product{
		Slug:        p.Slug,
		Name:        p.Name,
		SKU:         p.SKU,
		Description: p.Description,
		Images:      p.Images,
		Type:        productTypeVariable,
		StockStatus: stockInStock,
		ManageStock: false,
		MetaData:    []metaData{{Key: constants.SourceIDMetaKey, Value: p.SourceID.String()}},
		Categories:  []category{{ID: categoryID}},
		Attributes:  []productAttribute{axis},
		Brands:      brands,
	}
	if payload.Images == nil {
		payload.Images = []storefront.Image{}
	}

	// Step 2: Create or update the product
	var id int64
	var result storefront.UpsertResult
	if exists {
		logger.Info().Str("name", p.Name).Int64("product_id", existingID).Msg("Product exists, updating")
		status, body, err := c.call(ctx, http.MethodPut, fmt.Sprintf("products/%d", existingID), nil, payload)
		if err != nil {
			return storefront.UpsertResult{}, err
		}
		if status < 200 || status > 299 {
			return storefront.UpsertResult{StatusCode: status, Message: truncate(body)}, nil
		}
		if err := c.deleteVariations(ctx, existingID); err != nil {
			return storefront.UpsertResult{}, fmt.Errorf("deleting variations of product %d: %w", existingID, err)
		}
		id = existingID
		result = storefront.UpsertResult{StatusCode: http.StatusOK}
	} else {
		status, body, err := c.call(ctx, http.MethodPost, "products", nil, payload)
		if err != nil {
			return storefront.UpsertResult{}, err
		}
		if status != http.StatusCreated {
			return storefront.UpsertResult{StatusCode: status, Message: truncate(body)}, nil
		}
		var created struct {
			ID int64 `json:"id"`
		}
		if err := json.Unmarshal(body, &created); err != nil {
			return storefront.UpsertResult{}, errors.WrapParse("json", "products", err)
		}
		id = created.ID
		result = storefront.UpsertResult{StatusCode: http.StatusCreated}
	}

	// Step 3: Replace variations
	if err := c.addVariations(ctx, id, toVariations(variations)); err != nil {
		return storefront.UpsertResult{}, fmt.Errorf("adding variations to product %d: %w", id, err)
	}

	// Step 4: Save the axis again so the store initializes the new
	// variations, then select the first size by default
	path := fmt.Sprintf("products/%d", id)
	update := attributeUpdate{Attributes: []productAttribute{axis}}
	if err := c.fetch(ctx, http.MethodPut, path, nil, update, nil); err != nil {
		return storefront.UpsertResult{}, fmt.Errorf("saving attributes of product %d: %w", id, err)
	}
	if len(options) > 0 {
		update.DefaultAttributes = []defaultAttribute{{Name: constants.StorefrontSizeAttribute, Option: options[0]}}
		if err := c.fetch(ctx, http.MethodPut, path, nil, update, nil); err != nil {
			return storefront.UpsertResult{}, fmt.Errorf("saving default size of product %d: %w", id, err)
		}
	}

	result.Message = fmt.Sprintf("product %d saved with %d variations", id, len(variations))
	logger.Debug().Int64("product_id", id).Int("status", result.StatusCode).Msg(result.Message)
	return result, nil
}

// sizeOptions returns the distinct sizes of variations in order.
func sizeOptions(variations []storefront.Variation) []string {
	options := make([]string, 0, len(variations))
	for _, v := range variations {
		size, ok := v.Option(constants.StorefrontSizeAttribute)
		if ok && !slices.Contains(options, size) {
			options = append(options, size)
		}
	}
	return options
}

func toVariations(in []storefront.Variation) []variation {
	out := make([]variation, 0, len(in))
	for _, v := range in {
		out = append(out, variation{
			RegularPrice: v.RegularPrice,
			SKU:          v.SKU,
			StockStatus:  stockInStock,
			Attributes:   v.Attributes,
		})
	}
	return out
}
