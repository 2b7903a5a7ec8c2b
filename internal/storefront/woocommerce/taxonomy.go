package woocommerce

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/agentstation/shelfsync/pkg/logging"
)

const (
	sneakersName = "Sneakers"
	sneakersSlug = "sneakers"
)

// ensureBrand returns the brand term named name, creating it when the
// store has none.
func (c *Client) ensureBrand(ctx context.Context, name string) (term, error) {
	var found []term
	if err := c.fetch(ctx, http.MethodGet, "products/brands", url.Values{"search": {name}}, nil, &found); err != nil {
		return term{}, err
	}
	if len(found) > 0 {
		return found[0], nil
	}

	var created term
	payload := term{Name: name, Slug: strings.ReplaceAll(strings.ToLower(name), " ", "-")}
	if err := c.fetch(ctx, http.MethodPost, "products/brands", nil, payload, &created); err != nil {
		return term{}, err
	}
	logging.FromContext(ctx).Info().Str("brand", name).Int64("brand_id", created.ID).Msg("Created brand")
	return created, nil
}

// productBySKU returns the id of the product with sku, if any.
func (c *Client) productBySKU(ctx context.Context, sku string) (int64, bool, error) {
	if sku == "" {
		return 0, false, nil
	}
	var found []struct {
		ID int64 `json:"id"`
	}
	if err := c.fetch(ctx, http.MethodGet, "products", url.Values{"sku": {sku}}, nil, &found); err != nil {
		return 0, false, err
	}
	if len(found) == 0 {
		return 0, false, nil
	}
	return found[0].ID, true, nil
}

// ensureAttribute returns the global attribute with slug, creating it and
// any of terms it lacks.
func (c *Client) ensureAttribute(ctx context.Context, slug string, terms []string) (globalAttribute, error) {
	attr, err := c.attribute(ctx, slug)
	if err != nil {
		return globalAttribute{}, err
	}

	existing, err := c.attributeTerms(ctx, attr.ID)
	if err != nil {
		return globalAttribute{}, err
	}
	known := make(map[string]bool, len(existing))
	for _, t := range existing {
		known[strings.ToLower(t.Name)] = true
	}

	for _, name := range terms {
		if known[strings.ToLower(name)] {
			continue
		}
		path := fmt.Sprintf("products/attributes/%d/terms", attr.ID)
		if err := c.fetch(ctx, http.MethodPost, path, nil, term{Name: name}, nil); err != nil {
			return globalAttribute{}, err
		}
		known[strings.ToLower(name)] = true
	}
	return attr, nil
}

func (c *Client) attribute(ctx context.Context, slug string) (globalAttribute, error) {
	key := "attribute:" + slug
	if v, ok := c.memo.Get(key); ok {
		if attr, ok := v.(globalAttribute); ok {
			return attr, nil
		}
	}

	var all []globalAttribute
	if err := c.fetch(ctx, http.MethodGet, "products/attributes", nil, nil, &all); err != nil {
		return globalAttribute{}, err
	}
	for _, a := range all {
		if strings.EqualFold(a.Slug, slug) {
			c.memo.Set(key, a)
			return a, nil
		}
	}

	var created globalAttribute
	payload := globalAttribute{Name: slug, Type: "select", HasArchives: true}
	if err := c.fetch(ctx, http.MethodPost, "products/attributes", nil, payload, &created); err != nil {
		return globalAttribute{}, err
	}
	logging.FromContext(ctx).Info().Str("attribute", slug).Int64("attribute_id", created.ID).Msg("Created attribute")
	c.memo.Set(key, created)
	return created, nil
}

// attributeTerms lists every term of an attribute.
func (c *Client) attributeTerms(ctx context.Context, attrID int64) ([]term, error) {
	var all []term
	path := fmt.Sprintf("products/attributes/%d/terms", attrID)
	for page := 1; ; page++ {
		var batch []term
		if err := c.fetch(ctx, http.MethodGet, path, pageParams(page, c.pageSize), nil, &batch); err != nil {
			return nil, err
		}
		all = append(all, batch...)
		if len(batch) < c.pageSize {
			return all, nil
		}
	}
}

// categoryID returns the id of the sneakers category, creating it at the
// root when missing.
func (c *Client) categoryID(ctx context.Context) (int64, error) {
	key := "category:" + sneakersSlug
	if v, ok := c.memo.Get(key); ok {
		if id, ok := v.(int64); ok {
			return id, nil
		}
	}

	var found []category
	if err := c.fetch(ctx, http.MethodGet, "products/categories", url.Values{"slug": {sneakersSlug}}, nil, &found); err != nil {
		return 0, err
	}
	if len(found) > 0 {
		c.memo.Set(key, found[0].ID)
		return found[0].ID, nil
	}

	var created category
	payload := category{Name: sneakersName, Slug: sneakersSlug, Parent: 0}
	if err := c.fetch(ctx, http.MethodPost, "products/categories", nil, payload, &created); err != nil {
		return 0, err
	}
	c.memo.Set(key, created.ID)
	return created.ID, nil
}

// variations lists every variation of a product.
func (c *Client) variations(ctx context.Context, productID int64) ([]variation, error) {
	var all []variation
	path := fmt.Sprintf("products/%d/variations", productID)
	for page := 1; ; page++ {
		var batch []variation
		if err := c.fetch(ctx, http.MethodGet, path, pageParams(page, c.pageSize), nil, &batch); err != nil {
			return nil, err
		}
		all = append(all, batch...)
		if len(batch) < c.pageSize {
			return all, nil
		}
	}
}

func (c *Client) deleteVariations(ctx context.Context, productID int64) error {
	existing, err := c.variations(ctx, productID)
	if err != nil {
		return err
	}
	if len(existing) == 0 {
		return nil
	}

	batch := variationBatch{Delete: make([]int64, 0, len(existing))}
	for _, v := range existing {
		batch.Delete = append(batch.Delete, v.ID)
	}
	return c.fetch(ctx, http.MethodPost, fmt.Sprintf("products/%d/variations/batch", productID), nil, batch, nil)
}

func (c *Client) addVariations(ctx context.Context, productID int64, variations []variation) error {
	if len(variations) == 0 {
		return nil
	}
	batch := variationBatch{Create: variations}
	return c.fetch(ctx, http.MethodPost, fmt.Sprintf("products/%d/variations/batch", productID), nil, batch, nil)
}
