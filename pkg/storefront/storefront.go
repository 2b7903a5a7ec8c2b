// Package storefront defines the contract the sync pipeline uses to publish
// into a destination store, and the rendered payloads it sends.
package storefront

import (
	"context"
	"net/http"

	"github.com/agentstation/shelfsync/pkg/catalogs"
)

// Client is a destination store.
type Client interface {
	// PublishedIdentifiers returns the source ids of every product
	// previously published under brand.
	PublishedIdentifiers(ctx context.Context, brand string) ([]catalogs.ProductID, error)

	// Upsert creates or replaces a product with its variations. A non-nil
	// error means the request could not be completed; a completed request
	// that the store rejected is reported through UpsertResult.
	Upsert(ctx context.Context, p Product, variations []Variation) (UpsertResult, error)
}

// Image is a product image reference.
type Image struct {
	Src string `json:"src" yaml:"src"`
}

// Product is the rendered product payload.
type Product struct {
	Slug        string             `json:"slug" yaml:"slug"`
	Name        string             `json:"name" yaml:"name"`
	SKU         string             `json:"sku" yaml:"sku"`
	Description string             `json:"description" yaml:"description"`
	SourceID    catalogs.ProductID `json:"source_id" yaml:"source_id"`
	Images      []Image            `json:"images" yaml:"images"`
	Brand       string             `json:"brand,omitempty" yaml:"brand,omitempty"`
}

// Attribute is one variation axis value.
type Attribute struct {
	Name   string `json:"name" yaml:"name"`
	Option string `json:"option" yaml:"option"`
}

// Variation is one rendered variant.
type Variation struct {
	RegularPrice string      `json:"regular_price" yaml:"regular_price"`
	SKU          string      `json:"sku" yaml:"sku"`
	Attributes   []Attribute `json:"attributes" yaml:"attributes"`
}

// Option returns the value of the named attribute.
func (v Variation) Option(name string) (string, bool) {
	for _, a := range v.Attributes {
		if a.Name == name {
			return a.Option, true
		}
	}
	return "", false
}

// UpsertResult is the store's verdict on one upsert.
type UpsertResult struct {
	StatusCode int    `json:"status_code" yaml:"status_code"`
	Message    string `json:"message,omitempty" yaml:"message,omitempty"`
}

// Succeeded reports whether the store accepted the product.
func (r UpsertResult) Succeeded() bool {
	return r.StatusCode == http.StatusOK || r.StatusCode == http.StatusCreated
}
