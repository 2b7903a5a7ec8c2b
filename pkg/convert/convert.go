// Package convert maps source marketplace payloads into the canonical
// catalog model, and the canonical model into storefront payloads.
package convert

import (
	"github.com/agentstation/shelfsync/pkg/catalogs"
	"github.com/agentstation/shelfsync/pkg/sources"
	"github.com/agentstation/shelfsync/pkg/storefront"
)

// Mapper converts between source payloads, the catalog model and storefront payloads.
type Mapper interface {
	// ToProduct normalizes a source payload. Missing fields resolve to
	// nil or empty values; it never fails.
	ToProduct(d *sources.Detail) *catalogs.Product

	// ToStorefront renders a product and its variations for upload.
	ToStorefront(p *catalogs.Product) (storefront.Product, []storefront.Variation)
}

// DefaultTranslations maps known non-English attribute names to English.
func DefaultTranslations() map[string]string {
	return map[string]string{
		"размер": "size",
		"версия": "version",
		"尺码":     "size",
		"颜色":     "color",
		"材质":     "material",
		"鞋帮高度":   "cut",
		"适用季节":   "season",
		"适用性别":   "gender",
	}
}
