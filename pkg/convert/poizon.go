package convert

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/agentstation/shelfsync/internal/utils/ptr"
	"github.com/agentstation/shelfsync/pkg/brands"
	"github.com/agentstation/shelfsync/pkg/catalogs"
	"github.com/agentstation/shelfsync/pkg/constants"
	"github.com/agentstation/shelfsync/pkg/sources"
	"github.com/agentstation/shelfsync/pkg/storefront"
)

// PoizonMapper maps Poizon product payloads.
type PoizonMapper struct {
	rules        *brands.Rules
	translations map[string]string
}

// Option configures a PoizonMapper.
type Option func(*PoizonMapper)

// WithTranslations adds or overrides attribute name translations.
// Keys are matched against lower-cased attribute names.
func WithTranslations(t map[string]string) Option {
	return func(m *PoizonMapper) {
		for k, v := range t {
			m.translations[strings.ToLower(k)] = v
		}
	}
}

// NewPoizonMapper creates a mapper that canonicalizes brands with rules.
// A nil rules value uses brands.Default.
func NewPoizonMapper(rules *brands.Rules, opts ...Option) *PoizonMapper {
	if rules == nil {
		rules = brands.Default()
	}
	m := &PoizonMapper{
		rules:        rules,
		translations: DefaultTranslations(),
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

var _ Mapper = (*PoizonMapper)(nil)

// ToProduct implements Mapper.
func (m *PoizonMapper) ToProduct(d *sources.Detail) *catalogs.Product {
	if d == nil {
		return &catalogs.Product{}
	}

	p := &catalogs.Product{
		ID:         catalogs.ProductID(d.BuyDialog.Detail.SpuID.String()),
		Title:      d.ShareInfo.ShareTitle,
		SourceURL:  d.ShareInfo.ShareURL,
		BrandName:  ptr.NonEmpty(d.BrandItems.BrandName),
		CategoryID: ptr.Clone(d.BuyDialog.Detail.CategoryID),
		MinPrice:   ptr.Clone(d.Price.Money.MinUnitVal),
	}

	for _, img := range d.ImageModels {
		if !img.ModelWear {
			p.Images = append(p.Images, img.URL)
		}
	}

	// Only the first article entry counts, even when its value is empty.
	articleSeen := false
	for _, bp := range d.BaseProperties {
		if bp.ItemType == sources.ItemTypeArticleNumber && !articleSeen {
			articleSeen = true
			p.ArticleCode = ptr.NonEmpty(bp.Value)
			continue
		}
		key := bp.Key
		if key == "" {
			key = bp.ItemType
		}
		p.Specs = append(p.Specs, catalogs.Spec{Key: key, Value: bp.Value})
	}

	index := newAttributeIndex(d.BuyDialog.SaleProperties, m.translations)
	for _, sku := range d.BuyDialog.Skus {
		attrs := index.resolve(sku.Properties)
		price := sku.Price()
		if price == nil || *price == 0 {
			continue
		}
		if _, ok := attrs[constants.EUSizeAttribute]; !ok {
			continue
		}
		p.AddVariant(catalogs.Variant{
			ID:           sku.SkuID.String(),
			Code:         sku.SkuID.String(),
			RegularPrice: ptr.Clone(price),
			Attributes:   attrs,
		})
	}
	return p
}

// ToStorefront implements Mapper.
func (m *PoizonMapper) ToStorefront(p *catalogs.Product) (storefront.Product, []storefront.Variation) {
	if p == nil {
		return storefront.Product{}, nil
	}

	out := storefront.Product{
		Slug:        ExtractSlug(p.SourceURL),
		Name:        p.Title,
		SKU:         p.Article(),
		Description: ptr.Deref(p.Description),
		SourceID:    p.ID,
		Images:      make([]storefront.Image, 0, len(p.Images)),
		Brand:       m.rules.Normalize(p.Brand(), p.Title),
	}
	for _, src := range p.Images {
		out.Images = append(out.Images, storefront.Image{Src: src})
	}

	variations := make([]storefront.Variation, 0, len(p.Variants))
	for _, v := range p.Variants {
		variation := storefront.Variation{
			SKU:        fmt.Sprintf("%s-%s", p.Article(), v.Code),
			Attributes: []storefront.Attribute{},
		}
		if v.RegularPrice != nil {
			variation.RegularPrice = strconv.FormatInt(*v.RegularPrice, 10)
		}
		if size, ok := v.EUSize(); ok {
			variation.Attributes = append(variation.Attributes, storefront.Attribute{
				Name:   constants.StorefrontSizeAttribute,
				Option: size,
			})
		}
		variations = append(variations, variation)
	}
	return out, variations
}
