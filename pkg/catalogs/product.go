// Package catalogs holds the canonical product model every other package
// works on: a Product groups one or more purchasable Variants.
package catalogs

// ProductID is the source-assigned product identifier. It is stable across
// re-fetches and is the join key between a run and the storefront.
type ProductID string

// String returns the string representation of a ProductID.
func (id ProductID) String() string {
	return string(id)
}

// Spec is a free-form attribute record carried through from the source.
type Spec struct {
	Key   string `json:"key" yaml:"key"`
	Value string `json:"value" yaml:"value"`
}

// Product is a sellable item with one or more variants.
type Product struct {
	ID          ProductID `json:"id" yaml:"id"`                                       // Source product id
	Title       string    `json:"title" yaml:"title"`                                 // Display title
	Description *string   `json:"description,omitempty" yaml:"description,omitempty"` // Long description, if any
	SourceURL   string    `json:"source_url" yaml:"source_url"`                       // Share URL on the source marketplace
	BrandName   *string   `json:"brand_name,omitempty" yaml:"brand_name,omitempty"`   // Brand as reported by the source
	CategoryID  *int64    `json:"category_id,omitempty" yaml:"category_id,omitempty"` // Source category

	// Informational price bounds in source minor units
	MinPrice *int64 `json:"min_price,omitempty" yaml:"min_price,omitempty"`
	MaxPrice *int64 `json:"max_price,omitempty" yaml:"max_price,omitempty"`

	Images   []string  `json:"images,omitempty" yaml:"images,omitempty"` // Ordered image URLs
	Specs    []Spec    `json:"specs,omitempty" yaml:"specs,omitempty"`
	Variants []Variant `json:"variants,omitempty" yaml:"variants,omitempty"`

	// ArticleCode is the manufacturer article number; required for publication.
	ArticleCode *string `json:"article_code,omitempty" yaml:"article_code,omitempty"`
}

// AddVariant appends a variant, keeping source order.
func (p *Product) AddVariant(v Variant) {
	p.Variants = append(p.Variants, v)
}

// Eligible reports whether the product may be published: it needs at least
// one variant and a non-empty article code.
func (p *Product) Eligible() bool {
	if p == nil {
		return false
	}
	return len(p.Variants) > 0 && p.ArticleCode != nil && *p.ArticleCode != ""
}

// Article returns the article code or "" when absent.
func (p *Product) Article() string {
	if p == nil || p.ArticleCode == nil {
		return ""
	}
	return *p.ArticleCode
}

// Brand returns the source brand name or "" when absent.
func (p *Product) Brand() string {
	if p == nil || p.BrandName == nil {
		return ""
	}
	return *p.BrandName
}

// Clone returns a deep copy of the product.
func (p *Product) Clone() *Product {
	if p == nil {
		return nil
	}
	c := *p
	c.Description = cloneRef(p.Description)
	c.BrandName = cloneRef(p.BrandName)
	c.CategoryID = cloneRef(p.CategoryID)
	c.MinPrice = cloneRef(p.MinPrice)
	c.MaxPrice = cloneRef(p.MaxPrice)
	c.ArticleCode = cloneRef(p.ArticleCode)
	if p.Images != nil {
		c.Images = append([]string(nil), p.Images...)
	}
	if p.Specs != nil {
		c.Specs = append([]Spec(nil), p.Specs...)
	}
	if p.Variants != nil {
		c.Variants = make([]Variant, len(p.Variants))
		for i, v := range p.Variants {
			c.Variants[i] = v.Clone()
		}
	}
	return &c
}

// IDs returns the identifiers of products in order, skipping nils.
func IDs(products []*Product) []ProductID {
	ids := make([]ProductID, 0, len(products))
	for _, p := range products {
		if p != nil {
			ids = append(ids, p.ID)
		}
	}
	return ids
}

func cloneRef[T any](v *T) *T {
	if v == nil {
		return nil
	}
	c := *v
	return &c
}
