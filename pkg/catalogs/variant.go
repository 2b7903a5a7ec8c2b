package catalogs

import (
	"maps"

	"github.com/agentstation/shelfsync/pkg/constants"
)

// Variant is one purchasable configuration, typically one size, of a product.
type Variant struct {
	ID   string `json:"id" yaml:"id"`     // Source SKU id
	Code string `json:"code" yaml:"code"` // Used to build the storefront SKU

	// RegularPrice in source minor units; nil means the variant is unpriced.
	RegularPrice *int64 `json:"regular_price,omitempty" yaml:"regular_price,omitempty"`

	// Attributes maps composite lower-case names such as "eu_size" to values.
	Attributes map[string]string `json:"attributes,omitempty" yaml:"attributes,omitempty"`
}

// EUSize returns the EU size attribute.
func (v Variant) EUSize() (string, bool) {
	size, ok := v.Attributes[constants.EUSizeAttribute]
	return size, ok && size != ""
}

// Clone returns a deep copy of the variant.
func (v Variant) Clone() Variant {
	c := v
	c.RegularPrice = cloneRef(v.RegularPrice)
	if v.Attributes != nil {
		c.Attributes = maps.Clone(v.Attributes)
	}
	return c
}
