package collector

import (
	"github.com/agentstation/shelfsync/pkg/catalogs"
)

// Result is the outcome of collecting one brand.
type Result struct {
	Brand    string              `json:"brand" yaml:"brand"`
	Products []*catalogs.Product `json:"products" yaml:"products"`
	Pages    int                 `json:"pages" yaml:"pages"` // Search pages requested
	Stats    Stats               `json:"stats" yaml:"stats"`

	// Err is the failure that ended collection early. Products collected
	// before it are kept.
	Err error `json:"-" yaml:"-"`
}

// Stats counts search results by what happened to them.
type Stats struct {
	Seen          int `json:"seen" yaml:"seen"`
	BrandMismatch int `json:"brand_mismatch" yaml:"brand_mismatch"`
	SubBrand      int `json:"sub_brand" yaml:"sub_brand"`
	Kids          int `json:"kids" yaml:"kids"`
	FetchFailed   int `json:"fetch_failed" yaml:"fetch_failed"`
	Ineligible    int `json:"ineligible" yaml:"ineligible"`
	Accepted      int `json:"accepted" yaml:"accepted"`
}

// Partial reports whether collection ended because of an error.
func (r *Result) Partial() bool {
	return r.Err != nil
}
