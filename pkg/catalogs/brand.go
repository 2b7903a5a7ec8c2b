package catalogs

import (
	"slices"
	"strings"

	"golang.org/x/text/cases"
)

// Brand is one brand to synchronize together with the source brand ids
// whose search results are attributed to it.
type Brand struct {
	Name string  `json:"name" yaml:"name" mapstructure:"name"`
	IDs  []int64 `json:"ids" yaml:"ids" mapstructure:"ids"`
}

// Allows reports whether a source brand id belongs to this brand.
func (b Brand) Allows(id int64) bool {
	return slices.Contains(b.IDs, id)
}

// DefaultBrands returns the built-in brand table.
func DefaultBrands() []Brand {
	return []Brand{
		{Name: "Jordan", IDs: []int64{13}},
		{Name: "Nike", IDs: []int64{144}},
		{Name: "Adidas", IDs: []int64{3, 10139, 494, 1025980}},
		{Name: "New Balance", IDs: []int64{4}},
		{Name: "Converse", IDs: []int64{176}},
		{Name: "Vans", IDs: []int64{9}},
		{Name: "Saucony", IDs: []int64{10480}},
		{Name: "Yeezy", IDs: []int64{1152, 3, 10139, 494, 1025980}},
		{Name: "Salomon", IDs: []int64{1000079}},
	}
}

// FindBrand looks a brand up by case-insensitive name.
func FindBrand(brands []Brand, name string) (Brand, bool) {
	folder := cases.Fold()
	want := folder.String(strings.TrimSpace(name))
	for _, b := range brands {
		if folder.String(b.Name) == want {
			return b, true
		}
	}
	return Brand{}, false
}
