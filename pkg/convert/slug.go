package convert

import (
	"net/url"
	"slices"
	"strings"
)

// ExtractSlug returns the path segment following "product" in a product
// URL, or "" when there is none.
func ExtractSlug(rawURL string) string {
	u, err := url.Parse(rawURL)
	if err != nil {
		return ""
	}
	parts := strings.Split(strings.Trim(u.Path, "/"), "/")
	i := slices.Index(parts, "product")
	if i < 0 || i+1 >= len(parts) {
		return ""
	}
	return parts[i+1]
}
