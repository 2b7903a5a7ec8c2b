// Package brands canonicalizes brand names and filters sub-brand products
// out of parent-brand searches.
package brands

import (
	"slices"
	"strings"

	"golang.org/x/text/cases"
)

type rule struct {
	brand    string
	keywords []string // case-folded
}

// Rules is an immutable, case-insensitive brand taxonomy. It is safe for
// concurrent use.
type Rules struct {
	special    []rule
	aliases    []rule
	exclusions map[string][]string // folded parent -> folded keywords
}

// New builds Rules from a Config. The config is copied; later changes to it
// have no effect.
func New(cfg Config) *Rules {
	r := &Rules{
		exclusions: make(map[string][]string, len(cfg.Exclusions)),
	}
	r.special = r.foldRules(cfg.Special)
	r.aliases = r.foldRules(cfg.Aliases)
	for parent, keywords := range cfg.Exclusions {
		key := r.fold(parent)
		r.exclusions[key] = append(r.exclusions[key], r.foldAll(keywords)...)
	}
	return r
}

// Default returns Rules built from DefaultConfig.
func Default() *Rules {
	return New(DefaultConfig())
}

// Normalize returns the canonical brand for a product. A special keyword
// found in the title wins; otherwise the raw brand is looked up in the
// alias table. Unknown brands are returned unchanged.
func (r *Rules) Normalize(rawBrand, title string) string {
	t := r.fold(title)
	for _, sr := range r.special {
		for _, kw := range sr.keywords {
			if strings.Contains(t, kw) {
				return sr.brand
			}
		}
	}

	b := r.fold(rawBrand)
	for _, ar := range r.aliases {
		if slices.Contains(ar.keywords, b) {
			return ar.brand
		}
	}
	return rawBrand
}

// ShouldSkip reports whether subBrand is excluded from parentBrand.
func (r *Rules) ShouldSkip(parentBrand, subBrand string) bool {
	return slices.Contains(r.exclusions[r.fold(parentBrand)], r.fold(subBrand))
}

// ExcludedSubBrand returns the first excluded sub-brand keyword of
// parentBrand that occurs in title.
func (r *Rules) ExcludedSubBrand(parentBrand, title string) (string, bool) {
	t := r.fold(title)
	for _, kw := range r.exclusions[r.fold(parentBrand)] {
		if strings.Contains(t, kw) {
			return kw, true
		}
	}
	return "", false
}

// Config returns a copy of the taxonomy in its case-folded form.
func (r *Rules) Config() Config {
	cfg := Config{Exclusions: make(map[string][]string, len(r.exclusions))}
	for _, sr := range r.special {
		cfg.Special = append(cfg.Special, Rule{Brand: sr.brand, Keywords: slices.Clone(sr.keywords)})
	}
	for _, ar := range r.aliases {
		cfg.Aliases = append(cfg.Aliases, Rule{Brand: ar.brand, Keywords: slices.Clone(ar.keywords)})
	}
	for parent, keywords := range r.exclusions {
		cfg.Exclusions[parent] = slices.Clone(keywords)
	}
	return cfg
}

func (r *Rules) fold(s string) string {
	// A Caser carries state and must not be shared across goroutines.
	return cases.Fold().String(strings.TrimSpace(s))
}

func (r *Rules) foldAll(in []string) []string {
	out := make([]string, 0, len(in))
	for _, s := range in {
		if f := r.fold(s); f != "" {
			out = append(out, f)
		}
	}
	return out
}

func (r *Rules) foldRules(in []Rule) []rule {
	out := make([]rule, 0, len(in))
	for _, cr := range in {
		out = append(out, rule{brand: cr.Brand, keywords: r.foldAll(cr.Keywords)})
	}
	return out
}
