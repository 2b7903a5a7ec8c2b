// Package scoring ranks products for publication.
package scoring

import (
	"slices"
	"sort"
	"strings"

	"github.com/agentstation/shelfsync/pkg/catalogs"
)

// Scorer assigns a ranking score to a product. Higher is better.
type Scorer interface {
	Score(p *catalogs.Product) int
}

// ScorerFunc adapts a function to Scorer.
type ScorerFunc func(p *catalogs.Product) int

// Score implements Scorer.
func (f ScorerFunc) Score(p *catalogs.Product) int {
	return f(p)
}

const (
	maxScoredImages = 5
	premiumMinPrice = 400
)

// Default scores by assortment depth, imagery, price and title keywords.
type Default struct {
	BonusKeywords []string
}

// NewDefault returns the Default scorer with its standard bonus keywords.
func NewDefault() *Default {
	return &Default{BonusKeywords: []string{"爆款", "热卖", "经典"}}
}

var _ Scorer = (*Default)(nil)

// Score returns 2 per variant, 1 per image up to 5, 1 when the minimum
// price exceeds 400 and 1 when the title has a bonus keyword.
func (d *Default) Score(p *catalogs.Product) int {
	if p == nil {
		return 0
	}
	score := 2*len(p.Variants) + min(len(p.Images), maxScoredImages)
	if p.MinPrice != nil && *p.MinPrice > premiumMinPrice {
		score++
	}
	if slices.ContainsFunc(d.BonusKeywords, func(kw string) bool {
		return kw != "" && strings.Contains(p.Title, kw)
	}) {
		score++
	}
	return score
}

// TopN returns the n best products by score. Products with equal scores
// keep their input order. The input slice is not modified.
func TopN(products []*catalogs.Product, scorer Scorer, n int) []*catalogs.Product {
	if n <= 0 || len(products) == 0 {
		return []*catalogs.Product{}
	}

	type scored struct {
		product *catalogs.Product
		score   int
	}
	ranked := make([]scored, len(products))
	for i, p := range products {
		ranked[i] = scored{product: p, score: scorer.Score(p)}
	}
	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].score > ranked[j].score
	})

	out := make([]*catalogs.Product, 0, min(n, len(ranked)))
	for _, r := range ranked[:min(n, len(ranked))] {
		out = append(out, r.product)
	}
	return out
}
