package pricing

import (
	"fmt"

	"github.com/agentstation/shelfsync/internal/cache"
	"github.com/agentstation/shelfsync/pkg/catalogs"
	"github.com/agentstation/shelfsync/pkg/constants"
)

// Strategy prices one variant.
type Strategy interface {
	Price(basePrice int64) int64
}

// StrategyFunc adapts a function to Strategy.
type StrategyFunc func(basePrice int64) int64

// Price implements Strategy.
func (f StrategyFunc) Price(basePrice int64) int64 {
	return f(basePrice)
}

// Calculator is a memoizing Strategy for fixed Params.
type Calculator struct {
	params   Params
	rounding Rounding
	memo     *cache.Cache
}

// CalculatorOption configures a Calculator.
type CalculatorOption func(*Calculator)

// WithRounding sets the mode B rounding.
func WithRounding(r Rounding) CalculatorOption {
	return func(c *Calculator) {
		c.rounding = r
	}
}

// WithCache shares a memo cache between calculators.
func WithCache(memo *cache.Cache) CalculatorOption {
	return func(c *Calculator) {
		c.memo = memo
	}
}

// NewCalculator creates a Calculator for p.
func NewCalculator(p Params, opts ...CalculatorOption) *Calculator {
	c := &Calculator{params: p, rounding: RoundOnce}
	for _, opt := range opts {
		opt(c)
	}
	if c.memo == nil {
		c.memo = cache.New(constants.PriceCacheTTL, constants.PriceCacheCleanup)
	}
	return c
}

var _ Strategy = (*Calculator)(nil)

// Price implements Strategy.
func (c *Calculator) Price(basePrice int64) int64 {
	key := fmt.Sprintf("%d|%s|%d|%d|%d|%s",
		basePrice, c.params.Mode, c.params.X, c.params.Y, c.params.Z, c.rounding)
	return cache.Memoize(c.memo, key, func() int64 {
		return CalculateWith(basePrice, c.params, c.rounding)
	})
}

// Params returns the calculator's parameters.
func (c *Calculator) Params() Params {
	return c.params
}

// Stats returns memo statistics.
func (c *Calculator) Stats() cache.Stats {
	return c.memo.GetStats()
}

// ApplyToProduct returns a copy of p with every priced variant repriced by
// s. Unpriced variants are left as they are. p is not modified.
func ApplyToProduct(s Strategy, p *catalogs.Product) *catalogs.Product {
	priced := p.Clone()
	if priced == nil || s == nil {
		return priced
	}
	for i := range priced.Variants {
		v := &priced.Variants[i]
		if v.RegularPrice == nil {
			continue
		}
		price := s.Price(*v.RegularPrice)
		v.RegularPrice = &price
	}
	return priced
}
