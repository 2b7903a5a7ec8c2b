package scoring

import (
	"sync"

	"github.com/agentstation/shelfsync/pkg/catalogs"
)

// Collector accumulates products for batch ranking.
type Collector struct {
	mu       sync.Mutex
	products []*catalogs.Product
}

// NewCollector creates a Collector seeded with products.
func NewCollector(products ...*catalogs.Product) *Collector {
	return &Collector{products: append([]*catalogs.Product(nil), products...)}
}

// Add appends a product.
func (c *Collector) Add(p *catalogs.Product) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.products = append(c.products, p)
}

// Len returns the number of collected products.
func (c *Collector) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.products)
}

// TopN ranks the collected products.
func (c *Collector) TopN(scorer Scorer, n int) []*catalogs.Product {
	c.mu.Lock()
	snapshot := append([]*catalogs.Product(nil), c.products...)
	c.mu.Unlock()
	return TopN(snapshot, scorer, n)
}
