package fakes

import (
	"context"
	"net/http"
	"slices"
	"strings"
	"sync"

	"github.com/agentstation/shelfsync/pkg/catalogs"
	"github.com/agentstation/shelfsync/pkg/storefront"
)

// Upsert records one call to Storefront.Upsert.
type Upsert struct {
	Product    storefront.Product
	Variations []storefront.Variation
}

// Storefront is an in-memory storefront.Client.
type Storefront struct {
	mu        sync.Mutex
	published map[string][]catalogs.ProductID
	listErrs  map[string]error
	rejects   map[string]storefront.UpsertResult
	failures  map[string]error
	upserts   []Upsert
}

var _ storefront.Client = (*Storefront)(nil)

// NewStorefront creates an empty Storefront.
func NewStorefront() *Storefront {
	return &Storefront{
		published: make(map[string][]catalogs.ProductID),
		listErrs:  make(map[string]error),
		rejects:   make(map[string]storefront.UpsertResult),
		failures:  make(map[string]error),
	}
}

// Publish marks ids as previously published under brand.
func (s *Storefront) Publish(brand string, ids ...catalogs.ProductID) *Storefront {
	s.mu.Lock()
	defer s.mu.Unlock()
	key := strings.ToLower(brand)
	s.published[key] = append(s.published[key], ids...)
	return s
}

// FailList makes listing brand fail with err.
func (s *Storefront) FailList(brand string, err error) *Storefront {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.listErrs[strings.ToLower(brand)] = err
	return s
}

// Reject makes upserts of the product with sku return a non-success status.
func (s *Storefront) Reject(sku string, status int, message string) *Storefront {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.rejects[sku] = storefront.UpsertResult{StatusCode: status, Message: message}
	return s
}

// Fail makes upserts of the product with sku return err.
func (s *Storefront) Fail(sku string, err error) *Storefront {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.failures[sku] = err
	return s
}

// PublishedIdentifiers implements storefront.Client.
func (s *Storefront) PublishedIdentifiers(ctx context.Context, brand string) ([]catalogs.ProductID, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	key := strings.ToLower(brand)
	if err := s.listErrs[key]; err != nil {
		return nil, err
	}
	return append([]catalogs.ProductID(nil), s.published[key]...), nil
}

// Upsert implements storefront.Client. Accepted products become published
// under their rendered brand.
func (s *Storefront) Upsert(ctx context.Context, p storefront.Product, variations []storefront.Variation) (storefront.UpsertResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := ctx.Err(); err != nil {
		return storefront.UpsertResult{}, err
	}
	s.upserts = append(s.upserts, Upsert{Product: p, Variations: variations})
	if err := s.failures[p.SKU]; err != nil {
		return storefront.UpsertResult{}, err
	}
	if res, ok := s.rejects[p.SKU]; ok {
		return res, nil
	}
	key := strings.ToLower(p.Brand)
	if !slices.Contains(s.published[key], p.SourceID) {
		s.published[key] = append(s.published[key], p.SourceID)
	}
	return storefront.UpsertResult{StatusCode: http.StatusCreated, Message: "created"}, nil
}

// Upserts returns every upsert received so far.
func (s *Storefront) Upserts() []Upsert {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]Upsert(nil), s.upserts...)
}
