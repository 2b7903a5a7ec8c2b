// Package sources defines the contract the sync pipeline consumes from a
// source marketplace, together with the raw payloads it returns.
//
// Payload structs decode the marketplace JSON as-is. Every nested object is
// optional: a missing field decodes to its zero value and callers read it
// through nil-safe accessors rather than failing.
//
// Example usage:
//
//	results, err := client.Search(ctx, sources.NewQuery("Nike", 1))
//	if err != nil {
//	    return err
//	}
//	for _, r := range results {
//	    detail, err := client.FetchDetail(ctx, r.ProductID())
//	    ...
//	}
package sources

import (
	"context"

	"github.com/agentstation/shelfsync/pkg/catalogs"
	"github.com/agentstation/shelfsync/pkg/constants"
)

// Client is a source marketplace.
type Client interface {
	// Search returns one page of search results.
	Search(ctx context.Context, q Query) ([]SearchResult, error)

	// FetchDetail returns the full product payload. A product that does
	// not exist yields an empty Detail and no error.
	FetchDetail(ctx context.Context, id catalogs.ProductID) (*Detail, error)
}

// SortType orders search results.
type SortType int

// Sort orders understood by the marketplace search.
const (
	SortRecommended SortType = 0
	SortBySales     SortType = 1
	SortNewest      SortType = 3
	SortByPrice     SortType = 4
)

// DefaultCategoryIDs are the footwear categories searched by default.
var DefaultCategoryIDs = []int64{
	29, 1005116, 38, 35, 30, 33, 31, 32, 34, 1003478,
	1000266, 1001189, 1001176, 1005402, 1004168, 1005501, 1005113,
}

// DefaultFitIDs are the audiences searched by default: unisex, men, women.
var DefaultFitIDs = []int64{1, 2, 3}

// Query is one page of a keyword search.
type Query struct {
	Keyword     string
	Page        int // 1-based
	PageSize    int
	CategoryIDs []int64
	FitIDs      []int64
	Sort        SortType
}

// NewQuery returns a query for one page with the default filters.
func NewQuery(keyword string, page int) Query {
	return Query{
		Keyword:     keyword,
		Page:        page,
		PageSize:    constants.DefaultSearchPageSize,
		CategoryIDs: append([]int64(nil), DefaultCategoryIDs...),
		FitIDs:      append([]int64(nil), DefaultFitIDs...),
		Sort:        SortBySales,
	}
}
