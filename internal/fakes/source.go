// Package fakes provides in-memory implementations of the source and
// storefront contracts for tests.
package fakes

import (
	"context"
	"encoding/json"
	"strconv"
	"strings"
	"sync"

	"github.com/agentstation/shelfsync/internal/utils/ptr"
	"github.com/agentstation/shelfsync/pkg/catalogs"
	"github.com/agentstation/shelfsync/pkg/sources"
)

// DetailPrice is the minor-unit price given to every variant built by Detail.
const DetailPrice int64 = 300000

// Source is an in-memory sources.Client.
type Source struct {
	mu          sync.Mutex
	pages       map[string]map[int][]sources.SearchResult
	details     map[catalogs.ProductID]*sources.Detail
	searchErrs  map[string]map[int]error
	detailErrs  map[catalogs.ProductID]error
	searches    []sources.Query
	detailCalls map[catalogs.ProductID]int
}

var _ sources.Client = (*Source)(nil)

// NewSource creates an empty Source.
func NewSource() *Source {
	return &Source{
		pages:       make(map[string]map[int][]sources.SearchResult),
		details:     make(map[catalogs.ProductID]*sources.Detail),
		searchErrs:  make(map[string]map[int]error),
		detailErrs:  make(map[catalogs.ProductID]error),
		detailCalls: make(map[catalogs.ProductID]int),
	}
}

// AddPage sets the hits returned for one page of a keyword search.
func (s *Source) AddPage(keyword string, page int, hits ...sources.SearchResult) *Source {
	s.mu.Lock()
	defer s.mu.Unlock()
	key := strings.ToLower(keyword)
	if s.pages[key] == nil {
		s.pages[key] = make(map[int][]sources.SearchResult)
	}
	s.pages[key][page] = hits
	return s
}

// AddDetail registers detail payloads by their product id.
func (s *Source) AddDetail(details ...*sources.Detail) *Source {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, d := range details {
		s.details[catalogs.ProductID(d.BuyDialog.Detail.SpuID.String())] = d
	}
	return s
}

// FailSearch makes every search for one page of keyword fail with err.
func (s *Source) FailSearch(keyword string, page int, err error) *Source {
	s.mu.Lock()
	defer s.mu.Unlock()
	key := strings.ToLower(keyword)
	if s.searchErrs[key] == nil {
		s.searchErrs[key] = make(map[int]error)
	}
	s.searchErrs[key][page] = err
	return s
}

// FailDetail makes every detail fetch for id fail with err.
func (s *Source) FailDetail(id catalogs.ProductID, err error) *Source {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.detailErrs[id] = err
	return s
}

// Search implements sources.Client.
func (s *Source) Search(ctx context.Context, q sources.Query) ([]sources.SearchResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.searches = append(s.searches, q)
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	key := strings.ToLower(q.Keyword)
	if err := s.searchErrs[key][q.Page]; err != nil {
		return nil, err
	}
	return append([]sources.SearchResult(nil), s.pages[key][q.Page]...), nil
}

// FetchDetail implements sources.Client. Unknown ids return an empty Detail.
func (s *Source) FetchDetail(ctx context.Context, id catalogs.ProductID) (*sources.Detail, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.detailCalls[id]++
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if err := s.detailErrs[id]; err != nil {
		return nil, err
	}
	if d, ok := s.details[id]; ok {
		return d, nil
	}
	return &sources.Detail{}, nil
}

// Searches returns every query received so far.
func (s *Source) Searches() []sources.Query {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]sources.Query(nil), s.searches...)
}

// DetailCalls returns how many times id was fetched.
func (s *Source) DetailCalls(id catalogs.ProductID) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.detailCalls[id]
}

// Hit builds a search result.
func Hit(id string, brandID int64, title string) sources.SearchResult {
	return sources.SearchResult{
		SpuID:   json.Number(id),
		BrandID: json.Number(strconv.FormatInt(brandID, 10)),
		Title:   title,
	}
}

// Detail builds a product payload with one priced variant per EU size.
// An empty article yields a product that is not eligible for publication.
func Detail(id, title, brand, article string, sizes ...string) *sources.Detail {
	d := &sources.Detail{
		ShareInfo: sources.ShareInfo{
			ShareTitle: title,
			ShareURL:   "https://thepoizon.ru/product/item-" + id,
		},
		BrandItems: sources.BrandItemsModel{BrandName: brand},
		Price:      sources.PriceInfo{Money: sources.Money{MinUnitVal: ptr.Int64(DetailPrice)}},
		ImageModels: []sources.ImageModel{
			{URL: "https://cdn.poizon.test/" + id + "/1.jpg"},
			{URL: "https://cdn.poizon.test/" + id + "/worn.jpg", ModelWear: true},
		},
		BuyDialog: sources.BuyDialog{
			Detail: sources.DialogDetail{SpuID: json.Number(id), CategoryID: ptr.Int64(30)},
		},
	}
	if article != "" {
		d.BaseProperties = []sources.BaseProperty{{ItemType: sources.ItemTypeArticleNumber, Value: article}}
	}

	items := make([]sources.PropertyItem, 0, len(sizes))
	for i, size := range sizes {
		valueID := json.Number(strconv.Itoa(i + 1))
		items = append(items, sources.PropertyItem{PropertyValueID: valueID, Name: "尺码", Value: size})
		d.BuyDialog.Skus = append(d.BuyDialog.Skus, sources.Sku{
			SkuID:      json.Number(id + strconv.Itoa(i+1)),
			Properties: []sources.SkuProperty{{Level: 1, PropertyValueID: valueID}},
			SkuSpeedInfo: []sources.SpeedInfo{{
				SpeedPrice: sources.SpeedPrice{Money: sources.Money{MinUnitVal: ptr.Int64(DetailPrice)}},
			}},
		})
	}
	d.BuyDialog.SaleProperties = []sources.SaleProperty{{
		Level:        1,
		PropertyList: []sources.PropertyList{{PropertyKey: "EU", PropertyItemModels: items}},
	}}
	return d
}
