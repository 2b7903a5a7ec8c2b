package woocommerce

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"
)

// fakeStore is an in-memory WooCommerce REST API.
type fakeStore struct {
	mu sync.Mutex

	nextID     int64
	brands     []term
	attributes []globalAttribute
	terms      map[int64][]term
	categories []category
	skus       map[string]int64
	products   map[int64]map[string]any
	variations map[int64][]variation
	listing    []map[string]any

	brandsDisabled bool
	rejectCreate   int

	requests []string
	auth     []string
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		nextID:     100,
		terms:      make(map[int64][]term),
		skus:       make(map[string]int64),
		products:   make(map[int64]map[string]any),
		variations: make(map[int64][]variation),
	}
}

func (s *fakeStore) id() int64 {
	s.nextID++
	return s.nextID
}

func (s *fakeStore) serve(t *testing.T) *Client {
	t.Helper()
	srv := httptest.NewServer(s)
	t.Cleanup(srv.Close)

	c, err := NewClient(srv.URL, "ck_test", "cs_test")
	require.NoError(t, err)
	return c
}

// requested reports how many requests matched "METHOD path".
func (s *fakeStore) requested(call string) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	n := 0
	for _, r := range s.requests {
		if r == call {
			n++
		}
	}
	return n
}

func (s *fakeStore) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()

	path := strings.TrimPrefix(r.URL.Path, "/wp-json/wc/v3/")
	s.requests = append(s.requests, r.Method+" "+path)
	user, _, _ := r.BasicAuth()
	if user == "" {
		user = r.URL.Query().Get("consumer_key")
	}
	s.auth = append(s.auth, user)

	body, _ := io.ReadAll(r.Body)
	parts := strings.Split(path, "/")

	switch {
	case path == "products/brands":
		if s.brandsDisabled {
			http.NotFound(w, r)
			return
		}
		if r.Method == http.MethodGet {
			var found []term
			for _, b := range s.brands {
				if strings.EqualFold(b.Name, r.URL.Query().Get("search")) {
					found = append(found, b)
				}
			}
			writeJSON(w, http.StatusOK, found)
			return
		}
		var b term
		_ = json.Unmarshal(body, &b)
		b.ID = s.id()
		s.brands = append(s.brands, b)
		writeJSON(w, http.StatusCreated, b)

	case path == "products/attributes":
		if r.Method == http.MethodGet {
			writeJSON(w, http.StatusOK, s.attributes)
			return
		}
		var a globalAttribute
		_ = json.Unmarshal(body, &a)
		a.ID = s.id()
		a.Slug = "pa_" + a.Name
		if strings.HasPrefix(a.Name, "pa_") {
			a.Slug = a.Name
		}
		s.attributes = append(s.attributes, a)
		writeJSON(w, http.StatusCreated, a)

	case len(parts) == 4 && parts[1] == "attributes" && parts[3] == "terms":
		attrID, _ := strconv.ParseInt(parts[2], 10, 64)
		if r.Method == http.MethodGet {
			writeJSON(w, http.StatusOK, page(s.terms[attrID], r))
			return
		}
		var tm term
		_ = json.Unmarshal(body, &tm)
		tm.ID = s.id()
		s.terms[attrID] = append(s.terms[attrID], tm)
		writeJSON(w, http.StatusCreated, tm)

	case path == "products/categories":
		if r.Method == http.MethodGet {
			var found []category
			for _, c := range s.categories {
				if c.Slug == r.URL.Query().Get("slug") {
					found = append(found, c)
				}
			}
			writeJSON(w, http.StatusOK, found)
			return
		}
		var c category
		_ = json.Unmarshal(body, &c)
		c.ID = s.id()
		s.categories = append(s.categories, c)
		writeJSON(w, http.StatusCreated, c)

	case path == "products" && r.Method == http.MethodGet:
		if sku := r.URL.Query().Get("sku"); sku != "" {
			var found []map[string]any
			if id, ok := s.skus[sku]; ok {
				found = append(found, map[string]any{"id": id, "sku": sku})
			}
			writeJSON(w, http.StatusOK, found)
			return
		}
		writeJSON(w, http.StatusOK, page(s.listing, r))

	case path == "products" && r.Method == http.MethodPost:
		if s.rejectCreate != 0 {
			writeJSON(w, s.rejectCreate, map[string]string{"code": "woocommerce_rest_invalid", "message": "Invalid SKU"})
			return
		}
		var p map[string]any
		_ = json.Unmarshal(body, &p)
		id := s.id()
		p["id"] = id
		s.products[id] = p
		if sku, ok := p["sku"].(string); ok {
			s.skus[sku] = id
		}
		writeJSON(w, http.StatusCreated, p)

	case len(parts) == 2 && parts[0] == "products" && r.Method == http.MethodPut:
		id, _ := strconv.ParseInt(parts[1], 10, 64)
		p, ok := s.products[id]
		if !ok {
			http.NotFound(w, r)
			return
		}
		var update map[string]any
		_ = json.Unmarshal(body, &update)
		for k, v := range update {
			p[k] = v
		}
		writeJSON(w, http.StatusOK, p)

	case len(parts) == 3 && parts[2] == "variations":
		id, _ := strconv.ParseInt(parts[1], 10, 64)
		writeJSON(w, http.StatusOK, page(s.variations[id], r))

	case len(parts) == 4 && parts[2] == "variations" && parts[3] == "batch":
		id, _ := strconv.ParseInt(parts[1], 10, 64)
		var batch variationBatch
		_ = json.Unmarshal(body, &batch)
		kept := s.variations[id][:0]
		for _, v := range s.variations[id] {
			if !containsID(batch.Delete, v.ID) {
				kept = append(kept, v)
			}
		}
		for _, v := range batch.Create {
			v.ID = s.id()
			kept = append(kept, v)
		}
		s.variations[id] = kept
		writeJSON(w, http.StatusOK, map[string]any{"create": batch.Create, "delete": batch.Delete})

	default:
		http.Error(w, fmt.Sprintf("unexpected %s %s", r.Method, path), http.StatusNotImplemented)
	}
}

func page[T any](items []T, r *http.Request) []T {
	n, _ := strconv.Atoi(r.URL.Query().Get("page"))
	size, _ := strconv.Atoi(r.URL.Query().Get("per_page"))
	if n < 1 {
		n = 1
	}
	if size < 1 {
		size = 10
	}
	start := (n - 1) * size
	if start >= len(items) {
		return []T{}
	}
	return items[start:min(start+size, len(items))]
}

func containsID(ids []int64, id int64) bool {
	for _, v := range ids {
		if v == id {
			return true
		}
	}
	return false
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
