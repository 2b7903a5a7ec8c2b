package woocommerce

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agentstation/shelfsync/pkg/catalogs"
	"github.com/agentstation/shelfsync/pkg/errors"
	"github.com/agentstation/shelfsync/pkg/storefront"
)

func samba() (storefront.Product, []storefront.Variation) {
	p := storefront.Product{
		Slug:        "adidas-samba-og",
		Name:        "adidas Samba OG",
		SKU:         "B75806",
		Description: "Color: white",
		SourceID:    "1001",
		Images:      []storefront.Image{{Src: "https://cdn.test/1.jpg"}},
		Brand:       "Adidas",
	}
	vs := []storefront.Variation{
		{RegularPrice: "2400", SKU: "B75806-1", Attributes: []storefront.Attribute{{Name: "pa_eu_size", Option: "42"}}},
		{RegularPrice: "2500", SKU: "B75806-2", Attributes: []storefront.Attribute{{Name: "pa_eu_size", Option: "43"}}},
	}
	return p, vs
}

func TestUpsertCreatesProduct(t *testing.T) {
	store := newFakeStore()
	c := store.serve(t)
	p, vs := samba()

	res, err := c.Upsert(context.Background(), p, vs)
	require.NoError(t, err)

	assert.Equal(t, http.StatusCreated, res.StatusCode)
	assert.True(t, res.Succeeded())

	require.Len(t, store.brands, 1)
	assert.Equal(t, "adidas", store.brands[0].Slug)
	require.Len(t, store.attributes, 1)
	assert.Equal(t, "pa_eu_size", store.attributes[0].Slug)
	attrID := store.attributes[0].ID
	require.Len(t, store.terms[attrID], 2)
	require.Len(t, store.categories, 1)
	assert.Equal(t, "sneakers", store.categories[0].Slug)

	id := store.skus["B75806"]
	require.NotZero(t, id)
	saved := store.products[id]
	assert.Equal(t, "variable", saved["type"])
	assert.Equal(t, "instock", saved["stock_status"])
	assert.Equal(t, []any{map[string]any{"key": "_poizon_spu_id", "value": "1001"}}, saved["meta_data"])
	assert.Equal(t, []any{map[string]any{"name": "pa_eu_size", "option": "42"}}, saved["default_attributes"])

	variations := store.variations[id]
	require.Len(t, variations, 2)
	assert.Equal(t, "B75806-1", variations[0].SKU)
	assert.Equal(t, "2400", variations[0].RegularPrice)
	assert.Equal(t, "instock", variations[0].StockStatus)

	for _, user := range store.auth {
		assert.Equal(t, "ck_test", user)
	}
}

func TestUpsertReplacesExistingProduct(t *testing.T) {
	store := newFakeStore()
	store.attributes = []globalAttribute{{ID: 7, Name: "EU size", Slug: "pa_eu_size"}}
	store.terms[7] = []term{{ID: 70, Name: "42"}}
	store.categories = []category{{ID: 9, Name: "Sneakers", Slug: "sneakers"}}
	store.skus["B75806"] = 50
	store.products[50] = map[string]any{"id": 50, "sku": "B75806"}
	store.variations[50] = []variation{{ID: 51, SKU: "old-1"}, {ID: 52, SKU: "old-2"}}
	c := store.serve(t)
	p, vs := samba()

	res, err := c.Upsert(context.Background(), p, vs)
	require.NoError(t, err)

	assert.Equal(t, http.StatusOK, res.StatusCode)
	assert.Equal(t, 0, store.requested("POST products"))
	assert.Equal(t, 3, store.requested("PUT products/50"))
	assert.Equal(t, 2, store.requested("POST products/50/variations/batch")) // delete, then create

	// Only the missing term is created.
	require.Len(t, store.terms[7], 2)
	assert.Equal(t, "43", store.terms[7][1].Name)

	variations := store.variations[50]
	require.Len(t, variations, 2)
	assert.Equal(t, "B75806-1", variations[0].SKU)
	assert.Equal(t, "B75806-2", variations[1].SKU)
	assert.Equal(t, "EU size", store.products[50]["attributes"].([]any)[0].(map[string]any)["name"])
}

func TestUpsertRejectedCreate(t *testing.T) {
	store := newFakeStore()
	store.rejectCreate = http.StatusBadRequest
	c := store.serve(t)
	p, vs := samba()

	res, err := c.Upsert(context.Background(), p, vs)
	require.NoError(t, err)

	assert.Equal(t, http.StatusBadRequest, res.StatusCode)
	assert.False(t, res.Succeeded())
	assert.Contains(t, res.Message, "Invalid SKU")
	assert.Empty(t, store.variations)
}

func TestUpsertWithoutBrandTaxonomy(t *testing.T) {
	store := newFakeStore()
	store.brandsDisabled = true
	c := store.serve(t)
	p, vs := samba()

	res, err := c.Upsert(context.Background(), p, vs)
	require.NoError(t, err)

	assert.Equal(t, http.StatusCreated, res.StatusCode)
	_, hasBrands := store.products[store.skus["B75806"]]["brands"]
	assert.False(t, hasBrands)
}

func TestUpsertReusesTaxonomy(t *testing.T) {
	store := newFakeStore()
	c := store.serve(t)
	p, vs := samba()

	_, err := c.Upsert(context.Background(), p, vs)
	require.NoError(t, err)
	p.SKU = "BB5476"
	_, err = c.Upsert(context.Background(), p, vs)
	require.NoError(t, err)

	assert.Equal(t, 1, store.requested("GET products/attributes"))
	assert.Equal(t, 1, store.requested("GET products/categories"))
	assert.Len(t, store.attributes, 1)
	assert.Len(t, store.categories, 1)
}

func TestPublishedIdentifiers(t *testing.T) {
	store := newFakeStore()
	store.listing = []map[string]any{
		{"id": 1, "meta_data": []any{map[string]any{"key": "_poizon_spu_id", "value": "1001"}},
			"brands": []any{map[string]any{"id": 3, "name": "Adidas"}}},
		{"id": 2, "meta_data": []any{map[string]any{"key": "_poizon_spu_id", "value": 1002}},
			"attributes": []any{map[string]any{"name": "Бренд", "options": []any{"ADIDAS"}}}},
		{"id": 3, "meta_data": []any{map[string]any{"key": "_poizon_spu_id", "value": "1003"}},
			"brands": []any{map[string]any{"id": 4, "name": "Nike"}}},
		{"id": 4, "brands": []any{map[string]any{"id": 3, "name": "Adidas"}}},
		{"id": 5, "meta_data": []any{map[string]any{"key": "_poizon_spu_id", "value": "1001"}},
			"brands": []any{map[string]any{"id": 3, "name": "Adidas"}}},
	}
	c := store.serve(t)
	c.pageSize = 2

	ids, err := c.PublishedIdentifiers(context.Background(), "adidas")
	require.NoError(t, err)

	assert.Equal(t, []catalogs.ProductID{"1001", "1002"}, ids)
	assert.Equal(t, 3, store.requested("GET products"))
}

func TestPublishedIdentifiersError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer srv.Close()

	c, err := NewClient(srv.URL, "ck", "cs")
	require.NoError(t, err)

	_, err = c.PublishedIdentifiers(context.Background(), "Nike")
	require.Error(t, err)
	assert.True(t, errors.IsProviderUnavailable(err))
}

func TestQueryAuth(t *testing.T) {
	store := newFakeStore()
	srv := httptest.NewServer(store)
	defer srv.Close()

	c, err := NewClient(srv.URL+"/", "ck_query", "cs_query", WithQueryAuth(true))
	require.NoError(t, err)

	_, err = c.PublishedIdentifiers(context.Background(), "Nike")
	require.NoError(t, err)
	require.NotEmpty(t, store.auth)
	assert.Equal(t, "ck_query", store.auth[0])
}

func TestNewClientValidation(t *testing.T) {
	_, err := NewClient("", "ck", "cs")
	assert.Error(t, err)

	_, err = NewClient("https://shop.test", "", "cs")
	assert.ErrorIs(t, err, errors.ErrAPIKeyRequired)
}
