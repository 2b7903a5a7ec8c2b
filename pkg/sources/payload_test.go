package sources

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agentstation/shelfsync/pkg/catalogs"
)

func TestSearchResponseDecode(t *testing.T) {
	body := `{"searchSpuList":{"spuList":[
		{"spuId":1001,"brandId":3,"title":"Samba OG"},
		{"spuId":"1002","brandId":"144","title":"Dunk Low"},
		{"spuId":1003,"title":"No brand"}
	]}}`

	var resp SearchResponse
	require.NoError(t, json.Unmarshal([]byte(body), &resp))
	hits := resp.SearchSpuList.SpuList
	require.Len(t, hits, 3)

	assert.Equal(t, catalogs.ProductID("1001"), hits[0].ProductID())
	id, ok := hits[0].Brand()
	assert.True(t, ok)
	assert.Equal(t, int64(3), id)

	id, ok = hits[1].Brand()
	assert.True(t, ok)
	assert.Equal(t, int64(144), id)

	_, ok = hits[2].Brand()
	assert.False(t, ok)
}

func TestDetailEmpty(t *testing.T) {
	var nilDetail *Detail
	assert.True(t, nilDetail.Empty())
	assert.True(t, (&Detail{}).Empty())

	var d Detail
	require.NoError(t, json.Unmarshal([]byte(`{"buyDialogModel":{"detail":{"spuId":42}}}`), &d))
	assert.False(t, d.Empty())
}

func TestSkuPrice(t *testing.T) {
	var s Sku
	require.NoError(t, json.Unmarshal([]byte(`{"skuId":1,"skuSpeedInfo":[{"speedPrice":{"money":{"minUnitVal":129900}}}]}`), &s))
	require.NotNil(t, s.Price())
	assert.Equal(t, int64(129900), *s.Price())

	assert.Nil(t, Sku{}.Price())
	assert.Nil(t, Sku{SkuSpeedInfo: []SpeedInfo{{}}}.Price())
}

func TestNewQuery(t *testing.T) {
	q := NewQuery("Nike", 2)
	assert.Equal(t, 2, q.Page)
	assert.Equal(t, 20, q.PageSize)
	assert.Equal(t, SortBySales, q.Sort)
	assert.Equal(t, DefaultFitIDs, q.FitIDs)

	q.CategoryIDs[0] = -1
	assert.Equal(t, int64(29), DefaultCategoryIDs[0])
}
