package sources

import (
	"encoding/json"
	"strconv"

	"github.com/agentstation/shelfsync/pkg/catalogs"
)

// SearchResult is one search hit.
type SearchResult struct {
	SpuID   json.Number `json:"spuId"`
	BrandID json.Number `json:"brandId"`
	Title   string      `json:"title"`
}

// ProductID returns the hit's product identifier.
func (r SearchResult) ProductID() catalogs.ProductID {
	return catalogs.ProductID(r.SpuID.String())
}

// Brand returns the hit's source brand id.
func (r SearchResult) Brand() (int64, bool) {
	id, err := strconv.ParseInt(r.BrandID.String(), 10, 64)
	return id, err == nil
}

// SearchResponse is the search endpoint envelope.
type SearchResponse struct {
	SearchSpuList struct {
		SpuList []SearchResult `json:"spuList"`
	} `json:"searchSpuList"`
	Msg string `json:"msg,omitempty"`
}

// Detail is the full product payload.
type Detail struct {
	ShareInfo      ShareInfo       `json:"shareInfo"`
	BuyDialog      BuyDialog       `json:"buyDialogModel"`
	Price          PriceInfo       `json:"price"`
	ImageModels    []ImageModel    `json:"imageModels"`
	BaseProperties []BaseProperty  `json:"baseProperties"`
	BrandItems     BrandItemsModel `json:"brandItemsModel"`
}

// Empty reports whether the payload carries no product.
func (d *Detail) Empty() bool {
	return d == nil || d.BuyDialog.Detail.SpuID == ""
}

// ShareInfo holds the public title and link.
type ShareInfo struct {
	ShareTitle string `json:"shareTitle"`
	ShareURL   string `json:"shareUrl"`
}

// BuyDialog holds the SKU table and the sale properties it references.
type BuyDialog struct {
	Detail         DialogDetail   `json:"detail"`
	Skus           []Sku          `json:"skus"`
	SaleProperties []SaleProperty `json:"saleProperties"`
}

// DialogDetail identifies the product.
type DialogDetail struct {
	SpuID      json.Number `json:"spuId"`
	CategoryID *int64      `json:"categoryId"`
}

// Sku is one purchasable configuration.
type Sku struct {
	SkuID        json.Number   `json:"skuId"`
	Properties   []SkuProperty `json:"properties"`
	SkuSpeedInfo []SpeedInfo   `json:"skuSpeedInfo"`
}

// Price returns the first speed price in minor units.
func (s Sku) Price() *int64 {
	if len(s.SkuSpeedInfo) == 0 {
		return nil
	}
	return s.SkuSpeedInfo[0].SpeedPrice.Money.MinUnitVal
}

// SkuProperty references a sale property item by level and value id.
type SkuProperty struct {
	Level           int         `json:"level"`
	PropertyValueID json.Number `json:"propertyValueId"`
}

// SpeedInfo carries a delivery-speed price.
type SpeedInfo struct {
	SpeedPrice SpeedPrice `json:"speedPrice"`
}

// SpeedPrice is the price for one delivery speed.
type SpeedPrice struct {
	Money Money `json:"money"`
}

// Money is an amount in minor units.
type Money struct {
	MinUnitVal *int64 `json:"minUnitVal"`
}

// PriceInfo holds the product's lowest price.
type PriceInfo struct {
	Money Money `json:"money"`
}

// SaleProperty is one level of the sale property table.
type SaleProperty struct {
	Level        int            `json:"level"`
	PropertyList []PropertyList `json:"propertyList"`
}

// PropertyList groups property items under a key such as "EU".
type PropertyList struct {
	PropertyKey        string         `json:"propertyKey"`
	PropertyItemModels []PropertyItem `json:"propertyItemModels"`
}

// PropertyItem is a resolvable attribute value.
type PropertyItem struct {
	PropertyValueID json.Number `json:"propertyValueId"`
	Name            string      `json:"name"`
	Value           string      `json:"value"`
}

// ImageModel is a product image.
type ImageModel struct {
	URL       string `json:"url"`
	ModelWear bool   `json:"modelWear"`
}

// BaseProperty is a typed product attribute such as the article number.
type BaseProperty struct {
	ItemType string `json:"itemType"`
	Key      string `json:"key,omitempty"`
	Value    string `json:"value"`
}

// ItemTypeArticleNumber tags the manufacturer article number.
const ItemTypeArticleNumber = "ARTICLE_NUMBER"

// BrandItemsModel holds the source brand.
type BrandItemsModel struct {
	BrandName string `json:"brandName"`
}
