package woocommerce

import (
	"encoding/json"
	"strings"

	"github.com/agentstation/shelfsync/pkg/storefront"
)

// Wire types of the WooCommerce REST API (wc/v3). Only the fields the
// client reads or writes are declared.

type metaData struct {
	Key   string `json:"key"`
	Value string `json:"value"`
}

// listedMeta is metadata as returned by the API, where values may be any
// JSON type.
type listedMeta struct {
	Key   string          `json:"key"`
	Value json.RawMessage `json:"value"`
}

// value renders a scalar value as text.
func (m listedMeta) value() string {
	var s string
	if err := json.Unmarshal(m.Value, &s); err == nil {
		return s
	}
	raw := strings.TrimSpace(string(m.Value))
	if raw == "null" {
		return ""
	}
	return raw
}

type term struct {
	ID   int64  `json:"id,omitempty"`
	Name string `json:"name"`
	Slug string `json:"slug,omitempty"`
}

type category struct {
	ID     int64  `json:"id,omitempty"`
	Name   string `json:"name,omitempty"`
	Slug   string `json:"slug,omitempty"`
	Parent int64  `json:"parent"`
}

type globalAttribute struct {
	ID          int64  `json:"id,omitempty"`
	Name        string `json:"name"`
	Slug        string `json:"slug,omitempty"`
	Type        string `json:"type,omitempty"`
	HasArchives bool   `json:"has_archives,omitempty"`
}

type productAttribute struct {
	ID        int64    `json:"id,omitempty"`
	Name      string   `json:"name"`
	Variation bool     `json:"variation"`
	Visible   bool     `json:"visible"`
	Options   []string `json:"options"`
}

type defaultAttribute struct {
	Name   string `json:"name"`
	Option string `json:"option"`
}

type product struct {
	ID          int64              `json:"id,omitempty"`
	Slug        string             `json:"slug,omitempty"`
	Name        string             `json:"name,omitempty"`
	SKU         string             `json:"sku,omitempty"`
	Description string             `json:"description"`
	Images      []storefront.Image `json:"images"`
	Type        string             `json:"type,omitempty"`
	StockStatus string             `json:"stock_status,omitempty"`
	ManageStock bool               `json:"manage_stock"`
	MetaData    []metaData         `json:"meta_data,omitempty"`
	Categories  []category         `json:"categories,omitempty"`
	Attributes  []productAttribute `json:"attributes,omitempty"`
	Brands      []term             `json:"brands,omitempty"`
}

// attributeUpdate re-saves the variation axis of an existing product.
type attributeUpdate struct {
	Attributes        []productAttribute `json:"attributes"`
	DefaultAttributes []defaultAttribute `json:"default_attributes,omitempty"`
}

// listedProduct is a product as returned by the listing endpoint.
type listedProduct struct {
	ID         int64        `json:"id"`
	MetaData   []listedMeta `json:"meta_data"`
	Brands     []term       `json:"brands"`
	Attributes []struct {
		Name    string   `json:"name"`
		Options []string `json:"options"`
	} `json:"attributes"`
}

type variation struct {
	ID           int64                  `json:"id,omitempty"`
	RegularPrice string                 `json:"regular_price,omitempty"`
	SKU          string                 `json:"sku,omitempty"`
	StockStatus  string                 `json:"stock_status,omitempty"`
	Attributes   []storefront.Attribute `json:"attributes,omitempty"`
}

type variationBatch struct {
	Create []variation `json:"create,omitempty"`
	Delete []int64     `json:"delete,omitempty"`
}
