package models

import (
	"encoding/json"
	"time"

	"github.com/shopspring/decimal"
)

type Inventory struct {
	StockQuantity  int  `json:"stock_quantity"`
	TrackInventory bool `json:"track_inventory"`
}

type Product struct {
	ID          string          `json:"id"`
	Name        string          `json:"name"`
	Description string          `json:"description"`
	Price       decimal.Decimal `json:"price"`
	SKU         string          `json:"sku"`
	CategoryID  string          `json:"category_id"`
	Inventory   Inventory       `json:"inventory"`
	Images      []string        `json:"images"`
	IsActive    bool            `json:"is_active"`
	IsFeatured  bool            `json:"is_featured"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`
}

// PrimaryImage returns the cover image by position convention, or "" when the
// product has no images.
func (p Product) PrimaryImage() string {
	if len(p.Images) == 0 {
		return ""
	}
	return p.Images[0]
}

// ProductPayload is the body sent on create and update.
type ProductPayload struct {
	Name        string          `json:"name"`
	Description string          `json:"description"`
	Price       decimal.Decimal `json:"price"`
	CategoryID  string          `json:"category_id"`
	SKU         string          `json:"sku,omitempty"`
	IsActive    bool            `json:"is_active"`
	IsFeatured  bool            `json:"is_featured"`
	Images      []string        `json:"images"`
	Inventory   Inventory       `json:"inventory"`
}

// MarshalJSON sends price as a JSON number; the backend rejects the quoted
// form decimal uses by default.
func (p ProductPayload) MarshalJSON() ([]byte, error) {
	type payload ProductPayload
	return json.Marshal(struct {
		payload
		Price json.RawMessage `json:"price"`
	}{payload: payload(p), Price: json.RawMessage(p.Price.String())})
}
