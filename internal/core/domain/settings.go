package domain

import (
	"errors"
	"time"
)

var ErrShopNotConfigured = errors.New("shop not configured")

// ShopSettings holds the per-shop Shopify API credentials and integration
// options. One document per shop domain.
type ShopSettings struct {
	Shop        string    `json:"shop" bson:"_id"`
	APIKey      string    `json:"apiKey" bson:"api_key"`
	APISecret   string    `json:"apiSecret" bson:"api_secret"`
	AccessToken string    `json:"-" bson:"access_token"`
	// AutoFulfill enables fulfillment propagation back to the store after a
	// successful shipment creation.
	AutoFulfill bool      `json:"autoFulfill" bson:"auto_fulfill"`
	UpdatedAt   time.Time `json:"updated_at" bson:"updated_at"`
}
