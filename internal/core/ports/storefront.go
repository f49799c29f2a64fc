package ports

import (
	"context"

	"github.com/kargopanel/mng-bridge/internal/core/domain"
)

// OrderQuery narrows the upstream order listing.
type OrderQuery struct {
	Status            string
	FinancialStatus   string
	FulfillmentStatus string
	Limit             int
}

// StorefrontClient talks to the upstream e-commerce platform (Shopify admin
// API). Credentials are per shop and supplied on every call; the client holds
// no shop state.
type StorefrontClient interface {
	ListOrders(ctx context.Context, settings domain.ShopSettings, q OrderQuery) ([]domain.Order, error)
	// CreateFulfillment marks an order fulfilled with the given tracking
	// number. Best effort: the shipment already exists at the carrier when
	// this is called, so failures must never be surfaced as shipment failures.
	CreateFulfillment(ctx context.Context, settings domain.ShopSettings, orderID, trackingNumber string) error
}

// OrderService proxies upstream order listings for the dashboard.
type OrderService interface {
	ListOrders(ctx context.Context, shop string, q OrderQuery) ([]domain.Order, error)
}
