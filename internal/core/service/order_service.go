package service

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/kargopanel/mng-bridge/internal/core/domain"
	"github.com/kargopanel/mng-bridge/internal/core/ports"
)

// OrderService proxies upstream order listings using per-shop credentials.
type OrderService struct {
	settings   ports.SettingsRepository
	storefront ports.StorefrontClient
	log        zerolog.Logger
}

func NewOrderService(settings ports.SettingsRepository, storefront ports.StorefrontClient, log zerolog.Logger) *OrderService {
	return &OrderService{settings: settings, storefront: storefront, log: log}
}

func (s *OrderService) ListOrders(ctx context.Context, shop string, q ports.OrderQuery) ([]domain.Order, error) {
	if shop == "" {
		return nil, &domain.MissingFieldError{Field: "shop"}
	}
	settings, err := s.settings.FindByShop(ctx, shop)
	if err != nil {
		return nil, err
	}

	orders, err := s.storefront.ListOrders(ctx, *settings, q)
	if err != nil {
		return nil, fmt.Errorf("list orders for %s: %w", shop, err)
	}
	return orders, nil
}
