package ports

import (
	"context"

	"github.com/kargopanel/mng-bridge/internal/core/domain"
)

// SettingsRepository stores per-shop storefront credentials.
type SettingsRepository interface {
	Upsert(ctx context.Context, s *domain.ShopSettings) error
	FindByShop(ctx context.Context, shop string) (*domain.ShopSettings, error)
}

// SettingsService manages per-shop integration settings.
type SettingsService interface {
	Save(ctx context.Context, s domain.ShopSettings) (*domain.ShopSettings, error)
	Get(ctx context.Context, shop string) (*domain.ShopSettings, error)
}
