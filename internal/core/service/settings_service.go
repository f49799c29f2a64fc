package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/kargopanel/mng-bridge/internal/core/domain"
	"github.com/kargopanel/mng-bridge/internal/core/ports"
)

// SettingsService manages per-shop storefront credentials.
type SettingsService struct {
	repo ports.SettingsRepository
	log  zerolog.Logger
}

func NewSettingsService(repo ports.SettingsRepository, log zerolog.Logger) *SettingsService {
	return &SettingsService{repo: repo, log: log}
}

func (s *SettingsService) Save(ctx context.Context, settings domain.ShopSettings) (*domain.ShopSettings, error) {
	if strings.TrimSpace(settings.Shop) == "" {
		return nil, &domain.MissingFieldError{Field: "shop"}
	}
	if strings.TrimSpace(settings.APIKey) == "" {
		return nil, &domain.MissingFieldError{Field: "api key"}
	}
	if strings.TrimSpace(settings.APISecret) == "" {
		return nil, &domain.MissingFieldError{Field: "api secret"}
	}

	settings.UpdatedAt = time.Now().UTC()
	if err := s.repo.Upsert(ctx, &settings); err != nil {
		return nil, fmt.Errorf("save settings: %w", err)
	}

	s.log.Info().Str("shop", settings.Shop).Bool("auto_fulfill", settings.AutoFulfill).Msg("shop settings saved")
	return &settings, nil
}

func (s *SettingsService) Get(ctx context.Context, shop string) (*domain.ShopSettings, error) {
	if shop == "" {
		return nil, &domain.MissingFieldError{Field: "shop"}
	}
	return s.repo.FindByShop(ctx, shop)
}
