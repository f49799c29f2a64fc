package service

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/kargopanel/mng-bridge/internal/api/metrics"
	"github.com/kargopanel/mng-bridge/internal/core/ports"
)

// FulfillmentService marks upstream orders fulfilled after shipment creation.
type FulfillmentService struct {
	settings   ports.SettingsRepository
	storefront ports.StorefrontClient
	log        zerolog.Logger
}

func NewFulfillmentService(settings ports.SettingsRepository, storefront ports.StorefrontClient, log zerolog.Logger) *FulfillmentService {
	return &FulfillmentService{settings: settings, storefront: storefront, log: log}
}

// Propagate attaches the tracking number to the upstream order. Shops without
// auto-fulfill enabled are skipped silently.
func (s *FulfillmentService) Propagate(ctx context.Context, job ports.FulfillmentJob) error {
	settings, err := s.settings.FindByShop(ctx, job.Shop)
	if err != nil {
		metrics.FulfillmentPropagationTotal.WithLabelValues("error").Inc()
		return fmt.Errorf("propagate fulfillment: %w", err)
	}
	if !settings.AutoFulfill {
		metrics.FulfillmentPropagationTotal.WithLabelValues("skipped").Inc()
		return nil
	}

	if err := s.storefront.CreateFulfillment(ctx, *settings, job.OrderID, job.TrackingNumber); err != nil {
		metrics.FulfillmentPropagationTotal.WithLabelValues("error").Inc()
		return fmt.Errorf("propagate fulfillment: %w", err)
	}

	metrics.FulfillmentPropagationTotal.WithLabelValues("ok").Inc()
	s.log.Info().
		Str("order_id", job.OrderID).
		Str("shop", job.Shop).
		Str("tracking_number", job.TrackingNumber).
		Msg("fulfillment propagated")
	return nil
}
