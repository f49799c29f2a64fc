package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/kargopanel/mng-bridge/internal/api/metrics"
	"github.com/kargopanel/mng-bridge/internal/core/domain"
	"github.com/kargopanel/mng-bridge/internal/core/ports"
)

// SubmissionGuard prevents a second shipment submission for the same order.
type SubmissionGuard interface {
	// Acquire reserves the order for submission. ok=false means a submission
	// already happened or is in flight.
	Acquire(ctx context.Context, orderID string) (ok bool, err error)
	// Release frees the reservation after a failed submission so the operator
	// can resubmit.
	Release(ctx context.Context, orderID string) error
}

// FulfillmentEnqueuer hands fulfillment propagation jobs to the background
// dispatcher.
type FulfillmentEnqueuer interface {
	Enqueue(job ports.FulfillmentJob)
}

// ShipmentService orchestrates the submission workflow: validate, reconcile,
// build, submit to the carrier, persist, and propagate fulfillment upstream.
type ShipmentService struct {
	repo        ports.ShipmentRepository
	guard       SubmissionGuard
	carrier     ports.CarrierClient
	geo         ports.GeoService
	fulfillment FulfillmentEnqueuer
	log         zerolog.Logger
}

func NewShipmentService(
	repo ports.ShipmentRepository,
	guard SubmissionGuard,
	carrier ports.CarrierClient,
	geo ports.GeoService,
	fulfillment FulfillmentEnqueuer,
	log zerolog.Logger,
) *ShipmentService {
	return &ShipmentService{
		repo:        repo,
		guard:       guard,
		carrier:     carrier,
		geo:         geo,
		fulfillment: fulfillment,
		log:         log,
	}
}

// Create submits one shipment. On failure nothing is persisted and the order
// stays untouched; the operator may resubmit. On success the tracking triple
// is persisted and, for shops with auto-fulfill enabled, a fulfillment job is
// enqueued — its failure never surfaces here, the shipment already exists.
func (s *ShipmentService) Create(ctx context.Context, input ports.CreateShipmentInput) (*domain.ShipmentResult, error) {
	if input.OrderID == "" {
		metrics.ShipmentErrorsTotal.WithLabelValues("validation").Inc()
		return nil, &domain.MissingFieldError{Field: "order id"}
	}

	// 1. Reconcile the address. Manual codes win over automatic matching.
	resolved, err := s.geo.ResolveAddress(ctx, ports.ResolveAddressInput{
		Address:      input.Order.ShippingAddress,
		CityCode:     input.CityCode,
		DistrictCode: input.DistrictCode,
	})
	if err != nil {
		return nil, err
	}

	// 2. Validate preconditions, naming the missing field.
	buildInput := BuildShipmentInput{
		Order:              input.Order,
		Reconciled:         domain.ReconciledAddress{City: resolved.City, District: resolved.District},
		PaymentType:        domain.PaymentType(input.PaymentType),
		Courier:            input.Courier,
		ExistingCustomerID: input.ExistingCustomerID,
		Override:           input.Override,
	}
	if err := ValidateShipmentInput(buildInput); err != nil {
		metrics.ShipmentErrorsTotal.WithLabelValues("validation").Inc()
		return nil, err
	}
	req := BuildShipmentRequest(buildInput)

	// 3. Guard against double submission for the same order.
	ok, err := s.guard.Acquire(ctx, input.OrderID)
	if err != nil {
		s.log.Warn().Err(err).Str("order_id", input.OrderID).Msg("submission guard unavailable, proceeding")
	} else if !ok {
		metrics.ShipmentErrorsTotal.WithLabelValues("duplicate").Inc()
		return nil, domain.ErrDuplicateSubmission
	}

	// 4. Submit to the carrier. The guard is released on failure so the
	// operator can resubmit; nothing is persisted.
	result, err := s.carrier.CreateShipment(ctx, req)
	if err != nil {
		if relErr := s.guard.Release(ctx, input.OrderID); relErr != nil {
			s.log.Warn().Err(relErr).Str("order_id", input.OrderID).Msg("failed to release submission guard")
		}
		metrics.ShipmentErrorsTotal.WithLabelValues("carrier").Inc()
		return nil, fmt.Errorf("submit shipment: %w", err)
	}

	// 5. Persist the tracking record. The shipment exists at the carrier
	// regardless, so a persistence failure is logged, not returned.
	record := &domain.Shipment{
		OrderID:        input.OrderID,
		Shop:           input.Shop,
		Courier:        input.Courier,
		IsReturn:       input.IsReturn,
		TrackingNumber: result.TrackingNumber,
		LabelURL:       result.LabelURL,
		Barcode:        result.Barcode,
		CityName:       entryName(resolved.City),
		DistrictName:   entryName(resolved.District),
		CreatedAt:      time.Now().UTC(),
	}
	if err := s.repo.Create(ctx, record); err != nil {
		s.log.Error().Err(err).
			Str("order_id", input.OrderID).
			Str("tracking_number", result.TrackingNumber).
			Msg("shipment created at carrier but not recorded")
	}

	metrics.ShipmentsCreatedTotal.WithLabelValues(input.Courier).Inc()
	s.log.Info().
		Str("order_id", input.OrderID).
		Str("courier", input.Courier).
		Str("tracking_number", result.TrackingNumber).
		Str("city", record.CityName).
		Str("district", record.DistrictName).
		Msg("shipment created")

	// 6. Propagate fulfillment upstream, best effort.
	if !input.IsReturn && input.Shop != "" && s.fulfillment != nil {
		s.fulfillment.Enqueue(ports.FulfillmentJob{
			OrderID:        input.OrderID,
			Shop:           input.Shop,
			TrackingNumber: result.TrackingNumber,
		})
	}

	return result, nil
}

// ListByOrderIDs hydrates prior tracking info onto order rows.
func (s *ShipmentService) ListByOrderIDs(ctx context.Context, orderIDs []string) ([]*domain.Shipment, error) {
	if len(orderIDs) == 0 {
		return nil, nil
	}
	shipments, err := s.repo.FindByOrderIDs(ctx, orderIDs)
	if err != nil && !errors.Is(err, domain.ErrShipmentNotFound) {
		return nil, fmt.Errorf("list shipments: %w", err)
	}
	return shipments, nil
}
