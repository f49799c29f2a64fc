package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/kargopanel/mng-bridge/internal/api/metrics"
	"github.com/kargopanel/mng-bridge/internal/core/domain"
	"github.com/kargopanel/mng-bridge/internal/core/ports"
)

// ReturnService manages return requests and their carrier status checks.
type ReturnService struct {
	repo    ports.ReturnRepository
	carrier ports.CarrierClient
	log     zerolog.Logger
}

func NewReturnService(repo ports.ReturnRepository, carrier ports.CarrierClient, log zerolog.Logger) *ReturnService {
	return &ReturnService{repo: repo, carrier: carrier, log: log}
}

func (s *ReturnService) Create(ctx context.Context, input ports.CreateReturnInput) (*domain.Return, error) {
	if strings.TrimSpace(input.OrderID) == "" {
		return nil, &domain.MissingFieldError{Field: "order"}
	}
	if strings.TrimSpace(input.Reason) == "" {
		return nil, &domain.MissingFieldError{Field: "reason"}
	}

	now := time.Now().UTC()
	ret := &domain.Return{
		OrderID:    input.OrderID,
		CustomerID: input.CustomerID,
		Reason:     input.Reason,
		Status:     domain.ReturnRequested,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	if err := s.repo.Create(ctx, ret); err != nil {
		return nil, fmt.Errorf("create return: %w", err)
	}

	metrics.ReturnsCreatedTotal.Inc()
	s.log.Info().Str("return_id", ret.ID).Str("order_id", ret.OrderID).Msg("return request created")
	return ret, nil
}

func (s *ReturnService) List(ctx context.Context) ([]*domain.Return, error) {
	returns, err := s.repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list returns: %w", err)
	}
	return returns, nil
}

// UpdateStatus applies a status change after validating the transition
// against the return lifecycle.
func (s *ReturnService) UpdateStatus(ctx context.Context, id string, status domain.ReturnStatus) (*domain.Return, error) {
	ret, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !ret.Status.CanTransitionTo(status) {
		return nil, fmt.Errorf("%w (from %s to %s)", domain.ErrInvalidTransition, ret.Status, status)
	}
	if err := s.repo.UpdateStatus(ctx, id, status); err != nil {
		return nil, fmt.Errorf("update return status: %w", err)
	}

	ret.Status = status
	ret.UpdatedAt = time.Now().UTC()
	s.log.Info().Str("return_id", id).Str("status", string(status)).Msg("return status updated")
	return ret, nil
}

// Check queries the carrier for the current status of a return shipment.
func (s *ReturnService) Check(ctx context.Context, q ports.TrackQuery) (*ports.TrackInfo, error) {
	if q.ReferenceID == "" && q.ShipmentID == "" && q.InvoiceNumber == "" && q.Barcode == "" {
		return nil, &domain.MissingFieldError{Field: "search criteria"}
	}
	info, err := s.carrier.Track(ctx, q)
	if err != nil {
		return nil, fmt.Errorf("check return: %w", err)
	}
	return info, nil
}
