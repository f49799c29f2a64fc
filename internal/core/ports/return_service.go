package ports

import (
	"context"

	"github.com/kargopanel/mng-bridge/internal/core/domain"
)

// CreateReturnInput carries the fields of a new return request.
type CreateReturnInput struct {
	OrderID    string
	CustomerID string
	Reason     string
}

// ReturnService manages return requests and their carrier status checks.
type ReturnService interface {
	Create(ctx context.Context, input CreateReturnInput) (*domain.Return, error)
	List(ctx context.Context) ([]*domain.Return, error)
	// UpdateStatus applies a status change after validating the transition.
	UpdateStatus(ctx context.Context, id string, status domain.ReturnStatus) (*domain.Return, error)
	// Check queries the carrier for the current status of a return shipment.
	Check(ctx context.Context, q TrackQuery) (*TrackInfo, error)
}
