package ports

import (
	"context"

	"github.com/kargopanel/mng-bridge/internal/core/domain"
)

// ReturnRepository defines persistence operations for return requests.
type ReturnRepository interface {
	Create(ctx context.Context, r *domain.Return) error
	List(ctx context.Context) ([]*domain.Return, error)
	FindByID(ctx context.Context, id string) (*domain.Return, error)
	UpdateStatus(ctx context.Context, id string, status domain.ReturnStatus) error
	AttachShipment(ctx context.Context, id string, ref domain.ShipmentRef) error
}
