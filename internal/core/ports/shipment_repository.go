package ports

import (
	"context"

	"github.com/kargopanel/mng-bridge/internal/core/domain"
)

// ShipmentRepository defines persistence operations for shipment records.
type ShipmentRepository interface {
	Create(ctx context.Context, s *domain.Shipment) error
	// FindByOrderIDs returns all shipment records whose order_id is in ids,
	// used to hydrate tracking info onto order rows.
	FindByOrderIDs(ctx context.Context, ids []string) ([]*domain.Shipment, error)
	FindByOrderID(ctx context.Context, orderID string) (*domain.Shipment, error)
}
