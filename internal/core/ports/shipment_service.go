package ports

import (
	"context"

	"github.com/kargopanel/mng-bridge/internal/core/domain"
)

// RecipientOverride carries operator-entered corrections applied on top of
// the order's own address/contact data. Empty fields mean "keep the order's
// value".
type RecipientOverride struct {
	FullName string
	Phone    string
	Email    string
	Address  string
}

// CreateShipmentInput carries everything needed to submit one shipment.
type CreateShipmentInput struct {
	OrderID     string
	Shop        string
	Courier     string
	IsReturn    bool
	PaymentType int
	Order       domain.Order
	// CityCode/DistrictCode are the operator's manual directory selections.
	// When empty the service reconciles the order's free-text address
	// automatically.
	CityCode     string
	DistrictCode string
	// ExistingCustomerID, when non-empty and non-zero, references a carrier
	// customer record; the recipient fullName is then omitted entirely.
	ExistingCustomerID string
	Override           RecipientOverride
}

// ShipmentService orchestrates validation, reconciliation, payload building,
// carrier submission and persistence.
type ShipmentService interface {
	Create(ctx context.Context, input CreateShipmentInput) (*domain.ShipmentResult, error)
	// ListByOrderIDs hydrates previously created shipments onto order rows.
	ListByOrderIDs(ctx context.Context, orderIDs []string) ([]*domain.Shipment, error)
}
