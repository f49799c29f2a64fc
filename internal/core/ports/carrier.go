package ports

import (
	"context"

	"github.com/kargopanel/mng-bridge/internal/core/domain"
)

// TrackQuery identifies a shipment at the carrier. Exactly one field needs to
// be set; the carrier resolves them in the order listed.
type TrackQuery struct {
	ReferenceID   string
	ShipmentID    string
	InvoiceNumber string
	Barcode       string
}

// TrackInfo is the carrier's current view of a shipment.
type TrackInfo struct {
	TrackingNumber    string
	StatusCode        string
	StatusDescription string
}

// CarrierClient creates shipments at the carrier and answers status queries.
type CarrierClient interface {
	// CreateShipment submits a shipment-creation request and returns the
	// tracking triple. The result is never recomputed locally.
	CreateShipment(ctx context.Context, req domain.ShipmentRequest) (*domain.ShipmentResult, error)
	// Track queries the carrier for the current shipment status.
	Track(ctx context.Context, q TrackQuery) (*TrackInfo, error)
}
