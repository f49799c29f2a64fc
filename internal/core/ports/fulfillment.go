package ports

import "context"

// FulfillmentJob asks the upstream store to mark an order fulfilled with the
// carrier tracking number.
type FulfillmentJob struct {
	OrderID        string
	Shop           string
	TrackingNumber string
}

// FulfillmentService propagates a created shipment back to the upstream
// store. Strictly best effort: by the time it runs the shipment already
// exists at the carrier, so errors are logged and counted, never rolled back.
type FulfillmentService interface {
	Propagate(ctx context.Context, job FulfillmentJob) error
}
