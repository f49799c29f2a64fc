package domain

import (
	"errors"
	"time"
)

// ReturnStatus is the lifecycle state of a return request.
type ReturnStatus string

const (
	ReturnRequested ReturnStatus = "requested"
	ReturnApproved  ReturnStatus = "approved"
	ReturnRejected  ReturnStatus = "rejected"
	ReturnShipped   ReturnStatus = "shipped"
	ReturnReceived  ReturnStatus = "received"
)

// returnTransitions defines the allowed status moves. Rejected and received
// are terminal.
var returnTransitions = map[ReturnStatus][]ReturnStatus{
	ReturnRequested: {ReturnApproved, ReturnRejected},
	ReturnApproved:  {ReturnShipped, ReturnRejected},
	ReturnShipped:   {ReturnReceived},
}

var (
	ErrReturnNotFound    = errors.New("return not found")
	ErrInvalidTransition = errors.New("invalid return status transition")
)

// CanTransitionTo reports whether moving from s to next is allowed.
func (s ReturnStatus) CanTransitionTo(next ReturnStatus) bool {
	for _, allowed := range returnTransitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

// ShipmentRef is the tracking info attached to a return once its pickup
// shipment has been created.
type ShipmentRef struct {
	TrackingNumber string `json:"trackingNumber" bson:"tracking_number"`
	LabelURL       string `json:"labelUrl" bson:"label_url"`
}

// Return is a customer return request.
type Return struct {
	ID         string       `json:"id" bson:"_id,omitempty"`
	OrderID    string       `json:"order" bson:"order_id"`
	CustomerID string       `json:"customer,omitempty" bson:"customer_id,omitempty"`
	Reason     string       `json:"reason" bson:"reason"`
	Status     ReturnStatus `json:"status" bson:"status"`
	Shipment   *ShipmentRef `json:"shipment,omitempty" bson:"shipment,omitempty"`
	CreatedAt  time.Time    `json:"created_at" bson:"created_at"`
	UpdatedAt  time.Time    `json:"updated_at" bson:"updated_at"`
}
