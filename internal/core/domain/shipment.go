package domain

import (
	"errors"
	"fmt"
	"time"
)

// PaymentType encodes who pays for the shipment.
type PaymentType int

const (
	PaymentSenderPays     PaymentType = 1
	PaymentReceiverPays   PaymentType = 2
	PaymentCashOnDelivery PaymentType = 3
)

// Valid reports whether p is one of the carrier's accepted payment types.
func (p PaymentType) Valid() bool {
	return p == PaymentSenderPays || p == PaymentReceiverPays || p == PaymentCashOnDelivery
}

var (
	ErrShipmentNotFound     = errors.New("shipment not found")
	ErrDuplicateSubmission  = errors.New("shipment already submitted for order")
	ErrCarrierUnavailable   = errors.New("carrier unavailable")
	ErrDirectoryUnavailable = errors.New("geography directory unavailable")
	ErrForbidden            = errors.New("access forbidden")
)

// MissingFieldError reports a violated submission precondition. The operator
// must be told which field is missing, not shown a generic failure.
type MissingFieldError struct {
	Field string
}

func (e *MissingFieldError) Error() string {
	return fmt.Sprintf("%s is required", e.Field)
}

// ShipmentPiece is one physical package unit. An order contributes one piece
// per line item, or a single default piece when it has no line items.
type ShipmentPiece struct {
	Barcode string `json:"barcode"`
	Desi    int    `json:"desi"`
	Kg      int    `json:"kg"`
	Content string `json:"content"`
}

// Recipient is the carrier-specific recipient block. FullName carries
// omitempty deliberately: when CustomerID references an existing carrier
// customer the carrier rejects payloads that also carry a fullName key, so
// the builder leaves it empty and the key is dropped from the JSON entirely.
type Recipient struct {
	CustomerID        string `json:"customerId,omitempty"`
	FullName          string `json:"fullName,omitempty"`
	Address           string `json:"address"`
	CityCode          int    `json:"cityCode"`
	CityName          string `json:"cityName"`
	DistrictCode      int    `json:"districtCode"`
	DistrictName      string `json:"districtName"`
	MobilePhoneNumber string `json:"mobilePhoneNumber"`
	Email             string `json:"email,omitempty"`
}

// ShipmentRequest is the payload submitted to the carrier's order-creation
// endpoint.
type ShipmentRequest struct {
	ReferenceID string          `json:"referenceId"`
	Content     string          `json:"content"`
	PaymentType PaymentType     `json:"paymentType"`
	IsCOD       int             `json:"isCod"`
	CODAmount   float64         `json:"codAmount"`
	Recipient   Recipient       `json:"recipient"`
	Pieces      []ShipmentPiece `json:"pieces"`
}

// ShipmentResult is what the carrier returns for a created shipment. Display
// only; never recomputed on our side.
type ShipmentResult struct {
	TrackingNumber string `json:"trackingNumber"`
	LabelURL       string `json:"labelUrl"`
	Barcode        string `json:"barcode"`
}

// Shipment is the persisted record linking an upstream order to its carrier
// shipment.
type Shipment struct {
	ID             string    `json:"id" bson:"_id,omitempty"`
	OrderID        string    `json:"order_id" bson:"order_id"`
	Shop           string    `json:"shop,omitempty" bson:"shop,omitempty"`
	Courier        string    `json:"courier" bson:"courier"`
	IsReturn       bool      `json:"is_return,omitempty" bson:"is_return,omitempty"`
	TrackingNumber string    `json:"tracking_number" bson:"tracking_number"`
	LabelURL       string    `json:"label_url" bson:"label_url"`
	Barcode        string    `json:"barcode" bson:"barcode"`
	CityName       string    `json:"city_name" bson:"city_name"`
	DistrictName   string    `json:"district_name" bson:"district_name"`
	CreatedAt      time.Time `json:"created_at" bson:"created_at"`
}
