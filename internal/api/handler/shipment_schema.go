package handler

import "time"

// --- Request / Response types ---

type orderCustomerRequest struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

type orderAddressRequest struct {
	Address1 string `json:"address1"`
	Address2 string `json:"address2"`
	City     string `json:"city"`
	Province string `json:"province"`
	Phone    string `json:"phone"`
	Company  string `json:"company"`
}

type orderLineItemRequest struct {
	Title    string `json:"title"`
	Quantity int    `json:"quantity"`
}

type orderRequest struct {
	ID              string                 `json:"id"           validate:"required"`
	Name            string                 `json:"name"`
	TotalPrice      string                 `json:"total_price"`
	Currency        string                 `json:"currency"`
	Customer        orderCustomerRequest   `json:"customer"`
	ShippingAddress orderAddressRequest    `json:"shipping_address"`
	LineItems       []orderLineItemRequest `json:"line_items"`
}

// recipientOverrideRequest carries operator corrections. Empty fields keep
// the order's own values.
type recipientOverrideRequest struct {
	FullName string `json:"full_name"`
	Phone    string `json:"phone"`
	Email    string `json:"email"`
	Address  string `json:"address"`
}

type createShipmentRequest struct {
	Shop               string                   `json:"shop"`
	Courier            string                   `json:"courier"      validate:"required"`
	IsReturn           bool                     `json:"is_return"`
	PaymentType        int                      `json:"payment_type" validate:"required,oneof=1 2 3"`
	CityCode           string                   `json:"city_code"`
	DistrictCode       string                   `json:"district_code"`
	ExistingCustomerID string                   `json:"existing_customer_id"`
	Override           recipientOverrideRequest `json:"override"`
	Order              orderRequest             `json:"order" validate:"required"`
}

type createShipmentResponse struct {
	TrackingNumber string `json:"tracking_number"`
	LabelURL       string `json:"label_url"`
	Barcode        string `json:"barcode"`
}

// shipmentResponse is the persisted tracking record hydrated onto order rows.
type shipmentResponse struct {
	ID             string    `json:"id"`
	OrderID        string    `json:"order_id"`
	Shop           string    `json:"shop,omitempty"`
	Courier        string    `json:"courier"`
	IsReturn       bool      `json:"is_return,omitempty"`
	TrackingNumber string    `json:"tracking_number"`
	LabelURL       string    `json:"label_url"`
	Barcode        string    `json:"barcode"`
	CityName       string    `json:"city_name"`
	DistrictName   string    `json:"district_name"`
	CreatedAt      time.Time `json:"created_at"`
}

type listShipmentsResponse struct {
	Data []shipmentResponse `json:"data"`
}
