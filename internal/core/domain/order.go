package domain

import "time"

// LineItem is a single order line from the upstream store.
type LineItem struct {
	Title    string `json:"title" bson:"title"`
	Quantity int    `json:"quantity" bson:"quantity"`
}

// Customer is the buyer on an upstream order. ID carries the store's customer
// identifier when present; "0" and "" both mean no existing customer record.
type Customer struct {
	ID    string `json:"id,omitempty" bson:"id,omitempty"`
	Name  string `json:"name" bson:"name"`
	Email string `json:"email,omitempty" bson:"email,omitempty"`
}

// OrderAddress is the free-text shipping address as received from the store.
// City and Province are natural-language place names, not canonical codes;
// they must be reconciled against the carrier directory before submission.
type OrderAddress struct {
	Address1 string `json:"address1" bson:"address1"`
	Address2 string `json:"address2,omitempty" bson:"address2,omitempty"`
	City     string `json:"city" bson:"city"`
	Province string `json:"province" bson:"province"`
	Phone    string `json:"phone,omitempty" bson:"phone,omitempty"`
	Company  string `json:"company,omitempty" bson:"company,omitempty"`
}

// Order is an upstream e-commerce order. Immutable as received; the bridge
// only derives shipment payloads from it.
type Order struct {
	ID              string       `json:"id" bson:"id"`
	Name            string       `json:"name" bson:"name"`
	TotalPrice      string       `json:"total_price" bson:"total_price"`
	Currency        string       `json:"currency,omitempty" bson:"currency,omitempty"`
	Customer        Customer     `json:"customer" bson:"customer"`
	ShippingAddress OrderAddress `json:"shipping_address" bson:"shipping_address"`
	LineItems       []LineItem   `json:"line_items,omitempty" bson:"line_items,omitempty"`
	CreatedAt       time.Time    `json:"created_at,omitempty" bson:"created_at,omitempty"`
}
