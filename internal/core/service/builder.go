package service

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/kargopanel/mng-bridge/internal/core/domain"
	"github.com/kargopanel/mng-bridge/internal/core/ports"
	"github.com/kargopanel/mng-bridge/internal/pkg/turkish"
)

// defaultDesi is the volumetric-weight placeholder used when no real package
// dimensions are available.
const defaultDesi = 2

// BuildShipmentInput is everything the builder needs to assemble one carrier
// payload.
type BuildShipmentInput struct {
	Order       domain.Order
	Reconciled  domain.ReconciledAddress
	PaymentType domain.PaymentType
	Courier     string
	// ExistingCustomerID references a carrier customer record. Non-empty and
	// non-zero means the recipient fullName must be omitted entirely.
	ExistingCustomerID string
	Override           ports.RecipientOverride
}

// ValidateShipmentInput checks the submission preconditions and reports the
// first missing field by name. Called before BuildShipmentRequest; a
// violation blocks submission.
func ValidateShipmentInput(in BuildShipmentInput) error {
	if !hasExistingCustomer(in.ExistingCustomerID) && recipientName(in) == "" {
		return &domain.MissingFieldError{Field: "customer name"}
	}
	if strings.TrimSpace(in.Courier) == "" {
		return &domain.MissingFieldError{Field: "courier"}
	}
	if in.Reconciled.City == nil {
		return &domain.MissingFieldError{Field: "city"}
	}
	if in.Reconciled.District == nil {
		return &domain.MissingFieldError{Field: "district"}
	}
	if !in.PaymentType.Valid() {
		return &domain.MissingFieldError{Field: "payment type"}
	}
	return nil
}

// BuildShipmentRequest assembles the carrier payload from the order, the
// reconciled address and the operator's overrides. Inputs are assumed to have
// passed ValidateShipmentInput.
func BuildShipmentRequest(in BuildShipmentInput) domain.ShipmentRequest {
	req := domain.ShipmentRequest{
		ReferenceID: in.Order.ID,
		Content:     in.Order.Name,
		PaymentType: in.PaymentType,
		Recipient:   buildRecipient(in),
		Pieces:      buildPieces(in.Order),
	}
	if in.PaymentType == domain.PaymentCashOnDelivery {
		req.IsCOD = 1
		req.CODAmount = parseAmount(in.Order.TotalPrice)
	}
	return req
}

func buildRecipient(in BuildShipmentInput) domain.Recipient {
	addr := in.Override.Address
	if addr == "" {
		addr = strings.TrimSpace(in.Order.ShippingAddress.Address1 + " " + in.Order.ShippingAddress.Address2)
	}
	phone := in.Override.Phone
	if phone == "" {
		phone = in.Order.ShippingAddress.Phone
	}
	email := in.Override.Email
	if email == "" {
		email = in.Order.Customer.Email
	}

	r := domain.Recipient{
		Address:           addr,
		CityCode:          entryCode(in.Reconciled.City),
		CityName:          entryName(in.Reconciled.City),
		DistrictCode:      entryCode(in.Reconciled.District),
		DistrictName:      entryName(in.Reconciled.District),
		MobilePhoneNumber: turkish.NormalizePhone(phone),
		Email:             email,
	}
	if hasExistingCustomer(in.ExistingCustomerID) {
		// Carrier rule: a customerId together with a fullName key is a
		// conflict. FullName stays empty so omitempty drops the key.
		r.CustomerID = in.ExistingCustomerID
	} else {
		r.FullName = recipientName(in)
	}
	return r
}

// buildPieces emits one piece per line item with kg taken from the quantity,
// or a single default piece for orders without line items.
func buildPieces(order domain.Order) []domain.ShipmentPiece {
	if len(order.LineItems) == 0 {
		return []domain.ShipmentPiece{{
			Barcode: order.ID + "_1",
			Desi:    defaultDesi,
			Kg:      1,
			Content: "Koli 1",
		}}
	}

	pieces := make([]domain.ShipmentPiece, 0, len(order.LineItems))
	for i, item := range order.LineItems {
		kg := item.Quantity
		if kg < 1 {
			kg = 1
		}
		pieces = append(pieces, domain.ShipmentPiece{
			Barcode: fmt.Sprintf("%s_%d", order.ID, i+1),
			Desi:    defaultDesi,
			Kg:      kg,
			Content: item.Title,
		})
	}
	return pieces
}

func recipientName(in BuildShipmentInput) string {
	if in.Override.FullName != "" {
		return in.Override.FullName
	}
	return strings.TrimSpace(in.Order.Customer.Name)
}

// hasExistingCustomer treats "" and all-zero identifiers as absent.
func hasExistingCustomer(id string) bool {
	id = strings.TrimSpace(id)
	if id == "" {
		return false
	}
	if n, err := strconv.Atoi(id); err == nil && n == 0 {
		return false
	}
	return true
}

// parseAmount converts the store's decimal string total ("150.00") to the
// carrier's numeric amount. Unparseable totals become 0.
func parseAmount(s string) float64 {
	v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return 0
	}
	return v
}

// entryCode converts a directory code to the numeric form the carrier payload
// uses.
func entryCode(e *domain.GeoEntry) int {
	if e == nil {
		return 0
	}
	n, _ := strconv.Atoi(e.Code)
	return n
}

func entryName(e *domain.GeoEntry) string {
	if e == nil {
		return ""
	}
	return e.Name
}
