package handler

import (
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/kargopanel/mng-bridge/internal/core/domain"
	"github.com/kargopanel/mng-bridge/internal/core/ports"
)

// OrderHandler proxies upstream order listings for the dashboard and
// hydrates them with previously created shipments.
type OrderHandler struct {
	orders    ports.OrderService
	shipments ports.ShipmentService
}

func NewOrderHandler(orders ports.OrderService, shipments ports.ShipmentService) *OrderHandler {
	return &OrderHandler{orders: orders, shipments: shipments}
}

type orderRowResponse struct {
	ID              string                 `json:"id"`
	Name            string                 `json:"name"`
	TotalPrice      string                 `json:"total_price"`
	Currency        string                 `json:"currency"`
	CreatedAt       time.Time              `json:"created_at"`
	Customer        orderCustomerRequest   `json:"customer"`
	ShippingAddress orderAddressRequest    `json:"shipping_address"`
	LineItems       []orderLineItemRequest `json:"line_items"`
	Shipment        *shipmentResponse      `json:"shipment,omitempty"`
}

type listOrdersResponse struct {
	Data []orderRowResponse `json:"data"`
}

// List proxies the upstream order listing for one shop.
//
// @Summary      List store orders with shipment info
// @Tags         orders
// @Produce      json
// @Security     BearerAuth
// @Param        shop                query     string  true   "Shop domain"
// @Param        status              query     string  false  "Order status filter"
// @Param        financial_status    query     string  false  "Financial status filter"
// @Param        fulfillment_status  query     string  false  "Fulfillment status filter"
// @Param        limit               query     int     false  "Page size"
// @Success      200                 {object}  listOrdersResponse
// @Failure      404                 {object}  map[string]string
// @Failure      422                 {object}  map[string]string
// @Router       /shopify/orders [get]
func (h *OrderHandler) List(c echo.Context) error {
	shop := c.QueryParam("shop")
	limit, _ := strconv.Atoi(c.QueryParam("limit"))

	orders, err := h.orders.ListOrders(c.Request().Context(), shop, ports.OrderQuery{
		Status:            c.QueryParam("status"),
		FinancialStatus:   c.QueryParam("financial_status"),
		FulfillmentStatus: c.QueryParam("fulfillment_status"),
		Limit:             limit,
	})
	if err != nil {
		return err
	}

	ids := make([]string, len(orders))
	for i, o := range orders {
		ids[i] = o.ID
	}
	shipments, err := h.shipments.ListByOrderIDs(c.Request().Context(), ids)
	if err != nil {
		return err
	}

	byOrder := make(map[string]*domain.Shipment, len(shipments))
	for _, s := range shipments {
		// Newest first from the repository; keep the latest per order.
		if _, ok := byOrder[s.OrderID]; !ok {
			byOrder[s.OrderID] = s
		}
	}

	data := make([]orderRowResponse, len(orders))
	for i, o := range orders {
		data[i] = toOrderRowResponse(o, byOrder[o.ID])
	}
	return c.JSON(http.StatusOK, listOrdersResponse{Data: data})
}

func toOrderRowResponse(o domain.Order, s *domain.Shipment) orderRowResponse {
	items := make([]orderLineItemRequest, len(o.LineItems))
	for i, li := range o.LineItems {
		items[i] = orderLineItemRequest{Title: li.Title, Quantity: li.Quantity}
	}
	row := orderRowResponse{
		ID:         o.ID,
		Name:       o.Name,
		TotalPrice: o.TotalPrice,
		Currency:   o.Currency,
		CreatedAt:  o.CreatedAt,
		Customer: orderCustomerRequest{
			ID:    o.Customer.ID,
			Name:  o.Customer.Name,
			Email: o.Customer.Email,
		},
		ShippingAddress: orderAddressRequest{
			Address1: o.ShippingAddress.Address1,
			Address2: o.ShippingAddress.Address2,
			City:     o.ShippingAddress.City,
			Province: o.ShippingAddress.Province,
			Phone:    o.ShippingAddress.Phone,
			Company:  o.ShippingAddress.Company,
		},
		LineItems: items,
	}
	if s != nil {
		resp := toShipmentResponse(s)
		row.Shipment = &resp
	}
	return row
}
