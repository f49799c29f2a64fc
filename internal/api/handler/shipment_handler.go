package handler

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/kargopanel/mng-bridge/internal/core/ports"
)

// ShipmentHandler handles HTTP requests for shipment operations.
type ShipmentHandler struct {
	service ports.ShipmentService
}

func NewShipmentHandler(service ports.ShipmentService) *ShipmentHandler {
	return &ShipmentHandler{service: service}
}

// Create submits one shipment to the carrier.
//
// @Summary      Create a carrier shipment for an order
// @Tags         shipments
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      createShipmentRequest  true  "Order and submission details"
// @Success      201   {object}  createShipmentResponse
// @Failure      400   {object}  map[string]string
// @Failure      409   {object}  map[string]string
// @Failure      422   {object}  map[string]string
// @Failure      502   {object}  map[string]string
// @Router       /shipments [post]
func (h *ShipmentHandler) Create(c echo.Context) error {
	var req createShipmentRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	result, err := h.service.Create(c.Request().Context(), toCreateShipmentInput(req))
	if err != nil {
		return err
	}

	return c.JSON(http.StatusCreated, createShipmentResponse{
		TrackingNumber: result.TrackingNumber,
		LabelURL:       result.LabelURL,
		Barcode:        result.Barcode,
	})
}

// List returns the persisted shipment records for a set of order ids.
//
// @Summary      List shipments by order ids
// @Tags         shipments
// @Produce      json
// @Security     BearerAuth
// @Param        orderIds  query     string  true  "Comma-separated order ids"
// @Success      200       {object}  listShipmentsResponse
// @Failure      400       {object}  map[string]string
// @Router       /shipments [get]
func (h *ShipmentHandler) List(c echo.Context) error {
	raw := c.QueryParam("orderIds")
	if raw == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "orderIds is required")
	}

	var ids []string
	for _, id := range strings.Split(raw, ",") {
		if id = strings.TrimSpace(id); id != "" {
			ids = append(ids, id)
		}
	}

	shipments, err := h.service.ListByOrderIDs(c.Request().Context(), ids)
	if err != nil {
		return err
	}

	data := make([]shipmentResponse, len(shipments))
	for i, s := range shipments {
		data[i] = toShipmentResponse(s)
	}
	return c.JSON(http.StatusOK, listShipmentsResponse{Data: data})
}
