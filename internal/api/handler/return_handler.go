package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/kargopanel/mng-bridge/internal/core/domain"
	"github.com/kargopanel/mng-bridge/internal/core/ports"
)

// ReturnHandler handles return request management and carrier status checks.
type ReturnHandler struct {
	service ports.ReturnService
}

func NewReturnHandler(service ports.ReturnService) *ReturnHandler {
	return &ReturnHandler{service: service}
}

type createReturnRequest struct {
	OrderID    string `json:"order" validate:"required"`
	CustomerID string `json:"customer"`
	Reason     string `json:"reason" validate:"required"`
}

type updateReturnStatusRequest struct {
	Status string `json:"status" validate:"required,oneof=requested approved rejected shipped received"`
}

type listReturnsResponse struct {
	Data []*domain.Return `json:"data"`
}

type checkReturnRequest struct {
	ReferenceID   string `json:"referenceId"`
	ShipmentID    string `json:"shipmentId"`
	InvoiceNumber string `json:"invoiceNumber"`
	Barcode       string `json:"barcode"`
}

type returnCheckResponse struct {
	TrackingNumber    string `json:"tracking_number"`
	StatusCode        string `json:"status_code"`
	StatusDescription string `json:"status_description"`
}

// Create registers a new return request.
//
// @Summary      Create a return request
// @Tags         returns
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      createReturnRequest  true  "Return details"
// @Success      201   {object}  domain.Return
// @Failure      400   {object}  map[string]string
// @Failure      422   {object}  map[string]string
// @Router       /returns [post]
func (h *ReturnHandler) Create(c echo.Context) error {
	var req createReturnRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	ret, err := h.service.Create(c.Request().Context(), ports.CreateReturnInput{
		OrderID:    req.OrderID,
		CustomerID: req.CustomerID,
		Reason:     req.Reason,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, ret)
}

// List returns all return requests, newest first.
//
// @Summary      List return requests
// @Tags         returns
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  listReturnsResponse
// @Router       /returns [get]
func (h *ReturnHandler) List(c echo.Context) error {
	returns, err := h.service.List(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, listReturnsResponse{Data: returns})
}

// UpdateStatus applies a lifecycle transition to a return request.
//
// @Summary      Update a return request status
// @Tags         returns
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string                     true  "Return id"
// @Param        body  body      updateReturnStatusRequest  true  "Target status"
// @Success      200   {object}  domain.Return
// @Failure      404   {object}  map[string]string
// @Failure      422   {object}  map[string]string
// @Router       /returns/{id}/status [patch]
func (h *ReturnHandler) UpdateStatus(c echo.Context) error {
	var req updateReturnStatusRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	ret, err := h.service.UpdateStatus(c.Request().Context(), c.Param("id"), domain.ReturnStatus(req.Status))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, ret)
}

// Check queries the carrier for the current status of a return shipment.
// At least one of the criteria must be present.
//
// @Summary      Check a return shipment status at the carrier
// @Tags         returns
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      checkReturnRequest  true  "Lookup criteria, at least one"
// @Success      200   {object}  returnCheckResponse
// @Failure      422   {object}  map[string]string
// @Failure      502   {object}  map[string]string
// @Router       /returns/check [post]
func (h *ReturnHandler) Check(c echo.Context) error {
	var req checkReturnRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}

	info, err := h.service.Check(c.Request().Context(), ports.TrackQuery{
		ReferenceID:   req.ReferenceID,
		ShipmentID:    req.ShipmentID,
		InvoiceNumber: req.InvoiceNumber,
		Barcode:       req.Barcode,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, returnCheckResponse{
		TrackingNumber:    info.TrackingNumber,
		StatusCode:        info.StatusCode,
		StatusDescription: info.StatusDescription,
	})
}
