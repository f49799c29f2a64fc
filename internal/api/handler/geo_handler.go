package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/kargopanel/mng-bridge/internal/core/domain"
	"github.com/kargopanel/mng-bridge/internal/core/ports"
)

// GeoHandler serves the carrier city/district directory and address
// reconciliation.
type GeoHandler struct {
	service ports.GeoService
}

func NewGeoHandler(service ports.GeoService) *GeoHandler {
	return &GeoHandler{service: service}
}

type resolveAddressRequest struct {
	Address1     string `json:"address1"`
	Address2     string `json:"address2"`
	City         string `json:"city"`
	Province     string `json:"province"`
	CityCode     string `json:"city_code"`
	DistrictCode string `json:"district_code"`
}

type geoEntryResponse struct {
	Code string `json:"code"`
	Name string `json:"name"`
}

type resolveAddressResponse struct {
	City      *geoEntryResponse  `json:"city"`
	District  *geoEntryResponse  `json:"district"`
	Districts []geoEntryResponse `json:"districts"`
}

// Cities lists the carrier's city directory.
//
// @Summary      List carrier cities
// @Tags         directory
// @Produce      json
// @Security     BearerAuth
// @Success      200  {array}   geoEntryResponse
// @Failure      502  {object}  map[string]string
// @Router       /cbs/cities [get]
func (h *GeoHandler) Cities(c echo.Context) error {
	entries, err := h.service.ListCities(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toGeoEntryResponses(entries))
}

// Districts lists the carrier's district directory for one city.
//
// @Summary      List carrier districts for a city
// @Tags         directory
// @Produce      json
// @Security     BearerAuth
// @Param        cityCode  path      string  true  "Carrier city code"
// @Success      200       {array}   geoEntryResponse
// @Failure      502       {object}  map[string]string
// @Router       /cbs/districts/{cityCode} [get]
func (h *GeoHandler) Districts(c echo.Context) error {
	cityCode := c.Param("cityCode")
	if cityCode == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "city code is required")
	}
	entries, err := h.service.ListDistricts(c.Request().Context(), cityCode)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toGeoEntryResponses(entries))
}

// Resolve reconciles a free-text address against the carrier directory.
// Manual city/district codes in the request take precedence over automatic
// matching.
//
// @Summary      Reconcile an address against the carrier directory
// @Tags         directory
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      resolveAddressRequest  true  "Address and optional manual selections"
// @Success      200   {object}  resolveAddressResponse
// @Failure      422   {object}  map[string]string
// @Failure      502   {object}  map[string]string
// @Router       /addresses/resolve [post]
func (h *GeoHandler) Resolve(c echo.Context) error {
	var req resolveAddressRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}

	resolved, err := h.service.ResolveAddress(c.Request().Context(), ports.ResolveAddressInput{
		Address: domain.OrderAddress{
			Address1: req.Address1,
			Address2: req.Address2,
			City:     req.City,
			Province: req.Province,
		},
		CityCode:     req.CityCode,
		DistrictCode: req.DistrictCode,
	})
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, resolveAddressResponse{
		City:      toGeoEntryResponse(resolved.City),
		District:  toGeoEntryResponse(resolved.District),
		Districts: toGeoEntryResponses(resolved.Districts),
	})
}

func toGeoEntryResponse(e *domain.GeoEntry) *geoEntryResponse {
	if e == nil {
		return nil
	}
	return &geoEntryResponse{Code: e.Code, Name: e.Name}
}

func toGeoEntryResponses(entries []domain.GeoEntry) []geoEntryResponse {
	out := make([]geoEntryResponse, len(entries))
	for i, e := range entries {
		out[i] = geoEntryResponse{Code: e.Code, Name: e.Name}
	}
	return out
}
