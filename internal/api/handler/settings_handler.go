package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/kargopanel/mng-bridge/internal/core/domain"
	"github.com/kargopanel/mng-bridge/internal/core/ports"
)

// SettingsHandler manages per-shop storefront credentials. Admin only.
type SettingsHandler struct {
	service ports.SettingsService
}

func NewSettingsHandler(service ports.SettingsService) *SettingsHandler {
	return &SettingsHandler{service: service}
}

type saveSettingsRequest struct {
	Shop        string `json:"shop"       validate:"required"`
	APIKey      string `json:"apiKey"     validate:"required"`
	APISecret   string `json:"apiSecret"  validate:"required"`
	AccessToken string `json:"accessToken"`
	AutoFulfill bool   `json:"autoFulfill"`
}

// Save upserts the settings for one shop.
//
// @Summary      Save shop settings
// @Tags         settings
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      saveSettingsRequest  true  "Shop credentials and options"
// @Success      200   {object}  domain.ShopSettings
// @Failure      400   {object}  map[string]string
// @Failure      422   {object}  map[string]string
// @Router       /shopify/settings [post]
func (h *SettingsHandler) Save(c echo.Context) error {
	var req saveSettingsRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	saved, err := h.service.Save(c.Request().Context(), domain.ShopSettings{
		Shop:        req.Shop,
		APIKey:      req.APIKey,
		APISecret:   req.APISecret,
		AccessToken: req.AccessToken,
		AutoFulfill: req.AutoFulfill,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, saved)
}

// Get returns the settings for one shop.
//
// @Summary      Get shop settings
// @Tags         settings
// @Produce      json
// @Security     BearerAuth
// @Param        shop  path      string  true  "Shop domain"
// @Success      200   {object}  domain.ShopSettings
// @Failure      404   {object}  map[string]string
// @Router       /shopify/settings/{shop} [get]
func (h *SettingsHandler) Get(c echo.Context) error {
	settings, err := h.service.Get(c.Request().Context(), c.Param("shop"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, settings)
}
