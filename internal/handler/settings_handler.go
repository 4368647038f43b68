package handler

import (
	"net/http"

	"github.com/Gio27709/dental-market-backend/internal/service"
	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"
)

type SettingsHandler struct {
	svc service.SettingsService
}

func NewSettingsHandler(svc service.SettingsService) *SettingsHandler {
	return &SettingsHandler{svc: svc}
}

func (h *SettingsHandler) List(c echo.Context) error {
	settings, err := h.svc.Map(c.Request().Context())
	if err != nil {
		return c.JSON(http.StatusInternalServerError, NewErrorResponse("internal_error", "failed to fetch settings"))
	}
	return c.JSON(http.StatusOK, settings)
}

type updateBCVRateRequest struct {
	Rate decimal.Decimal `json:"rate"`
}

func (h *SettingsHandler) UpdateBCVRate(c echo.Context) error {
	var req updateBCVRateRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, NewErrorResponse("bad_request", "invalid json"))
	}
	setting, err := h.svc.UpdateBCVRate(c.Request().Context(), req.Rate)
	if err != nil {
		return c.JSON(http.StatusBadRequest, NewErrorResponse("bad_request", err.Error()))
	}
	return c.JSON(http.StatusOK, map[string]interface{}{
		"key":   setting.Key,
		"value": setting.Value,
	})
}

type updateCommissionRequest struct {
	Percentage decimal.Decimal `json:"percentage"`
}

func (h *SettingsHandler) UpdateCommission(c echo.Context) error {
	var req updateCommissionRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, NewErrorResponse("bad_request", "invalid json"))
	}
	setting, err := h.svc.UpdateCommission(c.Request().Context(), req.Percentage)
	if err != nil {
		return c.JSON(http.StatusBadRequest, NewErrorResponse("bad_request", err.Error()))
	}
	return c.JSON(http.StatusOK, map[string]interface{}{
		"key":   setting.Key,
		"value": setting.Value,
	})
}
