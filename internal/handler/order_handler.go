package handler

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/Gio27709/dental-market-backend/internal/middleware"
	"github.com/Gio27709/dental-market-backend/internal/model"
	"github.com/Gio27709/dental-market-backend/internal/service"
	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"
)

type OrderHandler struct {
	svc service.OrderService
}

func NewOrderHandler(svc service.OrderService) *OrderHandler {
	return &OrderHandler{svc: svc}
}

type cartLineRequest struct {
	VariationID uint64          `json:"variation_id"`
	StoreID     string          `json:"store_id"`
	Quantity    int             `json:"quantity"`
	UnitPrice   decimal.Decimal `json:"unit_price"`
}

type createOrderRequest struct {
	Items []cartLineRequest `json:"items"`
}

type OrderResponse struct {
	ID                       uint64              `json:"id"`
	BuyerUID                 string              `json:"buyer_uid"`
	TotalUSD                 decimal.Decimal     `json:"total_usd"`
	TotalVES                 decimal.Decimal     `json:"total_ves"`
	ExchangeRateAtPurchase   decimal.Decimal     `json:"exchange_rate_at_purchase"`
	CommissionRateAtPurchase decimal.Decimal     `json:"commission_rate_at_purchase"`
	CommissionAmountUSD      decimal.Decimal     `json:"commission_amount_usd"`
	CommissionAmountVES      decimal.Decimal     `json:"commission_amount_ves"`
	PaymentStatus            string              `json:"payment_status"`
	OrderStatus              string              `json:"order_status"`
	EscrowStatus             string              `json:"escrow_status"`
	Items                    []OrderItemResponse `json:"items,omitempty"`
	CreatedAt                string              `json:"created_at"`
}

type OrderItemResponse struct {
	ID              uint64          `json:"id"`
	OrderID         uint64          `json:"order_id"`
	VariationID     uint64          `json:"variation_id"`
	StoreUID        string          `json:"store_uid"`
	Quantity        int             `json:"quantity"`
	UnitPrice       decimal.Decimal `json:"unit_price"`
	DeliveryStatus  string          `json:"delivery_status"`
	TrackingCode    string          `json:"tracking_code,omitempty"`
	ShippingCarrier string          `json:"shipping_carrier,omitempty"`
	ShippedAt       *string         `json:"shipped_at,omitempty"`
	Order           *OrderResponse  `json:"order,omitempty"`
	CreatedAt       string          `json:"created_at"`
}

func toOrderResponse(o *model.Order, withItems bool) OrderResponse {
	resp := OrderResponse{
		ID:                       o.ID,
		BuyerUID:                 o.BuyerUID,
		TotalUSD:                 o.TotalUSD,
		TotalVES:                 o.TotalVES,
		ExchangeRateAtPurchase:   o.ExchangeRateAtPurchase,
		CommissionRateAtPurchase: o.CommissionRateAtPurchase,
		CommissionAmountUSD:      o.CommissionAmountUSD,
		CommissionAmountVES:      o.CommissionAmountVES,
		PaymentStatus:            string(o.PaymentStatus),
		OrderStatus:              string(o.OrderStatus),
		EscrowStatus:             string(o.EscrowStatus),
		CreatedAt:                o.CreatedAt.Format(time.RFC3339),
	}
	if withItems {
		resp.Items = make([]OrderItemResponse, 0, len(o.Items))
		for i := range o.Items {
			resp.Items = append(resp.Items, toOrderItemResponse(&o.Items[i], false))
		}
	}
	return resp
}

func toOrderItemResponse(item *model.OrderItem, withOrder bool) OrderItemResponse {
	var shippedAt *string
	if item.ShippedAt != nil {
		val := item.ShippedAt.Format(time.RFC3339)
		shippedAt = &val
	}
	resp := OrderItemResponse{
		ID:              item.ID,
		OrderID:         item.OrderID,
		VariationID:     item.VariationID,
		StoreUID:        item.StoreUID,
		Quantity:        item.Quantity,
		UnitPrice:       item.UnitPrice,
		DeliveryStatus:  string(item.DeliveryStatus),
		TrackingCode:    item.TrackingCode,
		ShippingCarrier: item.ShippingCarrier,
		ShippedAt:       shippedAt,
		CreatedAt:       item.CreatedAt.Format(time.RFC3339),
	}
	if withOrder && item.Order != nil {
		parent := toOrderResponse(item.Order, false)
		resp.Order = &parent
	}
	return resp
}

func (h *OrderHandler) Create(c echo.Context) error {
	uid, _ := c.Get("uid").(string)
	if uid == "" {
		return c.JSON(http.StatusUnauthorized, NewErrorResponse("unauthorized", "missing uid"))
	}
	var req createOrderRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, NewErrorResponse("bad_request", "invalid json"))
	}
	lines := make([]service.CartLine, 0, len(req.Items))
	for _, it := range req.Items {
		lines = append(lines, service.CartLine{
			VariationID: it.VariationID,
			StoreUID:    it.StoreID,
			Quantity:    it.Quantity,
			UnitPrice:   it.UnitPrice,
		})
	}
	order, err := h.svc.Create(c.Request().Context(), uid, lines)
	if err != nil {
		if errors.Is(err, service.ErrSettingsIncomplete) {
			return c.JSON(http.StatusInternalServerError, NewErrorResponse("internal_error", "could not fetch global settings"))
		}
		return c.JSON(http.StatusBadRequest, NewErrorResponse("bad_request", err.Error()))
	}
	return c.JSON(http.StatusCreated, toOrderResponse(order, true))
}

// List is role-sensitive: buyers and professionals get their orders with
// nested items, stores get their item fragments with the parent order.
func (h *OrderHandler) List(c echo.Context) error {
	uid, _ := c.Get("uid").(string)
	if uid == "" {
		return c.JSON(http.StatusUnauthorized, NewErrorResponse("unauthorized", "missing uid"))
	}
	role, _ := c.Get("role").(string)

	if role == middleware.RoleBuyer || role == middleware.RoleProfessional {
		orders, err := h.svc.ListForBuyer(c.Request().Context(), uid)
		if err != nil {
			return c.JSON(http.StatusInternalServerError, NewErrorResponse("internal_error", "failed to fetch orders"))
		}
		resp := make([]OrderResponse, 0, len(orders))
		for i := range orders {
			resp = append(resp, toOrderResponse(&orders[i], true))
		}
		return c.JSON(http.StatusOK, resp)
	}

	items, err := h.svc.ListForStore(c.Request().Context(), uid)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, NewErrorResponse("internal_error", "failed to fetch order items"))
	}
	resp := make([]OrderItemResponse, 0, len(items))
	for i := range items {
		resp = append(resp, toOrderItemResponse(&items[i], true))
	}
	return c.JSON(http.StatusOK, resp)
}

type shipItemRequest struct {
	TrackingCode    string `json:"tracking_code"`
	ShippingCarrier string `json:"shipping_carrier"`
}

func (h *OrderHandler) ShipItem(c echo.Context) error {
	uid, _ := c.Get("uid").(string)
	if uid == "" {
		return c.JSON(http.StatusUnauthorized, NewErrorResponse("unauthorized", "missing uid"))
	}
	role, _ := c.Get("role").(string)

	itemID, err := strconv.ParseUint(c.Param("item_id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, NewErrorResponse("bad_request", "invalid item id"))
	}
	var req shipItemRequest
	_ = c.Bind(&req)

	item, err := h.svc.ShipItem(c.Request().Context(), itemID, uid, role == middleware.RoleOwner, req.TrackingCode, req.ShippingCarrier)
	if err != nil {
		var stateErr *service.InvalidStateError
		switch {
		case errors.Is(err, service.ErrNotFound):
			return c.JSON(http.StatusNotFound, NewErrorResponse("not_found", "order item not found"))
		case errors.Is(err, service.ErrForbidden):
			return c.JSON(http.StatusForbidden, NewErrorResponse("forbidden", "cannot ship an item belonging to another store"))
		case errors.As(err, &stateErr):
			return c.JSON(http.StatusBadRequest, NewErrorResponse("invalid_state", stateErr.Error()))
		case errors.Is(err, service.ErrInsufficientStock):
			return c.JSON(http.StatusBadRequest, NewErrorResponse("insufficient_stock", "not enough stock to ship this item"))
		}
		return c.JSON(http.StatusInternalServerError, NewErrorResponse("internal_error", "failed to ship item"))
	}
	return c.JSON(http.StatusOK, toOrderItemResponse(item, false))
}
