package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/Gio27709/dental-market-backend/internal/middleware"
	"github.com/Gio27709/dental-market-backend/internal/model"
	"github.com/Gio27709/dental-market-backend/internal/service"
	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"
)

type stubOrderService struct {
	createOrder *model.Order
	createErr   error
	shipItem    *model.OrderItem
	shipErr     error
	gotLines    []service.CartLine
}

func (s *stubOrderService) Create(_ context.Context, _ string, lines []service.CartLine) (*model.Order, error) {
	s.gotLines = lines
	if s.createErr != nil {
		return nil, s.createErr
	}
	return s.createOrder, nil
}

func (s *stubOrderService) ListForBuyer(_ context.Context, _ string) ([]model.Order, error) {
	return nil, nil
}

func (s *stubOrderService) ListForStore(_ context.Context, _ string) ([]model.OrderItem, error) {
	return nil, nil
}

func (s *stubOrderService) ShipItem(_ context.Context, _ uint64, _ string, _ bool, _, _ string) (*model.OrderItem, error) {
	if s.shipErr != nil {
		return nil, s.shipErr
	}
	return s.shipItem, nil
}

func newShipContext(e *echo.Echo, body, uid, role, itemID string) (echo.Context, *httptest.ResponseRecorder) {
	req := httptest.NewRequest(http.MethodPut, "/api/orders/"+itemID+"/ship", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetPath("/api/orders/:item_id/ship")
	c.SetParamNames("item_id")
	c.SetParamValues(itemID)
	c.Set("uid", uid)
	c.Set("role", role)
	return c, rec
}

func decodeError(t *testing.T, rec *httptest.ResponseRecorder) string {
	t.Helper()
	var resp ErrorResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode error body: %v", err)
	}
	return resp.Error.Code
}

func TestOrderCreateHandler(t *testing.T) {
	e := echo.New()

	t.Run("created", func(t *testing.T) {
		svc := &stubOrderService{createOrder: &model.Order{
			ID:       1,
			BuyerUID: "buyer-1",
			TotalUSD: decimal.RequireFromString("70.00"),
		}}
		h := NewOrderHandler(svc)

		body := `{"items":[{"variation_id":11,"store_id":"store-1","quantity":2,"unit_price":35.00}]}`
		req := httptest.NewRequest(http.MethodPost, "/api/orders", strings.NewReader(body))
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
		rec := httptest.NewRecorder()
		c := e.NewContext(req, rec)
		c.Set("uid", "buyer-1")
		c.Set("role", middleware.RoleBuyer)

		if err := h.Create(c); err != nil {
			t.Fatalf("handler error: %v", err)
		}
		if rec.Code != http.StatusCreated {
			t.Fatalf("status = %d, want 201", rec.Code)
		}
		if len(svc.gotLines) != 1 || svc.gotLines[0].StoreUID != "store-1" || svc.gotLines[0].Quantity != 2 {
			t.Fatalf("lines passed to service: %+v", svc.gotLines)
		}
		var resp OrderResponse
		if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
			t.Fatalf("decode response: %v", err)
		}
		if resp.ID != 1 || resp.BuyerUID != "buyer-1" {
			t.Fatalf("response = %+v", resp)
		}
	})

	t.Run("validation error is 400", func(t *testing.T) {
		svc := &stubOrderService{createErr: errors.New("at least one cart line is required")}
		h := NewOrderHandler(svc)

		req := httptest.NewRequest(http.MethodPost, "/api/orders", strings.NewReader(`{"items":[]}`))
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
		rec := httptest.NewRecorder()
		c := e.NewContext(req, rec)
		c.Set("uid", "buyer-1")

		if err := h.Create(c); err != nil {
			t.Fatalf("handler error: %v", err)
		}
		if rec.Code != http.StatusBadRequest {
			t.Fatalf("status = %d, want 400", rec.Code)
		}
	})

	t.Run("missing settings is 500", func(t *testing.T) {
		h := NewOrderHandler(&stubOrderService{createErr: service.ErrSettingsIncomplete})

		req := httptest.NewRequest(http.MethodPost, "/api/orders", strings.NewReader(`{"items":[{"variation_id":1,"store_id":"s","quantity":1,"unit_price":5}]}`))
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
		rec := httptest.NewRecorder()
		c := e.NewContext(req, rec)
		c.Set("uid", "buyer-1")

		if err := h.Create(c); err != nil {
			t.Fatalf("handler error: %v", err)
		}
		if rec.Code != http.StatusInternalServerError {
			t.Fatalf("status = %d, want 500", rec.Code)
		}
	})

	t.Run("missing uid is 401", func(t *testing.T) {
		h := NewOrderHandler(&stubOrderService{})
		req := httptest.NewRequest(http.MethodPost, "/api/orders", strings.NewReader(`{}`))
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
		rec := httptest.NewRecorder()
		c := e.NewContext(req, rec)

		if err := h.Create(c); err != nil {
			t.Fatalf("handler error: %v", err)
		}
		if rec.Code != http.StatusUnauthorized {
			t.Fatalf("status = %d, want 401", rec.Code)
		}
	})
}

func TestShipItemHandler(t *testing.T) {
	e := echo.New()
	body := `{"tracking_code":"TRK-1","shipping_carrier":"MRW"}`

	t.Run("shipped", func(t *testing.T) {
		h := NewOrderHandler(&stubOrderService{shipItem: &model.OrderItem{
			ID:              5,
			StoreUID:        "store-1",
			DeliveryStatus:  model.DeliveryStatusShipped,
			TrackingCode:    "TRK-1",
			ShippingCarrier: "MRW",
		}})
		c, rec := newShipContext(e, body, "store-1", middleware.RoleStore, "5")
		if err := h.ShipItem(c); err != nil {
			t.Fatalf("handler error: %v", err)
		}
		if rec.Code != http.StatusOK {
			t.Fatalf("status = %d, want 200", rec.Code)
		}
		var resp OrderItemResponse
		if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
			t.Fatalf("decode response: %v", err)
		}
		if resp.DeliveryStatus != string(model.DeliveryStatusShipped) || resp.TrackingCode != "TRK-1" {
			t.Fatalf("response = %+v", resp)
		}
	})

	t.Run("not found", func(t *testing.T) {
		h := NewOrderHandler(&stubOrderService{shipErr: service.ErrNotFound})
		c, rec := newShipContext(e, body, "store-1", middleware.RoleStore, "99")
		if err := h.ShipItem(c); err != nil {
			t.Fatalf("handler error: %v", err)
		}
		if rec.Code != http.StatusNotFound {
			t.Fatalf("status = %d, want 404", rec.Code)
		}
		if code := decodeError(t, rec); code != "not_found" {
			t.Fatalf("error code = %q", code)
		}
	})

	t.Run("forbidden", func(t *testing.T) {
		h := NewOrderHandler(&stubOrderService{shipErr: service.ErrForbidden})
		c, rec := newShipContext(e, body, "store-2", middleware.RoleStore, "5")
		if err := h.ShipItem(c); err != nil {
			t.Fatalf("handler error: %v", err)
		}
		if rec.Code != http.StatusForbidden {
			t.Fatalf("status = %d, want 403", rec.Code)
		}
	})

	t.Run("invalid state", func(t *testing.T) {
		h := NewOrderHandler(&stubOrderService{shipErr: &service.InvalidStateError{Current: model.DeliveryStatusShipped}})
		c, rec := newShipContext(e, body, "store-1", middleware.RoleStore, "5")
		if err := h.ShipItem(c); err != nil {
			t.Fatalf("handler error: %v", err)
		}
		if rec.Code != http.StatusBadRequest {
			t.Fatalf("status = %d, want 400", rec.Code)
		}
		if code := decodeError(t, rec); code != "invalid_state" {
			t.Fatalf("error code = %q", code)
		}
	})

	t.Run("insufficient stock", func(t *testing.T) {
		h := NewOrderHandler(&stubOrderService{shipErr: service.ErrInsufficientStock})
		c, rec := newShipContext(e, body, "store-1", middleware.RoleStore, "5")
		if err := h.ShipItem(c); err != nil {
			t.Fatalf("handler error: %v", err)
		}
		if rec.Code != http.StatusBadRequest {
			t.Fatalf("status = %d, want 400", rec.Code)
		}
		if code := decodeError(t, rec); code != "insufficient_stock" {
			t.Fatalf("error code = %q", code)
		}
	})

	t.Run("bad item id", func(t *testing.T) {
		h := NewOrderHandler(&stubOrderService{})
		c, rec := newShipContext(e, body, "store-1", middleware.RoleStore, "abc")
		if err := h.ShipItem(c); err != nil {
			t.Fatalf("handler error: %v", err)
		}
		if rec.Code != http.StatusBadRequest {
			t.Fatalf("status = %d, want 400", rec.Code)
		}
	})
}
