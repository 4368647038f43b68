package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/Gio27709/dental-market-backend/internal/model"
	"github.com/Gio27709/dental-market-backend/internal/repository"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// CartLine is one entry of the buyer's cart at checkout.
type CartLine struct {
	VariationID uint64
	StoreUID    string
	Quantity    int
	UnitPrice   decimal.Decimal
}

type OrderService interface {
	Create(ctx context.Context, buyerUID string, lines []CartLine) (*model.Order, error)
	ListForBuyer(ctx context.Context, buyerUID string) ([]model.Order, error)
	ListForStore(ctx context.Context, storeUID string) ([]model.OrderItem, error)
	ShipItem(ctx context.Context, itemID uint64, callerUID string, platformOwner bool, trackingCode, shippingCarrier string) (*model.OrderItem, error)
}

type orderService struct {
	orderRepo repository.OrderRepository
	settings  SettingsService
}

func NewOrderService(orderRepo repository.OrderRepository, settings SettingsService) OrderService {
	return &orderService{orderRepo: orderRepo, settings: settings}
}

var minUnitPrice = decimal.NewFromFloat(0.01)

var oneHundred = decimal.NewFromInt(100)

func validateCartLines(lines []CartLine) error {
	if len(lines) == 0 {
		return errors.New("at least one cart line is required")
	}
	for i, line := range lines {
		if line.Quantity < 1 {
			return fmt.Errorf("line %d: quantity must be a positive integer", i)
		}
		if line.UnitPrice.LessThan(minUnitPrice) {
			return fmt.Errorf("line %d: unit price must be at least 0.01", i)
		}
		if line.VariationID == 0 {
			return fmt.Errorf("line %d: variation id is required", i)
		}
		if line.StoreUID == "" {
			return fmt.Errorf("line %d: store id is required", i)
		}
	}
	return nil
}

// Create builds the order snapshot from the current rate/commission settings
// and persists header plus items atomically. Any invalid line rejects the
// whole request; no partial order is ever written.
func (s *orderService) Create(ctx context.Context, buyerUID string, lines []CartLine) (*model.Order, error) {
	if buyerUID == "" {
		return nil, errors.New("buyer is required")
	}
	if err := validateCartLines(lines); err != nil {
		return nil, err
	}

	snap, err := s.settings.Snapshot(ctx)
	if err != nil {
		return nil, err
	}

	totalUSD := decimal.Zero
	for _, line := range lines {
		totalUSD = totalUSD.Add(line.UnitPrice.Mul(decimal.NewFromInt(int64(line.Quantity))))
	}
	totalVES := totalUSD.Mul(snap.ExchangeRate)
	commissionUSD := totalUSD.Mul(snap.CommissionPercent).Div(oneHundred)
	commissionVES := commissionUSD.Mul(snap.ExchangeRate)

	order := &model.Order{
		BuyerUID:                 buyerUID,
		TotalUSD:                 totalUSD.Round(2),
		TotalVES:                 totalVES.Round(2),
		ExchangeRateAtPurchase:   snap.ExchangeRate,
		CommissionRateAtPurchase: snap.CommissionPercent,
		CommissionAmountUSD:      commissionUSD.Round(2),
		CommissionAmountVES:      commissionVES.Round(2),
		PaymentStatus:            model.PaymentStatusPending,
		OrderStatus:              model.OrderStatusPending,
		EscrowStatus:             model.EscrowStatusHeld,
	}

	items := make([]model.OrderItem, 0, len(lines))
	for _, line := range lines {
		items = append(items, model.OrderItem{
			VariationID:    line.VariationID,
			StoreUID:       line.StoreUID,
			Quantity:       line.Quantity,
			UnitPrice:      line.UnitPrice.Round(2),
			DeliveryStatus: model.DeliveryStatusPending,
		})
	}

	if err := s.orderRepo.CreateWithItems(ctx, order, items); err != nil {
		return nil, err
	}
	return order, nil
}

func (s *orderService) ListForBuyer(ctx context.Context, buyerUID string) ([]model.Order, error) {
	return s.orderRepo.ListByBuyer(ctx, buyerUID)
}

func (s *orderService) ListForStore(ctx context.Context, storeUID string) ([]model.OrderItem, error) {
	return s.orderRepo.ListItemsByStore(ctx, storeUID)
}

// ShipItem authorizes the caller, checks the transition table, then delegates
// to the transactional repository update that also decrements stock.
func (s *orderService) ShipItem(ctx context.Context, itemID uint64, callerUID string, platformOwner bool, trackingCode, shippingCarrier string) (*model.OrderItem, error) {
	item, err := s.orderRepo.FindItemByID(ctx, itemID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	if !platformOwner && item.StoreUID != callerUID {
		return nil, ErrForbidden
	}
	if !item.DeliveryStatus.CanTransitionTo(model.DeliveryStatusShipped) {
		return nil, &InvalidStateError{Current: item.DeliveryStatus}
	}

	shipped, err := s.orderRepo.ShipItem(ctx, itemID, trackingCode, shippingCarrier)
	if err != nil {
		switch {
		case errors.Is(err, repository.ErrItemNotShippable):
			return nil, &InvalidStateError{Current: item.DeliveryStatus}
		case errors.Is(err, repository.ErrInsufficientStock):
			return nil, ErrInsufficientStock
		case errors.Is(err, gorm.ErrRecordNotFound):
			return nil, ErrNotFound
		}
		return nil, err
	}
	return shipped, nil
}
