package repository

import (
	"context"
	"errors"
	"time"

	"github.com/Gio27709/dental-market-backend/internal/model"
	"gorm.io/gorm"
)

var (
	// ErrItemNotShippable is returned when the conditional status update
	// matches no row because the item already left a shippable state.
	ErrItemNotShippable = errors.New("order item is not in a shippable state")
	// ErrInsufficientStock is returned when the stock floor check fails;
	// the whole ship transaction rolls back.
	ErrInsufficientStock = errors.New("insufficient stock for variation")
)

type OrderRepository interface {
	CreateWithItems(ctx context.Context, order *model.Order, items []model.OrderItem) error
	FindByID(ctx context.Context, id uint64) (*model.Order, error)
	FindItemByID(ctx context.Context, id uint64) (*model.OrderItem, error)
	ListByBuyer(ctx context.Context, buyerUID string) ([]model.Order, error)
	ListItemsByStore(ctx context.Context, storeUID string) ([]model.OrderItem, error)
	ShipItem(ctx context.Context, itemID uint64, trackingCode, shippingCarrier string) (*model.OrderItem, error)
}

type orderRepository struct {
	db *gorm.DB
}

func NewOrderRepository(db *gorm.DB) OrderRepository {
	return &orderRepository{db: db}
}

// CreateWithItems persists the order header and all of its items in a single
// transaction. Either everything lands or nothing does; there is no
// compensating delete.
func (r *orderRepository) CreateWithItems(ctx context.Context, order *model.Order, items []model.OrderItem) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(order).Error; err != nil {
			return err
		}
		for i := range items {
			items[i].OrderID = order.ID
		}
		if err := tx.Create(&items).Error; err != nil {
			return err
		}
		order.Items = items
		return nil
	})
}

func (r *orderRepository) FindByID(ctx context.Context, id uint64) (*model.Order, error) {
	var order model.Order
	if err := r.db.WithContext(ctx).
		Preload("Items").
		First(&order, id).Error; err != nil {
		return nil, err
	}
	return &order, nil
}

func (r *orderRepository) FindItemByID(ctx context.Context, id uint64) (*model.OrderItem, error) {
	var item model.OrderItem
	if err := r.db.WithContext(ctx).First(&item, id).Error; err != nil {
		return nil, err
	}
	return &item, nil
}

func (r *orderRepository) ListByBuyer(ctx context.Context, buyerUID string) ([]model.Order, error) {
	var orders []model.Order
	if err := r.db.WithContext(ctx).
		Preload("Items").
		Preload("Items.Variation").
		Where("buyer_uid = ?", buyerUID).
		Order("created_at DESC").
		Find(&orders).Error; err != nil {
		return nil, err
	}
	return orders, nil
}

func (r *orderRepository) ListItemsByStore(ctx context.Context, storeUID string) ([]model.OrderItem, error) {
	var items []model.OrderItem
	if err := r.db.WithContext(ctx).
		Preload("Order").
		Preload("Variation").
		Where("store_uid = ?", storeUID).
		Order("created_at DESC").
		Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

// ShipItem moves the item to shipped and decrements variation stock inside
// one transaction. Both writes are conditional updates checked via
// RowsAffected, so a concurrent ship or a stock shortfall rolls the whole
// transition back.
func (r *orderRepository) ShipItem(ctx context.Context, itemID uint64, trackingCode, shippingCarrier string) (*model.OrderItem, error) {
	var item model.OrderItem
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&item, itemID).Error; err != nil {
			return err
		}
		now := time.Now()
		res := tx.Model(&model.OrderItem{}).
			Where("id = ? AND delivery_status IN ?", itemID,
				[]model.DeliveryStatus{model.DeliveryStatusPending, model.DeliveryStatusConfirmed}).
			Updates(map[string]interface{}{
				"delivery_status":  model.DeliveryStatusShipped,
				"tracking_code":    trackingCode,
				"shipping_carrier": shippingCarrier,
				"shipped_at":       now,
			})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return ErrItemNotShippable
		}

		dec := tx.Model(&model.ProductVariation{}).
			Where("id = ? AND stock >= ?", item.VariationID, item.Quantity).
			Update("stock", gorm.Expr("stock - ?", item.Quantity))
		if dec.Error != nil {
			return dec.Error
		}
		if dec.RowsAffected == 0 {
			return ErrInsufficientStock
		}

		item.DeliveryStatus = model.DeliveryStatusShipped
		item.TrackingCode = trackingCode
		item.ShippingCarrier = shippingCarrier
		item.ShippedAt = &now
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &item, nil
}
