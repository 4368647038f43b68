package repository

import (
	"context"
	"errors"

	"github.com/Gio27709/dental-market-backend/internal/model"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// ErrInsufficientBalance is returned when the conditional debit matches no
// row, either because the wallet does not exist or the available balance is
// below the requested amount.
var ErrInsufficientBalance = errors.New("insufficient available balance")

type WalletRepository interface {
	Get(ctx context.Context, storeUID string) (*model.StoreWallet, error)
	ListTransactions(ctx context.Context, storeUID string) ([]model.WalletTransaction, error)
	RequestPayout(ctx context.Context, storeUID string, amount decimal.Decimal) (*model.PayoutRequest, decimal.Decimal, error)
}

type walletRepository struct {
	db *gorm.DB
}

func NewWalletRepository(db *gorm.DB) WalletRepository {
	return &walletRepository{db: db}
}

// Get returns the store's wallet, creating a zero-balance row for stores
// that have never been credited.
func (r *walletRepository) Get(ctx context.Context, storeUID string) (*model.StoreWallet, error) {
	var w model.StoreWallet
	if err := r.db.WithContext(ctx).
		Where("store_uid = ?", storeUID).
		FirstOrCreate(&w, &model.StoreWallet{StoreUID: storeUID}).Error; err != nil {
		return nil, err
	}
	return &w, nil
}

func (r *walletRepository) ListTransactions(ctx context.Context, storeUID string) ([]model.WalletTransaction, error) {
	var list []model.WalletTransaction
	if err := r.db.WithContext(ctx).
		Where("store_uid = ?", storeUID).
		Order("id DESC").
		Find(&list).Error; err != nil {
		return nil, err
	}
	return list, nil
}

// RequestPayout debits balance_available and files the payout ticket in one
// transaction. The debit is a conditional update guarded by
// balance_available >= amount, so two concurrent requests can never
// double-spend: the second one matches zero rows and fails.
func (r *walletRepository) RequestPayout(ctx context.Context, storeUID string, amount decimal.Decimal) (*model.PayoutRequest, decimal.Decimal, error) {
	var (
		payout    model.PayoutRequest
		remaining decimal.Decimal
	)
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Model(&model.StoreWallet{}).
			Where("store_uid = ? AND balance_available >= ?", storeUID, amount).
			Update("balance_available", gorm.Expr("balance_available - ?", amount))
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return ErrInsufficientBalance
		}

		payout = model.PayoutRequest{
			StoreUID:  storeUID,
			Amount:    amount,
			Status:    model.PayoutStatusPending,
			Reference: uuid.NewString(),
		}
		if err := tx.Create(&payout).Error; err != nil {
			return err
		}

		ledger := model.WalletTransaction{
			StoreUID:        storeUID,
			Type:            model.WalletTxPayoutRequest,
			Amount:          amount.Neg(),
			Note:            "payout request " + payout.Reference,
			PayoutRequestID: &payout.ID,
		}
		if err := tx.Create(&ledger).Error; err != nil {
			return err
		}

		var w model.StoreWallet
		if err := tx.Where("store_uid = ?", storeUID).First(&w).Error; err != nil {
			return err
		}
		remaining = w.BalanceAvailable
		return nil
	})
	if err != nil {
		return nil, decimal.Zero, err
	}
	return &payout, remaining, nil
}
