package service

import (
	"context"
	"errors"

	"github.com/Gio27709/dental-market-backend/internal/model"
	"github.com/Gio27709/dental-market-backend/internal/repository"
	"github.com/shopspring/decimal"
)

type WalletService interface {
	Balance(ctx context.Context, storeUID string) (*model.StoreWallet, error)
	Transactions(ctx context.Context, storeUID string) ([]model.WalletTransaction, error)
	RequestPayout(ctx context.Context, storeUID string, amount decimal.Decimal) (*model.PayoutRequest, decimal.Decimal, error)
}

type walletService struct {
	repo repository.WalletRepository
}

func NewWalletService(repo repository.WalletRepository) WalletService {
	return &walletService{repo: repo}
}

func (s *walletService) Balance(ctx context.Context, storeUID string) (*model.StoreWallet, error) {
	if storeUID == "" {
		return nil, errors.New("store is required")
	}
	return s.repo.Get(ctx, storeUID)
}

func (s *walletService) Transactions(ctx context.Context, storeUID string) ([]model.WalletTransaction, error) {
	if storeUID == "" {
		return nil, errors.New("store is required")
	}
	return s.repo.ListTransactions(ctx, storeUID)
}

func (s *walletService) RequestPayout(ctx context.Context, storeUID string, amount decimal.Decimal) (*model.PayoutRequest, decimal.Decimal, error) {
	if storeUID == "" {
		return nil, decimal.Zero, errors.New("store is required")
	}
	if amount.Sign() <= 0 {
		return nil, decimal.Zero, errors.New("valid amount required")
	}
	payout, remaining, err := s.repo.RequestPayout(ctx, storeUID, amount.Round(2))
	if err != nil {
		if errors.Is(err, repository.ErrInsufficientBalance) {
			return nil, decimal.Zero, ErrInsufficientFunds
		}
		return nil, decimal.Zero, err
	}
	return payout, remaining, nil
}
