package service

import (
	"context"
	"errors"
	"testing"

	"github.com/Gio27709/dental-market-backend/internal/model"
	"github.com/Gio27709/dental-market-backend/internal/repository"
	"github.com/shopspring/decimal"
)

type fakeWalletRepo struct {
	wallet    *model.StoreWallet
	payoutErr error
	gotAmount decimal.Decimal
}

func (f *fakeWalletRepo) Get(_ context.Context, storeUID string) (*model.StoreWallet, error) {
	if f.wallet != nil {
		return f.wallet, nil
	}
	// Mirrors FirstOrCreate: unknown stores get a zero-balance wallet.
	return &model.StoreWallet{StoreUID: storeUID}, nil
}

func (f *fakeWalletRepo) ListTransactions(_ context.Context, _ string) ([]model.WalletTransaction, error) {
	return nil, nil
}

func (f *fakeWalletRepo) RequestPayout(_ context.Context, storeUID string, amount decimal.Decimal) (*model.PayoutRequest, decimal.Decimal, error) {
	f.gotAmount = amount
	if f.payoutErr != nil {
		return nil, decimal.Zero, f.payoutErr
	}
	remaining := f.wallet.BalanceAvailable.Sub(amount)
	return &model.PayoutRequest{
		ID:       1,
		StoreUID: storeUID,
		Amount:   amount,
		Status:   model.PayoutStatusPending,
	}, remaining, nil
}

func TestWalletBalanceMissingWallet(t *testing.T) {
	svc := NewWalletService(&fakeWalletRepo{})
	wallet, err := svc.Balance(context.Background(), "store-new")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !wallet.BalanceAvailable.IsZero() || !wallet.BalancePending.IsZero() {
		t.Fatalf("fresh wallet should be zero/zero, got %s/%s", wallet.BalanceAvailable, wallet.BalancePending)
	}
}

func TestRequestPayout(t *testing.T) {
	t.Run("invalid amount", func(t *testing.T) {
		for _, amt := range []string{"0", "-5"} {
			repo := &fakeWalletRepo{wallet: &model.StoreWallet{BalanceAvailable: dec("100")}}
			svc := NewWalletService(repo)
			if _, _, err := svc.RequestPayout(context.Background(), "store-1", dec(amt)); err == nil {
				t.Fatalf("amount %s: expected error", amt)
			}
			if !repo.gotAmount.IsZero() {
				t.Fatalf("repository must not be touched for invalid amount")
			}
		}
	})

	t.Run("insufficient funds", func(t *testing.T) {
		repo := &fakeWalletRepo{payoutErr: repository.ErrInsufficientBalance}
		svc := NewWalletService(repo)
		_, _, err := svc.RequestPayout(context.Background(), "store-1", dec("150"))
		if !errors.Is(err, ErrInsufficientFunds) {
			t.Fatalf("err = %v, want ErrInsufficientFunds", err)
		}
	})

	t.Run("success returns remaining balance", func(t *testing.T) {
		repo := &fakeWalletRepo{wallet: &model.StoreWallet{BalanceAvailable: dec("200")}}
		svc := NewWalletService(repo)
		payout, remaining, err := svc.RequestPayout(context.Background(), "store-1", dec("150.555"))
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !repo.gotAmount.Equal(dec("150.56")) {
			t.Fatalf("amount should be rounded to cents, got %s", repo.gotAmount)
		}
		if payout.Status != model.PayoutStatusPending {
			t.Fatalf("payout status = %s, want pending", payout.Status)
		}
		if !remaining.Equal(dec("49.44")) {
			t.Fatalf("remaining = %s, want 49.44", remaining)
		}
	})
}
