package handler

import (
	"errors"
	"net/http"
	"time"

	"github.com/Gio27709/dental-market-backend/internal/model"
	"github.com/Gio27709/dental-market-backend/internal/service"
	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"
)

type WalletHandler struct {
	svc service.WalletService
}

func NewWalletHandler(svc service.WalletService) *WalletHandler {
	return &WalletHandler{svc: svc}
}

type WalletBalanceResponse struct {
	BalanceAvailable decimal.Decimal `json:"balance_available"`
	BalancePending   decimal.Decimal `json:"balance_pending"`
}

func (h *WalletHandler) GetBalance(c echo.Context) error {
	uid, _ := c.Get("uid").(string)
	if uid == "" {
		return c.JSON(http.StatusUnauthorized, NewErrorResponse("unauthorized", "missing uid"))
	}
	wallet, err := h.svc.Balance(c.Request().Context(), uid)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, NewErrorResponse("internal_error", "failed to fetch wallet"))
	}
	return c.JSON(http.StatusOK, WalletBalanceResponse{
		BalanceAvailable: wallet.BalanceAvailable,
		BalancePending:   wallet.BalancePending,
	})
}

type WalletTransactionResponse struct {
	ID              uint64          `json:"id"`
	Type            string          `json:"type"`
	Amount          decimal.Decimal `json:"amount"`
	Note            string          `json:"note,omitempty"`
	PayoutRequestID *uint64         `json:"payout_request_id,omitempty"`
	CreatedAt       string          `json:"created_at"`
}

type WalletTransactionListResponse struct {
	Count        int                         `json:"count"`
	Transactions []WalletTransactionResponse `json:"transactions"`
}

func (h *WalletHandler) ListTransactions(c echo.Context) error {
	uid, _ := c.Get("uid").(string)
	if uid == "" {
		return c.JSON(http.StatusUnauthorized, NewErrorResponse("unauthorized", "missing uid"))
	}
	list, err := h.svc.Transactions(c.Request().Context(), uid)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, NewErrorResponse("internal_error", "failed to fetch transactions"))
	}
	resp := WalletTransactionListResponse{
		Count:        len(list),
		Transactions: make([]WalletTransactionResponse, 0, len(list)),
	}
	for _, tx := range list {
		resp.Transactions = append(resp.Transactions, WalletTransactionResponse{
			ID:              tx.ID,
			Type:            string(tx.Type),
			Amount:          tx.Amount,
			Note:            tx.Note,
			PayoutRequestID: tx.PayoutRequestID,
			CreatedAt:       tx.CreatedAt.Format(time.RFC3339),
		})
	}
	return c.JSON(http.StatusOK, resp)
}

type payoutRequestBody struct {
	Amount decimal.Decimal `json:"amount"`
}

type PayoutResponse struct {
	ID               uint64          `json:"id"`
	Reference        string          `json:"reference"`
	Amount           decimal.Decimal `json:"amount"`
	Status           string          `json:"status"`
	RemainingBalance decimal.Decimal `json:"remaining_balance"`
	CreatedAt        string          `json:"created_at"`
}

func (h *WalletHandler) RequestPayout(c echo.Context) error {
	uid, _ := c.Get("uid").(string)
	if uid == "" {
		return c.JSON(http.StatusUnauthorized, NewErrorResponse("unauthorized", "missing uid"))
	}
	var body payoutRequestBody
	if err := c.Bind(&body); err != nil {
		return c.JSON(http.StatusBadRequest, NewErrorResponse("bad_request", "invalid json"))
	}
	payout, remaining, err := h.svc.RequestPayout(c.Request().Context(), uid, body.Amount)
	if err != nil {
		if errors.Is(err, service.ErrInsufficientFunds) {
			return c.JSON(http.StatusBadRequest, NewErrorResponse("insufficient_funds", "insufficient available funds"))
		}
		return c.JSON(http.StatusBadRequest, NewErrorResponse("bad_request", err.Error()))
	}
	return c.JSON(http.StatusCreated, toPayoutResponse(payout, remaining))
}

func toPayoutResponse(p *model.PayoutRequest, remaining decimal.Decimal) PayoutResponse {
	return PayoutResponse{
		ID:               p.ID,
		Reference:        p.Reference,
		Amount:           p.Amount,
		Status:           string(p.Status),
		RemainingBalance: remaining,
		CreatedAt:        p.CreatedAt.Format(time.RFC3339),
	}
}
