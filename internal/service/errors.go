package service

import (
	"errors"
	"fmt"

	"github.com/Gio27709/dental-market-backend/internal/model"
)

var (
	ErrNotFound           = errors.New("not found")
	ErrForbidden          = errors.New("forbidden")
	ErrInsufficientFunds  = errors.New("insufficient available funds")
	ErrInsufficientStock  = errors.New("insufficient stock")
	ErrSettingsIncomplete = errors.New("global settings incomplete")
)

// InvalidStateError reports a rejected delivery transition along with the
// item's current state.
type InvalidStateError struct {
	Current model.DeliveryStatus
}

func (e *InvalidStateError) Error() string {
	return fmt.Sprintf("cannot ship an item with status %s", e.Current)
}
