package model

import "testing"

func TestDeliveryStatusTransitions(t *testing.T) {
	tests := []struct {
		name string
		from DeliveryStatus
		to   DeliveryStatus
		want bool
	}{
		{"pending to confirmed", DeliveryStatusPending, DeliveryStatusConfirmed, true},
		{"pending to shipped", DeliveryStatusPending, DeliveryStatusShipped, true},
		{"confirmed to shipped", DeliveryStatusConfirmed, DeliveryStatusShipped, true},
		{"shipped is terminal", DeliveryStatusShipped, DeliveryStatusPending, false},
		{"shipped to shipped", DeliveryStatusShipped, DeliveryStatusShipped, false},
		{"confirmed back to pending", DeliveryStatusConfirmed, DeliveryStatusPending, false},
		{"unknown state", DeliveryStatus("canceled"), DeliveryStatusShipped, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.from.CanTransitionTo(tt.to); got != tt.want {
				t.Fatalf("CanTransitionTo(%s -> %s) = %v, want %v", tt.from, tt.to, got, tt.want)
			}
		})
	}
}

func TestDeliveryStatusValid(t *testing.T) {
	for _, s := range []DeliveryStatus{DeliveryStatusPending, DeliveryStatusConfirmed, DeliveryStatusShipped} {
		if !s.Valid() {
			t.Fatalf("%s should be valid", s)
		}
	}
	if DeliveryStatus("refunded").Valid() {
		t.Fatalf("refunded should not be valid")
	}
}
