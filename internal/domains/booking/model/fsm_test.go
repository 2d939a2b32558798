package model_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"safar/internal/domains/booking/model"
	"safar/shared/constant"
)

func TestCanTransitionStatus(t *testing.T) {
	tests := []struct {
		name string
		from string
		to   string
		want bool
	}{
		{"pending to confirmed", constant.BookingStatusPending, constant.BookingStatusConfirmed, true},
		{"pending to cancelled", constant.BookingStatusPending, constant.BookingStatusCancelled, true},
		{"pending cannot skip to completed", constant.BookingStatusPending, constant.BookingStatusCompleted, false},
		{"confirmed to completed", constant.BookingStatusConfirmed, constant.BookingStatusCompleted, true},
		{"confirmed to cancelled", constant.BookingStatusConfirmed, constant.BookingStatusCancelled, true},
		{"confirmed cannot regress to pending", constant.BookingStatusConfirmed, constant.BookingStatusPending, false},
		{"cancelled is terminal", constant.BookingStatusCancelled, constant.BookingStatusPending, false},
		{"completed is terminal", constant.BookingStatusCompleted, constant.BookingStatusConfirmed, false},
		{"no self transition", constant.BookingStatusPending, constant.BookingStatusPending, false},
		{"unknown state has no transitions", "archived", constant.BookingStatusConfirmed, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, model.CanTransitionStatus(tt.from, tt.to))
		})
	}
}

func TestCanTransitionPayment(t *testing.T) {
	tests := []struct {
		name string
		from string
		to   string
		want bool
	}{
		{"pending to paid", constant.PaymentStatusPending, constant.PaymentStatusPaid, true},
		{"pending to failed", constant.PaymentStatusPending, constant.PaymentStatusFailed, true},
		{"pending cannot refund", constant.PaymentStatusPending, constant.PaymentStatusRefunded, false},
		{"failed can retry to pending", constant.PaymentStatusFailed, constant.PaymentStatusPending, true},
		{"failed can go straight to paid", constant.PaymentStatusFailed, constant.PaymentStatusPaid, true},
		{"paid to refunded", constant.PaymentStatusPaid, constant.PaymentStatusRefunded, true},
		{"paid cannot regress to pending", constant.PaymentStatusPaid, constant.PaymentStatusPending, false},
		{"refunded is terminal", constant.PaymentStatusRefunded, constant.PaymentStatusPaid, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, model.CanTransitionPayment(tt.from, tt.to))
		})
	}
}
