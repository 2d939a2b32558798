package model

import (
	"safar/shared/constant"
	"slices"
)

// Transition tables for the two lifecycle axes. A state missing from the map
// or mapped to an empty list is terminal.
var (
	statusTransitions = map[string][]string{
		constant.BookingStatusPending:   {constant.BookingStatusConfirmed, constant.BookingStatusCancelled},
		constant.BookingStatusConfirmed: {constant.BookingStatusCompleted, constant.BookingStatusCancelled},
		constant.BookingStatusCancelled: {},
		constant.BookingStatusCompleted: {},
	}

	paymentTransitions = map[string][]string{
		constant.PaymentStatusPending:  {constant.PaymentStatusPaid, constant.PaymentStatusFailed},
		constant.PaymentStatusFailed:   {constant.PaymentStatusPending, constant.PaymentStatusPaid},
		constant.PaymentStatusPaid:     {constant.PaymentStatusRefunded},
		constant.PaymentStatusRefunded: {},
	}
)

func CanTransitionStatus(from, to string) bool {
	return slices.Contains(statusTransitions[from], to)
}

func CanTransitionPayment(from, to string) bool {
	return slices.Contains(paymentTransitions[from], to)
}
