package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBookingStatusIsValid(t *testing.T) {
	for _, s := range []BookingStatus{BookingPending, BookingConfirmed, BookingCancelled, BookingCompleted} {
		assert.True(t, s.IsValid(), "%s should be valid", s)
	}
	assert.False(t, BookingStatus("archived").IsValid())
	assert.False(t, BookingStatus("").IsValid())
}

func TestBookingStatusIsActive(t *testing.T) {
	assert.True(t, BookingPending.IsActive())
	assert.True(t, BookingConfirmed.IsActive())
	assert.False(t, BookingCancelled.IsActive())
	assert.False(t, BookingCompleted.IsActive())
}

func TestBookingStatusTransitions(t *testing.T) {
	cases := []struct {
		from, to BookingStatus
		ok       bool
	}{
		{BookingPending, BookingConfirmed, true},
		{BookingPending, BookingCancelled, true},
		{BookingPending, BookingCompleted, false},
		{BookingConfirmed, BookingCompleted, true},
		{BookingConfirmed, BookingCancelled, true},
		{BookingConfirmed, BookingPending, false},
		{BookingCancelled, BookingPending, false},
		{BookingCancelled, BookingCancelled, false},
		{BookingCompleted, BookingCancelled, false},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.ok, tc.from.CanTransitionTo(tc.to), "%s -> %s", tc.from, tc.to)
	}
}

func TestPaymentStatusIsValid(t *testing.T) {
	for _, s := range []PaymentStatus{PaymentPending, PaymentPaid, PaymentFailed} {
		assert.True(t, s.IsValid(), "%s should be valid", s)
	}
	assert.False(t, PaymentStatus("refunded").IsValid())
}
