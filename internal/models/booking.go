package models

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type BookingStatus string

const (
	BookingPending   BookingStatus = "pending"
	BookingConfirmed BookingStatus = "confirmed"
	BookingCancelled BookingStatus = "cancelled"
	BookingCompleted BookingStatus = "completed"
)

func (s BookingStatus) IsValid() bool {
	switch s {
	case BookingPending, BookingConfirmed, BookingCancelled, BookingCompleted:
		return true
	}
	return false
}

// IsActive reports whether the booking counts toward slot availability and
// overlap checks.
func (s BookingStatus) IsActive() bool {
	return s == BookingPending || s == BookingConfirmed
}

// allowedTransitions is the explicit status state machine. Cancelled and
// completed are terminal.
var allowedTransitions = map[BookingStatus][]BookingStatus{
	BookingPending:   {BookingConfirmed, BookingCancelled},
	BookingConfirmed: {BookingCompleted, BookingCancelled},
}

func (s BookingStatus) CanTransitionTo(next BookingStatus) bool {
	for _, allowed := range allowedTransitions[s] {
		if next == allowed {
			return true
		}
	}
	return false
}

type PaymentStatus string

const (
	PaymentPending PaymentStatus = "pending"
	PaymentPaid    PaymentStatus = "paid"
	PaymentFailed  PaymentStatus = "failed"
)

func (p PaymentStatus) IsValid() bool {
	switch p {
	case PaymentPending, PaymentPaid, PaymentFailed:
		return true
	}
	return false
}

// KitRentalLine is a priced rental snapshot embedded in a Booking. Price is
// the line total (unit price x quantity), frozen at booking time so later
// kit price changes do not alter historical bookings.
type KitRentalLine struct {
	Kit      primitive.ObjectID `bson:"kit" json:"kit"`
	Quantity int                `bson:"quantity" json:"quantity" validate:"required,gt=0"`
	Price    float64            `bson:"price" json:"price"`
}

// Booking reserves a court slot on a calendar day. Date is the day at
// midnight UTC; StartTime and EndTime are facility-local "HH:MM" strings.
// Bookings are never deleted, cancellation is a status change.
type Booking struct {
	ID            primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	User          primitive.ObjectID `bson:"user" json:"user"`
	Facility      primitive.ObjectID `bson:"futsal" json:"facility"`
	Date          time.Time          `bson:"date" json:"date"`
	StartTime     string             `bson:"start_time" json:"startTime"`
	EndTime       string             `bson:"end_time" json:"endTime"`
	TotalPrice    float64            `bson:"total_price" json:"totalPrice"`
	Status        BookingStatus      `bson:"status" json:"status"`
	PaymentStatus PaymentStatus      `bson:"payment_status" json:"paymentStatus"`
	KitRentals    []KitRentalLine    `bson:"kit_rentals,omitempty" json:"kitRentals,omitempty"`
	CreatedAt     time.Time          `bson:"created_at" json:"created_at"`
}

type BookingRepo interface {
	InsertBooking(ctx context.Context, booking *Booking) (*Booking, error)
	GetBookingByID(ctx context.Context, id primitive.ObjectID) (*Booking, error)
	FindActiveByFacilityDate(ctx context.Context, facilityID primitive.ObjectID, date time.Time) ([]*Booking, error)
	HasOverlap(ctx context.Context, facilityID primitive.ObjectID, date time.Time, startTime, endTime string) (bool, error)
	ListBookingsByUser(ctx context.Context, userID primitive.ObjectID) ([]*Booking, error)
	ListBookingsByFacility(ctx context.Context, facilityID primitive.ObjectID) ([]*Booking, error)
	SetBookingStatus(ctx context.Context, id primitive.ObjectID, status BookingStatus) (*Booking, error)
	SetPaymentStatus(ctx context.Context, id primitive.ObjectID, status PaymentStatus) (*Booking, error)
	VoidBooking(ctx context.Context, id primitive.ObjectID) error
	FindStalePending(ctx context.Context, cutoff time.Time) ([]*Booking, error)
	CancelIfPending(ctx context.Context, id primitive.ObjectID) (bool, error)
}
