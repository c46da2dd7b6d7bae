package models

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// KitRentalItem is a rental line in a KitBooking. Unlike the line snapshots
// embedded in a Booking, Price here is the unit price; TotalAmount on the
// parent is recomputed as the sum of price x quantity whenever the record
// is saved.
type KitRentalItem struct {
	Kit      primitive.ObjectID `bson:"kit" json:"kit"`
	Quantity int                `bson:"quantity" json:"quantity" validate:"required,gt=0"`
	Price    float64            `bson:"price" json:"price"`
}

// KitBooking is the secondary rental record some booking-creation paths use.
// Logically 1:1 with a Booking when kit rentals exist; looked up by booking
// reference for display-time merging.
type KitBooking struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	User        primitive.ObjectID `bson:"user" json:"user"`
	Facility    primitive.ObjectID `bson:"futsal" json:"facility"`
	Booking     primitive.ObjectID `bson:"booking" json:"booking"`
	KitRentals  []KitRentalItem    `bson:"kit_rentals" json:"kitRentals" validate:"required,min=1,dive"`
	TotalAmount float64            `bson:"total_amount" json:"totalAmount"`
	Status      BookingStatus      `bson:"status" json:"status"`
	CreatedAt   time.Time          `bson:"created_at" json:"created_at"`
}

// RecomputeTotal refreshes TotalAmount from the rental lines. Called before
// every save, mirroring the invariant that the total is always derived.
func (kb *KitBooking) RecomputeTotal() {
	var total float64
	for _, r := range kb.KitRentals {
		total += r.Price * float64(r.Quantity)
	}
	kb.TotalAmount = total
}

type KitBookingRepo interface {
	InsertKitBooking(ctx context.Context, kb *KitBooking) (*KitBooking, error)
	GetKitBookingByID(ctx context.Context, id primitive.ObjectID) (*KitBooking, error)
	ListKitBookingsByUser(ctx context.Context, userID primitive.ObjectID) ([]*KitBooking, error)
	ListKitBookingsByFacility(ctx context.Context, facilityID primitive.ObjectID) ([]*KitBooking, error)
	ListKitBookingsByBookingIDs(ctx context.Context, bookingIDs []primitive.ObjectID) ([]*KitBooking, error)
	SetKitBookingStatus(ctx context.Context, id primitive.ObjectID, status BookingStatus) (*KitBooking, error)
}
