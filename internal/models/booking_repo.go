package models

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const BookingsColName = "bookings"

var activeStatuses = bson.A{BookingPending, BookingConfirmed}

func (mdb *MongodbRepo) InsertBooking(ctx context.Context, booking *Booking) (*Booking, error) {
	col, err := mdb.GetCollection(ctx, DbName, BookingsColName)
	if err != nil {
		return nil, fmt.Errorf("error getting collection: %v", err)
	}

	if booking.ID.IsZero() {
		booking.ID = primitive.NewObjectID()
	}
	booking.CreatedAt = time.Now()

	if _, err := col.InsertOne(ctx, booking); err != nil {
		// The partial unique index over (futsal, date, start_time) for active
		// statuses rejects a concurrent insert that slipped past the overlap
		// read. Surface it as the same conflict the read check produces.
		if mongo.IsDuplicateKeyError(err) {
			return nil, fmt.Errorf("time slot already booked: %w", ErrConflict)
		}
		return nil, fmt.Errorf("error inserting booking: %v", err)
	}

	return booking, nil
}

func (mdb *MongodbRepo) GetBookingByID(ctx context.Context, id primitive.ObjectID) (*Booking, error) {
	col, err := mdb.GetCollection(ctx, DbName, BookingsColName)
	if err != nil {
		return nil, fmt.Errorf("error getting collection: %v", err)
	}

	var booking Booking
	if err := col.FindOne(ctx, bson.M{"_id": id}).Decode(&booking); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, fmt.Errorf("booking %s: %w", id.Hex(), ErrNotFound)
		}
		return nil, fmt.Errorf("error finding booking: %v", err)
	}

	return &booking, nil
}

// FindActiveByFacilityDate returns the pending/confirmed bookings for a
// facility on a calendar day. Backed by the {futsal, date} compound index.
func (mdb *MongodbRepo) FindActiveByFacilityDate(ctx context.Context, facilityID primitive.ObjectID, date time.Time) ([]*Booking, error) {
	filter := bson.M{
		"futsal": facilityID,
		"date":   date,
		"status": bson.M{"$in": activeStatuses},
	}
	return mdb.findBookings(ctx, filter, nil)
}

// HasOverlap reports whether any active booking for the facility/date has a
// true interval overlap with [startTime, endTime). Half-open semantics:
// adjacent bookings sharing a boundary do not overlap.
func (mdb *MongodbRepo) HasOverlap(ctx context.Context, facilityID primitive.ObjectID, date time.Time, startTime, endTime string) (bool, error) {
	col, err := mdb.GetCollection(ctx, DbName, BookingsColName)
	if err != nil {
		return false, fmt.Errorf("error getting collection: %v", err)
	}

	filter := bson.M{
		"futsal":     facilityID,
		"date":       date,
		"status":     bson.M{"$in": activeStatuses},
		"start_time": bson.M{"$lt": endTime},
		"end_time":   bson.M{"$gt": startTime},
	}

	err = col.FindOne(ctx, filter).Err()
	if err == nil {
		return true, nil
	}
	if errors.Is(err, mongo.ErrNoDocuments) {
		return false, nil
	}
	return false, fmt.Errorf("error checking slot overlap: %v", err)
}

func (mdb *MongodbRepo) ListBookingsByUser(ctx context.Context, userID primitive.ObjectID) ([]*Booking, error) {
	sort := bson.D{{Key: "date", Value: -1}, {Key: "start_time", Value: -1}}
	return mdb.findBookings(ctx, bson.M{"user": userID}, sort)
}

func (mdb *MongodbRepo) ListBookingsByFacility(ctx context.Context, facilityID primitive.ObjectID) ([]*Booking, error) {
	sort := bson.D{{Key: "date", Value: -1}, {Key: "start_time", Value: -1}}
	return mdb.findBookings(ctx, bson.M{"futsal": facilityID}, sort)
}

func (mdb *MongodbRepo) findBookings(ctx context.Context, filter bson.M, sort bson.D) ([]*Booking, error) {
	col, err := mdb.GetCollection(ctx, DbName, BookingsColName)
	if err != nil {
		return nil, fmt.Errorf("error getting collection: %v", err)
	}

	opts := options.Find()
	if sort != nil {
		opts.SetSort(sort)
	}

	cursor, err := col.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("error finding bookings: %v", err)
	}
	defer cursor.Close(ctx)

	var bookings []*Booking
	for cursor.Next(ctx) {
		var b Booking
		if err := cursor.Decode(&b); err != nil {
			return nil, fmt.Errorf("error decoding booking: %v", err)
		}
		bookings = append(bookings, &b)
	}

	if err := cursor.Err(); err != nil {
		return nil, fmt.Errorf("cursor error: %v", err)
	}

	return bookings, nil
}

func (mdb *MongodbRepo) SetBookingStatus(ctx context.Context, id primitive.ObjectID, status BookingStatus) (*Booking, error) {
	return mdb.updateBooking(ctx, id, bson.M{"status": status})
}

func (mdb *MongodbRepo) SetPaymentStatus(ctx context.Context, id primitive.ObjectID, status PaymentStatus) (*Booking, error) {
	return mdb.updateBooking(ctx, id, bson.M{"payment_status": status})
}

func (mdb *MongodbRepo) updateBooking(ctx context.Context, id primitive.ObjectID, set bson.M) (*Booking, error) {
	col, err := mdb.GetCollection(ctx, DbName, BookingsColName)
	if err != nil {
		return nil, fmt.Errorf("error getting collection: %v", err)
	}

	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var updated Booking
	err = col.FindOneAndUpdate(ctx, bson.M{"_id": id}, bson.M{"$set": set}, opts).Decode(&updated)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, fmt.Errorf("booking %s: %w", id.Hex(), ErrNotFound)
		}
		return nil, fmt.Errorf("error updating booking: %v", err)
	}

	return &updated, nil
}

// VoidBooking cancels a never-admitted booking and drops its rental lines.
// A voided booking holds no inventory, so no later cancellation path may
// restore from it.
func (mdb *MongodbRepo) VoidBooking(ctx context.Context, id primitive.ObjectID) error {
	_, err := mdb.updateBooking(ctx, id, bson.M{
		"status":      BookingCancelled,
		"kit_rentals": bson.A{},
	})
	return err
}

// FindStalePending returns the pending bookings dated before the cutoff.
// The sweep cancels them one by one so each booking's rental lines can be
// restored to kit stock.
func (mdb *MongodbRepo) FindStalePending(ctx context.Context, cutoff time.Time) ([]*Booking, error) {
	filter := bson.M{
		"date":   bson.M{"$lt": cutoff},
		"status": BookingPending,
	}
	return mdb.findBookings(ctx, filter, nil)
}

// CancelIfPending flips a booking to cancelled only if it is still pending,
// reporting whether this call did the flip. The conditional filter makes the
// sweep safe against a concurrent confirm or a second sweep run.
func (mdb *MongodbRepo) CancelIfPending(ctx context.Context, id primitive.ObjectID) (bool, error) {
	col, err := mdb.GetCollection(ctx, DbName, BookingsColName)
	if err != nil {
		return false, fmt.Errorf("error getting collection: %v", err)
	}

	filter := bson.M{"_id": id, "status": BookingPending}
	res, err := col.UpdateOne(ctx, filter, bson.M{"$set": bson.M{"status": BookingCancelled}})
	if err != nil {
		return false, fmt.Errorf("error cancelling stale booking: %v", err)
	}

	return res.ModifiedCount > 0, nil
}
