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

const KitBookingsColName = "kit_bookings"

func (mdb *MongodbRepo) InsertKitBooking(ctx context.Context, kb *KitBooking) (*KitBooking, error) {
	col, err := mdb.GetCollection(ctx, DbName, KitBookingsColName)
	if err != nil {
		return nil, fmt.Errorf("error getting collection: %v", err)
	}

	if kb.ID.IsZero() {
		kb.ID = primitive.NewObjectID()
	}
	kb.CreatedAt = time.Now()
	kb.RecomputeTotal()

	if _, err := col.InsertOne(ctx, kb); err != nil {
		return nil, fmt.Errorf("error inserting kit booking: %v", err)
	}

	return kb, nil
}

func (mdb *MongodbRepo) GetKitBookingByID(ctx context.Context, id primitive.ObjectID) (*KitBooking, error) {
	col, err := mdb.GetCollection(ctx, DbName, KitBookingsColName)
	if err != nil {
		return nil, fmt.Errorf("error getting collection: %v", err)
	}

	var kb KitBooking
	if err := col.FindOne(ctx, bson.M{"_id": id}).Decode(&kb); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, fmt.Errorf("kit booking %s: %w", id.Hex(), ErrNotFound)
		}
		return nil, fmt.Errorf("error finding kit booking: %v", err)
	}

	return &kb, nil
}

func (mdb *MongodbRepo) ListKitBookingsByUser(ctx context.Context, userID primitive.ObjectID) ([]*KitBooking, error) {
	return mdb.findKitBookings(ctx, bson.M{"user": userID})
}

func (mdb *MongodbRepo) ListKitBookingsByFacility(ctx context.Context, facilityID primitive.ObjectID) ([]*KitBooking, error) {
	return mdb.findKitBookings(ctx, bson.M{"futsal": facilityID})
}

func (mdb *MongodbRepo) ListKitBookingsByBookingIDs(ctx context.Context, bookingIDs []primitive.ObjectID) ([]*KitBooking, error) {
	return mdb.findKitBookings(ctx, bson.M{"booking": bson.M{"$in": bookingIDs}})
}

func (mdb *MongodbRepo) findKitBookings(ctx context.Context, filter bson.M) ([]*KitBooking, error) {
	col, err := mdb.GetCollection(ctx, DbName, KitBookingsColName)
	if err != nil {
		return nil, fmt.Errorf("error getting collection: %v", err)
	}

	cursor, err := col.Find(ctx, filter, options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}}))
	if err != nil {
		return nil, fmt.Errorf("error finding kit bookings: %v", err)
	}
	defer cursor.Close(ctx)

	var kitBookings []*KitBooking
	for cursor.Next(ctx) {
		var kb KitBooking
		if err := cursor.Decode(&kb); err != nil {
			return nil, fmt.Errorf("error decoding kit booking: %v", err)
		}
		kitBookings = append(kitBookings, &kb)
	}

	if err := cursor.Err(); err != nil {
		return nil, fmt.Errorf("cursor error: %v", err)
	}

	return kitBookings, nil
}

func (mdb *MongodbRepo) SetKitBookingStatus(ctx context.Context, id primitive.ObjectID, status BookingStatus) (*KitBooking, error) {
	col, err := mdb.GetCollection(ctx, DbName, KitBookingsColName)
	if err != nil {
		return nil, fmt.Errorf("error getting collection: %v", err)
	}

	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var updated KitBooking
	err = col.FindOneAndUpdate(ctx, bson.M{"_id": id}, bson.M{"$set": bson.M{"status": status}}, opts).Decode(&updated)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, fmt.Errorf("kit booking %s: %w", id.Hex(), ErrNotFound)
		}
		return nil, fmt.Errorf("error updating kit booking: %v", err)
	}

	return &updated, nil
}
