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

const FacilitiesColName = "facilities"

func (mdb *MongodbRepo) CreateFacility(ctx context.Context, facility *Facility) (*Facility, error) {
	col, err := mdb.GetCollection(ctx, DbName, FacilitiesColName)
	if err != nil {
		return nil, fmt.Errorf("error getting collection: %v", err)
	}

	if facility.ID.IsZero() {
		facility.ID = primitive.NewObjectID()
	}
	facility.CreatedAt = time.Now()

	if _, err := col.InsertOne(ctx, facility); err != nil {
		return nil, fmt.Errorf("error inserting facility: %v", err)
	}

	return facility, nil
}

func (mdb *MongodbRepo) GetFacilityByID(ctx context.Context, id primitive.ObjectID) (*Facility, error) {
	col, err := mdb.GetCollection(ctx, DbName, FacilitiesColName)
	if err != nil {
		return nil, fmt.Errorf("error getting collection: %v", err)
	}

	var facility Facility
	if err := col.FindOne(ctx, bson.M{"_id": id}).Decode(&facility); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, fmt.Errorf("facility %s: %w", id.Hex(), ErrNotFound)
		}
		return nil, fmt.Errorf("error finding facility: %v", err)
	}

	return &facility, nil
}

func (mdb *MongodbRepo) ListFacilities(ctx context.Context) ([]*Facility, error) {
	col, err := mdb.GetCollection(ctx, DbName, FacilitiesColName)
	if err != nil {
		return nil, fmt.Errorf("error getting collection: %v", err)
	}

	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})
	cursor, err := col.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, fmt.Errorf("error finding facilities: %v", err)
	}
	defer cursor.Close(ctx)

	var facilities []*Facility
	for cursor.Next(ctx) {
		var f Facility
		if err := cursor.Decode(&f); err != nil {
			return nil, fmt.Errorf("error decoding facility: %v", err)
		}
		facilities = append(facilities, &f)
	}

	if err := cursor.Err(); err != nil {
		return nil, fmt.Errorf("cursor error: %v", err)
	}

	return facilities, nil
}

func (mdb *MongodbRepo) UpdateFacility(ctx context.Context, id primitive.ObjectID, update map[string]interface{}) (*Facility, error) {
	col, err := mdb.GetCollection(ctx, DbName, FacilitiesColName)
	if err != nil {
		return nil, fmt.Errorf("error getting collection: %v", err)
	}

	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var updated Facility
	err = col.FindOneAndUpdate(ctx, bson.M{"_id": id}, bson.M{"$set": update}, opts).Decode(&updated)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, fmt.Errorf("facility %s: %w", id.Hex(), ErrNotFound)
		}
		return nil, fmt.Errorf("error updating facility: %v", err)
	}

	return &updated, nil
}

func (mdb *MongodbRepo) DeleteFacility(ctx context.Context, id primitive.ObjectID) error {
	col, err := mdb.GetCollection(ctx, DbName, FacilitiesColName)
	if err != nil {
		return fmt.Errorf("error getting collection: %v", err)
	}

	res, err := col.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return fmt.Errorf("error deleting facility: %v", err)
	}
	if res.DeletedCount == 0 {
		return fmt.Errorf("facility %s: %w", id.Hex(), ErrNotFound)
	}

	return nil
}
