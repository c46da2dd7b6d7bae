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

const KitsColName = "kits"

func (mdb *MongodbRepo) CreateKit(ctx context.Context, kit *Kit) (*Kit, error) {
	col, err := mdb.GetCollection(ctx, DbName, KitsColName)
	if err != nil {
		return nil, fmt.Errorf("error getting collection: %v", err)
	}

	if kit.ID.IsZero() {
		kit.ID = primitive.NewObjectID()
	}
	kit.CreatedAt = time.Now()

	if _, err := col.InsertOne(ctx, kit); err != nil {
		return nil, fmt.Errorf("error inserting kit: %v", err)
	}

	return kit, nil
}

func (mdb *MongodbRepo) GetKitByID(ctx context.Context, id primitive.ObjectID) (*Kit, error) {
	col, err := mdb.GetCollection(ctx, DbName, KitsColName)
	if err != nil {
		return nil, fmt.Errorf("error getting collection: %v", err)
	}

	var kit Kit
	if err := col.FindOne(ctx, bson.M{"_id": id}).Decode(&kit); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, fmt.Errorf("kit %s: %w", id.Hex(), ErrNotFound)
		}
		return nil, fmt.Errorf("error finding kit: %v", err)
	}

	return &kit, nil
}

func (mdb *MongodbRepo) GetKitsByIDs(ctx context.Context, ids []primitive.ObjectID) ([]*Kit, error) {
	col, err := mdb.GetCollection(ctx, DbName, KitsColName)
	if err != nil {
		return nil, fmt.Errorf("error getting collection: %v", err)
	}

	cursor, err := col.Find(ctx, bson.M{"_id": bson.M{"$in": ids}})
	if err != nil {
		return nil, fmt.Errorf("error finding kits: %v", err)
	}
	defer cursor.Close(ctx)

	var kits []*Kit
	for cursor.Next(ctx) {
		var k Kit
		if err := cursor.Decode(&k); err != nil {
			return nil, fmt.Errorf("error decoding kit: %v", err)
		}
		kits = append(kits, &k)
	}

	if err := cursor.Err(); err != nil {
		return nil, fmt.Errorf("cursor error: %v", err)
	}

	return kits, nil
}

func (mdb *MongodbRepo) ListKits(ctx context.Context) ([]*Kit, error) {
	return mdb.findKits(ctx, bson.M{})
}

func (mdb *MongodbRepo) ListKitsByFacility(ctx context.Context, facilityID primitive.ObjectID) ([]*Kit, error) {
	return mdb.findKits(ctx, bson.M{"futsal": facilityID})
}

func (mdb *MongodbRepo) findKits(ctx context.Context, filter bson.M) ([]*Kit, error) {
	col, err := mdb.GetCollection(ctx, DbName, KitsColName)
	if err != nil {
		return nil, fmt.Errorf("error getting collection: %v", err)
	}

	cursor, err := col.Find(ctx, filter, options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}}))
	if err != nil {
		return nil, fmt.Errorf("error finding kits: %v", err)
	}
	defer cursor.Close(ctx)

	var kits []*Kit
	for cursor.Next(ctx) {
		var k Kit
		if err := cursor.Decode(&k); err != nil {
			return nil, fmt.Errorf("error decoding kit: %v", err)
		}
		kits = append(kits, &k)
	}

	if err := cursor.Err(); err != nil {
		return nil, fmt.Errorf("cursor error: %v", err)
	}

	return kits, nil
}

func (mdb *MongodbRepo) UpdateKit(ctx context.Context, id primitive.ObjectID, update map[string]interface{}) (*Kit, error) {
	col, err := mdb.GetCollection(ctx, DbName, KitsColName)
	if err != nil {
		return nil, fmt.Errorf("error getting collection: %v", err)
	}

	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var updated Kit
	err = col.FindOneAndUpdate(ctx, bson.M{"_id": id}, bson.M{"$set": update}, opts).Decode(&updated)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, fmt.Errorf("kit %s: %w", id.Hex(), ErrNotFound)
		}
		return nil, fmt.Errorf("error updating kit: %v", err)
	}

	return &updated, nil
}

func (mdb *MongodbRepo) DeleteKit(ctx context.Context, id primitive.ObjectID) error {
	col, err := mdb.GetCollection(ctx, DbName, KitsColName)
	if err != nil {
		return fmt.Errorf("error getting collection: %v", err)
	}

	res, err := col.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return fmt.Errorf("error deleting kit: %v", err)
	}
	if res.DeletedCount == 0 {
		return fmt.Errorf("kit %s: %w", id.Hex(), ErrNotFound)
	}

	return nil
}

// DecrementKitQuantity takes n units out of stock. The quantity guard is part
// of the filter so the decrement is a single conditional write; a concurrent
// rental cannot drive the count negative.
func (mdb *MongodbRepo) DecrementKitQuantity(ctx context.Context, id primitive.ObjectID, n int) error {
	if n <= 0 {
		return fmt.Errorf("decrement must be positive: %w", ErrValidation)
	}

	col, err := mdb.GetCollection(ctx, DbName, KitsColName)
	if err != nil {
		return fmt.Errorf("error getting collection: %v", err)
	}

	filter := bson.M{"_id": id, "quantity": bson.M{"$gte": n}}
	res, err := col.UpdateOne(ctx, filter, bson.M{"$inc": bson.M{"quantity": -n}})
	if err != nil {
		return fmt.Errorf("error decrementing kit quantity: %v", err)
	}
	if res.MatchedCount == 0 {
		return fmt.Errorf("insufficient quantity for kit %s: %w", id.Hex(), ErrConflict)
	}

	return nil
}

// RestoreKitQuantity puts n units back, the compensating inverse of
// DecrementKitQuantity.
func (mdb *MongodbRepo) RestoreKitQuantity(ctx context.Context, id primitive.ObjectID, n int) error {
	if n <= 0 {
		return fmt.Errorf("restore must be positive: %w", ErrValidation)
	}

	col, err := mdb.GetCollection(ctx, DbName, KitsColName)
	if err != nil {
		return fmt.Errorf("error getting collection: %v", err)
	}

	res, err := col.UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$inc": bson.M{"quantity": n}})
	if err != nil {
		return fmt.Errorf("error restoring kit quantity: %v", err)
	}
	if res.MatchedCount == 0 {
		return fmt.Errorf("kit %s: %w", id.Hex(), ErrNotFound)
	}

	return nil
}
