package connect

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/joshua-takyi/futsalhub/internal/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

var MongoDBClient *mongo.Client

func MongoDBConnect() (*mongo.Client, error) {
	uri := os.Getenv("MONGODB_URI")
	password := os.Getenv("MONGODB_PASSWORD")
	fullUri := strings.Replace(uri, "<password>", password, 1)

	ctx, cancel := context.WithTimeout(context.Background(), time.Second*10)
	defer cancel()

	clientOptions := options.Client().ApplyURI(fullUri)

	var err error
	MongoDBClient, err = mongo.Connect(ctx, clientOptions)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to MongoDB: %v", err)
	}

	if err := MongoDBClient.Ping(ctx, nil); err != nil {
		return nil, fmt.Errorf("failed to ping MongoDB: %v", err)
	}

	return MongoDBClient, nil
}

func MongoDBDisconnect() error {
	if MongoDBClient == nil {
		return nil
	}
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	err := MongoDBClient.Disconnect(ctx)
	if err != nil {
		return fmt.Errorf("failed to disconnect MongoDB: %v", err)
	}
	MongoDBClient = nil
	return nil
}

// EnsureIndexes creates the indexes the booking subsystem relies on:
//   - {futsal, date} compound index for slot and overlap queries;
//   - a partial unique index over (futsal, date, start_time) restricted to
//     active statuses, the storage-level reserve-if-free guard that closes
//     the check-then-act window on admission;
//   - a unique email index on users.
//
// Requires MongoDB 6.0+ for $in inside partialFilterExpression.
func EnsureIndexes(ctx context.Context, client *mongo.Client) error {
	bookings := client.Database(models.DbName).Collection(models.BookingsColName)
	_, err := bookings.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{
			Keys: bson.D{{Key: "futsal", Value: 1}, {Key: "date", Value: 1}},
		},
		{
			Keys: bson.D{
				{Key: "futsal", Value: 1},
				{Key: "date", Value: 1},
				{Key: "start_time", Value: 1},
			},
			Options: options.Index().
				SetUnique(true).
				SetPartialFilterExpression(bson.M{
					"status": bson.M{"$in": bson.A{models.BookingPending, models.BookingConfirmed}},
				}),
		},
	})
	if err != nil {
		return fmt.Errorf("failed to create booking indexes: %v", err)
	}

	users := client.Database(models.DbName).Collection(models.UsersColName)
	_, err = users.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "email", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	if err != nil {
		return fmt.Errorf("failed to create user indexes: %v", err)
	}

	return nil
}
