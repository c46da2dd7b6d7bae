package models

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type KitType string

const (
	KitTypeJersey      KitType = "Jersey"
	KitTypeShorts      KitType = "Shorts"
	KitTypeShoes       KitType = "Shoes"
	KitTypeSocks       KitType = "Socks"
	KitTypeAccessories KitType = "Accessories"
)

// Kit is a rentable equipment item tied to a facility. The stored quantity
// is the live on-hand count and must never go negative; all mutations go
// through the conditional decrement/restore operations below.
type Kit struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Name        string             `bson:"name" json:"name" validate:"required"`
	Description string             `bson:"description,omitempty" json:"description,omitempty"`
	Price       float64            `bson:"price" json:"price" validate:"required,gt=0"`
	Size        string             `bson:"size" json:"size" validate:"required"`
	Quantity    int                `bson:"quantity" json:"quantity" validate:"gte=0"`
	Type        KitType            `bson:"type" json:"type" validate:"required,oneof=Jersey Shorts Shoes Socks Accessories"`
	Facility    primitive.ObjectID `bson:"futsal" json:"facility"`
	IsAvailable bool               `bson:"is_available" json:"isAvailable"`
	Images      []string           `bson:"images" json:"images"`
	CreatedAt   time.Time          `bson:"created_at" json:"created_at"`
}

type KitRepo interface {
	CreateKit(ctx context.Context, kit *Kit) (*Kit, error)
	GetKitByID(ctx context.Context, id primitive.ObjectID) (*Kit, error)
	GetKitsByIDs(ctx context.Context, ids []primitive.ObjectID) ([]*Kit, error)
	ListKits(ctx context.Context) ([]*Kit, error)
	ListKitsByFacility(ctx context.Context, facilityID primitive.ObjectID) ([]*Kit, error)
	UpdateKit(ctx context.Context, id primitive.ObjectID, update map[string]interface{}) (*Kit, error)
	DeleteKit(ctx context.Context, id primitive.ObjectID) error
	DecrementKitQuantity(ctx context.Context, id primitive.ObjectID, n int) error
	RestoreKitQuantity(ctx context.Context, id primitive.ObjectID, n int) error
}
