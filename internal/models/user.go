package models

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

const (
	RoleUser        = "user"
	RoleFutsalOwner = "futsal_owner"
)

type User struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Name        string             `bson:"name" json:"name" validate:"required"`
	Email       string             `bson:"email" json:"email" validate:"required,email"`
	Password    string             `bson:"password" json:"-"`
	PhoneNumber string             `bson:"phone_number,omitempty" json:"phone_number,omitempty"`
	Role        string             `bson:"role" json:"role" validate:"required,oneof=user futsal_owner"`
	CreatedAt   time.Time          `bson:"created_at" json:"created_at"`
}

func (u *User) IsOwner() bool {
	return u.Role == RoleFutsalOwner
}

type UserRepo interface {
	CreateUser(ctx context.Context, user *User) (*User, error)
	GetUserByID(ctx context.Context, id primitive.ObjectID) (*User, error)
	GetUserByEmail(ctx context.Context, email string) (*User, error)
}
