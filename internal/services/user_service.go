package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/joshua-takyi/futsalhub/internal/helpers"
	"github.com/joshua-takyi/futsalhub/internal/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"golang.org/x/crypto/bcrypt"
)

const tokenTTL = 24 * time.Hour

type UserService struct {
	userRepo  models.UserRepo
	jwtSecret string
}

func NewUserService(userRepo models.UserRepo, jwtSecret string) *UserService {
	return &UserService{
		userRepo:  userRepo,
		jwtSecret: jwtSecret,
	}
}

func (us *UserService) Register(ctx context.Context, user *models.User) (*models.User, string, error) {
	if user.Role == "" {
		user.Role = models.RoleUser
	}
	if err := models.Validate.Struct(user); err != nil {
		return nil, "", fmt.Errorf("invalid user data: %v: %w", err, models.ErrValidation)
	}
	if len(user.Password) < 8 {
		return nil, "", fmt.Errorf("password must be at least 8 characters: %w", models.ErrValidation)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(user.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, "", fmt.Errorf("failed to hash password: %v", err)
	}
	user.Password = string(hash)

	created, err := us.userRepo.CreateUser(ctx, user)
	if err != nil {
		return nil, "", err
	}

	token, err := helpers.GenerateToken(created.ID.Hex(), created.Role, us.jwtSecret, tokenTTL)
	if err != nil {
		return nil, "", fmt.Errorf("failed to issue token: %v", err)
	}

	return created, token, nil
}

func (us *UserService) Login(ctx context.Context, email, password string) (*models.User, string, error) {
	user, err := us.userRepo.GetUserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, models.ErrNotFound) {
			return nil, "", fmt.Errorf("invalid email or password: %w", models.ErrValidation)
		}
		return nil, "", err
	}

	if bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)) != nil {
		return nil, "", fmt.Errorf("invalid email or password: %w", models.ErrValidation)
	}

	token, err := helpers.GenerateToken(user.ID.Hex(), user.Role, us.jwtSecret, tokenTTL)
	if err != nil {
		return nil, "", fmt.Errorf("failed to issue token: %v", err)
	}

	return user, token, nil
}

func (us *UserService) GetUser(ctx context.Context, id primitive.ObjectID) (*models.User, error) {
	return us.userRepo.GetUserByID(ctx, id)
}
