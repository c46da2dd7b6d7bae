package container

import (
	"log/slog"

	"github.com/joshua-takyi/futsalhub/internal/models"
	"github.com/joshua-takyi/futsalhub/internal/services"
	"go.mongodb.org/mongo-driver/mongo"
)

// Container holds all application dependencies
type Container struct {
	Logger        *slog.Logger
	MongoDBClient *mongo.Client
	JWTSecret     string

	UserService       *services.UserService
	FacilityService   *services.FacilityService
	KitService        *services.KitService
	BookingService    *services.BookingService
	KitBookingService *services.KitBookingService
}

// NewContainer creates a new dependency injection container
func NewContainer(logger *slog.Logger, mongoDBClient *mongo.Client, jwtSecret string) *Container {
	repo := models.MongodbNewRepo(mongoDBClient)

	userService := services.NewUserService(repo, jwtSecret)
	facilityService := services.NewFacilityService(repo)
	kitService := services.NewKitService(repo, repo)
	bookingService := services.NewBookingService(repo, repo, repo, logger)
	kitBookingService := services.NewKitBookingService(repo, repo, logger)

	return &Container{
		Logger:            logger,
		MongoDBClient:     mongoDBClient,
		JWTSecret:         jwtSecret,
		UserService:       userService,
		FacilityService:   facilityService,
		KitService:        kitService,
		BookingService:    bookingService,
		KitBookingService: kitBookingService,
	}
}
