package routes

import (
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joshua-takyi/futsalhub/internal/container"
	"github.com/joshua-takyi/futsalhub/internal/handlers"
	"github.com/joshua-takyi/futsalhub/internal/middleware"
	"github.com/joshua-takyi/futsalhub/internal/models"
)

// SetupRoutes configures all routes with the dependency container
func SetupRoutes(c *container.Container) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)

	r := gin.New()
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"http://localhost:3000"},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS", "PATCH"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization", "X-Request-ID"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
	}))

	r.Use(middleware.RequestID())
	r.Use(middleware.StructuredLogger(c.Logger))
	r.Use(middleware.ErrorHandler(c.Logger))
	r.Use(gin.Recovery())

	authRequired := middleware.AuthMiddleware(c.UserService, c.JWTSecret, c.Logger)
	ownerOnly := middleware.RequireRole(models.RoleFutsalOwner)

	// API version 1
	v1 := r.Group("/api/v1")
	{
		v1.GET("/health", func(ctx *gin.Context) {
			ctx.JSON(200, gin.H{
				"status":  "OK",
				"service": "futsalhub-api",
			})
		})

		// public routes
		v1.POST("/auth/register", handlers.Register(c.UserService))
		v1.POST("/auth/login", handlers.Login(c.UserService))

		v1.GET("/facilities", handlers.ListFacilities(c.FacilityService))
		v1.GET("/facilities/:id", handlers.GetFacility(c.FacilityService))
		v1.GET("/kits", handlers.ListKits(c.KitService))
		v1.GET("/kits/facility/:id", handlers.ListKitsByFacility(c.KitService))
		v1.GET("/bookings/available-slots/:facilityId", handlers.GetAvailableSlots(c.BookingService))
	}

	facilityRoutes := v1.Group("/facilities")
	facilityRoutes.Use(authRequired, ownerOnly)
	{
		facilityRoutes.POST("", handlers.CreateFacility(c.FacilityService))
		facilityRoutes.PUT("/:id", handlers.UpdateFacility(c.FacilityService))
		facilityRoutes.DELETE("/:id", handlers.DeleteFacility(c.FacilityService))
	}

	kitRoutes := v1.Group("/kits")
	kitRoutes.Use(authRequired, ownerOnly)
	{
		kitRoutes.POST("", handlers.CreateKit(c.KitService))
		kitRoutes.PUT("/:id", handlers.UpdateKit(c.KitService))
		kitRoutes.DELETE("/:id", handlers.DeleteKit(c.KitService))
	}

	bookingRoutes := v1.Group("/bookings")
	bookingRoutes.Use(authRequired)
	{
		bookingRoutes.POST("", handlers.CreateBooking(c.BookingService))
		bookingRoutes.GET("/my-bookings", handlers.GetMyBookings(c.BookingService))
		bookingRoutes.GET("/facility/:facilityId", ownerOnly, handlers.GetFacilityBookings(c.BookingService))
		bookingRoutes.GET("/owner/:facilityId", ownerOnly, handlers.GetOwnerBookings(c.BookingService, c.KitBookingService))
		bookingRoutes.PATCH("/:bookingId/status", ownerOnly, handlers.UpdateBookingStatus(c.BookingService))
		bookingRoutes.PUT("/:bookingId/payment", ownerOnly, handlers.UpdatePaymentStatus(c.BookingService))
	}

	kitBookingRoutes := v1.Group("/kit-bookings")
	kitBookingRoutes.Use(authRequired)
	{
		kitBookingRoutes.POST("", handlers.CreateKitBooking(c.KitBookingService))
		kitBookingRoutes.GET("/user/:userId", handlers.GetUserKitBookings(c.KitBookingService))
		kitBookingRoutes.GET("/facility/:facilityId", ownerOnly, handlers.GetFacilityKitBookings(c.KitBookingService))
		kitBookingRoutes.PUT("/:id/status", ownerOnly, handlers.UpdateKitBookingStatus(c.KitBookingService))
	}

	return r
}
