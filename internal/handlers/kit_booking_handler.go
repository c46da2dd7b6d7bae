package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/joshua-takyi/futsalhub/internal/models"
	"github.com/joshua-takyi/futsalhub/internal/services"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type createKitBookingRequest struct {
	Facility   string                    `json:"futsal" binding:"required"`
	Booking    string                    `json:"booking" binding:"required"`
	KitRentals []bookingKitRentalRequest `json:"kitRentals" binding:"required,min=1,dive"`
}

func CreateKitBooking(kbs *services.KitBookingService) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := currentUserID(c)
		if !ok {
			return
		}

		var req createKitBookingRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, models.ErrorResponse(err.Error()))
			return
		}

		facilityID, err := primitive.ObjectIDFromHex(req.Facility)
		if err != nil {
			c.JSON(http.StatusBadRequest, models.ErrorResponse("invalid futsal or booking ID"))
			return
		}
		bookingID, err := primitive.ObjectIDFromHex(req.Booking)
		if err != nil {
			c.JSON(http.StatusBadRequest, models.ErrorResponse("invalid futsal or booking ID"))
			return
		}

		rentals := make([]services.KitRentalRequest, 0, len(req.KitRentals))
		for _, r := range req.KitRentals {
			kitID, err := primitive.ObjectIDFromHex(r.Kit)
			if err != nil {
				c.JSON(http.StatusBadRequest, models.ErrorResponse("invalid kit ID"))
				return
			}
			rentals = append(rentals, services.KitRentalRequest{Kit: kitID, Quantity: r.Quantity})
		}

		kb, err := kbs.CreateKitBooking(c.Request.Context(), userID, services.CreateKitBookingInput{
			Facility:   facilityID,
			Booking:    bookingID,
			KitRentals: rentals,
		})
		if err != nil {
			respondError(c, err)
			return
		}

		c.JSON(http.StatusCreated, kb)
	}
}

func GetUserKitBookings(kbs *services.KitBookingService) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := parseObjectID(c, c.Param("userId"))
		if !ok {
			return
		}

		kitBookings, err := kbs.ListUserKitBookings(c.Request.Context(), userID)
		if err != nil {
			respondError(c, err)
			return
		}

		c.JSON(http.StatusOK, models.SuccessResponse(kitBookings, ""))
	}
}

func GetFacilityKitBookings(kbs *services.KitBookingService) gin.HandlerFunc {
	return func(c *gin.Context) {
		facilityID, ok := parseObjectID(c, c.Param("facilityId"))
		if !ok {
			return
		}

		kitBookings, err := kbs.ListFacilityKitBookings(c.Request.Context(), facilityID)
		if err != nil {
			respondError(c, err)
			return
		}

		c.JSON(http.StatusOK, models.SuccessResponse(kitBookings, ""))
	}
}

func UpdateKitBookingStatus(kbs *services.KitBookingService) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := parseObjectID(c, c.Param("id"))
		if !ok {
			return
		}

		var req statusUpdateRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, models.ErrorResponse(err.Error()))
			return
		}

		kb, err := kbs.UpdateKitBookingStatus(c.Request.Context(), id, models.BookingStatus(req.Status))
		if err != nil {
			respondError(c, err)
			return
		}

		c.JSON(http.StatusOK, kb)
	}
}
