package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joshua-takyi/futsalhub/internal/models"
	"github.com/joshua-takyi/futsalhub/internal/services"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

const dateLayout = "2006-01-02"

type createBookingRequest struct {
	Facility   string                    `json:"futsal" binding:"required"`
	Date       string                    `json:"date" binding:"required"`
	StartTime  string                    `json:"startTime" binding:"required"`
	EndTime    string                    `json:"endTime" binding:"required"`
	KitRentals []bookingKitRentalRequest `json:"kitRentals"`
}

type bookingKitRentalRequest struct {
	Kit      string `json:"kit" binding:"required"`
	Quantity int    `json:"quantity" binding:"required,gt=0"`
}

type statusUpdateRequest struct {
	Status string `json:"status" binding:"required"`
}

type paymentUpdateRequest struct {
	PaymentStatus string `json:"paymentStatus" binding:"required"`
}

// parseBookingDate normalizes a YYYY-MM-DD query value to midnight UTC, the
// canonical stored form for booking dates.
func parseBookingDate(raw string) (time.Time, error) {
	return time.Parse(dateLayout, raw)
}

func GetAvailableSlots(bs *services.BookingService) gin.HandlerFunc {
	return func(c *gin.Context) {
		facilityID, ok := parseObjectID(c, c.Param("facilityId"))
		if !ok {
			return
		}

		rawDate := c.Query("date")
		if rawDate == "" {
			c.JSON(http.StatusBadRequest, models.ErrorResponse("Date is required"))
			return
		}
		date, err := parseBookingDate(rawDate)
		if err != nil {
			c.JSON(http.StatusBadRequest, models.ErrorResponse("Invalid date, expected YYYY-MM-DD"))
			return
		}

		slots, err := bs.AvailableSlots(c.Request.Context(), facilityID, date)
		if err != nil {
			respondError(c, err)
			return
		}

		c.JSON(http.StatusOK, gin.H{"slots": slots})
	}
}

func CreateBooking(bs *services.BookingService) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := currentUserID(c)
		if !ok {
			return
		}

		var req createBookingRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, models.ErrorResponse(err.Error()))
			return
		}

		facilityID, err := primitive.ObjectIDFromHex(req.Facility)
		if err != nil {
			c.JSON(http.StatusBadRequest, models.ErrorResponse("invalid facility ID"))
			return
		}
		date, err := parseBookingDate(req.Date)
		if err != nil {
			c.JSON(http.StatusBadRequest, models.ErrorResponse("Invalid date, expected YYYY-MM-DD"))
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

		booking, err := bs.CreateBooking(c.Request.Context(), userID, services.CreateBookingInput{
			Facility:   facilityID,
			Date:       date,
			StartTime:  req.StartTime,
			EndTime:    req.EndTime,
			KitRentals: rentals,
		})
		if err != nil {
			respondError(c, err)
			return
		}

		c.JSON(http.StatusCreated, booking)
	}
}

func GetMyBookings(bs *services.BookingService) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := currentUserID(c)
		if !ok {
			return
		}

		bookings, err := bs.ListUserBookings(c.Request.Context(), userID)
		if err != nil {
			respondError(c, err)
			return
		}

		c.JSON(http.StatusOK, models.SuccessResponse(bookings, ""))
	}
}

func GetFacilityBookings(bs *services.BookingService) gin.HandlerFunc {
	return func(c *gin.Context) {
		facilityID, ok := parseObjectID(c, c.Param("facilityId"))
		if !ok {
			return
		}

		bookings, err := bs.ListFacilityBookings(c.Request.Context(), facilityID)
		if err != nil {
			respondError(c, err)
			return
		}

		c.JSON(http.StatusOK, models.SuccessResponse(bookings, ""))
	}
}

// GetOwnerBookings lists a facility's bookings with kit-booking rentals
// merged in for the owner dashboard.
func GetOwnerBookings(bs *services.BookingService, kbs *services.KitBookingService) gin.HandlerFunc {
	return func(c *gin.Context) {
		facilityID, ok := parseObjectID(c, c.Param("facilityId"))
		if !ok {
			return
		}

		bookings, err := bs.ListFacilityBookings(c.Request.Context(), facilityID)
		if err != nil {
			respondError(c, err)
			return
		}

		merged, err := kbs.MergeKitRentals(c.Request.Context(), bookings)
		if err != nil {
			respondError(c, err)
			return
		}

		c.JSON(http.StatusOK, models.SuccessResponse(merged, ""))
	}
}

func UpdateBookingStatus(bs *services.BookingService) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := currentUserID(c)
		if !ok {
			return
		}
		bookingID, ok := parseObjectID(c, c.Param("bookingId"))
		if !ok {
			return
		}

		var req statusUpdateRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, models.ErrorResponse(err.Error()))
			return
		}

		booking, err := bs.UpdateBookingStatus(c.Request.Context(), bookingID, models.BookingStatus(req.Status), userID)
		if err != nil {
			respondError(c, err)
			return
		}

		c.JSON(http.StatusOK, booking)
	}
}

func UpdatePaymentStatus(bs *services.BookingService) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := currentUserID(c)
		if !ok {
			return
		}
		bookingID, ok := parseObjectID(c, c.Param("bookingId"))
		if !ok {
			return
		}

		var req paymentUpdateRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, models.ErrorResponse(err.Error()))
			return
		}

		booking, err := bs.UpdatePaymentStatus(c.Request.Context(), bookingID, models.PaymentStatus(req.PaymentStatus), userID)
		if err != nil {
			respondError(c, err)
			return
		}

		c.JSON(http.StatusOK, booking)
	}
}
