package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/joshua-takyi/futsalhub/internal/helpers"
	"github.com/joshua-takyi/futsalhub/internal/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// currentClaims pulls the authenticated user's claims set by AuthMiddleware.
func currentClaims(c *gin.Context) (*helpers.EnhancedClaims, bool) {
	user, exists := c.Get("user")
	if !exists {
		c.JSON(http.StatusUnauthorized, models.ErrorResponse("unauthorized"))
		return nil, false
	}
	claims, ok := user.(*helpers.EnhancedClaims)
	if !ok {
		c.JSON(http.StatusInternalServerError, models.ErrorResponse("invalid user claims"))
		return nil, false
	}
	return claims, true
}

// currentUserID parses the authenticated user's document ID.
func currentUserID(c *gin.Context) (primitive.ObjectID, bool) {
	claims, ok := currentClaims(c)
	if !ok {
		return primitive.NilObjectID, false
	}
	id, err := primitive.ObjectIDFromHex(claims.UserID)
	if err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse("invalid user ID in token"))
		return primitive.NilObjectID, false
	}
	return id, true
}

func parseObjectID(c *gin.Context, raw string) (primitive.ObjectID, bool) {
	id, err := primitive.ObjectIDFromHex(raw)
	if err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse("invalid ID"))
		return primitive.NilObjectID, false
	}
	return id, true
}

// respondError maps business-rule failures to HTTP status codes. Anything
// outside the sentinel taxonomy is an internal failure and surfaces as a
// generic 500 without leaking error text.
func respondError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, models.ErrNotFound):
		c.JSON(http.StatusNotFound, models.ErrorResponse(err.Error()))
	case errors.Is(err, models.ErrConflict):
		c.JSON(http.StatusConflict, models.ErrorResponse(err.Error()))
	case errors.Is(err, models.ErrForbidden):
		c.JSON(http.StatusForbidden, models.ErrorResponse(err.Error()))
	case errors.Is(err, models.ErrValidation):
		c.JSON(http.StatusBadRequest, models.ErrorResponse(err.Error()))
	default:
		_ = c.Error(err)
		c.JSON(http.StatusInternalServerError, models.ErrorResponse("Server error"))
	}
}
