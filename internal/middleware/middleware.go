package middleware

import (
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/joshua-takyi/futsalhub/internal/helpers"
	"github.com/joshua-takyi/futsalhub/internal/models"
	"github.com/joshua-takyi/futsalhub/internal/services"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// RequestID middleware adds a unique request ID to each request
func RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		requestID := c.GetHeader("X-Request-ID")
		if requestID == "" {
			requestID = uuid.New().String()
		}
		c.Set("request_id", requestID)
		c.Header("X-Request-ID", requestID)
		c.Next()
	}
}

// StructuredLogger provides structured logging middleware
func StructuredLogger(logger *slog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		path := c.Request.URL.Path
		raw := c.Request.URL.RawQuery

		c.Next()

		latency := time.Since(start)
		clientIP := c.ClientIP()
		method := c.Request.Method
		statusCode := c.Writer.Status()

		if raw != "" {
			path = path + "?" + raw
		}

		requestID, _ := c.Get("request_id")

		logger.Info("HTTP Request",
			"request_id", requestID,
			"method", method,
			"path", path,
			"status", statusCode,
			"latency", latency,
			"client_ip", clientIP,
		)
	}
}

// ErrorHandler provides centralized error handling
func ErrorHandler(logger *slog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if len(c.Errors) > 0 {
			err := c.Errors.Last()
			requestID, _ := c.Get("request_id")

			logger.Error("Request error",
				"request_id", requestID,
				"error", err.Error(),
				"method", c.Request.Method,
				"path", c.Request.URL.Path,
			)

			// Don't leak internals to the caller
			c.JSON(http.StatusInternalServerError, models.ErrorResponse("Internal server error"))
		}
	}
}

// AuthMiddleware validates the Authorization bearer token and resolves its
// subject to a stored user record, so role checks always run against live
// profile data.
func AuthMiddleware(userService *services.UserService, jwtSecret string, logger *slog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		token := strings.TrimPrefix(header, "Bearer ")
		if token == "" || token == header {
			c.JSON(http.StatusUnauthorized, models.ErrorResponse("No authentication token, access denied"))
			c.Abort()
			return
		}

		claims, err := helpers.ValidateToken(token, jwtSecret)
		if err != nil {
			c.JSON(http.StatusUnauthorized, models.ErrorResponse("Please authenticate"))
			c.Abort()
			return
		}

		userID, err := primitive.ObjectIDFromHex(claims.Subject)
		if err != nil {
			logger.Error("Invalid user ID in token", "subject", claims.Subject, "error", err)
			c.JSON(http.StatusUnauthorized, models.ErrorResponse("Please authenticate"))
			c.Abort()
			return
		}

		user, err := userService.GetUser(c.Request.Context(), userID)
		if err != nil {
			logger.Info("Token subject not found", "user_id", claims.Subject, "error", err)
			c.JSON(http.StatusUnauthorized, models.ErrorResponse("Please authenticate"))
			c.Abort()
			return
		}

		enhancedClaims := &helpers.EnhancedClaims{
			CustomClaims: claims,
			UserID:       user.ID.Hex(),
			Role:         user.Role,
			Name:         user.Name,
			Email:        user.Email,
		}

		c.Set("user", enhancedClaims)
		c.Next()
	}
}

// RequireRole rejects authenticated requests whose resolved role is not in
// the allowed set.
func RequireRole(roles ...string) gin.HandlerFunc {
	return func(c *gin.Context) {
		user, exists := c.Get("user")
		if !exists {
			c.JSON(http.StatusUnauthorized, models.ErrorResponse("Authentication required"))
			c.Abort()
			return
		}

		claims, ok := user.(*helpers.EnhancedClaims)
		if !ok {
			c.JSON(http.StatusInternalServerError, models.ErrorResponse("Invalid user claims format"))
			c.Abort()
			return
		}

		for _, role := range roles {
			if claims.Role == role {
				c.Next()
				return
			}
		}

		c.JSON(http.StatusForbidden, models.ErrorResponse("Access denied. Insufficient permissions."))
		c.Abort()
	}
}
