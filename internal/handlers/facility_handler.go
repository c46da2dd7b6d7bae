package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/joshua-takyi/futsalhub/internal/models"
	"github.com/joshua-takyi/futsalhub/internal/services"
)

func CreateFacility(fs *services.FacilityService) gin.HandlerFunc {
	return func(c *gin.Context) {
		ownerID, ok := currentUserID(c)
		if !ok {
			return
		}

		var facility models.Facility
		if err := c.ShouldBindJSON(&facility); err != nil {
			c.JSON(http.StatusBadRequest, models.ErrorResponse(err.Error()))
			return
		}

		created, err := fs.CreateFacility(c.Request.Context(), &facility, ownerID)
		if err != nil {
			respondError(c, err)
			return
		}

		c.JSON(http.StatusCreated, models.SuccessResponse(created, "Facility created successfully"))
	}
}

func ListFacilities(fs *services.FacilityService) gin.HandlerFunc {
	return func(c *gin.Context) {
		facilities, err := fs.ListFacilities(c.Request.Context())
		if err != nil {
			respondError(c, err)
			return
		}

		c.JSON(http.StatusOK, models.SuccessResponse(facilities, ""))
	}
}

func GetFacility(fs *services.FacilityService) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := parseObjectID(c, c.Param("id"))
		if !ok {
			return
		}

		facility, err := fs.GetFacility(c.Request.Context(), id)
		if err != nil {
			respondError(c, err)
			return
		}

		c.JSON(http.StatusOK, models.SuccessResponse(facility, ""))
	}
}

func UpdateFacility(fs *services.FacilityService) gin.HandlerFunc {
	return func(c *gin.Context) {
		ownerID, ok := currentUserID(c)
		if !ok {
			return
		}
		id, ok := parseObjectID(c, c.Param("id"))
		if !ok {
			return
		}

		var update map[string]interface{}
		if err := c.ShouldBindJSON(&update); err != nil {
			c.JSON(http.StatusBadRequest, models.ErrorResponse(err.Error()))
			return
		}
		delete(update, "_id")
		delete(update, "owner")

		updated, err := fs.UpdateFacility(c.Request.Context(), id, ownerID, update)
		if err != nil {
			respondError(c, err)
			return
		}

		c.JSON(http.StatusOK, models.SuccessResponse(updated, "Facility updated successfully"))
	}
}

func DeleteFacility(fs *services.FacilityService) gin.HandlerFunc {
	return func(c *gin.Context) {
		ownerID, ok := currentUserID(c)
		if !ok {
			return
		}
		id, ok := parseObjectID(c, c.Param("id"))
		if !ok {
			return
		}

		if err := fs.DeleteFacility(c.Request.Context(), id, ownerID); err != nil {
			respondError(c, err)
			return
		}

		c.JSON(http.StatusOK, models.SuccessResponse(nil, "Facility removed"))
	}
}
