package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/joshua-takyi/futsalhub/internal/models"
	"github.com/joshua-takyi/futsalhub/internal/services"
)

func CreateKit(ks *services.KitService) gin.HandlerFunc {
	return func(c *gin.Context) {
		ownerID, ok := currentUserID(c)
		if !ok {
			return
		}

		var kit models.Kit
		if err := c.ShouldBindJSON(&kit); err != nil {
			c.JSON(http.StatusBadRequest, models.ErrorResponse(err.Error()))
			return
		}

		created, err := ks.CreateKit(c.Request.Context(), &kit, ownerID)
		if err != nil {
			respondError(c, err)
			return
		}

		c.JSON(http.StatusCreated, models.SuccessResponse(created, "Kit created successfully"))
	}
}

func ListKits(ks *services.KitService) gin.HandlerFunc {
	return func(c *gin.Context) {
		kits, err := ks.ListKits(c.Request.Context())
		if err != nil {
			respondError(c, err)
			return
		}

		c.JSON(http.StatusOK, models.SuccessResponse(kits, ""))
	}
}

func ListKitsByFacility(ks *services.KitService) gin.HandlerFunc {
	return func(c *gin.Context) {
		facilityID, ok := parseObjectID(c, c.Param("id"))
		if !ok {
			return
		}

		kits, err := ks.ListKitsByFacility(c.Request.Context(), facilityID)
		if err != nil {
			respondError(c, err)
			return
		}

		c.JSON(http.StatusOK, models.SuccessResponse(kits, ""))
	}
}

func UpdateKit(ks *services.KitService) gin.HandlerFunc {
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
		delete(update, "futsal")

		updated, err := ks.UpdateKit(c.Request.Context(), id, ownerID, update)
		if err != nil {
			respondError(c, err)
			return
		}

		c.JSON(http.StatusOK, models.SuccessResponse(updated, "Kit updated successfully"))
	}
}

func DeleteKit(ks *services.KitService) gin.HandlerFunc {
	return func(c *gin.Context) {
		ownerID, ok := currentUserID(c)
		if !ok {
			return
		}
		id, ok := parseObjectID(c, c.Param("id"))
		if !ok {
			return
		}

		if err := ks.DeleteKit(c.Request.Context(), id, ownerID); err != nil {
			respondError(c, err)
			return
		}

		c.JSON(http.StatusOK, models.SuccessResponse(nil, "Kit removed"))
	}
}
