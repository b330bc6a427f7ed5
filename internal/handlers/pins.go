package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"pinatlas/internal/logic"
	"pinatlas/internal/validate"
)

// CreatePin creates a pin inside a named collection on an owned map.
func CreatePin(svc *logic.Service, check *validate.Checker) gin.HandlerFunc {
	return func(c *gin.Context) {
		defer handlePanic(c, "PIN")

		userID, ok := currentUserID(c)
		if !ok {
			return
		}

		mapID, err := check.ID("mapId", c.Param("id"))
		if err != nil {
			translateError(c, "PIN", err)
			return
		}

		var fields logic.PinFields
		if err := c.ShouldBindJSON(&fields); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid body"})
			return
		}

		pinID, err := svc.CreatePin(c.Request.Context(), userID, mapID, c.Param("title"), fields)
		if err != nil {
			translateError(c, "PIN", err)
			return
		}
		c.JSON(http.StatusCreated, gin.H{"id": pinID.Hex()})
	}
}

// UpdatePin mutates a pin authored by the authenticated user.
func UpdatePin(svc *logic.Service, check *validate.Checker) gin.HandlerFunc {
	return func(c *gin.Context) {
		defer handlePanic(c, "PIN")

		userID, ok := currentUserID(c)
		if !ok {
			return
		}

		pinID, err := check.ID("pinId", c.Param("id"))
		if err != nil {
			translateError(c, "PIN", err)
			return
		}

		var update logic.PinUpdate
		if err := c.ShouldBindJSON(&update); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid body"})
			return
		}

		if err := svc.UpdatePin(c.Request.Context(), userID, pinID, update); err != nil {
			translateError(c, "PIN", err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "pin updated"})
	}
}

// DeletePin removes a pin authored by the authenticated user.
func DeletePin(svc *logic.Service, check *validate.Checker) gin.HandlerFunc {
	return func(c *gin.Context) {
		defer handlePanic(c, "PIN")

		userID, ok := currentUserID(c)
		if !ok {
			return
		}

		pinID, err := check.ID("pinId", c.Param("id"))
		if err != nil {
			translateError(c, "PIN", err)
			return
		}

		if err := svc.RemovePin(c.Request.Context(), userID, pinID); err != nil {
			translateError(c, "PIN", err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "pin deleted"})
	}
}
