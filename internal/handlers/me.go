package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"pinatlas/internal/logic"
	"pinatlas/internal/validate"
)

type favoriteMapRequest struct {
	MapID string `json:"mapId" binding:"required"`
}

// GetMe returns the authenticated user's profile.
func GetMe(svc *logic.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		defer handlePanic(c, "USER")

		userID, ok := currentUserID(c)
		if !ok {
			return
		}

		user, err := svc.RetrieveUser(c.Request.Context(), userID)
		if err != nil {
			translateError(c, "USER", err)
			return
		}
		c.JSON(http.StatusOK, user)
	}
}

// UpdateMe applies a partial profile update.
func UpdateMe(svc *logic.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		defer handlePanic(c, "USER")

		userID, ok := currentUserID(c)
		if !ok {
			return
		}

		var update logic.UserUpdate
		if err := c.ShouldBindJSON(&update); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid body"})
			return
		}

		if err := svc.UpdateUser(c.Request.Context(), userID, update); err != nil {
			translateError(c, "USER", err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "user updated"})
	}
}

// DeleteMe removes the account together with every map and pin it authored.
func DeleteMe(svc *logic.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		defer handlePanic(c, "USER")

		userID, ok := currentUserID(c)
		if !ok {
			return
		}

		if err := svc.RemoveUser(c.Request.Context(), userID); err != nil {
			translateError(c, "USER", err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "user deleted"})
	}
}

// SetFavoriteMap records a public map as the user's favorite.
func SetFavoriteMap(svc *logic.Service, check *validate.Checker) gin.HandlerFunc {
	return func(c *gin.Context) {
		defer handlePanic(c, "USER")

		userID, ok := currentUserID(c)
		if !ok {
			return
		}

		var req favoriteMapRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid body"})
			return
		}

		mapID, err := check.ID("mapId", req.MapID)
		if err != nil {
			translateError(c, "USER", err)
			return
		}

		if err := svc.SetFavoriteMap(c.Request.Context(), userID, mapID); err != nil {
			translateError(c, "USER", err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "favorite map updated"})
	}
}

// ClearFavoriteMap drops the user's favorite map reference.
func ClearFavoriteMap(svc *logic.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		defer handlePanic(c, "USER")

		userID, ok := currentUserID(c)
		if !ok {
			return
		}

		if err := svc.ClearFavoriteMap(c.Request.Context(), userID); err != nil {
			translateError(c, "USER", err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "favorite map cleared"})
	}
}
