package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"pinatlas/internal/logic"
	"pinatlas/internal/validate"
)

type createCollectionRequest struct {
	Title string `json:"title" binding:"required"`
}

type renameCollectionRequest struct {
	NewTitle string `json:"newTitle" binding:"required"`
}

// CreateCollection appends a new empty collection to an owned map.
func CreateCollection(svc *logic.Service, check *validate.Checker) gin.HandlerFunc {
	return func(c *gin.Context) {
		defer handlePanic(c, "COLLECTION")

		userID, ok := currentUserID(c)
		if !ok {
			return
		}

		mapID, err := check.ID("mapId", c.Param("id"))
		if err != nil {
			translateError(c, "COLLECTION", err)
			return
		}

		var req createCollectionRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid body"})
			return
		}

		count, err := svc.CreateCollection(c.Request.Context(), userID, mapID, req.Title)
		if err != nil {
			translateError(c, "COLLECTION", err)
			return
		}
		c.JSON(http.StatusCreated, gin.H{"count": count})
	}
}

// RenameCollection renames a collection addressed by its current title.
func RenameCollection(svc *logic.Service, check *validate.Checker) gin.HandlerFunc {
	return func(c *gin.Context) {
		defer handlePanic(c, "COLLECTION")

		userID, ok := currentUserID(c)
		if !ok {
			return
		}

		mapID, err := check.ID("mapId", c.Param("id"))
		if err != nil {
			translateError(c, "COLLECTION", err)
			return
		}

		var req renameCollectionRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid body"})
			return
		}

		if err := svc.RenameCollection(c.Request.Context(), userID, mapID, c.Param("title"), req.NewTitle); err != nil {
			translateError(c, "COLLECTION", err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "collection renamed"})
	}
}

// DeleteCollection removes a collection and every pin it referenced.
func DeleteCollection(svc *logic.Service, check *validate.Checker) gin.HandlerFunc {
	return func(c *gin.Context) {
		defer handlePanic(c, "COLLECTION")

		userID, ok := currentUserID(c)
		if !ok {
			return
		}

		mapID, err := check.ID("mapId", c.Param("id"))
		if err != nil {
			translateError(c, "COLLECTION", err)
			return
		}

		if err := svc.RemoveCollection(c.Request.Context(), userID, mapID, c.Param("title")); err != nil {
			translateError(c, "COLLECTION", err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "collection deleted"})
	}
}
