package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"pinatlas/internal/logic"
	"pinatlas/internal/validate"
)

type createMapRequest struct {
	Title       string `json:"title" binding:"required"`
	Description string `json:"description"`
	CoverImage  string `json:"coverImage"`
	IsPublic    bool   `json:"isPublic"`
}

type visibilityRequest struct {
	IsPublic *bool `json:"isPublic" binding:"required"`
}

// ListMyMaps returns every map the authenticated user authored.
func ListMyMaps(svc *logic.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		defer handlePanic(c, "MAP")

		userID, ok := currentUserID(c)
		if !ok {
			return
		}

		maps, err := svc.ListUserMaps(c.Request.Context(), userID)
		if err != nil {
			translateError(c, "MAP", err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"maps": maps})
	}
}

// ListPublicMaps returns every publicly shared map.
func ListPublicMaps(svc *logic.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		defer handlePanic(c, "MAP")

		maps, err := svc.ListPublicMaps(c.Request.Context())
		if err != nil {
			translateError(c, "MAP", err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"maps": maps})
	}
}

// GetMap resolves a map with its collections and pins materialized. Mounted
// behind optional auth: anonymous requesters see public maps only.
func GetMap(svc *logic.Service, check *validate.Checker) gin.HandlerFunc {
	return func(c *gin.Context) {
		defer handlePanic(c, "MAP")

		userID, ok := currentUserID(c)
		if !ok {
			return
		}

		mapID, err := check.ID("mapId", c.Param("id"))
		if err != nil {
			translateError(c, "MAP", err)
			return
		}

		populated, err := svc.RetrieveMap(c.Request.Context(), userID, mapID)
		if err != nil {
			translateError(c, "MAP", err)
			return
		}
		c.JSON(http.StatusOK, populated)
	}
}

// CreateMap creates a map owned by the authenticated user.
func CreateMap(svc *logic.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		defer handlePanic(c, "MAP")

		userID, ok := currentUserID(c)
		if !ok {
			return
		}

		var req createMapRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid body"})
			return
		}

		mapID, err := svc.CreateMap(c.Request.Context(), userID, req.Title, req.Description, req.CoverImage, req.IsPublic)
		if err != nil {
			translateError(c, "MAP", err)
			return
		}
		c.JSON(http.StatusCreated, gin.H{"id": mapID.Hex()})
	}
}

// UpdateMap applies the non-empty fields of the body to an owned map.
func UpdateMap(svc *logic.Service, check *validate.Checker) gin.HandlerFunc {
	return func(c *gin.Context) {
		defer handlePanic(c, "MAP")

		userID, ok := currentUserID(c)
		if !ok {
			return
		}

		mapID, err := check.ID("mapId", c.Param("id"))
		if err != nil {
			translateError(c, "MAP", err)
			return
		}

		var update logic.MapUpdate
		if err := c.ShouldBindJSON(&update); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid body"})
			return
		}

		if err := svc.UpdateMap(c.Request.Context(), userID, mapID, update); err != nil {
			translateError(c, "MAP", err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "map updated"})
	}
}

// SetMapVisibility publishes or unpublishes an owned map.
func SetMapVisibility(svc *logic.Service, check *validate.Checker) gin.HandlerFunc {
	return func(c *gin.Context) {
		defer handlePanic(c, "MAP")

		userID, ok := currentUserID(c)
		if !ok {
			return
		}

		mapID, err := check.ID("mapId", c.Param("id"))
		if err != nil {
			translateError(c, "MAP", err)
			return
		}

		var req visibilityRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "isPublic is required"})
			return
		}

		if err := svc.SetMapVisibility(c.Request.Context(), userID, mapID, *req.IsPublic); err != nil {
			translateError(c, "MAP", err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "map visibility updated"})
	}
}

// DeleteMap removes an owned map and cascades to its pins.
func DeleteMap(svc *logic.Service, check *validate.Checker) gin.HandlerFunc {
	return func(c *gin.Context) {
		defer handlePanic(c, "MAP")

		userID, ok := currentUserID(c)
		if !ok {
			return
		}

		mapID, err := check.ID("mapId", c.Param("id"))
		if err != nil {
			translateError(c, "MAP", err)
			return
		}

		if err := svc.RemoveMap(c.Request.Context(), userID, mapID); err != nil {
			translateError(c, "MAP", err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "map deleted"})
	}
}
