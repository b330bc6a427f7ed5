package handlers

import (
	"context"
	"errors"
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/readpref"

	"pinatlas/internal/apperr"
)

// currentUserID pulls the authenticated user id injected by the auth
// middleware.
func currentUserID(c *gin.Context) (primitive.ObjectID, bool) {
	value, ok := c.Get("userId")
	if !ok {
		log.Println("[AUTH] [ERROR] userId missing in context")
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return primitive.NilObjectID, false
	}
	userID, ok := value.(primitive.ObjectID)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return primitive.NilObjectID, false
	}
	return userID, true
}

// translateError maps domain errors to response statuses.
func translateError(c *gin.Context, route string, err error) {
	var validation *apperr.ValidationError
	if errors.As(err, &validation) {
		log.Printf("[%s] validation rejected: %s", route, validation.Message)
		c.JSON(http.StatusBadRequest, gin.H{"error": validation.Message, "kind": validation.Kind})
		return
	}

	var logicErr *apperr.LogicError
	if errors.As(err, &logicErr) {
		status := statusForLogicCode(logicErr.Code)
		log.Printf("[%s] returning error %d: %s", route, status, logicErr.Error())
		body := gin.H{"error": logicErr.Message}
		if logicErr.Step != "" {
			body["failedStep"] = logicErr.Step
		}
		c.JSON(status, body)
		return
	}

	log.Printf("[%s] unexpected error: %v", route, err)
	c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
}

func statusForLogicCode(code string) int {
	switch code {
	case apperr.CodeNotFound:
		return http.StatusNotFound
	case apperr.CodeConflict:
		return http.StatusConflict
	case apperr.CodeCredentials:
		return http.StatusUnauthorized
	case apperr.CodeForbidden:
		return http.StatusForbidden
	default:
		return http.StatusInternalServerError
	}
}

func handlePanic(c *gin.Context, route string) {
	if r := recover(); r != nil {
		log.Printf("[%s] panic recovered: %v", route, r)
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
	}
}

// Health reports whether the persistence store is reachable.
func Health(db *mongo.Database) gin.HandlerFunc {
	return func(c *gin.Context) {
		defer handlePanic(c, "HEALTH")

		ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
		defer cancel()

		if err := db.Client().Ping(ctx, readpref.Primary()); err != nil {
			log.Println("[HEALTH] [ERROR] db ping failed:", err)
			c.JSON(http.StatusServiceUnavailable, gin.H{"status": "down"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	}
}
