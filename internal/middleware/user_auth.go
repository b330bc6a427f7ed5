package middleware

import (
	"log"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// UserAuth validates user JWT tokens and injects the userId into the context.
func UserAuth(secret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := parseBearer(c, secret)
		if !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
			return
		}
		c.Set("userId", userID)
		c.Next()
	}
}

// OptionalUserAuth injects the userId when a valid token is present and lets
// anonymous requests through with the nil id. Used on routes that serve
// public maps.
func OptionalUserAuth(secret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if userID, ok := parseBearer(c, secret); ok {
			c.Set("userId", userID)
		} else {
			c.Set("userId", primitive.NilObjectID)
		}
		c.Next()
	}
}

func parseBearer(c *gin.Context, secret string) (primitive.ObjectID, bool) {
	raw := strings.TrimSpace(c.GetHeader("Authorization"))
	if raw == "" {
		return primitive.NilObjectID, false
	}

	parts := strings.Split(raw, " ")
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		log.Println("[AUTH] [ERROR] invalid token format")
		return primitive.NilObjectID, false
	}

	token, err := jwt.Parse(parts[1], func(t *jwt.Token) (interface{}, error) {
		return []byte(secret), nil
	})
	if err != nil || !token.Valid {
		log.Println("[AUTH] [ERROR] token validation failed:", err)
		return primitive.NilObjectID, false
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return primitive.NilObjectID, false
	}

	userIDValue, ok := claims["userId"].(string)
	if !ok || strings.TrimSpace(userIDValue) == "" {
		log.Println("[AUTH] [ERROR] userId claim missing")
		return primitive.NilObjectID, false
	}

	userID, err := primitive.ObjectIDFromHex(userIDValue)
	if err != nil {
		log.Println("[AUTH] [ERROR] invalid userId claim")
		return primitive.NilObjectID, false
	}
	return userID, true
}
