package middleware

import (
	"context"
	"fmt"
	"strings"
	"time"

	"main/model"
	"main/services"
	"main/utils"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
)

// Context keys set by the middleware chain.
const (
	ContextUser    = "current_user"
	ContextSession = "zone_session"
)

// AuthMiddleware validates the bearer token and loads the user it
// names. Guards fail closed: any ambiguity in identity is a denial.
func AuthMiddleware(users services.UserStore) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" || !strings.HasPrefix(authHeader, "Bearer ") {
			utils.Unauthorized(c, "Missing or invalid token")
			c.Abort()
			return
		}

		tokenString := strings.TrimPrefix(authHeader, "Bearer ")

		token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
			if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
			}
			return []byte(utils.JWTSecretKey), nil
		})
		if err != nil || !token.Valid {
			utils.Unauthorized(c, "Invalid token")
			c.Abort()
			return
		}

		claims, ok := token.Claims.(jwt.MapClaims)
		if !ok || claims["user_id"] == nil {
			utils.Unauthorized(c, "Invalid token claims")
			c.Abort()
			return
		}

		if iss, ok := claims["iss"].(string); ok && iss != "zoneaccess" {
			utils.Unauthorized(c, "Invalid token issuer")
			c.Abort()
			return
		}

		userID, ok := claims["user_id"].(string)
		if !ok {
			utils.Unauthorized(c, "Invalid user ID in token")
			c.Abort()
			return
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), 10*time.Second)
		defer cancel()

		user, err := users.FindByID(ctx, userID)
		if err != nil {
			utils.InternalError(c, "Failed to resolve identity")
			c.Abort()
			return
		}
		// A token naming a deleted or deactivated user is dead.
		if user == nil || !user.IsActive {
			utils.Unauthorized(c, "Account is no longer active")
			c.Abort()
			return
		}

		c.Set(ContextUser, user)
		c.Next()
	}
}

// RequireAdmin gates the back-office endpoints.
func RequireAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		user := CurrentUser(c)
		if user == nil || !user.IsAdmin() {
			utils.Forbidden(c, "Administrator access required")
			c.Abort()
			return
		}
		c.Next()
	}
}

// CurrentUser returns the authenticated user placed by AuthMiddleware.
func CurrentUser(c *gin.Context) *model.User {
	value, exists := c.Get(ContextUser)
	if !exists {
		return nil
	}
	user, ok := value.(*model.User)
	if !ok {
		return nil
	}
	return user
}

// CurrentZoneSession returns the session placed by the action guard.
func CurrentZoneSession(c *gin.Context) *model.ZoneSession {
	value, exists := c.Get(ContextSession)
	if !exists {
		return nil
	}
	session, ok := value.(*model.ZoneSession)
	if !ok {
		return nil
	}
	return session
}
