package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/avelkov/bloghub/config"
	"github.com/avelkov/bloghub/models"
	"github.com/avelkov/bloghub/utils"
)

const (
	// ContextUserIDKey is the key used to store the authenticated user ID in Gin context.
	ContextUserIDKey = "user_id"
	// ContextRoleKey stores the caller's role inside Gin context.
	ContextRoleKey = "role"
)

// AuthRequired ensures the request carries a valid bearer JWT and
// stores the caller identity (id + role) in the request context.
func AuthRequired() gin.HandlerFunc {
	return func(ctx *gin.Context) {
		authHeader := ctx.GetHeader("Authorization")
		if authHeader == "" {
			utils.Error(ctx, http.StatusUnauthorized, 40101, "authorization header missing")
			ctx.Abort()
			return
		}

		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
			utils.Error(ctx, http.StatusUnauthorized, 40102, "invalid authorization header format")
			ctx.Abort()
			return
		}

		tokenString := strings.TrimSpace(parts[1])
		if tokenString == "" {
			utils.Error(ctx, http.StatusUnauthorized, 40103, "empty bearer token")
			ctx.Abort()
			return
		}

		claims, err := utils.ParseToken(config.Get().JWTSecret, tokenString)
		if err != nil {
			utils.Error(ctx, http.StatusUnauthorized, 40104, "invalid token")
			ctx.Abort()
			return
		}

		ctx.Set(ContextUserIDKey, claims.UserID)
		ctx.Set(ContextRoleKey, claims.Role)
		ctx.Next()
	}
}

// CallerID returns the authenticated user id stored by AuthRequired.
func CallerID(ctx *gin.Context) (string, bool) {
	value, exists := ctx.Get(ContextUserIDKey)
	if !exists {
		return "", false
	}
	id, ok := value.(string)
	return id, ok && id != ""
}

// CallerRole returns the authenticated role stored by AuthRequired.
func CallerRole(ctx *gin.Context) (models.Role, bool) {
	value, exists := ctx.Get(ContextRoleKey)
	if !exists {
		return "", false
	}
	role, ok := value.(models.Role)
	return role, ok && role.Valid()
}
