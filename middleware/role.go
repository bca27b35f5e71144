package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/avelkov/bloghub/models"
	"github.com/avelkov/bloghub/utils"
)

// CheckRole is the authorization policy: it reports whether role is in
// the allowlist. Pure, no side effects.
func CheckRole(role models.Role, allowed ...models.Role) bool {
	for _, a := range allowed {
		if role == a {
			return true
		}
	}
	return false
}

// RequireRoles composes CheckRole in front of a route group. It must
// run after AuthRequired.
func RequireRoles(allowed ...models.Role) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		role, ok := CallerRole(ctx)
		if !ok {
			utils.Error(ctx, http.StatusUnauthorized, 40105, "missing caller identity")
			ctx.Abort()
			return
		}
		if !CheckRole(role, allowed...) {
			utils.Error(ctx, http.StatusForbidden, 40301, "access denied")
			ctx.Abort()
			return
		}
		ctx.Next()
	}
}
