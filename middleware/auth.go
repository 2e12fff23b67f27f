package middleware

import (
	"github.com/gin-gonic/gin"
	"github.com/saikrishna7004/campus-360-backend/common/auth"
	apperrors "github.com/saikrishna7004/campus-360-backend/common/errors"
)

// PrincipalKey is the gin context key holding the authenticated auth.Principal.
const PrincipalKey = "principal"

// TokenParser verifies a bearer token. *auth.TokenManager satisfies it.
type TokenParser interface {
	Parse(token string) (*auth.Principal, error)
}

// AuthMiddleware verifies the Authorization header and attaches the caller's principal.
func AuthMiddleware(tokens TokenParser) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := auth.ExtractBearer(c.GetHeader("Authorization"))
		if token == "" {
			abortWithError(c, apperrors.Unauthorized("Access denied"))
			return
		}

		p, err := tokens.Parse(token)
		if err != nil {
			abortWithError(c, apperrors.Unauthorized("Invalid token"))
			return
		}

		c.Set(PrincipalKey, *p)
		c.Next()
	}
}

// GetPrincipal returns the principal attached by AuthMiddleware.
func GetPrincipal(c *gin.Context) (auth.Principal, bool) {
	if val, ok := c.Get(PrincipalKey); ok {
		if p, ok := val.(auth.Principal); ok && p.ID != "" {
			return p, true
		}
	}
	return auth.Principal{}, false
}

// RequireRoles restricts a route group to the given roles.
func RequireRoles(roles ...auth.Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		p, ok := GetPrincipal(c)
		if !ok {
			abortWithError(c, apperrors.Unauthorized("Access denied"))
			return
		}
		for _, r := range roles {
			if p.Role == r {
				c.Next()
				return
			}
		}
		abortWithError(c, apperrors.Forbidden("Access denied"))
	}
}

// AdminOnly restricts access to the admin role.
func AdminOnly() gin.HandlerFunc {
	return RequireRoles(auth.RoleAdmin)
}

func abortWithError(c *gin.Context, err *apperrors.Error) {
	c.AbortWithStatusJSON(err.Code, gin.H{
		"success": false,
		"message": err.Message,
		"error":   err.Kind,
	})
}
