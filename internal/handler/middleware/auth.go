package middleware

import (
	"net/http"
	"strings"

	"github.com/dmehra2102/prod-golang-projects/vetflow/internal/authz"
	"github.com/dmehra2102/prod-golang-projects/vetflow/pkg/auth"
	"github.com/gin-gonic/gin"
)

const actorKey = "vetflow.actor"

// RequireAuth validates the bearer token and stores the resolved actor in the
// request context. Services never look at the token; they only see the actor.
func RequireAuth(jwtManager *auth.JWTManager) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if header == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "missing authorization header"})
			return
		}

		token, ok := strings.CutPrefix(header, "Bearer ")
		if !ok || token == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "authorization header must be a bearer token"})
			return
		}

		claims, err := jwtManager.ValidateAccessToken(token)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid or expired token"})
			return
		}

		c.Set(actorKey, authz.Actor{
			AccountID:       claims.AccountID,
			Role:            claims.Role,
			DoctorProfileID: claims.DoctorProfileID,
		})
		c.Next()
	}
}

// ActorFrom returns the actor set by RequireAuth. The second return is false
// on routes that skipped the auth middleware.
func ActorFrom(c *gin.Context) (authz.Actor, bool) {
	v, ok := c.Get(actorKey)
	if !ok {
		return authz.Actor{}, false
	}
	actor, ok := v.(authz.Actor)
	return actor, ok
}
