package middleware

import (
	"net/http"
	"strings"
	"time"

	"storeflow/internal/auth"
	"storeflow/internal/model"
	"storeflow/pkg/response"

	"github.com/gin-gonic/gin"
)

const (
	identityKey = "identity"
	cookieName  = "access_token"
)

// tokenFromRequest reads the access_token cookie first, then the Authorization header.
func tokenFromRequest(c *gin.Context) (string, string) {
	tokenString, cookieErr := c.Cookie(cookieName)
	if cookieErr == nil && tokenString != "" {
		return tokenString, ""
	}

	authHeader := c.GetHeader("Authorization")
	if authHeader == "" {
		return "", "Authorization is missing"
	}
	parts := strings.Split(authHeader, " ")
	if len(parts) != 2 || parts[0] != "Bearer" {
		return "", "Invalid authorization format. Expected 'Bearer <token>'"
	}
	return parts[1], ""
}

// RequireAuth resolves the caller identity and stores it on the context.
func RequireAuth(secret []byte) gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenString, problem := tokenFromRequest(c)
		if problem != "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, response.Error(http.StatusUnauthorized, problem))
			return
		}

		identity, err := auth.ParseToken(secret, tokenString)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, response.Error(http.StatusUnauthorized, "Invalid token: "+err.Error()))
			return
		}

		c.Set(identityKey, identity)
		c.Next()
	}
}

// RequireRole must run after RequireAuth.
func RequireRole(allowedRoles ...string) gin.HandlerFunc {
	return func(c *gin.Context) {
		identity := CurrentIdentity(c)
		if identity == nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, response.Error(http.StatusUnauthorized, "Authorization is missing"))
			return
		}

		for _, role := range allowedRoles {
			if identity.Role == role {
				c.Next()
				return
			}
		}
		c.AbortWithStatusJSON(http.StatusForbidden, response.Error(http.StatusForbidden, "Access denied: insufficient permissions"))
	}
}

// CurrentIdentity returns nil when the request is anonymous.
func CurrentIdentity(c *gin.Context) *model.Identity {
	value, ok := c.Get(identityKey)
	if !ok {
		return nil
	}
	identity, _ := value.(*model.Identity)
	return identity
}

// WithIdentity sets the caller directly. Used by tests and trusted front proxies.
func WithIdentity(identity *model.Identity) gin.HandlerFunc {
	return func(c *gin.Context) {
		if identity != nil {
			c.Set(identityKey, identity)
		}
		c.Next()
	}
}

// SetTokenCookie stores the access token as an HttpOnly cookie.
// Production (cross-origin): SameSiteNoneMode + Secure=true
func SetTokenCookie(c *gin.Context, token string, ttl time.Duration, secure bool) {
	sameSite := http.SameSiteLaxMode
	if secure {
		sameSite = http.SameSiteNoneMode
	}
	c.SetSameSite(sameSite)
	c.SetCookie(cookieName, token, int(ttl.Seconds()), "/", "", secure, true)
}

func ClearTokenCookie(c *gin.Context, secure bool) {
	sameSite := http.SameSiteLaxMode
	if secure {
		sameSite = http.SameSiteNoneMode
	}
	c.SetSameSite(sameSite)
	c.SetCookie(cookieName, "", -1, "/", "", secure, true)
}
