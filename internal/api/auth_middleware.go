package api

import (
	"net/http"
	"os"
	"time"

	"github.com/hexmech/hexmech/internal/constants"
	"github.com/gin-gonic/gin"
)

// Gin context keys carrying the authenticated commander identity.
const (
	ctxCommanderEmail = "commanderEmail"
	ctxCommanderName  = "commanderName"
)

// setSessionCookie installs the session cookie. The Secure flag follows
// SESSION_SECURE_COOKIE so local development over plain HTTP still works.
func setSessionCookie(c *gin.Context, token string, ttl time.Duration) {
	secure := os.Getenv(constants.EnvSessionSecureCookie) == "1"
	c.SetCookie(constants.CookieSessionName, token, int(ttl.Seconds()), "/", "", secure, true)
}

func clearSessionCookie(c *gin.Context) {
	c.SetCookie(constants.CookieSessionName, "", -1, "/", "", false, true)
}

// AuthRequired validates the session cookie and injects the commander's
// identity into the request context.
func AuthRequired() gin.HandlerFunc {
	return func(c *gin.Context) {
		token, err := c.Cookie(constants.CookieSessionName)
		if err != nil || token == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{constants.JSONKeyError: constants.ErrAuthRequired})
			return
		}
		claims, err := verifyCommanderSession(token)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{constants.JSONKeyError: constants.ErrInvalidSession})
			return
		}
		c.Set(ctxCommanderEmail, claims.Email)
		c.Set(ctxCommanderName, claims.Name)
		c.Next()
	}
}
