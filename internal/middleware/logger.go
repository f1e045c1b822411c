package middleware

import (
	"net/http"
	"runtime/debug"
	"time"

	"storeflow/pkg/response"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
)

// HTTPLogger logs the request
func HTTPLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		startTime := time.Now()
		c.Next()
		latency := time.Since(startTime)

		path := c.FullPath()
		if path == "" {
			path = c.Request.URL.Path
		}
		user := "anonymous"
		if identity := CurrentIdentity(c); identity != nil {
			user = identity.Email
		}
		log.Info().Msgf("[access] [%s] %s %s %d %v %s", c.ClientIP(), c.Request.Method, path, c.Writer.Status(), latency, user)
	}
}

// HTTPRecovery turns a panic into a 500 response
func HTTPRecovery() gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			if err := recover(); err != nil {
				log.Error().Msgf("Panic occurred: %v\n%s", err, debug.Stack())
				c.AbortWithStatusJSON(http.StatusInternalServerError, response.Error(http.StatusInternalServerError, "internal server error"))
			}
		}()
		c.Next()
	}
}
