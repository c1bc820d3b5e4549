package server

import (
	"crypto/subtle"
	"net/http"

	"github.com/gin-gonic/gin"

	"daybook/internal/constants"
)

// pinAuth gates API access behind the configured PIN. With no PIN configured
// the API is open, matching a single-user local deployment.
func (s *Server) pinAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		if s.pin == "" {
			c.Next()
			return
		}
		got := c.GetHeader(constants.PinHeader)
		if subtle.ConstantTimeCompare([]byte(got), []byte(s.pin)) != 1 {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid or missing PIN"})
			return
		}
		c.Next()
	}
}
