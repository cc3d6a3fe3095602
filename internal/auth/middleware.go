package auth

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
)

const identityKey = "auth.identity"

// Middleware authenticates requests with either a Bearer JWT or the master
// API token and stores the identity in the gin context.
func Middleware(svc *Service, masterToken string) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if header == "" {
			unauthorized(c)
			return
		}
		token := strings.TrimSpace(strings.TrimPrefix(header, "Bearer "))
		if token == "" {
			unauthorized(c)
			return
		}

		if masterToken != "" && token == masterToken {
			c.Set(identityKey, &TokenData{Username: "master", Role: "admin"})
			c.Next()
			return
		}

		data, err := svc.VerifyToken(token)
		if err != nil {
			unauthorized(c)
			return
		}
		c.Set(identityKey, data)
		c.Next()
	}
}

func unauthorized(c *gin.Context) {
	c.Header("WWW-Authenticate", "Bearer")
	c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"detail": "could not validate credentials"})
}

// Identity returns the authenticated user for the request, if any.
func Identity(c *gin.Context) (*TokenData, bool) {
	v, ok := c.Get(identityKey)
	if !ok {
		return nil, false
	}
	data, ok := v.(*TokenData)
	return data, ok
}
