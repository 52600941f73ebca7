package api

import (
	"net/http"
	"strings"

	"github.com/Domenick1991/carbooking/config"
	"github.com/gin-gonic/gin"
	"golang.org/x/crypto/bcrypt"
)

const principalKey = "principal"

var bookingRoles = map[string]bool{"USER": true, "ADMIN": true}

// BasicAuth checks credentials against bcrypt hashes from config and only
// admits USER and ADMIN roles.
func BasicAuth(accounts []config.AccountConfig) gin.HandlerFunc {
	byName := make(map[string]config.AccountConfig, len(accounts))
	for _, acc := range accounts {
		byName[acc.Username] = acc
	}

	return func(c *gin.Context) {
		user, password, ok := c.Request.BasicAuth()
		if !ok {
			unauthorized(c)
			return
		}
		acc, known := byName[user]
		if !known || bcrypt.CompareHashAndPassword([]byte(acc.PasswordHash), []byte(password)) != nil {
			unauthorized(c)
			return
		}
		if !bookingRoles[strings.ToUpper(acc.Role)] {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "Forbidden", "message": "insufficient role"})
			return
		}
		c.Set(principalKey, acc.Username)
		c.Next()
	}
}

func unauthorized(c *gin.Context) {
	c.Header("WWW-Authenticate", `Basic realm="car-booking"`)
	c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized", "message": "valid credentials required"})
}
