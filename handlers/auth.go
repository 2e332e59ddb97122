package handlers

import (
	"crypto/subtle"
	"encoding/base64"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"golang.org/x/crypto/bcrypt"
)

// AdminGate returns basic-auth middleware for the admin surface. When
// either credential is empty the gate stays open; main.go logs that state
// at startup so it cannot pass silently.
func AdminGate(user, pass string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if user == "" || pass == "" {
			c.Next()
			return
		}

		reqUser, reqPass, ok := parseBasicAuth(c.GetHeader("Authorization"))
		if ok && credentialsMatch(user, pass, reqUser, reqPass) {
			c.Next()
			return
		}

		c.Header("WWW-Authenticate", `Basic realm="Admin Area"`)
		c.String(http.StatusUnauthorized, "Auth required")
		c.Abort()
	}
}

func parseBasicAuth(header string) (user, pass string, ok bool) {
	scheme, encoded, found := strings.Cut(header, " ")
	if !found || !strings.EqualFold(scheme, "Basic") {
		return "", "", false
	}

	decoded, err := base64.StdEncoding.DecodeString(encoded)
	if err != nil {
		return "", "", false
	}

	user, pass, found = strings.Cut(string(decoded), ":")
	if !found {
		return "", "", false
	}
	return user, pass, true
}

// credentialsMatch compares presented credentials against the configured
// pair. A configured password beginning with a bcrypt prefix is treated
// as a hash; anything else is compared in constant time.
func credentialsMatch(wantUser, wantPass, gotUser, gotPass string) bool {
	userOK := subtle.ConstantTimeCompare([]byte(wantUser), []byte(gotUser)) == 1

	var passOK bool
	if isBcryptHash(wantPass) {
		passOK = bcrypt.CompareHashAndPassword([]byte(wantPass), []byte(gotPass)) == nil
	} else {
		passOK = subtle.ConstantTimeCompare([]byte(wantPass), []byte(gotPass)) == 1
	}

	return userOK && passOK
}

func isBcryptHash(s string) bool {
	return strings.HasPrefix(s, "$2a$") || strings.HasPrefix(s, "$2b$") || strings.HasPrefix(s, "$2y$")
}
