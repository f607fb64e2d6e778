package middleware

import (
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
)

const authUserKey = "auth_user"

type Claims struct {
	Username string `json:"username"`
	jwt.RegisteredClaims
}

// GenerateToken signs a session token for username. Login returns it to
// the client alongside the regular response fields.
func GenerateToken(username, secret string, expire time.Duration) (string, error) {
	claims := Claims{
		Username: username,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(expire)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(secret))
}

// OptionalAuth validates a bearer token when one is presented and threads
// the authenticated username into the request context for logging.
// Requests without a token, or with one that fails validation, pass
// through anonymously: no endpoint requires authentication.
func OptionalAuth(secret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if header == "" {
			c.Next()
			return
		}

		raw := strings.TrimPrefix(header, "Bearer ")
		claims := &Claims{}
		token, err := jwt.ParseWithClaims(raw, claims, func(t *jwt.Token) (interface{}, error) {
			return []byte(secret), nil
		})
		if err == nil && token.Valid {
			c.Set(authUserKey, claims.Username)
		}

		c.Next()
	}
}

// AuthUser returns the username carried by a validated token, or "".
func AuthUser(c *gin.Context) string {
	return c.GetString(authUserKey)
}
