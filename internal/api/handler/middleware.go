package handler

import (
	"net/http"
	"strings"
	"time"

	"dyce/backend/internal/config"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
)

// AuthClaims is the JWT payload carried by bearer tokens.
type AuthClaims struct {
	UserID string `json:"user_id"`
	jwt.RegisteredClaims
}

// generateToken signs a bearer token for the user.
func generateToken(userID, secret string) (string, error) {
	claims := AuthClaims{
		UserID: userID,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(config.TokenTTL)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
			Issuer:    "dyce-backend",
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(secret))
}

// parseToken validates a bearer token and returns the user ID.
func parseToken(tokenStr, secret string) (string, error) {
	token, err := jwt.ParseWithClaims(tokenStr, &AuthClaims{}, func(t *jwt.Token) (interface{}, error) {
		return []byte(secret), nil
	})
	if err != nil {
		return "", err
	}
	claims := token.Claims.(*AuthClaims)
	return claims.UserID, nil
}

// AuthMiddleware extracts the caller's user ID from the Authorization header
// and aborts unauthenticated requests.
func AuthMiddleware(jwtSecret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		h := c.GetHeader("Authorization")
		if h == "" || !strings.HasPrefix(h, "Bearer ") {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"success": false, "message": "missing token"})
			return
		}

		userID, err := parseToken(strings.TrimPrefix(h, "Bearer "), jwtSecret)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"success": false, "message": "invalid token"})
			return
		}

		c.Set("userID", userID)
		c.Next()
	}
}

// MustUserID returns the authenticated caller's ID. Only valid behind
// AuthMiddleware.
func MustUserID(c *gin.Context) string {
	v, _ := c.Get("userID")
	return v.(string)
}
