package middleware

import (
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"

	"github.com/BruksfildServices01/appointment-scheduler/internal/httperr"
)

const (
	ContextProviderID = "providerID"

	tokenTTL = 24 * time.Hour
)

// GenerateToken signs an HS256 token whose subject is the provider id.
func GenerateToken(secret string, providerID uint, now time.Time) (string, error) {
	claims := jwt.MapClaims{
		"sub": float64(providerID),
		"exp": now.Add(tokenTTL).Unix(),
		"iat": now.Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(secret))
}

func AuthMiddleware(secret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			httperr.Unauthorized(c, "missing_authorization_header", "Authorization header is required.")
			c.Abort()
			return
		}

		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
			httperr.Unauthorized(c, "invalid_authorization_header", "Expected a Bearer token.")
			c.Abort()
			return
		}

		token, err := jwt.Parse(parts[1], func(token *jwt.Token) (interface{}, error) {
			if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, jwt.ErrTokenMalformed
			}
			return []byte(secret), nil
		})
		if err != nil || !token.Valid {
			httperr.Unauthorized(c, "invalid_token", "Token is invalid or expired.")
			c.Abort()
			return
		}

		claims, ok := token.Claims.(jwt.MapClaims)
		if !ok {
			httperr.Unauthorized(c, "invalid_token_claims", "Token is invalid or expired.")
			c.Abort()
			return
		}

		sub, ok := claims["sub"].(float64)
		if !ok || sub <= 0 {
			httperr.Unauthorized(c, "invalid_token_payload", "Token is invalid or expired.")
			c.Abort()
			return
		}

		c.Set(ContextProviderID, uint(sub))
		c.Next()
	}
}

// ProviderID returns the authenticated provider. Only valid behind AuthMiddleware.
func ProviderID(c *gin.Context) uint {
	return c.GetUint(ContextProviderID)
}
