package middleware

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"
)

const (
	// userIDKey is the context key for the authenticated user ID.
	userIDKey = "user_id"

	bearerPrefix = "Bearer "
)

// JWTAuth returns middleware that verifies bearer tokens and stores the
// authenticated user ID in the context.
// Tokens must be HMAC-signed and carry the user ID in the "sub" claim.
func JWTAuth(secret string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			header := c.Request().Header.Get(echo.HeaderAuthorization)
			if !strings.HasPrefix(header, bearerPrefix) {
				return unauthorized(c)
			}

			token, err := jwt.Parse(strings.TrimPrefix(header, bearerPrefix), func(t *jwt.Token) (interface{}, error) {
				if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
					return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
				}
				return []byte(secret), nil
			})
			if err != nil || !token.Valid {
				return unauthorized(c)
			}

			subject, err := token.Claims.GetSubject()
			if err != nil || subject == "" {
				return unauthorized(c)
			}

			c.Set(userIDKey, subject)
			return next(c)
		}
	}
}

// GetUserID retrieves the authenticated user ID from the echo context.
// Returns an empty string if the request is unauthenticated.
func GetUserID(c echo.Context) string {
	if id, ok := c.Get(userIDKey).(string); ok {
		return id
	}
	return ""
}

func unauthorized(c echo.Context) error {
	return c.JSON(http.StatusUnauthorized, map[string]interface{}{
		"code":    "unauthorized",
		"message": "Missing or invalid credentials",
	})
}
