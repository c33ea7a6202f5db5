package middleware

import (
	"errors"
	"fmt"
	"strings"

	"github.com/gofiber/fiber/v3"
	"github.com/golang-jwt/jwt/v5"
)

// userIDKey is the Locals key holding the authenticated user id.
const userIDKey = "authUserID"

// SessionClaims are the JWT claims issued by the session provider. The
// subject is the user id.
type SessionClaims struct {
	jwt.RegisteredClaims
}

// ParseToken verifies an HS256 session token and returns its claims.
func ParseToken(tokenString string, secret []byte) (*SessionClaims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &SessionClaims{}, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return secret, nil
	})
	if err != nil {
		return nil, err
	}
	claims, ok := token.Claims.(*SessionClaims)
	if !ok || !token.Valid || claims.Subject == "" {
		return nil, errors.New("invalid session token")
	}
	return claims, nil
}

// NewAuth returns a middleware that requires a valid Bearer session token and
// stores the caller's user id in the request context. Identity is verified
// per request, never cached across them.
func NewAuth(secret []byte) fiber.Handler {
	return func(c fiber.Ctx) error {
		header := c.Get("Authorization")
		tokenString, found := strings.CutPrefix(header, "Bearer ")
		if !found || tokenString == "" {
			return ErrorResponse(c, fiber.StatusUnauthorized, "UNAUTHORIZED", "Missing bearer token")
		}

		claims, err := ParseToken(tokenString, secret)
		if err != nil {
			return ErrorResponse(c, fiber.StatusUnauthorized, "UNAUTHORIZED", "Invalid or expired session")
		}

		c.Locals(userIDKey, claims.Subject)
		return c.Next()
	}
}

// UserIDFromCtx returns the authenticated user id, or "" for anonymous
// requests.
func UserIDFromCtx(c fiber.Ctx) string {
	if uid, ok := c.Locals(userIDKey).(string); ok {
		return uid
	}
	return ""
}
