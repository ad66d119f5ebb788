package auth

import (
	"fmt"
	"strings"
	"time"

	"warehouse-backend/internal/config"
	"warehouse-backend/internal/database"
	"warehouse-backend/internal/models"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
)

const (
	CtxUserIDKey   = "user_id"
	CtxUsernameKey = "username"

	// Browser clients carry the token in a cookie, API clients in the
	// Authorization header. Both are accepted.
	TokenCookieName = "token"
)

// JWTMiddleware validates the token and reloads the user on every request, so
// deleted users and tokens issued before the last password change are locked
// out immediately.
func JWTMiddleware(cfg *config.Config) fiber.Handler {
	return func(c *fiber.Ctx) error {
		tokenStr := tokenFromRequest(c)
		if tokenStr == "" {
			return fiber.NewError(fiber.StatusUnauthorized, "Login required")
		}

		token, err := jwt.ParseWithClaims(tokenStr, &Claims{}, func(t *jwt.Token) (interface{}, error) {
			if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, fmt.Errorf("unexpected signing method")
			}
			return []byte(cfg.JWTSecret), nil
		})
		if err != nil || !token.Valid {
			return fiber.NewError(fiber.StatusUnauthorized, "Invalid or expired token")
		}

		claims, ok := token.Claims.(*Claims)
		if !ok {
			return fiber.NewError(fiber.StatusUnauthorized, "Invalid token claims")
		}

		var user models.User
		if err := database.DB.First(&user, "id = ?", claims.UserID).Error; err != nil {
			return fiber.NewError(fiber.StatusUnauthorized, "Unknown user")
		}
		if !user.PasswordChangedAt.IsZero() && claims.IssuedAt != nil &&
			claims.IssuedAt.Time.Before(user.PasswordChangedAt.Truncate(time.Second)) {
			return fiber.NewError(fiber.StatusUnauthorized, "Password changed, please log in again")
		}

		c.Locals(CtxUserIDKey, user.ID)
		c.Locals(CtxUsernameKey, user.Username)

		return c.Next()
	}
}

func tokenFromRequest(c *fiber.Ctx) string {
	authHeader := c.Get("Authorization")
	if authHeader != "" {
		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) == 2 && strings.EqualFold(parts[0], "bearer") {
			return parts[1]
		}
	}
	return c.Cookies(TokenCookieName)
}

// CurrentUsername returns the authenticated username set by JWTMiddleware.
func CurrentUsername(c *fiber.Ctx) (string, error) {
	name, ok := c.Locals(CtxUsernameKey).(string)
	if !ok || name == "" {
		return "", fiber.NewError(fiber.StatusUnauthorized, "Login required")
	}
	return name, nil
}
