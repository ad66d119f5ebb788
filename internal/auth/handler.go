package auth

import (
	"strings"
	"time"

	"warehouse-backend/internal/config"
	"warehouse-backend/internal/database"
	"warehouse-backend/internal/models"

	"github.com/gofiber/fiber/v2"
	"golang.org/x/crypto/bcrypt"
)

type LoginRequest struct {
	Username string `json:"username" form:"username"`
	Password string `json:"password" form:"password"`
}

type ChangePasswordRequest struct {
	OldPassword     string `json:"old_password" form:"old_password"`
	NewPassword     string `json:"new_password" form:"new_password"`
	ConfirmPassword string `json:"confirm_password" form:"confirm_password"`
}

// POST /login
func LoginHandler(cfg *config.Config) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var body LoginRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
		}

		body.Username = strings.TrimSpace(body.Username)
		if body.Username == "" || body.Password == "" {
			return fiber.NewError(fiber.StatusBadRequest, "Username and password are required")
		}

		var user models.User
		if err := database.DB.Where("username = ?", body.Username).First(&user).Error; err != nil {
			return fiber.NewError(fiber.StatusUnauthorized, "Wrong username or password")
		}
		if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(body.Password)); err != nil {
			return fiber.NewError(fiber.StatusUnauthorized, "Wrong username or password")
		}

		token, err := GenerateToken(cfg.JWTSecret, &user)
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Could not create token")
		}

		setTokenCookie(c, token, time.Now().Add(TokenTTL))

		return c.JSON(fiber.Map{
			"token": token,
			"user": fiber.Map{
				"id":       user.ID,
				"username": user.Username,
			},
		})
	}
}

// GET /logout
func LogoutHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		clearTokenCookie(c)
		return c.JSON(fiber.Map{"message": "Logged out"})
	}
}

// GET /me
func MeHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		username, err := CurrentUsername(c)
		if err != nil {
			return err
		}
		return c.JSON(fiber.Map{
			"user_id":  c.Locals(CtxUserIDKey),
			"username": username,
		})
	}
}

// POST /change_password
// A successful change stamps PasswordChangedAt, which invalidates every token
// issued before it. The caller has to log in again.
func ChangePasswordHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		username, err := CurrentUsername(c)
		if err != nil {
			return err
		}

		var body ChangePasswordRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
		}
		if body.OldPassword == "" || body.NewPassword == "" || body.ConfirmPassword == "" {
			return fiber.NewError(fiber.StatusBadRequest, "All fields are required")
		}
		if body.NewPassword != body.ConfirmPassword {
			return fiber.NewError(fiber.StatusBadRequest, "New password and confirmation do not match")
		}

		var user models.User
		if err := database.DB.Where("username = ?", username).First(&user).Error; err != nil {
			return fiber.NewError(fiber.StatusUnauthorized, "Unknown user")
		}
		if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(body.OldPassword)); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Current password is wrong")
		}

		hash, err := bcrypt.GenerateFromPassword([]byte(body.NewPassword), bcrypt.DefaultCost)
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Could not hash password")
		}

		updates := map[string]interface{}{
			"password_hash":       string(hash),
			"password_changed_at": time.Now().Truncate(time.Second),
		}
		if err := database.DB.Model(&user).Updates(updates).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Could not update password")
		}

		clearTokenCookie(c)
		return c.JSON(fiber.Map{"message": "Password changed, please log in again"})
	}
}

func setTokenCookie(c *fiber.Ctx, token string, expires time.Time) {
	c.Cookie(&fiber.Cookie{
		Name:     TokenCookieName,
		Value:    token,
		Expires:  expires,
		HTTPOnly: true,
		SameSite: fiber.CookieSameSiteLaxMode,
	})
}

func clearTokenCookie(c *fiber.Ctx) {
	c.Cookie(&fiber.Cookie{
		Name:     TokenCookieName,
		Value:    "",
		Expires:  time.Now().Add(-time.Hour),
		HTTPOnly: true,
		SameSite: fiber.CookieSameSiteLaxMode,
	})
}
