package auth

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"warehouse-backend/internal/config"
	"warehouse-backend/internal/database"
	"warehouse-backend/internal/models"

	"github.com/gofiber/fiber/v2"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := "file:" + t.Name() + "?mode=memory&cache=shared"
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	if err := db.AutoMigrate(&models.User{}); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return db
}

func setupAuthApp(t *testing.T) (*fiber.App, *config.Config) {
	t.Helper()
	database.DB = setupTestDB(t)
	if err := database.SeedAdminUser(database.DB); err != nil {
		t.Fatalf("seed admin: %v", err)
	}

	cfg := &config.Config{JWTSecret: "test-secret-test-secret-test-secret-1234"}

	app := fiber.New()
	app.Post("/login", LoginHandler(cfg))

	protected := app.Group("")
	protected.Use(JWTMiddleware(cfg))
	protected.Get("/me", MeHandler())
	protected.Get("/logout", LogoutHandler())
	protected.Post("/change_password", ChangePasswordHandler())

	return app, cfg
}

func login(t *testing.T, app *fiber.App, username, password string) (*http.Response, string) {
	t.Helper()
	form := url.Values{"username": {username}, "password": {password}}
	req := httptest.NewRequest(http.MethodPost, "/login", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("login request: %v", err)
	}
	if resp.StatusCode != http.StatusOK {
		return resp, ""
	}
	var payload struct {
		Token string `json:"token"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		t.Fatalf("decode login response: %v", err)
	}
	return resp, payload.Token
}

func authedRequest(t *testing.T, app *fiber.App, method, path, token string, form url.Values) *http.Response {
	t.Helper()
	var req *http.Request
	if form != nil {
		req = httptest.NewRequest(method, path, strings.NewReader(form.Encode()))
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	} else {
		req = httptest.NewRequest(method, path, nil)
	}
	req.Header.Set("Authorization", "Bearer "+token)
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("request %s: %v", path, err)
	}
	return resp
}

func TestLogin(t *testing.T) {
	app, _ := setupAuthApp(t)

	resp, token := login(t, app, "admin", "admin123")
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200 got %d", resp.StatusCode)
	}
	if token == "" {
		t.Fatal("expected a token in the response")
	}

	var cookieSet bool
	for _, c := range resp.Cookies() {
		if c.Name == TokenCookieName && c.Value != "" {
			cookieSet = true
			if !c.HttpOnly {
				t.Fatal("token cookie must be HttpOnly")
			}
		}
	}
	if !cookieSet {
		t.Fatal("token cookie was not set")
	}

	if resp, _ := login(t, app, "admin", "wrong"); resp.StatusCode != http.StatusUnauthorized {
		t.Fatalf("wrong password: expected 401 got %d", resp.StatusCode)
	}
	if resp, _ := login(t, app, "nobody", "admin123"); resp.StatusCode != http.StatusUnauthorized {
		t.Fatalf("unknown user: expected 401 got %d", resp.StatusCode)
	}
}

func TestMiddleware(t *testing.T) {
	app, _ := setupAuthApp(t)

	// No token at all.
	req := httptest.NewRequest(http.MethodGet, "/me", nil)
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("request: %v", err)
	}
	if resp.StatusCode != http.StatusUnauthorized {
		t.Fatalf("expected 401 got %d", resp.StatusCode)
	}

	// Garbage token.
	resp = authedRequest(t, app, http.MethodGet, "/me", "not-a-token", nil)
	if resp.StatusCode != http.StatusUnauthorized {
		t.Fatalf("garbage token: expected 401 got %d", resp.StatusCode)
	}

	// Valid bearer token.
	_, token := login(t, app, "admin", "admin123")
	resp = authedRequest(t, app, http.MethodGet, "/me", token, nil)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200 got %d", resp.StatusCode)
	}
	var payload struct {
		Username string `json:"username"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if payload.Username != "admin" {
		t.Fatalf("expected admin got %q", payload.Username)
	}

	// Cookie works too.
	req = httptest.NewRequest(http.MethodGet, "/me", nil)
	req.AddCookie(&http.Cookie{Name: TokenCookieName, Value: token})
	resp, err = app.Test(req)
	if err != nil {
		t.Fatalf("cookie request: %v", err)
	}
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("cookie auth: expected 200 got %d", resp.StatusCode)
	}
}

func TestTokenDiesWithPasswordChange(t *testing.T) {
	app, _ := setupAuthApp(t)

	_, token := login(t, app, "admin", "admin123")

	// Simulate a later password change.
	changed := time.Now().Add(time.Minute).Truncate(time.Second)
	if err := database.DB.Model(&models.User{}).
		Where("username = ?", "admin").
		Update("password_changed_at", changed).Error; err != nil {
		t.Fatalf("stamp change: %v", err)
	}

	resp := authedRequest(t, app, http.MethodGet, "/me", token, nil)
	if resp.StatusCode != http.StatusUnauthorized {
		t.Fatalf("expected 401 for stale token got %d", resp.StatusCode)
	}
}

func TestChangePassword(t *testing.T) {
	app, _ := setupAuthApp(t)
	_, token := login(t, app, "admin", "admin123")

	// Confirmation mismatch.
	form := url.Values{
		"old_password":     {"admin123"},
		"new_password":     {"stronger-pass"},
		"confirm_password": {"different"},
	}
	resp := authedRequest(t, app, http.MethodPost, "/change_password", token, form)
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("mismatch: expected 400 got %d", resp.StatusCode)
	}

	// Wrong current password.
	form.Set("old_password", "nope")
	form.Set("confirm_password", "stronger-pass")
	resp = authedRequest(t, app, http.MethodPost, "/change_password", token, form)
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("wrong old: expected 400 got %d", resp.StatusCode)
	}

	// Success.
	form.Set("old_password", "admin123")
	resp = authedRequest(t, app, http.MethodPost, "/change_password", token, form)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200 got %d", resp.StatusCode)
	}

	if resp, _ := login(t, app, "admin", "admin123"); resp.StatusCode != http.StatusUnauthorized {
		t.Fatalf("old password still works, got %d", resp.StatusCode)
	}
	if resp, _ := login(t, app, "admin", "stronger-pass"); resp.StatusCode != http.StatusOK {
		t.Fatalf("new password rejected, got %d", resp.StatusCode)
	}
}
