package upload

import (
	"bytes"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"
)

func uploadApp(dir string) *fiber.App {
	app := fiber.New()
	app.Post("/out", func(c *fiber.Ctx) error {
		path, err := SaveStockOutPhoto(c, dir)
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}
		return c.JSON(fiber.Map{"photo_path": path})
	})
	return app
}

func multipartRequest(t *testing.T, filename string, content []byte) *http.Request {
	t.Helper()
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	if filename != "" {
		fw, err := w.CreateFormFile("photo", filename)
		if err != nil {
			t.Fatalf("form file: %v", err)
		}
		if _, err := fw.Write(content); err != nil {
			t.Fatalf("write part: %v", err)
		}
	}
	if err := w.WriteField("quantity", "1"); err != nil {
		t.Fatalf("write field: %v", err)
	}
	if err := w.Close(); err != nil {
		t.Fatalf("close writer: %v", err)
	}
	req := httptest.NewRequest(http.MethodPost, "/out", &buf)
	req.Header.Set("Content-Type", w.FormDataContentType())
	return req
}

func photoPathFrom(t *testing.T, resp *http.Response) string {
	t.Helper()
	var payload struct {
		PhotoPath string `json:"photo_path"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		t.Fatalf("decode: %v", err)
	}
	return payload.PhotoPath
}

func TestSaveStockOutPhoto(t *testing.T) {
	dir := t.TempDir()
	app := uploadApp(dir)

	resp, err := app.Test(multipartRequest(t, "site photo.PNG", []byte("png-bytes")))
	if err != nil {
		t.Fatalf("request: %v", err)
	}
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200 got %d", resp.StatusCode)
	}

	path := photoPathFrom(t, resp)
	if !strings.HasPrefix(path, "uploads/out_") || !strings.HasSuffix(path, ".png") {
		t.Fatalf("unexpected photo path: %q", path)
	}

	saved := filepath.Join(dir, strings.TrimPrefix(path, "uploads/"))
	data, err := os.ReadFile(saved)
	if err != nil {
		t.Fatalf("read saved photo: %v", err)
	}
	if string(data) != "png-bytes" {
		t.Fatalf("saved photo differs: %q", data)
	}
}

func TestSaveStockOutPhotoUnknownExtension(t *testing.T) {
	dir := t.TempDir()
	app := uploadApp(dir)

	resp, err := app.Test(multipartRequest(t, "../../evil.exe", []byte("x")))
	if err != nil {
		t.Fatalf("request: %v", err)
	}
	path := photoPathFrom(t, resp)
	// Unknown extensions fall back to jpg; the stored name never keeps any
	// part of the client filename.
	if !strings.HasSuffix(path, ".jpg") || strings.Contains(path, "evil") {
		t.Fatalf("unexpected photo path: %q", path)
	}
}

func TestSaveStockOutPhotoOptional(t *testing.T) {
	dir := t.TempDir()
	app := uploadApp(dir)

	resp, err := app.Test(multipartRequest(t, "", nil))
	if err != nil {
		t.Fatalf("request: %v", err)
	}
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200 got %d", resp.StatusCode)
	}
	if path := photoPathFrom(t, resp); path != "" {
		t.Fatalf("expected empty path got %q", path)
	}
}
