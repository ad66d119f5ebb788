package upload

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
)

// Photos are stored flat under the upload dir and served at /uploads/<name>.
const photoFormField = "photo"

var allowedPhotoExts = map[string]bool{
	"jpg": true, "jpeg": true, "png": true, "gif": true, "webp": true,
}

// SaveStockOutPhoto stores the optional photo attached to a stock-out request
// and returns its relative path ("uploads/out_<timestamp>.<ext>"). A request
// without a photo returns "" with no error.
func SaveStockOutPhoto(c *fiber.Ctx, uploadDir string) (string, error) {
	file, err := c.FormFile(photoFormField)
	if err != nil || file == nil || file.Filename == "" {
		return "", nil
	}

	ext := strings.TrimPrefix(strings.ToLower(filepath.Ext(file.Filename)), ".")
	if !allowedPhotoExts[ext] {
		ext = "jpg"
	}

	if err := os.MkdirAll(uploadDir, 0o755); err != nil {
		return "", fmt.Errorf("could not create upload dir: %w", err)
	}

	saveName := fmt.Sprintf("out_%s.%s", time.Now().Format("20060102150405"), ext)
	if err := c.SaveFile(file, filepath.Join(uploadDir, saveName)); err != nil {
		return "", fmt.Errorf("could not save photo: %w", err)
	}

	return "uploads/" + saveName, nil
}
