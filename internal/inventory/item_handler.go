package inventory

import (
	"net/url"
	"strings"

	"warehouse-backend/internal/database"
	"warehouse-backend/internal/models"

	"github.com/gofiber/fiber/v2"
)

type UpdateItemRequest struct {
	Name   string `json:"name" form:"name"`
	Brand  string `json:"brand" form:"brand"`
	Model  string `json:"model" form:"model"`
	Remark string `json:"remark" form:"remark"`
}

// GET /inventory?search=<term>
func ListInventoryHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		search := strings.TrimSpace(c.Query("search"))

		dbq := database.DB.Model(&models.Item{})
		if search != "" {
			// sqlite LIKE is case-insensitive for ASCII
			pattern := "%" + search + "%"
			dbq = dbq.Where("name LIKE ? OR model LIKE ?", pattern, pattern)
		}

		var items []models.Item
		if err := dbq.Order("name, brand, model").Find(&items).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Could not list inventory")
		}

		return c.JSON(fiber.Map{
			"items":  items,
			"search": search,
		})
	}
}

// GET /edit/:item_id
func GetItemHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := c.ParamsInt("item_id")
		if err != nil || id <= 0 {
			return fiber.NewError(fiber.StatusBadRequest, "Invalid item id")
		}

		var item models.Item
		if err := database.DB.First(&item, "id = ?", id).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, "Item does not exist")
		}
		return c.JSON(item)
	}
}

// POST /edit/:item_id
// Only identity fields and the remark are editable. Quantity moves exclusively
// through stock transactions so the ledger always matches the log.
func UpdateItemHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := c.ParamsInt("item_id")
		if err != nil || id <= 0 {
			return fiber.NewError(fiber.StatusBadRequest, "Invalid item id")
		}

		var item models.Item
		if err := database.DB.First(&item, "id = ?", id).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, "Item does not exist")
		}

		var body UpdateItemRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
		}

		name, brand, model, err := parseIdentity(body.Name, body.Brand, body.Model)
		if err != nil {
			return err
		}

		updates := map[string]interface{}{
			"name":   name,
			"brand":  brand,
			"model":  model,
			"remark": strings.TrimSpace(body.Remark),
		}
		if err := database.DB.Model(&item).Updates(updates).Error; err != nil {
			return fiber.NewError(fiber.StatusConflict, "Another item already uses this name/brand/model")
		}

		return c.JSON(fiber.Map{"message": "Item updated", "item": item})
	}
}

func paramString(c *fiber.Ctx, key string) string {
	raw := c.Params(key)
	if decoded, err := url.QueryUnescape(raw); err == nil {
		return decoded
	}
	return raw
}

// GET /api/names
func ListNamesHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		names := make([]string, 0)
		if err := database.DB.Model(&models.Item{}).
			Distinct().Order("name").Pluck("name", &names).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Could not list names")
		}
		return c.JSON(fiber.Map{"names": names})
	}
}

// GET /api/brands/:name
func ListBrandsHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		name := paramString(c, "name")

		brands := make([]string, 0)
		if err := database.DB.Model(&models.Item{}).
			Where("name = ?", name).
			Distinct().Order("brand").Pluck("brand", &brands).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Could not list brands")
		}
		return c.JSON(fiber.Map{"brands": brands})
	}
}

// GET /api/models/:name/:brand
func ListModelsHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		name := paramString(c, "name")
		brand := paramString(c, "brand")

		modelNames := make([]string, 0)
		if err := database.DB.Model(&models.Item{}).
			Where("name = ? AND brand = ?", name, brand).
			Distinct().Order("model").Pluck("model", &modelNames).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Could not list models")
		}
		return c.JSON(fiber.Map{"models": modelNames})
	}
}

// GET /api/item/:name/:brand/:model
func GetItemInfoHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		name := paramString(c, "name")
		brand := paramString(c, "brand")
		model := paramString(c, "model")

		var item models.Item
		err := database.DB.
			Where("name = ? AND brand = ? AND model = ?", name, brand, model).
			First(&item).Error
		if err != nil {
			return fiber.NewError(fiber.StatusNotFound, "Item does not exist")
		}

		return c.JSON(fiber.Map{
			"id":       item.ID,
			"quantity": item.Quantity,
			"remark":   item.Remark,
		})
	}
}
