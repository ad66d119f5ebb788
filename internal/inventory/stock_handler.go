package inventory

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"warehouse-backend/internal/auth"
	"warehouse-backend/internal/config"
	"warehouse-backend/internal/database"
	"warehouse-backend/internal/upload"

	"github.com/gofiber/fiber/v2"
)

type StockInRequest struct {
	Name            string `json:"name" form:"name"`
	Brand           string `json:"brand" form:"brand"`
	Model           string `json:"model" form:"model"`
	Quantity        int    `json:"quantity" form:"quantity"`
	OperationDate   string `json:"operation_date" form:"operation_date"` // "2025-08-31"
	DeliveryCompany string `json:"delivery_company" form:"delivery_company"`
	TrackingNumber  string `json:"tracking_number" form:"tracking_number"`
	Remark          string `json:"remark" form:"remark"`
}

type StockOutRequest struct {
	Name            string `json:"name" form:"name"`
	Brand           string `json:"brand" form:"brand"`
	Model           string `json:"model" form:"model"`
	Quantity        int    `json:"quantity" form:"quantity"`
	OperationDate   string `json:"operation_date" form:"operation_date"`
	InstallLocation string `json:"install_location" form:"install_location"`
	Remark          string `json:"remark" form:"remark"`
}

func parseIdentity(name, brand, model string) (string, string, string, error) {
	name = strings.TrimSpace(name)
	brand = strings.TrimSpace(brand)
	model = strings.TrimSpace(model)
	if name == "" || brand == "" || model == "" {
		return "", "", "", fiber.NewError(fiber.StatusBadRequest, "Name, brand and model are required")
	}
	return name, brand, model, nil
}

func parseOperationDate(s string) (time.Time, error) {
	d, err := time.Parse("2006-01-02", s)
	if err != nil {
		return time.Time{}, fiber.NewError(fiber.StatusBadRequest, "Operation date must be 'YYYY-MM-DD'")
	}
	return d, nil
}

// POST /in
func StockInHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		operator, err := auth.CurrentUsername(c)
		if err != nil {
			return err
		}

		var body StockInRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
		}

		name, brand, model, err := parseIdentity(body.Name, body.Brand, body.Model)
		if err != nil {
			return err
		}
		if body.Quantity <= 0 {
			return fiber.NewError(fiber.StatusBadRequest, "Quantity must be a positive integer")
		}
		opDate, err := parseOperationDate(body.OperationDate)
		if err != nil {
			return err
		}

		item, logRow, err := StockIn(database.DB, StockInInput{
			Name:            name,
			Brand:           brand,
			Model:           model,
			Quantity:        body.Quantity,
			OperationDate:   opDate,
			DeliveryCompany: strings.TrimSpace(body.DeliveryCompany),
			TrackingNumber:  strings.TrimSpace(body.TrackingNumber),
			Remark:          strings.TrimSpace(body.Remark),
			Operator:        operator,
		})
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Stock-in failed")
		}

		return c.Status(fiber.StatusCreated).JSON(fiber.Map{
			"message":  "Stock-in recorded",
			"item_id":  item.ID,
			"quantity": item.Quantity,
			"log_id":   logRow.ID,
		})
	}
}

// POST /out (multipart, optional photo)
func StockOutHandler(cfg *config.Config) fiber.Handler {
	return func(c *fiber.Ctx) error {
		operator, err := auth.CurrentUsername(c)
		if err != nil {
			return err
		}

		var body StockOutRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
		}

		name, brand, model, err := parseIdentity(body.Name, body.Brand, body.Model)
		if err != nil {
			return err
		}
		if body.Quantity <= 0 {
			return fiber.NewError(fiber.StatusBadRequest, "Quantity must be a positive integer")
		}
		opDate, err := parseOperationDate(body.OperationDate)
		if err != nil {
			return err
		}

		photoPath, err := upload.SaveStockOutPhoto(c, cfg.UploadDir)
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Could not save photo")
		}

		item, logRow, err := StockOut(database.DB, StockOutInput{
			Name:            name,
			Brand:           brand,
			Model:           model,
			Quantity:        body.Quantity,
			OperationDate:   opDate,
			InstallLocation: strings.TrimSpace(body.InstallLocation),
			PhotoPath:       photoPath,
			Remark:          strings.TrimSpace(body.Remark),
			Operator:        operator,
		})
		if err != nil {
			var insufficient *InsufficientStockError
			switch {
			case errors.Is(err, ErrItemNotFound):
				return fiber.NewError(fiber.StatusNotFound, "Item does not exist, stock it in first")
			case errors.As(err, &insufficient):
				return fiber.NewError(fiber.StatusConflict,
					fmt.Sprintf("Insufficient stock, only %d left", insufficient.Current))
			default:
				return fiber.NewError(fiber.StatusInternalServerError, "Stock-out failed")
			}
		}

		return c.Status(fiber.StatusCreated).JSON(fiber.Map{
			"message":  "Stock-out recorded",
			"item_id":  item.ID,
			"quantity": item.Quantity,
			"log_id":   logRow.ID,
		})
	}
}
