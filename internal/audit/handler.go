package audit

import (
	"warehouse-backend/internal/database"
	"warehouse-backend/internal/models"

	"github.com/gofiber/fiber/v2"
)

// The log view is capped, not paginated. 200 rows cover weeks of activity for
// a single warehouse.
const logQueryLimit = 200

type StockLogResponse struct {
	ID              uint               `json:"id"`
	Action          models.StockAction `json:"action"`
	ItemID          uint               `json:"item_id"`
	ItemName        string             `json:"item_name"`
	ItemBrand       string             `json:"item_brand"`
	ItemModel       string             `json:"item_model"`
	Quantity        int                `json:"quantity"`
	OperationDate   string             `json:"operation_date"`
	DeliveryCompany string             `json:"delivery_company,omitempty"`
	TrackingNumber  string             `json:"tracking_number,omitempty"`
	InstallLocation string             `json:"install_location,omitempty"`
	PhotoPath       string             `json:"photo_path,omitempty"`
	Remark          string             `json:"remark,omitempty"`
	Operator        string             `json:"operator"`
	CreatedAt       string             `json:"created_at"`
}

// GET /logs?action=in|out&name=<substring>
func ListStockLogsHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		action := c.Query("action")
		name := c.Query("name")

		dbq := database.DB.Model(&models.StockLog{})
		if action == string(models.StockActionIn) || action == string(models.StockActionOut) {
			dbq = dbq.Where("action = ?", action)
		}
		if name != "" {
			dbq = dbq.Where("item_name LIKE ?", "%"+name+"%")
		}

		var rows []models.StockLog
		if err := dbq.Order("created_at DESC, id DESC").Limit(logQueryLimit).Find(&rows).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Could not list stock logs")
		}

		resp := make([]StockLogResponse, 0, len(rows))
		for _, r := range rows {
			resp = append(resp, StockLogResponse{
				ID:              r.ID,
				Action:          r.Action,
				ItemID:          r.ItemID,
				ItemName:        r.ItemName,
				ItemBrand:       r.ItemBrand,
				ItemModel:       r.ItemModel,
				Quantity:        r.Quantity,
				OperationDate:   r.OperationDate.Format("2006-01-02"),
				DeliveryCompany: r.DeliveryCompany,
				TrackingNumber:  r.TrackingNumber,
				InstallLocation: r.InstallLocation,
				PhotoPath:       r.PhotoPath,
				Remark:          r.Remark,
				Operator:        r.Operator,
				CreatedAt:       r.CreatedAt.Format("2006-01-02 15:04:05"),
			})
		}

		return c.JSON(resp)
	}
}
