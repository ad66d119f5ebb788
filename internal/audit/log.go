package audit

import (
	"fmt"
	"time"

	"warehouse-backend/internal/models"

	"gorm.io/gorm"
)

// Entry describes one stock movement to append to the log. Item identity is
// copied onto the row so later edits or renames never rewrite history.
type Entry struct {
	Action          models.StockAction
	Item            *models.Item
	Quantity        int
	OperationDate   time.Time
	DeliveryCompany string
	TrackingNumber  string
	InstallLocation string
	PhotoPath       string
	Remark          string
	Operator        string
}

// Record appends a log row on the given connection. Callers pass their
// transaction handle so the ledger update and the log append commit together.
func Record(db *gorm.DB, e Entry) (*models.StockLog, error) {
	row := models.StockLog{
		Action:          e.Action,
		ItemID:          e.Item.ID,
		ItemName:        e.Item.Name,
		ItemBrand:       e.Item.Brand,
		ItemModel:       e.Item.Model,
		Quantity:        e.Quantity,
		OperationDate:   e.OperationDate,
		DeliveryCompany: e.DeliveryCompany,
		TrackingNumber:  e.TrackingNumber,
		InstallLocation: e.InstallLocation,
		PhotoPath:       e.PhotoPath,
		Remark:          e.Remark,
		Operator:        e.Operator,
	}

	if err := db.Create(&row).Error; err != nil {
		return nil, fmt.Errorf("could not write stock log: %w", err)
	}
	return &row, nil
}
