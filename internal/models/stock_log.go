package models

import "time"

type StockAction string

const (
	StockActionIn  StockAction = "in"
	StockActionOut StockAction = "out"
)

// StockLog: append-only record of a single stock movement. Item identity is
// denormalized so the history stays readable even after an item is renamed.
type StockLog struct {
	ID        uint        `gorm:"primaryKey" json:"id"`
	Action    StockAction `gorm:"size:10;index;not null" json:"action"`
	ItemID    uint        `gorm:"index;not null" json:"item_id"`
	ItemName  string      `gorm:"size:100;index;not null" json:"item_name"`
	ItemBrand string      `gorm:"size:100;not null" json:"item_brand"`
	ItemModel string      `gorm:"size:100;not null" json:"item_model"`
	Quantity  int         `gorm:"not null" json:"quantity"`

	// User-supplied date of the physical movement; CreatedAt is when the row
	// was written.
	OperationDate time.Time `gorm:"index;not null" json:"operation_date"`

	// Stock-in only
	DeliveryCompany string `gorm:"size:100" json:"delivery_company"`
	TrackingNumber  string `gorm:"size:100" json:"tracking_number"`

	// Stock-out only
	InstallLocation string `gorm:"size:255" json:"install_location"`
	PhotoPath       string `gorm:"size:255" json:"photo_path"`

	Remark    string    `gorm:"size:255" json:"remark"`
	Operator  string    `gorm:"size:100;not null" json:"operator"`
	CreatedAt time.Time `json:"created_at"`
}
