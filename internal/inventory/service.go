package inventory

import (
	"errors"
	"fmt"
	"time"

	"warehouse-backend/internal/audit"
	"warehouse-backend/internal/models"

	"gorm.io/gorm"
)

var (
	ErrItemNotFound      = errors.New("item not found")
	ErrInsufficientStock = errors.New("insufficient stock")
)

// InsufficientStockError carries the on-hand quantity so the caller can tell
// the user how much is actually left.
type InsufficientStockError struct {
	Current int
}

func (e *InsufficientStockError) Error() string {
	return fmt.Sprintf("insufficient stock, only %d left", e.Current)
}

func (e *InsufficientStockError) Unwrap() error { return ErrInsufficientStock }

type StockInInput struct {
	Name            string
	Brand           string
	Model           string
	Quantity        int
	OperationDate   time.Time
	DeliveryCompany string
	TrackingNumber  string
	Remark          string
	Operator        string
}

type StockOutInput struct {
	Name            string
	Brand           string
	Model           string
	Quantity        int
	OperationDate   time.Time
	InstallLocation string
	PhotoPath       string
	Remark          string
	Operator        string
}

// StockIn increments the ledger quantity for the (name, brand, model) triple,
// creating the item on its first arrival, and appends the movement log. Both
// writes commit in one transaction; sqlite serializes concurrent writers, so
// the read-modify-write cannot interleave.
func StockIn(db *gorm.DB, in StockInInput) (*models.Item, *models.StockLog, error) {
	var item models.Item
	var logRow *models.StockLog

	err := db.Transaction(func(tx *gorm.DB) error {
		err := tx.Where("name = ? AND brand = ? AND model = ?", in.Name, in.Brand, in.Model).
			First(&item).Error
		switch {
		case err == nil:
			item.Quantity += in.Quantity
			if err := tx.Model(&item).Update("quantity", item.Quantity).Error; err != nil {
				return err
			}
		case errors.Is(err, gorm.ErrRecordNotFound):
			item = models.Item{
				Name:     in.Name,
				Brand:    in.Brand,
				Model:    in.Model,
				Quantity: in.Quantity,
				Remark:   in.Remark,
			}
			if err := tx.Create(&item).Error; err != nil {
				return err
			}
		default:
			return err
		}

		logRow, err = audit.Record(tx, audit.Entry{
			Action:          models.StockActionIn,
			Item:            &item,
			Quantity:        in.Quantity,
			OperationDate:   in.OperationDate,
			DeliveryCompany: in.DeliveryCompany,
			TrackingNumber:  in.TrackingNumber,
			Remark:          in.Remark,
			Operator:        in.Operator,
		})
		return err
	})
	if err != nil {
		return nil, nil, err
	}
	return &item, logRow, nil
}

// StockOut decrements the ledger quantity and appends the movement log in one
// transaction. The quantity never goes below zero: a request for more than is
// on hand fails with InsufficientStockError and changes nothing.
func StockOut(db *gorm.DB, in StockOutInput) (*models.Item, *models.StockLog, error) {
	var item models.Item
	var logRow *models.StockLog

	err := db.Transaction(func(tx *gorm.DB) error {
		err := tx.Where("name = ? AND brand = ? AND model = ?", in.Name, in.Brand, in.Model).
			First(&item).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrItemNotFound
		}
		if err != nil {
			return err
		}
		if item.Quantity < in.Quantity {
			return &InsufficientStockError{Current: item.Quantity}
		}

		item.Quantity -= in.Quantity
		if err := tx.Model(&item).Update("quantity", item.Quantity).Error; err != nil {
			return err
		}

		logRow, err = audit.Record(tx, audit.Entry{
			Action:          models.StockActionOut,
			Item:            &item,
			Quantity:        in.Quantity,
			OperationDate:   in.OperationDate,
			InstallLocation: in.InstallLocation,
			PhotoPath:       in.PhotoPath,
			Remark:          in.Remark,
			Operator:        in.Operator,
		})
		return err
	})
	if err != nil {
		return nil, nil, err
	}
	return &item, logRow, nil
}
