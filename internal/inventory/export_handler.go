package inventory

import (
	"fmt"
	"log"
	"strconv"
	"time"

	"warehouse-backend/internal/database"
	"warehouse-backend/internal/models"

	"github.com/gofiber/fiber/v2"
	"github.com/xuri/excelize/v2"
)

const exportSheet = "Inventory"

var exportHeaders = []string{"ID", "Name", "Brand", "Model", "Quantity", "Remark"}

// GET /export_inventory
// Snapshot of the ledger as an xlsx download, one row per item.
func ExportInventoryHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var items []models.Item
		if err := database.DB.Order("name, brand, model").Find(&items).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Could not read inventory")
		}

		f, err := BuildInventoryWorkbook(items)
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Could not build workbook")
		}
		defer func() {
			if err := f.Close(); err != nil {
				log.Println("Closing export workbook:", err)
			}
		}()

		buf, err := f.WriteToBuffer()
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Could not write workbook")
		}

		filename := fmt.Sprintf("inventory_%s.xlsx", time.Now().Format("20060102"))
		c.Set(fiber.HeaderContentType, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
		c.Set(fiber.HeaderContentDisposition, `attachment; filename=`+filename)
		return c.Send(buf.Bytes())
	}
}

// BuildInventoryWorkbook renders the item list into a single-sheet workbook:
// bold centered header, columns sized to their widest cell.
func BuildInventoryWorkbook(items []models.Item) (*excelize.File, error) {
	f := excelize.NewFile()
	if err := f.SetSheetName("Sheet1", exportSheet); err != nil {
		return nil, err
	}

	widths := make([]int, len(exportHeaders))
	for col, h := range exportHeaders {
		cell, err := excelize.CoordinatesToCellName(col+1, 1)
		if err != nil {
			return nil, err
		}
		if err := f.SetCellValue(exportSheet, cell, h); err != nil {
			return nil, err
		}
		widths[col] = len(h)
	}

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true},
		Alignment: &excelize.Alignment{Horizontal: "center"},
	})
	if err != nil {
		return nil, err
	}
	if err := f.SetCellStyle(exportSheet, "A1", "F1", headerStyle); err != nil {
		return nil, err
	}

	for i, item := range items {
		row := i + 2
		values := []interface{}{item.ID, item.Name, item.Brand, item.Model, item.Quantity, item.Remark}
		for col, v := range values {
			cell, err := excelize.CoordinatesToCellName(col+1, row)
			if err != nil {
				return nil, err
			}
			if err := f.SetCellValue(exportSheet, cell, v); err != nil {
				return nil, err
			}
			if l := len(cellString(v)); l > widths[col] {
				widths[col] = l
			}
		}
	}

	for col, w := range widths {
		name, err := excelize.ColumnNumberToName(col + 1)
		if err != nil {
			return nil, err
		}
		width := float64(w + 2)
		if width > 50 {
			width = 50
		}
		if err := f.SetColWidth(exportSheet, name, name, width); err != nil {
			return nil, err
		}
	}

	return f, nil
}

func cellString(v interface{}) string {
	switch t := v.(type) {
	case string:
		return t
	case int:
		return strconv.Itoa(t)
	case uint:
		return strconv.FormatUint(uint64(t), 10)
	default:
		return fmt.Sprint(v)
	}
}
