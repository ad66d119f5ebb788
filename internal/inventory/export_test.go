package inventory

import (
	"testing"

	"warehouse-backend/internal/models"
)

func TestBuildInventoryWorkbook(t *testing.T) {
	items := []models.Item{
		{ID: 1, Name: "Camera", Brand: "Hik", Model: "C2", Quantity: 3, Remark: "dome"},
		{ID: 2, Name: "Router", Brand: "Acme", Model: "X100", Quantity: 7},
	}

	f, err := BuildInventoryWorkbook(items)
	if err != nil {
		t.Fatalf("build workbook: %v", err)
	}
	defer f.Close()

	rows, err := f.GetRows(exportSheet)
	if err != nil {
		t.Fatalf("read rows: %v", err)
	}
	if len(rows) != 3 {
		t.Fatalf("expected header + 2 rows got %d", len(rows))
	}

	header := rows[0]
	for i, want := range exportHeaders {
		if header[i] != want {
			t.Fatalf("header col %d: expected %q got %q", i, want, header[i])
		}
	}

	if rows[1][1] != "Camera" || rows[1][4] != "3" || rows[1][5] != "dome" {
		t.Fatalf("unexpected first row: %v", rows[1])
	}
	if rows[2][1] != "Router" || rows[2][3] != "X100" || rows[2][4] != "7" {
		t.Fatalf("unexpected second row: %v", rows[2])
	}

	// Header is bold and centered.
	styleID, err := f.GetCellStyle(exportSheet, "A1")
	if err != nil {
		t.Fatalf("get style: %v", err)
	}
	style, err := f.GetStyle(styleID)
	if err != nil {
		t.Fatalf("resolve style: %v", err)
	}
	if style.Font == nil || !style.Font.Bold {
		t.Fatalf("header is not bold")
	}
	if style.Alignment == nil || style.Alignment.Horizontal != "center" {
		t.Fatalf("header is not centered")
	}
}
