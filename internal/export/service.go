package export

import (
	"context"
	"fmt"

	"github.com/xuri/excelize/v2"

	"github.com/FarukBas12/servistakip-sub000/internal/stock"
)

const sheetName = "Stok"

var headerRow = []any{"Ürün Adı", "Kategori", "Miktar", "Birim", "Kritik Seviye", "Durum"}

// Service builds XLSX snapshots of the stock list for download.
type Service struct {
	items *stock.Service
}

func NewService(items *stock.Service) *Service {
	return &Service{items: items}
}

// Workbook renders the current stock list into a single-sheet workbook,
// one row per item ordered by name, with a low-stock marker column.
func (s *Service) Workbook(ctx context.Context) (*excelize.File, error) {
	items, err := s.items.ListItems(ctx)
	if err != nil {
		return nil, fmt.Errorf("listing items: %w", err)
	}

	f := excelize.NewFile()

	idx, err := f.NewSheet(sheetName)
	if err != nil {
		return nil, fmt.Errorf("creating sheet: %w", err)
	}

	f.SetActiveSheet(idx)

	if err := f.DeleteSheet("Sheet1"); err != nil {
		return nil, fmt.Errorf("removing default sheet: %w", err)
	}

	if err := f.SetSheetRow(sheetName, "A1", &headerRow); err != nil {
		return nil, fmt.Errorf("writing header: %w", err)
	}

	for i, item := range items {
		status := ""
		if item.LowStock() {
			status = "KRİTİK"
		}

		row := []any{
			item.Name,
			item.Category,
			item.Quantity.String(),
			item.Unit,
			item.CriticalLevel.String(),
			status,
		}

		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return nil, fmt.Errorf("resolving cell: %w", err)
		}

		if err := f.SetSheetRow(sheetName, cell, &row); err != nil {
			return nil, fmt.Errorf("writing row %d: %w", i+2, err)
		}
	}

	return f, nil
}
