package importer

import (
	"strings"

	"github.com/shopspring/decimal"

	"github.com/FarukBas12/servistakip-sub000/internal/stock"
)

// Import defaults applied when a column is missing or a cell is blank.
var (
	defaultCategory      = "Genel"
	defaultUnit          = "Adet"
	defaultCriticalLevel = decimal.NewFromInt(5)
)

// Accepted header aliases per logical field. Sheets come from several
// generations of the ops console plus hand-made files, so both Turkish and
// English headers circulate.
var (
	nameAliases     = []string{"Ürün Adı", "Urun Adi", "Ürün", "Ad", "Name", "Product"}
	categoryAliases = []string{"Kategori", "Category"}
	quantityAliases = []string{"Miktar", "Stok", "Quantity"}
	unitAliases     = []string{"Birim", "Unit"}
	criticalAliases = []string{"Kritik", "Kritik Seviye", "Kritik Stok", "Critical"}
)

// colIndex maps normalized header names to their column position.
type colIndex map[string]int

// FindHeader scans rows for the first one carrying a recognizable name
// column. Sheets often start with title or note rows before the real header.
// Returns the column index map and the header's row position, or false when
// no header is present.
func FindHeader(rows [][]string) (colIndex, int, bool) {
	for rowIdx, row := range rows {
		cols := make(colIndex)

		for i, cell := range row {
			name := strings.TrimSpace(cell)
			if name != "" {
				cols[strings.ToLower(name)] = i
			}
		}

		if _, ok := lookup(cols, nameAliases); ok {
			return cols, rowIdx, true
		}
	}

	return nil, 0, false
}

// NormalizeRows turns loosely shaped data rows into strict ItemRow records
// using the header's column positions. Rows without a name are skipped
// silently; missing cells take the import defaults.
func NormalizeRows(cols colIndex, rows [][]string) []stock.ItemRow {
	nameIdx, _ := lookup(cols, nameAliases)
	categoryIdx, hasCategory := lookup(cols, categoryAliases)
	quantityIdx, hasQuantity := lookup(cols, quantityAliases)
	unitIdx, hasUnit := lookup(cols, unitAliases)
	criticalIdx, hasCritical := lookup(cols, criticalAliases)

	var out []stock.ItemRow

	for _, row := range rows {
		name := cellValue(row, nameIdx)
		if name == "" {
			continue
		}

		item := stock.ItemRow{
			Name:          name,
			Category:      defaultCategory,
			Quantity:      decimal.Zero,
			Unit:          defaultUnit,
			CriticalLevel: defaultCriticalLevel,
		}

		if hasCategory {
			if v := cellValue(row, categoryIdx); v != "" {
				item.Category = v
			}
		}

		if hasQuantity {
			if d, ok := parseDecimalCell(cellValue(row, quantityIdx)); ok {
				item.Quantity = d
			}
		}

		if hasUnit {
			if v := cellValue(row, unitIdx); v != "" {
				item.Unit = v
			}
		}

		if hasCritical {
			if d, ok := parseDecimalCell(cellValue(row, criticalIdx)); ok {
				item.CriticalLevel = d
			}
		}

		out = append(out, item)
	}

	return out
}

func lookup(cols colIndex, aliases []string) (int, bool) {
	for _, alias := range aliases {
		if idx, ok := cols[strings.ToLower(alias)]; ok {
			return idx, true
		}
	}

	return 0, false
}

// cellValue safely gets a trimmed cell value from a row.
func cellValue(row []string, idx int) string {
	if idx < 0 || idx >= len(row) {
		return ""
	}

	return strings.TrimSpace(row[idx])
}

// parseDecimalCell parses a quantity cell, accepting the Turkish decimal
// comma ("2,5" and "1.250,75") alongside plain dot notation.
func parseDecimalCell(s string) (decimal.Decimal, bool) {
	if s == "" {
		return decimal.Zero, false
	}

	if strings.Contains(s, ",") {
		// Dots are thousand separators when a comma is present.
		s = strings.ReplaceAll(s, ".", "")
		s = strings.ReplaceAll(s, ",", ".")
	}

	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, false
	}

	return d, true
}
