package xlsx

import (
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"

	"github.com/FarukBas12/servistakip-sub000/internal/importer"
	"github.com/FarukBas12/servistakip-sub000/internal/stock"
)

// Parser reads XLSX stock sheets exported from the ops console or built by
// hand. Only the first sheet is read; header position and column order are
// detected, not assumed.
type Parser struct{}

func New() *Parser {
	return &Parser{}
}

func (p *Parser) Parse(r io.Reader) ([]stock.ItemRow, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("open xlsx: %w", err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, fmt.Errorf("xlsx file has no sheets")
	}

	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, fmt.Errorf("read sheet %q: %w", sheets[0], err)
	}

	cols, headerIdx, ok := importer.FindHeader(rows)
	if !ok {
		return nil, fmt.Errorf("no header row found: expected a product name column")
	}

	return importer.NormalizeRows(cols, rows[headerIdx+1:]), nil
}
