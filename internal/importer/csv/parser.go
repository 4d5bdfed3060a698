package csv

import (
	"encoding/csv"
	"fmt"
	"io"

	enc "github.com/FarukBas12/servistakip-sub000/internal/encoding"
	"github.com/FarukBas12/servistakip-sub000/internal/importer"
	"github.com/FarukBas12/servistakip-sub000/internal/stock"
)

// Parser reads semicolon-separated CSV stock sheets. Turkish Excel saves CSV
// with ';' and legacy codepages, so input runs through encoding detection
// first.
type Parser struct{}

func New() *Parser {
	return &Parser{}
}

func (p *Parser) Parse(r io.Reader) ([]stock.ItemRow, error) {
	utf8r, err := enc.NewUTF8Reader(r)
	if err != nil {
		return nil, fmt.Errorf("detect encoding: %w", err)
	}

	reader := csv.NewReader(utf8r)
	reader.Comma = ';'
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true

	rows, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("read csv: %w", err)
	}

	cols, headerIdx, ok := importer.FindHeader(rows)
	if !ok {
		return nil, fmt.Errorf("no header row found: expected a product name column")
	}

	return importer.NormalizeRows(cols, rows[headerIdx+1:]), nil
}
