package importer

import (
	"io"

	"github.com/FarukBas12/servistakip-sub000/internal/stock"
)

// Format identifies the uploaded spreadsheet format.
type Format string

const (
	FormatXLSX Format = "xlsx"
	FormatCSV  Format = "csv"
)

type Parser interface {
	Parse(r io.Reader) ([]stock.ItemRow, error)
}
