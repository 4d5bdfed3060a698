package importer

import (
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/FarukBas12/servistakip-sub000/internal/stock"
)

type Service struct {
	parsers map[Format]Parser
}

func NewService(xlsxParser, csvParser Parser) *Service {
	return &Service{
		parsers: map[Format]Parser{
			FormatXLSX: xlsxParser,
			FormatCSV:  csvParser,
		},
	}
}

// Parse normalizes an uploaded spreadsheet into item rows, picking the parser
// from the uploaded filename's extension.
func (s *Service) Parse(filename string, r io.Reader) ([]stock.ItemRow, error) {
	format, err := formatFromFilename(filename)
	if err != nil {
		return nil, err
	}

	parser, ok := s.parsers[format]
	if !ok {
		return nil, fmt.Errorf("no parser registered for format %q", format)
	}

	return parser.Parse(r)
}

func formatFromFilename(filename string) (Format, error) {
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".xlsx", ".xlsm":
		return FormatXLSX, nil
	case ".csv", ".txt":
		return FormatCSV, nil
	default:
		return "", fmt.Errorf("unsupported file type %q: expected .xlsx or .csv", filepath.Ext(filename))
	}
}
