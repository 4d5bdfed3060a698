package xlsx_test

import (
	"bytes"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/FarukBas12/servistakip-sub000/internal/importer/xlsx"
)

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func buildWorkbook(t *testing.T, rows [][]any) *bytes.Buffer {
	t.Helper()

	f := excelize.NewFile()
	defer f.Close()

	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		require.NoError(t, err)
		require.NoError(t, f.SetSheetRow("Sheet1", cell, &row))
	}

	var buf bytes.Buffer
	require.NoError(t, f.Write(&buf))

	return &buf
}

func TestParser_Parse(t *testing.T) {
	buf := buildWorkbook(t, [][]any{
		{"Ürün Adı", "Kategori", "Miktar", "Birim", "Kritik"},
		{"Vida M6", "Hırdavat", 10, "Adet", 20},
		{"Contalı Musluk", nil, 15, "Adet", nil},
	})

	p := xlsx.New()
	items, err := p.Parse(buf)
	require.NoError(t, err)
	require.Len(t, items, 2)

	assert.Equal(t, "Vida M6", items[0].Name)
	assert.Equal(t, "Hırdavat", items[0].Category)
	assert.True(t, dec("10").Equal(items[0].Quantity))
	assert.True(t, dec("20").Equal(items[0].CriticalLevel))

	assert.Equal(t, "Contalı Musluk", items[1].Name)
	assert.Equal(t, "Genel", items[1].Category)
	assert.True(t, dec("15").Equal(items[1].Quantity))
	assert.True(t, dec("5").Equal(items[1].CriticalLevel))
}

func TestParser_Parse_HeaderNotFirstRow(t *testing.T) {
	buf := buildWorkbook(t, [][]any{
		{"Depo stok sayımı"},
		{},
		{"Ürün Adı", "Miktar"},
		{"Silikon", 3},
	})

	p := xlsx.New()
	items, err := p.Parse(buf)
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, "Silikon", items[0].Name)
	assert.True(t, dec("3").Equal(items[0].Quantity))
}

func TestParser_Parse_NoHeader(t *testing.T) {
	buf := buildWorkbook(t, [][]any{
		{"foo", "bar"},
		{"1", "2"},
	})

	p := xlsx.New()
	_, err := p.Parse(buf)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no header row")
}

func TestParser_Parse_NotAnXLSX(t *testing.T) {
	p := xlsx.New()
	_, err := p.Parse(bytes.NewReader([]byte("definitely not a zip archive")))
	require.Error(t, err)
}
