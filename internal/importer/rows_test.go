package importer_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/FarukBas12/servistakip-sub000/internal/importer"
)

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func TestFindHeader_SkipsPreamble(t *testing.T) {
	rows := [][]string{
		{"Stok Listesi - Ocak"},
		{},
		{"Ürün Adı", "Kategori", "Miktar", "Birim", "Kritik"},
		{"Vida M6", "Hırdavat", "10", "Adet", "20"},
	}

	cols, headerIdx, ok := importer.FindHeader(rows)
	require.True(t, ok)
	assert.Equal(t, 2, headerIdx)

	items := importer.NormalizeRows(cols, rows[headerIdx+1:])
	require.Len(t, items, 1)
	assert.Equal(t, "Vida M6", items[0].Name)
	assert.Equal(t, "Hırdavat", items[0].Category)
	assert.True(t, dec("10").Equal(items[0].Quantity))
	assert.Equal(t, "Adet", items[0].Unit)
	assert.True(t, dec("20").Equal(items[0].CriticalLevel))
}

func TestFindHeader_NoHeader(t *testing.T) {
	rows := [][]string{
		{"foo", "bar"},
		{"1", "2"},
	}

	_, _, ok := importer.FindHeader(rows)
	assert.False(t, ok)
}

func TestNormalizeRows_DefaultsAndSkips(t *testing.T) {
	rows := [][]string{
		{"Ürün Adı", "Miktar"},
		{"Contalı Musluk", "15"},
		{"", "99"},               // nameless row dropped silently
		{"Silikon"},              // short row, quantity column missing entirely
		{"Kablo 2x1.5", "abc"},   // unparseable quantity falls back to 0
		{"Pil AA", "1.250,75"},   // Turkish thousand separator + decimal comma
	}

	cols, headerIdx, ok := importer.FindHeader(rows)
	require.True(t, ok)

	items := importer.NormalizeRows(cols, rows[headerIdx+1:])
	require.Len(t, items, 4)

	assert.Equal(t, "Contalı Musluk", items[0].Name)
	assert.True(t, dec("15").Equal(items[0].Quantity))
	assert.Equal(t, "Genel", items[0].Category)
	assert.Equal(t, "Adet", items[0].Unit)
	assert.True(t, dec("5").Equal(items[0].CriticalLevel))

	assert.Equal(t, "Silikon", items[1].Name)
	assert.True(t, items[1].Quantity.IsZero())

	assert.Equal(t, "Kablo 2x1.5", items[2].Name)
	assert.True(t, items[2].Quantity.IsZero())

	assert.Equal(t, "Pil AA", items[3].Name)
	assert.True(t, dec("1250.75").Equal(items[3].Quantity))
}

func TestNormalizeRows_EnglishAliases(t *testing.T) {
	rows := [][]string{
		{"Name", "Category", "Quantity", "Unit", "Critical"},
		{"Hinge 40mm", "Hardware", "2,5", "kg", "1"},
	}

	cols, headerIdx, ok := importer.FindHeader(rows)
	require.True(t, ok)

	items := importer.NormalizeRows(cols, rows[headerIdx+1:])
	require.Len(t, items, 1)
	assert.Equal(t, "Hinge 40mm", items[0].Name)
	assert.Equal(t, "Hardware", items[0].Category)
	assert.True(t, dec("2.5").Equal(items[0].Quantity))
	assert.Equal(t, "kg", items[0].Unit)
	assert.True(t, dec("1").Equal(items[0].CriticalLevel))
}

func TestNormalizeRows_CriticalAlias(t *testing.T) {
	rows := [][]string{
		{"Ürün Adı", "Kritik Seviye"},
		{"Vida M6", "20"},
	}

	cols, headerIdx, ok := importer.FindHeader(rows)
	require.True(t, ok)

	items := importer.NormalizeRows(cols, rows[headerIdx+1:])
	require.Len(t, items, 1)
	assert.True(t, dec("20").Equal(items[0].CriticalLevel))
}
