package main

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func writeSheet(t *testing.T, sheet string, rows [][]interface{}) string {
	t.Helper()
	f := excelize.NewFile()
	defer f.Close()

	if sheet != "Sheet1" {
		_, err := f.NewSheet(sheet)
		require.NoError(t, err)
	}
	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		require.NoError(t, err)
		require.NoError(t, f.SetSheetRow(sheet, cell, &row))
	}

	path := filepath.Join(t.TempDir(), "products.xlsx")
	require.NoError(t, f.SaveAs(path))
	return path
}

func TestReadProductsFromXLSX(t *testing.T) {
	path := writeSheet(t, "Sheet1", [][]interface{}{
		{"name", "description", "price", "stock", "category", "image"},
		{"Canvas Tote", "Heavy canvas", 35.5, 12, "Bags", "https://placehold.co/1"},
		{"  Key Ring ", "Brass ring", 9, "", "", ""},
		{"Broken", "Bad price", "abc", 1, "Bags", ""},
		{"", "No name", 5, 1, "Bags", ""},
		{"Negative", "Below zero", -1, 1, "Bags", ""},
	})

	products, skipped, err := readProductsFromXLSX(path, "")
	require.NoError(t, err)

	require.Len(t, products, 2)
	assert.Equal(t, "Canvas Tote", products[0].Name)
	assert.Equal(t, 35.5, products[0].Price)
	assert.Equal(t, 12, products[0].Stock)
	assert.Equal(t, "Key Ring", products[1].Name)
	assert.Equal(t, "General", products[1].Category)
	assert.Zero(t, products[1].Stock)

	rows := make([]int, 0, len(skipped))
	for _, s := range skipped {
		rows = append(rows, s.row)
	}
	assert.Equal(t, []int{4, 5, 6}, rows)
	assert.Contains(t, skipped[0].reason, "invalid price")
}

func TestReadProductsFromXLSX_NamedSheet(t *testing.T) {
	path := writeSheet(t, "Catalog", [][]interface{}{
		{"name", "description", "price"},
		{"Scarf", "Wool", 20},
	})

	products, _, err := readProductsFromXLSX(path, "Catalog")
	require.NoError(t, err)
	require.Len(t, products, 1)
	assert.Equal(t, "Scarf", products[0].Name)

	_, _, err = readProductsFromXLSX(path, "Sheet1")
	assert.Error(t, err)
}

func TestReadProductsFromXLSX_MissingFile(t *testing.T) {
	_, _, err := readProductsFromXLSX(filepath.Join(t.TempDir(), "nope.xlsx"), "")
	assert.Error(t, err)
}
