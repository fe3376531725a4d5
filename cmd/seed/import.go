package main

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/ikkim/storefeed/internal/app/model"
	"github.com/ikkim/storefeed/internal/app/repository"
	"github.com/ikkim/storefeed/internal/db"
	"github.com/spf13/cobra"
	"github.com/xuri/excelize/v2"
)

var (
	sheetName string
	batchSize int
)

var importCmd = &cobra.Command{
	Use:   "import <file.xlsx>",
	Short: "Bulk insert products from a spreadsheet",
	Long: `Import reads a sheet whose first row is a header and whose columns are, in order:

  name, description, price, stock, category, image

Rows that fail validation are skipped and reported.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runImport(cmd.OutOrStdout(), args[0])
	},
}

func init() {
	rootCmd.AddCommand(importCmd)

	importCmd.Flags().StringVar(&sheetName, "sheet", "", "Sheet to read (defaults to the first sheet)")
	importCmd.Flags().IntVar(&batchSize, "batch", 1000, "Rows per insert statement")
}

func runImport(out io.Writer, path string) error {
	products, skipped, err := readProductsFromXLSX(path, sheetName)
	if err != nil {
		return err
	}

	for _, s := range skipped {
		fmt.Fprintf(out, "Skipped row %d: %s\n", s.row, s.reason)
	}
	fmt.Fprintf(out, "Importing %d products (batch size %d)\n", len(products), batchSize)

	repo := repository.NewProductRepository(db.GetDB())
	if err := repo.BulkCreate(products, batchSize); err != nil {
		return fmt.Errorf("failed to bulk create products: %w", err)
	}

	fmt.Fprintf(out, "Imported %d products\n", len(products))
	return nil
}

type skippedRow struct {
	row    int
	reason string
}

// column order of an import sheet
const (
	colName = iota
	colDescription
	colPrice
	colStock
	colCategory
	colImage
)

func readProductsFromXLSX(path, sheet string) ([]model.Product, []skippedRow, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open XLSX file: %w", err)
	}
	defer f.Close()

	if sheet == "" {
		sheet = f.GetSheetName(0)
	}
	if sheet == "" {
		return nil, nil, fmt.Errorf("no sheets found in %s", path)
	}

	rows, err := f.GetRows(sheet)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to read sheet %s: %w", sheet, err)
	}
	if len(rows) < 2 {
		return nil, nil, fmt.Errorf("sheet %s has no data rows", sheet)
	}

	var (
		products []model.Product
		skipped  []skippedRow
	)
	// rows[0] is the header; spreadsheet rows are 1-based
	for i, row := range rows[1:] {
		rowNum := i + 2
		if isBlank(row) {
			continue
		}

		product, err := productFromRow(row)
		if err != nil {
			skipped = append(skipped, skippedRow{row: rowNum, reason: err.Error()})
			continue
		}
		products = append(products, product)
	}

	return products, skipped, nil
}

func productFromRow(row []string) (model.Product, error) {
	cell := func(i int) string {
		if i < len(row) {
			return strings.TrimSpace(row[i])
		}
		return ""
	}

	price, err := strconv.ParseFloat(cell(colPrice), 64)
	if err != nil {
		return model.Product{}, fmt.Errorf("invalid price %q", cell(colPrice))
	}
	stock := 0
	if raw := cell(colStock); raw != "" {
		if stock, err = strconv.Atoi(raw); err != nil {
			return model.Product{}, fmt.Errorf("invalid stock %q", raw)
		}
	}

	product := model.Product{
		Name:        cell(colName),
		Description: cell(colDescription),
		Price:       price,
		Stock:       stock,
		Category:    cell(colCategory),
		Image:       cell(colImage),
	}
	product.Normalize()
	if result := product.Validate(); !result.OK() {
		return model.Product{}, result
	}
	return product, nil
}

func isBlank(row []string) bool {
	for _, c := range row {
		if strings.TrimSpace(c) != "" {
			return false
		}
	}
	return true
}
