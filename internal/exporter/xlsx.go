package exporter

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/xuri/excelize/v2"

	"steamlens/internal/catalog"
)

const catalogSheet = "Catalog"

// XLSXWriter exports the catalog as an Excel workbook.
type XLSXWriter struct {
	reportsDir string
}

// NewXLSXWriter creates a new workbook writer instance.
func NewXLSXWriter(reportsDir string) *XLSXWriter {
	return &XLSXWriter{reportsDir: reportsDir}
}

// ExportCatalog writes the table to a single-sheet workbook: a bold header
// row in CatalogHeaders order, then one row per game.
func (w *XLSXWriter) ExportCatalog(table *catalog.Table, filePath string) error {
	fullPath := filePath
	if !filepath.IsAbs(fullPath) {
		fullPath = filepath.Join(w.reportsDir, filePath)
	}
	if err := os.MkdirAll(filepath.Dir(fullPath), 0755); err != nil {
		return fmt.Errorf("failed to create directory: %w", err)
	}

	f := excelize.NewFile()
	defer f.Close()
	f.SetSheetName(f.GetSheetName(0), catalogSheet)

	for colIdx, header := range CatalogHeaders {
		cell, err := excelize.CoordinatesToCellName(colIdx+1, 1)
		if err != nil {
			return fmt.Errorf("failed to build header cell: %w", err)
		}
		if err := f.SetCellValue(catalogSheet, cell, header); err != nil {
			return fmt.Errorf("failed to write header %s: %w", header, err)
		}
	}

	headerStyle, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err == nil {
		last, _ := excelize.CoordinatesToCellName(len(CatalogHeaders), 1)
		f.SetCellStyle(catalogSheet, "A1", last, headerStyle)
	}

	for rowIdx, record := range CatalogRecords(table) {
		for colIdx, value := range record {
			cell, err := excelize.CoordinatesToCellName(colIdx+1, rowIdx+2)
			if err != nil {
				return fmt.Errorf("failed to build cell: %w", err)
			}
			if err := f.SetCellValue(catalogSheet, cell, value); err != nil {
				return fmt.Errorf("failed to write row %d: %w", rowIdx, err)
			}
		}
	}

	if err := f.SaveAs(fullPath); err != nil {
		return fmt.Errorf("failed to save workbook: %w", err)
	}

	slog.Info("catalog workbook written",
		slog.String("path", fullPath),
		slog.Int("rows", table.Len()))
	return nil
}
