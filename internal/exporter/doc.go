// Package exporter writes the normalized catalog and regression reports to
// files.
//
// CSVWriter is the core CSV mechanism: headers, optional streaming, and a
// UTF-8 BOM prefix so Excel opens the files correctly. On top of it sit the
// catalog exports, which flatten the typed table into a fixed column order,
// and an XLSX export built on excelize for users who want a workbook rather
// than plain text.
package exporter
