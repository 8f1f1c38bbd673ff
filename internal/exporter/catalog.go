package exporter

import (
	"strconv"
	"strings"

	"steamlens/internal/catalog"
)

// CatalogHeaders is the fixed column order of catalog exports.
var CatalogHeaders = []string{
	"app_id",
	"name",
	"release_date",
	"price",
	"positive",
	"negative",
	"average_playtime_forever",
	"total_reviews",
	"score_ratio",
	"genres",
	"tags",
}

// CatalogRecords flattens the typed table into CSV records in CatalogHeaders
// order. Multi-valued columns join on ";"; the not-a-time sentinel renders
// as an empty cell.
func CatalogRecords(table *catalog.Table) [][]string {
	records := make([][]string, 0, table.Len())
	for _, g := range table.Games {
		releaseDate := ""
		if g.HasReleaseDate() {
			releaseDate = g.ReleaseDate.Format("2006-01-02")
		}
		records = append(records, []string{
			g.AppID,
			g.Name,
			releaseDate,
			formatNumber(g.Price),
			formatNumber(g.Positive),
			formatNumber(g.Negative),
			formatNumber(g.AvgPlaytimeForever),
			formatNumber(g.TotalReviews),
			strconv.FormatFloat(g.ScoreRatio, 'f', 4, 64),
			strings.Join(g.Genres, ";"),
			strings.Join(g.Tags.List(), ";"),
		})
	}
	return records
}

// ExportCatalogCSV writes the table as a CSV file under the writer's
// reports directory.
func (w *CSVWriter) ExportCatalogCSV(table *catalog.Table, filePath string) error {
	return w.WriteSimpleCSV(filePath, CatalogHeaders, CatalogRecords(table))
}

// formatNumber renders a count or price without a forced decimal tail:
// whole values print as integers, fractional values keep their digits.
func formatNumber(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
