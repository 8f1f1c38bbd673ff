package exporter

import (
	"encoding/csv"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"steamlens/internal/catalog"
)

func sampleTable() *catalog.Table {
	return &catalog.Table{
		Source: "test",
		Games: []catalog.Game{
			{
				AppID:        "10",
				Name:         "Test Game A",
				ReleaseDate:  time.Date(2020, 1, 1, 0, 0, 0, 0, time.UTC),
				Price:        19.99,
				Positive:     100,
				TotalReviews: 100,
				ScoreRatio:   1,
				Genres:       []string{"Action", "Indie"},
				Tags:         catalog.TagsFromWeights(map[string]float64{"Indie": 120, "Roguelike": 44}),
			},
			{
				AppID:      "20",
				Name:       "Unreleased, \"quoted\"",
				ScoreRatio: 0,
				Genres:     []string{},
				Tags:       catalog.TagsFromNames([]string{"Casual"}),
			},
		},
	}
}

func TestCatalogRecords(t *testing.T) {
	records := CatalogRecords(sampleTable())
	require.Len(t, records, 2)

	first := records[0]
	require.Len(t, first, len(CatalogHeaders))
	assert.Equal(t, "10", first[0])
	assert.Equal(t, "Test Game A", first[1])
	assert.Equal(t, "2020-01-01", first[2])
	assert.Equal(t, "19.99", first[3])
	assert.Equal(t, "100", first[4])
	assert.Equal(t, "1.0000", first[8])
	assert.Equal(t, "Action;Indie", first[9])
	assert.Equal(t, "Indie;Roguelike", first[10])

	// Not-a-time sentinel renders empty, zero counts stay plain integers.
	second := records[1]
	assert.Equal(t, "", second[2])
	assert.Equal(t, "0", second[4])
	assert.Equal(t, "Casual", second[10])
}

func TestExportCatalogCSV(t *testing.T) {
	dir := t.TempDir()
	writer := NewCSVWriter(dir)

	require.NoError(t, writer.ExportCatalogCSV(sampleTable(), "catalog.csv"))

	raw, err := os.ReadFile(filepath.Join(dir, "catalog.csv"))
	require.NoError(t, err)

	// BOM prefix, then parseable CSV.
	require.True(t, strings.HasPrefix(string(raw), "\xEF\xBB\xBF"))
	rows, err := csv.NewReader(strings.NewReader(strings.TrimPrefix(string(raw), "\xEF\xBB\xBF"))).ReadAll()
	require.NoError(t, err)

	require.Len(t, rows, 3)
	assert.Equal(t, CatalogHeaders, rows[0])
	assert.Equal(t, "Test Game A", rows[1][1])
	assert.Equal(t, `Unreleased, "quoted"`, rows[2][1])
}

func TestWriteCSVAppend(t *testing.T) {
	dir := t.TempDir()
	writer := NewCSVWriter(dir)

	require.NoError(t, writer.WriteSimpleCSV("out.csv", []string{"a", "b"}, [][]string{{"1", "2"}}))
	require.NoError(t, writer.WriteCSV("out.csv", WriteOptions{
		Records: [][]string{{"3", "4"}},
		Append:  true,
	}))

	raw, err := os.ReadFile(filepath.Join(dir, "out.csv"))
	require.NoError(t, err)
	rows, err := csv.NewReader(strings.NewReader(strings.TrimPrefix(string(raw), "\xEF\xBB\xBF"))).ReadAll()
	require.NoError(t, err)
	require.Len(t, rows, 3)
	assert.Equal(t, []string{"3", "4"}, rows[2])
}

func TestStreamWriter(t *testing.T) {
	dir := t.TempDir()
	writer := NewCSVWriter(dir)

	stream, err := writer.CreateStreamWriter("stream.csv", []string{"name", "price"})
	require.NoError(t, err)
	require.NoError(t, stream.WriteRecord([]string{"A", "1.00"}))
	require.NoError(t, stream.WriteRecord([]string{"B", "2.00"}))
	require.NoError(t, stream.Close())

	raw, err := os.ReadFile(filepath.Join(dir, "stream.csv"))
	require.NoError(t, err)
	rows, err := csv.NewReader(strings.NewReader(strings.TrimPrefix(string(raw), "\xEF\xBB\xBF"))).ReadAll()
	require.NoError(t, err)
	require.Len(t, rows, 3)
}

func TestExportCatalogXLSX(t *testing.T) {
	dir := t.TempDir()
	writer := NewXLSXWriter(dir)

	require.NoError(t, writer.ExportCatalog(sampleTable(), "catalog.xlsx"))

	f, err := excelize.OpenFile(filepath.Join(dir, "catalog.xlsx"))
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows("Catalog")
	require.NoError(t, err)
	require.Len(t, rows, 3)
	assert.Equal(t, "app_id", rows[0][0])
	assert.Equal(t, "Test Game A", rows[1][1])
	assert.Equal(t, "2020-01-01", rows[1][2])
}
