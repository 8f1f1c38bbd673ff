package services

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"steamlens/internal/config"
	"steamlens/internal/regress"
)

const serviceDataset = `{
	"10": {
		"name": "Indie Gem",
		"release_date": "2020-05-01",
		"price": 19.99,
		"positive": 90,
		"negative": 10,
		"average_playtime_forever": 300,
		"genres": ["Indie"],
		"tags": {"Roguelike": 50}
	},
	"20": {
		"name": "Free Shooter",
		"release_date": "2015-03-01",
		"price": 0,
		"positive": 10,
		"negative": 30,
		"genres": ["Action"],
		"tags": {"FPS": 80}
	},
	"30": {
		"name": "Undated",
		"positive": 1,
		"negative": 0
	}
}`

func newTestService(t *testing.T) *DatasetService {
	t.Helper()
	path := filepath.Join(t.TempDir(), "games.json")
	require.NoError(t, os.WriteFile(path, []byte(serviceDataset), 0644))

	svc := NewDatasetService(config.DatasetConfig{Path: path}, nil, nil)
	require.NoError(t, svc.Load(context.Background()))
	return svc
}

func TestTableBeforeLoad(t *testing.T) {
	svc := NewDatasetService(config.DatasetConfig{Path: "missing.json"}, nil, nil)

	_, err := svc.Table()
	assert.ErrorIs(t, err, ErrDatasetNotLoaded)

	_, err = svc.Summary(context.Background())
	assert.ErrorIs(t, err, ErrDatasetNotLoaded)
}

func TestLoadMissingSource(t *testing.T) {
	svc := NewDatasetService(config.DatasetConfig{Path: filepath.Join(t.TempDir(), "nope.json")}, nil, nil)
	assert.Error(t, svc.Load(context.Background()))
}

func TestSummary(t *testing.T) {
	svc := newTestService(t)

	summary, err := svc.Summary(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 3, summary.Rows)
	assert.Equal(t, 2, summary.WithReleaseDate)
	assert.Equal(t, 2015, summary.YearMin)
	assert.Equal(t, 2020, summary.YearMax)
	assert.InDelta(t, (19.99+0+0)/3, summary.MeanPrice, 1e-9)
	assert.False(t, summary.LoadedAt.IsZero())
}

func TestGamesFilter(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	all, err := svc.Games(ctx, GameFilter{})
	require.NoError(t, err)
	assert.Len(t, all, 3)

	yearFrom := 2018
	dated, err := svc.Games(ctx, GameFilter{YearFrom: &yearFrom})
	require.NoError(t, err)
	require.Len(t, dated, 1)
	assert.Equal(t, "Indie Gem", dated[0].Name)

	// Year bounds exclude games without a parsed release date.
	yearTo := 2030
	bounded, err := svc.Games(ctx, GameFilter{YearTo: &yearTo})
	require.NoError(t, err)
	assert.Len(t, bounded, 2)

	action, err := svc.Games(ctx, GameFilter{Genre: "Action"})
	require.NoError(t, err)
	require.Len(t, action, 1)
	assert.Equal(t, "Free Shooter", action[0].Name)

	tagged, err := svc.Games(ctx, GameFilter{Tag: "FPS"})
	require.NoError(t, err)
	assert.Len(t, tagged, 1)

	priceMin := 0.01
	paid, err := svc.Games(ctx, GameFilter{PriceMin: &priceMin})
	require.NoError(t, err)
	assert.Len(t, paid, 1)

	limited, err := svc.Games(ctx, GameFilter{Limit: 2})
	require.NoError(t, err)
	assert.Len(t, limited, 2)
}

func TestRegressionGuardrail(t *testing.T) {
	svc := newTestService(t)

	// Three rows are far below the sample-size minimum: the guardrail text
	// comes back as a Result, not an error.
	result, err := svc.Regression(context.Background(), GameFilter{})
	require.NoError(t, err)
	assert.Equal(t, regress.KindSampleTooSmall, result.Kind)
	assert.Contains(t, result.Text, "too small")
}

func TestRegressionBeforeLoad(t *testing.T) {
	svc := NewDatasetService(config.DatasetConfig{}, nil, nil)
	_, err := svc.Regression(context.Background(), GameFilter{})
	assert.ErrorIs(t, err, ErrDatasetNotLoaded)
}

func TestRefreshWithoutFetcher(t *testing.T) {
	svc := NewDatasetService(config.DatasetConfig{}, nil, nil)
	assert.ErrorIs(t, svc.Refresh(context.Background()), ErrNoFetcher)
}

type stubDownloader struct {
	payload string
}

func (d *stubDownloader) Download(ctx context.Context, url, dest string) error {
	return os.WriteFile(dest, []byte(d.payload), 0644)
}

func TestRefreshReloadsTable(t *testing.T) {
	path := filepath.Join(t.TempDir(), "games.json")
	svc := NewDatasetService(config.DatasetConfig{Path: path, URL: "http://example.test/games.json"}, nil, nil)
	svc.SetFetcher(&stubDownloader{payload: serviceDataset})

	require.NoError(t, svc.Refresh(context.Background()))

	table, err := svc.Table()
	require.NoError(t, err)
	assert.Equal(t, 3, table.Len())
}
