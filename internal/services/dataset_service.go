package services

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"steamlens/internal/catalog"
	"steamlens/internal/config"
	"steamlens/internal/infrastructure"
	"steamlens/internal/regress"
)

// Downloader fetches the raw dataset dump to a local path.
type Downloader interface {
	Download(ctx context.Context, url, dest string) error
}

// GameFilter narrows the catalog before listing or regression. Zero-valued
// fields do not filter. Pointer fields distinguish "absent" from zero since
// 0 is a legitimate bound for prices.
type GameFilter struct {
	YearFrom *int     `json:"year_from,omitempty" validate:"omitempty,gte=1970,lte=2100"`
	YearTo   *int     `json:"year_to,omitempty" validate:"omitempty,gte=1970,lte=2100"`
	PriceMin *float64 `json:"price_min,omitempty"`
	PriceMax *float64 `json:"price_max,omitempty"`
	Genre    string   `json:"genre,omitempty" validate:"omitempty,max=64"`
	Tag      string   `json:"tag,omitempty" validate:"omitempty,max=64"`
	Limit    int      `json:"limit,omitempty" validate:"omitempty,gte=1,lte=100000"`
}

// IsZero reports whether the filter has no active constraints.
func (f GameFilter) IsZero() bool {
	return f.YearFrom == nil && f.YearTo == nil &&
		f.PriceMin == nil && f.PriceMax == nil &&
		f.Genre == "" && f.Tag == "" && f.Limit == 0
}

// Match reports whether a game passes the filter. Year bounds exclude games
// whose release date never parsed, since their year is unknown.
func (f GameFilter) Match(g catalog.Game) bool {
	if f.YearFrom != nil || f.YearTo != nil {
		if !g.HasReleaseDate() {
			return false
		}
		year := g.ReleaseDate.Year()
		if f.YearFrom != nil && year < *f.YearFrom {
			return false
		}
		if f.YearTo != nil && year > *f.YearTo {
			return false
		}
	}
	if f.PriceMin != nil && g.Price < *f.PriceMin {
		return false
	}
	if f.PriceMax != nil && g.Price > *f.PriceMax {
		return false
	}
	if f.Genre != "" && !g.HasGenre(f.Genre) {
		return false
	}
	if f.Tag != "" && !g.Tags.Has(f.Tag) {
		return false
	}
	return true
}

// DatasetSummary describes the currently loaded table. Year bounds cover
// only rows whose release date parsed; they are zero when none did.
type DatasetSummary struct {
	Source          string    `json:"source"`
	Rows            int       `json:"rows"`
	LoadedAt        time.Time `json:"loaded_at"`
	WithReleaseDate int       `json:"with_release_date"`
	YearMin         int       `json:"year_min,omitempty"`
	YearMax         int       `json:"year_max,omitempty"`
	MeanPrice       float64   `json:"mean_price"`
	MeanScoreRatio  float64   `json:"mean_score_ratio"`
}

// DatasetService owns the loaded catalog table and runs analyses against it.
// Loading swaps the table atomically; readers always see a complete table.
type DatasetService struct {
	cfg     config.DatasetConfig
	logger  *slog.Logger
	metrics *infrastructure.Metrics
	fetcher Downloader

	mu       sync.RWMutex
	table    *catalog.Table
	loadedAt time.Time
}

// NewDatasetService creates the service. Metrics may be nil in tests.
func NewDatasetService(cfg config.DatasetConfig, logger *slog.Logger, metrics *infrastructure.Metrics) *DatasetService {
	if logger == nil {
		logger = slog.Default()
	}
	return &DatasetService{
		cfg:     cfg,
		logger:  logger.With(slog.String("component", "dataset_service")),
		metrics: metrics,
	}
}

// SetFetcher wires the downloader used by Refresh.
func (s *DatasetService) SetFetcher(d Downloader) {
	s.fetcher = d
}

// Load prepares the canonical table from the configured dataset path.
func (s *DatasetService) Load(ctx context.Context) error {
	start := time.Now()

	loader := catalog.NewLoader(s.cfg.Path, s.logger)
	table, err := loader.Prepare(ctx)
	if err != nil {
		return err
	}

	s.mu.Lock()
	s.table = table
	s.loadedAt = time.Now()
	s.mu.Unlock()

	if s.metrics != nil {
		s.metrics.DatasetLoads.Inc()
		s.metrics.DatasetLoadRows.Set(float64(table.Len()))
		s.metrics.LoadDuration.Observe(time.Since(start).Seconds())
	}

	s.logger.InfoContext(ctx, "dataset loaded",
		slog.String("path", s.cfg.Path),
		slog.Int("rows", table.Len()),
		slog.Duration("elapsed", time.Since(start)))
	return nil
}

// Refresh downloads a fresh dump to the dataset path and reloads the table.
func (s *DatasetService) Refresh(ctx context.Context) error {
	if s.fetcher == nil {
		return ErrNoFetcher
	}
	if err := s.fetcher.Download(ctx, s.cfg.URL, s.cfg.Path); err != nil {
		return err
	}
	return s.Load(ctx)
}

// Table returns the loaded table, or ErrDatasetNotLoaded.
func (s *DatasetService) Table() (*catalog.Table, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.table == nil {
		return nil, ErrDatasetNotLoaded
	}
	return s.table, nil
}

// Summary computes dataset-level statistics over the loaded table.
func (s *DatasetService) Summary(ctx context.Context) (*DatasetSummary, error) {
	table, err := s.Table()
	if err != nil {
		return nil, err
	}

	s.mu.RLock()
	loadedAt := s.loadedAt
	s.mu.RUnlock()

	summary := &DatasetSummary{
		Source:   table.Source,
		Rows:     table.Len(),
		LoadedAt: loadedAt,
	}
	if table.Len() == 0 {
		return summary, nil
	}

	var priceSum, scoreSum float64
	for _, g := range table.Games {
		priceSum += g.Price
		scoreSum += g.ScoreRatio
		if !g.HasReleaseDate() {
			continue
		}
		summary.WithReleaseDate++
		year := g.ReleaseDate.Year()
		if summary.YearMin == 0 || year < summary.YearMin {
			summary.YearMin = year
		}
		if year > summary.YearMax {
			summary.YearMax = year
		}
	}
	summary.MeanPrice = priceSum / float64(table.Len())
	summary.MeanScoreRatio = scoreSum / float64(table.Len())
	return summary, nil
}

// Games lists the games passing the filter, up to the filter's limit.
func (s *DatasetService) Games(ctx context.Context, filter GameFilter) ([]catalog.Game, error) {
	table, err := s.Table()
	if err != nil {
		return nil, err
	}

	games := make([]catalog.Game, 0)
	for _, g := range table.Games {
		if !filter.Match(g) {
			continue
		}
		games = append(games, g)
		if filter.Limit > 0 && len(games) >= filter.Limit {
			break
		}
	}
	return games, nil
}

// Regression runs the OLS analysis over the (optionally filtered) table. The
// guardrail outcomes come back as a Result, never an error; only a missing
// dataset is an error.
func (s *DatasetService) Regression(ctx context.Context, filter GameFilter) (regress.Result, error) {
	table, err := s.Table()
	if err != nil {
		return regress.Result{}, err
	}

	if !filter.IsZero() {
		// The row limit applies to listings, not to model input.
		subset := filter
		subset.Limit = 0
		table = table.Filter(subset.Match)
	}

	start := time.Now()
	result := regress.Analyze(table.Frame())

	if s.metrics != nil {
		s.metrics.Regressions.WithLabelValues(result.Kind.String()).Inc()
		s.metrics.FitDuration.Observe(time.Since(start).Seconds())
	}

	s.logger.InfoContext(ctx, "regression executed",
		slog.String("kind", result.Kind.String()),
		slog.Int("rows", table.Len()))
	return result, nil
}
