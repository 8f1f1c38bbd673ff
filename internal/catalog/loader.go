package catalog

import (
	"context"
	"encoding/json"
	"log/slog"
	"math"
	"os"
	"sort"

	apperrors "steamlens/internal/errors"
)

// rawRecord is the tolerant decoding target for one catalog entry. Every
// field stays raw so a wrongly typed value can never fail the record set.
type rawRecord struct {
	Name               json.RawMessage `json:"name"`
	ReleaseDate        json.RawMessage `json:"release_date"`
	Price              json.RawMessage `json:"price"`
	Positive           json.RawMessage `json:"positive"`
	Negative           json.RawMessage `json:"negative"`
	AvgPlaytimeForever json.RawMessage `json:"average_playtime_forever"`
	Genres             json.RawMessage `json:"genres"`
	Tags               json.RawMessage `json:"tags"`
}

// Loader ingests the raw dataset file and produces the canonical table.
type Loader struct {
	path   string
	logger *slog.Logger
}

// NewLoader creates a loader for the dataset at path.
func NewLoader(path string, logger *slog.Logger) *Loader {
	return &Loader{
		path:   path,
		logger: logger.With(slog.String("component", "catalog_loader")),
	}
}

// Prepare runs the ingestion pipeline: source check, decode (keyed mapping
// with array fallback), projection, per-field coercion, column-level
// imputation, and feature engineering. The returned table has one row per
// raw record; per-field failures never abort the load.
//
// A missing source file is the one fatal condition, returned as a
// SOURCE_NOT_FOUND application error before any parsing is attempted.
func (l *Loader) Prepare(ctx context.Context) (*Table, error) {
	if _, err := os.Stat(l.path); err != nil {
		l.logger.ErrorContext(ctx, "dataset source missing", slog.String("path", l.path))
		return nil, apperrors.NewSourceNotFoundError(l.path, err)
	}

	l.logger.InfoContext(ctx, "starting dataset ingestion", slog.String("path", l.path))

	data, err := os.ReadFile(l.path)
	if err != nil {
		return nil, apperrors.NewStorageError("failed to read dataset source", err).
			WithContext("path", l.path)
	}

	records, ids, err := l.decode(ctx, data)
	if err != nil {
		return nil, err
	}

	games := make([]Game, len(records))
	for i, rec := range records {
		games[i] = projectRecord(ids[i], rec)
	}

	imputeNumericColumns(games)
	deriveFeatures(games)

	l.logger.InfoContext(ctx, "dataset ingestion complete",
		slog.String("path", l.path),
		slog.Int("rows", len(games)))

	return &Table{Games: games, Source: l.path}, nil
}

// decode parses the raw bytes as a mapping from app id to record; if the top
// level is array-shaped instead, it falls back to array parsing without
// failing the operation.
func (l *Loader) decode(ctx context.Context, data []byte) ([]rawRecord, []string, error) {
	var keyed map[string]rawRecord
	if err := json.Unmarshal(data, &keyed); err == nil {
		ids := make([]string, 0, len(keyed))
		for id := range keyed {
			ids = append(ids, id)
		}
		sort.Strings(ids)
		records := make([]rawRecord, len(ids))
		for i, id := range ids {
			records[i] = keyed[id]
		}
		return records, ids, nil
	}

	l.logger.WarnContext(ctx, "source is not a keyed mapping, falling back to array parsing",
		slog.String("path", l.path))

	var list []rawRecord
	if err := json.Unmarshal(data, &list); err != nil {
		return nil, nil, apperrors.NewParsingError("dataset is neither a keyed mapping nor an array of records", err).
			WithContext("path", l.path)
	}
	return list, make([]string, len(list)), nil
}

// projectRecord coerces the allow-listed fields of one raw record into a
// canonical row. Numeric fields carry NaN as the missing marker until the
// imputation pass.
func projectRecord(id string, rec rawRecord) Game {
	return Game{
		AppID:              id,
		Name:               parseString(rawToValue(rec.Name)),
		ReleaseDate:        ParseDate(rawToValue(rec.ReleaseDate)),
		Price:              ParseNumber(rawToValue(rec.Price)),
		Positive:           ParseNumber(rawToValue(rec.Positive)),
		Negative:           ParseNumber(rawToValue(rec.Negative)),
		AvgPlaytimeForever: ParseNumber(rawToValue(rec.AvgPlaytimeForever)),
		Genres:             NormalizeGenres(rawToValue(rec.Genres)),
		Tags:               NormalizeTags(rawToValue(rec.Tags)),
	}
}

// imputeNumericColumns replaces missing numeric values with 0. This is the
// single imputation pass: coercion marks failures as NaN, and only here do
// they become zeros.
func imputeNumericColumns(games []Game) {
	for i := range games {
		games[i].Price = zeroIfNaN(games[i].Price)
		games[i].Positive = zeroIfNaN(games[i].Positive)
		games[i].Negative = zeroIfNaN(games[i].Negative)
		games[i].AvgPlaytimeForever = zeroIfNaN(games[i].AvgPlaytimeForever)
	}
}

// deriveFeatures computes total_reviews and score_ratio. The denominator is
// floored at 1 so a game with no reviews scores 0 instead of dividing by
// zero.
func deriveFeatures(games []Game) {
	for i := range games {
		g := &games[i]
		g.TotalReviews = g.Positive + g.Negative
		denom := g.TotalReviews
		if denom == 0 {
			denom = 1
		}
		g.ScoreRatio = g.Positive / denom
	}
}

// rawToValue decodes a raw field into a generic value, nil when the field is
// absent or malformed.
func rawToValue(raw json.RawMessage) interface{} {
	if len(raw) == 0 {
		return nil
	}
	var v interface{}
	if err := json.Unmarshal(raw, &v); err != nil {
		return nil
	}
	return v
}

func parseString(raw interface{}) string {
	s, _ := raw.(string)
	return s
}

func zeroIfNaN(v float64) float64 {
	if math.IsNaN(v) {
		return 0
	}
	return v
}
