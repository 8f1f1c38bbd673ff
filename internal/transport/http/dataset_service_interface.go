package http

import (
	"context"

	"steamlens/internal/catalog"
	"steamlens/internal/regress"
	"steamlens/internal/services"
)

// DatasetServiceInterface is the service surface the handlers consume.
type DatasetServiceInterface interface {
	Summary(ctx context.Context) (*services.DatasetSummary, error)
	Games(ctx context.Context, filter services.GameFilter) ([]catalog.Game, error)
	Regression(ctx context.Context, filter services.GameFilter) (regress.Result, error)
}
