package performance

import (
	"context"

	"github.com/kinetichr/pulse-backend-go/internal/domain/company"
	"github.com/kinetichr/pulse-backend-go/internal/domain/snapshot"
)

// PerformanceService computes employee scores and rankings. It prefers
// precomputed snapshots and falls back to a batched live computation
// when none exist for the requested date.
type PerformanceService interface {
	// Settings returns the company's scoring settings with documented
	// defaults applied where configuration is missing
	Settings(ctx context.Context, companyID string) (*company.ScoringSettings, error)

	// Leaderboard returns ranked entries for the query window, highest
	// score first, at most limit entries (0 means no limit)
	Leaderboard(ctx context.Context, q Query, limit int) ([]RankedEntry, error)

	// ScoreTrend returns the score time series for the long trend
	// window: monthly granularity when enough snapshot history exists,
	// daily otherwise
	ScoreTrend(ctx context.Context, q Query) ([]snapshot.PeriodAverage, error)
}
