package repositories

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/jmoiron/sqlx"

	"warehouse/loadmap/internal/constants"
	"warehouse/loadmap/internal/loadmap"
	"warehouse/loadmap/internal/metrics"
)

// LoadMapRepository runs the raw list and health queries.
type LoadMapRepository struct {
	db      *sqlx.DB
	metrics *metrics.MetricsRegistry
}

func NewLoadMapRepository(db *sqlx.DB, metricsReg *metrics.MetricsRegistry) *LoadMapRepository {
	return &LoadMapRepository{db: db, metrics: metricsReg}
}

// ListSummaries returns list rows newest first. A non-blank query matches
// title, run number or trailer number case-insensitively.
func (r *LoadMapRepository) ListSummaries(ctx context.Context, query string) ([]loadmap.Summary, error) {
	defer r.metrics.ObserveDBQuery("list", time.Now())

	items := []loadmap.Summary{}

	q := strings.TrimSpace(query)
	var err error
	if q == "" {
		err = r.db.SelectContext(ctx, &items, r.db.Rebind(constants.ListLoadMapSummaries))
	} else {
		pattern := "%" + q + "%"
		err = r.db.SelectContext(ctx, &items, r.db.Rebind(constants.SearchLoadMapSummaries), pattern, pattern, pattern)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to list load maps: %w", err)
	}
	return items, nil
}

// Ping checks the database round trip.
func (r *LoadMapRepository) Ping(ctx context.Context) error {
	var one int
	if err := r.db.GetContext(ctx, &one, constants.PingQuery); err != nil {
		return fmt.Errorf("database ping failed: %w", err)
	}
	return nil
}
