package services

import (
	"context"
	"errors"
	"strconv"
	"strings"
	"time"

	"golang.org/x/sync/singleflight"

	"warehouse/loadmap/internal/common"
	"warehouse/loadmap/internal/constants"
	"warehouse/loadmap/internal/db/repositories"
	"warehouse/loadmap/internal/loadmap"
	"warehouse/loadmap/internal/logging"
	"warehouse/loadmap/internal/metrics"
	gormModels "warehouse/loadmap/internal/models/gorm"
	"warehouse/loadmap/internal/realtime"
)

var ErrNotFound = errors.New("load map not found")

const recordCacheTTL = 10 * time.Minute

// Notifier receives an event after every successful write.
type Notifier interface {
	Broadcast(ev realtime.Event)
}

// LoadMapService is the backend's business layer: persistence, the record
// cache and change notifications.
type LoadMapService struct {
	writes   *repositories.LoadMapGormRepository
	reads    *repositories.LoadMapRepository
	cache    common.CacheInterface
	notifier Notifier
	metrics  *metrics.MetricsRegistry
	loads    singleflight.Group
}

// NewLoadMapService wires the service. cache, notifier and metricsReg may be nil.
func NewLoadMapService(
	writes *repositories.LoadMapGormRepository,
	reads *repositories.LoadMapRepository,
	cache common.CacheInterface,
	notifier Notifier,
	metricsReg *metrics.MetricsRegistry,
) *LoadMapService {
	return &LoadMapService{
		writes:   writes,
		reads:    reads,
		cache:    cache,
		notifier: notifier,
		metrics:  metricsReg,
	}
}

// List returns summaries newest first, filtered by query.
func (s *LoadMapService) List(ctx context.Context, query string) ([]loadmap.Summary, error) {
	return s.reads.ListSummaries(ctx, query)
}

// Get returns record id, from cache when possible. Concurrent misses for
// the same id share one database read.
func (s *LoadMapService) Get(ctx context.Context, id uint) (*loadmap.LoadMap, error) {
	key := cacheKey(id)
	if s.cache != nil {
		if rec, found := common.GetJSON[loadmap.LoadMap](s.cache, key); found {
			s.metrics.CacheHit(string(constants.CachePrefixLoadMap))
			return rec, nil
		}
		s.metrics.CacheMiss(string(constants.CachePrefixLoadMap))
	}

	v, err, _ := s.loads.Do(key, func() (interface{}, error) {
		row, err := s.writes.GetByID(ctx, id)
		if err != nil {
			return nil, err
		}
		if row == nil {
			return nil, ErrNotFound
		}
		rec := row.ToDomain()
		s.store(rec)
		return rec, nil
	})
	if err != nil {
		return nil, err
	}

	// Callers may mutate the result; hand out a private copy.
	rec := *v.(*loadmap.LoadMap)
	return &rec, nil
}

// Create stores a new record. A blank title becomes "New Load Map"; totals
// are recomputed from the pallets.
func (s *LoadMapService) Create(ctx context.Context, rec *loadmap.LoadMap) (*loadmap.LoadMap, error) {
	in := prepare(rec)
	if strings.TrimSpace(in.Title) == "" {
		in.Title = constants.DefaultNewTitle
	}

	row := gormModels.FromDomain(in)
	if err := s.writes.Create(ctx, row); err != nil {
		return nil, err
	}

	saved := row.ToDomain()
	s.store(saved)
	s.metrics.LoadMapWrite("create")
	s.notify(constants.SyncEventCreated, saved)
	logging.Info("Load map created", "id", saved.ID, "title", saved.Title)
	return saved, nil
}

// Replace overwrites record id entirely with rec.
func (s *LoadMapService) Replace(ctx context.Context, id uint, rec *loadmap.LoadMap) (*loadmap.LoadMap, error) {
	in := prepare(rec)
	found, err := s.writes.Replace(ctx, id, gormModels.FromDomain(in))
	if err != nil {
		return nil, err
	}
	s.invalidate(id)
	if !found {
		return nil, ErrNotFound
	}

	saved, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	s.metrics.LoadMapWrite("update")
	s.notify(constants.SyncEventUpdated, saved)
	logging.Info("Load map updated", "id", id)
	return saved, nil
}

// Delete removes record id. Deleting a missing record is not an error.
func (s *LoadMapService) Delete(ctx context.Context, id uint) error {
	found, err := s.writes.Delete(ctx, id)
	if err != nil {
		return err
	}
	s.invalidate(id)
	if found {
		s.metrics.LoadMapWrite("delete")
		s.notify(constants.SyncEventDeleted, &loadmap.LoadMap{ID: id})
		logging.Info("Load map deleted", "id", id)
	}
	return nil
}

// Ping checks the database.
func (s *LoadMapService) Ping(ctx context.Context) error {
	return s.reads.Ping(ctx)
}

// prepare copies rec and normalizes the grid so the stored snapshot has 30
// pallets, valid bulkheads and totals derived from the pallets.
func prepare(rec *loadmap.LoadMap) *loadmap.LoadMap {
	in := &loadmap.LoadMap{}
	if rec != nil {
		*in = *rec
	}
	in.ID = 0
	in.CreatedAt, in.UpdatedAt = nil, nil
	in.Normalize()
	return in
}

func (s *LoadMapService) store(rec *loadmap.LoadMap) {
	if s.cache == nil {
		return
	}
	if err := common.SetJSON(s.cache, cacheKey(rec.ID), rec, recordCacheTTL); err != nil {
		logging.Warn("Failed to cache load map", "id", rec.ID, "error", err.Error())
	}
}

func (s *LoadMapService) invalidate(id uint) {
	if s.cache != nil {
		s.cache.Delete(cacheKey(id))
	}
	s.loads.Forget(cacheKey(id))
}

func (s *LoadMapService) notify(eventType string, rec *loadmap.LoadMap) {
	if s.notifier == nil {
		return
	}
	s.notifier.Broadcast(realtime.Event{Type: eventType, ID: rec.ID, Title: rec.Title})
}

func cacheKey(id uint) string {
	return string(constants.CachePrefixLoadMap) + strconv.FormatUint(uint64(id), 10)
}

// IsNotFound reports whether err means the record does not exist.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}
