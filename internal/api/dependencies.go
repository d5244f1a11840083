package api

import (
	"fmt"

	"github.com/jmoiron/sqlx"
	"gorm.io/gorm"

	"warehouse/loadmap/internal/common"
	"warehouse/loadmap/internal/config"
	"warehouse/loadmap/internal/db/repositories"
	"warehouse/loadmap/internal/logging"
	"warehouse/loadmap/internal/metrics"
	"warehouse/loadmap/internal/realtime"
	"warehouse/loadmap/internal/services"
)

type Repositories struct {
	LoadMapGorm *repositories.LoadMapGormRepository
	LoadMap     *repositories.LoadMapRepository
}

type Services struct {
	Cache   common.CacheInterface
	LoadMap *services.LoadMapService
}

type Dependencies struct {
	Config   *config.Config
	Repo     *Repositories
	Services *Services
	Hub      *realtime.Hub
	Metrics  *metrics.MetricsRegistry
}

// InitDependencies wires repositories and services. The record cache is
// Redis when REDIS_HOST is configured and reachable, in-memory otherwise.
func InitDependencies(
	cfg *config.Config,
	orm *gorm.DB,
	raw *sqlx.DB,
	hub *realtime.Hub,
	metricsReg *metrics.MetricsRegistry,
) (*Dependencies, error) {
	if cfg == nil {
		return nil, fmt.Errorf("init dependencies: nil config")
	}

	repos := &Repositories{
		LoadMapGorm: repositories.NewLoadMapGormRepository(orm, metricsReg),
		LoadMap:     repositories.NewLoadMapRepository(raw, metricsReg),
	}

	cache := newCache(cfg)

	var notifier services.Notifier
	if hub != nil {
		notifier = hub
	}

	svcs := &Services{
		Cache:   cache,
		LoadMap: services.NewLoadMapService(repos.LoadMapGorm, repos.LoadMap, cache, notifier, metricsReg),
	}

	return &Dependencies{
		Config:   cfg,
		Repo:     repos,
		Services: svcs,
		Hub:      hub,
		Metrics:  metricsReg,
	}, nil
}

func newCache(cfg *config.Config) common.CacheInterface {
	if cfg.Redis.Host != "" {
		client := common.NewRedisClient(common.RedisOptions{
			Host:     cfg.Redis.Host,
			Port:     cfg.Redis.Port,
			Password: cfg.Redis.Password,
		})
		cache, err := common.NewRedisCacheService(client, "loadmap:")
		if err == nil {
			logging.Info("Using Redis record cache", "host", cfg.Redis.Host)
			return cache
		}
		logging.Warn("Redis unavailable, falling back to in-memory cache", "error", err.Error())
		client.Close()
	}
	return common.NewCacheService(600, 1200)
}

// Close releases the cache connection.
func (d *Dependencies) Close() error {
	return d.Services.Cache.Close()
}
