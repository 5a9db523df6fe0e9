package services

import (
	"context"
	"time"

	"github.com/go-kit/log"
	"github.com/go-kit/log/level"

	"tire-locator/dao/redis"
	"tire-locator/geo"
)

// PlacemarkIndexRefresherService periodically rebuilds the R-tree index from Redis.
type PlacemarkIndexRefresherService struct {
	placemarkDao *redis.RedisPlacemarkDAO
	index        *geo.Index
	logger       log.Logger
}

// NewPlacemarkIndexRefresherService constructs a new refresher with dependencies.
func NewPlacemarkIndexRefresherService(
	placemarkDao *redis.RedisPlacemarkDAO,
	index *geo.Index,
	logger log.Logger,
) *PlacemarkIndexRefresherService {
	return &PlacemarkIndexRefresherService{
		placemarkDao: placemarkDao,
		index:        index,
		logger:       log.With(logger, "component", "PlacemarkIndexRefresherService"),
	}
}

// RunPeriodicJob refreshes on every tick until ctx is done.
func (ir *PlacemarkIndexRefresherService) RunPeriodicJob(ctx context.Context, interval time.Duration) error {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
			level.Debug(ir.logger).Log("msg", "running periodic index refresh")
			if err := ir.RefreshIndex(); err != nil {
				level.Error(ir.logger).Log("msg", "index refresh failed", "err", err)
			}
		}
	}
}

// RefreshIndex reloads every placemark from Redis into the index.
func (ir *PlacemarkIndexRefresherService) RefreshIndex() error {
	placemarks, err := ir.placemarkDao.ListPlacemarks()
	if err != nil {
		return err
	}
	ir.index.Rebuild(placemarks)
	level.Info(ir.logger).Log("msg", "index rebuilt", "placemarks", len(placemarks))
	return nil
}
