package services

import (
	"errors"
	"fmt"

	"github.com/go-kit/log"
	"github.com/go-kit/log/level"
	"golang.org/x/text/language"

	"tire-locator/dao/redis"
	"tire-locator/geo"
	"tire-locator/locator"
	"tire-locator/models"
	"tire-locator/util"
)

// ErrPlacemarkNotFound is returned for ids with no stored placemark.
var ErrPlacemarkNotFound = errors.New("placemark not found")

type PlacemarkService struct {
	placemarkDao *redis.RedisPlacemarkDAO
	index        *geo.Index
	locale       language.Tag
	logger       log.Logger
}

// NewPlacemarkService constructs a new PlacemarkService with Redis dependency injection.
func NewPlacemarkService(
	placemarkDao *redis.RedisPlacemarkDAO,
	index *geo.Index,
	locale language.Tag,
	logger log.Logger) *PlacemarkService {

	return &PlacemarkService{
		placemarkDao: placemarkDao,
		index:        index,
		locale:       locale,
		logger:       log.With(logger, "component", "PlacemarkService"),
	}
}

// ListPlacemarks returns every placemark sorted by name.
func (ps *PlacemarkService) ListPlacemarks() ([]models.Location, error) {
	placemarks, err := ps.placemarkDao.ListPlacemarks()
	if err != nil {
		return nil, err
	}
	return locator.SortByName(placemarks, ps.locale), nil
}

// PlacemarksInBounds answers from the R-tree index, sorted by name.
func (ps *PlacemarkService) PlacemarksInBounds(bounds models.ViewportBounds) ([]models.Location, error) {
	found, err := ps.index.SearchBox(bounds)
	if err != nil {
		return nil, err
	}
	return locator.SortByName(found, ps.locale), nil
}

// GetPlacemarksNearby returns placemarks within radiusKm of a point, nearest first.
func (ps *PlacemarkService) GetPlacemarksNearby(lat, lon, radiusKm float64) ([]models.Location, error) {
	return ps.placemarkDao.GetNearbyPlacemarks(lat, lon, radiusKm)
}

func (ps *PlacemarkService) GetPlacemark(id int) (*models.Location, error) {
	p, err := ps.placemarkDao.GetPlacemark(id)
	if err != nil {
		return nil, fmt.Errorf("%w: %d", ErrPlacemarkNotFound, id)
	}
	return p, nil
}

// SeedFromFile upserts every placemark in a JSON fixture and returns how many
// were stored.
func (ps *PlacemarkService) SeedFromFile(path string) (int, error) {
	placemarks, err := util.ReadPlacemarksFromJSON(path)
	if err != nil {
		return 0, err
	}

	stored := 0
	for _, p := range placemarks {
		if err := ps.placemarkDao.UpsertPlacemark(p); err != nil {
			level.Error(ps.logger).Log("msg", "upsert failed", "id", p.ID, "err", err)
			continue
		}
		stored++
	}
	level.Info(ps.logger).Log("msg", "seeded placemarks", "file", path, "stored", stored, "total", len(placemarks))
	return stored, nil
}
