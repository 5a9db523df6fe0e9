package redis

import (
	"encoding/json"
	"fmt"
	"sort"
	"strings"

	"tire-locator/db"
	"tire-locator/models"
)

const PLACEMARKS_GEO_KEY_V1 = "placemarks_geo_v1"
const PLACEMARK_MEMBER_FORMAT_V1 = "placemark_v1:%d"

// RedisPlacemarkDAO handles placemark operations using Redis.
type RedisPlacemarkDAO struct {
	client db.RedisClient
}

// NewRedisPlacemarkDAO initializes a RedisPlacemarkDAO with the Redis client.
func NewRedisPlacemarkDAO(client db.RedisClient) *RedisPlacemarkDAO {
	return &RedisPlacemarkDAO{client: client}
}

// UpsertPlacemark stores the placemark as a geolocation with its JSON data.
func (dao *RedisPlacemarkDAO) UpsertPlacemark(p models.Location) error {
	ctx := dao.client.GetContext()
	key := fmt.Sprintf(PLACEMARK_MEMBER_FORMAT_V1, p.ID)
	if err := dao.client.AddLocationWithJSON(ctx, PLACEMARKS_GEO_KEY_V1, key, p.Coords.Lat, p.Coords.Lon, p); err != nil {
		return fmt.Errorf("[RedisPlacemarkDAO] failed to upsert placemark %d: %w", p.ID, err)
	}
	return nil
}

// GetPlacemark reads a single placemark by id.
func (dao *RedisPlacemarkDAO) GetPlacemark(id int) (*models.Location, error) {
	str, err := dao.client.Get(fmt.Sprintf(PLACEMARK_MEMBER_FORMAT_V1, id))
	if err != nil {
		return nil, fmt.Errorf("[RedisPlacemarkDAO] failed to get placemark %d: %w", id, err)
	}
	var p models.Location
	if err := json.Unmarshal([]byte(str), &p); err != nil {
		return nil, fmt.Errorf("failed to unmarshal placemark JSON: %w", err)
	}
	return &p, nil
}

// ListPlacemarks returns every stored placemark ordered by id.
func (dao *RedisPlacemarkDAO) ListPlacemarks() ([]models.Location, error) {
	keys, err := dao.client.Keys(strings.Replace(PLACEMARK_MEMBER_FORMAT_V1, "%d", "*", 1))
	if err != nil {
		return nil, fmt.Errorf("[RedisPlacemarkDAO] failed to list placemark keys: %w", err)
	}

	placemarks := make([]models.Location, 0, len(keys))
	for _, k := range keys {
		str, err := dao.client.Get(k)
		if err != nil {
			return nil, fmt.Errorf("[RedisPlacemarkDAO] failed to read %s: %w", k, err)
		}
		var p models.Location
		if err := json.Unmarshal([]byte(str), &p); err != nil {
			return nil, fmt.Errorf("failed to unmarshal placemark JSON at %s: %w", k, err)
		}
		placemarks = append(placemarks, p)
	}
	sort.Slice(placemarks, func(i, j int) bool { return placemarks[i].ID < placemarks[j].ID })
	return placemarks, nil
}

// GetNearbyPlacemarks retrieves placemarks within radiusKm, nearest first.
func (dao *RedisPlacemarkDAO) GetNearbyPlacemarks(lat, lon, radiusKm float64) ([]models.Location, error) {
	placemarksJSON, err := dao.client.GetLocationsWithinRadius(PLACEMARKS_GEO_KEY_V1, lat, lon, radiusKm)
	if err != nil {
		return nil, fmt.Errorf("[RedisPlacemarkDAO] failed to get placemarks: %w", err)
	}

	placemarks := make([]models.Location, len(placemarksJSON))
	for i, p := range placemarksJSON {
		if err := json.Unmarshal([]byte(p), &placemarks[i]); err != nil {
			return nil, fmt.Errorf("failed to unmarshal placemark JSON: %w", err)
		}
	}
	return placemarks, nil
}

// DeletePlacemark removes the placemark's JSON and geo entry.
func (dao *RedisPlacemarkDAO) DeletePlacemark(id int) error {
	key := fmt.Sprintf(PLACEMARK_MEMBER_FORMAT_V1, id)
	if err := dao.client.Del(key); err != nil {
		return fmt.Errorf("failed to delete placemark key %s: %w", key, err)
	}
	return nil
}
