package models

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

// Coordinates is a latitude/longitude pair in degrees.
type Coordinates struct {
	Lat float64
	Lon float64
}

// ParseCoordinates parses the backend's "lat,lon" form.
func ParseCoordinates(s string) (Coordinates, error) {
	parts := strings.Split(s, ",")
	if len(parts) != 2 {
		return Coordinates{}, fmt.Errorf("invalid coordinates %q: expected \"lat,lon\"", s)
	}
	lat, err := strconv.ParseFloat(strings.TrimSpace(parts[0]), 64)
	if err != nil {
		return Coordinates{}, fmt.Errorf("invalid latitude in %q: %w", s, err)
	}
	lon, err := strconv.ParseFloat(strings.TrimSpace(parts[1]), 64)
	if err != nil {
		return Coordinates{}, fmt.Errorf("invalid longitude in %q: %w", s, err)
	}
	return Coordinates{Lat: lat, Lon: lon}, nil
}

func (c Coordinates) String() string {
	return strconv.FormatFloat(c.Lat, 'f', -1, 64) + "," + strconv.FormatFloat(c.Lon, 'f', -1, 64)
}

// MarshalJSON writes the wire form "lat,lon".
func (c Coordinates) MarshalJSON() ([]byte, error) {
	return json.Marshal(c.String())
}

// UnmarshalJSON accepts either "lat,lon" or [lat, lon].
func (c *Coordinates) UnmarshalJSON(data []byte) error {
	var raw interface{}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	switch v := raw.(type) {
	case string:
		parsed, err := ParseCoordinates(v)
		if err != nil {
			return err
		}
		*c = parsed
	case []interface{}:
		if len(v) != 2 {
			return fmt.Errorf("invalid coordinates: expected 2 elements, got %d", len(v))
		}
		lat, okLat := v[0].(float64)
		lon, okLon := v[1].(float64)
		if !okLat || !okLon {
			return fmt.Errorf("invalid coordinates: non-numeric element in %s", string(data))
		}
		*c = Coordinates{Lat: lat, Lon: lon}
	default:
		return fmt.Errorf("invalid coordinates: %s", string(data))
	}
	return nil
}
