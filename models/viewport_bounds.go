package models

import (
	"encoding/json"
	"fmt"
)

// ViewportBounds is the axis-aligned lat/lon rectangle currently shown by the map.
type ViewportBounds struct {
	SouthWest Coordinates `json:"southwest"`
	NorthEast Coordinates `json:"northeast"`
}

// NewViewportBounds builds bounds from corner values.
func NewViewportBounds(swLat, swLon, neLat, neLon float64) ViewportBounds {
	return ViewportBounds{
		SouthWest: Coordinates{Lat: swLat, Lon: swLon},
		NorthEast: Coordinates{Lat: neLat, Lon: neLon},
	}
}

// IsDegenerate reports a zero-area or inverted box.
func (b ViewportBounds) IsDegenerate() bool {
	return b.NorthEast.Lat <= b.SouthWest.Lat || b.NorthEast.Lon <= b.SouthWest.Lon
}

// Contains is inclusive on every edge.
func (b ViewportBounds) Contains(c Coordinates) bool {
	return c.Lat >= b.SouthWest.Lat && c.Lat <= b.NorthEast.Lat &&
		c.Lon >= b.SouthWest.Lon && c.Lon <= b.NorthEast.Lon
}

// UnmarshalJSON accepts the object form and the map widget's [[swLat, swLon], [neLat, neLon]] form.
func (b *ViewportBounds) UnmarshalJSON(data []byte) error {
	var pair []Coordinates
	if err := json.Unmarshal(data, &pair); err == nil {
		if len(pair) != 2 {
			return fmt.Errorf("invalid bounds: expected 2 corners, got %d", len(pair))
		}
		b.SouthWest, b.NorthEast = pair[0], pair[1]
		return nil
	}

	type Alias ViewportBounds
	var aux Alias
	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}
	*b = ViewportBounds(aux)
	return nil
}
