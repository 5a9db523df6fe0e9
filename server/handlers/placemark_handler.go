package handlers

import (
	"net/http"
	"net/url"
	"strconv"

	"github.com/go-kit/log"
	"github.com/go-kit/log/level"

	"tire-locator/models"
)

const (
	SW_LAT_QUERY_ARG = "sw_lat"
	SW_LON_QUERY_ARG = "sw_lon"
	NE_LAT_QUERY_ARG = "ne_lat"
	NE_LON_QUERY_ARG = "ne_lon"
	LAT_QUERY_ARG    = "lat"
	LON_QUERY_ARG    = "lon"
	RADIUS_QUERY_ARG = "radius"
)

// PlacemarkReader is the placemark query surface the handler needs.
type PlacemarkReader interface {
	ListPlacemarks() ([]models.Location, error)
	PlacemarksInBounds(bounds models.ViewportBounds) ([]models.Location, error)
	GetPlacemarksNearby(lat, lon, radiusKm float64) ([]models.Location, error)
}

type PlacemarkHandler struct {
	placemarks PlacemarkReader
	logger     log.Logger
}

func NewPlacemarkHandler(placemarks PlacemarkReader, logger log.Logger) *PlacemarkHandler {
	return &PlacemarkHandler{
		placemarks: placemarks,
		logger:     log.With(logger, "component", "PlacemarkHandler"),
	}
}

// GetPlacemarks handles GET /placemarks, optionally restricted to
// ?sw_lat=&sw_lon=&ne_lat=&ne_lon=.
func (h *PlacemarkHandler) GetPlacemarks(w http.ResponseWriter, r *http.Request) {
	vals := r.URL.Query()

	bounds, hasBounds, err := parseBounds(vals)
	if err != nil {
		writeError(w, h.logger, http.StatusBadRequest, err.Error())
		return
	}

	var placemarks []models.Location
	if hasBounds {
		placemarks, err = h.placemarks.PlacemarksInBounds(bounds)
	} else {
		placemarks, err = h.placemarks.ListPlacemarks()
	}
	if err != nil {
		level.Error(h.logger).Log("msg", "error loading placemarks", "err", err)
		writeError(w, h.logger, http.StatusInternalServerError, "Internal server error")
		return
	}

	writeJSON(w, h.logger, http.StatusOK, placemarks)
}

// GetPlacemarksNearby handles GET /placemarks/nearby?lat=&lon=&radius= (radius in km).
func (h *PlacemarkHandler) GetPlacemarksNearby(w http.ResponseWriter, r *http.Request) {
	vals := r.URL.Query()
	var args [3]float64
	for i, name := range []string{LAT_QUERY_ARG, LON_QUERY_ARG, RADIUS_QUERY_ARG} {
		v, err := parseArgFloat64(vals, name)
		if err != nil {
			writeError(w, h.logger, http.StatusBadRequest, "Invalid argument "+name)
			return
		}
		args[i] = v
	}

	placemarks, err := h.placemarks.GetPlacemarksNearby(args[0], args[1], args[2])
	if err != nil {
		level.Error(h.logger).Log("msg", "error loading nearby placemarks", "err", err)
		writeError(w, h.logger, http.StatusInternalServerError, "Internal server error")
		return
	}
	if placemarks == nil {
		placemarks = []models.Location{}
	}

	writeJSON(w, h.logger, http.StatusOK, placemarks)
}

// Ping handles GET /ping
func (h *PlacemarkHandler) Ping(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, h.logger, http.StatusOK, map[string]string{"status": "pong"})
}

// parseBounds reports hasBounds=false when no box argument is given and an
// error when only some of them are.
func parseBounds(vals url.Values) (bounds models.ViewportBounds, hasBounds bool, err error) {
	names := []string{SW_LAT_QUERY_ARG, SW_LON_QUERY_ARG, NE_LAT_QUERY_ARG, NE_LON_QUERY_ARG}
	present := 0
	for _, name := range names {
		if vals.Get(name) != "" {
			present++
		}
	}
	if present == 0 {
		return bounds, false, nil
	}

	var corners [4]float64
	for i, name := range names {
		corners[i], err = parseArgFloat64(vals, name)
		if err != nil {
			return bounds, false, &argError{name: name}
		}
	}
	return models.NewViewportBounds(corners[0], corners[1], corners[2], corners[3]), true, nil
}

type argError struct {
	name string
}

func (e *argError) Error() string {
	return "Invalid argument " + e.name
}

func parseArgFloat64(vals url.Values, name string) (float64, error) {
	return strconv.ParseFloat(vals.Get(name), 64)
}
