package util

import (
	"fmt"
	"io"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/opts"
	"github.com/go-echarts/go-echarts/v2/types"

	"tire-locator/config"
	"tire-locator/models"
)

// PlotViewport renders the viewport rectangle and the visible placemarks as an
// HTML geo chart. The active placemark is drawn in its own series so it keeps
// the active marker color.
func PlotViewport(w io.Writer, bounds models.ViewportBounds, visible []models.Location, activeID int) error {
	sw, ne := bounds.SouthWest, bounds.NorthEast

	// Corners of the viewport, closed back to SW. ECharts expects [lon, lat].
	corners := []opts.GeoData{
		{Name: "SW", Value: []float64{sw.Lon, sw.Lat}},
		{Name: "NW", Value: []float64{sw.Lon, ne.Lat}},
		{Name: "NE", Value: []float64{ne.Lon, ne.Lat}},
		{Name: "SE", Value: []float64{ne.Lon, sw.Lat}},
		{Name: "SW", Value: []float64{sw.Lon, sw.Lat}},
	}

	var markers, active []opts.GeoData
	for _, l := range visible {
		point := opts.GeoData{Name: l.Name, Value: []float64{l.Coords.Lon, l.Coords.Lat}}
		if l.ID == activeID {
			active = append(active, point)
		} else {
			markers = append(markers, point)
		}
	}

	geo := charts.NewGeo()
	geo.SetGlobalOptions(
		charts.WithInitializationOpts(opts.Initialization{
			PageTitle: "Viewport",
			Width:     "800px",
			Height:    "600px",
		}),
		charts.WithGeoComponentOpts(opts.GeoComponent{
			Map:    "world",
			Silent: opts.Bool(true),
		}),
	)

	geo.AddSeries("Viewport", types.ChartScatter, corners,
		charts.WithLabelOpts(opts.Label{
			Show:      opts.Bool(true),
			Formatter: "{b}",
		}),
	)
	geo.AddSeries("Placemarks", types.ChartScatter, markers,
		charts.WithItemStyleOpts(opts.ItemStyle{Color: config.DEFAULT_MARKER_COLOR}),
		charts.WithLabelOpts(opts.Label{
			Show:      opts.Bool(true),
			Formatter: "{b}",
		}),
	)
	if len(active) > 0 {
		geo.AddSeries("Active", types.ChartScatter, active,
			charts.WithItemStyleOpts(opts.ItemStyle{Color: config.ACTIVE_MARKER_COLOR}),
			charts.WithLabelOpts(opts.Label{
				Show:      opts.Bool(true),
				Formatter: "{b}",
			}),
		)
	}

	if err := geo.Render(w); err != nil {
		return fmt.Errorf("failed to render viewport chart: %w", err)
	}
	return nil
}
