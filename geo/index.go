// Package geo keeps an R-tree over placemark coordinates for bounding-box
// queries on the backend.
package geo

import (
	"fmt"
	"sync"

	"github.com/dhconnelly/rtreego"

	"tire-locator/models"
)

const (
	tolerance   = 1e-9
	minChildren = 25
	maxChildren = 50
	dimensions  = 2
)

type spatialItem struct {
	location models.Location
	rect     *rtreego.Rect
}

func (si *spatialItem) Bounds() *rtreego.Rect {
	return si.rect
}

// Index is a thread-safe R-tree of placemarks keyed on (lat, lon).
type Index struct {
	mu   sync.RWMutex
	tree *rtreego.Rtree
	size int
}

func NewIndex() *Index {
	return &Index{tree: rtreego.NewTree(dimensions, minChildren, maxChildren)}
}

// Rebuild replaces the whole tree with locations.
func (idx *Index) Rebuild(locations []models.Location) {
	items := make([]rtreego.Spatial, 0, len(locations))
	for _, l := range locations {
		p := rtreego.Point{l.Coords.Lat, l.Coords.Lon}
		items = append(items, &spatialItem{location: l, rect: p.ToRect(tolerance)})
	}
	// Bulk loading builds a better-packed tree than repeated inserts.
	tree := rtreego.NewTree(dimensions, minChildren, maxChildren, items...)

	idx.mu.Lock()
	defer idx.mu.Unlock()
	idx.tree = tree
	idx.size = len(items)
}

func (idx *Index) Size() int {
	idx.mu.RLock()
	defer idx.mu.RUnlock()
	return idx.size
}

// SearchBox returns the placemarks inside bounds, edges included. Degenerate
// bounds match nothing.
func (idx *Index) SearchBox(bounds models.ViewportBounds) ([]models.Location, error) {
	found := []models.Location{}
	if bounds.IsDegenerate() {
		return found, nil
	}

	sw, ne := bounds.SouthWest, bounds.NorthEast
	// Widen by the point tolerance so points sitting on an edge still intersect.
	rect, err := rtreego.NewRect(
		rtreego.Point{sw.Lat - tolerance, sw.Lon - tolerance},
		[]float64{ne.Lat - sw.Lat + 2*tolerance, ne.Lon - sw.Lon + 2*tolerance},
	)
	if err != nil {
		return nil, fmt.Errorf("invalid bounding box: %w", err)
	}

	idx.mu.RLock()
	results := idx.tree.SearchIntersect(rect)
	idx.mu.RUnlock()

	for _, r := range results {
		item, ok := r.(*spatialItem)
		if !ok {
			continue
		}
		if bounds.Contains(item.location.Coords) {
			found = append(found, item.location)
		}
	}
	return found, nil
}
