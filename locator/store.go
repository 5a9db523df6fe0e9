package locator

import (
	"context"
	"sort"

	"github.com/go-kit/log"
	"github.com/go-kit/log/level"
	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"tire-locator/models"
)

// PlacemarkFetcher loads the full placemark collection from the backend.
type PlacemarkFetcher interface {
	GetPlacemarks(ctx context.Context) ([]models.Location, error)
}

// PlaceStore holds the canonical, name-sorted location list.
type PlaceStore struct {
	fetcher PlacemarkFetcher
	locale  language.Tag
	logger  log.Logger

	locations []models.Location
	index     map[int]int
}

// NewPlaceStore creates an empty store. Names are collated using locale.
func NewPlaceStore(fetcher PlacemarkFetcher, locale language.Tag, logger log.Logger) *PlaceStore {
	return &PlaceStore{
		fetcher: fetcher,
		locale:  locale,
		logger:  log.With(logger, "component", "PlaceStore"),
		index:   map[int]int{},
	}
}

// Load fetches once and replaces the collection. On failure the store is
// left empty and a *FetchError is returned.
func (s *PlaceStore) Load(ctx context.Context) ([]models.Location, error) {
	locations, err := s.Fetch(ctx)
	if err != nil {
		s.Replace(nil)
		return nil, err
	}
	s.Replace(locations)
	return s.All(), nil
}

// Fetch performs the backend call and sorting without touching store state,
// so it can run off the event loop.
func (s *PlaceStore) Fetch(ctx context.Context) ([]models.Location, error) {
	fetched, err := s.fetcher.GetPlacemarks(ctx)
	if err != nil {
		fetchErr := &FetchError{Err: err}
		level.Error(s.logger).Log("msg", "failed to load placemarks", "err", fetchErr)
		return nil, fetchErr
	}

	sorted := SortByName(fetched, s.locale)
	level.Info(s.logger).Log("msg", "loaded placemarks", "count", len(sorted))
	return sorted, nil
}

// Replace swaps the whole collection. Of several locations sharing an id only
// the first is kept.
func (s *PlaceStore) Replace(locations []models.Location) {
	kept := make([]models.Location, 0, len(locations))
	index := make(map[int]int, len(locations))
	for _, l := range locations {
		if _, dup := index[l.ID]; dup {
			level.Warn(s.logger).Log("msg", "duplicate placemark id, keeping first", "id", l.ID)
			continue
		}
		index[l.ID] = len(kept)
		kept = append(kept, l)
	}
	s.locations = kept
	s.index = index
}

// All returns a copy of the collection in sort order.
func (s *PlaceStore) All() []models.Location {
	return append([]models.Location{}, s.locations...)
}

// Find looks up a location by id.
func (s *PlaceStore) Find(id int) (models.Location, bool) {
	i, ok := s.index[id]
	if !ok {
		return models.Location{}, false
	}
	return s.locations[i], true
}

func (s *PlaceStore) Len() int {
	return len(s.locations)
}

// SortByName returns a copy of locations ordered by name under the locale's
// collation rules. Equal names keep their input order.
func SortByName(locations []models.Location, locale language.Tag) []models.Location {
	sorted := append([]models.Location{}, locations...)
	// Collators keep scratch buffers, so each sort gets its own.
	collator := collate.New(locale)
	sort.SliceStable(sorted, func(i, j int) bool {
		return collator.CompareString(sorted[i].Name, sorted[j].Name) < 0
	})
	return sorted
}
