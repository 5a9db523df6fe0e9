package geo

import (
	"math/rand"
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tire-locator/models"
)

func ids(locations []models.Location) []int {
	out := make([]int, 0, len(locations))
	for _, l := range locations {
		out = append(out, l.ID)
	}
	sort.Ints(out)
	return out
}

func TestIndex_SearchBox(t *testing.T) {
	idx := NewIndex()
	idx.Rebuild([]models.Location{
		{ID: 1, Coords: models.Coordinates{Lat: 59.877353, Lon: 30.280951}},
		{ID: 2, Coords: models.Coordinates{Lat: 59.882415, Lon: 30.321069}},
	})
	require.Equal(t, 2, idx.Size())

	got, err := idx.SearchBox(models.NewViewportBounds(59.87, 30.27, 59.90, 30.33))
	require.NoError(t, err)
	assert.Equal(t, []int{1, 2}, ids(got))

	got, err = idx.SearchBox(models.NewViewportBounds(59.88, 30.30, 59.90, 30.33))
	require.NoError(t, err)
	assert.Equal(t, []int{2}, ids(got))
}

func TestIndex_SearchBox_EdgesAndDegenerate(t *testing.T) {
	idx := NewIndex()
	idx.Rebuild([]models.Location{{ID: 1, Coords: models.Coordinates{Lat: 10, Lon: 20}}})

	got, err := idx.SearchBox(models.NewViewportBounds(10, 20, 11, 21))
	require.NoError(t, err)
	assert.Len(t, got, 1)

	got, err = idx.SearchBox(models.NewViewportBounds(10, 20, 10, 20))
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestIndex_MatchesLinearScan(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	locations := make([]models.Location, 1000)
	for i := range locations {
		locations[i] = models.Location{ID: i + 1, Coords: models.Coordinates{Lat: rng.Float64() * 10, Lon: rng.Float64() * 10}}
	}
	idx := NewIndex()
	idx.Rebuild(locations)

	for n := 0; n < 20; n++ {
		lat, lon := rng.Float64()*8, rng.Float64()*8
		bounds := models.NewViewportBounds(lat, lon, lat+rng.Float64()*2+0.1, lon+rng.Float64()*2+0.1)

		var want []models.Location
		for _, l := range locations {
			if bounds.Contains(l.Coords) {
				want = append(want, l)
			}
		}

		got, err := idx.SearchBox(bounds)
		require.NoError(t, err)
		assert.Equal(t, ids(want), ids(got))
	}
}
