package locator

import (
	"context"
	"errors"
	"testing"

	"github.com/go-kit/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/text/language"

	"tire-locator/models"
)

func names(locations []models.Location) []string {
	out := make([]string, 0, len(locations))
	for _, l := range locations {
		out = append(out, l.Name)
	}
	return out
}

func TestPlaceStore_Load_SortsByName(t *testing.T) {
	fetcher := &fakeFetcher{locations: []models.Location{
		shopTwo,
		{ID: 3, Name: "Автосервис", Address: "a", Schedule: "s"},
		shopOne,
	}}
	store := NewPlaceStore(fetcher, language.Russian, log.NewNopLogger())

	got, err := store.Load(context.Background())

	require.NoError(t, err)
	assert.Equal(t, []string{"Автосервис", "Шиномонтаж №1", "Шиномонтаж №2"}, names(got))
	assert.Equal(t, 3, store.Len())
	assert.Equal(t, 1, fetcher.calls)
}

func TestSortByName_IsLocaleAware(t *testing.T) {
	// Byte order would put the capital letter first.
	in := []models.Location{
		{ID: 1, Name: "Шиномонтаж №1"},
		{ID: 2, Name: "шина-сервис"},
	}

	got := SortByName(in, language.Russian)

	assert.Equal(t, []string{"шина-сервис", "Шиномонтаж №1"}, names(got))
	assert.Equal(t, "Шиномонтаж №1", in[0].Name, "input must not be reordered")
}

func TestSortByName_StableForEqualNames(t *testing.T) {
	in := []models.Location{
		{ID: 7, Name: "Same"},
		{ID: 3, Name: "Same"},
	}

	got := SortByName(in, language.English)

	assert.Equal(t, 7, got[0].ID)
	assert.Equal(t, 3, got[1].ID)
}

func TestPlaceStore_Load_FailureLeavesStoreEmpty(t *testing.T) {
	fetcher := &fakeFetcher{locations: []models.Location{shopOne}}
	store := NewPlaceStore(fetcher, language.Russian, log.NewNopLogger())
	_, err := store.Load(context.Background())
	require.NoError(t, err)

	fetcher.err = errors.New("connection refused")
	got, err := store.Load(context.Background())

	assert.Nil(t, got)
	var fetchErr *FetchError
	require.True(t, errors.As(err, &fetchErr))
	assert.EqualError(t, fetchErr.Unwrap(), "connection refused")
	assert.Equal(t, 0, store.Len())
	_, ok := store.Find(shopOne.ID)
	assert.False(t, ok)
}

func TestPlaceStore_FindAndAllReturnCopies(t *testing.T) {
	store := NewPlaceStore(&fakeFetcher{locations: []models.Location{shopOne, shopTwo}}, language.Russian, log.NewNopLogger())
	_, err := store.Load(context.Background())
	require.NoError(t, err)

	all := store.All()
	all[0].Name = "mutated"

	found, ok := store.Find(1)
	require.True(t, ok)
	assert.Equal(t, "Шиномонтаж №1", found.Name)
	_, ok = store.Find(42)
	assert.False(t, ok)
}

func TestPlaceStore_ReplaceKeepsFirstDuplicate(t *testing.T) {
	store := NewPlaceStore(&fakeFetcher{}, language.Russian, log.NewNopLogger())

	store.Replace([]models.Location{shopOne, {ID: 1, Name: "dup"}, shopTwo})

	found, ok := store.Find(1)
	require.True(t, ok)
	assert.Equal(t, shopOne.Name, found.Name)
	assert.Equal(t, 2, store.Len())
	assert.Equal(t, []models.Location{shopOne, shopTwo}, store.All())

	found, ok = store.Find(2)
	require.True(t, ok)
	assert.Equal(t, shopTwo.Name, found.Name)
}
