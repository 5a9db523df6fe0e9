package placemarks

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tire-locator/config"
	"tire-locator/models"
	"tire-locator/util"
)

func seedPath(t *testing.T) string {
	t.Helper()
	t.Setenv("PROJECT_ROOT", "../..")
	return config.GetResourcePath(config.PLACEMARKS_SEED_RESOURCE)
}

func TestMockGetPlacemarks_Success(t *testing.T) {
	path := seedPath(t)
	client := NewPlacemarksApiClientMock(path)

	expected, err := util.ReadPlacemarksFromJSON(path)
	require.NoError(t, err)

	got, err := client.GetPlacemarks(context.Background())

	require.NoError(t, err)
	assert.Equal(t, expected, got)
}

func TestMockGetPlacemarks_MissingFixture(t *testing.T) {
	client := NewPlacemarksApiClientMock("does-not-exist.json")

	got, err := client.GetPlacemarks(context.Background())

	assert.Error(t, err)
	assert.Nil(t, got)
}

func TestMockCreateRequest_Records(t *testing.T) {
	client := NewPlacemarksApiClientMock(seedPath(t))

	ack, err := client.CreateRequest(context.Background(), models.FormRequest{ID: 3})

	require.NoError(t, err)
	assert.Equal(t, 3, ack.PlacemarkID)
	assert.Equal(t, "mock-1", ack.RequestID)
	assert.Len(t, client.Requests(), 1)
}
