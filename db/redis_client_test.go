package db_test

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tire-locator/db"
)

func TestRedisClient_SetAndGet(t *testing.T) {
	tests := []struct {
		name   string
		client db.RedisClient
	}{
		{"MockRedisClient", db.NewMockRedisClient(context.Background())},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			require.NoError(t, test.client.Set("test-key", "test-value"))

			retrieved, err := test.client.Get("test-key")

			require.NoError(t, err)
			assert.Equal(t, "test-value", retrieved)

			_, err = test.client.Get("missing")
			assert.Error(t, err)
		})
	}
}

func TestRedisClient_GetLocationsWithinRadius(t *testing.T) {
	client := db.NewMockRedisClient(context.Background())
	ctx := context.Background()

	// ~4.7 km apart in Saint Petersburg
	require.NoError(t, client.AddLocationWithJSON(ctx, "placemarks", "p:1", 59.877353, 30.280951, map[string]int{"id": 1}))
	require.NoError(t, client.AddLocationWithJSON(ctx, "placemarks", "p:2", 59.882415, 30.321069, map[string]int{"id": 2}))

	near, err := client.GetLocationsWithinRadius("placemarks", 59.877353, 30.280951, 1)
	require.NoError(t, err)
	require.Len(t, near, 1)
	var got map[string]int
	require.NoError(t, json.Unmarshal([]byte(near[0]), &got))
	assert.Equal(t, 1, got["id"])

	both, err := client.GetLocationsWithinRadius("placemarks", 59.877353, 30.280951, 10)
	require.NoError(t, err)
	assert.Len(t, both, 2)

	none, err := client.GetLocationsWithinRadius("unknown", 0, 0, 10)
	require.NoError(t, err)
	assert.Empty(t, none)
}

func TestRedisClient_KeysAndDel(t *testing.T) {
	client := db.NewMockRedisClient(context.Background())
	require.NoError(t, client.Set("placemark_v1:1", "{}"))
	require.NoError(t, client.Set("placemark_v1:2", "{}"))
	require.NoError(t, client.Set("other", "{}"))

	keys, err := client.Keys("placemark_v1:*")
	require.NoError(t, err)
	assert.Equal(t, []string{"placemark_v1:1", "placemark_v1:2"}, keys)

	require.NoError(t, client.Del("placemark_v1:1"))
	keys, err = client.Keys("placemark_v1:*")
	require.NoError(t, err)
	assert.Equal(t, []string{"placemark_v1:2"}, keys)
}

func TestRedisClient_Ping(t *testing.T) {
	assert.NoError(t, db.NewMockRedisClient(context.Background()).Ping())
}
