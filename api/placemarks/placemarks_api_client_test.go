package placemarks

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tire-locator/api"
	"tire-locator/models"
)

func TestGetPlacemarks(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			t.Errorf("expected GET; got %s", r.Method)
		}
		if r.URL.Path != "/placemarks" {
			t.Errorf("expected path /placemarks; got %s", r.URL.Path)
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`[
			{"id": 1, "name": "Шиномонтаж №1", "address": "Автовская ул., 35А", "schedule": "9:00 - 18:00", "coords": "59.877353,30.280951"},
			{"id": 2, "name": "Шиномонтаж №2", "address": "Московский проспект, 154", "schedule": "10:00 - 20:00", "coords": [59.882415, 30.321069]}
		]`))
	}))
	defer srv.Close()

	client := NewPlacemarksApiClient(api.NewHTTPClient(srv.URL, time.Second))

	got, err := client.GetPlacemarks(context.Background())

	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, models.Coordinates{Lat: 59.877353, Lon: 30.280951}, got[0].Coords)
	assert.Equal(t, models.Coordinates{Lat: 59.882415, Lon: 30.321069}, got[1].Coords)
	assert.Equal(t, "10:00 - 20:00", got[1].Schedule)
}

func TestGetPlacemarks_ServerError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
		w.Write([]byte(`{"status": 503, "message": "maintenance"}`))
	}))
	defer srv.Close()

	client := NewPlacemarksApiClient(api.NewHTTPClient(srv.URL, time.Second))

	got, err := client.GetPlacemarks(context.Background())

	assert.Nil(t, got)
	var statusErr *api.StatusError
	require.True(t, errors.As(err, &statusErr))
	assert.Equal(t, "maintenance", statusErr.Message)
}

func TestCreateRequest(t *testing.T) {
	var received map[string]interface{}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			t.Errorf("expected POST; got %s", r.Method)
		}
		if r.URL.Path != "/form-request" {
			t.Errorf("expected /form-request; got %s", r.URL.Path)
		}
		b, _ := io.ReadAll(r.Body)
		json.Unmarshal(b, &received)

		w.WriteHeader(http.StatusCreated)
		json.NewEncoder(w).Encode(models.RequestAck{Status: "ok", RequestID: "req-1", PlacemarkID: 2})
	}))
	defer srv.Close()

	client := NewPlacemarksApiClient(api.NewHTTPClient(srv.URL, time.Second))
	draft := models.RequestDraft{
		LocationID:  2,
		Location:    models.Location{ID: 2, Name: "Шиномонтаж №2", Address: "Московский проспект, 154", Schedule: "10:00 - 20:00"},
		Client:      models.ClientInfo{Name: "Пётр", Phone: "+79000000000"},
		Description: "4 шины",
	}

	ack, err := client.CreateRequest(context.Background(), draft.ToFormRequest())

	require.NoError(t, err)
	assert.Equal(t, "req-1", ack.RequestID)
	assert.Equal(t, 2.0, received["id"])
	assert.Equal(t, "Шиномонтаж №2", received["name"])
	assert.Equal(t, map[string]interface{}{"desc": "4 шины"}, received["request"])
	assert.Equal(t, map[string]interface{}{"name": "Пётр", "phone": "+79000000000"}, received["client"])
}
