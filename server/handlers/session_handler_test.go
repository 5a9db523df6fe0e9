package handlers

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/go-kit/log"
	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/text/language"

	"tire-locator/api/placemarks"
	"tire-locator/locator"
	"tire-locator/models"
)

type testView struct {
	Total     int               `json:"total"`
	Visible   []models.Location `json:"visible"`
	ActiveID  int               `json:"activeId"`
	HasActive bool              `json:"hasActive"`
	Loading   bool              `json:"loading"`
}

type testCommand struct {
	Type    string    `json:"type"`
	ID      int       `json:"id"`
	Color   string    `json:"color"`
	Message string    `json:"message"`
	View    *testView `json:"view"`
}

func dialSession(t *testing.T) *websocket.Conn {
	t.Helper()
	backend := placemarks.NewPlacemarksApiClientMock("../../resources/placemarks.json")
	h := NewSessionHandler(locator.SessionOptions{
		Fetcher:     backend,
		Submitter:   backend,
		Locale:      language.Russian,
		PanDuration: 500 * time.Millisecond,
		Description: "4 шины",
		Client:      models.ClientInfo{Name: "Иван", Phone: "+7 900"},
	}, log.NewNopLogger())

	srv := httptest.NewServer(http.HandlerFunc(h.Serve))
	t.Cleanup(srv.Close)

	url := "ws" + strings.TrimPrefix(srv.URL, "http")
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	t.Cleanup(func() { conn.Close() })
	return conn
}

// readUntil reads commands until match returns true, collecting everything seen.
func readUntil(t *testing.T, conn *websocket.Conn, match func(testCommand) bool) []testCommand {
	t.Helper()
	var seen []testCommand
	require.NoError(t, conn.SetReadDeadline(time.Now().Add(5*time.Second)))
	for {
		var cmd testCommand
		require.NoError(t, conn.ReadJSON(&cmd))
		seen = append(seen, cmd)
		if match(cmd) {
			return seen
		}
	}
}

func loaded(cmd testCommand) bool {
	return cmd.Type == CMD_VIEW && cmd.View != nil && !cmd.View.Loading && cmd.View.Total == 3
}

func TestSessionHandler_LoadsAndFiltersByBounds(t *testing.T) {
	conn := dialSession(t)

	seen := readUntil(t, conn, loaded)
	assert.Len(t, seen[len(seen)-1].View.Visible, 3)

	require.NoError(t, conn.WriteJSON(map[string]interface{}{
		"type":   MSG_BOUNDS_CHANGE,
		"bounds": [][]float64{{59.9, 30.3}, {59.95, 30.4}},
	}))

	seen = readUntil(t, conn, func(cmd testCommand) bool {
		return cmd.Type == CMD_VIEW && len(cmd.View.Visible) == 1
	})
	assert.Equal(t, 3, seen[len(seen)-1].View.Visible[0].ID)
}

func TestSessionHandler_ListClickDrivesWidget(t *testing.T) {
	conn := dialSession(t)
	readUntil(t, conn, loaded)

	require.NoError(t, conn.WriteJSON(map[string]interface{}{"type": MSG_LIST_CLICK, "id": 3}))

	seen := readUntil(t, conn, func(cmd testCommand) bool {
		return cmd.Type == CMD_VIEW && cmd.View.HasActive
	})

	types := make([]string, 0, len(seen))
	for _, cmd := range seen {
		types = append(types, cmd.Type)
		if cmd.Type == CMD_MARKER_COLOR && cmd.ID == 3 {
			assert.Equal(t, "#FF0000", cmd.Color)
		}
	}
	assert.Contains(t, types, CMD_PAN_TO)
	assert.Contains(t, types, CMD_OPEN_BALLOON)
	assert.Contains(t, types, CMD_MARKER_COLOR)
	assert.Equal(t, 3, seen[len(seen)-1].View.ActiveID)
}

func TestSessionHandler_UnknownMessage(t *testing.T) {
	conn := dialSession(t)
	readUntil(t, conn, loaded)

	require.NoError(t, conn.WriteJSON(map[string]interface{}{"type": "explode"}))

	seen := readUntil(t, conn, func(cmd testCommand) bool { return cmd.Type == CMD_ERROR })
	assert.Contains(t, seen[len(seen)-1].Message, "unknown message type")
}
