package handlers

import (
	"context"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/go-kit/log"
	"github.com/go-kit/log/level"
	"github.com/gorilla/websocket"

	"tire-locator/locator"
	"tire-locator/models"
)

// Inbound message types sent by the browser map widget.
const (
	MSG_BOUNDS_CHANGE = "boundschange"
	MSG_LIST_CLICK    = "listclick"
	MSG_MARKER_CLICK  = "markerclick"
	MSG_CHOOSE        = "choose"
	MSG_CLIENT_FIELD  = "clientfield"
	MSG_CONFIRM       = "confirm"
	MSG_CLOSE         = "close"
	MSG_SUBMIT        = "submit"
	MSG_RESET         = "reset"
	MSG_TOGGLE_PANEL  = "togglepanel"
	MSG_RELOAD        = "reload"
)

// Outbound command types.
const (
	CMD_PAN_TO       = "panTo"
	CMD_OPEN_BALLOON = "openBalloon"
	CMD_MARKER_COLOR = "markerColor"
	CMD_VIEW         = "view"
	CMD_ERROR        = "error"
)

const wsWriteTimeout = 5 * time.Second

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin:     func(r *http.Request) bool { return true },
}

type inboundMessage struct {
	Type   string                 `json:"type"`
	ID     int                    `json:"id,omitempty"`
	Field  string                 `json:"field,omitempty"`
	Value  string                 `json:"value,omitempty"`
	Bounds *models.ViewportBounds `json:"bounds,omitempty"`
}

type outboundMessage struct {
	Type       string              `json:"type"`
	ID         int                 `json:"id,omitempty"`
	Coords     *models.Coordinates `json:"coords,omitempty"`
	DurationMs int64               `json:"durationMs,omitempty"`
	Color      string              `json:"color,omitempty"`
	View       *locator.View       `json:"view,omitempty"`
	Message    string              `json:"message,omitempty"`
}

// toEvent maps a widget message onto a session event.
func (m inboundMessage) toEvent() (locator.Event, error) {
	switch m.Type {
	case MSG_BOUNDS_CHANGE:
		if m.Bounds == nil {
			return nil, fmt.Errorf("%s without bounds", m.Type)
		}
		return locator.BoundsChanged{Bounds: *m.Bounds}, nil
	case MSG_LIST_CLICK:
		return locator.ListItemClicked{ID: m.ID}, nil
	case MSG_MARKER_CLICK:
		return locator.MarkerClicked{ID: m.ID}, nil
	case MSG_CHOOSE:
		return locator.DetailRequested{ID: m.ID}, nil
	case MSG_CLIENT_FIELD:
		return locator.ClientFieldChanged{Field: m.Field, Value: m.Value}, nil
	case MSG_CONFIRM:
		return locator.ChoiceConfirmed{}, nil
	case MSG_CLOSE:
		return locator.DetailClosed{}, nil
	case MSG_SUBMIT:
		return locator.SubmitRequested{}, nil
	case MSG_RESET:
		return locator.ResetRequested{}, nil
	case MSG_TOGGLE_PANEL:
		return locator.PanelToggled{}, nil
	case MSG_RELOAD:
		return locator.ReloadRequested{}, nil
	default:
		return nil, fmt.Errorf("unknown message type %q", m.Type)
	}
}

// wsMapWidget drives the browser map over a WebSocket connection.
type wsMapWidget struct {
	conn   *websocket.Conn
	logger log.Logger
	mu     sync.Mutex
}

func (w *wsMapWidget) PanTo(coords models.Coordinates, duration time.Duration) {
	w.send(outboundMessage{Type: CMD_PAN_TO, Coords: &coords, DurationMs: duration.Milliseconds()})
}

func (w *wsMapWidget) OpenBalloon(id int) {
	w.send(outboundMessage{Type: CMD_OPEN_BALLOON, ID: id})
}

func (w *wsMapWidget) SetMarkerColor(id int, color string) {
	w.send(outboundMessage{Type: CMD_MARKER_COLOR, ID: id, Color: color})
}

func (w *wsMapWidget) pushView(v locator.View) {
	w.send(outboundMessage{Type: CMD_VIEW, View: &v})
}

// send is called from the session loop and the read loop.
func (w *wsMapWidget) send(msg outboundMessage) {
	w.mu.Lock()
	defer w.mu.Unlock()

	_ = w.conn.SetWriteDeadline(time.Now().Add(wsWriteTimeout))
	if err := w.conn.WriteJSON(msg); err != nil {
		level.Debug(w.logger).Log("msg", "write failed", "type", msg.Type, "err", err)
	}
}

// SessionHandler gives every WebSocket connection its own locator session.
type SessionHandler struct {
	options locator.SessionOptions
	logger  log.Logger
}

// NewSessionHandler keeps opts as a template; Widget and OnChange are set per connection.
func NewSessionHandler(opts locator.SessionOptions, logger log.Logger) *SessionHandler {
	return &SessionHandler{
		options: opts,
		logger:  log.With(logger, "component", "SessionHandler"),
	}
}

// Serve handles GET /ws/session
func (h *SessionHandler) Serve(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		level.Warn(h.logger).Log("msg", "websocket upgrade failed", "err", err)
		return
	}
	defer conn.Close()

	logger := log.With(h.logger, "remote", r.RemoteAddr)
	widget := &wsMapWidget{conn: conn, logger: logger}

	opts := h.options
	opts.Widget = widget
	opts.OnChange = widget.pushView
	opts.Logger = logger
	session := locator.NewSession(opts)

	ctx, cancel := context.WithCancel(r.Context())
	stopped := make(chan struct{})
	go func() {
		defer close(stopped)
		_ = session.Run(ctx)
	}()
	defer func() {
		cancel()
		<-stopped
	}()

	level.Info(logger).Log("msg", "session opened")
	for {
		var msg inboundMessage
		if err := conn.ReadJSON(&msg); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				level.Warn(logger).Log("msg", "read failed", "err", err)
			}
			level.Info(logger).Log("msg", "session closed")
			return
		}

		ev, err := msg.toEvent()
		if err != nil {
			widget.send(outboundMessage{Type: CMD_ERROR, Message: err.Error()})
			continue
		}
		if err := session.Post(ctx, ev); err != nil {
			level.Warn(logger).Log("msg", "post failed", "err", err)
			return
		}
	}
}
