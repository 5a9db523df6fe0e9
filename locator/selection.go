package locator

import (
	"fmt"
	"time"

	"github.com/go-kit/log"
	"github.com/go-kit/log/level"

	"tire-locator/config"
	"tire-locator/models"
)

// MapWidget is the part of the map SDK the locator drives.
type MapWidget interface {
	PanTo(coords models.Coordinates, duration time.Duration)
	OpenBalloon(id int)
	SetMarkerColor(id int, color string)
}

// NopMapWidget ignores every command. Useful for headless sessions.
type NopMapWidget struct{}

func (NopMapWidget) PanTo(models.Coordinates, time.Duration) {}
func (NopMapWidget) OpenBalloon(int) {}
func (NopMapWidget) SetMarkerColor(int, string) {}

// LocationLookup resolves ids to locations.
type LocationLookup interface {
	Find(id int) (models.Location, bool)
}

// ChosenLocation is a copy of a location confirmed from the detail popup,
// plus the request description and any client details typed into the popup.
type ChosenLocation struct {
	models.Location
	Description string            `json:"description"`
	Client      models.ClientInfo `json:"client"`
}

// SelectionState holds the two independent selections.
type SelectionState struct {
	ActiveID  int             `json:"activeId"`
	HasActive bool            `json:"hasActive"`
	Chosen    *ChosenLocation `json:"chosen"`
}

// PopupState is what the detail popup currently displays.
type PopupState struct {
	Open     bool              `json:"open"`
	Location models.Location   `json:"location"`
	Client   models.ClientInfo `json:"client"`
}

// SelectionController tracks the active marker, the detail popup and the
// chosen location.
type SelectionController struct {
	places      LocationLookup
	widget      MapWidget
	panDuration time.Duration
	description string
	logger      log.Logger

	state SelectionState
	popup PopupState
}

func NewSelectionController(
	places LocationLookup,
	widget MapWidget,
	panDuration time.Duration,
	description string,
	logger log.Logger,
) *SelectionController {
	if widget == nil {
		widget = NopMapWidget{}
	}
	return &SelectionController{
		places:      places,
		widget:      widget,
		panDuration: panDuration,
		description: description,
		logger:      log.With(logger, "component", "SelectionController"),
	}
}

// SelectActive highlights id, pans the map to it and opens its balloon.
func (c *SelectionController) SelectActive(id int) error {
	loc, ok := c.places.Find(id)
	if !ok {
		return fmt.Errorf("select active %d: %w", id, ErrInternalInconsistency)
	}

	if c.state.HasActive && c.state.ActiveID != id {
		c.widget.SetMarkerColor(c.state.ActiveID, config.DEFAULT_MARKER_COLOR)
	}
	c.state.ActiveID = id
	c.state.HasActive = true
	c.widget.SetMarkerColor(id, config.ACTIVE_MARKER_COLOR)

	c.widget.PanTo(loc.Coords, c.panDuration)
	c.widget.OpenBalloon(id)

	level.Debug(c.logger).Log("msg", "active location changed", "id", id)
	return nil
}

// ClearActive drops the highlight, e.g. after the store was reloaded without it.
func (c *SelectionController) ClearActive() {
	if !c.state.HasActive {
		return
	}
	c.widget.SetMarkerColor(c.state.ActiveID, config.DEFAULT_MARKER_COLOR)
	c.state.ActiveID = 0
	c.state.HasActive = false
}

// MarkerColor is the color the marker for id should be drawn with.
func (c *SelectionController) MarkerColor(id int) string {
	if c.state.HasActive && c.state.ActiveID == id {
		return config.ACTIVE_MARKER_COLOR
	}
	return config.DEFAULT_MARKER_COLOR
}

// OpenDetail shows the popup for id, replacing whatever it showed before.
func (c *SelectionController) OpenDetail(id int) error {
	loc, ok := c.places.Find(id)
	if !ok {
		return fmt.Errorf("open detail %d: %w", id, ErrInternalInconsistency)
	}
	c.popup = PopupState{Open: true, Location: loc}
	return nil
}

// SetClientField captures popup form input. Only "name" and "phone" exist.
func (c *SelectionController) SetClientField(field, value string) error {
	if !c.popup.Open {
		return nil
	}
	switch field {
	case "name":
		c.popup.Client.Name = value
	case "phone":
		c.popup.Client.Phone = value
	default:
		return fmt.Errorf("unknown client field %q", field)
	}
	return nil
}

// ConfirmChoice copies the open popup into the chosen location and closes the
// popup. It reports false and changes nothing when no popup is open.
func (c *SelectionController) ConfirmChoice() bool {
	if !c.popup.Open {
		return false
	}
	if !c.popup.Location.IsComplete() {
		level.Warn(c.logger).Log("msg", "refusing to choose incomplete location", "id", c.popup.Location.ID)
		return false
	}

	c.state.Chosen = &ChosenLocation{
		Location:    c.popup.Location,
		Description: c.description,
		Client:      c.popup.Client,
	}
	c.CloseDetail()
	return true
}

// CloseDetail hides the popup and blanks its fields.
func (c *SelectionController) CloseDetail() {
	c.popup = PopupState{}
}

// State returns a copy of the selection; Chosen is deep-copied.
func (c *SelectionController) State() SelectionState {
	state := c.state
	if state.Chosen != nil {
		chosen := *state.Chosen
		state.Chosen = &chosen
	}
	return state
}

func (c *SelectionController) Popup() PopupState {
	return c.popup
}

func (c *SelectionController) chosen() *ChosenLocation {
	return c.state.Chosen
}

func (c *SelectionController) clearChosen() {
	c.state.Chosen = nil
}
