package locator

import "tire-locator/models"

// Event is something the session loop reacts to. Only types in this package
// implement it.
type Event interface {
	apply(s *Session) error
}

// BoundsChanged is sent by the map widget after every pan or zoom.
type BoundsChanged struct {
	Bounds models.ViewportBounds
}

// ListItemClicked is a click on an entry of the list panel.
type ListItemClicked struct {
	ID int
}

// MarkerClicked is a click on a map marker.
type MarkerClicked struct {
	ID int
}

// DetailRequested is the "choose" button inside a marker balloon.
type DetailRequested struct {
	ID int
}

// ClientFieldChanged is typing into the popup's client form.
type ClientFieldChanged struct {
	Field string
	Value string
}

// ChoiceConfirmed confirms the location shown in the popup.
type ChoiceConfirmed struct{}

// DetailClosed is the popup's close button.
type DetailClosed struct{}

// SubmitRequested sends the request for the chosen location.
type SubmitRequested struct{}

// ResetRequested discards the chosen location.
type ResetRequested struct{}

// PanelToggled is the list panel's show/hide button.
type PanelToggled struct{}

// ReloadRequested fetches the placemarks again.
type ReloadRequested struct{}

type loadCompleted struct {
	locations []models.Location
	err       error
}

type submitCompleted struct {
	draft models.RequestDraft
	ack   *models.RequestAck
	err   error
}

type snapshotRequested struct {
	reply chan View
}

func (e BoundsChanged) apply(s *Session) error {
	bounds := e.Bounds
	s.bounds = &bounds
	s.refreshVisible()
	return nil
}

func (e ListItemClicked) apply(s *Session) error {
	return s.selection.SelectActive(e.ID)
}

func (e MarkerClicked) apply(s *Session) error {
	return s.selection.SelectActive(e.ID)
}

func (e DetailRequested) apply(s *Session) error {
	return s.selection.OpenDetail(e.ID)
}

func (e ClientFieldChanged) apply(s *Session) error {
	return s.selection.SetClientField(e.Field, e.Value)
}

func (ChoiceConfirmed) apply(s *Session) error {
	s.selection.ConfirmChoice()
	return nil
}

func (DetailClosed) apply(s *Session) error {
	s.selection.CloseDetail()
	return nil
}

func (SubmitRequested) apply(s *Session) error {
	return s.startSubmit()
}

func (ResetRequested) apply(s *Session) error {
	s.workflow.Reset()
	return nil
}

func (PanelToggled) apply(s *Session) error {
	s.panel.Toggle()
	return nil
}

func (ReloadRequested) apply(s *Session) error {
	s.startLoad()
	return nil
}

func (e loadCompleted) apply(s *Session) error {
	s.loading = false
	if e.err != nil {
		s.store.Replace(nil)
	} else {
		s.store.Replace(e.locations)
	}
	if s.selection.state.HasActive {
		if _, ok := s.store.Find(s.selection.state.ActiveID); !ok {
			s.selection.ClearActive()
		}
	}
	s.refreshVisible()
	// Fetch failures were already logged by the store.
	return nil
}

func (e submitCompleted) apply(s *Session) error {
	// Failures are logged by the workflow and not surfaced further.
	_ = s.workflow.Complete(e.draft, e.ack, e.err)
	return nil
}

func (e snapshotRequested) apply(s *Session) error {
	e.reply <- s.view()
	return nil
}
