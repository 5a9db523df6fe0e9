package locator

import (
	"context"
	"errors"
	"time"

	"github.com/go-kit/log"
	"github.com/go-kit/log/level"
	"golang.org/x/text/language"

	"tire-locator/models"
)

const eventQueueSize = 64

// View is a value snapshot of everything the UI renders.
type View struct {
	Total     int                    `json:"total"`
	Visible   []models.Location      `json:"visible"`
	Bounds    *models.ViewportBounds `json:"bounds,omitempty"`
	ActiveID  int                    `json:"activeId"`
	HasActive bool                   `json:"hasActive"`
	Popup     PopupState             `json:"popup"`
	Chosen    *ChosenLocation        `json:"chosen"`
	InFlight  bool                   `json:"inFlight"`
	PanelOpen bool                   `json:"panelOpen"`
	Loading   bool                   `json:"loading"`
}

// SessionOptions configures a Session.
type SessionOptions struct {
	Fetcher     PlacemarkFetcher
	Submitter   RequestSubmitter
	Widget      MapWidget
	Locale      language.Tag
	PanDuration time.Duration
	Description string
	Client      models.ClientInfo
	Logger      log.Logger
	// OnChange runs on the loop goroutine after every handled event.
	OnChange func(View)
}

// Session owns one visitor's map view. All state lives on the goroutine
// running Run; everything else talks to it through events.
type Session struct {
	store     *PlaceStore
	selection *SelectionController
	workflow  *RequestWorkflow
	panel     *PanelToggle
	logger    log.Logger
	onChange  func(View)

	events chan Event
	done   chan struct{}
	ctx    context.Context

	bounds  *models.ViewportBounds
	visible []models.Location
	loading bool
}

func NewSession(opts SessionOptions) *Session {
	logger := opts.Logger
	if logger == nil {
		logger = log.NewNopLogger()
	}

	store := NewPlaceStore(opts.Fetcher, opts.Locale, logger)
	selection := NewSelectionController(store, opts.Widget, opts.PanDuration, opts.Description, logger)
	workflow := NewRequestWorkflow(selection, opts.Submitter, opts.Client, logger)

	return &Session{
		store:     store,
		selection: selection,
		workflow:  workflow,
		panel:     &PanelToggle{},
		logger:    log.With(logger, "component", "Session"),
		onChange:  opts.OnChange,
		events:    make(chan Event, eventQueueSize),
		done:      make(chan struct{}),
		visible:   []models.Location{},
	}
}

// Run starts the initial load and processes events until ctx is done.
func (s *Session) Run(ctx context.Context) error {
	defer close(s.done)
	s.ctx = ctx

	s.startLoad()
	s.notify()

	for {
		select {
		case <-ctx.Done():
			level.Debug(s.logger).Log("msg", "session stopped")
			return ctx.Err()
		case ev := <-s.events:
			s.handle(ev)
		}
	}
}

// Post queues an event for the loop.
func (s *Session) Post(ctx context.Context, ev Event) error {
	select {
	case <-s.done:
		return ErrSessionClosed
	default:
	}
	select {
	case s.events <- ev:
		return nil
	case <-s.done:
		return ErrSessionClosed
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Snapshot returns the current view as seen by the loop.
func (s *Session) Snapshot(ctx context.Context) (View, error) {
	reply := make(chan View, 1)
	if err := s.Post(ctx, snapshotRequested{reply: reply}); err != nil {
		return View{}, err
	}
	select {
	case v := <-reply:
		return v, nil
	case <-s.done:
		return View{}, ErrSessionClosed
	case <-ctx.Done():
		return View{}, ctx.Err()
	}
}

func (s *Session) handle(ev Event) {
	if err := ev.apply(s); err != nil {
		logger := level.Warn(s.logger)
		if errors.Is(err, ErrInternalInconsistency) {
			logger = level.Error(s.logger)
		}
		logger.Log("msg", "event rejected", "event", eventName(ev), "err", err)
	}
	if _, ok := ev.(snapshotRequested); !ok {
		s.notify()
	}
}

func (s *Session) notify() {
	if s.onChange != nil {
		s.onChange(s.view())
	}
}

func (s *Session) startLoad() {
	if s.loading {
		return
	}
	s.loading = true
	ctx := s.ctx
	go func() {
		locations, err := s.store.Fetch(ctx)
		s.deliver(loadCompleted{locations: locations, err: err})
	}()
}

func (s *Session) startSubmit() error {
	draft, err := s.workflow.Begin()
	if err != nil {
		return err
	}
	ctx := s.ctx
	go func() {
		ack, err := s.workflow.Send(ctx, draft)
		s.deliver(submitCompleted{draft: draft, ack: ack, err: err})
	}()
	return nil
}

// deliver hands an async completion back to the loop, dropping it if the
// loop has already exited.
func (s *Session) deliver(ev Event) {
	select {
	case s.events <- ev:
	case <-s.done:
	}
}

func (s *Session) refreshVisible() {
	if s.bounds == nil {
		s.visible = s.store.All()
		return
	}
	s.visible = ComputeVisible(s.store.All(), *s.bounds)
}

func (s *Session) view() View {
	state := s.selection.State()
	v := View{
		Total:     s.store.Len(),
		Visible:   append([]models.Location{}, s.visible...),
		ActiveID:  state.ActiveID,
		HasActive: state.HasActive,
		Popup:     s.selection.Popup(),
		Chosen:    state.Chosen,
		InFlight:  s.workflow.InFlight(),
		PanelOpen: s.panel.IsOpen(),
		Loading:   s.loading,
	}
	if s.bounds != nil {
		b := *s.bounds
		v.Bounds = &b
	}
	return v
}

func eventName(ev Event) string {
	switch ev.(type) {
	case BoundsChanged:
		return "bounds_changed"
	case ListItemClicked:
		return "list_item_clicked"
	case MarkerClicked:
		return "marker_clicked"
	case DetailRequested:
		return "detail_requested"
	case ClientFieldChanged:
		return "client_field_changed"
	case ChoiceConfirmed:
		return "choice_confirmed"
	case DetailClosed:
		return "detail_closed"
	case SubmitRequested:
		return "submit_requested"
	case ResetRequested:
		return "reset_requested"
	case PanelToggled:
		return "panel_toggled"
	case ReloadRequested:
		return "reload_requested"
	default:
		return "internal"
	}
}
