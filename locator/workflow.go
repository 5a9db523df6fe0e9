package locator

import (
	"context"
	"fmt"
	"strings"

	"github.com/go-kit/log"
	"github.com/go-kit/log/level"

	"tire-locator/models"
)

// RequestSubmitter sends a form request to the backend.
type RequestSubmitter interface {
	CreateRequest(ctx context.Context, req models.FormRequest) (*models.RequestAck, error)
}

// RequestWorkflow turns the chosen location into a submitted request.
type RequestWorkflow struct {
	selection *SelectionController
	submitter RequestSubmitter
	client    models.ClientInfo
	logger    log.Logger

	inFlight  bool
	submitted *ChosenLocation
}

// NewRequestWorkflow uses client as the identity for drafts whose popup form
// was left blank.
func NewRequestWorkflow(
	selection *SelectionController,
	submitter RequestSubmitter,
	client models.ClientInfo,
	logger log.Logger,
) *RequestWorkflow {
	return &RequestWorkflow{
		selection: selection,
		submitter: submitter,
		client:    client,
		logger:    log.With(logger, "component", "RequestWorkflow"),
	}
}

// Begin builds and validates a draft from the chosen location and marks the
// workflow in flight. Complete must follow every successful Begin.
func (w *RequestWorkflow) Begin() (models.RequestDraft, error) {
	if w.inFlight {
		return models.RequestDraft{}, ErrSubmitInFlight
	}
	chosen := w.selection.chosen()
	if chosen == nil {
		return models.RequestDraft{}, ErrNoChoice
	}

	client := w.client
	if chosen.Client.Name != "" {
		client.Name = chosen.Client.Name
	}
	if chosen.Client.Phone != "" {
		client.Phone = chosen.Client.Phone
	}

	draft := models.RequestDraft{
		LocationID:  chosen.ID,
		Location:    chosen.Location,
		Client:      client,
		Description: chosen.Description,
	}
	if err := validateDraft(draft); err != nil {
		return models.RequestDraft{}, err
	}

	w.inFlight = true
	w.submitted = chosen
	level.Info(w.logger).Log("msg", "submitting request", "location_id", draft.LocationID)
	return draft, nil
}

// Complete clears the in-flight flag and, if it is still the one submitted,
// the chosen location, whatever the outcome. A failure is logged and returned as *SubmitError.
func (w *RequestWorkflow) Complete(draft models.RequestDraft, ack *models.RequestAck, err error) error {
	w.inFlight = false
	// A choice confirmed while the request was in flight survives.
	if w.selection.chosen() == w.submitted {
		w.selection.clearChosen()
	}
	w.submitted = nil

	if err != nil {
		submitErr := &SubmitError{LocationID: draft.LocationID, Err: err}
		level.Error(w.logger).Log("msg", "request submission failed", "err", submitErr)
		return submitErr
	}
	if ack != nil {
		level.Info(w.logger).Log("msg", "request accepted", "location_id", draft.LocationID, "request_id", ack.RequestID)
	}
	return nil
}

// Submit runs Begin, the backend call and Complete in one go.
func (w *RequestWorkflow) Submit(ctx context.Context) error {
	draft, err := w.Begin()
	if err != nil {
		return err
	}
	ack, err := w.submitter.CreateRequest(ctx, draft.ToFormRequest())
	return w.Complete(draft, ack, err)
}

// Send performs only the backend call for a draft returned by Begin.
func (w *RequestWorkflow) Send(ctx context.Context, draft models.RequestDraft) (*models.RequestAck, error) {
	return w.submitter.CreateRequest(ctx, draft.ToFormRequest())
}

// Reset discards the chosen location.
func (w *RequestWorkflow) Reset() {
	w.selection.clearChosen()
}

func (w *RequestWorkflow) InFlight() bool {
	return w.inFlight
}

func validateDraft(d models.RequestDraft) error {
	var missing []string
	if !d.Location.IsComplete() {
		missing = append(missing, "location")
	}
	if strings.TrimSpace(d.Client.Name) == "" {
		missing = append(missing, "client name")
	}
	if strings.TrimSpace(d.Client.Phone) == "" {
		missing = append(missing, "client phone")
	}
	if strings.TrimSpace(d.Description) == "" {
		missing = append(missing, "description")
	}
	if len(missing) > 0 {
		return fmt.Errorf("%w: missing %s", ErrInvalidDraft, strings.Join(missing, ", "))
	}
	return nil
}
