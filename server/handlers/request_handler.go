package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-kit/log"
	"github.com/go-kit/log/level"

	"tire-locator/models"
	services "tire-locator/service"
)

// RequestCreator accepts form requests.
type RequestCreator interface {
	CreateRequest(req models.FormRequest) (*models.RequestAck, error)
}

type RequestHandler struct {
	requests RequestCreator
	logger   log.Logger
}

func NewRequestHandler(requests RequestCreator, logger log.Logger) *RequestHandler {
	return &RequestHandler{
		requests: requests,
		logger:   log.With(logger, "component", "RequestHandler"),
	}
}

// CreateFormRequest handles POST /form-request
func (h *RequestHandler) CreateFormRequest(w http.ResponseWriter, r *http.Request) {
	var req models.FormRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, h.logger, http.StatusBadRequest, "Malformed request body")
		return
	}

	ack, err := h.requests.CreateRequest(req)
	switch {
	case err == nil:
		writeJSON(w, h.logger, http.StatusCreated, ack)
	case errors.Is(err, services.ErrPlacemarkNotFound):
		writeError(w, h.logger, http.StatusNotFound, err.Error())
	case errors.Is(err, services.ErrInvalidRequest):
		writeError(w, h.logger, http.StatusBadRequest, err.Error())
	default:
		level.Error(h.logger).Log("msg", "error creating form request", "err", err)
		writeError(w, h.logger, http.StatusInternalServerError, "Internal server error")
	}
}
