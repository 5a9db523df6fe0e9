package services

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/go-kit/log"
	"github.com/go-kit/log/level"
	"github.com/google/uuid"

	"tire-locator/models"
)

// ErrInvalidRequest is returned for form requests missing required fields.
var ErrInvalidRequest = errors.New("invalid form request")

// RequestService accepts service requests. Requests are acknowledged and
// logged but not stored.
type RequestService struct {
	placemarks *PlacemarkService
	logger     log.Logger
	now        func() time.Time
}

func NewRequestService(placemarks *PlacemarkService, logger log.Logger) *RequestService {
	return &RequestService{
		placemarks: placemarks,
		logger:     log.With(logger, "component", "RequestService"),
		now:        time.Now,
	}
}

// CreateRequest validates req against the stored placemarks and acknowledges it.
func (rs *RequestService) CreateRequest(req models.FormRequest) (*models.RequestAck, error) {
	if strings.TrimSpace(req.Request.Desc) == "" {
		return nil, fmt.Errorf("%w: request.desc is required", ErrInvalidRequest)
	}
	if req.Client != nil && (strings.TrimSpace(req.Client.Name) == "" || strings.TrimSpace(req.Client.Phone) == "") {
		return nil, fmt.Errorf("%w: client name and phone are required", ErrInvalidRequest)
	}

	placemark, err := rs.placemarks.GetPlacemark(req.ID)
	if err != nil {
		return nil, err
	}

	ack := &models.RequestAck{
		Status:      "ok",
		RequestID:   uuid.NewString(),
		PlacemarkID: placemark.ID,
		ReceivedAt:  rs.now().UTC(),
	}
	level.Info(rs.logger).Log(
		"msg", "form request accepted",
		"request_id", ack.RequestID,
		"placemark_id", placemark.ID,
		"placemark", placemark.Name,
		"desc", req.Request.Desc,
	)
	return ack, nil
}
