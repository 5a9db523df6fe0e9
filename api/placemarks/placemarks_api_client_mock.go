package placemarks

import (
	"context"
	"fmt"
	"sync"
	"time"

	"tire-locator/models"
	"tire-locator/util"
)

// PlacemarksApiClientMock serves placemarks from a JSON fixture and records
// every request it is asked to create.
type PlacemarksApiClientMock struct {
	fixturePath string

	mu       sync.Mutex
	requests []models.FormRequest
}

// NewPlacemarksApiClientMock creates a new instance of PlacemarksApiClientMock
func NewPlacemarksApiClientMock(fixturePath string) *PlacemarksApiClientMock {
	return &PlacemarksApiClientMock{fixturePath: fixturePath}
}

// GetPlacemarks reads the fixture on every call.
func (c *PlacemarksApiClientMock) GetPlacemarks(ctx context.Context) ([]models.Location, error) {
	placemarks, err := util.ReadPlacemarksFromJSON(c.fixturePath)
	if err != nil {
		return nil, fmt.Errorf("could not read placemarks fixture: %w", err)
	}
	return placemarks, nil
}

// CreateRequest records the request and acknowledges it.
func (c *PlacemarksApiClientMock) CreateRequest(ctx context.Context, req models.FormRequest) (*models.RequestAck, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.requests = append(c.requests, req)
	return &models.RequestAck{
		Status:      "ok",
		RequestID:   fmt.Sprintf("mock-%d", len(c.requests)),
		PlacemarkID: req.ID,
		ReceivedAt:  time.Now().UTC(),
	}, nil
}

// Requests returns a copy of every recorded request.
func (c *PlacemarksApiClientMock) Requests() []models.FormRequest {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]models.FormRequest(nil), c.requests...)
}
