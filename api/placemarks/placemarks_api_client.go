package placemarks

import (
	"context"
	"net/http"

	"tire-locator/api"
	"tire-locator/models"
)

// PlacemarksApiClient embeds the common HTTPClient
type PlacemarksApiClient struct {
	*api.HTTPClient
}

// NewPlacemarksApiClient creates a new instance of PlacemarksApiClient
func NewPlacemarksApiClient(httpClient *api.HTTPClient) *PlacemarksApiClient {
	return &PlacemarksApiClient{
		HTTPClient: httpClient,
	}
}

// GetPlacemarks retrieves the full placemark collection
func (c *PlacemarksApiClient) GetPlacemarks(ctx context.Context) ([]models.Location, error) {
	var response []models.Location
	if err := c.Request(ctx, http.MethodGet, PLACEMARKS_ENDPOINT, nil, &response); err != nil {
		return nil, err
	}
	return response, nil
}

// CreateRequest posts a service request for a placemark
func (c *PlacemarksApiClient) CreateRequest(ctx context.Context, req models.FormRequest) (*models.RequestAck, error) {
	var response models.RequestAck
	if err := c.Request(ctx, http.MethodPost, FORM_REQUEST_ENDPOINT, req, &response); err != nil {
		return nil, err
	}
	return &response, nil
}
