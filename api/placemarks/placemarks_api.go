package placemarks

import (
	"context"

	"tire-locator/models"
)

const PLACEMARKS_ENDPOINT = "/placemarks"
const FORM_REQUEST_ENDPOINT = "/form-request"

// PlacemarksAPI defines the interface for interacting with the placemarks backend
type PlacemarksAPI interface {
	GetPlacemarks(ctx context.Context) ([]models.Location, error)
	CreateRequest(ctx context.Context, req models.FormRequest) (*models.RequestAck, error)
}
