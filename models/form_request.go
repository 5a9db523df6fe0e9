package models

import "time"

// ClientInfo identifies whoever is asking for the service.
type ClientInfo struct {
	Name  string `json:"name"`
	Phone string `json:"phone"`
}

// RequestDetails carries the free-text service description.
type RequestDetails struct {
	Desc string `json:"desc"`
}

// RequestDraft is built from the chosen location at submit time.
type RequestDraft struct {
	LocationID  int
	Location    Location
	Client      ClientInfo
	Description string
}

// FormRequest is the POST /form-request body. It carries both the location
// snapshot and the client block so either backend variant can read it.
type FormRequest struct {
	ID       int            `json:"id"`
	Name     string         `json:"name,omitempty"`
	Address  string         `json:"address,omitempty"`
	Schedule string         `json:"schedule,omitempty"`
	Client   *ClientInfo    `json:"client,omitempty"`
	Request  RequestDetails `json:"request"`
}

// ToFormRequest converts the draft to its wire form.
func (d RequestDraft) ToFormRequest() FormRequest {
	client := d.Client
	return FormRequest{
		ID:       d.LocationID,
		Name:     d.Location.Name,
		Address:  d.Location.Address,
		Schedule: d.Location.Schedule,
		Client:   &client,
		Request:  RequestDetails{Desc: d.Description},
	}
}

// RequestAck is the acknowledgment returned for an accepted form request.
type RequestAck struct {
	Status      string    `json:"status"`
	RequestID   string    `json:"requestId"`
	PlacemarkID int       `json:"placemarkId"`
	ReceivedAt  time.Time `json:"receivedAt"`
}

// ErrorPayload is the body of every non-success response.
type ErrorPayload struct {
	Status  int    `json:"status"`
	Message string `json:"message"`
}
