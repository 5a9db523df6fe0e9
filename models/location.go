package models

import (
	"encoding/json"
	"fmt"
)

// Location is a tire-service shop as served by GET /placemarks.
type Location struct {
	ID       int         `json:"id"`
	Name     string      `json:"name"`
	Address  string      `json:"address"`
	Schedule string      `json:"schedule"`
	Coords   Coordinates `json:"coords"`
}

// UnmarshalJSON also accepts the older "workingHours" key for the schedule.
func (l *Location) UnmarshalJSON(data []byte) error {
	// Alias drops the method set to avoid recursion.
	type Alias Location
	aux := &struct {
		WorkingHours string `json:"workingHours"`
		*Alias
	}{
		Alias: (*Alias)(l),
	}

	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}

	if l.Schedule == "" {
		l.Schedule = aux.WorkingHours
	}
	return nil
}

// IsComplete reports whether id, name, address and schedule are all present.
// Backend ids start at 1; 0 is what a record without an id decodes to.
func (l Location) IsComplete() bool {
	return l.ID != 0 && l.Name != "" && l.Address != "" && l.Schedule != ""
}

func (l *Location) ToString() string {
	return fmt.Sprintf("Location(id=%d, name=%s, address=%s, coords=%s)",
		l.ID, l.Name, l.Address, l.Coords.String())
}
