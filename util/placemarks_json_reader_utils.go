package util

import (
	"encoding/json"
	"fmt"
	"os"

	"tire-locator/models"
)

// ReadPlacemarksFromJSON loads a placemark collection from JSON on disk.
func ReadPlacemarksFromJSON(filePath string) ([]models.Location, error) {
	data, err := os.ReadFile(filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to read file %q: %w", filePath, err)
	}
	var placemarks []models.Location
	if err := json.Unmarshal(data, &placemarks); err != nil {
		return nil, fmt.Errorf("failed to unmarshal placemarks: %w", err)
	}
	return placemarks, nil
}

// PrintLocationsPartially prints the fields shown in the list panel.
func PrintLocationsPartially(locations []models.Location) {
	fmt.Printf("Locations: %d\n", len(locations))
	for _, l := range locations {
		fmt.Printf("  #%d %s | %s | %s | %s\n", l.ID, l.Name, l.Address, l.Schedule, l.Coords.String())
	}
}
