package locator

import "tire-locator/models"

// ComputeVisible returns the locations inside bounds, edges included, in input
// order. It holds no state and may be re-run on every bounds change.
func ComputeVisible(all []models.Location, bounds models.ViewportBounds) []models.Location {
	visible := []models.Location{}
	if len(all) == 0 || bounds.IsDegenerate() {
		return visible
	}
	for _, l := range all {
		if bounds.Contains(l.Coords) {
			visible = append(visible, l)
		}
	}
	return visible
}
