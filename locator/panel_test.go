package locator

import "testing"

func TestPanelToggle(t *testing.T) {
	var p PanelToggle
	if p.IsOpen() {
		t.Fatal("panel should start closed")
	}
	if !p.Toggle() || !p.IsOpen() {
		t.Error("first toggle should open the panel")
	}
	if p.Toggle() || p.IsOpen() {
		t.Error("double toggle should return to closed")
	}
}
