package locator

// PanelToggle is the open/closed state of the location list panel.
type PanelToggle struct {
	open bool
}

// Toggle flips the panel and returns the new state.
func (p *PanelToggle) Toggle() bool {
	p.open = !p.open
	return p.open
}

func (p *PanelToggle) IsOpen() bool {
	return p.open
}
