package maps

// Display shows a single labelled, read-only marker.
type Display struct {
	surface *Surface
}

func NewDisplay() *Display {
	return &Display{surface: NewSurface()}
}

func (d *Display) Mount(lat float64, lng float64, label string) error {
	pos := LatLng{Lat: lat, Lng: lng}
	if err := d.surface.Acquire(pos, DisplayZoom); err != nil {
		return err
	}
	if _, err := d.surface.AddMarker(Marker{Position: pos, Label: label}); err != nil {
		d.surface.Release()
		return err
	}
	return nil
}

func (d *Display) Unmount() {
	d.surface.Release()
}

func (d *Display) View() (LatLng, int) {
	return d.surface.View()
}

func (d *Display) Markers() []Marker {
	return d.surface.Markers()
}
