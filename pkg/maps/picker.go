package maps

import (
	"context"
	"errors"
	"fmt"
)

var (
	ErrLocationUnavailable    = errors.New("unable to get your location")
	ErrGeolocationUnsupported = errors.New("geolocation is not supported by your browser")
)

// Locator reports the device position.
type Locator interface {
	Locate(ctx context.Context) (lat float64, lng float64, err error)
}

// FixedLocator answers with coordinates the browser already resolved.
type FixedLocator struct {
	Lat         *float64
	Lng         *float64
	Unsupported bool
}

func (l FixedLocator) Locate(ctx context.Context) (float64, float64, error) {
	if l.Unsupported {
		return 0, 0, ErrGeolocationUnsupported
	}
	if l.Lat == nil || l.Lng == nil {
		return 0, 0, ErrLocationUnavailable
	}
	return *l.Lat, *l.Lng, nil
}

// Picker lets the user choose a location. Every selection is reported through
// onSelect; the values are passed through unvalidated.
type Picker struct {
	surface  *Surface
	initial  *LatLng
	onSelect func(lat float64, lng float64)
	marker   int
}

func NewPicker(lat *float64, lng *float64, onSelect func(lat float64, lng float64)) *Picker {
	p := &Picker{
		surface:  NewSurface(),
		onSelect: onSelect,
		marker:   -1,
	}
	if lat != nil && lng != nil {
		p.initial = &LatLng{Lat: *lat, Lng: *lng}
	}
	return p
}

// Mount centres on the initial coordinates, or the default city centre, and
// places a marker only when initial coordinates exist.
func (p *Picker) Mount() error {
	center := LatLng{Lat: DefaultLatitude, Lng: DefaultLongitude}
	if p.initial != nil {
		center = *p.initial
	}
	if err := p.surface.Acquire(center, PickerZoom); err != nil {
		return err
	}
	p.marker = -1
	if p.initial != nil {
		idx, err := p.surface.AddMarker(Marker{Position: *p.initial})
		if err != nil {
			return err
		}
		p.marker = idx
	}
	return nil
}

func (p *Picker) Click(lat float64, lng float64) error {
	if err := p.place(LatLng{Lat: lat, Lng: lng}); err != nil {
		return err
	}
	p.report(lat, lng)
	return nil
}

// DragEnd is a no-op when no marker exists.
func (p *Picker) DragEnd(lat float64, lng float64) error {
	if !p.surface.Live() {
		return ErrSurfaceReleased
	}
	if p.marker < 0 {
		return nil
	}
	if err := p.surface.MoveMarker(p.marker, LatLng{Lat: lat, Lng: lng}); err != nil {
		return err
	}
	p.report(lat, lng)
	return nil
}

// UseCurrentLocation recentres on the device position. On failure the picker
// state is left unchanged and the returned error is meant for the user.
func (p *Picker) UseCurrentLocation(ctx context.Context, locator Locator) error {
	if !p.surface.Live() {
		return ErrSurfaceReleased
	}
	if locator == nil {
		return ErrGeolocationUnsupported
	}

	lat, lng, err := locator.Locate(ctx)
	if err != nil {
		if errors.Is(err, ErrGeolocationUnsupported) {
			return ErrGeolocationUnsupported
		}
		if errors.Is(err, ErrLocationUnavailable) {
			return ErrLocationUnavailable
		}
		return fmt.Errorf("%w: %v", ErrLocationUnavailable, err)
	}

	pos := LatLng{Lat: lat, Lng: lng}
	if err := p.surface.SetView(pos, LocateZoom); err != nil {
		return err
	}
	if err := p.place(pos); err != nil {
		return err
	}
	p.report(lat, lng)
	return nil
}

func (p *Picker) Unmount() {
	p.surface.Release()
	p.marker = -1
}

// Selected returns the marker position, if any.
func (p *Picker) Selected() (LatLng, bool) {
	if p.marker < 0 {
		return LatLng{}, false
	}
	markers := p.surface.Markers()
	if p.marker >= len(markers) {
		return LatLng{}, false
	}
	return markers[p.marker].Position, true
}

func (p *Picker) View() (LatLng, int) {
	return p.surface.View()
}

func (p *Picker) Markers() []Marker {
	return p.surface.Markers()
}

func (p *Picker) place(pos LatLng) error {
	if p.marker >= 0 {
		return p.surface.MoveMarker(p.marker, pos)
	}
	idx, err := p.surface.AddMarker(Marker{Position: pos})
	if err != nil {
		return err
	}
	p.marker = idx
	return nil
}

func (p *Picker) report(lat float64, lng float64) {
	if p.onSelect != nil {
		p.onSelect(lat, lng)
	}
}
