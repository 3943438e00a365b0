package maps

import (
	"errors"
	"sync"
)

var (
	ErrSurfaceLive     = errors.New("map surface is already mounted")
	ErrSurfaceReleased = errors.New("map surface is not mounted")
)

type (
	LatLng struct {
		Lat float64 `json:"lat"`
		Lng float64 `json:"lng"`
	}

	Marker struct {
		Position LatLng `json:"position"`
		Label    string `json:"label,omitempty"`
	}

	// Surface is a single map instance. It is acquired by exactly one widget at a
	// time and holds the view and markers until released.
	Surface struct {
		mu      sync.Mutex
		live    bool
		center  LatLng
		zoom    int
		markers []Marker
	}
)

func NewSurface() *Surface {
	return &Surface{}
}

func (s *Surface) Acquire(center LatLng, zoom int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.live {
		return ErrSurfaceLive
	}
	s.live = true
	s.center = center
	s.zoom = zoom
	s.markers = nil
	return nil
}

// Release disposes the surface and all of its markers. Safe to call repeatedly.
func (s *Surface) Release() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.live = false
	s.markers = nil
}

func (s *Surface) Live() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.live
}

func (s *Surface) SetView(center LatLng, zoom int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.live {
		return ErrSurfaceReleased
	}
	s.center = center
	s.zoom = zoom
	return nil
}

func (s *Surface) AddMarker(m Marker) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.live {
		return -1, ErrSurfaceReleased
	}
	s.markers = append(s.markers, m)
	return len(s.markers) - 1, nil
}

func (s *Surface) MoveMarker(idx int, pos LatLng) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.live {
		return ErrSurfaceReleased
	}
	if idx < 0 || idx >= len(s.markers) {
		return errors.New("marker does not exist")
	}
	s.markers[idx].Position = pos
	return nil
}

func (s *Surface) View() (LatLng, int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.center, s.zoom
}

func (s *Surface) Markers() []Marker {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]Marker, len(s.markers))
	copy(out, s.markers)
	return out
}
