package maps

import (
	"fmt"
	"strconv"
)

const (
	DefaultLatitude  = 13.7563
	DefaultLongitude = 100.5018

	PickerZoom  = 13
	LocateZoom  = 15
	DisplayZoom = 15
)

// Config is handed to the Leaflet snippet in the page templates.
type Config struct {
	TileURL     string  `json:"tile_url"`
	Attribution string  `json:"attribution"`
	DefaultLat  float64 `json:"default_lat"`
	DefaultLng  float64 `json:"default_lng"`
	PickerZoom  int     `json:"picker_zoom"`
	LocateZoom  int     `json:"locate_zoom"`
	DisplayZoom int     `json:"display_zoom"`
}

func DefaultConfig() Config {
	return Config{
		TileURL:     "https://{s}.tile.openstreetmap.org/{z}/{x}/{y}.png",
		Attribution: "&copy; OpenStreetMap contributors",
		DefaultLat:  DefaultLatitude,
		DefaultLng:  DefaultLongitude,
		PickerZoom:  PickerZoom,
		LocateZoom:  LocateZoom,
		DisplayZoom: DisplayZoom,
	}
}

// ExternalLink points at the coordinates on Google Maps.
func ExternalLink(lat float64, lng float64) string {
	return fmt.Sprintf("https://maps.google.com/?q=%s,%s", formatCoord(lat), formatCoord(lng))
}

func formatCoord(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
