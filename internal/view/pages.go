package view

import (
	"Purchase-Tracker/domain"
	"Purchase-Tracker/pkg/maps"
	"strconv"
	"time"
)

type (
	// IndexPage is the management view.
	IndexPage struct {
		Products        []ProductRow
		Categories      []domain.CategoryResponse
		Stores          []string
		Filter          domain.ProductFilter
		Shown           int
		Total           int
		Suggestions     domain.SuggestionsResponse
		Form            *ProductForm
		CategoryForm    domain.CategoryRequest
		Share           *SharePanel
		CopiedAckMillis int64
	}

	// ProductForm holds the values of the create/edit form as typed by the user.
	ProductForm struct {
		ID           string
		Name         string
		CategoryID   string
		PurchaseDate string
		Store        string
		Price        string
		Unit         string
		Quantity     string
		QuantityUnit string
		Notes        string
		ImageURL     *string
		Latitude     *float64
		Longitude    *float64
	}

	// ProductRow is a list entry; Map is set when the product has a location.
	ProductRow struct {
		domain.ProductResponse
		Map *MapView
	}

	// SharePanel shows the link; the QR code is only requested once ShowQR is set.
	SharePanel struct {
		ProductID string
		ShowQR    bool
		domain.ShareResponse
	}

	// MapView is the initial state handed to the Leaflet snippet.
	MapView struct {
		Lat    float64
		Lng    float64
		Zoom   int
		Marker *maps.Marker
	}

	SharedPage struct {
		Product domain.SharedProductResponse
		Map     *MapView
	}
)

// NewProductForm opens an empty form dated today.
func NewProductForm(now time.Time) *ProductForm {
	return &ProductForm{
		PurchaseDate: now.Format(domain.DateLayout),
		Price:        "0",
		Quantity:     "1",
	}
}

func ProductFormFromResponse(p domain.ProductResponse) *ProductForm {
	f := &ProductForm{
		ID:           p.ID,
		Name:         p.Name,
		PurchaseDate: p.PurchaseDate,
		Store:        p.Store,
		Price:        strconv.FormatFloat(p.Price, 'f', -1, 64),
		Unit:         p.Unit,
		Quantity:     strconv.FormatFloat(p.Quantity, 'f', -1, 64),
		QuantityUnit: p.QuantityUnit,
		ImageURL:     p.ImageURL,
		Latitude:     p.Latitude,
		Longitude:    p.Longitude,
	}
	if p.CategoryID != nil {
		f.CategoryID = *p.CategoryID
	}
	if p.Notes != nil {
		f.Notes = *p.Notes
	}
	return f
}

func ProductFormFromRequest(id string, req domain.ProductRequest) *ProductForm {
	return &ProductForm{
		ID:           id,
		Name:         req.Name,
		CategoryID:   req.CategoryID,
		PurchaseDate: req.PurchaseDate,
		Store:        req.Store,
		Price:        req.Price.String(),
		Unit:         req.Unit,
		Quantity:     req.Quantity.String(),
		QuantityUnit: req.QuantityUnit,
		Notes:        req.Notes,
		Latitude:     req.Latitude,
		Longitude:    req.Longitude,
	}
}

// NewProductRows mounts a Display, labelled with the store, for every product
// that has a location.
func NewProductRows(products []domain.ProductResponse) []ProductRow {
	rows := make([]ProductRow, 0, len(products))
	for _, p := range products {
		row := ProductRow{ProductResponse: p}
		if p.Latitude != nil && p.Longitude != nil {
			row.Map, _ = DisplayView(*p.Latitude, *p.Longitude, p.Store)
		}
		rows = append(rows, row)
	}
	return rows
}

// PickerView mirrors what a freshly mounted Picker shows for the form.
func (f *ProductForm) PickerView() MapView {
	picker := maps.NewPicker(f.Latitude, f.Longitude, nil)
	if err := picker.Mount(); err != nil {
		return MapView{Lat: maps.DefaultLatitude, Lng: maps.DefaultLongitude, Zoom: maps.PickerZoom}
	}
	defer picker.Unmount()
	return mapView(picker.View, picker.Markers)
}

// DisplayView mounts a Display for the coordinates and captures its state.
func DisplayView(lat float64, lng float64, label string) (*MapView, error) {
	display := maps.NewDisplay()
	if err := display.Mount(lat, lng, label); err != nil {
		return nil, err
	}
	defer display.Unmount()
	v := mapView(display.View, display.Markers)
	return &v, nil
}

func mapView(view func() (maps.LatLng, int), markers func() []maps.Marker) MapView {
	center, zoom := view()
	v := MapView{Lat: center.Lat, Lng: center.Lng, Zoom: zoom}
	if m := markers(); len(m) > 0 {
		marker := m[0]
		v.Marker = &marker
	}
	return v
}
