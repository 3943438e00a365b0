package handlers

import (
	"Purchase-Tracker/domain"
	"Purchase-Tracker/pkg/maps"
	"context"
	"fmt"
	"mime/multipart"
	"strconv"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"
)

// parseProductRequest reads a product from a JSON body or from form fields.
func parseProductRequest(c *fiber.Ctx) (domain.ProductRequest, error) {
	var req domain.ProductRequest
	if strings.HasPrefix(string(c.Request().Header.ContentType()), fiber.MIMEApplicationJSON) {
		if err := c.BodyParser(&req); err != nil {
			return domain.ProductRequest{}, err
		}
		return req, nil
	}

	req.Name = c.FormValue("name")
	req.CategoryID = c.FormValue("category_id")
	req.PurchaseDate = c.FormValue("purchase_date")
	req.Store = c.FormValue("store")
	req.Unit = c.FormValue("unit")
	req.QuantityUnit = c.FormValue("quantity_unit")
	req.Notes = c.FormValue("notes")

	var err error
	if req.Price, err = parseDecimal(c.FormValue("price")); err != nil {
		return domain.ProductRequest{}, fmt.Errorf("price: %w", domain.ErrInvalidPrice)
	}
	if req.Quantity, err = parseDecimal(c.FormValue("quantity")); err != nil {
		return domain.ProductRequest{}, fmt.Errorf("quantity: %w", domain.ErrInvalidQuantity)
	}
	if req.Latitude, err = parseCoord(c.FormValue("latitude")); err != nil {
		return domain.ProductRequest{}, domain.ErrInvalidCoordinates
	}
	if req.Longitude, err = parseCoord(c.FormValue("longitude")); err != nil {
		return domain.ProductRequest{}, domain.ErrInvalidCoordinates
	}
	return req, nil
}

// formImage returns the optional "image" upload.
func formImage(c *fiber.Ctx) *multipart.FileHeader {
	file, err := c.FormFile("image")
	if err != nil || file == nil || file.Size == 0 {
		return nil
	}
	return file
}

// replayPicker mounts a Picker at the coordinates the form was rendered with,
// feeds it the map events recorded by the browser in order, and writes the
// resulting selection back into req. map_events is a ";" separated list of
// click:<lat>,<lng>, drag:<lat>,<lng> and locate:<lat>,<lng> entries.
func replayPicker(ctx context.Context, c *fiber.Ctx, req *domain.ProductRequest) error {
	picker := maps.NewPicker(req.Latitude, req.Longitude, func(lat float64, lng float64) {
		req.Latitude = &lat
		req.Longitude = &lng
	})
	if err := picker.Mount(); err != nil {
		return err
	}
	defer picker.Unmount()

	for _, event := range strings.Split(c.FormValue("map_events"), ";") {
		event = strings.TrimSpace(event)
		if event == "" {
			continue
		}
		kind, coords, _ := strings.Cut(event, ":")
		lat, lng, coordErr := parseLatLng(coords)

		var err error
		switch kind {
		case "click":
			if coordErr != nil {
				return domain.ErrInvalidCoordinates
			}
			err = picker.Click(lat, lng)
		case "drag":
			if coordErr != nil {
				return domain.ErrInvalidCoordinates
			}
			err = picker.DragEnd(lat, lng)
		case "locate":
			var locator maps.FixedLocator
			if coordErr == nil {
				locator.Lat, locator.Lng = &lat, &lng
			}
			err = picker.UseCurrentLocation(ctx, locator)
		default:
			return fmt.Errorf("%w: unknown map event %q", domain.ErrInvalidCoordinates, kind)
		}
		if err != nil {
			return err
		}
	}
	return nil
}

func parseLatLng(v string) (float64, float64, error) {
	latRaw, lngRaw, ok := strings.Cut(v, ",")
	if !ok {
		return 0, 0, domain.ErrInvalidCoordinates
	}
	lat, err := parseCoord(latRaw)
	if err != nil || lat == nil {
		return 0, 0, domain.ErrInvalidCoordinates
	}
	lng, err := parseCoord(lngRaw)
	if err != nil || lng == nil {
		return 0, 0, domain.ErrInvalidCoordinates
	}
	return *lat, *lng, nil
}

func parseDecimal(v string) (decimal.Decimal, error) {
	v = strings.TrimSpace(v)
	if v == "" {
		return decimal.Zero, nil
	}
	return decimal.NewFromString(v)
}

func parseCoord(v string) (*float64, error) {
	v = strings.TrimSpace(v)
	if v == "" {
		return nil, nil
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return nil, err
	}
	return &f, nil
}
