package handlers

import (
	"Purchase-Tracker/domain"
	"Purchase-Tracker/internal/utils/storage"
	"Purchase-Tracker/pkg/maps"
	"errors"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

// statusFor maps service errors onto HTTP status codes.
func statusFor(err error) int {
	var validationErrors validator.ValidationErrors
	switch {
	case errors.Is(err, domain.ErrProductNotFound),
		errors.Is(err, domain.ErrCategoryNotFound):
		return fiber.StatusNotFound
	case errors.Is(err, domain.ErrCategoryInUse):
		return fiber.StatusConflict
	case errors.Is(err, domain.ErrMailNotConfigured):
		return fiber.StatusServiceUnavailable
	case errors.Is(err, domain.ErrParseUUID),
		errors.Is(err, domain.ErrNotConfirmed),
		errors.Is(err, domain.ErrInvalidCoordinates),
		errors.Is(err, domain.ErrInvalidPurchaseDate),
		errors.Is(err, domain.ErrInvalidPrice),
		errors.Is(err, domain.ErrInvalidQuantity),
		errors.Is(err, domain.ErrInvalidImageFormat),
		errors.Is(err, domain.ErrProductIncomplete),
		errors.Is(err, domain.ErrCategoryNameEmpty),
		errors.Is(err, storage.ErrFileExtensionNotAllowed),
		errors.Is(err, maps.ErrLocationUnavailable),
		errors.Is(err, maps.ErrGeolocationUnsupported),
		errors.As(err, &validationErrors):
		return fiber.StatusBadRequest
	default:
		return fiber.StatusInternalServerError
	}
}

// confirmed reports whether the request carries confirm=true in its query or form.
func confirmed(c *fiber.Ctx) bool {
	v := c.Query("confirm")
	if v == "" {
		v = c.FormValue("confirm")
	}
	return v == "true" || v == "1" || v == "on"
}
